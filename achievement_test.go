package main

import "testing"

func achievementIDs(defs []AchievementDef) map[string]bool {
	ids := make(map[string]bool, len(defs))
	for _, d := range defs {
		ids[d.ID] = true
	}
	return ids
}

func TestCheckAchievements(t *testing.T) {
	db := openTestDB(t)
	pid, _ := db.CreatePlayer("pilot", "x")

	run := RunResult{PlayerID: pid, Score: 60, Kills: 12, SparksUsed: 0, Duration: 90}
	db.RecordRun(run)

	got := achievementIDs(CheckAchievements(db, pid, run))
	for _, id := range []string{"first_blood", "scorer", "spark_hoarder"} {
		if !got[id] {
			t.Errorf("expected %s to unlock", id)
		}
	}
	for _, id := range []string{"pacifist", "rampage", "high_roller", "exterminator"} {
		if got[id] {
			t.Errorf("%s should not unlock", id)
		}
	}

	// Already unlocked achievements are not reported again
	db.RecordRun(run)
	if again := CheckAchievements(db, pid, run); len(again) != 0 {
		t.Errorf("expected nothing new, got %v", again)
	}
}

func TestCheckAchievementsPacifist(t *testing.T) {
	db := openTestDB(t)
	pid, _ := db.CreatePlayer("pilot", "x")

	run := RunResult{PlayerID: pid, Duration: 61}
	db.RecordRun(run)

	got := achievementIDs(CheckAchievements(db, pid, run))
	if !got["pacifist"] || got["first_blood"] {
		t.Errorf("unexpected unlocks %v", got)
	}
}

func TestCheckAchievementsGuest(t *testing.T) {
	db := openTestDB(t)
	if got := CheckAchievements(db, 0, RunResult{Score: 500, Kills: 50}); got != nil {
		t.Error("guests earn no achievements")
	}
	if got := CheckAchievements(nil, 1, RunResult{Score: 500}); got != nil {
		t.Error("no database means no achievements")
	}
}
