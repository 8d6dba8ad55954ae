package main

import "log"

// Achievement definitions
type AchievementDef struct {
	ID          string
	Name        string
	Description string
}

var Achievements = []AchievementDef{
	{"first_blood", "First Blood", "Destroy your first hostile"},
	{"exterminator", "Exterminator", "Destroy 100 hostiles in total"},
	{"centurion", "Centurion", "Destroy 1000 hostiles in total"},
	{"rampage", "Rampage", "Destroy 25 hostiles in a single run"},
	{"pacifist", "Pacifist", "Survive 60 seconds without destroying anything"},
	{"spark_hoarder", "Spark Hoarder", "Finish a run without spending a spark after 10 kills"},
	{"scorer", "Scorer", "Reach a score of 50 in one run"},
	{"high_roller", "High Roller", "Reach a score of 200 in one run"},
	{"regular", "Regular", "Finish 25 runs"},
	{"survivor", "Survivor", "Play for 1 hour total"},
}

// CheckAchievements unlocks every achievement the finished run (or the
// account's lifetime totals after it) qualifies for. Returns the newly
// unlocked ones. The run must already be recorded.
func CheckAchievements(db *DB, playerID int64, run RunResult) []AchievementDef {
	if db == nil || playerID == 0 {
		return nil
	}

	totals, err := db.GetTotals(playerID)
	if err != nil {
		log.Printf("achievements: totals for %d: %v", playerID, err)
		return nil
	}

	existing, err := db.GetAchievements(playerID)
	if err != nil {
		log.Printf("achievements: list for %d: %v", playerID, err)
		return nil
	}
	has := make(map[string]bool, len(existing))
	for _, a := range existing {
		has[a] = true
	}

	var unlocked []AchievementDef

	check := func(id string) bool {
		if has[id] {
			return false
		}
		switch id {
		case "first_blood":
			return totals.Kills >= 1
		case "exterminator":
			return totals.Kills >= 100
		case "centurion":
			return totals.Kills >= 1000
		case "rampage":
			return run.Kills >= 25
		case "pacifist":
			return run.Kills == 0 && run.Duration >= 60
		case "spark_hoarder":
			return run.Kills >= 10 && run.SparksUsed == 0
		case "scorer":
			return run.Score >= 50
		case "high_roller":
			return run.Score >= 200
		case "regular":
			return totals.Runs >= 25
		case "survivor":
			return totals.Playtime >= 3600
		}
		return false
	}

	for _, def := range Achievements {
		if check(def.ID) {
			if newlyUnlocked, err := db.UnlockAchievement(playerID, def.ID); err == nil && newlyUnlocked {
				unlocked = append(unlocked, def)
			}
		}
	}

	return unlocked
}
