package main

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDBPlayers(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreatePlayer("pilot", "hash")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreatePlayer("pilot", "other"); err == nil {
		t.Error("duplicate username should fail")
	}

	p, err := db.GetPlayerByUsername("pilot")
	if err != nil || p == nil || p.ID != id || p.PassHash != "hash" {
		t.Fatalf("lookup by name failed: %+v %v", p, err)
	}
	p, err = db.GetPlayerByID(id)
	if err != nil || p == nil || p.Username != "pilot" {
		t.Fatalf("lookup by id failed: %+v %v", p, err)
	}
	if p, err := db.GetPlayerByUsername("nobody"); p != nil || err != nil {
		t.Errorf("missing player should be nil, nil; got %+v %v", p, err)
	}

	exists, err := db.UsernameExists("pilot")
	if err != nil || !exists {
		t.Error("pilot should exist")
	}
}

func TestDBRunsAndTotals(t *testing.T) {
	db := openTestDB(t)
	pid, _ := db.CreatePlayer("pilot", "hash")

	runs := []RunResult{
		{PlayerID: pid, Name: "pilot", Score: 10, Kills: 4, Duration: 30},
		{PlayerID: pid, Name: "pilot", Score: 25, Kills: 9, Duration: 45.5},
		{Name: "Guest", Score: 99, Kills: 20, Duration: 80},
	}
	for _, r := range runs {
		if _, err := db.RecordRun(r); err != nil {
			t.Fatal(err)
		}
	}

	best, err := db.BestScore(pid)
	if err != nil || best != 25 {
		t.Errorf("expected best 25, got %d (%v)", best, err)
	}
	totals, err := db.GetTotals(pid)
	if err != nil {
		t.Fatal(err)
	}
	if totals.Runs != 2 || totals.Kills != 13 || totals.Best != 25 || totals.Playtime != 75.5 {
		t.Errorf("unexpected totals %+v", totals)
	}

	if best, _ := db.BestScore(pid + 100); best != 0 {
		t.Error("unknown account should have best 0")
	}
}

func TestDBLeaderboard(t *testing.T) {
	db := openTestDB(t)
	a, _ := db.CreatePlayer("alice", "x")
	b, _ := db.CreatePlayer("bob", "x")

	now := time.Now()
	for _, r := range []RunResult{
		{PlayerID: a, Name: "alice", Score: 30, EndedAt: now},
		{PlayerID: a, Name: "alice", Score: 50, EndedAt: now},
		{PlayerID: b, Name: "bob", Score: 40, EndedAt: now},
		{Name: "Guest", Score: 45, EndedAt: now},
		{Name: "Guest", Score: 10, EndedAt: now},
	} {
		if _, err := db.RecordRun(r); err != nil {
			t.Fatal(err)
		}
	}

	board, err := db.GetLeaderboard(10)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		name  string
		score int
	}{{"alice", 50}, {"Guest", 45}, {"bob", 40}, {"Guest", 10}}
	if len(board) != len(want) {
		t.Fatalf("expected %d rows, got %+v", len(want), board)
	}
	for i, w := range want {
		if board[i].Name != w.name || board[i].Score != w.score || board[i].Rank != i+1 {
			t.Errorf("row %d: expected %s %d, got %+v", i, w.name, w.score, board[i])
		}
	}

	top, _ := db.GetLeaderboard(2)
	if len(top) != 2 {
		t.Errorf("limit not applied, got %d rows", len(top))
	}
}

func TestDBSettings(t *testing.T) {
	db := openTestDB(t)
	if v := db.GetSetting("missing"); v != "" {
		t.Errorf("expected empty, got %q", v)
	}
	db.SetSetting("k", "one")
	db.SetSetting("k", "two")
	if v := db.GetSetting("k"); v != "two" {
		t.Errorf("expected upsert, got %q", v)
	}
}

func TestDBAchievements(t *testing.T) {
	db := openTestDB(t)
	pid, _ := db.CreatePlayer("pilot", "x")

	ok, err := db.UnlockAchievement(pid, "first_blood")
	if err != nil || !ok {
		t.Fatalf("first unlock should succeed: %v", err)
	}
	ok, err = db.UnlockAchievement(pid, "first_blood")
	if err != nil || ok {
		t.Error("second unlock should be a no-op")
	}
	ids, err := db.GetAchievements(pid)
	if err != nil || len(ids) != 1 || ids[0] != "first_blood" {
		t.Errorf("unexpected achievements %v %v", ids, err)
	}
}
