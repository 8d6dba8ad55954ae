package main

import "time"

// RunStats tracks per-run counters that are not part of the score
type RunStats struct {
	Kills      int
	SparksUsed int
	Duration   float64 // simulated seconds
}

// RunResult is the summary of a finished run, persisted for the leaderboard
type RunResult struct {
	PlayerID   int64 // 0 for guests
	Name       string
	Score      int
	Kills      int
	SparksUsed int
	Duration   float64
	EndedAt    time.Time
}

// Result summarizes the current run
func (s *Sim) Result() RunResult {
	return RunResult{
		Score:      s.Score.Score,
		Kills:      s.Stats.Kills,
		SparksUsed: s.Stats.SparksUsed,
		Duration:   s.Stats.Duration,
		EndedAt:    time.Now().UTC(),
	}
}

// NewBest reports whether the result beats a previous best
func (r RunResult) NewBest(prev int) bool {
	return r.Score > prev
}
