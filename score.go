package main

// Scoreboard holds the run score and the best score seen by this session
type Scoreboard struct {
	Score int
	High  int
}

// Add raises the score by n and moves the high-water mark along
func (s *Scoreboard) Add(n int) {
	if n <= 0 {
		return
	}
	s.Score += n
	if s.Score > s.High {
		s.High = s.Score
	}
}

// Reset starts a new run; the high score is kept
func (s *Scoreboard) Reset() {
	s.Score = 0
}

// SeedHigh raises the high score to at least v (e.g. a stored best run)
func (s *Scoreboard) SeedHigh(v int) {
	if v > s.High {
		s.High = v
	}
}
