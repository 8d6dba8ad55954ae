package main

// Sparks is the player's ability queue: one token per hostile kind killed,
// spent front to back on attack input. An empty queue means the punch.
type Sparks struct {
	tokens []HostileKind
}

// Push appends a token at the back
func (s *Sparks) Push(k HostileKind) {
	s.tokens = append(s.tokens, k)
}

// Pop removes and returns the front token
func (s *Sparks) Pop() (HostileKind, bool) {
	if len(s.tokens) == 0 {
		return 0, false
	}
	k := s.tokens[0]
	s.tokens = s.tokens[1:]
	return k, true
}

// Peek returns the front token without removing it
func (s *Sparks) Peek() (HostileKind, bool) {
	if len(s.tokens) == 0 {
		return 0, false
	}
	return s.tokens[0], true
}

// Len returns the number of queued tokens
func (s *Sparks) Len() int {
	return len(s.tokens)
}

// Tokens returns a copy of the queue in spend order
func (s *Sparks) Tokens() []HostileKind {
	out := make([]HostileKind, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Clear empties the queue
func (s *Sparks) Clear() {
	s.tokens = nil
}
