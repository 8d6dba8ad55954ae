package main

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrTooManySessions = errors.New("too many active sessions")
	ErrSessionNotFound = errors.New("session not found")
)

// Session is one running arena, reachable by its id for controller pairing
type Session struct {
	ID        string
	Game      *Game
	CreatedAt time.Time
}

// SessionManager handles creation and lookup of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      Config
	db       *DB
	stat     *Analytics
}

// NewSessionManager creates a new SessionManager. db and stat may be nil.
func NewSessionManager(cfg Config, db *DB, stat *Analytics) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		db:       db,
		stat:     stat,
	}
}

// CreateSession creates a session and starts its game loop
func (sm *SessionManager) CreateSession() (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= sm.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	id := GenerateUUID()
	sess := &Session{
		ID:        id,
		Game:      NewGame(id, sm.cfg, sm.db, sm.stat, time.Now().UnixNano()),
		CreatedAt: time.Now(),
	}
	sm.sessions[id] = sess
	if sm.stat != nil {
		sm.stat.SetActiveSessions(len(sm.sessions))
	}
	go sess.Game.Run()
	return sess, nil
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sess, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// RemoveSession stops and forgets a session
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[id]
	delete(sm.sessions, id)
	n := len(sm.sessions)
	sm.mu.Unlock()
	if !ok {
		return
	}
	sess.Game.Stop()
	if sm.stat != nil {
		sm.stat.SetActiveSessions(n)
	}
}

// Count returns the number of running sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// StopAll stops every session, used on shutdown
func (sm *SessionManager) StopAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, sess := range sm.sessions {
		sess.Game.Stop()
		delete(sm.sessions, id)
	}
}
