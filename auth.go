package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "sparks"
	tokenLifetime = 7 * 24 * time.Hour
	secretSetting = "jwt_secret"
	secretBytes   = 32

	bcryptCost     = 12
	minPasswordLen = 4
	minNameLen     = 2
	maxNameLen     = 16

	// GuestName labels runs recorded without an account
	GuestName = "Guest"

	loginWindow      = time.Minute
	maxLoginAttempts = 10
)

var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrBadName        = errors.New("invalid username")
	ErrWeakPassword   = errors.New("password too short")
	ErrRateLimited    = errors.New("too many login attempts, try again later")
	ErrInvalidToken   = errors.New("invalid token")
)

// Pilot is a signed-in account as seen by the game
type Pilot struct {
	ID   int64
	Name string
}

// pilotClaims is the token payload. The subject is the account ID.
type pilotClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Auth manages accounts and session tokens
type Auth struct {
	db     *DB
	secret []byte
	cost   int
	logins *attemptLimiter
}

func NewAuth(db *DB) *Auth {
	return &Auth{
		db:     db,
		secret: signingSecret(db),
		cost:   bcryptCost,
		logins: newAttemptLimiter(loginWindow, maxLoginAttempts),
	}
}

// signingSecret returns the persisted HMAC key, creating it on first use so
// tokens outlive a restart.
func signingSecret(db *DB) []byte {
	if db != nil {
		if b, err := hex.DecodeString(db.GetSetting(secretSetting)); err == nil && len(b) == secretBytes {
			return b
		}
	}
	secret := make([]byte, secretBytes)
	if _, err := rand.Read(secret); err != nil {
		panic("auth: no entropy for signing secret: " + err.Error())
	}
	if db != nil {
		if err := db.SetSetting(secretSetting, hex.EncodeToString(secret)); err != nil {
			log.Printf("auth: secret not persisted, tokens will not survive a restart: %v", err)
		}
	}
	return secret
}

// validPilotName checks a trimmed name. Names show on the leaderboard next
// to guest runs, so the guest label is reserved.
func validPilotName(name string) error {
	if n := len([]rune(name)); n < minNameLen || n > maxNameLen {
		return fmt.Errorf("%w: must be %d-%d characters", ErrBadName, minNameLen, maxNameLen)
	}
	if strings.EqualFold(name, GuestName) {
		return fmt.Errorf("%w: %q is reserved", ErrBadName, GuestName)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return fmt.Errorf("%w: letters, digits, _ and - only", ErrBadName)
		}
	}
	return nil
}

// Register creates an account and signs it in
func (a *Auth) Register(name, password string) (Pilot, string, error) {
	name = strings.TrimSpace(name)
	if err := validPilotName(name); err != nil {
		return Pilot{}, "", err
	}
	if len(password) < minPasswordLen {
		return Pilot{}, "", fmt.Errorf("%w: need at least %d characters", ErrWeakPassword, minPasswordLen)
	}

	taken, err := a.db.UsernameExists(name)
	if err != nil {
		log.Printf("auth: name lookup: %v", err)
		return Pilot{}, "", errors.New("database error")
	}
	if taken {
		return Pilot{}, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return Pilot{}, "", errors.New("internal error")
	}
	id, err := a.db.CreatePlayer(name, string(hash))
	if err != nil {
		// lost a race with another register of the same name
		log.Printf("auth: create %q: %v", name, err)
		return Pilot{}, "", ErrUsernameTaken
	}

	p := Pilot{ID: id, Name: name}
	token, err := a.issue(p)
	return p, token, err
}

// Login checks a password and returns a fresh token. Attempts are limited
// per remote address.
func (a *Auth) Login(name, password, addr string) (Pilot, string, error) {
	if !a.logins.allow(addr) {
		return Pilot{}, "", ErrRateLimited
	}

	row, err := a.db.GetPlayerByUsername(strings.TrimSpace(name))
	if err != nil {
		log.Printf("auth: player lookup: %v", err)
		return Pilot{}, "", errors.New("database error")
	}
	if row == nil || row.PassHash == "" {
		return Pilot{}, "", ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(row.PassHash), []byte(password)) != nil {
		return Pilot{}, "", ErrBadCredentials
	}

	p := Pilot{ID: row.ID, Name: row.Username}
	token, err := a.issue(p)
	return p, token, err
}

// ValidateToken resolves a token to its account. A token whose account no
// longer exists is rejected.
func (a *Auth) ValidateToken(token string) (Pilot, error) {
	var claims pilotClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Pilot{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Pilot{}, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	if a.db == nil {
		return Pilot{ID: id, Name: claims.Name}, nil
	}
	row, err := a.db.GetPlayerByID(id)
	if err != nil {
		log.Printf("auth: player lookup: %v", err)
		return Pilot{}, errors.New("database error")
	}
	if row == nil {
		return Pilot{}, fmt.Errorf("%w: account %d is gone", ErrInvalidToken, id)
	}
	return Pilot{ID: row.ID, Name: row.Username}, nil
}

func (a *Auth) issue(p Pilot) (string, error) {
	now := time.Now()
	claims := pilotClaims{
		Name: p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(p.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// attemptLimiter allows max attempts per key in each fixed window
type attemptLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	now    func() time.Time
	keys   map[string]*attemptWindow
}

type attemptWindow struct {
	count int
	ends  time.Time
}

func newAttemptLimiter(window time.Duration, limit int) *attemptLimiter {
	return &attemptLimiter{
		window: window,
		max:    limit,
		now:    time.Now,
		keys:   make(map[string]*attemptWindow),
	}
}

func (l *attemptLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.keys[key]
	if !ok || !now.Before(w.ends) {
		l.prune(now)
		l.keys[key] = &attemptWindow{count: 1, ends: now.Add(l.window)}
		return true
	}
	w.count++
	return w.count <= l.max
}

// prune drops expired windows
func (l *attemptLimiter) prune(now time.Time) {
	for k, w := range l.keys {
		if !now.Before(w.ends) {
			delete(l.keys, k)
		}
	}
}
