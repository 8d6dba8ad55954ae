package main

import "encoding/json"

// Client -> Server message types
const (
	MsgStart       = "start" // create a session and begin a run
	MsgInput       = "input"
	MsgRestart     = "restart"
	MsgLeave       = "leave"
	MsgControl     = "control" // phone controller attach
	MsgRegister    = "register"
	MsgLogin       = "login"
	MsgAuth        = "auth"
	MsgLeaderboard = "leaderboard"
)

// Server -> Client message types
const (
	MsgWelcome   = "welcome"
	MsgState     = "state" // sent as binary msgpack, the type is implied
	MsgHurt      = "hurt"
	MsgKilled    = "killed"
	MsgGameOver  = "gameover"
	MsgError     = "error"
	MsgAuthOK    = "auth_ok"
	MsgBoard     = "leaderboard"
	MsgControlOK = "control_ok" // controller attach confirmed
	MsgCtrlOn    = "ctrl_on"    // notify desktop: controller attached
	MsgCtrlOff   = "ctrl_off"   // notify desktop: controller detached
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; the payload is decoded by its handler
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is sent by the client every frame
type ClientInput struct {
	MX   float64 `json:"mx"` // move intent X
	MY   float64 `json:"my"` // move intent Y
	AX   float64 `json:"ax"` // aim point X (world coords)
	AY   float64 `json:"ay"` // aim point Y (world coords)
	Fire bool    `json:"fire"`
}

// ToInput converts wire input into simulation intent
func (ci ClientInput) ToInput() Input {
	return Input{Move: V(ci.MX, ci.MY), Aim: V(ci.AX, ci.AY), Fire: ci.Fire}
}

// StartMsg is sent when a player wants a new run
type StartMsg struct {
	Name string `json:"name"`
}

// ControlMsg is sent by a phone controller to attach to a session
type ControlMsg struct {
	SID string `json:"sid"`
}

// RegisterMsg creates an account
type RegisterMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginMsg authenticates an existing account
type LoginMsg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthMsg restores a session from a stored token
type AuthMsg struct {
	Token string `json:"token"`
}

// LeaderboardMsg requests the top runs
type LeaderboardMsg struct {
	Limit int `json:"limit"`
}

// WelcomeMsg is sent when a run starts
type WelcomeMsg struct {
	SID  string `json:"sid"`
	High int    `json:"high"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	PlayerID int64  `json:"pid"`
}

// HurtMsg tells the player they lost health
type HurtMsg struct {
	HP int `json:"hp"`
}

// KilledMsg reports a hostile kill and the spark it granted
type KilledMsg struct {
	ID    uint64 `json:"id"`
	Kind  string `json:"kind"`
	Melee bool   `json:"melee,omitempty"`
}

// GameOverMsg ends a run
type GameOverMsg struct {
	Score        int      `json:"score"`
	High         int      `json:"high"`
	Kills        int      `json:"kills"`
	Duration     float64  `json:"duration"`
	NewBest      bool     `json:"best,omitempty"`
	Achievements []string `json:"ach,omitempty"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// AgentState is broadcast per agent
type AgentState struct {
	ID    uint64  `msgpack:"id"`
	Role  int     `msgpack:"ro"`
	Team  int     `msgpack:"tm"`
	Kind  int     `msgpack:"k"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	R     float64 `msgpack:"r"` // facing radians
	Size  float64 `msgpack:"sz"`
	HP    int     `msgpack:"hp,omitempty"`
	MaxHP int     `msgpack:"mhp,omitempty"`
}

// GameState is the full state broadcast
type GameState struct {
	Tick   uint64       `msgpack:"tick"`
	Over   bool         `msgpack:"over"`
	HP     int          `msgpack:"hp"`
	MaxHP  int          `msgpack:"mhp"`
	Score  int          `msgpack:"sc"`
	High   int          `msgpack:"hi"`
	Sparks []string     `msgpack:"sp"`
	Agents []AgentState `msgpack:"ag"`
}

// NewGameState projects a snapshot onto the wire format
func NewGameState(s Snapshot) GameState {
	gs := GameState{
		Tick:   s.Tick,
		Over:   s.Phase == PhaseOver,
		HP:     s.PlayerHP,
		MaxHP:  s.MaxHP,
		Score:  s.Score,
		High:   s.High,
		Sparks: make([]string, len(s.Sparks)),
		Agents: make([]AgentState, 0, len(s.Agents)),
	}
	for i, k := range s.Sparks {
		gs.Sparks[i] = k.String()
	}
	for _, a := range s.Agents {
		gs.Agents = append(gs.Agents, AgentState{
			ID:    a.ID,
			Role:  int(a.Role),
			Team:  int(a.Team),
			Kind:  int(a.Kind),
			X:     round1(a.Pos.X),
			Y:     round1(a.Pos.Y),
			R:     a.Facing.Angle(),
			Size:  a.Radius,
			HP:    a.HP,
			MaxHP: a.MaxHP,
		})
	}
	return gs
}
