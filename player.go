package main

const (
	PlayerRadius   = 20.0
	PlayerMaxHP    = 3
	PlayerSpeed    = 400.0 // pixels/s
	PlayerAttackCD = 0.2   // seconds between attack inputs
	PlayerHurtCD   = 1.0   // invulnerability window after a hit
	PunchCastDist  = 40.0
)

// PlayerDef holds the tunable player stats
type PlayerDef struct {
	Radius   float64
	MaxHP    int
	Speed    float64
	AttackCD float64
	HurtCD   float64
	Reach    float64
}

// DefaultPlayerDef returns the stock player stats
func DefaultPlayerDef() PlayerDef {
	return PlayerDef{
		Radius:   PlayerRadius,
		MaxHP:    PlayerMaxHP,
		Speed:    PlayerSpeed,
		AttackCD: PlayerAttackCD,
		HurtCD:   PlayerHurtCD,
		Reach:    PunchCastDist,
	}
}

// NewPlayer creates the player agent at the world origin facing up
func NewPlayer(def PlayerDef) *Agent {
	return &Agent{
		Role:      RolePlayer,
		Team:      TeamFriendly,
		Facing:    V(0, 1),
		Radius:    def.Radius,
		Speed:     def.Speed,
		HP:        def.MaxHP,
		MaxHP:     def.MaxHP,
		HasHealth: true,
		Attack:    NewCooldown(def.AttackCD),
	}
}

// MovePlayer applies movement intent and turns the player toward the aim
// point. A zero intent leaves the position untouched; an aim point on top of
// the player keeps the previous facing.
func MovePlayer(p *Agent, in Input, dt float64) {
	if !in.Move.IsZero() {
		p.Pos = p.Pos.Add(in.Move.Normalize().Scale(p.Speed * dt))
	}
	if f := in.Aim.Sub(p.Pos).Normalize(); !f.IsZero() {
		p.Facing = f
	}
}
