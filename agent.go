package main

// Team separates the two sides of every collision test
type Team int

const (
	TeamFriendly Team = 0
	TeamHostile  Team = 1
)

func (t Team) String() string {
	if t == TeamHostile {
		return "hostile"
	}
	return "friendly"
}

// Role tells which phase owns an agent's movement
type Role int

const (
	RolePlayer     Role = 0
	RoleHostile    Role = 1
	RoleProjectile Role = 2
)

// HitSource records what dealt the last damage to a hostile
type HitSource int

const (
	HitNone       HitSource = 0
	HitMelee      HitSource = 1
	HitProjectile HitSource = 2
)

// Behaviour holds the steering parameters of a hostile
type Behaviour struct {
	Homing     float64
	Separating float64
}

// Agent is any simulated actor: the player, a hostile or a projectile
type Agent struct {
	ID     uint64
	Role   Role
	Team   Team
	Kind   HostileKind // hostiles only
	Parent uint64      // 0 = not attached
	Owner  uint64      // projectiles: id of the shooter

	Pos    Vec2
	Facing Vec2 // unit
	Radius float64
	Speed  float64 // player move speed or projectile velocity

	HP        int
	MaxHP     int
	HasHealth bool

	Behaviour Behaviour
	Attack    Cooldown
	Life      float64 // projectile seconds left, <= 0 means no limit

	removed bool
	damaged bool      // health decreased during the current tick
	lastHit HitSource // source of the most recent decrease
}

// Removed reports whether the agent is waiting for the sweep phase
func (a *Agent) Removed() bool {
	return a.removed
}

// Interactable reports whether the agent can still be hit this tick.
// Marked agents stay queryable but are no longer interactable. A hostile at
// zero health stays interactable until the health pipeline marks it.
func (a *Agent) Interactable() bool {
	return !a.removed
}

// Alive reports whether the agent can still act: not marked and, for
// agents with health, above zero
func (a *Agent) Alive() bool {
	if a.removed {
		return false
	}
	return !a.HasHealth || a.HP > 0
}
