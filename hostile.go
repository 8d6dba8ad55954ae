package main

import "fmt"

// HostileKind identifies a hostile archetype
type HostileKind int

const (
	KindBasic    HostileKind = 0
	KindRanged   HostileKind = 1
	KindSpreader HostileKind = 2
)

// AttackStyle is the attack behaviour variant of a kind
type AttackStyle int

const (
	AttackContact AttackStyle = 0 // touch the player
	AttackShoot   AttackStyle = 1 // fire a volley along the facing
)

// Volley describes a ranged attack: Count projectiles fanned Spread radians apart
type Volley struct {
	Count  int
	Spread float64
	Speed  float64
	Radius float64
	Life   float64
}

// HostileDef holds the spawn-time attributes of a kind
type HostileDef struct {
	Name       string
	Radius     float64
	MaxHP      int
	Homing     float64
	Separating float64
	AttackCD   float64
	Attack     AttackStyle
	Shot       Volley // hostile volley when Attack == AttackShoot
	Spark      Volley // player volley when a spark of this kind is spent
}

// HostileDefs is indexed by HostileKind
var HostileDefs = [...]HostileDef{
	// Basic: fast rusher, hurts on touch
	{
		Name: "basic", Radius: 15, MaxHP: 1,
		Homing: 75, Separating: 75,
		AttackCD: 0, Attack: AttackContact,
		Spark: Volley{Count: 1, Speed: 800, Radius: 2, Life: 2},
	},
	// Ranged: keeps drifting in and shoots single bolts
	{
		Name: "ranged", Radius: 20, MaxHP: 2,
		Homing: 60, Separating: 150,
		AttackCD: 1.0, Attack: AttackShoot,
		Shot:  Volley{Count: 1, Speed: 150, Radius: 10, Life: 8},
		Spark: Volley{Count: 3, Spread: 0.15, Speed: 800, Radius: 2, Life: 2},
	},
	// Spreader: slow and tough, fires a fan
	{
		Name: "spreader", Radius: 25, MaxHP: 4,
		Homing: 45, Separating: 150,
		AttackCD: 2.5, Attack: AttackShoot,
		Shot:  Volley{Count: 5, Spread: 0.25, Speed: 130, Radius: 8, Life: 9},
		Spark: Volley{Count: 7, Spread: 0.12, Speed: 800, Radius: 2, Life: 2},
	},
}

// HostileKinds lists every kind in table order
func HostileKinds() []HostileKind {
	kinds := make([]HostileKind, len(HostileDefs))
	for i := range HostileDefs {
		kinds[i] = HostileKind(i)
	}
	return kinds
}

// Def returns the definition for a kind, falling back to basic
func (k HostileKind) Def() HostileDef {
	if k < 0 || int(k) >= len(HostileDefs) {
		return HostileDefs[KindBasic]
	}
	return HostileDefs[k]
}

func (k HostileKind) String() string {
	if k < 0 || int(k) >= len(HostileDefs) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return HostileDefs[k].Name
}

// ParseHostileKind maps a kind name back to its value
func ParseHostileKind(name string) (HostileKind, error) {
	for i, d := range HostileDefs {
		if d.Name == name {
			return HostileKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hostile kind %q", name)
}

// NewHostile builds a hostile of the given kind at pos. Its attack timer
// starts a full period away so it cannot fire on its first tick.
func NewHostile(kind HostileKind, pos Vec2) *Agent {
	def := kind.Def()
	cd := NewCooldown(def.AttackCD)
	cd.Trigger()
	return &Agent{
		Role:      RoleHostile,
		Team:      TeamHostile,
		Kind:      kind,
		Pos:       pos,
		Facing:    pos.Scale(-1).Normalize(),
		Radius:    def.Radius,
		HP:        def.MaxHP,
		MaxHP:     def.MaxHP,
		HasHealth: true,
		Behaviour: Behaviour{Homing: def.Homing, Separating: def.Separating},
		Attack:    cd,
	}
}
