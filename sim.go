package main

import "math/rand"

// Input is the player intent for one tick
type Input struct {
	Move Vec2 // movement intent, any length
	Aim  Vec2 // aim point in world coordinates
	Fire bool // attack pressed since the last tick
}

// EventType names a simulation event
type EventType string

const (
	EventPlayerHurt    EventType = "player_hurt"
	EventHostileKilled EventType = "hostile_killed"
	EventGameOver      EventType = "game_over"
)

// Event is emitted by Step for the hosting layer
type Event struct {
	Type    EventType
	AgentID uint64
	Kind    HostileKind // EventHostileKilled only
	Melee   bool        // EventHostileKilled: killing blow was a punch
	HP      int         // EventPlayerHurt: health left
}

// SimConfig holds the tunables of one simulation
type SimConfig struct {
	Player           PlayerDef
	WorldRadius      float64
	RingRadius       float64
	Spawns           []SpawnRule
	SparkOnMeleeKill bool
}

const SpawnRingRadius = 550.0

// DefaultSimConfig returns the stock arena
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Player:           DefaultPlayerDef(),
		WorldRadius:      WorldRadius,
		RingRadius:       SpawnRingRadius,
		Spawns:           DefaultSpawnRules(),
		// The queue starts empty and only sparks fire projectiles, so if
		// punch kills granted nothing no spark could ever be earned.
		SparkOnMeleeKill: true,
	}
}

// RunPhase is the lifecycle state of a simulation
type RunPhase int

const (
	PhasePlaying RunPhase = 0
	PhaseOver    RunPhase = 1
)

func (p RunPhase) String() string {
	if p == PhaseOver {
		return "over"
	}
	return "playing"
}

// Sim is one single-player arena: world, director, score and sparks.
// It is not safe for concurrent use.
type Sim struct {
	World    *World
	Score    Scoreboard
	Sparks   Sparks
	Director *Director
	Stats    RunStats

	cfg   SimConfig
	grid  *SpatialGrid
	hurt  Cooldown
	phase RunPhase
	tick  uint64
}

// NewSim creates a simulation with the player at the origin
func NewSim(cfg SimConfig, rng *rand.Rand) *Sim {
	s := &Sim{
		cfg:      cfg,
		grid:     NewSpatialGrid(cfg.WorldRadius),
		Director: NewDirector(cfg.Spawns, cfg.RingRadius, rng),
	}
	s.Reset()
	return s
}

// Reset starts a fresh run. The high score is kept.
func (s *Sim) Reset() {
	s.World = NewWorld()
	s.World.Spawn(NewPlayer(s.cfg.Player))
	s.Score.Reset()
	s.Sparks.Clear()
	s.Director.Reset()
	s.Stats = RunStats{}
	s.hurt = NewCooldown(s.cfg.Player.HurtCD)
	s.phase = PhasePlaying
	s.tick = 0
}

// Phase returns the current run phase
func (s *Sim) Phase() RunPhase {
	return s.phase
}

// Over reports whether the run has ended
func (s *Sim) Over() bool {
	return s.phase == PhaseOver
}

// Tick returns the number of steps taken in this run
func (s *Sim) Tick() uint64 {
	return s.tick
}

// Config returns the configuration the sim was built with
func (s *Sim) Config() SimConfig {
	return s.cfg
}

// Step advances the simulation by dt seconds. Phases run in a fixed order:
// spawn, steer, attack, collide, evaluate, destroy. Once the run is over
// Step does nothing until Reset.
func (s *Sim) Step(dt float64, in Input) []Event {
	if s.phase == PhaseOver || dt <= 0 {
		return nil
	}
	s.tick++
	s.Stats.Duration += dt

	s.Director.Tick(s.World, s.Score.Score, dt)

	player := s.World.Player()
	MovePlayer(player, in, dt)
	Steer(s.World, dt)
	MoveProjectiles(s.World, dt, s.cfg.WorldRadius)

	s.hurt.Tick(dt)
	atk := TriggerAttacks(s.World, in, &s.Sparks, s.cfg.Player.Reach, dt)
	if atk.SparkSpent {
		s.Stats.SparksUsed++
	}

	hurts := ResolveStrikes(s.World, atk.Strikes)
	hurts += ResolveProjectiles(s.World, s.grid)

	events := s.evaluateHealth(hurts)

	s.World.Sweep()
	return events
}

// evaluateHealth turns this tick's damage into score, kills and player hurt
func (s *Sim) evaluateHealth(hurts int) []Event {
	var events []Event

	scored := 0
	for _, h := range s.World.Hostiles() {
		if !h.damaged {
			continue
		}
		h.damaged = false
		if h.HP > 0 {
			scored++
			continue
		}
		if h.Removed() {
			continue
		}
		s.World.MarkForRemoval(h.ID)
		melee := h.lastHit == HitMelee
		if !melee || s.cfg.SparkOnMeleeKill {
			s.Sparks.Push(h.Kind)
		}
		s.Stats.Kills++
		events = append(events, Event{Type: EventHostileKilled, AgentID: h.ID, Kind: h.Kind, Melee: melee})
	}
	s.Score.Add(scored)

	player := s.World.Player()
	if hurts > 0 && player.HP > 0 && s.hurt.TryTrigger() {
		player.HP--
		events = append(events, Event{Type: EventPlayerHurt, AgentID: player.ID, HP: player.HP})
		if player.HP <= 0 {
			s.phase = PhaseOver
			events = append(events, Event{Type: EventGameOver, AgentID: player.ID})
		}
	}
	return events
}

// AgentView is the read-only projection of one agent
type AgentView struct {
	ID     uint64
	Role   Role
	Team   Team
	Kind   HostileKind
	Pos    Vec2
	Facing Vec2
	Radius float64
	HP     int
	MaxHP  int
}

// Snapshot is everything a renderer needs for one frame
type Snapshot struct {
	Tick     uint64
	Phase    RunPhase
	PlayerHP int
	MaxHP    int
	Score    int
	High     int
	Sparks   []HostileKind
	Agents   []AgentView
}

// Snapshot captures the current state
func (s *Sim) Snapshot() Snapshot {
	player := s.World.Player()
	snap := Snapshot{
		Tick:     s.tick,
		Phase:    s.phase,
		PlayerHP: player.HP,
		MaxHP:    player.MaxHP,
		Score:    s.Score.Score,
		High:     s.Score.High,
		Sparks:   s.Sparks.Tokens(),
		Agents:   make([]AgentView, 0, s.World.Len()),
	}
	for _, a := range s.World.Agents() {
		if a.Removed() {
			continue
		}
		snap.Agents = append(snap.Agents, AgentView{
			ID:     a.ID,
			Role:   a.Role,
			Team:   a.Team,
			Kind:   a.Kind,
			Pos:    a.Pos,
			Facing: a.Facing,
			Radius: a.Radius,
			HP:     a.HP,
			MaxHP:  a.MaxHP,
		})
	}
	return snap
}
