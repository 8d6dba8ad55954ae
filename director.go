package main

import (
	"math"
	"math/rand"
)

// SpawnMode picks how a kind's spawns are scheduled
type SpawnMode int

const (
	SpawnRate   SpawnMode = 0 // Bernoulli trial with probability rate*dt every tick
	SpawnPeriod SpawnMode = 1 // fixed cadence, fires whenever elapsed >= period
)

// SpawnRule configures the director for one hostile kind
type SpawnRule struct {
	Kind     HostileKind
	Mode     SpawnMode
	Rate     float64 // spawns/s at score 0 (SpawnRate)
	PerPoint float64 // extra spawns/s per score point (SpawnRate)
	MaxRate  float64 // cap on the scaled rate, 0 = uncapped (SpawnRate)
	Period   float64 // seconds between spawns (SpawnPeriod)
	MinScore int     // kind stays out until the score reaches this
}

// DefaultSpawnRules returns the stock difficulty ramp
func DefaultSpawnRules() []SpawnRule {
	return []SpawnRule{
		{Kind: KindBasic, Mode: SpawnRate, Rate: 0.6, PerPoint: 0.02, MaxRate: 3},
		{Kind: KindRanged, Mode: SpawnRate, Rate: 0.15, PerPoint: 0.01, MaxRate: 1.2, MinScore: 5},
		{Kind: KindSpreader, Mode: SpawnPeriod, Period: 12, MinScore: 15},
	}
}

// RateAt returns the spawn rate for a rule at the given score. It never
// decreases as the score grows.
func (r SpawnRule) RateAt(score int) float64 {
	rate := r.Rate + r.PerPoint*float64(score)
	if r.MaxRate > 0 && rate > r.MaxRate {
		rate = r.MaxRate
	}
	if rate < 0 {
		return 0
	}
	return rate
}

// Director decides when and where hostiles enter the world
type Director struct {
	rules      []SpawnRule
	elapsed    []float64 // per rule, SpawnPeriod only
	ringRadius float64
	rng        *rand.Rand
}

// NewDirector creates a director that places spawns on a ring of the given
// radius around the player
func NewDirector(rules []SpawnRule, ringRadius float64, rng *rand.Rand) *Director {
	return &Director{
		rules:      rules,
		elapsed:    make([]float64, len(rules)),
		ringRadius: ringRadius,
		rng:        rng,
	}
}

// RingPosition returns the point on the spawn ring at angle a
func RingPosition(radius, a float64) Vec2 {
	return FromAngle(a).Scale(radius)
}

// Reset clears the period timers
func (d *Director) Reset() {
	for i := range d.elapsed {
		d.elapsed[i] = 0
	}
}

// Tick runs every rule once for dt seconds and spawns the resulting
// hostiles into w. Rules are independent; several kinds may spawn in the
// same tick.
func (d *Director) Tick(w *World, score int, dt float64) []*Agent {
	var spawned []*Agent
	for i, r := range d.rules {
		if score < r.MinScore {
			continue
		}
		fire := false
		switch r.Mode {
		case SpawnRate:
			p := r.RateAt(score) * dt
			fire = p > 0 && d.rng.Float64() < p
		case SpawnPeriod:
			if r.Period <= 0 {
				continue
			}
			d.elapsed[i] += dt
			if d.elapsed[i] >= r.Period {
				d.elapsed[i] -= r.Period
				if d.elapsed[i] > r.Period {
					d.elapsed[i] = 0
				}
				fire = true
			}
		}
		if !fire {
			continue
		}
		pos := w.Player().Pos.Add(RingPosition(d.ringRadius, d.rng.Float64()*2*math.Pi))
		spawned = append(spawned, w.Spawn(NewHostile(r.Kind, pos)))
	}
	return spawned
}
