package main

import (
	"math"
	"math/rand"
	"testing"
)

func TestDirectorZeroRateNeverSpawns(t *testing.T) {
	w, _ := newTestWorld()
	d := NewDirector([]SpawnRule{{Kind: KindBasic, Mode: SpawnRate}}, 500, rand.New(rand.NewSource(1)))

	for i := 0; i < 6000; i++ {
		if got := d.Tick(w, 0, dt); len(got) != 0 {
			t.Fatalf("rate 0 spawned at tick %d", i)
		}
	}
	if len(w.Hostiles()) != 0 {
		t.Error("world should hold no hostiles")
	}
}

func TestDirectorPeriodCadence(t *testing.T) {
	w, _ := newTestWorld()
	d := NewDirector([]SpawnRule{{Kind: KindSpreader, Mode: SpawnPeriod, Period: 1}}, 500, rand.New(rand.NewSource(1)))

	spawned := 0
	for i := 0; i < 16; i++ {
		spawned += len(d.Tick(w, 0, 0.25))
	}
	if spawned != 4 {
		t.Errorf("expected 4 spawns in 4s at period 1s, got %d", spawned)
	}
	for _, h := range w.Hostiles() {
		if h.Kind != KindSpreader {
			t.Errorf("expected spreader, got %s", h.Kind)
		}
	}
}

func TestDirectorRingPlacement(t *testing.T) {
	w, _ := newTestWorld()
	d := NewDirector([]SpawnRule{{Kind: KindBasic, Mode: SpawnPeriod, Period: 0.1}}, 550, rand.New(rand.NewSource(7)))

	for i := 0; i < 20; i++ {
		d.Tick(w, 0, 0.1)
	}
	if len(w.Hostiles()) == 0 {
		t.Fatal("expected spawns")
	}
	for _, h := range w.Hostiles() {
		if math.Abs(h.Pos.Len()-550) > 1e-6 {
			t.Errorf("spawn at %v is off the ring", h.Pos)
		}
	}
}

func TestDirectorMinScoreGate(t *testing.T) {
	w, _ := newTestWorld()
	d := NewDirector([]SpawnRule{{Kind: KindRanged, Mode: SpawnPeriod, Period: 0.5, MinScore: 5}}, 500, rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		d.Tick(w, 4, 0.5)
	}
	if len(w.Hostiles()) != 0 {
		t.Fatal("kind should stay out below its minimum score")
	}
	d.Tick(w, 5, 0.5)
	if len(w.Hostiles()) != 1 {
		t.Error("kind should spawn once the score reaches its minimum")
	}
}

func TestDirectorRateSpawns(t *testing.T) {
	w, _ := newTestWorld()
	d := NewDirector([]SpawnRule{{Kind: KindBasic, Mode: SpawnRate, Rate: 2}}, 500, rand.New(rand.NewSource(42)))

	spawned := 0
	for i := 0; i < 60*60; i++ { // one simulated minute
		spawned += len(d.Tick(w, 0, dt))
	}
	// Expected 120; allow generous slack for the Bernoulli trials
	if spawned < 80 || spawned > 160 {
		t.Errorf("expected about 120 spawns, got %d", spawned)
	}
}

func TestDirectorDeterministicWithSeed(t *testing.T) {
	run := func() []Vec2 {
		w, _ := newTestWorld()
		d := NewDirector(DefaultSpawnRules(), 550, rand.New(rand.NewSource(99)))
		for i := 0; i < 600; i++ {
			d.Tick(w, 20, dt)
		}
		var out []Vec2
		for _, h := range w.Hostiles() {
			out = append(out, h.Pos)
		}
		return out
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("same seed gave %d vs %d spawns", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("spawn %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSpawnRuleRateAt(t *testing.T) {
	r := SpawnRule{Rate: 0.6, PerPoint: 0.02, MaxRate: 3}
	prev := -1.0
	for score := 0; score < 500; score += 10 {
		rate := r.RateAt(score)
		if rate < prev {
			t.Fatalf("rate decreased at score %d: %f < %f", score, rate, prev)
		}
		prev = rate
	}
	if r.RateAt(1000) != 3 {
		t.Errorf("rate should cap at 3, got %f", r.RateAt(1000))
	}
	if got := (SpawnRule{Rate: 0.6, PerPoint: 0.02}).RateAt(1000); math.Abs(got-20.6) > 1e-9 {
		t.Errorf("uncapped rate should keep growing, got %f", got)
	}
}

func TestDirectorReset(t *testing.T) {
	w, _ := newTestWorld()
	d := NewDirector([]SpawnRule{{Kind: KindBasic, Mode: SpawnPeriod, Period: 1}}, 500, rand.New(rand.NewSource(1)))
	d.Tick(w, 0, 0.75)
	d.Reset()
	if got := d.Tick(w, 0, 0.5); len(got) != 0 {
		t.Error("reset should clear accumulated period time")
	}
}
