package main

import (
	"math"
	"testing"
)

func TestNewProjectile(t *testing.T) {
	v := HostileDefs[KindRanged].Shot
	p := NewProjectile(V(10, 20), V(0, 5), TeamHostile, 7, v)
	if p.Role != RoleProjectile || p.Team != TeamHostile || p.Owner != 7 {
		t.Errorf("unexpected projectile identity %+v", p)
	}
	if p.Facing != V(0, 1) {
		t.Errorf("direction should be normalized, got %v", p.Facing)
	}
	if p.Radius != v.Radius || p.Speed != v.Speed || p.Life != v.Life {
		t.Error("projectile should take its stats from the volley")
	}
	if p.HasHealth {
		t.Error("projectiles have no health")
	}
}

func TestFanDirections(t *testing.T) {
	if FanDirections(V(1, 0), 0, 0.1) != nil {
		t.Error("zero count should give no directions")
	}

	one := FanDirections(V(2, 0), 1, 0.5)
	if len(one) != 1 || !near(one[0].X, 1) || !near(one[0].Y, 0) {
		t.Errorf("single shot should go straight along base, got %v", one)
	}

	fan := FanDirections(V(1, 0), 3, 0.15)
	if len(fan) != 3 {
		t.Fatalf("expected 3 directions, got %d", len(fan))
	}
	if !near(fan[0].Angle(), -0.15) || !near(fan[1].Angle(), 0) || !near(fan[2].Angle(), 0.15) {
		t.Errorf("unexpected fan angles %f %f %f", fan[0].Angle(), fan[1].Angle(), fan[2].Angle())
	}

	even := FanDirections(V(0, 1), 2, 0.2)
	if !near(even[0].Angle()-math.Pi/2, -0.1) || !near(even[1].Angle()-math.Pi/2, 0.1) {
		t.Error("even fan should straddle the base direction")
	}
}

func TestMoveProjectiles(t *testing.T) {
	w, _ := newTestWorld()
	p := w.Spawn(NewProjectile(V(0, 0), V(1, 0), TeamFriendly, 1, Volley{Count: 1, Speed: 600, Radius: 2}))

	MoveProjectiles(w, 0.5, WorldRadius)
	if !near(p.Pos.X, 300) || p.Removed() {
		t.Errorf("expected projectile at x=300, got %v (removed=%v)", p.Pos, p.Removed())
	}
}

func TestMoveProjectilesLifetime(t *testing.T) {
	w, _ := newTestWorld()
	p := w.Spawn(NewProjectile(V(0, 0), V(1, 0), TeamFriendly, 1, Volley{Count: 1, Speed: 10, Radius: 2, Life: 1}))

	MoveProjectiles(w, 0.6, WorldRadius)
	if p.Removed() {
		t.Fatal("projectile expired early")
	}
	MoveProjectiles(w, 0.6, WorldRadius)
	if !p.Removed() {
		t.Error("projectile should expire after its lifetime")
	}
}

func TestMoveProjectilesLeavesWorld(t *testing.T) {
	w, _ := newTestWorld()
	p := w.Spawn(NewProjectile(V(1190, 0), V(1, 0), TeamHostile, 1, Volley{Count: 1, Speed: 600, Radius: 2}))

	MoveProjectiles(w, dt, WorldRadius)
	if !p.Removed() {
		t.Error("projectile past the world radius should be marked")
	}
	if n := w.Sweep(); n != 1 {
		t.Errorf("expected 1 swept, got %d", n)
	}
}

func TestMoveProjectilesBoundFollowsPlayer(t *testing.T) {
	w, player := newTestWorld()
	player.Pos = V(3000, 0)
	inRange := w.Spawn(NewProjectile(V(3100, 0), V(1, 0), TeamFriendly, player.ID, Volley{Count: 1, Speed: 600, Radius: 2}))
	stray := w.Spawn(NewProjectile(V(0, 0), V(-1, 0), TeamHostile, 1, Volley{Count: 1, Speed: 600, Radius: 2}))

	MoveProjectiles(w, dt, WorldRadius)
	if inRange.Removed() {
		t.Error("projectile close to the player should survive regardless of the origin")
	}
	if !stray.Removed() {
		t.Error("projectile beyond the radius around the player should be marked")
	}
}
