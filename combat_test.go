package main

import "testing"

func TestApplyDamageSaturates(t *testing.T) {
	h := NewHostile(KindRanged, V(0, 0))
	if !ApplyDamage(h, HitProjectile) {
		t.Error("first hit should decrease health")
	}
	if !ApplyDamage(h, HitMelee) {
		t.Error("second hit should decrease health")
	}
	if h.HP != 0 {
		t.Fatalf("expected 0 HP, got %d", h.HP)
	}
	if ApplyDamage(h, HitMelee) {
		t.Error("hit at zero health should not register")
	}
	if h.HP != 0 {
		t.Errorf("health went below zero: %d", h.HP)
	}
	if !h.damaged || h.lastHit != HitMelee {
		t.Error("damage flag and source should reflect the last real hit")
	}
}

func TestResolveProjectileHitsHostile(t *testing.T) {
	w, p := newTestWorld()
	p.Pos = V(0, 500)
	h := NewHostile(KindRanged, V(15, 0))
	h.Radius = 10
	h = w.Spawn(h)
	proj := w.Spawn(NewProjectile(V(0, 0), V(1, 0), TeamFriendly, p.ID, Volley{Count: 1, Radius: 10}))

	hurts := ResolveProjectiles(w, NewSpatialGrid(WorldRadius))

	if hurts != 0 {
		t.Errorf("expected no player hurt, got %d", hurts)
	}
	if h.HP != h.MaxHP-1 {
		t.Errorf("expected HP %d, got %d", h.MaxHP-1, h.HP)
	}
	if !proj.Removed() {
		t.Error("projectile should be consumed by the hit")
	}
}

func TestResolveProjectileIgnoresSameTeam(t *testing.T) {
	w, p := newTestWorld()
	proj := w.Spawn(NewProjectile(p.Pos, V(1, 0), TeamFriendly, p.ID, Volley{Count: 1, Radius: 5}))

	if hurts := ResolveProjectiles(w, NewSpatialGrid(WorldRadius)); hurts != 0 {
		t.Errorf("friendly projectile hurt the player %d times", hurts)
	}
	if proj.Removed() {
		t.Error("projectile should pass through its own team")
	}
}

func TestResolveProjectileHurtsPlayer(t *testing.T) {
	w, p := newTestWorld()
	shooter := w.Spawn(NewHostile(KindRanged, V(300, 0)))
	proj := w.Spawn(NewProjectile(V(5, 0), V(-1, 0), TeamHostile, shooter.ID, HostileDefs[KindRanged].Shot))

	if hurts := ResolveProjectiles(w, NewSpatialGrid(WorldRadius)); hurts != 1 {
		t.Errorf("expected 1 hurt signal, got %d", hurts)
	}
	if p.HP != p.MaxHP {
		t.Error("collision resolution must not touch player health directly")
	}
	if !proj.Removed() {
		t.Error("projectile should be consumed")
	}
}

func TestResolveProjectileEarliestTarget(t *testing.T) {
	w, p := newTestWorld()
	p.Pos = V(0, 500)
	first := w.Spawn(NewHostile(KindBasic, V(8, 0)))
	second := w.Spawn(NewHostile(KindBasic, V(-8, 0)))
	w.Spawn(NewProjectile(V(0, 0), V(1, 0), TeamFriendly, p.ID, Volley{Count: 1, Radius: 2}))

	ResolveProjectiles(w, NewSpatialGrid(WorldRadius))

	if first.HP != 0 {
		t.Error("earliest spawned overlapping target should take the hit")
	}
	if second.HP != second.MaxHP {
		t.Error("a projectile hits at most one target")
	}
}

func TestResolveProjectileDeadTargetStillBlocks(t *testing.T) {
	w, p := newTestWorld()
	p.Pos = V(0, 500)
	h := w.Spawn(NewHostile(KindBasic, V(0, 0)))
	a := w.Spawn(NewProjectile(V(0, 0), V(1, 0), TeamFriendly, p.ID, Volley{Count: 1, Radius: 2}))
	b := w.Spawn(NewProjectile(V(0, 0), V(1, 0), TeamFriendly, p.ID, Volley{Count: 1, Radius: 2}))

	ResolveProjectiles(w, NewSpatialGrid(WorldRadius))

	if h.HP != 0 {
		t.Errorf("expected 0 HP, got %d", h.HP)
	}
	if !a.Removed() || !b.Removed() {
		t.Error("both projectiles should be consumed in the same tick")
	}
}

func TestResolveStrikesPunch(t *testing.T) {
	w, p := newTestWorld()
	p.Facing = V(1, 0)
	near := w.Spawn(NewHostile(KindBasic, V(30, 0)))
	edge := w.Spawn(NewHostile(KindRanged, V(60, 0))) // r20 touches the far cap at 40
	far := w.Spawn(NewHostile(KindBasic, V(100, 0)))
	behind := w.Spawn(NewHostile(KindBasic, V(-60, 0)))

	hurts := ResolveStrikes(w, []Strike{{Attacker: p.ID, Kind: StrikePunch, Reach: PunchCastDist}})

	if hurts != 0 {
		t.Errorf("punch should not hurt the player, got %d", hurts)
	}
	if near.HP != 0 || edge.HP != edge.MaxHP-1 {
		t.Error("hostiles inside the capsule should be hit")
	}
	if far.HP != far.MaxHP || behind.HP != behind.MaxHP {
		t.Error("hostiles outside the capsule should not be hit")
	}
	if near.lastHit != HitMelee {
		t.Error("punch damage should be recorded as melee")
	}
}

func TestResolveStrikesContact(t *testing.T) {
	w, _ := newTestWorld()
	touching := w.Spawn(NewHostile(KindBasic, V(30, 0)))
	apart := w.Spawn(NewHostile(KindBasic, V(100, 0)))

	hurts := ResolveStrikes(w, []Strike{
		{Attacker: touching.ID, Kind: StrikeContact},
		{Attacker: apart.ID, Kind: StrikeContact},
	})
	if hurts != 1 {
		t.Errorf("expected 1 hurt signal, got %d", hurts)
	}
}

func TestResolveStrikesDropsGoneAttackers(t *testing.T) {
	w, p := newTestWorld()
	dead := w.Spawn(NewHostile(KindBasic, V(10, 0)))
	marked := w.Spawn(NewHostile(KindBasic, V(-10, 0)))
	p.Facing = V(1, 0)
	w.MarkForRemoval(marked.ID)

	hurts := ResolveStrikes(w, []Strike{
		{Attacker: p.ID, Kind: StrikePunch, Reach: PunchCastDist}, // kills dead
		{Attacker: dead.ID, Kind: StrikeContact},
		{Attacker: marked.ID, Kind: StrikeContact},
		{Attacker: 9999, Kind: StrikeContact},
	})
	if dead.HP != 0 {
		t.Fatal("punch should have killed the first hostile")
	}
	if hurts != 0 {
		t.Errorf("strikes from dead, marked or unknown attackers should be dropped, got %d hurts", hurts)
	}
}
