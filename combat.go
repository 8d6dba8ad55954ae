package main

// StrikeKind tells how a melee strike tests its target
type StrikeKind int

const (
	StrikePunch   StrikeKind = 0 // capsule along the attacker's facing, hits every hostile in reach
	StrikeContact StrikeKind = 1 // circle overlap with the player
)

// Strike is a melee attack queued during the attack phase
type Strike struct {
	Attacker uint64
	Kind     StrikeKind
	Reach    float64
}

// ApplyDamage removes one hit worth of health from a hostile. Health never
// goes below zero; returns true if health actually decreased.
func ApplyDamage(a *Agent, src HitSource) bool {
	if !a.HasHealth || a.HP <= 0 {
		return false
	}
	a.HP--
	a.damaged = true
	a.lastHit = src
	return true
}

// ResolveStrikes applies queued melee strikes in order. A strike whose
// attacker is gone or already dead is dropped. Returns the number
// of hurt signals raised against the player.
func ResolveStrikes(w *World, strikes []Strike) int {
	hurts := 0
	player := w.Player()
	for _, s := range strikes {
		attacker, ok := w.Get(s.Attacker)
		if !ok || !attacker.Alive() {
			continue
		}
		switch s.Kind {
		case StrikePunch:
			for _, h := range w.Hostiles() {
				if !h.Interactable() {
					continue
				}
				if InReach(attacker.Pos, attacker.Facing, s.Reach, h.Pos, h.Radius) {
					ApplyDamage(h, HitMelee)
				}
			}
		case StrikeContact:
			if !player.Alive() {
				continue
			}
			if CheckCollision(attacker.Pos, attacker.Radius, player.Pos, player.Radius) {
				hurts++
			}
		}
	}
	return hurts
}

// ResolveProjectiles tests every live projectile against opposite-team
// targets. Each projectile hits at most one target, the earliest spawned
// among those it overlaps, and is removed at once. Returns the number of
// hurt signals raised against the player.
func ResolveProjectiles(w *World, grid *SpatialGrid) int {
	grid.Recenter(w.Player().Pos)
	for _, a := range w.Agents() {
		if a.Role == RoleProjectile || !a.HasHealth {
			continue
		}
		grid.InsertCircle(a)
	}

	hurts := 0
	var buf []*Agent
	for _, p := range w.Projectiles() {
		if p.Removed() {
			continue
		}
		buf = grid.QueryBuf(p.Pos, p.Radius, buf[:0])
		var hit *Agent
		for _, t := range buf {
			if t.Team == p.Team || !t.Interactable() {
				continue
			}
			if !CheckCollision(p.Pos, p.Radius, t.Pos, t.Radius) {
				continue
			}
			if hit == nil || t.ID < hit.ID {
				hit = t
			}
		}
		if hit == nil {
			continue
		}

		w.MarkForRemoval(p.ID)
		switch hit.Role {
		case RolePlayer:
			hurts++
		default:
			ApplyDamage(hit, HitProjectile)
		}
	}
	return hurts
}
