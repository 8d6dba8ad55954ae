package main

const WorldRadius = 1200.0 // projectiles farther than this from the player are dropped

// NewProjectile creates a projectile at pos travelling along dir
func NewProjectile(pos, dir Vec2, team Team, owner uint64, v Volley) *Agent {
	return &Agent{
		Role:   RoleProjectile,
		Team:   team,
		Pos:    pos,
		Facing: dir.Normalize(),
		Radius: v.Radius,
		Speed:  v.Speed,
		Life:   v.Life,
		Owner:  owner,
	}
}

// FanDirections spreads count unit vectors evenly around base, spread
// radians apart, centered on base
func FanDirections(base Vec2, count int, spread float64) []Vec2 {
	if count <= 0 {
		return nil
	}
	base = base.Normalize()
	dirs := make([]Vec2, count)
	mid := float64(count-1) / 2
	for i := range dirs {
		dirs[i] = base.Rotate((float64(i) - mid) * spread)
	}
	return dirs
}

// MoveProjectiles advances every projectile along its facing and marks the
// ones that expired or strayed more than worldRadius from the player. The
// arena has no fixed edge, so the bound travels with the player.
func MoveProjectiles(w *World, dt, worldRadius float64) {
	center := w.Player().Pos
	for _, p := range w.Projectiles() {
		if p.Removed() {
			continue
		}
		p.Pos = p.Pos.Add(p.Facing.Scale(p.Speed * dt))
		if p.Life > 0 {
			p.Life -= dt
			if p.Life <= 0 {
				w.MarkForRemoval(p.ID)
				continue
			}
		}
		if p.Pos.DistSq(center) > worldRadius*worldRadius {
			w.MarkForRemoval(p.ID)
		}
	}
}
