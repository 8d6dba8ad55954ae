package main

// SeparationForce sums the inverse-square push away from every other
// position and clamps the result to 1/separating. Positions equal to self
// (including self) contribute nothing.
func SeparationForce(self Vec2, others []Vec2, separating float64) Vec2 {
	var sum Vec2
	for _, o := range others {
		if o == self {
			continue
		}
		away := self.Sub(o)
		sum = sum.Add(away.Normalize().Scale(1 / away.LenSq()))
	}
	if separating <= 0 {
		return Vec2{}
	}
	return sum.ClampLength(1 / separating)
}

// SteerDelta returns the displacement of one hostile for dt seconds
func SteerDelta(pos, target Vec2, others []Vec2, b Behaviour, dt float64) Vec2 {
	homing := target.Sub(pos).Normalize()
	separation := SeparationForce(pos, others, b.Separating)
	return homing.Scale(b.Homing).
		Add(separation.Scale(b.Separating * b.Separating)).
		Scale(dt)
}

// Steer moves every hostile toward the player while pushing hostiles apart.
// All positions are sampled before anything moves, so update order does not
// matter. Hostiles also turn to face the player.
func Steer(w *World, dt float64) {
	hostiles := w.Hostiles()
	if len(hostiles) == 0 {
		return
	}
	target := w.Player().Pos

	positions := make([]Vec2, len(hostiles))
	for i, h := range hostiles {
		positions[i] = h.Pos
	}

	for _, h := range hostiles {
		if !h.Alive() {
			continue
		}
		h.Pos = h.Pos.Add(SteerDelta(h.Pos, target, positions, h.Behaviour, dt))
		if f := target.Sub(h.Pos).Normalize(); !f.IsZero() {
			h.Facing = f
		}
	}
}
