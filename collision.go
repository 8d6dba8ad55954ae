package main

// CheckCollision checks if two circles overlap (touching counts)
func CheckCollision(a Vec2, ra float64, b Vec2, rb float64) bool {
	radSum := ra + rb
	return a.DistSq(b) <= radSum*radSum
}

// InReach reports whether a circle at target with radius r touches the
// capsule swept from origin along facing for dist units. facing must be a
// unit vector. The capsule is the segment plus a rounded far end; a target
// overlapping the origin is always in reach.
func InReach(origin, facing Vec2, dist float64, target Vec2, r float64) bool {
	v := target.Sub(origin)
	r2 := r * r

	// Along the segment
	c := v.Dot(facing)
	if c >= 0 && c <= dist && v.DistSq(facing.Scale(c)) <= r2 {
		return true
	}

	// Far end cap
	if facing.Scale(dist).DistSq(v) <= r2 {
		return true
	}

	// Target overlaps the attacker origin
	return v.LenSq() <= r2
}
