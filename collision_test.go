package main

import "testing"

func TestCheckCollision(t *testing.T) {
	// Overlapping circles
	if !CheckCollision(V(0, 0), 10, V(15, 0), 10) {
		t.Error("circles should collide (overlapping)")
	}

	// Touching circles
	if !CheckCollision(V(0, 0), 10, V(20, 0), 10) {
		t.Error("circles should collide (touching)")
	}

	// Non-overlapping circles
	if CheckCollision(V(0, 0), 10, V(25, 0), 10) {
		t.Error("circles should not collide")
	}

	// Same position
	if !CheckCollision(V(5, 5), 1, V(5, 5), 1) {
		t.Error("same position should collide")
	}
}

func TestInReachAlongSegment(t *testing.T) {
	o, f := V(0, 0), V(1, 0)
	if !InReach(o, f, 40, V(20, 10), 10) {
		t.Error("target touching the side of the segment should be in reach")
	}
	if InReach(o, f, 40, V(20, 10.001), 10) {
		t.Error("target just off the side should be out of reach")
	}
}

func TestInReachFarEnd(t *testing.T) {
	o, f := V(0, 0), V(1, 0)
	const d, r = 40.0, 10.0

	// Center exactly at the cast distance
	if !InReach(o, f, d, V(d, 0), r) {
		t.Error("target at the cast distance should be in reach")
	}
	// Touching the rounded end
	if !InReach(o, f, d, V(d+r, 0), r) {
		t.Error("target touching the far cap should be in reach")
	}
	if InReach(o, f, d, V(d+r+1e-6, 0), r) {
		t.Error("target past the far cap should be out of reach")
	}
}

func TestInReachBehindAttacker(t *testing.T) {
	o, f := V(0, 0), V(1, 0)
	if !InReach(o, f, 40, V(-10, 0), 10) {
		t.Error("target overlapping the origin should be in reach")
	}
	if InReach(o, f, 40, V(-10.01, 0), 10) {
		t.Error("target behind the attacker should be out of reach")
	}
}

func TestInReachRotatedFacing(t *testing.T) {
	o := V(100, 100)
	f := V(0, -1)
	if !InReach(o, f, 40, V(100, 55), 5) {
		t.Error("target along a non-axis facing should be in reach")
	}
	if InReach(o, f, 40, V(100, 145), 5) {
		t.Error("target opposite the facing should be out of reach")
	}
}
