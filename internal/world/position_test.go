package world

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 3, Y: 4}
	if got := a.Distance(b); got != 5 {
		t.Fatalf("expected distance 5, got %v", got)
	}
	if got := b.Distance(a); got != 5 {
		t.Fatalf("expected symmetric distance 5, got %v", got)
	}
}

func TestRingNeverBelowOne(t *testing.T) {
	positions := []Position{
		{},
		{X: 50},
		{X: 199.9},
	}
	for _, pos := range positions {
		if got := pos.Ring(200); got != 1 {
			t.Fatalf("position %+v: expected ring 1, got %d", pos, got)
		}
	}
}

func TestRingBoundaries(t *testing.T) {
	cases := []struct {
		distance float64
		want     int
	}{
		{0, 1},
		{199.99, 1},
		{200, 1},
		{200.01, 1},
		{399.99, 1},
		{400, 2},
		{600, 3},
		{2100, 10},
	}
	for _, tc := range cases {
		pos := Position{X: tc.distance}
		if got := pos.Ring(200); got != tc.want {
			t.Fatalf("distance %v: expected ring %d, got %d", tc.distance, tc.want, got)
		}
	}
}

func TestRingMonotoneWithDistance(t *testing.T) {
	prev := 0
	for d := 0.0; d <= 2500; d += 25 {
		ring := Position{X: d}.Ring(200)
		if ring < prev {
			t.Fatalf("ring decreased from %d to %d at distance %v", prev, ring, d)
		}
		prev = ring
	}
}

func TestMoveTowardsPartialStep(t *testing.T) {
	pos := Position{X: 0, Y: 0}
	pos.MoveTowards(Position{X: 100, Y: 0}, 10, 1)
	if math.Abs(pos.X-10) > 1e-9 || pos.Y != 0 {
		t.Fatalf("expected (10,0), got (%v,%v)", pos.X, pos.Y)
	}
}

func TestMoveTowardsNoOvershoot(t *testing.T) {
	pos := Position{X: 0, Y: 0}
	target := Position{X: 3, Y: 4}
	pos.MoveTowards(target, 1000, 1)
	if pos != target {
		t.Fatalf("expected landing on %+v, got %+v", target, pos)
	}
}

func TestMoveTowardsExactStepLandsOnTarget(t *testing.T) {
	pos := Position{X: 0, Y: 0}
	target := Position{X: 10, Y: 0}
	pos.MoveTowards(target, 10, 1)
	if pos != target {
		t.Fatalf("expected %+v, got %+v", target, pos)
	}
}

func TestMoveTowardsWithinEpsilonHolds(t *testing.T) {
	pos := Position{X: 0.005, Y: 0}
	before := pos
	pos.MoveTowards(Position{}, 100, 1)
	if pos != before {
		t.Fatalf("expected no movement inside epsilon, got %+v", pos)
	}
}

func TestNormalizedZeroVector(t *testing.T) {
	if got := (Vec2{}).Normalized(); got != (Vec2{}) {
		t.Fatalf("expected zero vector, got %+v", got)
	}
}

func TestNormalizedUnitLength(t *testing.T) {
	v := Vec2{X: 3, Y: -4}.Normalized()
	length := math.Hypot(v.X, v.Y)
	if math.Abs(length-1) > 1e-9 {
		t.Fatalf("expected unit length, got %v", length)
	}
}
