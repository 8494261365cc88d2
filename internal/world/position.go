package world

import "math"

// arrivedEpsilon is the distance below which MoveTowards treats the mover as
// already at the target, sidestepping the unstable near-zero division.
const arrivedEpsilon = 0.01

// Position is a point in the arena plane. The arena is centered on the
// origin and carved into annular rings measured outward from it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec2 is a direction or velocity in the arena plane.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Normalized returns the unit vector pointing the same way, or the zero
// vector when the input has no length.
func (v Vec2) Normalized() Vec2 {
	length := math.Hypot(v.X, v.Y)
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Scaled returns the vector multiplied by factor.
func (v Vec2) Scaled(factor float64) Vec2 {
	return Vec2{X: v.X * factor, Y: v.Y * factor}
}

// Distance reports the Euclidean distance between two positions.
func (p Position) Distance(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// DistanceFromCenter reports the distance from the arena center.
func (p Position) DistanceFromCenter() float64 {
	return math.Hypot(p.X, p.Y)
}

// Ring reports which annular band the position falls in. The central disc
// counts as ring 1; the result is never below 1.
func (p Position) Ring(ringRadius float64) int {
	ring := int(math.Floor(p.DistanceFromCenter() / ringRadius))
	if ring < 1 {
		return 1
	}
	return ring
}

// MoveTowards advances the position toward target by at most speed*dt along
// the connecting line, landing exactly on the target rather than overshooting.
// Positions closer than arrivedEpsilon do not move at all.
func (p *Position) MoveTowards(target Position, speed, dt float64) {
	distance := p.Distance(target)
	if distance <= arrivedEpsilon {
		return
	}
	ratio := math.Min(1, speed*dt/distance)
	p.X += (target.X - p.X) * ratio
	p.Y += (target.Y - p.Y) * ratio
}
