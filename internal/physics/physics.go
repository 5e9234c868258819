// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Circle is a circular hitbox.
type Circle struct {
	Center Vector
	Radius float64
}

// Overlaps reports whether c and o touch or intersect.
func (c Circle) Overlaps(o Circle) bool {
	return CirclesOverlap(c.Center.X, c.Center.Y, c.Radius, o.Center.X, o.Center.Y, o.Radius)
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap. Circles that exactly touch
// count as overlapping.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) <= minDist*minDist
}
