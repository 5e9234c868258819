package physics

import "math"

// Vector is a 2D float vector used for positions and velocities.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// FromAngle returns a vector of the given length pointing at deg degrees
// (0 = +X, counter-clockwise positive).
func FromAngle(deg, length float64) Vector {
	rad := deg * math.Pi / 180
	return Vector{X: math.Cos(rad) * length, Y: math.Sin(rad) * length}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Len returns the magnitude of v.
func (v Vector) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Len2 returns the squared magnitude of v.
func (v Vector) Len2() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Clamp rescales v so its magnitude lies in [lo, hi]. The zero vector has
// no direction and is returned unchanged.
func (v Vector) Clamp(lo, hi float64) Vector {
	l2 := v.Len2()
	if l2 == 0 {
		return v
	}
	if l2 > hi*hi {
		return v.Scale(math.Sqrt(hi * hi / l2))
	}
	if l2 < lo*lo {
		return v.Scale(math.Sqrt(lo * lo / l2))
	}
	return v
}

// IsZero reports whether both components are zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
