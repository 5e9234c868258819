package object

import (
	"github.com/tomz197/geosteroids/internal/physics"
)

// Ship tuning.
const (
	ShipRadius   = 10.0
	ShipMaxSpeed = 250.0
	ShipAccel    = 8.5 // Added to velocity on every thrusting tick
	ShipTurnRate = 5.0 // Degrees per tick
	ShipNoseDist = 10.0

	// Thrust flame blink cadence: the counter climbs to flickerMax, then
	// restarts at flickerMin.
	flickerMin = -3
	flickerMax = 5
)

// Controls are the per-tick ship inputs.
type Controls struct {
	Left   bool
	Right  bool
	Thrust bool
}

// Ship is the player-controlled spaceship.
type Ship struct {
	Entity
	Rotation  float64 // Degrees, 0 = pointing +X, counter-clockwise positive
	Flicker   int     // Thrust flame cadence, drawn when > 1
	Alive     bool
	Thrusting bool // Thrust was applied on the last update
}

// NewShip creates a living, stationary ship at position.
func NewShip(position physics.Vector) *Ship {
	return &Ship{
		Entity: Entity{
			Position: position,
			Radius:   ShipRadius,
		},
		Alive: true,
	}
}

// Update applies rotation and thrust, then moves the ship.
// There is no drag: a ship keeps coasting until thrust changes its velocity.
func (s *Ship) Update(dt float64, in Controls, screen Screen) {
	if in.Left {
		s.Rotation += ShipTurnRate
	}
	if in.Right {
		s.Rotation -= ShipTurnRate
	}

	s.Thrusting = in.Thrust
	if in.Thrust {
		s.Flicker++
		if s.Flicker > flickerMax {
			s.Flicker = flickerMin
		}
		s.Velocity = s.Velocity.Add(physics.FromAngle(s.Rotation, ShipAccel)).Clamp(0, ShipMaxSpeed)
	} else {
		s.Flicker = 0
	}

	s.Entity.Update(dt, screen)
}

// Nose returns the point bullets are fired from.
func (s *Ship) Nose() physics.Vector {
	return s.Position.Add(physics.FromAngle(s.Rotation, ShipNoseDist))
}

// FlameVisible reports whether the thrust flame should be drawn this frame.
func (s *Ship) FlameVisible() bool {
	return s.Flicker > 1
}

// Outline returns the hull triangle (nose, upper wing, lower wing) and the
// thrust flame triangle in world space, rotated to the ship's heading.
func (s *Ship) Outline() (hull, flame [3]physics.Vector) {
	return ShipOutline(s.Position, s.Rotation)
}

// ShipOutline computes the ship shapes for an arbitrary pose. Renderers use
// it for the lives indicator as well.
func ShipOutline(pos physics.Vector, rotation float64) (hull, flame [3]physics.Vector) {
	at := func(dx, dy float64) physics.Vector {
		return pos.Add(rotate(physics.Vec(dx, dy), rotation))
	}
	hull = [3]physics.Vector{at(10, 0), at(-10, 10), at(-10, -10)}
	flame = [3]physics.Vector{at(-10, 5), at(-15, 0), at(-10, -5)}
	return hull, flame
}

func rotate(v physics.Vector, deg float64) physics.Vector {
	c := physics.FromAngle(deg, 1)
	return physics.Vec(v.X*c.X-v.Y*c.Y, v.X*c.Y+v.Y*c.X)
}
