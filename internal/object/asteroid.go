package object

import (
	"github.com/tomz197/geosteroids/internal/physics"
)

// Asteroid stages. Higher stages are bigger and break into lower ones.
const (
	StageSmall  = 1
	StageMedium = 2
	StageLarge  = 3
)

// Asteroid shape limits.
const (
	MinSides = 4
	MaxSides = 8

	// ShapeRadiusPerStage scales the drawn polygon with the stage.
	ShapeRadiusPerStage = 15.0
	// HitboxScale shrinks the hitbox below the polygon to be forgiving.
	HitboxScale = 0.9
)

// Asteroid is a destructible space rock drawn as a regular polygon with a
// circular hitbox.
type Asteroid struct {
	Entity
	Sides       int
	ShapeRadius float64
	Rotation    float64 // Degrees, fixed at spawn
	Stage       int
}

// NewAsteroid creates an asteroid of the given stage. Stages below 1 are
// raised to 1.
func NewAsteroid(position, velocity physics.Vector, sides, stage int, rotation float64) *Asteroid {
	if stage < StageSmall {
		stage = StageSmall
	}
	shapeRadius := float64(stage) * ShapeRadiusPerStage
	return &Asteroid{
		Entity: Entity{
			Position: position,
			Velocity: velocity,
			Radius:   shapeRadius * HitboxScale,
		},
		Sides:       sides,
		ShapeRadius: shapeRadius,
		Rotation:    rotation,
		Stage:       stage,
	}
}

// Fragments returns how many children destroying this asteroid yields.
// The count equals the parent's own stage; the smallest stage yields none.
func (a *Asteroid) Fragments() int {
	if a.Stage > StageSmall {
		return a.Stage
	}
	return 0
}

// Vertices returns the polygon corners in world space.
func (a *Asteroid) Vertices() []physics.Vector {
	points := make([]physics.Vector, a.Sides)
	step := 360.0 / float64(a.Sides)
	for i := range points {
		points[i] = a.Position.Add(physics.FromAngle(a.Rotation+step*float64(i), a.ShapeRadius))
	}
	return points
}
