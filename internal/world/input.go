package world

import (
	"github.com/tomz197/geosteroids/internal/object"
	"github.com/tomz197/geosteroids/internal/physics"
)

// Input is the resolved input for one tick. Held keys are levels; Fire and
// Quit must be true only on the tick the key went down.
type Input struct {
	RotateLeft  bool
	RotateRight bool
	Thrust      bool
	Fire        bool
	Quit        bool

	// Spawns are debug asteroid placements, e.g. from mouse clicks.
	Spawns []SpawnRequest
}

// SpawnRequest places an asteroid of random stage at Position. Moving
// asteroids get a random drift; others stay put.
type SpawnRequest struct {
	Position physics.Vector
	Moving   bool
}

func (in Input) controls() object.Controls {
	return object.Controls{
		Left:   in.RotateLeft,
		Right:  in.RotateRight,
		Thrust: in.Thrust,
	}
}
