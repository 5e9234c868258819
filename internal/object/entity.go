// Package object holds the moving bodies of the game: the player's ship,
// asteroids and bullets.
package object

import (
	"github.com/tomz197/geosteroids/internal/config"
	"github.com/tomz197/geosteroids/internal/physics"
)

// Screen represents the playfield dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// DefaultScreen is the fixed 1280x720 playfield.
var DefaultScreen = NewScreen(config.ScreenWidth, config.ScreenHeight)

// NewScreen returns a Screen with its center filled in.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Center returns the middle of the screen.
func (s Screen) Center() physics.Vector {
	return physics.Vec(float64(s.Width)/2, float64(s.Height)/2)
}

// WrapPosition wraps p around the screen edges. An object is allowed to
// travel margin units past an edge before it reappears margin units outside
// the opposite edge, so it slides in instead of popping.
func (s Screen) WrapPosition(p *physics.Vector, margin float64) {
	w := float64(s.Width)
	h := float64(s.Height)

	if p.X < -margin {
		p.X = w + margin
	} else if p.X > w+margin {
		p.X = -margin
	}

	if p.Y < -margin {
		p.Y = h + margin
	} else if p.Y > h+margin {
		p.Y = -margin
	}
}

// Entity is the shared state of everything that moves.
// The hitbox is always centered on Position.
type Entity struct {
	Position physics.Vector
	Velocity physics.Vector
	Radius   float64
}

// Hitbox returns the collision circle.
func (e *Entity) Hitbox() physics.Circle {
	return physics.Circle{Center: e.Position, Radius: e.Radius}
}

// SetPosition moves the entity (and with it the hitbox).
func (e *Entity) SetPosition(x, y float64) {
	e.Position = physics.Vec(x, y)
}

// Update integrates velocity over dt seconds and wraps at two radii past each edge.
func (e *Entity) Update(dt float64, screen Screen) {
	e.Position = e.Position.Add(e.Velocity.Scale(dt))
	screen.WrapPosition(&e.Position, e.Radius*2)
}
