package world

import (
	"github.com/tomz197/geosteroids/internal/object"
)

// Snapshot is a copy of the world state for rendering. It shares nothing
// with the World, so it can be handed to another goroutine.
type Snapshot struct {
	Ship           object.Ship
	Asteroids      []object.Asteroid
	Bullets        []object.Bullet
	Score          int
	Lives          int
	GameOver       bool
	RespawnPending bool
	Time           float64
}

// Snapshot copies the current state into dst, reusing its slices, and
// returns it. dst may be nil.
func (w *World) Snapshot(dst *Snapshot) *Snapshot {
	if dst == nil {
		dst = &Snapshot{}
	}

	dst.Ship = *w.ship
	dst.Asteroids = dst.Asteroids[:0]
	for _, a := range w.asteroids {
		dst.Asteroids = append(dst.Asteroids, *a)
	}
	dst.Bullets = dst.Bullets[:0]
	for _, b := range w.bullets {
		dst.Bullets = append(dst.Bullets, *b)
	}
	dst.Score = w.score
	dst.Lives = w.lives
	dst.GameOver = w.gameOver
	dst.RespawnPending = w.respawnPending
	dst.Time = w.clock.Now()
	return dst
}
