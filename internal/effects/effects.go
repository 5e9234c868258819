// Package effects keeps the presentation-only state of a game: screen shake,
// the respawn ring, the game over overlay and particles. It listens to the
// world but never changes it.
package effects

import (
	"github.com/tomz197/geosteroids/internal/physics"
	"github.com/tomz197/geosteroids/internal/world"
)

const (
	deathShake      = 100.0
	shakeDecay      = 0.9 // Per frame
	ringGrowthSpeed = 50.0

	explosionSpeed    = 120.0
	explosionLifetime = 0.6
)

// Effects implements world.Listener.
type Effects struct {
	rng       world.Random
	particles *System

	shake       float64
	shakeOffset physics.Vector

	showRing   bool
	ringRadius float64
	gameIsOver bool
}

var _ world.Listener = (*Effects)(nil)

// New creates the effects state.
func New(rng world.Random) *Effects {
	return &Effects{
		rng:       rng,
		particles: NewSystem(rng),
	}
}

// PlayerDied starts the screen shake and, if a life is left, the respawn ring.
func (e *Effects) PlayerDied(lives int) {
	e.shake = deathShake
	if lives > 0 {
		e.showRing = true
	}
}

func (e *Effects) PlayerRespawn() {
	e.showRing = false
	e.ringRadius = 0
}

func (e *Effects) GameOver() {
	e.gameIsOver = true
}

// HandleEvents spawns particles for the world's events of the last tick.
func (e *Effects) HandleEvents(events []world.Event) {
	for _, ev := range events {
		switch ev.Type {
		case world.EventAsteroidDestroyed:
			e.particles.SpawnExplosion(ev.Position, 6*ev.Stage, explosionSpeed, explosionLifetime)
		case world.EventShipDestroyed:
			e.particles.SpawnExplosion(ev.Position, 30, explosionSpeed*1.5, explosionLifetime*2)
		}
	}
}

// Update advances the effects by one frame of dt seconds. snap may be nil.
func (e *Effects) Update(dt float64, snap *world.Snapshot) {
	if e.shake > 1 {
		e.shakeOffset = physics.Vec(
			(e.rng.Float64()*2-1)*e.shake,
			(e.rng.Float64()*2-1)*e.shake,
		)
		e.shake *= shakeDecay
	} else {
		e.shakeOffset = physics.Vector{}
	}

	if e.showRing {
		e.ringRadius = min(e.ringRadius+ringGrowthSpeed*dt, world.RespawnCircleRadius)
	}

	if snap != nil && snap.Ship.Alive && snap.Ship.Thrusting {
		_, flame := snap.Ship.Outline()
		e.particles.SpawnThrust(flame[1], snap.Ship.Rotation)
	}
	e.particles.Update(dt)
}

// ShakeOffset returns the camera offset for this frame.
func (e *Effects) ShakeOffset() physics.Vector {
	return e.shakeOffset
}

// RespawnRing returns the ring radius and whether it should be drawn.
func (e *Effects) RespawnRing() (float64, bool) {
	return e.ringRadius, e.showRing
}

// GameIsOver reports whether the game over overlay should be shown.
func (e *Effects) GameIsOver() bool {
	return e.gameIsOver
}

// Particles returns the live particles.
func (e *Effects) Particles() []*Particle {
	return e.particles.Particles()
}

// Reset clears all effects for a new game.
func (e *Effects) Reset() {
	e.shake = 0
	e.shakeOffset = physics.Vector{}
	e.showRing = false
	e.ringRadius = 0
	e.gameIsOver = false
	e.particles.Reset()
}
