// Package world runs the game simulation: ship, asteroids and bullets on a
// wrapping playfield, with scoring, lives and the death/respawn cycle.
//
// A World is driven by a single goroutine calling Update once per frame.
// It never reads wall-clock time; everything is a function of the dt values
// passed in and the injected Random.
package world

import (
	"github.com/tomz197/geosteroids/internal/object"
	"github.com/tomz197/geosteroids/internal/physics"
)

// World is one game session.
type World struct {
	cfg      Config
	rng      Random
	clock    scheduler
	spawner  *AsteroidSpawner
	listener Listener

	ship      *object.Ship
	asteroids []*object.Asteroid
	bullets   []*object.Bullet
	spawned   []*object.Asteroid // Fragments waiting to join after collisions
	events    []Event

	grid       *physics.SpatialGrid
	bulletUsed []bool

	score          int
	lives          int
	gameOver       bool
	quit           bool
	respawnPending bool
	nuke           bool // Clear the respawn circle on this tick
}

// New creates a world with a living ship at the center and the first wave
// scheduled.
func New(cfg Config, rng Random) *World {
	if rng == nil {
		rng = NewRandom(0)
	}

	w := &World{
		cfg:     cfg,
		rng:     rng,
		spawner: NewAsteroidSpawner(cfg),
		ship:    object.NewShip(cfg.Screen.Center()),
		lives:   cfg.InitialLives,
		grid:    newCollisionGrid(cfg.Screen),
	}
	w.clock.After(cfg.FirstWaveDelay, actionSpawnWave)
	return w
}

// SetListener registers the lifecycle listener. nil disables notifications.
func (w *World) SetListener(l Listener) {
	w.listener = l
}

// Update advances the simulation by dt seconds.
func (w *World) Update(dt float64, in Input) {
	w.events = w.events[:0]

	for _, a := range w.clock.Advance(dt) {
		w.run(a)
	}

	if w.gameOver {
		if in.Quit {
			w.quit = true
		}
	} else {
		for _, req := range in.Spawns {
			w.placeAsteroid(req)
		}
	}

	w.updateBullets(dt)
	for _, a := range w.asteroids {
		a.Update(dt, w.cfg.Screen)
	}

	w.resolveBulletHits()
	w.flushSpawned()
	w.resolveShipHits()
	w.nuke = false

	if w.ship.Alive && !w.gameOver {
		if in.Fire {
			w.fire()
		}
		w.ship.Update(dt, in.controls(), w.cfg.Screen)
	}
}

func (w *World) run(a action) {
	switch a {
	case actionSpawnWave:
		wave, next := w.spawner.Wave(w.rng)
		w.asteroids = append(w.asteroids, wave...)
		w.clock.After(next, actionSpawnWave)
	case actionRespawnCheck:
		w.respawnCheck()
	}
}

func (w *World) updateBullets(dt float64) {
	kept := w.bullets[:0]
	for _, b := range w.bullets {
		b.Update(dt, w.cfg.Screen)
		if b.Alive() {
			kept = append(kept, b)
		}
	}
	clear(w.bullets[len(kept):])
	w.bullets = kept
}

func (w *World) fire() {
	b := object.NewBullet(w.ship.Nose(), w.ship.Velocity, w.ship.Rotation)
	w.bullets = append(w.bullets, b)
	w.emit(Event{Type: EventBulletFired, Position: b.Position})
}

func (w *World) placeAsteroid(req SpawnRequest) {
	stage := intRange(w.rng, object.StageSmall, object.StageLarge)
	var a *object.Asteroid
	if req.Moving {
		a = w.spawner.Drifting(w.rng, req.Position, stage)
	} else {
		a = w.spawner.Shaped(w.rng, req.Position, physics.Vector{}, stage)
	}
	w.asteroids = append(w.asteroids, a)
	w.emit(Event{Type: EventAsteroidPlaced, Position: a.Position, Stage: a.Stage})
}

// SpawnAsteroid adds an asteroid with the given motion and a random shape.
// The stage is clamped to the valid range.
func (w *World) SpawnAsteroid(pos, vel physics.Vector, stage int) *object.Asteroid {
	a := w.spawner.Shaped(w.rng, pos, vel, stage)
	w.asteroids = append(w.asteroids, a)
	return a
}

func (w *World) flushSpawned() {
	w.asteroids = append(w.asteroids, w.spawned...)
	clear(w.spawned)
	w.spawned = w.spawned[:0]
}

func (w *World) killShip() {
	w.emit(Event{Type: EventShipDestroyed, Position: w.ship.Position})
	w.ship.Alive = false
	w.ship.Thrusting = false
	w.lives--
	if w.listener != nil {
		w.listener.PlayerDied(w.lives)
	}

	c := w.cfg.Screen.Center()
	w.ship.SetPosition(c.X, c.Y)

	if !w.respawnPending {
		w.respawnPending = true
		w.clock.After(RespawnDelay, actionRespawnCheck)
	}
}

func (w *World) respawnCheck() {
	w.respawnPending = false

	if w.lives <= 0 {
		w.gameOver = true
		if w.listener != nil {
			w.listener.GameOver()
		}
		return
	}

	w.nuke = true
	w.ship.Velocity = physics.Vector{}
	w.ship.Alive = true
	if w.listener != nil {
		w.listener.PlayerRespawn()
	}
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// Events returns the cosmetic events of the last Update. The slice is reused
// by the next Update.
func (w *World) Events() []Event {
	return w.events
}

// Score returns the points earned so far.
func (w *World) Score() int {
	return w.score
}

// Lives returns the remaining lives.
func (w *World) Lives() int {
	return w.lives
}

// GameOver reports whether the last life has been lost.
func (w *World) GameOver() bool {
	return w.gameOver
}

// QuitRequested reports whether quit was pressed on the game over screen.
func (w *World) QuitRequested() bool {
	return w.quit
}

// RespawnPending reports whether the ship is dead and waiting to respawn.
func (w *World) RespawnPending() bool {
	return w.respawnPending
}

// Time returns the simulation clock in seconds.
func (w *World) Time() float64 {
	return w.clock.Now()
}

// Difficulty returns the current wave difficulty.
func (w *World) Difficulty() float64 {
	return w.spawner.Difficulty()
}

// Screen returns the playfield dimensions.
func (w *World) Screen() object.Screen {
	return w.cfg.Screen
}
