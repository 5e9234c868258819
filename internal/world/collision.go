package world

import (
	"github.com/tomz197/geosteroids/internal/object"
	"github.com/tomz197/geosteroids/internal/physics"
)

const (
	// Largest asteroid hitbox plus a bullet, rounded up.
	collisionCellSize = 48.0
	// Asteroids wrap two radii past the edge.
	collisionMargin = 90.0
)

func newCollisionGrid(screen object.Screen) *physics.SpatialGrid {
	return physics.NewSpatialGrid(
		-collisionMargin, -collisionMargin,
		float64(screen.Width)+2*collisionMargin,
		float64(screen.Height)+2*collisionMargin,
		collisionCellSize,
	)
}

// resolveBulletHits destroys every asteroid touched by a bullet. Each bullet
// hits at most one asteroid and each asteroid is hit by at most one bullet;
// when several bullets overlap an asteroid the oldest one is used up.
func (w *World) resolveBulletHits() {
	if len(w.bullets) == 0 || len(w.asteroids) == 0 {
		return
	}

	w.grid.Clear()
	for i, b := range w.bullets {
		w.grid.Insert(b.Position, i)
	}
	if cap(w.bulletUsed) < len(w.bullets) {
		w.bulletUsed = make([]bool, len(w.bullets))
	}
	w.bulletUsed = w.bulletUsed[:len(w.bullets)]
	clear(w.bulletUsed)

	kept := w.asteroids[:0]
	for _, a := range w.asteroids {
		hitbox := a.Hitbox()
		hit := -1
		w.grid.QueryAround(a.Position, func(j int) bool {
			if w.bulletUsed[j] || (hit >= 0 && j > hit) {
				return false
			}
			if hitbox.Overlaps(w.bullets[j].Hitbox()) {
				hit = j
			}
			return false
		})

		if hit < 0 {
			kept = append(kept, a)
			continue
		}
		w.bulletUsed[hit] = true
		w.destroyAsteroid(a)
	}
	clear(w.asteroids[len(kept):])
	w.asteroids = kept

	bullets := w.bullets[:0]
	for i, b := range w.bullets {
		if !w.bulletUsed[i] {
			bullets = append(bullets, b)
		}
	}
	clear(w.bullets[len(bullets):])
	w.bullets = bullets
}

// destroyAsteroid scores a and queues its fragments.
func (w *World) destroyAsteroid(a *object.Asteroid) {
	w.score += ScorePerAsteroid
	w.emit(Event{Type: EventAsteroidDestroyed, Position: a.Position, Stage: a.Stage})

	for range a.Fragments() {
		w.spawned = append(w.spawned, w.spawner.Drifting(w.rng, a.Position, a.Stage-1))
	}
}

// resolveShipHits clears the respawn circle if a respawn just happened, then
// kills the ship if any asteroid touches it.
func (w *World) resolveShipHits() {
	respawnCircle := physics.Circle{Center: w.cfg.Screen.Center(), Radius: RespawnCircleRadius}

	kept := w.asteroids[:0]
	for _, a := range w.asteroids {
		hitbox := a.Hitbox()
		if w.nuke && hitbox.Overlaps(respawnCircle) {
			continue
		}
		if w.ship.Alive && hitbox.Overlaps(w.ship.Hitbox()) {
			w.killShip()
		}
		kept = append(kept, a)
	}
	clear(w.asteroids[len(kept):])
	w.asteroids = kept
}
