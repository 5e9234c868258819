package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/geosteroids/internal/object"
	"github.com/tomz197/geosteroids/internal/physics"
)

type recorder struct {
	calls []string
	lives []int
}

func (r *recorder) PlayerDied(lives int) {
	r.calls = append(r.calls, "died")
	r.lives = append(r.lives, lives)
}

func (r *recorder) PlayerRespawn() { r.calls = append(r.calls, "respawn") }

func (r *recorder) GameOver() { r.calls = append(r.calls, "gameover") }

func newTestWorld(t *testing.T) (*World, *recorder) {
	t.Helper()
	w := New(DefaultConfig(), NewRandom(1))
	rec := &recorder{}
	w.SetListener(rec)
	return w, rec
}

func TestNewWorld(t *testing.T) {
	w, _ := newTestWorld(t)

	assert.Equal(t, InitialLives, w.Lives())
	assert.Zero(t, w.Score())
	assert.False(t, w.GameOver())
	assert.True(t, w.ship.Alive)
	assert.Equal(t, physics.Vec(640, 360), w.ship.Position)
	assert.Equal(t, 1, w.clock.Pending(actionSpawnWave))
	assert.Empty(t, w.asteroids)
}

func TestBulletDestroysAsteroid(t *testing.T) {
	w, _ := newTestWorld(t)
	w.ship.SetPosition(100, 30)
	w.ship.Rotation = 90
	w.SpawnAsteroid(physics.Vec(100, 100), physics.Vector{}, object.StageLarge)

	w.Update(0.05, Input{Fire: true})
	require.Len(t, w.bullets, 1)
	assert.InDelta(t, 100, w.bullets[0].Position.X, 1e-9)
	assert.InDelta(t, 40, w.bullets[0].Position.Y, 1e-9)
	require.Len(t, w.Events(), 1)
	assert.Equal(t, EventBulletFired, w.Events()[0].Type)

	w.Update(0.05, Input{})

	assert.Equal(t, ScorePerAsteroid, w.Score())
	assert.Empty(t, w.bullets)
	require.Len(t, w.asteroids, 3)
	for _, a := range w.asteroids {
		assert.Equal(t, object.StageMedium, a.Stage)
		assert.Equal(t, physics.Vec(100, 100), a.Position)
		assert.LessOrEqual(t, a.Velocity.X, 50.0)
		assert.GreaterOrEqual(t, a.Velocity.X, -50.0)
		assert.GreaterOrEqual(t, a.Sides, object.MinSides)
		assert.LessOrEqual(t, a.Sides, object.MaxSides)
	}

	require.Len(t, w.Events(), 1)
	assert.Equal(t, Event{Type: EventAsteroidDestroyed, Position: physics.Vec(100, 100), Stage: object.StageLarge}, w.Events()[0])
	assert.True(t, w.ship.Alive)
}

func TestSmallAsteroidLeavesNoFragments(t *testing.T) {
	w, _ := newTestWorld(t)
	w.SpawnAsteroid(physics.Vec(300, 300), physics.Vector{}, object.StageSmall)
	w.bullets = append(w.bullets, &object.Bullet{Entity: object.Entity{Position: physics.Vec(300, 300), Radius: object.BulletRadius}})

	w.Update(0.01, Input{})

	assert.Empty(t, w.asteroids)
	assert.Empty(t, w.bullets)
	assert.Equal(t, ScorePerAsteroid, w.Score())
}

func TestOneBulletPerAsteroid(t *testing.T) {
	w, _ := newTestWorld(t)
	w.SpawnAsteroid(physics.Vec(300, 300), physics.Vector{}, object.StageSmall)
	first := &object.Bullet{Entity: object.Entity{Position: physics.Vec(300, 300), Radius: object.BulletRadius}}
	second := &object.Bullet{Entity: object.Entity{Position: physics.Vec(302, 300), Radius: object.BulletRadius}}
	w.bullets = append(w.bullets, first, second)

	w.Update(0.01, Input{})

	assert.Empty(t, w.asteroids)
	require.Len(t, w.bullets, 1)
	assert.Same(t, second, w.bullets[0])
	assert.Equal(t, ScorePerAsteroid, w.Score())
}

func TestOneAsteroidPerBullet(t *testing.T) {
	w, _ := newTestWorld(t)
	w.SpawnAsteroid(physics.Vec(300, 300), physics.Vector{}, object.StageSmall)
	w.SpawnAsteroid(physics.Vec(305, 300), physics.Vector{}, object.StageSmall)
	w.bullets = append(w.bullets, &object.Bullet{Entity: object.Entity{Position: physics.Vec(302, 300), Radius: object.BulletRadius}})

	w.Update(0.01, Input{})

	assert.Len(t, w.asteroids, 1)
	assert.Empty(t, w.bullets)
	assert.Equal(t, ScorePerAsteroid, w.Score())
}

func TestExpiredBulletsAreRemoved(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Update(0.25, Input{Fire: true})
	require.Len(t, w.bullets, 1)

	for range 8 {
		w.Update(0.25, Input{})
	}
	require.Len(t, w.bullets, 1, "lifetime 2.0 is still alive")

	w.Update(0.25, Input{})
	assert.Empty(t, w.bullets)
}

func TestFireIsOneBulletPerTick(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Update(0.01, Input{Fire: true})
	w.Update(0.01, Input{})
	w.Update(0.01, Input{Fire: true})
	assert.Len(t, w.bullets, 2)
}

func TestDeathAndRespawn(t *testing.T) {
	w, rec := newTestWorld(t)
	w.SpawnAsteroid(w.cfg.Screen.Center(), physics.Vector{}, object.StageSmall)
	w.ship.Velocity = physics.Vec(10, 0)

	w.Update(0.5, Input{})

	assert.False(t, w.ship.Alive)
	assert.Equal(t, 2, w.Lives())
	assert.Equal(t, []string{"died"}, rec.calls)
	assert.Equal(t, []int{2}, rec.lives)
	assert.Equal(t, []Event{{Type: EventShipDestroyed, Position: physics.Vec(640, 360)}}, w.Events())
	assert.Equal(t, w.cfg.Screen.Center(), w.ship.Position)
	assert.True(t, w.RespawnPending())
	assert.Equal(t, 1, w.clock.Pending(actionRespawnCheck))

	// Dead ships ignore input.
	w.Update(1.0, Input{Fire: true, Thrust: true, RotateLeft: true})
	assert.False(t, w.ship.Alive)
	assert.Empty(t, w.bullets)
	assert.Zero(t, w.ship.Rotation)
	assert.Len(t, rec.calls, 1, "asteroid still overlapping does not kill twice")

	w.Update(1.0, Input{})

	assert.True(t, w.ship.Alive)
	assert.True(t, w.ship.Velocity.IsZero())
	assert.Empty(t, w.asteroids, "respawn circle cleared")
	assert.Equal(t, []string{"died", "respawn"}, rec.calls)
	assert.Zero(t, w.Score())
	assert.False(t, w.RespawnPending())
	assert.False(t, w.GameOver())
}

func TestRespawnKeepsDistantAsteroids(t *testing.T) {
	w, _ := newTestWorld(t)
	w.SpawnAsteroid(w.cfg.Screen.Center(), physics.Vector{}, object.StageSmall)
	far := w.SpawnAsteroid(physics.Vec(100, 100), physics.Vector{}, object.StageSmall)

	w.Update(0.5, Input{})
	w.Update(2.0, Input{})

	require.True(t, w.ship.Alive)
	require.Len(t, w.asteroids, 1)
	assert.Same(t, far, w.asteroids[0])

	// The clearing only happens on the respawn tick.
	w.SpawnAsteroid(physics.Vec(640, 420), physics.Vector{}, object.StageSmall)
	w.Update(0.01, Input{})
	assert.Len(t, w.asteroids, 2)
}

func TestGameOver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialLives = 1
	w := New(cfg, NewRandom(1))
	rec := &recorder{}
	w.SetListener(rec)
	w.SpawnAsteroid(cfg.Screen.Center(), physics.Vector{}, object.StageSmall)

	w.Update(0.5, Input{})
	assert.Zero(t, w.Lives())
	assert.False(t, w.GameOver())

	w.Update(2.0, Input{})

	assert.True(t, w.GameOver())
	assert.False(t, w.ship.Alive)
	assert.Equal(t, []string{"died", "gameover"}, rec.calls)
	assert.Len(t, w.asteroids, 1, "no respawn clearing on game over")

	w.Update(0.5, Input{Fire: true, Spawns: []SpawnRequest{{Position: physics.Vec(10, 10)}}})
	assert.Empty(t, w.bullets)
	assert.Len(t, w.asteroids, 1)
	assert.Zero(t, w.Lives())
	assert.False(t, w.QuitRequested())

	w.Update(0.01, Input{Quit: true})
	assert.True(t, w.QuitRequested())
}

func TestGameOverWithoutListener(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialLives = 1
	w := New(cfg, NewRandom(1))
	w.SpawnAsteroid(cfg.Screen.Center(), physics.Vector{}, object.StageSmall)

	w.Update(0.5, Input{})
	w.Update(2.0, Input{})

	assert.True(t, w.GameOver())
}

func TestQuitIgnoredWhilePlaying(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Update(0.01, Input{Quit: true})
	assert.False(t, w.QuitRequested())
}

func TestWaveTiming(t *testing.T) {
	w := New(DefaultConfig(), NewRandom(7))

	for range 4 {
		w.Update(1.0, Input{})
	}
	assert.Empty(t, w.asteroids)
	assert.Zero(t, w.spawner.Waves())

	w.Update(1.0, Input{})
	require.Equal(t, 1, w.spawner.Waves())
	n := len(w.asteroids)
	assert.GreaterOrEqual(t, n, 2)
	assert.LessOrEqual(t, n, 5)
	assert.Equal(t, 1.0, w.Difficulty())
	assert.Equal(t, 1, w.clock.Pending(actionSpawnWave))

	for range 3 {
		w.Update(1.0, Input{})
	}
	assert.Equal(t, 1, w.spawner.Waves())

	w.Update(1.0, Input{})
	assert.Equal(t, 2, w.spawner.Waves())
	assert.Equal(t, 1.0, w.Difficulty())
}

func TestDebugSpawn(t *testing.T) {
	w, _ := newTestWorld(t)

	w.Update(0.1, Input{Spawns: []SpawnRequest{
		{Position: physics.Vec(200, 200)},
		{Position: physics.Vec(900, 200), Moving: true},
	}})

	require.Len(t, w.asteroids, 2)
	assert.Equal(t, physics.Vec(200, 200), w.asteroids[0].Position)
	assert.True(t, w.asteroids[0].Velocity.IsZero())
	require.Len(t, w.Events(), 2)
	assert.Equal(t, EventAsteroidPlaced, w.Events()[0].Type)
	assert.Equal(t, w.asteroids[0].Stage, w.Events()[0].Stage)
}

func TestSpawnAsteroidClampsStage(t *testing.T) {
	w, _ := newTestWorld(t)
	assert.Equal(t, object.StageLarge, w.SpawnAsteroid(physics.Vec(1, 1), physics.Vector{}, 9).Stage)
	assert.Equal(t, object.StageSmall, w.SpawnAsteroid(physics.Vec(1, 1), physics.Vector{}, -1).Stage)
}

func TestSnapshotIsACopy(t *testing.T) {
	w, _ := newTestWorld(t)
	w.SpawnAsteroid(physics.Vec(100, 100), physics.Vec(10, 0), object.StageMedium)
	w.Update(0.01, Input{Fire: true})

	snap := w.Snapshot(nil)
	require.Len(t, snap.Asteroids, 1)
	require.Len(t, snap.Bullets, 1)
	assert.Equal(t, InitialLives, snap.Lives)

	snap.Asteroids[0].Position = physics.Vec(-1, -1)
	snap.Ship.Alive = false
	assert.InDelta(t, 100.1, w.asteroids[0].Position.X, 1e-9)
	assert.True(t, w.ship.Alive)

	again := w.Snapshot(snap)
	assert.Same(t, snap, again)
	assert.Equal(t, w.asteroids[0].Position, again.Asteroids[0].Position)
}

func TestDeterministicReplay(t *testing.T) {
	run := func() *Snapshot {
		w := New(DefaultConfig(), NewRandom(99))
		for i := range 600 {
			w.Update(1.0/60, Input{Fire: i%7 == 0, RotateLeft: i%3 == 0, Thrust: i%5 == 0})
		}
		return w.Snapshot(nil)
	}
	assert.Equal(t, run(), run())
}

func TestListenersFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	ls := Listeners{a, nil, b}

	ls.PlayerDied(2)
	ls.PlayerRespawn()
	ls.GameOver()

	want := []string{"died", "respawn", "gameover"}
	assert.Equal(t, want, a.calls)
	assert.Equal(t, want, b.calls)
	assert.Equal(t, []int{2}, b.lives)
}
