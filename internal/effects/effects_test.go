package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/geosteroids/internal/object"
	"github.com/tomz197/geosteroids/internal/physics"
	"github.com/tomz197/geosteroids/internal/world"
)

func TestDeathShakeDecays(t *testing.T) {
	e := New(world.NewRandom(1))
	e.Update(1.0/60, nil)
	assert.True(t, e.ShakeOffset().IsZero())

	e.PlayerDied(2)
	e.Update(1.0/60, nil)
	off := e.ShakeOffset()
	assert.LessOrEqual(t, off.X, 100.0)
	assert.GreaterOrEqual(t, off.X, -100.0)
	assert.InDelta(t, 90, e.shake, 1e-9)

	// 100 * 0.9^n drops below 1 after 44 frames.
	for range 44 {
		e.Update(1.0/60, nil)
	}
	assert.LessOrEqual(t, e.shake, 1.0)
	e.Update(1.0/60, nil)
	assert.True(t, e.ShakeOffset().IsZero())
}

func TestRespawnRing(t *testing.T) {
	e := New(world.NewRandom(1))

	e.PlayerDied(1)
	_, visible := e.RespawnRing()
	require.True(t, visible)

	e.Update(0.5, nil)
	r, _ := e.RespawnRing()
	assert.Equal(t, 25.0, r)

	e.Update(2, nil)
	r, _ = e.RespawnRing()
	assert.Equal(t, world.RespawnCircleRadius, r, "clamped")

	e.PlayerRespawn()
	r, visible = e.RespawnRing()
	assert.False(t, visible)
	assert.Zero(t, r)
}

func TestLastDeathHasNoRing(t *testing.T) {
	e := New(world.NewRandom(1))
	e.PlayerDied(0)
	_, visible := e.RespawnRing()
	assert.False(t, visible)
	assert.False(t, e.GameIsOver())

	e.GameOver()
	assert.True(t, e.GameIsOver())

	e.Reset()
	assert.False(t, e.GameIsOver())
}

func TestExplosionParticles(t *testing.T) {
	e := New(world.NewRandom(1))
	e.HandleEvents([]world.Event{
		{Type: world.EventBulletFired},
		{Type: world.EventAsteroidDestroyed, Position: physics.Vec(10, 10), Stage: 2},
	})
	require.Len(t, e.Particles(), 12)
	for _, p := range e.Particles() {
		assert.Equal(t, physics.Vec(10, 10), p.Position)
		assert.True(t, p.Visible())
	}

	e.HandleEvents([]world.Event{{Type: world.EventShipDestroyed}})
	assert.Len(t, e.Particles(), 42)

	// Longest explosion lifetime is 1.2s.
	e.Update(1.3, nil)
	assert.Empty(t, e.Particles())
}

func TestThrustParticles(t *testing.T) {
	e := New(world.NewRandom(1))
	snap := &world.Snapshot{Ship: *object.NewShip(physics.Vec(100, 100))}

	e.Update(0.01, snap)
	assert.Empty(t, e.Particles())

	snap.Ship.Thrusting = true
	e.Update(0.01, snap)
	n := len(e.Particles())
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 2)
	for _, p := range e.Particles() {
		assert.Less(t, p.Position.X, 100.0, "exhaust trails behind the ship")
	}
}

func TestParticleUpdate(t *testing.T) {
	p := NewParticle(physics.Vec(0, 0), physics.Vec(60, 0), 1)
	p.Drag = 1

	assert.False(t, p.Update(0.5))
	assert.Equal(t, physics.Vec(30, 0), p.Position)
	assert.True(t, p.Visible())

	assert.False(t, p.Update(0.3))
	assert.False(t, p.Visible())

	assert.True(t, p.Update(0.3))
	p.Release()
}
