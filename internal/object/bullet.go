package object

import (
	"github.com/tomz197/geosteroids/internal/physics"
)

// BulletSpeed is the muzzle speed added on top of the shooter's velocity.
const BulletSpeed = 400.0

// BulletMaxSpeed caps the combined speed.
const BulletMaxSpeed = BulletSpeed * 1.5

// BulletLifetime is how long bullets last before disappearing.
const BulletLifetime = 2.0

// BulletRadius is the collision radius of a bullet.
const BulletRadius = 1.0

// Bullet is a projectile fired by the ship.
type Bullet struct {
	Entity
	Lifetime float64 // Seconds since firing
}

// NewBullet creates a bullet at position travelling along rotation (degrees).
// It inherits the shooter's velocity; the resulting speed is clamped to
// [BulletSpeed, BulletMaxSpeed].
func NewBullet(position, shooterVelocity physics.Vector, rotation float64) *Bullet {
	velocity := shooterVelocity.Add(physics.FromAngle(rotation, BulletSpeed)).Clamp(BulletSpeed, BulletMaxSpeed)
	return &Bullet{
		Entity: Entity{
			Position: position,
			Velocity: velocity,
			Radius:   BulletRadius,
		},
	}
}

// Update ages the bullet and moves it.
func (b *Bullet) Update(dt float64, screen Screen) {
	b.Lifetime += dt
	b.Entity.Update(dt, screen)
}

// Alive reports whether the bullet is still within its lifetime.
func (b *Bullet) Alive() bool {
	return b.Lifetime <= BulletLifetime
}
