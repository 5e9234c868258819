package effects

import (
	"math"
	"sync"

	"github.com/tomz197/geosteroids/internal/physics"
	"github.com/tomz197/geosteroids/internal/world"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	Position    physics.Vector
	Velocity    physics.Vector
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 60th of a second (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel physics.Vector, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.Position = pos
	p.Velocity = vel
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the system.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update moves the particle. It reports true once the particle has expired.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	p.Velocity = p.Velocity.Scale(math.Pow(p.Drag, dt*60)) // Normalize drag to ~60fps
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
	return false
}

// Visible reports whether the particle is still bright enough to draw.
// Particles in the last quarter of their life are skipped.
func (p *Particle) Visible() bool {
	return p.MaxLifetime <= 0 || p.Lifetime/p.MaxLifetime >= 0.25
}

// SpawnExplosion adds count particles bursting out of pos in random directions.
func (s *System) SpawnExplosion(pos physics.Vector, count int, speed, lifetime float64) {
	for range count {
		angle := s.rng.Float64() * 360
		// Speed 50% to 150%, lifetime 50% to 100%
		spd := speed * (0.5 + s.rng.Float64())
		life := lifetime * (0.5 + s.rng.Float64()*0.5)

		s.particles = append(s.particles, NewParticle(pos, physics.FromAngle(angle, spd), life))
	}
}

// SpawnThrust adds one or two exhaust particles behind a ship facing
// rotation degrees.
func (s *System) SpawnThrust(pos physics.Vector, rotation float64) {
	count := 1 + s.rng.IntN(2)
	for range count {
		// Opposite the facing, with some spread
		angle := rotation + 180 + (s.rng.Float64()-0.5)*30
		speed := 60 + s.rng.Float64()*30
		lifetime := 0.1 + s.rng.Float64()*0.15

		p := NewParticle(pos, physics.FromAngle(angle, speed), lifetime)
		p.Drag = 0.85
		s.particles = append(s.particles, p)
	}
}

// System owns a set of live particles.
type System struct {
	rng       world.Random
	particles []*Particle
}

// NewSystem creates an empty particle system.
func NewSystem(rng world.Random) *System {
	return &System{rng: rng}
}

// Update advances every particle and releases expired ones.
func (s *System) Update(dt float64) {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

// Particles returns the live particles. The slice is reused by Update.
func (s *System) Particles() []*Particle {
	return s.particles
}

// Reset releases every particle.
func (s *System) Reset() {
	for _, p := range s.particles {
		p.Release()
	}
	clear(s.particles)
	s.particles = s.particles[:0]
}
