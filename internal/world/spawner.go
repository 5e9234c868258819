package world

import (
	"fmt"

	"github.com/tomz197/geosteroids/internal/object"
	"github.com/tomz197/geosteroids/internal/physics"
)

// AsteroidSpawner sends waves of asteroids in from outside the screen.
// Each wave nudges the difficulty, which shortens the gap to the next one.
type AsteroidSpawner struct {
	cfg        Config
	difficulty float64
	waves      int
}

// NewAsteroidSpawner creates a spawner starting at the configured difficulty.
func NewAsteroidSpawner(cfg Config) *AsteroidSpawner {
	return &AsteroidSpawner{
		cfg:        cfg,
		difficulty: cfg.InitialDifficulty,
	}
}

// Difficulty returns the current difficulty level.
func (s *AsteroidSpawner) Difficulty() float64 {
	return s.difficulty
}

// Waves returns how many waves have been spawned.
func (s *AsteroidSpawner) Waves() int {
	return s.waves
}

// Wave creates the asteroids of one wave, advances the difficulty and
// returns the delay until the next wave.
func (s *AsteroidSpawner) Wave(rng Random) ([]*object.Asteroid, float64) {
	count := intRange(rng, s.cfg.MinWaveSize, s.cfg.MaxWaveSize)
	wave := make([]*object.Asteroid, 0, count)
	for range count {
		wave = append(wave, s.AtBorder(rng))
	}

	s.waves++
	s.difficulty = clamp(s.difficulty+s.cfg.DifficultyStep, s.cfg.MinDifficulty, s.cfg.MaxDifficulty)
	return wave, s.cfg.WaveBaseInterval - s.difficulty
}

// AtBorder creates a random asteroid just outside a random screen edge.
func (s *AsteroidSpawner) AtBorder(rng Random) *object.Asteroid {
	w := s.cfg.Screen.Width
	h := s.cfg.Screen.Height
	off := s.cfg.BorderOffset

	var pos physics.Vector
	switch side := rng.IntN(4); side {
	case 0: // Left
		pos = physics.Vec(-off, float64(intRange(rng, 0, h)))
	case 1: // Right
		pos = physics.Vec(float64(w)+off, float64(intRange(rng, 0, h)))
	case 2: // Top
		pos = physics.Vec(float64(intRange(rng, 0, w)), float64(h)+off)
	case 3: // Bottom
		pos = physics.Vec(float64(intRange(rng, 0, w)), -off)
	default:
		panic(fmt.Sprintf("world: invalid border side %d", side))
	}

	stage := intRange(rng, object.StageSmall, object.StageLarge)
	return s.Drifting(rng, pos, stage)
}

// Drifting creates an asteroid with a random drift, shape and orientation.
func (s *AsteroidSpawner) Drifting(rng Random, pos physics.Vector, stage int) *object.Asteroid {
	vel := physics.Vec(
		floatRange(rng, -s.cfg.MaxDrift, s.cfg.MaxDrift),
		floatRange(rng, -s.cfg.MaxDrift, s.cfg.MaxDrift),
	)
	return s.Shaped(rng, pos, vel, stage)
}

// Shaped creates an asteroid with the given motion and a random shape.
func (s *AsteroidSpawner) Shaped(rng Random, pos, vel physics.Vector, stage int) *object.Asteroid {
	sides := intRange(rng, object.MinSides, object.MaxSides)
	rotation := floatRange(rng, 0, 360)
	return object.NewAsteroid(pos, vel, sides, clampStage(stage), rotation)
}

func clampStage(stage int) int {
	return max(object.StageSmall, min(stage, object.StageLarge))
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
