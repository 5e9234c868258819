package world

import (
	"github.com/tomz197/geosteroids/internal/object"
)

// Gameplay constants.
const (
	InitialLives        = 3
	ScorePerAsteroid    = 100
	RespawnDelay        = 2.0  // Seconds between death and respawn/game over
	RespawnCircleRadius = 50.0 // Cleared of asteroids on respawn
)

// Config holds the tunables of a World. DefaultConfig reproduces the
// standard game.
type Config struct {
	Screen       object.Screen
	InitialLives int

	// Waves: the first arrives after FirstWaveDelay seconds, the next ones
	// WaveBaseInterval-difficulty seconds apart. Difficulty moves by
	// DifficultyStep per wave and is clamped to [MinDifficulty, MaxDifficulty].
	FirstWaveDelay    float64
	WaveBaseInterval  float64
	InitialDifficulty float64
	DifficultyStep    float64
	MinDifficulty     float64
	MaxDifficulty     float64
	MinWaveSize       int
	MaxWaveSize       int

	BorderOffset float64 // How far outside the edge wave asteroids appear
	MaxDrift     float64 // Max random speed per axis for spawned asteroids
}

// DefaultConfig returns the standard 1280x720 game settings.
func DefaultConfig() Config {
	return Config{
		Screen:            object.DefaultScreen,
		InitialLives:      InitialLives,
		FirstWaveDelay:    5,
		WaveBaseInterval:  5,
		InitialDifficulty: 0,
		DifficultyStep:    -0.25,
		MinDifficulty:     1,
		MaxDifficulty:     5,
		MinWaveSize:       2,
		MaxWaveSize:       5,
		BorderOffset:      30,
		MaxDrift:          50,
	}
}
