package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the runtime options shared by the cmd entry points.
type Settings struct {
	LogLevel     string
	Seed         uint64 // 0 picks a time based seed
	AudioEnabled bool

	SSH SSHSettings
}

// SSHSettings configures cmd/ssh.
type SSHSettings struct {
	Host          string
	Port          string
	HostKeyPath   string
	IdleTimeout   time.Duration
	RatePerSecond float64 // New sessions per second allowed from one address
	RateBurst     int
}

// Load reads an optional .env file from the working directory and then
// builds Settings from the environment.
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to read .env: %w", err)
	}

	s := Settings{
		LogLevel:     GetEnv("LOG_LEVEL", "info"),
		Seed:         uint64(GetEnvInt("GAME_SEED", 0)),
		AudioEnabled: GetEnvBool("AUDIO_ENABLED", true),
		SSH: SSHSettings{
			Host:          GetEnv("SSH_HOST", "::"),
			Port:          GetEnv("SSH_PORT", "2222"),
			HostKeyPath:   GetEnv("SSH_HOST_KEY", "/app/keys/host_key"),
			IdleTimeout:   GetEnvDuration("SSH_IDLE_TIMEOUT", 2*time.Minute),
			RatePerSecond: GetEnvFloat("SSH_RATE_PER_SECOND", 0.5),
			RateBurst:     GetEnvInt("SSH_RATE_BURST", 3),
		},
	}

	if err := s.validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.SSH.RatePerSecond <= 0 {
		return fmt.Errorf("SSH_RATE_PER_SECOND must be positive, got %v", s.SSH.RatePerSecond)
	}
	if s.SSH.RateBurst < 1 {
		return fmt.Errorf("SSH_RATE_BURST must be at least 1, got %d", s.SSH.RateBurst)
	}
	if s.SSH.IdleTimeout < 0 {
		return fmt.Errorf("SSH_IDLE_TIMEOUT must not be negative, got %s", s.SSH.IdleTimeout)
	}
	return nil
}
