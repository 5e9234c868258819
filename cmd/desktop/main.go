package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/geosteroids/internal/audio"
	"github.com/tomz197/geosteroids/internal/config"
	"github.com/tomz197/geosteroids/internal/desktop"
	"github.com/tomz197/geosteroids/internal/logging"
	"github.com/tomz197/geosteroids/internal/loop"
	"github.com/tomz197/geosteroids/internal/world"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info").Fatal("failed to load configuration", "err", err)
	}
	logger := logging.New(os.Stderr, settings.LogLevel)

	sound := audio.NewSoundManager()
	if settings.AudioEnabled {
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		}
		defer sound.Cleanup()
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Geosteroids")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)

	game := desktop.New(loop.SessionOptions{
		World:  world.DefaultConfig(),
		Seed:   settings.Seed,
		Sound:  sound,
		Logger: logger,
	})
	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game error", "err", err)
		sound.Cleanup()
		os.Exit(1)
	}
}
