package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/geosteroids/internal/audio"
	"github.com/tomz197/geosteroids/internal/config"
	"github.com/tomz197/geosteroids/internal/logging"
	"github.com/tomz197/geosteroids/internal/loop"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs would draw over the playfield, so they are kept only when stderr
	// is redirected.
	logger := logging.Discard()
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		logger = logging.New(os.Stderr, settings.LogLevel)
	}

	sound := audio.NewSoundManager()
	if settings.AudioEnabled {
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		}
		defer sound.Cleanup()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(context.Background(), reader, os.Stdout, loop.Options{
		Seed:   settings.Seed,
		Sound:  sound,
		Logger: logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
