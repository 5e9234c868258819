package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/tomz197/geosteroids/internal/config"
	"github.com/tomz197/geosteroids/internal/logging"
	"github.com/tomz197/geosteroids/internal/server"
)

// Session drain timeout on shutdown.
const shutdownTimeout = 15 * time.Second

func main() {
	settings, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info").Fatal("failed to load configuration", "err", err)
	}
	logger := logging.New(os.Stderr, settings.LogLevel)

	cfg := settings.SSH
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", cfg.Host, "port", cfg.Port, "hostKeyPath", cfg.HostKeyPath,
		"idleTimeout", cfg.IdleTimeout, "workingDir", workingDir)

	hub := server.NewHub()
	limiter := server.NewLimiter(cfg.RatePerSecond, cfg.RateBurst)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		// Middlewares run last to first: logging, rate limit, PTY check, game.
		wish.WithMiddleware(
			server.GameMiddleware(hub, server.Options{
				IdleTimeout: cfg.IdleTimeout,
				Seed:        settings.Seed,
				Logger:      logger,
			}),
			activeterm.Middleware(),
			server.RateLimitMiddleware(limiter, logger),
			wishlogging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", hub.Active())

	if !hub.Shutdown(shutdownTimeout) {
		logger.Warn("sessions still running after timeout", "sessions", hub.Active())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
