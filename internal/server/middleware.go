package server

import (
	"bufio"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"github.com/tomz197/geosteroids/internal/draw"
	"github.com/tomz197/geosteroids/internal/logging"
	"github.com/tomz197/geosteroids/internal/loop"
)

// Options configures GameMiddleware.
type Options struct {
	IdleTimeout time.Duration
	Seed        uint64
	Logger      *log.Logger
}

// GameMiddleware plays one game per SSH session. Sessions without a PTY are
// turned away.
func GameMiddleware(hub *Hub, opts Options) wish.Middleware {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				wish.Fatalln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			ctx, done, ok := hub.Register(sess.Context(), sess.User())
			if !ok {
				wish.Fatalln(sess, "The server is shutting down. Please reconnect in a moment.")
				return
			}
			defer done()

			logger := opts.Logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
			logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Track window changes for the frame loop
			sizes := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizes.update(win.Width, win.Height)
				}
			}()

			err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
				TermSizeFunc: sizes.getSize,
				IdleTimeout:  opts.IdleTimeout,
				Seed:         opts.Seed,
				Logger:       logger,
			})
			switch {
			case errors.Is(err, loop.ErrIdle):
				wish.Println(sess, "Disconnected after being idle for too long.")
			case err != nil:
				logger.Error("game error", "err", err)
			case ctx.Err() != nil && sess.Context().Err() == nil:
				wish.Println(sess, "The server is restarting for maintenance. Please reconnect in a moment.")
			}

			next(sess)
		}
	}
}

// RateLimitMiddleware rejects sessions from hosts that connect too often.
func RateLimitMiddleware(l *Limiter, logger *log.Logger) wish.Middleware {
	if logger == nil {
		logger = logging.Discard()
	}

	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			if !l.Allow(sess.RemoteAddr()) {
				logger.Warn("rate limited", "remote", sess.RemoteAddr().String())
				wish.Fatalln(sess, "Too many connections. Please try again later.")
				return
			}
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
