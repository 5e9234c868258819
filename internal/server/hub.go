// Package server hosts game sessions over SSH. Every connection plays its own
// World; the Hub only tracks sessions so they can be stopped on shutdown.
package server

import (
	"context"
	"sync"
	"time"
)

// Hub tracks running sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int]*handle
	nextID   int
	closing  bool
}

type handle struct {
	user   string
	cancel context.CancelFunc
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[int]*handle)}
}

// Register adds a session. The returned context is cancelled by Shutdown; the
// caller must call done when the session ends. ok is false once the hub is
// shutting down.
func (h *Hub) Register(parent context.Context, user string) (ctx context.Context, done func(), ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closing {
		return nil, nil, false
	}

	id := h.nextID
	h.nextID++
	ctx, cancel := context.WithCancel(parent)
	h.sessions[id] = &handle{user: user, cancel: cancel}

	return ctx, func() { h.unregister(id) }, true
}

func (h *Hub) unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[id]; ok {
		s.cancel()
		delete(h.sessions, id)
	}
}

// Active returns the number of running sessions.
func (h *Hub) Active() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Shutdown stops accepting sessions, cancels the running ones and waits
// until they have ended or timeout passes. It reports whether every session
// ended in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.Lock()
	h.closing = true
	for _, s := range h.sessions {
		s.cancel()
	}
	h.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Active() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
