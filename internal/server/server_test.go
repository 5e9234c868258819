package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegister(t *testing.T) {
	hub := NewHub()

	ctx, done, ok := hub.Register(context.Background(), "alice")
	require.True(t, ok)
	assert.Equal(t, 1, hub.Active())
	assert.NoError(t, ctx.Err())

	done()
	assert.Zero(t, hub.Active())
	assert.Error(t, ctx.Err(), "done cancels the session context")

	assert.NotPanics(t, done, "done is idempotent")
}

func TestHubShutdownCancelsSessions(t *testing.T) {
	hub := NewHub()

	ctx, done, ok := hub.Register(context.Background(), "bob")
	require.True(t, ok)
	go func() {
		<-ctx.Done()
		done()
	}()

	assert.True(t, hub.Shutdown(time.Second))
	assert.Zero(t, hub.Active())

	_, _, ok = hub.Register(context.Background(), "late")
	assert.False(t, ok, "no new sessions while shutting down")
}

func TestHubShutdownTimeout(t *testing.T) {
	hub := NewHub()
	_, _, ok := hub.Register(context.Background(), "stuck")
	require.True(t, ok)

	assert.False(t, hub.Shutdown(60*time.Millisecond))
	assert.Equal(t, 1, hub.Active())
}

func TestLimiterPerHost(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewLimiter(0.5, 2)
	l.now = func() time.Time { return now }

	a := &net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 50000}
	aOtherPort := &net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 50001}
	b := &net.TCPAddr{IP: net.ParseIP("10.0.0.2"), Port: 50000}

	assert.True(t, l.Allow(a))
	assert.True(t, l.Allow(aOtherPort))
	assert.False(t, l.Allow(a), "burst used up")
	assert.True(t, l.Allow(b), "other hosts are independent")

	now = now.Add(2 * time.Second)
	assert.True(t, l.Allow(a), "one token refilled")
	assert.False(t, l.Allow(a))
}

func TestLimiterEvictsIdleHosts(t *testing.T) {
	now := time.Unix(1000, 0)
	l := NewLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.Allow(&net.TCPAddr{IP: net.ParseIP("10.0.0.1")})
	require.Len(t, l.clients, 1)

	now = now.Add(staleAfter + time.Second)
	l.Allow(&net.TCPAddr{IP: net.ParseIP("10.0.0.2")})
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "10.0.0.2")
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "::1", hostOf(&net.TCPAddr{IP: net.ParseIP("::1"), Port: 22}))
	assert.Equal(t, "example", hostOf(&net.UnixAddr{Name: "example", Net: "unix"}))
	assert.Equal(t, "", hostOf(nil))
}

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)

	w, h, err := s.getSize()
	require.NoError(t, err)
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}
