package server

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// staleAfter is how long an address keeps its bucket after its last session.
const staleAfter = 10 * time.Minute

// Limiter rate-limits new sessions per remote host.
type Limiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*client
	now     func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter allows perSecond new sessions per host with the given burst.
func NewLimiter(perSecond float64, burst int) *Limiter {
	return &Limiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

// Allow reports whether a new session from addr may start.
func (l *Limiter) Allow(addr net.Addr) bool {
	host := hostOf(addr)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(now)

	c, ok := l.clients[host]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[host] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// evict drops idle hosts. Called with mu held.
func (l *Limiter) evict(now time.Time) {
	for host, c := range l.clients {
		if now.Sub(c.lastSeen) > staleAfter {
			delete(l.clients, host)
		}
	}
}

func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
