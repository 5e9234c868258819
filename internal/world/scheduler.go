package world

import "container/heap"

// action is a deferred piece of world logic.
type action int

const (
	actionSpawnWave action = iota
	actionRespawnCheck
)

func (a action) String() string {
	switch a {
	case actionSpawnWave:
		return "spawn-wave"
	case actionRespawnCheck:
		return "respawn-check"
	default:
		return "unknown"
	}
}

type scheduled struct {
	at     float64 // Simulation time in seconds
	seq    uint64  // Insertion order, breaks ties
	action action
}

// eventQueue is a min-heap on (at, seq).
type eventQueue []scheduled

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(scheduled)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// scheduler is the world's clock and delayed-action queue. It is advanced
// at the head of every tick, on the same goroutine as the rest of the update.
type scheduler struct {
	now   float64
	seq   uint64
	queue eventQueue
	due   []action
}

// After schedules a to run once delay seconds from now.
func (s *scheduler) After(delay float64, a action) {
	s.seq++
	heap.Push(&s.queue, scheduled{at: s.now + delay, seq: s.seq, action: a})
}

// Advance moves the clock forward by dt and returns every action due at the
// new time, in firing order. Actions scheduled while the caller runs the
// returned batch wait for the next Advance, even when already due.
func (s *scheduler) Advance(dt float64) []action {
	s.now += dt
	s.due = s.due[:0]
	for len(s.queue) > 0 && s.queue[0].at <= s.now {
		item := heap.Pop(&s.queue).(scheduled)
		s.due = append(s.due, item.action)
	}
	return s.due
}

// Now returns the current simulation time.
func (s *scheduler) Now() float64 {
	return s.now
}

// Pending counts queued entries of the given action.
func (s *scheduler) Pending(a action) int {
	n := 0
	for _, item := range s.queue {
		if item.action == a {
			n++
		}
	}
	return n
}
