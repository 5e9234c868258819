package world

import (
	"github.com/tomz197/geosteroids/internal/physics"
)

// Listener is notified of player lifecycle changes. Calls happen
// synchronously inside World.Update, once per logical event.
type Listener interface {
	PlayerDied(lives int)
	PlayerRespawn()
	GameOver()
}

// Listeners fans notifications out to several listeners in order.
// Nil entries are skipped.
type Listeners []Listener

func (ls Listeners) PlayerDied(lives int) {
	for _, l := range ls {
		if l != nil {
			l.PlayerDied(lives)
		}
	}
}

func (ls Listeners) PlayerRespawn() {
	for _, l := range ls {
		if l != nil {
			l.PlayerRespawn()
		}
	}
}

func (ls Listeners) GameOver() {
	for _, l := range ls {
		if l != nil {
			l.GameOver()
		}
	}
}

// EventType identifies a cosmetic effect produced during a tick.
type EventType int

const (
	EventBulletFired EventType = iota
	EventAsteroidDestroyed
	EventAsteroidPlaced
	EventShipDestroyed
)

// Event is something observers may want to play a sound or draw particles
// for. Position is where it happened; Stage is set for asteroid events.
type Event struct {
	Type     EventType
	Position physics.Vector
	Stage    int
}
