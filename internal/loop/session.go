// Package loop drives a game session: the title screen, the play screen and,
// for terminals, the frame loop that reads input and renders each frame.
package loop

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/geosteroids/internal/audio"
	"github.com/tomz197/geosteroids/internal/effects"
	"github.com/tomz197/geosteroids/internal/logging"
	"github.com/tomz197/geosteroids/internal/world"
)

// Screen is the session's current phase.
type Screen int

const (
	ScreenTitle Screen = iota // Title art, Enter to play, Esc to quit
	ScreenPlay                // A running (or finished) World
)

func (s Screen) String() string {
	switch s {
	case ScreenTitle:
		return "title"
	case ScreenPlay:
		return "play"
	default:
		return "unknown"
	}
}

// Controls is the frontend-independent input of one frame.
type Controls struct {
	Enter  bool // Pressed this frame
	Escape bool // Pressed this frame
	Game   world.Input
}

// SessionOptions configures a Session.
type SessionOptions struct {
	World  world.Config
	Seed   uint64              // 0 picks a time based seed
	Sound  *audio.SoundManager // nil plays nothing
	Logger *log.Logger         // nil discards
}

// Session is one player's run through the title and play screens. It is not
// safe for concurrent use.
type Session struct {
	opts   SessionOptions
	log    *log.Logger
	sound  *audio.SoundManager
	rng    world.Random
	screen Screen
	done   bool

	world   *world.World
	effects *effects.Effects
	snap    world.Snapshot
}

// NewSession creates a session showing the title screen.
func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.NewSoundManager()
	}

	rng := world.NewRandom(opts.Seed)
	return &Session{
		opts:    opts,
		log:     logger,
		sound:   sound,
		rng:     rng,
		screen:  ScreenTitle,
		effects: effects.New(rng),
	}
}

// Update advances the session by dt seconds.
func (s *Session) Update(dt float64, c Controls) {
	switch s.screen {
	case ScreenTitle:
		s.updateTitle(c)
	case ScreenPlay:
		s.updatePlay(dt, c)
	}
}

func (s *Session) updateTitle(c Controls) {
	if c.Escape {
		s.log.Debug("quit from title screen")
		s.done = true
		return
	}
	if c.Enter {
		s.start()
	}
}

// start begins a new game.
func (s *Session) start() {
	s.sound.Play(audio.SoundStart)
	s.effects.Reset()

	s.world = world.New(s.opts.World, s.rng)
	s.world.SetListener(world.Listeners{s.effects, s.sound, s})
	s.world.Snapshot(&s.snap)
	s.screen = ScreenPlay
	s.log.Info("game started")
}

func (s *Session) updatePlay(dt float64, c Controls) {
	in := c.Game
	in.Quit = c.Escape

	s.world.Update(dt, in)
	events := s.world.Events()
	s.effects.HandleEvents(events)
	s.sound.HandleEvents(events)

	s.world.Snapshot(&s.snap)
	s.sound.SetThrusting(s.snap.Ship.Alive && s.snap.Ship.Thrusting)
	s.effects.Update(dt, &s.snap)

	if s.world.QuitRequested() {
		s.log.Info("left after game over", "score", s.snap.Score)
		s.done = true
	}
}

// PlayerDied implements world.Listener for logging.
func (s *Session) PlayerDied(lives int) {
	s.log.Debug("player died", "lives", lives, "score", s.world.Score())
}

func (s *Session) PlayerRespawn() {
	s.log.Debug("player respawned")
}

func (s *Session) GameOver() {
	s.sound.SetThrusting(false)
	s.log.Info("game over", "score", s.world.Score(), "time", s.world.Time())
}

// Screen returns the current phase.
func (s *Session) Screen() Screen {
	return s.screen
}

// Done reports whether the player asked to leave.
func (s *Session) Done() bool {
	return s.done
}

// Snapshot returns the world state as of the last Update. Only meaningful
// on the play screen.
func (s *Session) Snapshot() *world.Snapshot {
	return &s.snap
}

// Effects returns the presentation effects.
func (s *Session) Effects() *effects.Effects {
	return s.effects
}

// Score returns the current score, or 0 before the first game.
func (s *Session) Score() int {
	if s.world == nil {
		return 0
	}
	return s.world.Score()
}
