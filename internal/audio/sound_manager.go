// Package audio synthesises the game's sound cues with beep. Every call is
// safe before Initialize or after Cleanup; the game simply runs silent.
package audio

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/geosteroids/internal/world"
)

const (
	sampleRate = beep.SampleRate(48000)

	speakerBuffer = 100 * time.Millisecond
	boomVariants  = 3
)

// Sound is a one-shot cue.
type Sound int

const (
	SoundPew Sound = iota
	SoundBoom
	SoundExplosion
	SoundRespawn
	SoundGameOver
	SoundPut
	SoundStart
)

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	thruster    *beep.Ctrl
	initialized bool
}

var _ world.Listener = (*SoundManager)(nil)

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBuffer)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.thruster = nil
	sm.initialized = false
}

// Enabled reports whether sounds are actually played.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play starts a one-shot cue.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := newSound(s, rand.IntN(boomVariants))
	if streamer == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// SetThrusting starts or pauses the engine loop.
func (sm *SoundManager) SetThrusting(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if sm.thruster == nil {
		if !on {
			return
		}
		sm.thruster = &beep.Ctrl{Streamer: newThruster()}
		sm.mixer.Add(sm.thruster)
		return
	}
	sm.thruster.Paused = !on
}

// HandleEvents plays the cues for the world's events of the last tick.
func (sm *SoundManager) HandleEvents(events []world.Event) {
	for _, ev := range events {
		switch ev.Type {
		case world.EventBulletFired:
			sm.Play(SoundPew)
		case world.EventAsteroidDestroyed:
			sm.Play(SoundBoom)
		case world.EventAsteroidPlaced:
			sm.Play(SoundPut)
		}
	}
}

func (sm *SoundManager) PlayerDied(int) {
	sm.SetThrusting(false)
	sm.Play(SoundExplosion)
}

func (sm *SoundManager) PlayerRespawn() {
	sm.Play(SoundRespawn)
}

func (sm *SoundManager) GameOver() {
	sm.Play(SoundGameOver)
}
