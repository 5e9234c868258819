package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave whose frequency glides linearly from
// freq to freqEnd over its duration.
type oscillator struct {
	freq     float64
	freqEnd  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		freqEnd:  to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.freqEnd-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. math.Log2(0) is -Inf, so zero means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// shaped is an oscillator with an envelope spanning its whole duration.
func shaped(from, to float64, d, attack, release time.Duration, wave WaveType) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, sampleRate), d, attack, release, sampleRate)
}

// newSound builds a one-shot streamer. variant picks between alternatives
// of the same cue and is ignored by cues that have none.
func newSound(s Sound, variant int) beep.Streamer {
	ms := time.Millisecond

	switch s {
	case SoundPew:
		return newVolume(shaped(1400, 300, 120*ms, 2*ms, 60*ms, WaveSquare), 0.15)

	case SoundBoom:
		lengths := [boomVariants]time.Duration{180 * ms, 260 * ms, 340 * ms}
		d := lengths[variant%boomVariants]
		return newVolume(beep.Mix(
			shaped(0, 0, d, 2*ms, d*2/3, WaveNoise),
			newVolume(shaped(120, 40, d, 2*ms, d/2, WaveSine), 0.8),
		), 0.3)

	case SoundExplosion:
		d := 900 * ms
		return newVolume(beep.Mix(
			shaped(0, 0, d, 5*ms, 700*ms, WaveNoise),
			shaped(90, 30, d, 5*ms, 600*ms, WaveSine),
		), 0.35)

	case SoundRespawn:
		return newVolume(beep.Seq(
			shaped(440, 440, 90*ms, 5*ms, 40*ms, WaveSine),
			shaped(660, 660, 90*ms, 5*ms, 40*ms, WaveSine),
			shaped(880, 880, 160*ms, 5*ms, 100*ms, WaveSine),
		), 0.3)

	case SoundGameOver:
		return newVolume(beep.Seq(
			shaped(330, 300, 250*ms, 10*ms, 80*ms, WaveSaw),
			shaped(220, 110, 600*ms, 10*ms, 400*ms, WaveSaw),
		), 0.2)

	case SoundPut:
		return newVolume(shaped(200, 600, 60*ms, 2*ms, 30*ms, WaveSine), 0.3)

	case SoundStart:
		return newVolume(beep.Seq(
			shaped(523.25, 523.25, 100*ms, 5*ms, 40*ms, WaveSquare),
			shaped(783.99, 783.99, 100*ms, 5*ms, 40*ms, WaveSquare),
			shaped(1046.5, 1046.5, 220*ms, 5*ms, 150*ms, WaveSquare),
		), 0.12)

	default:
		return nil
	}
}

// newThruster is an endless hiss for the ship engine.
func newThruster() beep.Streamer {
	noise := &oscillator{duration: math.MaxInt, wave: WaveNoise, rate: sampleRate}
	return newVolume(noise, 0.08)
}
