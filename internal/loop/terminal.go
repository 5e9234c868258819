package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/geosteroids/internal/audio"
	"github.com/tomz197/geosteroids/internal/config"
	"github.com/tomz197/geosteroids/internal/draw"
	"github.com/tomz197/geosteroids/internal/input"
	"github.com/tomz197/geosteroids/internal/logging"
	"github.com/tomz197/geosteroids/internal/world"
)

// maxFrameDelta caps dt so a stalled frame doesn't teleport everything.
const maxFrameDelta = 0.1

// ErrIdle is returned by Run when the player sent no input for too long.
var ErrIdle = errors.New("loop: idle timeout")

// Options configures Run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	IdleTimeout  time.Duration // 0 disables the idle disconnect
	Seed         uint64
	Sound        *audio.SoundManager
	Logger       *log.Logger
}

// terminal renders a Session to an ANSI terminal.
type terminal struct {
	session  *Session
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter // Accumulates a frame for chunked output
	stream   *input.Stream
	termSize draw.TermSizeFunc
	log      *log.Logger

	in          input.Input
	idleTimeout time.Duration
	lastInput   time.Time

	// Previous frame state; a change clears the terminal.
	prevScreen  Screen
	wasOver     bool
	inactive    bool
	wasInactive bool
}

// newTerminal sets up the canvas for the current terminal size.
func newTerminal(w io.Writer, stream *input.Stream, opts Options) *terminal {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	cfg := world.DefaultConfig()
	session := NewSession(SessionOptions{
		World:  cfg,
		Seed:   opts.Seed,
		Sound:  opts.Sound,
		Logger: logger,
	})

	termW, termH, err := termSize()
	if err != nil {
		termW, termH = 80, 24
	}
	renderW, renderH, offCol, offRow := draw.ClampSize(termW, termH, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewCanvas(renderW, renderH, float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	canvas.SetOffset(offCol, offRow)

	return &terminal{
		session:     session,
		canvas:      canvas,
		cw:          draw.NewChunkWriter(w, offCol, offRow),
		stream:      stream,
		termSize:    termSize,
		log:         logger,
		idleTimeout: opts.IdleTimeout,
		lastInput:   time.Now(),
		prevScreen:  session.Screen(),
	}
}

// Run plays one session on a terminal, reading raw input bytes from r and
// writing frames to w. It returns nil when the player quits, the input ends
// or ctx is done, and ErrIdle after IdleTimeout without input.
func Run(ctx context.Context, r io.ByteReader, w io.Writer, opts Options) error {
	t := newTerminal(w, input.StartStream(r), opts)
	t.log.Info("session started")

	draw.EnterGame(w)
	defer draw.LeaveGame(w)

	err := t.run(ctx)
	if err != nil {
		t.log.Info("session ended", "score", t.session.Score(), "err", err)
	} else {
		t.log.Info("session ended", "score", t.session.Score())
	}
	return err
}

func (t *terminal) run(ctx context.Context) error {
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		dt := min(frameStart.Sub(lastTime).Seconds(), maxFrameDelta)
		lastTime = frameStart

		t.in = input.ReadInput(t.stream)
		if t.in.Interrupt || t.in.Closed {
			return nil
		}
		if err := t.checkIdle(frameStart); err != nil {
			return err
		}

		t.updateScreen()

		screen := t.session.Screen()
		t.session.Update(dt, t.controls())
		if t.session.Done() {
			return nil
		}
		if t.session.Screen() != screen {
			input.ResetKeyInput(t.stream)
		}

		if err := t.drawFrame(); err != nil {
			return fmt.Errorf("failed to draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}
}

// checkIdle tracks input activity. The warning shows during the last quarter
// of the idle timeout.
func (t *terminal) checkIdle(now time.Time) error {
	if len(t.in.Pressed) > 0 {
		t.lastInput = now
		t.inactive = false
		return nil
	}
	if t.idleTimeout <= 0 {
		return nil
	}

	idle := now.Sub(t.lastInput)
	if idle > t.idleTimeout {
		return ErrIdle
	}
	t.inactive = idle > t.idleTimeout*3/4
	return nil
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (t *terminal) updateScreen() {
	termW, termH, err := t.termSize()
	if err != nil {
		return
	}
	renderW, renderH, offCol, offRow := draw.ClampSize(termW, termH, config.MaxTermWidth, config.MaxTermHeight)

	if renderW != t.canvas.TerminalWidth() || renderH != t.canvas.TerminalHeight() ||
		offCol != t.canvas.OffsetCol() || offRow != t.canvas.OffsetRow() {
		draw.ClearScreen(t.cw)
		t.canvas.ForceRedraw()
	}

	t.canvas.Resize(renderW, renderH)
	t.canvas.SetOffset(offCol, offRow)
	t.cw.SetOffset(offCol, offRow)
}

// controls translates terminal input into session controls. Mouse clicks
// on the playfield request debug asteroids: left places a drifting one,
// right a stationary one.
func (t *terminal) controls() Controls {
	c := Controls{
		Enter:  t.in.Enter,
		Escape: t.in.Escape,
		Game: world.Input{
			RotateLeft:  t.in.Left,
			RotateRight: t.in.Right,
			Thrust:      t.in.Thrust,
			Fire:        t.in.Fire,
		},
	}

	for _, click := range t.in.Clicks {
		if click.Button == input.MouseMiddle {
			continue
		}
		pos, ok := t.canvas.TerminalToWorld(click.Col, click.Row)
		if !ok {
			continue
		}
		c.Game.Spawns = append(c.Game.Spawns, world.SpawnRequest{
			Position: pos,
			Moving:   click.Button == input.MouseLeft,
		})
	}
	return c
}
