package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/geosteroids/internal/input"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func bufioReader(r io.Reader) io.ByteReader {
	return bufio.NewReader(r)
}

func newTestTerminal(out io.Writer) *terminal {
	return newTerminal(out, nil, Options{TermSizeFunc: fixedSize(100, 30), Seed: 7})
}

func TestRunEndsWhenInputCloses(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(""), &out, Options{TermSizeFunc: fixedSize(100, 30)})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "\033[?1049h", "enters the alternate screen")
	assert.True(t, strings.HasSuffix(s, "\033[?1049l"), "restores the terminal last")
}

func TestRunQuitsFromTitle(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	go pw.Write([]byte("q"))

	var out bytes.Buffer
	err := Run(context.Background(), bufioReader(pr), &out, Options{TermSizeFunc: fixedSize(100, 30)})
	require.NoError(t, err)
}

func TestRunIdleTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	err := Run(context.Background(), bufioReader(pr), &out, Options{
		TermSizeFunc: fixedSize(100, 30),
		IdleTimeout:  50 * time.Millisecond,
	})
	assert.ErrorIs(t, err, ErrIdle)
}

func TestRunStopsOnContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, Run(ctx, bufioReader(pr), &out, Options{TermSizeFunc: fixedSize(100, 30)}))
}

func TestDrawTitleScreen(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out)

	require.NoError(t, term.drawFrame())
	assert.Contains(t, out.String(), "~ Asteroids in your terminal ~")
	assert.Contains(t, out.String(), "Controls")
}

func TestDrawPlayingAndGameOver(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out)

	term.session.Update(tick, Controls{Enter: true})
	require.NoError(t, term.drawFrame())
	assert.Contains(t, out.String(), "\033[H\033[2J", "screen change clears")
	assert.Contains(t, out.String(), "Score: 0")
	assert.NotContains(t, out.String(), "G A M E")

	// The first lives icon has a wing at world (8, 660).
	assert.True(t, term.canvas.Pixel(1, 5))

	playUntilGameOver(t, term.session)
	out.Reset()
	require.NoError(t, term.drawFrame())
	assert.Contains(t, out.String(), "G A M E   O V E R")
	assert.Contains(t, out.String(), "ESC to quit")
}

func TestDrawInactivityWarning(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out)
	term.idleTimeout = time.Minute

	require.NoError(t, term.checkIdle(term.lastInput.Add(50*time.Second)))
	require.True(t, term.inactive)
	require.NoError(t, term.drawFrame())
	assert.Contains(t, out.String(), "INACTIVITY WARNING")

	term.in.Pressed = []byte("x")
	require.NoError(t, term.checkIdle(term.lastInput.Add(55*time.Second)))
	assert.False(t, term.inactive)

	term.in.Pressed = nil
	assert.ErrorIs(t, term.checkIdle(term.lastInput.Add(61*time.Second)), ErrIdle)
}

func TestControlsMapClicksToSpawns(t *testing.T) {
	term := newTestTerminal(io.Discard)
	term.in = input.Input{
		Left: true,
		Fire: true,
		Clicks: []input.Click{
			{Col: 51, Row: 16, Button: input.MouseLeft},
			{Col: 1, Row: 1, Button: input.MouseRight},
			{Col: 10, Row: 10, Button: input.MouseMiddle},
			{Col: 500, Row: 10, Button: input.MouseLeft},
		},
	}

	c := term.controls()
	assert.True(t, c.Game.RotateLeft)
	assert.True(t, c.Game.Fire)
	require.Len(t, c.Game.Spawns, 2)
	assert.True(t, c.Game.Spawns[0].Moving)
	assert.False(t, c.Game.Spawns[1].Moving)
	assert.InDelta(t, 640, c.Game.Spawns[0].Position.X, 7)
	assert.Greater(t, c.Game.Spawns[1].Position.Y, 700.0, "top row is the top of the playfield")
}

func TestUpdateScreenFollowsResize(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out)

	term.termSize = fixedSize(240, 30)
	term.updateScreen()
	assert.Equal(t, 200, term.canvas.TerminalWidth())
	assert.Equal(t, 20, term.canvas.OffsetCol())

	require.NoError(t, term.cw.Flush())
	assert.Contains(t, out.String(), "\033[H\033[2J")
}
