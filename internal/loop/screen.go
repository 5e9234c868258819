package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/geosteroids/internal/draw"
	"github.com/tomz197/geosteroids/internal/object"
	"github.com/tomz197/geosteroids/internal/physics"
)

// titleArt is figlet "small".
var titleArt = []string{
	`  ___ ___ ___  ___ _____ ___ ___  ___ ___ ___  ___ `,
	` / __| __/ _ \/ __|_   _| __| _ \/ _ \_ _|   \/ __|`,
	`| (_ | _| (_) \__ \ | | | _||   / (_) | || |) \__ \`,
	` \___|___\___/|___/ |_| |___|_|_\\___/___|___/|___/`,
}

var controlLines = []string{
	"W / Up  . . . . . . Thrust",
	"A D / < >  . . . .  Rotate",
	"SPACE  . . . . . . . Shoot",
	"Click  . . . Place asteroid",
	"Q / ESC  . . . . . .  Quit",
}

// Lives indicator, in world units from the top-left corner.
const (
	livesIconX       = 18.0
	livesIconSpacing = 30.0
	livesIconDrop    = 50.0
)

// drawFrame draws the current frame.
func (t *terminal) drawFrame() error {
	screen := t.session.Screen()
	over := screen == ScreenPlay && t.session.Effects().GameIsOver()

	// On screen, game over or inactivity transitions, do a full terminal
	// clear so text from the previous state doesn't persist.
	if screen != t.prevScreen || over != t.wasOver || t.inactive != t.wasInactive {
		draw.ClearScreen(t.cw)
		t.canvas.ForceRedraw()
		t.prevScreen = screen
		t.wasOver = over
		t.wasInactive = t.inactive
	}

	t.canvas.Clear()
	if screen == ScreenPlay {
		t.drawWorld()
	}

	t.canvas.Render(t.cw)
	t.canvas.RenderBorder(t.cw)

	t.drawUI(screen, over)
	return t.cw.Flush()
}

// drawWorld rasterizes the playfield onto the canvas.
func (t *terminal) drawWorld() {
	snap := t.session.Snapshot()
	fx := t.session.Effects()
	c := t.canvas

	c.SetCamera(fx.ShakeOffset())

	for i := range snap.Asteroids {
		c.DrawPolygon(snap.Asteroids[i].Vertices())
	}
	for i := range snap.Bullets {
		c.SetPoint(snap.Bullets[i].Position)
	}
	for _, p := range fx.Particles() {
		if p.Visible() {
			c.SetPoint(p.Position)
		}
	}

	if snap.Ship.Alive {
		hull, flame := snap.Ship.Outline()
		c.DrawPolygon(hull[:])
		if snap.Ship.FlameVisible() {
			c.DrawPolygon(flame[:])
		}
	}
	if radius, ok := fx.RespawnRing(); ok {
		c.DrawCircle(snap.Ship.Position, radius)
	}

	// The lives indicator doesn't shake.
	c.SetCamera(physics.Vector{})
	top := float64(t.session.opts.World.Screen.Height) - livesIconDrop
	for i := range snap.Lives {
		hull, _ := object.ShipOutline(physics.Vec(livesIconX+livesIconSpacing*float64(i), top), 90)
		c.DrawPolygon(hull[:])
	}
}

// drawUI draws the text overlay.
func (t *terminal) drawUI(screen Screen, over bool) {
	width := t.canvas.TerminalWidth()
	centerY := t.canvas.TerminalHeight() / 2

	if t.inactive {
		t.drawInactivityScreen(width, centerY)
		return
	}

	switch screen {
	case ScreenTitle:
		t.drawTitleScreen(width, centerY)
	case ScreenPlay:
		t.drawPlayingHUD()
		if over {
			t.drawGameOver(width, centerY)
		}
	}
}

// drawInactivityScreen draws the idle disconnect warning.
func (t *terminal) drawInactivityScreen(width, centerY int) {
	cw := t.cw
	cw.WriteCentered(width, centerY-2, "INACTIVITY WARNING")

	left := max(int((t.idleTimeout - time.Since(t.lastInput)).Seconds()), 0)
	cw.WriteCentered(width, centerY, fmt.Sprintf("You will be disconnected in %d seconds.", left))
	cw.WriteCentered(width, centerY+2, "Press any key to continue")
}

// drawTitleScreen draws the title art, controls and a blinking prompt.
func (t *terminal) drawTitleScreen(width, centerY int) {
	cw := t.cw
	y := centerY - 7
	for i, line := range titleArt {
		cw.WriteCentered(width, y+i, line)
	}
	y += len(titleArt) + 1
	cw.WriteCentered(width, y, "~ Asteroids in your terminal ~")

	y += 2
	cw.WriteCentered(width, y, "Controls")
	for i, line := range controlLines {
		cw.WriteCentered(width, y+1+i, line)
	}

	// Blinking start prompt; the canvas wipes it while it's off.
	prompt := ">>  Press ENTER to Start  <<"
	row := y + len(controlLines) + 2
	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(width, row, prompt)
	} else {
		col := max((width-len(prompt))/2+1, 1)
		t.canvas.MarkTextDirty(col, row, len(prompt))
	}
}

// drawPlayingHUD draws the score. Fixed width so a shorter value doesn't
// leave residual digits.
func (t *terminal) drawPlayingHUD() {
	t.cw.WriteAt(2, 1, fmt.Sprintf("Score: %-8d", t.session.Snapshot().Score))
}

// drawGameOver draws the game over overlay.
func (t *terminal) drawGameOver(width, centerY int) {
	cw := t.cw
	title := "G A M E   O V E R"
	border := strings.Repeat("═", len(title)+4)
	cw.WriteCentered(width, centerY-3, "╔"+border+"╗")
	cw.WriteCentered(width, centerY-2, "║  "+title+"  ║")
	cw.WriteCentered(width, centerY-1, "╚"+border+"╝")

	cw.WriteCentered(width, centerY+1, fmt.Sprintf("Score: %d", t.session.Snapshot().Score))
	cw.WriteCentered(width, centerY+3, "ESC to quit")
}
