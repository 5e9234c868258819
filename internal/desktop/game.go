// Package desktop runs a Session in an ebiten window with vector graphics.
package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/geosteroids/internal/loop"
	"github.com/tomz197/geosteroids/internal/object"
	"github.com/tomz197/geosteroids/internal/physics"
	"github.com/tomz197/geosteroids/internal/world"
)

const strokeWidth = 1.5

var (
	foreground = color.RGBA{230, 230, 230, 255}
	flameColor = color.RGBA{255, 170, 60, 255}
	ringColor  = color.RGBA{90, 200, 255, 255}
)

// Game implements ebiten.Game.
type Game struct {
	session *loop.Session
	width   int
	height  int
}

// New creates a game window of the configured playfield size.
func New(opts loop.SessionOptions) *Game {
	return &Game{
		session: loop.NewSession(opts),
		width:   opts.World.Screen.Width,
		height:  opts.World.Screen.Height,
	}
}

// Update advances one tick. It returns ebiten.Termination when the player quits.
func (g *Game) Update() error {
	g.session.Update(1/float64(ebiten.TPS()), g.controls(readKeys()))
	if g.session.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// keys is the raw keyboard and mouse state of one tick.
type keys struct {
	left, right, thrust bool
	fire, enter, escape bool

	clickLeft, clickRight bool
	cursorX, cursorY      int
}

func readKeys() keys {
	x, y := ebiten.CursorPosition()
	return keys{
		left:       ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		right:      ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		thrust:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		fire:       inpututil.IsKeyJustPressed(ebiten.KeySpace),
		enter:      inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		escape:     inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		clickLeft:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		clickRight: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		cursorX:    x,
		cursorY:    y,
	}
}

// controls maps key state to session controls. A left click places a
// drifting asteroid under the cursor, a right click a stationary one.
func (g *Game) controls(k keys) loop.Controls {
	c := loop.Controls{
		Enter:  k.enter,
		Escape: k.escape,
		Game: world.Input{
			RotateLeft:  k.left,
			RotateRight: k.right,
			Thrust:      k.thrust,
			Fire:        k.fire,
		},
	}

	if k.clickLeft || k.clickRight {
		c.Game.Spawns = append(c.Game.Spawns, world.SpawnRequest{
			Position: g.toWorld(k.cursorX, k.cursorY),
			Moving:   k.clickLeft,
		})
	}
	return c
}

// toWorld converts window pixels (y down) to world coordinates (y up).
func (g *Game) toWorld(x, y int) physics.Vector {
	return physics.Vec(float64(x), float64(g.height-y))
}

// toScreen converts world coordinates to window pixels, shifted by the
// camera offset.
func (g *Game) toScreen(p, camera physics.Vector) (float32, float32) {
	return float32(p.X - camera.X), float32(float64(g.height) - (p.Y - camera.Y))
}

// Draw renders the current screen.
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.session.Screen() {
	case loop.ScreenTitle:
		g.drawTitle(screen)
	case loop.ScreenPlay:
		g.drawWorld(screen)
		g.drawHUD(screen)
	}
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	lines := []string{
		"G E O S T E R O I D S",
		"",
		"W / Up ........ Thrust",
		"A D / Left Right Rotate",
		"SPACE .......... Shoot",
		"Click ... Place asteroid",
		"ESC ............. Quit",
		"",
		"Press ENTER to start",
	}
	y := g.height/2 - len(lines)*8
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, g.width/2-len(line)*3, y+i*16)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	fx := g.session.Effects()
	cam := fx.ShakeOffset()

	for i := range snap.Asteroids {
		g.strokePolygon(screen, snap.Asteroids[i].Vertices(), cam, foreground)
	}
	for i := range snap.Bullets {
		x, y := g.toScreen(snap.Bullets[i].Position, cam)
		vector.DrawFilledCircle(screen, x, y, 1.5, foreground, true)
	}
	for _, p := range fx.Particles() {
		if !p.Visible() {
			continue
		}
		x, y := g.toScreen(p.Position, cam)
		alpha := uint8(255 * p.Lifetime / p.MaxLifetime)
		vector.DrawFilledRect(screen, x-1, y-1, 2, 2, color.RGBA{alpha, alpha, alpha, alpha}, false)
	}

	if snap.Ship.Alive {
		hull, flame := snap.Ship.Outline()
		g.strokePolygon(screen, hull[:], cam, foreground)
		if snap.Ship.FlameVisible() {
			g.strokePolygon(screen, flame[:], cam, flameColor)
		}
	}
	if radius, ok := fx.RespawnRing(); ok && radius > 0 {
		x, y := g.toScreen(snap.Ship.Position, cam)
		vector.StrokeCircle(screen, x, y, float32(radius), strokeWidth, ringColor, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	snap := g.session.Snapshot()

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", snap.Score), 10, 10)
	for i := range snap.Lives {
		hull, _ := object.ShipOutline(physics.Vec(18+30*float64(i), float64(g.height)-50), 90)
		g.strokePolygon(screen, hull[:], physics.Vector{}, foreground)
	}

	if g.session.Effects().GameIsOver() {
		msg := "GAME OVER"
		hint := "ESC to quit"
		ebitenutil.DebugPrintAt(screen, msg, g.width/2-len(msg)*3, g.height/2-16)
		ebitenutil.DebugPrintAt(screen, hint, g.width/2-len(hint)*3, g.height/2+8)
	}
}

func (g *Game) strokePolygon(screen *ebiten.Image, points []physics.Vector, cam physics.Vector, clr color.Color) {
	n := len(points)
	for i := range n {
		x0, y0 := g.toScreen(points[i], cam)
		x1, y1 := g.toScreen(points[(i+1)%n], cam)
		vector.StrokeLine(screen, x0, y0, x1, y1, strokeWidth, clr, true)
	}
}
