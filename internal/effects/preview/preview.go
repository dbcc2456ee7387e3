// Package preview renders an effects scene in a desktop window.
package preview

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Zachkp/portfolio/internal/effects"
	"github.com/Zachkp/portfolio/internal/theme"
)

var (
	nightBackground = color.NRGBA{R: 15, G: 23, B: 42, A: 255}
	dayBackground   = color.NRGBA{R: 248, G: 250, B: 252, A: 255}
)

// layer is an offscreen image the scene paints one canvas onto.
type layer struct {
	img *ebiten.Image
}

func (l *layer) Clear() { l.img.Clear() }

func (l *layer) FillCircle(x, y, r float64, c effects.Color) {
	vector.DrawFilledCircle(l.img, float32(x), float32(y), float32(r), c.NRGBA(), true)
}

func (l *layer) StrokeCircle(x, y, r, width float64, c effects.Color) {
	vector.StrokeCircle(l.img, float32(x), float32(y), float32(r), float32(width), c.NRGBA(), true)
}

func (l *layer) Line(x1, y1, x2, y2, width float64, c effects.Color) {
	vector.StrokeLine(l.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c.NRGBA(), true)
}

// Game adapts a Scene to ebiten. The window size drives the scene bounds
// and cursor movement spawns ripples. The window title follows the theme.
type Game struct {
	scene     *effects.Scene
	theme     theme.Theme
	particles *layer
	ripples   *layer
	w, h      int
	cx, cy    int
}

// NewGame wraps scene.
func NewGame(scene *effects.Scene) *Game {
	return &Game{scene: scene, cx: -1, cy: -1}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if th := g.scene.Theme(); th != g.theme {
		g.theme = th
		ebiten.SetWindowTitle(effects.Caption(th))
	}
	if g.particles == nil {
		return nil
	}
	if x, y := ebiten.CursorPosition(); x != g.cx || y != g.cy {
		g.cx, g.cy = x, y
		g.scene.PointerMove(float64(x), float64(y))
	}
	g.scene.Frame(g.particles, g.ripples)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.scene.Theme() == theme.Night {
		screen.Fill(nightBackground)
	} else {
		screen.Fill(dayBackground)
	}
	if g.particles == nil {
		return
	}
	screen.DrawImage(g.particles.img, nil)
	screen.DrawImage(g.ripples.img, nil)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.scene.Resize(float64(g.w), float64(g.h))
		g.particles = &layer{img: ebiten.NewImage(g.w, g.h)}
		g.ripples = &layer{img: ebiten.NewImage(g.w, g.h)}
	}
	return g.w, g.h
}

// Run opens a resizable window of the given size and renders scene until
// the window is closed or Escape is pressed.
func Run(scene *effects.Scene, width, height, tps int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(effects.Caption(scene.Theme()))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(NewGame(scene)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
