package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/olivierh59500/particle-backdrop/internal/loop"
	"github.com/olivierh59500/particle-backdrop/internal/palette"
	"github.com/olivierh59500/particle-backdrop/internal/particles"
)

var _ loop.Source = (*game)(nil)

// game hosts a particle field in an ebiten window. It is the tick source
// for the field (one frame per Draw) and routes window input to it.
// Ebiten calls Update, Draw and Layout from one goroutine, so the field
// needs no locking.
type game struct {
	field   *particles.Field
	surface *screenSurface
	theme   palette.Theme

	ctx   context.Context
	frame loop.Frame
	err   error

	width, height    int // Size the field was laid out for
	layoutW, layoutH int // Size last reported by Layout
	resizable        bool
	showStatus       bool
	log              *slog.Logger
}

func newGame(field *particles.Field, surface *screenSurface, theme palette.Theme, resizable bool, logger *slog.Logger) *game {
	w, h := field.Bounds()
	return &game{
		field:     field,
		surface:   surface,
		theme:     theme,
		width:     int(w),
		height:    int(h),
		layoutW:   int(w),
		layoutH:   int(h),
		resizable: resizable,
		log:       logger,
	}
}

// Run opens the window and calls frame once per drawn frame until the
// window closes, Escape or Q is pressed, or ctx is cancelled.
func (g *game) Run(ctx context.Context, frame loop.Frame) error {
	g.ctx = ctx
	g.frame = frame

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update is called each tick by Ebitengine
func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.ctx != nil && g.ctx.Err() != nil {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showStatus = !g.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.field.Reset()
	}

	if g.layoutW != g.width || g.layoutH != g.height {
		g.resize(g.layoutW, g.layoutH)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.field.Spawn(float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.field.Spawn(float64(x), float64(y))
	}

	return nil
}

// Draw is called each frame by Ebitengine
func (g *game) Draw(screen *ebiten.Image) {
	g.surface.target = screen
	if g.frame != nil {
		if err := g.frame(); err != nil && g.err == nil {
			g.err = err
		}
	}

	if g.showStatus {
		status := fmt.Sprintf("%s | particles: %d | fps: %.0f | click: spawn  r: reset  h: hide  q: quit",
			g.theme.Name, g.field.Len(), ebiten.ActualFPS())
		ebitenutil.DebugPrintAt(screen, status, 8, 8)
	}
}

// Layout returns the screen size. A resizable window follows the outside
// size; the field is resized on the next Update.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !g.resizable {
		return g.width, g.height
	}
	g.layoutW, g.layoutH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *game) resize(width, height int) {
	g.width, g.height = width, height
	g.field.Resize(float64(width), float64(height))
	g.surface.resize(width, height)
	g.log.Info("surface resized", "width", width, "height", height, "particles", g.field.Len())
}
