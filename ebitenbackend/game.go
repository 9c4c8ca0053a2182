package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/fgui"
)

// Game runs a runtime as an ebiten.Game: input is polled and the runtime
// stepped in Update, the control tree drawn in Draw.
type Game struct {
	Runtime *fgui.Runtime
	Backend *Backend

	// OnUpdate runs after the runtime steps. A non-nil error ends the game.
	OnUpdate func(dt float32) error

	// ShowStats draws the frame rate overlay.
	ShowStats bool

	// OnScreenshot receives the path of every screenshot written.
	OnScreenshot func(path string)

	shots screenshots
	stats statsOverlay
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wires b to rt. The backend shows the caret on rt's focused field.
func NewGame(rt *fgui.Runtime, b *Backend) *Game {
	g := &Game{Runtime: rt, Backend: b}
	g.shots.dir = "screenshots"
	b.Focus = func() fgui.Control {
		if o := rt.Focus(); o != nil {
			return o.Control()
		}
		return 0
	}
	return g
}

// SetScreenshotDir sets where screenshots are written.
func (g *Game) SetScreenshotDir(dir string) { g.shots.dir = dir }

// Screenshot queues a labeled capture of the next frame. Assign it to
// ScriptRunner.OnScreenshot to let scripts take screenshots.
func (g *Game) Screenshot(label string) { g.shots.Queue(label) }

func tickSeconds() float32 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float32(tps)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := tickSeconds()
	g.Backend.Poll(g.Runtime)
	g.Runtime.Update(dt)
	g.Backend.caret.update(dt)
	if g.ShowStats {
		g.stats.update(dt, g.Backend.NumControls())
	}
	if g.OnUpdate != nil {
		return g.OnUpdate(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Backend.Draw(screen)
	// overlays stay out of screenshots
	for _, p := range g.shots.flush(screen) {
		if g.OnScreenshot != nil {
			g.OnScreenshot(p)
		}
	}
	if g.ShowStats {
		g.stats.draw(screen)
	}
}

// Layout implements ebiten.Game. The screen is sized to the window and the
// root refits its content scale.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.Backend.screenW, g.Backend.screenH
	if outsideWidth != w || outsideHeight != h {
		g.Backend.SetScreenSize(outsideWidth, outsideHeight)
		g.Runtime.Root().ApplyScreenSize()
	}
	return outsideWidth, outsideHeight
}

// ReleasePackage drops the cached atlas pages of p. Call it after
// Runtime.RemovePackage.
func (b *Backend) ReleasePackage(p *fgui.Package) { b.textures.release(p) }
