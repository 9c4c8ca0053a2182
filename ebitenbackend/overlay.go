package ebitenbackend

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsOverlay prints frame rate and control count in the top-left corner,
// refreshed about twice a second.
type statsOverlay struct {
	img     *ebiten.Image
	elapsed float32
	line    string
}

func (o *statsOverlay) update(dt float32, controls int) {
	o.elapsed += dt
	if o.line != "" && o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0
	o.line = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nControls: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), controls)
}

func (o *statsOverlay) draw(screen *ebiten.Image) {
	if o.line == "" {
		return
	}
	if o.img == nil {
		// 120x48 fits three debug-font lines
		o.img = ebiten.NewImage(120, 48)
	}
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.line)
	screen.DrawImage(o.img, nil)
}
