package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"

	"github.com/phanxgames/fgui"
)

// ebitenBlend maps a blend mode to the Ebitengine blend.
func ebitenBlend(b fgui.BlendMode) ebiten.Blend {
	switch b {
	case fgui.BlendAdd:
		return ebiten.BlendLighter
	case fgui.BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case fgui.BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case fgui.BlendErase:
		return ebiten.BlendDestinationOut
	case fgui.BlendMask:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorZero,
			BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
			BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case fgui.BlendBelow:
		return ebiten.BlendDestinationOver
	case fgui.BlendNone, fgui.BlendOff:
		return ebiten.BlendCopy
	default:
		// custom modes have no Ebitengine equivalent
		return ebiten.BlendSourceOver
	}
}

// colorMatrix converts a filter to a colorm matrix, or nil for no change.
func colorMatrix(f fgui.ColorFilter) *colorm.ColorM {
	if f.IsZero() {
		return nil
	}
	m := f.Matrix()
	var cm colorm.ColorM
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			cm.SetElement(row, col, float64(m[row*5+col]))
		}
	}
	return &cm
}

// --- fgui.ColorFilterSetter, fgui.BlendModeSetter ---

func (b *Backend) SetColorFilter(c fgui.Control, f fgui.ColorFilter) {
	if n := b.get(c); n != nil {
		n.matrix = colorMatrix(f)
	}
}

func (b *Backend) SetBlendMode(c fgui.Control, m fgui.BlendMode) {
	if n := b.get(c); n != nil {
		n.blend = m
	}
}
