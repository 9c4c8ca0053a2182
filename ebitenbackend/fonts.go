package ebitenbackend

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/fgui"
)

// basicSize is the pixel size of the fallback bitmap face.
const basicSize = 13

// fontCache resolves text formats to faces. Registered fonts draw at the
// requested size; everything else uses the fixed basicfont face scaled to
// the size.
type fontCache struct {
	sources map[string]*text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
	basic   *text.GoXFace
}

type faceKey struct {
	name string
	size int
}

func newFontCache() *fontCache {
	return &fontCache{
		sources: make(map[string]*text.GoTextFaceSource),
		faces:   make(map[faceKey]*text.GoTextFace),
	}
}

func (fc *fontCache) register(name string, data []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("fgui: font %q: %w", name, err)
	}
	fc.sources[name] = src
	for k := range fc.faces {
		if k.name == name {
			delete(fc.faces, k)
		}
	}
	return nil
}

// face returns the face for format and the scale to draw it at.
func (fc *fontCache) face(format fgui.TextFormat) (text.Face, float64) {
	size := format.Size
	if size <= 0 {
		size = 12
	}
	if src := fc.sources[format.Font]; src != nil {
		k := faceKey{format.Font, size}
		f := fc.faces[k]
		if f == nil {
			f = &text.GoTextFace{Source: src, Size: float64(size)}
			fc.faces[k] = f
		}
		return f, 1
	}
	if fc.basic == nil {
		fc.basic = text.NewGoXFace(basicfont.Face7x13)
	}
	return fc.basic, float64(size) / basicSize
}

// lineHeight is the unscaled baseline-to-baseline distance of face.
func lineHeight(face text.Face) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// lineSpacing returns the unscaled line advance for format.
func lineSpacing(face text.Face, scale float64, format fgui.TextFormat) float64 {
	return lineHeight(face) + float64(format.LineSpacing)/scale
}

func (fc *fontCache) measure(format fgui.TextFormat, s string) (w, h float32) {
	face, scale := fc.face(format)
	if s == "" {
		return 0, float32(math.Ceil(lineHeight(face) * scale))
	}
	mw, mh := text.Measure(s, face, lineSpacing(face, scale, format))
	return float32(math.Ceil(mw * scale)), float32(math.Ceil(mh * scale))
}
