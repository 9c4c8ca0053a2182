package ebitenbackend

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/fgui"
)

// magenta marks sprites whose atlas could not be loaded.
var magenta = color.RGBA{R: 255, B: 255, A: 255}

// textureCache loads atlas pages through the owning package's loader and
// cuts sprite regions from them. Rotated regions are turned upright once.
type textureCache struct {
	pages   map[*fgui.PackageItem]*ebiten.Image
	missing map[*fgui.PackageItem]bool
	regions map[regionKey]*ebiten.Image
	blank   *ebiten.Image
}

type regionKey struct {
	atlas   *fgui.PackageItem
	rect    fgui.Rect
	rotated bool
}

func newTextureCache() *textureCache {
	return &textureCache{
		pages:   make(map[*fgui.PackageItem]*ebiten.Image),
		missing: make(map[*fgui.PackageItem]bool),
		regions: make(map[regionKey]*ebiten.Image),
	}
}

// page returns the decoded atlas image, or nil when it cannot be loaded.
// Failures are logged once per atlas.
func (tc *textureCache) page(atlas *fgui.PackageItem) *ebiten.Image {
	if img := tc.pages[atlas]; img != nil {
		return img
	}
	if tc.missing[atlas] {
		return nil
	}
	img, err := loadPage(atlas)
	if err != nil {
		log.Printf("fgui: atlas %s: %v", atlas.File, err)
		tc.missing[atlas] = true
		return nil
	}
	tc.pages[atlas] = img
	return img
}

func loadPage(atlas *fgui.PackageItem) (*ebiten.Image, error) {
	p := atlas.Owner()
	if p == nil || p.Loader() == nil {
		return nil, fgui.ErrItemNotFound
	}
	data, ok := p.Loader()(atlas.File, "")
	if !ok {
		return nil, fgui.ErrItemNotFound
	}
	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(data))
	return img, err
}

// region returns the upright pixels of src, a magenta block when the atlas
// is missing, or nil when src shows nothing.
func (tc *textureCache) region(src fgui.ImageSource) *ebiten.Image {
	if src.Item == nil {
		return nil
	}
	if src.Atlas == nil {
		return tc.placeholder()
	}
	k := regionKey{src.Atlas, src.Region, src.Rotated}
	if img := tc.regions[k]; img != nil {
		return img
	}
	pg := tc.page(src.Atlas)
	if pg == nil {
		return tc.placeholder()
	}
	r := src.Region
	rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
	sub := pg.SubImage(rect).(*ebiten.Image)
	if src.Rotated {
		// stored turned 90 degrees clockwise in the atlas
		up := ebiten.NewImage(rect.Dy(), rect.Dx())
		var op ebiten.DrawImageOptions
		op.GeoM.Rotate(-math.Pi / 2)
		op.GeoM.Translate(0, float64(rect.Dx()))
		up.DrawImage(sub, &op)
		sub = up
	}
	tc.regions[k] = sub
	return sub
}

func (tc *textureCache) placeholder() *ebiten.Image {
	if tc.blank == nil {
		tc.blank = ebiten.NewImage(1, 1)
		tc.blank.Fill(magenta)
	}
	return tc.blank
}

// release drops every cached page and region of the package's atlases.
func (tc *textureCache) release(p *fgui.Package) {
	for pi, img := range tc.pages {
		if pi.Owner() == p {
			img.Deallocate()
			delete(tc.pages, pi)
		}
	}
	for k := range tc.regions {
		if k.atlas.Owner() == p {
			delete(tc.regions, k)
		}
	}
	for pi := range tc.missing {
		if pi.Owner() == p {
			delete(tc.missing, pi)
		}
	}
}
