package fgui

import (
	"log"

	"github.com/agnivade/levenshtein"
)

// AtlasSprite locates an image item inside an atlas page.
type AtlasSprite struct {
	Atlas        *PackageItem
	Rect         Rect
	Rotated      bool
	Offset       Vec2 // trim offset within the original image
	OriginalSize Vec2 // untrimmed size as authored
}

// Sprite returns the atlas sprite for the given item id, or nil. Misses are
// logged in debug mode.
func (p *Package) Sprite(itemID string) *AtlasSprite {
	if sp, ok := p.sprites[itemID]; ok {
		return sp
	}
	if p.store != nil && p.store.Debug {
		log.Printf("fgui: sprite %q not found in package %q", itemID, p.Name)
	}
	return nil
}

// NumSprites returns the number of atlas sprites in the package.
func (p *Package) NumSprites() int { return len(p.sprites) }

// ImageSource builds the backend image description for an image or movie
// clip frame item. The result has a nil Atlas when the sprite is unknown.
func (p *Package) ImageSource(pi *PackageItem) ImageSource {
	src := ImageSource{Item: pi, Scale9Grid: pi.Scale9Grid, Tiled: pi.ScaleByTile}
	if sp := p.sprites[pi.ID]; sp != nil {
		src.Atlas = sp.Atlas
		src.Region = sp.Rect
		src.Rotated = sp.Rotated
	}
	return src
}

// closestName returns the key of names nearest to name by edit distance, or
// "" when nothing is reasonably close.
func closestName[V any](name string, names map[string]V) string {
	best := ""
	bestDist := len(name)/2 + 2
	for k := range names {
		d := levenshtein.ComputeDistance(name, k)
		if d < bestDist || (d == bestDist && best != "" && k < best) {
			best, bestDist = k, d
		}
	}
	return best
}
