package fgui

// PackageItem describes one resource of a package. Items are created while
// the package is parsed and released when the package is removed.
type PackageItem struct {
	owner *Package

	Type       PackageItemType
	ObjectType ObjectType
	ID         string
	Name       string
	File       string
	Exported   bool
	Width      int
	Height     int

	// Image
	Scale9Grid     *Rect
	ScaleByTile    bool
	TileGridIndice int

	// Component, MovieClip, Font: payload sharing the package string table.
	RawData *ByteBuffer

	Branches       []string
	HighResolution []string

	// Spine / DragonBones skeleton anchor.
	SkeletonAnchor Vec2

	// MovieClip, filled by Load.
	Interval    float32
	RepeatDelay float32
	Swing       bool
	Frames      []MovieClipFrame

	loaded bool
}

// MovieClipFrame is one frame of a movie clip item.
type MovieClipFrame struct {
	Rect     Rect
	AddDelay float32
	SpriteID string
}

// Owner returns the package the item belongs to.
func (pi *PackageItem) Owner() *Package { return pi.owner }

// URL returns the id-form resource URL of the item.
func (pi *PackageItem) URL() string {
	if pi.owner == nil {
		return ""
	}
	return urlPrefix + pi.owner.ID + pi.ID
}

// Branch returns the variant of this item for the owning package's active
// branch, or the item itself when no variant applies.
func (pi *PackageItem) Branch() *PackageItem {
	if len(pi.Branches) == 0 || pi.owner == nil {
		return pi
	}
	idx := pi.owner.BranchIndex
	if idx < 0 || idx >= len(pi.Branches) {
		return pi
	}
	id := pi.Branches[idx]
	if id == "" {
		return pi
	}
	if v := pi.owner.itemsByID[id]; v != nil {
		return v
	}
	return pi
}

// Load decodes lazily-parsed payloads (movie clip frames). It is safe to
// call repeatedly.
func (pi *PackageItem) Load() (err error) {
	if pi.loaded {
		return nil
	}
	defer catchBufferError(&err)
	switch pi.Type {
	case ItemMovieClip:
		pi.loadMovieClip()
	}
	pi.loaded = true
	return nil
}

func (pi *PackageItem) loadMovieClip() {
	buf := pi.RawData
	if buf == nil {
		return
	}
	if buf.Seek(0, 0) {
		pi.Interval = float32(buf.ReadInt()) / 1000
		pi.Swing = buf.ReadBool()
		pi.RepeatDelay = float32(buf.ReadInt()) / 1000
	}
	if !buf.Seek(0, 1) {
		return
	}
	n := int(buf.ReadShort())
	pi.Frames = make([]MovieClipFrame, n)
	for i := 0; i < n; i++ {
		next := int(buf.ReadUshort())
		next += buf.Position()
		f := &pi.Frames[i]
		f.Rect.X = float32(buf.ReadInt())
		f.Rect.Y = float32(buf.ReadInt())
		f.Rect.Width = float32(buf.ReadInt())
		f.Rect.Height = float32(buf.ReadInt())
		f.AddDelay = float32(buf.ReadInt()) / 1000
		f.SpriteID = buf.ReadS()
		buf.SetPosition(next)
	}
}

func (pi *PackageItem) release() {
	pi.RawData = nil
	pi.Frames = nil
	pi.loaded = false
}
