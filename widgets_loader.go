package fgui

import (
	"log"
	"strings"
)

// Loader displays the resource at a URL: an image, a movie clip or a whole
// component from a loaded package, or external content supplied by the
// factory's LoadExternal hook.
type Loader struct {
	owner      *Object
	url        string
	align      AlignType
	valign     VertAlignType
	fill       FillType
	shrinkOnly bool
	autoSize   bool
	playing    bool
	frame      int
	color      Color

	content    *Object
	external   bool
	srcW, srcH float32
	updating   bool
}

func newLoader(o *Object) *Loader {
	return &Loader{owner: o, playing: true, color: ColorWhite}
}

// URL returns the loaded URL.
func (l *Loader) URL() string { return l.url }

// SetURL loads the resource at url, replacing the current content.
func (l *Loader) SetURL(url string) {
	if l.url == url {
		return
	}
	l.url = url
	l.loadContent()
}

// Content returns the object created for package content, or nil.
func (l *Loader) Content() *Object { return l.content }

// Align and VertAlign place the content when it is smaller than the loader.
func (l *Loader) Align() AlignType         { return l.align }
func (l *Loader) VertAlign() VertAlignType { return l.valign }

// SetAlign sets the horizontal alignment.
func (l *Loader) SetAlign(v AlignType) {
	if l.align != v {
		l.align = v
		l.updateLayout()
	}
}

// SetVertAlign sets the vertical alignment.
func (l *Loader) SetVertAlign(v VertAlignType) {
	if l.valign != v {
		l.valign = v
		l.updateLayout()
	}
}

// Fill returns the scaling mode.
func (l *Loader) Fill() FillType { return l.fill }

// SetFill sets the scaling mode.
func (l *Loader) SetFill(v FillType) {
	if l.fill != v {
		l.fill = v
		l.updateLayout()
	}
}

// ShrinkOnly reports whether scaling never enlarges the content.
func (l *Loader) ShrinkOnly() bool { return l.shrinkOnly }

// SetShrinkOnly prevents scaling from enlarging the content.
func (l *Loader) SetShrinkOnly(v bool) {
	if l.shrinkOnly != v {
		l.shrinkOnly = v
		l.updateLayout()
	}
}

// AutoSize reports whether the loader resizes to its content.
func (l *Loader) AutoSize() bool { return l.autoSize }

// SetAutoSize makes the loader resize to its content.
func (l *Loader) SetAutoSize(v bool) {
	if l.autoSize != v {
		l.autoSize = v
		l.updateLayout()
	}
}

// Color returns the content tint.
func (l *Loader) Color() Color { return l.color }

// SetColor tints the content.
func (l *Loader) SetColor(c Color) {
	if l.color == c {
		return
	}
	l.color = c
	if l.content != nil {
		l.content.SetColor(c)
	} else if l.external {
		l.owner.backend().SetTint(l.owner.control, c)
	}
}

func (l *Loader) loadContent() {
	l.clearContent()
	if l.url == "" {
		return
	}
	o := l.owner
	if strings.HasPrefix(l.url, urlPrefix) && o.rt != nil {
		if pi := o.rt.Packages.ItemByURL(l.url); pi != nil {
			l.loadFromPackage(pi)
			return
		}
	}
	l.loadExternal()
}

func (l *Loader) loadFromPackage(pi *PackageItem) {
	o := l.owner
	pi = pi.Branch()
	var c *Object
	switch pi.Type {
	case ItemImage, ItemMovieClip, ItemComponent:
		var err error
		c, err = o.rt.newObjectFromItem(pi)
		if err != nil {
			log.Printf("fgui: loader %q: %v", l.url, err)
			return
		}
	default:
		l.loadExternal()
		return
	}
	l.srcW, l.srcH = float32(pi.Width), float32(pi.Height)
	l.content = c
	if mc := c.movieClip; mc != nil {
		mc.SetPlaying(l.playing)
		mc.SetFrame(l.frame)
	}
	if l.color != ColorWhite {
		c.SetColor(l.color)
	}
	o.backend().AddChild(o.control, c.control, 0)
	l.updateLayout()
}

func (l *Loader) loadExternal() {
	o := l.owner
	if o.rt == nil || o.rt.Factory.LoadExternal == nil {
		return
	}
	src, ok := o.rt.Factory.LoadExternal(l, l.url)
	if !ok {
		return
	}
	l.external = true
	l.srcW, l.srcH = src.Region.Width, src.Region.Height
	b := o.backend()
	b.SetImage(o.control, src)
	b.SetTint(o.control, l.color)
	l.updateLayout()
}

func (l *Loader) clearContent() {
	o := l.owner
	if l.content != nil {
		o.backend().RemoveChild(o.control, l.content.control)
		l.content.Dispose()
		l.content = nil
	}
	if l.external {
		l.external = false
		if o.rt != nil && o.rt.Factory.FreeExternal != nil {
			o.rt.Factory.FreeExternal(l)
		}
		o.backend().SetImage(o.control, ImageSource{})
	}
	l.srcW, l.srcH = 0, 0
}

// updateLayout scales and aligns the content inside the loader.
func (l *Loader) updateLayout() {
	if l.updating {
		return
	}
	o := l.owner
	if l.content == nil && !l.external {
		if l.autoSize {
			l.updating = true
			o.SetSize(50, 30, false)
			l.updating = false
		}
		return
	}

	cw, ch := l.srcW, l.srcH
	if l.autoSize {
		l.updating = true
		if cw == 0 {
			cw = 50
		}
		if ch == 0 {
			ch = 30
		}
		o.SetSize(cw, ch, false)
		l.updating = false
		if o.width == cw && o.height == ch {
			l.place(0, 0, cw, ch, 1, 1)
			return
		}
	}

	sx, sy := float32(1), float32(1)
	if l.fill != FillNone && cw > 0 && ch > 0 {
		sx, sy = o.width/cw, o.height/ch
		if sx != 1 || sy != 1 {
			switch l.fill {
			case FillScaleMatchHeight:
				sx = sy
			case FillScaleMatchWidth:
				sy = sx
			case FillScale:
				if sx > sy {
					sx = sy
				} else {
					sy = sx
				}
			case FillScaleNoBorder:
				if sx > sy {
					sy = sx
				} else {
					sx = sy
				}
			}
			if l.shrinkOnly {
				sx = min(sx, 1)
				sy = min(sy, 1)
			}
			cw *= sx
			ch *= sy
		}
	}

	var nx, ny float32
	switch l.align {
	case AlignCenter:
		nx = floorf((o.width - cw) / 2)
	case AlignRight:
		nx = o.width - cw
	}
	switch l.valign {
	case VertAlignMiddle:
		ny = floorf((o.height - ch) / 2)
	case VertAlignBottom:
		ny = o.height - ch
	}
	l.place(nx, ny, cw, ch, sx, sy)
}

func (l *Loader) place(x, y, w, h, sx, sy float32) {
	c := l.content
	if c == nil {
		return
	}
	if c.IsContainer() {
		c.SetScale(sx, sy)
	} else {
		c.SetSize(w, h, true)
	}
	c.SetXY(x, y)
}

func (l *Loader) setupBeforeAdd(buf *ByteBuffer) {
	url, _ := buf.ReadSOK()
	l.align = AlignType(buf.ReadByte())
	l.valign = VertAlignType(buf.ReadByte())
	l.fill = FillType(buf.ReadByte())
	l.shrinkOnly = buf.ReadBool()
	l.autoSize = buf.ReadBool()
	l.playing = buf.ReadBool()
	l.frame = int(buf.ReadInt())
	if buf.ReadBool() {
		l.color = buf.ReadColor()
	}
	if url != "" {
		l.SetURL(url)
	}
}
