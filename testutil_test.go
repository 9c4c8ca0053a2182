package fgui

import (
	"encoding/binary"
	"math"
	"testing"
)

// --- Recording backend ---

type ctlState struct {
	kind     ObjectType
	x, y     float32
	w, h     float32
	visible  bool
	text     string
	image    ImageSource
	clip     bool
	filter   ColorFilter
	blend    BlendMode
	parent   Control
	children []Control
	handler  InputHandler
	disposed bool
}

// recBackend is a Backend fake that keeps the last value pushed to each
// control and the control hierarchy.
type recBackend struct {
	w, h     float32
	next     Control
	ctl      map[Control]*ctlState
	roots    []Control
	captured map[int]Control
	created  int
	disposed int
}

func newRecBackend(w, h float32) *recBackend {
	return &recBackend{w: w, h: h, ctl: make(map[Control]*ctlState), captured: make(map[int]Control)}
}

func (b *recBackend) get(c Control) *ctlState {
	if c == 0 {
		return &ctlState{}
	}
	return b.ctl[c]
}

func (b *recBackend) CreateControl(kind ObjectType) Control {
	b.next++
	b.created++
	b.ctl[b.next] = &ctlState{kind: kind, visible: true}
	return b.next
}

func (b *recBackend) DisposeControl(c Control) {
	if s := b.ctl[c]; s != nil && !s.disposed {
		s.disposed = true
		b.disposed++
	}
}

func (b *recBackend) SetPosition(c Control, x, y float32) { b.get(c).x, b.get(c).y = x, y }
func (b *recBackend) SetSize(c Control, w, h float32)     { b.get(c).w, b.get(c).h = w, h }
func (b *recBackend) SetVisible(c Control, v bool)        { b.get(c).visible = v }
func (b *recBackend) SetAlpha(Control, float32)           {}
func (b *recBackend) SetRotation(Control, float32)        {}
func (b *recBackend) SetScale(Control, float32, float32)  {}
func (b *recBackend) SetTouchable(Control, bool)          {}
func (b *recBackend) SetGrayed(Control, bool)             {}
func (b *recBackend) SetFillColor(Control, Color)         {}
func (b *recBackend) SetImage(c Control, src ImageSource) { b.get(c).image = src }
func (b *recBackend) SetTint(Control, Color)              {}
func (b *recBackend) SetText(c Control, s string)         { b.get(c).text = s }
func (b *recBackend) SetTextFormat(Control, TextFormat)   {}
func (b *recBackend) SetClip(c Control, v bool)           { b.get(c).clip = v }

func (b *recBackend) SetColorFilter(c Control, f ColorFilter) { b.get(c).filter = f }
func (b *recBackend) SetBlendMode(c Control, m BlendMode)     { b.get(c).blend = m }

func (b *recBackend) AddChild(parent, child Control, index int) {
	if parent == 0 || child == 0 {
		return
	}
	b.RemoveChild(b.get(child).parent, child)
	p := b.get(parent)
	if index < 0 || index > len(p.children) {
		index = len(p.children)
	}
	p.children = append(p.children, 0)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = child
	b.get(child).parent = parent
}

func (b *recBackend) RemoveChild(parent, child Control) {
	if parent == 0 || child == 0 {
		return
	}
	p := b.get(parent)
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			b.get(child).parent = 0
			return
		}
	}
}

func (b *recBackend) AddToRoot(c Control) { b.roots = append(b.roots, c) }

func (b *recBackend) RemoveFromRoot(c Control) {
	for i, r := range b.roots {
		if r == c {
			b.roots = append(b.roots[:i], b.roots[i+1:]...)
			return
		}
	}
}

func (b *recBackend) SetInputHandler(c Control, h InputHandler) { b.get(c).handler = h }
func (b *recBackend) CapturePointer(c Control, id int)          { b.captured[id] = c }
func (b *recBackend) ReleasePointer(_ Control, id int)          { delete(b.captured, id) }

func (b *recBackend) ConfigureVirtualList(Control, VirtualListConfig)  {}
func (b *recBackend) SetVirtualItems(Control, int, func(int, Control)) {}
func (b *recBackend) RefreshVirtualList(Control)                       {}
func (b *recBackend) ScreenSize() (float32, float32)                   { return b.w, b.h }

// --- Runtime helpers ---

func newTestRuntime(t *testing.T) (*Runtime, *recBackend) {
	t.Helper()
	b := newRecBackend(800, 600)
	rt := New(b, DefaultConfig())
	t.Cleanup(func() { globalDebug = false })
	return rt, b
}

// newTestComponent creates an empty sized container on rt.
func newTestComponent(rt *Runtime, w, h float32) *Object {
	o := rt.NewObject(ObjectComponent)
	o.SetSize(w, h, false)
	return o
}

// --- Binary writer ---

// wbuf writes big-endian package data.
type wbuf struct {
	b []byte
}

func (w *wbuf) u8(v byte)    { w.b = append(w.b, v) }
func (w *wbuf) i16(v int)    { w.b = binary.BigEndian.AppendUint16(w.b, uint16(int16(v))) }
func (w *wbuf) u16(v int)    { w.b = binary.BigEndian.AppendUint16(w.b, uint16(v)) }
func (w *wbuf) i32(v int)    { w.b = binary.BigEndian.AppendUint32(w.b, uint32(int32(v))) }
func (w *wbuf) u32(v uint32) { w.b = binary.BigEndian.AppendUint32(w.b, v) }
func (w *wbuf) f32(v float32) {
	w.b = binary.BigEndian.AppendUint32(w.b, math.Float32bits(v))
}
func (w *wbuf) raw(p []byte) { w.b = append(w.b, p...) }

func (w *wbuf) boolean(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *wbuf) str(s string) {
	w.u16(len(s))
	w.b = append(w.b, s...)
}

func (w *wbuf) color(c Color) {
	r, g, b, a := c.RGBA8()
	w.b = append(w.b, r, g, b, a)
}

// blocks lays out an index table with 32-bit offsets followed by the
// blocks. A nil block is recorded as absent.
func blocks(bs ...[]byte) []byte {
	var w wbuf
	w.u8(byte(len(bs)))
	w.u8(0)
	off := 2 + 4*len(bs)
	for _, b := range bs {
		if b == nil {
			w.i32(0)
			continue
		}
		w.i32(off)
		off += len(b)
	}
	for _, b := range bs {
		w.raw(b)
	}
	return w.b
}

// --- Package builder ---

// pkgBuilder assembles a version 2 package descriptor.
type pkgBuilder struct {
	id, name string
	strings  []string
	index    map[string]int
	items    [][]byte
	sprites  [][]byte
}

func newPkgBuilder(id, name string) *pkgBuilder {
	return &pkgBuilder{id: id, name: name, index: make(map[string]int)}
}

// s writes a string-table reference to w.
func (p *pkgBuilder) s(w *wbuf, v string) {
	i, ok := p.index[v]
	if !ok {
		i = len(p.strings)
		p.strings = append(p.strings, v)
		p.index[v] = i
	}
	w.u16(i)
}

// null writes the null string reference.
func (p *pkgBuilder) null(w *wbuf) { w.u16(stringNull) }

func (p *pkgBuilder) itemHeader(w *wbuf, t PackageItemType, id, name string, width, height int) {
	w.u8(byte(t))
	p.s(w, id)
	p.s(w, name)
	p.s(w, "/")
	p.s(w, "")
	w.boolean(true)
	w.i32(width)
	w.i32(height)
}

func (p *pkgBuilder) itemFooter(w *wbuf) {
	p.null(w) // folder
	w.u8(0)   // branches
	w.u8(0)   // high resolution
}

func (p *pkgBuilder) addImage(id, name string, width, height int) *pkgBuilder {
	var w wbuf
	p.itemHeader(&w, ItemImage, id, name, width, height)
	w.u8(0) // scale option
	w.boolean(true)
	p.itemFooter(&w)
	p.items = append(p.items, w.b)
	return p
}

func (p *pkgBuilder) addAtlas(id string) *pkgBuilder {
	var w wbuf
	p.itemHeader(&w, ItemAtlas, id, "", 256, 256)
	p.itemFooter(&w)
	p.items = append(p.items, w.b)
	return p
}

func (p *pkgBuilder) addSprite(itemID, atlasID string, x, y, width, height int) *pkgBuilder {
	var w wbuf
	p.s(&w, itemID)
	p.s(&w, atlasID)
	w.i32(x)
	w.i32(y)
	w.i32(width)
	w.i32(height)
	w.boolean(false)
	w.boolean(false)
	p.sprites = append(p.sprites, w.b)
	return p
}

// addComponent adds a component item whose payload is c.
func (p *pkgBuilder) addComponent(id, name string, ext ObjectType, c *compBuilder) *pkgBuilder {
	data := c.build()
	var w wbuf
	p.itemHeader(&w, ItemComponent, id, name, c.w, c.h)
	if ext == ObjectComponent {
		w.u8(0)
	} else {
		w.u8(byte(ext))
	}
	w.i32(len(data))
	w.raw(data)
	p.itemFooter(&w)
	p.items = append(p.items, w.b)
	return p
}

func (p *pkgBuilder) bytes() []byte {
	var deps wbuf
	deps.i16(0)
	deps.i16(0)

	var items wbuf
	items.i16(len(p.items))
	for _, it := range p.items {
		items.i32(len(it))
		items.raw(it)
	}

	var sprites wbuf
	sprites.i16(len(p.sprites))
	for _, sp := range p.sprites {
		sprites.u16(len(sp))
		sprites.raw(sp)
	}

	var strs wbuf
	strs.i32(len(p.strings))
	for _, s := range p.strings {
		strs.str(s)
	}

	var w wbuf
	w.u32(packageMagic)
	w.i32(2)
	w.boolean(false)
	w.str(p.id)
	w.str(p.name)
	w.raw(make([]byte, 20))
	w.raw(blocks(deps.b, items.b, sprites.b, nil, strs.b, nil))
	return w.b
}

// --- Component builder ---

type childRec struct {
	kind     ObjectType
	src      string
	name     string
	x, y     int
	w, h     int
	sized    bool
	visible  bool
	group    int
	gears    [][]byte
	rels     []byte
	graph    *Color
	tooltips string
	blend    BlendMode
	filter   *ColorFilter
}

// compBuilder assembles a component payload. String references go through
// the owning pkgBuilder.
type compBuilder struct {
	p           *pkgBuilder
	w, h        int
	overflow    OverflowType
	scroll      []byte
	controllers [][]byte
	children    []*childRec
	relations   []byte
	opaque      bool
	ext         []byte
}

func (p *pkgBuilder) newComp(w, h int) *compBuilder {
	return &compBuilder{p: p, w: w, h: h}
}

// controller adds a controller with pages named by pageNames. Page ids are
// the page index as a string.
func (c *compBuilder) controller(name string, pageNames ...string) *compBuilder {
	var b0 wbuf
	c.p.s(&b0, name)
	b0.boolean(false)
	var b1 wbuf
	b1.i16(len(pageNames))
	for i, pn := range pageNames {
		c.p.s(&b1, pageID(i))
		c.p.s(&b1, pn)
	}
	b1.u8(0) // home page: first
	c.controllers = append(c.controllers, blocks(b0.b, b1.b))
	return c
}

func pageID(i int) string { return string(rune('0' + i)) }

// child adds a child record and returns it for further setup.
func (c *compBuilder) child(kind ObjectType, src, name string, x, y, w, h int) *childRec {
	r := &childRec{kind: kind, src: src, name: name, x: x, y: y, w: w, h: h, sized: true, visible: true, group: -1}
	c.children = append(c.children, r)
	return r
}

// displayGear makes the child visible only on the given pages of the
// controller at index ctrl.
func (c *compBuilder) displayGear(r *childRec, ctrl int, pages ...int) {
	var w wbuf
	w.u8(byte(GearDisplay))
	w.i16(ctrl)
	w.i16(len(pages))
	for _, pg := range pages {
		c.p.s(&w, pageID(pg))
	}
	w.boolean(false) // tween
	r.gears = append(r.gears, w.b)
}

// xyGear stores a position per page of the controller at index ctrl.
func (c *compBuilder) xyGear(r *childRec, ctrl int, pos map[int][2]int) {
	var w wbuf
	w.u8(byte(GearXY))
	w.i16(ctrl)
	w.i16(len(pos))
	for pg := 0; pg < 10; pg++ {
		v, ok := pos[pg]
		if !ok {
			continue
		}
		c.p.s(&w, pageID(pg))
		w.i32(v[0])
		w.i32(v[1])
	}
	w.boolean(false) // default
	w.boolean(false) // tween
	w.boolean(false) // percent
	r.gears = append(r.gears, w.b)
}

// relate adds relations from child r to the sibling at target, or to the
// parent when target is -1.
func (c *compBuilder) relate(r *childRec, target int, types ...RelationType) {
	var w wbuf
	w.raw(r.rels)
	if len(r.rels) == 0 {
		w.u8(0)
	}
	w.b[0]++
	w.i16(target)
	w.u8(byte(len(types)))
	for _, t := range types {
		w.u8(byte(t))
		w.boolean(false)
	}
	r.rels = w.b
}

func (c *compBuilder) childData(r *childRec) []byte {
	p := c.p
	var b0 wbuf
	b0.u8(byte(r.kind))
	if r.src != "" {
		p.s(&b0, r.src)
	} else {
		p.null(&b0)
	}
	p.null(&b0) // package id
	p.s(&b0, "n"+r.name)
	p.s(&b0, r.name)
	b0.i32(r.x)
	b0.i32(r.y)
	b0.boolean(r.sized)
	if r.sized {
		b0.i32(r.w)
		b0.i32(r.h)
	}
	b0.boolean(false) // min/max
	b0.boolean(false) // scale
	b0.boolean(false) // skew
	b0.boolean(false) // pivot
	b0.f32(1)         // alpha
	b0.f32(0)         // rotation
	b0.boolean(r.visible)
	b0.boolean(true)  // touchable
	b0.boolean(false) // grayed
	b0.u8(byte(r.blend))
	if f := r.filter; f != nil {
		b0.u8(1)
		b0.f32(f.Brightness)
		b0.f32(f.Contrast)
		b0.f32(f.Saturation)
		b0.f32(f.Hue)
	} else {
		b0.u8(0)
	}
	p.null(&b0) // data

	var b1 wbuf
	if r.tooltips != "" {
		p.s(&b1, r.tooltips)
	} else {
		p.null(&b1)
	}
	b1.i16(r.group)

	var b2 []byte
	if len(r.gears) > 0 {
		var w wbuf
		w.i16(len(r.gears))
		for _, g := range r.gears {
			w.u16(len(g))
			w.raw(g)
		}
		b2 = w.b
	}

	var b5 []byte
	if r.graph != nil {
		var w wbuf
		w.u8(byte(GraphRect))
		w.i32(0)
		w.color(ColorBlack)
		w.color(*r.graph)
		w.boolean(false)
		b5 = w.b
	}
	return blocks(b0.b, b1.b, b2, r.rels, nil, b5)
}

func (c *compBuilder) build() []byte {
	var b0 wbuf
	b0.i32(c.w)
	b0.i32(c.h)
	b0.boolean(false) // min/max
	b0.boolean(false) // pivot
	b0.boolean(false) // margin
	b0.u8(byte(c.overflow))
	b0.boolean(false) // clip softness

	var b1 []byte
	if len(c.controllers) > 0 {
		var w wbuf
		w.i16(len(c.controllers))
		for _, ctl := range c.controllers {
			w.u16(len(ctl))
			w.raw(ctl)
		}
		b1 = w.b
	}

	var b2 wbuf
	b2.i16(len(c.children))
	for _, r := range c.children {
		d := c.childData(r)
		b2.i16(len(d))
		b2.raw(d)
	}

	var b4 wbuf
	b4.i16(-1)
	b4.boolean(c.opaque)

	return blocks(b0.b, b1, b2.b, c.relations, b4.b, nil, c.ext, c.scroll)
}

// buttonExt writes the button extension data for the given mode.
func (c *compBuilder) buttonExt(mode ButtonMode) *compBuilder {
	var w wbuf
	w.u8(byte(mode))
	c.p.null(&w) // sound
	w.f32(1)     // volume
	w.u8(downEffectNone)
	w.f32(0.8)
	c.ext = w.b
	return c
}

// scrollVertical makes the component a vertical scroll pane without bars.
func (c *compBuilder) scrollVertical() *compBuilder { return c.scrollPane(ScrollVertical) }

// scrollPane makes the component a scroll pane of type st without bars.
func (c *compBuilder) scrollPane(st ScrollType) *compBuilder {
	c.overflow = OverflowScroll
	var w wbuf
	w.u8(byte(st))
	w.i32(int(ScrollBarHidden) | scrollFlagBounceOff)
	w.boolean(false) // margin
	c.p.null(&w)     // vertical bar
	c.p.null(&w)     // horizontal bar
	c.p.null(&w)     // header
	c.p.null(&w)     // footer
	c.scroll = w.b
	return c
}

// mustAddPackage registers the package built by p on rt.
func mustAddPackage(t *testing.T, rt *Runtime, p *pkgBuilder) *Package {
	t.Helper()
	pkg, err := rt.AddPackageBytes(p.bytes(), p.name+"_", nil)
	if err != nil {
		t.Fatalf("AddPackageBytes: %v", err)
	}
	return pkg
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}
