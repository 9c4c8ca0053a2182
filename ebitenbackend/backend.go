// Package ebitenbackend draws an fgui widget tree with Ebitengine and feeds
// it mouse, touch and keyboard input.
package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"

	"github.com/phanxgames/fgui"
)

// node mirrors one control. Children are drawn in slice order.
type node struct {
	id     fgui.Control
	kind   fgui.ObjectType
	parent *node
	kids   []*node

	x, y, w, h     float32
	pivotX, pivotY float32
	sx, sy         float32
	rotation       float32
	alpha          float32
	visible        bool
	touchable      bool
	grayed         bool
	clip           bool

	fill    fgui.Color
	image   fgui.ImageSource
	tint    fgui.Color
	text    string
	format  fgui.TextFormat
	handler fgui.InputHandler

	blend  fgui.BlendMode
	matrix *colorm.ColorM // nil when there is no color filter
}

func (n *node) indexOf(c *node) int {
	for i, k := range n.kids {
		if k == c {
			return i
		}
	}
	return -1
}

func (n *node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.kids = append(p.kids[:i], p.kids[i+1:]...)
	}
	n.parent = nil
}

// Backend implements fgui.Backend on Ebitengine. Controls are plain records
// drawn by Draw; hit testing stays in the runtime, so Poll reports pointers
// through Runtime.ProcessPointer.
type Backend struct {
	nodes  map[fgui.Control]*node
	roots  []*node
	nextID fgui.Control

	screenW, screenH int

	textures *textureCache
	fonts    *fontCache
	caret    *caret

	// DebugBounds outlines every visible control.
	DebugBounds bool

	// Focus reports the control that shows the text caret. Game wires it to
	// the runtime's focused input field.
	Focus func() fgui.Control

	pointers pointerTracker
}

var (
	_ fgui.Backend      = (*Backend)(nil)
	_ fgui.TextMeasurer = (*Backend)(nil)
	_ fgui.PivotSetter  = (*Backend)(nil)

	_ fgui.ColorFilterSetter = (*Backend)(nil)
	_ fgui.BlendModeSetter   = (*Backend)(nil)
)

// New creates a backend for a w x h screen.
func New(w, h int) *Backend {
	return &Backend{
		nodes:    make(map[fgui.Control]*node),
		screenW:  w,
		screenH:  h,
		textures: newTextureCache(),
		fonts:    newFontCache(),
		caret:    newCaret(),
	}
}

// SetScreenSize changes the size reported by ScreenSize. Call
// Root.ApplyScreenSize afterwards.
func (b *Backend) SetScreenSize(w, h int) { b.screenW, b.screenH = w, h }

// NumControls returns the number of live controls.
func (b *Backend) NumControls() int { return len(b.nodes) }

func (b *Backend) get(c fgui.Control) *node {
	if c == 0 {
		return nil
	}
	return b.nodes[c]
}

// --- fgui.Backend ---

func (b *Backend) CreateControl(kind fgui.ObjectType) fgui.Control {
	b.nextID++
	n := &node{
		id:        b.nextID,
		kind:      kind,
		sx:        1,
		sy:        1,
		alpha:     1,
		visible:   true,
		touchable: true,
		tint:      fgui.ColorWhite,
	}
	b.nodes[n.id] = n
	return n.id
}

func (b *Backend) DisposeControl(c fgui.Control) {
	n := b.get(c)
	if n == nil {
		return
	}
	n.detach()
	for _, k := range n.kids {
		k.parent = nil
	}
	n.kids = nil
	b.RemoveFromRoot(c)
	delete(b.nodes, c)
}

func (b *Backend) SetPosition(c fgui.Control, x, y float32) {
	if n := b.get(c); n != nil {
		n.x, n.y = x, y
	}
}

func (b *Backend) SetSize(c fgui.Control, w, h float32) {
	if n := b.get(c); n != nil {
		n.w, n.h = w, h
	}
}

func (b *Backend) SetPivot(c fgui.Control, px, py float32) {
	if n := b.get(c); n != nil {
		n.pivotX, n.pivotY = px, py
	}
}

func (b *Backend) SetVisible(c fgui.Control, visible bool) {
	if n := b.get(c); n != nil {
		n.visible = visible
	}
}

func (b *Backend) SetAlpha(c fgui.Control, alpha float32) {
	if n := b.get(c); n != nil {
		n.alpha = alpha
	}
}

func (b *Backend) SetRotation(c fgui.Control, degrees float32) {
	if n := b.get(c); n != nil {
		n.rotation = degrees
	}
}

func (b *Backend) SetScale(c fgui.Control, sx, sy float32) {
	if n := b.get(c); n != nil {
		n.sx, n.sy = sx, sy
	}
}

func (b *Backend) SetTouchable(c fgui.Control, touchable bool) {
	if n := b.get(c); n != nil {
		n.touchable = touchable
	}
}

func (b *Backend) SetGrayed(c fgui.Control, grayed bool) {
	if n := b.get(c); n != nil {
		n.grayed = grayed
	}
}

func (b *Backend) SetFillColor(c fgui.Control, color fgui.Color) {
	if n := b.get(c); n != nil {
		n.fill = color
	}
}

func (b *Backend) SetImage(c fgui.Control, src fgui.ImageSource) {
	if n := b.get(c); n != nil {
		n.image = src
	}
}

func (b *Backend) SetTint(c fgui.Control, color fgui.Color) {
	if n := b.get(c); n != nil {
		n.tint = color
	}
}

func (b *Backend) SetText(c fgui.Control, text string) {
	if n := b.get(c); n != nil {
		n.text = text
	}
}

func (b *Backend) SetTextFormat(c fgui.Control, format fgui.TextFormat) {
	if n := b.get(c); n != nil {
		n.format = format
	}
}

func (b *Backend) SetClip(c fgui.Control, clip bool) {
	if n := b.get(c); n != nil {
		n.clip = clip
	}
}

func (b *Backend) AddChild(parent, child fgui.Control, index int) {
	p, n := b.get(parent), b.get(child)
	if p == nil || n == nil {
		return
	}
	n.detach()
	if index < 0 || index > len(p.kids) {
		index = len(p.kids)
	}
	p.kids = append(p.kids, nil)
	copy(p.kids[index+1:], p.kids[index:])
	p.kids[index] = n
	n.parent = p
}

func (b *Backend) RemoveChild(parent, child fgui.Control) {
	p, n := b.get(parent), b.get(child)
	if p == nil || n == nil || n.parent != p {
		return
	}
	n.detach()
}

func (b *Backend) AddToRoot(c fgui.Control) {
	if n := b.get(c); n != nil {
		b.roots = append(b.roots, n)
	}
}

func (b *Backend) RemoveFromRoot(c fgui.Control) {
	for i, n := range b.roots {
		if n.id == c {
			b.roots = append(b.roots[:i], b.roots[i+1:]...)
			return
		}
	}
}

func (b *Backend) SetInputHandler(c fgui.Control, h fgui.InputHandler) {
	if n := b.get(c); n != nil {
		n.handler = h
	}
}

// CapturePointer and ReleasePointer are no-ops: the runtime keeps the press
// target itself.
func (b *Backend) CapturePointer(fgui.Control, int) {}
func (b *Backend) ReleasePointer(fgui.Control, int) {}

// Virtual lists are realized by the runtime; the bridge calls are no-ops.
func (b *Backend) ConfigureVirtualList(fgui.Control, fgui.VirtualListConfig)  {}
func (b *Backend) SetVirtualItems(fgui.Control, int, func(int, fgui.Control)) {}
func (b *Backend) RefreshVirtualList(fgui.Control)                            {}

func (b *Backend) ScreenSize() (w, h float32) {
	return float32(b.screenW), float32(b.screenH)
}

// MeasureText measures text laid out with the face for format.
func (b *Backend) MeasureText(format fgui.TextFormat, text string) (w, h float32) {
	return b.fonts.measure(format, text)
}

// RegisterFont makes a TrueType or OpenType font available under name.
// Text formats naming it draw with it.
func (b *Backend) RegisterFont(name string, data []byte) error {
	return b.fonts.register(name, data)
}

// Draw renders every root control onto screen.
func (b *Backend) Draw(screen *ebiten.Image) {
	var focus fgui.Control
	if b.Focus != nil {
		focus = b.Focus()
	}
	d := drawer{b: b, focus: focus}
	for _, r := range b.roots {
		d.drawNode(screen, r, ebiten.GeoM{}, paint{alpha: 1, blend: ebiten.BlendSourceOver})
	}
}
