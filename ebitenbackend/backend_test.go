package ebitenbackend

import (
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/fgui"
)

func kidIDs(n *node) []fgui.Control {
	var ids []fgui.Control
	for _, k := range n.kids {
		ids = append(ids, k.id)
	}
	return ids
}

// ---- Control tree tests -------------------------------------------------------

func TestAddChildOrder(t *testing.T) {
	b := New(800, 600)
	p := b.CreateControl(fgui.ObjectComponent)
	c1 := b.CreateControl(fgui.ObjectGraph)
	c2 := b.CreateControl(fgui.ObjectGraph)
	c3 := b.CreateControl(fgui.ObjectGraph)

	b.AddChild(p, c1, 0)
	b.AddChild(p, c2, 5) // past the end appends
	b.AddChild(p, c3, 1)
	if got := kidIDs(b.get(p)); !slices.Equal(got, []fgui.Control{c1, c3, c2}) {
		t.Fatalf("kids = %v, want [%d %d %d]", got, c1, c3, c2)
	}

	// re-adding moves instead of duplicating
	b.AddChild(p, c1, 2)
	if got := kidIDs(b.get(p)); !slices.Equal(got, []fgui.Control{c3, c2, c1}) {
		t.Errorf("after move kids = %v", got)
	}
}

func TestReparent(t *testing.T) {
	b := New(800, 600)
	a := b.CreateControl(fgui.ObjectComponent)
	z := b.CreateControl(fgui.ObjectComponent)
	c := b.CreateControl(fgui.ObjectImage)
	b.AddChild(a, c, -1)
	b.AddChild(z, c, -1)
	if len(b.get(a).kids) != 0 {
		t.Error("old parent kept the child")
	}
	if b.get(c).parent != b.get(z) {
		t.Error("child parent not updated")
	}

	b.RemoveChild(a, c) // wrong parent is ignored
	if b.get(c).parent == nil {
		t.Error("RemoveChild with the wrong parent detached the child")
	}
	b.RemoveChild(z, c)
	if b.get(c).parent != nil || len(b.get(z).kids) != 0 {
		t.Error("RemoveChild did not detach")
	}
}

func TestDisposeControl(t *testing.T) {
	b := New(800, 600)
	p := b.CreateControl(fgui.ObjectComponent)
	c := b.CreateControl(fgui.ObjectGraph)
	k := b.CreateControl(fgui.ObjectGraph)
	b.AddToRoot(p)
	b.AddChild(p, c, -1)
	b.AddChild(c, k, -1)

	b.DisposeControl(c)
	if b.get(c) != nil {
		t.Error("disposed control still resolves")
	}
	if len(b.get(p).kids) != 0 {
		t.Error("disposed control still attached")
	}
	if b.get(k).parent != nil {
		t.Error("orphaned child keeps a parent")
	}

	b.DisposeControl(p)
	if len(b.roots) != 0 {
		t.Errorf("roots = %d, want 0", len(b.roots))
	}
	if b.NumControls() != 1 {
		t.Errorf("NumControls = %d, want 1", b.NumControls())
	}
}

func TestZeroControlIgnored(t *testing.T) {
	b := New(800, 600)
	b.SetPosition(0, 1, 2)
	b.SetText(0, "x")
	b.AddChild(0, 0, 0)
	b.AddToRoot(0)
	b.DisposeControl(0)
	if b.NumControls() != 0 || len(b.roots) != 0 {
		t.Error("zero control created state")
	}
}

func TestPropertySetters(t *testing.T) {
	b := New(800, 600)
	c := b.CreateControl(fgui.ObjectText)
	n := b.get(c)
	if n.sx != 1 || n.alpha != 1 || !n.visible || n.tint != fgui.ColorWhite {
		t.Fatalf("bad defaults: %+v", n)
	}
	b.SetPosition(c, 3, 4)
	b.SetSize(c, 50, 20)
	b.SetPivot(c, 0.5, 0.5)
	b.SetRotation(c, 90)
	b.SetScale(c, 2, 3)
	b.SetAlpha(c, 0.5)
	b.SetVisible(c, false)
	b.SetGrayed(c, true)
	b.SetClip(c, true)
	b.SetText(c, "hi")
	if n.x != 3 || n.y != 4 || n.w != 50 || n.h != 20 || n.pivotX != 0.5 ||
		n.rotation != 90 || n.sx != 2 || n.sy != 3 || n.alpha != 0.5 ||
		n.visible || !n.grayed || !n.clip || n.text != "hi" {
		t.Errorf("setters not applied: %+v", n)
	}
}

func TestScreenSize(t *testing.T) {
	b := New(800, 600)
	b.SetScreenSize(1024, 768)
	w, h := b.ScreenSize()
	if w != 1024 || h != 768 {
		t.Errorf("ScreenSize = %v,%v", w, h)
	}
}

// ---- Runtime wiring tests -------------------------------------------------------

func TestRuntimeBuildsTree(t *testing.T) {
	b := New(800, 600)
	rt := fgui.New(b, fgui.DefaultConfig())
	if len(b.roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(b.roots))
	}

	o := rt.NewObject(fgui.ObjectGraph)
	o.SetXY(10, 20)
	o.SetSize(30, 40, false)
	rt.Root().AddChild(o)

	n := b.get(o.Control())
	if n == nil {
		t.Fatal("object has no control")
	}
	if n.x != 10 || n.y != 20 || n.w != 30 || n.h != 40 {
		t.Errorf("node geometry %v,%v %vx%v", n.x, n.y, n.w, n.h)
	}
	top := n
	for top.parent != nil {
		top = top.parent
	}
	if top != b.roots[0] {
		t.Error("object not attached under the root control")
	}

	before := b.NumControls()
	o.Dispose()
	if b.NumControls() != before-1 {
		t.Errorf("NumControls = %d, want %d", b.NumControls(), before-1)
	}
}

// ---- Geometry tests -------------------------------------------------------

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestLocalGeoMPivot(t *testing.T) {
	n := &node{x: 100, y: 50, w: 20, h: 10, pivotX: 0.5, pivotY: 0.5, sx: 2, sy: 2}
	g := localGeoM(n)
	// the pivot stays put under scale
	x, y := g.Apply(10, 5)
	if !approx(x, 110) || !approx(y, 55) {
		t.Errorf("pivot maps to %v,%v, want 110,55", x, y)
	}
	x, y = g.Apply(0, 0)
	if !approx(x, 90) || !approx(y, 45) {
		t.Errorf("origin maps to %v,%v, want 90,45", x, y)
	}

	n = &node{w: 10, h: 10, sx: 1, sy: 1, rotation: 90}
	g = localGeoM(n)
	x, y = g.Apply(10, 0)
	if !approx(x, 0) || !approx(y, 10) {
		t.Errorf("rotated point %v,%v, want 0,10", x, y)
	}
}

func TestScreenBounds(t *testing.T) {
	var g ebiten.GeoM
	g.Rotate(math.Pi / 4)
	g.Translate(50, 50)
	r := screenBounds(g, 10, 10)
	// diagonal is ~14.14 wide around x=50
	if r.Min.X != 42 || r.Max.X != 58 || r.Min.Y != 50 || r.Max.Y != 65 {
		t.Errorf("bounds = %v", r)
	}
}

func TestFlipGeoM(t *testing.T) {
	g := flipGeoM(fgui.FlipHorizontal, 20, 10)
	if x, y := g.Apply(0, 0); !approx(x, 20) || !approx(y, 0) {
		t.Errorf("horizontal flip origin %v,%v", x, y)
	}
	g = flipGeoM(fgui.FlipBoth, 20, 10)
	if x, y := g.Apply(20, 10); !approx(x, 0) || !approx(y, 0) {
		t.Errorf("both flip corner %v,%v", x, y)
	}
	g = flipGeoM(fgui.FlipNone, 20, 10)
	if x, y := g.Apply(3, 4); !approx(x, 3) || !approx(y, 4) {
		t.Error("FlipNone moved points")
	}
}

func TestSliceEdges(t *testing.T) {
	tests := []struct {
		name                    string
		start, size, full, dest float64
		wantSrc, wantDst        [4]float64
	}{
		{"stretch", 4, 2, 10, 30, [4]float64{0, 4, 6, 10}, [4]float64{0, 4, 26, 30}},
		{"exact", 4, 2, 10, 10, [4]float64{0, 4, 6, 10}, [4]float64{0, 4, 6, 10}},
		{"squashed", 4, 2, 10, 4, [4]float64{0, 4, 6, 10}, [4]float64{0, 2, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := sliceEdges(tt.start, tt.size, tt.full, tt.dest)
			if src != tt.wantSrc || dst != tt.wantDst {
				t.Errorf("got %v %v, want %v %v", src, dst, tt.wantSrc, tt.wantDst)
			}
		})
	}
}

func TestFitsGrid(t *testing.T) {
	if !fitsGrid(fgui.Rect{X: 2, Y: 2, Width: 4, Height: 4}, 8, 8) {
		t.Error("grid inside image rejected")
	}
	if fitsGrid(fgui.Rect{X: 2, Y: 2, Width: 10, Height: 4}, 8, 8) {
		t.Error("grid past the image accepted")
	}
}

// ---- Text tests -------------------------------------------------------

func TestMeasureFallbackFont(t *testing.T) {
	b := New(800, 600)
	w, h := b.MeasureText(fgui.TextFormat{Size: basicSize}, "abc")
	if w != 21 {
		t.Errorf("width = %v, want 21", w)
	}
	if h <= 0 {
		t.Errorf("height = %v", h)
	}
	w2, _ := b.MeasureText(fgui.TextFormat{Size: basicSize * 2}, "abc")
	if w2 != 42 {
		t.Errorf("double size width = %v, want 42", w2)
	}
	_, eh := b.MeasureText(fgui.TextFormat{Size: basicSize}, "")
	if eh <= 0 {
		t.Error("empty text should keep one line of height")
	}
}

func TestRegisterFontRejectsGarbage(t *testing.T) {
	b := New(800, 600)
	if err := b.RegisterFont("bad", []byte("not a font")); err == nil {
		t.Error("RegisterFont accepted garbage")
	}
}

func TestGrayColor(t *testing.T) {
	c := grayColor(toColor(fgui.Color{R: 1, A: 1}))
	r, g, bl, _ := c.RGBA()
	if r != g || g != bl {
		t.Errorf("grayed color not neutral: %v %v %v", r, g, bl)
	}
}

// ---- Paint tests -------------------------------------------------------

func TestPaintUnder(t *testing.T) {
	root := paint{alpha: 1, blend: ebiten.BlendSourceOver}
	b := New(800, 600)
	c := b.CreateControl(fgui.ObjectGraph)
	n := b.get(c)
	n.alpha = 0.5
	n.grayed = true

	p := root.under(n)
	if p.alpha != 0.5 || !p.gray || p.matrix != nil {
		t.Errorf("paint = %+v", p)
	}
	if p.blend != ebiten.BlendSourceOver {
		t.Error("normal blend replaced the inherited blend")
	}

	b.SetBlendMode(c, fgui.BlendAdd)
	b.SetColorFilter(c, fgui.ColorFilter{Brightness: 0.5})
	p = root.under(n)
	if p.blend != ebiten.BlendLighter || p.matrix == nil {
		t.Errorf("blend %v matrix %v", p.blend, p.matrix)
	}
	p.gray = false
	got := color.NRGBAModel.Convert(p.color(fgui.Color{A: 1})).(color.NRGBA)
	if got.R < 126 || got.R > 129 {
		t.Errorf("filtered black = %v, want ~128", got)
	}

	b.SetColorFilter(c, fgui.ColorFilter{})
	if n.matrix != nil {
		t.Error("zero filter kept a matrix")
	}
}

func TestEbitenBlend(t *testing.T) {
	tests := []struct {
		mode fgui.BlendMode
		want ebiten.Blend
	}{
		{fgui.BlendNormal, ebiten.BlendSourceOver},
		{fgui.BlendAdd, ebiten.BlendLighter},
		{fgui.BlendErase, ebiten.BlendDestinationOut},
		{fgui.BlendBelow, ebiten.BlendDestinationOver},
		{fgui.BlendNone, ebiten.BlendCopy},
		{fgui.BlendCustom1, ebiten.BlendSourceOver},
	}
	for _, tt := range tests {
		if got := ebitenBlend(tt.mode); got != tt.want {
			t.Errorf("ebitenBlend(%d) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
