package ebitenbackend

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/fgui"
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// boundsColor outlines controls when DebugBounds is set.
var boundsColor = color.RGBA{G: 200, A: 200}

// drawer walks the control tree once per frame.
type drawer struct {
	b     *Backend
	focus fgui.Control
}

// localGeoM places n inside its parent: scale and rotate around the pivot,
// then move to the control's position.
func localGeoM(n *node) ebiten.GeoM {
	var g ebiten.GeoM
	px, py := float64(n.pivotX*n.w), float64(n.pivotY*n.h)
	g.Translate(-px, -py)
	g.Scale(float64(n.sx), float64(n.sy))
	if n.rotation != 0 {
		g.Rotate(float64(n.rotation) * math.Pi / 180)
	}
	g.Translate(px+float64(n.x), py+float64(n.y))
	return g
}

// screenBounds returns the axis-aligned box covering a w x h rectangle
// transformed by g.
func screenBounds(g ebiten.GeoM, w, h float32) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {float64(w), 0}, {float64(w), float64(h)}, {0, float64(h)}} {
		x, y := g.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// paint is the inherited drawing state of a subtree.
type paint struct {
	alpha  float32
	gray   bool
	matrix *colorm.ColorM
	blend  ebiten.Blend
}

// under returns the paint for n drawn inside p. A child's color filter runs
// before its ancestors'.
func (p paint) under(n *node) paint {
	p.alpha *= n.alpha
	p.gray = p.gray || n.grayed
	if n.matrix != nil {
		m := *n.matrix
		if p.matrix != nil {
			m.Concat(*p.matrix)
		}
		p.matrix = &m
	}
	if n.blend != fgui.BlendNormal {
		p.blend = ebitenBlend(n.blend)
	}
	return p
}

// color applies the filter and the gray look to a flat color.
func (p paint) color(c fgui.Color) color.Color {
	var out color.Color = toColor(c)
	if p.matrix != nil {
		out = p.matrix.Apply(out)
	}
	if p.gray {
		out = grayColor(out)
	}
	return out
}

func (d *drawer) drawNode(dst *ebiten.Image, n *node, parent ebiten.GeoM, inherited paint) {
	if !n.visible || n.alpha <= 0 {
		return
	}
	world := localGeoM(n)
	world.Concat(parent)
	p := inherited.under(n)

	target := dst
	if n.clip {
		r := screenBounds(world, n.w, n.h).Intersect(dst.Bounds())
		if r.Empty() {
			return
		}
		target = dst.SubImage(r).(*ebiten.Image)
	}

	if n.fill.A > 0 && n.w > 0 && n.h > 0 {
		var g ebiten.GeoM
		g.Scale(float64(n.w), float64(n.h))
		g.Concat(world)
		blit(target, ensureWhitePixel(), g, n.fill, p)
	}
	if n.image.Item != nil {
		d.drawImage(target, n, world, p)
	}
	if n.text != "" {
		d.drawText(target, n, world, p)
	}
	if d.focus != 0 && n.id == d.focus {
		d.drawCaret(target, n, world, p)
	}
	if d.b.DebugBounds {
		strokeBounds(dst, world, n.w, n.h)
	}

	for _, k := range n.kids {
		d.drawNode(target, k, world, p)
	}
}

// blit draws src tinted, then filtered and grayed as p says.
func blit(dst, src *ebiten.Image, g ebiten.GeoM, tint fgui.Color, p paint) {
	if p.gray || p.matrix != nil {
		var cm colorm.ColorM
		cm.Scale(float64(tint.R), float64(tint.G), float64(tint.B), float64(tint.A))
		if p.matrix != nil {
			cm.Concat(*p.matrix)
		}
		if p.gray {
			cm.ChangeHSV(0, 0, 1)
		}
		cm.Scale(1, 1, 1, float64(p.alpha))
		colorm.DrawImage(dst, src, cm, &colorm.DrawImageOptions{GeoM: g, Blend: p.blend, Filter: ebiten.FilterLinear})
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: g, Blend: p.blend, Filter: ebiten.FilterLinear}
	op.ColorScale.Scale(tint.R, tint.G, tint.B, 1)
	op.ColorScale.ScaleAlpha(tint.A * p.alpha)
	dst.DrawImage(src, op)
}

// --- Images ---

func flipGeoM(f fgui.FlipType, w, h float64) ebiten.GeoM {
	var g ebiten.GeoM
	if f == fgui.FlipHorizontal || f == fgui.FlipBoth {
		g.Scale(-1, 1)
		g.Translate(w, 0)
	}
	if f == fgui.FlipVertical || f == fgui.FlipBoth {
		g.Scale(1, -1)
		g.Translate(0, h)
	}
	return g
}

func (d *drawer) drawImage(dst *ebiten.Image, n *node, world ebiten.GeoM, p paint) {
	img := d.b.textures.region(n.image)
	if img == nil || n.w <= 0 || n.h <= 0 {
		return
	}
	src := n.image
	w, h := float64(n.w), float64(n.h)
	base := flipGeoM(src.Flip, w, h)
	base.Concat(world)

	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	switch {
	case src.Scale9Grid != nil && fitsGrid(*src.Scale9Grid, iw, ih):
		drawNine(dst, img, *src.Scale9Grid, w, h, base, n.tint, p)
	case src.Tiled:
		drawTiled(dst, img, w, h, base, n.tint, p)
	case src.Fill == fgui.FillMethodHorizontal || src.Fill == fgui.FillMethodVertical:
		drawFilled(dst, img, src, w, h, base, n.tint, p)
	default:
		// Radial fills draw the whole image.
		var g ebiten.GeoM
		g.Scale(w/iw, h/ih)
		g.Concat(base)
		blit(dst, img, g, n.tint, p)
	}
}

func fitsGrid(g fgui.Rect, iw, ih float64) bool {
	return g.X >= 0 && g.Y >= 0 && float64(g.X+g.Width) <= iw && float64(g.Y+g.Height) <= ih
}

// sliceEdges maps the three source bands of a nine-slice axis onto the
// destination length. Corners shrink proportionally when they do not fit.
func sliceEdges(start, size, full, dest float64) (src, dst [4]float64) {
	src = [4]float64{0, start, start + size, full}
	corners := start + (full - start - size)
	dst = [4]float64{0, start, dest - (full - start - size), dest}
	if dst[2] < dst[1] && corners > 0 {
		k := dest / corners
		dst[1] = start * k
		dst[2] = dst[1]
	}
	return src, dst
}

func drawNine(dst, img *ebiten.Image, grid fgui.Rect, w, h float64, base ebiten.GeoM, tint fgui.Color, p paint) {
	b := img.Bounds()
	xs, dxs := sliceEdges(float64(grid.X), float64(grid.Width), float64(b.Dx()), w)
	ys, dys := sliceEdges(float64(grid.Y), float64(grid.Height), float64(b.Dy()), h)
	for j := 0; j < 3; j++ {
		sh, dh := ys[j+1]-ys[j], dys[j+1]-dys[j]
		if sh <= 0 || dh <= 0 {
			continue
		}
		for i := 0; i < 3; i++ {
			sw, dw := xs[i+1]-xs[i], dxs[i+1]-dxs[i]
			if sw <= 0 || dw <= 0 {
				continue
			}
			r := image.Rect(b.Min.X+int(xs[i]), b.Min.Y+int(ys[j]), b.Min.X+int(xs[i+1]), b.Min.Y+int(ys[j+1]))
			var g ebiten.GeoM
			g.Scale(dw/sw, dh/sh)
			g.Translate(dxs[i], dys[j])
			g.Concat(base)
			blit(dst, img.SubImage(r).(*ebiten.Image), g, tint, p)
		}
	}
}

func drawTiled(dst, img *ebiten.Image, w, h float64, base ebiten.GeoM, tint fgui.Color, p paint) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	for y := 0.0; y < h; y += ih {
		th := math.Min(ih, h-y)
		for x := 0.0; x < w; x += iw {
			tw := math.Min(iw, w-x)
			r := image.Rect(b.Min.X, b.Min.Y, b.Min.X+int(math.Ceil(tw)), b.Min.Y+int(math.Ceil(th)))
			var g ebiten.GeoM
			g.Translate(x, y)
			g.Concat(base)
			blit(dst, img.SubImage(r).(*ebiten.Image), g, tint, p)
		}
	}
}

// drawFilled shows the leading FillAmount of the image. Origin 0 fills from
// the left or top, 1 from the right or bottom.
func drawFilled(dst, img *ebiten.Image, src fgui.ImageSource, w, h float64, base ebiten.GeoM, tint fgui.Color, p paint) {
	amt := math.Max(0, math.Min(1, float64(src.FillAmount)))
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	r := b
	var ox, oy float64
	if src.Fill == fgui.FillMethodHorizontal {
		cut := int(math.Round(iw * amt))
		if src.FillOrigin == 1 {
			r.Min.X = r.Max.X - cut
			ox = w * (1 - amt)
		} else {
			r.Max.X = r.Min.X + cut
		}
	} else {
		cut := int(math.Round(ih * amt))
		if src.FillOrigin == 1 {
			r.Min.Y = r.Max.Y - cut
			oy = h * (1 - amt)
		} else {
			r.Max.Y = r.Min.Y + cut
		}
	}
	if r.Empty() {
		return
	}
	var g ebiten.GeoM
	g.Scale(w/iw, h/ih)
	g.Translate(ox, oy)
	g.Concat(base)
	blit(dst, img.SubImage(r).(*ebiten.Image), g, tint, p)
}

// --- Text ---

func toColor(c fgui.Color) color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func grayColor(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	l := uint8(math.Round(0.299*float64(n.R) + 0.587*float64(n.G) + 0.114*float64(n.B)))
	return color.NRGBA{R: l, G: l, B: l, A: n.A}
}

func unit8(v float32) uint8 {
	return uint8(math.Round(float64(max(0, min(1, v)) * 255)))
}

// textLayout positions a text block inside its control.
type textLayout struct {
	face    text.Face
	scale   float64
	opts    text.LayoutOptions
	ax, ay  float64
	content string
}

func (d *drawer) layoutText(n *node) textLayout {
	f := n.format
	face, scale := d.b.fonts.face(f)
	l := textLayout{face: face, scale: scale, content: n.text}
	if f.SingleLine {
		l.content = strings.ReplaceAll(l.content, "\n", " ")
	}
	l.opts.LineSpacing = lineSpacing(face, scale, f)
	switch f.Align {
	case fgui.AlignCenter:
		l.opts.PrimaryAlign = text.AlignCenter
		l.ax = float64(n.w) / 2
	case fgui.AlignRight:
		l.opts.PrimaryAlign = text.AlignEnd
		l.ax = float64(n.w)
	}
	switch f.VertAlign {
	case fgui.VertAlignMiddle:
		l.opts.SecondaryAlign = text.AlignCenter
		l.ay = float64(n.h) / 2
	case fgui.VertAlignBottom:
		l.opts.SecondaryAlign = text.AlignEnd
		l.ay = float64(n.h)
	}
	return l
}

func (d *drawer) drawText(dst *ebiten.Image, n *node, world ebiten.GeoM, p paint) {
	f := n.format
	l := d.layoutText(n)
	pass := func(dx, dy float64, c fgui.Color) {
		op := &text.DrawOptions{LayoutOptions: l.opts}
		op.GeoM.Scale(l.scale, l.scale)
		op.GeoM.Translate(l.ax+dx, l.ay+dy)
		op.GeoM.Concat(world)
		op.ColorScale.ScaleWithColor(p.color(c))
		op.ColorScale.ScaleAlpha(p.alpha)
		op.Filter = ebiten.FilterLinear
		op.Blend = p.blend
		text.Draw(dst, l.content, l.face, op)
	}

	if f.ShadowColor.A > 0 && (f.ShadowOffset.X != 0 || f.ShadowOffset.Y != 0) {
		pass(float64(f.ShadowOffset.X), float64(f.ShadowOffset.Y), f.ShadowColor)
	}
	if f.Stroke > 0 && f.StrokeColor.A > 0 {
		s := float64(f.Stroke)
		for _, o := range [8][2]float64{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
			pass(o[0]*s, o[1]*s, f.StrokeColor)
		}
	}
	pass(0, 0, f.Color)
	if f.Bold {
		pass(1, 0, f.Color)
	}
	if f.Underline {
		w, h := text.Measure(l.content, l.face, l.opts.LineSpacing)
		w, h = w*l.scale, h*l.scale
		x0 := l.ax - w*alignFactor(l.opts.PrimaryAlign)
		y := l.ay - h*alignFactor(l.opts.SecondaryAlign) + h
		sx0, sy0 := world.Apply(x0, y)
		sx1, sy1 := world.Apply(x0+w, y)
		vector.StrokeLine(dst, float32(sx0), float32(sy0), float32(sx1), float32(sy1), 1, withAlpha(p.color(f.Color), p.alpha), true)
	}
}

func alignFactor(a text.Align) float64 {
	switch a {
	case text.AlignCenter:
		return 0.5
	case text.AlignEnd:
		return 1
	}
	return 0
}

func withAlpha(c color.Color, a float32) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float32(n.A) * max(0, min(1, a)))
	return n
}

// drawCaret draws the blinking caret after the last character of the
// focused field.
func (d *drawer) drawCaret(dst *ebiten.Image, n *node, world ebiten.GeoM, p paint) {
	l := d.layoutText(n)
	lh := lineHeight(l.face) * l.scale
	adv := l.opts.LineSpacing * l.scale

	lines := strings.Split(l.content, "\n")
	last := lines[len(lines)-1]
	lw, _ := text.Measure(last, l.face, 0)
	lw *= l.scale
	th := adv*float64(len(lines)-1) + lh

	x := l.ax - lw*alignFactor(l.opts.PrimaryAlign) + lw
	y := l.ay - th*alignFactor(l.opts.SecondaryAlign) + adv*float64(len(lines)-1)

	var g ebiten.GeoM
	g.Scale(1, lh)
	g.Translate(x, y)
	g.Concat(world)
	c := n.format.Color
	if c.A == 0 {
		c = fgui.ColorBlack
	}
	blit(dst, ensureWhitePixel(), g, c, paint{alpha: p.alpha * d.b.caret.alpha, blend: ebiten.BlendSourceOver})
}

// --- Debug ---

func strokeBounds(dst *ebiten.Image, world ebiten.GeoM, w, h float32) {
	var pts [4][2]float32
	for i, p := range [4][2]float64{{0, 0}, {float64(w), 0}, {float64(w), float64(h)}, {0, float64(h)}} {
		x, y := world.Apply(p[0], p[1])
		pts[i] = [2]float32{float32(x), float32(y)}
	}
	for i := range pts {
		p, q := pts[i], pts[(i+1)%4]
		vector.StrokeLine(dst, p[0], p[1], q[0], q[1], 1, boundsColor, false)
	}
}
