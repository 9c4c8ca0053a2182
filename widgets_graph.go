package fgui

// GraphType is the shape drawn by a Graph. The values match the package
// format byte.
type GraphType uint8

const (
	GraphEmpty GraphType = iota
	GraphRect
	GraphEllipse
	GraphPolygon
	GraphRegularPolygon
)

// Graph is a vector shape. Rectangles and ellipses are pushed to the backend
// as fills; polygon data is kept for callers but not rendered.
type Graph struct {
	owner        *Object
	typ          GraphType
	lineSize     int
	lineColor    Color
	fillColor    Color
	cornerRadius []float32

	points     []Vec2
	sides      int
	startAngle float32
	distances  []float32
}

func newGraph(o *Object) *Graph {
	return &Graph{owner: o, lineSize: 1, lineColor: ColorBlack}
}

// Type returns the shape kind.
func (g *Graph) Type() GraphType { return g.typ }

// LineSize returns the outline width.
func (g *Graph) LineSize() int { return g.lineSize }

// LineColor returns the outline color.
func (g *Graph) LineColor() Color { return g.lineColor }

// FillColor returns the fill color.
func (g *Graph) FillColor() Color { return g.fillColor }

// CornerRadius returns the four corner radii of a rounded rectangle, or nil.
func (g *Graph) CornerRadius() []float32 { return g.cornerRadius }

// Points returns the vertices of a polygon.
func (g *Graph) Points() []Vec2 { return g.points }

// RegularPolygon returns the side count, start angle and per-vertex
// distances of a regular polygon.
func (g *Graph) RegularPolygon() (sides int, startAngle float32, distances []float32) {
	return g.sides, g.startAngle, g.distances
}

// SetFillColor changes the fill color.
func (g *Graph) SetFillColor(c Color) {
	if g.fillColor == c {
		return
	}
	g.fillColor = c
	g.redraw()
}

// DrawRect resizes the graph and draws a rectangle.
func (g *Graph) DrawRect(w, h float32, lineSize int, lineColor, fillColor Color) {
	g.typ = GraphRect
	g.lineSize, g.lineColor, g.fillColor = lineSize, lineColor, fillColor
	g.cornerRadius = nil
	g.owner.SetSize(w, h, false)
	g.redraw()
}

// DrawRoundRect draws a rectangle with rounded corners (top-left,
// top-right, bottom-left, bottom-right).
func (g *Graph) DrawRoundRect(w, h float32, fillColor Color, corners [4]float32) {
	g.typ = GraphRect
	g.fillColor = fillColor
	g.cornerRadius = corners[:]
	g.owner.SetSize(w, h, false)
	g.redraw()
}

// DrawEllipse resizes the graph and draws an ellipse.
func (g *Graph) DrawEllipse(w, h float32, fillColor Color) {
	g.typ = GraphEllipse
	g.fillColor = fillColor
	g.owner.SetSize(w, h, false)
	g.redraw()
}

// DrawPolygon stores polygon vertices.
func (g *Graph) DrawPolygon(points []Vec2, lineSize int, lineColor, fillColor Color) {
	g.typ = GraphPolygon
	g.points = append(g.points[:0], points...)
	g.lineSize, g.lineColor, g.fillColor = lineSize, lineColor, fillColor
	g.redraw()
}

// Clear removes the shape.
func (g *Graph) Clear() {
	g.typ = GraphEmpty
	g.redraw()
}

func (g *Graph) redraw() {
	o := g.owner
	c := g.fillColor
	if g.typ == GraphEmpty {
		c = Color{}
	}
	o.backend().SetFillColor(o.control, c)
}

func (g *Graph) setupBeforeAdd(buf *ByteBuffer) {
	g.typ = GraphType(buf.ReadByte())
	if g.typ == GraphEmpty {
		return
	}
	g.lineSize = int(buf.ReadInt())
	g.lineColor = buf.ReadColor()
	g.fillColor = buf.ReadColor()
	if buf.ReadBool() {
		g.cornerRadius = make([]float32, 4)
		for i := range g.cornerRadius {
			g.cornerRadius[i] = buf.ReadFloat()
		}
	}
	switch g.typ {
	case GraphPolygon:
		n := int(buf.ReadShort()) / 2
		g.points = make([]Vec2, n)
		for i := range g.points {
			g.points[i].X = buf.ReadFloat()
			g.points[i].Y = buf.ReadFloat()
		}
	case GraphRegularPolygon:
		g.sides = int(buf.ReadShort())
		g.startAngle = buf.ReadFloat()
		n := int(buf.ReadShort())
		if n > 0 {
			g.distances = make([]float32, n)
			for i := range g.distances {
				g.distances[i] = buf.ReadFloat()
			}
		}
	}
	g.redraw()
}
