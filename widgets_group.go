package fgui

// Group is a logical grouping of siblings. It has no control of its own
// children: members stay children of the group's parent and reference the
// group through Object.Group. Moving or resizing the group moves or resizes
// its members, and with a layout the members are arranged in a row or
// column.
type Group struct {
	owner             *Object
	layout            GroupLayoutType
	lineGap           int
	columnGap         int
	excludeInvisibles bool
	autoSizeDisabled  bool
	mainGridIndex     int

	boundsChanged bool
	// updating bit 1 suppresses member moves, bit 2 member resizes.
	updating int
}

func newGroup(o *Object) *Group {
	return &Group{owner: o, mainGridIndex: -1}
}

// Layout returns the arrangement of the members.
func (g *Group) Layout() GroupLayoutType { return g.layout }

// SetLayout changes the arrangement of the members.
func (g *Group) SetLayout(v GroupLayoutType) {
	if g.layout != v {
		g.layout = v
		g.setBoundsChangedFlag(false)
	}
}

// LineGap returns the spacing of a vertical layout.
func (g *Group) LineGap() int { return g.lineGap }

// SetLineGap sets the spacing of a vertical layout.
func (g *Group) SetLineGap(v int) {
	if g.lineGap != v {
		g.lineGap = v
		g.setBoundsChangedFlag(true)
	}
}

// ColumnGap returns the spacing of a horizontal layout.
func (g *Group) ColumnGap() int { return g.columnGap }

// SetColumnGap sets the spacing of a horizontal layout.
func (g *Group) SetColumnGap(v int) {
	if g.columnGap != v {
		g.columnGap = v
		g.setBoundsChangedFlag(true)
	}
}

// ExcludeInvisibles reports whether hidden members are left out of the
// bounds and the layout.
func (g *Group) ExcludeInvisibles() bool { return g.excludeInvisibles }

// SetExcludeInvisibles leaves hidden members out of the bounds and layout.
func (g *Group) SetExcludeInvisibles(v bool) {
	if g.excludeInvisibles != v {
		g.excludeInvisibles = v
		g.setBoundsChangedFlag(false)
	}
}

// AutoSizeDisabled reports whether the group keeps its own size instead of
// wrapping its members.
func (g *Group) AutoSizeDisabled() bool { return g.autoSizeDisabled }

// SetAutoSizeDisabled keeps the group's size fixed.
func (g *Group) SetAutoSizeDisabled(v bool) {
	if g.autoSizeDisabled != v {
		g.autoSizeDisabled = v
		g.setBoundsChangedFlag(false)
	}
}

// Members returns the siblings that belong to the group, in child order.
func (g *Group) Members() []*Object {
	p := g.owner.parent
	if p == nil {
		return nil
	}
	var out []*Object
	for _, c := range p.children {
		if c.group == g.owner {
			out = append(out, c)
		}
	}
	return out
}

func (g *Group) counted(c *Object) bool {
	return !g.excludeInvisibles || c.FinalVisible()
}

// setBoundsChangedFlag marks the group bounds stale. positionOnly is set when
// only member positions changed.
func (g *Group) setBoundsChangedFlag(positionOnly bool) {
	o := g.owner
	if g.updating != 0 || o.parent == nil {
		return
	}
	if !g.boundsChanged {
		g.boundsChanged = true
		if o.rt != nil {
			o.rt.scheduleBounds(o)
		}
	}
}

// EnsureBoundsCorrect lays out the members and fits the group around them.
func (g *Group) EnsureBoundsCorrect() {
	o := g.owner
	if o.parent == nil || !g.boundsChanged {
		return
	}
	g.boundsChanged = false
	if g.autoSizeDisabled {
		g.resizeChildren(0, 0)
		return
	}
	g.handleLayout()
	g.updateBounds()
}

func (g *Group) updateBounds() {
	o := g.owner
	var ax, ay, ar, ab float32
	empty := true
	for _, c := range g.Members() {
		if !g.counted(c) {
			continue
		}
		l, t := c.x, c.y
		r, b := c.x+c.width, c.y+c.height
		if empty {
			ax, ay, ar, ab = l, t, r, b
			empty = false
			continue
		}
		ax, ay = min(ax, l), min(ay, t)
		ar, ab = max(ar, r), max(ab, b)
	}
	if empty {
		ax, ay = o.x, o.y
	}

	g.updating |= 1
	o.SetXY(ax, ay)
	g.updating &= 2
	g.updating |= 2
	o.SetSize(ar-ax, ab-ay, true)
	g.updating &= 1
}

// handleLayout arranges the members in a row or column starting at the
// group origin.
func (g *Group) handleLayout() {
	o := g.owner
	g.updating |= 1
	switch g.layout {
	case GroupLayoutHorizontal:
		cur := o.x
		for _, c := range g.Members() {
			if !g.counted(c) {
				continue
			}
			c.SetXY(cur, c.y)
			cur += c.width + float32(g.columnGap)
		}
	case GroupLayoutVertical:
		cur := o.y
		for _, c := range g.Members() {
			if !g.counted(c) {
				continue
			}
			c.SetXY(c.x, cur)
			cur += c.height + float32(g.lineGap)
		}
	}
	g.updating &= 2
}

// moveChildren shifts every member when the group itself moves.
func (g *Group) moveChildren(dx, dy float32) {
	if g.updating&1 != 0 || g.owner.parent == nil {
		return
	}
	g.updating |= 1
	for _, c := range g.Members() {
		c.SetXY(c.x+dx, c.y+dy)
	}
	g.updating &= 2
}

// resizeChildren distributes a group resize over the members along the
// layout axis, proportionally to their current sizes.
func (g *Group) resizeChildren(dw, dh float32) {
	o := g.owner
	if g.layout == GroupLayoutNone || g.updating&2 != 0 || o.parent == nil {
		return
	}
	g.updating |= 2
	if g.boundsChanged {
		g.boundsChanged = false
		if !g.autoSizeDisabled {
			g.updateBounds()
			g.updating &= 1
			return
		}
	}

	var members []*Object
	for _, c := range g.Members() {
		if g.counted(c) {
			members = append(members, c)
		}
	}
	if len(members) == 0 {
		g.updating &= 1
		return
	}

	horizontal := g.layout == GroupLayoutHorizontal
	var total float32
	for _, c := range members {
		if horizontal {
			total += c.width
		} else {
			total += c.height
		}
	}
	gaps := float32(len(members) - 1)
	var avail float32
	if horizontal {
		avail = o.width - gaps*float32(g.columnGap)
	} else {
		avail = o.height - gaps*float32(g.lineGap)
	}

	remain := avail
	for i, c := range members {
		var size float32
		switch {
		case i == len(members)-1:
			size = remain
		case total > 0:
			cur := c.height
			if horizontal {
				cur = c.width
			}
			size = roundf(avail * cur / total)
		default:
			size = roundf(avail / float32(len(members)))
		}
		size = max(size, 0)
		remain -= size
		if horizontal {
			c.SetSize(size, c.rawHeight+dh, true)
		} else {
			c.SetSize(c.rawWidth+dw, size, true)
		}
	}
	g.handleLayout()
	g.updating &= 1
}

// propagateAlpha pushes the group's alpha onto its members.
func (g *Group) propagateAlpha() {
	a := g.owner.alpha
	for _, c := range g.Members() {
		c.backend().SetAlpha(c.control, c.alpha*a)
	}
}

func (g *Group) setupBeforeAdd(buf *ByteBuffer) {
	g.layout = GroupLayoutType(buf.ReadByte())
	g.lineGap = int(buf.ReadInt())
	g.columnGap = int(buf.ReadInt())
	if buf.Version >= 2 {
		g.excludeInvisibles = buf.ReadBool()
		g.autoSizeDisabled = buf.ReadBool()
		g.mainGridIndex = int(buf.ReadShort())
	}
}
