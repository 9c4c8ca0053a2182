package fgui

// RelationType is a constraint between an edge (or size) of the owner and
// an edge of the target. The values match the package format byte.
type RelationType uint8

const (
	RelationLeftLeft RelationType = iota
	RelationLeftCenter
	RelationLeftRight
	RelationCenterCenter
	RelationRightLeft
	RelationRightCenter
	RelationRightRight

	RelationTopTop
	RelationTopMiddle
	RelationTopBottom
	RelationMiddleMiddle
	RelationBottomTop
	RelationBottomMiddle
	RelationBottomBottom

	RelationWidth
	RelationHeight

	RelationLeftExtLeft
	RelationLeftExtRight
	RelationRightExtLeft
	RelationRightExtRight
	RelationTopExtTop
	RelationTopExtBottom
	RelationBottomExtTop
	RelationBottomExtBottom

	// RelationSize expands to RelationWidth and RelationHeight.
	RelationSize
)

// axis returns 0 for horizontal relations and 1 for vertical ones.
func (t RelationType) axis() int {
	switch {
	case t <= RelationRightRight, t == RelationWidth,
		t >= RelationLeftExtLeft && t <= RelationRightExtRight:
		return 0
	}
	return 1
}

type relationDef struct {
	typ     RelationType
	percent bool
	axis    int
}

// relationItem holds every relation from the owner to one target.
type relationItem struct {
	owner  *Object
	target *Object
	defs   []relationDef

	// target geometry at the last propagation
	tx, ty, tw, th float32

	posHandle  ListenerHandle
	sizeHandle ListenerHandle
}

// Relations is the set of constraints that keep an object positioned or
// sized relative to its parent or siblings.
type Relations struct {
	owner *Object
	items []*relationItem

	// handling is set on a parent's relations while one of its children is
	// reacting to a target change. Nested reactions under the same parent
	// only refresh their snapshot, which bounds propagation to one level.
	handling *Object
}

func newRelations(owner *Object) *Relations {
	return &Relations{owner: owner}
}

// Add relates the owner to target. Adding an existing type is a no-op.
func (r *Relations) Add(target *Object, t RelationType, percent bool) {
	for _, it := range r.items {
		if it.target == target {
			it.add(t, percent)
			return
		}
	}
	it := r.newItem(target)
	it.add(t, percent)
}

func (r *Relations) newItem(target *Object) *relationItem {
	it := &relationItem{owner: r.owner}
	it.setTarget(target)
	r.items = append(r.items, it)
	return it
}

// Remove drops relation type t to target.
func (r *Relations) Remove(target *Object, t RelationType) {
	for i := len(r.items) - 1; i >= 0; i-- {
		it := r.items[i]
		if it.target != target {
			continue
		}
		it.remove(t)
		if len(it.defs) == 0 {
			it.dispose()
			r.removeAt(i)
		}
	}
}

func (r *Relations) removeAt(i int) {
	copy(r.items[i:], r.items[i+1:])
	r.items[len(r.items)-1] = nil
	r.items = r.items[:len(r.items)-1]
}

// Contains reports whether any relation targets target.
func (r *Relations) Contains(target *Object) bool {
	for _, it := range r.items {
		if it.target == target {
			return true
		}
	}
	return false
}

// Types returns the relation types to target.
func (r *Relations) Types(target *Object) []RelationType {
	var out []RelationType
	for _, it := range r.items {
		if it.target != target {
			continue
		}
		for _, d := range it.defs {
			out = append(out, d.typ)
		}
	}
	return out
}

// ClearFor drops every relation to target.
func (r *Relations) ClearFor(target *Object) {
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].target == target {
			r.items[i].dispose()
			r.removeAt(i)
		}
	}
}

// ClearAll drops every relation.
func (r *Relations) ClearAll() {
	for _, it := range r.items {
		it.dispose()
	}
	r.items = nil
}

// CopyFrom replaces the relations with copies of src's. Targets are shared.
func (r *Relations) CopyFrom(src *Relations) {
	r.ClearAll()
	for _, s := range src.items {
		it := r.newItem(s.target)
		it.defs = append(it.defs, s.defs...)
	}
}

// Empty reports whether there are no relations.
func (r *Relations) Empty() bool { return len(r.items) == 0 }

func (r *Relations) dispose() {
	r.ClearAll()
	r.handling = nil
}

// onOwnerSizeChanged keeps right, center and bottom anchored edges in place
// when the owner itself is resized.
func (r *Relations) onOwnerSizeChanged(dw, dh float32, applyPivot bool) {
	for _, it := range r.items {
		it.applyOnSelfSizeChanged(dw, dh, applyPivot)
	}
}

// setup reads a relation record. With parentToChild the target indices refer
// to the owner's children, otherwise to its siblings; -1 is the parent.
func (r *Relations) setup(buf *ByteBuffer, parentToChild bool) {
	cnt := int(buf.ReadByte())
	o := r.owner
	for i := 0; i < cnt; i++ {
		idx := int(buf.ReadShort())
		var target *Object
		switch {
		case idx == -1:
			target = o.parent
		case parentToChild:
			target = o.childAtOrNil(idx)
		case o.parent != nil:
			target = o.parent.childAtOrNil(idx)
		}

		n := int(buf.ReadByte())
		if target == nil {
			buf.Skip(n * 2)
			continue
		}
		it := r.newItem(target)
		for j := 0; j < n; j++ {
			t := RelationType(buf.ReadByte())
			it.internalAdd(t, buf.ReadBool())
		}
	}
}

// --- relationItem ---

func (it *relationItem) setTarget(t *Object) {
	if it.target == t {
		return
	}
	if it.target != nil {
		it.releaseTarget()
	}
	it.target = t
	if t != nil {
		it.watchTarget()
	}
}

func (it *relationItem) add(t RelationType, percent bool) {
	if t == RelationSize {
		it.add(RelationWidth, percent)
		it.add(RelationHeight, percent)
		return
	}
	for _, d := range it.defs {
		if d.typ == t {
			return
		}
	}
	it.internalAdd(t, percent)
}

func (it *relationItem) internalAdd(t RelationType, percent bool) {
	if t == RelationSize {
		it.internalAdd(RelationWidth, percent)
		it.internalAdd(RelationHeight, percent)
		return
	}
	it.defs = append(it.defs, relationDef{typ: t, percent: percent, axis: t.axis()})
}

func (it *relationItem) remove(t RelationType) {
	if t == RelationSize {
		it.remove(RelationWidth)
		it.remove(RelationHeight)
		return
	}
	n := 0
	for _, d := range it.defs {
		if d.typ != t {
			it.defs[n] = d
			n++
		}
	}
	it.defs = it.defs[:n]
}

func (it *relationItem) dispose() {
	if it.target != nil {
		it.releaseTarget()
		it.target = nil
	}
}

func (it *relationItem) watchTarget() {
	t := it.target
	if t != it.owner.parent {
		it.posHandle = t.On(EventPositionChanged, func(*EventContext) { it.onTargetXYChanged() })
	}
	it.sizeHandle = t.On(EventSizeChanged, func(*EventContext) { it.onTargetSizeChanged() })
	it.tx, it.ty, it.tw, it.th = t.x, t.y, t.width, t.height
}

func (it *relationItem) releaseTarget() {
	it.posHandle.Remove()
	it.sizeHandle.Remove()
	it.posHandle = ListenerHandle{}
	it.sizeHandle = ListenerHandle{}
}

// guard returns the relations whose handling flag bounds propagation, or nil
// when the owner has no parent.
func (it *relationItem) guard() *Relations {
	if p := it.owner.parent; p != nil {
		return p.relations
	}
	return nil
}

func (it *relationItem) onTargetXYChanged() {
	t := it.target
	if t == nil {
		return
	}
	g := it.guard()
	if g != nil && g.handling != nil {
		it.tx, it.ty = t.x, t.y
		return
	}
	if g != nil {
		g.handling = t
	}

	o := it.owner
	ox, oy := o.x, o.y
	dx, dy := t.x-it.tx, t.y-it.ty
	for _, d := range it.defs {
		it.applyOnXYChanged(d, dx, dy)
	}
	it.tx, it.ty = t.x, t.y
	if ox != o.x || oy != o.y {
		if gx := o.gears[GearXY]; gx != nil {
			gx.updateFromRelations(o.x-ox, o.y-oy)
		}
	}

	if g != nil {
		g.handling = nil
	}
}

func (it *relationItem) onTargetSizeChanged() {
	t := it.target
	if t == nil {
		return
	}
	g := it.guard()
	if g != nil && g.handling != nil {
		it.tw, it.th = t.width, t.height
		return
	}
	if g != nil {
		g.handling = t
	}

	o := it.owner
	ox, oy, ow, oh := o.x, o.y, o.rawWidth, o.rawHeight
	for _, d := range it.defs {
		it.applyOnSizeChanged(d)
	}
	it.tw, it.th = t.width, t.height
	if ox != o.x || oy != o.y {
		if gx := o.gears[GearXY]; gx != nil {
			gx.updateFromRelations(o.x-ox, o.y-oy)
		}
	}
	if ow != o.rawWidth || oh != o.rawHeight {
		if gs := o.gears[GearSize]; gs != nil {
			gs.updateFromRelations(o.rawWidth-ow, o.rawHeight-oh)
		}
	}

	if g != nil {
		g.handling = nil
	}
}

func (it *relationItem) applyOnSelfSizeChanged(dw, dh float32, applyPivot bool) {
	if len(it.defs) == 0 {
		return
	}
	o := it.owner
	ox, oy := o.x, o.y
	var px, py float32
	if applyPivot {
		px, py = o.pivotX, o.pivotY
	}
	x, y := o.x, o.y
	for _, d := range it.defs {
		switch d.typ {
		case RelationCenterCenter:
			x -= (0.5 - px) * dw
		case RelationRightCenter, RelationRightLeft, RelationRightRight:
			x -= (1 - px) * dw
		case RelationMiddleMiddle:
			y -= (0.5 - py) * dh
		case RelationBottomMiddle, RelationBottomTop, RelationBottomBottom:
			y -= (1 - py) * dh
		}
	}
	o.SetXY(x, y)
	if absf(ox-o.x) > 0.001 || absf(oy-o.y) > 0.001 {
		o.updateGear(GearXY)
	}
}

func (it *relationItem) applyOnXYChanged(d relationDef, dx, dy float32) {
	o := it.owner
	switch d.typ {
	case RelationLeftLeft, RelationLeftCenter, RelationLeftRight, RelationCenterCenter,
		RelationRightLeft, RelationRightCenter, RelationRightRight:
		o.SetX(o.x + dx)
	case RelationTopTop, RelationTopMiddle, RelationTopBottom, RelationMiddleMiddle,
		RelationBottomTop, RelationBottomMiddle, RelationBottomBottom:
		o.SetY(o.y + dy)
	case RelationLeftExtLeft, RelationLeftExtRight:
		if o != it.target.parent {
			x := o.x
			o.SetWidth(o.rawWidth - dx)
			o.SetX(x + dx)
		} else {
			o.SetWidth(o.rawWidth - dx)
		}
	case RelationRightExtLeft, RelationRightExtRight:
		o.SetWidth(o.rawWidth + dx)
	case RelationTopExtTop, RelationTopExtBottom:
		if o != it.target.parent {
			y := o.y
			o.SetHeight(o.rawHeight - dy)
			o.SetY(y + dy)
		} else {
			o.SetHeight(o.rawHeight - dy)
		}
	case RelationBottomExtTop, RelationBottomExtBottom:
		o.SetHeight(o.rawHeight + dy)
	}
}

func (it *relationItem) applyOnSizeChanged(d relationDef) {
	o, t := it.owner, it.target
	var pos, pivot, delta float32
	if d.axis == 0 {
		if t != o.parent {
			pos = t.x
			if t.pivotAsAnchor {
				pivot = t.pivotX
			}
		}
		if d.percent {
			if it.tw != 0 {
				delta = t.width / it.tw
			}
		} else {
			delta = t.width - it.tw
		}
	} else {
		if t != o.parent {
			pos = t.y
			if t.pivotAsAnchor {
				pivot = t.pivotY
			}
		}
		if d.percent {
			if it.th != 0 {
				delta = t.height / it.th
			}
		} else {
			delta = t.height - it.th
		}
	}

	switch d.typ {
	case RelationLeftLeft, RelationLeftCenter, RelationLeftRight:
		switch {
		case d.percent:
			o.SetX(pos + (o.x-pos)*delta)
		case d.typ == RelationLeftCenter:
			o.SetX(o.x + delta*(0.5-pivot))
		case d.typ == RelationLeftRight:
			o.SetX(o.x + delta*(1-pivot))
		}
	case RelationCenterCenter:
		if d.percent {
			o.SetX(pos + (o.x+o.width*0.5-pos)*delta - o.width*0.5)
		} else {
			o.SetX(o.x + delta*(0.5-pivot))
		}
	case RelationRightLeft, RelationRightCenter, RelationRightRight:
		switch {
		case d.percent:
			o.SetX(pos + (o.x+o.width-pos)*delta - o.width)
		case d.typ == RelationRightCenter:
			o.SetX(o.x + delta*(0.5-pivot))
		case d.typ == RelationRightRight:
			o.SetX(o.x + delta*(1-pivot))
		}
	case RelationTopTop, RelationTopMiddle, RelationTopBottom:
		switch {
		case d.percent:
			o.SetY(pos + (o.y-pos)*delta)
		case d.typ == RelationTopMiddle:
			o.SetY(o.y + delta*(0.5-pivot))
		case d.typ == RelationTopBottom:
			o.SetY(o.y + delta*(1-pivot))
		}
	case RelationMiddleMiddle:
		if d.percent {
			o.SetY(pos + (o.y+o.height*0.5-pos)*delta - o.height*0.5)
		} else {
			o.SetY(o.y + delta*(0.5-pivot))
		}
	case RelationBottomTop, RelationBottomMiddle, RelationBottomBottom:
		switch {
		case d.percent:
			o.SetY(pos + (o.y+o.height-pos)*delta - o.height)
		case d.typ == RelationBottomMiddle:
			o.SetY(o.y + delta*(0.5-pivot))
		case d.typ == RelationBottomBottom:
			o.SetY(o.y + delta*(1-pivot))
		}
	case RelationWidth:
		if t == o.parent && d.percent {
			o.SetWidth(t.width + (o.width-it.tw)*delta)
		} else {
			o.SetWidth(t.width + (o.width - it.tw))
		}
	case RelationHeight:
		if t == o.parent && d.percent {
			o.SetHeight(t.height + (o.height-it.th)*delta)
		} else {
			o.SetHeight(t.height + (o.height - it.th))
		}
	}
}
