package fgui

import (
	"fmt"
	"strings"
)

// --- Tree manipulation ---

// AddChild appends child. Children with a non-zero sorting order are placed
// in the sorted trailing partition instead.
func (o *Object) AddChild(child *Object) *Object {
	return o.AddChildAt(child, len(o.children))
}

// AddChildAt inserts child at index. If child already has a parent it is
// removed from that parent first. Panics if child is nil, would create a
// cycle, or index is out of range.
func (o *Object) AddChildAt(child *Object, index int) *Object {
	if child == nil {
		panic("fgui: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(o, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if !o.IsContainer() {
		panic(fmt.Sprintf("fgui: %s is not a container", o.Type))
	}
	if child == o || isAncestor(child, o) {
		panic("fgui: adding child would create a cycle")
	}
	if index < 0 || index > len(o.children) {
		panic("fgui: child index out of range")
	}
	if child.parent == o {
		o.SetChildIndex(child, index)
		return child
	}
	if child.parent != nil {
		child.parent.RemoveChild(child, false)
	}
	child.parent = o

	cnt := len(o.children)
	if child.sortingOrder != 0 {
		o.sortingChildCount++
		index = o.insertPosForSortingChild(child)
	} else if o.sortingChildCount > 0 && index > cnt-o.sortingChildCount {
		index = cnt - o.sortingChildCount
	}
	o.children = append(o.children, nil)
	copy(o.children[index+1:], o.children[index:])
	o.children[index] = child

	o.childStateChanged(child)
	o.setBoundsChangedFlag()
	if o.list != nil {
		o.list.childAdded(child)
	}
	if o.OnStage() {
		child.broadcastStage(EventAddedToStage)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(o)
	}
	return child
}

func (o *Object) insertPosForSortingChild(target *Object) int {
	i := 0
	for ; i < len(o.children); i++ {
		c := o.children[i]
		if c == target {
			continue
		}
		if target.sortingOrder < c.sortingOrder {
			break
		}
	}
	return i
}

// RemoveChild detaches child, disposing it when dispose is set. Returns
// child. Panics if child's parent is not o.
func (o *Object) RemoveChild(child *Object, dispose bool) *Object {
	idx := o.ChildIndex(child)
	if idx == -1 {
		panic("fgui: child's parent is not this object")
	}
	return o.RemoveChildAt(idx, dispose)
}

// RemoveChildAt removes the child at index, disposing it when dispose is
// set.
func (o *Object) RemoveChildAt(index int, dispose bool) *Object {
	if globalDebug {
		debugCheckDisposed(o, "RemoveChildAt")
	}
	if index < 0 || index >= len(o.children) {
		panic("fgui: child index out of range")
	}
	child := o.children[index]
	onStage := o.OnStage()
	child.parent = nil
	if child.sortingOrder != 0 {
		o.sortingChildCount--
	}
	copy(o.children[index:], o.children[index+1:])
	o.children[len(o.children)-1] = nil
	o.children = o.children[:len(o.children)-1]
	child.group = nil
	if o.list != nil {
		o.list.childRemoved(child)
	}
	if child.attached {
		o.backend().RemoveChild(o.contentControl(), child.control)
		child.attached = false
	}
	if onStage {
		child.broadcastStage(EventRemovedFromStage)
	}
	if dispose {
		child.Dispose()
	}
	o.setBoundsChangedFlag()
	return child
}

// broadcastStage emits a stage event on o and every descendant.
func (o *Object) broadcastStage(event string) {
	o.Emit(event, nil)
	for _, c := range o.children {
		c.broadcastStage(event)
	}
}

// RemoveFromParent detaches this object from its parent. No-op without a
// parent.
func (o *Object) RemoveFromParent() {
	if o.parent != nil {
		o.parent.RemoveChild(o, false)
	}
}

// RemoveChildren removes every child, disposing them when dispose is set.
func (o *Object) RemoveChildren(dispose bool) {
	o.RemoveChildrenRange(0, -1, dispose)
}

// RemoveChildrenRange removes children in [begin, end]. A negative or
// out-of-range end means the last child.
func (o *Object) RemoveChildrenRange(begin, end int, dispose bool) {
	if end < 0 || end >= len(o.children) {
		end = len(o.children) - 1
	}
	for i := begin; i <= end; i++ {
		o.RemoveChildAt(begin, dispose)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (o *Object) Children() []*Object { return o.children }

// NumChildren returns the number of children.
func (o *Object) NumChildren() int { return len(o.children) }

// ChildAt returns the child at index. Panics when out of range.
func (o *Object) ChildAt(index int) *Object {
	if index < 0 || index >= len(o.children) {
		panic("fgui: child index out of range")
	}
	return o.children[index]
}

func (o *Object) childAtOrNil(index int) *Object {
	if index < 0 || index >= len(o.children) {
		return nil
	}
	return o.children[index]
}

// ChildByName returns the first child with the given name, or nil.
func (o *Object) ChildByName(name string) *Object {
	for _, c := range o.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildByID returns the child with the given id, or nil.
func (o *Object) ChildByID(id string) *Object {
	for _, c := range o.children {
		if c.id == id {
			return c
		}
	}
	return nil
}

// ChildByPath resolves a dot-separated path of child names ("a.b.c").
func (o *Object) ChildByPath(path string) *Object {
	cur := o
	var obj *Object
	for _, name := range strings.Split(path, ".") {
		if cur == nil {
			return nil
		}
		obj = cur.ChildByName(name)
		if obj == nil {
			return nil
		}
		if obj.IsContainer() {
			cur = obj
		} else {
			cur = nil
		}
	}
	return obj
}

// ChildIndex returns the index of child, or -1.
func (o *Object) ChildIndex(child *Object) int {
	for i, c := range o.children {
		if c == child {
			return i
		}
	}
	return -1
}

// SetChildIndex moves child within its siblings. Children with a non-zero
// sorting order keep their sorted position.
func (o *Object) SetChildIndex(child *Object, index int) {
	old := o.ChildIndex(child)
	if old == -1 {
		panic("fgui: child's parent is not this object")
	}
	if child.sortingOrder != 0 {
		return
	}
	cnt := len(o.children)
	if o.sortingChildCount > 0 && index > cnt-o.sortingChildCount-1 {
		index = cnt - o.sortingChildCount - 1
	}
	o.moveChild(child, old, index)
}

// SetChildIndexBefore places child before the object currently at index and
// returns the resulting index.
func (o *Object) SetChildIndexBefore(child *Object, index int) int {
	old := o.ChildIndex(child)
	if old == -1 {
		panic("fgui: child's parent is not this object")
	}
	if child.sortingOrder != 0 {
		return old
	}
	cnt := len(o.children)
	if o.sortingChildCount > 0 && index > cnt-o.sortingChildCount-1 {
		index = cnt - o.sortingChildCount - 1
	}
	if old < index {
		return o.moveChild(child, old, index-1)
	}
	return o.moveChild(child, old, index)
}

func (o *Object) moveChild(child *Object, old, index int) int {
	if index < 0 {
		index = 0
	}
	if index >= len(o.children) {
		index = len(o.children) - 1
	}
	if old == index {
		return old
	}
	if old < index {
		copy(o.children[old:], o.children[old+1:index+1])
	} else {
		copy(o.children[index+1:], o.children[index:old])
	}
	o.children[index] = child
	if child.attached {
		b := o.backend()
		b.RemoveChild(o.contentControl(), child.control)
		b.AddChild(o.contentControl(), child.control, o.attachedIndex(child))
	}
	o.setBoundsChangedFlag()
	return index
}

// SwapChildren exchanges the positions of two children.
func (o *Object) SwapChildren(a, b *Object) {
	i1, i2 := o.ChildIndex(a), o.ChildIndex(b)
	if i1 == -1 || i2 == -1 {
		panic("fgui: child's parent is not this object")
	}
	o.SwapChildrenAt(i1, i2)
}

// SwapChildrenAt exchanges the children at two indices.
func (o *Object) SwapChildrenAt(i1, i2 int) {
	a, b := o.ChildAt(i1), o.ChildAt(i2)
	o.SetChildIndex(a, i2)
	o.SetChildIndex(b, i1)
}

// IsAncestorOf reports whether o is a strict ancestor of obj.
func (o *Object) IsAncestorOf(obj *Object) bool {
	return obj != nil && isAncestor(o, obj)
}

// isAncestor reports whether a is a strict ancestor of n.
func isAncestor(a, n *Object) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

func (o *Object) childSortingOrderChanged(child *Object, oldValue, newValue int) {
	if newValue == 0 {
		o.sortingChildCount--
		o.SetChildIndex(child, len(o.children))
		return
	}
	if oldValue == 0 {
		o.sortingChildCount++
	}
	old := o.ChildIndex(child)
	index := o.insertPosForSortingChild(child)
	if old < index {
		o.moveChild(child, old, index-1)
	} else {
		o.moveChild(child, old, index)
	}
}

// --- Realization ---

func (o *Object) contentControl() Control {
	if o.container != 0 {
		return o.container
	}
	return o.control
}

// attachedIndex counts attached siblings before child.
func (o *Object) attachedIndex(child *Object) int {
	n := 0
	for _, c := range o.children {
		if c == child {
			break
		}
		if c.attached {
			n++
		}
	}
	return n
}

// childStateChanged attaches or detaches the child's control according to
// its final visibility. Deferred while building.
func (o *Object) childStateChanged(child *Object) {
	if o.building {
		return
	}
	if child.groupData != nil {
		for _, c := range o.children {
			if c.group == child {
				o.childStateChanged(c)
			}
		}
	}
	if child.FinalVisible() {
		if !child.attached {
			child.attached = true
			o.backend().AddChild(o.contentControl(), child.control, o.attachedIndex(child))
		}
	} else if child.attached {
		child.attached = false
		o.backend().RemoveChild(o.contentControl(), child.control)
	}
}

// realizeChildren attaches every visible child after a build.
func (o *Object) realizeChildren() {
	for _, c := range o.children {
		o.childStateChanged(c)
	}
}

// --- Bounds ---

// setBoundsChangedFlag marks the content bounds stale. Only containers with
// a scroll pane, a list layout or bound tracking keep bounds.
func (o *Object) setBoundsChangedFlag() {
	if o.scrollPane == nil && o.list == nil && !o.trackBounds() {
		return
	}
	if !o.boundsChanged {
		o.boundsChanged = true
		if o.rt != nil {
			o.rt.scheduleBounds(o)
		}
	}
}

func (o *Object) trackBounds() bool {
	return o.rt != nil && o.rt.trackBounds[o]
}

// SetTrackBounds keeps the container's content bounds current even without
// a scroll pane.
func (o *Object) SetTrackBounds(v bool) {
	if o.rt == nil {
		return
	}
	if v {
		o.rt.trackBounds[o] = true
		o.setBoundsChangedFlag()
	} else {
		delete(o.rt.trackBounds, o)
	}
}

// EnsureBoundsCorrect brings the content bounds up to date now.
func (o *Object) EnsureBoundsCorrect() {
	for _, c := range o.children {
		if c.groupData != nil {
			c.groupData.EnsureBoundsCorrect()
		}
	}
	if o.boundsChanged {
		o.updateBounds()
	}
}

func (o *Object) updateBounds() {
	if o.list != nil {
		o.list.updateBounds()
		return
	}
	var ax, ay, ar, ab float32
	if len(o.children) > 0 {
		first := true
		for _, c := range o.children {
			if !c.FinalVisible() && c.groupData == nil {
				continue
			}
			l, t := c.x, c.y
			r, b := c.x+c.width*c.scaleX, c.y+c.height*c.scaleY
			if first {
				ax, ay, ar, ab = l, t, r, b
				first = false
				continue
			}
			ax = min(ax, l)
			ay = min(ay, t)
			ar = max(ar, r)
			ab = max(ab, b)
		}
	}
	o.setBounds(ax, ay, ar-ax, ab-ay)
}

func (o *Object) setBounds(ax, ay, aw, ah float32) {
	o.boundsChanged = false
	if o.scrollPane != nil {
		o.scrollPane.SetContentSize(roundf(ax+aw), roundf(ay+ah))
	}
}

// Bounds returns the union of the visible children's rectangles.
func (o *Object) Bounds() Rect {
	var r Rect
	first := true
	for _, c := range o.children {
		if !c.FinalVisible() {
			continue
		}
		cr := Rect{c.x, c.y, c.width * c.scaleX, c.height * c.scaleY}
		if first {
			r = cr
			first = false
			continue
		}
		x2 := max(r.X+r.Width, cr.X+cr.Width)
		y2 := max(r.Y+r.Height, cr.Y+cr.Height)
		r.X = min(r.X, cr.X)
		r.Y = min(r.Y, cr.Y)
		r.Width = x2 - r.X
		r.Height = y2 - r.Y
	}
	return r
}

// --- Container properties ---

// Margin returns the content margin.
func (o *Object) Margin() Margin { return o.margin }

// SetMargin sets the content margin.
func (o *Object) SetMargin(m Margin) {
	o.margin = m
	o.updateContainerControl()
}

// Opaque reports whether the container receives input on empty areas.
func (o *Object) Opaque() bool { return o.opaque }

// SetOpaque sets whether the container receives input on empty areas.
func (o *Object) SetOpaque(v bool) {
	o.opaque = v
	o.backend().SetTouchable(o.control, o.touchable)
}

// ClipContent reports whether children are clipped to the view.
func (o *Object) ClipContent() bool { return o.clipContent }

// SetClipContent clips children to the container's view.
func (o *Object) SetClipContent(v bool) {
	o.clipContent = v
	o.backend().SetClip(o.control, v)
}

// ScrollPane returns the container's scroll pane, or nil.
func (o *Object) ScrollPane() *ScrollPane { return o.scrollPane }

// ViewWidth and ViewHeight return the size inside the margins.
func (o *Object) ViewWidth() float32 {
	if o.scrollPane != nil {
		return o.scrollPane.viewSize.X
	}
	return o.width - float32(o.margin.Left+o.margin.Right)
}

// ViewHeight returns the height inside the margins.
func (o *Object) ViewHeight() float32 {
	if o.scrollPane != nil {
		return o.scrollPane.viewSize.Y
	}
	return o.height - float32(o.margin.Top+o.margin.Bottom)
}

// ensureContainerControl creates the inner content control used for
// margins and scrolling.
func (o *Object) ensureContainerControl() {
	if o.container != 0 {
		return
	}
	b := o.backend()
	o.container = b.CreateControl(ObjectComponent)
	if o.container != 0 {
		b.AddChild(o.control, o.container, 0)
	}
}

func (o *Object) updateContainerControl() {
	if o.margin != (Margin{}) || o.scrollPane != nil {
		o.ensureContainerControl()
	}
	if o.container == 0 {
		return
	}
	off := o.contentOffset()
	o.backend().SetPosition(o.container, off.X, off.Y)
}

func (o *Object) containerSizeChanged() {
	if o.scrollPane != nil {
		o.scrollPane.onOwnerSizeChanged()
	}
	if o.clipContent {
		o.backend().SetClip(o.control, true)
	}
	o.updateContainerControl()
}

// --- Controllers ---

// Controllers returns the container's controllers. The returned slice MUST
// NOT be mutated by the caller.
func (o *Object) Controllers() []*Controller { return o.controllers }

// ControllerByName returns the controller with the given name, or nil.
func (o *Object) ControllerByName(name string) *Controller {
	for _, c := range o.controllers {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ControllerAt returns the controller at index, or nil when out of range.
func (o *Object) ControllerAt(index int) *Controller {
	if index < 0 || index >= len(o.controllers) {
		return nil
	}
	return o.controllers[index]
}

// AddController attaches c to this container.
func (o *Object) AddController(c *Controller) {
	if c.parent != nil && c.parent != o {
		c.parent.RemoveController(c)
	}
	c.parent = o
	o.controllers = append(o.controllers, c)
	o.applyController(c)
}

// RemoveController detaches c. Gears bound to it revert to their defaults.
func (o *Object) RemoveController(c *Controller) {
	for i, x := range o.controllers {
		if x == c {
			copy(o.controllers[i:], o.controllers[i+1:])
			o.controllers[len(o.controllers)-1] = nil
			o.controllers = o.controllers[:len(o.controllers)-1]
			for _, child := range o.children {
				child.clearGearsFor(c)
			}
			c.parent = nil
			return
		}
	}
}

func (o *Object) clearGearsFor(c *Controller) {
	for _, g := range o.gears {
		if g != nil && g.controller == c {
			g.SetController(nil)
		}
	}
}

// applyController applies c to every descendant's gears. The walk is fully
// synchronous.
func (o *Object) applyController(c *Controller) {
	o.walkControllerChanged(c)
}

func (o *Object) walkControllerChanged(c *Controller) {
	for _, child := range o.children {
		child.handleControllerChanged(c)
		if len(child.children) > 0 {
			child.walkControllerChanged(c)
		}
	}
}

func (o *Object) applyAllControllers() {
	for _, c := range o.controllers {
		o.applyController(c)
	}
}

// --- Transitions ---

// Transitions returns the container's transitions.
func (o *Object) Transitions() []*Transition { return o.transitions }

// Transition returns the transition with the given name, or nil.
func (o *Object) Transition(name string) *Transition {
	for _, t := range o.transitions {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TransitionAt returns the transition at index, or nil when out of range.
func (o *Object) TransitionAt(index int) *Transition {
	if index < 0 || index >= len(o.transitions) {
		return nil
	}
	return o.transitions[index]
}

// AddTransition attaches t to this container.
func (o *Object) AddTransition(t *Transition) {
	t.owner = o
	o.transitions = append(o.transitions, t)
}
