package fgui

// maxPointers is the maximum number of simultaneous pointers (mouse + touches).
const maxPointers = 10

// doubleClickInterval is the longest gap in seconds between two clicks on
// the same object that still counts as a double click.
const doubleClickInterval = 0.35

// pointerState tracks one pointer across frames.
type pointerState struct {
	down   bool
	button MouseButton
	start  Vec2
	last   Vec2

	target    *Object // receives move and end while pressed
	hover     *Object
	candidate *Object // draggable object waiting for the drag threshold

	dragObj     *Object
	dragOffset  Vec2
	paneDragged bool

	lastClickTime   float64
	lastClickTarget *Object
	clickCount      int
}

type inputState struct {
	pointers [maxPointers]pointerState
	lastPos  Vec2
	focus    *Object
}

// forget drops every reference the pointer states hold to o.
func (s *inputState) forget(o *Object) {
	if s.focus == o {
		s.focus = nil
	}
	for i := range s.pointers {
		ps := &s.pointers[i]
		if ps.target == o {
			ps.target = nil
		}
		if ps.hover == o {
			ps.hover = nil
		}
		if ps.candidate == o {
			ps.candidate = nil
		}
		if ps.dragObj == o {
			ps.dragObj = nil
		}
		if ps.lastClickTarget == o {
			ps.lastClickTarget = nil
		}
	}
}

// PointerPosition returns the last pointer position in screen space.
func (rt *Runtime) PointerPosition() Vec2 { return rt.input.lastPos }

// IsPointerDown reports whether pointerID is pressed.
func (rt *Runtime) IsPointerDown(pointerID int) bool {
	if pointerID < 0 || pointerID >= maxPointers {
		return false
	}
	return rt.input.pointers[pointerID].down
}

// --- Hit testing ---

// ObjectAt returns the topmost touchable object under the screen-space
// point, or nil when only the root is there.
func (rt *Runtime) ObjectAt(p Vec2) *Object {
	r := rt.root.obj
	return hitObject(r, r.parentToLocal(p))
}

// hitObject finds the topmost touchable object under p, given in o's local
// space. Scroll bars are tested before the content and the content before
// header and footer.
func hitObject(o *Object, p Vec2) *Object {
	if !o.touchable || !o.FinalVisible() || o.groupData != nil {
		return nil
	}
	inside := p.X >= 0 && p.Y >= 0 && p.X < o.width && p.Y < o.height
	if !o.IsContainer() {
		if inside {
			return o
		}
		return nil
	}
	sp := o.scrollPane
	if (o.clipContent || sp != nil) && !inside {
		return nil
	}
	if sp != nil {
		for _, bar := range [2]*Object{sp.vtBar, sp.hzBar} {
			if bar == nil {
				continue
			}
			if h := hitObject(bar, bar.parentToLocal(p)); h != nil {
				return h
			}
		}
	}
	off := o.contentOffset()
	cp := Vec2{p.X - off.X, p.Y - off.Y}
	for i := len(o.children) - 1; i >= 0; i-- {
		c := o.children[i]
		if h := hitObject(c, c.parentToLocal(cp)); h != nil {
			return h
		}
	}
	if sp != nil {
		for _, d := range [2]*Object{sp.header, sp.footer} {
			if d == nil {
				continue
			}
			if h := hitObject(d, d.parentToLocal(cp)); h != nil {
				return h
			}
		}
	}
	if inside && (o.opaque || sp != nil) && o.parent != nil {
		return o
	}
	return nil
}

// --- Input processing ---

// ProcessPointer feeds one pointer sample in screen space. Backends without
// native hit testing call it once per pointer per frame; the runtime finds
// the target, tracks press, drag and hover state, and dispatches events.
func (rt *Runtime) ProcessPointer(pointerID int, x, y float32, pressed bool, button MouseButton, mods KeyModifiers) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &rt.input.pointers[pointerID]
	p := Vec2{x, y}
	rt.input.lastPos = p
	if ps.down {
		button = ps.button
	}
	ev := &InputEvent{X: x, Y: y, Button: button, PointerID: pointerID, Modifiers: mods}
	hit := rt.ObjectAt(p)
	rt.setHover(ps, hit, ev)

	switch {
	case pressed && !ps.down:
		rt.press(ps, hit, ev)
	case !pressed && ps.down:
		rt.release(ps, hit, ev)
	case pressed && ps.down:
		if p != ps.last {
			rt.move(ps, ev)
		}
	}
	ps.last = p
}

// ProcessWheel feeds a wheel step at the screen-space point. Positive
// delta scrolls down.
func (rt *Runtime) ProcessWheel(x, y, delta float32, mods KeyModifiers) {
	rt.input.lastPos = Vec2{x, y}
	target := rt.ObjectAt(Vec2{x, y})
	if target == nil {
		target = rt.root.obj
	}
	target.Bubble(EventMouseWheel, &InputEvent{X: x, Y: y, WheelDelta: delta, Modifiers: mods})
}

// handleInput is the InputHandler registered for every control. Backends
// with native hit testing report press, move and release on the control
// under the pointer; they report InputClick only when they do not report
// press and release.
func (o *Object) handleInput(kind InputKind, ev *InputEvent) {
	rt := o.rt
	if rt == nil || o.disposed || ev == nil || ev.PointerID < 0 || ev.PointerID >= maxPointers {
		return
	}
	ps := &rt.input.pointers[ev.PointerID]
	p := Vec2{ev.X, ev.Y}
	rt.input.lastPos = p
	switch kind {
	case InputPress:
		if !ps.down {
			rt.press(ps, o, ev)
		}
	case InputMove:
		if ps.down {
			rt.move(ps, ev)
		}
	case InputRelease:
		if ps.down {
			rt.release(ps, o, ev)
		}
	case InputClick:
		rt.click(ps, o, ev)
	case InputEnter:
		rt.setHover(ps, o, ev)
	case InputLeave:
		if ps.hover == o {
			rt.setHover(ps, nil, ev)
		}
	case InputWheel:
		o.Bubble(EventMouseWheel, ev)
	case InputLongPress:
		o.Bubble(EventLongPress, ev)
	case InputDoubleClick:
		o.Bubble(EventDoubleClick, ev)
	}
	ps.last = p
}

func (rt *Runtime) press(ps *pointerState, target *Object, ev *InputEvent) {
	if target == nil {
		target = rt.root.obj
	}
	p := Vec2{ev.X, ev.Y}
	ps.down = true
	ps.button = ev.Button
	ps.start, ps.last = p, p
	ps.target = target
	ps.candidate = nil
	ps.paneDragged = false
	rt.backend.CapturePointer(target.control, ev.PointerID)

	target.Bubble(EventTouchBegin, ev)
	rt.focusFromPress(target)
	if ps.target != nil && ev.Button == MouseButtonLeft {
		for c := target; c != nil; c = c.parent {
			if c.draggable {
				ps.candidate = c
				break
			}
		}
	}

	r := rt.root
	r.checkPopups(target)
	r.keepPopup = nil
	r.HideTooltips()
}

func (rt *Runtime) move(ps *pointerState, ev *InputEvent) {
	p := Vec2{ev.X, ev.Y}
	if obj := ps.dragObj; obj != nil {
		ps.last = p
		obj.followPointer(ps, ev)
		return
	}
	if c := ps.candidate; c != nil && rt.draggingPane == nil {
		dx, dy := p.X-ps.start.X, p.Y-ps.start.Y
		if th := rt.Config.dragThreshold(); dx*dx+dy*dy >= th*th {
			ps.candidate = nil
			if !c.dispatch(EventDragStart, nil, ev).prevented {
				c.StartDrag(ev.PointerID)
				if ps.dragObj == c {
					ps.last = p
					c.followPointer(ps, ev)
					return
				}
			}
		}
	}
	if ps.target != nil {
		ps.target.Bubble(EventTouchMove, ev)
	}
	if rt.draggingPane != nil {
		ps.paneDragged = true
		ps.candidate = nil
	}
}

func (rt *Runtime) release(ps *pointerState, hit *Object, ev *InputEvent) {
	target := ps.target
	dragged := ps.paneDragged || rt.draggingPane != nil
	moved := ps.dragObj != nil
	if obj := ps.dragObj; obj != nil {
		ps.dragObj = nil
		obj.dispatch(EventDragEnd, nil, ev)
	}
	ps.down = false
	ps.target = nil
	ps.candidate = nil
	if target == nil {
		return
	}
	target.Bubble(EventTouchEnd, ev)
	rt.backend.ReleasePointer(target.control, ev.PointerID)
	if dragged || moved || target.disposed {
		return
	}
	if hit == target || target.IsAncestorOf(hit) || target == rt.root.obj {
		rt.click(ps, target, ev)
	}
}

func (rt *Runtime) click(ps *pointerState, target *Object, ev *InputEvent) {
	if ps.lastClickTarget == target && rt.time-ps.lastClickTime < doubleClickInterval {
		ps.clickCount++
	} else {
		ps.clickCount = 1
	}
	ps.lastClickTarget = target
	ps.lastClickTime = rt.time
	ev.ClickCount = ps.clickCount

	switch ev.Button {
	case MouseButtonRight:
		target.Bubble(EventRightClick, ev)
	case MouseButtonLeft:
		target.Bubble(EventClick, ev)
		if ps.clickCount == 2 && !target.disposed {
			target.Bubble(EventDoubleClick, ev)
		}
	}
}

// setHover moves the hover to target, firing RollOut on the objects it
// left (innermost first) and RollOver on the ones it entered (outermost
// first). Neither bubbles.
func (rt *Runtime) setHover(ps *pointerState, target *Object, ev *InputEvent) {
	if ps.hover == target {
		return
	}
	old := ps.hover
	ps.hover = target
	for o := old; o != nil; o = o.parent {
		if o == target || o.IsAncestorOf(target) {
			break
		}
		o.dispatch(EventRollOut, nil, ev)
		if o.tooltips != "" {
			rt.root.HideTooltips()
		}
	}
	var entered []*Object
	for o := target; o != nil; o = o.parent {
		if o == old || o.IsAncestorOf(old) {
			break
		}
		entered = append(entered, o)
	}
	for i := len(entered) - 1; i >= 0; i-- {
		o := entered[i]
		if o.disposed {
			continue
		}
		o.dispatch(EventRollOver, nil, ev)
		if o.tooltips != "" {
			rt.root.ShowTooltips(o.tooltips)
		}
	}
}

// --- Object drag ---

// StartDrag makes the object follow pointerID until it is released. The
// object keeps its offset from the pointer.
func (o *Object) StartDrag(pointerID int) {
	rt := o.rt
	if rt == nil || o.parent == nil || pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &rt.input.pointers[pointerID]
	if ps.dragObj != nil && ps.dragObj != o {
		ps.dragObj.StopDrag()
	}
	ps.dragObj = o
	ps.candidate = nil
	pt := o.parent.contentPoint(ps.last)
	ps.dragOffset = Vec2{pt.X - o.x, pt.Y - o.y}
}

// StopDrag ends a drag started by StartDrag without firing EventDragEnd.
func (o *Object) StopDrag() {
	if o.rt == nil {
		return
	}
	for i := range o.rt.input.pointers {
		if ps := &o.rt.input.pointers[i]; ps.dragObj == o {
			ps.dragObj = nil
		}
	}
}

// IsDragging reports whether the object follows a pointer.
func (o *Object) IsDragging() bool {
	if o.rt == nil {
		return false
	}
	for i := range o.rt.input.pointers {
		if o.rt.input.pointers[i].dragObj == o {
			return true
		}
	}
	return false
}

func (o *Object) followPointer(ps *pointerState, ev *InputEvent) {
	if o.parent == nil {
		return
	}
	pt := o.parent.contentPoint(Vec2{ev.X, ev.Y})
	o.SetXY(float32(int(pt.X-ps.dragOffset.X)), float32(int(pt.Y-ps.dragOffset.Y)))
	o.dispatch(EventDragMove, nil, ev)
}

// contentPoint maps a screen-space point into o's content space, where its
// children are positioned.
func (o *Object) contentPoint(global Vec2) Vec2 {
	p := o.GlobalToLocal(global)
	off := o.contentOffset()
	return Vec2{p.X - off.X, p.Y - off.Y}
}
