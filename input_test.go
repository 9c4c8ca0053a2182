package fgui

import (
	"slices"
	"testing"
)

// addGraph adds a w x h graph named name to parent at x, y.
func addGraph(rt *Runtime, parent *Object, name string, x, y, w, h float32) *Object {
	g := rt.NewObject(ObjectGraph)
	g.Name = name
	g.SetXY(x, y)
	g.SetSize(w, h, false)
	parent.AddChild(g)
	return g
}

// tap presses and releases pointer 0 at x, y.
func tap(rt *Runtime, x, y float32, button MouseButton) {
	rt.ProcessPointer(0, x, y, true, button, 0)
	rt.ProcessPointer(0, x, y, false, button, 0)
}

// ---- Hit testing -----------------------------------------------------------

func TestHitTest_TopmostObject(t *testing.T) {
	rt, _ := newTestRuntime(t)
	root := rt.Root().Object()
	addGraph(rt, root, "below", 0, 0, 100, 100)
	top := addGraph(rt, root, "top", 50, 50, 100, 100)

	if got := rt.ObjectAt(Vec2{75, 75}); got != top {
		t.Errorf("ObjectAt = %v, want top", got)
	}
	if got := rt.ObjectAt(Vec2{10, 10}); got == nil || got.Name != "below" {
		t.Errorf("ObjectAt(10,10) = %v, want below", got)
	}
}

func TestHitTest_SkipsInvisible(t *testing.T) {
	rt, _ := newTestRuntime(t)
	root := rt.Root().Object()
	below := addGraph(rt, root, "below", 0, 0, 100, 100)
	top := addGraph(rt, root, "top", 0, 0, 100, 100)
	top.SetVisible(false)

	if got := rt.ObjectAt(Vec2{50, 50}); got != below {
		t.Errorf("ObjectAt = %v, want below", got)
	}
}

func TestHitTest_SkipsUntouchable(t *testing.T) {
	rt, _ := newTestRuntime(t)
	root := rt.Root().Object()
	below := addGraph(rt, root, "below", 0, 0, 100, 100)
	top := addGraph(rt, root, "top", 0, 0, 100, 100)
	top.SetTouchable(false)

	if got := rt.ObjectAt(Vec2{50, 50}); got != below {
		t.Errorf("ObjectAt = %v, want below", got)
	}
}

func TestHitTest_Miss(t *testing.T) {
	rt, _ := newTestRuntime(t)
	addGraph(rt, rt.Root().Object(), "g", 0, 0, 10, 10)
	if got := rt.ObjectAt(Vec2{500, 500}); got != nil {
		t.Errorf("ObjectAt over the bare root = %v, want nil", got)
	}
}

func TestHitTest_ClipContent(t *testing.T) {
	rt, _ := newTestRuntime(t)
	c := newTestComponent(rt, 50, 50)
	rt.Root().AddChild(c)
	g := addGraph(rt, c, "outside", 60, 0, 20, 20)

	if got := rt.ObjectAt(Vec2{70, 5}); got != g {
		t.Errorf("unclipped ObjectAt = %v, want child", got)
	}
	c.SetClipContent(true)
	if got := rt.ObjectAt(Vec2{70, 5}); got != nil {
		t.Errorf("clipped ObjectAt = %v, want nil", got)
	}
}

func TestHitTest_OpaqueComponent(t *testing.T) {
	rt, _ := newTestRuntime(t)
	c := newTestComponent(rt, 50, 50)
	c.SetXY(100, 100)
	rt.Root().AddChild(c)

	if got := rt.ObjectAt(Vec2{110, 110}); got != nil {
		t.Errorf("transparent component hit: %v", got)
	}
	c.SetOpaque(true)
	if got := rt.ObjectAt(Vec2{110, 110}); got != c {
		t.Errorf("ObjectAt = %v, want opaque component", got)
	}
}

func TestHitTest_TransformedParent(t *testing.T) {
	rt, _ := newTestRuntime(t)
	c := newTestComponent(rt, 100, 100)
	c.SetXY(200, 100)
	c.SetScale(2, 2)
	rt.Root().AddChild(c)
	g := addGraph(rt, c, "g", 10, 10, 10, 10)

	if got := rt.ObjectAt(Vec2{230, 130}); got != g {
		t.Errorf("ObjectAt = %v, want scaled child", got)
	}
	if got := rt.ObjectAt(Vec2{215, 115}); got != nil {
		t.Errorf("ObjectAt before the scaled child = %v, want nil", got)
	}
}

// ---- Clicks ----------------------------------------------------------------

func TestClickDetection(t *testing.T) {
	rt, be := newTestRuntime(t)
	g := addGraph(rt, rt.Root().Object(), "g", 0, 0, 100, 100)

	var clicks, doubles int
	g.On(EventClick, func(*EventContext) { clicks++ })
	g.On(EventDoubleClick, func(*EventContext) { doubles++ })

	rt.ProcessPointer(0, 50, 50, true, MouseButtonLeft, 0)
	if !rt.IsPointerDown(0) || be.captured[0] != g.control {
		t.Error("press did not capture the pointer")
	}
	if clicks != 0 {
		t.Error("click fired on press")
	}
	rt.ProcessPointer(0, 50, 50, false, MouseButtonLeft, 0)
	if clicks != 1 || rt.IsPointerDown(0) {
		t.Errorf("clicks = %d after release", clicks)
	}
	if _, ok := be.captured[0]; ok {
		t.Error("release kept the pointer captured")
	}

	tap(rt, 50, 50, MouseButtonLeft)
	if clicks != 2 || doubles != 1 {
		t.Errorf("clicks %d doubles %d, want 2 and 1", clicks, doubles)
	}

	rt.Update(1)
	tap(rt, 50, 50, MouseButtonLeft)
	if doubles != 1 {
		t.Error("slow second click counted as a double click")
	}
}

func TestClickBubbles(t *testing.T) {
	rt, _ := newTestRuntime(t)
	c := newTestComponent(rt, 100, 100)
	rt.Root().AddChild(c)
	g := addGraph(rt, c, "g", 0, 0, 50, 50)

	var sender *Object
	c.On(EventClick, func(ctx *EventContext) { sender = ctx.Sender })
	tap(rt, 10, 10, MouseButtonLeft)
	if sender != g {
		t.Errorf("bubbled sender = %v, want the child", sender)
	}

	sender = nil
	g.On(EventClick, func(ctx *EventContext) { ctx.StopPropagation() })
	tap(rt, 10, 10, MouseButtonLeft)
	if sender != nil {
		t.Error("StopPropagation did not stop bubbling")
	}
}

func TestRightClick(t *testing.T) {
	rt, _ := newTestRuntime(t)
	g := addGraph(rt, rt.Root().Object(), "g", 0, 0, 100, 100)
	var got []string
	g.On(EventClick, func(*EventContext) { got = append(got, "click") })
	g.On(EventRightClick, func(*EventContext) { got = append(got, "right") })

	tap(rt, 10, 10, MouseButtonRight)
	if !slices.Equal(got, []string{"right"}) {
		t.Errorf("events = %v, want [right]", got)
	}
}

func TestClickNotFiredOnDifferentObject(t *testing.T) {
	rt, _ := newTestRuntime(t)
	root := rt.Root().Object()
	a := addGraph(rt, root, "a", 0, 0, 50, 50)
	addGraph(rt, root, "b", 100, 0, 50, 50)

	var clicked, ended bool
	a.On(EventClick, func(*EventContext) { clicked = true })
	a.On(EventTouchEnd, func(*EventContext) { ended = true })

	rt.ProcessPointer(0, 10, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 110, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 110, 10, false, MouseButtonLeft, 0)
	if clicked {
		t.Error("click fired after releasing over another object")
	}
	if !ended {
		t.Error("TouchEnd not sent to the press target")
	}
}

func TestTouchMoveGoesToPressTarget(t *testing.T) {
	rt, _ := newTestRuntime(t)
	a := addGraph(rt, rt.Root().Object(), "a", 0, 0, 50, 50)
	var moves []Vec2
	a.On(EventTouchMove, func(ctx *EventContext) {
		moves = append(moves, Vec2{ctx.Input.X, ctx.Input.Y})
	})

	rt.ProcessPointer(0, 10, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 10, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 300, 20, true, MouseButtonLeft, 0)
	if len(moves) != 1 || moves[0] != (Vec2{300, 20}) {
		t.Errorf("moves = %v, want one at 300,20", moves)
	}
}

func TestMouseWheelBubbles(t *testing.T) {
	rt, _ := newTestRuntime(t)
	c := newTestComponent(rt, 100, 100)
	rt.Root().AddChild(c)
	addGraph(rt, c, "g", 0, 0, 50, 50)

	var delta float32
	c.On(EventMouseWheel, func(ctx *EventContext) { delta = ctx.Input.WheelDelta })
	rt.ProcessWheel(10, 10, 3, 0)
	if delta != 3 {
		t.Errorf("wheel delta = %v, want 3", delta)
	}
}

// ---- Hover -----------------------------------------------------------------

func TestRollOverOrder(t *testing.T) {
	rt, _ := newTestRuntime(t)
	root := rt.Root().Object()
	outer := newTestComponent(rt, 100, 100)
	outer.Name = "outer"
	root.AddChild(outer)
	inner := addGraph(rt, outer, "inner", 0, 0, 50, 50)
	other := addGraph(rt, root, "other", 200, 0, 50, 50)

	var got []string
	rec := func(o *Object) {
		o.On(EventRollOver, func(*EventContext) { got = append(got, "over:"+o.Name) })
		o.On(EventRollOut, func(*EventContext) { got = append(got, "out:"+o.Name) })
	}
	rec(outer)
	rec(inner)
	rec(other)

	rt.ProcessPointer(0, 10, 10, false, MouseButtonLeft, 0)
	if !slices.Equal(got, []string{"over:outer", "over:inner"}) {
		t.Errorf("enter = %v", got)
	}
	got = nil
	rt.ProcessPointer(0, 210, 10, false, MouseButtonLeft, 0)
	if !slices.Equal(got, []string{"out:inner", "out:outer", "over:other"}) {
		t.Errorf("leave = %v", got)
	}
	got = nil
	rt.ProcessPointer(0, 220, 10, false, MouseButtonLeft, 0)
	if len(got) != 0 {
		t.Errorf("moving within the hover target fired %v", got)
	}
}

// ---- Drag ------------------------------------------------------------------

func TestDragDetection(t *testing.T) {
	rt, _ := newTestRuntime(t)
	g := addGraph(rt, rt.Root().Object(), "g", 100, 100, 50, 50)
	g.SetDraggable(true)

	var got []string
	for _, ev := range []string{EventDragStart, EventDragMove, EventDragEnd, EventClick} {
		g.On(ev, func(ctx *EventContext) { got = append(got, ctx.Type) })
	}

	rt.ProcessPointer(0, 110, 110, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 113, 110, true, MouseButtonLeft, 0)
	if len(got) != 0 || g.IsDragging() {
		t.Fatalf("drag started below the threshold: %v", got)
	}
	rt.ProcessPointer(0, 130, 110, true, MouseButtonLeft, 0)
	if !g.IsDragging() {
		t.Fatal("drag did not start past the threshold")
	}
	if g.X() != 117 || g.Y() != 100 {
		t.Errorf("dragged to %v,%v, want 117,100", g.X(), g.Y())
	}
	rt.ProcessPointer(0, 140, 120, true, MouseButtonLeft, 0)
	if g.X() != 127 || g.Y() != 110 {
		t.Errorf("dragged to %v,%v, want 127,110", g.X(), g.Y())
	}
	rt.ProcessPointer(0, 140, 120, false, MouseButtonLeft, 0)

	want := []string{EventDragStart, EventDragMove, EventDragMove, EventDragEnd}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if g.IsDragging() {
		t.Error("still dragging after release")
	}
}

func TestDragStartPrevented(t *testing.T) {
	rt, _ := newTestRuntime(t)
	g := addGraph(rt, rt.Root().Object(), "g", 100, 100, 50, 50)
	g.SetDraggable(true)
	g.On(EventDragStart, func(ctx *EventContext) { ctx.PreventDefault() })
	var clicked bool
	g.On(EventClick, func(*EventContext) { clicked = true })

	rt.ProcessPointer(0, 110, 110, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 130, 110, true, MouseButtonLeft, 0)
	if g.IsDragging() || g.X() != 100 {
		t.Error("prevented DragStart still dragged")
	}
	rt.ProcessPointer(0, 130, 110, false, MouseButtonLeft, 0)
	if !clicked {
		t.Error("release over the target after a prevented drag should click")
	}
}

func TestDragFromChildMovesDraggableAncestor(t *testing.T) {
	rt, _ := newTestRuntime(t)
	c := newTestComponent(rt, 100, 100)
	c.SetDraggable(true)
	rt.Root().AddChild(c)
	addGraph(rt, c, "handle", 0, 0, 100, 20)

	rt.ProcessPointer(0, 10, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 10, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 60, 50, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 60, 50, false, MouseButtonLeft, 0)
	if c.X() != 50 || c.Y() != 40 {
		t.Errorf("component at %v,%v, want 50,40", c.X(), c.Y())
	}
}

func TestStartDragManually(t *testing.T) {
	rt, _ := newTestRuntime(t)
	g := addGraph(rt, rt.Root().Object(), "g", 0, 0, 20, 20)

	rt.ProcessPointer(0, 300, 300, true, MouseButtonLeft, 0)
	g.StartDrag(0)
	rt.ProcessPointer(0, 310, 305, true, MouseButtonLeft, 0)
	if g.X() != 10 || g.Y() != 5 {
		t.Errorf("at %v,%v, want 10,5", g.X(), g.Y())
	}
	g.StopDrag()
	rt.ProcessPointer(0, 400, 400, true, MouseButtonLeft, 0)
	if g.X() != 10 || g.IsDragging() {
		t.Error("StopDrag did not stop following")
	}
}

func TestPointerStateForgetsDisposed(t *testing.T) {
	rt, _ := newTestRuntime(t)
	g := addGraph(rt, rt.Root().Object(), "g", 0, 0, 50, 50)
	rt.ProcessPointer(0, 10, 10, true, MouseButtonLeft, 0)
	g.Dispose()
	rt.ProcessPointer(0, 10, 10, false, MouseButtonLeft, 0)
	if ps := rt.input.pointers[0]; ps.hover != nil || ps.target != nil || ps.lastClickTarget != nil {
		t.Error("pointer state kept a disposed object")
	}
}

func TestProcessPointerIgnoresBadID(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.ProcessPointer(-1, 0, 0, true, MouseButtonLeft, 0)
	rt.ProcessPointer(maxPointers, 0, 0, true, MouseButtonLeft, 0)
	if rt.IsPointerDown(-1) || rt.IsPointerDown(maxPointers) {
		t.Error("out-of-range pointer reported down")
	}
}
