package fgui

import (
	"testing"
)

// --- Helpers ---

func assertChildren(t *testing.T, parent *Object, want ...*Object) {
	t.Helper()
	if len(parent.Children()) != len(want) {
		t.Fatalf("children = %d, want %d", len(parent.Children()), len(want))
	}
	for i, c := range parent.Children() {
		if c != want[i] {
			t.Errorf("child %d = %v, want %v", i, c, want[i])
		}
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

// --- Tree ---

func TestAddChildAppendsAndReparents(t *testing.T) {
	rt, _ := newTestRuntime(t)
	a := newTestComponent(rt, 10, 10)
	b := newTestComponent(rt, 10, 10)
	c := rt.NewObject(ObjectGraph)

	a.AddChild(c)
	if c.Parent() != a {
		t.Fatalf("parent = %v, want a", c.Parent())
	}
	b.AddChild(c)
	if c.Parent() != b || a.NumChildren() != 0 {
		t.Error("reparenting did not detach from the old parent")
	}
	assertChildren(t, b, c)
}

func TestAddChildAtAndSetChildIndex(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newTestComponent(rt, 10, 10)
	x := p.AddChild(rt.NewObject(ObjectGraph))
	y := p.AddChild(rt.NewObject(ObjectGraph))
	z := p.AddChildAt(rt.NewObject(ObjectGraph), 0)
	assertChildren(t, p, z, x, y)

	p.SetChildIndex(z, 2)
	assertChildren(t, p, x, y, z)

	p.SwapChildren(x, z)
	assertChildren(t, p, z, y, x)
}

func TestSortingOrderPartition(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newTestComponent(rt, 10, 10)
	hi := rt.NewObject(ObjectGraph)
	hi.SetSortingOrder(5)
	lo := rt.NewObject(ObjectGraph)
	lo.SetSortingOrder(2)
	plain := rt.NewObject(ObjectGraph)

	p.AddChild(hi)
	p.AddChild(lo)
	p.AddChild(plain)
	assertChildren(t, p, plain, lo, hi)

	lo.SetSortingOrder(9)
	assertChildren(t, p, plain, hi, lo)

	lo.SetSortingOrder(0)
	if p.ChildIndex(hi) != 2 {
		t.Errorf("hi index = %d, want last", p.ChildIndex(hi))
	}
}

func TestSortingOrderKeepsEqualSiblingsStable(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newTestComponent(rt, 10, 10)
	plain := p.AddChild(rt.NewObject(ObjectGraph))
	a, b, c := rt.NewObject(ObjectGraph), rt.NewObject(ObjectGraph), rt.NewObject(ObjectGraph)
	a.SetSortingOrder(3)
	b.SetSortingOrder(3)
	c.SetSortingOrder(5)
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)
	assertChildren(t, p, plain, a, b, c)

	// a re-homed child lands after the siblings already at its order
	c.SetSortingOrder(3)
	assertChildren(t, p, plain, a, b, c)
	a.SetSortingOrder(4)
	assertChildren(t, p, plain, b, c, a)
	a.SetSortingOrder(3)
	assertChildren(t, p, plain, b, c, a)

	q := newTestComponent(rt, 10, 10)
	d := rt.NewObject(ObjectGraph)
	d.SetSortingOrder(3)
	q.AddChild(d)
	q.AddChild(b)
	assertChildren(t, q, d, b)
	assertChildren(t, p, plain, c, a)
}

func TestAddChildPanics(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newTestComponent(rt, 10, 10)
	child := newTestComponent(rt, 10, 10)
	p.AddChild(child)
	leaf := rt.NewObject(ObjectGraph)

	assertPanics(t, "nil child", func() { p.AddChild(nil) })
	assertPanics(t, "cycle", func() { child.AddChild(p) })
	assertPanics(t, "self", func() { p.AddChild(p) })
	assertPanics(t, "non-container", func() { leaf.AddChild(rt.NewObject(ObjectGraph)) })
	assertPanics(t, "index", func() { p.AddChildAt(rt.NewObject(ObjectGraph), 9) })
	assertPanics(t, "foreign remove", func() { p.RemoveChild(leaf, false) })
}

func TestChildLookup(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newTestComponent(rt, 10, 10)
	inner := newTestComponent(rt, 10, 10)
	inner.Name = "inner"
	leaf := rt.NewObject(ObjectGraph)
	leaf.Name = "leaf"
	p.AddChild(inner)
	inner.AddChild(leaf)

	if got := p.ChildByPath("inner.leaf"); got != leaf {
		t.Errorf("ChildByPath = %v, want leaf", got)
	}
	if got := p.ChildByPath("inner.nope"); got != nil {
		t.Errorf("ChildByPath(miss) = %v", got)
	}
	if got := p.ChildByID(inner.ID()); got != inner {
		t.Errorf("ChildByID = %v", got)
	}
	if !p.IsAncestorOf(leaf) || leaf.IsAncestorOf(p) {
		t.Error("IsAncestorOf wrong")
	}
}

func TestBackendMirrorsVisibleChildren(t *testing.T) {
	rt, b := newTestRuntime(t)
	p := newTestComponent(rt, 10, 10)
	c := rt.NewObject(ObjectGraph)
	p.AddChild(c)

	if b.get(c.Control()).parent == 0 {
		t.Fatal("visible child not attached to its parent control")
	}
	c.SetVisible(false)
	if b.get(c.Control()).parent != 0 {
		t.Error("hidden child still attached")
	}
	c.SetVisible(true)
	p.RemoveChild(c, false)
	if b.get(c.Control()).parent != 0 {
		t.Error("removed child still attached")
	}
}

// --- Stage ---

func TestStageEvents(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newTestComponent(rt, 10, 10)
	c := rt.NewObject(ObjectGraph)
	p.AddChild(c)

	added, removed := 0, 0
	c.On(EventAddedToStage, func(*EventContext) { added++ })
	c.On(EventRemovedFromStage, func(*EventContext) { removed++ })

	rt.Root().AddChild(p)
	if !c.OnStage() || added != 1 {
		t.Errorf("after add: OnStage=%v added=%d", c.OnStage(), added)
	}
	rt.Root().RemoveChild(p, false)
	if c.OnStage() || removed != 1 {
		t.Errorf("after remove: OnStage=%v removed=%d", c.OnStage(), removed)
	}
}

// --- Events ---

func TestBubbleAndStopPropagation(t *testing.T) {
	rt, _ := newTestRuntime(t)
	outer := newTestComponent(rt, 10, 10)
	inner := newTestComponent(rt, 10, 10)
	leaf := rt.NewObject(ObjectGraph)
	outer.AddChild(inner)
	inner.AddChild(leaf)

	var order []string
	var sender *Object
	outer.On(EventClick, func(*EventContext) { order = append(order, "outer") })
	inner.On(EventClick, func(ctx *EventContext) {
		order = append(order, "inner")
		sender = ctx.Sender
	})
	leaf.On(EventClick, func(*EventContext) { order = append(order, "leaf") })

	leaf.Bubble(EventClick, nil)
	if len(order) != 3 || order[0] != "leaf" || order[2] != "outer" {
		t.Errorf("order = %v", order)
	}
	if sender != leaf {
		t.Errorf("Sender = %v, want leaf", sender)
	}

	order = nil
	h := inner.On(EventClick, func(ctx *EventContext) { ctx.StopPropagation() })
	leaf.Bubble(EventClick, nil)
	if len(order) != 2 {
		t.Errorf("stopped order = %v, want leaf, inner", order)
	}

	order = nil
	h.Remove()
	h.Remove()
	leaf.Bubble(EventClick, nil)
	if len(order) != 3 {
		t.Errorf("after Remove order = %v", order)
	}
}

func TestEmitPreventDefault(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewObject(ObjectGraph)
	if o.Emit(EventChanged, nil) {
		t.Error("Emit without listeners = true")
	}
	var data any
	o.On(EventChanged, func(ctx *EventContext) {
		data = ctx.Data
		ctx.PreventDefault()
	})
	if !o.Emit(EventChanged, 42) {
		t.Error("Emit = false, want prevented")
	}
	if data != 42 {
		t.Errorf("Data = %v, want 42", data)
	}
}

func TestListenerAddedDuringDispatchWaits(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewObject(ObjectGraph)
	calls := 0
	o.On(EventChanged, func(*EventContext) {
		o.On(EventChanged, func(*EventContext) { calls++ })
	})
	o.Emit(EventChanged, nil)
	if calls != 0 {
		t.Errorf("listener added during dispatch ran %d times", calls)
	}
}

func TestListenerRemovedDuringDispatchIsSkipped(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewObject(ObjectGraph)
	var order []string
	var second ListenerHandle
	o.On(EventChanged, func(*EventContext) {
		order = append(order, "first")
		second.Remove()
	})
	second = o.On(EventChanged, func(*EventContext) { order = append(order, "second") })
	o.On(EventChanged, func(*EventContext) { order = append(order, "third") })

	o.Emit(EventChanged, nil)
	if len(order) != 2 || order[0] != "first" || order[1] != "third" {
		t.Errorf("order = %v, want [first third]", order)
	}
	order = nil
	o.Emit(EventChanged, nil)
	if len(order) != 2 {
		t.Errorf("second dispatch order = %v", order)
	}
}

// --- Coordinates ---

func TestLocalToGlobalRoundTrip(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newTestComponent(rt, 100, 100)
	p.SetXY(20, 30)
	p.SetMargin(Margin{Left: 5, Top: 7})
	c := rt.NewObject(ObjectGraph)
	c.SetSize(10, 10, false)
	c.SetXY(3, 4)
	c.SetScale(2, 2)
	p.AddChild(c)
	rt.Root().AddChild(p)

	g := c.LocalToGlobal(Vec2{1, 1})
	want := Vec2{20 + 5 + 3 + 2, 30 + 7 + 4 + 2}
	if !approx(g.X, want.X) || !approx(g.Y, want.Y) {
		t.Errorf("LocalToGlobal = %v, want %v", g, want)
	}
	back := c.GlobalToLocal(g)
	if !approx(back.X, 1) || !approx(back.Y, 1) {
		t.Errorf("GlobalToLocal = %v, want {1 1}", back)
	}
	if !c.HitTest(g) {
		t.Error("HitTest inside = false")
	}
}

// --- Dispose ---

func TestDisposeIsIdempotentAndReleasesSubtree(t *testing.T) {
	rt, b := newTestRuntime(t)
	before := b.disposed
	p := newTestComponent(rt, 10, 10)
	c := newTestComponent(rt, 10, 10)
	leaf := rt.NewObject(ObjectGraph)
	p.AddChild(c)
	c.AddChild(leaf)
	rt.Root().AddChild(p)

	leaf.On(EventClick, func(*EventContext) {})
	created := b.created

	p.Dispose()
	p.Dispose()
	c.Dispose()

	if !p.Disposed() || !c.Disposed() || !leaf.Disposed() {
		t.Error("subtree not disposed")
	}
	if rt.Root().Object().NumChildren() != 0 {
		t.Error("disposed object still on root")
	}
	if leaf.HasListener(EventClick) {
		t.Error("listeners survived dispose")
	}
	if leaf.Control() != 0 {
		t.Error("control handle not cleared")
	}
	// every control created for the subtree was released exactly once
	if got := b.disposed - before; got > created || got == 0 {
		t.Errorf("disposed controls = %d of %d created", got, created)
	}
	disposedOnce := b.disposed
	p.Dispose()
	if b.disposed != disposedOnce {
		t.Error("second Dispose released controls again")
	}
}

func TestDisposedUsePanicsInDebug(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.SetDebugMode(true)
	p := newTestComponent(rt, 10, 10)
	p.Dispose()
	assertPanics(t, "AddChild on disposed", func() { p.AddChild(rt.NewObject(ObjectGraph)) })
}

func TestRemoveChildWithDispose(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newTestComponent(rt, 10, 10)
	c := p.AddChild(rt.NewObject(ObjectGraph))
	p.RemoveChildren(true)
	if !c.Disposed() || p.NumChildren() != 0 {
		t.Error("RemoveChildren(true) did not dispose")
	}
}

// --- Geometry ---

func TestSetSizeClampsAndKeepsPivot(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewObject(ObjectGraph)
	o.SetXY(100, 100)
	o.SetSize(100, 100, false)
	o.SetPivot(0.5, 0.5, false)
	o.SetMinSize(20, 120, 20, 120)
	if o.Width() != 100 || o.X() != 100 {
		t.Fatalf("size %v x %v, want 100 100", o.Width(), o.X())
	}

	o.SetSize(200, 200, false)
	if o.Width() != 120 || o.Height() != 120 || o.RawWidth() != 200 {
		t.Errorf("size %vx%v raw %v, want 120x120 raw 200", o.Width(), o.Height(), o.RawWidth())
	}
	if o.X() != 90 || o.Y() != 90 {
		t.Errorf("position = %v,%v, want 90,90", o.X(), o.Y())
	}

	o.SetSize(10, 10, false)
	if o.Width() != 20 || o.X() != 140 {
		t.Errorf("width %v x %v, want 20 140", o.Width(), o.X())
	}

	o.SetSize(100, 100, true)
	if o.Width() != 100 || o.X() != 140 {
		t.Errorf("ignorePivot: width %v x %v, want 100 140", o.Width(), o.X())
	}

	o.SetPivot(0.5, 0.5, true)
	o.SetSize(50, 50, false)
	if o.Width() != 50 || o.X() != 140 || o.Y() != 140 {
		t.Errorf("anchor pivot: width %v pos %v,%v, want 50 140,140", o.Width(), o.X(), o.Y())
	}
}
