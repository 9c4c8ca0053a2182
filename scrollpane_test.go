package fgui

import (
	"testing"
)

// newScroller builds a 100x100 vertical scroll pane holding four 100x100
// rows stacked from y=0, so the scrollable range is 300.
func newScroller(t *testing.T) (*Runtime, *Object, *ScrollPane) {
	t.Helper()
	return newScrollerOf(t, ScrollVertical)
}

// newScrollerOf builds the four-row scroller with rows laid out along the
// axis of st.
func newScrollerOf(t *testing.T, st ScrollType) (*Runtime, *Object, *ScrollPane) {
	t.Helper()
	rt, _ := newTestRuntime(t)
	p := newPkgBuilder("pk000010", "Scroll")
	c := p.newComp(100, 100).scrollPane(st)
	red := Color{1, 0, 0, 1}
	for i := 0; i < 4; i++ {
		x, y := 0, 100*i
		if st == ScrollHorizontal {
			x, y = 100*i, 0
		}
		r := c.child(ObjectGraph, "", "r"+pageID(i), x, y, 100, 100)
		r.graph = &red
	}
	p.addComponent("sc", "Scroller", ObjectComponent, c)
	mustAddPackage(t, rt, p)

	o := rt.CreateObject("Scroll", "Scroller")
	if o == nil || o.ScrollPane() == nil {
		t.Fatal("scroller has no scroll pane")
	}
	o.setBoundsChangedFlag()
	o.EnsureBoundsCorrect()
	return rt, o, o.ScrollPane()
}

func TestScrollPaneSizes(t *testing.T) {
	_, _, sp := newScroller(t)
	if sp.ViewHeight() != 100 || sp.ContentHeight() != 400 {
		t.Errorf("view %v content %v, want 100 400", sp.ViewHeight(), sp.ContentHeight())
	}
	if sp.ScrollType() != ScrollVertical || sp.VtScrollBar() != nil {
		t.Error("hidden bars were created")
	}
	if sp.Bounce() {
		t.Error("bounce on despite the flag")
	}
}

func TestScrollPanePositionIsClamped(t *testing.T) {
	_, o, sp := newScroller(t)
	scrolls, ends := 0, 0
	o.On(EventScroll, func(*EventContext) { scrolls++ })
	o.On(EventScrollEnd, func(*EventContext) { ends++ })

	sp.SetPosY(500, false)
	if sp.PosY() != 300 || !sp.IsBottomMost() {
		t.Errorf("PosY = %v, want 300", sp.PosY())
	}
	sp.SetPosY(-40, false)
	if sp.PosY() != 0 {
		t.Errorf("PosY = %v, want 0", sp.PosY())
	}
	sp.SetPosX(30, false)
	if sp.PosX() != 0 {
		t.Errorf("vertical pane scrolled x to %v", sp.PosX())
	}
	sp.SetPercY(0.5, false)
	if sp.PosY() != 150 || sp.PercY() != 0.5 {
		t.Errorf("PosY = %v perc %v, want 150 0.5", sp.PosY(), sp.PercY())
	}
	if scrolls != 3 || ends != 3 {
		t.Errorf("scroll events %d, end events %d, want 3 3", scrolls, ends)
	}
}

func TestScrollPaneShrinkingContentReclamps(t *testing.T) {
	_, o, sp := newScroller(t)
	sp.ScrollBottom(false)
	o.ChildByName("r3").SetVisible(false)
	o.EnsureBoundsCorrect()
	if sp.ContentHeight() != 300 || sp.PosY() != 200 {
		t.Errorf("content %v pos %v, want 300 200", sp.ContentHeight(), sp.PosY())
	}
}

func TestScrollPaneAnimated(t *testing.T) {
	rt, _, sp := newScroller(t)
	sp.SetPosY(300, true)
	if sp.PosY() != 0 {
		t.Fatalf("animated scroll jumped to %v", sp.PosY())
	}
	rt.Update(0.1)
	if mid := sp.PosY(); mid <= 0 || mid >= 300 {
		t.Errorf("PosY mid tween = %v", mid)
	}
	rt.Update(1)
	if sp.PosY() != 300 {
		t.Errorf("PosY = %v, want 300", sp.PosY())
	}
}

func TestScrollPaneScrollToView(t *testing.T) {
	_, o, sp := newScroller(t)
	sp.ScrollToView(o.ChildByName("r3"), false, false)
	if sp.PosY() != 300 {
		t.Errorf("PosY = %v, want 300", sp.PosY())
	}
	sp.ScrollToView(o.ChildByName("r1"), false, true)
	if sp.PosY() != 100 {
		t.Errorf("PosY = %v, want 100", sp.PosY())
	}
	if !sp.IsChildInView(o.ChildByName("r1")) || sp.IsChildInView(o.ChildByName("r3")) {
		t.Error("IsChildInView wrong")
	}
}

func TestScrollPanePages(t *testing.T) {
	_, o, sp := newScroller(t)
	sp.SetPageMode(true)
	sp.SetCurrentPageY(2, false)
	if sp.PosY() != 200 || sp.CurrentPageY() != 2 {
		t.Errorf("PosY %v page %d, want 200 2", sp.PosY(), sp.CurrentPageY())
	}

	c := NewController("pages")
	for _, n := range []string{"p0", "p1", "p2", "p3"} {
		c.AddPage(n)
	}
	o.AddController(c)
	sp.SetPageController(c)
	sp.SetCurrentPageY(1, false)
	if c.SelectedIndex() != 1 {
		t.Errorf("page controller = %d, want 1", c.SelectedIndex())
	}
}

func TestScrollPaneWheel(t *testing.T) {
	rt, o, sp := newScroller(t)
	rt.Root().AddChild(o)
	rt.ProcessWheel(50, 50, 2, 0)
	if sp.PosY() != 50 {
		t.Errorf("PosY = %v, want two steps of 25", sp.PosY())
	}
	sp.SetMouseWheelEnabled(false)
	rt.ProcessWheel(50, 50, 2, 0)
	if sp.PosY() != 50 {
		t.Error("wheel scrolled with the wheel disabled")
	}
}

func TestScrollPaneDragSuppressesClick(t *testing.T) {
	rt, o, sp := newScroller(t)
	rt.Root().AddChild(o)
	clicked := 0
	o.ChildByName("r0").On(EventClick, func(*EventContext) { clicked++ })

	rt.ProcessPointer(0, 50, 80, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 50, 20, true, MouseButtonLeft, 0)
	if !sp.IsDragged() || sp.PosY() != 60 {
		t.Errorf("dragged=%v PosY=%v, want true 60", sp.IsDragged(), sp.PosY())
	}
	rt.ProcessPointer(0, 50, 20, false, MouseButtonLeft, 0)
	if clicked != 0 {
		t.Error("click fired after a scroll drag")
	}
	if sp.IsDragged() {
		t.Error("still dragged after release")
	}

	// a short press is a click
	rt.ProcessPointer(0, 50, 50, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 52, 51, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 52, 51, false, MouseButtonLeft, 0)
	if sp.PosY() != 60 {
		t.Errorf("small move scrolled to %v", sp.PosY())
	}
}

func TestScrollPaneInertia(t *testing.T) {
	sp := &ScrollPane{decelerationRate: 0.967}
	if d, _ := sp.inertia(30); d != 0 {
		t.Errorf("slow flick travelled %v", d)
	}
	d, dur := sp.inertia(1200)
	if d <= 0 || dur < minScrollTweenDuration || dur > 2 {
		t.Errorf("inertia(1200) = %v over %v", d, dur)
	}
	if back, _ := sp.inertia(-1200); !approx(back, -d) {
		t.Errorf("inertia is not symmetric: %v vs %v", back, d)
	}
}

func TestScrollPaneFractionalContentClamp(t *testing.T) {
	_, _, sp := newScroller(t)
	sp.SetContentSize(100, 400.5)
	sp.SetPosY(1000, false)
	if sp.PosY() != 300.5 {
		t.Errorf("PosY = %v, want 300.5", sp.PosY())
	}
	sp.SetContentSize(100, 350.25)
	if sp.PosY() != 250.25 {
		t.Errorf("PosY after shrink = %v, want 250.25", sp.PosY())
	}
}

// pull drags the pointer from one point to another and releases it.
func pull(rt *Runtime, fromX, fromY, toX, toY float32) {
	rt.ProcessPointer(0, fromX, fromY, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, toX, toY, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, toX, toY, false, MouseButtonLeft, 0)
}

func TestScrollPanePullRelease(t *testing.T) {
	rt, o, sp := newScroller(t)
	rt.Root().AddChild(o)
	sp.SetBounce(true)
	downs, ups := 0, 0
	o.On(EventPullDownRelease, func(*EventContext) { downs++ })
	o.On(EventPullUpRelease, func(*EventContext) { ups++ })

	pull(rt, 50, 10, 50, 90)
	if downs != 1 || ups != 0 {
		t.Errorf("after pull down: downs %d ups %d, want 1 0", downs, ups)
	}
	rt.Update(1)
	if sp.PosY() != 0 {
		t.Errorf("PosY = %v, want to settle at 0", sp.PosY())
	}

	sp.SetPosY(300, false)
	pull(rt, 50, 90, 50, 10)
	if downs != 1 || ups != 1 {
		t.Errorf("after pull up: downs %d ups %d, want 1 1", downs, ups)
	}
	rt.Update(1)
	if sp.PosY() != 300 {
		t.Errorf("PosY = %v, want to settle at 300", sp.PosY())
	}

	// a short overshoot stays under the threshold
	sp.SetPosY(0, false)
	pull(rt, 50, 10, 50, 40)
	if downs != 1 {
		t.Errorf("short pull fired pull down")
	}
}

func TestScrollPanePullReleaseHorizontal(t *testing.T) {
	rt, o, sp := newScrollerOf(t, ScrollHorizontal)
	rt.Root().AddChild(o)
	sp.SetBounce(true)
	downs, ups := 0, 0
	o.On(EventPullDownRelease, func(*EventContext) { downs++ })
	o.On(EventPullUpRelease, func(*EventContext) { ups++ })

	pull(rt, 10, 50, 90, 50)
	if downs != 1 || ups != 0 {
		t.Errorf("after pull left edge: downs %d ups %d, want 1 0", downs, ups)
	}
	rt.Update(1)
	sp.SetPosX(300, false)
	pull(rt, 90, 50, 10, 50)
	if downs != 1 || ups != 1 {
		t.Errorf("after pull right edge: downs %d ups %d, want 1 1", downs, ups)
	}
	rt.Update(1)
	if sp.PosX() != 300 {
		t.Errorf("PosX = %v, want to settle at 300", sp.PosX())
	}
}

func TestScrollPaneHeaderLock(t *testing.T) {
	rt, o, sp := newScroller(t)
	rt.Root().AddChild(o)
	sp.SetBounce(true)
	o.On(EventPullDownRelease, func(*EventContext) { sp.LockHeader(50) })

	pull(rt, 50, 10, 50, 90)
	rt.Update(1)
	if sp.PosY() != -50 {
		t.Errorf("PosY = %v, want the header held at -50", sp.PosY())
	}
	sp.SetPosY(-200, false)
	if sp.PosY() != -50 {
		t.Errorf("PosY = %v, want clamp to -50", sp.PosY())
	}

	sp.LockHeader(0)
	rt.Update(1)
	if sp.PosY() != 0 {
		t.Errorf("PosY = %v, want 0 after unlock", sp.PosY())
	}
	sp.SetPosY(-200, false)
	if sp.PosY() != 0 {
		t.Errorf("PosY = %v, want clamp to 0", sp.PosY())
	}
}

func TestScrollPaneFooterLock(t *testing.T) {
	rt, _, sp := newScroller(t)
	sp.ScrollBottom(false)
	sp.LockFooter(30)
	rt.Update(1)
	if sp.PosY() != 330 {
		t.Errorf("PosY = %v, want the footer held at 330", sp.PosY())
	}
	sp.SetPosY(1000, false)
	if sp.PosY() != 330 {
		t.Errorf("PosY = %v, want clamp to 330", sp.PosY())
	}
	sp.LockFooter(0)
	rt.Update(1)
	if sp.PosY() != 300 {
		t.Errorf("PosY = %v, want 300 after unlock", sp.PosY())
	}
}
