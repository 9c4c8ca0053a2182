package fgui

import (
	"testing"
)

func newPagedParent(rt *Runtime, pages ...string) (*Object, *Controller) {
	p := newTestComponent(rt, 100, 100)
	c := NewController("c")
	for _, name := range pages {
		c.AddPage(name)
	}
	p.AddController(c)
	return p, c
}

// --- Controller ---

func TestControllerSelection(t *testing.T) {
	rt, _ := newTestRuntime(t)
	_, c := newPagedParent(rt, "up", "down", "over")

	if c.SelectedIndex() != 0 || c.SelectedPage() != "up" {
		t.Fatalf("initial selection = %d %q", c.SelectedIndex(), c.SelectedPage())
	}
	changes := 0
	c.OnChanged = func(*Controller) { changes++ }

	c.SetSelectedPage("over")
	if c.SelectedIndex() != 2 || c.PreviousIndex() != 0 || c.PreviousPage() != "up" {
		t.Errorf("after select: %d prev %d %q", c.SelectedIndex(), c.PreviousIndex(), c.PreviousPage())
	}
	c.SetSelectedPage("over")
	c.SetSelectedIndex(7)
	c.SetSelectedPage("nope")
	if changes != 1 {
		t.Errorf("OnChanged calls = %d, want 1", changes)
	}
	if c.Changing() {
		t.Error("Changing after the setter returned")
	}

	c.SetSelectedIndexSilently(1)
	if c.SelectedPage() != "down" || changes != 1 {
		t.Errorf("silent select: %q, changes %d", c.SelectedPage(), changes)
	}
}

func TestControllerPages(t *testing.T) {
	rt, _ := newTestRuntime(t)
	_, c := newPagedParent(rt, "a", "b", "c")
	c.SetSelectedIndex(2)

	id := c.AddPageAt("first", 0)
	if c.SelectedPage() != "c" || c.SelectedIndex() != 3 {
		t.Errorf("insert before selection moved it to %d %q", c.SelectedIndex(), c.SelectedPage())
	}
	if c.PageIndexByID(id) != 0 || c.PageNameByID(id) != "first" {
		t.Errorf("new page id %q not found", id)
	}
	seen := map[string]bool{}
	for i := 0; i < c.PageCount(); i++ {
		if seen[c.PageID(i)] {
			t.Errorf("duplicate page id %q", c.PageID(i))
		}
		seen[c.PageID(i)] = true
	}

	c.RemovePage("c")
	if c.SelectedIndex() != 2 || c.SelectedPage() != "b" {
		t.Errorf("removing selected last page selected %d %q", c.SelectedIndex(), c.SelectedPage())
	}
	c.RemovePageAt(0)
	if c.SelectedPage() != "b" {
		t.Errorf("removing earlier page changed selection to %q", c.SelectedPage())
	}

	c.ClearPages()
	if c.SelectedIndex() != -1 || c.PageCount() != 0 || c.SelectedPage() != "" {
		t.Errorf("after ClearPages: %d pages, selected %d", c.PageCount(), c.SelectedIndex())
	}
	assertPanics(t, "RemovePageAt out of range", func() { c.RemovePageAt(0) })
}

// --- Gears ---

func TestDisplayGearTracksPages(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p, c := newPagedParent(rt, "a", "b")
	child := p.AddChild(rt.NewObject(ObjectGraph))

	g := child.Gear(GearDisplay)
	g.SetController(c)
	g.SetPages([]string{c.PageID(1)})
	g.Apply()
	child.checkGearDisplay()

	if child.FinalVisible() {
		t.Error("visible on page a")
	}
	c.SetSelectedIndex(1)
	if !child.FinalVisible() {
		t.Error("hidden on page b")
	}

	// a display lock shows the child until the next page change
	c.SetSelectedIndex(0)
	token := g.AddLock()
	child.checkGearDisplay()
	if !child.FinalVisible() {
		t.Error("locked child hidden")
	}
	g.ReleaseLock(token)
	child.checkGearDisplay()
	if child.FinalVisible() {
		t.Error("child visible after lock released on page a")
	}

	stale := g.AddLock()
	c.SetSelectedIndex(1)
	c.SetSelectedIndex(0)
	g.ReleaseLock(stale)
	child.checkGearDisplay()
	if child.FinalVisible() {
		t.Error("stale lock release changed visibility")
	}
}

func TestXYGearStoresMovesPerPage(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p, c := newPagedParent(rt, "a", "b")
	child := p.AddChild(rt.NewObject(ObjectGraph))
	child.SetXY(5, 5)

	g := child.Gear(GearXY)
	g.SetController(c)

	c.SetSelectedIndex(1)
	child.SetXY(40, 50)
	c.SetSelectedIndex(0)
	if child.X() != 5 || child.Y() != 5 {
		t.Errorf("page a position = %v,%v, want 5,5", child.X(), child.Y())
	}
	c.SetSelectedIndex(1)
	if child.X() != 40 || child.Y() != 50 {
		t.Errorf("page b position = %v,%v, want 40,50", child.X(), child.Y())
	}
	if v, ok := g.Value(c.PageID(1)); !ok || v.X != 40 {
		t.Errorf("stored page b value = %+v,%v", v, ok)
	}
}

func TestGearTweenRunsOnStage(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p, c := newPagedParent(rt, "a", "b")
	rt.Root().AddChild(p)
	child := p.AddChild(rt.NewObject(ObjectGraph))

	g := child.Gear(GearXY)
	g.SetController(c)
	g.SetValue(c.PageID(1), GearValue{X: 100, Y: 0})
	tc := newGearTweenConfig()
	tc.Tween = true
	tc.Ease = EaseLinear
	tc.Duration = 1
	g.TweenConfig = tc

	stopped := 0
	child.On(EventGearStop, func(*EventContext) { stopped++ })
	c.SetSelectedIndex(1)
	if child.X() != 0 {
		t.Errorf("x jumped to %v before the tween ran", child.X())
	}
	rt.Update(0.5)
	if !approx(child.X(), 50) {
		t.Errorf("x mid tween = %v, want 50", child.X())
	}
	rt.Update(0.6)
	if child.X() != 100 {
		t.Errorf("x after tween = %v, want 100", child.X())
	}
	if stopped != 1 {
		t.Errorf("gear stop events = %d, want 1", stopped)
	}
}

func TestGearsAcrossControllerChangeAreConsistent(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p, c := newPagedParent(rt, "a", "b", "c")
	kids := make([]*Object, 4)
	for i := range kids {
		k := p.AddChild(rt.NewObject(ObjectGraph))
		k.SetXY(float32(i), 0)
		g := k.Gear(GearXY)
		g.SetController(c)
		for pg := 0; pg < 3; pg++ {
			g.SetValue(c.PageID(pg), GearValue{X: float32(10*pg + i)})
		}
		kids[i] = k
	}
	for _, sel := range []int{2, 0, 1, 1, 2} {
		c.SetSelectedIndex(sel)
		for i, k := range kids {
			if want := float32(10*sel + i); k.X() != want {
				t.Errorf("page %d child %d x = %v, want %v", sel, i, k.X(), want)
			}
		}
	}
}
