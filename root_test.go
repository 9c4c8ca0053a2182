package fgui

import (
	"testing"
)

// --- Content scale ---

func TestContentScaleFor(t *testing.T) {
	tests := []struct {
		name           string
		sw, sh, dw, dh float32
		mode           ScreenMatchMode
		want           float32
	}{
		{"no design size", 800, 600, 0, 0, MatchWidthOrHeight, 1},
		{"exact double", 800, 600, 400, 300, MatchWidthOrHeight, 2},
		{"smaller axis wins", 800, 300, 400, 300, MatchWidthOrHeight, 1},
		{"match width", 800, 300, 400, 300, MatchWidth, 2},
		{"match height", 800, 300, 400, 300, MatchHeight, 1},
		{"orientation follows screen", 600, 800, 400, 300, MatchWidthOrHeight, 2},
		{"capped", 8000, 6000, 80, 60, MatchWidthOrHeight, maxContentScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentScaleFor(tt.sw, tt.sh, tt.dw, tt.dh, tt.mode); got != tt.want {
				t.Errorf("contentScaleFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyScreenSize(t *testing.T) {
	rt, _ := newTestRuntime(t)
	r := rt.Root()
	if r.ContentScaleFactor() != 1 || r.Width() != 800 {
		t.Fatalf("default root scale %v width %v", r.ContentScaleFactor(), r.Width())
	}
	rt.Config.DesignWidth, rt.Config.DesignHeight = 400, 300
	r.ApplyScreenSize()
	if r.ContentScaleFactor() != 2 || r.Width() != 400 || r.Height() != 300 {
		t.Errorf("root scale %v size %vx%v, want 2 400x300", r.ContentScaleFactor(), r.Width(), r.Height())
	}
	o := newTestComponent(rt, 10, 10)
	o.SetXY(100, 50)
	r.AddChild(o)
	if g := o.LocalToGlobal(Vec2{}); g != (Vec2{200, 100}) {
		t.Errorf("screen position = %v, want {200 100}", g)
	}
}

// --- Windows ---

func newShownWindow(rt *Runtime, name string) *Window {
	w := NewWindow(rt)
	pane := newTestComponent(rt, 100, 80)
	pane.Name = name
	w.SetContentPane(pane)
	w.Show()
	return w
}

func TestWindowsStack(t *testing.T) {
	rt, _ := newTestRuntime(t)
	r := rt.Root()
	shown, hidden := 0, 0
	w1 := NewWindow(rt)
	w1.OnShown = func(*Window) { shown++ }
	w1.OnHide = func(*Window) { hidden++ }
	w1.SetContentPane(newTestComponent(rt, 100, 80))
	w1.Show()
	w2 := newShownWindow(rt, "two")

	if w1.Object().Width() != 100 || w1.Object().Height() != 80 {
		t.Errorf("window size = %vx%v, want pane size", w1.Object().Width(), w1.Object().Height())
	}
	if r.TopWindow() != w2 || w1.IsTop() {
		t.Fatal("last shown window is not on top")
	}
	w1.BringToFront()
	if r.TopWindow() != w1 {
		t.Error("BringToFront did not raise w1")
	}
	w1.ToggleStatus()
	if w1.IsShowing() || shown != 1 || hidden != 1 {
		t.Errorf("toggle on top window: showing=%v shown=%d hidden=%d", w1.IsShowing(), shown, hidden)
	}
	w1.Show()
	w1.Show()
	if shown != 2 {
		t.Errorf("OnShown calls = %d, want 2", shown)
	}
	r.HideAllWindows()
	if w1.IsShowing() || w2.IsShowing() {
		t.Error("HideAllWindows left a window")
	}
}

func TestModalLayerSitsBelowTopModal(t *testing.T) {
	rt, _ := newTestRuntime(t)
	r := rt.Root()
	w1 := newShownWindow(rt, "one")
	w2 := newShownWindow(rt, "two")
	w2.SetModal(true)
	if !r.HasModalWindow() {
		t.Fatal("no modal layer for a modal window")
	}
	w2.BringToFront()
	root := r.Object()
	layer := r.ModalLayer()
	if root.ChildIndex(layer) != root.ChildIndex(w2.Object())-1 {
		t.Errorf("layer at %d, modal window at %d", root.ChildIndex(layer), root.ChildIndex(w2.Object()))
	}
	if root.ChildIndex(w1.Object()) > root.ChildIndex(layer) {
		t.Error("non-modal window above the modal layer")
	}
	if layer.Width() != r.Width() || layer.Height() != r.Height() {
		t.Errorf("layer size %vx%v, want root size", layer.Width(), layer.Height())
	}
	w2.Hide()
	if r.HasModalWindow() {
		t.Error("modal layer left after hiding the modal window")
	}
}

func TestWindowCloseButton(t *testing.T) {
	rt, _ := newTestRuntime(t)
	pane := newTestComponent(rt, 100, 80)
	frame := pane.AddChild(newTestComponent(rt, 100, 80))
	frame.Name = "frame"
	closeBtn := frame.AddChild(rt.NewObject(ObjectGraph))
	closeBtn.Name = "closeButton"
	closeBtn.SetSize(10, 10, false)
	w := NewWindow(rt)
	w.SetContentPane(pane)
	w.Show()
	if w.CloseButton() != closeBtn || w.Frame() != frame {
		t.Fatal("frame parts not found")
	}
	rt.ProcessPointer(0, 5, 5, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 5, 5, false, MouseButtonLeft, 0)
	if w.IsShowing() {
		t.Error("close button click did not hide the window")
	}
}

// --- Popups ---

func newPopup(rt *Runtime, w, h float32) *Object {
	p := rt.NewObject(ObjectGraph)
	p.SetSize(w, h, false)
	return p
}

func TestPopupPlacement(t *testing.T) {
	rt, _ := newTestRuntime(t)
	r := rt.Root()
	target := r.AddChild(newPopup(rt, 30, 10))
	target.SetXY(10, 10)
	popup := newPopup(rt, 50, 20)

	r.ShowPopup(popup, target, PopupAuto)
	if popup.X() != 10 || popup.Y() != 20 {
		t.Errorf("popup at %v,%v, want 10,20 below target", popup.X(), popup.Y())
	}
	if !r.HasAnyPopup() {
		t.Error("HasAnyPopup = false")
	}

	target.SetXY(10, 590)
	r.ShowPopup(popup, target, PopupAuto)
	if popup.Y() != 569 {
		t.Errorf("popup y = %v, want 569 above target", popup.Y())
	}
	r.ShowPopup(popup, target, PopupDown)
	if popup.Y() != 600 {
		t.Errorf("forced down y = %v, want 600", popup.Y())
	}

	r.TogglePopup(popup, target, PopupAuto)
	if popup.Parent() != nil || r.HasAnyPopup() {
		t.Error("TogglePopup did not close the open popup")
	}
}

func TestPressOutsideClosesPopups(t *testing.T) {
	rt, _ := newTestRuntime(t)
	r := rt.Root()
	target := r.AddChild(newPopup(rt, 30, 10))
	p1 := newPopup(rt, 50, 50)
	p2 := newPopup(rt, 50, 50)
	r.ShowPopup(p1, target, PopupDown)
	rt.ProcessPointer(0, 300, 300, false, MouseButtonLeft, 0)
	r.ShowPopup(p2, nil, PopupDown)

	// pressing inside the first popup closes only those above it
	rt.ProcessPointer(0, 5, 20, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 5, 20, false, MouseButtonLeft, 0)
	if p1.Parent() == nil || p2.Parent() != nil {
		t.Errorf("after inside press: p1 open=%v p2 open=%v", p1.Parent() != nil, p2.Parent() != nil)
	}

	rt.ProcessPointer(0, 700, 500, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 700, 500, false, MouseButtonLeft, 0)
	if p1.Parent() != nil || r.HasAnyPopup() {
		t.Error("press outside left popups open")
	}
}

func TestHidePopupClosesNested(t *testing.T) {
	rt, _ := newTestRuntime(t)
	r := rt.Root()
	p1, p2, p3 := newPopup(rt, 5, 5), newPopup(rt, 5, 5), newPopup(rt, 5, 5)
	r.ShowPopup(p1, nil, PopupDown)
	r.ShowPopup(p2, nil, PopupDown)
	r.ShowPopup(p3, nil, PopupDown)
	r.HidePopup(p2)
	if p1.Parent() == nil || p2.Parent() != nil || p3.Parent() != nil {
		t.Error("HidePopup(p2) did not close p2 and p3 only")
	}
	r.HidePopup(nil)
	if r.HasAnyPopup() {
		t.Error("HidePopup(nil) left popups")
	}
}

// --- Tooltips ---

func TestTooltipShowsAfterDelay(t *testing.T) {
	rt, _ := newTestRuntime(t)
	r := rt.Root()
	tip := newPopup(rt, 40, 10)
	rt.ProcessPointer(0, 100, 100, false, MouseButtonLeft, 0)

	r.ShowTooltipsWin(tip)
	if tip.Parent() != nil {
		t.Fatal("tooltip shown before the delay")
	}
	rt.Update(tooltipDelay + 0.05)
	if tip.Parent() != r.Object() {
		t.Fatal("tooltip not shown after the delay")
	}
	if tip.X() != 110 || tip.Y() != 120 {
		t.Errorf("tooltip at %v,%v, want 110,120", tip.X(), tip.Y())
	}
	r.HideTooltips()
	if tip.Parent() != nil {
		t.Error("HideTooltips left the tooltip")
	}

	r.ShowTooltipsWin(tip)
	r.HideTooltips()
	rt.Update(1)
	if tip.Parent() != nil {
		t.Error("cancelled tooltip appeared")
	}
}

func TestTooltipFlipsAtEdges(t *testing.T) {
	rt, _ := newTestRuntime(t)
	r := rt.Root()
	tip := newPopup(rt, 40, 30)
	rt.ProcessPointer(0, 790, 590, false, MouseButtonLeft, 0)
	r.ShowTooltipsWin(tip)
	rt.Update(1)
	if tip.X() != 760 || tip.Y() != 579 {
		t.Errorf("tooltip at %v,%v, want 760,579", tip.X(), tip.Y())
	}
}
