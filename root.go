package fgui

import (
	"log"
	"math"
)

// maxContentScale caps the content scale factor.
const maxContentScale = 10

// tooltipDelay is how long the pointer rests on an object before its
// tooltip shows.
const tooltipDelay = 0.1

// Root is the top of a runtime's widget tree. It scales design pixels to
// the screen and manages windows, popups and tooltips.
type Root struct {
	rt           *Runtime
	obj          *Object
	contentScale float32

	modalLayer *Object
	popupStack []*Object
	keepPopup  *Object

	defaultTooltip *Object
	tooltipWin     *Object
}

func newRoot(rt *Runtime) *Root {
	r := &Root{rt: rt, contentScale: 1}
	o := newObject(rt, ObjectComponent)
	o.Name = "root"
	r.obj = o
	rt.backend.AddToRoot(o.control)
	r.ApplyScreenSize()
	return r
}

// root returns the root of o's runtime.
func (o *Object) root() *Root {
	if o.rt == nil {
		return nil
	}
	return o.rt.root
}

// Object returns the root container.
func (r *Root) Object() *Object { return r.obj }

// Width returns the root width in design pixels.
func (r *Root) Width() float32 { return r.obj.width }

// Height returns the root height in design pixels.
func (r *Root) Height() float32 { return r.obj.height }

// ContentScaleFactor returns the factor between screen and design pixels.
func (r *Root) ContentScaleFactor() float32 { return r.contentScale }

// AddChild adds child to the root.
func (r *Root) AddChild(child *Object) *Object { return r.obj.AddChild(child) }

// RemoveChild removes child from the root.
func (r *Root) RemoveChild(child *Object, dispose bool) *Object {
	return r.obj.RemoveChild(child, dispose)
}

// ApplyScreenSize recomputes the content scale factor from the backend's
// screen size and resizes the root to cover the screen.
func (r *Root) ApplyScreenSize() {
	sw, sh := r.rt.backend.ScreenSize()
	cfg := &r.rt.Config
	r.contentScale = contentScaleFor(sw, sh, float32(cfg.DesignWidth), float32(cfg.DesignHeight), cfg.MatchMode)
	r.obj.SetScale(r.contentScale, r.contentScale)
	r.obj.SetSize(float32(math.Ceil(float64(sw/r.contentScale))), float32(math.Ceil(float64(sh/r.contentScale))), false)
	if r.modalLayer != nil {
		r.modalLayer.SetSize(r.obj.width, r.obj.height, false)
	}
}

// contentScaleFor derives the scale factor for a screen of sw x sh showing
// content designed for dw x dh. The design orientation follows the screen.
func contentScaleFor(sw, sh, dw, dh float32, mode ScreenMatchMode) float32 {
	if dw <= 0 || dh <= 0 || sw <= 0 || sh <= 0 {
		return 1
	}
	if (dw > dh) != (sw > sh) {
		dw, dh = dh, dw
	}
	sx, sy := sw/dw, sh/dh
	var s float32
	switch mode {
	case MatchWidth:
		s = sx
	case MatchHeight:
		s = sy
	default:
		s = min(sx, sy)
	}
	if s > maxContentScale {
		s = maxContentScale
	}
	return s
}

// --- Windows ---

// ShowWindow adds w to the root, or brings it to the front when it is
// already shown.
func (r *Root) ShowWindow(w *Window) {
	if w.obj.parent != r.obj {
		r.obj.AddChild(w.obj)
		w.shown()
	}
	r.BringToFront(w)
}

// HideWindow removes w from the root.
func (r *Root) HideWindow(w *Window) {
	if w.obj.parent == r.obj {
		r.obj.RemoveChild(w.obj, false)
		w.hidden()
	}
	r.adjustModalLayer()
}

// HideAllWindows hides every window on the root.
func (r *Root) HideAllWindows() {
	for i := len(r.obj.children) - 1; i >= 0; i-- {
		if i >= len(r.obj.children) {
			continue
		}
		if w := r.obj.children[i].window; w != nil {
			r.HideWindow(w)
		}
	}
}

// BringToFront moves w above every other window. Non-modal windows stay
// below the modal layer.
func (r *Root) BringToFront(w *Window) {
	cnt := len(r.obj.children)
	var i int
	if r.modalLayer != nil && r.modalLayer.parent == r.obj && !w.modal {
		i = r.obj.ChildIndex(r.modalLayer) - 1
	} else {
		i = cnt - 1
	}
	for ; i >= 0; i-- {
		c := r.obj.children[i]
		if c == w.obj {
			return
		}
		if c.window != nil {
			break
		}
	}
	if i >= 0 {
		r.obj.SetChildIndex(w.obj, i)
	}
	r.adjustModalLayer()
}

// TopWindow returns the topmost window, or nil.
func (r *Root) TopWindow() *Window {
	for i := len(r.obj.children) - 1; i >= 0; i-- {
		if w := r.obj.children[i].window; w != nil {
			return w
		}
	}
	return nil
}

// HasModalWindow reports whether a modal window is shown.
func (r *Root) HasModalWindow() bool {
	return r.modalLayer != nil && r.modalLayer.parent == r.obj
}

// ModalLayer returns the dimming layer placed under modal windows.
func (r *Root) ModalLayer() *Object {
	if r.modalLayer == nil {
		l := newObject(r.rt, ObjectGraph)
		l.Name = "modalLayer"
		l.graph.DrawRect(r.obj.width, r.obj.height, 0, Color{}, r.rt.Config.modalLayerColor())
		l.relations.Add(r.obj, RelationSize, false)
		r.modalLayer = l
	}
	return r.modalLayer
}

// adjustModalLayer puts the modal layer right below the topmost modal
// window, or removes it.
func (r *Root) adjustModalLayer() {
	layer := r.ModalLayer()
	for i := len(r.obj.children) - 1; i >= 0; i-- {
		c := r.obj.children[i]
		if c.window == nil || !c.window.modal {
			continue
		}
		if layer.parent == nil {
			r.obj.AddChildAt(layer, i)
		} else {
			r.obj.SetChildIndexBefore(layer, i)
		}
		return
	}
	if layer.parent != nil {
		r.obj.RemoveChild(layer, false)
	}
}

// --- Popups ---

// ShowPopup adds popup to the root next to target. With a nil target the
// popup opens at the last pointer position.
func (r *Root) ShowPopup(popup, target *Object, dir PopupDirection) {
	if k := r.popupIndex(popup); k != -1 {
		r.closePopupsFrom(k)
	}
	r.popupStack = append(r.popupStack, popup)

	for p := target; p != nil; p = p.parent {
		if p.parent == r.obj {
			if popup.sortingOrder < p.sortingOrder {
				popup.SetSortingOrder(p.sortingOrder)
			}
			break
		}
	}
	r.obj.AddChild(popup)
	r.adjustModalLayer()

	if popup.window != nil && target == nil && dir == PopupAuto {
		return
	}
	popup.SetXY(r.popupPosition(popup, target, dir))
}

// popupPosition places popup below target, or above it when it would not
// fit below.
func (r *Root) popupPosition(popup, target *Object, dir PopupDirection) (float32, float32) {
	var pos, size Vec2
	if target != nil {
		pos = target.LocalToRoot(Vec2{})
		end := target.LocalToRoot(Vec2{target.width, target.height})
		size = Vec2{end.X - pos.X, end.Y - pos.Y}
	} else {
		pos = r.obj.GlobalToLocal(r.rt.PointerPosition())
	}
	xx := pos.X
	if xx+popup.width > r.obj.width {
		xx = xx + size.X - popup.width
	}
	yy := pos.Y + size.Y
	if (dir == PopupAuto && yy+popup.height > r.obj.height) || dir == PopupUp {
		yy = pos.Y - popup.height - 1
		if yy < 0 {
			yy = 0
			xx += size.X / 2
		}
	}
	return float32(math.Round(float64(xx))), float32(math.Round(float64(yy)))
}

// TogglePopup hides popup when it is shown and shows it otherwise.
func (r *Root) TogglePopup(popup, target *Object, dir PopupDirection) {
	if popup.parent == r.obj && r.popupIndex(popup) != -1 {
		r.HidePopup(popup)
		return
	}
	r.ShowPopup(popup, target, dir)
}

// HidePopup closes popup and every popup opened after it. A nil popup
// closes all popups.
func (r *Root) HidePopup(popup *Object) {
	if popup == nil {
		r.closePopupsFrom(0)
		return
	}
	if k := r.popupIndex(popup); k != -1 {
		r.closePopupsFrom(k)
		return
	}
	r.closePopup(popup)
}

// HasAnyPopup reports whether a popup is open.
func (r *Root) HasAnyPopup() bool { return len(r.popupStack) > 0 }

func (r *Root) popupIndex(popup *Object) int {
	for i, p := range r.popupStack {
		if p == popup {
			return i
		}
	}
	return -1
}

// closePopupsFrom closes the popups at index k and above, topmost first.
func (r *Root) closePopupsFrom(k int) {
	for len(r.popupStack) > k {
		n := len(r.popupStack) - 1
		p := r.popupStack[n]
		r.popupStack[n] = nil
		r.popupStack = r.popupStack[:n]
		r.closePopup(p)
	}
}

func (r *Root) closePopup(p *Object) {
	if p.parent == nil {
		return
	}
	if p.window != nil {
		r.HideWindow(p.window)
	} else {
		p.parent.RemoveChild(p, false)
	}
}

// checkPopups closes the popups that do not contain target, except the one
// a widget asked to keep during this press.
func (r *Root) checkPopups(target *Object) {
	if len(r.popupStack) == 0 {
		return
	}
	for p := target; p != nil; p = p.parent {
		if k := r.popupIndex(p); k != -1 {
			r.closePopupsAbove(k)
			return
		}
	}
	r.closePopupsAbove(-1)
}

// closePopupsAbove closes the popups above index k, sparing keepPopup.
func (r *Root) closePopupsAbove(k int) {
	for i := len(r.popupStack) - 1; i > k; i-- {
		p := r.popupStack[i]
		if p == r.keepPopup {
			continue
		}
		copy(r.popupStack[i:], r.popupStack[i+1:])
		r.popupStack[len(r.popupStack)-1] = nil
		r.popupStack = r.popupStack[:len(r.popupStack)-1]
		r.closePopup(p)
	}
}

// --- Tooltips ---

// ShowTooltips shows msg in the configured tooltip component after a short
// delay.
func (r *Root) ShowTooltips(msg string) {
	if r.defaultTooltip == nil {
		url := r.rt.Config.TooltipsWindow
		if url == "" {
			log.Printf("fgui: no tooltips component configured")
			return
		}
		o, err := r.rt.CreateObjectFromURL(url)
		if err != nil {
			log.Printf("fgui: tooltips: %v", err)
			return
		}
		o.SetTouchable(false)
		r.defaultTooltip = o
	}
	r.defaultTooltip.SetText(msg)
	r.ShowTooltipsWin(r.defaultTooltip)
}

// ShowTooltipsWin shows tip as the tooltip after a short delay.
func (r *Root) ShowTooltipsWin(tip *Object) {
	r.HideTooltips()
	r.tooltipWin = tip
	r.rt.Tweens.DelayedCall(tooltipDelay).SetTarget(r).OnComplete(func(*Tweener) {
		r.placeTooltip()
	})
}

func (r *Root) placeTooltip() {
	tip := r.tooltipWin
	if tip == nil || tip.disposed {
		return
	}
	pt := r.obj.GlobalToLocal(r.rt.PointerPosition())
	xx, yy := pt.X+10, pt.Y+20
	if xx+tip.width > r.obj.width {
		xx -= tip.width
		if xx < 0 {
			xx = 10
		}
	}
	if yy+tip.height > r.obj.height {
		yy = yy - tip.height - 1
		if yy < 0 {
			yy = 10
		}
	}
	tip.SetXY(float32(math.Round(float64(xx))), float32(math.Round(float64(yy))))
	r.obj.AddChild(tip)
}

// HideTooltips removes the current tooltip.
func (r *Root) HideTooltips() {
	r.rt.Tweens.Kill(r, false)
	if r.tooltipWin != nil {
		if r.tooltipWin.parent != nil {
			r.obj.RemoveChild(r.tooltipWin, false)
		}
		r.tooltipWin = nil
	}
}

func (r *Root) dispose() {
	r.HideTooltips()
	r.popupStack = nil
	r.keepPopup = nil
	if r.defaultTooltip != nil {
		r.defaultTooltip.Dispose()
		r.defaultTooltip = nil
	}
	if r.modalLayer != nil {
		r.modalLayer.Dispose()
		r.modalLayer = nil
	}
	r.rt.backend.RemoveFromRoot(r.obj.control)
	r.obj.Dispose()
}
