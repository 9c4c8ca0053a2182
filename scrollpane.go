package fgui

import "math"

// Scroll flags of the package scroll record.
const (
	scrollFlagDisplayMask  = 3
	scrollFlagWheelOff     = 4
	scrollFlagTouchOff     = 8
	scrollFlagBounceOff    = 16
	scrollFlagInertiaOff   = 32
	scrollFlagPageMode     = 64
	scrollFlagSnapToItem   = 128
	pullThreshold          = 20
	minScrollTweenDuration = 0.15
	maxScrollTweenDuration = 0.5
)

// ScrollPane scrolls the content of a container. The scroll position is a
// virtual offset: children keep their content coordinates and the content
// control is moved by -pos. Positions set through the API are always
// clamped into [0, content-view]; dragging with bounce on may overshoot
// until release.
type ScrollPane struct {
	owner *Object

	scrollType        ScrollType
	barDisplay        ScrollBarDisplayType
	scrollBarMargin   Margin
	scrollStep        float32
	decelerationRate  float32
	mouseWheelEnabled bool
	touchEffect       bool
	bouncebackEffect  bool
	inertiaDisabled   bool
	pageMode          bool
	snapToItem        bool

	xPos, yPos  float32
	viewSize    Vec2
	contentSize Vec2
	overlapSize Vec2
	pageSize    Vec2

	headerLockedSize float32
	footerLockedSize float32

	vtBar, hzBar   *Object
	header, footer *Object
	pageController *Controller

	// touch state
	touching     bool
	isDragged    bool
	beginTouch   Vec2
	lastTouch    Vec2
	startPos     Vec2
	velocity     Vec2
	lastMoveTime float64
	tweener      *Tweener
}

func newScrollPane(owner *Object) *ScrollPane {
	sp := &ScrollPane{
		owner:             owner,
		scrollStep:        25,
		decelerationRate:  0.967,
		mouseWheelEnabled: true,
		touchEffect:       true,
		bouncebackEffect:  true,
		pageSize:          Vec2{1, 1},
	}
	if rt := owner.rt; rt != nil {
		sp.scrollStep = rt.Config.scrollStep()
		sp.decelerationRate = rt.Config.decelerationRate()
	}
	owner.On(EventTouchBegin, sp.onTouchBegin)
	owner.On(EventTouchMove, sp.onTouchMove)
	owner.On(EventTouchEnd, sp.onTouchEnd)
	owner.On(EventMouseWheel, sp.onMouseWheel)
	return sp
}

func (sp *ScrollPane) setup(buf *ByteBuffer) {
	o := sp.owner
	sp.scrollType = ScrollType(buf.ReadByte())
	flags := int(buf.ReadInt())
	sp.barDisplay = ScrollBarDisplayType(flags & scrollFlagDisplayMask)
	sp.mouseWheelEnabled = flags&scrollFlagWheelOff == 0
	sp.touchEffect = flags&scrollFlagTouchOff == 0
	sp.bouncebackEffect = flags&scrollFlagBounceOff == 0
	sp.inertiaDisabled = flags&scrollFlagInertiaOff != 0
	sp.pageMode = flags&scrollFlagPageMode != 0
	sp.snapToItem = flags&scrollFlagSnapToItem != 0
	if buf.ReadBool() {
		sp.scrollBarMargin.Top = int(buf.ReadInt())
		sp.scrollBarMargin.Bottom = int(buf.ReadInt())
		sp.scrollBarMargin.Left = int(buf.ReadInt())
		sp.scrollBarMargin.Right = int(buf.ReadInt())
	}
	vtRes, _ := buf.ReadSOK()
	hzRes, _ := buf.ReadSOK()
	headerRes, _ := buf.ReadSOK()
	footerRes, _ := buf.ReadSOK()

	if sp.barDisplay == ScrollBarDefault {
		sp.barDisplay = ScrollBarVisible
		if o.rt != nil && o.rt.Config.ScrollBarDisplay != ScrollBarDefault {
			sp.barDisplay = o.rt.Config.ScrollBarDisplay
		}
	}
	if sp.barDisplay != ScrollBarHidden && o.rt != nil {
		if sp.scrollType != ScrollHorizontal {
			if vtRes == "" {
				vtRes = o.rt.Config.VerticalScrollBar
			}
			sp.vtBar = sp.createDecor(vtRes, decorOverlay)
			if sp.vtBar != nil && sp.vtBar.scrollBar != nil {
				sp.vtBar.scrollBar.SetScrollPane(sp, true)
			}
		}
		if sp.scrollType != ScrollVertical {
			if hzRes == "" {
				hzRes = o.rt.Config.HorizontalScrollBar
			}
			sp.hzBar = sp.createDecor(hzRes, decorOverlay)
			if sp.hzBar != nil && sp.hzBar.scrollBar != nil {
				sp.hzBar.scrollBar.SetScrollPane(sp, false)
			}
		}
	}
	sp.header = sp.createDecor(headerRes, decorContent)
	sp.footer = sp.createDecor(footerRes, decorContent)

	o.SetClipContent(true)
	sp.onOwnerSizeChanged()
}

// createDecor creates a scroll bar, header or footer attached to the
// owner's control but kept out of its child list.
func (sp *ScrollPane) createDecor(url string, kind uint8) *Object {
	o := sp.owner
	if url == "" || o.rt == nil {
		return nil
	}
	d, err := o.rt.CreateObjectFromURL(url)
	if err != nil {
		debugWarn("scroll pane of %q: %v", o.Name, err)
		return nil
	}
	d.parent = o
	d.decor = kind
	b := o.backend()
	if kind == decorOverlay {
		b.AddChild(o.control, d.control, -1)
	} else {
		o.ensureContainerControl()
		b.AddChild(o.contentControl(), d.control, 0)
	}
	return d
}

// --- Properties ---

// Owner returns the scrolled container.
func (sp *ScrollPane) Owner() *Object { return sp.owner }

// ScrollType returns the scrolling axes.
func (sp *ScrollPane) ScrollType() ScrollType { return sp.scrollType }

// VtScrollBar and HzScrollBar return the scroll bar objects, or nil.
func (sp *ScrollPane) VtScrollBar() *Object { return sp.vtBar }
func (sp *ScrollPane) HzScrollBar() *Object { return sp.hzBar }

// Header and Footer return the pull-to-refresh objects, or nil.
func (sp *ScrollPane) Header() *Object { return sp.header }
func (sp *ScrollPane) Footer() *Object { return sp.footer }

// ScrollStep returns the distance of one ScrollUp/Down step.
func (sp *ScrollPane) ScrollStep() float32 { return sp.scrollStep }

// SetScrollStep sets the distance of one step. Zero restores the default.
func (sp *ScrollPane) SetScrollStep(v float32) {
	if v == 0 {
		v = 25
		if sp.owner.rt != nil {
			v = sp.owner.rt.Config.scrollStep()
		}
	}
	sp.scrollStep = v
}

// DecelerationRate returns the per-frame inertia decay.
func (sp *ScrollPane) DecelerationRate() float32 { return sp.decelerationRate }

// SetDecelerationRate sets the per-frame inertia decay, in (0, 1).
func (sp *ScrollPane) SetDecelerationRate(v float32) { sp.decelerationRate = v }

// Inertia reports whether a flick keeps scrolling after release.
func (sp *ScrollPane) Inertia() bool { return !sp.inertiaDisabled }

// SetInertia enables flick scrolling.
func (sp *ScrollPane) SetInertia(v bool) { sp.inertiaDisabled = !v }

// Bounce reports whether dragging may overshoot the bounds.
func (sp *ScrollPane) Bounce() bool { return sp.bouncebackEffect }

// SetBounce enables overshoot with bounce-back.
func (sp *ScrollPane) SetBounce(v bool) { sp.bouncebackEffect = v }

// TouchEffect reports whether dragging scrolls.
func (sp *ScrollPane) TouchEffect() bool { return sp.touchEffect }

// SetTouchEffect enables drag scrolling.
func (sp *ScrollPane) SetTouchEffect(v bool) { sp.touchEffect = v }

// MouseWheelEnabled reports whether the wheel scrolls.
func (sp *ScrollPane) MouseWheelEnabled() bool { return sp.mouseWheelEnabled }

// SetMouseWheelEnabled enables wheel scrolling.
func (sp *ScrollPane) SetMouseWheelEnabled(v bool) { sp.mouseWheelEnabled = v }

// PageMode reports whether scrolling snaps to whole view pages.
func (sp *ScrollPane) PageMode() bool { return sp.pageMode }

// SetPageMode makes scrolling snap to whole view pages.
func (sp *ScrollPane) SetPageMode(v bool) { sp.pageMode = v }

// SnapToItem reports whether scrolling snaps to child edges.
func (sp *ScrollPane) SnapToItem() bool { return sp.snapToItem }

// SetSnapToItem makes scrolling snap to child edges.
func (sp *ScrollPane) SetSnapToItem(v bool) { sp.snapToItem = v }

// IsDragged reports whether the content is being dragged.
func (sp *ScrollPane) IsDragged() bool { return sp.isDragged }

// ViewWidth and ViewHeight return the visible content area.
func (sp *ScrollPane) ViewWidth() float32  { return sp.viewSize.X }
func (sp *ScrollPane) ViewHeight() float32 { return sp.viewSize.Y }

// ContentWidth and ContentHeight return the content size.
func (sp *ScrollPane) ContentWidth() float32  { return sp.contentSize.X }
func (sp *ScrollPane) ContentHeight() float32 { return sp.contentSize.Y }

// PosX and PosY return the scroll position.
func (sp *ScrollPane) PosX() float32 { return sp.xPos }
func (sp *ScrollPane) PosY() float32 { return sp.yPos }

// PercX and PercY return the scroll position as a fraction of the
// scrollable range.
func (sp *ScrollPane) PercX() float32 {
	if sp.overlapSize.X == 0 {
		return 0
	}
	return clampf(sp.xPos/sp.overlapSize.X, 0, 1)
}

// PercY returns the vertical scroll fraction.
func (sp *ScrollPane) PercY() float32 {
	if sp.overlapSize.Y == 0 {
		return 0
	}
	return clampf(sp.yPos/sp.overlapSize.Y, 0, 1)
}

// IsBottomMost and IsRightMost report whether the end is reached.
func (sp *ScrollPane) IsBottomMost() bool { return sp.yPos >= sp.overlapSize.Y || sp.overlapSize.Y == 0 }
func (sp *ScrollPane) IsRightMost() bool  { return sp.xPos >= sp.overlapSize.X || sp.overlapSize.X == 0 }

// --- Positioning ---

func (sp *ScrollPane) minY() float32 {
	if sp.headerLockedSize > 0 {
		return -sp.headerLockedSize
	}
	return 0
}

func (sp *ScrollPane) maxY() float32 { return sp.overlapSize.Y + sp.footerLockedSize }

func (sp *ScrollPane) clamp(x, y float32) (float32, float32) {
	return clampf(x, 0, sp.overlapSize.X), clampf(y, sp.minY(), max(sp.maxY(), sp.minY()))
}

// SetPos scrolls to (x, y), clamped into the scrollable range. With ani a
// tween eases to the target over a duration proportional to the distance.
func (sp *ScrollPane) SetPos(x, y float32, ani bool) {
	x, y = sp.clamp(x, y)
	sp.killTween()
	if x == sp.xPos && y == sp.yPos {
		return
	}
	if ani && sp.tweenTo(Vec2{x, y}, 0) {
		return
	}
	sp.setPosRaw(x, y)
	sp.scrollEnded()
}

// SetPosX scrolls horizontally.
func (sp *ScrollPane) SetPosX(x float32, ani bool) { sp.SetPos(x, sp.yPos, ani) }

// SetPosY scrolls vertically.
func (sp *ScrollPane) SetPosY(y float32, ani bool) { sp.SetPos(sp.xPos, y, ani) }

// SetPercX scrolls to a fraction of the horizontal range.
func (sp *ScrollPane) SetPercX(v float32, ani bool) {
	sp.SetPos(sp.overlapSize.X*clampf(v, 0, 1), sp.yPos, ani)
}

// SetPercY scrolls to a fraction of the vertical range.
func (sp *ScrollPane) SetPercY(v float32, ani bool) {
	sp.SetPos(sp.xPos, sp.overlapSize.Y*clampf(v, 0, 1), ani)
}

// setPosRaw moves the content without clamping.
func (sp *ScrollPane) setPosRaw(x, y float32) {
	if x == sp.xPos && y == sp.yPos {
		return
	}
	sp.xPos, sp.yPos = x, y
	sp.owner.updateContainerControl()
	sp.updateScrollBarPos()
	sp.owner.Emit(EventScroll, nil)
}

func (sp *ScrollPane) scrollEnded() {
	sp.updatePageController()
	sp.owner.Emit(EventScrollEnd, nil)
}

// ScrollTop scrolls to the top.
func (sp *ScrollPane) ScrollTop(ani bool) { sp.SetPercY(0, ani) }

// ScrollBottom scrolls to the bottom.
func (sp *ScrollPane) ScrollBottom(ani bool) { sp.SetPercY(1, ani) }

// ScrollLeft scrolls to the left edge.
func (sp *ScrollPane) ScrollLeft(ratio float32, ani bool) {
	sp.SetPosX(sp.xPos-sp.stepX()*ratio, ani)
}

// ScrollRight scrolls right by ratio steps.
func (sp *ScrollPane) ScrollRight(ratio float32, ani bool) {
	sp.SetPosX(sp.xPos+sp.stepX()*ratio, ani)
}

// ScrollUp scrolls up by ratio steps.
func (sp *ScrollPane) ScrollUp(ratio float32, ani bool) {
	sp.SetPosY(sp.yPos-sp.stepY()*ratio, ani)
}

// ScrollDown scrolls down by ratio steps.
func (sp *ScrollPane) ScrollDown(ratio float32, ani bool) {
	sp.SetPosY(sp.yPos+sp.stepY()*ratio, ani)
}

// ScrollToLeftEdge and ScrollToRightEdge scroll to the horizontal ends.
func (sp *ScrollPane) ScrollToLeftEdge(ani bool)  { sp.SetPercX(0, ani) }
func (sp *ScrollPane) ScrollToRightEdge(ani bool) { sp.SetPercX(1, ani) }

func (sp *ScrollPane) stepX() float32 {
	if sp.pageMode {
		return sp.pageSize.X
	}
	return sp.scrollStep
}

func (sp *ScrollPane) stepY() float32 {
	if sp.pageMode {
		return sp.pageSize.Y
	}
	return sp.scrollStep
}

// ScrollToView scrolls the smallest distance that brings obj into view.
// With setFirst obj is aligned to the top-left of the view instead.
func (sp *ScrollPane) ScrollToView(obj *Object, ani, setFirst bool) {
	if obj == nil {
		return
	}
	sp.owner.EnsureBoundsCorrect()
	sp.ScrollToViewRect(sp.contentRect(obj), ani, setFirst)
}

// contentRect returns obj's rectangle in the owner's content space.
func (sp *ScrollPane) contentRect(obj *Object) Rect {
	o := sp.owner
	if obj.parent == o {
		return Rect{obj.x, obj.y, obj.width, obj.height}
	}
	p := o.GlobalToLocal(obj.LocalToGlobal(Vec2{}))
	off := o.contentOffset()
	return Rect{p.X - off.X, p.Y - off.Y, obj.width, obj.height}
}

// ScrollToViewRect scrolls the smallest distance that brings r, in content
// space, into view.
func (sp *ScrollPane) ScrollToViewRect(r Rect, ani, setFirst bool) {
	x, y := sp.xPos, sp.yPos
	if sp.overlapSize.Y > 0 {
		bottom := sp.yPos + sp.viewSize.Y
		switch {
		case setFirst || r.Y <= sp.yPos || r.Height >= sp.viewSize.Y:
			y = r.Y
		case r.Y+r.Height > bottom:
			y = r.Y + r.Height - sp.viewSize.Y
		}
		if sp.pageMode && sp.pageSize.Y > 0 {
			y = floorf(y/sp.pageSize.Y) * sp.pageSize.Y
		}
	}
	if sp.overlapSize.X > 0 {
		right := sp.xPos + sp.viewSize.X
		switch {
		case setFirst || r.X <= sp.xPos || r.Width >= sp.viewSize.X:
			x = r.X
		case r.X+r.Width > right:
			x = r.X + r.Width - sp.viewSize.X
		}
		if sp.pageMode && sp.pageSize.X > 0 {
			x = floorf(x/sp.pageSize.X) * sp.pageSize.X
		}
	}
	sp.SetPos(x, y, ani)
}

// IsChildInView reports whether any part of obj is inside the view.
func (sp *ScrollPane) IsChildInView(obj *Object) bool {
	r := sp.contentRect(obj)
	view := Rect{sp.xPos, sp.yPos, sp.viewSize.X, sp.viewSize.Y}
	if sp.overlapSize.Y > 0 && (r.Y+r.Height < view.Y || r.Y > view.Y+view.Height) {
		return false
	}
	if sp.overlapSize.X > 0 && (r.X+r.Width < view.X || r.X > view.X+view.Width) {
		return false
	}
	return true
}

// --- Pages ---

// CurrentPageX returns the horizontal page index in page mode.
func (sp *ScrollPane) CurrentPageX() int {
	if !sp.pageMode || sp.pageSize.X <= 0 {
		return 0
	}
	return pageIndex(sp.xPos, sp.pageSize.X, sp.overlapSize.X)
}

// CurrentPageY returns the vertical page index in page mode.
func (sp *ScrollPane) CurrentPageY() int {
	if !sp.pageMode || sp.pageSize.Y <= 0 {
		return 0
	}
	return pageIndex(sp.yPos, sp.pageSize.Y, sp.overlapSize.Y)
}

func pageIndex(pos, page, overlap float32) int {
	i := int(math.Floor(float64(pos / page)))
	if overlap > 0 && pos-float32(i)*page > page/2 {
		i++
	}
	return max(i, 0)
}

// SetCurrentPageX scrolls to horizontal page i.
func (sp *ScrollPane) SetCurrentPageX(i int, ani bool) {
	if sp.pageMode && sp.overlapSize.X > 0 {
		sp.SetPosX(float32(i)*sp.pageSize.X, ani)
	}
}

// SetCurrentPageY scrolls to vertical page i.
func (sp *ScrollPane) SetCurrentPageY(i int, ani bool) {
	if sp.pageMode && sp.overlapSize.Y > 0 {
		sp.SetPosY(float32(i)*sp.pageSize.Y, ani)
	}
}

// PageController returns the controller mirroring the current page.
func (sp *ScrollPane) PageController() *Controller { return sp.pageController }

// SetPageController mirrors the current page into c, and turns c's page
// changes into scrolls.
func (sp *ScrollPane) SetPageController(c *Controller) { sp.pageController = c }

func (sp *ScrollPane) updatePageController() {
	c := sp.pageController
	if c == nil || c.Changing() {
		return
	}
	var index int
	if sp.scrollType == ScrollHorizontal {
		index = sp.CurrentPageX()
	} else {
		index = sp.CurrentPageY()
	}
	if index < c.PageCount() {
		sp.pageController = nil
		c.SetSelectedIndex(index)
		sp.pageController = c
	}
}

func (sp *ScrollPane) handleControllerChanged(c *Controller) {
	if c != sp.pageController {
		return
	}
	if sp.scrollType == ScrollHorizontal {
		sp.SetCurrentPageX(c.SelectedIndex(), true)
	} else {
		sp.SetCurrentPageY(c.SelectedIndex(), true)
	}
}

// --- Header and footer locks ---

// LockHeader keeps size pixels above the content scrollable, typically
// while a pull-down refresh runs. Zero releases the lock.
func (sp *ScrollPane) LockHeader(size float32) {
	if sp.headerLockedSize == size {
		return
	}
	sp.headerLockedSize = size
	if sp.touching {
		return
	}
	switch {
	case size > 0 && sp.yPos <= 0:
		sp.tweenTo(Vec2{sp.xPos, -size}, 0)
	case size == 0 && sp.yPos < 0:
		sp.tweenTo(Vec2{sp.xPos, 0}, 0)
	}
}

// LockFooter keeps size pixels below the content scrollable. Zero
// releases the lock.
func (sp *ScrollPane) LockFooter(size float32) {
	if sp.footerLockedSize == size {
		return
	}
	sp.footerLockedSize = size
	if sp.touching {
		return
	}
	switch {
	case size > 0 && sp.yPos >= sp.overlapSize.Y:
		sp.tweenTo(Vec2{sp.xPos, sp.overlapSize.Y + size}, 0)
	case size == 0 && sp.yPos > sp.overlapSize.Y:
		sp.tweenTo(Vec2{sp.xPos, sp.overlapSize.Y}, 0)
	}
}

// --- Sizes ---

// SetContentSize records the content size measured by the owner's layout.
func (sp *ScrollPane) SetContentSize(w, h float32) {
	if sp.contentSize.X == w && sp.contentSize.Y == h {
		return
	}
	sp.contentSize = Vec2{w, h}
	sp.handleSizeChanged()
}

func (sp *ScrollPane) onOwnerSizeChanged() {
	o := sp.owner
	w := o.width - float32(o.margin.Left+o.margin.Right)
	h := o.height - float32(o.margin.Top+o.margin.Bottom)
	if sp.vtBar != nil && sp.barDisplay != ScrollBarAuto {
		w -= sp.vtBar.width
	}
	if sp.hzBar != nil && sp.barDisplay != ScrollBarAuto {
		h -= sp.hzBar.height
	}
	sp.viewSize = Vec2{max(w, 0), max(h, 0)}
	sp.layoutBars()
	sp.handleSizeChanged()
}

func (sp *ScrollPane) handleSizeChanged() {
	ox, oy := sp.overlapSize.X, sp.overlapSize.Y
	if sp.scrollType != ScrollVertical {
		sp.overlapSize.X = max(0, sp.contentSize.X-sp.viewSize.X)
	} else {
		sp.overlapSize.X = 0
	}
	if sp.scrollType != ScrollHorizontal {
		sp.overlapSize.Y = max(0, sp.contentSize.Y-sp.viewSize.Y)
	} else {
		sp.overlapSize.Y = 0
	}
	sp.pageSize = Vec2{max(sp.viewSize.X, 1), max(sp.viewSize.Y, 1)}

	if !sp.touching && sp.tweener == nil {
		x, y := sp.clamp(sp.xPos, sp.yPos)
		sp.setPosRaw(x, y)
	}
	if sp.footer != nil {
		sp.footer.SetXY(0, max(sp.contentSize.Y, sp.viewSize.Y))
	}
	if sp.header != nil {
		sp.header.SetXY(0, -sp.header.height)
	}
	if ox != sp.overlapSize.X || oy != sp.overlapSize.Y {
		sp.updateScrollBarVisible()
	}
	sp.updateScrollBarPos()
}

// --- Scroll bars ---

func (sp *ScrollPane) layoutBars() {
	o := sp.owner
	m := sp.scrollBarMargin
	if b := sp.vtBar; b != nil {
		b.SetXY(o.width-b.width-float32(m.Right), float32(m.Top))
		h := o.height - float32(m.Top+m.Bottom)
		if sp.hzBar != nil && sp.barDisplay != ScrollBarAuto {
			h -= sp.hzBar.height
		}
		b.SetHeight(h)
	}
	if b := sp.hzBar; b != nil {
		b.SetXY(float32(m.Left), o.height-b.height-float32(m.Bottom))
		w := o.width - float32(m.Left+m.Right)
		if sp.vtBar != nil && sp.barDisplay != ScrollBarAuto {
			w -= sp.vtBar.width
		}
		b.SetWidth(w)
	}
}

func (sp *ScrollPane) updateScrollBarPos() {
	if b := sp.vtBar; b != nil && b.scrollBar != nil {
		b.scrollBar.setScrollPerc(sp.PercY())
	}
	if b := sp.hzBar; b != nil && b.scrollBar != nil {
		b.scrollBar.setScrollPerc(sp.PercX())
	}
}

// updateScrollBarVisible shows a bar when its axis can scroll, or always
// for ScrollBarVisible. Auto bars also show while their grip is dragged.
func (sp *ScrollPane) updateScrollBarVisible() {
	show := func(b *Object, overlap, view, content float32) {
		if b == nil {
			return
		}
		if b.scrollBar != nil && content > 0 {
			b.scrollBar.SetDisplayPerc(min(view/content, 1))
		}
		v := sp.barDisplay == ScrollBarVisible || overlap > 0
		if sp.barDisplay == ScrollBarAuto && b.scrollBar != nil && b.scrollBar.gripDragging {
			v = true
		}
		b.SetVisible(v)
		b.backend().SetVisible(b.control, v)
	}
	show(sp.vtBar, sp.overlapSize.Y, sp.viewSize.Y, sp.contentSize.Y)
	show(sp.hzBar, sp.overlapSize.X, sp.viewSize.X, sp.contentSize.X)
}

// --- Tweening ---

func (sp *ScrollPane) tweens() *TweenManager { return sp.owner.tweens() }

// tweenTo eases the position to target. A zero duration derives it from the
// distance. It reports false when no tween manager is available.
func (sp *ScrollPane) tweenTo(target Vec2, duration float32) bool {
	tm := sp.tweens()
	if tm == nil {
		sp.setPosRaw(target.X, target.Y)
		sp.scrollEnded()
		return false
	}
	sp.killTween()
	start := Vec2{sp.xPos, sp.yPos}
	if duration == 0 {
		dist := float32(math.Hypot(float64(target.X-start.X), float64(target.Y-start.Y)))
		duration = clampf(dist/1500, minScrollTweenDuration, maxScrollTweenDuration)
	}
	sp.tweener = tm.To2(start, target, duration).SetEase(EaseCubicOut).SetTarget(sp).
		OnUpdate(func(t *Tweener) {
			v := t.Value()
			sp.setPosRaw(v.X, v.Y)
		}).
		OnComplete(func(*Tweener) {
			sp.tweener = nil
			sp.bounceBack()
		})
	return true
}

func (sp *ScrollPane) killTween() {
	if sp.tweener != nil {
		sp.tweener.Kill(false)
		sp.tweener = nil
	}
}

// bounceBack returns an overshooting position into range, or ends the
// scroll when already inside.
func (sp *ScrollPane) bounceBack() {
	x, y := sp.clamp(sp.xPos, sp.yPos)
	if x != sp.xPos || y != sp.yPos {
		sp.tweenTo(Vec2{x, y}, 0)
		return
	}
	sp.scrollEnded()
}

// --- Input ---

func (sp *ScrollPane) now() float64 {
	if sp.owner.rt == nil {
		return 0
	}
	return sp.owner.rt.time
}

func (sp *ScrollPane) localPoint(ev *InputEvent) Vec2 {
	return sp.owner.GlobalToLocal(Vec2{ev.X, ev.Y})
}

func (sp *ScrollPane) onTouchBegin(ctx *EventContext) {
	if !sp.touchEffect || ctx.Input == nil || ctx.Input.Button != MouseButtonLeft {
		return
	}
	sp.killTween()
	p := sp.localPoint(ctx.Input)
	sp.touching = true
	sp.isDragged = false
	sp.beginTouch = p
	sp.lastTouch = p
	sp.startPos = Vec2{sp.xPos, sp.yPos}
	sp.velocity = Vec2{}
	sp.lastMoveTime = sp.now()
}

func (sp *ScrollPane) onTouchMove(ctx *EventContext) {
	if !sp.touching || ctx.Input == nil {
		return
	}
	rt := sp.owner.rt
	if rt != nil && rt.draggingPane != nil && rt.draggingPane != sp {
		return
	}
	p := sp.localPoint(ctx.Input)
	threshold := float32(8)
	if rt != nil {
		threshold = rt.Config.dragThreshold()
	}

	canX := sp.scrollType != ScrollVertical && sp.overlapSize.X > 0
	canY := sp.scrollType != ScrollHorizontal && (sp.overlapSize.Y > 0 || sp.bouncebackEffect)
	if !sp.isDragged {
		dx, dy := absf(p.X-sp.beginTouch.X), absf(p.Y-sp.beginTouch.Y)
		if !(canX && dx >= threshold || canY && dy >= threshold) {
			return
		}
		sp.isDragged = true
		if rt != nil {
			rt.draggingPane = sp
		}
	}

	x, y := sp.xPos, sp.yPos
	if canX {
		x = sp.resist(sp.startPos.X-(p.X-sp.beginTouch.X), 0, sp.overlapSize.X)
	}
	if canY {
		y = sp.resist(sp.startPos.Y-(p.Y-sp.beginTouch.Y), sp.minY(), max(sp.maxY(), sp.minY()))
	}

	now := sp.now()
	if dt := float32(now - sp.lastMoveTime); dt > 0 {
		inst := Vec2{(p.X - sp.lastTouch.X) / dt, (p.Y - sp.lastTouch.Y) / dt}
		sp.velocity = Vec2{sp.velocity.X*0.5 + inst.X*0.5, sp.velocity.Y*0.5 + inst.Y*0.5}
	}
	sp.lastTouch = p
	sp.lastMoveTime = now
	sp.setPosRaw(x, y)
	ctx.StopPropagation()
}

// resist maps a dragged position onto [lo, hi]. With bounce, overshoot
// moves at half speed; without it the position is clamped.
func (sp *ScrollPane) resist(v, lo, hi float32) float32 {
	if !sp.bouncebackEffect {
		return clampf(v, lo, hi)
	}
	switch {
	case v < lo:
		return lo + (v-lo)/2
	case v > hi:
		return hi + (v-hi)/2
	}
	return v
}

func (sp *ScrollPane) onTouchEnd(*EventContext) {
	if !sp.touching {
		return
	}
	sp.touching = false
	rt := sp.owner.rt
	if rt != nil && rt.draggingPane == sp {
		rt.draggingPane = nil
	}
	if !sp.isDragged {
		return
	}
	// item clicks in the same release still see isDragged
	defer func() { sp.isDragged = false }()

	if sp.scrollType != ScrollHorizontal {
		switch {
		case sp.yPos < sp.minY()-pullThreshold:
			sp.owner.Emit(EventPullDownRelease, nil)
		case sp.yPos > sp.maxY()+pullThreshold:
			sp.owner.Emit(EventPullUpRelease, nil)
		}
	}
	if sp.scrollType != ScrollVertical {
		switch {
		case sp.xPos < -pullThreshold:
			sp.owner.Emit(EventPullDownRelease, nil)
		case sp.xPos > sp.overlapSize.X+pullThreshold:
			sp.owner.Emit(EventPullUpRelease, nil)
		}
	}

	// stale samples mean the pointer rested before release
	if float32(sp.now()-sp.lastMoveTime) > 0.1 {
		sp.velocity = Vec2{}
	}
	target := Vec2{sp.xPos, sp.yPos}
	var duration float32
	if !sp.inertiaDisabled {
		dx, tx := sp.inertia(sp.velocity.X)
		dy, ty := sp.inertia(sp.velocity.Y)
		target.X -= dx
		target.Y -= dy
		duration = max(tx, ty)
	}
	target = sp.snap(target)
	x, y := sp.clamp(target.X, target.Y)
	if x == sp.xPos && y == sp.yPos {
		sp.scrollEnded()
		return
	}
	sp.tweenTo(Vec2{x, y}, duration)
}

// inertia returns the distance a flick at v px/s travels while decaying by
// decelerationRate per 60 Hz frame, and the time it takes.
func (sp *ScrollPane) inertia(v float32) (float32, float32) {
	vf := float64(v) / 60
	rate := float64(sp.decelerationRate)
	if math.Abs(vf) <= 1 || rate <= 0 || rate >= 1 {
		return 0, 0
	}
	frames := math.Log(1/math.Abs(vf)) / math.Log(rate)
	dist := vf * (1 - math.Pow(rate, frames)) / (1 - rate)
	return float32(dist), clampf(float32(frames/60), minScrollTweenDuration, 2)
}

// snap aligns a release target to pages or child edges.
func (sp *ScrollPane) snap(p Vec2) Vec2 {
	if sp.pageMode {
		if sp.overlapSize.X > 0 {
			p.X = roundf(p.X/sp.pageSize.X) * sp.pageSize.X
		}
		if sp.overlapSize.Y > 0 {
			p.Y = roundf(p.Y/sp.pageSize.Y) * sp.pageSize.Y
		}
		return p
	}
	if !sp.snapToItem {
		return p
	}
	bestX, bestY := p.X, p.Y
	dX, dY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	for _, c := range sp.owner.children {
		if !c.FinalVisible() {
			continue
		}
		if d := absf(c.x - p.X); sp.overlapSize.X > 0 && d < dX {
			dX, bestX = d, c.x
		}
		if d := absf(c.y - p.Y); sp.overlapSize.Y > 0 && d < dY {
			dY, bestY = d, c.y
		}
	}
	return Vec2{bestX, bestY}
}

func (sp *ScrollPane) onMouseWheel(ctx *EventContext) {
	if !sp.mouseWheelEnabled || ctx.Input == nil || ctx.Input.WheelDelta == 0 {
		return
	}
	delta := ctx.Input.WheelDelta
	if sp.overlapSize.Y > 0 && sp.scrollType != ScrollHorizontal {
		sp.ScrollDown(delta, sp.pageMode)
	} else if sp.overlapSize.X > 0 {
		sp.ScrollRight(delta, sp.pageMode)
	} else {
		return
	}
	ctx.StopPropagation()
}

// --- Lifecycle ---

func (sp *ScrollPane) dispose() {
	sp.killTween()
	if rt := sp.owner.rt; rt != nil && rt.draggingPane == sp {
		rt.draggingPane = nil
	}
	for _, d := range [...]*Object{sp.vtBar, sp.hzBar, sp.header, sp.footer} {
		if d != nil {
			d.parent = nil
			d.Dispose()
		}
	}
	sp.vtBar, sp.hzBar, sp.header, sp.footer = nil, nil, nil, nil
	sp.pageController = nil
}
