package fgui

import (
	"math"
	"strconv"
)

// --- ProgressBar ---

// ProgressBar shows a value between min and max by stretching its "bar"
// (horizontal) or "bar_v" (vertical) child.
type ProgressBar struct {
	owner     *Object
	min, max  float64
	value     float64
	titleType ProgressTitleType
	reverse   bool

	titleObject *Object
	barObjectH  *Object
	barObjectV  *Object
	aniObject   *Object

	barMaxWidth, barMaxHeight           float32
	barMaxWidthDelta, barMaxHeightDelta float32
	barStartX, barStartY                float32
}

func newProgressBar(o *Object) *ProgressBar {
	return &ProgressBar{owner: o, max: 100, value: 50}
}

// Min returns the lower bound.
func (p *ProgressBar) Min() float64 { return p.min }

// SetMin sets the lower bound.
func (p *ProgressBar) SetMin(v float64) {
	if p.min != v {
		p.min = v
		p.update(p.value)
	}
}

// Max returns the upper bound.
func (p *ProgressBar) Max() float64 { return p.max }

// SetMax sets the upper bound.
func (p *ProgressBar) SetMax(v float64) {
	if p.max != v {
		p.max = v
		p.update(p.value)
	}
}

// Value returns the current value.
func (p *ProgressBar) Value() float64 { return p.value }

// SetValue sets the current value, stopping any value tween.
func (p *ProgressBar) SetValue(v float64) {
	if tm := p.owner.tweens(); tm != nil {
		tm.Kill(p, false)
	}
	if p.value != v {
		p.value = v
		p.update(v)
	}
}

// TweenValue animates the displayed value to v over duration seconds.
func (p *ProgressBar) TweenValue(v float64, duration float32) *Tweener {
	tm := p.owner.tweens()
	if tm == nil {
		p.SetValue(v)
		return nil
	}
	old := p.value
	if t := tm.GetTween(p); t != nil {
		old = t.value.D
		t.Kill(false)
	}
	p.value = v
	return tm.ToDouble(old, v, duration).SetEase(EaseLinear).SetTarget(p).
		OnUpdate(func(t *Tweener) { p.update(t.value.D) })
}

// TitleType returns the title format.
func (p *ProgressBar) TitleType() ProgressTitleType { return p.titleType }

// SetTitleType changes the title format.
func (p *ProgressBar) SetTitleType(v ProgressTitleType) {
	if p.titleType != v {
		p.titleType = v
		p.update(p.value)
	}
}

// Reverse reports whether the bar fills from the far edge.
func (p *ProgressBar) Reverse() bool { return p.reverse }

// SetReverse fills the bar from the far edge.
func (p *ProgressBar) SetReverse(v bool) {
	if p.reverse != v {
		p.reverse = v
		p.update(p.value)
	}
}

func (p *ProgressBar) titleText() string {
	if p.titleObject != nil {
		return p.titleObject.Text()
	}
	return ""
}

func progressTitle(tt ProgressTitleType, value, maxV, percent float64) string {
	switch tt {
	case ProgressTitlePercent:
		return strconv.Itoa(int(math.Floor(percent*100))) + "%"
	case ProgressTitleValueAndMax:
		return strconv.Itoa(int(math.Round(value))) + "/" + strconv.Itoa(int(math.Round(maxV)))
	case ProgressTitleValue:
		return strconv.Itoa(int(math.Round(value)))
	case ProgressTitleMax:
		return strconv.Itoa(int(math.Round(maxV)))
	}
	return ""
}

func percentOf(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return min(max((v-lo)/(hi-lo), 0), 1)
}

func (p *ProgressBar) update(v float64) {
	percent := percentOf(v, p.min, p.max)
	if p.titleObject != nil {
		p.titleObject.SetText(progressTitle(p.titleType, v, p.max, percent))
	}
	o := p.owner
	fullW := o.width - p.barMaxWidthDelta
	fullH := o.height - p.barMaxHeightDelta
	if bar := p.barObjectH; bar != nil {
		w := roundf(fullW * float32(percent))
		if p.reverse {
			bar.SetXY(p.barStartX+(fullW-w), bar.y)
		}
		bar.SetWidth(w)
	}
	if bar := p.barObjectV; bar != nil {
		h := roundf(fullH * float32(percent))
		if p.reverse {
			bar.SetXY(bar.x, p.barStartY+(fullH-h))
		}
		bar.SetHeight(h)
	}
	if ani := p.aniObject; ani != nil {
		ani.SetFrame(int(math.Round(percent * 100)))
	}
}

func (p *ProgressBar) handleSizeChanged() {
	o := p.owner
	if p.barObjectH != nil {
		p.barMaxWidth = o.width - p.barMaxWidthDelta
	}
	if p.barObjectV != nil {
		p.barMaxHeight = o.height - p.barMaxHeightDelta
	}
	if !o.building {
		p.update(p.value)
	}
}

func (p *ProgressBar) constructExtension(buf *ByteBuffer) {
	o := p.owner
	p.titleType = ProgressTitleType(buf.ReadByte())
	p.reverse = buf.ReadBool()

	p.titleObject = o.ChildByName("title")
	p.barObjectH = o.ChildByName("bar")
	p.barObjectV = o.ChildByName("bar_v")
	p.aniObject = o.ChildByName("ani")
	if bar := p.barObjectH; bar != nil {
		p.barMaxWidth = bar.width
		p.barMaxWidthDelta = o.width - p.barMaxWidth
		p.barStartX = bar.x
	}
	if bar := p.barObjectV; bar != nil {
		p.barMaxHeight = bar.height
		p.barMaxHeightDelta = o.height - p.barMaxHeight
		p.barStartY = bar.y
	}
	p.update(p.value)
}

func (p *ProgressBar) setupAfterAdd(buf *ByteBuffer) {
	p.value = float64(buf.ReadInt())
	p.max = float64(buf.ReadInt())
	if buf.Version >= 2 {
		p.min = float64(buf.ReadInt())
	}
	p.update(p.value)
}

// --- Slider ---

// Slider is a progress bar with a draggable "grip" child.
type Slider struct {
	owner         *Object
	min, max      float64
	value         float64
	titleType     ProgressTitleType
	reverse       bool
	wholeNumbers  bool
	changeOnClick bool
	canDrag       bool

	titleObject *Object
	barObjectH  *Object
	barObjectV  *Object
	gripObject  *Object

	barMaxWidth, barMaxHeight           float32
	barMaxWidthDelta, barMaxHeightDelta float32
	barStartX, barStartY                float32

	clickPos     Vec2
	clickPercent float64
	dragging     bool
}

func newSlider(o *Object) *Slider {
	return &Slider{owner: o, max: 100, value: 50, changeOnClick: true, canDrag: true}
}

// Min returns the lower bound.
func (s *Slider) Min() float64 { return s.min }

// SetMin sets the lower bound.
func (s *Slider) SetMin(v float64) {
	if s.min != v {
		s.min = v
		s.update()
	}
}

// Max returns the upper bound.
func (s *Slider) Max() float64 { return s.max }

// SetMax sets the upper bound.
func (s *Slider) SetMax(v float64) {
	if s.max != v {
		s.max = v
		s.update()
	}
}

// Value returns the current value.
func (s *Slider) Value() float64 { return s.value }

// SetValue sets the current value.
func (s *Slider) SetValue(v float64) {
	if s.value != v {
		s.value = v
		s.update()
	}
}

// WholeNumbers reports whether dragging snaps to integers.
func (s *Slider) WholeNumbers() bool { return s.wholeNumbers }

// SetWholeNumbers makes dragging snap to integers.
func (s *Slider) SetWholeNumbers(v bool) {
	if s.wholeNumbers != v {
		s.wholeNumbers = v
		s.update()
	}
}

// ChangeOnClick reports whether clicking the bar moves the grip.
func (s *Slider) ChangeOnClick() bool { return s.changeOnClick }

// SetChangeOnClick controls whether clicking the bar moves the grip.
func (s *Slider) SetChangeOnClick(v bool) { s.changeOnClick = v }

// CanDrag reports whether the grip can be dragged.
func (s *Slider) CanDrag() bool { return s.canDrag }

// SetCanDrag enables or disables grip dragging.
func (s *Slider) SetCanDrag(v bool) { s.canDrag = v }

// TitleType returns the title format.
func (s *Slider) TitleType() ProgressTitleType { return s.titleType }

// SetTitleType changes the title format.
func (s *Slider) SetTitleType(v ProgressTitleType) {
	if s.titleType != v {
		s.titleType = v
		s.update()
	}
}

func (s *Slider) update() {
	s.updateWithPercent(percentOf(s.value, s.min, s.max), false)
}

// updateWithPercent moves the grip and bar to percent. With manual the new
// value is derived from percent and EventChanged fires on change.
func (s *Slider) updateWithPercent(percent float64, manual bool) {
	percent = min(max(percent, 0), 1)
	o := s.owner
	if manual {
		nv := s.min + (s.max-s.min)*percent
		if s.wholeNumbers {
			nv = math.Round(nv)
			percent = percentOf(nv, s.min, s.max)
		}
		if nv != s.value {
			s.value = nv
			if o.Emit(EventChanged, nil) {
				return
			}
		}
	}
	if s.titleObject != nil {
		s.titleObject.SetText(progressTitle(s.titleType, s.value, s.max, percent))
	}
	fullW := o.width - s.barMaxWidthDelta
	fullH := o.height - s.barMaxHeightDelta
	if bar := s.barObjectH; bar != nil {
		w := roundf(fullW * float32(percent))
		if s.reverse {
			bar.SetXY(s.barStartX+(fullW-w), bar.y)
		}
		bar.SetWidth(w)
		if g := s.gripObject; g != nil && s.barObjectV == nil {
			if s.reverse {
				g.SetX(bar.x)
			} else {
				g.SetX(bar.x + bar.width)
			}
		}
	}
	if bar := s.barObjectV; bar != nil {
		h := roundf(fullH * float32(percent))
		if s.reverse {
			bar.SetXY(bar.x, s.barStartY+(fullH-h))
		}
		bar.SetHeight(h)
		if g := s.gripObject; g != nil {
			if s.reverse {
				g.SetY(bar.y)
			} else {
				g.SetY(bar.y + bar.height)
			}
		}
	}
}

func (s *Slider) handleSizeChanged() {
	o := s.owner
	if s.barObjectH != nil {
		s.barMaxWidth = o.width - s.barMaxWidthDelta
	}
	if s.barObjectV != nil {
		s.barMaxHeight = o.height - s.barMaxHeightDelta
	}
	if !o.building {
		s.update()
	}
}

func (s *Slider) onGripTouchBegin(ctx *EventContext) {
	if !s.canDrag || ctx.Input == nil || ctx.Input.Button != MouseButtonLeft {
		return
	}
	ctx.StopPropagation()
	s.clickPos = s.owner.GlobalToLocal(Vec2{ctx.Input.X, ctx.Input.Y})
	s.clickPercent = percentOf(s.value, s.min, s.max)
	s.dragging = true
}

func (s *Slider) onGripTouchMove(ctx *EventContext) {
	if !s.dragging || ctx.Input == nil {
		return
	}
	o := s.owner
	pt := o.GlobalToLocal(Vec2{ctx.Input.X, ctx.Input.Y})
	dx, dy := pt.X-s.clickPos.X, pt.Y-s.clickPos.Y
	if s.reverse {
		dx, dy = -dx, -dy
	}
	var percent float64
	if s.barObjectH != nil {
		percent = s.clickPercent + float64(dx/(o.width-s.barMaxWidthDelta))
	} else {
		percent = s.clickPercent + float64(dy/(o.height-s.barMaxHeightDelta))
	}
	s.updateWithPercent(percent, true)
}

func (s *Slider) onGripTouchEnd(*EventContext) { s.dragging = false }

func (s *Slider) onBarTouchBegin(ctx *EventContext) {
	if !s.changeOnClick || ctx.Input == nil || s.gripObject == nil {
		return
	}
	o := s.owner
	g := s.gripObject
	pt := g.GlobalToLocal(Vec2{ctx.Input.X, ctx.Input.Y})
	percent := percentOf(s.value, s.min, s.max)
	var delta float32
	if s.barObjectH != nil {
		delta = pt.X / (o.width - s.barMaxWidthDelta)
	}
	if s.barObjectV != nil {
		delta = pt.Y / (o.height - s.barMaxHeightDelta)
	}
	if s.reverse {
		percent -= float64(delta)
	} else {
		percent += float64(delta)
	}
	s.updateWithPercent(percent, true)
}

func (s *Slider) constructExtension(buf *ByteBuffer) {
	o := s.owner
	s.titleType = ProgressTitleType(buf.ReadByte())
	s.reverse = buf.ReadBool()
	if buf.Version >= 2 {
		s.wholeNumbers = buf.ReadBool()
		s.changeOnClick = buf.ReadBool()
	}

	s.titleObject = o.ChildByName("title")
	s.barObjectH = o.ChildByName("bar")
	s.barObjectV = o.ChildByName("bar_v")
	s.gripObject = o.ChildByName("grip")
	if bar := s.barObjectH; bar != nil {
		s.barMaxWidth = bar.width
		s.barMaxWidthDelta = o.width - s.barMaxWidth
		s.barStartX = bar.x
	}
	if bar := s.barObjectV; bar != nil {
		s.barMaxHeight = bar.height
		s.barMaxHeightDelta = o.height - s.barMaxHeight
		s.barStartY = bar.y
	}
	if g := s.gripObject; g != nil {
		g.On(EventTouchBegin, s.onGripTouchBegin)
		g.On(EventTouchMove, s.onGripTouchMove)
		g.On(EventTouchEnd, s.onGripTouchEnd)
	}
	o.On(EventTouchBegin, s.onBarTouchBegin)
	s.update()
}

func (s *Slider) setupAfterAdd(buf *ByteBuffer) {
	s.value = float64(buf.ReadInt())
	s.max = float64(buf.ReadInt())
	if buf.Version >= 2 {
		s.min = float64(buf.ReadInt())
	}
	s.update()
}

// --- ScrollBar ---

// ScrollBar is the companion of a ScrollPane. Its "grip" child reflects the
// visible fraction and scroll position of the pane; dragging the grip or
// clicking the arrows scrolls the pane.
type ScrollBar struct {
	owner         *Object
	target        *ScrollPane
	vertical      bool
	scrollPerc    float32
	displayPerc   float32
	fixedGripSize bool

	grip, bar      *Object
	arrow1, arrow2 *Object

	gripDragging bool
	dragOffset   Vec2
}

// SetScrollPane binds the bar to target.
func (sb *ScrollBar) SetScrollPane(target *ScrollPane, vertical bool) {
	sb.target = target
	sb.vertical = vertical
}

// ScrollPane returns the bound pane.
func (sb *ScrollBar) ScrollPane() *ScrollPane { return sb.target }

// GripDragging reports whether the grip is being dragged.
func (sb *ScrollBar) GripDragging() bool { return sb.gripDragging }

// ScrollPerc returns the last scroll position fraction.
func (sb *ScrollBar) ScrollPerc() float32 { return sb.scrollPerc }

// SetDisplayPerc sizes the grip to the visible fraction of the content.
func (sb *ScrollBar) SetDisplayPerc(v float32) {
	sb.displayPerc = v
	if sb.grip == nil || sb.bar == nil {
		return
	}
	if sb.vertical {
		if !sb.fixedGripSize {
			h := floorf(v * sb.bar.height)
			if minH := sb.grip.minHeight; h < minH {
				h = minH
			}
			sb.grip.SetHeight(h)
		}
		sb.grip.SetY(roundf(sb.bar.y + (sb.bar.height-sb.grip.height)*sb.scrollPerc))
	} else {
		if !sb.fixedGripSize {
			w := floorf(v * sb.bar.width)
			if minW := sb.grip.minWidth; w < minW {
				w = minW
			}
			sb.grip.SetWidth(w)
		}
		sb.grip.SetX(roundf(sb.bar.x + (sb.bar.width-sb.grip.width)*sb.scrollPerc))
	}
	sb.grip.SetVisible(v != 0 && v != 1)
}

// setScrollPerc moves the grip to the scroll position fraction v.
func (sb *ScrollBar) setScrollPerc(v float32) {
	sb.scrollPerc = v
	if sb.grip == nil || sb.bar == nil {
		return
	}
	if sb.vertical {
		sb.grip.SetY(roundf(sb.bar.y + (sb.bar.height-sb.grip.height)*v))
	} else {
		sb.grip.SetX(roundf(sb.bar.x + (sb.bar.width-sb.grip.width)*v))
	}
}

// MinSize returns the length taken by the arrow buttons.
func (sb *ScrollBar) MinSize() float32 {
	var n float32
	for _, a := range [...]*Object{sb.arrow1, sb.arrow2} {
		if a == nil {
			continue
		}
		if sb.vertical {
			n += a.height
		} else {
			n += a.width
		}
	}
	return n
}

func (sb *ScrollBar) update() {
	if sb.grip != nil && sb.bar != nil && sb.displayPerc > 0 {
		sb.SetDisplayPerc(sb.displayPerc)
	}
}

func (sb *ScrollBar) onGripTouchBegin(ctx *EventContext) {
	if sb.bar == nil || ctx.Input == nil {
		return
	}
	ctx.StopPropagation()
	sb.gripDragging = true
	if sb.target != nil {
		sb.target.updateScrollBarVisible()
	}
	pt := sb.owner.GlobalToLocal(Vec2{ctx.Input.X, ctx.Input.Y})
	sb.dragOffset = Vec2{pt.X - sb.grip.x, pt.Y - sb.grip.y}
}

func (sb *ScrollBar) onGripTouchMove(ctx *EventContext) {
	if !sb.gripDragging || sb.target == nil || ctx.Input == nil {
		return
	}
	pt := sb.owner.GlobalToLocal(Vec2{ctx.Input.X, ctx.Input.Y})
	if sb.vertical {
		cur := pt.Y - sb.dragOffset.Y
		if track := sb.bar.height - sb.grip.height; track > 0 {
			sb.target.SetPercY((cur-sb.bar.y)/track, false)
		}
	} else {
		cur := pt.X - sb.dragOffset.X
		if track := sb.bar.width - sb.grip.width; track > 0 {
			sb.target.SetPercX((cur-sb.bar.x)/track, false)
		}
	}
}

func (sb *ScrollBar) onGripTouchEnd(*EventContext) {
	sb.gripDragging = false
	if sb.target != nil {
		sb.target.updateScrollBarVisible()
	}
}

func (sb *ScrollBar) onArrow1(ctx *EventContext) {
	ctx.StopPropagation()
	if sb.target == nil {
		return
	}
	if sb.vertical {
		sb.target.ScrollUp(1, false)
	} else {
		sb.target.ScrollLeft(1, false)
	}
}

func (sb *ScrollBar) onArrow2(ctx *EventContext) {
	ctx.StopPropagation()
	if sb.target == nil {
		return
	}
	if sb.vertical {
		sb.target.ScrollDown(1, false)
	} else {
		sb.target.ScrollRight(1, false)
	}
}

func (sb *ScrollBar) onBarTouchBegin(ctx *EventContext) {
	if sb.target == nil || sb.grip == nil || ctx.Input == nil {
		return
	}
	pt := sb.grip.GlobalToLocal(Vec2{ctx.Input.X, ctx.Input.Y})
	if sb.vertical {
		if pt.Y < 0 {
			sb.target.ScrollUp(4, true)
		} else {
			sb.target.ScrollDown(4, true)
		}
	} else if pt.X < 0 {
		sb.target.ScrollLeft(4, true)
	} else {
		sb.target.ScrollRight(4, true)
	}
}

func (sb *ScrollBar) constructExtension(buf *ByteBuffer) {
	o := sb.owner
	sb.fixedGripSize = buf.ReadBool()
	sb.grip = o.ChildByName("grip")
	sb.bar = o.ChildByName("bar")
	sb.arrow1 = o.ChildByName("arrow1")
	sb.arrow2 = o.ChildByName("arrow2")
	if sb.grip != nil {
		sb.grip.On(EventTouchBegin, sb.onGripTouchBegin)
		sb.grip.On(EventTouchMove, sb.onGripTouchMove)
		sb.grip.On(EventTouchEnd, sb.onGripTouchEnd)
	}
	if sb.arrow1 != nil {
		sb.arrow1.On(EventTouchBegin, sb.onArrow1)
	}
	if sb.arrow2 != nil {
		sb.arrow2.On(EventTouchBegin, sb.onArrow2)
	}
	if sb.bar != nil {
		sb.bar.On(EventTouchBegin, sb.onBarTouchBegin)
	}
}
