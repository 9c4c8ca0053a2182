package fgui

// GearKind identifies a gear slot.
type GearKind int

const (
	GearDisplay GearKind = iota
	GearXY
	GearSize
	GearLook
	GearColor
	GearAnimation
	GearText
	GearIcon
	GearDisplay2
	GearFontSize
	gearCount
)

var gearKindNames = [...]string{
	"display", "xy", "size", "look", "color", "animation", "text", "icon",
	"display2", "fontsize",
}

func (k GearKind) String() string {
	if k >= 0 && int(k) < len(gearKindNames) {
		return gearKindNames[k]
	}
	return "unknown"
}

// GearValue is the per-page value stored by a gear. Which fields are used
// depends on the gear kind.
type GearValue struct {
	X, Y               float32 // XY: position; Size: width and height
	PercentX, PercentY float32 // XY: position relative to the parent size
	ScaleX, ScaleY     float32 // Size
	Alpha, Rotation    float32 // Look
	Grayed, Touchable  bool    // Look
	Color              Color   // Color
	Playing            bool    // Animation
	Frame              int     // Animation
	Text               string  // Text, Icon
	FontSize           int     // FontSize
}

// GearTweenConfig makes a gear animate to the page value instead of jumping.
type GearTweenConfig struct {
	Tween    bool
	Ease     EaseType
	Duration float32
	Delay    float32

	tweener      *Tweener
	displayToken uint32
}

func newGearTweenConfig() *GearTweenConfig {
	return &GearTweenConfig{Tween: true, Ease: EaseQuadOut, Duration: 0.3}
}

// Gear binds one property of an object to the pages of a controller.
type Gear struct {
	Kind GearKind

	owner      *Object
	controller *Controller
	values     map[string]GearValue
	def        GearValue

	// TweenConfig is nil when the gear applies values immediately.
	TweenConfig *GearTweenConfig

	// XY
	positionsInPercent bool

	// Display, Display2
	pages     []string
	visible   int
	lockToken uint32
	condition int
}

func newGear(owner *Object, kind GearKind) *Gear {
	return &Gear{Kind: kind, owner: owner, lockToken: 1}
}

// Owner returns the object the gear drives.
func (g *Gear) Owner() *Object { return g.owner }

// Controller returns the bound controller, or nil.
func (g *Gear) Controller() *Controller { return g.controller }

// SetController binds the gear to c, snapshotting the owner's current value
// as the default, and applies the selected page.
func (g *Gear) SetController(c *Controller) {
	if c == g.controller {
		return
	}
	g.controller = c
	if c == nil {
		g.owner.checkGearDisplay()
		return
	}
	g.init()
	if !g.owner.building {
		g.Apply()
		g.owner.checkGearDisplay()
	}
}

// Pages returns the page ids of a display gear.
func (g *Gear) Pages() []string { return g.pages }

// SetPages sets the page ids a display gear shows on.
func (g *Gear) SetPages(pages []string) { g.pages = pages }

// Condition returns the Display2 combination: 0 is AND, otherwise OR.
func (g *Gear) Condition() int { return g.condition }

// SetCondition sets the Display2 combination.
func (g *Gear) SetCondition(v int) { g.condition = v }

// PositionsInPercent reports whether an XY gear stores parent-relative
// positions.
func (g *Gear) PositionsInPercent() bool { return g.positionsInPercent }

// SetPositionsInPercent toggles parent-relative positions for an XY gear.
func (g *Gear) SetPositionsInPercent(v bool) { g.positionsInPercent = v }

// Default returns the value used for pages without a stored value.
func (g *Gear) Default() GearValue { return g.def }

// Value returns the value stored for pageID.
func (g *Gear) Value(pageID string) (GearValue, bool) {
	v, ok := g.values[pageID]
	return v, ok
}

// SetValue stores v for pageID.
func (g *Gear) SetValue(pageID string, v GearValue) {
	if g.values == nil {
		g.values = make(map[string]GearValue)
	}
	g.values[pageID] = v
}

// setup reads a gear record. The controller index refers to the owner's
// parent.
func (g *Gear) setup(buf *ByteBuffer) {
	if p := g.owner.parent; p != nil {
		g.controller = p.ControllerAt(int(buf.ReadShort()))
	} else {
		buf.ReadShort()
	}
	g.init()

	cnt := int(buf.ReadShort())
	switch g.Kind {
	case GearDisplay, GearDisplay2:
		g.pages = buf.ReadSArray(cnt)
	default:
		for i := 0; i < cnt; i++ {
			page, ok := buf.ReadSOK()
			if !ok {
				continue
			}
			g.addStatus(page, true, buf)
		}
		if buf.ReadBool() {
			g.addStatus("", false, buf)
		}
	}

	if buf.ReadBool() {
		tc := newGearTweenConfig()
		tc.Ease = EaseType(buf.ReadByte())
		tc.Duration = buf.ReadFloat()
		tc.Delay = buf.ReadFloat()
		g.TweenConfig = tc
	}

	if buf.Version >= 2 {
		switch g.Kind {
		case GearXY:
			if buf.ReadBool() {
				g.positionsInPercent = true
				for i := 0; i < cnt; i++ {
					page, ok := buf.ReadSOK()
					if !ok {
						continue
					}
					g.addExtStatus(page, true, buf)
				}
				if buf.ReadBool() {
					g.addExtStatus("", false, buf)
				}
			}
		case GearDisplay2:
			g.condition = int(buf.ReadByte())
		}
	}
}

func (g *Gear) addStatus(pageID string, hasPage bool, buf *ByteBuffer) {
	var v GearValue
	switch g.Kind {
	case GearXY:
		v.X = float32(buf.ReadInt())
		v.Y = float32(buf.ReadInt())
	case GearSize:
		v.X = float32(buf.ReadInt())
		v.Y = float32(buf.ReadInt())
		v.ScaleX = buf.ReadFloat()
		v.ScaleY = buf.ReadFloat()
	case GearLook:
		v.Alpha = buf.ReadFloat()
		v.Rotation = buf.ReadFloat()
		v.Grayed = buf.ReadBool()
		v.Touchable = buf.ReadBool()
	case GearColor:
		v.Color = buf.ReadColor()
	case GearAnimation:
		v.Playing = buf.ReadBool()
		v.Frame = int(buf.ReadInt())
	case GearText, GearIcon:
		v.Text = buf.ReadS()
	case GearFontSize:
		v.FontSize = int(buf.ReadInt())
	}
	if hasPage {
		g.SetValue(pageID, v)
	} else {
		g.def = v
	}
}

func (g *Gear) addExtStatus(pageID string, hasPage bool, buf *ByteBuffer) {
	px, py := buf.ReadFloat(), buf.ReadFloat()
	if !hasPage {
		g.def.PercentX, g.def.PercentY = px, py
		return
	}
	v := g.values[pageID]
	v.PercentX, v.PercentY = px, py
	g.SetValue(pageID, v)
}

// init snapshots the owner's live value as the default and clears stored
// pages.
func (g *Gear) init() {
	clear(g.values)
	o := g.owner
	switch g.Kind {
	case GearDisplay, GearDisplay2:
		g.pages = nil
	default:
		g.def = g.capture()
		if g.Kind == GearXY && o.parent != nil && o.parent.width > 0 && o.parent.height > 0 {
			g.def.PercentX = o.x / o.parent.width
			g.def.PercentY = o.y / o.parent.height
		}
	}
}

// capture reads the owner's live value for this gear's property.
func (g *Gear) capture() GearValue {
	o := g.owner
	var v GearValue
	switch g.Kind {
	case GearXY:
		v.X, v.Y = o.x, o.y
	case GearSize:
		v.X, v.Y = o.width, o.height
		v.ScaleX, v.ScaleY = o.scaleX, o.scaleY
	case GearLook:
		v.Alpha, v.Rotation = o.alpha, o.rotation
		v.Grayed, v.Touchable = o.grayed, o.touchable
	case GearColor:
		v.Color = o.Color()
	case GearAnimation:
		v.Playing, v.Frame = o.Playing(), o.Frame()
	case GearText:
		v.Text = o.Text()
	case GearIcon:
		v.Text = o.Icon()
	case GearFontSize:
		v.FontSize = o.FontSize()
	}
	return v
}

// current returns the stored value for the selected page, or the default.
func (g *Gear) current() GearValue {
	if g.controller != nil {
		if v, ok := g.values[g.controller.SelectedPageID()]; ok {
			return v
		}
	}
	return g.def
}

// canTween reports whether Apply should animate rather than jump.
func (g *Gear) canTween() bool {
	tc := g.TweenConfig
	if tc == nil || !tc.Tween {
		return false
	}
	o := g.owner
	if o.building || o.tweens() == nil || !o.OnStage() {
		return false
	}
	return o.rt.Config.GearTweens
}

// Apply pushes the selected page's value onto the owner.
func (g *Gear) Apply() {
	o := g.owner
	switch g.Kind {
	case GearDisplay:
		g.lockToken++
		if g.lockToken == 0 {
			g.lockToken = 1
		}
		if g.pageMatches() {
			g.visible = 1
		} else {
			g.visible = 0
		}
	case GearDisplay2:
		if g.pageMatches() {
			g.visible = 1
		} else {
			g.visible = 0
		}
	case GearXY:
		v := g.current()
		x, y := v.X, v.Y
		if g.positionsInPercent && o.parent != nil {
			x = v.PercentX * o.parent.width
			y = v.PercentY * o.parent.height
		}
		if g.canTween() {
			g.tweenTo(TweenValue{X: o.x, Y: o.y}, TweenValue{X: x, Y: y}, 2, func(t *Tweener) {
				o.SetXY(t.value.X, t.value.Y)
			})
			return
		}
		g.killTween()
		o.SetXY(x, y)
	case GearSize:
		v := g.current()
		if g.canTween() {
			g.tweenTo(TweenValue{X: o.width, Y: o.height, Z: o.scaleX, W: o.scaleY},
				TweenValue{X: v.X, Y: v.Y, Z: v.ScaleX, W: v.ScaleY}, 4, func(t *Tweener) {
					o.SetSize(t.value.X, t.value.Y, o.checkGearController(GearXY, g.controller))
					o.SetScale(t.value.Z, t.value.W)
				})
			return
		}
		g.killTween()
		o.SetSize(v.X, v.Y, o.checkGearController(GearXY, g.controller))
		o.SetScale(v.ScaleX, v.ScaleY)
	case GearLook:
		v := g.current()
		o.SetGrayed(v.Grayed)
		o.SetTouchable(v.Touchable)
		if g.canTween() {
			g.tweenTo(TweenValue{X: o.alpha, Y: o.rotation}, TweenValue{X: v.Alpha, Y: v.Rotation}, 2, func(t *Tweener) {
				o.SetAlpha(t.value.X)
				o.SetRotation(t.value.Y)
			})
			return
		}
		g.killTween()
		o.SetAlpha(v.Alpha)
		o.SetRotation(v.Rotation)
	case GearColor:
		v := g.current()
		if g.canTween() {
			g.tweenTo(colorValue(o.Color()), colorValue(v.Color), 4, func(t *Tweener) {
				o.SetColor(t.value.Color())
			})
			return
		}
		g.killTween()
		o.SetColor(v.Color)
	case GearAnimation:
		v := g.current()
		o.SetPlaying(v.Playing)
		o.SetFrame(v.Frame)
	case GearText:
		o.SetText(g.current().Text)
	case GearIcon:
		o.SetIcon(g.current().Text)
	case GearFontSize:
		o.SetFontSize(g.current().FontSize)
	}
}

// tweenTo animates from start to end. The owner keeps a display lock while
// the tween runs so a display gear cannot hide it mid-animation.
func (g *Gear) tweenTo(start, end TweenValue, size int, apply func(*Tweener)) {
	tc := g.TweenConfig
	if tc.tweener != nil {
		if tc.tweener.endValue == end {
			return
		}
		tc.tweener.Kill(true)
		tc.tweener = nil
	}
	if start == end {
		return
	}
	o := g.owner
	if tc.displayToken == 0 {
		tc.displayToken = o.addDisplayLock()
	}
	tm := o.tweens()
	var t *Tweener
	if size == 2 {
		t = tm.To2(start.Vec2(), end.Vec2(), tc.Duration)
	} else {
		t = tm.To4(start, end, tc.Duration)
	}
	t.SetDelay(tc.Delay).SetEase(tc.Ease).SetTarget(g).
		OnUpdate(func(t *Tweener) {
			o.gearLocked = true
			apply(t)
			o.gearLocked = false
		}).
		OnComplete(func(*Tweener) {
			tc.tweener = nil
			if tc.displayToken != 0 {
				o.releaseDisplayLock(tc.displayToken)
				tc.displayToken = 0
			}
			o.Emit(EventGearStop, g)
		})
	tc.tweener = t
}

func (g *Gear) killTween() {
	tc := g.TweenConfig
	if tc == nil || tc.tweener == nil {
		return
	}
	tc.tweener.Kill(true)
	tc.tweener = nil
}

// UpdateState snapshots the owner's live value into the selected page.
func (g *Gear) UpdateState() {
	if g.controller == nil {
		return
	}
	switch g.Kind {
	case GearDisplay, GearDisplay2:
		return
	}
	if g.TweenConfig != nil && g.TweenConfig.tweener != nil {
		return
	}
	v := g.capture()
	if g.Kind == GearXY {
		o := g.owner
		old := g.values[g.controller.SelectedPageID()]
		v.PercentX, v.PercentY = old.PercentX, old.PercentY
		if g.positionsInPercent && o.parent != nil && o.parent.width > 0 && o.parent.height > 0 {
			v.PercentX = o.x / o.parent.width
			v.PercentY = o.y / o.parent.height
		}
	}
	g.SetValue(g.controller.SelectedPageID(), v)
}

// updateFromRelations shifts stored positions or sizes after relations moved
// or resized the owner.
func (g *Gear) updateFromRelations(dx, dy float32) {
	if g.controller == nil || g.values == nil {
		return
	}
	switch g.Kind {
	case GearXY:
		if g.positionsInPercent {
			return
		}
	case GearSize:
	default:
		return
	}
	for k, v := range g.values {
		v.X += dx
		v.Y += dy
		g.values[k] = v
	}
	g.def.X += dx
	g.def.Y += dy
	g.UpdateState()
}

func (g *Gear) dispose() {
	if tc := g.TweenConfig; tc != nil && tc.tweener != nil {
		tc.tweener.Kill(false)
		tc.tweener = nil
	}
	g.controller = nil
	g.values = nil
}
