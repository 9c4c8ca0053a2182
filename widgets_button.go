package fgui

// Button page names of the "button" controller.
const (
	ButtonUp               = "up"
	ButtonDown             = "down"
	ButtonOver             = "over"
	ButtonSelectedOver     = "selectedOver"
	ButtonDisabled         = "disabled"
	ButtonSelectedDisabled = "selectedDisabled"
)

// Button down effects.
const (
	downEffectNone = iota
	downEffectDark
	downEffectScale
)

// --- Button ---

// Button is a clickable component whose "button" controller tracks the
// up/down/over/disabled state. Check and radio buttons also keep a selected
// flag, optionally mirrored into a related controller of the parent.
type Button struct {
	owner *Object

	mode               ButtonMode
	selected           bool
	title              string
	selectedTitle      string
	icon               string
	selectedIcon       string
	sound              string
	soundVolume        float32
	changeStateOnClick bool
	linkedPopup        *Object

	relatedController *Controller
	relatedPageID     string
	buttonController  *Controller
	titleObject       *Object
	iconObject        *Object

	downEffect      int
	downEffectValue float32
	downScaled      bool
	down, over      bool

	handles []ListenerHandle
}

func newButton(o *Object) *Button {
	return &Button{owner: o, changeStateOnClick: true, soundVolume: 1, downEffectValue: 0.8}
}

// Mode returns the toggle behavior.
func (b *Button) Mode() ButtonMode { return b.mode }

// SetMode changes the toggle behavior. Switching to ButtonCommon clears the
// selection.
func (b *Button) SetMode(m ButtonMode) {
	if b.mode == m {
		return
	}
	if m == ButtonCommon {
		b.SetSelected(false)
	}
	b.mode = m
}

// Selected reports the selected state of check and radio buttons.
func (b *Button) Selected() bool { return b.selected }

// SetSelected changes the selected state. It is a no-op for common buttons.
func (b *Button) SetSelected(v bool) {
	if b.mode == ButtonCommon || b.selected == v {
		return
	}
	b.selected = v
	o := b.owner
	if o.grayed && b.hasPage(ButtonDisabled) {
		if v {
			b.setState(ButtonSelectedDisabled)
		} else {
			b.setState(ButtonDisabled)
		}
	} else if v {
		if b.over {
			b.setState(ButtonSelectedOver)
		} else {
			b.setState(ButtonDown)
		}
	} else if b.over {
		b.setState(ButtonOver)
	} else {
		b.setState(ButtonUp)
	}

	if b.selectedTitle != "" && b.titleObject != nil {
		if v {
			b.titleObject.SetText(b.selectedTitle)
		} else {
			b.titleObject.SetText(b.title)
		}
	}
	if b.selectedIcon != "" {
		str := b.icon
		if v {
			str = b.selectedIcon
		}
		if b.iconObject != nil {
			b.iconObject.SetIcon(str)
		}
	}

	rc := b.relatedController
	if rc == nil || o.parent == nil || o.parent.building {
		return
	}
	if v {
		rc.SetSelectedPageID(b.relatedPageID)
	} else if b.mode == ButtonCheck && rc.SelectedPageID() == b.relatedPageID {
		if rc.SelectedIndex() != 0 && rc.PageCount() > 0 {
			rc.SetSelectedIndex(0)
		} else if rc.PageCount() > 1 {
			rc.SetSelectedIndex(1)
		}
	}
}

// Title returns the title text.
func (b *Button) Title() string { return b.title }

// SetTitle sets the title text.
func (b *Button) SetTitle(v string) {
	b.title = v
	if b.titleObject != nil {
		if b.selected && b.selectedTitle != "" {
			b.titleObject.SetText(b.selectedTitle)
		} else {
			b.titleObject.SetText(v)
		}
	}
}

// SelectedTitle returns the title shown while selected.
func (b *Button) SelectedTitle() string { return b.selectedTitle }

// SetSelectedTitle sets the title shown while selected.
func (b *Button) SetSelectedTitle(v string) {
	b.selectedTitle = v
	if b.titleObject != nil && b.selected && v != "" {
		b.titleObject.SetText(v)
	}
}

// Icon returns the icon URL.
func (b *Button) Icon() string { return b.icon }

// SetIcon sets the icon URL.
func (b *Button) SetIcon(v string) {
	b.icon = v
	if b.iconObject != nil {
		if b.selected && b.selectedIcon != "" {
			b.iconObject.SetIcon(b.selectedIcon)
		} else {
			b.iconObject.SetIcon(v)
		}
	}
}

// SelectedIcon returns the icon shown while selected.
func (b *Button) SelectedIcon() string { return b.selectedIcon }

// SetSelectedIcon sets the icon shown while selected.
func (b *Button) SetSelectedIcon(v string) {
	b.selectedIcon = v
	if b.iconObject != nil && b.selected && v != "" {
		b.iconObject.SetIcon(v)
	}
}

// TitleObject returns the "title" child, or nil.
func (b *Button) TitleObject() *Object { return b.titleObject }

// IconObject returns the "icon" child, or nil.
func (b *Button) IconObject() *Object { return b.iconObject }

// Sound returns the URL played on click.
func (b *Button) Sound() string { return b.sound }

// SetSound sets the URL played on click.
func (b *Button) SetSound(url string) { b.sound = url }

// ChangeStateOnClick reports whether clicks toggle the selection.
func (b *Button) ChangeStateOnClick() bool { return b.changeStateOnClick }

// SetChangeStateOnClick controls whether clicks toggle the selection.
func (b *Button) SetChangeStateOnClick(v bool) { b.changeStateOnClick = v }

// LinkedPopup returns the popup toggled on click.
func (b *Button) LinkedPopup() *Object { return b.linkedPopup }

// SetLinkedPopup makes clicks toggle popup below the button.
func (b *Button) SetLinkedPopup(popup *Object) { b.linkedPopup = popup }

// RelatedController returns the parent controller mirrored by the
// selection.
func (b *Button) RelatedController() *Controller { return b.relatedController }

// SetRelatedController mirrors the selection into c, selecting pageID when
// the button is selected.
func (b *Button) SetRelatedController(c *Controller, pageID string) {
	b.relatedController = c
	b.relatedPageID = pageID
	if c != nil {
		b.handleControllerChanged(c)
	}
}

// FireClick simulates a click. With downEffect the button briefly shows its
// down state.
func (b *Button) FireClick(downEffect bool) {
	o := b.owner
	if downEffect && b.mode == ButtonCommon {
		b.setState(ButtonOver)
		if tm := o.tweens(); tm != nil {
			tm.DelayedCall(0.1).SetTarget(o).OnComplete(func(*Tweener) { b.setState(ButtonDown) })
			tm.DelayedCall(0.2).SetTarget(o).OnComplete(func(*Tweener) {
				if b.over {
					b.setState(ButtonOver)
				} else {
					b.setState(ButtonUp)
				}
			})
		}
	}
	o.Bubble(EventClick, nil)
}

func (b *Button) hasPage(name string) bool {
	return b.buttonController != nil && b.buttonController.HasPage(name)
}

func (b *Button) setState(page string) {
	if b.buttonController != nil {
		b.buttonController.SetSelectedPage(page)
	}
	o := b.owner
	switch b.downEffect {
	case downEffectDark:
		v := b.downEffectValue
		c := ColorWhite
		if page == ButtonDown || page == ButtonSelectedOver || page == ButtonSelectedDisabled {
			c = Color{v, v, v, 1}
		}
		for _, child := range o.children {
			if child.image != nil || child.loader != nil || child.movieClip != nil {
				if !child.HasGear(GearColor) {
					child.SetColor(c)
				}
			}
		}
	case downEffectScale:
		v := b.downEffectValue
		if v == 0 {
			return
		}
		if page == ButtonDown || page == ButtonSelectedOver || page == ButtonSelectedDisabled {
			if !b.downScaled {
				b.downScaled = true
				o.SetScale(o.scaleX*v, o.scaleY*v)
			}
		} else if b.downScaled {
			b.downScaled = false
			o.SetScale(o.scaleX/v, o.scaleY/v)
		}
	}
}

func (b *Button) handleGrayedChanged() {
	if !b.hasPage(ButtonDisabled) {
		return
	}
	switch {
	case b.owner.grayed && b.selected:
		b.setState(ButtonSelectedDisabled)
	case b.owner.grayed:
		b.setState(ButtonDisabled)
	case b.selected:
		b.setState(ButtonDown)
	default:
		b.setState(ButtonUp)
	}
}

func (b *Button) handleControllerChanged(c *Controller) {
	if c == b.relatedController {
		b.SetSelected(b.relatedPageID == c.SelectedPageID())
	}
}

func (b *Button) onRollOver(*EventContext) {
	if b.buttonController == nil || !b.buttonController.HasPage(ButtonOver) {
		return
	}
	b.over = true
	if b.down || b.owner.grayed && b.hasPage(ButtonDisabled) {
		return
	}
	if b.selected {
		b.setState(ButtonSelectedOver)
	} else {
		b.setState(ButtonOver)
	}
}

func (b *Button) onRollOut(*EventContext) {
	if b.buttonController == nil || !b.buttonController.HasPage(ButtonOver) {
		return
	}
	b.over = false
	if b.down || b.owner.grayed && b.hasPage(ButtonDisabled) {
		return
	}
	if b.selected {
		b.setState(ButtonDown)
	} else {
		b.setState(ButtonUp)
	}
}

func (b *Button) onTouchBegin(ctx *EventContext) {
	if ctx.Input != nil && ctx.Input.Button != MouseButtonLeft {
		return
	}
	b.down = true
	if b.mode == ButtonCommon {
		if b.owner.grayed && b.hasPage(ButtonDisabled) {
			b.setState(ButtonSelectedDisabled)
		} else {
			b.setState(ButtonDown)
		}
	}
	if b.linkedPopup != nil {
		if r := b.owner.root(); r != nil {
			r.keepPopup = b.linkedPopup
		}
	}
}

func (b *Button) onTouchEnd(*EventContext) {
	if !b.down {
		return
	}
	b.down = false
	o := b.owner
	if b.buttonController == nil {
		return
	}
	if b.mode == ButtonCommon {
		switch {
		case o.grayed && b.hasPage(ButtonDisabled):
			b.setState(ButtonDisabled)
		case b.over:
			b.setState(ButtonOver)
		default:
			b.setState(ButtonUp)
		}
	} else if !b.over && b.hasPage(ButtonOver) && !o.grayed {
		if b.selected {
			b.setState(ButtonDown)
		} else {
			b.setState(ButtonUp)
		}
	}
}

func (b *Button) onClick(ctx *EventContext) {
	if ctx.DefaultPrevented() {
		return
	}
	o := b.owner
	if b.sound != "" && o.rt != nil && o.rt.SoundPlayer != nil {
		o.rt.SoundPlayer(b.sound, b.soundVolume*o.rt.Config.buttonVolume())
	}
	if b.linkedPopup != nil {
		if r := o.root(); r != nil {
			r.TogglePopup(b.linkedPopup, o, PopupAuto)
		}
	}
	switch b.mode {
	case ButtonCheck:
		if b.changeStateOnClick {
			b.SetSelected(!b.selected)
			o.Emit(EventChanged, nil)
		}
	case ButtonRadio:
		if b.changeStateOnClick && !b.selected {
			b.SetSelected(true)
			o.Emit(EventChanged, nil)
		}
	default:
		if b.relatedController != nil {
			b.relatedController.SetSelectedPageID(b.relatedPageID)
		}
	}
}

func (b *Button) constructExtension(buf *ByteBuffer) {
	o := b.owner
	b.mode = ButtonMode(buf.ReadByte())
	if s, ok := buf.ReadSOK(); ok {
		b.sound = s
	}
	b.soundVolume = buf.ReadFloat()
	b.downEffect = int(buf.ReadByte())
	b.downEffectValue = buf.ReadFloat()
	if b.downEffect == downEffectScale {
		o.SetPivot(0.5, 0.5, o.pivotAsAnchor)
	}

	b.buttonController = o.ControllerByName("button")
	b.titleObject = o.ChildByName("title")
	b.iconObject = o.ChildByName("icon")
	if b.titleObject != nil {
		b.title = b.titleObject.Text()
	}
	if b.iconObject != nil {
		b.icon = b.iconObject.Icon()
	}
	if b.mode == ButtonCommon {
		b.setState(ButtonUp)
	}

	b.handles = append(b.handles,
		o.On(EventRollOver, b.onRollOver),
		o.On(EventRollOut, b.onRollOut),
		o.On(EventTouchBegin, b.onTouchBegin),
		o.On(EventTouchEnd, b.onTouchEnd),
		o.On(EventClick, b.onClick),
	)
}

func (b *Button) setupAfterAdd(buf *ByteBuffer) {
	o := b.owner
	if s, ok := buf.ReadSOK(); ok {
		b.SetTitle(s)
	}
	if s, ok := buf.ReadSOK(); ok {
		b.SetSelectedTitle(s)
	}
	if s, ok := buf.ReadSOK(); ok {
		b.SetIcon(s)
	}
	if s, ok := buf.ReadSOK(); ok {
		b.SetSelectedIcon(s)
	}
	if buf.ReadBool() {
		c := buf.ReadColor()
		if b.titleObject != nil {
			b.titleObject.SetColor(c)
		}
	}
	if size := int(buf.ReadInt()); size != 0 && b.titleObject != nil {
		b.titleObject.SetFontSize(size)
	}
	if i := int(buf.ReadShort()); i >= 0 && o.parent != nil {
		b.relatedController = o.parent.ControllerAt(i)
	}
	b.relatedPageID = buf.ReadS()
	if s, ok := buf.ReadSOK(); ok {
		b.sound = s
	}
	if buf.ReadBool() {
		b.soundVolume = buf.ReadFloat()
	}
	b.SetSelected(buf.ReadBool())
}

// --- Label ---

// Label is a component with a "title" text child and an "icon" loader
// child.
type Label struct {
	owner       *Object
	title       string
	icon        string
	titleObject *Object
	iconObject  *Object
}

// Title returns the title text.
func (l *Label) Title() string {
	if l.titleObject != nil {
		return l.titleObject.Text()
	}
	return l.title
}

// SetTitle sets the title text.
func (l *Label) SetTitle(v string) {
	l.title = v
	if l.titleObject != nil {
		l.titleObject.SetText(v)
	}
}

// Icon returns the icon URL.
func (l *Label) Icon() string {
	if l.iconObject != nil {
		return l.iconObject.Icon()
	}
	return l.icon
}

// SetIcon sets the icon URL.
func (l *Label) SetIcon(v string) {
	l.icon = v
	if l.iconObject != nil {
		l.iconObject.SetIcon(v)
	}
}

// TitleObject returns the "title" child, or nil.
func (l *Label) TitleObject() *Object { return l.titleObject }

// IconObject returns the "icon" child, or nil.
func (l *Label) IconObject() *Object { return l.iconObject }

func (l *Label) constructExtension(*ByteBuffer) {
	o := l.owner
	l.titleObject = o.ChildByName("title")
	l.iconObject = o.ChildByName("icon")
	if l.titleObject != nil {
		l.title = l.titleObject.Text()
	}
	if l.iconObject != nil {
		l.icon = l.iconObject.Icon()
	}
}

func (l *Label) setupAfterAdd(buf *ByteBuffer) {
	if s, ok := buf.ReadSOK(); ok {
		l.SetTitle(s)
	}
	if s, ok := buf.ReadSOK(); ok {
		l.SetIcon(s)
	}
	if buf.ReadBool() {
		c := buf.ReadColor()
		if l.titleObject != nil {
			l.titleObject.SetColor(c)
		}
	}
	if size := int(buf.ReadInt()); size != 0 && l.titleObject != nil {
		l.titleObject.SetFontSize(size)
	}
	if !buf.ReadBool() {
		return
	}
	var tf *TextField
	if l.titleObject != nil {
		tf = l.titleObject.text
	}
	prompt, _ := buf.ReadSOK()
	restrict, _ := buf.ReadSOK()
	maxLength := int(buf.ReadInt())
	keyboard := int(buf.ReadInt())
	password := buf.ReadBool()
	if tf == nil {
		return
	}
	tf.promptText = prompt
	tf.restrict = restrict
	tf.maxLength = maxLength
	tf.keyboardType = keyboard
	tf.password = password
	tf.render()
}
