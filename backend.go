package fgui

// Control is a non-owning handle to a native control created by a Backend.
// The zero value means "no control".
type Control uint32

// InputKind identifies a low-level input notification from the backend.
type InputKind uint8

const (
	InputPress InputKind = iota
	InputRelease
	InputMove
	InputClick
	InputEnter
	InputLeave
	InputWheel
	InputLongPress
	InputDoubleClick
)

// InputEvent carries pointer data for one input notification. Coordinates are
// in root space.
type InputEvent struct {
	X, Y       float32
	Button     MouseButton
	PointerID  int
	Modifiers  KeyModifiers
	WheelDelta float32
	ClickCount int
}

// InputHandler receives input for one control.
type InputHandler func(kind InputKind, ev *InputEvent)

// TextFormat is the text styling pushed to a text control.
type TextFormat struct {
	Font          string
	Size          int
	Color         Color
	Align         AlignType
	VertAlign     VertAlignType
	LineSpacing   int
	LetterSpacing int
	Bold          bool
	Italic        bool
	Underline     bool
	SingleLine    bool
	StrokeColor   Color
	Stroke        float32
	ShadowColor   Color
	ShadowOffset  Vec2
}

// ImageSource describes the pixels a control should display. Atlas is nil
// when the item has no resolved sprite.
type ImageSource struct {
	Item       *PackageItem
	Atlas      *PackageItem
	Region     Rect
	Rotated    bool
	Scale9Grid *Rect
	Tiled      bool
	Flip       FlipType
	Fill       FillMethod
	FillOrigin int
	FillAmount float32
	Clockwise  bool
}

// VirtualListConfig configures a backend-side virtualized list.
type VirtualListConfig struct {
	ItemWidth  float32
	ItemHeight float32
	Horizontal bool
	Columns    int
	LineGap    int
	ColumnGap  int
	CacheSize  int
}

// Backend turns abstract objects into native controls. The core calls it
// explicitly from property setters; every method must accept the zero
// Control and ignore it.
type Backend interface {
	CreateControl(kind ObjectType) Control
	DisposeControl(c Control)

	SetPosition(c Control, x, y float32)
	SetSize(c Control, w, h float32)
	SetVisible(c Control, visible bool)
	SetAlpha(c Control, alpha float32)
	SetRotation(c Control, degrees float32)
	SetScale(c Control, sx, sy float32)
	SetTouchable(c Control, touchable bool)
	SetGrayed(c Control, grayed bool)

	SetFillColor(c Control, color Color)
	SetImage(c Control, src ImageSource)
	SetTint(c Control, color Color)
	SetText(c Control, text string)
	SetTextFormat(c Control, format TextFormat)
	SetClip(c Control, clip bool)

	AddChild(parent, child Control, index int)
	RemoveChild(parent, child Control)
	AddToRoot(c Control)
	RemoveFromRoot(c Control)

	SetInputHandler(c Control, h InputHandler)
	CapturePointer(c Control, pointerID int)
	ReleasePointer(c Control, pointerID int)

	ConfigureVirtualList(c Control, cfg VirtualListConfig)
	SetVirtualItems(c Control, count int, render func(index int, slot Control))
	RefreshVirtualList(c Control)

	ScreenSize() (w, h float32)
}

// PivotSetter is implemented by backends that scale and rotate controls
// around a pivot. The pivot is normalized to the control size; without it
// controls transform around their top-left corner.
type PivotSetter interface {
	SetPivot(c Control, px, py float32)
}

// NopBackend is a Backend that creates no controls. It is the default for
// headless use and tests. ScreenSize reports Width and Height.
type NopBackend struct {
	Width, Height float32
}

var _ Backend = NopBackend{}

func (NopBackend) CreateControl(ObjectType) Control                    { return 0 }
func (NopBackend) DisposeControl(Control)                              {}
func (NopBackend) SetPosition(Control, float32, float32)               {}
func (NopBackend) SetSize(Control, float32, float32)                   {}
func (NopBackend) SetVisible(Control, bool)                            {}
func (NopBackend) SetAlpha(Control, float32)                           {}
func (NopBackend) SetRotation(Control, float32)                        {}
func (NopBackend) SetScale(Control, float32, float32)                  {}
func (NopBackend) SetTouchable(Control, bool)                          {}
func (NopBackend) SetGrayed(Control, bool)                             {}
func (NopBackend) SetFillColor(Control, Color)                         {}
func (NopBackend) SetImage(Control, ImageSource)                       {}
func (NopBackend) SetTint(Control, Color)                              {}
func (NopBackend) SetText(Control, string)                             {}
func (NopBackend) SetTextFormat(Control, TextFormat)                   {}
func (NopBackend) SetClip(Control, bool)                               {}
func (NopBackend) AddChild(Control, Control, int)                      {}
func (NopBackend) RemoveChild(Control, Control)                        {}
func (NopBackend) AddToRoot(Control)                                   {}
func (NopBackend) RemoveFromRoot(Control)                              {}
func (NopBackend) SetInputHandler(Control, InputHandler)               {}
func (NopBackend) CapturePointer(Control, int)                         {}
func (NopBackend) ReleasePointer(Control, int)                         {}
func (NopBackend) ConfigureVirtualList(Control, VirtualListConfig)     {}
func (NopBackend) SetVirtualItems(Control, int, func(int, Control))    {}
func (NopBackend) RefreshVirtualList(Control)                          {}
func (b NopBackend) ScreenSize() (float32, float32)                    { return b.Width, b.Height }
