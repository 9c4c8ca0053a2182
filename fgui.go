package fgui

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default text color.
var ColorBlack = Color{0, 0, 0, 1}

// ColorFromRGBA8 builds a Color from 8-bit channels as stored in packages.
func ColorFromRGBA8(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// RGBA8 returns the color as 8-bit channels, rounding to nearest.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return channel8(c.R), channel8(c.G), channel8(c.B), channel8(c.A)
}

func channel8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Margin is the inner padding of a container, in pixels.
type Margin struct {
	Left, Right, Top, Bottom int
}

// BlendMode selects a compositing operation. The values match the package
// format byte.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendNone                      // opaque copy (skip blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (only darkens)
	BlendScreen                    // screen (only brightens)
	BlendErase                     // destination-out
	BlendMask                      // clip destination to source alpha
	BlendBelow                     // destination-over
	BlendOff                       // blending disabled
	BlendCustom1
	BlendCustom2
	BlendCustom3
)

// ObjectType distinguishes the widget kind of an Object. The values match the
// package format byte.
type ObjectType uint8

const (
	ObjectImage       ObjectType = iota // atlas sprite, optionally nine-sliced or tiled
	ObjectMovieClip                     // frame animation
	ObjectSwf                           // legacy, created as an empty component
	ObjectGraph                         // vector shape
	ObjectLoader                        // displays the item at a URL
	ObjectGroup                         // logical grouping of siblings
	ObjectText                          // single-style text field
	ObjectRichText                      // text with markup
	ObjectInputText                     // editable text field
	ObjectComponent                     // generic container
	ObjectList                          // item list with layout and selection
	ObjectLabel                         // title + icon container
	ObjectButton                        // stateful clickable container
	ObjectComboBox                      // drop-down selector
	ObjectProgressBar                   // value bar
	ObjectSlider                        // draggable value bar
	ObjectScrollBar                     // scroll pane companion
	ObjectTree                          // hierarchical list
	ObjectLoader3D                      // skeletal animation loader, treated as a loader
)

var objectTypeNames = [...]string{
	"image", "movieclip", "swf", "graph", "loader", "group", "text",
	"richtext", "inputtext", "component", "list", "label", "button",
	"combobox", "progressbar", "slider", "scrollbar", "tree", "loader3d",
}

func (t ObjectType) String() string {
	if int(t) < len(objectTypeNames) {
		return objectTypeNames[t]
	}
	return "unknown"
}

// IsContainer reports whether objects of this type own children.
func (t ObjectType) IsContainer() bool {
	switch t {
	case ObjectComponent, ObjectSwf, ObjectList, ObjectLabel, ObjectButton,
		ObjectComboBox, ObjectProgressBar, ObjectSlider, ObjectScrollBar, ObjectTree:
		return true
	}
	return false
}

// PackageItemType identifies the resource kind of a PackageItem. The values
// match the package format byte.
type PackageItemType uint8

const (
	ItemImage PackageItemType = iota
	ItemMovieClip
	ItemSound
	ItemComponent
	ItemAtlas
	ItemFont
	ItemSwf
	ItemMisc
	ItemUnknown
	ItemSpine
	ItemDragonBones
)

var itemTypeNames = [...]string{
	"image", "movieclip", "sound", "component", "atlas", "font", "swf",
	"misc", "unknown", "spine", "dragonbones",
}

func (t PackageItemType) String() string {
	if int(t) < len(itemTypeNames) {
		return itemTypeNames[t]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
