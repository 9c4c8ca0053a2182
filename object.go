package fgui

import (
	"fmt"
	"math"
	"strconv"
)

// --- ID counter ---

// objectIDCounter is a plain counter (no atomic, fgui is single-threaded).
var objectIDCounter uint64

func nextObjectID() string {
	objectIDCounter++
	return "_n" + strconv.FormatUint(objectIDCounter, 10)
}

// --- Object ---

// Object is the widget tree element. A single flat struct is used for every
// widget kind; kind-specific state hangs off typed payload pointers reached
// through the As* accessors.
type Object struct {
	// Identity
	id       string
	Name     string
	Type     ObjectType
	Data     string
	UserData any

	rt      *Runtime
	parent  *Object
	item    *PackageItem
	control Control
	events  eventRegistry

	// Geometry
	x, y, z                 float32
	rawWidth, rawHeight     float32
	width, height           float32
	sourceWidth             float32
	sourceHeight            float32
	initWidth, initHeight   float32
	minWidth, maxWidth      float32
	minHeight, maxHeight    float32
	pivotX, pivotY          float32
	pivotAsAnchor           bool
	scaleX, scaleY          float32
	skewX, skewY            float32
	rotation                float32
	alpha                   float32

	// Flags
	visible         bool
	internalVisible bool
	touchable       bool
	grayed          bool
	draggable       bool
	sortingOrder    int
	blendMode       BlendMode
	colorFilter     ColorFilter
	tooltips        string
	group           *Object
	attached        bool
	decor           uint8

	gears     [gearCount]*Gear
	relations *Relations

	// Container fields
	children          []*Object
	sortingChildCount int
	controllers       []*Controller
	transitions       []*Transition
	scrollPane        *ScrollPane
	container         Control
	margin            Margin
	opaque            bool
	clipContent       bool
	boundsChanged     bool
	alignOffset       Vec2

	// Kind payloads
	image     *Image
	movieClip *MovieClip
	graph     *Graph
	loader    *Loader
	groupData *Group
	text      *TextField
	button    *Button
	label     *Label
	progress  *ProgressBar
	slider    *Slider
	scrollBar *ScrollBar
	comboBox  *ComboBox
	list      *List
	window    *Window

	// Build state
	building           bool
	gearLocked         bool
	handlingController bool
	disposed           bool
}

// Decor kinds. Decor objects belong to a scroll pane: they have a parent for
// coordinate mapping but are not in its child list.
const (
	decorContent uint8 = iota + 1 // header and footer, in content space
	decorOverlay                  // scroll bars, above the content
)

// inTree reports whether o is a regular child of its parent.
func (o *Object) inTree() bool { return o.parent != nil && o.decor == 0 }

func newObject(rt *Runtime, t ObjectType) *Object {
	o := &Object{
		id:              nextObjectID(),
		Type:            t,
		rt:              rt,
		scaleX:          1,
		scaleY:          1,
		alpha:           1,
		visible:         true,
		internalVisible: true,
		touchable:       true,
	}
	o.relations = newRelations(o)
	o.control = o.backend().CreateControl(t)
	o.backend().SetInputHandler(o.control, o.handleInput)
	o.attachPayload()
	if globalDebug && rt != nil {
		rt.liveObjects++
	}
	return o
}

// attachPayload allocates the kind payload for o.Type.
func (o *Object) attachPayload() {
	switch o.Type {
	case ObjectImage:
		o.image = newImage(o)
	case ObjectMovieClip:
		o.movieClip = newMovieClip(o)
	case ObjectGraph:
		o.graph = newGraph(o)
	case ObjectLoader, ObjectLoader3D:
		o.loader = newLoader(o)
	case ObjectGroup:
		o.groupData = newGroup(o)
		o.touchable = false
	case ObjectText, ObjectRichText, ObjectInputText:
		o.text = newTextField(o)
	case ObjectButton:
		o.button = newButton(o)
	case ObjectLabel:
		o.label = &Label{owner: o}
	case ObjectProgressBar:
		o.progress = newProgressBar(o)
	case ObjectSlider:
		o.slider = newSlider(o)
	case ObjectScrollBar:
		o.scrollBar = &ScrollBar{owner: o, scrollPerc: 0}
	case ObjectComboBox:
		o.comboBox = newComboBox(o)
	case ObjectList, ObjectTree:
		o.list = newList(o)
	}
}

func (o *Object) backend() Backend {
	if o.rt == nil || o.rt.backend == nil {
		return NopBackend{}
	}
	return o.rt.backend
}

func (o *Object) tweens() *TweenManager {
	if o.rt == nil {
		return nil
	}
	return o.rt.Tweens
}

// --- Accessors ---

// ID returns the process-unique id of the object ("_n" + counter).
func (o *Object) ID() string { return o.id }

// Runtime returns the runtime that created the object.
func (o *Object) Runtime() *Runtime { return o.rt }

// Parent returns the owning container, or nil.
func (o *Object) Parent() *Object { return o.parent }

// PackageItem returns the item the object was created from, or nil.
func (o *Object) PackageItem() *PackageItem { return o.item }

// ResourceURL returns the id-form URL of the object's package item.
func (o *Object) ResourceURL() string {
	if o.item == nil {
		return ""
	}
	return o.item.URL()
}

// Control returns the backend control handle.
func (o *Object) Control() Control { return o.control }

// Disposed reports whether Dispose has been called.
func (o *Object) Disposed() bool { return o.disposed }

// Building reports whether the object is still being constructed from
// package data.
func (o *Object) Building() bool { return o.building }

func (o *Object) X() float32        { return o.x }
func (o *Object) Y() float32        { return o.y }
func (o *Object) Z() float32        { return o.z }
func (o *Object) Width() float32    { return o.width }
func (o *Object) Height() float32   { return o.height }
func (o *Object) RawWidth() float32 { return o.rawWidth }
func (o *Object) RawHeight() float32 { return o.rawHeight }
func (o *Object) ScaleX() float32   { return o.scaleX }
func (o *Object) ScaleY() float32   { return o.scaleY }
func (o *Object) SkewX() float32    { return o.skewX }
func (o *Object) SkewY() float32    { return o.skewY }
func (o *Object) PivotX() float32   { return o.pivotX }
func (o *Object) PivotY() float32   { return o.pivotY }
func (o *Object) Rotation() float32 { return o.rotation }
func (o *Object) Alpha() float32    { return o.alpha }
func (o *Object) Visible() bool     { return o.visible }
func (o *Object) Touchable() bool   { return o.touchable }
func (o *Object) Grayed() bool      { return o.grayed }
func (o *Object) Draggable() bool   { return o.draggable }
func (o *Object) SortingOrder() int { return o.sortingOrder }
func (o *Object) BlendMode() BlendMode { return o.blendMode }
func (o *Object) Tooltips() string  { return o.tooltips }
func (o *Object) Group() *Object    { return o.group }

// SourceWidth and SourceHeight return the size authored in the package.
func (o *Object) SourceWidth() float32  { return o.sourceWidth }
func (o *Object) SourceHeight() float32 { return o.sourceHeight }

// InitWidth and InitHeight return the size the object had when it was
// placed in its parent.
func (o *Object) InitWidth() float32  { return o.initWidth }
func (o *Object) InitHeight() float32 { return o.initHeight }

// PivotAsAnchor reports whether the pivot is also the positioning anchor.
func (o *Object) PivotAsAnchor() bool { return o.pivotAsAnchor }

// MinSize returns the size clamps. A zero max means unbounded.
func (o *Object) MinSize() (minW, maxW, minH, maxH float32) {
	return o.minWidth, o.maxWidth, o.minHeight, o.maxHeight
}

// Relations returns the object's relation set.
func (o *Object) Relations() *Relations { return o.relations }

// SetTooltips sets the tooltip text shown by Root.ShowTooltips.
func (o *Object) SetTooltips(v string) { o.tooltips = v }

// SetDraggable enables drag on touch.
func (o *Object) SetDraggable(v bool) { o.draggable = v }

// SetBlendMode sets the compositing mode.
func (o *Object) SetBlendMode(m BlendMode) {
	if o.blendMode == m {
		return
	}
	o.blendMode = m
	if s, ok := o.backend().(BlendModeSetter); ok {
		s.SetBlendMode(o.control, m)
	}
}

// --- Geometry ---

// SetPosition moves the object. z is stored for the backend only.
func (o *Object) SetPosition(x, y, z float32) {
	o.z = z
	o.SetXY(x, y)
}

// SetXY moves the object, updating the XY gear, parent and group bounds, and
// firing EventPositionChanged.
func (o *Object) SetXY(x, y float32) {
	if o.x == x && o.y == y {
		return
	}
	dx, dy := x-o.x, y-o.y
	o.x, o.y = x, y
	o.handlePositionChanged()
	if o.groupData != nil {
		o.groupData.moveChildren(dx, dy)
	}
	o.updateGear(GearXY)
	if o.inTree() {
		o.parent.setBoundsChangedFlag()
		if o.group != nil {
			o.group.groupData.setBoundsChangedFlag(true)
		}
		o.Emit(EventPositionChanged, nil)
	}
}

// SetX moves the object horizontally.
func (o *Object) SetX(x float32) { o.SetXY(x, o.y) }

// SetY moves the object vertically.
func (o *Object) SetY(y float32) { o.SetXY(o.x, y) }

// SetSize resizes the object. The size is clamped into [min, max] (max
// applies when positive). Unless ignorePivot is set or the pivot is an anchor,
// the object is moved so that its pivot stays fixed.
func (o *Object) SetSize(w, h float32, ignorePivot bool) {
	if o.rawWidth == w && o.rawHeight == h {
		return
	}
	o.rawWidth, o.rawHeight = w, h
	if w < o.minWidth {
		w = o.minWidth
	} else if o.maxWidth > 0 && w > o.maxWidth {
		w = o.maxWidth
	}
	if h < o.minHeight {
		h = o.minHeight
	} else if o.maxHeight > 0 && h > o.maxHeight {
		h = o.maxHeight
	}
	dw, dh := w-o.width, h-o.height
	o.width, o.height = w, h

	o.handleSizeChanged()
	if (o.pivotX != 0 || o.pivotY != 0) && !o.pivotAsAnchor && !ignorePivot {
		o.SetXY(o.x-o.pivotX*dw, o.y-o.pivotY*dh)
	} else if o.pivotAsAnchor {
		o.handlePositionChanged()
	}
	if o.groupData != nil {
		o.groupData.resizeChildren(dw, dh)
	}
	o.updateGear(GearSize)
	if o.inTree() {
		o.relations.onOwnerSizeChanged(dw, dh, o.pivotAsAnchor || !ignorePivot)
		o.parent.setBoundsChangedFlag()
		if o.group != nil {
			o.group.groupData.setBoundsChangedFlag(true)
		}
	}
	o.Emit(EventSizeChanged, nil)
}

// SetWidth resizes horizontally, keeping the pivot fixed.
func (o *Object) SetWidth(w float32) { o.SetSize(w, o.rawHeight, false) }

// SetHeight resizes vertically, keeping the pivot fixed.
func (o *Object) SetHeight(h float32) { o.SetSize(o.rawWidth, h, false) }

// SetMinSize sets the size clamps and re-applies the raw size.
func (o *Object) SetMinSize(minW, maxW, minH, maxH float32) {
	o.minWidth, o.maxWidth, o.minHeight, o.maxHeight = minW, maxW, minH, maxH
	w, h := o.rawWidth, o.rawHeight
	o.rawWidth, o.rawHeight = -1, -1
	o.SetSize(w, h, true)
}

// SetScale sets the scale factors.
func (o *Object) SetScale(sx, sy float32) {
	if o.scaleX == sx && o.scaleY == sy {
		return
	}
	o.scaleX, o.scaleY = sx, sy
	o.backend().SetScale(o.control, sx, sy)
	o.updateGear(GearSize)
}

// SetSkew sets the skew angles in degrees. Skew is stored for the backend;
// geometry queries ignore it.
func (o *Object) SetSkew(sx, sy float32) {
	o.skewX, o.skewY = sx, sy
}

// SetPivot sets the normalized pivot. When asAnchor is true the pivot is
// also the point placed at (X, Y).
func (o *Object) SetPivot(px, py float32, asAnchor bool) {
	if o.pivotX == px && o.pivotY == py && o.pivotAsAnchor == asAnchor {
		return
	}
	o.pivotX, o.pivotY, o.pivotAsAnchor = px, py, asAnchor
	if ps, ok := o.backend().(PivotSetter); ok {
		ps.SetPivot(o.control, px, py)
	}
	o.handlePositionChanged()
}

// SetRotation sets the rotation in degrees.
func (o *Object) SetRotation(deg float32) {
	if o.rotation == deg {
		return
	}
	o.rotation = deg
	o.backend().SetRotation(o.control, deg)
	o.updateGear(GearLook)
}

// SetAlpha sets the opacity.
func (o *Object) SetAlpha(a float32) {
	if o.alpha == a {
		return
	}
	o.alpha = a
	o.backend().SetAlpha(o.control, a)
	if o.groupData != nil {
		o.groupData.propagateAlpha()
	}
	o.updateGear(GearLook)
}

// SetTouchable enables or disables input for the object.
func (o *Object) SetTouchable(v bool) {
	if o.touchable == v {
		return
	}
	o.touchable = v
	o.backend().SetTouchable(o.control, v)
	o.updateGear(GearLook)
}

// SetGrayed sets the grayed (disabled-look) flag.
func (o *Object) SetGrayed(v bool) {
	if o.grayed == v {
		return
	}
	o.grayed = v
	o.backend().SetGrayed(o.control, v)
	switch {
	case o.button != nil:
		o.button.handleGrayedChanged()
	case o.comboBox != nil:
		o.comboBox.handleGrayedChanged()
	}
	o.updateGear(GearLook)
}

// Enabled reports whether the object is neither grayed nor untouchable.
func (o *Object) Enabled() bool { return !o.grayed && o.touchable }

// SetEnabled sets grayed and touchable together.
func (o *Object) SetEnabled(v bool) {
	o.SetGrayed(!v)
	o.SetTouchable(v)
}

// SetVisible sets the explicit visibility flag.
func (o *Object) SetVisible(v bool) {
	if o.visible == v {
		return
	}
	o.visible = v
	o.handleVisibleChanged()
	if o.inTree() {
		o.parent.setBoundsChangedFlag()
	}
	if o.group != nil && o.group.groupData.excludeInvisibles {
		o.group.groupData.setBoundsChangedFlag(false)
	}
}

// InternalVisible reports the display-gear driven visibility.
func (o *Object) InternalVisible() bool { return o.internalVisible }

// FinalVisible is the conjunction of the explicit visibility, the internal
// visibility and the group's final visibility.
func (o *Object) FinalVisible() bool {
	return o.visible && o.internalVisible && (o.group == nil || o.group.FinalVisible())
}

// OnStage reports whether the object is in the runtime root's tree.
func (o *Object) OnStage() bool {
	if o.rt == nil || o.rt.root == nil {
		return false
	}
	p := o
	for p.parent != nil {
		p = p.parent
	}
	return p == o.rt.root.obj
}

// SetSortingOrder sets the sorting order. Negative values clamp to 0.
func (o *Object) SetSortingOrder(v int) {
	if v < 0 {
		v = 0
	}
	if o.sortingOrder == v {
		return
	}
	old := o.sortingOrder
	o.sortingOrder = v
	if o.parent != nil {
		o.parent.childSortingOrderChanged(o, old, v)
	}
}

// SetGroup assigns the owning group. The group must be a sibling.
func (o *Object) SetGroup(g *Object) {
	if g != nil && g.Type != ObjectGroup {
		panic("fgui: group must be an ObjectGroup")
	}
	if o.group == g {
		return
	}
	if o.group != nil {
		o.group.groupData.setBoundsChangedFlag(false)
	}
	o.group = g
	o.handleVisibleChanged()
	if g != nil {
		g.groupData.setBoundsChangedFlag(false)
	}
}

// Center places the object in the middle of its parent, or of the root when
// it has no parent. With restraint, relations keep it centered.
func (o *Object) Center(restraint bool) {
	var r *Object
	if o.parent != nil {
		r = o.parent
	} else if o.rt != nil && o.rt.root != nil {
		r = o.rt.root.obj
	}
	if r == nil {
		return
	}
	o.SetXY(float32(int((r.width-o.width)/2)), float32(int((r.height-o.height)/2)))
	if restraint {
		o.relations.Add(r, RelationCenterCenter, false)
		o.relations.Add(r, RelationMiddleMiddle, false)
	}
}

// MakeFullScreen sizes the object to the root.
func (o *Object) MakeFullScreen() {
	if o.rt == nil || o.rt.root == nil {
		return
	}
	r := o.rt.root.obj
	o.SetSize(r.width, r.height, false)
}

// displayOrigin returns the top-left corner in parent content space.
func (o *Object) displayOrigin() (float32, float32) {
	if o.pivotAsAnchor {
		return o.x - o.pivotX*o.width, o.y - o.pivotY*o.height
	}
	return o.x, o.y
}

// localToParent maps a local point into the parent's content space. Rotation
// and skew are ignored.
func (o *Object) localToParent(p Vec2) Vec2 {
	ox, oy := o.displayOrigin()
	px, py := o.pivotX*o.width, o.pivotY*o.height
	return Vec2{ox + px + (p.X-px)*o.scaleX, oy + py + (p.Y-py)*o.scaleY}
}

func (o *Object) parentToLocal(p Vec2) Vec2 {
	ox, oy := o.displayOrigin()
	px, py := o.pivotX*o.width, o.pivotY*o.height
	sx, sy := o.scaleX, o.scaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return Vec2{(p.X-ox-px)/sx + px, (p.Y-oy-py)/sy + py}
}

// contentOffset is where a container's children origin sits in its own
// local space.
func (o *Object) contentOffset() Vec2 {
	off := Vec2{float32(o.margin.Left) + o.alignOffset.X, float32(o.margin.Top) + o.alignOffset.Y}
	if o.scrollPane != nil {
		off.X -= o.scrollPane.xPos
		off.Y -= o.scrollPane.yPos
	}
	return off
}

// LocalToGlobal converts a point in local space to root space.
func (o *Object) LocalToGlobal(p Vec2) Vec2 {
	for c := o; c != nil; c = c.parent {
		p = c.localToParent(p)
		if c.parent != nil && c.decor != decorOverlay {
			off := c.parent.contentOffset()
			p.X += off.X
			p.Y += off.Y
		}
	}
	return p
}

// GlobalToLocal converts a point in root space to local space.
func (o *Object) GlobalToLocal(p Vec2) Vec2 {
	var chain []*Object
	for c := o; c != nil; c = c.parent {
		chain = append(chain, c)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		if c.parent != nil && c.decor != decorOverlay {
			off := c.parent.contentOffset()
			p.X -= off.X
			p.Y -= off.Y
		}
		p = c.parentToLocal(p)
	}
	return p
}

// LocalToRoot is LocalToGlobal divided by the content scale factor.
func (o *Object) LocalToRoot(p Vec2) Vec2 {
	p = o.LocalToGlobal(p)
	if r := o.root(); r != nil && r.contentScale > 0 {
		p.X /= r.contentScale
		p.Y /= r.contentScale
	}
	return p
}

// HitTest reports whether the root-space point lies inside the object.
func (o *Object) HitTest(global Vec2) bool {
	l := o.GlobalToLocal(global)
	return l.X >= 0 && l.Y >= 0 && l.X < o.width && l.Y < o.height
}

// --- Capability dispatch ---

// Text returns the text of text fields, labels, buttons and combo boxes.
func (o *Object) Text() string {
	switch {
	case o.text != nil:
		return o.text.text
	case o.button != nil:
		return o.button.title
	case o.label != nil:
		return o.label.Title()
	case o.comboBox != nil:
		return o.comboBox.Title()
	case o.progress != nil:
		return o.progress.titleText()
	}
	return ""
}

// SetText sets the text of text fields, labels, buttons and combo boxes.
func (o *Object) SetText(v string) {
	switch {
	case o.text != nil:
		o.text.SetText(v)
	case o.button != nil:
		o.button.SetTitle(v)
	case o.label != nil:
		o.label.SetTitle(v)
	case o.comboBox != nil:
		o.comboBox.SetTitle(v)
	default:
		return
	}
	o.updateGear(GearText)
}

// Icon returns the icon URL of loaders, labels and buttons.
func (o *Object) Icon() string {
	switch {
	case o.loader != nil:
		return o.loader.url
	case o.button != nil:
		return o.button.icon
	case o.label != nil:
		return o.label.Icon()
	case o.comboBox != nil:
		return o.comboBox.Icon()
	}
	return ""
}

// SetIcon sets the icon URL of loaders, labels and buttons.
func (o *Object) SetIcon(v string) {
	switch {
	case o.loader != nil:
		o.loader.SetURL(v)
	case o.button != nil:
		o.button.SetIcon(v)
	case o.label != nil:
		o.label.SetIcon(v)
	case o.comboBox != nil:
		o.comboBox.SetIcon(v)
	default:
		return
	}
	o.updateGear(GearIcon)
}

// Color returns the tint, fill or text color depending on the kind.
func (o *Object) Color() Color {
	switch {
	case o.image != nil:
		return o.image.color
	case o.movieClip != nil:
		return o.movieClip.color
	case o.graph != nil:
		return o.graph.fillColor
	case o.loader != nil:
		return o.loader.color
	case o.text != nil:
		return o.text.format.Color
	case o.button != nil || o.label != nil:
		if t := o.titleObject(); t != nil {
			return t.Color()
		}
	}
	return ColorWhite
}

// SetColor sets the tint, fill or text color depending on the kind.
func (o *Object) SetColor(c Color) {
	switch {
	case o.image != nil:
		o.image.SetColor(c)
	case o.movieClip != nil:
		o.movieClip.color = c
		o.backend().SetTint(o.control, c)
	case o.graph != nil:
		o.graph.SetFillColor(c)
	case o.loader != nil:
		o.loader.SetColor(c)
	case o.text != nil:
		o.text.SetColor(c)
	case o.button != nil || o.label != nil:
		if t := o.titleObject(); t != nil {
			t.SetColor(c)
		}
	default:
		return
	}
	o.updateGear(GearColor)
}

// FontSize returns the font size of text-bearing kinds.
func (o *Object) FontSize() int {
	if o.text != nil {
		return o.text.format.Size
	}
	if t := o.titleObject(); t != nil {
		return t.FontSize()
	}
	return 0
}

// SetFontSize sets the font size of text-bearing kinds.
func (o *Object) SetFontSize(size int) {
	if o.text != nil {
		o.text.SetFontSize(size)
	} else if t := o.titleObject(); t != nil {
		t.SetFontSize(size)
	} else {
		return
	}
	o.updateGear(GearFontSize)
}

func (o *Object) titleObject() *Object {
	switch {
	case o.button != nil:
		return o.button.titleObject
	case o.label != nil:
		return o.label.titleObject
	case o.comboBox != nil:
		return o.comboBox.titleObject
	case o.progress != nil:
		return o.progress.titleObject
	case o.slider != nil:
		return o.slider.titleObject
	}
	return nil
}

// Playing and Frame report movie clip state for movie clips and loaders.
func (o *Object) Playing() bool {
	if mc := o.movieClipTarget(); mc != nil {
		return mc.playing
	}
	return false
}

// Frame returns the current movie clip frame.
func (o *Object) Frame() int {
	if mc := o.movieClipTarget(); mc != nil {
		return mc.frame
	}
	return 0
}

// SetPlaying starts or pauses the movie clip.
func (o *Object) SetPlaying(v bool) {
	if mc := o.movieClipTarget(); mc != nil {
		mc.SetPlaying(v)
		o.updateGear(GearAnimation)
	}
}

// SetFrame jumps to frame.
func (o *Object) SetFrame(f int) {
	if mc := o.movieClipTarget(); mc != nil {
		mc.SetFrame(f)
		o.updateGear(GearAnimation)
	}
}

func (o *Object) movieClipTarget() *MovieClip {
	if o.movieClip != nil {
		return o.movieClip
	}
	if o.loader != nil && o.loader.content != nil {
		return o.loader.content.movieClip
	}
	return nil
}

// --- Payload accessors ---

func (o *Object) AsImage() *Image             { return o.image }
func (o *Object) AsMovieClip() *MovieClip     { return o.movieClip }
func (o *Object) AsGraph() *Graph             { return o.graph }
func (o *Object) AsLoader() *Loader           { return o.loader }
func (o *Object) AsGroup() *Group             { return o.groupData }
func (o *Object) AsTextField() *TextField     { return o.text }
func (o *Object) AsButton() *Button           { return o.button }
func (o *Object) AsLabel() *Label             { return o.label }
func (o *Object) AsProgressBar() *ProgressBar { return o.progress }
func (o *Object) AsSlider() *Slider           { return o.slider }
func (o *Object) AsScrollBar() *ScrollBar     { return o.scrollBar }
func (o *Object) AsComboBox() *ComboBox       { return o.comboBox }
func (o *Object) AsList() *List               { return o.list }
func (o *Object) AsWindow() *Window           { return o.window }

// IsContainer reports whether the object owns children.
func (o *Object) IsContainer() bool { return o.Type.IsContainer() }

// --- Change handling ---

func (o *Object) handlePositionChanged() {
	x, y := o.displayOrigin()
	o.backend().SetPosition(o.control, x, y)
}

func (o *Object) handleSizeChanged() {
	o.backend().SetSize(o.control, o.width, o.height)
	switch {
	case o.image != nil || o.movieClip != nil:
	case o.graph != nil:
		o.graph.redraw()
	case o.loader != nil:
		o.loader.updateLayout()
	case o.text != nil:
		o.text.handleSizeChanged()
	}
	if o.IsContainer() {
		o.containerSizeChanged()
	}
	switch {
	case o.progress != nil:
		o.progress.handleSizeChanged()
	case o.slider != nil:
		o.slider.handleSizeChanged()
	case o.scrollBar != nil:
		o.scrollBar.update()
	case o.list != nil:
		o.list.handleSizeChanged()
	}
}

func (o *Object) handleVisibleChanged() {
	if o.inTree() {
		o.parent.childStateChanged(o)
		if o.groupData != nil {
			for _, c := range o.parent.children {
				if c.group == o {
					c.handleVisibleChanged()
				}
			}
		}
	}
}

// --- Gears ---

// Gear returns the gear in the given slot, creating it on first use.
func (o *Object) Gear(kind GearKind) *Gear {
	if kind < 0 || kind >= gearCount {
		panic(fmt.Sprintf("fgui: gear kind %d out of range", kind))
	}
	g := o.gears[kind]
	if g == nil {
		g = newGear(o, kind)
		o.gears[kind] = g
	}
	return g
}

// HasGear reports whether the slot has a gear.
func (o *Object) HasGear(kind GearKind) bool {
	return kind >= 0 && kind < gearCount && o.gears[kind] != nil
}

// updateGear snapshots the live value into the gear's current page. It is
// skipped while building or while a gear is applying.
func (o *Object) updateGear(kind GearKind) {
	if o.building || o.gearLocked {
		return
	}
	if g := o.gears[kind]; g != nil && g.controller != nil {
		g.UpdateState()
	}
}

// checkGearController reports whether the gear in slot kind is driven by c.
func (o *Object) checkGearController(kind GearKind, c *Controller) bool {
	g := o.gears[kind]
	return g != nil && g.controller == c
}

// addDisplayLock takes a display lock on the display gear, forcing the object
// visible. It returns 0 when there is no display gear.
func (o *Object) addDisplayLock() uint32 {
	g := o.gears[GearDisplay]
	if g == nil || g.controller == nil {
		return 0
	}
	t := g.AddLock()
	o.checkGearDisplay()
	return t
}

func (o *Object) releaseDisplayLock(token uint32) {
	g := o.gears[GearDisplay]
	if g == nil || g.controller == nil || token == 0 {
		return
	}
	g.ReleaseLock(token)
	o.checkGearDisplay()
}

// checkGearDisplay recomputes internal visibility from the display gears.
func (o *Object) checkGearDisplay() {
	if o.handlingController {
		return
	}
	connected := o.gears[GearDisplay] == nil || o.gears[GearDisplay].connected()
	if g := o.gears[GearDisplay2]; g != nil {
		connected = g.evaluate(connected)
	}
	if connected != o.internalVisible {
		o.internalVisible = connected
		if o.inTree() {
			o.parent.childStateChanged(o)
			if o.group != nil && o.group.groupData.excludeInvisibles {
				o.group.groupData.setBoundsChangedFlag(false)
			}
		}
	}
}

// handleControllerChanged applies every gear bound to c.
func (o *Object) handleControllerChanged(c *Controller) {
	o.handlingController = true
	for _, g := range o.gears {
		if g != nil && g.controller == c {
			o.gearLocked = true
			g.Apply()
			o.gearLocked = false
		}
	}
	o.handlingController = false
	o.checkGearDisplay()
	switch {
	case o.button != nil:
		o.button.handleControllerChanged(c)
	case o.comboBox != nil:
		o.comboBox.handleControllerChanged(c)
	case o.list != nil:
		o.list.handleControllerChanged(c)
	}
	if o.scrollPane != nil {
		o.scrollPane.handleControllerChanged(c)
	}
}

// --- Dispose ---

// Dispose detaches the object from its parent and releases its gears,
// relations, listeners, transitions, scroll pane, children and backend
// control. Calling Dispose again is a no-op.
func (o *Object) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	if o.inTree() {
		o.parent.RemoveChild(o, false)
	}
	o.parent = nil
	o.dispose()
}

func (o *Object) dispose() {
	o.disposed = true
	if o.rt != nil {
		if o.rt.Tweens != nil {
			o.rt.Tweens.Kill(o, false)
		}
		if o.rt.DragDrop != nil {
			o.rt.DragDrop.objectDisposed(o)
		}
		o.rt.input.forget(o)
		if globalDebug {
			o.rt.liveObjects--
		}
	}
	o.relations.dispose()
	o.events.clear()
	for i, g := range o.gears {
		if g != nil {
			g.dispose()
			o.gears[i] = nil
		}
	}
	for _, t := range o.transitions {
		t.Dispose()
	}
	o.transitions = nil
	if o.scrollPane != nil {
		o.scrollPane.dispose()
		o.scrollPane = nil
	}
	for _, c := range o.children {
		c.parent = nil
		c.attached = false
		if !c.disposed {
			c.dispose()
		}
	}
	o.children = nil
	o.controllers = nil
	switch {
	case o.loader != nil:
		o.loader.clearContent()
	case o.movieClip != nil:
		o.movieClip.stopTicking()
	case o.list != nil:
		o.list.dispose()
	case o.comboBox != nil:
		o.comboBox.dispose()
	}
	b := o.backend()
	if o.container != 0 {
		b.DisposeControl(o.container)
		o.container = 0
	}
	b.DisposeControl(o.control)
	o.control = 0
	o.group = nil
}

func (o *Object) String() string {
	return fmt.Sprintf("%s %q (%s)", o.Type, o.Name, o.id)
}

func roundf(v float32) float32 {
	return float32(math.Round(float64(v)))
}

func ceilf(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}

func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
