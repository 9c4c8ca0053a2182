package fgui

import "fmt"

// Construction runs in two phases. setupBeforeAdd populates the raw fields of
// a new child from its record; setupAfterAdd runs once every sibling exists
// and wires relations, gears and kind-specific data that may refer to
// siblings by index. Side effects that need a complete tree (gear snapshots,
// control realization, gear tweens, related-controller sync) are held back
// while Object.building is set and replayed by finishBuild.

// objectTypeFor maps a package item to the kind of object it instantiates.
func objectTypeFor(pi *PackageItem) (ObjectType, bool) {
	switch pi.Type {
	case ItemImage:
		return ObjectImage, true
	case ItemMovieClip:
		return ObjectMovieClip, true
	case ItemSwf:
		return ObjectSwf, true
	case ItemComponent:
		return pi.ObjectType, true
	case ItemSpine, ItemDragonBones:
		return ObjectLoader3D, true
	}
	return 0, false
}

// newObjectFromItem creates and fully constructs an object for pi. On error
// the partially built object is disposed.
func (rt *Runtime) newObjectFromItem(pi *PackageItem) (*Object, error) {
	pi = pi.Branch()
	t, ok := objectTypeFor(pi)
	if !ok {
		return nil, fmt.Errorf("fgui: create %q: %s is not instantiable: %w", pi.Name, pi.Type, ErrItemNotFound)
	}
	if err := pi.Load(); err != nil {
		return nil, fmt.Errorf("fgui: load %q: %w", pi.Name, err)
	}
	o := rt.Factory.create(t, pi)
	if err := o.constructFromResource(); err != nil {
		o.Dispose()
		return nil, fmt.Errorf("fgui: construct %q: %w", pi.Name, err)
	}
	rt.Factory.extend(o)
	return o, nil
}

// constructFromResource builds the object from its package item.
func (o *Object) constructFromResource() (err error) {
	defer catchBufferError(&err)
	pi := o.item
	o.sourceWidth, o.sourceHeight = float32(pi.Width), float32(pi.Height)
	o.initWidth, o.initHeight = o.sourceWidth, o.sourceHeight

	switch {
	case o.image != nil:
		o.image.setItem(pi)
		o.SetSize(o.sourceWidth, o.sourceHeight, false)
	case o.movieClip != nil:
		o.movieClip.setItem(pi)
		o.SetSize(o.sourceWidth, o.sourceHeight, false)
	case o.loader != nil:
		o.SetSize(o.sourceWidth, o.sourceHeight, false)
	case o.IsContainer() && pi.RawData != nil:
		return o.constructComponent(pi.RawData)
	}
	return nil
}

func (o *Object) constructComponent(buf *ByteBuffer) error {
	o.building = true

	buf.Seek(0, 0)
	o.sourceWidth = float32(buf.ReadInt())
	o.sourceHeight = float32(buf.ReadInt())
	o.initWidth, o.initHeight = o.sourceWidth, o.sourceHeight
	o.SetSize(o.sourceWidth, o.sourceHeight, false)

	if buf.ReadBool() {
		o.minWidth = float32(buf.ReadInt())
		o.maxWidth = float32(buf.ReadInt())
		o.minHeight = float32(buf.ReadInt())
		o.maxHeight = float32(buf.ReadInt())
	}
	if buf.ReadBool() {
		px, py := buf.ReadFloat(), buf.ReadFloat()
		o.SetPivot(px, py, buf.ReadBool())
	}
	if buf.ReadBool() {
		o.margin.Top = int(buf.ReadInt())
		o.margin.Bottom = int(buf.ReadInt())
		o.margin.Left = int(buf.ReadInt())
		o.margin.Right = int(buf.ReadInt())
	}
	overflow := OverflowType(buf.ReadByte())
	if overflow == OverflowScroll {
		saved := buf.Position()
		if buf.Seek(0, 7) {
			o.setupScroll(buf)
		}
		buf.SetPosition(saved)
	} else {
		o.setupOverflow(overflow)
	}
	if buf.ReadBool() {
		buf.Skip(8) // clip softness
	}

	if buf.Seek(0, 1) {
		cnt := int(buf.ReadShort())
		for i := 0; i < cnt; i++ {
			next := int(buf.ReadUshort())
			next += buf.Position()
			c := NewController("")
			c.parent = o
			c.setup(buf)
			o.controllers = append(o.controllers, c)
			buf.SetPosition(next)
		}
	}

	var cnt int
	if buf.Seek(0, 2) {
		cnt = int(buf.ReadShort())
		for i := 0; i < cnt; i++ {
			dataLen := int(buf.ReadShort())
			cur := buf.Position()
			child, err := o.newChildFromRecord(buf, cur)
			if err != nil {
				return err
			}
			child.building = true
			child.setupBeforeAdd(buf, cur)
			child.parent = o
			if child.sortingOrder != 0 {
				o.sortingChildCount++
			}
			o.children = append(o.children, child)
			buf.SetPosition(cur + dataLen)
		}
	}

	if buf.Seek(0, 3) {
		o.relations.setup(buf, true)
	}

	if cnt > 0 {
		buf.Seek(0, 2)
		buf.Skip(2)
		for i := 0; i < cnt; i++ {
			next := int(buf.ReadUshort())
			next += buf.Position()
			if buf.Seek(buf.Position(), 3) {
				o.children[i].relations.setup(buf, false)
			}
			buf.SetPosition(next)
		}

		buf.Seek(0, 2)
		buf.Skip(2)
		for i := 0; i < cnt; i++ {
			next := int(buf.ReadUshort())
			next += buf.Position()
			child := o.children[i]
			child.setupAfterAdd(buf, buf.Position())
			child.finishSetup()
			buf.SetPosition(next)
		}
	}

	if buf.Seek(0, 4) {
		buf.Skip(2) // mask child index
		o.opaque = buf.ReadBool()
	}

	if buf.Seek(0, 5) {
		n := int(buf.ReadShort())
		for i := 0; i < n; i++ {
			next := int(buf.ReadUshort())
			next += buf.Position()
			t := newTransition(o)
			t.setup(buf)
			o.transitions = append(o.transitions, t)
			buf.SetPosition(next)
		}
	}

	o.finishBuild()

	if o.Type != ObjectComponent && buf.Seek(0, 6) {
		o.constructExtension(buf)
	}
	if globalDebug {
		debugCheckTreeDepth(o)
		debugCheckChildCount(o)
	}
	return nil
}

// newChildFromRecord creates the object described by the child record at
// cur. Children that reference a package item are fully constructed from it;
// an unresolvable item falls back to a plain object of the recorded kind.
func (o *Object) newChildFromRecord(buf *ByteBuffer, cur int) (*Object, error) {
	rt := o.rt
	buf.Seek(cur, 0)
	t := ObjectType(buf.ReadByte())
	src, hasSrc := buf.ReadSOK()
	pkgID, hasPkg := buf.ReadSOK()

	if hasSrc && src != "" {
		pkg := o.item.owner
		if hasPkg && pkgID != "" && (pkg == nil || pkgID != pkg.ID) {
			pkg = rt.Packages.PackageByID(pkgID)
			if pkg == nil {
				return nil, fmt.Errorf("package %q: %w", pkgID, ErrMissingDependency)
			}
		}
		if pkg != nil {
			if pi := pkg.ItemByID(src); pi != nil {
				return rt.newObjectFromItem(pi)
			}
		}
	}
	return rt.Factory.create(t, nil), nil
}

// constructExtension reads the kind-specific resource data of extended
// components (block 6) after the children exist.
func (o *Object) constructExtension(buf *ByteBuffer) {
	switch {
	case o.button != nil:
		o.button.constructExtension(buf)
	case o.label != nil:
		o.label.constructExtension(buf)
	case o.progress != nil:
		o.progress.constructExtension(buf)
	case o.slider != nil:
		o.slider.constructExtension(buf)
	case o.scrollBar != nil:
		o.scrollBar.constructExtension(buf)
	case o.comboBox != nil:
		o.comboBox.constructExtension(buf)
	}
}

func (o *Object) setupScroll(buf *ByteBuffer) {
	o.scrollPane = newScrollPane(o)
	o.scrollPane.setup(buf)
	o.updateContainerControl()
}

func (o *Object) setupOverflow(overflow OverflowType) {
	if overflow == OverflowHidden {
		o.SetClipContent(true)
	}
	o.updateContainerControl()
}

// setupBeforeAdd reads the intrinsic fields of a child record.
func (o *Object) setupBeforeAdd(buf *ByteBuffer, begin int) {
	buf.Seek(begin, 0)
	buf.Skip(5)
	buf.ReadS() // editor id; runtime ids stay process-unique
	o.Name = buf.ReadS()
	x := float32(buf.ReadInt())
	y := float32(buf.ReadInt())
	o.SetXY(x, y)

	if buf.ReadBool() {
		o.initWidth = float32(buf.ReadInt())
		o.initHeight = float32(buf.ReadInt())
		o.SetSize(o.initWidth, o.initHeight, true)
	}
	if buf.ReadBool() {
		o.minWidth = float32(buf.ReadInt())
		o.maxWidth = float32(buf.ReadInt())
		o.minHeight = float32(buf.ReadInt())
		o.maxHeight = float32(buf.ReadInt())
	}
	if buf.ReadBool() {
		sx, sy := buf.ReadFloat(), buf.ReadFloat()
		o.SetScale(sx, sy)
	}
	if buf.ReadBool() {
		kx, ky := buf.ReadFloat(), buf.ReadFloat()
		o.SetSkew(kx, ky)
	}
	if buf.ReadBool() {
		px, py := buf.ReadFloat(), buf.ReadFloat()
		o.SetPivot(px, py, buf.ReadBool())
	}
	if a := buf.ReadFloat(); a != 1 {
		o.SetAlpha(a)
	}
	if r := buf.ReadFloat(); r != 0 {
		o.SetRotation(r)
	}
	if !buf.ReadBool() {
		o.SetVisible(false)
	}
	if !buf.ReadBool() {
		o.SetTouchable(false)
	}
	if buf.ReadBool() {
		o.SetGrayed(true)
	}
	o.SetBlendMode(BlendMode(buf.ReadByte()))
	if buf.ReadByte() == 1 {
		o.SetColorFilter(ColorFilter{
			Brightness: buf.ReadFloat(),
			Contrast:   buf.ReadFloat(),
			Saturation: buf.ReadFloat(),
			Hue:        buf.ReadFloat(),
		})
	}
	if s, ok := buf.ReadSOK(); ok {
		o.Data = s
	}

	switch {
	case o.image != nil:
		if buf.Seek(begin, 5) {
			o.image.setupBeforeAdd(buf)
		}
	case o.movieClip != nil:
		if buf.Seek(begin, 5) {
			o.movieClip.setupBeforeAdd(buf)
		}
	case o.graph != nil:
		if buf.Seek(begin, 5) {
			o.graph.setupBeforeAdd(buf)
		}
	case o.loader != nil:
		if buf.Seek(begin, 5) {
			o.loader.setupBeforeAdd(buf)
		}
	case o.groupData != nil:
		if buf.Seek(begin, 5) {
			o.groupData.setupBeforeAdd(buf)
		}
	case o.text != nil:
		o.text.setupBeforeAdd(buf, begin)
	case o.list != nil:
		o.list.setupBeforeAdd(buf, begin)
	}
}

// setupAfterAdd reads the fields of a child record that may refer to
// siblings: group membership, gears and kind-specific instance data.
func (o *Object) setupAfterAdd(buf *ByteBuffer, begin int) {
	if buf.Seek(begin, 1) {
		if s, ok := buf.ReadSOK(); ok {
			o.tooltips = s
		}
		if gi := int(buf.ReadShort()); gi >= 0 && o.parent != nil {
			if g := o.parent.childAtOrNil(gi); g != nil && g.Type == ObjectGroup {
				o.SetGroup(g)
			}
		}
	}

	if buf.Seek(begin, 2) {
		cnt := int(buf.ReadShort())
		for i := 0; i < cnt; i++ {
			next := int(buf.ReadUshort())
			next += buf.Position()
			if kind := GearKind(buf.ReadByte()); kind >= 0 && kind < gearCount {
				o.Gear(kind).setup(buf)
			}
			buf.SetPosition(next)
		}
	}

	switch {
	case o.text != nil:
		o.text.setupAfterAdd(buf, begin)
	case o.IsContainer():
		o.setupComponentAfterAdd(buf, begin)
	}
}

// setupComponentAfterAdd applies instance overrides of an embedded
// component: the scroll pane's page controller, controller page overrides
// and the kind-specific block 6.
func (o *Object) setupComponentAfterAdd(buf *ByteBuffer, begin int) {
	if o.list != nil {
		if buf.Seek(begin, 6) {
			if i := int(buf.ReadShort()); i != -1 && o.parent != nil {
				o.list.selectionController = o.parent.ControllerAt(i)
			}
		}
		return
	}
	if buf.Seek(begin, 4) {
		if pc := int(buf.ReadShort()); pc != -1 && o.scrollPane != nil && o.parent != nil {
			o.scrollPane.SetPageController(o.parent.ControllerAt(pc))
		}
		cnt := int(buf.ReadShort())
		for i := 0; i < cnt; i++ {
			name := buf.ReadS()
			page := buf.ReadS()
			if c := o.ControllerByName(name); c != nil {
				c.SetSelectedPageID(page)
			}
		}
	}

	if !buf.Seek(begin, 6) {
		return
	}
	if o.item == nil || ObjectType(buf.ReadByte()) != o.item.ObjectType {
		return
	}
	switch {
	case o.button != nil:
		o.button.setupAfterAdd(buf)
	case o.label != nil:
		o.label.setupAfterAdd(buf)
	case o.progress != nil:
		o.progress.setupAfterAdd(buf)
	case o.slider != nil:
		o.slider.setupAfterAdd(buf)
	case o.comboBox != nil:
		o.comboBox.setupAfterAdd(buf)
	}
}

// finishSetup ends the instance setup of a child placed by its parent's
// build.
func (o *Object) finishSetup() {
	o.building = false
	if o.IsContainer() {
		o.realizeChildren()
	}
}

// finishBuild applies the controllers of a freshly built container and
// realizes its children.
func (o *Object) finishBuild() {
	o.applyAllControllers()
	o.building = false
	o.realizeChildren()
	if o.scrollPane != nil {
		o.scrollPane.onOwnerSizeChanged()
	}
	o.setBoundsChangedFlag()
	o.EnsureBoundsCorrect()
}
