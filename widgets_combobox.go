package fgui

// ComboBox shows the selected item of a string list and pops up a dropdown
// component with a "list" child to change it.
type ComboBox struct {
	owner *Object

	items  []string
	values []string
	icons  []string

	selectedIndex    int
	visibleItemCount int
	popupDirection   PopupDirection

	titleObject         *Object
	iconObject          *Object
	buttonController    *Controller
	selectionController *Controller

	dropdown *Object
	list     *Object

	itemsUpdated bool
	down, over   bool
}

func newComboBox(o *Object) *ComboBox {
	return &ComboBox{owner: o, selectedIndex: -1, visibleItemCount: 10, itemsUpdated: true}
}

// Items returns the item titles. The slice MUST NOT be mutated; use
// SetItems.
func (cb *ComboBox) Items() []string { return cb.items }

// SetItems replaces the item titles. The selection is kept when still in
// range.
func (cb *ComboBox) SetItems(items []string) {
	cb.items = append(cb.items[:0], items...)
	if len(cb.items) > 0 {
		if cb.selectedIndex >= len(cb.items) {
			cb.selectedIndex = len(cb.items) - 1
		} else if cb.selectedIndex == -1 {
			cb.selectedIndex = 0
		}
		cb.SetTitle(cb.items[cb.selectedIndex])
		if cb.selectedIndex < len(cb.icons) {
			cb.SetIcon(cb.icons[cb.selectedIndex])
		}
	} else {
		cb.selectedIndex = -1
		cb.SetTitle("")
		cb.SetIcon("")
	}
	cb.itemsUpdated = true
}

// Values returns the item values.
func (cb *ComboBox) Values() []string { return cb.values }

// SetValues replaces the item values. Values map index-for-index to items.
func (cb *ComboBox) SetValues(values []string) {
	cb.values = append(cb.values[:0], values...)
}

// Icons returns the item icon URLs.
func (cb *ComboBox) Icons() []string { return cb.icons }

// SetIcons replaces the item icon URLs.
func (cb *ComboBox) SetIcons(icons []string) {
	cb.icons = append(cb.icons[:0], icons...)
	if cb.selectedIndex >= 0 && cb.selectedIndex < len(cb.icons) {
		cb.SetIcon(cb.icons[cb.selectedIndex])
	}
	cb.itemsUpdated = true
}

// SelectedIndex returns the selected item, or -1.
func (cb *ComboBox) SelectedIndex() int { return cb.selectedIndex }

// SetSelectedIndex selects item index. Out-of-range indexes clear the
// selection. EventChanged is not fired.
func (cb *ComboBox) SetSelectedIndex(index int) {
	if cb.selectedIndex == index {
		return
	}
	cb.selectedIndex = index
	if index >= 0 && index < len(cb.items) {
		cb.SetTitle(cb.items[index])
		if index < len(cb.icons) {
			cb.SetIcon(cb.icons[index])
		}
	} else {
		cb.SetTitle("")
		if len(cb.icons) > 0 {
			cb.SetIcon("")
		}
	}
	cb.updateSelectionController()
}

// Value returns the value of the selected item, or "".
func (cb *ComboBox) Value() string {
	if cb.selectedIndex >= 0 && cb.selectedIndex < len(cb.values) {
		return cb.values[cb.selectedIndex]
	}
	return ""
}

// SetValue selects the first item with value v.
func (cb *ComboBox) SetValue(v string) {
	cb.SetSelectedIndex(indexOf(cb.values, v))
}

// Title returns the displayed title.
func (cb *ComboBox) Title() string {
	if cb.titleObject != nil {
		return cb.titleObject.Text()
	}
	return ""
}

// SetTitle sets the displayed title.
func (cb *ComboBox) SetTitle(v string) {
	if cb.titleObject != nil {
		cb.titleObject.SetText(v)
	}
	cb.owner.updateGear(GearText)
}

// Icon returns the displayed icon URL.
func (cb *ComboBox) Icon() string {
	if cb.iconObject != nil {
		return cb.iconObject.Icon()
	}
	return ""
}

// SetIcon sets the displayed icon URL.
func (cb *ComboBox) SetIcon(v string) {
	if cb.iconObject != nil {
		cb.iconObject.SetIcon(v)
	}
	cb.owner.updateGear(GearIcon)
}

// VisibleItemCount returns the number of rows shown before the dropdown
// list scrolls.
func (cb *ComboBox) VisibleItemCount() int { return cb.visibleItemCount }

// SetVisibleItemCount sets the number of rows shown before scrolling.
func (cb *ComboBox) SetVisibleItemCount(n int) { cb.visibleItemCount = n }

// PopupDirection returns the side the dropdown opens on.
func (cb *ComboBox) PopupDirection() PopupDirection { return cb.popupDirection }

// SetPopupDirection sets the side the dropdown opens on.
func (cb *ComboBox) SetPopupDirection(d PopupDirection) { cb.popupDirection = d }

// SelectionController returns the controller mirrored by the selection.
func (cb *ComboBox) SelectionController() *Controller { return cb.selectionController }

// SetSelectionController mirrors the selection into c.
func (cb *ComboBox) SetSelectionController(c *Controller) { cb.selectionController = c }

// Dropdown returns the popup component, or nil.
func (cb *ComboBox) Dropdown() *Object { return cb.dropdown }

func (cb *ComboBox) updateSelectionController() {
	c := cb.selectionController
	if c == nil || c.Changing() || cb.selectedIndex >= c.PageCount() {
		return
	}
	old := c
	cb.selectionController = nil
	old.SetSelectedIndex(cb.selectedIndex)
	cb.selectionController = old
}

func (cb *ComboBox) handleControllerChanged(c *Controller) {
	if c == cb.selectionController {
		cb.SetSelectedIndex(c.SelectedIndex())
	}
}

func (cb *ComboBox) setState(page string) {
	if cb.buttonController != nil {
		cb.buttonController.SetSelectedPage(page)
	}
}

func (cb *ComboBox) handleGrayedChanged() {
	if cb.buttonController != nil && cb.buttonController.HasPage(ButtonDisabled) {
		if cb.owner.grayed {
			cb.setState(ButtonDisabled)
		} else {
			cb.setState(ButtonUp)
		}
	}
}

func (cb *ComboBox) renderDropdownList() {
	l := cb.list.list
	l.RemoveChildrenToPool()
	for i, title := range cb.items {
		item := l.AddItemFromPool("")
		if item == nil {
			return
		}
		item.SetText(title)
		if i < len(cb.icons) {
			item.SetIcon(cb.icons[i])
		} else {
			item.SetIcon("")
		}
		item.Name = ""
		if i < len(cb.values) {
			item.Name = cb.values[i]
		}
	}
}

func (cb *ComboBox) showDropdown() {
	o := cb.owner
	if cb.itemsUpdated {
		cb.itemsUpdated = false
		cb.renderDropdownList()
		cb.list.list.ResizeToFit(cb.visibleItemCount, 0)
	}
	cb.list.list.SetSelectedIndex(-1)
	cb.dropdown.SetWidth(o.width)
	cb.list.EnsureBoundsCorrect()
	if r := o.root(); r != nil {
		r.TogglePopup(cb.dropdown, o, cb.popupDirection)
	}
	if cb.dropdown.parent != nil {
		cb.setState(ButtonDown)
	}
}

func (cb *ComboBox) onPopupClosed(*EventContext) {
	if cb.over {
		cb.setState(ButtonOver)
	} else {
		cb.setState(ButtonUp)
	}
}

func (cb *ComboBox) onClickItem(ctx *EventContext) {
	item, _ := ctx.Data.(*Object)
	if item == nil {
		return
	}
	index := cb.list.list.ChildIndexToItemIndex(cb.list.ChildIndex(item))
	if r := cb.owner.root(); r != nil && cb.dropdown.parent != nil {
		r.HidePopup(cb.dropdown)
	}
	cb.selectedIndex = -1
	cb.SetSelectedIndex(index)
	cb.owner.Emit(EventChanged, nil)
}

func (cb *ComboBox) onRollOver(*EventContext) {
	cb.over = true
	if cb.down || cb.dropdown != nil && cb.dropdown.parent != nil {
		return
	}
	cb.setState(ButtonOver)
}

func (cb *ComboBox) onRollOut(*EventContext) {
	cb.over = false
	if cb.down || cb.dropdown != nil && cb.dropdown.parent != nil {
		return
	}
	cb.setState(ButtonUp)
}

func (cb *ComboBox) onTouchBegin(ctx *EventContext) {
	if ctx.Input != nil && ctx.Input.Button != MouseButtonLeft {
		return
	}
	if cb.dropdown == nil || cb.owner.grayed {
		return
	}
	cb.down = true
	if r := cb.owner.root(); r != nil {
		r.keepPopup = cb.dropdown
	}
	cb.showDropdown()
}

func (cb *ComboBox) onTouchEnd(*EventContext) {
	if !cb.down {
		return
	}
	cb.down = false
	if cb.dropdown != nil && cb.dropdown.parent == nil {
		if cb.over {
			cb.setState(ButtonOver)
		} else {
			cb.setState(ButtonUp)
		}
	}
}

func (cb *ComboBox) dispose() {
	if cb.dropdown != nil {
		if r := cb.owner.root(); r != nil {
			r.HidePopup(cb.dropdown)
		}
		cb.dropdown.Dispose()
		cb.dropdown = nil
		cb.list = nil
	}
	cb.selectionController = nil
}

func (cb *ComboBox) constructExtension(buf *ByteBuffer) {
	o := cb.owner
	cb.buttonController = o.ControllerByName("button")
	cb.titleObject = o.ChildByName("title")
	cb.iconObject = o.ChildByName("icon")

	if url, ok := buf.ReadSOK(); ok && url != "" && o.rt != nil {
		dd, err := o.rt.CreateObjectFromURL(url)
		if err != nil {
			debugWarn("combobox %q dropdown: %v", o.Name, err)
		} else if l := dd.ChildByName("list"); l == nil || l.list == nil {
			debugWarn("combobox %q: dropdown %s has no list child", o.Name, url)
			dd.Dispose()
		} else {
			cb.dropdown = dd
			cb.list = l
			l.On(EventClickItem, cb.onClickItem)
			l.relations.Add(dd, RelationWidth, false)
			l.relations.Remove(dd, RelationHeight)
			dd.relations.Add(l, RelationHeight, false)
			dd.relations.Remove(l, RelationWidth)
			dd.On(EventRemovedFromStage, cb.onPopupClosed)
		}
	}

	o.On(EventRollOver, cb.onRollOver)
	o.On(EventRollOut, cb.onRollOut)
	o.On(EventTouchBegin, cb.onTouchBegin)
	o.On(EventTouchEnd, cb.onTouchEnd)
}

func (cb *ComboBox) setupAfterAdd(buf *ByteBuffer) {
	o := cb.owner
	cnt := int(buf.ReadShort())
	cb.items = make([]string, cnt)
	cb.values = make([]string, cnt)
	for i := 0; i < cnt; i++ {
		next := int(buf.ReadUshort())
		next += buf.Position()
		cb.items[i] = buf.ReadS()
		cb.values[i] = buf.ReadS()
		if s, ok := buf.ReadSOK(); ok {
			if cb.icons == nil {
				cb.icons = make([]string, cnt)
			}
			cb.icons[i] = s
		}
		buf.SetPosition(next)
	}

	if s, ok := buf.ReadSOK(); ok {
		cb.SetTitle(s)
		cb.selectedIndex = indexOf(cb.items, s)
	} else if cnt > 0 {
		cb.selectedIndex = 0
		cb.SetTitle(cb.items[0])
	} else {
		cb.selectedIndex = -1
	}
	if s, ok := buf.ReadSOK(); ok {
		cb.SetIcon(s)
	}
	if buf.ReadBool() {
		c := buf.ReadColor()
		if cb.titleObject != nil {
			cb.titleObject.SetColor(c)
		}
	}
	if n := int(buf.ReadInt()); n > 0 {
		cb.visibleItemCount = n
	}
	cb.popupDirection = PopupDirection(buf.ReadByte())
	if i := int(buf.ReadShort()); i >= 0 && o.parent != nil {
		cb.selectionController = o.parent.ControllerAt(i)
	}
	cb.itemsUpdated = true
}
