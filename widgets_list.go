package fgui

import (
	"math"
	"slices"
)

// ItemRenderer fills the item object shown at index.
type ItemRenderer func(index int, item *Object)

// ItemProvider returns the resource URL of the item at index. An empty
// string selects the list's default item.
type ItemProvider func(index int) string

// List arranges item objects in a column, a row, a flowing grid or pages,
// and tracks item selection. Items are usually buttons; their selected flag
// is the selection. In virtual mode only the items inside the view are
// realized, and they are re-rendered through ItemRenderer as the view
// scrolls.
type List struct {
	owner *Object

	layout         ListLayoutType
	selectionMode  ListSelectionMode
	align          AlignType
	valign         VertAlignType
	lineGap        int
	columnGap      int
	lineCount      int
	columnCount    int
	autoResizeItem bool
	defaultItem    string
	itemSize       Vec2

	ItemRenderer ItemRenderer
	ItemProvider ItemProvider

	pool                *ObjectPool
	clickHandles        map[*Object]ListenerHandle
	lastSelectedIndex   int
	selectionController *Controller

	virtual     bool
	numItems    int
	firstIndex  int
	selected    map[int]bool
	refreshing  bool
	scrollWatch ListenerHandle
}

func newList(o *Object) *List {
	return &List{
		owner:             o,
		autoResizeItem:    true,
		lastSelectedIndex: -1,
		clickHandles:      make(map[*Object]ListenerHandle),
	}
}

// --- Properties ---

// Layout returns the item arrangement.
func (l *List) Layout() ListLayoutType { return l.layout }

// SetLayout changes the item arrangement.
func (l *List) SetLayout(v ListLayoutType) {
	if l.layout != v {
		l.layout = v
		l.setBoundsChangedFlag()
	}
}

// SelectionMode returns how clicks change the selection.
func (l *List) SelectionMode() ListSelectionMode { return l.selectionMode }

// SetSelectionMode sets how clicks change the selection.
func (l *List) SetSelectionMode(v ListSelectionMode) { l.selectionMode = v }

// Align returns the horizontal alignment of content smaller than the view.
func (l *List) Align() AlignType { return l.align }

// SetAlign sets the horizontal alignment of content smaller than the view.
func (l *List) SetAlign(v AlignType) {
	if l.align != v {
		l.align = v
		l.setBoundsChangedFlag()
	}
}

// VertAlign returns the vertical alignment of content smaller than the view.
func (l *List) VertAlign() VertAlignType { return l.valign }

// SetVertAlign sets the vertical alignment of content smaller than the view.
func (l *List) SetVertAlign(v VertAlignType) {
	if l.valign != v {
		l.valign = v
		l.setBoundsChangedFlag()
	}
}

// LineGap returns the spacing between lines.
func (l *List) LineGap() int { return l.lineGap }

// SetLineGap sets the spacing between lines.
func (l *List) SetLineGap(v int) {
	if l.lineGap != v {
		l.lineGap = v
		l.setBoundsChangedFlag()
	}
}

// ColumnGap returns the spacing between columns.
func (l *List) ColumnGap() int { return l.columnGap }

// SetColumnGap sets the spacing between columns.
func (l *List) SetColumnGap(v int) {
	if l.columnGap != v {
		l.columnGap = v
		l.setBoundsChangedFlag()
	}
}

// LineCount returns the fixed number of lines of a flow layout, or 0.
func (l *List) LineCount() int { return l.lineCount }

// SetLineCount fixes the number of lines of a vertical flow or pages.
func (l *List) SetLineCount(v int) {
	if l.lineCount != v {
		l.lineCount = v
		l.setBoundsChangedFlag()
	}
}

// ColumnCount returns the fixed number of columns of a flow layout, or 0.
func (l *List) ColumnCount() int { return l.columnCount }

// SetColumnCount fixes the number of columns of a horizontal flow or pages.
func (l *List) SetColumnCount(v int) {
	if l.columnCount != v {
		l.columnCount = v
		l.setBoundsChangedFlag()
	}
}

// AutoResizeItem reports whether single-line layouts stretch items to the
// view.
func (l *List) AutoResizeItem() bool { return l.autoResizeItem }

// SetAutoResizeItem stretches items of single-line layouts to the view.
func (l *List) SetAutoResizeItem(v bool) {
	if l.autoResizeItem != v {
		l.autoResizeItem = v
		l.setBoundsChangedFlag()
	}
}

// DefaultItem returns the URL used when no item URL is given.
func (l *List) DefaultItem() string { return l.defaultItem }

// SetDefaultItem sets the URL used when no item URL is given.
func (l *List) SetDefaultItem(url string) {
	if l.owner.rt != nil {
		url = l.owner.rt.Packages.NormalizeURL(url)
	}
	l.defaultItem = url
}

// SelectionController returns the controller mirrored by the selection.
func (l *List) SelectionController() *Controller { return l.selectionController }

// SetSelectionController mirrors the selection into c.
func (l *List) SetSelectionController(c *Controller) { l.selectionController = c }

// --- Pool ---

func (l *List) objectPool() *ObjectPool {
	if l.pool == nil {
		l.pool = NewObjectPool(l.owner.rt)
	}
	return l.pool
}

// GetFromPool returns an item for url, reusing a returned one when
// possible. An empty url means the default item. It returns nil when the
// item cannot be created.
func (l *List) GetFromPool(url string) *Object {
	if url == "" {
		url = l.defaultItem
	}
	if url == "" {
		return nil
	}
	obj := l.objectPool().Get(url)
	if obj != nil {
		obj.SetVisible(true)
	}
	return obj
}

// ReturnToPool gives obj back for reuse.
func (l *List) ReturnToPool(obj *Object) {
	if b := obj.button; b != nil {
		b.SetSelected(false)
	}
	l.objectPool().Return(obj)
}

// AddItemFromPool appends an item from the pool and returns it, or nil when
// it cannot be created.
func (l *List) AddItemFromPool(url string) *Object {
	obj := l.GetFromPool(url)
	if obj == nil {
		return nil
	}
	return l.owner.AddChild(obj)
}

// RemoveChildToPool removes child and returns it to the pool.
func (l *List) RemoveChildToPool(child *Object) {
	l.owner.RemoveChild(child, false)
	l.ReturnToPool(child)
}

// RemoveChildToPoolAt removes the child at index and returns it to the pool.
func (l *List) RemoveChildToPoolAt(index int) {
	l.ReturnToPool(l.owner.RemoveChildAt(index, false))
}

// RemoveChildrenToPool removes every item and returns them to the pool.
func (l *List) RemoveChildrenToPool() {
	for n := len(l.owner.children); n > 0; n-- {
		l.RemoveChildToPoolAt(n - 1)
	}
}

// --- Items ---

// NumItems returns the item count. Outside virtual mode it is the child
// count.
func (l *List) NumItems() int {
	if l.virtual {
		return l.numItems
	}
	return len(l.owner.children)
}

// SetNumItems sets the item count. Outside virtual mode items are added
// from or returned to the pool to match, and every item is passed to
// ItemRenderer.
func (l *List) SetNumItems(n int) {
	if n < 0 {
		n = 0
	}
	if l.virtual {
		l.numItems = n
		for i := range l.selected {
			if i >= n {
				delete(l.selected, i)
			}
		}
		l.owner.backend().SetVirtualItems(l.owner.control, n, l.renderSlot)
		l.setBoundsChangedFlag()
		return
	}

	o := l.owner
	for len(o.children) > n {
		l.RemoveChildToPoolAt(len(o.children) - 1)
	}
	for i := 0; i < n; i++ {
		var url string
		if l.ItemProvider != nil {
			url = l.ItemProvider(i)
			if url == "" {
				url = l.defaultItem
			} else if o.rt != nil {
				url = o.rt.Packages.NormalizeURL(url)
			}
		}
		if i < len(o.children) {
			if c := o.children[i]; url != "" && c.ResourceURL() != url {
				l.RemoveChildToPoolAt(i)
				if obj := l.GetFromPool(url); obj != nil {
					o.AddChildAt(obj, i)
				}
			}
		} else if l.AddItemFromPool(url) == nil {
			break
		}
		if i < len(o.children) && l.ItemRenderer != nil {
			l.ItemRenderer(i, o.children[i])
		}
	}
}

// ChildIndexToItemIndex maps a child index to an item index.
func (l *List) ChildIndexToItemIndex(i int) int {
	if !l.virtual || i < 0 {
		return i
	}
	return l.firstIndex + i
}

// ItemIndexToChildIndex maps an item index to a child index, or -1 when
// the item is not realized.
func (l *List) ItemIndexToChildIndex(i int) int {
	if !l.virtual {
		return i
	}
	ci := i - l.firstIndex
	if ci < 0 || ci >= len(l.owner.children) {
		return -1
	}
	return ci
}

func (l *List) childAdded(child *Object) {
	if b := child.button; b != nil {
		b.changeStateOnClick = false
	}
	l.clickHandles[child] = child.On(EventClick, func(ctx *EventContext) {
		l.onClickItem(child, ctx)
	})
}

func (l *List) childRemoved(child *Object) {
	if h, ok := l.clickHandles[child]; ok {
		h.Remove()
		delete(l.clickHandles, child)
	}
}

func (l *List) onClickItem(item *Object, ctx *EventContext) {
	o := l.owner
	if o.scrollPane != nil && o.scrollPane.isDragged {
		return
	}
	l.setSelectionOnEvent(item, ctx.Input)
	if o.scrollPane != nil {
		o.scrollPane.ScrollToView(item, true, false)
	}
	o.Emit(EventClickItem, item)
}

// --- Selection ---

func (l *List) itemSelected(index int) bool {
	if l.virtual {
		return l.selected[index]
	}
	c := l.owner.childAtOrNil(index)
	return c != nil && c.button != nil && c.button.selected
}

func (l *List) setItemSelected(index int, v bool) {
	if l.virtual {
		if v {
			if l.selected == nil {
				l.selected = make(map[int]bool)
			}
			l.selected[index] = true
		} else {
			delete(l.selected, index)
		}
		if ci := l.ItemIndexToChildIndex(index); ci != -1 {
			if b := l.owner.children[ci].button; b != nil {
				b.SetSelected(v)
			}
		}
		return
	}
	if c := l.owner.childAtOrNil(index); c != nil && c.button != nil {
		c.button.SetSelected(v)
	}
}

// SelectedIndex returns the first selected item index, or -1.
func (l *List) SelectedIndex() int {
	if l.virtual {
		first := -1
		for i := range l.selected {
			if first == -1 || i < first {
				first = i
			}
		}
		return first
	}
	for i, c := range l.owner.children {
		if c.button != nil && c.button.selected {
			return i
		}
	}
	return -1
}

// SetSelectedIndex selects exactly the item at index. An out-of-range index
// clears the selection.
func (l *List) SetSelectedIndex(index int) {
	if index >= 0 && index < l.NumItems() {
		if l.selectionMode != SelectionSingle {
			l.ClearSelection()
		}
		l.AddSelection(index, false)
	} else {
		l.ClearSelection()
	}
}

// Selection returns the selected item indexes in ascending order.
func (l *List) Selection() []int {
	var out []int
	if l.virtual {
		for i := range l.selected {
			out = append(out, i)
		}
		slices.Sort(out)
		return out
	}
	for i, c := range l.owner.children {
		if c.button != nil && c.button.selected {
			out = append(out, i)
		}
	}
	return out
}

// AddSelection selects the item at index, optionally scrolling it into
// view. Single selection mode deselects the others.
func (l *List) AddSelection(index int, scrollItToView bool) {
	if l.selectionMode == SelectionNone || index < 0 || index >= l.NumItems() {
		return
	}
	if l.selectionMode == SelectionSingle {
		l.ClearSelection()
	}
	if scrollItToView {
		l.ScrollToView(index, false, false)
	}
	l.lastSelectedIndex = index
	if !l.itemSelected(index) {
		l.setItemSelected(index, true)
		l.updateSelectionController(index)
	}
}

// RemoveSelection deselects the item at index.
func (l *List) RemoveSelection(index int) {
	if l.selectionMode == SelectionNone {
		return
	}
	l.setItemSelected(index, false)
}

// ClearSelection deselects every item.
func (l *List) ClearSelection() {
	if l.virtual {
		clear(l.selected)
	}
	for _, c := range l.owner.children {
		if c.button != nil {
			c.button.SetSelected(false)
		}
	}
}

// SelectAll selects every item unless the mode is single or none.
func (l *List) SelectAll() {
	if l.selectionMode == SelectionSingle || l.selectionMode == SelectionNone {
		return
	}
	last := -1
	for i := 0; i < l.NumItems(); i++ {
		if !l.itemSelected(i) {
			l.setItemSelected(i, true)
		}
		last = i
	}
	if last != -1 {
		l.updateSelectionController(last)
	}
}

// SelectNone is ClearSelection.
func (l *List) SelectNone() { l.ClearSelection() }

// SelectReverse inverts the selection of every item.
func (l *List) SelectReverse() {
	if l.selectionMode == SelectionSingle || l.selectionMode == SelectionNone {
		return
	}
	last := -1
	for i := 0; i < l.NumItems(); i++ {
		v := !l.itemSelected(i)
		l.setItemSelected(i, v)
		if v {
			last = i
		}
	}
	if last != -1 {
		l.updateSelectionController(last)
	}
}

func (l *List) setSelectionOnEvent(item *Object, ev *InputEvent) {
	if item.button == nil || l.selectionMode == SelectionNone {
		return
	}
	index := l.ChildIndexToItemIndex(l.owner.ChildIndex(item))
	dontChange := false
	switch l.selectionMode {
	case SelectionSingle:
		if !l.itemSelected(index) {
			l.ClearSelectionExcept(index)
			l.setItemSelected(index, true)
		}
	case SelectionMultiple:
		var mods KeyModifiers
		if ev != nil {
			mods = ev.Modifiers
		}
		switch {
		case mods&ModShift != 0:
			if !l.itemSelected(index) {
				if l.lastSelectedIndex != -1 {
					lo, hi := min(l.lastSelectedIndex, index), max(l.lastSelectedIndex, index)
					for i := lo; i <= hi; i++ {
						l.setItemSelected(i, true)
					}
					dontChange = true
				} else {
					l.setItemSelected(index, true)
				}
			}
		case mods&ModCtrl != 0:
			l.setItemSelected(index, !l.itemSelected(index))
		default:
			if !l.itemSelected(index) {
				l.ClearSelectionExcept(index)
				l.setItemSelected(index, true)
			} else {
				l.ClearSelectionExcept(index)
			}
		}
	case SelectionMultipleSingleClick:
		l.setItemSelected(index, !l.itemSelected(index))
	}
	if !dontChange {
		l.lastSelectedIndex = index
	}
	if l.itemSelected(index) {
		l.updateSelectionController(index)
	}
}

// ClearSelectionExcept deselects every item but the one at index.
func (l *List) ClearSelectionExcept(index int) {
	if l.virtual {
		for i := range l.selected {
			if i != index {
				l.setItemSelected(i, false)
			}
		}
		return
	}
	for i, c := range l.owner.children {
		if i != index && c.button != nil {
			c.button.SetSelected(false)
		}
	}
}

func (l *List) updateSelectionController(index int) {
	c := l.selectionController
	if c == nil || c.Changing() || index >= c.PageCount() {
		return
	}
	l.selectionController = nil
	c.SetSelectedIndex(index)
	l.selectionController = c
}

func (l *List) handleControllerChanged(c *Controller) {
	if c == l.selectionController {
		l.SetSelectedIndex(c.SelectedIndex())
	}
}

// --- Layout ---

func (l *List) setBoundsChangedFlag() {
	l.owner.setBoundsChangedFlag()
}

// ResizeToFit sizes the list so itemCount items fit the view without
// scrolling, but never below minSize along the layout axis.
func (l *List) ResizeToFit(itemCount int, minSize float32) {
	o := l.owner
	o.EnsureBoundsCorrect()
	itemCount = min(itemCount, l.NumItems())
	vertical := l.layout == ListSingleColumn || l.layout == ListFlowHorizontal
	var size float32
	switch {
	case itemCount <= 0:
		size = minSize
	case l.virtual:
		per := l.lineItemCount()
		lines := (itemCount + per - 1) / per
		if vertical {
			size = float32(lines)*l.itemSize.Y + float32(max(lines-1, 0)*l.lineGap)
		} else {
			size = float32(lines)*l.itemSize.X + float32(max(lines-1, 0)*l.columnGap)
		}
	default:
		c := o.children[itemCount-1]
		if vertical {
			size = c.y + c.height
		} else {
			size = c.x + c.width
		}
	}
	size = max(size, minSize)
	if vertical {
		o.SetHeight(size + (o.height - o.ViewHeight()))
	} else {
		o.SetWidth(size + (o.width - o.ViewWidth()))
	}
}

// lineItemCount returns how many items one line holds.
func (l *List) lineItemCount() int {
	o := l.owner
	switch l.layout {
	case ListFlowHorizontal, ListPagination:
		if l.columnCount > 0 {
			return l.columnCount
		}
		return max(int((o.ViewWidth()+float32(l.columnGap))/(l.itemSize.X+float32(l.columnGap))), 1)
	case ListFlowVertical:
		if l.lineCount > 0 {
			return l.lineCount
		}
		return max(int((o.ViewHeight()+float32(l.lineGap))/(l.itemSize.Y+float32(l.lineGap))), 1)
	}
	return 1
}

// updateBounds lays out the items and reports the content size to the
// scroll pane.
func (l *List) updateBounds() {
	if l.virtual {
		l.owner.boundsChanged = false
		l.refreshVirtualList()
		return
	}
	o := l.owner
	viewW, viewH := o.ViewWidth(), o.ViewHeight()
	var cw, ch float32
	var curX, curY, lineSize float32
	j := 0
	page := 0

	for _, c := range o.children {
		if !c.FinalVisible() {
			continue
		}
		switch l.layout {
		case ListSingleColumn:
			if l.autoResizeItem && viewW > 0 {
				c.SetWidth(viewW)
			}
			c.SetXY(0, curY)
			curY += ceilf(c.height) + float32(l.lineGap)
			cw = max(cw, ceilf(c.x+c.width))
			ch = curY - float32(l.lineGap)
		case ListSingleRow:
			if l.autoResizeItem && viewH > 0 {
				c.SetHeight(viewH)
			}
			c.SetXY(curX, 0)
			curX += ceilf(c.width) + float32(l.columnGap)
			ch = max(ch, ceilf(c.y+c.height))
			cw = curX - float32(l.columnGap)
		case ListFlowHorizontal:
			if curX != 0 && (l.columnCount > 0 && j >= l.columnCount ||
				l.columnCount == 0 && curX+c.width > viewW) {
				curX = 0
				curY += lineSize + float32(l.lineGap)
				lineSize = 0
				j = 0
			}
			c.SetXY(curX, curY)
			curX += ceilf(c.width) + float32(l.columnGap)
			lineSize = max(lineSize, ceilf(c.height))
			cw = max(cw, curX-float32(l.columnGap))
			ch = curY + lineSize
			j++
		case ListFlowVertical:
			if curY != 0 && (l.lineCount > 0 && j >= l.lineCount ||
				l.lineCount == 0 && curY+c.height > viewH) {
				curY = 0
				curX += lineSize + float32(l.columnGap)
				lineSize = 0
				j = 0
			}
			c.SetXY(curX, curY)
			curY += ceilf(c.height) + float32(l.lineGap)
			lineSize = max(lineSize, ceilf(c.width))
			ch = max(ch, curY-float32(l.lineGap))
			cw = curX + lineSize
			j++
		case ListPagination:
			if curX != 0 && (l.columnCount > 0 && j >= l.columnCount ||
				l.columnCount == 0 && curX+c.width > viewW) {
				curX = 0
				curY += lineSize + float32(l.lineGap)
				lineSize = 0
				j = 0
			}
			if curY != 0 && curY+c.height > viewH {
				page++
				curY = 0
			}
			c.SetXY(float32(page)*viewW+curX, curY)
			curX += ceilf(c.width) + float32(l.columnGap)
			lineSize = max(lineSize, ceilf(c.height))
			cw = float32(page+1) * viewW
			ch = max(ch, curY+lineSize)
			j++
		}
	}
	l.applyAlign(cw, ch)
	o.setBounds(0, 0, cw, ch)
}

// applyAlign offsets content smaller than the view.
func (l *List) applyAlign(cw, ch float32) {
	o := l.owner
	var off Vec2
	if d := o.ViewWidth() - cw; d > 0 {
		switch l.align {
		case AlignCenter:
			off.X = floorf(d / 2)
		case AlignRight:
			off.X = d
		}
	}
	if d := o.ViewHeight() - ch; d > 0 {
		switch l.valign {
		case VertAlignMiddle:
			off.Y = floorf(d / 2)
		case VertAlignBottom:
			off.Y = d
		}
	}
	if off != o.alignOffset {
		o.alignOffset = off
		o.updateContainerControl()
	}
}

func (l *List) handleSizeChanged() {
	if l.virtual || l.autoResizeItem || l.layout != ListSingleColumn {
		l.setBoundsChangedFlag()
	}
}

// --- Virtual mode ---

// Virtual reports whether virtual mode is on.
func (l *List) Virtual() bool { return l.virtual }

// SetVirtual turns on virtual mode. It requires a scroll pane and a default
// item; the size of the default item becomes the uniform item size unless
// one was set. Turning virtual mode on is permanent.
func (l *List) SetVirtual() {
	if l.virtual {
		return
	}
	o := l.owner
	if o.scrollPane == nil {
		panic("fgui: virtual list requires a scroll pane")
	}
	if l.itemSize.X == 0 || l.itemSize.Y == 0 {
		obj := l.GetFromPool("")
		if obj == nil {
			panic("fgui: virtual list requires a default item")
		}
		l.itemSize = Vec2{obj.width, obj.height}
		l.ReturnToPool(obj)
	}
	l.virtual = true
	l.RemoveChildrenToPool()
	l.scrollWatch = o.On(EventScroll, func(*EventContext) { l.refreshVirtualList() })

	cfg := VirtualListConfig{
		ItemWidth:  l.itemSize.X,
		ItemHeight: l.itemSize.Y,
		Horizontal: l.layout == ListSingleRow || l.layout == ListFlowVertical || l.layout == ListPagination,
		Columns:    l.lineItemCount(),
		LineGap:    l.lineGap,
		ColumnGap:  l.columnGap,
	}
	o.backend().ConfigureVirtualList(o.control, cfg)
	l.setBoundsChangedFlag()
}

// ItemSize returns the uniform item size of virtual mode.
func (l *List) ItemSize() Vec2 { return l.itemSize }

// SetItemSize sets the uniform item size of virtual mode.
func (l *List) SetItemSize(v Vec2) {
	if l.itemSize != v {
		l.itemSize = v
		l.setBoundsChangedFlag()
	}
}

// RefreshVirtualList re-renders every realized item.
func (l *List) RefreshVirtualList() {
	if !l.virtual {
		return
	}
	l.refreshVirtualList()
}

// itemRect returns the content-space rectangle of item index in virtual
// mode.
func (l *List) itemRect(index int) Rect {
	o := l.owner
	w, h := l.itemSize.X, l.itemSize.Y
	stepX, stepY := w+float32(l.columnGap), h+float32(l.lineGap)
	per := l.lineItemCount()
	switch l.layout {
	case ListSingleRow:
		return Rect{float32(index) * stepX, 0, w, h}
	case ListFlowHorizontal:
		return Rect{float32(index%per) * stepX, float32(index/per) * stepY, w, h}
	case ListFlowVertical:
		return Rect{float32(index/per) * stepX, float32(index%per) * stepY, w, h}
	case ListPagination:
		rows := l.lineCount
		if rows <= 0 {
			rows = max(int((o.ViewHeight()+float32(l.lineGap))/stepY), 1)
		}
		perPage := per * rows
		page, i := index/perPage, index%perPage
		return Rect{float32(page)*o.ViewWidth() + float32(i%per)*stepX, float32(i/per) * stepY, w, h}
	}
	return Rect{0, float32(index) * stepY, w, h}
}

// contentSize returns the content size of virtual mode.
func (l *List) contentSize() (float32, float32) {
	if l.numItems == 0 {
		return 0, 0
	}
	last := l.itemRect(l.numItems - 1)
	switch l.layout {
	case ListFlowHorizontal:
		per := l.lineItemCount()
		return float32(per)*(l.itemSize.X+float32(l.columnGap)) - float32(l.columnGap), last.Y + last.Height
	case ListFlowVertical:
		per := l.lineItemCount()
		return last.X + last.Width, float32(per)*(l.itemSize.Y+float32(l.lineGap)) - float32(l.lineGap)
	case ListPagination:
		vw := max(l.owner.ViewWidth(), 1)
		pages := floorf(last.X/vw) + 1
		return pages * vw, l.owner.ViewHeight()
	}
	return last.X + last.Width, last.Y + last.Height
}

// visibleRange returns the first and last item indexes intersecting the
// view.
func (l *List) visibleRange() (int, int) {
	o := l.owner
	sp := o.scrollPane
	if l.numItems == 0 || sp == nil {
		return 0, -1
	}
	view := Rect{sp.xPos, sp.yPos, sp.viewSize.X, sp.viewSize.Y}
	stepX := l.itemSize.X + float32(l.columnGap)
	stepY := l.itemSize.Y + float32(l.lineGap)
	per := l.lineItemCount()
	var first, last int
	switch l.layout {
	case ListSingleColumn:
		first = int(view.Y / stepY)
		last = int(math.Ceil(float64((view.Y + view.Height) / stepY)))
	case ListSingleRow:
		first = int(view.X / stepX)
		last = int(math.Ceil(float64((view.X + view.Width) / stepX)))
	case ListFlowHorizontal:
		first = int(view.Y/stepY) * per
		last = int(math.Ceil(float64((view.Y+view.Height)/stepY)))*per + per - 1
	case ListFlowVertical:
		first = int(view.X/stepX) * per
		last = int(math.Ceil(float64((view.X+view.Width)/stepX)))*per + per - 1
	case ListPagination:
		rows := l.lineCount
		if rows <= 0 {
			rows = max(int((o.ViewHeight()+float32(l.lineGap))/stepY), 1)
		}
		perPage := per * rows
		vw := max(o.ViewWidth(), 1)
		first = int(view.X/vw) * perPage
		last = (int(math.Ceil(float64((view.X+view.Width)/vw))))*perPage - 1
	}
	first = max(first, 0)
	last = min(last, l.numItems-1)
	return first, last
}

// refreshVirtualList realizes the items intersecting the view, positions
// them and renders each through ItemRenderer.
func (l *List) refreshVirtualList() {
	if l.refreshing {
		return
	}
	l.refreshing = true
	defer func() { l.refreshing = false }()

	o := l.owner
	cw, ch := l.contentSize()
	l.applyAlign(cw, ch)
	o.setBounds(0, 0, cw, ch)

	first, last := l.visibleRange()
	need := max(last-first+1, 0)
	for len(o.children) > need {
		l.RemoveChildToPoolAt(len(o.children) - 1)
	}
	for k := 0; k < need; k++ {
		index := first + k
		url := ""
		if l.ItemProvider != nil {
			url = l.ItemProvider(index)
			if url != "" && o.rt != nil {
				url = o.rt.Packages.NormalizeURL(url)
			}
		}
		if url == "" {
			url = l.defaultItem
		}
		if k < len(o.children) {
			if c := o.children[k]; c.ResourceURL() != url {
				l.RemoveChildToPoolAt(k)
				if obj := l.GetFromPool(url); obj != nil {
					o.AddChildAt(obj, k)
				}
			}
		} else if l.AddItemFromPool(url) == nil {
			break
		}
	}
	l.firstIndex = first
	for k, c := range o.children {
		index := first + k
		r := l.itemRect(index)
		if l.autoResizeItem {
			switch l.layout {
			case ListSingleColumn:
				c.SetWidth(o.ViewWidth())
			case ListSingleRow:
				c.SetHeight(o.ViewHeight())
			}
		}
		c.SetXY(r.X, r.Y)
		if b := c.button; b != nil {
			b.SetSelected(l.selected[index])
		}
		if l.ItemRenderer != nil {
			l.ItemRenderer(index, c)
		}
	}
	o.backend().RefreshVirtualList(o.control)
}

// renderSlot is the render callback handed to the backend. It re-renders the
// realized item at index.
func (l *List) renderSlot(index int, _ Control) {
	if ci := l.ItemIndexToChildIndex(index); ci != -1 && l.ItemRenderer != nil {
		l.ItemRenderer(index, l.owner.children[ci])
	}
}

// ScrollToView scrolls the item at index into view.
func (l *List) ScrollToView(index int, ani, setFirst bool) {
	o := l.owner
	sp := o.scrollPane
	if sp == nil || index < 0 || index >= l.NumItems() {
		return
	}
	if l.virtual {
		sp.ScrollToViewRect(l.itemRect(index), ani, setFirst)
		return
	}
	o.EnsureBoundsCorrect()
	sp.ScrollToView(o.children[index], ani, setFirst)
}

// FirstChildInView returns the item index of the first item intersecting
// the view, or -1.
func (l *List) FirstChildInView() int {
	o := l.owner
	if l.virtual {
		first, last := l.visibleRange()
		if last < first {
			return -1
		}
		return first
	}
	for i, c := range o.children {
		if o.scrollPane == nil || o.scrollPane.IsChildInView(c) {
			return i
		}
	}
	return -1
}

func (l *List) dispose() {
	for c, h := range l.clickHandles {
		h.Remove()
		delete(l.clickHandles, c)
	}
	l.scrollWatch.Remove()
	if l.pool != nil {
		l.pool.Clear()
	}
	l.selectionController = nil
	l.ItemRenderer = nil
	l.ItemProvider = nil
}

// --- Setup ---

func (l *List) setupBeforeAdd(buf *ByteBuffer, begin int) {
	o := l.owner
	if buf.Seek(begin, 5) {
		l.layout = ListLayoutType(buf.ReadByte())
		l.selectionMode = ListSelectionMode(buf.ReadByte())
		l.align = AlignType(buf.ReadByte())
		l.valign = VertAlignType(buf.ReadByte())
		l.lineGap = int(buf.ReadShort())
		l.columnGap = int(buf.ReadShort())
		l.lineCount = int(buf.ReadShort())
		l.columnCount = int(buf.ReadShort())
		l.autoResizeItem = buf.ReadBool()
		if s, ok := buf.ReadSOK(); ok && s != "" {
			l.SetDefaultItem(s)
		}
		if buf.ReadBool() {
			l.itemSize.X = buf.ReadFloat()
			l.itemSize.Y = buf.ReadFloat()
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
			if buf.Seek(begin, 7) {
				o.setupScroll(buf)
			}
			buf.SetPosition(saved)
		} else {
			o.setupOverflow(overflow)
		}
		if buf.ReadBool() {
			buf.Skip(8) // clip softness
		}
	}

	if !buf.Seek(begin, 8) {
		return
	}
	cnt := int(buf.ReadShort())
	for i := 0; i < cnt; i++ {
		next := int(buf.ReadUshort())
		next += buf.Position()
		url, _ := buf.ReadSOK()
		if url == "" {
			url = l.defaultItem
			if url == "" {
				buf.SetPosition(next)
				continue
			}
		}
		obj := l.GetFromPool(url)
		if obj != nil {
			o.AddChild(obj)
			if s, ok := buf.ReadSOK(); ok {
				obj.SetText(s)
			}
			if s, ok := buf.ReadSOK(); ok {
				obj.SetIcon(s)
			}
			if s, ok := buf.ReadSOK(); ok {
				obj.Name = s
			}
		}
		buf.SetPosition(next)
	}
}
