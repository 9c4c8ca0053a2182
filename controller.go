package fgui

import "strconv"

// Controller is a named selector over an ordered list of pages. Changing the
// selection applies every gear bound to the controller before the setter
// returns.
type Controller struct {
	Name                string
	AutoRadioGroupDepth bool

	// OnChanged is called after a selection change has been applied.
	OnChanged func(c *Controller)

	parent        *Object
	pageIDs       []string
	pageNames     []string
	selectedIndex int
	previousIndex int
	changing      bool
}

// NewController creates an empty controller.
func NewController(name string) *Controller {
	return &Controller{Name: name, selectedIndex: -1, previousIndex: -1}
}

// setup reads a controller record.
func (c *Controller) setup(buf *ByteBuffer) {
	begin := buf.Position()
	buf.Seek(begin, 0)
	c.Name = buf.ReadS()
	c.AutoRadioGroupDepth = buf.ReadBool()

	buf.Seek(begin, 1)
	cnt := int(buf.ReadShort())
	c.pageIDs = make([]string, cnt)
	c.pageNames = make([]string, cnt)
	for i := 0; i < cnt; i++ {
		c.pageIDs[i] = buf.ReadS()
		c.pageNames[i] = buf.ReadS()
	}

	home := 0
	if buf.Version >= 2 {
		switch buf.ReadByte() {
		case 1:
			home = int(buf.ReadShort())
		case 2, 3:
			buf.ReadS()
		}
	}

	if buf.Seek(begin, 2) {
		cnt := int(buf.ReadShort())
		for i := 0; i < cnt; i++ {
			next := int(buf.ReadUshort())
			buf.SetPosition(buf.Position() + next)
		}
	}

	if len(c.pageIDs) > 0 {
		if home < 0 || home >= len(c.pageIDs) {
			home = 0
		}
		c.selectedIndex = home
	} else {
		c.selectedIndex = -1
	}
}

// Parent returns the owning container.
func (c *Controller) Parent() *Object { return c.parent }

// Changing reports whether a selection change is being applied.
func (c *Controller) Changing() bool { return c.changing }

// SelectedIndex returns the selected page index, or -1.
func (c *Controller) SelectedIndex() int { return c.selectedIndex }

// SetSelectedIndex selects the page at index. Unchanged or out-of-range
// indices are ignored.
func (c *Controller) SetSelectedIndex(index int) {
	if index == c.selectedIndex || index < -1 || index >= len(c.pageIDs) {
		return
	}
	c.changing = true
	c.previousIndex = c.selectedIndex
	c.selectedIndex = index
	if c.parent != nil {
		c.parent.applyController(c)
	}
	if c.OnChanged != nil {
		c.OnChanged(c)
	}
	c.changing = false
}

// SetSelectedIndexSilently changes the selection without applying gears or
// calling OnChanged.
func (c *Controller) SetSelectedIndexSilently(index int) {
	if index < -1 || index >= len(c.pageIDs) {
		return
	}
	c.previousIndex = c.selectedIndex
	c.selectedIndex = index
}

// PreviousIndex returns the index selected before the last change.
func (c *Controller) PreviousIndex() int { return c.previousIndex }

// SelectedPage returns the name of the selected page, or "".
func (c *Controller) SelectedPage() string {
	if c.selectedIndex == -1 {
		return ""
	}
	return c.pageNames[c.selectedIndex]
}

// SetSelectedPage selects the page with the given name. Unknown names are
// ignored.
func (c *Controller) SetSelectedPage(name string) {
	if i := indexOf(c.pageNames, name); i != -1 {
		c.SetSelectedIndex(i)
	}
}

// PreviousPage returns the name of the previously selected page, or "".
func (c *Controller) PreviousPage() string {
	if c.previousIndex == -1 || c.previousIndex >= len(c.pageNames) {
		return ""
	}
	return c.pageNames[c.previousIndex]
}

// SelectedPageID returns the id of the selected page, or "".
func (c *Controller) SelectedPageID() string {
	if c.selectedIndex == -1 {
		return ""
	}
	return c.pageIDs[c.selectedIndex]
}

// SetSelectedPageID selects the page with the given id. Unknown ids are
// ignored.
func (c *Controller) SetSelectedPageID(id string) {
	if i := indexOf(c.pageIDs, id); i != -1 {
		c.SetSelectedIndex(i)
	}
}

// PreviousPageID returns the id of the previously selected page, or "".
func (c *Controller) PreviousPageID() string {
	if c.previousIndex == -1 || c.previousIndex >= len(c.pageIDs) {
		return ""
	}
	return c.pageIDs[c.previousIndex]
}

// PageCount returns the number of pages.
func (c *Controller) PageCount() int { return len(c.pageIDs) }

// PageID returns the id of the page at index.
func (c *Controller) PageID(index int) string { return c.pageIDs[index] }

// PageName returns the name of the page at index.
func (c *Controller) PageName(index int) string { return c.pageNames[index] }

// PageIndexByID returns the index of the page with the given id, or -1.
func (c *Controller) PageIndexByID(id string) int { return indexOf(c.pageIDs, id) }

// PageNameByID returns the name of the page with the given id, or "".
func (c *Controller) PageNameByID(id string) string {
	if i := indexOf(c.pageIDs, id); i != -1 {
		return c.pageNames[i]
	}
	return ""
}

// HasPage reports whether a page with the given name exists.
func (c *Controller) HasPage(name string) bool { return indexOf(c.pageNames, name) != -1 }

// AddPage appends a page and returns its generated id.
func (c *Controller) AddPage(name string) string {
	return c.AddPageAt(name, len(c.pageIDs))
}

// AddPageAt inserts a page at index and returns its generated id.
func (c *Controller) AddPageAt(name string, index int) string {
	id := c.nextPageID()
	if index < 0 || index > len(c.pageIDs) {
		panic("fgui: page index out of range")
	}
	c.pageIDs = insertString(c.pageIDs, index, id)
	c.pageNames = insertString(c.pageNames, index, name)
	if c.selectedIndex == -1 {
		c.SetSelectedIndex(0)
	} else if index <= c.selectedIndex {
		c.selectedIndex++
	}
	return id
}

func (c *Controller) nextPageID() string {
	n := len(c.pageIDs)
	for {
		id := "p" + strconv.Itoa(n)
		if indexOf(c.pageIDs, id) == -1 {
			return id
		}
		n++
	}
}

// RemovePage removes the page with the given name.
func (c *Controller) RemovePage(name string) {
	if i := indexOf(c.pageNames, name); i != -1 {
		c.RemovePageAt(i)
	}
}

// RemovePageAt removes the page at index, moving the selection to a
// neighbouring page when the selected page is removed.
func (c *Controller) RemovePageAt(index int) {
	if index < 0 || index >= len(c.pageIDs) {
		panic("fgui: page index out of range")
	}
	c.pageIDs = append(c.pageIDs[:index], c.pageIDs[index+1:]...)
	c.pageNames = append(c.pageNames[:index], c.pageNames[index+1:]...)
	switch {
	case c.selectedIndex >= len(c.pageIDs):
		c.selectedIndex = -1
		c.SetSelectedIndex(len(c.pageIDs) - 1)
	case c.selectedIndex > index:
		c.selectedIndex--
	case c.selectedIndex == index && c.parent != nil:
		c.parent.applyController(c)
	}
}

// ClearPages removes every page and clears the selection.
func (c *Controller) ClearPages() {
	c.pageIDs = c.pageIDs[:0]
	c.pageNames = c.pageNames[:0]
	if c.selectedIndex != -1 {
		c.SetSelectedIndexSilently(-1)
		if c.parent != nil {
			c.parent.applyController(c)
		}
	}
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func insertString(s []string, i int, v string) []string {
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
