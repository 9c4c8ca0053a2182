package fgui

// pageMatches reports whether the selected page is one of the display
// pages. An empty page list matches every page.
func (g *Gear) pageMatches() bool {
	if len(g.pages) == 0 {
		return true
	}
	if g.controller == nil {
		return true
	}
	return indexOf(g.pages, g.controller.SelectedPageID()) != -1
}

// AddLock forces a display gear visible and returns a token for ReleaseLock.
func (g *Gear) AddLock() uint32 {
	g.visible++
	return g.lockToken
}

// ReleaseLock releases a lock taken by AddLock. Stale tokens are ignored.
func (g *Gear) ReleaseLock(token uint32) {
	if token == g.lockToken {
		g.visible--
	}
}

// Connected reports whether a display gear lets the owner show.
func (g *Gear) Connected() bool {
	return g.connected()
}

func (g *Gear) connected() bool {
	return g.controller == nil || g.visible > 0
}

// Evaluate combines a Display2 gear with the primary display result.
func (g *Gear) Evaluate(connected bool) bool {
	return g.evaluate(connected)
}

func (g *Gear) evaluate(connected bool) bool {
	v := g.controller == nil || g.pageMatches()
	if g.condition == 0 {
		return connected && v
	}
	return connected || v
}
