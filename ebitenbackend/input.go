package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/fgui"
)

// maxPointers matches the runtime: the mouse on 0 and touches on 1-9.
const maxPointers = 10

// Key repeat timing in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// pointerTracker maps touch IDs to stable pointer slots between frames.
type pointerTracker struct {
	touchIDs  []ebiten.TouchID
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchLast [maxPointers]fgui.Vec2
	chars     []rune
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (p *pointerTracker) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && p.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !p.touchUsed[i] {
			p.touchUsed[i] = true
			p.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// endStale frees every slot not in active and reports its last position.
func (p *pointerTracker) endStale(active *[maxPointers]bool, end func(slot int, at fgui.Vec2)) {
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && !active[i] {
			end(i, p.touchLast[i])
			p.touchUsed[i] = false
			p.touchMap[i] = 0
		}
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() fgui.KeyModifiers {
	var mods fgui.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= fgui.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= fgui.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= fgui.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= fgui.ModMeta
	}
	return mods
}

// keyRepeats reports whether k was pressed this tick or is auto-repeating.
func keyRepeats(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

// --- Polling ---

// Poll reads mouse, touch, wheel and keyboard state and feeds it to rt.
// Live pointers are skipped while injected input is pending so scripted
// gestures are not interrupted by the real cursor.
func (b *Backend) Poll(rt *fgui.Runtime) {
	mods := readModifiers()
	if !rt.Injecting() {
		b.pollMouse(rt, mods)
		b.pollTouches(rt, mods)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		mx, my := ebiten.CursorPosition()
		rt.ProcessWheel(float32(mx), float32(my), float32(-wy), mods)
	}

	p := &b.pointers
	p.chars = ebiten.AppendInputChars(p.chars[:0])
	if len(p.chars) > 0 {
		rt.TypeText(string(p.chars))
		b.caret.reset()
	}
	for _, k := range [...]struct {
		key  ebiten.Key
		edit fgui.EditKey
	}{
		{ebiten.KeyBackspace, fgui.EditBackspace},
		{ebiten.KeyEnter, fgui.EditEnter},
		{ebiten.KeyNumpadEnter, fgui.EditEnter},
		{ebiten.KeyEscape, fgui.EditEscape},
	} {
		if keyRepeats(k.key) {
			rt.TypeKey(k.edit)
			b.caret.reset()
		}
	}
}

// pollMouse handles mouse input (pointer 0).
func (b *Backend) pollMouse(rt *fgui.Runtime, mods fgui.KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button fgui.MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = fgui.MouseButtonLeft
		case right:
			button = fgui.MouseButtonRight
		default:
			button = fgui.MouseButtonMiddle
		}
	}
	rt.ProcessPointer(0, float32(mx), float32(my), pressed, button, mods)
}

// pollTouches handles touch input (pointers 1-9).
func (b *Backend) pollTouches(rt *fgui.Runtime, mods fgui.KeyModifiers) {
	p := &b.pointers
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range p.touchIDs {
		slot := p.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		at := fgui.Vec2{X: float32(tx), Y: float32(ty)}
		p.touchLast[slot] = at
		rt.ProcessPointer(slot, at.X, at.Y, true, fgui.MouseButtonLeft, mods)
	}
	p.endStale(&active, func(slot int, at fgui.Vec2) {
		rt.ProcessPointer(slot, at.X, at.Y, false, fgui.MouseButtonLeft, mods)
	})
}
