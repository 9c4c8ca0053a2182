package fgui

// syntheticPointerEvent is one injected pointer sample in screen space.
type syntheticPointerEvent struct {
	x, y    float32
	pressed bool
}

// InjectPress queues a left-button press at the screen point. Update feeds
// one queued sample per frame through ProcessPointer.
func (rt *Runtime) InjectPress(x, y float32) {
	rt.injectQueue = append(rt.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a move with the button held. Use it between InjectPress
// and InjectRelease to drag.
func (rt *Runtime) InjectMove(x, y float32) {
	rt.injectQueue = append(rt.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a left-button release at the screen point.
func (rt *Runtime) InjectRelease(x, y float32) {
	rt.injectQueue = append(rt.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press and a release at the same point. It consumes
// two frames.
func (rt *Runtime) InjectClick(x, y float32) {
	rt.InjectPress(x, y)
	rt.InjectRelease(x, y)
}

// InjectDrag queues a press at from, frames-2 evenly spaced moves and a
// release at to. frames is at least 2.
func (rt *Runtime) InjectDrag(fromX, fromY, toX, toY float32, frames int) {
	if frames < 2 {
		frames = 2
	}
	rt.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps+1)
		rt.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	rt.InjectRelease(toX, toY)
}

// Injecting reports whether injected samples are pending. Backends skip
// real pointer input while it is true.
func (rt *Runtime) Injecting() bool { return len(rt.injectQueue) > 0 }

// processInjectedInput feeds the oldest queued sample to pointer 0 and
// reports whether there was one.
func (rt *Runtime) processInjectedInput() bool {
	if len(rt.injectQueue) == 0 {
		return false
	}
	ev := rt.injectQueue[0]
	copy(rt.injectQueue, rt.injectQueue[1:])
	rt.injectQueue = rt.injectQueue[:len(rt.injectQueue)-1]
	rt.ProcessPointer(0, ev.x, ev.y, ev.pressed, MouseButtonLeft, 0)
	return true
}
