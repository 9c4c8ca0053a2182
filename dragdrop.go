package fgui

// dragAgentSize is the size of the loader that shows the dragged icon.
const dragAgentSize = 100

// dragAgentOrder keeps the agent above everything else on the root.
const dragAgentOrder = 1 << 20

// DragDropManager drags an icon across the root and delivers the source
// data to the object it is dropped on. The first object under the pointer,
// or its nearest ancestor, with an EventDrop listener receives the drop.
type DragDropManager struct {
	rt         *Runtime
	agent      *Object
	source     *Object
	sourceData any
	dragging   bool
}

func newDragDropManager(rt *Runtime) *DragDropManager {
	a := newObject(rt, ObjectLoader)
	a.Name = "dragAgent"
	a.SetTouchable(false)
	a.SetSize(dragAgentSize, dragAgentSize, false)
	a.SetPivot(0.5, 0.5, true)
	a.SetSortingOrder(dragAgentOrder)
	a.loader.SetAlign(AlignCenter)
	a.loader.SetVertAlign(VertAlignMiddle)
	m := &DragDropManager{rt: rt, agent: a}
	a.On(EventDragEnd, m.onDragEnd)
	return m
}

// Agent returns the loader that follows the pointer.
func (m *DragDropManager) Agent() *Object { return m.agent }

// Dragging reports whether a drag is in progress.
func (m *DragDropManager) Dragging() bool { return m.dragging }

// Source returns the object the drag started from. It is nil when no drag
// is running or the source was disposed.
func (m *DragDropManager) Source() *Object { return m.source }

// StartDrag shows icon under pointerID and carries sourceData until the
// pointer is released. It does nothing while another drag is running.
func (m *DragDropManager) StartDrag(source *Object, icon string, sourceData any, pointerID int) {
	if m.dragging {
		return
	}
	m.dragging = true
	m.source = source
	m.sourceData = sourceData
	m.agent.loader.SetURL(icon)
	r := m.rt.root
	r.obj.AddChild(m.agent)
	pt := r.obj.contentPoint(m.rt.PointerPosition())
	m.agent.SetXY(pt.X, pt.Y)
	m.agent.StartDrag(pointerID)
}

// Cancel ends the drag without a drop.
func (m *DragDropManager) Cancel() {
	if !m.dragging {
		return
	}
	m.agent.StopDrag()
	m.finish()
}

func (m *DragDropManager) finish() {
	m.dragging = false
	m.source = nil
	m.sourceData = nil
	if m.agent.parent != nil {
		m.agent.parent.RemoveChild(m.agent, false)
	}
	m.agent.loader.SetURL("")
}

func (m *DragDropManager) onDragEnd(ctx *EventContext) {
	if !m.dragging {
		return
	}
	data := m.sourceData
	m.finish()

	var pos Vec2
	if ctx.Input != nil {
		pos = Vec2{ctx.Input.X, ctx.Input.Y}
	} else {
		pos = m.rt.PointerPosition()
	}
	for t := m.rt.ObjectAt(pos); t != nil; t = t.parent {
		if t.HasListener(EventDrop) {
			t.dispatch(EventDrop, data, ctx.Input)
			return
		}
	}
}

func (m *DragDropManager) objectDisposed(o *Object) {
	if o == m.source {
		m.source = nil
	}
}
