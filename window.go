package fgui

// Window is a movable top-level container shown on the root. Its content
// pane is a component; a child named "frame" supplies the optional
// "closeButton", "dragArea" and "contentArea" parts.
type Window struct {
	obj         *Object
	contentPane *Object
	frame       *Object
	closeButton *Object
	dragArea    *Object
	contentArea *Object
	modal       bool

	// BringToFrontOnClick raises the window when it is pressed.
	BringToFrontOnClick bool

	// OnShown and OnHide run after the window is added to or removed from
	// the root.
	OnShown func(w *Window)
	OnHide  func(w *Window)

	closeHandle ListenerHandle
	dragHandle  ListenerHandle
}

// NewWindow creates an empty window.
func NewWindow(rt *Runtime) *Window {
	o := newObject(rt, ObjectComponent)
	o.Name = "window"
	w := &Window{obj: o, BringToFrontOnClick: true}
	o.window = w
	o.On(EventTouchBegin, w.onTouchBegin)
	return w
}

// Object returns the window container.
func (w *Window) Object() *Object { return w.obj }

// ContentPane returns the component shown by the window.
func (w *Window) ContentPane() *Object { return w.contentPane }

// SetContentPane replaces the window content. The window takes the pane's
// size and follows its resizes.
func (w *Window) SetContentPane(pane *Object) {
	if w.contentPane == pane {
		return
	}
	if w.contentPane != nil {
		w.obj.RemoveChild(w.contentPane, false)
	}
	w.closeHandle.Remove()
	w.dragHandle.Remove()
	w.frame, w.closeButton, w.dragArea, w.contentArea = nil, nil, nil, nil

	w.contentPane = pane
	if pane == nil {
		return
	}
	w.obj.AddChild(pane)
	w.obj.SetSize(pane.width, pane.height, false)
	pane.relations.Add(w.obj, RelationSize, false)
	w.frame = pane.ChildByName("frame")
	if w.frame != nil {
		w.SetCloseButton(w.frame.ChildByName("closeButton"))
		w.SetDragArea(w.frame.ChildByName("dragArea"))
		w.contentArea = w.frame.ChildByName("contentArea")
	}
}

// Frame returns the "frame" child of the content pane, or nil.
func (w *Window) Frame() *Object { return w.frame }

// ContentArea returns the frame's "contentArea" child, or nil.
func (w *Window) ContentArea() *Object { return w.contentArea }

// SetContentArea overrides the content area.
func (w *Window) SetContentArea(o *Object) { w.contentArea = o }

// CloseButton returns the object that hides the window on click.
func (w *Window) CloseButton() *Object { return w.closeButton }

// SetCloseButton makes clicks on b hide the window.
func (w *Window) SetCloseButton(b *Object) {
	w.closeHandle.Remove()
	w.closeButton = b
	if b != nil {
		w.closeHandle = b.On(EventClick, func(*EventContext) { w.Hide() })
	}
}

// DragArea returns the object that moves the window when dragged.
func (w *Window) DragArea() *Object { return w.dragArea }

// SetDragArea makes drags on a move the window.
func (w *Window) SetDragArea(a *Object) {
	if w.dragArea != nil {
		w.dragArea.SetDraggable(false)
	}
	w.dragHandle.Remove()
	w.dragArea = a
	if a == nil {
		return
	}
	a.SetDraggable(true)
	w.dragHandle = a.On(EventDragStart, func(ctx *EventContext) {
		ctx.PreventDefault()
		if ctx.Input != nil {
			w.obj.StartDrag(ctx.Input.PointerID)
		}
	})
}

// Modal reports whether the window dims and blocks what is below it.
func (w *Window) Modal() bool { return w.modal }

// SetModal sets the modal flag.
func (w *Window) SetModal(v bool) {
	w.modal = v
	if w.IsShowing() {
		w.obj.rt.root.adjustModalLayer()
	}
}

// Show adds the window to its runtime's root.
func (w *Window) Show() {
	if r := w.obj.root(); r != nil {
		r.ShowWindow(w)
	}
}

// Hide removes the window from the root.
func (w *Window) Hide() {
	if r := w.obj.root(); r != nil && w.IsShowing() {
		r.HideWindow(w)
	}
}

// ToggleStatus shows a hidden window, raises a covered one, and hides a
// window that is already on top.
func (w *Window) ToggleStatus() {
	switch {
	case !w.IsShowing():
		w.Show()
	case w.IsTop():
		w.Hide()
	default:
		w.BringToFront()
	}
}

// IsShowing reports whether the window is on the root.
func (w *Window) IsShowing() bool {
	r := w.obj.root()
	return r != nil && w.obj.parent == r.obj
}

// IsTop reports whether no other window is above this one.
func (w *Window) IsTop() bool {
	r := w.obj.root()
	return r != nil && r.TopWindow() == w
}

// BringToFront raises the window above the other windows.
func (w *Window) BringToFront() {
	if r := w.obj.root(); r != nil {
		r.BringToFront(w)
	}
}

// Center places the window in the middle of the root.
func (w *Window) Center() { w.obj.Center(false) }

func (w *Window) shown() {
	if w.OnShown != nil {
		w.OnShown(w)
	}
}

func (w *Window) hidden() {
	if w.OnHide != nil {
		w.OnHide(w)
	}
}

func (w *Window) onTouchBegin(*EventContext) {
	if w.BringToFrontOnClick && w.IsShowing() {
		w.BringToFront()
	}
}

// Dispose hides and disposes the window with its content.
func (w *Window) Dispose() {
	w.Hide()
	w.closeHandle.Remove()
	w.dragHandle.Remove()
	w.obj.Dispose()
}
