package fgui

// Event types dispatched by objects. Listeners register with Object.On.
const (
	EventClick            = "click"
	EventRightClick       = "rightClick"
	EventTouchBegin       = "touchBegin"
	EventTouchMove        = "touchMove"
	EventTouchEnd         = "touchEnd"
	EventRollOver         = "rollOver"
	EventRollOut          = "rollOut"
	EventMouseWheel       = "mouseWheel"
	EventLongPress        = "longPress"
	EventDoubleClick      = "doubleClick"
	EventPositionChanged  = "positionChanged"
	EventSizeChanged      = "sizeChanged"
	EventStateChanged     = "stateChanged"
	EventChanged          = "changed"
	EventSubmit           = "submit"
	EventClickItem        = "clickItem"
	EventScroll           = "scroll"
	EventScrollEnd        = "scrollEnd"
	EventPullDownRelease  = "pullDownRelease"
	EventPullUpRelease    = "pullUpRelease"
	EventDragStart        = "dragStart"
	EventDragMove         = "dragMove"
	EventDragEnd          = "dragEnd"
	EventDrop             = "drop"
	EventAddedToStage     = "addedToStage"
	EventRemovedFromStage = "removedFromStage"
	EventGearStop         = "gearStop"
	EventFocusIn          = "focusIn"
	EventFocusOut         = "focusOut"
)

// EventContext carries one dispatched event. Listeners may stop bubbling or
// mark the default action as prevented.
type EventContext struct {
	Type   string
	Sender *Object
	Data   any
	Input  *InputEvent

	stopped   bool
	prevented bool
}

// StopPropagation prevents the event from bubbling to further ancestors.
func (e *EventContext) StopPropagation() { e.stopped = true }

// PreventDefault suppresses the sender's default handling (e.g. a button
// toggling on click).
func (e *EventContext) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *EventContext) DefaultPrevented() bool { return e.prevented }

type listenerEntry struct {
	id uint32
	fn func(*EventContext)
}

type eventRegistry struct {
	listeners map[string][]listenerEntry
	nextID    uint32
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id    uint32
	reg   *eventRegistry
	event string
}

// Remove unregisters the listener so it no longer fires. Removing twice is a
// no-op.
func (h ListenerHandle) Remove() {
	if h.reg == nil || h.reg.listeners == nil {
		return
	}
	s := h.reg.listeners[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listenerEntry{}
			h.reg.listeners[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (r *eventRegistry) add(event string, fn func(*EventContext)) ListenerHandle {
	if r.listeners == nil {
		r.listeners = make(map[string][]listenerEntry)
	}
	r.nextID++
	id := r.nextID
	r.listeners[event] = append(r.listeners[event], listenerEntry{id: id, fn: fn})
	return ListenerHandle{id: id, reg: r, event: event}
}

func (r *eventRegistry) has(event string) bool {
	return len(r.listeners[event]) > 0
}

// fire calls every listener for ctx.Type. Listeners added during the
// dispatch wait for the next one; listeners removed during it are skipped.
func (r *eventRegistry) fire(ctx *EventContext) {
	s := r.listeners[ctx.Type]
	switch len(s) {
	case 0:
		return
	case 1:
		s[0].fn(ctx)
		return
	}
	snapshot := make([]listenerEntry, len(s))
	copy(snapshot, s)
	for i, l := range snapshot {
		if i > 0 && !r.live(ctx.Type, l.id) {
			continue
		}
		l.fn(ctx)
	}
}

func (r *eventRegistry) live(event string, id uint32) bool {
	for _, l := range r.listeners[event] {
		if l.id == id {
			return true
		}
	}
	return false
}

func (r *eventRegistry) clear() {
	r.listeners = nil
}

// --- Object event API ---

// On registers fn for events of the given type on this object.
func (o *Object) On(event string, fn func(*EventContext)) ListenerHandle {
	return o.events.add(event, fn)
}

// HasListener reports whether any listener is registered for event.
func (o *Object) HasListener(event string) bool {
	return o.events.has(event)
}

// RemoveAllListeners drops every listener on this object.
func (o *Object) RemoveAllListeners() {
	o.events.clear()
}

// Emit dispatches event to this object's listeners only. It returns true when
// a listener called PreventDefault.
func (o *Object) Emit(event string, data any) bool {
	if !o.events.has(event) {
		return false
	}
	ctx := &EventContext{Type: event, Sender: o, Data: data}
	o.events.fire(ctx)
	return ctx.prevented
}

// dispatch fires event on this object only, carrying data and input.
func (o *Object) dispatch(event string, data any, input *InputEvent) *EventContext {
	ctx := &EventContext{Type: event, Sender: o, Data: data, Input: input}
	o.events.fire(ctx)
	return ctx
}

// Bubble dispatches event to this object and then each ancestor until a
// listener stops propagation.
func (o *Object) Bubble(event string, input *InputEvent) *EventContext {
	ctx := &EventContext{Type: event, Sender: o, Input: input}
	for p := o; p != nil; p = p.parent {
		p.events.fire(ctx)
		if ctx.stopped {
			break
		}
	}
	return ctx
}
