package fgui

import (
	"regexp"
	"unicode/utf8"
)

// EditKey is an editing key delivered to the focused input field.
type EditKey uint8

const (
	EditBackspace EditKey = iota
	EditEnter
	EditEscape
)

// Focus returns the input field receiving typed text, or nil.
func (rt *Runtime) Focus() *Object { return rt.input.focus }

// SetFocus gives keyboard focus to o. Only editable input fields take
// focus; anything else, including nil, clears it. EventFocusOut and
// EventFocusIn fire on the fields losing and gaining focus.
func (rt *Runtime) SetFocus(o *Object) {
	if o != nil && (o.disposed || o.text == nil || o.Type != ObjectInputText || !o.text.editable) {
		o = nil
	}
	old := rt.input.focus
	if old == o {
		return
	}
	rt.input.focus = o
	if old != nil && !old.disposed {
		old.Emit(EventFocusOut, nil)
	}
	if o != nil {
		o.Emit(EventFocusIn, nil)
	}
}

// focusFromPress moves focus to the input field under a press, or clears it.
func (rt *Runtime) focusFromPress(target *Object) {
	var field *Object
	for o := target; o != nil; o = o.parent {
		if o.Type == ObjectInputText {
			field = o
			break
		}
	}
	rt.SetFocus(field)
}

// TypeText inserts s at the end of the focused field.
func (rt *Runtime) TypeText(s string) {
	if f := rt.input.focus; f != nil && s != "" {
		f.text.InsertText(s)
	}
}

// TypeKey applies k to the focused field. Enter submits it and Escape
// drops focus.
func (rt *Runtime) TypeKey(k EditKey) {
	f := rt.input.focus
	if f == nil {
		return
	}
	switch k {
	case EditBackspace:
		f.text.DeleteBackward()
	case EditEnter:
		f.text.Submit()
	case EditEscape:
		rt.SetFocus(nil)
	}
}

// --- Editing ---

// InsertText appends s, keeping only characters the restrict pattern
// accepts, and fires EventChanged when the text changed.
func (t *TextField) InsertText(s string) {
	if !t.editable {
		return
	}
	if t.restrict != "" {
		s = t.filterRestricted(s)
	}
	if s == "" {
		return
	}
	old := t.text
	t.SetText(old + s)
	if t.text != old {
		t.owner.Emit(EventChanged, nil)
	}
}

// DeleteBackward removes the last character and fires EventChanged.
func (t *TextField) DeleteBackward() {
	if !t.editable || t.text == "" {
		return
	}
	_, n := utf8.DecodeLastRuneInString(t.text)
	t.SetText(t.text[:len(t.text)-n])
	t.owner.Emit(EventChanged, nil)
}

// filterRestricted keeps the runes of s that match the restrict pattern. An
// invalid pattern accepts everything.
func (t *TextField) filterRestricted(s string) string {
	if t.restrictRE == nil || t.restrictSrc != t.restrict {
		re, err := regexp.Compile(t.restrict)
		if err != nil {
			debugWarn("input %q: restrict %q: %v", t.owner.Name, t.restrict, err)
			return s
		}
		t.restrictRE, t.restrictSrc = re, t.restrict
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if t.restrictRE.MatchString(string(r)) {
			out = append(out, r)
		}
	}
	return string(out)
}
