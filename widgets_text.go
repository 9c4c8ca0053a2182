package fgui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TextMeasurer is implemented by backends that can measure laid-out text.
// Without it text sizes are estimated from the font size.
type TextMeasurer interface {
	MeasureText(format TextFormat, text string) (w, h float32)
}

// gutter is the padding around measured text.
const gutter = 2

// TextField holds the text of Text, RichText and InputText objects.
type TextField struct {
	owner        *Object
	text         string
	format       TextFormat
	autoSize     AutoSizeType
	ubbEnabled   bool
	templateVars map[string]string

	textWidth, textHeight float32
	updatingSize          bool

	// input text
	promptText   string
	restrict     string
	maxLength    int
	keyboardType int
	password     bool
	editable     bool

	restrictRE  *regexp.Regexp
	restrictSrc string
}

func newTextField(o *Object) *TextField {
	t := &TextField{owner: o, autoSize: AutoSizeBoth, editable: o.Type == ObjectInputText}
	t.format.Size = 12
	t.format.Color = ColorBlack
	if rt := o.rt; rt != nil {
		t.format.Font = rt.Config.DefaultFont
		if rt.Config.FontSize > 0 {
			t.format.Size = rt.Config.FontSize
		}
		t.format.Color = rt.Config.textColor()
	}
	if t.editable {
		t.autoSize = AutoSizeNone
	}
	return t
}

// Text returns the raw text, before template and markup processing.
func (t *TextField) Text() string { return t.text }

// SetText sets the text and resizes the field when auto-sizing.
func (t *TextField) SetText(v string) {
	if t.editable && t.maxLength > 0 && utf8.RuneCountInString(v) > t.maxLength {
		v = string([]rune(v)[:t.maxLength])
	}
	t.text = v
	t.render()
}

// DisplayText returns the text as pushed to the backend.
func (t *TextField) DisplayText() string {
	s := t.text
	if t.templateVars != nil {
		s = parseTemplate(s, t.templateVars)
	}
	if t.ubbEnabled || t.owner.Type == ObjectRichText {
		if rt := t.owner.rt; rt != nil && rt.Factory.StripMarkup != nil {
			s = rt.Factory.StripMarkup(s)
		}
	}
	if t.password {
		s = strings.Repeat("*", utf8.RuneCountInString(s))
	}
	if s == "" && t.editable {
		s = t.promptText
	}
	return s
}

func (t *TextField) render() {
	o := t.owner
	o.backend().SetText(o.control, t.DisplayText())
	t.updateSize()
}

// Format returns the text styling.
func (t *TextField) Format() TextFormat { return t.format }

// SetFormat replaces the text styling.
func (t *TextField) SetFormat(f TextFormat) {
	t.format = f
	t.applyFormat()
}

func (t *TextField) applyFormat() {
	o := t.owner
	o.backend().SetTextFormat(o.control, t.format)
	t.updateSize()
}

// SetColor sets the text color.
func (t *TextField) SetColor(c Color) {
	if t.format.Color == c {
		return
	}
	t.format.Color = c
	t.applyFormat()
}

// SetFontSize sets the font size.
func (t *TextField) SetFontSize(size int) {
	if size < 0 {
		size = 0
	}
	if t.format.Size == size {
		return
	}
	t.format.Size = size
	t.applyFormat()
}

// AutoSize returns the auto-size mode.
func (t *TextField) AutoSize() AutoSizeType { return t.autoSize }

// SetAutoSize changes the auto-size mode.
func (t *TextField) SetAutoSize(v AutoSizeType) {
	if t.autoSize != v {
		t.autoSize = v
		t.updateSize()
	}
}

// UBBEnabled reports whether markup is stripped before display.
func (t *TextField) UBBEnabled() bool { return t.ubbEnabled }

// SetUBBEnabled enables markup stripping.
func (t *TextField) SetUBBEnabled(v bool) {
	if t.ubbEnabled != v {
		t.ubbEnabled = v
		t.render()
	}
}

// TemplateVars returns the template variables, or nil when templating is
// off.
func (t *TextField) TemplateVars() map[string]string { return t.templateVars }

// SetTemplateVars enables templating with vars. A nil map turns it off.
func (t *TextField) SetTemplateVars(vars map[string]string) {
	t.templateVars = vars
	t.render()
}

// SetVar sets one template variable, enabling templating if needed.
func (t *TextField) SetVar(name, value string) {
	if t.templateVars == nil {
		t.templateVars = make(map[string]string)
	}
	t.templateVars[name] = value
	t.render()
}

// TextWidth and TextHeight return the measured size of the display text.
func (t *TextField) TextWidth() float32  { return t.textWidth }
func (t *TextField) TextHeight() float32 { return t.textHeight }

// PromptText returns the placeholder of an empty input field.
func (t *TextField) PromptText() string { return t.promptText }

// SetPromptText sets the placeholder of an empty input field.
func (t *TextField) SetPromptText(v string) {
	t.promptText = v
	t.render()
}

// Restrict returns the allowed-character pattern of an input field.
func (t *TextField) Restrict() string { return t.restrict }

// SetRestrict sets the allowed-character pattern of an input field.
func (t *TextField) SetRestrict(v string) { t.restrict = v }

// MaxLength returns the rune limit of an input field; 0 is unlimited.
func (t *TextField) MaxLength() int { return t.maxLength }

// SetMaxLength sets the rune limit of an input field.
func (t *TextField) SetMaxLength(v int) { t.maxLength = v }

// KeyboardType returns the virtual keyboard hint.
func (t *TextField) KeyboardType() int { return t.keyboardType }

// Password reports whether the text is masked.
func (t *TextField) Password() bool { return t.password }

// SetPassword masks the text.
func (t *TextField) SetPassword(v bool) {
	if t.password != v {
		t.password = v
		t.render()
	}
}

// Editable reports whether the field accepts input.
func (t *TextField) Editable() bool { return t.editable }

// SetEditable enables input on an InputText field.
func (t *TextField) SetEditable(v bool) { t.editable = v }

// Submit fires EventSubmit on the owner. Backends call it when the user
// confirms an input field.
func (t *TextField) Submit() {
	t.owner.Emit(EventSubmit, t.text)
}

func (t *TextField) measure() (float32, float32) {
	s := t.DisplayText()
	if m, ok := t.owner.backend().(TextMeasurer); ok {
		return m.MeasureText(t.format, s)
	}
	size := float32(t.format.Size)
	lineH := size + float32(t.format.LineSpacing)
	var w float32
	lines := strings.Split(s, "\n")
	for _, ln := range lines {
		n := float32(utf8.RuneCountInString(ln))
		lw := n*size*0.6 + max(n-1, 0)*float32(t.format.LetterSpacing)
		w = max(w, lw)
	}
	h := float32(len(lines))*lineH - float32(t.format.LineSpacing)
	if s == "" {
		w, h = 0, size
	}
	return ceilf(w), ceilf(h)
}

func (t *TextField) updateSize() {
	if t.updatingSize {
		return
	}
	t.textWidth, t.textHeight = t.measure()
	o := t.owner
	w, h := t.textWidth+gutter*2, t.textHeight+gutter*2
	t.updatingSize = true
	switch t.autoSize {
	case AutoSizeBoth:
		o.SetSize(w, h, false)
	case AutoSizeHeight:
		o.SetSize(o.rawWidth, h, false)
	}
	t.updatingSize = false
}

func (t *TextField) handleSizeChanged() {
	if t.updatingSize {
		return
	}
	if t.autoSize == AutoSizeHeight {
		t.updateSize()
	}
}

func (t *TextField) setupBeforeAdd(buf *ByteBuffer, begin int) {
	if !buf.Seek(begin, 5) {
		return
	}
	f := &t.format
	if s, ok := buf.ReadSOK(); ok && s != "" {
		f.Font = s
	}
	f.Size = int(buf.ReadShort())
	f.Color = buf.ReadColor()
	f.Align = AlignType(buf.ReadByte())
	f.VertAlign = VertAlignType(buf.ReadByte())
	f.LineSpacing = int(buf.ReadShort())
	f.LetterSpacing = int(buf.ReadShort())
	t.ubbEnabled = buf.ReadBool()
	t.autoSize = AutoSizeType(buf.ReadByte())
	f.Underline = buf.ReadBool()
	f.Italic = buf.ReadBool()
	f.Bold = buf.ReadBool()
	f.SingleLine = buf.ReadBool()
	if buf.ReadBool() {
		f.StrokeColor = buf.ReadColor()
		f.Stroke = buf.ReadFloat()
	}
	if buf.ReadBool() {
		f.ShadowColor = buf.ReadColor()
		f.ShadowOffset.X = buf.ReadFloat()
		f.ShadowOffset.Y = buf.ReadFloat()
	}
	if buf.ReadBool() {
		t.templateVars = make(map[string]string)
	}
	o := t.owner
	o.backend().SetTextFormat(o.control, t.format)
}

func (t *TextField) setupAfterAdd(buf *ByteBuffer, begin int) {
	if t.owner.Type == ObjectInputText && buf.Seek(begin, 4) {
		if s, ok := buf.ReadSOK(); ok {
			t.promptText = s
		}
		if s, ok := buf.ReadSOK(); ok {
			t.restrict = s
		}
		t.maxLength = int(buf.ReadInt())
		t.keyboardType = int(buf.ReadInt())
		t.password = buf.ReadBool()
	}
	if buf.Seek(begin, 6) {
		if s, ok := buf.ReadSOK(); ok {
			t.text = s
		}
	}
	t.render()
}

// parseTemplate replaces {name} and {name=default} with template values.
func parseTemplate(s string, vars map[string]string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	var sb strings.Builder
	for {
		i := strings.IndexByte(s, '{')
		if i == -1 {
			break
		}
		if i > 0 && s[i-1] == '\\' {
			sb.WriteString(s[:i-1])
			sb.WriteByte('{')
			s = s[i+1:]
			continue
		}
		j := strings.IndexByte(s[i:], '}')
		if j == -1 {
			break
		}
		sb.WriteString(s[:i])
		tag := s[i+1 : i+j]
		name, def, hasDef := strings.Cut(tag, "=")
		if v, ok := vars[name]; ok {
			sb.WriteString(v)
		} else if hasDef {
			sb.WriteString(def)
		}
		s = s[i+j+1:]
	}
	sb.WriteString(s)
	return sb.String()
}
