package fgui

import (
	"testing"
)

const widgetPkgID = "pk000030"

// newWidgetPackage starts a package holding widget components.
func newWidgetPackage() *pkgBuilder {
	return newPkgBuilder(widgetPkgID, "Widgets")
}

// addButton adds a 60x20 button with every state page and a graph face.
func addButton(p *pkgBuilder, id, name string, mode ButtonMode) {
	c := p.newComp(60, 20).controller("button",
		ButtonUp, ButtonDown, ButtonOver, ButtonSelectedOver, ButtonDisabled, ButtonSelectedDisabled).
		buttonExt(mode)
	face := Color{0.2, 0.2, 0.2, 1}
	c.child(ObjectGraph, "", "bg", 0, 0, 60, 20).graph = &face
	p.addComponent(id, name, ObjectButton, c)
}

// barExt writes the progress bar and slider extension data.
func (c *compBuilder) barExt(tt ProgressTitleType, reverse, slider bool) *compBuilder {
	var w wbuf
	w.u8(byte(tt))
	w.boolean(reverse)
	if slider {
		w.boolean(true) // whole numbers
		w.boolean(true) // change on click
	}
	c.ext = w.b
	return c
}

func buttonPage(o *Object) string {
	return o.ControllerByName("button").SelectedPage()
}

// --- Button ---

func TestButtonCommonStates(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newWidgetPackage()
	addButton(p, "btn", "Btn", ButtonCommon)
	mustAddPackage(t, rt, p)
	o := rt.Root().AddChild(rt.CreateObject("Widgets", "Btn"))
	clicks := 0
	o.On(EventClick, func(*EventContext) { clicks++ })

	if buttonPage(o) != ButtonUp {
		t.Fatalf("initial page = %q", buttonPage(o))
	}
	rt.ProcessPointer(0, 10, 10, false, MouseButtonLeft, 0)
	if buttonPage(o) != ButtonOver {
		t.Errorf("hover page = %q, want over", buttonPage(o))
	}
	rt.ProcessPointer(0, 10, 10, true, MouseButtonLeft, 0)
	if buttonPage(o) != ButtonDown {
		t.Errorf("pressed page = %q, want down", buttonPage(o))
	}
	rt.ProcessPointer(0, 10, 10, false, MouseButtonLeft, 0)
	if buttonPage(o) != ButtonOver || clicks != 1 {
		t.Errorf("released page = %q clicks %d, want over 1", buttonPage(o), clicks)
	}
	rt.ProcessPointer(0, 500, 500, false, MouseButtonLeft, 0)
	if buttonPage(o) != ButtonUp {
		t.Errorf("page after leaving = %q, want up", buttonPage(o))
	}

	o.SetGrayed(true)
	if buttonPage(o) != ButtonDisabled {
		t.Errorf("grayed page = %q, want disabled", buttonPage(o))
	}
	o.AsButton().SetSelected(true)
	if o.AsButton().Selected() {
		t.Error("common button became selected")
	}
}

func TestButtonCheckToggles(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newWidgetPackage()
	addButton(p, "chk", "Check", ButtonCheck)
	mustAddPackage(t, rt, p)
	o := rt.Root().AddChild(rt.CreateObject("Widgets", "Check"))
	b := o.AsButton()
	changed := 0
	o.On(EventChanged, func(*EventContext) { changed++ })

	rt.ProcessPointer(0, 10, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 10, 10, false, MouseButtonLeft, 0)
	if !b.Selected() || changed != 1 {
		t.Fatalf("selected=%v changed=%d after one click", b.Selected(), changed)
	}
	if buttonPage(o) != ButtonSelectedOver {
		t.Errorf("page = %q, want selectedOver", buttonPage(o))
	}
	rt.ProcessPointer(0, 500, 500, false, MouseButtonLeft, 0)
	if buttonPage(o) != ButtonDown {
		t.Errorf("page after leaving = %q, want down", buttonPage(o))
	}

	b.FireClick(false)
	if b.Selected() || changed != 2 {
		t.Errorf("selected=%v changed=%d after FireClick", b.Selected(), changed)
	}
	b.SetChangeStateOnClick(false)
	b.FireClick(false)
	if b.Selected() {
		t.Error("click changed state with changeStateOnClick off")
	}
}

func TestButtonRadioRelatedController(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newWidgetPackage()
	addButton(p, "rad", "Radio", ButtonRadio)
	mustAddPackage(t, rt, p)

	parent := newTestComponent(rt, 200, 100)
	c := NewController("tab")
	ids := []string{c.AddPage("a"), c.AddPage("b")}
	parent.AddController(c)
	var radios []*Button
	for i, id := range ids {
		r := parent.AddChild(rt.CreateObject("Widgets", "Radio"))
		r.SetXY(float32(70*i), 0)
		r.AsButton().SetRelatedController(c, id)
		radios = append(radios, r.AsButton())
	}
	if !radios[0].Selected() || radios[1].Selected() {
		t.Fatal("initial selection does not follow the controller")
	}

	radios[1].FireClick(false)
	if c.SelectedIndex() != 1 {
		t.Errorf("controller = %d, want 1", c.SelectedIndex())
	}
	if radios[0].Selected() || !radios[1].Selected() {
		t.Error("radio group did not switch")
	}
	radios[1].FireClick(false)
	if !radios[1].Selected() {
		t.Error("clicking a selected radio deselected it")
	}

	c.SetSelectedIndex(0)
	if !radios[0].Selected() || radios[1].Selected() {
		t.Error("controller change not mirrored")
	}
}

func TestButtonSoundUsesPlayer(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newWidgetPackage()
	addButton(p, "btn", "Btn", ButtonCommon)
	mustAddPackage(t, rt, p)
	half := float32(0.5)
	rt.Config.ButtonSoundVolume = &half
	var url string
	var vol float32
	rt.SoundPlayer = func(u string, v float32) { url, vol = u, v }

	b := rt.CreateObject("Widgets", "Btn").AsButton()
	b.SetSound("ui://pk/tick")
	b.FireClick(false)
	if url != "ui://pk/tick" || vol != 0.5 {
		t.Errorf("played %q at %v, want ui://pk/tick at 0.5", url, vol)
	}
}

// --- Progress bar and slider ---

func newBar(t *testing.T, kind ObjectType, reverse bool) (*Runtime, *Object) {
	t.Helper()
	rt, _ := newTestRuntime(t)
	p := newWidgetPackage()
	c := p.newComp(200, 20).barExt(ProgressTitlePercent, reverse, kind == ObjectSlider)
	fill := Color{0, 1, 0, 1}
	c.child(ObjectGraph, "", "bar", 0, 0, 200, 20).graph = &fill
	if kind == ObjectSlider {
		grip := Color{1, 1, 1, 1}
		c.child(ObjectGraph, "", "grip", 0, 0, 10, 20).graph = &grip
	}
	p.addComponent("bar", "Bar", kind, c)
	mustAddPackage(t, rt, p)
	o := rt.CreateObject("Widgets", "Bar")
	if o == nil {
		t.Fatal("bar not created")
	}
	return rt, o
}

func TestProgressBarStretchesBar(t *testing.T) {
	_, o := newBar(t, ObjectProgressBar, false)
	pb := o.AsProgressBar()
	bar := o.ChildByName("bar")
	if bar.Width() != 100 {
		t.Errorf("default bar width = %v, want 100 at value 50", bar.Width())
	}
	pb.SetValue(25)
	if bar.Width() != 50 {
		t.Errorf("bar width = %v, want 50", bar.Width())
	}
	pb.SetValue(500)
	if bar.Width() != 200 {
		t.Errorf("overfull bar width = %v, want 200", bar.Width())
	}
	pb.SetMin(100)
	pb.SetValue(100)
	if bar.Width() != 0 {
		t.Errorf("bar width at min = %v, want 0", bar.Width())
	}
}

func TestProgressBarReverse(t *testing.T) {
	_, o := newBar(t, ObjectProgressBar, true)
	o.AsProgressBar().SetValue(25)
	bar := o.ChildByName("bar")
	if bar.X() != 150 || bar.Width() != 50 {
		t.Errorf("reversed bar at %v width %v, want 150 50", bar.X(), bar.Width())
	}
}

func TestProgressBarTweenValue(t *testing.T) {
	rt, o := newBar(t, ObjectProgressBar, false)
	pb := o.AsProgressBar()
	bar := o.ChildByName("bar")
	pb.TweenValue(100, 1)
	if pb.Value() != 100 {
		t.Errorf("Value = %v, want the target 100", pb.Value())
	}
	rt.Update(0.5)
	if bar.Width() != 150 {
		t.Errorf("mid tween width = %v, want 150", bar.Width())
	}
	rt.Update(0.6)
	if bar.Width() != 200 {
		t.Errorf("final width = %v, want 200", bar.Width())
	}

	pb.TweenValue(0, 1)
	pb.SetValue(40)
	rt.Update(1)
	if bar.Width() != 80 {
		t.Errorf("SetValue did not stop the tween: width %v", bar.Width())
	}
}

func TestProgressTitle(t *testing.T) {
	tests := []struct {
		tt         ProgressTitleType
		v, maxV, p float64
		want       string
	}{
		{ProgressTitlePercent, 33, 100, 0.336, "33%"},
		{ProgressTitleValueAndMax, 2.6, 10, 0.26, "3/10"},
		{ProgressTitleValue, 7.2, 10, 0.72, "7"},
		{ProgressTitleMax, 7, 10.4, 0.7, "10"},
	}
	for _, tt := range tests {
		if got := progressTitle(tt.tt, tt.v, tt.maxV, tt.p); got != tt.want {
			t.Errorf("progressTitle(%v) = %q, want %q", tt.tt, got, tt.want)
		}
	}
}

func TestSliderDragGrip(t *testing.T) {
	rt, o := newBar(t, ObjectSlider, false)
	rt.Root().AddChild(o)
	s := o.AsSlider()
	grip := o.ChildByName("grip")
	if grip.X() != 100 {
		t.Fatalf("grip x = %v, want 100 at value 50", grip.X())
	}
	changed := 0
	o.On(EventChanged, func(*EventContext) { changed++ })

	rt.ProcessPointer(0, 105, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 145, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 145, 10, false, MouseButtonLeft, 0)
	if s.Value() != 70 || changed != 1 {
		t.Errorf("value %v changed %d, want 70 1", s.Value(), changed)
	}
	if grip.X() != 140 {
		t.Errorf("grip x = %v, want 140", grip.X())
	}

	// clicking the bar left of the grip moves by the distance to the grip
	rt.ProcessPointer(0, 20, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, 20, 10, false, MouseButtonLeft, 0)
	if s.Value() != 10 {
		t.Errorf("value after bar click = %v, want 10", s.Value())
	}

	s.SetCanDrag(false)
	s.SetChangeOnClick(false)
	gx := grip.X()
	rt.ProcessPointer(0, gx+5, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, gx+60, 10, true, MouseButtonLeft, 0)
	rt.ProcessPointer(0, gx+60, 10, false, MouseButtonLeft, 0)
	if s.Value() != 10 {
		t.Errorf("locked slider moved the value to %v", s.Value())
	}
}

// --- Text ---

func TestTextFieldAutoSize(t *testing.T) {
	rt, b := newTestRuntime(t)
	o := rt.NewObject(ObjectText)
	o.SetText("abcd")
	tf := o.AsTextField()
	if tf.TextWidth() != 29 || tf.TextHeight() != 12 {
		t.Errorf("text size %vx%v, want 29x12", tf.TextWidth(), tf.TextHeight())
	}
	if o.Width() != 33 || o.Height() != 16 {
		t.Errorf("field size %vx%v, want 33x16", o.Width(), o.Height())
	}
	if got := b.get(o.control).text; got != "abcd" {
		t.Errorf("backend text = %q", got)
	}

	tf.SetAutoSize(AutoSizeNone)
	o.SetText("a much longer line")
	if o.Width() != 33 {
		t.Errorf("fixed-size field grew to %v", o.Width())
	}
}

func TestTextFieldTemplate(t *testing.T) {
	rt, b := newTestRuntime(t)
	o := rt.NewObject(ObjectText)
	o.SetText("hp {hp=0}/{max}")
	tf := o.AsTextField()
	tf.SetVar("max", "10")
	if got := b.get(o.control).text; got != "hp 0/10" {
		t.Errorf("display = %q, want hp 0/10", got)
	}
	tf.SetVar("hp", "7")
	if tf.DisplayText() != "hp 7/10" || o.Text() != "hp {hp=0}/{max}" {
		t.Errorf("display %q raw %q", tf.DisplayText(), o.Text())
	}
	tf.SetTemplateVars(nil)
	if tf.DisplayText() != "hp {hp=0}/{max}" {
		t.Errorf("templating still on: %q", tf.DisplayText())
	}
}

func TestParseTemplate(t *testing.T) {
	vars := map[string]string{"name": "Ann", "n": "3"}
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"hi {name}", "hi Ann"},
		{"{missing} x", " x"},
		{"{missing=none}", "none"},
		{"{n}{n}", "33"},
		{`\{name}`, "{name}"},
		{"open {name", "open {name"},
	}
	for _, tt := range tests {
		if got := parseTemplate(tt.in, vars); got != tt.want {
			t.Errorf("parseTemplate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInputTextField(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewObject(ObjectInputText)
	tf := o.AsTextField()
	if !tf.Editable() || tf.AutoSize() != AutoSizeNone {
		t.Fatal("input field defaults wrong")
	}
	tf.SetPromptText("name")
	if tf.DisplayText() != "name" {
		t.Errorf("empty input shows %q, want the prompt", tf.DisplayText())
	}
	tf.SetMaxLength(3)
	o.SetText("héllo")
	if o.Text() != "hél" {
		t.Errorf("text = %q, want hél", o.Text())
	}
	tf.SetPassword(true)
	if tf.DisplayText() != "***" {
		t.Errorf("password display = %q", tf.DisplayText())
	}
	var submitted any
	o.On(EventSubmit, func(ctx *EventContext) { submitted = ctx.Data })
	tf.Submit()
	if submitted != "hél" {
		t.Errorf("submitted %v", submitted)
	}
}

func TestRichTextStripsMarkup(t *testing.T) {
	rt, b := newTestRuntime(t)
	rt.Factory.StripMarkup = func(s string) string { return "<" + s + ">" }
	o := rt.NewObject(ObjectRichText)
	o.SetText("[b]x[/b]")
	if got := b.get(o.control).text; got != "<[b]x[/b]>" {
		t.Errorf("backend text = %q", got)
	}
}

// --- Loader ---

func TestLoaderScalesComponentContent(t *testing.T) {
	rt, _ := newTestRuntime(t)
	p := newWidgetPackage()
	p.addComponent("box", "Box", ObjectComponent, p.newComp(200, 100))
	mustAddPackage(t, rt, p)

	o := rt.NewObject(ObjectLoader)
	o.SetSize(100, 100, false)
	l := o.AsLoader()
	l.SetFill(FillScale)
	l.SetVertAlign(VertAlignMiddle)
	l.SetURL("ui://" + widgetPkgID + "box")
	c := l.Content()
	if c == nil {
		t.Fatal("no content")
	}
	if c.ScaleX() != 0.5 || c.ScaleY() != 0.5 {
		t.Errorf("content scale %v,%v, want 0.5", c.ScaleX(), c.ScaleY())
	}
	if c.X() != 0 || c.Y() != 25 {
		t.Errorf("content at %v,%v, want 0,25", c.X(), c.Y())
	}

	l.SetAutoSize(true)
	if o.Width() != 200 || o.Height() != 100 {
		t.Errorf("auto-sized loader %vx%v, want 200x100", o.Width(), o.Height())
	}
	l.SetURL("")
	if l.Content() != nil || !c.Disposed() {
		t.Error("clearing the URL kept the content")
	}
}

func TestLoaderExternal(t *testing.T) {
	rt, b := newTestRuntime(t)
	loaded, freed := "", 0
	rt.Factory.LoadExternal = func(_ *Loader, url string) (ImageSource, bool) {
		loaded = url
		return ImageSource{Region: Rect{Width: 64, Height: 32}}, url == "https://cdn/a.png"
	}
	rt.Factory.FreeExternal = func(*Loader) { freed++ }

	o := rt.NewObject(ObjectLoader)
	l := o.AsLoader()
	l.SetAutoSize(true)
	l.SetURL("https://cdn/a.png")
	if loaded != "https://cdn/a.png" || b.get(o.control).image.Region.Width != 64 {
		t.Fatalf("external image not pushed: %q", loaded)
	}
	if o.Width() != 64 || o.Height() != 32 {
		t.Errorf("auto-sized to %vx%v, want 64x32", o.Width(), o.Height())
	}
	l.SetURL("https://cdn/missing.png")
	if freed != 1 || b.get(o.control).image.Region.Width != 0 {
		t.Errorf("previous image not released: freed=%d", freed)
	}
}

// --- Group ---

func TestGroupFitsMembers(t *testing.T) {
	rt, _ := newTestRuntime(t)
	parent := newTestComponent(rt, 300, 300)
	g := parent.AddChild(rt.NewObject(ObjectGroup))
	a := parent.AddChild(newPopup(rt, 20, 10))
	a.SetXY(10, 10)
	b := parent.AddChild(newPopup(rt, 10, 10))
	b.SetXY(50, 30)
	a.SetGroup(g)
	b.SetGroup(g)
	gd := g.AsGroup()
	gd.EnsureBoundsCorrect()
	if g.X() != 10 || g.Y() != 10 || g.Width() != 50 || g.Height() != 30 {
		t.Errorf("group %v,%v %vx%v, want 10,10 50x30", g.X(), g.Y(), g.Width(), g.Height())
	}
	if len(gd.Members()) != 2 {
		t.Errorf("members = %d", len(gd.Members()))
	}

	g.SetXY(20, 20)
	if a.X() != 20 || a.Y() != 20 || b.X() != 60 || b.Y() != 40 {
		t.Errorf("members at %v,%v and %v,%v after group move", a.X(), a.Y(), b.X(), b.Y())
	}

	g.SetVisible(false)
	if a.FinalVisible() || b.FinalVisible() {
		t.Error("hidden group left members visible")
	}
}

func TestGroupHorizontalLayout(t *testing.T) {
	rt, _ := newTestRuntime(t)
	parent := newTestComponent(rt, 300, 300)
	g := parent.AddChild(rt.NewObject(ObjectGroup))
	g.SetXY(5, 5)
	var members []*Object
	for _, w := range []float32{20, 30, 40} {
		m := parent.AddChild(newPopup(rt, w, 10))
		m.SetXY(100, 5)
		m.SetGroup(g)
		members = append(members, m)
	}
	gd := g.AsGroup()
	gd.SetLayout(GroupLayoutHorizontal)
	gd.SetColumnGap(5)
	gd.EnsureBoundsCorrect()
	for i, want := range []float32{5, 30, 65} {
		if members[i].X() != want {
			t.Errorf("member %d x = %v, want %v", i, members[i].X(), want)
		}
	}
	if g.Width() != 100 {
		t.Errorf("group width = %v, want 100", g.Width())
	}

	// resizing the group spreads the change over the members
	g.SetSize(200, 10, false)
	var total float32
	for _, m := range members {
		total += m.Width()
	}
	if total != 190 {
		t.Errorf("member widths sum to %v, want 190", total)
	}
}
