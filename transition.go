package fgui

import "math"

// TransitionAction is the property a transition item drives. The values
// match the package format byte.
type TransitionAction uint8

const (
	TransitionXY TransitionAction = iota
	TransitionSize
	TransitionScale
	TransitionPivot
	TransitionAlpha
	TransitionRotation
	TransitionColor
	TransitionAnimation
	TransitionVisible
	TransitionSound
	TransitionNested
	TransitionShake
	TransitionColorFilter
	TransitionSkew
	TransitionText
	TransitionIcon
	TransitionUnknown
)

// Transition option bits.
const (
	transitionAutoPlay         = 1
	transitionAutoStopDisabled = 2
	transitionAutoStopAtEnd    = 4
)

// TransitionValue is the start or end value of a transition item. Which
// fields are used depends on the action.
type TransitionValue struct {
	X, Y       float32 // XY, Size, Scale, Pivot, Skew, Alpha, Rotation
	HasX, HasY bool    // XY, Size, Scale, Pivot, Skew: unset axes keep the live value
	Color      Color
	Frame      int
	Playing    bool
	Visible    bool
	Text       string // Text, Icon, Sound URL, nested transition name
	Volume     float32
	PlayTimes  int
	Amplitude  float32
	Duration   float32 // Shake
	Filter     [4]float32
}

type transitionTween struct {
	duration float32
	ease     EaseType
	repeat   int
	yoyo     bool
	endLabel string
	endHook  func()
}

// TransitionItem is one entry of a transition timeline.
type TransitionItem struct {
	Time        float32
	Action      TransitionAction
	Label       string
	targetIndex int
	target      *Object
	tween       *transitionTween
	start, end  TransitionValue
	hook        func()

	tweener *Tweener
	nested  *Transition
	filter  [4]float32
	started bool
}

// Filter returns the last applied color filter (brightness, contrast,
// saturation, hue). Filters are not rendered.
func (it *TransitionItem) Filter() [4]float32 { return it.filter }

// Target returns the object the item drives, or nil.
func (it *TransitionItem) Target() *Object { return it.target }

// Tweened reports whether the item interpolates over a duration.
func (it *TransitionItem) Tweened() bool { return it.tween != nil }

// Transition is a named timeline of property changes authored against a
// component. Items either apply once at their time or tween from a start to
// an end value. Playback is driven by the runtime's TweenManager.
type Transition struct {
	Name string

	owner         *Object
	items         []*TransitionItem
	options       int
	autoPlay      bool
	autoPlayTimes int
	autoPlayDelay float32
	totalDuration float32
	timeScale     float32

	playing    bool
	paused     bool
	reversed   bool
	totalTimes int
	totalTasks int
	onComplete func()
	delayTween *Tweener
	ownerBase  Vec2
	stageHooks []ListenerHandle
}

func newTransition(owner *Object) *Transition {
	return &Transition{owner: owner, autoPlayTimes: 1, timeScale: 1}
}

// NewTransition creates an empty timeline. Attach it with
// Object.AddTransition before playing it.
func NewTransition(name string) *Transition {
	return &Transition{Name: name, autoPlayTimes: 1, timeScale: 1}
}

// Owner returns the component the transition belongs to.
func (t *Transition) Owner() *Object { return t.owner }

// Items returns the timeline entries.
func (t *Transition) Items() []*TransitionItem { return t.items }

// Playing reports whether the transition is running.
func (t *Transition) Playing() bool { return t.playing }

// Paused reports whether playback is suspended.
func (t *Transition) Paused() bool { return t.paused }

// TotalDuration returns the end time of the last item.
func (t *Transition) TotalDuration() float32 { return t.totalDuration }

// AutoPlay reports whether the transition plays when its owner goes on stage.
func (t *Transition) AutoPlay() bool { return t.autoPlay }

// SetAutoPlay sets the stage-triggered playback.
func (t *Transition) SetAutoPlay(v bool, times int, delay float32) {
	t.autoPlay = v
	t.autoPlayTimes = times
	t.autoPlayDelay = delay
	t.bindStage()
}

// TimeScale returns the playback speed multiplier.
func (t *Transition) TimeScale() float32 { return t.timeScale }

// SetTimeScale changes the playback speed, including running tweens.
func (t *Transition) SetTimeScale(v float32) {
	if t.timeScale == v {
		return
	}
	t.timeScale = v
	if t.delayTween != nil {
		t.delayTween.SetTimeScale(v)
	}
	for _, it := range t.items {
		if it.tweener != nil {
			it.tweener.SetTimeScale(v)
		}
		if it.nested != nil {
			it.nested.SetTimeScale(v)
		}
	}
}

// --- Playback ---

// Play runs the timeline times times (negative loops forever, zero means
// once) after delay seconds. onComplete may be nil.
func (t *Transition) Play(times int, delay float32, onComplete func()) {
	t.play(times, delay, onComplete, false)
}

// PlayReverse runs the timeline backwards.
func (t *Transition) PlayReverse(times int, delay float32, onComplete func()) {
	t.play(times, delay, onComplete, true)
}

func (t *Transition) play(times int, delay float32, onComplete func(), reversed bool) {
	t.Stop(true, true)
	if times == 0 {
		times = 1
	}
	t.totalTimes = times
	t.reversed = reversed
	t.onComplete = onComplete
	t.playing = true
	t.paused = false

	for _, it := range t.items {
		switch {
		case it.targetIndex == -1:
			it.target = t.owner
		case it.target == nil && it.targetIndex >= 0:
			it.target = t.owner.childAtOrNil(it.targetIndex)
		}
	}

	tm := t.owner.tweens()
	if delay > 0 && tm != nil {
		t.delayTween = tm.DelayedCall(delay).SetTarget(t).SetTimeScale(t.timeScale).
			OnComplete(func(*Tweener) {
				t.delayTween = nil
				t.startItems()
			})
		return
	}
	t.startItems()
}

// startItems schedules every item of one pass.
func (t *Transition) startItems() {
	t.ownerBase = Vec2{t.owner.x, t.owner.y}
	t.totalTasks = 0
	for _, it := range t.items {
		if it.target == nil || it.target.disposed {
			continue
		}
		t.playItem(it)
	}
	if t.totalTasks == 0 {
		t.finish()
	}
}

func (t *Transition) playItem(it *TransitionItem) {
	tm := t.owner.tweens()
	it.started = false
	if it.tween != nil {
		start := it.Time
		if t.reversed {
			start = t.totalDuration - it.Time - it.tween.duration
		}
		if tm == nil {
			t.startTweenItem(it)
			t.applyRatio(it, 1)
			t.endTweenItem(it)
			return
		}
		t.totalTasks++
		it.tweener = tm.To(0, 1, it.tween.duration).
			SetDelay(max(start, 0)).
			SetEase(it.tween.ease).
			SetRepeat(it.tween.repeat, it.tween.yoyo).
			SetTimeScale(t.timeScale).
			SetTarget(it).
			OnStart(func(*Tweener) { t.startTweenItem(it) }).
			OnUpdate(func(tw *Tweener) {
				if !it.started {
					t.startTweenItem(it)
				}
				t.applyRatio(it, tw.Value().X)
			}).
			OnComplete(func(*Tweener) {
				it.tweener = nil
				t.totalTasks--
				t.endTweenItem(it)
				t.checkAllComplete()
			})
		if t.paused {
			it.tweener.SetPaused(true)
		}
		return
	}

	at := it.Time
	if t.reversed {
		at = t.totalDuration - it.Time
	}
	if at <= 0 || tm == nil {
		t.applyItem(it)
		return
	}
	t.totalTasks++
	it.tweener = tm.DelayedCall(at).SetTarget(it).SetTimeScale(t.timeScale).
		OnComplete(func(*Tweener) {
			it.tweener = nil
			t.totalTasks--
			t.applyItem(it)
			t.checkAllComplete()
		})
	if t.paused {
		it.tweener.SetPaused(true)
	}
}

// startTweenItem resolves unset start axes from the live target and fires
// the start hook.
func (t *Transition) startTweenItem(it *TransitionItem) {
	it.started = true
	t.fillAxes(it, &it.start)
	t.fillAxes(it, &it.end)
	if it.hook != nil {
		it.hook()
	}
}

func (t *Transition) endTweenItem(it *TransitionItem) {
	if it.tween.endHook != nil {
		it.tween.endHook()
	}
}

// fillAxes copies the live value into axes the item leaves unset.
func (t *Transition) fillAxes(it *TransitionItem, v *TransitionValue) {
	o := it.target
	var x, y float32
	switch it.Action {
	case TransitionXY:
		x, y = o.x, o.y
		if o == t.owner {
			x -= t.ownerBase.X
			y -= t.ownerBase.Y
		}
	case TransitionSize:
		x, y = o.width, o.height
	case TransitionScale:
		x, y = o.scaleX, o.scaleY
	case TransitionPivot:
		x, y = o.pivotX, o.pivotY
	case TransitionSkew:
		x, y = o.skewX, o.skewY
	default:
		return
	}
	if !v.HasX {
		v.X = x
	}
	if !v.HasY {
		v.Y = y
	}
}

// applyRatio applies the interpolation at ratio r of a tweened item.
func (t *Transition) applyRatio(it *TransitionItem, r float32) {
	o := it.target
	if o == nil || o.disposed {
		return
	}
	s, e := it.start, it.end
	if t.reversed {
		s, e = e, s
	}
	lerp := func(a, b float32) float32 { return a + (b-a)*r }
	switch it.Action {
	case TransitionColor:
		v := TransitionValue{Color: Color{lerp(s.Color.R, e.Color.R), lerp(s.Color.G, e.Color.G), lerp(s.Color.B, e.Color.B), lerp(s.Color.A, e.Color.A)}}
		t.applyValue(it, &v)
	case TransitionColorFilter:
		for i := range it.filter {
			it.filter[i] = lerp(s.Filter[i], e.Filter[i])
		}
	case TransitionXY, TransitionSize, TransitionScale, TransitionPivot, TransitionSkew,
		TransitionAlpha, TransitionRotation:
		v := TransitionValue{X: lerp(s.X, e.X), Y: lerp(s.Y, e.Y), HasX: true, HasY: true}
		t.applyValue(it, &v)
	default:
		if r >= 1 {
			t.applyValue(it, &e)
		} else {
			t.applyValue(it, &s)
		}
	}
}

// applyItem applies an untweened item.
func (t *Transition) applyItem(it *TransitionItem) {
	if it.target == nil || it.target.disposed {
		return
	}
	if it.hook != nil {
		it.hook()
	}
	t.applyValue(it, &it.start)
}

func (t *Transition) applyValue(it *TransitionItem, v *TransitionValue) {
	o := it.target
	o.gearLocked = true
	defer func() { o.gearLocked = false }()

	switch it.Action {
	case TransitionXY:
		x, y := o.x, o.y
		if v.HasX {
			x = v.X
		}
		if v.HasY {
			y = v.Y
		}
		if o == t.owner {
			// owner moves are offsets from where it stood when play began
			if v.HasX {
				x += t.ownerBase.X
			}
			if v.HasY {
				y += t.ownerBase.Y
			}
		}
		o.SetXY(x, y)
	case TransitionSize:
		w, h := o.width, o.height
		if v.HasX {
			w = v.X
		}
		if v.HasY {
			h = v.Y
		}
		o.SetSize(w, h, false)
	case TransitionScale:
		o.SetScale(pick(v.HasX, v.X, o.scaleX), pick(v.HasY, v.Y, o.scaleY))
	case TransitionPivot:
		o.SetPivot(pick(v.HasX, v.X, o.pivotX), pick(v.HasY, v.Y, o.pivotY), o.pivotAsAnchor)
	case TransitionSkew:
		o.SetSkew(pick(v.HasX, v.X, o.skewX), pick(v.HasY, v.Y, o.skewY))
	case TransitionAlpha:
		o.SetAlpha(v.X)
	case TransitionRotation:
		o.SetRotation(v.X)
	case TransitionColor:
		o.SetColor(v.Color)
	case TransitionAnimation:
		if v.Frame >= 0 {
			o.SetFrame(v.Frame)
		}
		o.SetPlaying(v.Playing)
	case TransitionVisible:
		o.SetVisible(v.Visible)
	case TransitionText:
		o.SetText(v.Text)
	case TransitionIcon:
		o.SetIcon(v.Text)
	case TransitionSound:
		if rt := o.rt; rt != nil && rt.SoundPlayer != nil && v.Text != "" {
			rt.SoundPlayer(v.Text, v.Volume)
		}
	case TransitionShake:
		t.startShake(it, v)
	case TransitionNested:
		t.startNested(it, v)
	case TransitionColorFilter:
		it.filter = v.Filter
	}
}

func pick(ok bool, v, def float32) float32 {
	if ok {
		return v
	}
	return def
}

func (t *Transition) startShake(it *TransitionItem, v *TransitionValue) {
	tm := t.owner.tweens()
	if tm == nil || v.Duration <= 0 {
		return
	}
	o := it.target
	origin := Vec2{o.x, o.y}
	t.totalTasks++
	it.tweener = tm.Shake(origin, v.Amplitude, v.Duration).SetTarget(it).SetTimeScale(t.timeScale).
		OnUpdate(func(tw *Tweener) {
			if !o.disposed {
				p := tw.Value()
				o.SetXY(p.X, p.Y)
			}
		}).
		OnComplete(func(*Tweener) {
			it.tweener = nil
			if !o.disposed {
				o.SetXY(origin.X, origin.Y)
			}
			t.totalTasks--
			t.checkAllComplete()
		})
}

func (t *Transition) startNested(it *TransitionItem, v *TransitionValue) {
	n := it.target.Transition(v.Text)
	if n == nil || n == t {
		return
	}
	it.nested = n
	if v.PlayTimes == 0 {
		n.Stop(false, true)
		return
	}
	t.totalTasks++
	done := func() {
		t.totalTasks--
		t.checkAllComplete()
	}
	if t.reversed {
		n.PlayReverse(v.PlayTimes, 0, done)
	} else {
		n.Play(v.PlayTimes, 0, done)
	}
}

func (t *Transition) checkAllComplete() {
	if !t.playing || t.totalTasks != 0 {
		return
	}
	if t.totalTimes < 0 {
		t.startItems()
		return
	}
	t.totalTimes--
	if t.totalTimes > 0 {
		t.startItems()
		return
	}
	t.finish()
}

func (t *Transition) finish() {
	t.playing = false
	t.totalTimes = 0
	if fn := t.onComplete; fn != nil {
		t.onComplete = nil
		fn()
	}
}

// Stop cancels outstanding items. With setToComplete every remaining item
// jumps to its final value; with processCallback the completion callback
// fires. A stopped transition never restarts.
func (t *Transition) Stop(setToComplete, processCallback bool) {
	if !t.playing {
		return
	}
	t.playing = false
	t.totalTasks = 0
	t.totalTimes = 0
	fn := t.onComplete
	t.onComplete = nil

	if t.delayTween != nil {
		t.delayTween.Kill(false)
		t.delayTween = nil
	}
	for _, it := range t.items {
		t.stopItem(it, setToComplete)
	}
	if processCallback && fn != nil {
		fn()
	}
}

func (t *Transition) stopItem(it *TransitionItem, setToComplete bool) {
	if it.nested != nil {
		it.nested.Stop(setToComplete, false)
		it.nested = nil
	}
	tw := it.tweener
	if tw == nil {
		return
	}
	it.tweener = nil
	tw.Kill(false)
	if !setToComplete || it.target == nil || it.target.disposed {
		return
	}
	switch {
	case it.Action == TransitionShake:
		// shake settles back on its origin
		p := tw.StartValue()
		it.target.SetXY(p.X, p.Y)
	case it.tween != nil:
		if !it.started {
			t.startTweenItem(it)
		}
		t.applyRatio(it, 1)
		t.endTweenItem(it)
	default:
		t.applyItem(it)
	}
}

// SetPaused suspends or resumes playback.
func (t *Transition) SetPaused(v bool) {
	if !t.playing || t.paused == v {
		return
	}
	t.paused = v
	if t.delayTween != nil {
		t.delayTween.SetPaused(v)
	}
	for _, it := range t.items {
		if it.tweener != nil {
			it.tweener.SetPaused(v)
		}
		if it.nested != nil {
			it.nested.SetPaused(v)
		}
		if it.Action == TransitionAnimation && it.target != nil && !it.target.disposed {
			if mc := it.target.movieClipTarget(); mc != nil {
				if v {
					mc.SetPlaying(false)
				} else {
					mc.SetPlaying(it.start.Playing)
				}
			}
		}
	}
}

// --- Editing ---

// SetValue replaces the value of items labelled label. A label on a tweened
// item's start sets the start value, its end label sets the end value.
// Arguments follow the action: two numbers for XY, Size, Scale, Pivot and
// Skew; one number for Alpha and Rotation; a Color; frame and playing for
// Animation; a bool for Visible; a string for Text and Icon; URL and volume
// for Sound; name and times for a nested transition; amplitude and
// duration for Shake; four numbers for ColorFilter.
func (t *Transition) SetValue(label string, args ...any) {
	for _, it := range t.items {
		switch {
		case it.Label == label:
			setTransitionValue(it.Action, &it.start, args)
		case it.tween != nil && it.tween.endLabel == label:
			setTransitionValue(it.Action, &it.end, args)
		}
	}
}

func setTransitionValue(a TransitionAction, v *TransitionValue, args []any) {
	num := func(i int) (float32, bool) {
		if i >= len(args) {
			return 0, false
		}
		return toFloat32(args[i])
	}
	switch a {
	case TransitionXY, TransitionSize, TransitionScale, TransitionPivot, TransitionSkew:
		v.X, v.HasX = num(0)
		v.Y, v.HasY = num(1)
	case TransitionAlpha, TransitionRotation:
		v.X, _ = num(0)
	case TransitionColor:
		if len(args) > 0 {
			if c, ok := args[0].(Color); ok {
				v.Color = c
			}
		}
	case TransitionAnimation:
		f, _ := num(0)
		v.Frame = int(f)
		if len(args) > 1 {
			v.Playing, _ = args[1].(bool)
		}
	case TransitionVisible:
		if len(args) > 0 {
			v.Visible, _ = args[0].(bool)
		}
	case TransitionText, TransitionIcon:
		if len(args) > 0 {
			v.Text, _ = args[0].(string)
		}
	case TransitionSound:
		if len(args) > 0 {
			v.Text, _ = args[0].(string)
		}
		if f, ok := num(1); ok {
			v.Volume = f
		}
	case TransitionNested:
		if len(args) > 0 {
			v.Text, _ = args[0].(string)
		}
		f, _ := num(1)
		v.PlayTimes = int(f)
	case TransitionShake:
		v.Amplitude, _ = num(0)
		v.Duration, _ = num(1)
	case TransitionColorFilter:
		for i := range v.Filter {
			v.Filter[i], _ = num(i)
		}
	}
}

func toFloat32(v any) (float32, bool) {
	switch n := v.(type) {
	case float32:
		return n, true
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case int32:
		return float32(n), true
	case int64:
		return float32(n), true
	}
	return 0, false
}

// SetHook calls fn when the item labelled label is applied, or when the
// tween with end label label completes.
func (t *Transition) SetHook(label string, fn func()) {
	for _, it := range t.items {
		switch {
		case it.Label == label:
			it.hook = fn
		case it.tween != nil && it.tween.endLabel == label:
			it.tween.endHook = fn
		}
	}
}

// ClearHooks removes every hook.
func (t *Transition) ClearHooks() {
	for _, it := range t.items {
		it.hook = nil
		if it.tween != nil {
			it.tween.endHook = nil
		}
	}
}

// SetTarget redirects the items labelled label to obj.
func (t *Transition) SetTarget(label string, obj *Object) {
	for _, it := range t.items {
		if it.Label == label {
			it.target = obj
			it.targetIndex = -2
		}
	}
}

// SetDuration changes the duration of the tween or shake labelled label.
func (t *Transition) SetDuration(label string, d float32) {
	for _, it := range t.items {
		if it.Label != label {
			continue
		}
		switch {
		case it.tween != nil:
			it.tween.duration = d
		case it.Action == TransitionShake:
			it.start.Duration = d
		}
	}
	t.updateTotalDuration()
}

// LabelTime returns the time of the item labelled label. An end label
// reports the time the tween finishes.
func (t *Transition) LabelTime(label string) (float32, bool) {
	for _, it := range t.items {
		if it.Label == label {
			return it.Time, true
		}
		if it.tween != nil && it.tween.endLabel == label {
			return it.Time + it.tween.duration, true
		}
	}
	return float32(math.NaN()), false
}

func (t *Transition) updateTotalDuration() {
	t.totalDuration = 0
	for _, it := range t.items {
		end := it.Time
		switch {
		case it.tween != nil:
			end += it.tween.duration
		case it.Action == TransitionShake:
			end += it.start.Duration
		}
		t.totalDuration = max(t.totalDuration, end)
	}
}

// --- Stage hooks ---

func (t *Transition) bindStage() {
	for _, h := range t.stageHooks {
		h.Remove()
	}
	t.stageHooks = t.stageHooks[:0]
	if !t.autoPlay {
		return
	}
	t.stageHooks = append(t.stageHooks,
		t.owner.On(EventAddedToStage, func(*EventContext) {
			t.Play(t.autoPlayTimes, t.autoPlayDelay, nil)
		}),
		t.owner.On(EventRemovedFromStage, func(*EventContext) {
			if t.options&transitionAutoStopDisabled == 0 {
				t.Stop(t.options&transitionAutoStopAtEnd != 0, false)
			}
		}))
	if t.owner.OnStage() {
		t.Play(t.autoPlayTimes, t.autoPlayDelay, nil)
	}
}

// Dispose stops playback and releases the items.
func (t *Transition) Dispose() {
	t.Stop(false, false)
	for _, h := range t.stageHooks {
		h.Remove()
	}
	t.stageHooks = nil
	t.items = nil
}

// --- Package data ---

func (t *Transition) setup(buf *ByteBuffer) {
	t.Name = buf.ReadS()
	t.options = int(buf.ReadInt())
	t.autoPlay = t.options&transitionAutoPlay != 0
	t.autoPlayTimes = int(buf.ReadInt())
	t.autoPlayDelay = buf.ReadFloat()

	cnt := int(buf.ReadShort())
	t.items = make([]*TransitionItem, 0, cnt)
	for i := 0; i < cnt; i++ {
		dataLen := int(buf.ReadShort())
		cur := buf.Position()
		t.items = append(t.items, readTransitionItem(buf))
		buf.SetPosition(cur + dataLen)
	}
	t.updateTotalDuration()
	if t.autoPlay {
		t.bindStage()
	}
}

func readTransitionItem(buf *ByteBuffer) *TransitionItem {
	it := &TransitionItem{}
	it.Time = buf.ReadFloat()
	it.targetIndex = int(buf.ReadShort())
	it.Action = TransitionAction(buf.ReadByte())
	if buf.ReadBool() {
		tw := &transitionTween{}
		tw.duration = buf.ReadFloat()
		tw.ease = EaseType(buf.ReadByte())
		tw.repeat = int(buf.ReadInt())
		tw.yoyo = buf.ReadBool()
		it.Label = buf.ReadS()
		it.tween = tw
	}
	label2 := buf.ReadS()
	if it.tween != nil {
		it.tween.endLabel = label2
	} else {
		it.Label = label2
	}

	tweened := it.tween != nil
	switch it.Action {
	case TransitionXY, TransitionSize, TransitionScale, TransitionPivot, TransitionSkew:
		readAxes(buf, &it.start)
		if tweened {
			readAxes(buf, &it.end)
		}
		// v2 motion paths follow; the item is re-framed by its length
	case TransitionAlpha, TransitionRotation:
		it.start.X = buf.ReadFloat()
		if tweened {
			it.end.X = buf.ReadFloat()
		}
	case TransitionColor:
		it.start.Color = buf.ReadColor()
		if tweened {
			it.end.Color = buf.ReadColor()
		}
	case TransitionAnimation:
		it.start.Frame = int(buf.ReadInt())
		it.start.Playing = buf.ReadBool()
		it.end = it.start
	case TransitionVisible:
		it.start.Visible = buf.ReadBool()
		it.end = it.start
	case TransitionSound:
		it.start.Text = buf.ReadS()
		it.start.Volume = buf.ReadFloat()
	case TransitionNested:
		it.start.Text = buf.ReadS()
		it.start.PlayTimes = int(buf.ReadInt())
	case TransitionShake:
		it.start.Amplitude = buf.ReadFloat()
		it.start.Duration = buf.ReadFloat()
	case TransitionColorFilter:
		for i := range it.start.Filter {
			it.start.Filter[i] = buf.ReadFloat()
		}
		if tweened {
			for i := range it.end.Filter {
				it.end.Filter[i] = buf.ReadFloat()
			}
		}
	case TransitionText, TransitionIcon:
		it.start.Text = buf.ReadS()
		if tweened {
			it.end.Text = buf.ReadS()
		} else {
			it.end = it.start
		}
	}
	return it
}

func readAxes(buf *ByteBuffer, v *TransitionValue) {
	v.HasX = buf.ReadBool()
	v.HasY = buf.ReadBool()
	v.X = buf.ReadFloat()
	v.Y = buf.ReadFloat()
}

// AddItem appends an item built in code. targetIndex -1 targets the owner.
func (t *Transition) AddItem(time float32, targetIndex int, action TransitionAction, label string, start TransitionValue) *TransitionItem {
	it := &TransitionItem{Time: time, targetIndex: targetIndex, Action: action, Label: label, start: start, end: start}
	t.items = append(t.items, it)
	t.updateTotalDuration()
	return it
}

// AddTween appends a tweened item built in code.
func (t *Transition) AddTween(time float32, targetIndex int, action TransitionAction, duration float32, ease EaseType, start, end TransitionValue) *TransitionItem {
	it := &TransitionItem{Time: time, targetIndex: targetIndex, Action: action, start: start, end: end,
		tween: &transitionTween{duration: duration, ease: ease}}
	t.items = append(t.items, it)
	t.updateTotalDuration()
	return it
}

// SetRepeat makes a tweened item repeat n more times, reversing each pass
// with yoyo.
func (it *TransitionItem) SetRepeat(n int, yoyo bool) *TransitionItem {
	if it.tween != nil {
		it.tween.repeat, it.tween.yoyo = n, yoyo
	}
	return it
}
