package fgui

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// TweenValue holds up to four float channels plus one double channel.
type TweenValue struct {
	X, Y, Z, W float32
	D          float64
}

// Vec2 returns the X and Y channels.
func (v TweenValue) Vec2() Vec2 { return Vec2{v.X, v.Y} }

// Color returns the four channels as a color.
func (v TweenValue) Color() Color { return Color{v.X, v.Y, v.Z, v.W} }

func colorValue(c Color) TweenValue { return TweenValue{X: c.R, Y: c.G, Z: c.B, W: c.A} }

const (
	valueSizeDouble = 6
	valueSizeShake  = 5
)

// Tweener interpolates a value over time. Tweeners are owned by a
// TweenManager and reused after they finish; do not keep a reference past
// the completion callback.
type Tweener struct {
	startValue TweenValue
	endValue   TweenValue
	value      TweenValue
	deltaValue TweenValue
	lastValue  TweenValue
	valueSize  int

	delay          float32
	duration       float32
	breakpoint     float32
	easeType       EaseType
	easeFunc       ease.TweenFunc
	repeat         int
	yoyo           bool
	timeScale      float32
	snapping       bool
	target         any
	userData       any
	onStart        func(*Tweener)
	onUpdate       func(*Tweener)
	onComplete     func(*Tweener)
	elapsedTime    float32
	normalizedTime float32

	started bool
	paused  bool
	killed  bool
	ended   int // 0 running, 1 ended, 2 stopped at breakpoint
}

func (t *Tweener) init() {
	t.delay = 0
	t.duration = 0
	t.breakpoint = -1
	t.easeType = EaseQuadOut
	t.easeFunc = nil
	t.timeScale = 1
	t.repeat = 0
	t.yoyo = false
	t.valueSize = 0
	t.started = false
	t.paused = false
	t.killed = false
	t.elapsedTime = 0
	t.normalizedTime = 0
	t.ended = 0
	t.snapping = false
}

func (t *Tweener) reset() {
	t.target = nil
	t.userData = nil
	t.onStart = nil
	t.onUpdate = nil
	t.onComplete = nil
}

// --- Configuration (chainable) ---

// SetDelay sets the delay in seconds before the tween starts.
func (t *Tweener) SetDelay(v float32) *Tweener { t.delay = v; return t }

// Delay returns the start delay.
func (t *Tweener) Delay() float32 { return t.delay }

// SetDuration sets the length of one cycle in seconds.
func (t *Tweener) SetDuration(v float32) *Tweener { t.duration = v; return t }

// Duration returns the length of one cycle.
func (t *Tweener) Duration() float32 { return t.duration }

// SetBreakpoint stops the tween once elapsed time reaches v.
func (t *Tweener) SetBreakpoint(v float32) *Tweener { t.breakpoint = v; return t }

// SetEase selects a built-in easing curve.
func (t *Tweener) SetEase(e EaseType) *Tweener { t.easeType = e; return t }

// SetEaseFunc installs a custom easing curve and selects EaseCustom.
func (t *Tweener) SetEaseFunc(fn ease.TweenFunc) *Tweener {
	t.easeType = EaseCustom
	t.easeFunc = fn
	return t
}

// SetRepeat sets the number of extra cycles (negative repeats forever) and
// whether every other cycle runs backwards.
func (t *Tweener) SetRepeat(repeat int, yoyo bool) *Tweener {
	t.repeat = repeat
	t.yoyo = yoyo
	return t
}

// Repeat returns the repeat count.
func (t *Tweener) Repeat() int { return t.repeat }

// SetTimeScale scales the delta time passed to Update.
func (t *Tweener) SetTimeScale(v float32) *Tweener { t.timeScale = v; return t }

// SetSnapping rounds interpolated values to whole numbers.
func (t *Tweener) SetSnapping(v bool) *Tweener { t.snapping = v; return t }

// SetTarget sets the object the tween is keyed by for lookup and kill.
func (t *Tweener) SetTarget(v any) *Tweener { t.target = v; return t }

// Target returns the tween's target.
func (t *Tweener) Target() any { return t.target }

// SetUserData attaches arbitrary data.
func (t *Tweener) SetUserData(v any) *Tweener { t.userData = v; return t }

// UserData returns the attached data.
func (t *Tweener) UserData() any { return t.userData }

// OnStart sets the callback fired once when the delay has elapsed.
func (t *Tweener) OnStart(fn func(*Tweener)) *Tweener { t.onStart = fn; return t }

// OnUpdate sets the callback fired after every value update.
func (t *Tweener) OnUpdate(fn func(*Tweener)) *Tweener { t.onUpdate = fn; return t }

// OnComplete sets the callback fired exactly once when the tween ends.
func (t *Tweener) OnComplete(fn func(*Tweener)) *Tweener { t.onComplete = fn; return t }

// SetPaused pauses or resumes the tween.
func (t *Tweener) SetPaused(v bool) *Tweener { t.paused = v; return t }

// --- State ---

func (t *Tweener) StartValue() TweenValue    { return t.startValue }
func (t *Tweener) EndValue() TweenValue      { return t.endValue }
func (t *Tweener) Value() TweenValue         { return t.value }
func (t *Tweener) DeltaValue() TweenValue    { return t.deltaValue }
func (t *Tweener) NormalizedTime() float32   { return t.normalizedTime }
func (t *Tweener) Completed() bool           { return t.ended != 0 }
func (t *Tweener) AllCompleted() bool        { return t.ended == 1 }
func (t *Tweener) Killed() bool              { return t.killed }
func (t *Tweener) Paused() bool              { return t.paused }

// Seek jumps to time seconds after the delay.
func (t *Tweener) Seek(time float32) {
	if t.killed {
		return
	}
	t.elapsedTime = time
	if t.elapsedTime < t.delay {
		if !t.started {
			return
		}
		t.elapsedTime = t.delay
	}
	t.update()
}

// Kill stops the tween. With complete, the value snaps to the end and the
// completion callback fires. Killing twice is a no-op.
func (t *Tweener) Kill(complete bool) {
	if t.killed {
		return
	}
	if complete {
		if t.ended == 0 {
			switch {
			case t.breakpoint >= 0:
				t.elapsedTime = t.delay + t.breakpoint
			case t.repeat >= 0:
				t.elapsedTime = t.delay + t.duration*float32(t.repeat+1)
			default:
				t.elapsedTime = t.delay + t.duration*2
			}
			t.update()
		}
		t.killed = true
		t.callComplete()
		return
	}
	t.killed = true
}

// advance is called once per manager tick.
func (t *Tweener) advance(dt float32) {
	if t.ended != 0 {
		t.killed = true
		t.callComplete()
		return
	}
	if t.timeScale != 1 {
		dt *= t.timeScale
	}
	t.elapsedTime += dt
	t.update()
	if t.ended != 0 && !t.killed {
		t.killed = true
		t.callComplete()
	}
}

func (t *Tweener) update() {
	t.ended = 0

	if t.valueSize == 0 {
		if t.elapsedTime >= t.delay+t.duration {
			t.ended = 1
		}
		return
	}

	if !t.started {
		if t.elapsedTime < t.delay {
			return
		}
		t.started = true
		if t.onStart != nil {
			t.onStart(t)
		}
		if t.killed {
			return
		}
	}

	reversed := false
	tt := t.elapsedTime - t.delay
	if t.breakpoint >= 0 && tt >= t.breakpoint {
		tt = t.breakpoint
		t.ended = 2
	}

	if t.repeat != 0 && t.duration > 0 {
		round := int(math.Floor(float64(tt / t.duration)))
		tt -= t.duration * float32(round)
		if t.yoyo {
			reversed = round%2 == 1
		}
		if t.repeat > 0 && t.repeat-round < 0 {
			if t.yoyo {
				reversed = t.repeat%2 == 1
			}
			tt = t.duration
			t.ended = 1
		}
	} else if tt >= t.duration {
		tt = t.duration
		t.ended = 1
	}

	fn := t.easeFunc
	if t.easeType != EaseCustom || fn == nil {
		fn = t.easeType.EaseFunc()
	}
	if reversed {
		t.normalizedTime = evaluateEase(fn, t.duration-tt, t.duration)
	} else {
		t.normalizedTime = evaluateEase(fn, tt, t.duration)
	}

	t.value = TweenValue{}
	t.deltaValue = TweenValue{}

	switch t.valueSize {
	case valueSizeDouble:
		d := t.startValue.D + (t.endValue.D-t.startValue.D)*float64(t.normalizedTime)
		if t.snapping {
			d = math.Round(d)
		}
		t.deltaValue.D = d - t.lastValue.D
		t.lastValue.D = d
		t.value.D = d
		t.value.X = float32(d)
	case valueSizeShake:
		if t.ended == 0 {
			r := t.startValue.W * (1 - t.normalizedTime)
			rx := (rand.Float32()*2 - 1) * r
			ry := (rand.Float32()*2 - 1) * r
			if rx > 0 {
				rx = ceilf(rx)
			} else {
				rx = floorf(rx)
			}
			if ry > 0 {
				ry = ceilf(ry)
			} else {
				ry = floorf(ry)
			}
			t.deltaValue.X = rx
			t.deltaValue.Y = ry
			t.value.X = t.startValue.X + rx
			t.value.Y = t.startValue.Y + ry
		} else {
			t.value.X = t.startValue.X
			t.value.Y = t.startValue.Y
		}
	default:
		t.lerpChannel(&t.value.X, &t.deltaValue.X, t.startValue.X, t.endValue.X, 1)
		t.lerpChannel(&t.value.Y, &t.deltaValue.Y, t.startValue.Y, t.endValue.Y, 2)
		t.lerpChannel(&t.value.Z, &t.deltaValue.Z, t.startValue.Z, t.endValue.Z, 3)
		t.lerpChannel(&t.value.W, &t.deltaValue.W, t.startValue.W, t.endValue.W, 4)
		t.value.D = float64(t.value.X)
		t.deltaValue.D = float64(t.deltaValue.X)
	}

	if t.onUpdate != nil {
		t.onUpdate(t)
	}
}

// lerpChannel interpolates channel ch (1-based) and records its delta from
// the previous sample.
func (t *Tweener) lerpChannel(val, delta *float32, start, end float32, ch int) {
	if ch > t.valueSize {
		return
	}
	n1 := start + (end-start)*t.normalizedTime
	if t.snapping {
		n1 = roundf(n1)
	}
	prev := t.prev(ch)
	*delta = n1 - prev
	*val = n1
	t.setPrev(ch, n1)
}

func (t *Tweener) prev(ch int) float32 {
	switch ch {
	case 1:
		return t.lastValue.X
	case 2:
		return t.lastValue.Y
	case 3:
		return t.lastValue.Z
	}
	return t.lastValue.W
}

func (t *Tweener) setPrev(ch int, v float32) {
	switch ch {
	case 1:
		t.lastValue.X = v
	case 2:
		t.lastValue.Y = v
	case 3:
		t.lastValue.Z = v
	default:
		t.lastValue.W = v
	}
}

func (t *Tweener) callComplete() {
	if t.onComplete != nil {
		fn := t.onComplete
		t.onComplete = nil
		fn(t)
	}
}

// --- Manager ---

// TweenManager owns the active tweens and a pool of finished ones. Update
// advances active tweens in registration order; killed tweens are swept
// back into the pool on the following Update.
type TweenManager struct {
	active      []*Tweener
	totalActive int
	pool        []*Tweener
}

// NewTweenManager creates an empty manager.
func NewTweenManager() *TweenManager {
	return &TweenManager{}
}

func (m *TweenManager) create() *Tweener {
	var t *Tweener
	if n := len(m.pool); n > 0 {
		t = m.pool[n-1]
		m.pool[n-1] = nil
		m.pool = m.pool[:n-1]
	} else {
		t = &Tweener{}
	}
	t.init()
	if m.totalActive == len(m.active) {
		m.active = append(m.active, nil)
	}
	m.active[m.totalActive] = t
	m.totalActive++
	return t
}

func (m *TweenManager) start(valueSize int, start, end TweenValue, duration float32) *Tweener {
	t := m.create()
	t.valueSize = valueSize
	t.startValue = start
	t.endValue = end
	t.value = start
	t.lastValue = start
	t.duration = duration
	return t
}

// To tweens one channel.
func (m *TweenManager) To(start, end, duration float32) *Tweener {
	return m.start(1, TweenValue{X: start}, TweenValue{X: end}, duration)
}

// To2 tweens two channels.
func (m *TweenManager) To2(start, end Vec2, duration float32) *Tweener {
	return m.start(2, TweenValue{X: start.X, Y: start.Y}, TweenValue{X: end.X, Y: end.Y}, duration)
}

// To3 tweens three channels.
func (m *TweenManager) To3(start, end TweenValue, duration float32) *Tweener {
	return m.start(3, start, end, duration)
}

// To4 tweens four channels.
func (m *TweenManager) To4(start, end TweenValue, duration float32) *Tweener {
	return m.start(4, start, end, duration)
}

// ToColor tweens a color.
func (m *TweenManager) ToColor(start, end Color, duration float32) *Tweener {
	return m.start(4, colorValue(start), colorValue(end), duration)
}

// ToDouble tweens the double channel.
func (m *TweenManager) ToDouble(start, end float64, duration float32) *Tweener {
	return m.start(valueSizeDouble, TweenValue{D: start, X: float32(start)}, TweenValue{D: end, X: float32(end)}, duration)
}

// DelayedCall returns a tween that only fires its completion callback after
// delay seconds.
func (m *TweenManager) DelayedCall(delay float32) *Tweener {
	t := m.create()
	t.delay = delay
	return t
}

// Shake jitters around start with a decaying amplitude.
func (m *TweenManager) Shake(start Vec2, amplitude, duration float32) *Tweener {
	t := m.create()
	t.valueSize = valueSizeShake
	t.startValue = TweenValue{X: start.X, Y: start.Y, W: amplitude}
	t.value = t.startValue
	t.duration = duration
	t.easeType = EaseLinear
	return t
}

// IsTweening reports whether a live tween targets target.
func (m *TweenManager) IsTweening(target any) bool {
	return m.GetTween(target) != nil
}

// GetTween returns the first live tween targeting target, or nil.
func (m *TweenManager) GetTween(target any) *Tweener {
	if target == nil {
		return nil
	}
	for i := 0; i < m.totalActive; i++ {
		t := m.active[i]
		if t != nil && t.target == target && !t.killed {
			return t
		}
	}
	return nil
}

// Kill kills every live tween targeting target. It reports whether any was
// found.
func (m *TweenManager) Kill(target any, complete bool) bool {
	if target == nil {
		return false
	}
	found := false
	for i := 0; i < m.totalActive; i++ {
		t := m.active[i]
		if t != nil && t.target == target && !t.killed {
			t.Kill(complete)
			found = true
		}
	}
	return found
}

// KillAll kills every live tween without completing it.
func (m *TweenManager) KillAll() {
	for i := 0; i < m.totalActive; i++ {
		if t := m.active[i]; t != nil {
			t.killed = true
		}
	}
}

// ActiveCount returns the number of tweens in the active list, including
// killed tweens awaiting the next sweep.
func (m *TweenManager) ActiveCount() int { return m.totalActive }

// Update advances every live tween by dt seconds and sweeps killed tweens
// into the pool. Tweens created during Update start on the next call.
func (m *TweenManager) Update(dt float32) {
	cnt := m.totalActive
	freePos := -1
	for i := 0; i < cnt; i++ {
		t := m.active[i]
		switch {
		case t == nil:
			if freePos == -1 {
				freePos = i
			}
		case t.killed:
			t.reset()
			m.pool = append(m.pool, t)
			m.active[i] = nil
			if freePos == -1 {
				freePos = i
			}
		default:
			if o, ok := t.target.(*Object); ok && o.disposed {
				t.killed = true
			} else if !t.paused {
				t.advance(dt)
			}
			if freePos != -1 {
				m.active[freePos] = t
				m.active[i] = nil
				freePos++
			}
		}
	}
	if freePos >= 0 {
		if m.totalActive != cnt {
			j := cnt
			n := m.totalActive - cnt
			for i := 0; i < n; i++ {
				m.active[freePos] = m.active[j]
				m.active[j] = nil
				freePos++
				j++
			}
		}
		m.totalActive = freePos
	}
}
