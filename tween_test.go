package fgui

import (
	"testing"
)

// --- Interpolation ---

func TestTweenLinearMidpoint(t *testing.T) {
	m := NewTweenManager()
	tw := m.To(0, 100, 1).SetEase(EaseLinear)
	m.Update(0.5)
	if v := tw.Value().X; !approx(v, 50) {
		t.Errorf("Value at 0.5s = %v, want 50", v)
	}
}

func TestTweenReachesEndAndCompletesOnce(t *testing.T) {
	m := NewTweenManager()
	var calls int
	var last float32
	m.To(10, 20, 0.5).SetEase(EaseQuadIn).OnUpdate(func(tw *Tweener) {
		last = tw.Value().X
	}).OnComplete(func(*Tweener) { calls++ })

	for i := 0; i < 10; i++ {
		m.Update(0.1)
	}
	if last != 20 {
		t.Errorf("final value = %v, want 20", last)
	}
	if calls != 1 {
		t.Errorf("complete calls = %d, want 1", calls)
	}
}

func TestTweenDeltaSumsToDistance(t *testing.T) {
	m := NewTweenManager()
	var sum float32
	m.To(0, 30, 1).SetEase(EaseSineInOut).OnUpdate(func(tw *Tweener) {
		sum += tw.DeltaValue().X
	})
	for i := 0; i < 20; i++ {
		m.Update(0.07)
	}
	if !approx(sum, 30) {
		t.Errorf("sum of deltas = %v, want 30", sum)
	}
}

func TestTweenDelay(t *testing.T) {
	m := NewTweenManager()
	started := false
	tw := m.To(0, 1, 1).SetDelay(0.5).OnStart(func(*Tweener) { started = true })
	m.Update(0.25)
	if started {
		t.Error("tween started before its delay")
	}
	m.Update(0.5)
	if !started {
		t.Error("tween did not start after its delay")
	}
	if tw.Value().X <= 0 {
		t.Errorf("Value = %v, want > 0", tw.Value().X)
	}
}

func TestTweenColor(t *testing.T) {
	m := NewTweenManager()
	tw := m.ToColor(Color{0, 0, 0, 1}, Color{1, 0.5, 0, 1}, 1).SetEase(EaseLinear)
	m.Update(0.5)
	c := tw.Value().Color()
	if !approx(c.R, 0.5) || !approx(c.G, 0.25) || !approx(c.A, 1) {
		t.Errorf("color = %+v, want {0.5 0.25 0 1}", c)
	}
}

func TestTweenDoubleSnapping(t *testing.T) {
	m := NewTweenManager()
	tw := m.ToDouble(0, 10, 1).SetEase(EaseLinear).SetSnapping(true)
	m.Update(0.33)
	if d := tw.Value().D; d != 3 {
		t.Errorf("snapped double = %v, want 3", d)
	}
}

func TestTweenYoyoRepeat(t *testing.T) {
	m := NewTweenManager()
	tw := m.To(0, 10, 1).SetEase(EaseLinear).SetRepeat(1, true)
	m.Update(1.5)
	if v := tw.Value().X; !approx(v, 5) {
		t.Errorf("value mid second round = %v, want 5", v)
	}
	m.Update(0.4)
	if v := tw.Value().X; !approx(v, 1) {
		t.Errorf("value near end of yoyo = %v, want 1", v)
	}
}

func TestTweenBreakpoint(t *testing.T) {
	m := NewTweenManager()
	done := false
	tw := m.To(0, 10, 1).SetEase(EaseLinear).SetBreakpoint(0.5).OnComplete(func(*Tweener) { done = true })
	m.Update(0.75)
	if !done {
		t.Error("tween did not complete at its breakpoint")
	}
	if v := tw.Value().X; !approx(v, 5) {
		t.Errorf("value at breakpoint = %v, want 5", v)
	}
}

func TestTweenTimeScale(t *testing.T) {
	m := NewTweenManager()
	tw := m.To(0, 10, 1).SetEase(EaseLinear).SetTimeScale(2)
	m.Update(0.25)
	if v := tw.Value().X; !approx(v, 5) {
		t.Errorf("value = %v, want 5", v)
	}
}

func TestTweenPaused(t *testing.T) {
	m := NewTweenManager()
	tw := m.To(0, 10, 1).SetEase(EaseLinear).SetPaused(true)
	m.Update(0.5)
	if tw.Value().X != 0 {
		t.Errorf("paused tween moved to %v", tw.Value().X)
	}
}

// --- Manager ---

func TestTweenKillByTarget(t *testing.T) {
	m := NewTweenManager()
	target := &struct{}{}
	var got float32
	m.To(0, 10, 1).SetTarget(target).OnComplete(func(tw *Tweener) { got = tw.Value().X })
	if !m.IsTweening(target) {
		t.Fatal("IsTweening = false, want true")
	}
	if !m.Kill(target, true) {
		t.Fatal("Kill = false, want true")
	}
	if got != 10 {
		t.Errorf("value on complete-kill = %v, want 10", got)
	}
	if m.IsTweening(target) {
		t.Error("IsTweening after Kill = true")
	}
	m.Update(0)
	if m.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", m.ActiveCount())
	}
}

func TestTweenKillTwice(t *testing.T) {
	m := NewTweenManager()
	calls := 0
	tw := m.To(0, 1, 1).OnComplete(func(*Tweener) { calls++ })
	tw.Kill(true)
	tw.Kill(true)
	if calls != 1 {
		t.Errorf("complete calls = %d, want 1", calls)
	}
}

func TestTweenCreatedDuringUpdateStartsNextTick(t *testing.T) {
	m := NewTweenManager()
	var inner *Tweener
	m.DelayedCall(0).OnComplete(func(*Tweener) {
		inner = m.To(0, 10, 1).SetEase(EaseLinear)
	})
	m.Update(0.1)
	if inner == nil {
		t.Fatal("delayed call did not fire")
	}
	if inner.Value().X != 0 {
		t.Errorf("new tween advanced in the tick it was created: %v", inner.Value().X)
	}
	m.Update(0.5)
	if !approx(inner.Value().X, 5) {
		t.Errorf("new tween value = %v, want 5", inner.Value().X)
	}
}

func TestTweenDisposedTargetIsKilled(t *testing.T) {
	rt, _ := newTestRuntime(t)
	o := rt.NewObject(ObjectGraph)
	fired := false
	rt.Tweens.To(0, 1, 1).SetTarget(o).OnUpdate(func(*Tweener) { fired = true })
	o.Dispose()
	rt.Tweens.Update(0.5)
	if fired {
		t.Error("tween on disposed target kept running")
	}
}

func TestTweenPoolReuseNoAllocs(t *testing.T) {
	m := NewTweenManager()
	for i := 0; i < 8; i++ {
		m.To(0, 1, 0.01)
	}
	m.Update(1)
	m.Update(0)

	allocs := testing.AllocsPerRun(100, func() {
		m.To(0, 1, 0.01)
		m.Update(1)
		m.Update(0)
	})
	if allocs != 0 {
		t.Errorf("allocs per pooled tween = %v, want 0", allocs)
	}
}

// --- Easing ---

func TestEaseEndpoints(t *testing.T) {
	for e := EaseLinear; e < EaseCustom; e++ {
		fn := e.EaseFunc()
		if v := evaluateEase(fn, 0, 1); v != 0 {
			t.Errorf("ease %d at 0 = %v, want 0", e, v)
		}
		if v := evaluateEase(fn, 1, 1); v != 1 {
			t.Errorf("ease %d at 1 = %v, want 1", e, v)
		}
	}
}

func TestEaseCustomFallsBackToLinear(t *testing.T) {
	if v := evaluateEase(EaseCustom.EaseFunc(), 0.25, 1); !approx(v, 0.25) {
		t.Errorf("custom ease = %v, want 0.25", v)
	}
}

func TestShakeStaysInRangeAndSettles(t *testing.T) {
	m := NewTweenManager()
	start := Vec2{X: 100, Y: 50}
	tw := m.Shake(start, 4, 1)
	for i := 0; i < 9; i++ {
		m.Update(0.1)
		v := tw.Value()
		if dx, dy := v.X-start.X, v.Y-start.Y; dx < -4 || dx > 4 || dy < -4 || dy > 4 {
			t.Fatalf("step %d: offset %v,%v outside amplitude", i, dx, dy)
		}
	}
	var end Vec2
	tw.OnComplete(func(tw *Tweener) { end = tw.Value().Vec2() })
	m.Update(0.2)
	if end != start {
		t.Errorf("settled at %v, want %v", end, start)
	}
}
