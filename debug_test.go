package fgui

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DisposedChildPanics(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.SetDebugMode(true)
	defer rt.SetDebugMode(false)

	parent := newTestComponent(rt, 100, 100)
	child := rt.NewObject(ObjectGraph)
	child.Name = "child"
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed object, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") || !strings.Contains(msg, `"child"`) {
			t.Errorf("panic message = %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestDebugMode_DisposedParentPanics(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.SetDebugMode(true)
	defer rt.SetDebugMode(false)

	parent := newTestComponent(rt, 100, 100)
	parent.Dispose()

	assertPanics(t, "AddChild to disposed parent", func() {
		parent.AddChild(rt.NewObject(ObjectGraph))
	})
}

func TestReleaseMode_DisposedObjectNoDebugPanic(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.SetDebugMode(false)

	parent := newTestComponent(rt, 100, 100)
	child := rt.NewObject(ObjectGraph)
	child.Dispose()

	defer func() {
		if r := recover(); r != nil {
			if msg := fmt.Sprint(r); strings.Contains(msg, "disposed") {
				t.Errorf("release mode should not panic on disposed object, got: %s", msg)
			}
		}
	}()
	parent.AddChild(child)
}

func TestSetDebugModeTogglesGlobal(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.SetDebugMode(true)
	if !globalDebug || !rt.DebugMode() || !rt.Packages.Debug {
		t.Error("debug mode not propagated")
	}
	rt.SetDebugMode(false)
	if globalDebug || rt.DebugMode() {
		t.Error("debug mode not cleared")
	}
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.SetDebugMode(true)
	defer rt.SetDebugMode(false)

	output := captureStderr(t, func() {
		current := rt.Root().Object()
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := newTestComponent(rt, 10, 10)
			child.Name = fmt.Sprintf("depth_%d", i)
			current.AddChild(child)
			current = child
		}
	})

	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.SetDebugMode(true)
	defer rt.SetDebugMode(false)

	output := captureStderr(t, func() {
		parent := newTestComponent(rt, 100, 100)
		parent.Name = "many_children"
		for i := 0; i < debugMaxChildCount+1; i++ {
			parent.AddChild(rt.NewObject(ObjectGraph))
		}
	})

	if !strings.Contains(output, `object "many_children" has`) || !strings.Contains(output, "children") {
		t.Errorf("expected child count warning in stderr, got: %q", output)
	}
}

func TestDebugWarnSilentInReleaseMode(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.SetDebugMode(false)
	output := captureStderr(t, func() { debugWarn("x %d", 1) })
	if output != "" {
		t.Errorf("release mode warned: %q", output)
	}

	rt.SetDebugMode(true)
	defer rt.SetDebugMode(false)
	output = captureStderr(t, func() { debugWarn("x %d", 1) })
	if output != "[fgui] warning: x 1\n" {
		t.Errorf("debugWarn = %q", output)
	}
}

func TestDebugMode_UpdateLogsStats(t *testing.T) {
	rt, _ := newTestRuntime(t)
	rt.SetDebugMode(true)
	defer rt.SetDebugMode(false)

	o := newTestComponent(rt, 10, 10)
	rt.Root().AddChild(o)
	rt.Tweens.ToDouble(0, 1, 1).SetTarget(o)

	output := captureStderr(t, func() { rt.Update(0.1) })
	if !strings.Contains(output, "[fgui] tweens:") {
		t.Errorf("missing timing line: %q", output)
	}
	if !strings.Contains(output, "active tweens: 1") {
		t.Errorf("missing counters line: %q", output)
	}

	rt.SetDebugMode(false)
	output = captureStderr(t, func() { rt.Update(0.1) })
	if output != "" {
		t.Errorf("release mode logged stats: %q", output)
	}
}
