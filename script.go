package fgui

import (
	"errors"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned by LoadScript for a script without steps.
var ErrEmptyScript = errors.New("fgui: script has no steps")

// scriptStep is one action of a UI script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	Path   string  `yaml:"path,omitempty"`
	X      float32 `yaml:"x,omitempty"`
	Y      float32 `yaml:"y,omitempty"`
	FromX  float32 `yaml:"fromX,omitempty"`
	FromY  float32 `yaml:"fromY,omitempty"`
	ToX    float32 `yaml:"toX,omitempty"`
	ToY    float32 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"click": true, "clickObject": true, "drag": true, "wait": true, "screenshot": true,
}

// ScriptRunner plays a UI script through injected input, one step per
// frame once the inject queue is empty. Attach it with Runtime.SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// OnScreenshot is called for screenshot steps.
	OnScreenshot func(label string)
}

// LoadScript parses a YAML script. JSON scripts parse too.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fgui: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("fgui: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: f.Steps}, nil
}

// SetScript attaches r. It is stepped at the start of every Update. A nil r
// detaches the current script.
func (rt *Runtime) SetScript(r *ScriptRunner) { rt.script = r }

// Done reports whether every step ran and its input was delivered.
func (r *ScriptRunner) Done() bool { return r.done }

func (r *ScriptRunner) step(rt *Runtime) {
	if r.done || rt.Injecting() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case "screenshot":
		if r.OnScreenshot != nil {
			r.OnScreenshot(st.Label)
		}
	case "click":
		rt.InjectClick(st.X, st.Y)
	case "clickObject":
		o := rt.root.obj.ChildByPath(st.Path)
		if o == nil {
			log.Printf("fgui: script step %d: no object at %q", r.cursor-1, st.Path)
			break
		}
		p := o.LocalToGlobal(Vec2{o.width / 2, o.height / 2})
		rt.InjectClick(p.X, p.Y)
	case "drag":
		rt.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !rt.Injecting() {
		r.done = true
	}
}
