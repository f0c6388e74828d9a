package kaboom

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action of an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	Text   string  `json:"text,omitempty"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// InputScript plays a sequence of input actions and screenshots across
// frames, for automated play-throughs. Attach it with Engine.SetScript.
//
// Actions: "tap", "hold", "release" (key), "type" (text), "click" (x, y),
// "drag" (fromX, fromY, toX, toY, frames), "wait" (frames), "screenshot"
// (label) and "quit".
type InputScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	src       *ScriptedInput
}

// LoadInputScript parses a JSON input script.
func LoadInputScript(data []byte) (*InputScript, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "tap", "hold", "release", "type", "click", "drag", "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &InputScript{steps: f.Steps}, nil
}

// SetScript drives the engine's input from script, replacing the device
// source. nil detaches the current script and leaves its source in place.
func (e *Engine) SetScript(script *InputScript) {
	e.script = script
	if script == nil {
		return
	}
	script.src = NewScriptedInput()
	e.SetInput(script.src)
}

// Done reports whether every step has run.
func (r *InputScript) Done() bool { return r.done }

// step runs at most one action per frame. Queued taps, clicks and drags
// drain before the next action starts.
func (r *InputScript) step(e *Engine) {
	if r.done || r.src.Pending() > 0 {
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
	case "tap":
		r.src.Tap(st.Key)
	case "hold":
		r.src.Hold(st.Key)
	case "release":
		r.src.Release(st.Key)
	case "type":
		r.src.Type(st.Text)
	case "click":
		r.src.Click(Vec2{st.X, st.Y})
	case "drag":
		r.src.Drag(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		e.Screenshot(st.Label)
	case "quit":
		e.Quit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.src.Pending() == 0 {
		r.done = true
	}
}
