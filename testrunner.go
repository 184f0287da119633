package pulltorefresh

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a gesture script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected pointer events, host calls and state
// expectations across frames so a gesture can be replayed without a host.
// Attach to a Controller via SetScriptRunner.
//
// Actions: press, move, release, cancel (x, y); drag (fromX, fromY, toX,
// toY, frames); wait (frames); start_header, start_footer, stop, success,
// failure; mode (label); expect_state, expect_direction (label).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	errs      []error
}

// LoadScript parses a JSON gesture script and returns a ScriptRunner ready
// to be attached to a Controller via SetScriptRunner.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the controller. The runner's
// step method is called from Controller.Update before injected input is
// processed each frame.
func (c *Controller) SetScriptRunner(runner *ScriptRunner) {
	c.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Errors returns failed expectations and rejected host calls, in order.
func (r *ScriptRunner) Errors() []error {
	return r.errs
}

// step advances the runner by one frame. Called from Controller.Update.
func (r *ScriptRunner) step(c *Controller) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
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
	case "press":
		c.InjectPress(st.X, st.Y)
	case "move":
		c.InjectMove(st.X, st.Y)
	case "release":
		c.InjectRelease(st.X, st.Y)
	case "cancel":
		c.InjectCancel(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "start_header":
		r.check(st, c.StartRefreshingFromHeader())
	case "start_footer":
		r.check(st, c.StartRefreshingFromFooter())
	case "stop":
		r.check(st, c.StopRefreshing())
	case "success":
		r.check(st, c.StopRefreshingWithResult(true))
	case "failure":
		r.check(st, c.StopRefreshingWithResult(false))
	case "mode":
		var m Mode
		if err := m.UnmarshalText([]byte(st.Label)); err != nil {
			r.check(st, err)
			break
		}
		c.SetMode(m)
	case "expect_state":
		if got := c.State().String(); got != st.Label {
			r.check(st, fmt.Errorf("state %s, want %s", got, st.Label))
		}
	case "expect_direction":
		if got := c.Direction().String(); got != st.Label {
			r.check(st, fmt.Errorf("direction %s, want %s", got, st.Label))
		}
	default:
		r.check(st, fmt.Errorf("unknown action %q", st.Action))
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) check(st scriptStep, err error) {
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("step %d (%s): %w", r.cursor, st.Action, err))
	}
}
