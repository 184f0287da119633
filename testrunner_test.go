package pulltorefresh

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "drag", "fromX": 0, "fromY": 0, "toX": 0, "toY": 100, "frames": 6},
			{"action": "wait", "frames": 3},
			{"action": "expect_state", "label": "Refreshing"},
			{"action": "mode", "label": "header"}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if s := runner.steps[0]; s.Action != "drag" || s.ToY != 100 || s.Frames != 6 {
		t.Errorf("step 0 mismatch: %+v", s)
	}
	if s := runner.steps[1]; s.Action != "wait" || s.Frames != 3 {
		t.Errorf("step 1 mismatch: %+v", s)
	}
	if s := runner.steps[2]; s.Action != "expect_state" || s.Label != "Refreshing" {
		t.Errorf("step 2 mismatch: %+v", s)
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	if _, err := LoadScript([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadScript_Empty(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func runScript(t *testing.T, c *Controller, data string, maxFrames int) *ScriptRunner {
	t.Helper()
	runner, err := LoadScript([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	c.SetScriptRunner(runner)
	for i := 0; i < maxFrames && !runner.Done(); i++ {
		c.Update(frame)
	}
	if !runner.Done() {
		t.Fatalf("script not done after %d frames", maxFrames)
	}
	return runner
}

func TestScriptPullRefreshCycle(t *testing.T) {
	c, _, _ := newTestController()
	runner := runScript(t, c, `{"steps": [
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 0, "toY": 100, "frames": 6},
		{"action": "expect_state", "label": "Refreshing"},
		{"action": "expect_direction", "label": "FromHeader"},
		{"action": "wait", "frames": 30},
		{"action": "success"},
		{"action": "expect_state", "label": "RefreshingSuccess"},
		{"action": "wait", "frames": 90},
		{"action": "expect_state", "label": "Reset"},
		{"action": "expect_direction", "label": "None"}
	]}`, 500)

	for _, err := range runner.Errors() {
		t.Error(err)
	}
	if c.ScrollDistance() != 0 {
		t.Errorf("offset = %v, want 0", c.ScrollDistance())
	}
}

func TestScriptProgrammaticRefresh(t *testing.T) {
	c, _, _ := newTestController()
	runner := runScript(t, c, `{"steps": [
		{"action": "start_footer"},
		{"action": "expect_state", "label": "Refreshing"},
		{"action": "expect_direction", "label": "FromFooter"},
		{"action": "wait", "frames": 30},
		{"action": "failure"},
		{"action": "wait", "frames": 90},
		{"action": "expect_state", "label": "Reset"}
	]}`, 500)

	for _, err := range runner.Errors() {
		t.Error(err)
	}
}

func TestScriptModeBlocksPull(t *testing.T) {
	c, _, _ := newTestController()
	runner := runScript(t, c, `{"steps": [
		{"action": "mode", "label": "footer"},
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 0, "toY": 100, "frames": 6},
		{"action": "expect_state", "label": "Reset"},
		{"action": "mode", "label": "upside-down"}
	]}`, 100)

	errs := runner.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "unknown mode") {
		t.Errorf("error = %v", errs[0])
	}
	if c.Mode() != ModePullFromFooter {
		t.Errorf("mode = %v, want footer", c.Mode())
	}
}

func TestScriptReportsFailures(t *testing.T) {
	c, _, _ := newTestController()
	runner := runScript(t, c, `{"steps": [
		{"action": "expect_state", "label": "Refreshing"},
		{"action": "stop"},
		{"action": "jump"}
	]}`, 100)

	errs := runner.Errors()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "state Reset, want Refreshing") {
		t.Errorf("error 0 = %v", errs[0])
	}
	if !errors.Is(errs[1], ErrNotRefreshing) {
		t.Errorf("error 1 = %v, want ErrNotRefreshing", errs[1])
	}
	if !strings.Contains(errs[2].Error(), `unknown action "jump"`) {
		t.Errorf("error 2 = %v", errs[2])
	}
	if !strings.HasPrefix(errs[0].Error(), "step 1 (expect_state)") {
		t.Errorf("error 0 should name its step: %v", errs[0])
	}
}

func TestRunnerWaitsForInjections(t *testing.T) {
	c, _, _ := newTestController()
	runner, err := LoadScript([]byte(`{"steps": [{"action": "press", "x": 0, "y": 0}, {"action": "release", "x": 0, "y": 0}]}`))
	if err != nil {
		t.Fatal(err)
	}
	c.SetScriptRunner(runner)

	runner.step(c)
	if c.Pending() != 1 {
		t.Fatalf("expected 1 queued event, got %d", c.Pending())
	}
	runner.step(c)
	if c.Pending() != 1 {
		t.Error("runner should not advance while injections are pending")
	}
	c.processInjectedInput()
	runner.step(c)
	if !runner.Done() {
		// The last step queued the release; done once it drains.
		c.processInjectedInput()
		runner.step(c)
	}
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}
