package pulltorefresh

import "testing"

func TestInterceptionSignalNotifiesOnChange(t *testing.T) {
	var intercepts, consumes []bool
	s := NewInterceptionSignal(
		func(v bool) { intercepts = append(intercepts, v) },
		func(v bool) { consumes = append(consumes, v) },
	)

	s.SetIntercepting(true)
	s.SetIntercepting(true)
	s.SetConsuming(true)
	s.SetConsuming(false)
	s.SetConsuming(false)
	s.SetIntercepting(false)

	if len(intercepts) != 2 || !intercepts[0] || intercepts[1] {
		t.Errorf("intercept notifications = %v, want [true false]", intercepts)
	}
	if len(consumes) != 2 || !consumes[0] || consumes[1] {
		t.Errorf("consume notifications = %v, want [true false]", consumes)
	}
}

func TestInterceptionSignalClaimed(t *testing.T) {
	s := NewInterceptionSignal(nil, nil)
	if s.Claimed() {
		t.Fatal("new signal should not be claimed")
	}
	s.SetConsuming(true)
	if !s.Claimed() || s.Intercepting() || !s.Consuming() {
		t.Error("consuming alone should claim")
	}
	s.SetConsuming(false)
	s.SetIntercepting(true)
	if !s.Claimed() || !s.Intercepting() {
		t.Error("intercepting alone should claim")
	}
}
