package pulltorefresh

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateReset, StatePullToRefresh, true},
		{StateReset, StateRefreshing, true},
		{StateReset, StateReleaseToRefresh, false},
		{StateReset, StateFinish, false},
		{StatePullToRefresh, StateReleaseToRefresh, true},
		{StatePullToRefresh, StateReset, true},
		{StatePullToRefresh, StateRefreshing, false},
		{StateReleaseToRefresh, StatePullToRefresh, true},
		{StateReleaseToRefresh, StateRefreshing, true},
		{StateReleaseToRefresh, StateFinish, false},
		{StateReleaseToRefresh, StateReset, false},
		{StateRefreshing, StateRefreshingSuccess, true},
		{StateRefreshing, StateRefreshingFailure, true},
		{StateRefreshing, StateFinish, true},
		{StateRefreshing, StateReset, false},
		{StateRefreshingSuccess, StateFinish, true},
		{StateRefreshingSuccess, StateReset, false},
		{StateRefreshingFailure, StateFinish, true},
		{StateFinish, StateReset, true},
		{StateFinish, StatePullToRefresh, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatePredicates(t *testing.T) {
	if !StateRefreshingSuccess.IsResult() || !StateRefreshingFailure.IsResult() || StateRefreshing.IsResult() {
		t.Error("IsResult mismatch")
	}
	if !StatePullToRefresh.IsPulling() || !StateReleaseToRefresh.IsPulling() || StateReset.IsPulling() {
		t.Error("IsPulling mismatch")
	}
}

func TestStateString(t *testing.T) {
	if got := StateReleaseToRefresh.String(); got != "ReleaseToRefresh" {
		t.Errorf("String = %q", got)
	}
	if got := State(99).String(); got != "Unknown" {
		t.Errorf("out of range String = %q", got)
	}
	if got := DirectionFromFooter.String(); got != "FromFooter" {
		t.Errorf("Direction String = %q", got)
	}
	if got := GestureSettling.String(); got != "Settling" {
		t.Errorf("GestureState String = %q", got)
	}
}
