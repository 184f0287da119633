package pulltorefresh

// transitions lists the permitted refresh state edges. Reset -> Refreshing is
// the programmatic start; PullToRefresh <-> ReleaseToRefresh reverses while
// dragging; Refreshing and the result states may be cut short to Finish.
var transitions = map[State][]State{
	StateReset:             {StatePullToRefresh, StateRefreshing},
	StatePullToRefresh:     {StateReleaseToRefresh, StateReset},
	StateReleaseToRefresh:  {StatePullToRefresh, StateRefreshing},
	StateRefreshing:        {StateRefreshingSuccess, StateRefreshingFailure, StateFinish},
	StateRefreshingSuccess: {StateFinish},
	StateRefreshingFailure: {StateFinish},
	StateFinish:            {StateReset},
}

// CanTransition reports whether from -> to is a permitted edge.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsResult reports whether s shows a refresh result.
func (s State) IsResult() bool {
	return s == StateRefreshingSuccess || s == StateRefreshingFailure
}

// IsPulling reports whether s is one of the drag sub-states.
func (s State) IsPulling() bool {
	return s == StatePullToRefresh || s == StateReleaseToRefresh
}
