package pulltorefresh

import "errors"

// Vec2 is a 2D vector used for pointer positions and velocities.
type Vec2 struct {
	X, Y float64
}

// Direction identifies which edge the current pull started from. It is set
// once per gesture or nested scroll sequence and cleared only on return to
// StateReset.
type Direction uint8

const (
	DirectionNone       Direction = iota // no pull in progress
	DirectionFromHeader                  // content pulled down, header revealed
	DirectionFromFooter                  // content pulled up, footer revealed
)

func (d Direction) String() string {
	switch d {
	case DirectionFromHeader:
		return "FromHeader"
	case DirectionFromFooter:
		return "FromFooter"
	default:
		return "None"
	}
}

// State is the semantic refresh state.
type State uint8

const (
	StateReset             State = iota // idle, offset 0
	StatePullToRefresh                  // dragging, below the trigger height
	StateReleaseToRefresh               // dragging, at or past the trigger height
	StateRefreshing                     // refresh action running
	StateRefreshingSuccess              // showing a successful result
	StateRefreshingFailure              // showing a failed result
	StateFinish                         // returning to offset 0
)

var stateNames = [...]string{
	StateReset:             "Reset",
	StatePullToRefresh:     "PullToRefresh",
	StateReleaseToRefresh:  "ReleaseToRefresh",
	StateRefreshing:        "Refreshing",
	StateRefreshingSuccess: "RefreshingSuccess",
	StateRefreshingFailure: "RefreshingFailure",
	StateFinish:            "Finish",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// GestureState is the GestureCoordinator's interaction state.
type GestureState uint8

const (
	GestureIdle      GestureState = iota // no active interaction
	GestureConsuming                     // pointer movement drives the indicator
	GestureSettling                      // animation drives the indicator
)

func (g GestureState) String() string {
	switch g {
	case GestureConsuming:
		return "Consuming"
	case GestureSettling:
		return "Settling"
	default:
		return "Idle"
	}
}

// PointerAction identifies a kind of raw pointer event.
type PointerAction uint8

const (
	PointerDown   PointerAction = iota // first contact
	PointerMove                        // contact moved
	PointerUp                          // contact lifted
	PointerCancel                      // host aborted the gesture
)

// PointerEvent is a single raw pointer sample delivered by the host.
// Velocity is only read on PointerUp and PointerCancel; when it is zero the
// coordinator estimates one from the session's recent samples.
type PointerEvent struct {
	Action   PointerAction
	X, Y     float64
	Time     float64 // seconds, monotonic
	Velocity Vec2    // pixels per second, host estimate
}

// EventType identifies a kind of RefreshEvent.
type EventType uint8

const (
	EventStateChanged     EventType = iota // refresh state changed
	EventRefresh                           // refresh triggered
	EventPositionChanged                   // indicator offset changed
	EventGestureChanged                    // coordinator state changed
	EventInterceptChanged                  // ancestor interception allowed or disallowed
)

// Contract violations returned by the host API.
var (
	ErrZeroDelta         = errors.New("pulltorefresh: direction requires a non-zero delta")
	ErrInvalidTransition = errors.New("pulltorefresh: invalid state transition")
	ErrNotRefreshing     = errors.New("pulltorefresh: not refreshing")
	ErrNotReset          = errors.New("pulltorefresh: not in reset state")
	ErrNoIndicator       = errors.New("pulltorefresh: no indicator for direction")
)
