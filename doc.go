// Package pulltorefresh is the gesture engine behind a pull-to-refresh view.
//
// It decides, for every pointer event and every scroll increment delegated
// by a nested scrollable child, whether the movement belongs to the pull or
// to the content; how far the header or footer indicator is revealed; and
// how the indicator settles when the finger lifts. Drawing is left to the
// host: the engine only reports offsets and lifecycle hooks.
//
// # Quick start
//
//	header := &pulltorefresh.BaseIndicator{Full: 100, Trigger: 60, Rest: 50}
//	ctrl := pulltorefresh.New(pulltorefresh.DefaultConfig(), header, nil)
//	ctrl.OnRefresh(func(d pulltorefresh.Direction) {
//		go fetch(func(ok bool) { results <- ok })
//	})
//
// Each frame, feed pointer events and advance the controller:
//
//	ctrl.HandlePointer(pulltorefresh.PointerEvent{Action: pulltorefresh.PointerMove, X: x, Y: y})
//	ctrl.Update(dt)
//
// When the fetch completes, call [Controller.StopRefreshingWithResult] from
// the same goroutine that calls Update.
//
// For Ebitengine games, [EbitenInput] polls mouse, touch and wheel input and
// calls Update for you.
//
// # Components
//
// [PointerGeometry] derives per-event movement and the drag angle.
// [GestureCoordinator] moves between Idle, Consuming and Settling and owns
// the [InterceptionSignal] and the [SettleAnimator] (tweens via [gween]).
// [NestedScrollArbiter] takes part in the pre-/post-scroll delegation
// protocol. [Controller] runs the refresh states Reset, PullToRefresh,
// ReleaseToRefresh, Refreshing, RefreshingSuccess, RefreshingFailure and
// Finish, and notifies the host.
//
// # Scripts
//
// [LoadScript] builds a [ScriptRunner] from JSON steps so a gesture can be
// replayed frame by frame without a host, and checked with expect_state
// steps.
//
// [gween]: https://github.com/tanema/gween
package pulltorefresh
