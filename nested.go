package pulltorefresh

// ScrollAxis is a bitmask of scroll axes.
type ScrollAxis uint8

const (
	AxisHorizontal ScrollAxis = 1 << iota
	AxisVertical
)

// NestedScrollParent is the arbiter's own ancestor in the scroll delegation
// chain. Scroll deltas use content-scroll sign: positive dy scrolls the
// content toward its end (finger moving up).
type NestedScrollParent interface {
	StartNestedScroll(axes ScrollAxis) bool
	StopNestedScroll()
	// DispatchNestedPreScroll offers a delta before the arbiter's child
	// consumes it and returns the amount the ancestor consumed.
	DispatchNestedPreScroll(dx, dy float64) (consumedX, consumedY float64)
	// DispatchNestedScroll reports what the child consumed and left over and
	// returns how far the ancestor moved this view in response.
	DispatchNestedScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed float64) (offsetX, offsetY float64)
	DispatchNestedPreFling(vx, vy float64) bool
	DispatchNestedFling(vx, vy float64, consumed bool) bool
}

// nestedHost is what the arbiter needs from the refresh controller. Deltas
// passed to applyPull and releasePull use pull sign: positive reveals the
// header.
type nestedHost interface {
	acceptNestedScroll() bool
	claimNestedDirection(dy float64) bool
	applyPull(delta float64)
	releasePull(velocity float64)
}

// NestedScrollArbiter negotiates ownership of scroll deltas offered by a
// nested scrollable child. It never claims a session up front: ownership is
// taken on the pre-scroll after the child first reports an unconsumed
// remainder, because only the remainder's sign tells which edge is pulled.
type NestedScrollArbiter struct {
	host           nestedHost
	parent         NestedScrollParent
	consumePercent float64

	axes          ScrollAxis
	started       bool
	owning        bool
	flingVelocity float64
}

func newNestedScrollArbiter(host nestedHost, consumePercent float64) *NestedScrollArbiter {
	return &NestedScrollArbiter{host: host, consumePercent: consumePercent}
}

// SetParent sets the ancestor delegation chain. Nil ends the chain here.
func (a *NestedScrollArbiter) SetParent(p NestedScrollParent) {
	a.parent = p
}

// Active reports whether a nested scroll session is in progress.
func (a *NestedScrollArbiter) Active() bool { return a.started }

// Owning reports whether the arbiter is claiming pre-scroll deltas.
func (a *NestedScrollArbiter) Owning() bool { return a.owning }

// Axes returns the axes of the accepted session.
func (a *NestedScrollArbiter) Axes() ScrollAxis { return a.axes }

// OnStartNestedScroll reports whether the arbiter accepts a session on axes.
func (a *NestedScrollArbiter) OnStartNestedScroll(axes ScrollAxis) bool {
	if axes&AxisVertical == 0 {
		return false
	}
	return a.host.acceptNestedScroll()
}

// OnNestedScrollAccepted begins the session and forwards it to the ancestor.
func (a *NestedScrollArbiter) OnNestedScrollAccepted(axes ScrollAxis) {
	a.axes = axes
	a.started = true
	a.owning = false
	a.flingVelocity = 0
	if a.parent != nil {
		a.parent.StartNestedScroll(axes & AxisVertical)
	}
}

// OnNestedPreScroll is called before the child scrolls by (dx, dy). While
// owning, the arbiter claims all of dy; only the remainder is offered to the
// ancestor.
func (a *NestedScrollArbiter) OnNestedPreScroll(dx, dy float64) (consumedX, consumedY float64) {
	if a.owning && dy != 0 {
		consumedY = dy
		a.host.applyPull(-dy * a.consumePercent)
	}
	if a.parent != nil {
		px, py := a.parent.DispatchNestedPreScroll(dx-consumedX, dy-consumedY)
		consumedX += px
		consumedY += py
	}
	return consumedX, consumedY
}

// OnNestedScroll is called after the child scrolled. A non-zero vertical
// remainder, after the ancestor has had its turn, assigns the pull direction
// and arms ownership for the next pre-scroll.
func (a *NestedScrollArbiter) OnNestedScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed float64) {
	var offsetY float64
	if a.parent != nil {
		_, offsetY = a.parent.DispatchNestedScroll(dxConsumed, dyConsumed, dxUnconsumed, dyUnconsumed)
	}
	dy := dyUnconsumed + offsetY
	if dy == 0 || a.owning {
		return
	}
	if a.host.claimNestedDirection(dy) {
		a.owning = true
	}
}

// OnNestedPreFling claims the fling while owning so the child does not
// scroll its content; the velocity is used when the session ends.
func (a *NestedScrollArbiter) OnNestedPreFling(vx, vy float64) bool {
	if a.owning {
		a.flingVelocity = -vy * a.consumePercent
		return true
	}
	if a.parent != nil {
		return a.parent.DispatchNestedPreFling(vx, vy)
	}
	return false
}

// OnNestedFling forwards a fling to the ancestor.
func (a *NestedScrollArbiter) OnNestedFling(vx, vy float64, consumed bool) bool {
	if a.parent != nil {
		return a.parent.DispatchNestedFling(vx, vy, consumed)
	}
	return false
}

// OnStopNestedScroll ends the session. An owned session is released exactly
// like a pointer up.
func (a *NestedScrollArbiter) OnStopNestedScroll() {
	a.started = false
	if a.owning {
		a.owning = false
		a.host.releasePull(a.flingVelocity)
	}
	a.flingVelocity = 0
	a.axes = 0
	if a.parent != nil {
		a.parent.StopNestedScroll()
	}
}
