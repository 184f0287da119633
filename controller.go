package pulltorefresh

import (
	"fmt"
	"math"
)

// EventStore is the interface for optional ECS integration.
// When set on a Controller, refresh events are forwarded to the ECS.
type EventStore interface {
	EmitEvent(event RefreshEvent)
}

// RefreshEvent carries controller notifications for the ECS bridge. State,
// Direction, Offset and Overlay are snapshots taken when the event fired.
type RefreshEvent struct {
	Type      EventType
	State     State
	Direction Direction
	Offset    float64
	Overlay   bool
	// State change fields (valid for EventStateChanged)
	OldState State
	NewState State
	// Gesture fields (valid for EventGestureChanged)
	OldGesture GestureState
	NewGesture GestureState
	// Valid for EventInterceptChanged
	Disallow bool
}

// Controller is the pull-to-refresh state machine. It owns a
// GestureCoordinator for direct pointer input and a NestedScrollArbiter for
// scroll delegated by a nested child, and turns both into indicator offsets,
// refresh states and host callbacks.
//
// All methods must be called from one goroutine. Call Update once per frame.
type Controller struct {
	cfg       Config
	header    Indicator
	footer    Indicator
	content   ContentSurface
	condition PullCondition
	mode      Mode
	overlay   bool
	debug     bool

	state       State
	direction   Direction
	offset      float64
	maxDistance float64

	coordinator *GestureCoordinator
	arbiter     *NestedScrollArbiter
	handlers    handlerRegistry
	store       EventStore
	disallow    bool

	holding    bool
	holdRemain float64
	clock      float64

	injectQueue []PointerEvent
	runner      *ScriptRunner
}

// New creates a controller for the given indicators. Either indicator may be
// nil, which disables pulling from that edge.
func New(cfg Config, header, footer Indicator) *Controller {
	c := &Controller{
		cfg:     cfg,
		header:  header,
		footer:  footer,
		mode:    cfg.Mode,
		overlay: cfg.OverlayMode,
		debug:   cfg.Debug,
	}
	signal := NewInterceptionSignal(c.interceptChanged, c.interceptChanged)
	c.coordinator = NewGestureCoordinator(cfg, signal, CoordinatorHandlers{
		ShouldIntercept: c.canPull,
		ShouldConsume:   c.shouldConsume,
		OnBegin:         c.beginPull,
		OnConsume:       c.applyPull,
		OnFinish:        c.finishDrag,
		OnSettle:        c.moveTo,
		OnStateChanged:  c.gestureStateChanged,
	})
	c.arbiter = newNestedScrollArbiter(c, cfg.ConsumePercent)
	return c
}

// --- Host configuration ---

// SetMode sets which edges may be pulled. It affects pulls that start after
// the call.
func (c *Controller) SetMode(m Mode) { c.mode = m }

// Mode returns the pull mode.
func (c *Controller) Mode() Mode { return c.mode }

// SetContent sets the scrollable content used for edge-of-content checks.
// Nil permits pulling regardless of the content position.
func (c *Controller) SetContent(s ContentSurface) { c.content = s }

// SetPullCondition sets an extra gate on starting a pull. Nil removes it.
func (c *Controller) SetPullCondition(p PullCondition) { c.condition = p }

// SetOverlayMode records whether indicators overlay the content instead of
// pushing it. The flag is passed through to events for the renderer.
func (c *Controller) SetOverlayMode(enabled bool) { c.overlay = enabled }

// OverlayMode reports whether indicators overlay the content.
func (c *Controller) OverlayMode() bool { return c.overlay }

// SetEventStore sets the optional ECS bridge.
func (c *Controller) SetEventStore(store EventStore) { c.store = store }

// SetDebugMode enables or disables logging of state changes to stderr.
func (c *Controller) SetDebugMode(enabled bool) { c.debug = enabled }

// SetNestedScrollParent sets the ancestor that receives scroll deltas the
// arbiter does not claim.
func (c *Controller) SetNestedScrollParent(p NestedScrollParent) { c.arbiter.SetParent(p) }

// --- Accessors ---

// State returns the refresh state.
func (c *Controller) State() State { return c.state }

// Direction returns the active pull direction.
func (c *Controller) Direction() Direction { return c.direction }

// ScrollDistance returns the indicator offset, in [0, MaxScrollDistance].
func (c *Controller) ScrollDistance() float64 { return c.offset }

// MaxScrollDistance returns the active indicator's height, or 0 when no
// direction is set.
func (c *Controller) MaxScrollDistance() float64 { return c.maxDistance }

// IsRefreshing reports whether a refresh is running.
func (c *Controller) IsRefreshing() bool { return c.state == StateRefreshing }

// GestureState returns the coordinator state.
func (c *Controller) GestureState() GestureState { return c.coordinator.State() }

// Coordinator returns the pointer gesture coordinator.
func (c *Controller) Coordinator() *GestureCoordinator { return c.coordinator }

// Arbiter returns the nested scroll arbiter to hand to the scrollable child.
func (c *Controller) Arbiter() *NestedScrollArbiter { return c.arbiter }

// Header returns the header indicator.
func (c *Controller) Header() Indicator { return c.header }

// Footer returns the footer indicator.
func (c *Controller) Footer() Indicator { return c.footer }

// Clock returns the seconds accumulated by Update.
func (c *Controller) Clock() float64 { return c.clock }

// --- Frame loop ---

// Update advances the controller by dt seconds: it runs the attached script
// runner, feeds one injected pointer event, steps the settle animation and
// counts down a displayed refresh result.
func (c *Controller) Update(dt float64) {
	c.clock += dt
	if c.runner != nil {
		c.runner.step(c)
	}
	c.processInjectedInput()
	c.coordinator.Tick(dt)

	if c.holding {
		c.holdRemain -= dt
		if c.holdRemain <= 0 {
			c.holding = false
			c.finishRefresh()
		}
	}
}

// HandlePointer feeds one pointer event and reports whether the controller
// consumed it. Events with a zero Time are stamped with Clock.
func (c *Controller) HandlePointer(ev PointerEvent) bool {
	if ev.Time == 0 {
		ev.Time = c.clock
	}
	return c.coordinator.Handle(ev)
}

// Dispose stops any animation and drops the gesture in progress.
func (c *Controller) Dispose() {
	c.holding = false
	c.coordinator.Abort()
}

// --- Host refresh control ---

// StartRefreshingFromHeader starts a refresh without a gesture.
func (c *Controller) StartRefreshingFromHeader() error {
	return c.startRefreshing(DirectionFromHeader)
}

// StartRefreshingFromFooter starts a refresh without a gesture.
func (c *Controller) StartRefreshingFromFooter() error {
	return c.startRefreshing(DirectionFromFooter)
}

func (c *Controller) startRefreshing(d Direction) error {
	if c.state != StateReset || c.direction != DirectionNone || c.arbiter.Active() {
		return fmt.Errorf("start refreshing %v from %v: %w", d, c.state, ErrNotReset)
	}
	if c.coordinator.State() != GestureIdle {
		c.coordinator.Abort()
	}
	if err := c.setDirection(d); err != nil {
		return fmt.Errorf("start refreshing: %w", err)
	}
	if err := c.setState(StateRefreshing); err != nil {
		return err
	}
	c.updateViewByState(0)
	return nil
}

// StopRefreshing ends a refresh without showing a result. It also cuts a
// displayed result short.
func (c *Controller) StopRefreshing() error {
	if c.state != StateRefreshing && !c.state.IsResult() {
		return fmt.Errorf("stop refreshing from %v: %w", c.state, ErrNotRefreshing)
	}
	c.holding = false
	c.finishRefresh()
	return nil
}

// StopRefreshingWithResult shows the result for the configured duration and
// then returns to Reset. It is rejected unless a refresh is running.
func (c *Controller) StopRefreshingWithResult(success bool) error {
	if c.state != StateRefreshing {
		return fmt.Errorf("stop refreshing from %v: %w", c.state, ErrNotRefreshing)
	}
	next := StateRefreshingFailure
	if success {
		next = StateRefreshingSuccess
	}
	if err := c.setState(next); err != nil {
		return err
	}
	c.holding = true
	c.holdRemain = float64(c.cfg.ResultDurationMs) / 1000
	if c.holdRemain <= 0 {
		c.holding = false
		c.finishRefresh()
	}
	return nil
}

func (c *Controller) finishRefresh() {
	if c.state == StateFinish {
		return
	}
	if err := c.setState(StateFinish); err != nil {
		c.debugLog("finish refresh: %v", err)
		return
	}
	c.updateViewByState(0)
}

// --- Pull predicates ---

func (c *Controller) canPullFromHeader() bool {
	if c.header == nil || !c.mode.AllowsHeader() {
		return false
	}
	if c.content != nil && !c.content.IsAtTopBoundary() {
		return false
	}
	return c.condition == nil || c.condition.CanPullFromHeader(c)
}

func (c *Controller) canPullFromFooter() bool {
	if c.footer == nil || !c.mode.AllowsFooter() {
		return false
	}
	if c.content != nil && !c.content.IsAtBottomBoundary() {
		return false
	}
	return c.condition == nil || c.condition.CanPullFromFooter(c)
}

// canPull gates Idle -> Consuming. The coordinator has already checked the
// touch slop.
func (c *Controller) canPull(s Sample) bool {
	if s.AngleFromVertical >= c.cfg.MaxPullAngle {
		return false
	}
	dy := s.DeltaYFromStart
	if !(dy > 0 && c.canPullFromHeader()) && !(dy < 0 && c.canPullFromFooter()) {
		return false
	}
	if c.state != StateReset || c.direction != DirectionNone {
		return false
	}
	return !c.arbiter.Active()
}

func (c *Controller) shouldConsume(s Sample) bool {
	return c.coordinator.Signal().Intercepting() || c.canPull(s)
}

// --- Direction ---

func (c *Controller) setDirectionByDelta(delta float64) error {
	if delta == 0 {
		return ErrZeroDelta
	}
	if delta > 0 {
		return c.setDirection(DirectionFromHeader)
	}
	return c.setDirection(DirectionFromFooter)
}

// setDirection assigns d once. A second assignment keeps the first.
func (c *Controller) setDirection(d Direction) error {
	if c.direction != DirectionNone {
		return nil
	}
	ind := c.indicator(d)
	if ind == nil {
		return fmt.Errorf("%v: %w", d, ErrNoIndicator)
	}
	c.direction = d
	c.maxDistance = ind.Height()
	c.coordinator.Animator().SetMaxDistance(c.maxDistance)
	c.debugLog("direction %v, max distance %.1f", d, c.maxDistance)
	return nil
}

func (c *Controller) clearDirection() {
	c.direction = DirectionNone
	c.maxDistance = 0
	c.coordinator.Animator().SetMaxDistance(0)
}

func (c *Controller) indicator(d Direction) Indicator {
	switch d {
	case DirectionFromHeader:
		return c.header
	case DirectionFromFooter:
		return c.footer
	}
	return nil
}

func (c *Controller) activeIndicator() Indicator {
	return c.indicator(c.direction)
}

// --- Gesture handlers ---

func (c *Controller) beginPull(s Sample) {
	if err := c.setDirectionByDelta(s.DeltaYFromStart); err != nil {
		c.debugLog("begin pull: %v", err)
	}
}

// applyPull moves the indicator by a pull-signed delta: positive follows a
// finger moving down.
func (c *Controller) applyPull(delta float64) {
	switch c.direction {
	case DirectionFromHeader:
		c.moveTo(c.offset + delta)
	case DirectionFromFooter:
		c.moveTo(c.offset - delta)
	default:
		return
	}
	c.updateStateByOffset()
}

func (c *Controller) finishDrag(velocity float64, consumed bool) {
	if consumed {
		c.releasePull(velocity)
	}
}

// releasePull is the shared release path for pointer up and the end of an
// owned nested scroll.
func (c *Controller) releasePull(velocity float64) {
	if ind := c.activeIndicator(); ind != nil {
		ind.OnRelease()
	}
	if c.state == StateReleaseToRefresh {
		if err := c.setState(StateRefreshing); err != nil {
			c.debugLog("release: %v", err)
		}
	}
	c.updateViewByState(c.offsetVelocity(velocity))
}

func (c *Controller) gestureStateChanged(old, new GestureState) {
	c.debugLog("gesture %v -> %v", old, new)
	c.fireGestureChanged(old, new)
	if new == GestureIdle {
		c.onViewIdle()
	}
}

func (c *Controller) interceptChanged(bool) {
	disallow := c.coordinator.Signal().Claimed()
	if disallow == c.disallow {
		return
	}
	c.disallow = disallow
	c.fireIntercept(disallow)
}

// --- Nested scroll host ---

func (c *Controller) acceptNestedScroll() bool {
	if c.state != StateReset || c.direction != DirectionNone || c.mode == ModePullDisabled {
		return false
	}
	if c.coordinator.State() == GestureConsuming {
		return false
	}
	return c.canPullFromHeader() || c.canPullFromFooter()
}

// claimNestedDirection assigns the direction from a scroll remainder. A
// negative remainder means the content wanted to scroll past its top.
func (c *Controller) claimNestedDirection(dy float64) bool {
	if c.direction != DirectionNone {
		return false
	}
	var err error
	switch {
	case dy < 0 && c.canPullFromHeader():
		err = c.setDirection(DirectionFromHeader)
	case dy > 0 && c.canPullFromFooter():
		err = c.setDirection(DirectionFromFooter)
	default:
		return false
	}
	if err != nil {
		c.debugLog("nested scroll: %v", err)
		return false
	}
	c.debugLog("nested scroll claimed %v", c.direction)
	return true
}

// --- Offset and state ---

func (c *Controller) moveTo(offset float64) {
	offset = math.Max(offset, 0)
	if offset > c.maxDistance {
		offset = c.maxDistance
	}
	if offset == c.offset {
		return
	}
	c.offset = offset
	if ind := c.activeIndicator(); ind != nil {
		ind.OnPositionChanged(offset)
	}
	c.firePosition(offset)
}

// updateStateByOffset keeps the drag sub-state in step with the offset.
func (c *Controller) updateStateByOffset() {
	if c.state != StateReset && !c.state.IsPulling() {
		return
	}
	if c.state == StateReset {
		if c.offset == 0 {
			return
		}
		c.mustSetState(StatePullToRefresh)
	}
	ind := c.activeIndicator()
	trigger := ind.TriggerHeight()
	switch {
	case c.state == StatePullToRefresh && c.offset >= trigger:
		c.mustSetState(StateReleaseToRefresh)
	case c.state == StateReleaseToRefresh && c.offset < trigger:
		c.mustSetState(StatePullToRefresh)
	}
	if trigger > 0 {
		ind.OnPull(c.offset / trigger)
	}
}

// restOffset is where the indicator settles in the current state.
func (c *Controller) restOffset() float64 {
	switch c.state {
	case StateRefreshing, StateRefreshingSuccess, StateRefreshingFailure:
		if ind := c.activeIndicator(); ind != nil {
			return math.Min(ind.RefreshingHeight(), c.maxDistance)
		}
	}
	return 0
}

func (c *Controller) updateViewByState(velocity float64) {
	if c.coordinator.SettleTo(c.offset, c.restOffset(), velocity) {
		return
	}
	c.onViewIdle()
}

// offsetVelocity converts a pull-signed velocity to offset space and drops
// it below the fling threshold.
func (c *Controller) offsetVelocity(v float64) float64 {
	if c.direction == DirectionFromFooter {
		v = -v
	}
	if math.Abs(v) < c.cfg.MinFlingVelocity {
		return 0
	}
	return v
}

// onViewIdle returns to Reset once nothing is moving the indicator and it is
// back at 0.
func (c *Controller) onViewIdle() {
	if c.coordinator.State() != GestureIdle || c.arbiter.Active() || c.offset != 0 {
		return
	}
	switch c.state {
	case StateReleaseToRefresh:
		c.mustSetState(StatePullToRefresh)
		c.mustSetState(StateReset)
	case StatePullToRefresh, StateFinish:
		c.mustSetState(StateReset)
	case StateReset:
		c.clearDirection()
	}
}

// setState moves along a permitted edge, runs the indicator hooks and
// notifies the host.
func (c *Controller) setState(s State) error {
	if c.state == s {
		return nil
	}
	if !CanTransition(c.state, s) {
		return fmt.Errorf("%v -> %v: %w", c.state, s, ErrInvalidTransition)
	}
	old := c.state
	c.state = s
	c.debugLog("state %v -> %v (%v, offset %.1f)", old, s, c.direction, c.offset)

	if ind := c.activeIndicator(); ind != nil {
		switch s {
		case StatePullToRefresh:
			if old == StateReset {
				ind.OnBeginPull()
			}
		case StateRefreshing:
			ind.OnRefreshingStart()
		case StateRefreshingSuccess:
			ind.OnRefreshingResult(true)
		case StateRefreshingFailure:
			ind.OnRefreshingResult(false)
		case StateFinish:
			ind.OnRefreshingFinish()
		}
	}
	if s == StateReset {
		c.clearDirection()
	}

	c.fireStateChanged(old, s)
	if s == StateRefreshing {
		c.fireRefresh(c.direction)
	}
	return nil
}

// mustSetState is for internal edges that are permitted by construction.
func (c *Controller) mustSetState(s State) {
	if err := c.setState(s); err != nil {
		panic(err)
	}
}
