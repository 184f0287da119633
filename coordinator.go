package pulltorefresh

const (
	defaultTouchSlop   = 8.0 // pixels
	velocityWindow     = 0.1 // seconds of samples used to estimate release velocity
	maxVelocitySamples = 16
)

// CoordinatorHandlers are the callbacks a GestureCoordinator drives. They are
// passed at construction; any may be nil.
type CoordinatorHandlers struct {
	// ShouldIntercept decides whether an Idle drag past the touch slop
	// becomes a pull. Nil refuses every drag.
	ShouldIntercept func(Sample) bool
	// ShouldConsume decides whether a move is applied while Consuming and
	// whether a pointer down reclaims a settle. Nil consumes while the
	// intercept flag is set.
	ShouldConsume func(Sample) bool
	// OnBegin fires on Idle -> Consuming, before the state change, with the
	// qualifying sample.
	OnBegin func(Sample)
	// OnConsume receives each consumed vertical movement, already scaled by
	// the consume percent.
	OnConsume func(delta float64)
	// OnFinish fires on pointer up or cancel while Consuming. velocity is the
	// vertical release velocity scaled by the consume percent; consumed
	// reports whether any movement was applied this gesture.
	OnFinish func(velocity float64, consumed bool)
	// OnSettle receives each animated offset while Settling.
	OnSettle       func(offset float64)
	OnStateChanged func(old, new GestureState)
}

type velocitySample struct {
	t, y float64
}

// GestureSession is the transient state of one pointer gesture, from pointer
// down to pointer up or cancel.
type GestureSession struct {
	origin     Vec2
	last       Vec2
	capability Direction
	consumed   bool
	reclaim    bool
	samples    [maxVelocitySamples]velocitySample
	next       int
}

func newGestureSession(ev PointerEvent) *GestureSession {
	s := &GestureSession{origin: Vec2{ev.X, ev.Y}}
	s.track(ev)
	return s
}

// Origin returns the pointer-down position.
func (s *GestureSession) Origin() Vec2 { return s.origin }

// Last returns the most recent pointer position.
func (s *GestureSession) Last() Vec2 { return s.last }

// Capability returns which indicator this gesture pulls, or DirectionNone
// before the gesture has been intercepted.
func (s *GestureSession) Capability() Direction { return s.capability }

// Consumed reports whether any movement has been applied this gesture.
func (s *GestureSession) Consumed() bool { return s.consumed }

func (s *GestureSession) track(ev PointerEvent) {
	s.last = Vec2{ev.X, ev.Y}
	s.samples[s.next%maxVelocitySamples] = velocitySample{t: ev.Time, y: ev.Y}
	s.next++
}

// velocity prefers the host estimate and falls back to the slope over the
// last velocityWindow seconds of samples.
func (s *GestureSession) velocity(ev PointerEvent) float64 {
	if ev.Velocity.Y != 0 {
		return ev.Velocity.Y
	}
	n := min(s.next, maxVelocitySamples)
	if n < 2 {
		return 0
	}
	last := s.samples[(s.next-1)%maxVelocitySamples]
	first := last
	for i := 2; i <= n; i++ {
		smp := s.samples[(s.next-i)%maxVelocitySamples]
		if last.t-smp.t > velocityWindow {
			break
		}
		first = smp
	}
	dt := last.t - first.t
	if dt <= 0 {
		return 0
	}
	return (last.y - first.y) / dt
}

// GestureCoordinator turns a raw pointer stream into pull movement. It owns
// the gesture session, the interception flags and the settle animation.
type GestureCoordinator struct {
	geometry PointerGeometry
	signal   *InterceptionSignal
	animator *SettleAnimator
	handlers CoordinatorHandlers
	state    GestureState
	session  *GestureSession

	touchSlop           float64
	consumePercent      float64
	reclaimRequiresSlop bool
}

// NewGestureCoordinator creates a coordinator configured from cfg. signal may
// be nil, in which case an unobserved one is created.
func NewGestureCoordinator(cfg Config, signal *InterceptionSignal, h CoordinatorHandlers) *GestureCoordinator {
	if signal == nil {
		signal = NewInterceptionSignal(nil, nil)
	}
	return &GestureCoordinator{
		signal:              signal,
		animator:            NewSettleAnimator(float32(cfg.SettleDuration), cfg.FlingDeceleration),
		handlers:            h,
		touchSlop:           cfg.TouchSlop,
		consumePercent:      cfg.ConsumePercent,
		reclaimRequiresSlop: cfg.ReclaimRequiresSlop,
	}
}

// State returns the coordinator state.
func (c *GestureCoordinator) State() GestureState { return c.state }

// Session returns the active gesture session, or nil between gestures.
func (c *GestureCoordinator) Session() *GestureSession { return c.session }

// Signal returns the interception flags.
func (c *GestureCoordinator) Signal() *InterceptionSignal { return c.signal }

// Animator returns the settle animator.
func (c *GestureCoordinator) Animator() *SettleAnimator { return c.animator }

// Handle processes one pointer event and reports whether it was consumed.
// A consumed event must not be delivered to the content.
func (c *GestureCoordinator) Handle(ev PointerEvent) bool {
	s := c.geometry.Sample(ev)

	switch ev.Action {
	case PointerDown:
		c.session = newGestureSession(ev)
		if c.state != GestureSettling {
			return false
		}
		if c.reclaimRequiresSlop {
			c.session.reclaim = true
			return false
		}
		if !c.shouldConsume(s) {
			return false
		}
		c.reclaim()
		return true

	case PointerMove:
		if c.session == nil {
			return false
		}
		c.session.track(ev)
		switch c.state {
		case GestureIdle:
			if !c.pastSlop(s) || !c.shouldIntercept(s) {
				return false
			}
			c.begin(s)
		case GestureSettling:
			if !c.session.reclaim || !c.pastSlop(s) || !c.shouldConsume(s) {
				return false
			}
			c.reclaim()
		}
		return c.consume(s)

	case PointerUp, PointerCancel:
		if c.session == nil {
			return false
		}
		c.session.track(ev)
		return c.finish(ev)
	}
	return false
}

// SettleTo animates from start to end, continuing velocity when it heads
// toward end. It reports whether an animation started; when it did not and
// the coordinator was Settling, it returns to Idle.
func (c *GestureCoordinator) SettleTo(start, end, velocity float64) bool {
	if c.animator.SettleTo(start, end, velocity) {
		c.setState(GestureSettling)
		return true
	}
	if c.state == GestureSettling {
		c.toIdle()
	}
	return false
}

// Tick advances a settle by dt seconds. It does nothing unless Settling.
func (c *GestureCoordinator) Tick(dt float64) {
	if c.state != GestureSettling {
		return
	}
	off, done := c.animator.Tick(float32(dt))
	if c.handlers.OnSettle != nil {
		c.handlers.OnSettle(off)
	}
	if done {
		c.toIdle()
	}
}

// Abort cancels any settle in flight and drops the gesture session.
func (c *GestureCoordinator) Abort() {
	c.animator.Abort()
	c.session = nil
	if c.state != GestureIdle {
		c.toIdle()
	}
}

func (c *GestureCoordinator) pastSlop(s Sample) bool {
	dy := s.DeltaYFromStart
	if dy < 0 {
		dy = -dy
	}
	return dy > c.touchSlop
}

func (c *GestureCoordinator) shouldIntercept(s Sample) bool {
	if c.handlers.ShouldIntercept == nil {
		return false
	}
	return c.handlers.ShouldIntercept(s)
}

func (c *GestureCoordinator) shouldConsume(s Sample) bool {
	if c.handlers.ShouldConsume == nil {
		return c.signal.Intercepting()
	}
	return c.handlers.ShouldConsume(s)
}

func (c *GestureCoordinator) begin(s Sample) {
	if s.DeltaYFromStart > 0 {
		c.session.capability = DirectionFromHeader
	} else {
		c.session.capability = DirectionFromFooter
	}
	c.signal.SetIntercepting(true)
	if c.handlers.OnBegin != nil {
		c.handlers.OnBegin(s)
	}
	c.setState(GestureConsuming)
}

// reclaim takes a settling indicator back under the pointer. The animation
// stops where it is so the next delta continues from the visible offset.
func (c *GestureCoordinator) reclaim() {
	c.animator.Abort()
	c.session.reclaim = false
	c.session.consumed = true
	c.signal.SetIntercepting(true)
	c.setState(GestureConsuming)
}

func (c *GestureCoordinator) consume(s Sample) bool {
	if !c.shouldConsume(s) {
		c.signal.SetConsuming(false)
		return false
	}
	c.signal.SetConsuming(true)
	c.session.consumed = true
	if c.handlers.OnConsume != nil && s.DeltaY != 0 {
		c.handlers.OnConsume(s.DeltaY * c.consumePercent)
	}
	return true
}

func (c *GestureCoordinator) finish(ev PointerEvent) bool {
	sess := c.session
	c.session = nil
	if c.state != GestureConsuming {
		return false
	}
	c.signal.SetConsuming(false)
	if c.handlers.OnFinish != nil {
		c.handlers.OnFinish(sess.velocity(ev)*c.consumePercent, sess.consumed)
	}
	if c.state == GestureConsuming {
		c.toIdle()
	}
	return sess.consumed
}

func (c *GestureCoordinator) toIdle() {
	c.signal.SetConsuming(false)
	c.signal.SetIntercepting(false)
	c.setState(GestureIdle)
}

func (c *GestureCoordinator) setState(s GestureState) {
	if c.state == s {
		return
	}
	old := c.state
	c.state = s
	if c.handlers.OnStateChanged != nil {
		c.handlers.OnStateChanged(old, s)
	}
}
