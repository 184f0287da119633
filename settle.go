package pulltorefresh

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultSettleDuration    = 0.25   // seconds
	defaultFlingDeceleration = 4000.0 // pixels per second squared
)

// SettleAnimator produces a decelerating sequence of offsets toward a rest
// position. Offsets are clamped to [0, MaxDistance]. Call Tick each frame
// until it reports finished.
//
// Target-driven settles (ScrollTo) use an OutCubic tween of fixed duration.
// Velocity-driven settles (Fling) use an OutQuad tween whose duration is
// chosen so the initial slope equals the release velocity.
type SettleAnimator struct {
	tween        *gween.Tween
	offset       float64
	target       float64
	maxDistance  float64
	duration     float32
	deceleration float64
	finished     bool
}

// NewSettleAnimator creates an animator. Non-positive arguments select the
// defaults.
func NewSettleAnimator(duration float32, deceleration float64) *SettleAnimator {
	if duration <= 0 {
		duration = defaultSettleDuration
	}
	if deceleration <= 0 {
		deceleration = defaultFlingDeceleration
	}
	return &SettleAnimator{duration: duration, deceleration: deceleration, finished: true}
}

// SetMaxDistance sets the upper clamp bound. Zero leaves offsets unbounded
// above.
func (a *SettleAnimator) SetMaxDistance(d float64) {
	a.maxDistance = math.Max(d, 0)
}

// MaxDistance returns the upper clamp bound.
func (a *SettleAnimator) MaxDistance() float64 { return a.maxDistance }

// Offset returns the most recent offset.
func (a *SettleAnimator) Offset() float64 { return a.offset }

// Target returns the rest offset of the current or last animation.
func (a *SettleAnimator) Target() float64 { return a.target }

// Finished reports whether no animation is in flight.
func (a *SettleAnimator) Finished() bool { return a.finished }

// ScrollTo starts a target-driven settle from start to end. It returns false
// when there is nothing to animate.
func (a *SettleAnimator) ScrollTo(start, end float64) bool {
	a.Abort()
	start, end = a.clamp(start), a.clamp(end)
	a.offset, a.target = start, end
	if start == end {
		return false
	}
	a.tween = gween.New(float32(start), float32(end), a.duration, ease.OutCubic)
	a.finished = false
	return true
}

// Fling starts a velocity-driven settle. The offset travels the distance a
// body at velocity covers under the configured deceleration, stopping early
// at the clamp bounds.
func (a *SettleAnimator) Fling(start, velocity float64) bool {
	end := start + math.Copysign(a.FlingDistance(velocity), velocity)
	return a.flingTo(start, end, velocity)
}

// SettleTo moves to end. When velocity already heads toward end and would
// carry the offset at least that far, the release motion is continued as a
// fling that stops at end; otherwise it is a plain ScrollTo.
func (a *SettleAnimator) SettleTo(start, end, velocity float64) bool {
	if (end-start)*velocity > 0 && a.FlingDistance(velocity) >= math.Abs(end-start) {
		return a.flingTo(start, end, velocity)
	}
	return a.ScrollTo(start, end)
}

// FlingDistance returns how far a fling at velocity travels before stopping.
func (a *SettleAnimator) FlingDistance(velocity float64) float64 {
	return velocity * velocity / (2 * a.deceleration)
}

func (a *SettleAnimator) flingTo(start, end, velocity float64) bool {
	a.Abort()
	start, end = a.clamp(start), a.clamp(end)
	a.offset, a.target = start, end
	dist := math.Abs(end - start)
	speed := math.Abs(velocity)
	if dist == 0 || speed == 0 {
		return false
	}
	a.tween = gween.New(float32(start), float32(end), float32(2*dist/speed), ease.OutQuad)
	a.finished = false
	return true
}

// Tick advances the animation by dt seconds and returns the new offset and
// whether the animation has reached its target.
func (a *SettleAnimator) Tick(dt float32) (float64, bool) {
	if a.finished {
		return a.offset, true
	}
	val, done := a.tween.Update(dt)
	a.offset = a.clamp(float64(val))
	if done {
		a.offset = a.target
		a.finished = true
		a.tween = nil
	}
	return a.offset, a.finished
}

// Abort stops the animation where it is. Safe to call at any time.
func (a *SettleAnimator) Abort() {
	a.tween = nil
	a.finished = true
}

func (a *SettleAnimator) clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if a.maxDistance > 0 && v > a.maxDistance {
		return a.maxDistance
	}
	return v
}
