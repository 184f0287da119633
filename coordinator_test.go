package pulltorefresh

import (
	"math"
	"testing"
)

// coordRig drives a GestureCoordinator with a minimal host that tracks the
// offset and settles back to 0 on release.
type coordRig struct {
	c         *GestureCoordinator
	offset    float64
	consumed  []float64
	finishes  []float64
	intercept bool
	states    []GestureState
}

func newCoordRig(cfg Config) *coordRig {
	r := &coordRig{intercept: true}
	r.c = NewGestureCoordinator(cfg, nil, CoordinatorHandlers{
		ShouldIntercept: func(Sample) bool { return r.intercept },
		OnConsume: func(d float64) {
			r.consumed = append(r.consumed, d)
			r.offset = math.Max(r.offset+d, 0)
		},
		OnFinish: func(v float64, consumed bool) {
			r.finishes = append(r.finishes, v)
			if consumed {
				r.c.SettleTo(r.offset, 0, 0)
			}
		},
		OnSettle:       func(off float64) { r.offset = off },
		OnStateChanged: func(_, new GestureState) { r.states = append(r.states, new) },
	})
	return r
}

func coordConfig() Config {
	cfg := DefaultConfig()
	cfg.TouchSlop = 8
	cfg.ConsumePercent = 0.5
	return cfg
}

func (r *coordRig) handle(action PointerAction, y, t float64) bool {
	return r.c.Handle(PointerEvent{Action: action, Y: y, Time: t})
}

func (r *coordRig) settle(t *testing.T) {
	t.Helper()
	for range 200 {
		if r.c.State() == GestureIdle {
			return
		}
		r.c.Tick(frame)
	}
	t.Fatalf("coordinator still %v", r.c.State())
}

func TestCoordinatorInterceptAfterSlop(t *testing.T) {
	r := newCoordRig(coordConfig())

	if r.handle(PointerDown, 0, 0) {
		t.Error("down should not be consumed while idle")
	}
	if r.handle(PointerMove, 5, 0.01) {
		t.Error("move inside slop should not be consumed")
	}
	if r.c.State() != GestureIdle {
		t.Fatalf("state = %v, want Idle", r.c.State())
	}

	if !r.handle(PointerMove, 20, 0.02) {
		t.Fatal("move past slop should be consumed")
	}
	if r.c.State() != GestureConsuming {
		t.Fatalf("state = %v, want Consuming", r.c.State())
	}
	if got := r.c.Session().Capability(); got != DirectionFromHeader {
		t.Errorf("capability = %v, want FromHeader", got)
	}
	if !r.c.Signal().Intercepting() || !r.c.Signal().Consuming() {
		t.Error("both interception flags should be set while consuming")
	}
	// DeltaY 15 scaled by 0.5.
	if len(r.consumed) != 1 || r.consumed[0] != 7.5 {
		t.Errorf("consumed = %v, want [7.5]", r.consumed)
	}

	if !r.handle(PointerUp, 20, 0.03) {
		t.Error("up ending a consumed gesture should be consumed")
	}
	if r.c.State() != GestureSettling {
		t.Fatalf("state = %v, want Settling", r.c.State())
	}
	if r.c.Session() != nil {
		t.Error("session should end on up")
	}

	r.settle(t)
	if r.offset != 0 {
		t.Errorf("offset after settle = %v, want 0", r.offset)
	}
	if r.c.Signal().Claimed() {
		t.Error("interception flags should clear on Idle")
	}
	want := []GestureState{GestureConsuming, GestureSettling, GestureIdle}
	if len(r.states) != len(want) {
		t.Fatalf("states = %v, want %v", r.states, want)
	}
	for i := range want {
		if r.states[i] != want[i] {
			t.Errorf("states[%d] = %v, want %v", i, r.states[i], want[i])
		}
	}
}

func TestCoordinatorFooterCapability(t *testing.T) {
	r := newCoordRig(coordConfig())
	r.handle(PointerDown, 100, 0)
	r.handle(PointerMove, 80, 0.01)
	if got := r.c.Session().Capability(); got != DirectionFromFooter {
		t.Errorf("capability = %v, want FromFooter", got)
	}
}

func TestCoordinatorInterceptRefused(t *testing.T) {
	r := newCoordRig(coordConfig())
	r.intercept = false
	r.handle(PointerDown, 0, 0)
	if r.handle(PointerMove, 50, 0.01) {
		t.Error("refused drag should not be consumed")
	}
	if r.handle(PointerUp, 50, 0.02) {
		t.Error("up of a refused drag should not be consumed")
	}
	if r.c.State() != GestureIdle || len(r.finishes) != 0 {
		t.Errorf("state = %v, finishes = %v", r.c.State(), r.finishes)
	}
}

func TestCoordinatorVelocity(t *testing.T) {
	tests := []struct {
		name string
		up   PointerEvent
		want float64
	}{
		{"host estimate", PointerEvent{Action: PointerUp, Y: 30, Time: 0.06, Velocity: Vec2{Y: 300}}, 150},
		{"estimated from samples", PointerEvent{Action: PointerUp, Y: 30, Time: 0.06}, 250},
		{"same timestamp", PointerEvent{Action: PointerUp, Y: 30}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newCoordRig(coordConfig())
			base := tt.up.Time / 3
			r.handle(PointerDown, 0, 0)
			r.handle(PointerMove, 10, base)
			r.handle(PointerMove, 20, 2*base)
			r.c.Handle(tt.up)
			if len(r.finishes) != 1 {
				t.Fatalf("finishes = %v", r.finishes)
			}
			if math.Abs(r.finishes[0]-tt.want) > 1e-6 {
				t.Errorf("velocity = %v, want %v", r.finishes[0], tt.want)
			}
		})
	}
}

func TestCoordinatorVelocityWindow(t *testing.T) {
	r := newCoordRig(coordConfig())
	// The slow start falls outside the window and is ignored.
	r.handle(PointerDown, 0, 0)
	r.handle(PointerMove, 10, 1.0)
	r.handle(PointerMove, 20, 1.05)
	r.handle(PointerUp, 30, 1.1)
	// (30-10)/0.1 = 200, scaled by 0.5.
	if math.Abs(r.finishes[0]-100) > 1e-6 {
		t.Errorf("velocity = %v, want 100", r.finishes[0])
	}
}

func TestCoordinatorReclaimOnDown(t *testing.T) {
	r := newCoordRig(coordConfig())
	r.handle(PointerDown, 0, 0)
	r.handle(PointerMove, 40, 0)
	r.handle(PointerUp, 40, 0)
	if r.c.State() != GestureSettling {
		t.Fatalf("state = %v, want Settling", r.c.State())
	}
	r.c.Tick(0.05)
	mid := r.offset

	if !r.handle(PointerDown, 200, 0.1) {
		t.Fatal("down during settle should reclaim")
	}
	if r.c.State() != GestureConsuming {
		t.Fatalf("state = %v, want Consuming", r.c.State())
	}
	if !r.c.Animator().Finished() {
		t.Error("reclaim should abort the animation")
	}
	if !r.c.Session().Consumed() {
		t.Error("reclaimed session counts as consumed")
	}

	r.handle(PointerMove, 210, 0.1)
	if math.Abs(r.offset-(mid+5)) > 1e-9 {
		t.Errorf("offset = %v, want %v", r.offset, mid+5)
	}
	r.handle(PointerUp, 210, 0.1)
	r.settle(t)
}

func TestCoordinatorReclaimRequiresSlop(t *testing.T) {
	cfg := coordConfig()
	cfg.ReclaimRequiresSlop = true
	r := newCoordRig(cfg)
	r.handle(PointerDown, 0, 0)
	r.handle(PointerMove, 40, 0)
	r.handle(PointerUp, 40, 0)

	if r.handle(PointerDown, 200, 0.1) {
		t.Error("down should wait for the slop")
	}
	if r.handle(PointerMove, 204, 0.1) {
		t.Error("move inside slop should not reclaim")
	}
	if r.c.State() != GestureSettling {
		t.Fatalf("state = %v, want Settling", r.c.State())
	}
	if !r.handle(PointerMove, 220, 0.1) {
		t.Error("move past slop should reclaim")
	}
	if r.c.State() != GestureConsuming {
		t.Errorf("state = %v, want Consuming", r.c.State())
	}
}

func TestCoordinatorSettleTo(t *testing.T) {
	r := newCoordRig(coordConfig())
	if r.c.SettleTo(0, 0, 0) {
		t.Error("nothing to settle")
	}
	if r.c.State() != GestureIdle {
		t.Errorf("state = %v, want Idle", r.c.State())
	}

	if !r.c.SettleTo(0, 50, 0) {
		t.Fatal("SettleTo should start")
	}
	r.settle(t)
	if r.offset != 50 {
		t.Errorf("offset = %v, want 50", r.offset)
	}
}

func TestCoordinatorAbort(t *testing.T) {
	r := newCoordRig(coordConfig())
	r.handle(PointerDown, 0, 0)
	r.handle(PointerMove, 40, 0)
	r.c.Abort()
	if r.c.State() != GestureIdle || r.c.Session() != nil || r.c.Signal().Claimed() {
		t.Error("Abort should drop the gesture and clear flags")
	}
	if r.handle(PointerMove, 60, 0) {
		t.Error("move after Abort belongs to no session")
	}
	r.c.Abort()
}

func TestCoordinatorMoveWithoutDown(t *testing.T) {
	r := newCoordRig(coordConfig())
	if r.handle(PointerMove, 50, 0) || r.handle(PointerUp, 50, 0) {
		t.Error("events without a down should be ignored")
	}
}
