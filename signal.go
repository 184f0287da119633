package pulltorefresh

// InterceptionSignal holds the two flags that tell the host view tree to stop
// ancestors from stealing the gesture. Each flag notifies its observer only
// when its value changes.
type InterceptionSignal struct {
	intercepting bool
	consuming    bool

	onIntercept func(bool)
	onConsume   func(bool)
}

// NewInterceptionSignal creates a signal with the given observers. Either may
// be nil.
func NewInterceptionSignal(onIntercept, onConsume func(bool)) *InterceptionSignal {
	return &InterceptionSignal{onIntercept: onIntercept, onConsume: onConsume}
}

// Intercepting reports whether the coordinator has claimed the gesture.
func (s *InterceptionSignal) Intercepting() bool { return s.intercepting }

// Consuming reports whether the most recent event was consumed.
func (s *InterceptionSignal) Consuming() bool { return s.consuming }

// Claimed reports whether either flag is set.
func (s *InterceptionSignal) Claimed() bool { return s.intercepting || s.consuming }

// SetIntercepting updates the intercept flag.
func (s *InterceptionSignal) SetIntercepting(v bool) {
	if s.intercepting == v {
		return
	}
	s.intercepting = v
	if s.onIntercept != nil {
		s.onIntercept(v)
	}
}

// SetConsuming updates the consume flag.
func (s *InterceptionSignal) SetConsuming(v bool) {
	if s.consuming == v {
		return
	}
	s.consuming = v
	if s.onConsume != nil {
		s.onConsume(v)
	}
}
