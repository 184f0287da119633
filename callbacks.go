package pulltorefresh

// --- Handler registry ---

type handler[F any] struct {
	id uint32
	fn F
}

type handlerRegistry struct {
	stateChanged   []handler[func(old, new State)]
	gestureChanged []handler[func(old, new GestureState)]
	refresh        []handler[func(Direction)]
	position       []handler[func(offset float64)]
	intercept      []handler[func(disallow bool)]
	nextID         uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventStateChanged:
		h.reg.stateChanged = removeHandler(h.reg.stateChanged, h.id)
	case EventGestureChanged:
		h.reg.gestureChanged = removeHandler(h.reg.gestureChanged, h.id)
	case EventRefresh:
		h.reg.refresh = removeHandler(h.reg.refresh, h.id)
	case EventPositionChanged:
		h.reg.position = removeHandler(h.reg.position, h.id)
	case EventInterceptChanged:
		h.reg.intercept = removeHandler(h.reg.intercept, h.id)
	}
}

func removeHandler[F any](s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[F]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(event EventType) CallbackHandle {
	r.nextID++
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// --- Registration ---

// OnStateChanged registers a callback for refresh state transitions.
func (c *Controller) OnStateChanged(fn func(old, new State)) CallbackHandle {
	h := c.handlers.add(EventStateChanged)
	c.handlers.stateChanged = append(c.handlers.stateChanged, handler[func(old, new State)]{h.id, fn})
	return h
}

// OnGestureStateChanged registers a callback for coordinator state
// transitions.
func (c *Controller) OnGestureStateChanged(fn func(old, new GestureState)) CallbackHandle {
	h := c.handlers.add(EventGestureChanged)
	c.handlers.gestureChanged = append(c.handlers.gestureChanged, handler[func(old, new GestureState)]{h.id, fn})
	return h
}

// OnRefresh registers a callback fired once each time a refresh starts,
// whether triggered by a gesture or programmatically.
func (c *Controller) OnRefresh(fn func(Direction)) CallbackHandle {
	h := c.handlers.add(EventRefresh)
	c.handlers.refresh = append(c.handlers.refresh, handler[func(Direction)]{h.id, fn})
	return h
}

// OnPositionChanged registers a callback for indicator offset changes.
func (c *Controller) OnPositionChanged(fn func(offset float64)) CallbackHandle {
	h := c.handlers.add(EventPositionChanged)
	c.handlers.position = append(c.handlers.position, handler[func(offset float64)]{h.id, fn})
	return h
}

// OnDisallowIntercept registers a callback fired when ancestors of the
// refresh view must stop (true) or may resume (false) intercepting pointer
// events.
func (c *Controller) OnDisallowIntercept(fn func(disallow bool)) CallbackHandle {
	h := c.handlers.add(EventInterceptChanged)
	c.handlers.intercept = append(c.handlers.intercept, handler[func(disallow bool)]{h.id, fn})
	return h
}

// --- Dispatch ---

func (c *Controller) fireStateChanged(old, new State) {
	for _, h := range c.handlers.stateChanged {
		h.fn(old, new)
	}
	c.emit(RefreshEvent{Type: EventStateChanged, OldState: old, NewState: new})
}

func (c *Controller) fireGestureChanged(old, new GestureState) {
	for _, h := range c.handlers.gestureChanged {
		h.fn(old, new)
	}
	c.emit(RefreshEvent{Type: EventGestureChanged, OldGesture: old, NewGesture: new})
}

func (c *Controller) fireRefresh(d Direction) {
	for _, h := range c.handlers.refresh {
		h.fn(d)
	}
	c.emit(RefreshEvent{Type: EventRefresh})
}

func (c *Controller) firePosition(offset float64) {
	for _, h := range c.handlers.position {
		h.fn(offset)
	}
	c.emit(RefreshEvent{Type: EventPositionChanged})
}

func (c *Controller) fireIntercept(disallow bool) {
	for _, h := range c.handlers.intercept {
		h.fn(disallow)
	}
	c.emit(RefreshEvent{Type: EventInterceptChanged, Disallow: disallow})
}

// --- ECS bridge ---

func (c *Controller) emit(ev RefreshEvent) {
	if c.store == nil {
		return
	}
	ev.State = c.state
	ev.Direction = c.direction
	ev.Offset = c.offset
	ev.Overlay = c.overlay
	c.store.EmitEvent(ev)
}
