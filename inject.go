package pulltorefresh

// InjectPress queues a pointer down at (x, y). Queued events are consumed
// one per Update, before the animation step, and stamped with Clock.
func (c *Controller) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Action: PointerDown, X: x, Y: y})
}

// InjectMove queues a pointer move to (x, y). Use this between InjectPress
// and InjectRelease to simulate a drag.
func (c *Controller) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Action: PointerMove, X: x, Y: y})
}

// InjectRelease queues a pointer up at (x, y).
func (c *Controller) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Action: PointerUp, X: x, Y: y})
}

// InjectCancel queues a pointer cancel at (x, y).
func (c *Controller) InjectCancel(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Action: PointerCancel, X: x, Y: y})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (c *Controller) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// Pending returns the number of queued injected events.
func (c *Controller) Pending() int {
	return len(c.injectQueue)
}

// processInjectedInput pops one queued event and feeds it through
// HandlePointer. It reports whether an event was consumed from the queue.
func (c *Controller) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	ev := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	ev.Time = c.clock
	c.HandlePointer(ev)
	return true
}
