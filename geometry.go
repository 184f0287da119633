package pulltorefresh

import "math"

// Sample is the movement derived from one pointer event.
type Sample struct {
	X, Y float64

	// DeltaX and DeltaY are the movement since the previous event.
	DeltaX, DeltaY float64

	// DeltaXFromStart and DeltaYFromStart are the movement since pointer down.
	DeltaXFromStart, DeltaYFromStart float64

	// AngleFromVertical is the angle in degrees between the displacement since
	// pointer down and the vertical axis. 0 is a straight vertical drag, 90 a
	// horizontal one.
	AngleFromVertical float64
}

// PointerGeometry tracks the origin and last position of a pointer stream
// and derives per-event movement from it.
type PointerGeometry struct {
	startX, startY float64
	lastX, lastY   float64
	down           bool
}

// Sample consumes ev and returns its movement. A PointerDown resets the
// origin, so its sample is all zeros.
func (g *PointerGeometry) Sample(ev PointerEvent) Sample {
	if ev.Action == PointerDown || !g.down {
		g.startX, g.startY = ev.X, ev.Y
		g.lastX, g.lastY = ev.X, ev.Y
		g.down = true
	}

	s := Sample{
		X:               ev.X,
		Y:               ev.Y,
		DeltaX:          ev.X - g.lastX,
		DeltaY:          ev.Y - g.lastY,
		DeltaXFromStart: ev.X - g.startX,
		DeltaYFromStart: ev.Y - g.startY,
	}
	s.AngleFromVertical = angleFromVertical(s.DeltaXFromStart, s.DeltaYFromStart)

	g.lastX, g.lastY = ev.X, ev.Y
	if ev.Action == PointerUp || ev.Action == PointerCancel {
		g.down = false
	}
	return s
}

// Origin returns the pointer-down position of the current stream.
func (g *PointerGeometry) Origin() (x, y float64) {
	return g.startX, g.startY
}

// Last returns the most recently sampled position.
func (g *PointerGeometry) Last() (x, y float64) {
	return g.lastX, g.lastY
}

// angleFromVertical uses absolute displacement so zig-zag motion does not
// flip the result between samples.
func angleFromVertical(dx, dy float64) float64 {
	dx, dy = math.Abs(dx), math.Abs(dy)
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dx, dy) * 180 / math.Pi
}
