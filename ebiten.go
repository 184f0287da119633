package pulltorefresh

import "github.com/hajimehoshi/ebiten/v2"

const (
	defaultWheelStep       = 40.0 // pixels per wheel notch
	defaultWheelIdleFrames = 6    // frames without wheel input that end a wheel session
)

// ScrollableContent is content that can scroll itself. It is the nested
// child when wheel input is routed through the arbiter.
type ScrollableContent interface {
	ContentSurface
	// ScrollBy scrolls by dy (positive toward the end) and returns how much
	// of dy the content absorbed.
	ScrollBy(dy float64) float64
}

// EbitenInput feeds Ebitengine mouse, touch and wheel input into a
// Controller. Call Update from ebiten.Game.Update.
//
// The mouse and the first touch share one pointer stream; extra touches are
// ignored. Wheel input, when a ScrollableContent is set, plays the nested
// child role: each wheel session is offered to the controller's arbiter
// before the content scrolls.
type EbitenInput struct {
	ctrl *Controller

	down         bool
	touching     bool
	touch        ebiten.TouchID
	touchIDs     []ebiten.TouchID
	lastX, lastY float64

	content     ScrollableContent
	WheelStep   float64
	wheelActive bool
	wheelOwned  bool
	wheelIdle   int
}

// NewEbitenInput creates an input adapter for c.
func NewEbitenInput(c *Controller) *EbitenInput {
	return &EbitenInput{ctrl: c, WheelStep: defaultWheelStep}
}

// SetContent routes wheel input through the arbiter into content. Nil turns
// wheel handling off.
func (in *EbitenInput) SetContent(content ScrollableContent) {
	in.content = content
	if content != nil {
		in.ctrl.SetContent(content)
	}
}

// Update polls input and advances the controller by one tick.
func (in *EbitenInput) Update() {
	dt := 1.0 / float64(ebiten.TPS())
	in.processPointer()
	in.processWheel()
	in.ctrl.Update(dt)
}

// processPointer runs the down/move/up edge detection for the primary
// pointer.
func (in *EbitenInput) processPointer() {
	x, y, pressed := in.readPointer()
	switch {
	case pressed && !in.down:
		in.down = true
		in.ctrl.HandlePointer(PointerEvent{Action: PointerDown, X: x, Y: y})
	case pressed && in.down:
		if x != in.lastX || y != in.lastY {
			in.ctrl.HandlePointer(PointerEvent{Action: PointerMove, X: x, Y: y})
		}
	case !pressed && in.down:
		in.down = false
		in.ctrl.HandlePointer(PointerEvent{Action: PointerUp, X: in.lastX, Y: in.lastY})
		return
	}
	in.lastX, in.lastY = x, y
}

// readPointer returns the tracked touch while it lasts, otherwise the mouse.
func (in *EbitenInput) readPointer() (x, y float64, pressed bool) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if in.touching {
		for _, id := range in.touchIDs {
			if id == in.touch {
				tx, ty := ebiten.TouchPosition(id)
				return float64(tx), float64(ty), true
			}
		}
		in.touching = false
		return in.lastX, in.lastY, false
	}
	if !in.down && len(in.touchIDs) > 0 {
		in.touch = in.touchIDs[0]
		in.touching = true
		tx, ty := ebiten.TouchPosition(in.touch)
		return float64(tx), float64(ty), true
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// processWheel runs one frame of the nested scroll protocol as the child.
func (in *EbitenInput) processWheel() {
	if in.content == nil {
		return
	}
	_, wy := ebiten.Wheel()
	if wy == 0 {
		if in.wheelActive {
			in.wheelIdle++
			if in.wheelIdle >= defaultWheelIdleFrames {
				in.stopWheel()
			}
		}
		return
	}
	in.wheelIdle = 0
	dy := -wy * in.WheelStep

	arb := in.ctrl.Arbiter()
	if !in.wheelActive {
		in.wheelActive = true
		in.wheelOwned = arb.OnStartNestedScroll(AxisVertical)
		if in.wheelOwned {
			arb.OnNestedScrollAccepted(AxisVertical)
		}
	}
	if !in.wheelOwned {
		in.content.ScrollBy(dy)
		return
	}
	_, pre := arb.OnNestedPreScroll(0, dy)
	rest := dy - pre
	consumed := in.content.ScrollBy(rest)
	arb.OnNestedScroll(0, consumed, 0, rest-consumed)
}

func (in *EbitenInput) stopWheel() {
	if in.wheelOwned {
		in.ctrl.Arbiter().OnStopNestedScroll()
	}
	in.wheelActive = false
	in.wheelOwned = false
	in.wheelIdle = 0
}
