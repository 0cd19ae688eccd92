package globe

import "math"

// GestureHandler is the capability the globe exposes to gesture sources.
// Points are in view pixels with the origin at the top-left.
type GestureHandler interface {
	OnPanBegin(p Vec2)
	OnPanUpdate(p, viewSize Vec2)
	OnPanEnd()
	OnPinchBegin()
	// OnPinchUpdate takes the distance between the fingers relative to the
	// start of the pinch: 1.0 is unchanged, above 1 spreads (zoom in).
	OnPinchUpdate(scale float64)
	OnPinchEnd()
}

// GestureEvent describes a recognised gesture after it has been applied.
type GestureEvent struct {
	Type EventType
	// X and Y are the pointer position for pan and click events.
	X, Y float64
	// Scale is the pinch scale for pinch events.
	Scale float64
	// FOV, Spin and Tilt are the globe state after the event.
	FOV, Spin, Tilt float64
	// Marker is set for EventMarkerClick.
	Marker *GlowingMarker
}

// EventSink receives gesture events, typically to forward them into another
// system such as an ECS world.
type EventSink interface {
	EmitEvent(event GestureEvent)
}

// --- Adapters ---

// MagnificationToScale converts an additive magnification (0 = unchanged,
// 1 = doubled, may go negative while pinching in) into the multiplicative
// scale the globe expects. Negative results are clamped to zero; the zoom
// controller floors them further.
func MagnificationToScale(m float64) float64 {
	return math.Max(1+m, 0)
}

// MagnificationAdapter feeds hosts that report additive magnification, such
// as desktop trackpads, into a GestureHandler.
type MagnificationAdapter struct {
	Handler GestureHandler
}

// OnBegin starts the pinch.
func (a MagnificationAdapter) OnBegin() {
	a.Handler.OnPinchBegin()
}

// OnUpdate forwards the converted scale.
func (a MagnificationAdapter) OnUpdate(magnification float64) {
	a.Handler.OnPinchUpdate(MagnificationToScale(magnification))
}

// OnEnd ends the pinch.
func (a MagnificationAdapter) OnEnd() {
	a.Handler.OnPinchEnd()
}

// PointerAdapter feeds raw host pointer positions into a GestureHandler.
// FlipY converts hosts whose origin is at the bottom-left.
type PointerAdapter struct {
	Handler GestureHandler
	FlipY   bool
	height  float64
}

// FlipY mirrors a point vertically within a view of the given height.
func FlipY(p Vec2, viewHeight float64) Vec2 {
	return Vec2{p.X, viewHeight - p.Y}
}

func (a *PointerAdapter) convert(p Vec2) Vec2 {
	if a.FlipY {
		return FlipY(p, a.height)
	}
	return p
}

// OnBegin starts a pan at p in a view of the given size.
func (a *PointerAdapter) OnBegin(p, viewSize Vec2) {
	a.height = viewSize.Y
	a.Handler.OnPanBegin(a.convert(p))
}

// OnUpdate continues the pan.
func (a *PointerAdapter) OnUpdate(p, viewSize Vec2) {
	a.height = viewSize.Y
	a.Handler.OnPanUpdate(a.convert(p), viewSize)
}

// OnEnd ends the pan.
func (a *PointerAdapter) OnEnd() {
	a.Handler.OnPanEnd()
}

// DPadAdapter turns joystick or remote axis values into pan updates. Axis
// values are in [-1, 1] with +X right and +Y up. At full deflection the
// virtual pointer crosses Speed view widths per second.
type DPadAdapter struct {
	Handler GestureHandler
	Speed   float64

	pos    Vec2
	active bool
}

// Update moves the virtual pointer for dt seconds. Releasing the stick (both
// axes zero) ends the pan.
func (a *DPadAdapter) Update(x, y, dt float64) {
	if x == 0 && y == 0 {
		a.Release()
		return
	}
	if !a.active {
		a.pos = Vec2{}
		a.Handler.OnPanBegin(a.pos)
		a.active = true
	}
	speed := a.Speed
	if speed <= 0 {
		speed = 0.5
	}
	a.pos.X += x * speed * dt
	a.pos.Y -= y * speed * dt
	a.Handler.OnPanUpdate(a.pos, Vec2{1, 1})
}

// Release ends a pan in progress.
func (a *DPadAdapter) Release() {
	if a.active {
		a.active = false
		a.Handler.OnPanEnd()
	}
}

// Active reports whether the adapter is driving a pan.
func (a *DPadAdapter) Active() bool {
	return a.active
}

// --- Globe as GestureHandler ---

var _ GestureHandler = (*Globe)(nil)

// OnPanBegin starts a rotation drag at p.
func (g *Globe) OnPanBegin(p Vec2) {
	if g.zoom.Pinching() {
		return
	}
	g.orientAnim = nil
	g.pan.Begin(p)
	g.emit(GestureEvent{Type: EventPanBegin, X: p.X, Y: p.Y})
}

// OnPanUpdate rotates and tilts the globe by the move from the previous
// pointer position.
func (g *Globe) OnPanUpdate(p, viewSize Vec2) {
	if g.zoom.Pinching() {
		return
	}
	rot, tilt, ok := g.pan.Update(p, viewSize, g.zoom.FOV())
	if !ok {
		return
	}
	g.orientation.Rotate(rot, tilt)
	if rot != 0 || tilt != 0 {
		g.emit(GestureEvent{Type: EventPan, X: p.X, Y: p.Y})
	}
}

// OnPanEnd finishes the drag.
func (g *Globe) OnPanEnd() {
	if !g.pan.Active() {
		return
	}
	g.pan.End()
	g.emit(GestureEvent{Type: EventPanEnd})
}

// OnPinchBegin captures the zoom baseline. A drag in progress is ended.
func (g *Globe) OnPinchBegin() {
	if g.pan.Active() {
		g.OnPanEnd()
	}
	g.zoom.BeginPinch()
	g.emit(GestureEvent{Type: EventPinchBegin, Scale: 1})
}

// OnPinchUpdate zooms relative to the baseline.
func (g *Globe) OnPinchUpdate(scale float64) {
	if !g.zoom.Pinching() {
		return
	}
	g.zoom.UpdatePinch(scale)
	g.emit(GestureEvent{Type: EventPinch, Scale: scale})
}

// OnPinchEnd finishes the pinch.
func (g *Globe) OnPinchEnd() {
	if !g.zoom.Pinching() {
		return
	}
	g.zoom.EndPinch()
	g.emit(GestureEvent{Type: EventPinchEnd})
}

// emit fills in the globe state and forwards the event to the sink.
func (g *Globe) emit(e GestureEvent) {
	if g.sink == nil {
		return
	}
	e.FOV = g.zoom.FOV()
	e.Spin = g.orientation.Spin
	e.Tilt = g.orientation.Tilt
	g.sink.EmitEvent(e)
}
