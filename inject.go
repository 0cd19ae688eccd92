package globe

// syntheticPointerEvent is one injected pointer state. Pointer 0 is the
// mouse; 1-9 are touch slots. Coordinates are screen pixels, exactly as a
// real pointer would report them.
type syntheticPointerEvent struct {
	pointer int
	x, y    float64
	pressed bool
}

// syntheticFrame holds the pointer events consumed by a single Update.
type syntheticFrame []syntheticPointerEvent

func (g *Globe) injectFrame(events ...syntheticPointerEvent) {
	g.injectQueue = append(g.injectQueue, syntheticFrame(events))
}

// InjectPress queues a mouse press at the given screen coordinates. The
// event is consumed on the next frame's Update.
func (g *Globe) InjectPress(x, y float64) {
	g.injectFrame(syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a mouse move with the button held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (g *Globe) InjectMove(x, y float64) {
	g.injectFrame(syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (g *Globe) InjectRelease(x, y float64) {
	g.injectFrame(syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (g *Globe) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves, and release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2 (press and release).
func (g *Globe) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger pinch centered on (cx, cy). The fingers
// start fromDist pixels apart and end toDist apart, moving horizontally.
// The sequence consumes frames frames; the minimum is 3 (press, one move,
// release).
func (g *Globe) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	pair := func(dist float64, pressed bool) {
		g.injectFrame(
			syntheticPointerEvent{pointer: 1, x: cx - dist/2, y: cy, pressed: pressed},
			syntheticPointerEvent{pointer: 2, x: cx + dist/2, y: cy, pressed: pressed},
		)
	}
	pair(fromDist, true)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pair(fromDist+(toDist-fromDist)*t, true)
	}
	pair(toDist, false)
}

// processInjectedInput pops one frame from the inject queue and feeds it
// through processPointer. Returns true if a frame was consumed, in which
// case real pointer input is skipped.
func (g *Globe) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	frame := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue[len(g.injectQueue)-1] = nil
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	for _, evt := range frame {
		if evt.pointer < 0 || evt.pointer >= maxPointers {
			continue
		}
		g.processPointer(evt.pointer, evt.x, evt.y, evt.pressed)
	}
	return true
}
