package globe

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
	wheelZoomStep       = 1.1 // zoom factor per wheel notch
	keyZoomStep         = 1.5
	keyZoomDuration     = 0.35 // seconds
	keyPanSpeed         = 0.5  // view widths per second
	resetDuration       = 0.6  // seconds
	noPointer           = -1
)

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	startX  float64
	startY  float64
	lastX   float64
	lastY   float64
	panning bool
	pinched bool // took part in a pinch; its release is not a tap
}

// --- Pinch state ---

type pinchState struct {
	active      bool
	pointer0    int
	pointer1    int
	initialDist float64
}

// SetDragDeadZone sets how far, in pixels, a pointer must travel before a
// press becomes a rotation drag. Shorter presses are taps.
func (g *Globe) SetDragDeadZone(pixels float64) {
	g.dragDeadZone = math.Max(0, pixels)
}

// --- Input processing ---

// processInput is called from Globe.Update to turn mouse, touch, wheel and
// keyboard state into gestures. Injected input replaces the mouse for the
// frames it covers.
func (g *Globe) processInput(dt float64) {
	if g.processInjectedInput() {
		g.detectPinch()
		return
	}
	g.processMousePointer()
	g.processTouchPointers()
	g.detectPinch()
	g.processWheel()
	g.processKeys(dt)
}

// processMousePointer handles mouse input (pointer 0). Only the left button
// rotates the globe.
func (g *Globe) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (g *Globe) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(g.prevTouchIDs[:0])
	g.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := g.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		g.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && !activeSlots[i] {
			ps := &g.pointers[i]
			if ps.down {
				g.processPointer(i, ps.lastX, ps.lastY, false)
			}
			g.touchUsed[i] = false
			g.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (g *Globe) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && g.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !g.touchUsed[i] {
			g.touchUsed[i] = true
			g.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// activePointers counts pointers currently pressed.
func (g *Globe) activePointers() int {
	n := 0
	for i := range g.pointers {
		if g.pointers[i].down {
			n++
		}
	}
	return n
}

// processPointer runs the pointer state machine for a single pointer. A
// press that travels past the dead zone becomes a pan; one that doesn't is a
// tap, which may hit a marker.
func (g *Globe) processPointer(pointerID int, x, y float64, pressed bool) {
	ps := &g.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.panning = false
		ps.pinched = false

	case !pressed && ps.down:
		if ps.panning {
			if g.panPointer == pointerID {
				g.panPointer = noPointer
				g.OnPanEnd()
			}
		} else if !ps.pinched {
			g.tap(x, y)
		}
		ps.down = false
		ps.panning = false
		ps.lastX, ps.lastY = x, y

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if !ps.panning && !g.pinch.active && g.panPointer == noPointer && g.activePointers() == 1 {
			dx, dy := x-ps.startX, y-ps.startY
			if math.Sqrt(dx*dx+dy*dy) > g.dragDeadZone {
				g.keyPad.Release()
				ps.panning = true
				g.panPointer = pointerID
				g.OnPanBegin(Vec2{ps.startX, ps.startY})
			}
		}
		if ps.panning && g.panPointer == pointerID {
			g.OnPanUpdate(Vec2{x, y}, g.viewport.Size())
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// tap fires OnClick on the nearest marker under (x, y), if any.
func (g *Globe) tap(x, y float64) {
	var hit *GlowingMarker
	for _, m := range g.markers {
		if m.hit(x, y) && (hit == nil || m.depth < hit.depth) {
			hit = m
		}
	}
	if hit == nil {
		return
	}
	if hit.OnClick != nil {
		hit.OnClick(ClickContext{Marker: hit, X: x, Y: y})
	}
	g.emit(GestureEvent{Type: EventMarkerClick, X: x, Y: y, Marker: hit})
}

// --- Pinch detection ---

// detectPinch starts, updates or ends a pinch when exactly two touch
// pointers are down. A pinch takes over from a pan in progress.
func (g *Globe) detectPinch() {
	var p0, p1, count int
	for i := 1; i < maxPointers; i++ {
		if g.pointers[i].down {
			switch count {
			case 0:
				p0 = i
			case 1:
				p1 = i
			}
			count++
		}
	}

	if count != 2 {
		if g.pinch.active {
			g.pinch.active = false
			g.OnPinchEnd()
		}
		return
	}

	ps0 := &g.pointers[p0]
	ps1 := &g.pointers[p1]
	dx := ps1.lastX - ps0.lastX
	dy := ps1.lastY - ps0.lastY
	dist := math.Sqrt(dx*dx + dy*dy)

	if !g.pinch.active || g.pinch.pointer0 != p0 || g.pinch.pointer1 != p1 {
		if g.panPointer != noPointer {
			g.pointers[g.panPointer].panning = false
			g.panPointer = noPointer
		}
		g.pinch = pinchState{active: true, pointer0: p0, pointer1: p1, initialDist: dist}
		g.OnPinchBegin()
	} else {
		scale := 1.0
		if g.pinch.initialDist > 0 {
			scale = dist / g.pinch.initialDist
		}
		g.OnPinchUpdate(scale)
	}

	// Pinch pointers never pan or tap.
	ps0.panning, ps0.pinched = false, true
	ps1.panning, ps1.pinched = false, true
}

// --- Wheel and keyboard ---

// processWheel zooms by wheelZoomStep per notch; scrolling up zooms in.
func (g *Globe) processWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	g.ZoomBy(math.Pow(wheelZoomStep, wy))
}

// processKeys maps the keyboard: arrows pan, +/- zoom, space toggles the
// auto spin and Home resets the orientation.
func (g *Globe) processKeys(dt float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.zoom.ZoomTo(g.zoom.FOV()/keyZoomStep, keyZoomDuration, ease.OutQuad)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.zoom.ZoomTo(g.zoom.FOV()*keyZoomStep, keyZoomDuration, ease.OutQuad)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.SetAutoSpin(!g.spin.Enabled())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.ResetOrientation(resetDuration)
	}

	if g.panPointer != noPointer {
		return
	}
	var x, y float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		x--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		x++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		y--
	}
	g.keyPad.Update(x, y, dt)
}
