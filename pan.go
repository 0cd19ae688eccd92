package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PanMapper turns a stream of pointer positions into rotation and tilt
// deltas. It remembers the previous pointer between updates.
type PanMapper struct {
	last   Vec2
	active bool
}

// Begin records the starting pointer position.
func (m *PanMapper) Begin(p Vec2) {
	m.last = p
	m.active = true
}

// End forgets the previous pointer. Updates are ignored until the next Begin.
func (m *PanMapper) End() {
	m.active = false
}

// Active reports whether a pan is in progress.
func (m *PanMapper) Active() bool {
	return m.active
}

// Update maps the move from the previous pointer to p. ok is false when no
// pan is in progress, the view has no area or p is not a finite point; in
// that case nothing changes, including the remembered pointer.
func (m *PanMapper) Update(p, viewSize Vec2, fov float64) (rotationDelta, tiltDelta float64, ok bool) {
	if !m.active {
		return 0, 0, false
	}
	rotationDelta, tiltDelta, ok = DragRotation(m.last, p, viewSize, fov)
	if !ok {
		return 0, 0, false
	}
	m.last = p
	return rotationDelta, tiltDelta, true
}

// DragRotation converts a pointer move into angular deltas in radians. Moves
// are measured as a fraction of the view size and scaled by how wide the
// field of view is: a drag across the full view turns the globe 180° at the
// widest field of view and not at all at the narrowest.
func DragRotation(prev, cur, viewSize Vec2, fov float64) (rotationDelta, tiltDelta float64, ok bool) {
	if !positiveFinite(viewSize.X) || !positiveFinite(viewSize.Y) {
		return 0, 0, false
	}
	dx := (prev.X - cur.X) / viewSize.X
	dy := (prev.Y - cur.Y) / viewSize.Y
	if !finite(dx) || !finite(dy) {
		return 0, 0, false
	}
	if dx == 0 && dy == 0 {
		return 0, 0, true
	}
	scale := dragAngularScale(fov)
	if !finite(scale) {
		return 0, 0, false
	}
	return dx * scale, dy * scale, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func dragAngularScale(fov float64) float64 {
	proportion := (fov - MinFOV) / (MaxFOV - MinFOV)
	return mgl64.DegToRad(proportion * DragWidthDegrees)
}
