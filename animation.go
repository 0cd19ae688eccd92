package globe

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors and call Update(dt) each frame. If the target
// node is disposed, the group stops immediately.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	after  func()
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.after != nil {
		g.after()
	}
}

// TweenMarkerScale animates the marker's pulse scale.
func TweenMarkerScale(m *GlowingMarker, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: m.node}
	g.tweens[0] = gween.New(float32(m.Scale), float32(to), duration, fn)
	g.fields[0] = &m.Scale
	return g
}

// TweenMarkerAlpha animates the marker's opacity.
func TweenMarkerAlpha(m *GlowingMarker, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: m.node}
	g.tweens[0] = gween.New(float32(m.Alpha), float32(to), duration, fn)
	g.fields[0] = &m.Alpha
	return g
}

// TweenMarkerColor animates all four color channels of the marker.
func TweenMarkerColor(m *GlowingMarker, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: m.node}
	g.tweens[0] = gween.New(float32(m.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(m.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(m.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(m.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &m.Color.R
	g.fields[1] = &m.Color.G
	g.fields[2] = &m.Color.B
	g.fields[3] = &m.Color.A
	return g
}

// TweenOrientation animates the user spin and tilt to the given angles. The
// tilt target is clamped; the spin takes the short way round.
func TweenOrientation(o *Orientation, spin, tilt float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := o.Spin
	to := from + wrapAngle(spin-from)
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(from), float32(to), duration, fn)
	g.tweens[1] = gween.New(float32(o.Tilt), float32(ClampTilt(tilt)), duration, fn)
	g.fields[0] = &o.Spin
	g.fields[1] = &o.Tilt
	g.after = func() {
		o.Spin = wrapAngle(o.Spin)
	}
	return g
}
