package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxTilt bounds the user tilt so the poles can be brought to face the camera
// but the globe never flips over.
const MaxTilt = math.Pi / 2

// Orientation is the user-controlled and calendar-derived pose of the globe.
// Angles are in radians.
type Orientation struct {
	Spin     float64 // about the vertical axis, from horizontal drags
	Tilt     float64 // about the horizontal axis, from vertical drags
	Seasonal float64 // axial tilt for the current date
	AutoSpin bool
}

// Rotate applies a drag-derived delta. Both deltas are subtracted so the
// surface under the pointer follows it.
func (o *Orientation) Rotate(rotationDelta, tiltDelta float64) {
	if rotationDelta == 0 && tiltDelta == 0 {
		return
	}
	if !finite(rotationDelta) || !finite(tiltDelta) {
		return
	}
	o.Spin = wrapAngle(o.Spin - rotationDelta)
	o.Tilt = ClampTilt(o.Tilt - tiltDelta)
}

// Reset returns the user angles to zero. Seasonal tilt and the auto-spin flag
// are kept.
func (o *Orientation) Reset() {
	o.Spin = 0
	o.Tilt = 0
}

// TiltMatrix is the rotation of the outermost (user tilt) frame.
func (o Orientation) TiltMatrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(o.Tilt)
}

// SpinMatrix is the rotation of the user spin frame.
func (o Orientation) SpinMatrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DY(o.Spin)
}

// SeasonalMatrix tips the north pole toward (+) or away from (-) the sun at +Z.
func (o Orientation) SeasonalMatrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(o.Seasonal)
}

// World composes the full globe transform for the given autonomous spin angle.
func (o Orientation) World(autoSpin float64) mgl64.Mat4 {
	return ComposeWorld(o.Tilt, o.Spin, o.Seasonal, autoSpin)
}

// ComposeWorld returns Rx(userTilt) · Ry(userSpin) · Rx(seasonal) · Ry(autoSpin).
// Applied to a column vector the autonomous spin acts first, so the globe
// turns about its own tipped axis while user gestures turn the whole frame.
func ComposeWorld(userTilt, userSpin, seasonal, autoSpin float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(userTilt).
		Mul4(mgl64.HomogRotate3DY(userSpin)).
		Mul4(mgl64.HomogRotate3DX(seasonal)).
		Mul4(mgl64.HomogRotate3DY(autoSpin))
}

// ClampTilt limits t to [-MaxTilt, MaxTilt].
func ClampTilt(t float64) float64 {
	return mgl64.Clamp(t, -MaxTilt, MaxTilt)
}

// wrapAngle maps a to (-π, π].
func wrapAngle(a float64) float64 {
	if a > -math.Pi && a <= math.Pi {
		return a
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
