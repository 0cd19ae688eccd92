package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ClampFOV limits f to [MinFOV, MaxFOV]. NaN maps to DefaultFOV.
func ClampFOV(f float64) float64 {
	if math.IsNaN(f) {
		return DefaultFOV
	}
	return mgl64.Clamp(f, MinFOV, MaxFOV)
}

// ZoomController owns the camera field of view. The value is kept inside
// [MinFOV, MaxFOV] by every operation.
//
// Pinch scale uses the multiplicative convention: 1.0 means unchanged, 2.0
// means the fingers are twice as far apart as when the pinch began.
type ZoomController struct {
	fov      float64
	baseline float64
	pinching bool

	anim *gween.Tween
}

// NewZoomController returns a controller starting at fov (clamped).
func NewZoomController(fov float64) *ZoomController {
	return &ZoomController{fov: ClampFOV(fov)}
}

// FOV returns the current field of view in degrees.
func (z *ZoomController) FOV() float64 {
	return z.fov
}

// SetFOV pins the field of view to f (clamped) and cancels any animation.
// A pinch in progress keeps its baseline.
func (z *ZoomController) SetFOV(f float64) {
	z.anim = nil
	z.fov = ClampFOV(f)
}

// BeginPinch captures the current field of view as the pinch baseline.
func (z *ZoomController) BeginPinch() {
	z.anim = nil
	z.baseline = z.fov
	z.pinching = true
}

// UpdatePinch sets the field of view to baseline / scale. Scales at or below
// zero are floored to a small epsilon, which lands on MaxFOV. Calls outside a
// pinch are ignored.
func (z *ZoomController) UpdatePinch(scale float64) {
	if !z.pinching || math.IsNaN(scale) {
		return
	}
	z.fov = ClampFOV(z.baseline / math.Max(scale, pinchEpsilon))
}

// EndPinch clears the baseline.
func (z *ZoomController) EndPinch() {
	z.pinching = false
	z.baseline = 0
}

// Pinching reports whether a pinch is in progress.
func (z *ZoomController) Pinching() bool {
	return z.pinching
}

// ZoomBy divides the field of view by factor, so factors above 1 zoom in.
func (z *ZoomController) ZoomBy(factor float64) {
	if math.IsNaN(factor) || factor == 1 {
		return
	}
	z.SetFOV(z.fov / math.Max(factor, pinchEpsilon))
}

// ZoomTo animates the field of view to f over duration seconds. A nil easing
// function means linear. A non-positive duration sets the value immediately.
// Calls during a pinch are ignored; the pinch owns the field of view.
func (z *ZoomController) ZoomTo(f float64, duration float32, fn ease.TweenFunc) {
	if z.pinching {
		return
	}
	target := ClampFOV(f)
	if duration <= 0 {
		z.SetFOV(target)
		return
	}
	if fn == nil {
		fn = ease.Linear
	}
	z.anim = gween.New(float32(z.fov), float32(target), duration, fn)
}

// Animating reports whether a ZoomTo animation is running.
func (z *ZoomController) Animating() bool {
	return z.anim != nil
}

// Update advances a running animation by dt seconds.
func (z *ZoomController) Update(dt float32) {
	if z.anim == nil || dt <= 0 {
		return
	}
	v, done := z.anim.Update(dt)
	z.fov = ClampFOV(float64(v))
	if done {
		z.anim = nil
	}
}
