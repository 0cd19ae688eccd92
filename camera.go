package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera. The globe keeps it fixed on the +Z axis
// looking at the origin and only changes its field of view.
type Camera struct {
	// Position is the eye point in world space.
	Position mgl64.Vec3
	// Target is the point the camera looks at.
	Target mgl64.Vec3
	// Up is the approximate up direction.
	Up mgl64.Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far bound the depth range.
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	view     mgl64.Mat4
	proj     mgl64.Mat4
	viewProj mgl64.Mat4
	dirty    bool
}

// newCamera creates a Camera looking at the origin from CameraAltitude above
// the globe surface.
func newCamera(viewport Rect) *Camera {
	return &Camera{
		Position: mgl64.Vec3{0, 0, GlobeRadius + CameraAltitude},
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      DefaultFOV,
		Near:     CameraNear,
		Far:      CameraFar,
		Viewport: viewport,
		dirty:    true,
	}
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(fov float64) {
	if c.FOV == fov {
		return
	}
	c.FOV = fov
	c.dirty = true
}

// SetViewport sets the screen rectangle.
func (c *Camera) SetViewport(r Rect) {
	if c.Viewport == r {
		return
	}
	c.Viewport = r
	c.dirty = true
}

// MarkDirty forces matrix recomputation. Call after setting fields directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

func (c *Camera) aspect() float64 {
	if c.Viewport.Height <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.aspect(), c.Near, c.Far)
	c.viewProj = c.proj.Mul4(c.view)
	c.dirty = false
}

// ViewProjection returns the combined projection · view matrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	c.computeMatrices()
	return c.viewProj
}

// ndcToScreen maps normalized device coordinates to the viewport.
func (c *Camera) ndcToScreen(x, y float64) (sx, sy float64) {
	sx = c.Viewport.X + (x+1)*0.5*c.Viewport.Width
	sy = c.Viewport.Y + (1-y)*0.5*c.Viewport.Height
	return sx, sy
}

// WorldToScreen projects p to screen pixels. depth is the distance along the
// view axis. ok is false when p lies behind the near plane.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	c.computeMatrices()
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	w := clip[3]
	if w < c.Near {
		return 0, 0, 0, false
	}
	x, y = c.ndcToScreen(clip[0]/w, clip[1]/w)
	return x, y, w, true
}

// DirectionToScreen projects a point infinitely far away along dir, such as a
// star. ok is false when dir points away from the view.
func (c *Camera) DirectionToScreen(dir mgl64.Vec3) (x, y float64, ok bool) {
	c.computeMatrices()
	clip := c.proj.Mul4x1(c.view.Mul4x1(dir.Vec4(0)))
	w := clip[3]
	if w <= 1e-9 {
		return 0, 0, false
	}
	x, y = c.ndcToScreen(clip[0]/w, clip[1]/w)
	return x, y, true
}

// PixelsPerUnitAt returns how many screen pixels one world unit covers at the
// given view depth.
func (c *Camera) PixelsPerUnitAt(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	half := math.Tan(mgl64.DegToRad(c.FOV) / 2)
	return c.Viewport.Height / (2 * depth * half)
}

// Facing reports whether a surface at p with outward normal n faces the eye.
func (c *Camera) Facing(p, n mgl64.Vec3) bool {
	return n.Dot(c.Position.Sub(p)) > 0
}

// ScreenToRay returns the world-space ray through screen pixel (x, y).
func (c *Camera) ScreenToRay(x, y float64) (origin, dir mgl64.Vec3) {
	c.computeMatrices()
	nx := (x-c.Viewport.X)/c.Viewport.Width*2 - 1
	ny := 1 - (y-c.Viewport.Y)/c.Viewport.Height*2
	inv := c.viewProj.Inv()
	far := mgl64.TransformCoordinate(mgl64.Vec3{nx, ny, 1}, inv)
	return c.Position, far.Sub(c.Position).Normalize()
}
