package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Marker pulse defaults.
const (
	DefaultPulseScale  = 1.6
	DefaultPulsePeriod = 1.2 // seconds for one grow and shrink
	minMarkerRadiusPx  = 2.0
)

// ClickContext is passed to a marker's OnClick callback.
type ClickContext struct {
	Marker *GlowingMarker
	X, Y   float64 // screen position of the tap
}

// GlowingMarker is a soft glowing point pinned to the globe surface. It turns
// with the globe and is hidden while on the far hemisphere.
type GlowingMarker struct {
	Lat, Lon float64 // degrees
	// Width is the glow diameter in world units (the globe has radius 0.5).
	Width float64
	Color Color
	Alpha float64
	// Scale multiplies Width; animated when Pulse is on.
	Scale float64

	Pulse       bool
	PulseScale  float64
	PulsePeriod float32

	OnClick func(ClickContext)

	node  *Node
	pulse *TweenGroup
	grow  bool

	// Screen placement from the last draw.
	screenX, screenY float64
	screenR          float64
	depth            float64
	onScreen         bool
}

// NewGlowingMarker creates a marker at the given coordinates with the default
// width and a warm glow.
func NewGlowingMarker(lat, lon float64) *GlowingMarker {
	m := &GlowingMarker{
		Width:       GlowPointWidth,
		Color:       Color{1, 0.78, 0.35, 1},
		Alpha:       1,
		Scale:       1,
		PulseScale:  DefaultPulseScale,
		PulsePeriod: DefaultPulsePeriod,
	}
	m.node = newNode("marker", NodeTypeMarker)
	m.node.Marker = m
	m.SetLatLon(lat, lon)
	return m
}

// Node returns the scene graph node carrying the marker.
func (m *GlowingMarker) Node() *Node {
	return m.node
}

// SetLatLon moves the marker. Latitude is clamped to [-90, 90].
func (m *GlowingMarker) SetLatLon(lat, lon float64) {
	m.Lat = mgl64.Clamp(lat, -90, 90)
	m.Lon = lon
	p := m.LocalPosition()
	m.node.SetPosition(p[0], p[1], p[2])
}

// LocalPosition returns the marker position in the globe's frame, just above
// the surface.
func (m *GlowingMarker) LocalPosition() mgl64.Vec3 {
	return LatLonToUnit(m.Lat, m.Lon).Mul(GlowPointAltitude)
}

// OnScreen reports whether the marker was drawn in the last frame.
func (m *GlowingMarker) OnScreen() bool {
	return m.onScreen
}

// ScreenPosition returns the marker center and glow radius in pixels from the
// last frame.
func (m *GlowingMarker) ScreenPosition() (x, y, radius float64) {
	return m.screenX, m.screenY, m.screenR
}

// update advances the pulse animation.
func (m *GlowingMarker) update(dt float32) {
	if !m.Pulse {
		m.pulse = nil
		return
	}
	if m.pulse == nil || m.pulse.Done {
		target := 1.0
		m.grow = !m.grow
		if m.grow {
			target = m.PulseScale
		}
		half := m.PulsePeriod / 2
		if half <= 0 {
			half = DefaultPulsePeriod / 2
		}
		m.pulse = TweenMarkerScale(m, target, half, ease.InOutSine)
	}
	m.pulse.Update(dt)
}

// project computes the marker's screen placement. Markers on the far side of
// the globe, or not visible, are flagged off screen.
func (m *GlowingMarker) project(cam *Camera) {
	m.onScreen = false
	if !m.node.Visible || m.Alpha <= 0 {
		return
	}
	world := m.node.WorldPosition()
	normal := world.Normalize()
	if !cam.Facing(world, normal) {
		return
	}
	x, y, depth, ok := cam.WorldToScreen(world)
	if !ok {
		return
	}
	m.screenX, m.screenY, m.depth = x, y, depth
	m.screenR = math.Max(minMarkerRadiusPx, m.Width*m.Scale/2*cam.PixelsPerUnitAt(depth))
	m.onScreen = true
}

// hit reports whether a tap at (x, y) lands on the marker.
func (m *GlowingMarker) hit(x, y float64) bool {
	if !m.onScreen {
		return false
	}
	dx, dy := x-m.screenX, y-m.screenY
	return dx*dx+dy*dy <= m.screenR*m.screenR
}

// --- Glow image cache ---

// glowCache holds feathered discs keyed by quantized radius.
var glowCache = map[int]*ebiten.Image{}

// glowPixels renders a premultiplied white disc of the given radius with a
// bright core and smoothstep falloff.
func glowPixels(radius float64) (size int, pix []byte) {
	size = int(math.Ceil(radius * 2))
	if size < 1 {
		size = 1
	}
	pix = make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			dist := math.Sqrt(dx*dx+dy*dy) / radius

			var alpha float64
			if dist < 1 {
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
				if dist < 0.25 {
					alpha = 1
				}
			}
			a := uint8(alpha * 255)
			off := (y*size + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	return size, pix
}

func glowImage(radius float64) *ebiten.Image {
	key := int(math.Ceil(radius))
	if key < 1 {
		key = 1
	}
	if img, ok := glowCache[key]; ok {
		return img
	}
	size, pix := glowPixels(float64(key))
	img := ebiten.NewImage(size, size)
	img.WritePixels(pix)
	glowCache[key] = img
	return img
}

func (m *GlowingMarker) draw(dst *ebiten.Image) {
	if !m.onScreen {
		return
	}
	img := glowImage(m.screenR)
	side := float64(img.Bounds().Dx())
	s := 2 * m.screenR / side

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-side/2, -side/2)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(m.screenX, m.screenY)
	a := float32(clamp01(m.Alpha * m.Color.A))
	op.ColorScale.Scale(float32(m.Color.R)*a, float32(m.Color.G)*a, float32(m.Color.B)*a, a)
	op.Blend = ebiten.BlendLighter
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &op)
}
