package globe

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default clear color of the window (space).
var ColorBlack = Color{0, 0, 0, 1}

// ColorTransparent clears to nothing; used in AR mode.
var ColorTransparent = Color{}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Scale multiplies the RGB channels by f, leaving alpha untouched.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

// Add sums the RGB channels of c and o. Alpha is taken from c.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A}
}

// Luma returns the Rec. 709 luminance of the RGB channels.
func (c Color) Luma() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for screen positions and view sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Size returns the width and height as a Vec2.
func (r Rect) Size() Vec2 {
	return Vec2{r.Width, r.Height}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func rectFromImage(b image.Rectangle) Rect {
	return Rect{
		X:      float64(b.Min.X),
		Y:      float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

// Range is a general-purpose min/max range.
// Used by the starfield generator for brightness, size and temperature.
type Range struct {
	Min, Max float64
}

// Random returns a uniformly distributed value in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Lerp returns the value at fraction t between Min and Max.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// View is anything the globe can be attached to. Only its pixel bounds are
// consulted. *ebiten.Image satisfies it.
type View interface {
	Bounds() image.Rectangle
}

var _ View = (*ebiten.Image)(nil)

// SizedView is a View of a fixed pixel size, for hosts that size the globe
// before the first frame.
type SizedView struct {
	Width, Height int
}

// Bounds returns the rectangle from the origin to (Width, Height).
func (v SizedView) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.Width, v.Height)
}

// NodeType distinguishes the role of a Node in the globe's scene graph.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeGlobe                     // the textured earth sphere
	NodeTypeSkybox                    // the starfield backdrop
	NodeTypeMarker                    // a glowing point pinned to the surface
	NodeTypeLight                     // an omni or ambient light
	NodeTypeCamera                    // the viewpoint
)

// EventType identifies a kind of gesture event delivered to an EventSink.
type EventType uint8

const (
	EventPanBegin    EventType = iota // a one-finger drag started rotating the globe
	EventPan                          // fires each frame the drag moves
	EventPanEnd                       // the drag was released
	EventPinchBegin                   // a two-finger pinch started
	EventPinch                        // fires each frame the pinch changes
	EventPinchEnd                     // the pinch was released
	EventZoom                         // a one-shot zoom (wheel, keys, programmatic)
	EventMarkerClick                  // a tap landed on a marker
)

// String returns a short lowercase name for the event type.
func (e EventType) String() string {
	switch e {
	case EventPanBegin:
		return "panbegin"
	case EventPan:
		return "pan"
	case EventPanEnd:
		return "panend"
	case EventPinchBegin:
		return "pinchbegin"
	case EventPinch:
		return "pinch"
	case EventPinchEnd:
		return "pinchend"
	case EventZoom:
		return "zoom"
	case EventMarkerClick:
		return "markerclick"
	default:
		return "unknown"
	}
}
