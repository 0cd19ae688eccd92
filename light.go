package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightType selects how a Light contributes to shading.
type LightType uint8

const (
	LightOmni    LightType = iota // point light, attenuation-free
	LightAmbient                  // uniform light from every direction
)

// Light is a light source attached to a node. Intensity uses SceneKit-style
// units: 1000 is nominal full strength.
type Light struct {
	Type LightType
	// Color is used when Temperature is zero.
	Color Color
	// Temperature in Kelvin. Non-zero overrides Color.
	Temperature float64
	Intensity   float64
	Enabled     bool
}

// NewSunLight returns the omni light used for the sun.
func NewSunLight() *Light {
	return &Light{
		Type:        LightOmni,
		Color:       ColorWhite,
		Temperature: SunTemperature,
		Intensity:   SunIntensity,
		Enabled:     true,
	}
}

// NewAmbientLight returns the faint fill light carried by the camera.
func NewAmbientLight() *Light {
	return &Light{
		Type:      LightAmbient,
		Color:     ColorWhite,
		Intensity: AmbientLightIntensity,
		Enabled:   true,
	}
}

// Radiance returns the light's color scaled by its intensity. Disabled or nil
// lights contribute black.
func (l *Light) Radiance() Color {
	if l == nil || !l.Enabled {
		return Color{A: 1}
	}
	c := l.Color
	if l.Temperature > 0 {
		c = ColorFromTemperature(l.Temperature)
	}
	return c.Scale(l.Intensity / 1000)
}

// ColorFromTemperature approximates the color of a black body at the given
// temperature in Kelvin (valid roughly 1000..40000). 6600 K is close to white.
func ColorFromTemperature(kelvin float64) Color {
	t := mgl64.Clamp(kelvin, 1000, 40000) / 100

	var r, g, b float64
	if t <= 66 {
		r = 255
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}
	switch {
	case t >= 66:
		b = 255
	case t <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}
	return Color{
		R: clamp01(r / 255),
		G: clamp01(g / 255),
		B: clamp01(b / 255),
		A: 1,
	}
}

// lighting holds the per-frame light state needed to shade vertices.
type lighting struct {
	sunPos   mgl64.Vec3
	sun      Color
	ambient  Color
	eye      mgl64.Vec3
	specular float64
}

// shade returns the lit color at world position p with unit normal n. The
// result is not clamped; overbright values saturate on submission.
func (l *lighting) shade(p, n mgl64.Vec3) Color {
	toSun := l.sunPos.Sub(p).Normalize()
	diffuse := math.Max(0, n.Dot(toSun))

	c := l.ambient.Add(l.sun.Scale(diffuse))
	if diffuse > 0 && l.specular > 0 {
		toEye := l.eye.Sub(p).Normalize()
		half := toSun.Add(toEye).Normalize()
		s := l.specular * math.Pow(math.Max(0, n.Dot(half)), specularShininess)
		c = c.Add(l.sun.Scale(s))
	}
	c.A = 1
	return c
}

// nightGlow is the strength of the city-lights texture for a given lit
// color: full at black, gone once luminance passes 1/16.
func nightGlow(lit Color) float64 {
	return math.Max(0, 1-16*lit.Luma()) * 0.5
}
