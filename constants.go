package globe

import "time"

// Scene geometry. Units are arbitrary world units; the globe has radius 0.5.
const (
	GlobeRadius       = 0.5
	CameraAltitude    = 4.0
	GlowPointAltitude = GlobeRadius * 1.001
	GlowPointWidth    = 0.025
	DistanceToTheSun  = 200.0
	CameraNear        = 0.1
	CameraFar         = 10000.0
)

// Field of view limits, in degrees of vertical view angle. A narrow field of
// view reads as zoomed in.
const (
	MinFOV     = 4.0
	MaxFOV     = 40.0
	DefaultFOV = 30.0
)

// Interaction tuning.
const (
	// DragWidthDegrees is how far the globe turns for a drag across the whole
	// view at the widest field of view.
	DragWidthDegrees = 180.0
	pinchEpsilon     = 1e-3
)

// Lighting, in SceneKit-style units where 1000 is nominal intensity.
const (
	SunIntensity          = 1200.0
	SunTemperature        = 5600.0
	AmbientLightIntensity = 20.0
	specularStrength      = 0.2
	specularShininess     = 24.0
)

// Calendar and sky.
const (
	AxialTiltDegrees    = 23.5
	DaysInYear          = 365
	daysAfterSolstice   = 10 // December 21 is 10 days before January 1
	GalacticTiltDegrees = 60.2
)

// DefaultSpinPeriod is the time for one full autonomous revolution.
const DefaultSpinPeriod = 60 * time.Second

// Mesh and sky defaults.
const (
	DefaultSegments  = 48
	DefaultRings     = 24
	DefaultStarCount = 3000
	maxStarCount     = 16000
	MaxTextureSize   = 4096
)
