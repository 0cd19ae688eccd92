package globe

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Config describes how a Globe is built. Zero fields take the defaults
// listed in DefaultConfig. The env tags are read by LoadRunConfig.
type Config struct {
	// DayTexture and NightTexture are equirectangular image files. An empty
	// DayTexture (and nil DayImage) gives a generated graticule.
	DayTexture   string `env:"DAY_TEXTURE"`
	NightTexture string `env:"NIGHT_TEXTURE"`
	// DayImage and NightImage take precedence over the file paths.
	DayImage   image.Image
	NightImage image.Image

	Segments int     `env:"SEGMENTS"`
	Rings    int     `env:"RINGS"`
	FOV      float64 `env:"FOV"`

	SpinPeriod      time.Duration `env:"SPIN_PERIOD"`
	DisableAutoSpin bool          `env:"DISABLE_AUTO_SPIN"`
	TiltModel       TiltModel     `env:"TILT_MODEL"`

	// Specular is the strength of the sun's highlight. Negative disables it.
	Specular float64 `env:"SPECULAR"`

	Stars StarfieldConfig `envPrefix:"STARS_"`

	// DisableInput turns off the built-in mouse, touch and keyboard
	// recognizer. The GestureHandler methods still work.
	DisableInput bool `env:"DISABLE_INPUT"`

	// Clock returns the date used for the seasonal tilt. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Segments:   DefaultSegments,
		Rings:      DefaultRings,
		FOV:        DefaultFOV,
		SpinPeriod: DefaultSpinPeriod,
		TiltModel:  TiltApproximate,
		Specular:   specularStrength,
		Stars:      DefaultStarfieldConfig(),
		Clock:      time.Now,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Segments <= 0 {
		c.Segments = d.Segments
	}
	if c.Rings <= 0 {
		c.Rings = d.Rings
	}
	if c.FOV == 0 {
		c.FOV = d.FOV
	}
	if c.SpinPeriod <= 0 {
		c.SpinPeriod = d.SpinPeriod
	}
	if c.Specular == 0 {
		c.Specular = d.Specular
	}
	if c.Specular < 0 {
		c.Specular = 0
	}
	if c.Stars == (StarfieldConfig{}) {
		c.Stars = d.Stars
	} else if c.Stars.Brightness == (Range{}) && c.Stars.Size == (Range{}) {
		// Only count and seed were given, typically from the environment.
		count, seed := c.Stars.Count, c.Stars.Seed
		c.Stars = d.Stars
		c.Stars.Count = count
		if seed != 0 {
			c.Stars.Seed = seed
		}
	}
	if c.Clock == nil {
		c.Clock = d.Clock
	}
	return c
}

// Globe is the top-level object: it owns the scene graph, camera, lights,
// textures, markers and the gesture state, and implements GestureHandler.
type Globe struct {
	cfg Config

	// Scene graph
	root         *Node
	userTilt     *Node
	userRotation *Node
	seasonalTilt *Node
	globeNode    *Node
	sunNode      *Node
	cameraNode   *Node
	ambientNode  *Node

	camera   *Camera
	mesh     *globeMesh
	textures *textureSet
	skybox   *skybox
	lit      lighting

	// Core state
	orientation Orientation
	zoom        *ZoomController
	pan         PanMapper
	spin        *AutoSpin
	orientAnim  *TweenGroup
	seasonKey   seasonKey

	markers []*GlowingMarker

	// View
	viewport   Rect
	attached   bool
	arMode     bool
	ClearColor Color

	sink       EventSink
	debug      bool
	updateFunc func() error

	// Input state
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	pinch        pinchState
	panPointer   int
	keyPad       DPadAdapter

	// Automated testing
	injectQueue     []syntheticFrame
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	lastStats debugStats
}

// NewGlobe loads the textures, builds the sphere and the starfield, and
// assembles the scene graph. The returned globe is not attached to a view;
// Draw attaches it to the screen on first use.
func NewGlobe(cfg Config) (*Globe, error) {
	cfg = cfg.withDefaults()

	day, night := cfg.DayImage, cfg.NightImage
	var err error
	if day == nil && cfg.DayTexture != "" {
		if day, err = LoadImage(cfg.DayTexture); err != nil {
			return nil, fmt.Errorf("new globe: %w", err)
		}
	}
	if night == nil && cfg.NightTexture != "" {
		if night, err = LoadImage(cfg.NightTexture); err != nil {
			return nil, fmt.Errorf("new globe: %w", err)
		}
	}

	segments, rings := clampSegments(cfg.Segments, cfg.Rings)
	g := &Globe{
		cfg:           cfg,
		camera:        newCamera(Rect{}),
		mesh:          newGlobeMesh(segments, rings),
		textures:      newTextureSet(day, night),
		skybox:        newSkybox(GenerateStarfield(cfg.Stars)),
		zoom:          NewZoomController(cfg.FOV),
		spin:          NewAutoSpin(cfg.SpinPeriod),
		ClearColor:    ColorBlack,
		dragDeadZone:  defaultDragDeadZone,
		panPointer:    noPointer,
		ScreenshotDir: "screenshots",
	}
	g.keyPad = DPadAdapter{Handler: g, Speed: keyPanSpeed}
	g.spin.SetEnabled(!cfg.DisableAutoSpin)
	g.orientation.AutoSpin = g.spin.Enabled()
	g.buildScene()
	g.refreshSeason()
	g.syncNodes()
	return g, nil
}

// buildScene creates the node tree:
//
//	root
//	├── userTilt
//	│   └── userRotation
//	│       ├── seasonalTilt
//	│       │   └── globe
//	│       │       └── markers
//	│       └── sun
//	├── skybox
//	└── camera
//	    └── ambient
func (g *Globe) buildScene() {
	g.root = NewContainer("root")
	g.userTilt = NewContainer("userTilt")
	g.userRotation = NewContainer("userRotation")
	g.seasonalTilt = NewContainer("seasonalTilt")
	g.globeNode = newNode("globe", NodeTypeGlobe)

	sun := NewSunLight()
	g.sunNode = NewLightNode("sun", sun)
	g.sunNode.SetPosition(0, 0, DistanceToTheSun)

	g.cameraNode = newNode("camera", NodeTypeCamera)
	p := g.camera.Position
	g.cameraNode.SetPosition(p[0], p[1], p[2])
	g.ambientNode = NewLightNode("ambient", NewAmbientLight())

	g.root.AddChild(g.userTilt)
	g.userTilt.AddChild(g.userRotation)
	g.userRotation.AddChild(g.seasonalTilt)
	g.seasonalTilt.AddChild(g.globeNode)
	g.userRotation.AddChild(g.sunNode)
	g.root.AddChild(g.skybox.node)
	g.root.AddChild(g.cameraNode)
	g.cameraNode.AddChild(g.ambientNode)
}

// Root returns the root of the scene graph.
func (g *Globe) Root() *Node {
	return g.root
}

// GlobeNode returns the node carrying the sphere. Markers are its children.
func (g *Globe) GlobeNode() *Node {
	return g.globeNode
}

// Camera returns the globe's camera.
func (g *Globe) Camera() *Camera {
	return g.camera
}

// Sun returns the sun light.
func (g *Globe) Sun() *Light {
	return g.sunNode.Light
}

// Ambient returns the ambient light.
func (g *Globe) Ambient() *Light {
	return g.ambientNode.Light
}

// AttachToView sizes the globe to v. In AR mode the starfield is removed,
// the background is left transparent and the built-in gesture recognizer is
// turned off, since the host drives the camera.
func (g *Globe) AttachToView(v View, arMode bool) {
	g.attached = true
	g.arMode = arMode
	if v != nil {
		g.setViewport(rectFromImage(v.Bounds()))
	}
	if arMode {
		g.skybox.node.RemoveFromParent()
		g.ClearColor = ColorTransparent
		g.cancelGestures()
		return
	}
	if g.skybox.node.Parent == nil {
		g.root.AddChildAt(g.skybox.node, 1)
	}
	if g.ClearColor == ColorTransparent {
		g.ClearColor = ColorBlack
	}
}

// ARMode reports whether the globe was attached in AR mode.
func (g *Globe) ARMode() bool {
	return g.arMode
}

func (g *Globe) setViewport(r Rect) {
	g.viewport = r
	g.camera.SetViewport(r)
}

// Viewport returns the pixel rectangle the globe draws into.
func (g *Globe) Viewport() Rect {
	return g.viewport
}

// inputEnabled reports whether the built-in recognizer runs.
func (g *Globe) inputEnabled() bool {
	return !g.arMode && !g.cfg.DisableInput
}

// cancelGestures ends any pan or pinch the recognizer started.
func (g *Globe) cancelGestures() {
	g.keyPad.Release()
	if g.panPointer != noPointer {
		g.panPointer = noPointer
		g.OnPanEnd()
	}
	if g.pinch.active {
		g.pinch.active = false
		g.OnPinchEnd()
	}
	for i := range g.pointers {
		g.pointers[i] = pointerState{}
	}
}

// --- Markers ---

// AddMarker pins m to the globe. Adding a marker twice is a no-op.
func (g *Globe) AddMarker(m *GlowingMarker) {
	if m == nil {
		panic("globe: AddMarker called with nil marker")
	}
	for _, existing := range g.markers {
		if existing == m {
			return
		}
	}
	g.globeNode.AddChild(m.node)
	g.markers = append(g.markers, m)
}

// RemoveMarker unpins m. Removing an unknown marker is a no-op.
func (g *Globe) RemoveMarker(m *GlowingMarker) {
	for i, existing := range g.markers {
		if existing == m {
			m.node.RemoveFromParent()
			m.onScreen = false
			g.markers = append(g.markers[:i], g.markers[i+1:]...)
			return
		}
	}
}

// Markers returns the pinned markers. The slice must not be modified.
func (g *Globe) Markers() []*GlowingMarker {
	return g.markers
}

// --- Zoom ---

// SetZoom sets the field of view in degrees, clamped to [MinFOV, MaxFOV].
func (g *Globe) SetZoom(fov float64) {
	g.zoom.SetFOV(fov)
}

// Zoom returns the field of view in degrees.
func (g *Globe) Zoom() float64 {
	return g.zoom.FOV()
}

// ZoomBy divides the field of view by factor. Factors above 1 zoom in.
func (g *Globe) ZoomBy(factor float64) {
	before := g.zoom.FOV()
	g.zoom.ZoomBy(factor)
	if g.zoom.FOV() != before {
		g.emit(GestureEvent{Type: EventZoom, Scale: factor})
	}
}

// ZoomTo animates the field of view to fov over duration seconds. It does
// nothing while a pinch is in progress.
func (g *Globe) ZoomTo(fov float64, duration float32, fn ease.TweenFunc) {
	g.zoom.ZoomTo(fov, duration, fn)
}

// --- Orientation ---

// Orientation returns a copy of the current pose.
func (g *Globe) Orientation() Orientation {
	return g.orientation
}

// SetAutoSpin turns the autonomous rotation on or off. The spin angle is
// kept so resuming continues from where it stopped.
func (g *Globe) SetAutoSpin(enabled bool) {
	g.spin.SetEnabled(enabled)
	g.orientation.AutoSpin = enabled
}

// AutoSpin returns the autonomous spin animation.
func (g *Globe) AutoSpin() *AutoSpin {
	return g.spin
}

// ResetOrientation animates the user spin and tilt back to zero. A
// non-positive duration resets immediately.
func (g *Globe) ResetOrientation(duration float32) {
	g.RotateTo(0, 0, duration)
}

// RotateTo animates the user spin and tilt to the given angles in radians.
// A pan cancels the animation.
func (g *Globe) RotateTo(spin, tilt float64, duration float32) {
	if duration <= 0 {
		g.orientAnim = nil
		g.orientation.Spin = wrapAngle(spin)
		g.orientation.Tilt = ClampTilt(tilt)
		return
	}
	g.orientAnim = TweenOrientation(&g.orientation, spin, tilt, duration, ease.InOutSine)
}

// --- Integration ---

// SetEventSink forwards gesture events to sink. Pass nil to stop.
func (g *Globe) SetEventSink(sink EventSink) {
	g.sink = sink
}

// SetDebugMode enables per-frame timing output on stderr and tree misuse
// checks.
func (g *Globe) SetDebugMode(enabled bool) {
	g.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Globe debug flag so that node
// operations can check it without a back-pointer.
var globalDebug bool

// PickLatLon returns the latitude and longitude under screen pixel (x, y)
// as of the last frame. ok is false when the point misses the globe.
func (g *Globe) PickLatLon(x, y float64) (lat, lon float64, ok bool) {
	if g.viewport.Empty() {
		return 0, 0, false
	}
	origin, dir := g.camera.ScreenToRay(x, y)
	hit, ok := raySphere(origin, dir, g.globeNode.WorldPosition(), GlobeRadius)
	if !ok {
		return 0, 0, false
	}
	lat, lon = UnitToLatLon(g.globeNode.WorldToLocal(hit))
	return lat, lon, true
}

// raySphere returns the nearest intersection of the ray with the sphere in
// front of the origin.
func raySphere(origin, dir, center mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return mgl64.Vec3{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = -b + math.Sqrt(disc)
	}
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

// --- Frame ---

// Update runs the test script, processes input and advances every animation
// by one tick. Intended to be called from ebiten.Game.Update.
func (g *Globe) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	if g.inputEnabled() {
		g.processInput(dt)
	} else if g.processInjectedInput() {
		g.detectPinch()
	}
	g.advance(float32(dt))
	if g.updateFunc != nil {
		return g.updateFunc()
	}
	return nil
}

// SetUpdateFunc registers fn to run at the end of every Update, after the
// animations have advanced. Returning an error stops Run.
func (g *Globe) SetUpdateFunc(fn func() error) {
	g.updateFunc = fn
}

// advance moves the animations forward by dt seconds and refreshes the
// scene graph. It touches no GPU state.
func (g *Globe) advance(dt float32) {
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}

	g.zoom.Update(dt)
	g.spin.Update(dt)
	if g.orientAnim != nil {
		g.orientAnim.Update(dt)
		if g.orientAnim.Done {
			g.orientAnim = nil
		}
	}
	for _, m := range g.markers {
		m.update(dt)
	}
	g.refreshSeason()
	g.syncNodes()

	if g.debug {
		g.lastStats.advanceTime = time.Since(t0)
	}
}

// refreshSeason recomputes the seasonal tilt when the calendar day changes.
func (g *Globe) refreshSeason() {
	now := g.cfg.Clock()
	key := seasonKeyOf(now)
	if key == g.seasonKey {
		return
	}
	g.seasonKey = key
	g.orientation.Seasonal = g.cfg.TiltModel.TiltAt(now)
}

// syncNodes copies the orientation into the node rotations and refreshes
// world transforms.
func (g *Globe) syncNodes() {
	g.userTilt.SetRotation(g.orientation.TiltMatrix())
	g.userRotation.SetRotation(g.orientation.SpinMatrix())
	g.seasonalTilt.SetRotation(g.orientation.SeasonalMatrix())
	g.globeNode.SetRotation(mgl64.HomogRotate3DY(g.spin.Angle()))
	updateWorldTransform(g.root, mgl64.Ident4(), false)
}

// Dispose releases the textures and the scene graph. The globe must not be
// used afterwards.
func (g *Globe) Dispose() {
	g.textures.dispose()
	g.markers = nil
	g.root.Dispose()
}
