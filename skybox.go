package globe

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Star is a point on the celestial sphere.
type Star struct {
	Dir        mgl64.Vec3 // unit direction in skybox space
	Brightness float64    // 0..1
	Size       float64    // diameter in pixels at DefaultFOV
	Color      Color
}

// StarfieldConfig tunes the procedural sky.
type StarfieldConfig struct {
	Count int    `env:"COUNT"`
	Seed  uint64 `env:"SEED"`
	// BandFraction is the share of stars concentrated in the galactic band.
	BandFraction float64
	// BandWidth is the thickness of the band as a fraction of the sphere
	// (1 = no concentration).
	BandWidth   float64
	Brightness  Range
	Size        Range
	Temperature Range
}

// DefaultStarfieldConfig returns a sky of DefaultStarCount stars.
func DefaultStarfieldConfig() StarfieldConfig {
	return StarfieldConfig{
		Count:        DefaultStarCount,
		Seed:         1,
		BandFraction: 0.45,
		BandWidth:    0.12,
		Brightness:   Range{Min: 0.15, Max: 1},
		Size:         Range{Min: 1, Max: 2.5},
		Temperature:  Range{Min: 3500, Max: 11000},
	}
}

// GenerateStarfield returns a deterministic set of stars for cfg.Seed. The
// galactic band lies in the XZ plane before the skybox tilt is applied.
func GenerateStarfield(cfg StarfieldConfig) []Star {
	n := cfg.Count
	if n < 0 {
		n = 0
	}
	if n > maxStarCount {
		n = maxStarCount
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	stars := make([]Star, n)
	for i := range stars {
		dir := randomUnit(rng)
		if rng.Float64() < cfg.BandFraction && cfg.BandWidth > 0 && cfg.BandWidth < 1 {
			dir[1] *= cfg.BandWidth
			dir = dir.Normalize()
		}
		// Squaring skews toward faint stars, as in the real sky.
		b := rng.Float64()
		stars[i] = Star{
			Dir:        dir,
			Brightness: cfg.Brightness.Lerp(b * b),
			Size:       cfg.Size.Lerp(b * b * b),
			Color:      ColorFromTemperature(cfg.Temperature.Random(rng)),
		}
	}
	return stars
}

// randomUnit returns a uniformly distributed point on the unit sphere.
func randomUnit(rng *rand.Rand) mgl64.Vec3 {
	z := rng.Float64()*2 - 1
	phi := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return mgl64.Vec3{r * math.Cos(phi), z, r * math.Sin(phi)}
}

// skybox draws the starfield behind the globe. It is parented to the scene
// root and therefore ignores user gestures.
type skybox struct {
	node     *Node
	stars    []Star
	vertices []ebiten.Vertex
	indices  []uint16
	visible  int
}

func newSkybox(stars []Star) *skybox {
	n := newNode("skybox", NodeTypeSkybox)
	n.SetRotation(mgl64.HomogRotate3DX(mgl64.DegToRad(GalacticTiltDegrees)))
	return &skybox{node: n, stars: stars}
}

// update projects every star through cam. fov scales star size so zooming in
// magnifies them slightly. Returns the number of stars on screen.
func (s *skybox) update(cam *Camera) int {
	if cap(s.vertices) < len(s.stars)*4 {
		s.vertices = make([]ebiten.Vertex, 0, len(s.stars)*4)
		s.indices = make([]uint16, 0, len(s.stars)*6)
	}
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	zoom := math.Sqrt(DefaultFOV / math.Max(cam.FOV, MinFOV))
	world := s.node.WorldTransform()
	vp := cam.Viewport
	for i := range s.stars {
		st := &s.stars[i]
		dir := mgl64.TransformNormal(st.Dir, world)
		x, y, ok := cam.DirectionToScreen(dir)
		if !ok || !vp.Contains(x, y) {
			continue
		}
		half := math.Max(0.5, st.Size*zoom/2)
		c := st.Color
		a := float32(clamp01(st.Brightness))
		base := uint16(len(s.vertices))
		for _, corner := range [4][2]float64{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX:   float32(x + corner[0]*half),
				DstY:   float32(y + corner[1]*half),
				SrcX:   whitePixelSrc,
				SrcY:   whitePixelSrc,
				ColorR: float32(c.R) * a,
				ColorG: float32(c.G) * a,
				ColorB: float32(c.B) * a,
				ColorA: a,
			})
		}
		s.indices = append(s.indices, base, base+1, base+2, base+1, base+3, base+2)
	}
	s.visible = len(s.vertices) / 4
	return s.visible
}

func (s *skybox) draw(dst *ebiten.Image) {
	if len(s.indices) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.Blend = ebiten.BlendLighter
	dst.DrawTriangles(s.vertices, s.indices, ensureWhitePixel(), &op)
}
