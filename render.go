package globe

import (
	"image"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image used as the source for untextured
// triangles such as stars.
var whitePixel *ebiten.Image

// whitePixelSrc is the source coordinate of the center of whitePixel.
// Sub-images keep their parent's coordinate space.
const whitePixelSrc = 1.5

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(ColorWhite.RGBA())
		// The 1x1 center avoids sampling the edge under linear filtering.
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// Draw renders the starfield, the globe and its markers into screen. The
// first call attaches the globe to screen if AttachToView wasn't called.
func (g *Globe) Draw(screen *ebiten.Image) {
	if !g.attached {
		g.AttachToView(screen, false)
	}

	stats := g.lastStats
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}

	g.layout(rectFromImage(screen.Bounds()))

	if g.debug {
		stats.layoutTime = time.Since(t0)
		t0 = time.Now()
	}

	if !g.arMode {
		screen.Fill(g.ClearColor.RGBA())
	}
	if g.skybox.node.Attached(g.root) {
		g.skybox.draw(screen)
	}
	g.textures.ensure()
	g.mesh.draw(screen, g.textures)
	for _, m := range g.drawOrder() {
		m.draw(screen)
	}

	g.flushScreenshots(screen)

	if g.debug {
		stats.drawTime = time.Since(t0)
		stats.triangles = len(g.mesh.indices) / 3
		stats.stars = g.skybox.visible
		stats.markers = g.visibleMarkers()
		g.debugLog(stats)
	}
}

// layout projects the scene into viewport: the camera takes the current
// zoom, stars and sphere vertices are projected and shaded, and markers get
// their screen placement. It touches no GPU state.
func (g *Globe) layout(viewport Rect) {
	g.setViewport(viewport)
	g.camera.SetFOV(g.zoom.FOV())

	if g.skybox.node.Attached(g.root) {
		g.skybox.update(g.camera)
	} else {
		g.skybox.visible = 0
	}

	g.updateLighting()
	g.mesh.update(g.globeNode.WorldTransform(), g.camera, &g.lit, g.textures.width, g.textures.height)

	for _, m := range g.markers {
		m.project(g.camera)
	}
}

// updateLighting reads the light nodes' world positions and radiance.
func (g *Globe) updateLighting() {
	g.lit = lighting{
		sunPos:   g.sunNode.WorldPosition(),
		sun:      g.sunNode.Light.Radiance(),
		ambient:  g.ambientNode.Light.Radiance(),
		eye:      g.camera.Position,
		specular: g.cfg.Specular,
	}
}

// drawOrder returns the on-screen markers sorted back to front.
func (g *Globe) drawOrder() []*GlowingMarker {
	out := make([]*GlowingMarker, 0, len(g.markers))
	for _, m := range g.markers {
		if m.onScreen {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].depth > out[j].depth
	})
	return out
}

func (g *Globe) visibleMarkers() int {
	n := 0
	for _, m := range g.markers {
		if m.onScreen {
			n++
		}
	}
	return n
}
