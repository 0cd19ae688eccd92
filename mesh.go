package globe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// projectedVertex is a sphere vertex after world transform and projection.
type projectedVertex struct {
	world  mgl64.Vec3
	normal mgl64.Vec3
	x, y   float64
	ok     bool
}

// globeMesh projects the sphere geometry into screen-space triangles once per
// frame. Buffers grow to a high-water mark and are reused.
type globeMesh struct {
	geom      sphereGeometry
	projected []projectedVertex
	vertices  []ebiten.Vertex
	indices   []uint16
}

func newGlobeMesh(segments, rings int) *globeMesh {
	g := buildSphere(GlobeRadius, segments, rings)
	return &globeMesh{
		geom:      g,
		projected: make([]projectedVertex, len(g.verts)),
		vertices:  make([]ebiten.Vertex, len(g.verts)),
		indices:   make([]uint16, 0, len(g.indices)),
	}
}

// update transforms, shades and projects every vertex, then keeps the
// triangles that face the camera. texW and texH scale the UVs to source
// pixels. Returns the number of visible triangles.
func (m *globeMesh) update(world mgl64.Mat4, cam *Camera, lit *lighting, texW, texH float64) int {
	for i := range m.geom.verts {
		sv := &m.geom.verts[i]
		pv := &m.projected[i]
		pv.world = mgl64.TransformCoordinate(sv.pos, world)
		pv.normal = mgl64.TransformNormal(sv.normal, world).Normalize()
		pv.x, pv.y, _, pv.ok = cam.WorldToScreen(pv.world)

		c := Color{1, 1, 1, 1}
		if lit != nil {
			c = lit.shade(pv.world, pv.normal)
		}
		m.vertices[i] = ebiten.Vertex{
			DstX:   float32(pv.x),
			DstY:   float32(pv.y),
			SrcX:   float32(sv.u * texW),
			SrcY:   float32(sv.v * texH),
			ColorR: float32(clamp01(c.R)),
			ColorG: float32(clamp01(c.G)),
			ColorB: float32(clamp01(c.B)),
			ColorA: 1,
		}
	}

	m.indices = m.indices[:0]
	idx := m.geom.indices
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := &m.projected[idx[i]], &m.projected[idx[i+1]], &m.projected[idx[i+2]]
		if !a.ok || !b.ok || !c.ok {
			continue
		}
		centroid := a.world.Add(b.world).Add(c.world).Mul(1.0 / 3)
		normal := a.normal.Add(b.normal).Add(c.normal)
		if !cam.Facing(centroid, normal) {
			continue
		}
		m.indices = append(m.indices, idx[i], idx[i+1], idx[i+2])
	}
	return len(m.indices) / 3
}

// draw submits the visible triangles. With a night texture and shader the
// Kage blend is used, otherwise a plain textured draw.
func (m *globeMesh) draw(dst *ebiten.Image, tex *textureSet) {
	if len(m.indices) == 0 || tex.day == nil {
		return
	}
	if tex.night != nil {
		if s := ensureNightShader(); s != nil {
			var op ebiten.DrawTrianglesShaderOptions
			op.Images[0] = tex.day
			op.Images[1] = tex.night
			dst.DrawTrianglesShader(m.vertices, m.indices, s, &op)
			return
		}
	}
	var op ebiten.DrawTrianglesOptions
	op.Filter = ebiten.FilterLinear
	op.AntiAlias = true
	dst.DrawTriangles(m.vertices, m.indices, tex.day, &op)
}
