package globe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LatLonToUnit converts geographic degrees to a point on the unit sphere.
// Latitude 0, longitude 0 faces +Z; +90 latitude is +Y; +90 longitude is +X.
func LatLonToUnit(latDeg, lonDeg float64) mgl64.Vec3 {
	lat := mgl64.DegToRad(latDeg)
	lon := mgl64.DegToRad(lonDeg)
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)
	return mgl64.Vec3{cosLat * sinLon, sinLat, cosLat * cosLon}
}

// UnitToLatLon is the inverse of LatLonToUnit. p need not be normalized.
func UnitToLatLon(p mgl64.Vec3) (latDeg, lonDeg float64) {
	r := p.Len()
	if r == 0 {
		return 0, 0
	}
	lat := math.Asin(mgl64.Clamp(p[1]/r, -1, 1))
	lon := math.Atan2(p[0], p[2])
	return mgl64.RadToDeg(lat), mgl64.RadToDeg(lon)
}

type sphereVertex struct {
	pos    mgl64.Vec3 // object space, radius applied
	normal mgl64.Vec3
	u, v   float64 // equirectangular texture coordinates in [0, 1]
}

// sphereGeometry is a UV sphere. Columns run west to east starting at
// longitude -180 so u matches an equirectangular map; rows run north to
// south. The seam column is duplicated so u can reach 1.
type sphereGeometry struct {
	verts    []sphereVertex
	indices  []uint16
	segments int
	rings    int
}

// clampSegments keeps the vertex count within uint16 indices.
func clampSegments(segments, rings int) (int, int) {
	if segments < 8 {
		segments = 8
	}
	if segments > 256 {
		segments = 256
	}
	if rings < 4 {
		rings = 4
	}
	if rings > 128 {
		rings = 128
	}
	return segments, rings
}

// buildSphere creates a sphere of the given radius. Vertices =
// (segments+1) * (rings+1); indices = segments * (rings-1) * 6.
func buildSphere(radius float64, segments, rings int) sphereGeometry {
	segments, rings = clampSegments(segments, rings)
	cols := segments + 1
	g := sphereGeometry{
		verts:    make([]sphereVertex, cols*(rings+1)),
		indices:  make([]uint16, 0, segments*(rings-1)*6),
		segments: segments,
		rings:    rings,
	}

	for r := 0; r <= rings; r++ {
		v := float64(r) / float64(rings)
		lat := 90 - v*180
		for c := 0; c <= segments; c++ {
			u := float64(c) / float64(segments)
			lon := u*360 - 180
			n := LatLonToUnit(lat, lon)
			g.verts[r*cols+c] = sphereVertex{
				pos:    n.Mul(radius),
				normal: n,
				u:      u,
				v:      v,
			}
		}
	}

	for r := 0; r < rings; r++ {
		for c := 0; c < segments; c++ {
			tl := uint16(r*cols + c)
			tr := tl + 1
			bl := uint16((r+1)*cols + c)
			br := bl + 1
			// Pole rows collapse to a point; skip the degenerate half.
			if r != 0 {
				g.indices = append(g.indices, tl, bl, tr)
			}
			if r != rings-1 {
				g.indices = append(g.indices, tr, bl, br)
			}
		}
	}
	return g
}

// triangleCount returns the number of triangles in the geometry.
func (g *sphereGeometry) triangleCount() int {
	return len(g.indices) / 3
}
