package globe

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGlobeMeshCullsBackFaces(t *testing.T) {
	m := newGlobeMesh(32, 16)
	cam := newCamera(Rect{0, 0, 800, 600})
	visible := m.update(mgl64.Ident4(), cam, nil, 1024, 512)

	total := m.geom.triangleCount()
	if visible == 0 || visible >= total {
		t.Fatalf("visible = %d of %d, want a strict subset", visible, total)
	}
	// From 4.5 radii away a bit less than half the sphere is visible.
	if visible > total*6/10 {
		t.Errorf("visible = %d of %d, too many", visible, total)
	}
	for i := 0; i < len(m.indices); i += 3 {
		a := m.projected[m.indices[i]]
		b := m.projected[m.indices[i+1]]
		c := m.projected[m.indices[i+2]]
		centroid := a.world.Add(b.world).Add(c.world).Mul(1.0 / 3)
		if centroid[2] < -0.05 {
			t.Fatalf("triangle %d with centroid %v is on the far side", i/3, centroid)
		}
	}
}

func TestGlobeMeshFollowsWorldTransform(t *testing.T) {
	m := newGlobeMesh(32, 16)
	cam := newCamera(Rect{0, 0, 800, 600})
	m.update(mgl64.Ident4(), cam, nil, 1, 1)
	front := append([]uint16(nil), m.indices...)

	m.update(mgl64.HomogRotate3DY(3.14159), cam, nil, 1, 1)
	if len(m.indices) == 0 {
		t.Fatal("no visible triangles after rotation")
	}
	same := 0
	set := map[uint16]bool{}
	for _, i := range front {
		set[i] = true
	}
	for _, i := range m.indices {
		if set[i] {
			same++
		}
	}
	if same == len(m.indices) {
		t.Error("rotating half a turn should expose different vertices")
	}
}

func TestGlobeMeshTextureCoordinates(t *testing.T) {
	m := newGlobeMesh(8, 4)
	cam := newCamera(Rect{0, 0, 100, 100})
	m.update(mgl64.Ident4(), cam, nil, 1024, 512)
	last := m.vertices[len(m.vertices)-1]
	if last.SrcX != 1024 || last.SrcY != 512 {
		t.Errorf("last vertex src = (%v, %v), want (1024, 512)", last.SrcX, last.SrcY)
	}
}

func TestGlobeMeshLighting(t *testing.T) {
	m := newGlobeMesh(16, 8)
	cam := newCamera(Rect{0, 0, 100, 100})
	lit := &lighting{
		sunPos:  mgl64.Vec3{0, 0, DistanceToTheSun},
		sun:     ColorWhite,
		ambient: Color{0.02, 0.02, 0.02, 1},
		eye:     cam.Position,
	}
	m.update(mgl64.Ident4(), cam, lit, 1, 1)
	// Vertex on the equator facing the sun versus one facing away.
	cols := 17
	front := m.vertices[4*cols+8]
	back := m.vertices[4*cols]
	if front.ColorR < 0.9 {
		t.Errorf("sunlit vertex R = %v", front.ColorR)
	}
	if back.ColorR > 0.05 {
		t.Errorf("night vertex R = %v", back.ColorR)
	}
	if front.ColorA != 1 || back.ColorA != 1 {
		t.Error("vertex alpha should be opaque")
	}
}
