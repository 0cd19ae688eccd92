package globe

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec3(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func assertMatrix(t *testing.T, name string, got, want mgl64.Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

func TestAssertVec3AbsoluteTolerance(t *testing.T) {
	// cos(π/2) leaves ~6e-17 where an exact zero is expected.
	assertVec3(t, "north pole", LatLonToUnit(90, 0), mgl64.Vec3{0, 1, 0})
	assertVec3(t, "near zero", mgl64.Vec3{math.Cos(math.Pi / 2), 1, -1e-12}, mgl64.Vec3{0, 1, 0})
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewContainer("test")
	assertMatrix(t, "local", computeLocalTransform(n), mgl64.Ident4())
}

func TestLocalTransformOrder(t *testing.T) {
	n := NewContainer("test")
	n.SetPosition(1, 2, 3)
	n.SetRotation(mgl64.HomogRotate3DY(math.Pi / 2))
	n.SetScale(2)
	// (0,0,1) scaled to (0,0,2), rotated to (2,0,0), then translated.
	got := mgl64.TransformCoordinate(mgl64.Vec3{0, 0, 1}, computeLocalTransform(n))
	assertVec3(t, "point", got, mgl64.Vec3{3, 2, 3})
}

// --- updateWorldTransform ---

func TestWorldTransformChain(t *testing.T) {
	root := NewContainer("root")
	arm := NewContainer("arm")
	tip := NewContainer("tip")
	root.AddChild(arm)
	arm.AddChild(tip)

	arm.SetRotation(mgl64.HomogRotate3DY(math.Pi / 2))
	tip.SetPosition(0, 0, 2)
	updateWorldTransform(root, mgl64.Ident4(), false)

	assertVec3(t, "tip", tip.WorldPosition(), mgl64.Vec3{2, 0, 0})
}

func TestWorldTransformOnlyDirtyRecomputed(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	root.AddChild(child)
	updateWorldTransform(root, mgl64.Ident4(), false)

	// Poke the cache; a clean subtree must not overwrite it.
	child.worldTransform = mgl64.Translate3D(9, 9, 9)
	updateWorldTransform(root, mgl64.Ident4(), false)
	assertVec3(t, "cached", child.WorldPosition(), mgl64.Vec3{9, 9, 9})

	root.MarkDirty()
	updateWorldTransform(root, mgl64.Ident4(), false)
	assertVec3(t, "recomputed", child.WorldPosition(), mgl64.Vec3{})
}

// --- Coordinate conversion ---

func TestLocalWorldRoundTrip(t *testing.T) {
	root := NewContainer("root")
	n := NewContainer("n")
	root.AddChild(n)
	n.SetPosition(1, -2, 0.5)
	n.SetRotation(mgl64.HomogRotate3DX(0.3).Mul4(mgl64.HomogRotate3DY(1.1)))
	n.SetScale(0.5)
	updateWorldTransform(root, mgl64.Ident4(), false)

	p := mgl64.Vec3{0.2, 0.4, -0.7}
	assertVec3(t, "round trip", n.WorldToLocal(n.LocalToWorld(p)), p)
}

func TestWorldToLocalSingular(t *testing.T) {
	n := NewContainer("n")
	n.SetScale(0)
	updateWorldTransform(n, mgl64.Ident4(), false)
	p := mgl64.Vec3{1, 2, 3}
	assertVec3(t, "singular", n.WorldToLocal(p), p)
}

func TestLocalDirToWorldIgnoresTranslation(t *testing.T) {
	n := NewContainer("n")
	n.SetPosition(5, 5, 5)
	updateWorldTransform(n, mgl64.Ident4(), false)
	assertVec3(t, "dir", n.LocalDirToWorld(mgl64.Vec3{0, 1, 0}), mgl64.Vec3{0, 1, 0})
	assertNear(t, "x", n.LocalToWorld(mgl64.Vec3{})[0], 5)
}
