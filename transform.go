package globe

import "github.com/go-gl/mathgl/mgl64"

// computeLocalTransform builds the node's local matrix.
//
// Composition order (column vectors, rightmost first):
//
//	Translate(Position) · Rotation · Scale
func computeLocalTransform(n *Node) mgl64.Mat4 {
	m := n.Rotation
	if n.Scale != 1 {
		m = m.Mul4(mgl64.Scale3D(n.Scale, n.Scale, n.Scale))
	}
	if n.Position != (mgl64.Vec3{}) {
		m = mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2]).Mul4(m)
	}
	return m
}

// updateWorldTransform recomputes a node's worldTransform.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parentTransform.Mul4(computeLocalTransform(n))
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetRotation sets the node's local rotation matrix and marks it dirty.
func (n *Node) SetRotation(r mgl64.Mat4) {
	n.Rotation = r
	n.transformDirty = true
}

// SetScale sets the node's uniform scale and marks it dirty.
func (n *Node) SetScale(s float64) {
	n.Scale = s
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldTransform returns the world matrix computed during the last update.
func (n *Node) WorldTransform() mgl64.Mat4 {
	return n.worldTransform
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.worldTransform.Col(3).Vec3()
}

// --- Coordinate conversion ---

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.worldTransform)
}

// LocalDirToWorld rotates a local-space direction into world space,
// ignoring translation.
func (n *Node) LocalDirToWorld(d mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformNormal(d, n.worldTransform)
}

// WorldToLocal converts a world-space point to this node's local space.
// A singular world transform (zero scale) yields the input unchanged.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	if det := n.worldTransform.Det(); det > -1e-12 && det < 1e-12 {
		return p
	}
	return mgl64.TransformCoordinate(p, n.worldTransform.Inv())
}
