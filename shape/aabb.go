package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds a box from a center and half-extents
func NewAABB(center, halfExtents mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// IsValid reports whether Min <= Max on every axis
func (a AABB) IsValid() bool {
	return a.Min.X() <= a.Max.X() && a.Min.Y() <= a.Max.Y() && a.Min.Z() <= a.Max.Z()
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

func (a AABB) GetCenter() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) HalfExtents() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// Expand grows the box so that it contains point
func (a AABB) Expand(point mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		a.Min[i] = math.Min(a.Min[i], point[i])
		a.Max[i] = math.Max(a.Max[i], point[i])
	}
	return a
}

// ToOBB returns the same box as an oriented box with an identity basis
func (a AABB) ToOBB() OBB {
	return OBB{Center: a.GetCenter(), HalfExtents: a.HalfExtents(), Basis: mgl64.Ident3()}
}

func (a AABB) Support(direction mgl64.Vec3) mgl64.Vec3 {
	result := a.Max
	if direction.X() < 0 {
		result[0] = a.Min.X()
	}
	if direction.Y() < 0 {
		result[1] = a.Min.Y()
	}
	if direction.Z() < 0 {
		result[2] = a.Min.Z()
	}

	return result
}

// Bounds returns the axis-aligned box enclosing a convex shape, from its
// support points along the six axis directions
func Bounds(c Convex) AABB {
	switch s := c.(type) {
	case AABB:
		return s
	case OBB:
		return s.GetAABB()
	}

	var bounds AABB
	for axis := 0; axis < 3; axis++ {
		var direction mgl64.Vec3
		direction[axis] = 1
		bounds.Max[axis] = c.Support(direction)[axis]
		bounds.Min[axis] = c.Support(direction.Mul(-1))[axis]
	}
	return bounds
}
