package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OBB represents an oriented box.
// The box is defined by its center, its half-extents (half-width, half-height, half-depth)
// and an orthonormal basis whose columns are the box's local axes in world space.
type OBB struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Basis       mgl64.Mat3
}

// NewOBB creates an oriented box from a rotation quaternion
func NewOBB(center, halfExtents mgl64.Vec3, rotation mgl64.Quat) OBB {
	return OBB{
		Center:      center,
		HalfExtents: halfExtents,
		Basis:       rotation.Normalize().Mat4().Mat3(),
	}
}

func (b OBB) GetCenter() mgl64.Vec3 {
	return b.Center
}

// Axis returns the i-th local axis in world space
func (b OBB) Axis(i int) mgl64.Vec3 {
	return b.Basis.Col(i)
}

// ToLocal expresses a world point in the box frame, relative to its center
func (b OBB) ToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return b.Basis.Transpose().Mul3x1(point.Sub(b.Center))
}

// ToWorld maps a point of the box frame back to world space
func (b OBB) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return b.Center.Add(b.Basis.Mul3x1(local))
}

func (b OBB) Support(direction mgl64.Vec3) mgl64.Vec3 {
	local := b.Basis.Transpose().Mul3x1(direction)
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	if local.X() < 0 {
		hx = -hx
	}
	if local.Y() < 0 {
		hy = -hy
	}
	if local.Z() < 0 {
		hz = -hz
	}

	return b.ToWorld(mgl64.Vec3{hx, hy, hz})
}

// Corners returns the 8 corners of the box in world space
func (b OBB) Corners() [8]mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	local := [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}

	var corners [8]mgl64.Vec3
	for i, c := range local {
		corners[i] = b.ToWorld(c)
	}
	return corners
}

// Face returns the 4 world-space vertices of the face whose outward normal is
// sign * Axis(axis), counter-clockwise seen from outside the box
func (b OBB) Face(axis int, sign float64) [4]mgl64.Vec3 {
	u := (axis + 1) % 3
	v := (axis + 2) % 3

	var center mgl64.Vec3
	center[axis] = math.Copysign(b.HalfExtents[axis], sign)

	var du, dv mgl64.Vec3
	du[u] = b.HalfExtents[u]
	dv[v] = b.HalfExtents[v]
	if sign < 0 {
		du, dv = dv, du
	}

	return [4]mgl64.Vec3{
		b.ToWorld(center.Sub(du).Sub(dv)),
		b.ToWorld(center.Add(du).Sub(dv)),
		b.ToWorld(center.Add(du).Add(dv)),
		b.ToWorld(center.Sub(du).Add(dv)),
	}
}

// GetAABB computes the axis-aligned bounds of the oriented box
func (b OBB) GetAABB() AABB {
	var extent mgl64.Vec3
	for i := 0; i < 3; i++ {
		row := b.Basis.Row(i)
		extent[i] = math.Abs(row.X())*b.HalfExtents.X() +
			math.Abs(row.Y())*b.HalfExtents.Y() +
			math.Abs(row.Z())*b.HalfExtents.Z()
	}

	return AABB{Min: b.Center.Sub(extent), Max: b.Center.Add(extent)}
}
