package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere represents a sphere by its center and radius
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

func (s Sphere) GetCenter() mgl64.Vec3 {
	return s.Center
}

func (s Sphere) Support(direction mgl64.Vec3) mgl64.Vec3 {
	dir, ok := safeNormalize(direction)
	if !ok {
		return s.Center
	}
	return s.Center.Add(dir.Mul(s.Radius))
}

// Capsule is the set of points within Radius of the segment PointA-PointB
type Capsule struct {
	PointA mgl64.Vec3
	PointB mgl64.Vec3
	Radius float64
}

func (c Capsule) GetCenter() mgl64.Vec3 {
	return c.PointA.Add(c.PointB).Mul(0.5)
}

func (c Capsule) Support(direction mgl64.Vec3) mgl64.Vec3 {
	point := c.PointA
	if c.PointB.Dot(direction) > c.PointA.Dot(direction) {
		point = c.PointB
	}

	dir, ok := safeNormalize(direction)
	if !ok {
		return point
	}
	return point.Add(dir.Mul(c.Radius))
}

// Cylinder is a finite circular cylinder whose end caps are centered on PointA and PointB
type Cylinder struct {
	PointA mgl64.Vec3
	PointB mgl64.Vec3
	Radius float64
}

func (c Cylinder) GetCenter() mgl64.Vec3 {
	return c.PointA.Add(c.PointB).Mul(0.5)
}

// Axis returns the unit axis from PointA toward PointB
func (c Cylinder) Axis() mgl64.Vec3 {
	axis, ok := safeNormalize(c.PointB.Sub(c.PointA))
	if !ok {
		return mgl64.Vec3{0, 1, 0}
	}
	return axis
}

func (c Cylinder) Support(direction mgl64.Vec3) mgl64.Vec3 {
	axis := c.Axis()

	point := c.PointA
	if direction.Dot(axis) > 0 {
		point = c.PointB
	}

	radial := direction.Sub(axis.Mul(direction.Dot(axis)))
	if radial, ok := safeNormalize(radial); ok {
		point = point.Add(radial.Mul(c.Radius))
	}
	return point
}

// EllipticalCylinder is a finite cylinder with an elliptical cross section.
// Its local X axis carries MajorRadius, Z carries MinorRadius and Y is the
// height axis, all taken from the columns of Basis.
type EllipticalCylinder struct {
	Center      mgl64.Vec3
	Basis       mgl64.Mat3
	MajorRadius float64
	MinorRadius float64
	HalfHeight  float64
}

func (c EllipticalCylinder) GetCenter() mgl64.Vec3 {
	return c.Center
}

func (c EllipticalCylinder) Support(direction mgl64.Vec3) mgl64.Vec3 {
	local := c.Basis.Transpose().Mul3x1(direction)

	var point mgl64.Vec3
	if local.Y() > 0 {
		point[1] = c.HalfHeight
	} else {
		point[1] = -c.HalfHeight
	}

	// support of an ellipse: (a² dx, b² dz) / |(a dx, b dz)|
	sx := c.MajorRadius * local.X()
	sz := c.MinorRadius * local.Z()
	if length := math.Hypot(sx, sz); length > 1e-12 {
		point[0] = c.MajorRadius * sx / length
		point[2] = c.MinorRadius * sz / length
	}

	return c.Center.Add(c.Basis.Mul3x1(point))
}

// Ellipsoid is defined by its center, its radius along each local axis and
// an orthonormal basis whose columns are those axes
type Ellipsoid struct {
	Center mgl64.Vec3
	Radii  mgl64.Vec3
	Basis  mgl64.Mat3
}

func (e Ellipsoid) GetCenter() mgl64.Vec3 {
	return e.Center
}

// InverseScaledBasis maps world offsets from the center into the unit sphere frame
func (e Ellipsoid) InverseScaledBasis() mgl64.Mat3 {
	rows := [3]mgl64.Vec3{}
	for i := 0; i < 3; i++ {
		rows[i] = e.Basis.Col(i).Mul(1.0 / e.Radii[i])
	}
	return mgl64.Mat3FromRows(rows[0], rows[1], rows[2])
}

func (e Ellipsoid) Support(direction mgl64.Vec3) mgl64.Vec3 {
	local := e.Basis.Transpose().Mul3x1(direction)
	scaled := mgl64.Vec3{
		local.X() * e.Radii.X(),
		local.Y() * e.Radii.Y(),
		local.Z() * e.Radii.Z(),
	}

	length := scaled.Len()
	if length < 1e-12 {
		return e.Center
	}

	point := mgl64.Vec3{
		scaled.X() * e.Radii.X() / length,
		scaled.Y() * e.Radii.Y() / length,
		scaled.Z() * e.Radii.Z() / length,
	}
	return e.Center.Add(e.Basis.Mul3x1(point))
}

// Torus is the surface of revolution of a circle of radius TubeRadius whose
// center sweeps a ring of radius RingRadius around Axis
type Torus struct {
	Center     mgl64.Vec3
	Axis       mgl64.Vec3
	RingRadius float64
	TubeRadius float64
}

func (t Torus) GetCenter() mgl64.Vec3 {
	return t.Center
}
