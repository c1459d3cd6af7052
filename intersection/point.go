package intersection

import (
	"math"

	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// containment returns TypeInside when inside is true, TypeOutside otherwise
func containment(inside bool) Type {
	if inside {
		return TypeInside
	}
	return TypeOutside
}

// PointAABB reports whether point lies in the box, boundary included
func PointAABB(point mgl64.Vec3, aabb shape.AABB) Type {
	return containment(aabb.ContainsPoint(point))
}

// PointOBB reports whether point lies in the oriented box
func PointOBB(point mgl64.Vec3, obb shape.OBB) Type {
	local := obb.ToLocal(point)
	for i := 0; i < 3; i++ {
		if math.Abs(local[i]) > obb.HalfExtents[i] {
			return TypeOutside
		}
	}
	return TypeInside
}

// PointSphere reports whether point lies in the sphere
func PointSphere(point mgl64.Vec3, sphere shape.Sphere) Type {
	return containment(point.Sub(sphere.Center).LenSqr() <= sphere.Radius*sphere.Radius)
}

// PointCapsule reports whether point lies within Radius of the capsule segment
func PointCapsule(point mgl64.Vec3, capsule shape.Capsule) Type {
	closest, _ := ClosestPointOnSegment(shape.Segment{Start: capsule.PointA, End: capsule.PointB}, point)
	return containment(point.Sub(closest).LenSqr() <= capsule.Radius*capsule.Radius)
}

// PointCylinder reports whether point lies between the caps and within Radius of the axis
func PointCylinder(point mgl64.Vec3, cylinder shape.Cylinder) Type {
	axis := cylinder.PointB.Sub(cylinder.PointA)
	lengthSq := axis.LenSqr()
	if lengthSq == 0 {
		return TypeOutside
	}

	relative := point.Sub(cylinder.PointA)
	t := relative.Dot(axis) / lengthSq
	if t < 0 || t > 1 {
		return TypeOutside
	}
	radial := relative.Sub(axis.Mul(t))
	return containment(radial.LenSqr() <= cylinder.Radius*cylinder.Radius)
}

// PointEllipsoid reports whether point lies in the ellipsoid
func PointEllipsoid(point mgl64.Vec3, ellipsoid shape.Ellipsoid) Type {
	local := ellipsoid.InverseScaledBasis().Mul3x1(point.Sub(ellipsoid.Center))
	return containment(local.LenSqr() <= 1)
}

// PointPlane reports whether point lies on or behind the plane
func PointPlane(point mgl64.Vec3, plane shape.Plane) Type {
	return containment(plane.SignedDistance(point) <= 0)
}

// Barycentric returns the weights (u, v, w) of point projected on the plane
// of the triangle, so that u*P0 + v*P1 + w*P2 is the projection.
// It returns false for a degenerate triangle.
func Barycentric(point mgl64.Vec3, triangle shape.Triangle) (float64, float64, float64, bool) {
	v0 := triangle.P1.Sub(triangle.P0)
	v1 := triangle.P2.Sub(triangle.P0)
	v2 := point.Sub(triangle.P0)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denominator := d00*d11 - d01*d01
	if denominator == 0 {
		return 0, 0, 0, false
	}

	v := (d11*d20 - d01*d21) / denominator
	w := (d00*d21 - d01*d20) / denominator
	return 1 - v - w, v, w, true
}

// PointTriangle reports whether the projection of point on the triangle's
// plane lies in the triangle. A positive epsilon fattens the triangle by that
// amount in barycentric units, a negative one shrinks it.
func PointTriangle(point mgl64.Vec3, triangle shape.Triangle, epsilon float64) Type {
	u, v, w, ok := Barycentric(point, triangle)
	if !ok {
		return TypeOutside
	}
	return containment(u >= -epsilon && v >= -epsilon && w >= -epsilon)
}

// PointTetrahedron reports whether point lies behind the four outward faces
func PointTetrahedron(point mgl64.Vec3, tetrahedron shape.Tetrahedron) Type {
	for i := range tetrahedronFaces {
		a, b, c := outwardFace(tetrahedron, i)
		if point.Sub(a).Dot(b.Sub(a).Cross(c.Sub(a))) > 0 {
			return TypeOutside
		}
	}
	return TypeInside
}

// PointFrustum reports whether point lies behind the six planes of the frustum
func PointFrustum(point mgl64.Vec3, frustum shape.Frustum) Type {
	for _, plane := range frustum.Planes {
		if plane.SignedDistance(point) > 0 {
			return TypeOutside
		}
	}
	return TypeInside
}
