package intersection

import (
	"math"

	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// ClosestPointOnRay returns the point of the ray closest to point and its parameter
func ClosestPointOnRay(ray Ray, point mgl64.Vec3) (mgl64.Vec3, float64) {
	lengthSq := ray.Direction.LenSqr()
	if lengthSq == 0 {
		return ray.Start, 0
	}

	t := math.Max(0, point.Sub(ray.Start).Dot(ray.Direction)/lengthSq)
	return ray.At(t), t
}

// ClosestPointOnSegment returns the point of the segment closest to point and
// its parameter in [0, 1]
func ClosestPointOnSegment(segment shape.Segment, point mgl64.Vec3) (mgl64.Vec3, float64) {
	direction := segment.Direction()
	lengthSq := direction.LenSqr()
	if lengthSq == 0 {
		return segment.Start, 0
	}

	t := clamp(point.Sub(segment.Start).Dot(direction)/lengthSq, 0, 1)
	return segment.Start.Add(direction.Mul(t)), t
}

// ClosestPointOnAABB clamps point onto the box. A point already inside is
// returned unchanged with TypeInside.
func ClosestPointOnAABB(aabb shape.AABB, point mgl64.Vec3) (Type, mgl64.Vec3) {
	typ := TypeInside
	for i := 0; i < 3; i++ {
		switch {
		case point[i] < aabb.Min[i]:
			point[i] = aabb.Min[i]
			typ = TypeOutside
		case point[i] > aabb.Max[i]:
			point[i] = aabb.Max[i]
			typ = TypeOutside
		}
	}
	return typ, point
}

// ClosestPointOnOBB clamps point onto the oriented box, see ClosestPointOnAABB
func ClosestPointOnOBB(obb shape.OBB, point mgl64.Vec3) (Type, mgl64.Vec3) {
	local := obb.ToLocal(point)
	typ, clamped := ClosestPointOnAABB(shape.AABB{Min: obb.HalfExtents.Mul(-1), Max: obb.HalfExtents}, local)
	if typ == TypeInside {
		return typ, point
	}
	return typ, obb.ToWorld(clamped)
}

// ClosestPointOnSphere projects point onto the sphere surface. A point already
// inside is returned unchanged with TypeInside.
func ClosestPointOnSphere(sphere shape.Sphere, point mgl64.Vec3) (Type, mgl64.Vec3) {
	offset := point.Sub(sphere.Center)
	if offset.LenSqr() <= sphere.Radius*sphere.Radius {
		return TypeInside, point
	}
	return TypeOutside, sphere.Center.Add(offset.Normalize().Mul(sphere.Radius))
}

// ClosestPointOnPlane projects point onto the plane
func ClosestPointOnPlane(plane shape.Plane, point mgl64.Vec3) mgl64.Vec3 {
	return point.Sub(plane.Normal.Mul(plane.SignedDistance(point)))
}

// ClosestPointOnTriangle returns the point of the triangle closest to point,
// walking the Voronoi regions of the vertices and edges before the face.
func ClosestPointOnTriangle(triangle shape.Triangle, point mgl64.Vec3) mgl64.Vec3 {
	a, b, c := triangle.P0, triangle.P1, triangle.P2
	ab := b.Sub(a)
	ac := c.Sub(a)

	ap := point.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := point.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.Mul(d1 / (d1 - d3)))
	}

	cp := point.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.Mul(d2 / (d2 - d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		return b.Add(c.Sub(b).Mul((d4 - d3) / ((d4 - d3) + (d5 - d6))))
	}

	denominator := 1 / (va + vb + vc)
	v := vb * denominator
	w := vc * denominator
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// ClosestPointsOfTwoLines returns the closest points of two infinite lines.
// It returns false when the lines are parallel.
func ClosestPointsOfTwoLines(first, second Line) (mgl64.Vec3, mgl64.Vec3, bool) {
	r := first.Origin.Sub(second.Origin)
	a := first.Direction.Dot(first.Direction)
	b := first.Direction.Dot(second.Direction)
	c := first.Direction.Dot(r)
	e := second.Direction.Dot(second.Direction)
	f := second.Direction.Dot(r)

	denominator := a*e - b*b
	if denominator <= SegmentEpsilon*a*e {
		return first.Origin, second.Origin, false
	}

	s := (b*f - c*e) / denominator
	t := (a*f - b*c) / denominator
	return first.At(s), second.At(t), true
}

// ClosestPointsOfTwoSegments returns the closest points of two segments and
// their parameters in [0, 1]. Degenerate segments are handled as points.
func ClosestPointsOfTwoSegments(first, second shape.Segment) (mgl64.Vec3, mgl64.Vec3, float64, float64) {
	d1 := first.Direction()
	d2 := second.Direction()
	r := first.Start.Sub(second.Start)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= SegmentEpsilon && e <= SegmentEpsilon:
		return first.Start, second.Start, 0, 0
	case a <= SegmentEpsilon:
		t = clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= SegmentEpsilon {
			s = clamp(-c/a, 0, 1)
			break
		}

		b := d1.Dot(d2)
		denominator := a*e - b*b
		if denominator != 0 {
			s = clamp((b*f-c*e)/denominator, 0, 1)
		}

		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = clamp((b-c)/a, 0, 1)
		}
	}

	return first.Start.Add(d1.Mul(s)), second.Start.Add(d2.Mul(t)), s, t
}
