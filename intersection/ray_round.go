package intersection

import (
	"math"

	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// RaySphere intersects a ray with a sphere. A tangent ray is a miss.
func RaySphere(ray Ray, sphere shape.Sphere) (Type, Interval) {
	// Origin outside the sphere and pointing away from it
	m := ray.Start.Sub(sphere.Center)
	if m.LenSqr() > sphere.Radius*sphere.Radius && m.Dot(ray.Direction) > 0 {
		return TypeNone, Invalid
	}
	return clipRay(lineSphere(ray.Start, ray.Direction, sphere.Center, sphere.Radius, false))
}

// LineSphere intersects a line with a sphere. A tangent line is a miss.
func LineSphere(line Line, sphere shape.Sphere) (Type, Interval) {
	return lineSphere(line.Origin, line.Direction, sphere.Center, sphere.Radius, false)
}

// SegmentSphere intersects a segment with a sphere, t in [0, 1]
func SegmentSphere(segment shape.Segment, sphere shape.Sphere) (Type, Interval) {
	return clipSegment(lineSphere(segment.Start, segment.Direction(), sphere.Center, sphere.Radius, false))
}

// lineSphere solves |start + t*direction - center|² = radius².
// A zero discriminant is a hit only when tangentHit is set.
func lineSphere(start, direction, center mgl64.Vec3, radius float64, tangentHit bool) (Type, Interval) {
	m := start.Sub(center)
	a := direction.LenSqr()
	if a == 0 {
		return TypeNone, Invalid
	}
	b := m.Dot(direction)
	c := m.LenSqr() - radius*radius

	discriminant := b*b - a*c
	if discriminant < 0 || (discriminant == 0 && !tangentHit) {
		return TypeNone, Invalid
	}

	root := math.Sqrt(discriminant)
	interval := Interval{
		Min: (-b - root) / a,
		Max: (-b + root) / a,
	}
	interval.Normal[0] = unitOrZero(start.Add(direction.Mul(interval.Min)).Sub(center))
	interval.Normal[1] = unitOrZero(start.Add(direction.Mul(interval.Max)).Sub(center))
	return TypeOther, interval
}

// RayEllipsoid intersects a ray with an ellipsoid. A tangent ray is a miss.
func RayEllipsoid(ray Ray, ellipsoid shape.Ellipsoid) (Type, Interval) {
	return clipRay(lineEllipsoid(ray.Start, ray.Direction, ellipsoid))
}

// LineEllipsoid intersects a line with an ellipsoid
func LineEllipsoid(line Line, ellipsoid shape.Ellipsoid) (Type, Interval) {
	return lineEllipsoid(line.Origin, line.Direction, ellipsoid)
}

// SegmentEllipsoid intersects a segment with an ellipsoid, t in [0, 1]
func SegmentEllipsoid(segment shape.Segment, ellipsoid shape.Ellipsoid) (Type, Interval) {
	return clipSegment(lineEllipsoid(segment.Start, segment.Direction(), ellipsoid))
}

// lineEllipsoid maps the line into the frame where the ellipsoid is the unit
// sphere. Parameters are preserved by the linear map.
func lineEllipsoid(start, direction mgl64.Vec3, ellipsoid shape.Ellipsoid) (Type, Interval) {
	worldToUnit := ellipsoid.InverseScaledBasis()
	p := worldToUnit.Mul3x1(start.Sub(ellipsoid.Center))
	d := worldToUnit.Mul3x1(direction)

	a := d.LenSqr()
	if a == 0 {
		return TypeNone, Invalid
	}
	b := 2 * d.Dot(p)
	c := p.LenSqr() - 1

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return TypeNone, Invalid
	}

	root := math.Sqrt(discriminant)
	interval := Interval{
		Min: (-b - root) / (2 * a),
		Max: (-b + root) / (2 * a),
	}

	// gradient of |Mx|² is Mᵀ M x
	unitToWorldNormal := worldToUnit.Transpose()
	interval.Normal[0] = unitOrZero(unitToWorldNormal.Mul3x1(p.Add(d.Mul(interval.Min))))
	interval.Normal[1] = unitOrZero(unitToWorldNormal.Mul3x1(p.Add(d.Mul(interval.Max))))
	return TypeOther, interval
}

// RayCylinder intersects a ray with a finite cylinder
func RayCylinder(ray Ray, cylinder shape.Cylinder) (Type, Interval) {
	return clipRay(lineCylinder(ray.Start, ray.Direction, cylinder))
}

// LineCylinder intersects a line with a finite cylinder
func LineCylinder(line Line, cylinder shape.Cylinder) (Type, Interval) {
	return lineCylinder(line.Origin, line.Direction, cylinder)
}

// SegmentCylinder intersects a segment with a finite cylinder, t in [0, 1]
func SegmentCylinder(segment shape.Segment, cylinder shape.Cylinder) (Type, Interval) {
	return clipSegment(lineCylinder(segment.Start, segment.Direction(), cylinder))
}

// lineCylinder is the infinite cylinder clipped by its two end cap planes
func lineCylinder(start, direction mgl64.Vec3, cylinder shape.Cylinder) (Type, Interval) {
	axis := cylinder.Axis()

	typ, interval := lineHalfSpaces(start, direction, capPlanes(cylinder.PointA, cylinder.PointB, axis))
	if !typ.Positive() {
		return TypeNone, Invalid
	}

	typ, tube := lineInfiniteCylinder(start, direction, cylinder.PointA, axis, cylinder.Radius, false)
	if !typ.Positive() {
		return TypeNone, Invalid
	}

	interval = interval.Intersection(tube)
	if !interval.IsValid() {
		return TypeNone, Invalid
	}
	return TypeOther, interval
}

// RayCapsule intersects a ray with a capsule
func RayCapsule(ray Ray, capsule shape.Capsule) (Type, Interval) {
	return clipRay(lineCapsule(ray.Start, ray.Direction, capsule))
}

// LineCapsule intersects a line with a capsule
func LineCapsule(line Line, capsule shape.Capsule) (Type, Interval) {
	return lineCapsule(line.Origin, line.Direction, capsule)
}

// SegmentCapsule intersects a segment with a capsule, t in [0, 1]
func SegmentCapsule(segment shape.Segment, capsule shape.Capsule) (Type, Interval) {
	return clipSegment(lineCapsule(segment.Start, segment.Direction(), capsule))
}

// lineCapsule unions the finite cylinder with both end cap spheres.
// The cylinder result is reset to Invalid on a miss so that it acts as the
// identity of the union and a hit on a cap alone still counts. Caps accept
// tangent hits so that a grazing ray reports a single point.
func lineCapsule(start, direction mgl64.Vec3, capsule shape.Capsule) (Type, Interval) {
	interval := Invalid

	axis, ok := safeAxis(capsule.PointA, capsule.PointB)
	if ok {
		typ, slab := lineHalfSpaces(start, direction, capPlanes(capsule.PointA, capsule.PointB, axis))
		if typ.Positive() {
			typ, tube := lineInfiniteCylinder(start, direction, capsule.PointA, axis, capsule.Radius, true)
			if typ.Positive() {
				interval = slab.Intersection(tube)
				// cap planes are not part of the capsule surface
				interval.Normal = tube.Normal
			}
		}
		if !interval.IsValid() {
			interval = Invalid
		}
	}

	for _, center := range [2]mgl64.Vec3{capsule.PointA, capsule.PointB} {
		if typ, sphere := lineSphere(start, direction, center, capsule.Radius, true); typ.Positive() {
			interval = interval.Union(sphere)
		}
	}

	if !interval.IsValid() {
		return TypeNone, Invalid
	}
	return TypeOther, interval
}

// lineInfiniteCylinder solves the distance-to-axis quadratic in the plane
// perpendicular to axis. A line parallel to the axis yields Infinite when it
// runs inside the cylinder.
func lineInfiniteCylinder(start, direction, pointOnAxis, axis mgl64.Vec3, radius float64, tangentHit bool) (Type, Interval) {
	relative := start.Sub(pointOnAxis)
	directionDotAxis := direction.Dot(axis)
	startDotAxis := relative.Dot(axis)

	a := direction.LenSqr() - directionDotAxis*directionDotAxis
	c := relative.LenSqr() - radius*radius - startDotAxis*startDotAxis

	if math.Abs(a) < CylinderEpsilon*direction.LenSqr() {
		if c > 0 {
			return TypeNone, Invalid
		}
		return TypeOther, Infinite
	}

	b := relative.Dot(direction) - startDotAxis*directionDotAxis
	discriminant := b*b - a*c
	if discriminant < 0 || (discriminant == 0 && !tangentHit) {
		return TypeNone, Invalid
	}

	root := math.Sqrt(discriminant)
	interval := Interval{
		Min: (-b - root) / a,
		Max: (-b + root) / a,
	}

	radial := func(t float64) mgl64.Vec3 {
		v := relative.Add(direction.Mul(t))
		return unitOrZero(v.Sub(axis.Mul(v.Dot(axis))))
	}
	interval.Normal[0] = radial(interval.Min)
	interval.Normal[1] = radial(interval.Max)
	return TypeOther, interval
}

// RayEllipticalCylinder intersects a ray with an elliptical cylinder
func RayEllipticalCylinder(ray Ray, cylinder shape.EllipticalCylinder) (Type, Interval) {
	return clipRay(lineEllipticalCylinder(ray.Start, ray.Direction, cylinder))
}

// LineEllipticalCylinder intersects a line with an elliptical cylinder
func LineEllipticalCylinder(line Line, cylinder shape.EllipticalCylinder) (Type, Interval) {
	return lineEllipticalCylinder(line.Origin, line.Direction, cylinder)
}

// SegmentEllipticalCylinder intersects a segment with an elliptical cylinder, t in [0, 1]
func SegmentEllipticalCylinder(segment shape.Segment, cylinder shape.EllipticalCylinder) (Type, Interval) {
	return clipSegment(lineEllipticalCylinder(segment.Start, segment.Direction(), cylinder))
}

// lineEllipticalCylinder scales the cross section to the unit circle, which
// preserves line parameters, then reuses the circular cylinder solve
func lineEllipticalCylinder(start, direction mgl64.Vec3, cylinder shape.EllipticalCylinder) (Type, Interval) {
	xAxis, yAxis, zAxis := cylinder.Basis.Cols()
	scale := func(v mgl64.Vec3) mgl64.Vec3 {
		return mgl64.Vec3{
			v.Dot(xAxis) / cylinder.MajorRadius,
			v.Dot(yAxis),
			v.Dot(zAxis) / cylinder.MinorRadius,
		}
	}

	localStart := scale(start.Sub(cylinder.Center))
	localDirection := scale(direction)

	top := mgl64.Vec3{0, cylinder.HalfHeight, 0}
	unit := shape.Cylinder{PointA: top.Mul(-1), PointB: top, Radius: 1}
	typ, interval := lineCylinder(localStart, localDirection, unit)
	if !typ.Positive() {
		return typ, interval
	}

	// normals go back through the inverse transpose of the scaling
	toWorld := func(n mgl64.Vec3) mgl64.Vec3 {
		if n == (mgl64.Vec3{}) {
			return n
		}
		return unitOrZero(xAxis.Mul(n.X() / cylinder.MajorRadius).
			Add(yAxis.Mul(n.Y())).
			Add(zAxis.Mul(n.Z() / cylinder.MinorRadius)))
	}
	interval.Normal[0] = toWorld(interval.Normal[0])
	interval.Normal[1] = toWorld(interval.Normal[1])
	return typ, interval
}

// capPlanes returns the two outward facing end cap planes of the segment a-b
func capPlanes(a, b, axis mgl64.Vec3) []shape.Plane {
	return []shape.Plane{
		{Normal: axis, Distance: axis.Dot(b)},
		{Normal: axis.Mul(-1), Distance: -axis.Dot(a)},
	}
}

// lineHalfSpaces intersects the half-spaces behind each plane. A line parallel
// to a plane is kept only if it runs behind it.
func lineHalfSpaces(start, direction mgl64.Vec3, planes []shape.Plane) (Type, Interval) {
	interval := Infinite
	for _, plane := range planes {
		typ, halfSpace := linePlane(start, direction, plane, ParallelEpsilon*math.Sqrt(direction.LenSqr()))
		if !typ.Positive() {
			if plane.SignedDistance(start) > 0 {
				return TypeNone, Invalid
			}
			continue
		}

		interval = interval.Intersection(halfSpace)
		if !interval.IsValid() {
			return TypeNone, Invalid
		}
	}
	return TypeOther, interval
}

func safeAxis(a, b mgl64.Vec3) (mgl64.Vec3, bool) {
	axis := b.Sub(a)
	if axis.LenSqr() == 0 {
		return mgl64.Vec3{}, false
	}
	return axis.Normalize(), true
}
