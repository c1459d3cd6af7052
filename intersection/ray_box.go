package intersection

import (
	"math"

	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// slabEpsilon is the direction component under which a ray is parallel to a slab
const slabEpsilon = 1e-12

// RayAABB intersects a ray with an axis-aligned box using the slab test
func RayAABB(ray Ray, aabb shape.AABB) (Type, Interval) {
	return clipRay(lineAABB(ray.Start, ray.Direction, aabb))
}

// LineAABB intersects a line with an axis-aligned box
func LineAABB(line Line, aabb shape.AABB) (Type, Interval) {
	return lineAABB(line.Origin, line.Direction, aabb)
}

// SegmentAABB intersects a segment with an axis-aligned box, t in [0, 1]
func SegmentAABB(segment shape.Segment, aabb shape.AABB) (Type, Interval) {
	return clipSegment(lineAABB(segment.Start, segment.Direction(), aabb))
}

func lineAABB(start, direction mgl64.Vec3, aabb shape.AABB) (Type, Interval) {
	assertf(aabb.IsValid(), "inverted AABB bounds %v %v", aabb.Min, aabb.Max)
	return slab(start, direction, aabb.Min, aabb.Max)
}

// slab shrinks a running [tMin, tMax] against the three slabs of the box,
// exiting as soon as the interval becomes empty
func slab(start, direction, boxMin, boxMax mgl64.Vec3) (Type, Interval) {
	interval := Infinite

	for i := 0; i < 3; i++ {
		if math.Abs(direction[i]) < slabEpsilon {
			// Parallel to the slab: no hit unless the start lies within it
			if start[i] < boxMin[i] || start[i] > boxMax[i] {
				return TypeNone, Invalid
			}
			continue
		}

		inverse := 1.0 / direction[i]
		tNear := (boxMin[i] - start[i]) * inverse
		tFar := (boxMax[i] - start[i]) * inverse

		var nearNormal, farNormal mgl64.Vec3
		nearNormal[i] = -1
		farNormal[i] = 1
		if tNear > tFar {
			tNear, tFar = tFar, tNear
			nearNormal, farNormal = farNormal, nearNormal
		}

		if tNear > interval.Min {
			interval.Min = tNear
			interval.Normal[0] = nearNormal
		}
		if tFar < interval.Max {
			interval.Max = tFar
			interval.Normal[1] = farNormal
		}

		if interval.Min > interval.Max {
			return TypeNone, Invalid
		}
	}

	return TypeOther, interval
}

// RayOBB intersects a ray with an oriented box
func RayOBB(ray Ray, obb shape.OBB) (Type, Interval) {
	return clipRay(lineOBB(ray.Start, ray.Direction, obb))
}

// LineOBB intersects a line with an oriented box
func LineOBB(line Line, obb shape.OBB) (Type, Interval) {
	return lineOBB(line.Origin, line.Direction, obb)
}

// SegmentOBB intersects a segment with an oriented box, t in [0, 1]
func SegmentOBB(segment shape.Segment, obb shape.OBB) (Type, Interval) {
	return clipSegment(lineOBB(segment.Start, segment.Direction(), obb))
}

func lineOBB(start, direction mgl64.Vec3, obb shape.OBB) (Type, Interval) {
	// The slab test runs in the box frame, where parameters are unchanged
	localStart := obb.ToLocal(start)
	localDirection := obb.Basis.Transpose().Mul3x1(direction)

	typ, interval := slab(localStart, localDirection, obb.HalfExtents.Mul(-1), obb.HalfExtents)
	if !typ.Positive() {
		return typ, interval
	}

	interval.Normal[0] = obb.Basis.Mul3x1(interval.Normal[0])
	interval.Normal[1] = obb.Basis.Mul3x1(interval.Normal[1])
	return typ, interval
}

// RayPlane intersects a ray with the half-space behind a plane
func RayPlane(ray Ray, plane shape.Plane) (Type, Interval) {
	return DefaultRayConfig().RayPlane(ray, plane)
}

// LinePlane intersects a line with the half-space behind a plane
func LinePlane(line Line, plane shape.Plane) (Type, Interval) {
	return DefaultRayConfig().LinePlane(line, plane)
}

// SegmentPlane intersects a segment with the half-space behind a plane, t in [0, 1]
func SegmentPlane(segment shape.Segment, plane shape.Plane) (Type, Interval) {
	return DefaultRayConfig().SegmentPlane(segment, plane)
}

// RayPlane intersects a ray with the half-space behind a plane.
// Rays within ParallelEpsilon of the plane never hit it.
func (c RayConfig) RayPlane(ray Ray, plane shape.Plane) (Type, Interval) {
	return clipRay(linePlane(ray.Start, ray.Direction, plane, c.ParallelEpsilon))
}

func (c RayConfig) LinePlane(line Line, plane shape.Plane) (Type, Interval) {
	return linePlane(line.Origin, line.Direction, plane, c.ParallelEpsilon)
}

func (c RayConfig) SegmentPlane(segment shape.Segment, plane shape.Plane) (Type, Interval) {
	return clipSegment(linePlane(segment.Start, segment.Direction(), plane, c.ParallelEpsilon))
}

// linePlane returns the half-infinite interval of parameters behind the plane
func linePlane(start, direction mgl64.Vec3, plane shape.Plane, epsilon float64) (Type, Interval) {
	denominator := direction.Dot(plane.Normal)
	if math.Abs(denominator) <= epsilon {
		return TypeNone, Invalid
	}

	t := (plane.Distance - start.Dot(plane.Normal)) / denominator
	if denominator < 0 {
		// Entering the back half-space
		return TypeOther, Interval{Min: t, Max: math.MaxFloat64, Normal: [2]mgl64.Vec3{plane.Normal}}
	}
	return TypeOther, Interval{Min: -math.MaxFloat64, Max: t, Normal: [2]mgl64.Vec3{{}, plane.Normal}}
}

// RayFrustum intersects a ray with a frustum
func RayFrustum(ray Ray, frustum shape.Frustum) (Type, Interval) {
	return clipRay(lineFrustum(ray.Start, ray.Direction, frustum))
}

// LineFrustum intersects a line with a frustum
func LineFrustum(line Line, frustum shape.Frustum) (Type, Interval) {
	return lineFrustum(line.Origin, line.Direction, frustum)
}

// SegmentFrustum intersects a segment with a frustum, t in [0, 1]
func SegmentFrustum(segment shape.Segment, frustum shape.Frustum) (Type, Interval) {
	return clipSegment(lineFrustum(segment.Start, segment.Direction(), frustum))
}

// lineFrustum intersects the half-spaces behind the six outward facing planes
func lineFrustum(start, direction mgl64.Vec3, frustum shape.Frustum) (Type, Interval) {
	return lineHalfSpaces(start, direction, frustum.Planes[:])
}
