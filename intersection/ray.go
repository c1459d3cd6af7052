package intersection

import (
	"math"

	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// Ray is the half line Start + t*Direction for t >= 0.
// Direction does not need to be normalized; intervals are expressed in its units.
type Ray struct {
	Start     mgl64.Vec3
	Direction mgl64.Vec3
}

// Line is the infinite line Origin + t*Direction
type Line struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at parameter t
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Start.Add(r.Direction.Mul(t))
}

// At returns the point at parameter t
func (l Line) At(t float64) mgl64.Vec3 {
	return l.Origin.Add(l.Direction.Mul(t))
}

// Point converts an interval result into point form. It is meant to be
// called directly on the result of a Ray test:
//
//	typ, hit := ray.Point(intersection.RaySphere(ray, sphere))
//
// A ray starting inside the shape, or touching it at a single parameter,
// yields TypePoint at the exit (or touch) point. A ray crossing the shape
// yields TypeSegment with T at the entry. A ray that never leaves an
// unbounded shape yields TypeInside at its start.
func (r Ray) Point(typ Type, interval Interval) (Type, IntersectionPoint) {
	if !typ.Positive() || !interval.IsValid() {
		return TypeNone, IntersectionPoint{}
	}
	return pointForm(r.Start, r.Direction, interval, interval.Min > 0)
}

// Point converts an interval result into point form, see Ray.Point.
// Lines have no start, so only infinite endpoints are dropped.
func (l Line) Point(typ Type, interval Interval) (Type, IntersectionPoint) {
	if !typ.Positive() || !interval.IsValid() {
		return TypeNone, IntersectionPoint{}
	}
	return pointForm(l.Origin, l.Direction, interval, finite(interval.Min))
}

// SegmentPoint converts the interval result of a Segment test into point
// form, see Ray.Point. Parameters clipped at 0 or 1 are segment endpoints
// lying inside the shape, not surface points.
func SegmentPoint(segment shape.Segment, typ Type, interval Interval) (Type, IntersectionPoint) {
	if !typ.Positive() || !interval.IsValid() {
		return TypeNone, IntersectionPoint{}
	}

	direction := segment.Direction()
	hasEntry := interval.Min > 0
	hasExit := interval.Max < 1
	switch {
	case hasEntry && hasExit && interval.Min < interval.Max:
		return TypeSegment, IntersectionPoint{
			Points: [2]mgl64.Vec3{
				segment.Start.Add(direction.Mul(interval.Min)),
				segment.Start.Add(direction.Mul(interval.Max)),
			},
			Depth: interval.Min,
		}
	case hasEntry:
		return TypePoint, singlePoint(segment.Start.Add(direction.Mul(interval.Min)), interval.Min)
	case hasExit:
		return TypePoint, singlePoint(segment.Start.Add(direction.Mul(interval.Max)), interval.Max)
	}
	return TypeInside, singlePoint(segment.Start, 0)
}

func pointForm(start, direction mgl64.Vec3, interval Interval, hasEntry bool) (Type, IntersectionPoint) {
	hasExit := finite(interval.Max)
	switch {
	case hasEntry && hasExit && interval.Min < interval.Max:
		return TypeSegment, IntersectionPoint{
			Points: [2]mgl64.Vec3{
				start.Add(direction.Mul(interval.Min)),
				start.Add(direction.Mul(interval.Max)),
			},
			Depth: interval.Min,
		}
	case hasEntry:
		return TypePoint, singlePoint(start.Add(direction.Mul(interval.Min)), interval.Min)
	case hasExit:
		return TypePoint, singlePoint(start.Add(direction.Mul(interval.Max)), interval.Max)
	}
	return TypeInside, singlePoint(start, 0)
}

// clipRay restricts a line result to t >= 0
func clipRay(typ Type, interval Interval) (Type, Interval) {
	return clipResult(typ, interval, 0, math.MaxFloat64)
}

// clipSegment restricts a line result to t in [0, 1]
func clipSegment(typ Type, interval Interval) (Type, Interval) {
	return clipResult(typ, interval, 0, 1)
}

func clipResult(typ Type, interval Interval, lo, hi float64) (Type, Interval) {
	if !typ.Positive() {
		return TypeNone, Invalid
	}
	if !interval.IsValid() || interval.Max < lo || interval.Min > hi {
		return TypeNone, Invalid
	}
	return typ, interval.Clip(lo, hi)
}

// unitOrZero normalizes v, or returns the zero vector for a degenerate input
func unitOrZero(v mgl64.Vec3) mgl64.Vec3 {
	lengthSq := v.LenSqr()
	if lengthSq == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1.0 / math.Sqrt(lengthSq))
}
