// Package shape holds the geometric primitives consumed by the intersection,
// mpr and mesh packages.
//
// Every primitive is a plain value type in world space. Convex primitives also
// implement Convex, the support-function abstraction that lets MPR and the
// generic containment tests work on any shape without knowing its layout.
package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is anything the narrow phase accepts: convex shapes and planes
type Shape interface {
	// GetCenter returns a point strictly inside a convex shape, on the
	// surface of a plane
	GetCenter() mgl64.Vec3
}

// Convex is the interface that every convex shape usable by MPR implements
type Convex interface {
	Shape
	// Support returns the point of the shape furthest along direction, in world space
	Support(direction mgl64.Vec3) mgl64.Vec3
}

// SupportFunc adapts a plain support closure into a Convex shape
type SupportFunc struct {
	Center mgl64.Vec3
	Func   func(direction mgl64.Vec3) mgl64.Vec3
}

func (s SupportFunc) GetCenter() mgl64.Vec3 {
	return s.Center
}

func (s SupportFunc) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return s.Func(direction)
}

// SupportShape wraps a convex shape with an optional per-frame delta transform.
// Support answers for the start-of-frame pose, SupportDelta for the pose after
// the delta has been applied around the shape's center.
type SupportShape struct {
	Shape Convex
	Delta Transform
}

// NewSupportShape wraps shape with no motion
func NewSupportShape(shape Convex) SupportShape {
	return SupportShape{Shape: shape, Delta: IdentityTransform()}
}

// NewMovingSupportShape wraps shape with a delta translation and rotation
func NewMovingSupportShape(shape Convex, deltaPosition mgl64.Vec3, deltaRotation mgl64.Quat) SupportShape {
	return SupportShape{Shape: shape, Delta: NewTransform(deltaPosition, deltaRotation)}
}

func (s SupportShape) GetCenter() mgl64.Vec3 {
	return s.Shape.GetCenter()
}

func (s SupportShape) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return s.Shape.Support(direction)
}

// Translation returns the delta position applied over the frame
func (s SupportShape) Translation() mgl64.Vec3 {
	return s.Delta.Position
}

// SupportDelta returns the support point of the shape after the delta transform
// has been applied
func (s SupportShape) SupportDelta(direction mgl64.Vec3) mgl64.Vec3 {
	center := s.Shape.GetCenter()
	localDirection := s.Delta.InverseTransformDirection(direction)
	point := s.Shape.Support(localDirection).Sub(center)

	return center.Add(s.Delta.TransformDirection(point)).Add(s.Delta.Position)
}

// safeNormalize returns the unit vector along v, or false when v is too short to normalize
func safeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	lengthSq := v.LenSqr()
	if lengthSq < 1e-24 {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1.0 / math.Sqrt(lengthSq)), true
}

// furthestPoint returns the point of points with the largest projection on direction
func furthestPoint(points []mgl64.Vec3, direction mgl64.Vec3) mgl64.Vec3 {
	best := points[0]
	bestDot := best.Dot(direction)
	for _, p := range points[1:] {
		if d := p.Dot(direction); d > bestDot {
			best, bestDot = p, d
		}
	}
	return best
}
