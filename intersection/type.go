// Package intersection implements the analytic intersection tests of the kernel.
//
// Ray, line and segment queries against every primitive are expressed with
// Interval arithmetic: a test returns the range of parameters t for which
// start + t*direction lies on or inside the shape. Composite shapes are
// boolean combinations of simpler ones (a finite cylinder is an infinite
// cylinder intersected with two half-spaces, a capsule adds the union of its
// two end-cap spheres).
//
// The package also holds point containment tests, closest-point queries and
// the OBB-OBB separating axis test with contact manifold generation.
//
// Geometric misses are ordinary results: every query returns a Type and
// callers must check Type.Positive before reading the accompanying Interval,
// IntersectionPoint or Manifold, which may be partially written on a miss.
package intersection

import "fmt"

// Type classifies the result of a query.
// Negative values mean that no usable geometry was produced.
type Type int8

const (
	TypeNone    Type = -3
	TypeOutside Type = -2

	// TypeUnimplemented is never returned by this package. It is kept so that
	// callers dispatching on foreign results can recognise it.
	TypeUnimplemented Type = 0
)

const (
	TypePoint Type = iota + 1
	TypeEdge
	TypeTriangle
	TypeFace
	TypeSegment
	TypeRay
	TypeLine
	TypePolygon
	TypeInside
	TypeOther

	// Feature pairs produced by manifold classification, first shape then second
	TypePointFace
	TypeFacePoint
	TypeEdgeEdge
	TypeEdgeFace
	TypeFaceEdge
	TypeFaceFace
)

// Swapped returns the feature pair seen from the second shape
func (t Type) Swapped() Type {
	switch t {
	case TypePointFace:
		return TypeFacePoint
	case TypeFacePoint:
		return TypePointFace
	case TypeEdgeFace:
		return TypeFaceEdge
	case TypeFaceEdge:
		return TypeEdgeFace
	}
	return t
}

// Positive reports whether the query produced usable geometry
func (t Type) Positive() bool {
	return t > TypeUnimplemented
}

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeOutside:
		return "Outside"
	case TypeUnimplemented:
		return "Unimplemented"
	case TypePoint:
		return "Point"
	case TypeEdge:
		return "Edge"
	case TypeTriangle:
		return "Triangle"
	case TypeFace:
		return "Face"
	case TypeSegment:
		return "Segment"
	case TypeRay:
		return "Ray"
	case TypeLine:
		return "Line"
	case TypePolygon:
		return "Polygon"
	case TypeInside:
		return "Inside"
	case TypeOther:
		return "Other"
	case TypePointFace:
		return "PointFace"
	case TypeFacePoint:
		return "FacePoint"
	case TypeEdgeEdge:
		return "EdgeEdge"
	case TypeEdgeFace:
		return "EdgeFace"
	case TypeFaceEdge:
		return "FaceEdge"
	case TypeFaceFace:
		return "FaceFace"
	}
	return fmt.Sprintf("Type(%d)", int8(t))
}
