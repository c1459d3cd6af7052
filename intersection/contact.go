package intersection

import (
	"cmp"
	"math"
	"slices"

	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// coincidentNormal is reported when the two closest points are the same
var coincidentNormal = mgl64.Vec3{0, 0, 1}

// SphereSphere tests two spheres. The manifold, when not nil, receives one
// point per shape on the line of centers, the normal pointing from a to b.
func SphereSphere(a, b shape.Sphere, manifold *Manifold) Type {
	return roundContact(a.Center, a.Radius, b.Center, b.Radius, manifold)
}

// CapsuleSphere tests a capsule against a sphere, normal from the capsule
func CapsuleSphere(capsule shape.Capsule, sphere shape.Sphere, manifold *Manifold) Type {
	core, _ := ClosestPointOnSegment(capsuleCore(capsule), sphere.Center)
	return roundContact(core, capsule.Radius, sphere.Center, sphere.Radius, manifold)
}

// CapsuleCapsule tests two capsules through the closest points of their cores.
// Parallel overlapping cores yield a single point.
func CapsuleCapsule(a, b shape.Capsule, manifold *Manifold) Type {
	coreA, coreB, _, _ := ClosestPointsOfTwoSegments(capsuleCore(a), capsuleCore(b))
	return roundContact(coreA, a.Radius, coreB, b.Radius, manifold)
}

// OBBSphere tests a box against a sphere, normal from the box. A sphere
// center outside the box yields TypePoint, inside TypeInside with the normal
// of the closest face.
func OBBSphere(obb shape.OBB, sphere shape.Sphere, manifold *Manifold) Type {
	kind, closest := ClosestPointOnOBB(obb, sphere.Center)
	if kind != TypeInside {
		return roundContact(closest, 0, sphere.Center, sphere.Radius, manifold)
	}
	if manifold == nil {
		return TypeInside
	}

	local := obb.ToLocal(sphere.Center)
	axis, gap := 0, math.Inf(1)
	for i := range 3 {
		if d := obb.HalfExtents[i] - math.Abs(local[i]); d < gap {
			axis, gap = i, d
		}
	}

	normal := obb.Axis(axis)
	if local[axis] < 0 {
		normal = normal.Mul(-1)
	}

	manifold.Normal = normal
	manifold.Points[0] = IntersectionPoint{
		Points: [2]mgl64.Vec3{sphere.Center.Add(normal.Mul(gap)), sphere.Center.Sub(normal.Mul(sphere.Radius))},
		Depth:  gap + sphere.Radius,
	}
	manifold.PointCount = 1
	return TypeInside
}

// PlaneSphere tests a sphere against the solid half-space behind the plane.
// The normal is the plane normal.
func PlaneSphere(plane shape.Plane, sphere shape.Sphere, manifold *Manifold) Type {
	distance := plane.SignedDistance(sphere.Center)
	if distance > sphere.Radius {
		return TypeNone
	}
	if manifold == nil {
		return TypeFacePoint
	}

	manifold.Normal = plane.Normal
	manifold.Points[0] = planePoint(plane, sphere.Center, sphere.Radius)
	manifold.PointCount = 1
	return TypeFacePoint
}

// PlaneCapsule tests a capsule against the solid half-space behind the
// plane. Each end cap below the plane surface gives one point.
func PlaneCapsule(plane shape.Plane, capsule shape.Capsule, manifold *Manifold) Type {
	return planeContact(plane, []mgl64.Vec3{capsule.PointA, capsule.PointB}, capsule.Radius, manifold)
}

// PlaneOBB tests a box against the solid half-space behind the plane. Every
// corner below the plane is a contact point, deepest first, up to the
// manifold capacity.
func PlaneOBB(plane shape.Plane, obb shape.OBB, manifold *Manifold) Type {
	corners := obb.Corners()
	return planeContact(plane, corners[:], 0, manifold)
}

// PlaneConvex tests any convex shape against the solid half-space behind the
// plane. The deepest support point is the only contact point.
func PlaneConvex(plane shape.Plane, convex shape.Convex, manifold *Manifold) Type {
	deepest := convex.Support(plane.Normal.Mul(-1))
	return planeContact(plane, []mgl64.Vec3{deepest}, 0, manifold)
}

// planeContact keeps the vertices within radius of the half-space, classified
// by their count: one point, an edge or a face resting on the plane
func planeContact(plane shape.Plane, vertices []mgl64.Vec3, radius float64, manifold *Manifold) Type {
	points := make([]IntersectionPoint, 0, len(vertices))
	for _, vertex := range vertices {
		if plane.SignedDistance(vertex) <= radius {
			points = append(points, planePoint(plane, vertex, radius))
		}
	}

	var kind Type
	switch len(points) {
	case 0:
		return TypeNone
	case 1:
		kind = TypeFacePoint
	case 2:
		kind = TypeFaceEdge
	default:
		kind = TypeFaceFace
	}
	if manifold == nil {
		return kind
	}

	slices.SortStableFunc(points, func(a, b IntersectionPoint) int {
		return cmp.Compare(b.Depth, a.Depth)
	})

	manifold.Normal = plane.Normal
	manifold.PointCount = copy(manifold.Points[:manifold.Capacity()], points)
	return kind
}

// planePoint pairs the projection of vertex on the plane with the deepest
// point of the ball of radius around it
func planePoint(plane shape.Plane, vertex mgl64.Vec3, radius float64) IntersectionPoint {
	distance := plane.SignedDistance(vertex)
	return IntersectionPoint{
		Points: [2]mgl64.Vec3{vertex.Sub(plane.Normal.Mul(distance)), vertex.Sub(plane.Normal.Mul(radius))},
		Depth:  radius - distance,
	}
}

// roundContact tests two balls, each given by its center and radius. A zero
// radius turns the ball into a point.
func roundContact(centerA mgl64.Vec3, radiusA float64, centerB mgl64.Vec3, radiusB float64, manifold *Manifold) Type {
	offset := centerB.Sub(centerA)
	radii := radiusA + radiusB
	distanceSq := offset.LenSqr()
	if distanceSq > radii*radii {
		return TypeNone
	}
	if manifold == nil {
		return TypePoint
	}

	distance := math.Sqrt(distanceSq)
	normal := coincidentNormal
	if distance > 0 {
		normal = offset.Mul(1 / distance)
	}

	manifold.Normal = normal
	manifold.Points[0] = IntersectionPoint{
		Points: [2]mgl64.Vec3{centerA.Add(normal.Mul(radiusA)), centerB.Sub(normal.Mul(radiusB))},
		Depth:  radii - distance,
	}
	manifold.PointCount = 1
	return TypePoint
}

func capsuleCore(capsule shape.Capsule) shape.Segment {
	return shape.Segment{Start: capsule.PointA, End: capsule.PointB}
}
