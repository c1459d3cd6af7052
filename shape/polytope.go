package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Segment is the finite segment from Start to End
type Segment struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
}

func (s Segment) GetCenter() mgl64.Vec3 {
	return s.Start.Add(s.End).Mul(0.5)
}

func (s Segment) Support(direction mgl64.Vec3) mgl64.Vec3 {
	if s.End.Dot(direction) > s.Start.Dot(direction) {
		return s.End
	}
	return s.Start
}

// Direction returns End - Start, unnormalized
func (s Segment) Direction() mgl64.Vec3 {
	return s.End.Sub(s.Start)
}

// Triangle is defined by its three vertices
type Triangle struct {
	P0, P1, P2 mgl64.Vec3
}

func (t Triangle) GetCenter() mgl64.Vec3 {
	return t.P0.Add(t.P1).Add(t.P2).Mul(1.0 / 3.0)
}

func (t Triangle) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return furthestPoint([]mgl64.Vec3{t.P0, t.P1, t.P2}, direction)
}

// Normal returns the unnormalized face normal (P1-P0) x (P2-P0)
func (t Triangle) Normal() mgl64.Vec3 {
	return t.P1.Sub(t.P0).Cross(t.P2.Sub(t.P0))
}

// Tetrahedron is defined by its four vertices, in any winding
type Tetrahedron struct {
	Points [4]mgl64.Vec3
}

func (t Tetrahedron) GetCenter() mgl64.Vec3 {
	sum := mgl64.Vec3{}
	for _, p := range t.Points {
		sum = sum.Add(p)
	}
	return sum.Mul(0.25)
}

func (t Tetrahedron) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return furthestPoint(t.Points[:], direction)
}

// PointSet is the convex hull of a set of points
type PointSet struct {
	Points []mgl64.Vec3
}

func (p PointSet) GetCenter() mgl64.Vec3 {
	if len(p.Points) == 0 {
		return mgl64.Vec3{}
	}

	sum := mgl64.Vec3{}
	for _, point := range p.Points {
		sum = sum.Add(point)
	}
	return sum.Mul(1.0 / float64(len(p.Points)))
}

func (p PointSet) Support(direction mgl64.Vec3) mgl64.Vec3 {
	if len(p.Points) == 0 {
		return mgl64.Vec3{}
	}
	return furthestPoint(p.Points, direction)
}

// Plane represents an infinite plane
// The plane is defined by the equation: Normal · p = Distance
// where Normal is the plane's normal vector (must be normalized)
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// NewPlane builds the plane with the given normal passing through point
func NewPlane(normal, point mgl64.Vec3) Plane {
	normal = normal.Normalize()
	return Plane{Normal: normal, Distance: normal.Dot(point)}
}

// PlaneFromPoints builds the plane through a, b and c, normal following the
// counter-clockwise winding. It returns false for collinear points.
func PlaneFromPoints(a, b, c mgl64.Vec3) (Plane, bool) {
	normal, ok := safeNormalize(b.Sub(a).Cross(c.Sub(a)))
	if !ok {
		return Plane{}, false
	}
	return Plane{Normal: normal, Distance: normal.Dot(a)}, true
}

// GetCenter returns the point of the plane closest to the origin
func (p Plane) GetCenter() mgl64.Vec3 {
	return p.Normal.Mul(p.Distance)
}

// SignedDistance is positive on the side the normal points to
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) - p.Distance
}

// ErrDegenerateFrustum is returned for corners that do not span a volume
var ErrDegenerateFrustum = errors.New("shape: degenerate frustum")

// Frustum is a convex volume bounded by six planes whose normals point outward.
// Corners holds the near face (0-3) then the far face (4-7).
type Frustum struct {
	Planes  [6]Plane
	Corners [8]mgl64.Vec3
}

const (
	FrustumNear = iota
	FrustumFar
	FrustumLeft
	FrustumRight
	FrustumBottom
	FrustumTop
)

// NewPerspectiveFrustum builds the view volume of a perspective camera.
// fovY is the full vertical field of view in radians.
func NewPerspectiveFrustum(position, forward, up mgl64.Vec3, fovY, aspect, near, far float64) (Frustum, error) {
	f := forward.Normalize()
	r := f.Cross(up).Normalize()
	u := r.Cross(f)

	nearCenter := position.Add(f.Mul(near))
	farCenter := position.Add(f.Mul(far))
	tanHalf := math.Tan(fovY * 0.5)
	nh, nw := tanHalf*near, tanHalf*near*aspect
	fh, fw := tanHalf*far, tanHalf*far*aspect

	corners := [8]mgl64.Vec3{
		nearCenter.Sub(r.Mul(nw)).Sub(u.Mul(nh)),
		nearCenter.Add(r.Mul(nw)).Sub(u.Mul(nh)),
		nearCenter.Add(r.Mul(nw)).Add(u.Mul(nh)),
		nearCenter.Sub(r.Mul(nw)).Add(u.Mul(nh)),
		farCenter.Sub(r.Mul(fw)).Sub(u.Mul(fh)),
		farCenter.Add(r.Mul(fw)).Sub(u.Mul(fh)),
		farCenter.Add(r.Mul(fw)).Add(u.Mul(fh)),
		farCenter.Sub(r.Mul(fw)).Add(u.Mul(fh)),
	}

	return NewFrustumFromCorners(corners)
}

// NewFrustumFromCorners builds the bounding planes of the hexahedron whose near
// face is corners[0:4] and far face corners[4:8], both in the same rotational order.
// It fails with ErrDegenerateFrustum when the corners of a face are collinear.
func NewFrustumFromCorners(corners [8]mgl64.Vec3) (Frustum, error) {
	frustum := Frustum{Corners: corners}
	center := frustum.GetCenter()

	faces := [6][3]int{
		FrustumNear:   {0, 1, 2},
		FrustumFar:    {4, 6, 5},
		FrustumLeft:   {0, 3, 7},
		FrustumRight:  {1, 5, 6},
		FrustumBottom: {0, 4, 5},
		FrustumTop:    {3, 2, 6},
	}
	for i, face := range faces {
		plane, ok := PlaneFromPoints(corners[face[0]], corners[face[1]], corners[face[2]])
		if !ok {
			return Frustum{}, fmt.Errorf("%w: face %d", ErrDegenerateFrustum, i)
		}
		if plane.SignedDistance(center) > 0 {
			plane = Plane{Normal: plane.Normal.Mul(-1), Distance: -plane.Distance}
		}
		frustum.Planes[i] = plane
	}

	return frustum, nil
}

func (f Frustum) GetCenter() mgl64.Vec3 {
	sum := mgl64.Vec3{}
	for _, c := range f.Corners {
		sum = sum.Add(c)
	}
	return sum.Mul(1.0 / 8.0)
}

func (f Frustum) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return furthestPoint(f.Corners[:], direction)
}
