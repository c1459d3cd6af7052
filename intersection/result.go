package intersection

import "github.com/go-gl/mathgl/mgl64"

// MaxManifoldPoints is the hard capacity of a Manifold
const MaxManifoldPoints = 4

// IntersectionPoint is a point-level result.
// Points holds the point on the first and on the second shape; a single point
// result stores the same position twice.
type IntersectionPoint struct {
	Points [2]mgl64.Vec3
	// Depth is the penetration depth for contact queries and the ray
	// parameter for ray style queries.
	Depth float64
}

// T returns the ray parameter of a ray style result
func (p IntersectionPoint) T() float64 {
	return p.Depth
}

func singlePoint(point mgl64.Vec3, t float64) IntersectionPoint {
	return IntersectionPoint{Points: [2]mgl64.Vec3{point, point}, Depth: t}
}

// Manifold is a bounded set of contact points sharing one normal.
// Normal points from the first shape toward the second.
type Manifold struct {
	Points     [MaxManifoldPoints]IntersectionPoint
	Normal     mgl64.Vec3
	PointCount int
}

// NewManifold creates a manifold that accepts up to capacity points.
// Capacity is clamped to [1, MaxManifoldPoints].
func NewManifold(capacity int) *Manifold {
	return &Manifold{PointCount: min(max(capacity, 1), MaxManifoldPoints)}
}

// Capacity returns the number of points a generator may write, which is the
// PointCount requested when the manifold was created
func (m *Manifold) Capacity() int {
	if m.PointCount <= 0 {
		return MaxManifoldPoints
	}
	return min(m.PointCount, MaxManifoldPoints)
}

// PointAt returns the i-th contact point
func (m *Manifold) PointAt(i int) *IntersectionPoint {
	return &m.Points[i]
}

// Contacts returns the filled points
func (m *Manifold) Contacts() []IntersectionPoint {
	return m.Points[:m.PointCount]
}

// Flip swaps the roles of the two shapes: the normal is negated and every
// point pair exchanged
func (m *Manifold) Flip() {
	m.Normal = m.Normal.Mul(-1)
	for i := range m.PointCount {
		m.Points[i].Points[0], m.Points[i].Points[1] = m.Points[i].Points[1], m.Points[i].Points[0]
	}
}
