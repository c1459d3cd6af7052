package intersection

import (
	"math"

	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// RayTriangle intersects a ray with a triangle, see RayConfig.RayTriangle
func RayTriangle(ray Ray, triangle shape.Triangle) (Type, Interval) {
	return DefaultRayConfig().RayTriangle(ray, triangle)
}

// LineTriangle intersects a line with a triangle
func LineTriangle(line Line, triangle shape.Triangle) (Type, Interval) {
	return DefaultRayConfig().LineTriangle(line, triangle)
}

// SegmentTriangle intersects a segment with a triangle, t in [0, 1]
func SegmentTriangle(segment shape.Segment, triangle shape.Triangle) (Type, Interval) {
	return DefaultRayConfig().SegmentTriangle(segment, triangle)
}

// RayTriangle intersects a ray with a triangle. The result is the single
// parameter [t, t] where the ray crosses the triangle's plane, with the face
// normal turned against the ray. TriangleEpsilon fattens the triangle so that
// rays through a shared edge hit at least one of its neighbours.
func (c RayConfig) RayTriangle(ray Ray, triangle shape.Triangle) (Type, Interval) {
	return clipRay(c.lineTriangle(ray.Start, ray.Direction, triangle))
}

func (c RayConfig) LineTriangle(line Line, triangle shape.Triangle) (Type, Interval) {
	return c.lineTriangle(line.Origin, line.Direction, triangle)
}

func (c RayConfig) SegmentTriangle(segment shape.Segment, triangle shape.Triangle) (Type, Interval) {
	return clipSegment(c.lineTriangle(segment.Start, segment.Direction(), triangle))
}

func (c RayConfig) lineTriangle(start, direction mgl64.Vec3, triangle shape.Triangle) (Type, Interval) {
	normal := unitOrZero(triangle.Normal())
	if normal == (mgl64.Vec3{}) {
		return TypeNone, Invalid
	}

	rate := direction.Dot(normal)
	if math.Abs(rate) < c.ParallelEpsilon {
		return TypeNone, Invalid
	}

	t := (normal.Dot(triangle.P0) - normal.Dot(start)) / rate
	point := start.Add(direction.Mul(t))
	if PointTriangle(point, triangle, c.TriangleEpsilon) != TypeInside {
		return TypeNone, Invalid
	}

	if rate > 0 {
		normal = normal.Mul(-1)
	}
	return TypeOther, Interval{Min: t, Max: t, Normal: [2]mgl64.Vec3{normal, normal}}
}

// tetrahedronFaces lists the three vertices of each face followed by the
// opposite vertex
var tetrahedronFaces = [4][4]int{
	{0, 1, 2, 3},
	{1, 3, 2, 0},
	{3, 0, 2, 1},
	{0, 3, 1, 2},
}

// outwardFace returns the vertices of face i wound counter-clockwise when
// seen from outside the tetrahedron
func outwardFace(tetrahedron shape.Tetrahedron, i int) (a, b, c mgl64.Vec3) {
	face := tetrahedronFaces[i]
	a, b, c = tetrahedron.Points[face[0]], tetrahedron.Points[face[1]], tetrahedron.Points[face[2]]
	opposite := tetrahedron.Points[face[3]]
	if opposite.Sub(a).Dot(b.Sub(a).Cross(c.Sub(a))) > 0 {
		b, c = c, b
	}
	return a, b, c
}

// plucker holds the Plücker coordinates of a directed line
type plucker struct {
	direction mgl64.Vec3
	moment    mgl64.Vec3
}

func pluckerLine(from, to mgl64.Vec3) plucker {
	return plucker{direction: to.Sub(from), moment: to.Cross(from)}
}

// side is the permuted inner product: its sign tells on which side of p the
// line o passes
func (p plucker) side(o plucker) float64 {
	return p.direction.Dot(o.moment) + o.direction.Dot(p.moment)
}

// RayTetrahedron intersects a ray with a solid tetrahedron
func RayTetrahedron(ray Ray, tetrahedron shape.Tetrahedron) (Type, Interval) {
	return clipRay(lineTetrahedron(ray.Start, ray.Direction, tetrahedron))
}

// LineTetrahedron intersects a line with a solid tetrahedron
func LineTetrahedron(line Line, tetrahedron shape.Tetrahedron) (Type, Interval) {
	return lineTetrahedron(line.Origin, line.Direction, tetrahedron)
}

// SegmentTetrahedron intersects a segment with a solid tetrahedron, t in [0, 1]
func SegmentTetrahedron(segment shape.Segment, tetrahedron shape.Tetrahedron) (Type, Interval) {
	return clipSegment(lineTetrahedron(segment.Start, segment.Direction(), tetrahedron))
}

// lineTetrahedron classifies the line against the three edges of every face.
// A line passing all edges counter-clockwise enters through that face, all
// clockwise leaves through it. The signed edge products are the barycentric
// weights of the crossing point.
func lineTetrahedron(start, direction mgl64.Vec3, tetrahedron shape.Tetrahedron) (Type, Interval) {
	lengthSq := direction.LenSqr()
	if lengthSq == 0 {
		return TypeNone, Invalid
	}

	line := pluckerLine(start, start.Add(direction))
	interval := Interval{}
	entered, exited := false, false

	for i := range tetrahedronFaces {
		if entered && exited {
			break
		}

		a, b, c := outwardFace(tetrahedron, i)
		sides := [3]float64{
			line.side(pluckerLine(a, b)),
			line.side(pluckerLine(b, c)),
			line.side(pluckerLine(c, a)),
		}

		entering := sides[0] > 0 && sides[1] > 0 && sides[2] > 0
		leaving := sides[0] < 0 && sides[1] < 0 && sides[2] < 0
		if (!entering || entered) && (!leaving || exited) {
			continue
		}

		sum := sides[0] + sides[1] + sides[2]
		point := a.Mul(sides[1] / sum).Add(b.Mul(sides[2] / sum)).Add(c.Mul(sides[0] / sum))
		t := point.Sub(start).Dot(direction) / lengthSq
		normal := unitOrZero(b.Sub(a).Cross(c.Sub(a)))

		if entering {
			interval.Min = t
			interval.Normal[0] = normal
			entered = true
		} else {
			interval.Max = t
			interval.Normal[1] = normal
			exited = true
		}
	}

	switch {
	case entered && exited:
		return TypeOther, interval
	case entered:
		// grazing an edge or a vertex
		interval.Max, interval.Normal[1] = interval.Min, interval.Normal[0]
		return TypeOther, interval
	case exited:
		interval.Min, interval.Normal[0] = interval.Max, interval.Normal[1]
		return TypeOther, interval
	}
	return TypeNone, Invalid
}

// RayTorus intersects a ray with a solid torus. The interval is the first span
// of the ray inside the tube, so Min is the smallest non-negative root of the
// torus quartic when the ray starts outside.
func RayTorus(ray Ray, torus shape.Torus) (Type, Interval) {
	spans, n := lineTorusSpans(ray.Start, ray.Direction, torus)
	for _, span := range spans[:n] {
		if span.Max >= 0 {
			return clipRay(TypeOther, span)
		}
	}
	return TypeNone, Invalid
}

// LineTorus intersects a line with a solid torus, returning the first span
// along the line direction
func LineTorus(line Line, torus shape.Torus) (Type, Interval) {
	spans, n := lineTorusSpans(line.Origin, line.Direction, torus)
	if n == 0 {
		return TypeNone, Invalid
	}
	return TypeOther, spans[0]
}

// SegmentTorus intersects a segment with a solid torus, t in [0, 1]
func SegmentTorus(segment shape.Segment, torus shape.Torus) (Type, Interval) {
	spans, n := lineTorusSpans(segment.Start, segment.Direction(), torus)
	for _, span := range spans[:n] {
		if span.Max >= 0 && span.Min <= 1 {
			return clipSegment(TypeOther, span)
		}
	}
	return TypeNone, Invalid
}

// lineTorusSpans solves the quartic
//
//	(|x|² + R² - r²)² = 4R²(|x|² - (x·a)²),  x = p + t*d
//
// and returns the parameter spans where the line is inside the tube, in
// ascending order. Tangent roots do not open a span.
func lineTorusSpans(start, direction mgl64.Vec3, torus shape.Torus) ([2]Interval, int) {
	var spans [2]Interval
	axis := unitOrZero(torus.Axis)
	if axis == (mgl64.Vec3{}) || direction.LenSqr() == 0 {
		return spans, 0
	}

	p := start.Sub(torus.Center)
	ringSq := torus.RingRadius * torus.RingRadius

	dd := direction.Dot(direction)
	pd := p.Dot(direction)
	pp := p.Dot(p)
	da := direction.Dot(axis)
	pa := p.Dot(axis)
	k := pp + ringSq - torus.TubeRadius*torus.TubeRadius

	a := dd * dd
	b := 4 * dd * pd
	c := 4*pd*pd + 2*dd*k - 4*ringSq*(dd-da*da)
	d := 4*pd*k - 8*ringSq*(pd-pa*da)
	e := k*k - 4*ringSq*(pp-pa*pa)

	roots, rootCount := SolveQuartic(a, b, c, d, e)

	quartic := func(t float64) float64 {
		return (((a*t+b)*t+c)*t+d)*t + e
	}
	normal := func(t float64) mgl64.Vec3 {
		x := p.Add(direction.Mul(t))
		perpendicular := x.Sub(axis.Mul(x.Dot(axis)))
		s := x.Dot(x) + ringSq - torus.TubeRadius*torus.TubeRadius
		return unitOrZero(x.Mul(4 * s).Sub(perpendicular.Mul(8 * ringSq)))
	}

	n := 0
	for i := 0; i+1 < rootCount && n < len(spans); i++ {
		lo, hi := roots[i], roots[i+1]
		if hi <= lo || quartic((lo+hi)/2) >= 0 {
			continue
		}
		spans[n] = Interval{Min: lo, Max: hi, Normal: [2]mgl64.Vec3{normal(lo), normal(hi)}}
		n++
		i++
	}
	return spans, n
}
