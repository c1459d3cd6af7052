package intersection

import (
	"math"

	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// normalCheck is the tolerance of the normal orientation check of debug builds
const normalCheck = -0.0000001

// clipTolerance keeps incident points lying on a side plane of the reference face
const clipTolerance = 1e-9

// ObbObb runs the separating axis test between two oriented boxes with the
// default tolerances, see SatConfig.ObbObb
func ObbObb(a, b shape.OBB, manifold *Manifold) Type {
	return DefaultSatConfig().ObbObb(a, b, manifold)
}

// ObbObb tests the 3 face axes of each box and the 9 cross products of their
// axes. A nil manifold only reports the overlap with TypeOther. Otherwise the
// axis of least overlap drives the contact generation:
//   - an edge cross axis gives one contact between the closest points of the two edges,
//   - a face axis clips the most anti-parallel face of the other box against
//     the reference face and keeps the points below it.
//
// The manifold normal always points from a toward b.
func (c SatConfig) ObbObb(a, b shape.OBB, manifold *Manifold) Type {
	axesA := [3]mgl64.Vec3{a.Axis(0), a.Axis(1), a.Axis(2)}
	axesB := [3]mgl64.Vec3{b.Axis(0), b.Axis(1), b.Axis(2)}

	// offset between the centers, in the frame of a
	offset := a.Basis.Transpose().Mul3x1(b.Center.Sub(a.Center))

	var rot, absRot [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot[i][j] = axesA[i].Dot(axesB[j])
			absRot[i][j] = math.Abs(rot[i][j]) + c.AbsEpsilon
		}
	}

	ha, hb := a.HalfExtents, b.HalfExtents
	minOverlap := math.MaxFloat64
	var normal mgl64.Vec3
	axisCase := -1

	// L = a0, a1, a2
	for i := 0; i < 3; i++ {
		projection := ha[i] + hb[0]*absRot[i][0] + hb[1]*absRot[i][1] + hb[2]*absRot[i][2]
		overlap := projection - math.Abs(offset[i])
		if overlap < c.Zero {
			return TypeNone
		}
		if overlap < minOverlap {
			minOverlap = overlap
			normal = axesA[i]
			axisCase = i
		}
	}

	// L = b0, b1, b2
	for j := 0; j < 3; j++ {
		projection := ha[0]*absRot[0][j] + ha[1]*absRot[1][j] + ha[2]*absRot[2][j] + hb[j]
		distance := offset[0]*rot[0][j] + offset[1]*rot[1][j] + offset[2]*rot[2][j]
		overlap := projection - math.Abs(distance)
		if overlap < c.Zero {
			return TypeNone
		}
		if overlap < minOverlap {
			minOverlap = overlap
			normal = axesB[j]
			axisCase = 3 + j
		}
	}

	// L = ai x bj. A nearly parallel pair still separates the boxes but its
	// cross product is too unstable to become the contact normal.
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			// the cross product expressed in the frame of a
			var local mgl64.Vec3
			local[i1] = -rot[i2][j]
			local[i2] = rot[i1][j]
			length := local.Len()
			if length <= c.LengthEpsilon {
				continue
			}

			j1, j2 := (j+1)%3, (j+2)%3
			projection := ha[i1]*absRot[i2][j] + ha[i2]*absRot[i1][j] +
				hb[j1]*absRot[i][j2] + hb[j2]*absRot[i][j1]
			distance := offset[i2]*rot[i1][j] - offset[i1]*rot[i2][j]
			overlap := (projection - math.Abs(distance)) / length
			if overlap < c.Zero {
				return TypeNone
			}
			if absRot[i][j]-c.AbsEpsilon > c.ParallelCutoff {
				continue
			}

			if overlap*c.FudgeFactor < minOverlap {
				minOverlap = overlap
				normal = local.Mul(1 / length)
				axisCase = 6 + 3*i + j
			}
		}
	}

	if manifold == nil {
		return TypeOther
	}
	assertf(axisCase >= 0, "boxes overlap on every axis but no axis of least overlap was found")

	if axisCase >= 6 {
		return obbEdgeContact(a, b, a.Basis.Mul3x1(normal), (axisCase-6)/3, (axisCase-6)%3, minOverlap, manifold)
	}
	return obbFaceContact(a, b, normal, axisCase, manifold)
}

// towards flips normal so that it points from one to two
func towards(normal, one, two mgl64.Vec3) mgl64.Vec3 {
	if normal.Dot(two.Sub(one)) < 0 {
		return normal.Mul(-1)
	}
	return normal
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// edgeAlong returns the edge of box parallel to its axis edgeAxis that lies
// furthest along direction
func edgeAlong(box shape.OBB, edgeAxis int, direction mgl64.Vec3) shape.Segment {
	center := box.Center
	for k := 0; k < 3; k++ {
		if k == edgeAxis {
			continue
		}
		axis := box.Axis(k)
		center = center.Add(axis.Mul(box.HalfExtents[k] * signOf(direction.Dot(axis))))
	}

	half := box.Axis(edgeAxis).Mul(box.HalfExtents[edgeAxis])
	return shape.Segment{Start: center.Sub(half), End: center.Add(half)}
}

func obbEdgeContact(a, b shape.OBB, normal mgl64.Vec3, edgeA, edgeB int, depth float64, manifold *Manifold) Type {
	normal = towards(normal, a.Center, b.Center)

	pointA, pointB, _, _ := ClosestPointsOfTwoSegments(
		edgeAlong(a, edgeA, normal),
		edgeAlong(b, edgeB, normal.Mul(-1)),
	)

	manifold.Normal = normal
	manifold.Points[0] = IntersectionPoint{Points: [2]mgl64.Vec3{pointA, pointB}, Depth: math.Abs(depth)}
	manifold.PointCount = 1
	checkManifoldNormal(a, b, manifold)
	return TypeEdgeEdge
}

// obbFaceContact builds the manifold of a face axis. The box owning the axis
// holds the reference face, the other box the incident face.
func obbFaceContact(a, b shape.OBB, normal mgl64.Vec3, axisCase int, manifold *Manifold) Type {
	normal = towards(normal, a.Center, b.Center)

	reference, incident := a, b
	referenceNormal := normal
	referenceIndex := 0
	if axisCase >= 3 {
		reference, incident = b, a
		referenceNormal = normal.Mul(-1)
		referenceIndex = 1
	}
	incidentIndex := 1 - referenceIndex

	referenceAxis := axisCase % 3
	faceCenter := reference.Center.Add(referenceNormal.Mul(reference.HalfExtents[referenceAxis]))

	// the incident face is the face of the other box most anti-parallel to the reference normal
	incidentAxis := 0
	best := -1.0
	for k := 0; k < 3; k++ {
		if d := math.Abs(incident.Axis(k).Dot(referenceNormal)); d > best {
			best = d
			incidentAxis = k
		}
	}
	incidentFace := incident.Face(incidentAxis, -signOf(incident.Axis(incidentAxis).Dot(referenceNormal)))

	polygon := make([]mgl64.Vec3, 0, 8)
	polygon = append(polygon, incidentFace[:]...)

	// the four side planes of the reference face, normals pointing inward
	u := (referenceAxis + 1) % 3
	v := (referenceAxis + 2) % 3
	for _, side := range [2]int{u, v} {
		axis := reference.Axis(side)
		extent := reference.HalfExtents[side]
		polygon = clipPolygonAgainstPlane(polygon, faceCenter.Add(axis.Mul(extent)), axis.Mul(-1))
		polygon = clipPolygonAgainstPlane(polygon, faceCenter.Sub(axis.Mul(extent)), axis)
	}

	// keep the points below the reference face
	points := make([]mgl64.Vec3, 0, len(polygon))
	depths := make([]float64, 0, len(polygon))
	for _, p := range polygon {
		distance := referenceNormal.Dot(p.Sub(faceCenter))
		if distance < 0 {
			points = append(points, p)
			depths = append(depths, -distance)
		}
	}
	if len(points) == 0 {
		// the clipped incident face missed the reference face: keep the deepest corner
		corner := incident.Support(referenceNormal.Mul(-1))
		points = append(points, corner)
		depths = append(depths, math.Max(0, -referenceNormal.Dot(corner.Sub(faceCenter))))
	}

	selected := make([]int, 0, MaxManifoldPoints)
	capacity := manifold.Capacity()
	if len(points) <= capacity {
		for i := range points {
			selected = append(selected, i)
		}
	} else {
		deepest := 0
		for i, depth := range depths {
			if depth > depths[deepest] {
				deepest = i
			}
		}
		selected = extremePoints(points, reference.Axis(u), reference.Axis(v), capacity, deepest)
	}

	manifold.Normal = normal
	for n, i := range selected {
		var pair [2]mgl64.Vec3
		pair[incidentIndex] = points[i]
		pair[referenceIndex] = points[i].Add(referenceNormal.Mul(depths[i]))
		manifold.Points[n] = IntersectionPoint{Points: pair, Depth: depths[i]}
	}
	manifold.PointCount = len(selected)
	checkManifoldNormal(a, b, manifold)

	return faceContactType(len(selected), referenceIndex == 0)
}

func faceContactType(count int, ownedByA bool) Type {
	switch {
	case count >= 3:
		return TypeFaceFace
	case count == 2 && ownedByA:
		return TypeFaceEdge
	case count == 2:
		return TypeEdgeFace
	case ownedByA:
		return TypeFacePoint
	}
	return TypePointFace
}

// clipPolygonAgainstPlane is one Sutherland-Hodgman pass: it keeps the part of
// the polygon on the side planeNormal points to
func clipPolygonAgainstPlane(polygon []mgl64.Vec3, planePoint, planeNormal mgl64.Vec3) []mgl64.Vec3 {
	if len(polygon) == 0 {
		return polygon
	}

	output := make([]mgl64.Vec3, 0, len(polygon)+1)
	for i := 0; i < len(polygon); i++ {
		current := polygon[i]
		next := polygon[(i+1)%len(polygon)]

		currentDistance := current.Sub(planePoint).Dot(planeNormal)
		nextDistance := next.Sub(planePoint).Dot(planeNormal)

		currentInside := currentDistance >= -clipTolerance
		nextInside := nextDistance >= -clipTolerance
		if currentInside {
			output = append(output, current)
		}
		if currentInside != nextInside {
			t := currentDistance / (currentDistance - nextDistance)
			output = append(output, current.Add(next.Sub(current).Mul(t)))
		}
	}
	return output
}

// extremePoints keeps maxPoints of points spread around their centroid. The
// first kept point is initial, the others are the closest in angle to evenly
// spaced directions starting from it.
func extremePoints(points []mgl64.Vec3, u, v mgl64.Vec3, maxPoints, initial int) []int {
	centroid := mgl64.Vec3{}
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(len(points)))

	angles := make([]float64, len(points))
	used := make([]bool, len(points))
	for i, p := range points {
		offset := p.Sub(centroid)
		angles[i] = math.Atan2(offset.Dot(v), offset.Dot(u))
	}

	selected := make([]int, 0, maxPoints)
	selected = append(selected, initial)
	used[initial] = true

	slice := 2 * math.Pi / float64(maxPoints)
	for i := 1; i < maxPoints; i++ {
		target := angles[initial] + float64(i)*slice
		if target > math.Pi {
			target -= 2 * math.Pi
		}

		closest := -1
		closestDiff := math.MaxFloat64
		for j := range points {
			if used[j] {
				continue
			}
			diff := math.Abs(angles[j] - target)
			if diff > math.Pi {
				diff = 2*math.Pi - diff
			}
			if diff < closestDiff {
				closest, closestDiff = j, diff
			}
		}
		if closest < 0 {
			break
		}
		used[closest] = true
		selected = append(selected, closest)
	}
	return selected
}

func checkManifoldNormal(a, b shape.OBB, manifold *Manifold) {
	assertf(manifold.Normal.Dot(b.Center.Sub(a.Center)) >= normalCheck,
		"manifold normal %v does not point from %v toward %v", manifold.Normal, a.Center, b.Center)
}
