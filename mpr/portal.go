package mpr

import (
	"math"
	"time"

	"github.com/akmonengine/quill/intersection"
	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	debugDuration = 100 * time.Millisecond

	// collinearEpsilon is the squared length under which the cross product of
	// the center and the first support point is zero
	collinearEpsilon = 1e-20
)

type portalResult int8

const (
	portalMiss portalResult = iota
	portalFound
	// the origin lies on the segment from v0 to the first support point
	portalSegment
)

// run executes the three phases. It reports a hit, and whether the origin was
// found on the center ray before any portal could be formed.
func (e *Engine) run() (bool, bool) {
	e.state = StateInitialPortal
	switch e.initialPortal() {
	case portalMiss:
		return false, false
	case portalSegment:
		return true, true
	}

	e.state = StateDiscover
	if !e.discover() {
		return false, false
	}

	e.state = StateRefine
	return e.refine(), false
}

// initialPortal finds v1 toward the origin and v2 perpendicular to the origin
// ray. v3 is searched by discover.
func (e *Engine) initialPortal() portalResult {
	v0 := e.center.point

	direction := v0.Mul(-1).Normalize()
	e.portal[0] = e.supportPoint(direction)
	if e.portal[0].point.Dot(direction) <= 0 {
		// the origin is beyond the furthest point toward it
		return portalMiss
	}

	direction = v0.Cross(e.portal[0].point)
	if direction.LenSqr() < collinearEpsilon {
		return portalSegment
	}

	direction = direction.Normalize()
	e.portal[1] = e.supportPoint(direction)
	if e.portal[1].point.Dot(direction) <= 0 {
		return portalMiss
	}
	return portalFound
}

// discover rotates the portal until the ray from v0 through the origin
// crosses the triangle v1 v2 v3
func (e *Engine) discover() bool {
	v0 := e.center.point

	direction := e.portal[0].point.Sub(v0).Cross(e.portal[1].point.Sub(v0))
	if direction.Dot(v0) > 0 {
		// face the portal away from v0
		e.portal[0], e.portal[1] = e.portal[1], e.portal[0]
		direction = direction.Mul(-1)
	}

	for i := 0; i < e.Config.DiscoverIterations; i++ {
		direction = direction.Normalize()
		v3 := e.supportPoint(direction)
		if v3.point.Dot(direction) <= 0 {
			return false
		}
		e.portal[2] = v3

		// the origin escapes through (v1, v0, v3): v3 replaces v2
		if e.portal[0].point.Cross(v3.point).Dot(v0) < 0 {
			e.portal[1] = v3
			direction = e.portal[0].point.Sub(v0).Cross(e.portal[1].point.Sub(v0))
			continue
		}

		// the origin escapes through (v3, v0, v2): v3 replaces v1
		if v3.point.Cross(e.portal[1].point).Dot(v0) < 0 {
			e.portal[0] = v3
			direction = e.portal[0].point.Sub(v0).Cross(e.portal[1].point.Sub(v0))
			continue
		}

		return true
	}
	return false
}

// portalNormal is the unit normal of the portal, pointing away from v0
func (e *Engine) portalNormal() mgl64.Vec3 {
	v1, v2, v3 := e.portal[0].point, e.portal[1].point, e.portal[2].point
	normal := v2.Sub(v1).Cross(v3.Sub(v1))
	if normal.Dot(v1.Sub(e.center.point)) < 0 {
		normal = normal.Mul(-1)
	}

	length := normal.Len()
	if length == 0 {
		return normal
	}
	return normal.Mul(1 / length)
}

// refine pushes the portal toward the CSO surface until the origin is known
// to be inside or outside
func (e *Engine) refine() bool {
	for i := 0; i < e.Config.RefineIterations; i++ {
		normal := e.portalNormal()

		if normal.Dot(e.portal[0].point) >= -e.Config.ContainEpsilon {
			// the origin is behind the portal
			return true
		}

		v4 := e.supportPoint(normal)
		if v4.point.Dot(normal) < 0 {
			// the origin is beyond the support plane
			return false
		}
		if e.closeToSurface(v4, normal) {
			return true
		}

		e.expand(v4)
	}
	return false
}

// refineToSurface keeps refining a portal known to hide the origin until it
// lies on the CSO surface. It returns false when the iteration budget runs out.
func (e *Engine) refineToSurface() bool {
	for i := 0; i < e.Config.RefineIterations; i++ {
		normal := e.portalNormal()
		v4 := e.supportPoint(normal)
		if e.closeToSurface(v4, normal) {
			return true
		}
		e.expand(v4)
	}
	return false
}

// sharpen runs the query again from an interior point placed on the contact
// normal, half the depth behind the origin. The second portal is kept only
// when it lies on the surface and is shallower.
func (e *Engine) sharpen(manifold *intersection.Manifold) {
	depth := manifold.Points[0].Depth
	if depth <= 0 || manifold.Normal == (mgl64.Vec3{}) {
		return
	}

	center, portal, state := e.center, e.portal, e.state
	e.center.point = manifold.Normal.Mul(depth * 0.5)

	if hit, onSegment := e.run(); hit && !onSegment && e.refineToSurface() {
		var sharper intersection.Manifold
		e.fillManifold(&sharper)
		if d := sharper.Points[0].Depth; d > 0 && d < depth {
			manifold.Normal = sharper.Normal
			manifold.Points[0] = sharper.Points[0]
			return
		}
	}
	e.center, e.portal, e.state = center, portal, state
}

func (e *Engine) closeToSurface(v4 support, normal mgl64.Vec3) bool {
	gap := math.MaxFloat64
	for _, v := range e.portal {
		gap = math.Min(gap, v4.point.Sub(v.point).Dot(normal))
	}
	return gap <= e.Config.SurfaceEpsilon
}

// expand replaces the portal vertex so that the new portal, made of v4 and two
// of the old vertices, is still crossed by the origin ray
func (e *Engine) expand(v4 support) {
	split := v4.point.Cross(e.center.point)
	if e.portal[0].point.Dot(split) > 0 {
		if e.portal[1].point.Dot(split) > 0 {
			e.portal[0] = v4
		} else {
			e.portal[2] = v4
		}
		return
	}

	if e.portal[2].point.Dot(split) > 0 {
		e.portal[1] = v4
	} else {
		e.portal[0] = v4
	}
}

// fillManifold writes the contact of the refined portal: the origin projected
// on the portal gives the depth, its barycentric coordinates the points on a and b
func (e *Engine) fillManifold(manifold *intersection.Manifold) {
	normal := e.portalNormal()
	depth := normal.Dot(e.portal[0].point)

	v1, v2, v3 := e.portal[0], e.portal[1], e.portal[2]
	u, v, w, ok := intersection.Barycentric(normal.Mul(depth), shape.Triangle{P0: v1.point, P1: v2.point, P2: v3.point})
	if !ok {
		u, v, w = 1, 0, 0
	}

	onA := v1.onA.Mul(u).Add(v2.onA.Mul(v)).Add(v3.onA.Mul(w))
	onB := v1.onB.Mul(u).Add(v2.onB.Mul(v)).Add(v3.onB.Mul(w))

	manifold.Normal = normal.Mul(-1)
	manifold.Points[0] = intersection.IntersectionPoint{Points: [2]mgl64.Vec3{onA, onB}, Depth: depth}
	manifold.PointCount = 1
}

// fillSegmentManifold writes the contact when the origin lies on the ray from
// v0 to v1: the contact is found along the center ray
func (e *Engine) fillSegmentManifold(manifold *intersection.Manifold) {
	v1 := e.portal[0]
	depth := v1.point.Len()

	normal := e.center.point.Normalize()
	manifold.Normal = normal
	manifold.Points[0] = intersection.IntersectionPoint{Points: [2]mgl64.Vec3{v1.onA, v1.onB}, Depth: depth}
	manifold.PointCount = 1
}
