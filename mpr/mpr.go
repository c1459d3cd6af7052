// Package mpr implements Minkowski Portal Refinement, a narrow phase test for
// any pair of convex shapes that can answer support queries.
//
// MPR works on the configuration space obstacle (CSO) B - A, which contains the
// origin iff the shapes overlap. It picks an interior point v0 of the CSO and
// searches the boundary for a triangular portal crossed by the ray from v0
// through the origin:
//  1. InitialPortal: one support point toward the origin, a second one
//     perpendicular to the origin ray, a third one off their plane
//  2. Discover: while the origin ray misses the portal, replace the vertex
//     opposite the face it escapes through
//  3. Refine: push the portal outward along its normal until the origin is
//     behind it (hit) or beyond a support plane (miss)
//
// On a hit the portal is refined once more until it lies on the CSO surface,
// giving the contact normal, the depth and the contact points through the
// barycentric coordinates of the origin projected on the portal. A second
// pass re-anchors v0 on that normal and keeps the shallower surface portal.
//
// References:
//   - Snethen: "XenoCollide: Complex Collision Made Simple", Game Programming Gems 7 (2008)
package mpr

import (
	"sync"

	"github.com/akmonengine/quill/debugdraw"
	"github.com/akmonengine/quill/intersection"
	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
)

// State is the phase the engine is in, or the outcome of the last query
type State int8

const (
	StateInit State = iota
	StateInitialPortal
	StateDiscover
	StateRefine
	StateHit
	StateMiss
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateInitialPortal:
		return "InitialPortal"
	case StateDiscover:
		return "Discover"
	case StateRefine:
		return "Refine"
	case StateHit:
		return "Hit"
	case StateMiss:
		return "Miss"
	}
	return "Unknown"
}

// support is a CSO point with the two shape points it was built from
type support struct {
	point mgl64.Vec3
	onA   mgl64.Vec3
	onB   mgl64.Vec3
}

// Engine holds the state of one query. It is reset by every Test, SweptTest
// or PointInside call and must not be shared between goroutines.
type Engine struct {
	Config Config
	// Debug receives the portal and the support points when a query ends
	Debug debugdraw.Drawer

	state       State
	a, b        shape.Convex
	translation mgl64.Vec3
	center      support
	portal      [3]support
}

// New creates an engine with the given tolerances
func New(config Config) *Engine {
	return &Engine{Config: config, Debug: debugdraw.Nop{}}
}

var enginePool = sync.Pool{
	New: func() interface{} {
		return New(DefaultConfig())
	},
}

// Get borrows an engine with the default tolerances from the pool
func Get() *Engine {
	return enginePool.Get().(*Engine)
}

// Put returns an engine to the pool, restoring the default tolerances and drawer
func Put(e *Engine) {
	e.Config = DefaultConfig()
	e.Debug = debugdraw.Nop{}
	e.Init(nil, nil)
	enginePool.Put(e)
}

// Init resets the engine for a query between a and b
func (e *Engine) Init(a, b shape.Convex) {
	e.state = StateInit
	e.a, e.b = a, b
	e.translation = mgl64.Vec3{}
	e.center = support{}
	e.portal = [3]support{}
}

// State returns the phase reached by the last query
func (e *Engine) State() State {
	return e.state
}

// Test reports whether a and b overlap. When manifold is not nil and the
// shapes overlap, it receives one contact: the normal from a toward b, the
// penetration depth, and the contact point on each shape. The contact is
// sharpened by a second pass anchored on the first normal.
//
// Shapes sharing the exact same center cannot form a portal and are reported
// as a miss.
func (e *Engine) Test(a, b shape.Convex, manifold *intersection.Manifold) intersection.Type {
	e.Init(a, b)

	centerA, centerB := a.GetCenter(), b.GetCenter()
	if centerA == centerB {
		return e.miss()
	}
	e.center = support{point: centerB.Sub(centerA), onA: centerA, onB: centerB}

	hit, onSegment := e.run()
	if !hit {
		return e.miss()
	}

	if manifold != nil {
		if onSegment {
			e.fillSegmentManifold(manifold)
		} else {
			e.refineToSurface()
			e.fillManifold(manifold)
			e.sharpen(manifold)
		}
	}
	return e.hit()
}

// SweptTest reports whether a and b overlap at any time while they move by
// their delta transforms. A rotating shape is replaced by the hull of its
// start and end orientations, which is exact for the two end poses.
func (e *Engine) SweptTest(a, b shape.SupportShape) intersection.Type {
	e.Init(sweptShape{a}, sweptShape{b})
	e.translation = b.Translation().Sub(a.Translation())

	centerA, centerB := a.GetCenter(), b.GetCenter()
	e.center = support{
		point: centerB.Sub(centerA).Add(e.translation.Mul(0.5)),
		onA:   centerA,
		onB:   centerB,
	}
	if e.center.point == (mgl64.Vec3{}) {
		// the interior point of the swept CSO is the origin itself
		return e.hit()
	}

	if hit, _ := e.run(); !hit {
		return e.miss()
	}
	return e.hit()
}

// PointInside reports whether point lies in s, as TypeInside or TypeOutside
func (e *Engine) PointInside(point mgl64.Vec3, s shape.Convex) intersection.Type {
	if point == s.GetCenter() {
		e.Init(pointShape(point), s)
		e.hit()
		return intersection.TypeInside
	}

	if e.Test(pointShape(point), s, nil) == intersection.TypeOther {
		return intersection.TypeInside
	}
	return intersection.TypeOutside
}

// sweptShape is the hull of a shape at its start and end orientations, both
// at the start position. The translation is swept by the engine.
type sweptShape struct {
	shape.SupportShape
}

func (s sweptShape) Support(direction mgl64.Vec3) mgl64.Vec3 {
	start := s.SupportShape.Support(direction)
	end := s.SupportDelta(direction).Sub(s.Translation())
	if end.Dot(direction) > start.Dot(direction) {
		return end
	}
	return start
}

// pointShape is a single point seen as a convex shape
type pointShape mgl64.Vec3

func (p pointShape) GetCenter() mgl64.Vec3 {
	return mgl64.Vec3(p)
}

func (p pointShape) Support(mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3(p)
}

func (e *Engine) hit() intersection.Type {
	e.state = StateHit
	e.draw()
	return intersection.TypeOther
}

func (e *Engine) miss() intersection.Type {
	e.state = StateMiss
	e.draw()
	return intersection.TypeNone
}

// supportPoint returns the CSO point furthest along direction. Swept queries
// extend the CSO by the relative translation.
func (e *Engine) supportPoint(direction mgl64.Vec3) support {
	onB := e.b.Support(direction)
	onA := e.a.Support(direction.Mul(-1))
	point := onB.Sub(onA)
	if e.translation.Dot(direction) > 0 {
		point = point.Add(e.translation)
	}
	return support{point: point, onA: onA, onB: onB}
}

func (e *Engine) draw() {
	drawer := debugdraw.OrNop(e.Debug)
	if _, ok := drawer.(debugdraw.Nop); ok || e.a == nil || e.b == nil {
		return
	}

	style := func(c debugdraw.Style) debugdraw.Style {
		c.OnTop = true
		c.Duration = debugDuration
		return c
	}
	const radius = 0.1

	drawer.Point(e.center.onA, radius, style(debugdraw.Style{Color: debugdraw.Pink}))
	drawer.Point(e.center.onB, radius, style(debugdraw.Style{Color: debugdraw.Pink}))
	drawer.Point(e.center.point, radius, style(debugdraw.Style{Color: debugdraw.Pink}))
	if e.state != StateHit {
		return
	}

	colors := [3]debugdraw.Style{
		{Color: debugdraw.Magenta},
		{Color: debugdraw.Cyan},
		{Color: debugdraw.Yellow},
	}
	for i, s := range e.portal {
		drawer.Point(s.point, radius, style(colors[i]))
		drawer.Point(s.onA, radius, style(colors[i]))
		drawer.Point(s.onB, radius, style(colors[i]))
		drawer.Line(e.center.point, s.point, style(debugdraw.Style{Color: debugdraw.White}))
	}

	v1, v2, v3 := e.portal[0], e.portal[1], e.portal[2]
	drawer.Triangle(v1.point, v2.point, v3.point, style(debugdraw.Style{Color: debugdraw.Blue}))
	drawer.Triangle(v1.onA, v2.onA, v3.onA, style(debugdraw.Style{Color: debugdraw.Green}))
	drawer.Triangle(v1.onB, v2.onB, v3.onB, style(debugdraw.Style{Color: debugdraw.Pink}))
}
