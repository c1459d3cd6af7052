package intersection

import (
	"math"
	"testing"

	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func assertVec(t *testing.T, expected, actual mgl64.Vec3, tolerance float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], tolerance, msgAndArgs...)
}

func TestRaySphere(t *testing.T) {
	sphere := shape.Sphere{Radius: 1}

	t.Run("through the center", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{0, 0, -5}, Direction: mgl64.Vec3{0, 0, 1}}
		typ, interval := RaySphere(ray, sphere)

		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 4.0, interval.Min, delta)
		assert.InDelta(t, 6.0, interval.Max, delta)
		assertVec(t, mgl64.Vec3{0, 0, -1}, interval.Normal[0], delta)
		assertVec(t, mgl64.Vec3{0, 0, 1}, interval.Normal[1], delta)
	})

	t.Run("tangent is a miss", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{1, 0, -5}, Direction: mgl64.Vec3{0, 0, 1}}
		typ, _ := RaySphere(ray, sphere)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("just inside tangency is a hit", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{0.999, 0, -5}, Direction: mgl64.Vec3{0, 0, 1}}
		typ, interval := RaySphere(ray, sphere)
		require.Equal(t, TypeOther, typ)
		assert.Less(t, interval.Min, interval.Max)
	})

	t.Run("pointing away", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, 1}}
		typ, _ := RaySphere(ray, sphere)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("starting inside is clipped at zero", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{0, 0, 0}, Direction: mgl64.Vec3{0, 0, 1}}
		typ, interval := RaySphere(ray, sphere)
		require.Equal(t, TypeOther, typ)
		assert.Equal(t, 0.0, interval.Min)
		assert.InDelta(t, 1.0, interval.Max, delta)

		pointType, point := ray.Point(typ, interval)
		assert.Equal(t, TypePoint, pointType)
		assertVec(t, mgl64.Vec3{0, 0, 1}, point.Points[0], delta)
		assert.InDelta(t, 1.0, point.T(), delta)
	})

	t.Run("direction is not normalized", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{0, 0, -5}, Direction: mgl64.Vec3{0, 0, 2}}
		_, interval := RaySphere(ray, sphere)
		assert.InDelta(t, 2.0, interval.Min, delta)
		assert.InDelta(t, 3.0, interval.Max, delta)
	})
}

func TestLineAndSegmentSphere(t *testing.T) {
	sphere := shape.Sphere{Radius: 1}

	t.Run("line keeps negative parameters", func(t *testing.T) {
		typ, interval := LineSphere(Line{Origin: mgl64.Vec3{}, Direction: mgl64.Vec3{0, 0, 1}}, sphere)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, -1.0, interval.Min, delta)
		assert.InDelta(t, 1.0, interval.Max, delta)
	})

	t.Run("segment through the sphere", func(t *testing.T) {
		segment := shape.Segment{Start: mgl64.Vec3{0, 0, -5}, End: mgl64.Vec3{0, 0, 5}}
		typ, interval := SegmentSphere(segment, sphere)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 0.4, interval.Min, delta)
		assert.InDelta(t, 0.6, interval.Max, delta)

		pointType, point := SegmentPoint(segment, typ, interval)
		assert.Equal(t, TypeSegment, pointType)
		assertVec(t, mgl64.Vec3{0, 0, -1}, point.Points[0], delta)
		assertVec(t, mgl64.Vec3{0, 0, 1}, point.Points[1], delta)
	})

	t.Run("segment ending inside", func(t *testing.T) {
		segment := shape.Segment{Start: mgl64.Vec3{0, 0, -5}, End: mgl64.Vec3{0, 0, 0}}
		typ, interval := SegmentSphere(segment, sphere)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 0.8, interval.Min, delta)
		assert.Equal(t, 1.0, interval.Max)

		pointType, point := SegmentPoint(segment, typ, interval)
		assert.Equal(t, TypePoint, pointType)
		assertVec(t, mgl64.Vec3{0, 0, -1}, point.Points[0], delta)
	})

	t.Run("segment too short", func(t *testing.T) {
		segment := shape.Segment{Start: mgl64.Vec3{0, 0, -5}, End: mgl64.Vec3{0, 0, -2}}
		typ, _ := SegmentSphere(segment, sphere)
		assert.Equal(t, TypeNone, typ)
	})
}

// maxAbs is the distance of point to the origin in the infinity norm
func maxAbs(point mgl64.Vec3) float64 {
	return math.Max(math.Abs(point.X()), math.Max(math.Abs(point.Y()), math.Abs(point.Z())))
}

func TestRayAABB(t *testing.T) {
	box := shape.AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		ray      Ray
		hit      bool
		min, max float64
	}{
		{"through the center", Ray{Start: mgl64.Vec3{-5, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}, true, 4, 6},
		{"along a face", Ray{Start: mgl64.Vec3{-5, 1, 0}, Direction: mgl64.Vec3{1, 0, 0}}, true, 4, 6},
		{"along an edge", Ray{Start: mgl64.Vec3{-5, 1, 1}, Direction: mgl64.Vec3{1, 0, 0}}, true, 4, 6},
		{"just off a face", Ray{Start: mgl64.Vec3{-5, 1.0001, 0}, Direction: mgl64.Vec3{1, 0, 0}}, false, 0, 0},
		{"diagonal", Ray{Start: mgl64.Vec3{-3, -3, -3}, Direction: mgl64.Vec3{1, 1, 1}}, true, 2, 4},
		{"oblique", Ray{Start: mgl64.Vec3{-3, -2.5, -2}, Direction: mgl64.Vec3{1, 1, 1}}, true, 2, 3},
		{"behind", Ray{Start: mgl64.Vec3{5, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}, false, 0, 0},
		{"from inside", Ray{Start: mgl64.Vec3{0, 0, 0}, Direction: mgl64.Vec3{0, 1, 0}}, true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, interval := RayAABB(tt.ray, box)
			if !tt.hit {
				assert.Equal(t, TypeNone, typ)
				return
			}
			require.Equal(t, TypeOther, typ)
			assert.InDelta(t, tt.min, interval.Min, delta)
			assert.InDelta(t, tt.max, interval.Max, delta)

			// both ends lie on the box, on its boundary unless the ray starts inside
			entry, exit := tt.ray.At(interval.Min), tt.ray.At(interval.Max)
			assert.Equal(t, TypeInside, PointAABB(entry, box))
			assert.Equal(t, TypeInside, PointAABB(exit, box))
			if interval.Min > 0 {
				assert.InDelta(t, 1.0, maxAbs(entry), delta, "entry %v", entry)
			}
			assert.InDelta(t, 1.0, maxAbs(exit), delta, "exit %v", exit)
		})
	}

	t.Run("slab normals", func(t *testing.T) {
		_, interval := RayAABB(Ray{Start: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}}, box)
		assert.Equal(t, mgl64.Vec3{0, 0, 1}, interval.Normal[0])
		assert.Equal(t, mgl64.Vec3{0, 0, -1}, interval.Normal[1])
	})

	t.Run("segment and line", func(t *testing.T) {
		typ, interval := SegmentAABB(shape.Segment{Start: mgl64.Vec3{-3, 0, 0}, End: mgl64.Vec3{0, 0, 0}}, box)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 2.0/3.0, interval.Min, delta)
		assert.Equal(t, 1.0, interval.Max)

		typ, interval = LineAABB(Line{Origin: mgl64.Vec3{}, Direction: mgl64.Vec3{1, 0, 0}}, box)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, -1.0, interval.Min, delta)
		assert.InDelta(t, 1.0, interval.Max, delta)
	})
}

func TestRayOBB(t *testing.T) {
	box := shape.NewOBB(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}))

	typ, interval := RayOBB(Ray{Start: mgl64.Vec3{-5, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}, box)
	require.Equal(t, TypeOther, typ)
	assert.InDelta(t, 5-math.Sqrt2, interval.Min, 1e-9)
	assert.InDelta(t, 5+math.Sqrt2, interval.Max, 1e-9)

	// the entry point is a vertex, its normal is one of the two adjacent faces
	assert.InDelta(t, 1.0, interval.Normal[0].Len(), 1e-9)
	assert.Less(t, interval.Normal[0].X(), 0.0)

	typ, _ = RayOBB(Ray{Start: mgl64.Vec3{-5, 1.5, 0}, Direction: mgl64.Vec3{1, 0, 0}}, box)
	assert.Equal(t, TypeNone, typ)
}

func TestRayPlane(t *testing.T) {
	ground := shape.Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0}

	t.Run("entering the back half-space", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{0, 5, 0}, Direction: mgl64.Vec3{0, -1, 0}}
		typ, interval := RayPlane(ray, ground)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 5.0, interval.Min, delta)
		assert.Equal(t, math.MaxFloat64, interval.Max)
		assert.Equal(t, mgl64.Vec3{0, 1, 0}, interval.Normal[0])

		pointType, point := ray.Point(typ, interval)
		assert.Equal(t, TypePoint, pointType)
		assertVec(t, mgl64.Vec3{}, point.Points[0], delta)
	})

	t.Run("parallel", func(t *testing.T) {
		typ, _ := RayPlane(Ray{Start: mgl64.Vec3{0, 5, 0}, Direction: mgl64.Vec3{1, 0, 0}}, ground)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("leaving the back half-space", func(t *testing.T) {
		typ, _ := RayPlane(Ray{Start: mgl64.Vec3{0, 5, 0}, Direction: mgl64.Vec3{0, 1, 0}}, ground)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("inside and never leaving", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{0, -1, 0}, Direction: mgl64.Vec3{0, -1, 0}}
		typ, interval := RayPlane(ray, ground)
		require.Equal(t, TypeOther, typ)

		pointType, point := ray.Point(typ, interval)
		assert.Equal(t, TypeInside, pointType)
		assert.Equal(t, ray.Start, point.Points[0])
	})
}

func TestRayCapsule(t *testing.T) {
	capsule := shape.Capsule{PointA: mgl64.Vec3{0, -2, 0}, PointB: mgl64.Vec3{0, 2, 0}, Radius: 1}

	t.Run("grazing the upper cap", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{5, 3, 0}, Direction: mgl64.Vec3{-1, 0, 0}}
		typ, interval := RayCapsule(ray, capsule)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 5.0, interval.Min, delta)
		assert.InDelta(t, 5.0, interval.Max, delta)

		pointType, point := ray.Point(typ, interval)
		assert.Equal(t, TypePoint, pointType)
		assertVec(t, mgl64.Vec3{0, 3, 0}, point.Points[0], delta)
	})

	t.Run("cap only", func(t *testing.T) {
		typ, interval := RayCapsule(Ray{Start: mgl64.Vec3{5, 2.5, 0}, Direction: mgl64.Vec3{-1, 0, 0}}, capsule)
		require.Equal(t, TypeOther, typ)
		half := math.Sqrt(0.75)
		assert.InDelta(t, 5-half, interval.Min, delta)
		assert.InDelta(t, 5+half, interval.Max, delta)
	})

	t.Run("shaft only", func(t *testing.T) {
		typ, interval := RayCapsule(Ray{Start: mgl64.Vec3{5, 0, 0}, Direction: mgl64.Vec3{-1, 0, 0}}, capsule)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 4.0, interval.Min, delta)
		assert.InDelta(t, 6.0, interval.Max, delta)
		assertVec(t, mgl64.Vec3{1, 0, 0}, interval.Normal[0], delta)
	})

	t.Run("both caps and the shaft", func(t *testing.T) {
		typ, interval := RayCapsule(Ray{Start: mgl64.Vec3{0, 5, 0}, Direction: mgl64.Vec3{0, -1, 0}}, capsule)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 2.0, interval.Min, delta)
		assert.InDelta(t, 8.0, interval.Max, delta)
	})

	t.Run("miss", func(t *testing.T) {
		typ, _ := RayCapsule(Ray{Start: mgl64.Vec3{5, 3.5, 0}, Direction: mgl64.Vec3{-1, 0, 0}}, capsule)
		assert.Equal(t, TypeNone, typ)
	})
}

func TestRayCylinder(t *testing.T) {
	cylinder := shape.Cylinder{PointA: mgl64.Vec3{0, -1, 0}, PointB: mgl64.Vec3{0, 1, 0}, Radius: 1}

	t.Run("across the side", func(t *testing.T) {
		typ, interval := RayCylinder(Ray{Start: mgl64.Vec3{-5, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}, cylinder)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 4.0, interval.Min, delta)
		assert.InDelta(t, 6.0, interval.Max, delta)
		assertVec(t, mgl64.Vec3{-1, 0, 0}, interval.Normal[0], delta)
	})

	t.Run("along the axis through the caps", func(t *testing.T) {
		typ, interval := RayCylinder(Ray{Start: mgl64.Vec3{0, 5, 0}, Direction: mgl64.Vec3{0, -1, 0}}, cylinder)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 4.0, interval.Min, delta)
		assert.InDelta(t, 6.0, interval.Max, delta)
	})

	t.Run("tangent to the side is a miss", func(t *testing.T) {
		typ, _ := RayCylinder(Ray{Start: mgl64.Vec3{-5, 0, 1}, Direction: mgl64.Vec3{1, 0, 0}}, cylinder)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("above the top cap", func(t *testing.T) {
		typ, _ := RayCylinder(Ray{Start: mgl64.Vec3{-5, 1.5, 0}, Direction: mgl64.Vec3{1, 0, 0}}, cylinder)
		assert.Equal(t, TypeNone, typ)
	})
}

func TestRayEllipsoid(t *testing.T) {
	ellipsoid := shape.Ellipsoid{Radii: mgl64.Vec3{2, 1, 1}, Basis: mgl64.Ident3()}

	typ, interval := RayEllipsoid(Ray{Start: mgl64.Vec3{-5, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}, ellipsoid)
	require.Equal(t, TypeOther, typ)
	assert.InDelta(t, 3.0, interval.Min, delta)
	assert.InDelta(t, 7.0, interval.Max, delta)
	assertVec(t, mgl64.Vec3{-1, 0, 0}, interval.Normal[0], delta)

	typ, interval = RayEllipsoid(Ray{Start: mgl64.Vec3{0, -5, 0}, Direction: mgl64.Vec3{0, 1, 0}}, ellipsoid)
	require.Equal(t, TypeOther, typ)
	assert.InDelta(t, 4.0, interval.Min, delta)
	assert.InDelta(t, 6.0, interval.Max, delta)

	typ, _ = RayEllipsoid(Ray{Start: mgl64.Vec3{-5, 1.5, 0}, Direction: mgl64.Vec3{1, 0, 0}}, ellipsoid)
	assert.Equal(t, TypeNone, typ)
}

func TestRayEllipticalCylinder(t *testing.T) {
	cylinder := shape.EllipticalCylinder{Basis: mgl64.Ident3(), MajorRadius: 2, MinorRadius: 1, HalfHeight: 1}

	typ, interval := RayEllipticalCylinder(Ray{Start: mgl64.Vec3{-5, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}, cylinder)
	require.Equal(t, TypeOther, typ)
	assert.InDelta(t, 3.0, interval.Min, delta)
	assert.InDelta(t, 7.0, interval.Max, delta)
	assertVec(t, mgl64.Vec3{-1, 0, 0}, interval.Normal[0], delta)

	typ, interval = RayEllipticalCylinder(Ray{Start: mgl64.Vec3{0, 0, -5}, Direction: mgl64.Vec3{0, 0, 1}}, cylinder)
	require.Equal(t, TypeOther, typ)
	assert.InDelta(t, 4.0, interval.Min, delta)
	assert.InDelta(t, 6.0, interval.Max, delta)

	typ, _ = RayEllipticalCylinder(Ray{Start: mgl64.Vec3{-5, 2, 0}, Direction: mgl64.Vec3{1, 0, 0}}, cylinder)
	assert.Equal(t, TypeNone, typ)
}

func TestRayTriangle(t *testing.T) {
	triangle := shape.Triangle{P0: mgl64.Vec3{-1, -1, 0}, P1: mgl64.Vec3{1, -1, 0}, P2: mgl64.Vec3{0, 1, 0}}

	t.Run("front face", func(t *testing.T) {
		typ, interval := RayTriangle(Ray{Start: mgl64.Vec3{0, 0, -5}, Direction: mgl64.Vec3{0, 0, 1}}, triangle)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 5.0, interval.Min, delta)
		assert.Equal(t, interval.Min, interval.Max)
		assertVec(t, mgl64.Vec3{0, 0, -1}, interval.Normal[0], delta, "normal faces the ray")
	})

	t.Run("back face", func(t *testing.T) {
		typ, interval := RayTriangle(Ray{Start: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}}, triangle)
		require.Equal(t, TypeOther, typ)
		assertVec(t, mgl64.Vec3{0, 0, 1}, interval.Normal[0], delta)
	})

	t.Run("outside", func(t *testing.T) {
		typ, _ := RayTriangle(Ray{Start: mgl64.Vec3{5, 0, -5}, Direction: mgl64.Vec3{0, 0, 1}}, triangle)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("parallel", func(t *testing.T) {
		typ, _ := RayTriangle(Ray{Start: mgl64.Vec3{0, 0, 1}, Direction: mgl64.Vec3{1, 0, 0}}, triangle)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("behind the ray", func(t *testing.T) {
		typ, _ := RayTriangle(Ray{Start: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, 1}}, triangle)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("epsilon fattens the triangle", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{0, -1.05, -5}, Direction: mgl64.Vec3{0, 0, 1}}
		typ, _ := RayTriangle(ray, triangle)
		assert.Equal(t, TypeNone, typ)

		config := RayConfig{TriangleEpsilon: 0.1, ParallelEpsilon: ParallelEpsilon}
		typ, _ = config.RayTriangle(ray, triangle)
		assert.Equal(t, TypeOther, typ)
	})

	t.Run("degenerate", func(t *testing.T) {
		flat := shape.Triangle{P0: mgl64.Vec3{0, 0, 0}, P1: mgl64.Vec3{1, 0, 0}, P2: mgl64.Vec3{2, 0, 0}}
		typ, _ := RayTriangle(Ray{Start: mgl64.Vec3{0.5, 0, -1}, Direction: mgl64.Vec3{0, 0, 1}}, flat)
		assert.Equal(t, TypeNone, typ)
	})
}

func TestRayTetrahedron(t *testing.T) {
	tetrahedron := shape.Tetrahedron{Points: [4]mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}}

	t.Run("through two faces", func(t *testing.T) {
		typ, interval := RayTetrahedron(Ray{Start: mgl64.Vec3{0.2, 0.2, -1}, Direction: mgl64.Vec3{0, 0, 1}}, tetrahedron)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 1.0, interval.Min, delta)
		assert.InDelta(t, 1.6, interval.Max, delta)
		assertVec(t, mgl64.Vec3{0, 0, -1}, interval.Normal[0], delta)
		n := 1 / math.Sqrt(3)
		assertVec(t, mgl64.Vec3{n, n, n}, interval.Normal[1], delta)
	})

	t.Run("vertex order does not matter", func(t *testing.T) {
		swapped := shape.Tetrahedron{Points: [4]mgl64.Vec3{
			{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {0, 0, 1},
		}}
		typ, interval := RayTetrahedron(Ray{Start: mgl64.Vec3{0.2, 0.2, -1}, Direction: mgl64.Vec3{0, 0, 1}}, swapped)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 1.0, interval.Min, delta)
		assert.InDelta(t, 1.6, interval.Max, delta)
	})

	t.Run("miss", func(t *testing.T) {
		typ, _ := RayTetrahedron(Ray{Start: mgl64.Vec3{0.8, 0.8, -1}, Direction: mgl64.Vec3{0, 0, 1}}, tetrahedron)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("line keeps the whole crossing", func(t *testing.T) {
		typ, interval := LineTetrahedron(Line{Origin: mgl64.Vec3{0.2, 0.2, 5}, Direction: mgl64.Vec3{0, 0, -1}}, tetrahedron)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 4.4, interval.Min, delta)
		assert.InDelta(t, 5.0, interval.Max, delta)
	})
}

func TestRayTorus(t *testing.T) {
	torus := shape.Torus{Axis: mgl64.Vec3{0, 1, 0}, RingRadius: 2, TubeRadius: 0.5}

	t.Run("first span of the tube", func(t *testing.T) {
		typ, interval := RayTorus(Ray{Start: mgl64.Vec3{-5, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}, torus)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 2.5, interval.Min, 1e-6)
		assert.InDelta(t, 3.5, interval.Max, 1e-6)
		assertVec(t, mgl64.Vec3{-1, 0, 0}, interval.Normal[0], 1e-6)
	})

	t.Run("from the hole", func(t *testing.T) {
		typ, interval := RayTorus(Ray{Start: mgl64.Vec3{}, Direction: mgl64.Vec3{1, 0, 0}}, torus)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 1.5, interval.Min, 1e-6)
		assert.InDelta(t, 2.5, interval.Max, 1e-6)
	})

	t.Run("through the hole along the axis", func(t *testing.T) {
		typ, _ := RayTorus(Ray{Start: mgl64.Vec3{0, 5, 0}, Direction: mgl64.Vec3{0, -1, 0}}, torus)
		assert.Equal(t, TypeNone, typ)
	})

	t.Run("segment stops in the hole", func(t *testing.T) {
		segment := shape.Segment{Start: mgl64.Vec3{-5, 0, 0}, End: mgl64.Vec3{0, 0, 0}}
		typ, interval := SegmentTorus(segment, torus)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 0.5, interval.Min, 1e-6)
		assert.InDelta(t, 0.7, interval.Max, 1e-6)
	})

	t.Run("line", func(t *testing.T) {
		typ, interval := LineTorus(Line{Origin: mgl64.Vec3{}, Direction: mgl64.Vec3{1, 0, 0}}, torus)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, -2.5, interval.Min, 1e-6)
		assert.InDelta(t, -1.5, interval.Max, 1e-6)
	})
}

func TestRayFrustum(t *testing.T) {
	frustum, err := shape.NewPerspectiveFrustum(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}, math.Pi/2, 1, 1, 10)
	require.NoError(t, err)

	t.Run("along the view axis", func(t *testing.T) {
		ray := Ray{Start: mgl64.Vec3{}, Direction: mgl64.Vec3{0, 0, -1}}
		typ, interval := RayFrustum(ray, frustum)
		require.Equal(t, TypeOther, typ)
		assert.InDelta(t, 1.0, interval.Min, 1e-9)
		assert.InDelta(t, 10.0, interval.Max, 1e-9)
		assertVec(t, mgl64.Vec3{0, 0, 1}, interval.Normal[0], 1e-9)

		pointType, point := ray.Point(typ, interval)
		assert.Equal(t, TypeSegment, pointType)
		assertVec(t, mgl64.Vec3{0, 0, -1}, point.Points[0], 1e-9)
		assertVec(t, mgl64.Vec3{0, 0, -10}, point.Points[1], 1e-9)
	})

	t.Run("outside a side plane", func(t *testing.T) {
		typ, _ := RayFrustum(Ray{Start: mgl64.Vec3{20, 0, -5}, Direction: mgl64.Vec3{0, 1, 0}}, frustum)
		assert.Equal(t, TypeNone, typ)
	})
}

func TestLinePoint(t *testing.T) {
	line := Line{Origin: mgl64.Vec3{0, 0, -5}, Direction: mgl64.Vec3{0, 0, 1}}
	typ, point := line.Point(LineSphere(line, shape.Sphere{Radius: 1}))
	assert.Equal(t, TypeSegment, typ)
	assertVec(t, mgl64.Vec3{0, 0, -1}, point.Points[0], delta)
	assertVec(t, mgl64.Vec3{0, 0, 1}, point.Points[1], delta)

	typ, _ = line.Point(TypeNone, Invalid)
	assert.Equal(t, TypeNone, typ)
}
