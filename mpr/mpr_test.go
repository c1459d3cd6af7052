package mpr

import (
	"math"
	"math/rand"
	"testing"

	"github.com/akmonengine/quill/debugdraw"
	"github.com/akmonengine/quill/intersection"
	"github.com/akmonengine/quill/shape"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxesOnTheCenterRay(t *testing.T) {
	a := shape.NewAABB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	b := shape.NewAABB(mgl64.Vec3{1.5, 0, 0}, mgl64.Vec3{1, 1, 1})

	engine := New(DefaultConfig())
	var manifold intersection.Manifold
	typ := engine.Test(a, b, &manifold)

	require.Equal(t, intersection.TypeOther, typ)
	assert.Equal(t, StateHit, engine.State())
	require.Equal(t, 1, manifold.PointCount)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, manifold.Normal)
	assert.InDelta(t, 0.5, manifold.Points[0].Depth, 1e-12)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, manifold.Points[0].Points[0])
	assert.Equal(t, mgl64.Vec3{0.5, 1, 1}, manifold.Points[0].Points[1])
}

func TestSpheres(t *testing.T) {
	a := shape.Sphere{Radius: 1}

	t.Run("head on", func(t *testing.T) {
		engine := New(DefaultConfig())
		var manifold intersection.Manifold
		typ := engine.Test(a, shape.Sphere{Center: mgl64.Vec3{1.5, 0, 0}, Radius: 1}, &manifold)

		require.Equal(t, intersection.TypeOther, typ)
		assert.InDelta(t, 0.5, manifold.Points[0].Depth, 1e-12)
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, manifold.Normal)
	})

	t.Run("off axis", func(t *testing.T) {
		center := mgl64.Vec3{1.5, 0.3, 0}
		engine := New(DefaultConfig())
		var manifold intersection.Manifold
		typ := engine.Test(a, shape.Sphere{Center: center, Radius: 1}, &manifold)

		require.Equal(t, intersection.TypeOther, typ)
		contact := manifold.Points[0]
		assert.InDelta(t, 2-center.Len(), contact.Depth, 1e-2)

		expected := center.Normalize()
		assert.InDeltaSlice(t, expected[:], manifold.Normal[:], 1e-2)
		assert.InDelta(t, 1.0, manifold.Normal.Len(), 1e-9)

		// contact points sit on the surfaces, up to the portal chord
		assert.InDelta(t, 1.0, contact.Points[0].Len(), 1e-2)
		assert.InDelta(t, 1.0, contact.Points[1].Sub(center).Len(), 1e-2)
	})

	t.Run("separated", func(t *testing.T) {
		engine := New(DefaultConfig())
		var manifold intersection.Manifold
		typ := engine.Test(a, shape.Sphere{Center: mgl64.Vec3{3, 0, 0}, Radius: 1}, &manifold)
		assert.Equal(t, intersection.TypeNone, typ)
		assert.Equal(t, StateMiss, engine.State())
	})

	t.Run("separated off axis", func(t *testing.T) {
		engine := New(DefaultConfig())
		typ := engine.Test(a, shape.Sphere{Center: mgl64.Vec3{1.5, 1.6, 0.2}, Radius: 1}, nil)
		assert.Equal(t, intersection.TypeNone, typ)
	})

	t.Run("same center", func(t *testing.T) {
		engine := New(DefaultConfig())
		typ := engine.Test(a, shape.Sphere{Radius: 2}, nil)
		assert.Equal(t, intersection.TypeNone, typ)
	})
}

func TestSharpenedContact(t *testing.T) {
	// the center ray is 40 degrees away from the contact normal, which runs
	// from the slab edge to the sphere center
	slab := shape.NewAABB(mgl64.Vec3{}, mgl64.Vec3{5, 0.5, 5})
	sphere := shape.Sphere{Center: mgl64.Vec3{5.5, 1.2, 0}, Radius: 1}

	engine := New(DefaultConfig())
	var manifold intersection.Manifold
	require.Equal(t, intersection.TypeOther, engine.Test(slab, sphere, &manifold))

	// closest slab point is its edge (5, 0.5, 0)
	offset := sphere.Center.Sub(mgl64.Vec3{5, 0.5, 0})
	expected := offset.Normalize()
	assert.InDelta(t, sphere.Radius-offset.Len(), manifold.Points[0].Depth, 1e-3)
	assert.InDeltaSlice(t, expected[:], manifold.Normal[:], 0.02)
	assert.InDelta(t, 1.0, manifold.Normal.Len(), 1e-9)
}

func TestMixedShapes(t *testing.T) {
	tests := []struct {
		name    string
		a, b    shape.Convex
		overlap bool
	}{
		{
			name:    "sphere and capsule",
			a:       shape.Sphere{Radius: 1},
			b:       shape.Capsule{PointA: mgl64.Vec3{1.5, -1, 0}, PointB: mgl64.Vec3{1.5, 1, 0.2}, Radius: 0.75},
			overlap: true,
		},
		{
			name:    "sphere and distant capsule",
			a:       shape.Sphere{Radius: 1},
			b:       shape.Capsule{PointA: mgl64.Vec3{2.5, -1, 0}, PointB: mgl64.Vec3{2.5, 1, 0.2}, Radius: 0.75},
			overlap: false,
		},
		{
			name:    "rotated box and cylinder",
			a:       shape.NewOBB(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, mgl64.QuatRotate(0.4, mgl64.Vec3{1, 1, 0}.Normalize())),
			b:       shape.Cylinder{PointA: mgl64.Vec3{1.2, -1, 0.3}, PointB: mgl64.Vec3{1.2, 1, 0.3}, Radius: 0.5},
			overlap: true,
		},
		{
			name:    "tetrahedron and ellipsoid",
			a:       shape.Tetrahedron{Points: [4]mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, 0, 2}}},
			b:       shape.Ellipsoid{Center: mgl64.Vec3{2, 2, 2}, Radii: mgl64.Vec3{0.5, 0.5, 0.5}, Basis: mgl64.Ident3()},
			overlap: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(DefaultConfig())
			var manifold intersection.Manifold
			typ := engine.Test(tt.a, tt.b, &manifold)
			assert.Equal(t, tt.overlap, typ.Positive())

			if tt.overlap {
				assert.Greater(t, manifold.Points[0].Depth, 0.0)
				direction := tt.b.GetCenter().Sub(tt.a.GetCenter())
				assert.Greater(t, manifold.Normal.Dot(direction), 0.0, "normal points from a toward b")
			}
		})
	}
}

func TestAgreesWithBoxOverlap(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	engine := New(DefaultConfig())

	randomBox := func() shape.AABB {
		center := mgl64.Vec3{random.Float64()*4 - 2, random.Float64()*4 - 2, random.Float64()*4 - 2}
		half := mgl64.Vec3{0.5 + random.Float64()*1.5, 0.5 + random.Float64()*1.5, 0.5 + random.Float64()*1.5}
		return shape.NewAABB(center, half)
	}

	checked := 0
	for i := 0; i < 200; i++ {
		a, b := randomBox(), randomBox()

		// signed overlap on the worst axis
		overlap := math.MaxFloat64
		for k := 0; k < 3; k++ {
			overlap = math.Min(overlap, math.Min(a.Max[k], b.Max[k])-math.Max(a.Min[k], b.Min[k]))
		}
		if math.Abs(overlap) < 0.01 {
			continue
		}
		checked++

		typ := engine.Test(a, b, nil)
		assert.Equal(t, overlap > 0, typ.Positive(), "case %d: %v %v overlap %v", i, a, b, overlap)
	}
	assert.Greater(t, checked, 150)
}

func TestAgreesWithObbObb(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	engine := New(DefaultConfig())

	randomOBB := func() shape.OBB {
		center := mgl64.Vec3{random.Float64()*4 - 2, random.Float64()*4 - 2, random.Float64()*4 - 2}
		half := mgl64.Vec3{0.2 + random.Float64()*1.3, 0.2 + random.Float64()*1.3, 0.2 + random.Float64()*1.3}
		axis := mgl64.Vec3{random.Float64()*2 - 1, random.Float64()*2 - 1, random.Float64() + 0.1}
		return shape.NewOBB(center, half, mgl64.QuatRotate(random.Float64()*2*math.Pi, axis.Normalize()))
	}

	checked := 0
	for i := 0; i < 500; i++ {
		a, b := randomOBB(), randomOBB()
		if gap := boxGap(a, b); math.Abs(gap) < 0.02 {
			continue
		}
		checked++

		sat := intersection.ObbObb(a, b, nil)
		assert.Equal(t, sat.Positive(), engine.Test(a, b, nil).Positive(), "case %d: %v %v", i, a, b)
	}
	assert.Greater(t, checked, 450)
}

// boxGap is the largest gap between the projections of two boxes on their 15
// separating axis candidates
func boxGap(a, b shape.OBB) float64 {
	radius := func(box shape.OBB, axis mgl64.Vec3) float64 {
		r := 0.0
		for k := 0; k < 3; k++ {
			r += box.HalfExtents[k] * math.Abs(box.Axis(k).Dot(axis))
		}
		return r
	}

	axes := make([]mgl64.Vec3, 0, 15)
	for i := 0; i < 3; i++ {
		axes = append(axes, a.Axis(i), b.Axis(i))
		for j := 0; j < 3; j++ {
			if cross := a.Axis(i).Cross(b.Axis(j)); cross.Len() > 1e-9 {
				axes = append(axes, cross.Normalize())
			}
		}
	}

	offset := b.Center.Sub(a.Center)
	gap := -math.MaxFloat64
	for _, axis := range axes {
		gap = math.Max(gap, math.Abs(offset.Dot(axis))-radius(a, axis)-radius(b, axis))
	}
	return gap
}

func TestPointInside(t *testing.T) {
	sphere := shape.Sphere{Radius: 1}
	box := shape.NewAABB(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})

	tests := []struct {
		name     string
		point    mgl64.Vec3
		shape    shape.Convex
		expected intersection.Type
	}{
		{"sphere on axis", mgl64.Vec3{0.5, 0, 0}, sphere, intersection.TypeInside},
		{"sphere beyond", mgl64.Vec3{2, 0, 0}, sphere, intersection.TypeOutside},
		{"sphere off axis", mgl64.Vec3{0.3, 0.4, 0}, sphere, intersection.TypeInside},
		{"sphere near a diagonal", mgl64.Vec3{0.8, 0.8, 0}, sphere, intersection.TypeOutside},
		{"sphere center", mgl64.Vec3{}, sphere, intersection.TypeInside},
		{"box", mgl64.Vec3{0.5, 0.9, 0.2}, box, intersection.TypeInside},
		{"beside the box", mgl64.Vec3{1.2, 0.3, 0.1}, box, intersection.TypeOutside},
	}

	engine := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.PointInside(tt.point, tt.shape))
		})
	}
}

func TestSweptTest(t *testing.T) {
	target := shape.NewSupportShape(shape.Sphere{Radius: 1})

	tests := []struct {
		name     string
		start    mgl64.Vec3
		delta    mgl64.Vec3
		expected intersection.Type
	}{
		{"through the center", mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{10, 0, 0}, intersection.TypeOther},
		{"passing above", mgl64.Vec3{-5, 3, 0}, mgl64.Vec3{10, 0, 0}, intersection.TypeNone},
		{"grazing", mgl64.Vec3{-5, 0.5, 0}, mgl64.Vec3{10, 0, 0}, intersection.TypeOther},
		{"stopping short", mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{3, 0, 0}, intersection.TypeNone},
	}

	engine := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moving := shape.NewMovingSupportShape(shape.Sphere{Center: tt.start, Radius: 0.5}, tt.delta, mgl64.QuatIdent())
			assert.Equal(t, tt.expected, engine.SweptTest(moving, target))
		})
	}
}

func TestSweptTestRotation(t *testing.T) {
	// a bar along x turning a quarter around z ends up along y
	bar := shape.NewOBB(mgl64.Vec3{}, mgl64.Vec3{2, 0.1, 0.1}, mgl64.QuatIdent())
	turning := shape.NewMovingSupportShape(bar, mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}))

	tests := []struct {
		name     string
		sphere   shape.Sphere
		expected intersection.Type
	}{
		{"reached at the end of the turn", shape.Sphere{Center: mgl64.Vec3{0, 1.5, 0}, Radius: 0.2}, intersection.TypeOther},
		{"beyond the tip", shape.Sphere{Center: mgl64.Vec3{0, 2.5, 0}, Radius: 0.2}, intersection.TypeNone},
	}

	engine := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := shape.NewSupportShape(tt.sphere)
			assert.Equal(t, tt.expected, engine.SweptTest(turning, target))
			assert.Equal(t, tt.expected, engine.SweptTest(target, turning))
		})
	}

	t.Run("start pose alone misses", func(t *testing.T) {
		assert.Equal(t, intersection.TypeNone, engine.Test(bar, shape.Sphere{Center: mgl64.Vec3{0, 1.5, 0}, Radius: 0.2}, nil))
	})
}

func TestDebugDrawer(t *testing.T) {
	recorder := &debugdraw.Recorder{}
	engine := New(DefaultConfig())
	engine.Debug = recorder

	t.Run("miss draws the centers", func(t *testing.T) {
		recorder.Reset()
		engine.Test(shape.Sphere{Radius: 1}, shape.Sphere{Center: mgl64.Vec3{3, 0, 0}, Radius: 1}, nil)

		primitives := recorder.Primitives()
		require.Len(t, primitives, 3)
		for _, p := range primitives {
			assert.Equal(t, debugdraw.KindPoint, p.Kind)
			assert.True(t, p.Style.OnTop)
		}
	})

	t.Run("hit draws the portal", func(t *testing.T) {
		recorder.Reset()
		engine.Test(shape.Sphere{Radius: 1}, shape.Sphere{Center: mgl64.Vec3{1.5, 0.3, 0}, Radius: 1}, nil)

		counts := map[debugdraw.Kind]int{}
		for _, p := range recorder.Primitives() {
			counts[p.Kind]++
		}
		assert.Equal(t, 12, counts[debugdraw.KindPoint])
		assert.Equal(t, 3, counts[debugdraw.KindLine])
		assert.Equal(t, 3, counts[debugdraw.KindTriangle])
	})
}

func TestPool(t *testing.T) {
	engine := Get()
	engine.Config.RefineIterations = 1
	engine.Debug = &debugdraw.Recorder{}
	Put(engine)

	again := Get()
	defer Put(again)
	assert.Equal(t, DefaultConfig(), again.Config)
	assert.Equal(t, StateInit, again.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Hit", StateHit.String())
	assert.Equal(t, "Discover", StateDiscover.String())
	assert.Equal(t, "Unknown", State(42).String())
}
