// Package quill runs the queries of the geometry kernel in batches over a pool
// of goroutines.
//
// The primitive tests of the intersection package are pure functions and the
// MPR engines are pooled, so independent queries can be spread over workers
// without any locking. Results are written at the index of their query.
package quill

import (
	"fmt"

	"github.com/akmonengine/quill/intersection"
	"github.com/akmonengine/quill/mesh"
	"github.com/akmonengine/quill/mpr"
	"github.com/akmonengine/quill/shape"
)

// CastRays casts every ray against buffer. hits[i] is the result of rays[i].
// The returned error is the one of the lowest failing ray; a buffer layout
// error fails every ray the same way.
func CastRays(workersCount int, buffer mesh.Buffer, rays []intersection.Ray, options mesh.Options) ([]mesh.Hit, error) {
	hits := make([]mesh.Hit, len(rays))
	errs := make([]error, len(rays))

	task(workersCount, rays, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i], errs[i] = mesh.RayCast(rays[i], buffer, options)
		}
	})

	for i, err := range errs {
		if err != nil {
			return hits, fmt.Errorf("ray %d: %w", i, err)
		}
	}
	return hits, nil
}

// Pair is a couple of convex shapes to test against each other
type Pair struct {
	A shape.Convex
	B shape.Convex
}

// Result is the outcome of one pair test
type Result struct {
	Type     intersection.Type
	Manifold intersection.Manifold
}

// TestPairs runs MPR on every pair with the default tolerances, see
// TestPairsWithConfig
func TestPairs(workersCount int, pairs []Pair) []Result {
	return TestPairsWithConfig(workersCount, pairs, mpr.DefaultConfig())
}

// TestPairsWithConfig runs MPR on every pair. Each worker borrows one engine
// for its whole chunk.
func TestPairsWithConfig(workersCount int, pairs []Pair, config mpr.Config) []Result {
	results := make([]Result, len(pairs))

	task(workersCount, pairs, func(start, end int) {
		engine := mpr.Get()
		defer mpr.Put(engine)
		engine.Config = config

		for i := start; i < end; i++ {
			result := &results[i]
			result.Manifold.PointCount = 1
			result.Type = engine.Test(pairs[i].A, pairs[i].B, &result.Manifold)
			if !result.Type.Positive() {
				result.Manifold.PointCount = 0
			}
		}
	})
	return results
}
