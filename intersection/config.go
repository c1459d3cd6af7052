package intersection

const (
	// ParallelEpsilon is the largest |direction · normal| for which a ray is
	// considered parallel to a plane or a triangle.
	ParallelEpsilon = 0.00001

	// CylinderEpsilon is the threshold under which a ray is treated as parallel
	// to a cylinder axis.
	CylinderEpsilon = 0.000001

	// DegenerateEdgeSq is the squared edge length under which a mesh triangle
	// is skipped.
	DegenerateEdgeSq = 0.0000001

	// SegmentEpsilon is the tolerance of the closest-point routines between
	// lines and segments.
	SegmentEpsilon = 0.000001
)

// RayConfig holds the tunables of the ray, line and segment tests
type RayConfig struct {
	// TriangleEpsilon fattens (positive) or shrinks (negative) triangles in
	// barycentric units during containment checks.
	TriangleEpsilon float64 `toml:"triangle_epsilon"`
	// ParallelEpsilon, see the package constant of the same name.
	ParallelEpsilon float64 `toml:"parallel_epsilon"`
}

// DefaultRayConfig returns the tunables used by the package level functions
func DefaultRayConfig() RayConfig {
	return RayConfig{
		TriangleEpsilon: 0,
		ParallelEpsilon: ParallelEpsilon,
	}
}

// SatConfig holds the tunables of the OBB-OBB separating axis test
type SatConfig struct {
	// Zero is the smallest overlap on every axis for the boxes to be in contact.
	Zero float64 `toml:"zero"`
	// FudgeFactor scales the overlap of the 9 edge axes before comparison so
	// that a face axis wins when the two are nearly equal.
	FudgeFactor float64 `toml:"fudge_factor"`
	// ParallelCutoff is the |cos| above which two box axes are parallel and
	// their cross product is never chosen as the contact normal.
	ParallelCutoff float64 `toml:"parallel_cutoff"`
	// AbsEpsilon is added to the absolute rotation terms to absorb
	// arithmetic error on near-parallel edges.
	AbsEpsilon float64 `toml:"abs_epsilon"`
	// LengthEpsilon is the length under which an edge cross axis is degenerate.
	LengthEpsilon float64 `toml:"length_epsilon"`
}

// DefaultSatConfig returns the tunables used by ObbObb
func DefaultSatConfig() SatConfig {
	return SatConfig{
		Zero:           0.0002,
		FudgeFactor:    1.05,
		ParallelCutoff: 0.98,
		AbsEpsilon:     1e-6,
		LengthEpsilon:  1.192092896e-07,
	}
}
