package mesh

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrEmptyMesh is returned when a tessellation produces no triangle
var ErrEmptyMesh = errors.New("mesh: tessellation produced no triangle")

// FromSDF tessellates a signed distance solid with uniform marching cubes,
// cells being the number of cells along the longest side of its bounding box.
// The buffer holds float32 vertices and uint32 indices.
func FromSDF(solid sdf.SDF3, cells int) (Buffer, error) {
	if cells <= 0 {
		return Buffer{}, fmt.Errorf("mesh: cell count must be positive, got %d", cells)
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(solid, renderer)
	if len(triangles) == 0 {
		return Buffer{}, ErrEmptyMesh
	}

	var builder Builder
	for _, tri := range triangles {
		builder.AddTriangle(
			mgl64.Vec3{tri[0].X, tri[0].Y, tri[0].Z},
			mgl64.Vec3{tri[1].X, tri[1].Y, tri[1].Z},
			mgl64.Vec3{tri[2].X, tri[2].Y, tri[2].Z},
		)
	}
	return builder.Buffer(), nil
}
