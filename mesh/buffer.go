// Package mesh casts rays against raw triangle buffers laid out the way GPU
// vertex and index buffers are: interleaved vertices addressed by a base
// offset and a stride, and 16 or 32 bit indices.
package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/quill/intersection"
	"github.com/akmonengine/quill/shape"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrIndexSize is returned for an index width other than 2 or 4 bytes
	ErrIndexSize = errors.New("mesh: unsupported index size")
	// ErrVertexRange is returned when an index or a triangle addresses bytes
	// outside of the buffers
	ErrVertexRange = errors.New("mesh: vertex out of range")
)

// VertexFormat is the scalar type of the three vertex coordinates
type VertexFormat int8

const (
	Float32 VertexFormat = iota
	Float64
)

func (f VertexFormat) size() int {
	if f == Float64 {
		return 8
	}
	return 4
}

// Buffer describes a triangle list stored in raw bytes. Vertex i starts at
// byte BaseOffset + i*Stride and holds three native-endian coordinates.
type Buffer struct {
	Vertices   []byte
	BaseOffset int
	Stride     int
	Format     VertexFormat

	Indices       []byte
	IndexSize     int
	TriangleCount int
}

// Options controls a cast
type Options struct {
	// BackfaceCulling skips triangles whose counter-clockwise front face
	// points away from the ray
	BackfaceCulling bool
	// AnyHit stops at the first triangle hit instead of the closest one
	AnyHit bool
	// TriangleEpsilon fattens triangles in barycentric units
	TriangleEpsilon float64
}

// Hit is the result of a cast. Type is TypeNone when no triangle was hit.
type Hit struct {
	Type     intersection.Type
	Triangle int
	Point    intersection.IntersectionPoint
	// Normal is the unit face normal, turned against the ray
	Normal mgl64.Vec3
}

// Index is an index type a buffer can hold
type Index interface {
	~uint16 | ~uint32
}

// RayCast intersects ray with every triangle of buffer
func RayCast(ray intersection.Ray, buffer Buffer, options Options) (Hit, error) {
	switch buffer.IndexSize {
	case 2:
		return rayCast(ray, buffer, options, binary.NativeEndian.Uint16)
	case 4:
		return rayCast(ray, buffer, options, binary.NativeEndian.Uint32)
	}
	return Hit{Type: intersection.TypeNone}, fmt.Errorf("%w: %d", ErrIndexSize, buffer.IndexSize)
}

func rayCast[I Index](ray intersection.Ray, buffer Buffer, options Options, decode func([]byte) I) (Hit, error) {
	best := Hit{Type: intersection.TypeNone, Triangle: -1}
	bestT := math.MaxFloat64

	if len(buffer.Indices) < buffer.TriangleCount*3*buffer.IndexSize {
		return best, fmt.Errorf("%w: %d triangles need %d index bytes, got %d",
			ErrVertexRange, buffer.TriangleCount, buffer.TriangleCount*3*buffer.IndexSize, len(buffer.Indices))
	}

	config := intersection.RayConfig{
		TriangleEpsilon: options.TriangleEpsilon,
		ParallelEpsilon: intersection.ParallelEpsilon,
	}

	for i := 0; i < buffer.TriangleCount; i++ {
		var corners [3]mgl64.Vec3
		valid := true
		for k := 0; k < 3; k++ {
			offset := (i*3 + k) * buffer.IndexSize
			index := int(decode(buffer.Indices[offset : offset+buffer.IndexSize]))

			vertex, ok, err := buffer.vertex(index)
			if err != nil {
				return best, fmt.Errorf("triangle %d: %w", i, err)
			}
			valid = valid && ok
			corners[k] = vertex
		}
		if !valid {
			continue
		}

		triangle := shape.Triangle{P0: corners[0], P1: corners[1], P2: corners[2]}
		if degenerate(triangle) {
			continue
		}
		if options.BackfaceCulling && triangle.Normal().Dot(ray.Direction) > 0 {
			continue
		}

		typ, interval := config.RayTriangle(ray, triangle)
		if !typ.Positive() || interval.Min >= bestT {
			continue
		}

		bestT = interval.Min
		point := ray.At(interval.Min)
		best = Hit{
			Type:     intersection.TypePoint,
			Triangle: i,
			Point:    intersection.IntersectionPoint{Points: [2]mgl64.Vec3{point, point}, Depth: interval.Min},
			Normal:   interval.Normal[0],
		}
		if options.AnyHit {
			return best, nil
		}
	}
	return best, nil
}

// vertex decodes vertex index. ok is false for a vertex with a NaN or
// infinite coordinate.
func (b Buffer) vertex(index int) (mgl64.Vec3, bool, error) {
	start := b.BaseOffset + index*b.Stride
	size := b.Format.size()
	if index < 0 || start < 0 || start+3*size > len(b.Vertices) {
		return mgl64.Vec3{}, false, fmt.Errorf("%w: index %d at byte %d, buffer holds %d bytes",
			ErrVertexRange, index, start, len(b.Vertices))
	}

	var v mgl64.Vec3
	ok := true
	for k := 0; k < 3; k++ {
		data := b.Vertices[start+k*size:]
		if b.Format == Float64 {
			x := math.Float64frombits(binary.NativeEndian.Uint64(data))
			ok = ok && !math.IsNaN(x) && !math.IsInf(x, 0)
			v[k] = x
			continue
		}

		x := math32.Float32frombits(binary.NativeEndian.Uint32(data))
		ok = ok && !math32.IsNaN(x) && !math32.IsInf(x, 0)
		v[k] = float64(x)
	}
	return v, ok, nil
}

func degenerate(triangle shape.Triangle) bool {
	return triangle.P1.Sub(triangle.P0).LenSqr() < intersection.DegenerateEdgeSq ||
		triangle.P2.Sub(triangle.P1).LenSqr() < intersection.DegenerateEdgeSq ||
		triangle.P0.Sub(triangle.P2).LenSqr() < intersection.DegenerateEdgeSq
}

// Builder appends float32 vertices and uint32 indices into a new Buffer
type Builder struct {
	vertices []byte
	indices  []byte
	count    int
}

// AddTriangle appends one triangle with its own three vertices
func (b *Builder) AddTriangle(p0, p1, p2 mgl64.Vec3) {
	base := uint32(len(b.vertices) / 12)
	for _, p := range [3]mgl64.Vec3{p0, p1, p2} {
		for k := 0; k < 3; k++ {
			b.vertices = binary.NativeEndian.AppendUint32(b.vertices, math32.Float32bits(float32(p[k])))
		}
	}
	for k := uint32(0); k < 3; k++ {
		b.indices = binary.NativeEndian.AppendUint32(b.indices, base+k)
	}
	b.count++
}

// Buffer returns the packed buffer
func (b *Builder) Buffer() Buffer {
	return Buffer{
		Vertices:      b.vertices,
		Stride:        12,
		Format:        Float32,
		Indices:       b.indices,
		IndexSize:     4,
		TriangleCount: b.count,
	}
}
