package shape

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and orientation in 3D space.
// The zero value is the identity transform.
type Transform struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	InverseRotation mgl64.Quat
}

// NewTransform creates a transform from a translation and a rotation
func NewTransform(position mgl64.Vec3, rotation mgl64.Quat) Transform {
	rotation = rotation.Normalize()

	return Transform{
		Position:        position,
		Rotation:        rotation,
		InverseRotation: rotation.Conjugate(),
	}
}

// IdentityTransform creates an identity transform
func IdentityTransform() Transform {
	return Transform{
		Position:        mgl64.Vec3{0, 0, 0},
		Rotation:        mgl64.QuatIdent(),
		InverseRotation: mgl64.QuatIdent(),
	}
}

// orientation returns the rotation, treating the zero quaternion as identity
func (t Transform) orientation() mgl64.Quat {
	if t.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

func (t Transform) inverseOrientation() mgl64.Quat {
	if t.InverseRotation == (mgl64.Quat{}) {
		return t.orientation().Conjugate()
	}
	return t.InverseRotation
}

// IsIdentity reports whether the transform neither moves nor rotates
func (t Transform) IsIdentity() bool {
	return t.Position == (mgl64.Vec3{}) && t.orientation() == mgl64.QuatIdent()
}

// TransformPoint applies rotation then translation
func (t Transform) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.orientation().Rotate(p).Add(t.Position)
}

// TransformDirection applies the rotation only
func (t Transform) TransformDirection(d mgl64.Vec3) mgl64.Vec3 {
	return t.orientation().Rotate(d)
}

// InverseTransformDirection applies the inverse rotation only
func (t Transform) InverseTransformDirection(d mgl64.Vec3) mgl64.Vec3 {
	return t.inverseOrientation().Rotate(d)
}

// Basis returns the rotation as a 3x3 matrix whose columns are the rotated axes
func (t Transform) Basis() mgl64.Mat3 {
	return t.orientation().Mat4().Mat3()
}
