package components

import "github.com/argus-labs/loggable/pkg/datatype"

// Translation3D is a translation vector in 3D space.
type Translation3D [3]float32

func (Translation3D) Name() string                { return "Translation3D" }
func (Translation3D) DataType() datatype.DataType { return datatype.Vec3() }
func (t Translation3D) Value() any                { return floats(t[:]...) }

// Scale3D is a per-axis scale factor.
type Scale3D [3]float32

func (Scale3D) Name() string                { return "Scale3D" }
func (Scale3D) DataType() datatype.DataType { return datatype.Vec3() }
func (s Scale3D) Value() any                { return floats(s[:]...) }

// Quaternion is a rotation in xyzw order.
type Quaternion [4]float32

// IdentityQuaternion is the rotation that does nothing.
var IdentityQuaternion = Quaternion{0, 0, 0, 1} //nolint:gochecknoglobals // constant value

// RotationAxisAngle is a rotation of Angle radians around Axis.
type RotationAxisAngle struct {
	Axis  [3]float32 `json:"axis"`
	Angle float32    `json:"angle"`
}

// Rotation3D is a 3D rotation given either as a quaternion or as an axis and angle. The zero value
// is the identity rotation.
type Rotation3D struct {
	Quaternion *Quaternion        `json:"quaternion,omitempty"`
	AxisAngle  *RotationAxisAngle `json:"axis_angle,omitempty"`
}

const (
	rotationQuaternion = iota
	rotationAxisAngle
)

// RotationFromQuaternion returns a quaternion rotation.
func RotationFromQuaternion(q Quaternion) Rotation3D {
	return Rotation3D{Quaternion: &q, AxisAngle: nil}
}

// RotationFromAxisAngle returns an axis-angle rotation.
func RotationFromAxisAngle(axis [3]float32, angle float32) Rotation3D {
	return Rotation3D{Quaternion: nil, AxisAngle: &RotationAxisAngle{Axis: axis, Angle: angle}}
}

func (Rotation3D) Name() string { return "Rotation3D" }

func (Rotation3D) DataType() datatype.DataType {
	return datatype.Union(
		datatype.NewField("quaternion", datatype.FixedSizeList(datatype.Float32(), 4)),
		datatype.NewField("axis_angle", datatype.Struct(
			datatype.NewField("axis", datatype.Vec3()),
			datatype.NewField("angle", datatype.Float32()),
		)),
	)
}

func (r Rotation3D) Value() any {
	switch {
	case r.AxisAngle != nil:
		aa := r.AxisAngle
		return datatype.UnionValue{Variant: rotationAxisAngle, Value: []any{floats(aa.Axis[:]...), aa.Angle}}
	case r.Quaternion != nil:
		return datatype.UnionValue{Variant: rotationQuaternion, Value: floats(r.Quaternion[:]...)}
	default:
		return datatype.UnionValue{Variant: rotationQuaternion, Value: floats(IdentityQuaternion[:]...)}
	}
}

// TransformRelation tells in which direction a transform maps between parent and child space.
type TransformRelation uint8

const (
	ParentFromChild TransformRelation = iota
	ChildFromParent
)

func (TransformRelation) Name() string { return "TransformRelation" }

func (TransformRelation) DataType() datatype.DataType {
	return datatype.Enum("parent_from_child", "child_from_parent")
}

func (t TransformRelation) Value() any { return uint8(t) }

// -------------------------------------------------------------------------------------------------
// Cameras
// -------------------------------------------------------------------------------------------------

// Direction is one axis direction of a ViewCoordinates.
type Direction uint8

const (
	DirUp Direction = iota + 1
	DirDown
	DirRight
	DirLeft
	DirForward
	DirBack
)

// ViewCoordinates names the direction of the X, Y and Z axes of a space.
type ViewCoordinates [3]Direction

// Common camera conventions.
var (
	RDF = ViewCoordinates{DirRight, DirDown, DirForward} //nolint:gochecknoglobals // constant value
	RUB = ViewCoordinates{DirRight, DirUp, DirBack}      //nolint:gochecknoglobals // constant value
	RFU = ViewCoordinates{DirRight, DirForward, DirUp}   //nolint:gochecknoglobals // constant value
)

func (ViewCoordinates) Name() string                { return "ViewCoordinates" }
func (ViewCoordinates) DataType() datatype.DataType { return datatype.FixedSizeList(datatype.UInt8(), 3) }
func (v ViewCoordinates) Value() any                { return []any{uint8(v[0]), uint8(v[1]), uint8(v[2])} }

// PinholeProjection is a 3x3 camera intrinsics matrix in column-major order.
type PinholeProjection [9]float32

// NewPinholeProjection builds the intrinsics of a camera with focal length f and principal point
// (u, v), all in pixels.
func NewPinholeProjection(f, u, v float32) PinholeProjection {
	return PinholeProjection{f, 0, 0, 0, f, 0, u, v, 1}
}

func (PinholeProjection) Name() string { return "PinholeProjection" }

func (PinholeProjection) DataType() datatype.DataType {
	return datatype.FixedSizeList(datatype.Float32(), 9) //nolint:mnd // 3x3 matrix
}

func (p PinholeProjection) Value() any { return floats(p[:]...) }

// Resolution is the width and height of an image in pixels.
type Resolution [2]float32

func (Resolution) Name() string                { return "Resolution" }
func (Resolution) DataType() datatype.DataType { return datatype.Vec2() }
func (r Resolution) Value() any                { return floats(r[:]...) }
