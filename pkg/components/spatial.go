package components

import "github.com/argus-labs/loggable/pkg/datatype"

// -------------------------------------------------------------------------------------------------
// Positions, vectors and sizes
// -------------------------------------------------------------------------------------------------

// Position2D is a point in 2D space.
type Position2D [2]float32

func (Position2D) Name() string                { return "Position2D" }
func (Position2D) DataType() datatype.DataType { return datatype.Vec2() }
func (p Position2D) Value() any                { return floats(p[:]...) }

// Position3D is a point in 3D space.
type Position3D [3]float32

func (Position3D) Name() string                { return "Position3D" }
func (Position3D) DataType() datatype.DataType { return datatype.Vec3() }
func (p Position3D) Value() any                { return floats(p[:]...) }

// Vector2D is a direction and magnitude in 2D space.
type Vector2D [2]float32

func (Vector2D) Name() string                { return "Vector2D" }
func (Vector2D) DataType() datatype.DataType { return datatype.Vec2() }
func (v Vector2D) Value() any                { return floats(v[:]...) }

// Vector3D is a direction and magnitude in 3D space.
type Vector3D [3]float32

func (Vector3D) Name() string                { return "Vector3D" }
func (Vector3D) DataType() datatype.DataType { return datatype.Vec3() }
func (v Vector3D) Value() any                { return floats(v[:]...) }

// HalfSize2D is half the extent of a 2D box along each axis.
type HalfSize2D [2]float32

func (HalfSize2D) Name() string                { return "HalfSize2D" }
func (HalfSize2D) DataType() datatype.DataType { return datatype.Vec2() }
func (h HalfSize2D) Value() any                { return floats(h[:]...) }

// HalfSize3D is half the extent of a 3D box along each axis.
type HalfSize3D [3]float32

func (HalfSize3D) Name() string                { return "HalfSize3D" }
func (HalfSize3D) DataType() datatype.DataType { return datatype.Vec3() }
func (h HalfSize3D) Value() any                { return floats(h[:]...) }

// LineStrip2D is a connected sequence of 2D points.
type LineStrip2D [][2]float32

func (LineStrip2D) Name() string                { return "LineStrip2D" }
func (LineStrip2D) DataType() datatype.DataType { return datatype.List(datatype.Vec2()) }

func (l LineStrip2D) Value() any {
	out := make([]any, len(l))
	for i := range l {
		out[i] = floats(l[i][:]...)
	}
	return out
}

// LineStrip3D is a connected sequence of 3D points.
type LineStrip3D [][3]float32

func (LineStrip3D) Name() string                { return "LineStrip3D" }
func (LineStrip3D) DataType() datatype.DataType { return datatype.List(datatype.Vec3()) }

func (l LineStrip3D) Value() any {
	out := make([]any, len(l))
	for i := range l {
		out[i] = floats(l[i][:]...)
	}
	return out
}

// -------------------------------------------------------------------------------------------------
// Appearance
// -------------------------------------------------------------------------------------------------

// Color is an sRGB color with straight alpha, packed as 0xRRGGBBAA.
type Color uint32

// NewColor packs four channels into a Color.
func NewColor(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Channels unpacks the color into red, green, blue and alpha.
func (c Color) Channels() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c) //nolint:gosec // truncation masks each channel
}

func (Color) Name() string                { return "Color" }
func (Color) DataType() datatype.DataType { return datatype.UInt32() }
func (c Color) Value() any                { return uint32(c) }

// Radius is the radius of a point or the half-width of a line, in scene units.
type Radius float32

func (Radius) Name() string                { return "Radius" }
func (Radius) DataType() datatype.DataType { return datatype.Float32() }
func (r Radius) Value() any                { return float32(r) }

// StrokeWidth is the width of a stroke in UI points.
type StrokeWidth float32

func (StrokeWidth) Name() string                { return "StrokeWidth" }
func (StrokeWidth) DataType() datatype.DataType { return datatype.Float32() }
func (s StrokeWidth) Value() any                { return float32(s) }

// MarkerSize is the radius of a plot marker in UI points.
type MarkerSize float32

func (MarkerSize) Name() string                { return "MarkerSize" }
func (MarkerSize) DataType() datatype.DataType { return datatype.Float32() }
func (m MarkerSize) Value() any                { return float32(m) }

// MarkerShape is the shape of a plot marker.
type MarkerShape uint8

const (
	MarkerCircle MarkerShape = iota
	MarkerDiamond
	MarkerSquare
	MarkerCross
	MarkerPlus
	MarkerUp
	MarkerDown
	MarkerLeft
	MarkerRight
	MarkerAsterisk
)

func (MarkerShape) Name() string { return "MarkerShape" }

func (MarkerShape) DataType() datatype.DataType {
	return datatype.Enum("circle", "diamond", "square", "cross", "plus", "up", "down", "left", "right", "asterisk")
}

func (m MarkerShape) Value() any { return uint8(m) }

// DrawOrder sorts overlapping 2D primitives, higher values are drawn on top.
type DrawOrder float32

func (DrawOrder) Name() string                { return "DrawOrder" }
func (DrawOrder) DataType() datatype.DataType { return datatype.Float32() }
func (d DrawOrder) Value() any                { return float32(d) }

// ShowLabels toggles label rendering.
type ShowLabels bool

func (ShowLabels) Name() string                { return "ShowLabels" }
func (ShowLabels) DataType() datatype.DataType { return datatype.Bool() }
func (s ShowLabels) Value() any                { return bool(s) }

// ClassID links an instance to a class in an annotation context.
type ClassID uint16

func (ClassID) Name() string                { return "ClassId" }
func (ClassID) DataType() datatype.DataType { return datatype.UInt16() }
func (c ClassID) Value() any                { return uint16(c) }

// KeypointID links an instance to a keypoint of its class.
type KeypointID uint16

func (KeypointID) Name() string                { return "KeypointId" }
func (KeypointID) DataType() datatype.DataType { return datatype.UInt16() }
func (k KeypointID) Value() any                { return uint16(k) }

// -------------------------------------------------------------------------------------------------
// Meshes
// -------------------------------------------------------------------------------------------------

// TriangleIndices is the index buffer of a triangle mesh, three vertex indices per triangle.
type TriangleIndices [][3]uint32

func (TriangleIndices) Name() string { return "TriangleIndices" }

func (TriangleIndices) DataType() datatype.DataType {
	return datatype.List(datatype.FixedSizeList(datatype.UInt32(), 3)) //nolint:mnd // triangle corners
}

func (t TriangleIndices) Value() any {
	out := make([]any, len(t))
	for i, tri := range t {
		out[i] = []any{tri[0], tri[1], tri[2]}
	}
	return out
}

// Texcoord2D is a texture coordinate, (0, 0) being the top left corner of the texture.
type Texcoord2D [2]float32

func (Texcoord2D) Name() string                { return "Texcoord2D" }
func (Texcoord2D) DataType() datatype.DataType { return datatype.Vec2() }
func (t Texcoord2D) Value() any                { return floats(t[:]...) }

// AlbedoFactor tints the base color of a mesh, packed like Color.
type AlbedoFactor Color

func (AlbedoFactor) Name() string                { return "AlbedoFactor" }
func (AlbedoFactor) DataType() datatype.DataType { return datatype.UInt32() }
func (a AlbedoFactor) Value() any                { return uint32(a) }
