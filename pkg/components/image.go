package components

import "github.com/argus-labs/loggable/pkg/datatype"

// ColorModel is the channel layout of an image.
type ColorModel uint8

const (
	ColorModelL ColorModel = iota
	ColorModelRGB
	ColorModelRGBA
	ColorModelBGR
	ColorModelBGRA
)

// Channels returns the number of channels of the color model.
func (c ColorModel) Channels() int {
	switch c {
	case ColorModelL:
		return 1
	case ColorModelRGB, ColorModelBGR:
		return 3 //nolint:mnd // three channels
	case ColorModelRGBA, ColorModelBGRA:
		return 4 //nolint:mnd // four channels
	default:
		return 0
	}
}

// ChannelType is the element type of one image channel.
type ChannelType uint8

const (
	ChannelU8 ChannelType = iota
	ChannelU16
	ChannelF32
)

// Size returns the size of one channel value in bytes.
func (c ChannelType) Size() int {
	switch c {
	case ChannelU8:
		return 1
	case ChannelU16:
		return 2 //nolint:mnd // two bytes
	case ChannelF32:
		return 4 //nolint:mnd // four bytes
	default:
		return 0
	}
}

// ImageFormat describes how to interpret the bytes of an image buffer. A nil ColorModel means the
// viewer infers it from the channel count.
type ImageFormat struct {
	Width       uint32      `json:"width"`
	Height      uint32      `json:"height"`
	ColorModel  *ColorModel `json:"color_model,omitempty"`
	ChannelType ChannelType `json:"channel_type"`
}

// NumBytes returns the expected buffer size of an image with this format, or 0 if the color model
// is unknown.
func (f ImageFormat) NumBytes() int {
	if f.ColorModel == nil {
		return 0
	}
	return int(f.Width) * int(f.Height) * f.ColorModel.Channels() * f.ChannelType.Size()
}

func (ImageFormat) Name() string { return "ImageFormat" }

func (ImageFormat) DataType() datatype.DataType {
	return datatype.Struct(
		datatype.NewField("width", datatype.UInt32()),
		datatype.NewField("height", datatype.UInt32()),
		datatype.NullableField("color_model", datatype.Enum("L", "RGB", "RGBA", "BGR", "BGRA")),
		datatype.NewField("channel_type", datatype.Enum("U8", "U16", "F32")),
	)
}

func (f ImageFormat) Value() any {
	var model any
	if f.ColorModel != nil {
		model = uint8(*f.ColorModel)
	}
	return []any{f.Width, f.Height, model, uint8(f.ChannelType)}
}

// TensorBuffer holds the elements of a tensor. The first non-nil buffer is used, U8 by default.
type TensorBuffer struct {
	U8  []byte    `json:"u8,omitempty"`
	F32 []float32 `json:"f32,omitempty"`
	F64 []float64 `json:"f64,omitempty"`
}

// TensorData is an n-dimensional array with optional dimension names.
type TensorData struct {
	Shape  []uint64     `json:"shape"`
	Names  []string     `json:"names,omitempty"`
	Buffer TensorBuffer `json:"buffer"`
}

func (TensorData) Name() string { return "TensorData" }

func (TensorData) DataType() datatype.DataType {
	return datatype.Struct(
		datatype.NewField("shape", datatype.List(datatype.UInt64())),
		datatype.NullableField("names", datatype.List(datatype.Utf8())),
		datatype.NewField("buffer", datatype.Union(
			datatype.NewField("u8", datatype.Binary()),
			datatype.NewField("f32", datatype.List(datatype.Float32())),
			datatype.NewField("f64", datatype.List(datatype.Float64())),
		)),
	)
}

func (t TensorData) Value() any {
	shape := make([]any, len(t.Shape))
	for i, dim := range t.Shape {
		shape[i] = dim
	}

	var names any
	if t.Names != nil {
		list := make([]any, len(t.Names))
		for i, name := range t.Names {
			list[i] = name
		}
		names = list
	}

	return []any{shape, names, t.Buffer.value()}
}

// Len returns the number of elements in the buffer in use.
func (b TensorBuffer) Len() int {
	switch {
	case b.F32 != nil:
		return len(b.F32)
	case b.F64 != nil:
		return len(b.F64)
	default:
		return len(b.U8)
	}
}

func (b TensorBuffer) value() datatype.UnionValue {
	switch {
	case b.F32 != nil:
		return datatype.UnionValue{Variant: 1, Value: floats(b.F32...)}
	case b.F64 != nil:
		values := make([]any, len(b.F64))
		for i, v := range b.F64 {
			values[i] = v
		}
		return datatype.UnionValue{Variant: 2, Value: values} //nolint:mnd // f64 variant
	default:
		buf := b.U8
		if buf == nil {
			buf = []byte{}
		}
		return datatype.UnionValue{Variant: 0, Value: buf}
	}
}

// DepthMeter is the number of depth image units per world-space meter.
type DepthMeter float32

func (DepthMeter) Name() string                { return "DepthMeter" }
func (DepthMeter) DataType() datatype.DataType { return datatype.Float32() }
func (d DepthMeter) Value() any                { return float32(d) }

// Colormap maps scalar values such as depth to colors.
type Colormap uint8

const (
	ColormapGrayscale Colormap = iota
	ColormapInferno
	ColormapMagma
	ColormapPlasma
	ColormapTurbo
	ColormapViridis
	ColormapCyanToYellow
)

func (Colormap) Name() string { return "Colormap" }

func (Colormap) DataType() datatype.DataType {
	return datatype.Enum("Grayscale", "Inferno", "Magma", "Plasma", "Turbo", "Viridis", "CyanToYellow")
}

func (c Colormap) Value() any { return uint8(c) }

// ValueRange is an inclusive [min, max] range of tensor or depth values.
type ValueRange [2]float64

func (ValueRange) Name() string { return "ValueRange" }

func (ValueRange) DataType() datatype.DataType {
	return datatype.FixedSizeList(datatype.Float64(), 2) //nolint:mnd // min and max
}

func (r ValueRange) Value() any { return []any{r[0], r[1]} }

// FillRatio scales the radius of the points a depth image is projected into.
type FillRatio float32

func (FillRatio) Name() string                { return "FillRatio" }
func (FillRatio) DataType() datatype.DataType { return datatype.Float32() }
func (f FillRatio) Value() any                { return float32(f) }

// Opacity is a blending factor in [0, 1], 0 being fully transparent.
type Opacity float32

func (Opacity) Name() string                { return "Opacity" }
func (Opacity) DataType() datatype.DataType { return datatype.Float32() }
func (o Opacity) Value() any                { return float32(o) }
