package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
	"github.com/rotisserie/eris"
)

//nolint:gochecknoglobals // schemas are immutable
var (
	ImageSchema = define("Image",
		required[c.Blob]("buffer"),
		required[c.ImageFormat]("format"),
		optional[c.DrawOrder]("draw_order"),
	)

	DepthImageSchema = define("DepthImage",
		required[c.Blob]("buffer"),
		required[c.ImageFormat]("format"),
		optional[c.DepthMeter]("meter"),
		optional[c.Colormap]("colormap"),
		optional[c.ValueRange]("depth_range"),
		optional[c.FillRatio]("point_fill_ratio"),
		optional[c.DrawOrder]("draw_order"),
	)

	SegmentationImageSchema = define("SegmentationImage",
		required[c.Blob]("buffer"),
		required[c.ImageFormat]("format"),
		optional[c.Opacity]("opacity"),
		optional[c.DrawOrder]("draw_order"),
	)

	TensorSchema = define("Tensor",
		required[c.TensorData]("data"),
		optional[c.ValueRange]("value_range"),
	)
)

// ImageOptions holds the non-required components of Image.
type ImageOptions struct {
	DrawOrder component.Input[c.DrawOrder]
}

// NewImage returns a raw image. When the format names a color model, the buffer length must match
// the size the format implies.
func NewImage(buffer c.Blob, format c.ImageFormat, opts ImageOptions) (*archetype.Instance, error) {
	if want := format.NumBytes(); want > 0 && len(buffer) != want {
		return nil, eris.Wrapf(archetype.ErrTypeMismatch, "image buffer has %d bytes, format %dx%d needs %d",
			len(buffer), format.Width, format.Height, want)
	}

	b := archetype.NewBuilder(ImageSchema)
	archetype.Add(b, component.Splat(buffer))
	archetype.Add(b, component.Splat(format))
	archetype.Add(b, opts.DrawOrder)
	return b.Build()
}

// DepthImageOptions holds the non-required components of DepthImage.
type DepthImageOptions struct {
	Meter          component.Input[c.DepthMeter]
	Colormap       component.Input[c.Colormap]
	DepthRange     component.Input[c.ValueRange]
	PointFillRatio component.Input[c.FillRatio]
	DrawOrder      component.Input[c.DrawOrder]
}

// NewDepthImage returns a single-channel depth image.
func NewDepthImage(buffer c.Blob, format c.ImageFormat, opts DepthImageOptions) (*archetype.Instance, error) {
	if err := checkSingleChannel("depth image", buffer, format); err != nil {
		return nil, err
	}

	b := archetype.NewBuilder(DepthImageSchema)
	archetype.Add(b, component.Splat(buffer))
	archetype.Add(b, component.Splat(format))
	archetype.Add(b, opts.Meter)
	archetype.Add(b, opts.Colormap)
	archetype.Add(b, opts.DepthRange)
	archetype.Add(b, opts.PointFillRatio)
	archetype.Add(b, opts.DrawOrder)
	return b.Build()
}

// SegmentationImageOptions holds the non-required components of SegmentationImage.
type SegmentationImageOptions struct {
	Opacity   component.Input[c.Opacity]
	DrawOrder component.Input[c.DrawOrder]
}

// NewSegmentationImage returns an image of class ids, resolved through the annotation context.
// Class ids are unsigned integers, so the channel type is U8 or U16.
func NewSegmentationImage(
	buffer c.Blob,
	format c.ImageFormat,
	opts SegmentationImageOptions,
) (*archetype.Instance, error) {
	if format.ChannelType == c.ChannelF32 {
		return nil, eris.Wrap(archetype.ErrTypeMismatch, "segmentation image channels must be U8 or U16")
	}
	if err := checkSingleChannel("segmentation image", buffer, format); err != nil {
		return nil, err
	}

	b := archetype.NewBuilder(SegmentationImageSchema)
	archetype.Add(b, component.Splat(buffer))
	archetype.Add(b, component.Splat(format))
	archetype.Add(b, opts.Opacity)
	archetype.Add(b, opts.DrawOrder)
	return b.Build()
}

// TensorOptions holds the non-required components of Tensor.
type TensorOptions struct {
	ValueRange component.Input[c.ValueRange]
}

// NewTensor returns an n-dimensional tensor. The buffer must hold exactly as many elements as the
// shape implies, and names, when set, must name every dimension.
func NewTensor(data c.TensorData, opts TensorOptions) (*archetype.Instance, error) {
	want := 1
	for _, dim := range data.Shape {
		want *= int(dim) //nolint:gosec // shapes are small
	}
	if got := data.Buffer.Len(); got != want {
		return nil, eris.Wrapf(archetype.ErrTypeMismatch, "tensor buffer has %d elements, shape %v needs %d",
			got, data.Shape, want)
	}
	if data.Names != nil && len(data.Names) != len(data.Shape) {
		return nil, eris.Wrapf(archetype.ErrArityMismatch, "tensor has %d dimension names for %d dimensions",
			len(data.Names), len(data.Shape))
	}

	b := archetype.NewBuilder(TensorSchema)
	archetype.Add(b, component.Splat(data))
	archetype.Add(b, opts.ValueRange)
	return b.Build()
}

// checkSingleChannel rejects color models other than L and buffers whose size does not match the
// format.
func checkSingleChannel(kind string, buffer c.Blob, format c.ImageFormat) error {
	if format.ColorModel != nil && *format.ColorModel != c.ColorModelL {
		return eris.Wrapf(archetype.ErrTypeMismatch, "%s must have a single channel", kind)
	}
	want := int(format.Width) * int(format.Height) * format.ChannelType.Size()
	if len(buffer) != want {
		return eris.Wrapf(archetype.ErrTypeMismatch, "%s buffer has %d bytes, format %dx%d needs %d",
			kind, len(buffer), format.Width, format.Height, want)
	}
	return nil
}
