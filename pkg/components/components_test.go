package components_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/argus-labs/loggable/pkg/columnar"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	t.Parallel()

	var names []string
	for _, l := range c.All() {
		names = append(names, l.Name())
		t.Run(l.Name(), func(t *testing.T) {
			t.Parallel()
			require.NoError(t, l.DataType().Validate())
			require.NoError(t, l.DataType().Check(l.Value()), "zero value must fit %s", l.DataType())
		})
	}

	sorted := slices.Clone(names)
	slices.SortFunc(sorted, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	assert.Equal(t, sorted, names, "All lists components in name order")
	assert.Len(t, slices.Compact(slices.Clone(sorted)), len(names), "component names are unique")
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := component.NewRegistry()
	require.NoError(t, c.Register(reg))
	require.NoError(t, c.Register(reg), "registration is idempotent")
	assert.Equal(t, len(c.All()), reg.Len())

	dt, err := reg.Describe("ClassId")
	require.NoError(t, err)
	assert.True(t, dt.Equal(datatype.UInt16()))
}

func TestValues(t *testing.T) {
	t.Parallel()

	model := c.ColorModelRGB
	label, red := "car", c.NewColor(255, 0, 0, 255)
	tests := []struct {
		name  string
		value component.Loggable
		want  any
	}{
		{name: "position", value: c.Position2D{1, 2}, want: []any{float32(1), float32(2)}},
		{name: "color", value: c.NewColor(0xff, 0, 0, 0xff), want: uint32(0xff0000ff)},
		{name: "blob", value: c.Blob(nil), want: []byte{}},
		{name: "text", value: c.Text("hi"), want: "hi"},
		{name: "marker", value: c.MarkerSquare, want: uint8(2)},
		{
			name:  "view coordinates",
			value: c.RDF,
			want:  []any{uint8(c.DirRight), uint8(c.DirDown), uint8(c.DirForward)},
		},
		{
			name:  "identity rotation",
			value: c.Rotation3D{},
			want:  datatype.UnionValue{Variant: 0, Value: []any{float32(0), float32(0), float32(0), float32(1)}},
		},
		{
			name:  "axis angle rotation",
			value: c.RotationFromAxisAngle([3]float32{0, 0, 1}, 0.5),
			want: datatype.UnionValue{Variant: 1, Value: []any{
				[]any{float32(0), float32(0), float32(1)},
				float32(0.5),
			}},
		},
		{
			name:  "image format",
			value: c.ImageFormat{Width: 2, Height: 3, ColorModel: &model, ChannelType: c.ChannelU8},
			want:  []any{uint32(2), uint32(3), uint8(c.ColorModelRGB), uint8(c.ChannelU8)},
		},
		{
			name:  "image format without model",
			value: c.ImageFormat{Width: 2, Height: 3},
			want:  []any{uint32(2), uint32(3), nil, uint8(0)},
		},
		{
			name:  "tensor",
			value: c.TensorData{Shape: []uint64{2}, Buffer: c.TensorBuffer{F32: []float32{1, 2}}},
			want: []any{
				[]any{uint64(2)},
				nil,
				datatype.UnionValue{Variant: 1, Value: []any{float32(1), float32(2)}},
			},
		},
		{
			name: "annotation context",
			value: c.AnnotationContext{{
				ClassID: 3,
				Description: c.ClassDescription{
					Info:                c.AnnotationInfo{ID: 3, Label: &label, Color: &red},
					KeypointAnnotations: []c.AnnotationInfo{{ID: 0}},
					KeypointConnections: []c.KeypointPair{{Keypoint0: 0, Keypoint1: 1}},
				},
			}},
			want: []any{[]any{
				uint16(3),
				[]any{
					[]any{uint16(3), "car", uint32(red)},
					[]any{[]any{uint16(0), nil, nil}},
					[]any{[]any{uint16(0), uint16(1)}},
				},
			}},
		},
		{
			name:  "triangle indices",
			value: c.TriangleIndices{{0, 1, 2}},
			want:  []any{[]any{uint32(0), uint32(1), uint32(2)}},
		},
		{name: "value range", value: c.ValueRange{-1, 1}, want: []any{float64(-1), float64(1)}},
		{name: "colormap", value: c.ColormapViridis, want: uint8(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.value.Value()
			assert.Equal(t, tt.want, got)
			require.NoError(t, tt.value.DataType().Check(got))

			// Every value can be laid out as a column.
			_, err := columnar.Build(tt.value.DataType(), []any{got})
			require.NoError(t, err)
		})
	}
}

func TestImageFormat_NumBytes(t *testing.T) {
	t.Parallel()

	rgba := c.ColorModelRGBA
	format := c.ImageFormat{Width: 4, Height: 2, ColorModel: &rgba, ChannelType: c.ChannelF32}
	assert.Equal(t, 4*2*4*4, format.NumBytes())

	format.ColorModel = nil
	assert.Equal(t, 0, format.NumBytes())
}

func TestTensorBuffer_Len(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, c.TensorBuffer{}.Len())
	assert.Equal(t, 3, c.TensorBuffer{U8: []byte{1, 2, 3}}.Len())
	assert.Equal(t, 2, c.TensorBuffer{U8: []byte{1}, F32: []float32{1, 2}}.Len(), "f32 wins over u8")
	assert.Equal(t, 1, c.TensorBuffer{F64: []float64{1}}.Len())
}

func TestGuessMediaType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want c.MediaType
	}{
		{path: "notes.md", want: c.MediaTypeMarkdown},
		{path: "scene/robot.glb", want: c.MediaTypeGLB},
		{path: "scene/robot.GLTF", want: c.MediaTypeGLTF},
		{path: "bunny.obj", want: c.MediaTypeOBJ},
		{path: "part.stl", want: c.MediaTypeSTL},
		{path: "photo.jpeg", want: c.MediaTypeJPEG},
		{path: "archive.tar", want: ""},
		{path: "no_extension", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.GuessMediaType(tt.path))
		})
	}
}

func TestPinholeProjection(t *testing.T) {
	t.Parallel()

	p := c.NewPinholeProjection(500, 320, 240)
	assert.Equal(t, c.PinholeProjection{500, 0, 0, 0, 500, 0, 320, 240, 1}, p)
}

func TestColor_Channels(t *testing.T) {
	t.Parallel()

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("NewColor and Channels are inverse", prop.ForAll(
		func(r, g, b, a uint8) bool {
			gotR, gotG, gotB, gotA := c.NewColor(r, g, b, a).Channels()
			return gotR == r && gotG == g && gotB == b && gotA == a
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(), gen.UInt8(),
	))
	properties.TestingRun(t)
}
