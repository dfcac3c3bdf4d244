package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
)

//nolint:gochecknoglobals // schemas are immutable
var (
	ScalarSchema = define("Scalar",
		required[c.Scalar]("scalar"),
	)

	SeriesLineSchema = define("SeriesLine",
		optional[c.Color]("color"),
		optional[c.StrokeWidth]("width"),
		optional[c.Name]("name"),
	)

	SeriesPointSchema = define("SeriesPoint",
		optional[c.Color]("color"),
		optional[c.MarkerShape]("marker"),
		optional[c.Name]("name"),
		optional[c.MarkerSize]("marker_size"),
	)

	BarChartSchema = define("BarChart",
		required[c.TensorData]("values"),
		optional[c.Color]("color"),
	)
)

// NewScalar returns a single time series sample.
func NewScalar(scalar c.Scalar) (*archetype.Instance, error) {
	b := archetype.NewBuilder(ScalarSchema)
	archetype.Add(b, component.Splat(scalar))
	return b.Build()
}

// SeriesLineOptions holds the components of SeriesLine, all optional.
type SeriesLineOptions struct {
	Color component.Input[c.Color]
	Width component.Input[c.StrokeWidth]
	Name  component.Input[c.Name]
}

// NewSeriesLine returns the styling of a line plot series.
func NewSeriesLine(opts SeriesLineOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(SeriesLineSchema)
	archetype.Add(b, opts.Color)
	archetype.Add(b, opts.Width)
	archetype.Add(b, opts.Name)
	return b.Build()
}

// SeriesPointOptions holds the components of SeriesPoint, all optional.
type SeriesPointOptions struct {
	Color      component.Input[c.Color]
	Marker     component.Input[c.MarkerShape]
	Name       component.Input[c.Name]
	MarkerSize component.Input[c.MarkerSize]
}

// NewSeriesPoint returns the styling of a scatter plot series.
func NewSeriesPoint(opts SeriesPointOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(SeriesPointSchema)
	archetype.Add(b, opts.Color)
	archetype.Add(b, opts.Marker)
	archetype.Add(b, opts.Name)
	archetype.Add(b, opts.MarkerSize)
	return b.Build()
}

// BarChartOptions holds the non-required components of BarChart.
type BarChartOptions struct {
	Color component.Input[c.Color]
}

// NewBarChart returns a bar chart of a one-dimensional tensor.
func NewBarChart(values c.TensorData, opts BarChartOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(BarChartSchema)
	archetype.Add(b, component.Splat(values))
	archetype.Add(b, opts.Color)
	return b.Build()
}
