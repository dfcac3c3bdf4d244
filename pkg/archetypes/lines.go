package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
)

//nolint:gochecknoglobals // schemas are immutable
var (
	LineStrips2DSchema = define("LineStrips2D",
		required[c.LineStrip2D]("strips"),
		recommended[c.Radius]("radii"),
		recommended[c.Color]("colors"),
		optional[c.Text]("labels"),
		optional[c.ShowLabels]("show_labels"),
		optional[c.DrawOrder]("draw_order"),
		optional[c.ClassID]("class_ids"),
	)

	LineStrips3DSchema = define("LineStrips3D",
		required[c.LineStrip3D]("strips"),
		recommended[c.Radius]("radii"),
		recommended[c.Color]("colors"),
		optional[c.Text]("labels"),
		optional[c.ShowLabels]("show_labels"),
		optional[c.ClassID]("class_ids"),
	)
)

// LineStrips2DOptions holds the non-required components of LineStrips2D.
type LineStrips2DOptions struct {
	Radii      component.Input[c.Radius]
	Colors     component.Input[c.Color]
	Labels     component.Input[c.Text]
	ShowLabels component.Input[c.ShowLabels]
	DrawOrder  component.Input[c.DrawOrder]
	ClassIDs   component.Input[c.ClassID]
}

// NewLineStrips2D returns a batch of 2D line strips.
func NewLineStrips2D(strips component.Input[c.LineStrip2D], opts LineStrips2DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(LineStrips2DSchema)
	archetype.Add(b, strips)
	archetype.Add(b, opts.Radii)
	archetype.Add(b, opts.Colors)
	archetype.Add(b, opts.Labels)
	archetype.Add(b, opts.ShowLabels)
	archetype.Add(b, opts.DrawOrder)
	archetype.Add(b, opts.ClassIDs)
	return b.Build()
}

// LineStrips3DOptions holds the non-required components of LineStrips3D.
type LineStrips3DOptions struct {
	Radii      component.Input[c.Radius]
	Colors     component.Input[c.Color]
	Labels     component.Input[c.Text]
	ShowLabels component.Input[c.ShowLabels]
	ClassIDs   component.Input[c.ClassID]
}

// NewLineStrips3D returns a batch of 3D line strips.
func NewLineStrips3D(strips component.Input[c.LineStrip3D], opts LineStrips3DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(LineStrips3DSchema)
	archetype.Add(b, strips)
	archetype.Add(b, opts.Radii)
	archetype.Add(b, opts.Colors)
	archetype.Add(b, opts.Labels)
	archetype.Add(b, opts.ShowLabels)
	archetype.Add(b, opts.ClassIDs)
	return b.Build()
}
