package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
)

//nolint:gochecknoglobals // schemas are immutable
var (
	Points2DSchema = define("Points2D",
		required[c.Position2D]("positions"),
		recommended[c.Radius]("radii"),
		recommended[c.Color]("colors"),
		optional[c.Text]("labels"),
		optional[c.ShowLabels]("show_labels"),
		optional[c.DrawOrder]("draw_order"),
		optional[c.ClassID]("class_ids"),
		optional[c.KeypointID]("keypoint_ids"),
	)

	Points3DSchema = define("Points3D",
		required[c.Position3D]("positions"),
		recommended[c.Radius]("radii"),
		recommended[c.Color]("colors"),
		optional[c.Text]("labels"),
		optional[c.ShowLabels]("show_labels"),
		optional[c.ClassID]("class_ids"),
		optional[c.KeypointID]("keypoint_ids"),
	)
)

// Points2DOptions holds the non-required components of Points2D.
type Points2DOptions struct {
	Radii       component.Input[c.Radius]
	Colors      component.Input[c.Color]
	Labels      component.Input[c.Text]
	ShowLabels  component.Input[c.ShowLabels]
	DrawOrder   component.Input[c.DrawOrder]
	ClassIDs    component.Input[c.ClassID]
	KeypointIDs component.Input[c.KeypointID]
}

// NewPoints2D returns a batch of 2D points.
func NewPoints2D(positions component.Input[c.Position2D], opts Points2DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(Points2DSchema)
	archetype.Add(b, positions)
	archetype.Add(b, opts.Radii)
	archetype.Add(b, opts.Colors)
	archetype.Add(b, opts.Labels)
	archetype.Add(b, opts.ShowLabels)
	archetype.Add(b, opts.DrawOrder)
	archetype.Add(b, opts.ClassIDs)
	archetype.Add(b, opts.KeypointIDs)
	return b.Build()
}

// Points3DOptions holds the non-required components of Points3D.
type Points3DOptions struct {
	Radii       component.Input[c.Radius]
	Colors      component.Input[c.Color]
	Labels      component.Input[c.Text]
	ShowLabels  component.Input[c.ShowLabels]
	ClassIDs    component.Input[c.ClassID]
	KeypointIDs component.Input[c.KeypointID]
}

// NewPoints3D returns a batch of 3D points.
func NewPoints3D(positions component.Input[c.Position3D], opts Points3DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(Points3DSchema)
	archetype.Add(b, positions)
	archetype.Add(b, opts.Radii)
	archetype.Add(b, opts.Colors)
	archetype.Add(b, opts.Labels)
	archetype.Add(b, opts.ShowLabels)
	archetype.Add(b, opts.ClassIDs)
	archetype.Add(b, opts.KeypointIDs)
	return b.Build()
}
