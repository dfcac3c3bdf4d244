package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
)

//nolint:gochecknoglobals // schemas are immutable
var (
	Boxes2DSchema = define("Boxes2D",
		required[c.HalfSize2D]("half_sizes"),
		recommended[c.Position2D]("centers"),
		recommended[c.Color]("colors"),
		optional[c.Radius]("radii"),
		optional[c.Text]("labels"),
		optional[c.ShowLabels]("show_labels"),
		optional[c.DrawOrder]("draw_order"),
		optional[c.ClassID]("class_ids"),
	)

	Boxes3DSchema = define("Boxes3D",
		required[c.HalfSize3D]("half_sizes"),
		recommended[c.Position3D]("centers"),
		recommended[c.Rotation3D]("rotations"),
		recommended[c.Color]("colors"),
		optional[c.Radius]("radii"),
		optional[c.Text]("labels"),
		optional[c.ShowLabels]("show_labels"),
		optional[c.ClassID]("class_ids"),
	)

	Arrows2DSchema = define("Arrows2D",
		required[c.Vector2D]("vectors"),
		recommended[c.Position2D]("origins"),
		optional[c.Radius]("radii"),
		optional[c.Color]("colors"),
		optional[c.Text]("labels"),
		optional[c.ShowLabels]("show_labels"),
		optional[c.DrawOrder]("draw_order"),
		optional[c.ClassID]("class_ids"),
	)

	Arrows3DSchema = define("Arrows3D",
		required[c.Vector3D]("vectors"),
		recommended[c.Position3D]("origins"),
		optional[c.Radius]("radii"),
		optional[c.Color]("colors"),
		optional[c.Text]("labels"),
		optional[c.ShowLabels]("show_labels"),
		optional[c.ClassID]("class_ids"),
	)
)

// Boxes2DOptions holds the non-required components of Boxes2D.
type Boxes2DOptions struct {
	Centers    component.Input[c.Position2D]
	Colors     component.Input[c.Color]
	Radii      component.Input[c.Radius]
	Labels     component.Input[c.Text]
	ShowLabels component.Input[c.ShowLabels]
	DrawOrder  component.Input[c.DrawOrder]
	ClassIDs   component.Input[c.ClassID]
}

// NewBoxes2D returns a batch of axis-aligned 2D boxes.
func NewBoxes2D(halfSizes component.Input[c.HalfSize2D], opts Boxes2DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(Boxes2DSchema)
	archetype.Add(b, halfSizes)
	archetype.Add(b, opts.Centers)
	archetype.Add(b, opts.Colors)
	archetype.Add(b, opts.Radii)
	archetype.Add(b, opts.Labels)
	archetype.Add(b, opts.ShowLabels)
	archetype.Add(b, opts.DrawOrder)
	archetype.Add(b, opts.ClassIDs)
	return b.Build()
}

// Boxes3DOptions holds the non-required components of Boxes3D.
type Boxes3DOptions struct {
	Centers    component.Input[c.Position3D]
	Rotations  component.Input[c.Rotation3D]
	Colors     component.Input[c.Color]
	Radii      component.Input[c.Radius]
	Labels     component.Input[c.Text]
	ShowLabels component.Input[c.ShowLabels]
	ClassIDs   component.Input[c.ClassID]
}

// NewBoxes3D returns a batch of oriented 3D boxes.
func NewBoxes3D(halfSizes component.Input[c.HalfSize3D], opts Boxes3DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(Boxes3DSchema)
	archetype.Add(b, halfSizes)
	archetype.Add(b, opts.Centers)
	archetype.Add(b, opts.Rotations)
	archetype.Add(b, opts.Colors)
	archetype.Add(b, opts.Radii)
	archetype.Add(b, opts.Labels)
	archetype.Add(b, opts.ShowLabels)
	archetype.Add(b, opts.ClassIDs)
	return b.Build()
}

// Arrows2DOptions holds the non-required components of Arrows2D.
type Arrows2DOptions struct {
	Origins    component.Input[c.Position2D]
	Radii      component.Input[c.Radius]
	Colors     component.Input[c.Color]
	Labels     component.Input[c.Text]
	ShowLabels component.Input[c.ShowLabels]
	DrawOrder  component.Input[c.DrawOrder]
	ClassIDs   component.Input[c.ClassID]
}

// NewArrows2D returns a batch of 2D arrows.
func NewArrows2D(vectors component.Input[c.Vector2D], opts Arrows2DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(Arrows2DSchema)
	archetype.Add(b, vectors)
	archetype.Add(b, opts.Origins)
	archetype.Add(b, opts.Radii)
	archetype.Add(b, opts.Colors)
	archetype.Add(b, opts.Labels)
	archetype.Add(b, opts.ShowLabels)
	archetype.Add(b, opts.DrawOrder)
	archetype.Add(b, opts.ClassIDs)
	return b.Build()
}

// Arrows3DOptions holds the non-required components of Arrows3D.
type Arrows3DOptions struct {
	Origins    component.Input[c.Position3D]
	Radii      component.Input[c.Radius]
	Colors     component.Input[c.Color]
	Labels     component.Input[c.Text]
	ShowLabels component.Input[c.ShowLabels]
	ClassIDs   component.Input[c.ClassID]
}

// NewArrows3D returns a batch of 3D arrows.
func NewArrows3D(vectors component.Input[c.Vector3D], opts Arrows3DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(Arrows3DSchema)
	archetype.Add(b, vectors)
	archetype.Add(b, opts.Origins)
	archetype.Add(b, opts.Radii)
	archetype.Add(b, opts.Colors)
	archetype.Add(b, opts.Labels)
	archetype.Add(b, opts.ShowLabels)
	archetype.Add(b, opts.ClassIDs)
	return b.Build()
}
