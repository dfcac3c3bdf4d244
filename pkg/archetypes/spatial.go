package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
)

//nolint:gochecknoglobals // schemas are immutable
var (
	Transform3DSchema = define("Transform3D",
		optional[c.Translation3D]("translation"),
		optional[c.Rotation3D]("rotation"),
		optional[c.Scale3D]("scale"),
		optional[c.TransformRelation]("relation"),
	)

	ViewCoordinatesSchema = define("ViewCoordinates",
		required[c.ViewCoordinates]("xyz"),
	)

	DisconnectedSpaceSchema = define("DisconnectedSpace",
		required[c.DisconnectedSpace]("disconnected_space"),
	)

	PinholeSchema = define("Pinhole",
		required[c.PinholeProjection]("image_from_camera"),
		recommended[c.Resolution]("resolution"),
		optional[c.ViewCoordinates]("camera_xyz"),
	)

	ClearSchema = define("Clear",
		required[c.ClearIsRecursive]("is_recursive"),
	)
)

// Transform3DOptions holds the components of Transform3D, all optional.
type Transform3DOptions struct {
	Translation component.Input[c.Translation3D]
	Rotation    component.Input[c.Rotation3D]
	Scale       component.Input[c.Scale3D]
	Relation    component.Input[c.TransformRelation]
}

// NewTransform3D returns an affine transform between an entity and its parent.
func NewTransform3D(opts Transform3DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(Transform3DSchema)
	archetype.Add(b, opts.Translation)
	archetype.Add(b, opts.Rotation)
	archetype.Add(b, opts.Scale)
	archetype.Add(b, opts.Relation)
	return b.Build()
}

// NewViewCoordinates returns the axis convention of a space.
func NewViewCoordinates(xyz c.ViewCoordinates) (*archetype.Instance, error) {
	b := archetype.NewBuilder(ViewCoordinatesSchema)
	archetype.Add(b, component.Splat(xyz))
	return b.Build()
}

// NewDisconnectedSpace marks whether an entity's space is disconnected from its parent's.
func NewDisconnectedSpace(disconnected bool) (*archetype.Instance, error) {
	b := archetype.NewBuilder(DisconnectedSpaceSchema)
	archetype.Add(b, component.Splat(c.DisconnectedSpace(disconnected)))
	return b.Build()
}

// PinholeOptions holds the non-required components of Pinhole.
type PinholeOptions struct {
	Resolution component.Input[c.Resolution]
	CameraXYZ  component.Input[c.ViewCoordinates]
}

// NewPinhole returns a pinhole camera projection.
func NewPinhole(imageFromCamera c.PinholeProjection, opts PinholeOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(PinholeSchema)
	archetype.Add(b, component.Splat(imageFromCamera))
	archetype.Add(b, opts.Resolution)
	archetype.Add(b, opts.CameraXYZ)
	return b.Build()
}

// NewClear returns an instance that clears an entity, and its children when recursive.
func NewClear(recursive bool) (*archetype.Instance, error) {
	b := archetype.NewBuilder(ClearSchema)
	archetype.Add(b, component.Splat(c.ClearIsRecursive(recursive)))
	return b.Build()
}
