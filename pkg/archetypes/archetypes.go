// Package archetypes is the catalogue of built-in archetypes. Each archetype has a schema variable
// and a typed constructor named after it: required components are positional arguments, the
// other components are fields of an options struct. Unset options are absent.
package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/rotisserie/eris"
)

// Schemas returns every built-in schema.
func Schemas() []*archetype.Schema {
	return []*archetype.Schema{
		AnnotationContextSchema,
		Arrows2DSchema,
		Arrows3DSchema,
		Asset3DSchema,
		BarChartSchema,
		Boxes2DSchema,
		Boxes3DSchema,
		ClearSchema,
		DepthImageSchema,
		DisconnectedSpaceSchema,
		ImageSchema,
		LineStrips2DSchema,
		LineStrips3DSchema,
		Mesh3DSchema,
		PinholeSchema,
		Points2DSchema,
		Points3DSchema,
		ScalarSchema,
		SegmentationImageSchema,
		SeriesLineSchema,
		SeriesPointSchema,
		TensorSchema,
		TextDocumentSchema,
		TextLogSchema,
		Transform3DSchema,
		ViewCoordinatesSchema,
	}
}

// Register registers every built-in schema with reg. It is idempotent.
func Register(reg *archetype.Registry) error {
	for _, schema := range Schemas() {
		if err := reg.Register(schema); err != nil {
			return eris.Wrapf(err, "failed to register archetype %s", schema.Name())
		}
	}
	return nil
}

func define(name string, slots ...archetype.Slot) *archetype.Schema {
	slots = append(slots, archetype.IndicatorSlot(name))
	return archetype.MustDefine(name, slots, archetype.IndicatorName(name))
}

func required[T component.Loggable](field string) archetype.Slot {
	return archetype.RequiredSlot(field, component.DescriptorOf[T]())
}

func recommended[T component.Loggable](field string) archetype.Slot {
	return archetype.RecommendedSlot(field, component.DescriptorOf[T]())
}

func optional[T component.Loggable](field string) archetype.Slot {
	return archetype.OptionalSlot(field, component.DescriptorOf[T]())
}
