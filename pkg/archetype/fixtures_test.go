package archetype_test

import (
	"testing"

	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/argus-labs/loggable/pkg/components"
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/stretchr/testify/require"
)

// newPointSchema returns an archetype with a required Position2D and an optional Color.
func newPointSchema(t *testing.T) *archetype.Schema {
	t.Helper()
	schema, err := archetype.Define("Point", []archetype.Slot{
		archetype.RequiredSlot("position", component.DescriptorOf[components.Position2D]()),
		archetype.OptionalSlot("color", component.DescriptorOf[components.Color]()),
		archetype.IndicatorSlot("Point"),
	}, "PointIndicator")
	require.NoError(t, err)
	return schema
}

// Widget components cover every requirement level.
var (
	descA = component.NewDescriptor("A", datatype.Float32())
	descB = component.NewDescriptor("B", datatype.Vec3())
	descC = component.NewDescriptor("C", datatype.Utf8())
	descD = component.NewDescriptor("D", datatype.UInt8())
	descE = component.NewDescriptor("E", datatype.List(datatype.Int64()))
)

func widgetSlots() []archetype.Slot {
	// Declared out of order on purpose, the schema normalizes it.
	return []archetype.Slot{
		archetype.OptionalSlot("e", descE),
		archetype.RequiredSlot("a", descA),
		archetype.IndicatorSlot("Widget"),
		archetype.RecommendedSlot("c", descC),
		archetype.OptionalSlot("d", descD),
		archetype.RequiredSlot("b", descB),
	}
}

func newWidgetSchema(t *testing.T) *archetype.Schema {
	t.Helper()
	schema, err := archetype.Define("Widget", widgetSlots(), "WidgetIndicator")
	require.NoError(t, err)
	return schema
}

// widgetValue returns a valid value of a widget component.
func widgetValue(name string, i int) any {
	switch name {
	case "A":
		return float32(i)
	case "B":
		return []any{float32(i), float32(i + 1), float32(i + 2)}
	case "C":
		return "c"
	case "D":
		return uint8(i)
	case "E":
		return []any{int64(i)}
	default:
		panic("unknown widget component " + name)
	}
}

// widgetInput returns a splat or an n-value per-instance input for a widget component.
func widgetInput(name string, splat bool, n int) component.Input[any] {
	if splat {
		return component.Splat(widgetValue(name, 0))
	}
	values := make([]any, n)
	for i := range values {
		values[i] = widgetValue(name, i)
	}
	return component.PerInstance(values...)
}

func position(x, y float32) components.Position2D {
	return components.Position2D{x, y}
}
