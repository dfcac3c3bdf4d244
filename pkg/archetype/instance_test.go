package archetype_test

import (
	"testing"

	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/argus-labs/loggable/pkg/components"
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_PointExample(t *testing.T) {
	t.Parallel()

	schema := newPointSchema(t)

	b := archetype.NewBuilder(schema)
	archetype.Add(b, component.PerInstance(position(0, 0), position(1, 1)))
	archetype.Add(b, component.Splat(components.NewColor(255, 0, 0, 255)))
	inst, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, inst.Len())

	columns, err := archetype.NewEncoder().Lower(inst)
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, "Position2D", columns[0].Name())
	assert.Equal(t, component.ArityPerInstance, columns[0].Arity)
	positions, err := columns[0].Array.Values()
	require.NoError(t, err)
	assert.Equal(t, []any{
		[]any{float32(0), float32(0)},
		[]any{float32(1), float32(1)},
	}, positions)

	assert.Equal(t, "Color", columns[1].Name())
	assert.Equal(t, component.AritySplat, columns[1].Arity)
	colors, err := columns[1].Array.Values()
	require.NoError(t, err)
	assert.Equal(t, []any{uint32(0xff0000ff)}, colors)

	assert.Equal(t, "PointIndicator", columns[2].Name())
	assert.Equal(t, component.ArityEmpty, columns[2].Arity)
	assert.Equal(t, 0, columns[2].Array.Length)
	assert.Equal(t, datatype.KindNull, columns[2].Array.Type.Kind)
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		build   func(*archetype.Builder)
		wantErr error
	}{
		{
			name: "required component omitted",
			build: func(b *archetype.Builder) {
				archetype.Add(b, component.Splat(components.NewColor(1, 0, 0, 1)))
			},
			wantErr: archetype.ErrMissingRequiredComponent,
		},
		{
			name:    "nothing set",
			build:   func(*archetype.Builder) {},
			wantErr: archetype.ErrMissingRequiredComponent,
		},
		{
			name: "one position against two colors",
			build: func(b *archetype.Builder) {
				archetype.Add(b, component.PerInstance(position(0, 0)))
				archetype.Add(b, component.PerInstance(
					components.NewColor(1, 0, 0, 1), components.NewColor(0, 1, 0, 1)))
			},
			wantErr: archetype.ErrInconsistentBatchLength,
		},
		{
			name: "three positions against five colors",
			build: func(b *archetype.Builder) {
				archetype.Add(b, component.PerInstance(position(0, 0), position(1, 1), position(2, 2)))
				archetype.Add(b, component.PerInstance(
					components.Color(1), components.Color(2), components.Color(3), components.Color(4), components.Color(5)))
			},
			wantErr: archetype.ErrInconsistentBatchLength,
		},
		{
			name: "empty per-instance input",
			build: func(b *archetype.Builder) {
				archetype.Add(b, component.PerInstance[components.Position2D]())
			},
			wantErr: archetype.ErrArityMismatch,
		},
		{
			name: "3-vectors into a 2-vector slot",
			build: func(b *archetype.Builder) {
				b.SetInput("Position2D", component.PerInstance[any](
					[]any{float32(0), float32(0)},
					[]any{float32(0), float32(0), float32(0)},
				))
			},
			wantErr: archetype.ErrTypeMismatch,
		},
		{
			name: "batch of another type",
			build: func(b *archetype.Builder) {
				batch, err := component.MakeBatch(component.NewDescriptor("Color", datatype.Float32()),
					component.AritySplat, []any{float32(1)})
				if err != nil {
					panic(err)
				}
				b.Set(batch)
			},
			wantErr: archetype.ErrTypeMismatch,
		},
		{
			name: "undeclared component",
			build: func(b *archetype.Builder) {
				archetype.Add(b, component.Splat(components.Radius(1)))
			},
			wantErr: archetype.ErrUnknownComponent,
		},
		{
			name: "indicator with data",
			build: func(b *archetype.Builder) {
				archetype.Add(b, component.Splat(position(0, 0)))
				batch, err := component.MakeBatch(component.NewDescriptor("PointIndicator", datatype.Null()),
					component.AritySplat, []any{nil})
				if err != nil {
					panic(err)
				}
				b.Set(batch)
			},
			wantErr: archetype.ErrArityMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := archetype.NewBuilder(newPointSchema(t))
			tt.build(b)
			inst, err := b.Build()
			require.Error(t, err)
			assert.True(t, eris.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, inst)
		})
	}
}

func TestBuilder_Splats(t *testing.T) {
	t.Parallel()

	schema := newPointSchema(t)

	tests := []struct {
		name      string
		positions component.Input[components.Position2D]
		colors    component.Input[components.Color]
		wantLen   int
	}{
		{
			name:      "splat only",
			positions: component.Splat(position(1, 2)),
			wantLen:   1,
		},
		{
			name:      "splat next to per-instance",
			positions: component.Splat(position(1, 2)),
			colors:    component.PerInstance(components.Color(1), components.Color(2), components.Color(3)),
			wantLen:   3,
		},
		{
			name:      "equal per-instance lengths",
			positions: component.PerInstance(position(0, 0), position(1, 1)),
			colors:    component.PerInstance(components.Color(1), components.Color(2)),
			wantLen:   2,
		},
		{
			name:      "single per-instance batch",
			positions: component.PerInstance(position(0, 0)),
			wantLen:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := archetype.NewBuilder(schema)
			archetype.Add(b, tt.positions)
			archetype.Add(b, tt.colors)
			inst, err := b.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, inst.Len())
			assert.Equal(t, !tt.colors.IsAbsent(), inst.Has("Color"))
		})
	}
}

func TestBuilder_FirstErrorWins(t *testing.T) {
	t.Parallel()

	b := archetype.NewBuilder(newPointSchema(t))
	archetype.Add(b, component.Splat(components.Radius(1)))
	archetype.Add(b, component.PerInstance[components.Position2D]())
	_, err := b.Build()
	require.Error(t, err)
	assert.True(t, eris.Is(err, archetype.ErrUnknownComponent), "got %v", err)
}

func TestBuilder_SetReplaces(t *testing.T) {
	t.Parallel()

	b := archetype.NewBuilder(newPointSchema(t))
	archetype.Add(b, component.PerInstance(position(0, 0), position(1, 1)))
	archetype.Add(b, component.Splat(position(5, 5)))
	inst, err := b.Build()
	require.NoError(t, err)

	batch, ok := inst.Batch("Position2D")
	require.True(t, ok)
	assert.Equal(t, component.AritySplat, batch.Arity())
	assert.Equal(t, 1, inst.Len())
}

func TestInstance_Accessors(t *testing.T) {
	t.Parallel()

	schema := newWidgetSchema(t)
	b := archetype.NewBuilder(schema)
	b.SetInput("B", widgetInput("B", false, 2))
	b.SetInput("A", widgetInput("A", true, 0))
	b.SetInput("E", widgetInput("E", false, 2))
	inst, err := b.Build()
	require.NoError(t, err)

	assert.Same(t, schema, inst.Schema())
	assert.True(t, inst.Has("A"))
	assert.False(t, inst.Has("D"))
	assert.False(t, inst.Has("Nope"))

	var names []string
	for _, batch := range inst.Batches() {
		names = append(names, batch.Name())
	}
	assert.Equal(t, []string{"A", "B", "E"}, names)

	batch, ok := inst.Batch("B")
	require.True(t, ok)
	assert.Equal(t, "Widget:B#b", batch.Descriptor().String())

	_, ok = inst.Batch("D")
	assert.False(t, ok)

	missing := inst.MissingRecommended()
	require.Len(t, missing, 1)
	assert.Equal(t, "c", missing[0].Field)
}
