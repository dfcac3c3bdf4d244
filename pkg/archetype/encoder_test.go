package archetype_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/argus-labs/loggable/pkg/testutils"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncoder_LowerExhaustive builds every combination of present recommended and optional widget
// components, each as a splat or per-instance batch, and checks the lowered column order.
func TestEncoder_LowerExhaustive(t *testing.T) {
	t.Parallel()

	schema := newWidgetSchema(t)
	enc := archetype.NewEncoder(archetype.WithRecommendedPolicy(archetype.RecommendedIgnore))

	g := testutils.NewGen()
	for !g.Done() {
		n := g.Range(1, 3)
		b := archetype.NewBuilder(schema)
		var want []string
		for _, name := range []string{"A", "B", "C", "D", "E"} {
			required := name == "A" || name == "B"
			if !required && !g.Bool() {
				continue
			}
			b.SetInput(name, widgetInput(name, g.Bool(), n))
			want = append(want, name)
		}
		want = append(want, "WidgetIndicator")

		inst, err := b.Build()
		require.NoError(t, err)

		columns, err := enc.Lower(inst)
		require.NoError(t, err)

		got := make([]string, len(columns))
		for i, column := range columns {
			got[i] = column.Name()
		}
		require.Equal(t, want, got)

		last := columns[len(columns)-1]
		assert.Equal(t, component.ArityEmpty, last.Arity)
		assert.Equal(t, 0, last.Array.Length)
		for _, column := range columns[:len(columns)-1] {
			if column.Arity == component.AritySplat {
				assert.Equal(t, 1, column.Array.Length)
			} else {
				assert.Equal(t, n, column.Array.Length)
			}
		}
	}
}

func TestEncoder_LowerProperties(t *testing.T) {
	t.Parallel()

	schema := newWidgetSchema(t)
	enc := archetype.NewEncoder(archetype.WithRecommendedPolicy(archetype.RecommendedIgnore))

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("lowering is deterministic", prop.ForAll(
		func(n int, splatA, withD bool) bool {
			b := archetype.NewBuilder(schema)
			b.SetInput("A", widgetInput("A", splatA, n))
			b.SetInput("B", widgetInput("B", false, n))
			if withD {
				b.SetInput("D", widgetInput("D", false, n))
			}
			inst, err := b.Build()
			if err != nil {
				return false
			}
			first, err := enc.Lower(inst)
			if err != nil {
				return false
			}
			second, err := enc.Lower(inst)
			if err != nil {
				return false
			}
			return assert.ObjectsAreEqual(first, second)
		},
		gen.IntRange(1, 16),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("differing per-instance lengths never build", prop.ForAll(
		func(n, m int) bool {
			if n == m {
				m++
			}
			b := archetype.NewBuilder(schema)
			b.SetInput("A", widgetInput("A", false, n))
			b.SetInput("B", widgetInput("B", false, m))
			_, err := b.Build()
			return eris.Is(err, archetype.ErrInconsistentBatchLength)
		},
		gen.IntRange(1, 16),
		gen.IntRange(1, 16),
	))

	properties.TestingRun(t)
}

func TestEncoder_RecommendedPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		policy   archetype.RecommendedPolicy
		withC    bool
		wantWarn bool
	}{
		{name: "warn when missing", policy: archetype.RecommendedWarn, wantWarn: true},
		{name: "quiet when present", policy: archetype.RecommendedWarn, withC: true},
		{name: "ignore when missing", policy: archetype.RecommendedIgnore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			enc := archetype.NewEncoder(
				archetype.WithLogger(zerolog.New(&buf)),
				archetype.WithRecommendedPolicy(tt.policy),
			)

			b := archetype.NewBuilder(newWidgetSchema(t))
			b.SetInput("A", widgetInput("A", true, 1))
			b.SetInput("B", widgetInput("B", true, 1))
			if tt.withC {
				b.SetInput("C", widgetInput("C", true, 1))
			}
			inst, err := b.Build()
			require.NoError(t, err, "a missing recommended component is never an error")

			_, err = enc.Lower(inst)
			require.NoError(t, err)

			if tt.wantWarn {
				assert.Contains(t, buf.String(), "missing recommended components")
				assert.Contains(t, buf.String(), `"fields":["c"]`)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

type callKey struct{}

func TestEncoder_EncodingError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*component.Registry)
	}{
		{
			name: "component registered with another type",
			setup: func(reg *component.Registry) {
				_ = reg.Register("A", datatype.Float64())
			},
		},
		{
			name:  "component not registered",
			setup: func(*component.Registry) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			components := component.NewRegistry()
			tt.setup(components)

			var reported []error
			var reportedCtx []context.Context
			var buf bytes.Buffer
			enc := archetype.NewEncoder(
				archetype.WithComponents(components),
				archetype.WithLogger(zerolog.New(&buf)),
				archetype.WithReporter(func(ctx context.Context, err error) {
					reportedCtx = append(reportedCtx, ctx)
					reported = append(reported, err)
				}),
			)

			b := archetype.NewBuilder(newWidgetSchema(t))
			b.SetInput("A", widgetInput("A", true, 1))
			b.SetInput("B", widgetInput("B", true, 1))
			inst, err := b.Build()
			require.NoError(t, err)

			ctx := context.WithValue(context.Background(), callKey{}, tt.name)
			columns, err := enc.LowerContext(ctx, inst)
			require.Error(t, err)
			assert.True(t, eris.Is(err, archetype.ErrEncoding), "got %v", err)
			assert.Nil(t, columns)
			require.Len(t, reported, 1)
			assert.True(t, eris.Is(reported[0], archetype.ErrEncoding))
			assert.Equal(t, tt.name, reportedCtx[0].Value(callKey{}), "the reporter sees the caller's context")
			assert.Contains(t, buf.String(), `"level":"error"`)
		})
	}
}

func TestEncoder_WithRegisteredComponents(t *testing.T) {
	t.Parallel()

	reg := archetype.NewRegistry(nil)
	schema := newWidgetSchema(t)
	require.NoError(t, reg.Register(schema))

	enc := archetype.NewEncoder(archetype.WithComponents(reg.Components()))
	b := archetype.NewBuilder(schema)
	b.SetInput("A", widgetInput("A", false, 2))
	b.SetInput("B", widgetInput("B", false, 2))
	inst, err := b.Build()
	require.NoError(t, err)

	columns, err := enc.Lower(inst)
	require.NoError(t, err)
	assert.Len(t, columns, 3)
}

func TestParseRecommendedPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    archetype.RecommendedPolicy
		wantErr bool
	}{
		{input: "warn", want: archetype.RecommendedWarn},
		{input: "WARN", want: archetype.RecommendedWarn},
		{input: "ignore", want: archetype.RecommendedIgnore},
		{input: "error", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := archetype.ParseRecommendedPolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var p archetype.RecommendedPolicy
			require.NoError(t, p.UnmarshalText([]byte(tt.input)))
			assert.Equal(t, tt.want, p)
		})
	}
}
