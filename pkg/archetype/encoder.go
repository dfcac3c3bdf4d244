package archetype

import (
	"context"
	"strings"

	"github.com/argus-labs/loggable/pkg/assert"
	"github.com/argus-labs/loggable/pkg/columnar"
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Column is one lowered component: the descriptor it was logged under, the arity of the source
// batch, and its values laid out as a columnar array tagged with the component type.
type Column struct {
	Descriptor component.Descriptor `msgpack:"descriptor"`
	Arity      component.Arity      `msgpack:"arity"`
	Array      columnar.Array       `msgpack:"array"`
}

// Name returns the component name of the column.
func (c Column) Name() string { return c.Descriptor.Name }

// RecommendedPolicy selects what the encoder does when an instance lacks a recommended component.
type RecommendedPolicy uint8

const (
	// RecommendedWarn logs a warning naming the missing components.
	RecommendedWarn RecommendedPolicy = iota
	// RecommendedIgnore accepts missing recommended components silently.
	RecommendedIgnore
)

func (p RecommendedPolicy) String() string {
	switch p {
	case RecommendedWarn:
		return "warn"
	case RecommendedIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParseRecommendedPolicy converts a policy name into a RecommendedPolicy.
func ParseRecommendedPolicy(s string) (RecommendedPolicy, error) {
	switch strings.ToLower(s) {
	case "warn":
		return RecommendedWarn, nil
	case "ignore":
		return RecommendedIgnore, nil
	default:
		return RecommendedWarn, eris.Errorf("invalid recommended policy: %q (must be warn or ignore)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so the policy can be read from env config.
func (p *RecommendedPolicy) UnmarshalText(text []byte) error {
	policy, err := ParseRecommendedPolicy(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

// Encoder lowers instances into ordered component columns. It holds no per-call state and is
// safe for concurrent use.
type Encoder struct {
	components *component.Registry
	log        zerolog.Logger
	policy     RecommendedPolicy
	report     func(context.Context, error)
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithComponents makes the encoder cross-check every batch type against a component registry.
func WithComponents(components *component.Registry) EncoderOption {
	return func(e *Encoder) {
		e.components = components
	}
}

// WithLogger sets the encoder's logger.
func WithLogger(log zerolog.Logger) EncoderOption {
	return func(e *Encoder) {
		e.log = log
	}
}

// WithRecommendedPolicy sets how missing recommended components are reported.
func WithRecommendedPolicy(policy RecommendedPolicy) EncoderOption {
	return func(e *Encoder) {
		e.policy = policy
	}
}

// WithReporter sets a hook receiving every ErrEncoding failure, e.g. an error tracker, together
// with the context passed to LowerContext.
func WithReporter(report func(context.Context, error)) EncoderOption {
	return func(e *Encoder) {
		e.report = report
	}
}

// NewEncoder creates an encoder. By default it warns about missing recommended components, logs
// nowhere, and does not cross-check a component registry.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{
		log:    zerolog.Nop(),
		policy: RecommendedWarn,
		report: func(context.Context, error) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lower converts an instance into columns: every present slot in schema order (required, then
// recommended, then optional), followed by the indicator as a zero-length marker. Absent slots
// are not emitted. The instance is only read.
//
// Lower fails with ErrEncoding only when a batch cannot be laid out, or disagrees with the
// attached component registry. Both indicate a broken invariant rather than bad input.
func (e *Encoder) Lower(inst *Instance) ([]Column, error) {
	return e.LowerContext(context.Background(), inst)
}

// LowerContext is Lower with a context handed to the reporter, so that reports carry the trace of
// the call that failed.
func (e *Encoder) LowerContext(ctx context.Context, inst *Instance) ([]Column, error) {
	assert.That(inst != nil, "lowering a nil instance")
	schema := inst.Schema()

	if e.policy == RecommendedWarn {
		if missing := inst.MissingRecommended(); len(missing) > 0 {
			fields := make([]string, len(missing))
			for i, slot := range missing {
				fields[i] = slot.Field
			}
			e.log.Warn().
				Str("archetype", schema.Name()).
				Strs("fields", fields).
				Msg("instance is missing recommended components")
		}
	}

	batches := inst.Batches()
	columns := make([]Column, 0, len(batches)+1)
	for _, batch := range batches {
		column, err := e.lowerBatch(batch)
		if err != nil {
			err = eris.Wrapf(ErrEncoding, "archetype %s: %v", schema.Name(), err)
			e.log.Error().Err(err).Str("archetype", schema.Name()).Msg("failed to lower instance")
			e.report(ctx, err)
			return nil, err
		}
		columns = append(columns, column)
	}

	indicator := schema.Indicator()
	columns = append(columns, Column{
		Descriptor: indicator.Descriptor,
		Arity:      component.ArityEmpty,
		Array:      columnar.Empty(datatype.Null()),
	})
	return columns, nil
}

func (e *Encoder) lowerBatch(batch component.Batch) (Column, error) {
	desc := batch.Descriptor()
	if e.components != nil {
		dt, err := e.components.Describe(desc.Name)
		if err != nil {
			return Column{}, err
		}
		if !dt.Equal(desc.Type) {
			return Column{}, eris.Errorf("component %s is registered as %s, batch has %s", desc.Name, dt, desc.Type)
		}
	}

	arr, err := columnar.Build(desc.Type, batch.Values())
	if err != nil {
		return Column{}, eris.Wrapf(err, "component %s", desc)
	}
	return Column{Descriptor: desc, Arity: batch.Arity(), Array: arr}, nil
}
