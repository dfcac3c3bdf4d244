// Package recorder is the logging entry point: it validates an instance against the registry,
// lowers it, encodes the columns into a frame, and hands the frame to a sink.
package recorder

import (
	"context"

	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/codec"
	"github.com/argus-labs/loggable/pkg/sink"
	"github.com/argus-labs/loggable/pkg/telemetry/sentry"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Recorder is safe for concurrent use as long as its sink is.
type Recorder struct {
	registry *archetype.Registry
	encoder  *archetype.Encoder
	frames   *codec.Encoder
	sink     sink.Sink
	log      zerolog.Logger
}

// New creates a recorder logging instances of reg's archetypes to s. Defaults come from the
// environment (see Config) and are overridden by opts.
func New(reg *archetype.Registry, s sink.Sink, opts ...Option) (*Recorder, error) {
	if reg == nil {
		return nil, eris.New("registry cannot be nil")
	}
	if s == nil {
		return nil, eris.New("sink cannot be nil")
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	o := options{log: zerolog.Nop()}
	cfg.applyToOptions(&o)
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, eris.Wrap(err, "invalid recorder options")
	}

	encoderLog := o.log
	reporter := func(context.Context, error) {}
	if o.telemetry != nil {
		o.log = o.telemetry.GetLogger("recorder")
		encoderLog = o.telemetry.GetLogger("encoder")
		reporter = sentry.Reporter("encoder")
	}

	return &Recorder{
		registry: reg,
		encoder: archetype.NewEncoder(
			archetype.WithComponents(reg.Components()),
			archetype.WithLogger(encoderLog),
			archetype.WithRecommendedPolicy(o.policy),
			archetype.WithReporter(reporter),
		),
		frames: codec.NewEncoder(codec.WithCompression(o.compression)),
		sink:   s,
		log:    o.log,
	}, nil
}

// Log records inst under entityPath. The instance's schema must be registered.
func (r *Recorder) Log(ctx context.Context, entityPath string, inst *archetype.Instance) error {
	return r.LogGeneric(ctx, entityPath, archetype.Typed{Instance: inst})
}

// LogGeneric records a typed or raw instance under entityPath. Raw instances are validated
// against the registry first.
func (r *Recorder) LogGeneric(ctx context.Context, entityPath string, g archetype.Generic) error {
	if entityPath == "" {
		return eris.New("entity path cannot be empty")
	}

	inst, err := r.registry.FromGeneric(g)
	if err != nil {
		return err
	}

	columns, err := r.encoder.LowerContext(ctx, inst)
	if err != nil {
		return err
	}

	frame := codec.NewFrame(entityPath, inst.Schema(), columns)
	data, err := r.frames.EncodeFrame(frame)
	if err != nil {
		return eris.Wrapf(err, "archetype %s", frame.Archetype)
	}

	if err := r.sink.Send(ctx, sink.Message{FrameID: frame.ID, Archetype: frame.Archetype, Data: data}); err != nil {
		return eris.Wrapf(err, "failed to send frame %s", frame.ID)
	}

	r.log.Debug().
		Str("entity_path", entityPath).
		Str("archetype", frame.Archetype).
		Stringer("frame_id", frame.ID).
		Int("instances", inst.Len()).
		Int("bytes", len(data)).
		Msg("logged instance")
	return nil
}

// Registry returns the archetype registry instances are validated against.
func (r *Recorder) Registry() *archetype.Registry {
	return r.registry
}

// Close closes the sink.
func (r *Recorder) Close() error {
	return r.sink.Close()
}
