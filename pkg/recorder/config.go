package recorder

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/codec"
	"github.com/argus-labs/loggable/pkg/telemetry"
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type Config struct {
	// RecommendedPolicy is what happens when an instance lacks a recommended component
	// ("warn" or "ignore").
	RecommendedPolicy archetype.RecommendedPolicy `env:"LOGGABLE_RECOMMENDED_POLICY" envDefault:"warn"`

	// Compression is the frame payload compression ("none" or "snappy").
	Compression codec.Compression `env:"LOGGABLE_COMPRESSION" envDefault:"snappy"`
}

// loadConfig loads the configuration from environment variables.
func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, eris.Wrap(err, "failed to parse recorder config")
	}
	return cfg, nil
}

func (cfg *Config) applyToOptions(opt *options) {
	opt.policy = cfg.RecommendedPolicy
	opt.compression = cfg.Compression
}

type options struct {
	policy      archetype.RecommendedPolicy
	compression codec.Compression
	telemetry   *telemetry.Telemetry
	log         zerolog.Logger
}

// Option overrides the environment configuration of a Recorder.
type Option func(*options)

// WithRecommendedPolicy overrides LOGGABLE_RECOMMENDED_POLICY.
func WithRecommendedPolicy(policy archetype.RecommendedPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithCompression overrides LOGGABLE_COMPRESSION.
func WithCompression(c codec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithTelemetry routes the recorder's and encoder's logs through tel and reports encoding failures
// to Sentry.
func WithTelemetry(tel *telemetry.Telemetry) Option {
	return func(o *options) {
		o.telemetry = tel
	}
}

// WithLogger sets the logger used when no telemetry is configured.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// validate checks that all options are set and valid.
func (o *options) validate() error {
	switch o.policy {
	case archetype.RecommendedWarn, archetype.RecommendedIgnore:
	default:
		return eris.Errorf("invalid recommended policy %d", o.policy)
	}
	switch o.compression {
	case codec.CompressionNone, codec.CompressionSnappy:
	default:
		return eris.Errorf("invalid compression %d", o.compression)
	}
	return nil
}
