package telemetry

import (
	"io"
	"strings"

	"github.com/argus-labs/loggable/pkg/telemetry/sentry"
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config is the environment configuration of the telemetry stack.
type Config struct {
	LogLevel  string    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat LogFormat `env:"LOG_FORMAT" envDefault:"json"`

	// Error reporting is disabled when SentryDsn is empty.
	SentryDsn  string            `env:"SENTRY_DSN"`
	SentryEnv  string            `env:"SENTRY_ENV"`
	SentryTags map[string]string `env:"SENTRY_TAGS"` // e.g. "region:eu,team:data"
}

func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, eris.Wrap(err, "failed to parse telemetry config")
	}
	if err := validateLevel(cfg.LogLevel); err != nil {
		return cfg, eris.Wrap(err, "LOG_LEVEL")
	}
	return cfg, nil
}

func (cfg *Config) applyToOptions(opt *Options) {
	opt.LogLevel = cfg.LogLevel
	opt.LogFormat = cfg.LogFormat
	opt.SentryOptions = sentry.Options{
		Dsn:         cfg.SentryDsn,
		Environment: cfg.SentryEnv,
		Tags:        cfg.SentryTags,
	}
}

// Options overrides the environment configuration. Zero fields keep the environment value.
type Options struct {
	ServiceName string    // Prefix of every component name, required
	LogLevel    string    // Minimum level, see zerolog.ParseLevel
	LogFormat   LogFormat // Log output format
	Output      io.Writer // Log destination, stdout when nil

	SentryOptions sentry.Options
}

func newDefaultOptions() Options {
	return Options{LogFormat: LogFormatUndefined}
}

func (opt *Options) apply(override Options) {
	if override.ServiceName != "" {
		opt.ServiceName = override.ServiceName
	}
	if override.LogLevel != "" {
		opt.LogLevel = override.LogLevel
	}
	if override.LogFormat != LogFormatUndefined {
		opt.LogFormat = override.LogFormat
	}
	if override.Output != nil {
		opt.Output = override.Output
	}
	if override.SentryOptions.Dsn != "" {
		opt.SentryOptions.Dsn = override.SentryOptions.Dsn
	}
	if override.SentryOptions.Environment != "" {
		opt.SentryOptions.Environment = override.SentryOptions.Environment
	}
	for k, v := range override.SentryOptions.Tags {
		if opt.SentryOptions.Tags == nil {
			opt.SentryOptions.Tags = make(map[string]string, len(override.SentryOptions.Tags))
		}
		opt.SentryOptions.Tags[k] = v
	}
}

func (opt *Options) validate() error {
	if opt.ServiceName == "" {
		return eris.New("service name cannot be empty")
	}
	if err := validateLevel(opt.LogLevel); err != nil {
		return err
	}
	if opt.LogFormat == LogFormatUndefined {
		return eris.New("log format must be specified")
	}
	return nil
}

func validateLevel(level string) error {
	if _, err := zerolog.ParseLevel(strings.ToLower(level)); err != nil || level == "" {
		return eris.Errorf("invalid log level: %q (must be debug, info, warn or error)", level)
	}
	return nil
}

// LogFormat selects how log records are written.
type LogFormat uint8

const (
	LogFormatUndefined LogFormat = iota // Unset, falls back to the environment
	LogFormatJSON                       // One JSON object per record
	LogFormatPretty                     // zerolog.ConsoleWriter, for terminals
)

func (f LogFormat) String() string {
	switch f {
	case LogFormatJSON:
		return "json"
	case LogFormatPretty:
		return "pretty"
	case LogFormatUndefined:
		return "undefined"
	default:
		return "undefined"
	}
}

// ParseLogFormat converts a format name, case-insensitively, into a LogFormat.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	case "pretty":
		return LogFormatPretty
	default:
		return LogFormatUndefined
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so LOG_FORMAT is parsed by env.
func (f *LogFormat) UnmarshalText(text []byte) error {
	format := ParseLogFormat(string(text))
	if format == LogFormatUndefined {
		return eris.Errorf("invalid log format: %q (must be json or pretty)", text)
	}
	*f = format
	return nil
}
