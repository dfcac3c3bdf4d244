package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/argus-labs/loggable/pkg/telemetry/sentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestNew_EnvAndOptions(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	tel, err := New(Options{ServiceName: "loggable", Output: &buf})
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	log := tel.GetLogger("recorder")
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"message":"kept"`)
	assert.Contains(t, out, `"component":"loggable.recorder"`)
}

func TestNew_OptionsOverrideEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	var buf bytes.Buffer
	tel, err := New(Options{ServiceName: "loggable", LogLevel: "debug", Output: &buf})
	require.NoError(t, err)

	logger := tel.GetLoggerWithTrace(context.Background(), "sink")
	logger.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "trace_id")
}

func TestNew_InstallsPropagator(t *testing.T) {
	_, err := New(Options{ServiceName: "loggable", Output: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Subset(t, otel.GetTextMapPropagator().Fields(), []string{"traceparent", "baggage"})
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		opts Options
	}{
		{name: "missing service name", opts: Options{}},
		{name: "bad env level", env: map[string]string{"LOG_LEVEL": "loud"}, opts: Options{ServiceName: "x"}},
		{name: "bad env format", env: map[string]string{"LOG_FORMAT": "xml"}, opts: Options{ServiceName: "x"}},
		{name: "bad option level", opts: Options{ServiceName: "x", LogLevel: "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := New(tt.opts)
			require.Error(t, err)
		})
	}
}

func TestNewLogger_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(Options{LogLevel: "info", LogFormat: LogFormatPretty, Output: &buf})
	logger.Info().Str("archetype", "Points2D").Msg("registered")

	out := buf.String()
	assert.Contains(t, out, "registered")
	assert.Contains(t, out, "archetype=")
	assert.NotContains(t, out, "{")
}

func TestParseLogFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LogFormatJSON, ParseLogFormat("JSON"))
	assert.Equal(t, LogFormatPretty, ParseLogFormat("pretty"))
	assert.Equal(t, LogFormatUndefined, ParseLogFormat("xml"))
	for _, f := range []LogFormat{LogFormatJSON, LogFormatPretty} {
		assert.Equal(t, f, ParseLogFormat(f.String()))
	}

	var f LogFormat
	require.NoError(t, f.UnmarshalText([]byte("Pretty")))
	assert.Equal(t, LogFormatPretty, f)
	require.Error(t, f.UnmarshalText([]byte("xml")))
}

func TestLoadConfig_SentryTags(t *testing.T) {
	t.Setenv("SENTRY_TAGS", "region:eu,team:data")
	t.Setenv("LOG_FORMAT", "pretty")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"region": "eu", "team": "data"}, cfg.SentryTags)
	assert.Equal(t, LogFormatPretty, cfg.LogFormat)

	opts := newDefaultOptions()
	cfg.applyToOptions(&opts)
	opts.apply(Options{ServiceName: "loggable", SentryOptions: sentry.Options{Tags: map[string]string{"team": "viz"}}})
	require.NoError(t, opts.validate())
	assert.Equal(t, map[string]string{"region": "eu", "team": "viz"}, opts.SentryOptions.Tags)
}
