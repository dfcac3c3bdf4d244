// Package telemetry builds the structured loggers, tracer and error reporter shared by the
// recorder and its sinks.
package telemetry

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/argus-labs/loggable/pkg/telemetry/sentry"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const sentryFlushTimeout = 2 * time.Second

type Telemetry struct {
	Logger      zerolog.Logger
	Tracer      trace.Tracer
	serviceName string
}

// New builds telemetry from the environment (see Config), overridden by the non-zero fields of
// opts. The tracer is a no-op; hosts that export traces pass their own tracer to the sinks. New
// installs the W3C trace context and baggage propagator globally, so sinks forward the caller's
// trace context.
func New(opts Options) (Telemetry, error) {
	config, err := loadConfig()
	if err != nil {
		return Telemetry{}, eris.Wrap(err, "failed to load telemetry config")
	}

	options := newDefaultOptions()
	config.applyToOptions(&options)
	options.apply(opts)
	if err := options.validate(); err != nil {
		return Telemetry{}, eris.Wrap(err, "invalid telemetry options")
	}

	if err := sentry.New(options.SentryOptions); err != nil {
		return Telemetry{}, eris.Wrap(err, "failed to setup error reporting")
	}

	otel.SetTextMapPropagator(newPropagator())

	return Telemetry{
		Logger:      newLogger(options),
		Tracer:      noop.NewTracerProvider().Tracer(options.ServiceName),
		serviceName: options.ServiceName,
	}, nil
}

// Shutdown flushes buffered error reports.
func (t *Telemetry) Shutdown(ctx context.Context) {
	sentry.Shutdown(ctx, sentryFlushTimeout)
}

// GetLogger returns a component-specific logger.
func (t *Telemetry) GetLogger(component string) zerolog.Logger {
	return t.Logger.With().Str("component", t.serviceName+"."+component).Logger()
}

// GetLoggerWithTrace returns a component-specific logger enriched with trace context.
func (t *Telemetry) GetLoggerWithTrace(ctx context.Context, component string) zerolog.Logger {
	span := trace.SpanFromContext(ctx)

	logger := t.Logger.With().Str("component", t.serviceName+"."+component)

	if span.IsRecording() {
		spanCtx := span.SpanContext()
		logger = logger.
			Str("trace_id", spanCtx.TraceID().String()).
			Str("span_id", spanCtx.SpanID().String())
	}

	return logger.Logger()
}

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

// newLogger creates a logger with the configured level and format.
func newLogger(opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var writer io.Writer
	switch opts.LogFormat {
	case LogFormatPretty:
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	case LogFormatJSON, LogFormatUndefined:
		writer = out
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}
