package sink

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/nats-io/nats.go"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Header keys set on every published message.
const (
	HeaderFrameID   = "Loggable-Frame-Id"
	HeaderArchetype = "Loggable-Archetype"
)

// NATSConfig holds the configuration for the NATS sink.
type NATSConfig struct {
	Name            string `env:"NATS_NAME" envDefault:"loggable"`
	URL             string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	CredentialsFile string `env:"NATS_CREDENTIALS_FILE"`
	SubjectPrefix   string `env:"LOGGABLE_SUBJECT_PREFIX" envDefault:"loggable"`
}

// Validate validates the NATS configuration and returns an error if invalid.
func (cfg NATSConfig) Validate() error {
	if cfg.URL == "" {
		return eris.New("NATS URL is required")
	}
	if !validSubject(cfg.SubjectPrefix) {
		return eris.Errorf("invalid subject prefix: %q", cfg.SubjectPrefix)
	}
	return nil
}

var _ Sink = (*NATS)(nil)

// NATS publishes every message to the subject "<prefix>.<archetype>".
type NATS struct {
	conn       *nats.Conn
	config     NATSConfig
	log        zerolog.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	closed     atomic.Bool
}

// NATSOption defines a function that can modify a NATS sink.
type NATSOption func(*NATS)

// WithLogger sets the sink's logger.
func WithLogger(log zerolog.Logger) NATSOption {
	return func(n *NATS) {
		n.log = log
	}
}

// WithNATSConfig sets the NATS configuration, overriding the environment.
func WithNATSConfig(cfg NATSConfig) NATSOption {
	return func(n *NATS) {
		n.config = cfg
	}
}

// WithTracer sets the tracer used to trace sends.
func WithTracer(tracer trace.Tracer) NATSOption {
	return func(n *NATS) {
		n.tracer = tracer
	}
}

// WithPropagator sets the propagator that writes the trace context into message headers. The
// default is the global otel propagator.
func WithPropagator(p propagation.TextMapPropagator) NATSOption {
	return func(n *NATS) {
		n.propagator = p
	}
}

// NewNATS connects to NATS. The configuration is read from the environment unless
// WithNATSConfig is given.
func NewNATS(opts ...NATSOption) (*NATS, error) {
	n := &NATS{
		log:        zerolog.Nop(),
		tracer:     noop.NewTracerProvider().Tracer("sink"),
		propagator: otel.GetTextMapPropagator(),
	}

	var err error
	n.config, err = env.ParseAs[NATSConfig]()
	if err != nil {
		return nil, eris.Wrap(err, "failed to parse NATS config")
	}

	for _, opt := range opts {
		opt(n)
	}

	if err := n.config.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid NATS config")
	}

	natsOpts := []nats.Option{
		nats.Name(n.config.Name),
		nats.MaxReconnects(10),
		nats.ReconnectWait(time.Second * 5),
		nats.DisconnectErrHandler(n.handleDisconnect),
		nats.ReconnectHandler(n.handleReconnect),
	}
	if n.config.CredentialsFile != "" {
		natsOpts = append(natsOpts, nats.UserCredentials(n.config.CredentialsFile))
	}

	conn, err := nats.Connect(n.config.URL, natsOpts...)
	if err != nil {
		return nil, eris.Wrap(err, "failed to connect to NATS server")
	}
	n.conn = conn

	n.log.Info().
		Str("url", conn.ConnectedUrl()).
		Str("name", n.config.Name).
		Msg("Connected to NATS server")
	return n, nil
}

// Subject returns the subject messages of an archetype are published on.
func (n *NATS) Subject(archetype string) string {
	return n.config.SubjectPrefix + "." + archetype
}

// Send publishes msg and waits until the server has processed it or ctx is done. It returns
// ErrClosed once Close has been called.
func (n *NATS) Send(ctx context.Context, msg Message) error {
	if n.closed.Load() {
		return eris.Wrapf(ErrClosed, "nats sink dropped frame %s", msg.FrameID)
	}

	subject := n.Subject(msg.Archetype)
	ctx, span := n.tracer.Start(ctx, "sink.send",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.destination", subject),
			attribute.String("loggable.frame_id", msg.FrameID.String()),
			attribute.Int("messaging.message.body.size", len(msg.Data)),
		))
	defer span.End()

	err := n.publish(ctx, subject, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		n.log.Error().Err(err).Str("subject", subject).Msg("Failed to publish frame")
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (n *NATS) publish(ctx context.Context, subject string, msg Message) error {
	if strings.Contains(msg.Archetype, ".") || !validSubject(msg.Archetype) {
		return eris.Errorf("archetype %q is not a valid subject token", msg.Archetype)
	}

	out := nats.NewMsg(subject)
	out.Header.Set(HeaderFrameID, msg.FrameID.String())
	out.Header.Set(HeaderArchetype, msg.Archetype)
	n.propagator.Inject(ctx, propagation.HeaderCarrier(out.Header))
	out.Data = msg.Data
	if err := n.conn.PublishMsg(out); err != nil {
		if eris.Is(err, nats.ErrConnectionClosed) || eris.Is(err, nats.ErrConnectionDraining) {
			return eris.Wrapf(ErrClosed, "failed to publish to %s: %v", subject, err)
		}
		return eris.Wrapf(err, "failed to publish to %s", subject)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return eris.Wrapf(err, "failed to flush %s", subject)
	}
	return nil
}

// Close drains pending messages and closes the connection. Only the first call does anything.
func (n *NATS) Close() error {
	if !n.closed.CompareAndSwap(false, true) || n.conn == nil {
		return nil
	}
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return eris.Wrap(err, "failed to drain NATS connection")
	}
	n.log.Info().Msg("NATS connection closed")
	return nil
}

func (n *NATS) handleDisconnect(nc *nats.Conn, err error) {
	log := n.log.With().
		Str("nats_url", nc.ConnectedUrl()).
		Uint64("reconnect_attempts", nc.Reconnects).
		Logger()

	if err != nil {
		log.Error().Err(err).Msg("Disconnected from NATS with error")
	} else {
		log.Warn().Msg("Disconnected from NATS (no error)")
	}
}

func (n *NATS) handleReconnect(nc *nats.Conn) {
	n.log.Info().
		Str("nats_url", nc.ConnectedUrl()).
		Uint64("reconnect_attempts", nc.Reconnects).
		Msg("Reconnected to NATS")
}

// validSubject reports whether s is a dot-separated sequence of non-empty tokens without
// wildcards or whitespace.
func validSubject(s string) bool {
	if s == "" {
		return false
	}
	for _, token := range strings.Split(s, ".") {
		if token == "" || strings.ContainsAny(token, "*> \t\r\n") {
			return false
		}
	}
	return true
}
