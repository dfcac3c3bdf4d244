package sink

import (
	"context"
	"testing"
	"time"

	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/codec"
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func testMessage(t *testing.T, entityPath string) (codec.Frame, Message) {
	t.Helper()

	schema := archetype.MustDefine("Sample", []archetype.Slot{
		archetype.RequiredSlot("values", component.NewDescriptor("Value", datatype.Float64())),
		archetype.IndicatorSlot("Sample"),
	}, archetype.IndicatorName("Sample"))

	b := archetype.NewBuilder(schema)
	batch, err := component.MakeBatch(schema.Slots()[0].Descriptor, component.ArityPerInstance, []any{1.5, 2.5})
	require.NoError(t, err)
	inst, err := b.Set(batch).Build()
	require.NoError(t, err)

	columns, err := archetype.NewEncoder().Lower(inst)
	require.NoError(t, err)

	frame := codec.NewFrame(entityPath, schema, columns)
	data, err := codec.NewEncoder(codec.WithCompression(codec.CompressionSnappy)).EncodeFrame(frame)
	require.NoError(t, err)
	return frame, Message{FrameID: frame.ID, Archetype: frame.Archetype, Data: data}
}

func TestMemory(t *testing.T) {
	t.Parallel()

	mem := NewMemory()
	frame, msg := testMessage(t, "world/points")
	require.NoError(t, mem.Send(context.Background(), msg))

	// The sink keeps its own copy of the payload.
	msg.Data[0] ^= 0xff

	frames, err := mem.Frames()
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, frame.ID, frames[0].ID)
	assert.Equal(t, "world/points", frames[0].EntityPath)
	assert.Len(t, frames[0].Columns, 2)

	require.NoError(t, mem.Close())
	err = mem.Send(context.Background(), msg)
	assert.True(t, eris.Is(err, ErrClosed))
	assert.Len(t, mem.Messages(), 1)
}

func TestMemory_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mem := NewMemory()
	_, msg := testMessage(t, "a")
	require.Error(t, mem.Send(ctx, msg))
	assert.Empty(t, mem.Messages())
}

func TestNATS_Send(t *testing.T) {
	t.Parallel()

	prefix := "test-" + uuid.NewString()[:8]
	sub := newTestSubscriber(t, prefix+".>")
	s := newTestSink(t, prefix)

	frame, msg := testMessage(t, "world/samples")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Send(ctx, msg))

	got, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, prefix+".Sample", got.Subject)
	assert.Equal(t, frame.ID.String(), got.Header.Get(HeaderFrameID))
	assert.Equal(t, "Sample", got.Header.Get(HeaderArchetype))

	decoded, err := codec.DecodeFrame(got.Data)
	require.NoError(t, err)
	assert.Equal(t, frame.ID, decoded.ID)
	assert.Equal(t, frame.Fingerprint, decoded.Fingerprint)
	assert.Equal(t, "world/samples", decoded.EntityPath)
}

func TestNATS_PropagatesTraceContext(t *testing.T) {
	t.Parallel()

	prefix := "test-" + uuid.NewString()[:8]
	sub := newTestSubscriber(t, prefix+".>")
	s := newTestSink(t, prefix, WithPropagator(propagation.TraceContext{}))

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	ctx, cancel := context.WithTimeout(trace.ContextWithRemoteSpanContext(context.Background(), parent), 5*time.Second)
	defer cancel()

	_, msg := testMessage(t, "world/samples")
	require.NoError(t, s.Send(ctx, msg))

	got, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)
	extracted := propagation.TraceContext{}.Extract(context.Background(), propagation.HeaderCarrier(got.Header))
	assert.Equal(t, parent.TraceID(), trace.SpanContextFromContext(extracted).TraceID())
}

func TestNATS_Close(t *testing.T) {
	t.Parallel()

	prefix := "test-" + uuid.NewString()[:8]
	sub := newTestSubscriber(t, prefix+".>")
	s := newTestSink(t, prefix)

	_, msg := testMessage(t, "world/samples")
	require.NoError(t, s.Send(context.Background(), msg))

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "close is idempotent")
	assert.True(t, s.conn.IsClosed() || s.conn.IsDraining())

	err := s.Send(context.Background(), msg)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrClosed), "got %v", err)

	// The frame sent before Close is delivered, nothing after it.
	_, err = sub.NextMsg(5 * time.Second)
	require.NoError(t, err)
	_, err = sub.NextMsg(100 * time.Millisecond)
	assert.ErrorIs(t, err, nats.ErrTimeout)
}

func TestNATS_InvalidArchetypeToken(t *testing.T) {
	t.Parallel()

	s := newTestSink(t, "test-invalid")
	_, msg := testMessage(t, "a")
	for _, name := range []string{"", "a.b", "a*", "with space"} {
		msg.Archetype = name
		require.Error(t, s.Send(context.Background(), msg), "archetype %q", name)
	}
}

func TestNATSConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     NATSConfig
		wantErr bool
	}{
		{name: "valid", cfg: NATSConfig{URL: "nats://x:4222", SubjectPrefix: "loggable.frames"}},
		{name: "missing url", cfg: NATSConfig{SubjectPrefix: "loggable"}, wantErr: true},
		{name: "empty prefix", cfg: NATSConfig{URL: "nats://x:4222"}, wantErr: true},
		{name: "wildcard prefix", cfg: NATSConfig{URL: "nats://x:4222", SubjectPrefix: "loggable.>"}, wantErr: true},
		{name: "empty token", cfg: NATSConfig{URL: "nats://x:4222", SubjectPrefix: "a..b"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewNATS_FromEnv(t *testing.T) {
	t.Setenv("NATS_URL", testNATS.ClientURL())
	t.Setenv("LOGGABLE_SUBJECT_PREFIX", "env.prefix")

	s, err := NewNATS()
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "env.prefix.Points2D", s.Subject("Points2D"))
}
