// Package sink hands encoded frames to the store that consumes them.
package sink

import (
	"context"
	"slices"
	"sync"

	"github.com/argus-labs/loggable/pkg/codec"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// Message is one encoded frame ready for transport.
type Message struct {
	FrameID   uuid.UUID
	Archetype string
	Data      []byte // Output of codec.Encoder.EncodeFrame
}

// Sink delivers messages. Implementations must be safe for concurrent use.
type Sink interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

var _ Sink = (*Memory)(nil)

// ErrClosed is returned when sending to a closed sink.
var ErrClosed = eris.New("sink is closed") //nolint:gochecknoglobals // sentinel error

// Memory keeps every message in memory, in send order.
type Memory struct {
	mu       sync.Mutex
	messages []Message
	closed   bool
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "send canceled")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	msg.Data = slices.Clone(msg.Data)
	m.messages = append(m.messages, msg)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Messages returns a copy of the received messages.
func (m *Memory) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.messages)
}

// Frames decodes every received message.
func (m *Memory) Frames() ([]codec.Frame, error) {
	messages := m.Messages()
	frames := make([]codec.Frame, len(messages))
	for i, msg := range messages {
		frame, err := codec.DecodeFrame(msg.Data)
		if err != nil {
			return nil, eris.Wrapf(err, "message %d", i)
		}
		frames[i] = frame
	}
	return frames, nil
}
