package codec

import (
	"strings"

	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/cespare/xxhash/v2"
	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/shamaton/msgpack/v3"
)

// Version is the frame format written by this package.
const Version uint8 = 1

// Frame is the lowered form of one logging call: the columns of one archetype instance plus the
// entity path the caller logged it under. The path is opaque to this package.
type Frame struct {
	ID          uuid.UUID
	EntityPath  string
	Archetype   string
	Fingerprint uint64 // Schema fingerprint, lets consumers detect schema drift
	Columns     []archetype.Column
}

// NewFrame returns a frame with a fresh random ID.
func NewFrame(entityPath string, schema *archetype.Schema, columns []archetype.Column) Frame {
	return Frame{
		ID:          uuid.New(),
		EntityPath:  entityPath,
		Archetype:   schema.Name(),
		Fingerprint: schema.Fingerprint(),
		Columns:     columns,
	}
}

// Compression selects how frame payloads are compressed.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionSnappy
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionSnappy:
		return "snappy"
	default:
		return "unknown"
	}
}

// ParseCompression converts a compression name into a Compression.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return CompressionNone, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return CompressionNone, eris.Errorf("invalid compression: %q (must be none or snappy)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so the compression can be read from env config.
func (c *Compression) UnmarshalText(text []byte) error {
	parsed, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type envelope struct {
	Version     uint8       `msgpack:"v"`
	ID          []byte      `msgpack:"id"`
	EntityPath  string      `msgpack:"path"`
	Archetype   string      `msgpack:"archetype"`
	Fingerprint uint64      `msgpack:"fingerprint"`
	Compression Compression `msgpack:"compression"`
	Checksum    uint64      `msgpack:"checksum"` // xxhash64 of the uncompressed payload
	Payload     []byte      `msgpack:"payload"`
}

// Encoder writes frames.
type Encoder struct {
	compression Compression
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithCompression sets the payload compression.
func WithCompression(c Compression) Option {
	return func(e *Encoder) {
		e.compression = c
	}
}

// NewEncoder creates a frame encoder. Payloads are not compressed by default.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{compression: CompressionNone}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeFrame serializes a frame.
func (e *Encoder) EncodeFrame(f Frame) ([]byte, error) {
	payload, err := EncodeColumns(f.Columns)
	if err != nil {
		return nil, err
	}
	checksum := xxhash.Sum64(payload)

	switch e.compression {
	case CompressionNone:
	case CompressionSnappy:
		payload = snappy.Encode(nil, payload)
	default:
		return nil, eris.Errorf("unsupported compression %d", e.compression)
	}

	data, err := msgpack.Marshal(envelope{
		Version:     Version,
		ID:          f.ID[:],
		EntityPath:  f.EntityPath,
		Archetype:   f.Archetype,
		Fingerprint: f.Fingerprint,
		Compression: e.compression,
		Checksum:    checksum,
		Payload:     payload,
	})
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode frame")
	}
	return data, nil
}

// DecodeFrame parses a frame written by any Encoder. It fails with ErrChecksumMismatch when the
// payload was corrupted and ErrUnsupportedVersion for frames of another format version.
func DecodeFrame(data []byte) (Frame, error) {
	var env envelope
	if err := unmarshal(data, &env); err != nil {
		return Frame{}, eris.Wrap(err, "failed to decode frame")
	}
	if env.Version != Version {
		return Frame{}, eris.Wrapf(ErrUnsupportedVersion, "got version %d, want %d", env.Version, Version)
	}

	id, err := uuid.FromBytes(env.ID)
	if err != nil {
		return Frame{}, eris.Wrap(err, "invalid frame id")
	}

	payload := env.Payload
	switch env.Compression {
	case CompressionNone:
	case CompressionSnappy:
		if payload, err = snappy.Decode(nil, env.Payload); err != nil {
			return Frame{}, eris.Wrapf(ErrChecksumMismatch, "failed to decompress payload: %v", err)
		}
	default:
		return Frame{}, eris.Errorf("unsupported compression %d", env.Compression)
	}

	if got := xxhash.Sum64(payload); got != env.Checksum {
		return Frame{}, eris.Wrapf(ErrChecksumMismatch, "frame %s: payload hashes to %016x, header says %016x",
			id, got, env.Checksum)
	}

	columns, err := DecodeColumns(payload)
	if err != nil {
		return Frame{}, err
	}
	return Frame{
		ID:          id,
		EntityPath:  env.EntityPath,
		Archetype:   env.Archetype,
		Fingerprint: env.Fingerprint,
		Columns:     columns,
	}, nil
}
