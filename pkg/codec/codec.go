// Package codec serializes lowered archetype columns and wraps them in self-describing frames
// for the transport and storage collaborators.
//
// A frame is a msgpack envelope holding the frame metadata, a checksum of the uncompressed
// payload, and the payload itself: the msgpack encoding of the columns, optionally compressed
// with snappy. Encoding is deterministic, so equal columns always produce equal payloads.
package codec

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/rotisserie/eris"
	"github.com/shamaton/msgpack/v3"
)

var (
	// ErrChecksumMismatch is returned when a frame payload does not match its checksum.
	ErrChecksumMismatch = eris.New("checksum mismatch")

	// ErrUnsupportedVersion is returned for frames written by an incompatible encoder.
	ErrUnsupportedVersion = eris.New("unsupported frame version")
)

// EncodeColumns serializes columns into bytes.
func EncodeColumns(columns []archetype.Column) ([]byte, error) {
	data, err := msgpack.Marshal(columns)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode columns")
	}
	return data, nil
}

// DecodeColumns reverses EncodeColumns.
func DecodeColumns(data []byte) ([]archetype.Column, error) {
	var columns []archetype.Column
	if err := unmarshal(data, &columns); err != nil {
		return nil, eris.Wrap(err, "failed to decode columns")
	}
	return columns, nil
}

func unmarshal(data []byte, v any) (err error) {
	// shamaton/msgpack/v3 can panic on malformed input instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("malformed msgpack: panic: %v", r)
		}
	}()
	return msgpack.Unmarshal(data, v)
}
