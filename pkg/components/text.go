package components

import (
	"path/filepath"
	"strings"

	"github.com/argus-labs/loggable/pkg/datatype"
)

// Text is a UTF-8 string label or body.
type Text string

func (Text) Name() string                { return "Text" }
func (Text) DataType() datatype.DataType { return datatype.Utf8() }
func (t Text) Value() any                { return string(t) }

// Name is a display name, e.g. of a plot series.
type Name string

func (Name) Name() string                { return "Name" }
func (Name) DataType() datatype.DataType { return datatype.Utf8() }
func (n Name) Value() any                { return string(n) }

// TextLogLevel is the severity of a text log entry.
type TextLogLevel string

const (
	LevelCritical TextLogLevel = "CRITICAL"
	LevelError    TextLogLevel = "ERROR"
	LevelWarn     TextLogLevel = "WARN"
	LevelInfo     TextLogLevel = "INFO"
	LevelDebug    TextLogLevel = "DEBUG"
	LevelTrace    TextLogLevel = "TRACE"
)

func (TextLogLevel) Name() string                { return "TextLogLevel" }
func (TextLogLevel) DataType() datatype.DataType { return datatype.Utf8() }
func (l TextLogLevel) Value() any                { return string(l) }

// MediaType is an IANA media type, e.g. "text/markdown".
type MediaType string

const (
	MediaTypePlainText MediaType = "text/plain"
	MediaTypeMarkdown  MediaType = "text/markdown"
	MediaTypePNG       MediaType = "image/png"
	MediaTypeJPEG      MediaType = "image/jpeg"
	MediaTypeGLB       MediaType = "model/gltf-binary"
	MediaTypeGLTF      MediaType = "model/gltf+json"
	MediaTypeOBJ       MediaType = "model/obj"
	MediaTypeSTL       MediaType = "model/stl"
)

// GuessMediaType guesses the media type of a file from its extension, or returns "" if the
// extension is unknown.
func GuessMediaType(path string) MediaType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return MediaTypePlainText
	case ".md":
		return MediaTypeMarkdown
	case ".png":
		return MediaTypePNG
	case ".jpg", ".jpeg":
		return MediaTypeJPEG
	case ".glb":
		return MediaTypeGLB
	case ".gltf":
		return MediaTypeGLTF
	case ".obj":
		return MediaTypeOBJ
	case ".stl":
		return MediaTypeSTL
	default:
		return ""
	}
}

func (MediaType) Name() string                { return "MediaType" }
func (MediaType) DataType() datatype.DataType { return datatype.Utf8() }
func (m MediaType) Value() any                { return string(m) }

// Scalar is a single double-precision sample of a time series.
type Scalar float64

func (Scalar) Name() string                { return "Scalar" }
func (Scalar) DataType() datatype.DataType { return datatype.Float64() }
func (s Scalar) Value() any                { return float64(s) }

// Blob is an opaque binary payload.
type Blob []byte

func (Blob) Name() string                { return "Blob" }
func (Blob) DataType() datatype.DataType { return datatype.Binary() }

func (b Blob) Value() any {
	if b == nil {
		return []byte{}
	}
	return []byte(b)
}

// ClearIsRecursive tells a Clear whether it also applies to the entity's children.
type ClearIsRecursive bool

func (ClearIsRecursive) Name() string                { return "ClearIsRecursive" }
func (ClearIsRecursive) DataType() datatype.DataType { return datatype.Bool() }
func (c ClearIsRecursive) Value() any                { return bool(c) }

// DisconnectedSpace marks an entity as not transformable into its parent's space.
type DisconnectedSpace bool

func (DisconnectedSpace) Name() string                { return "DisconnectedSpace" }
func (DisconnectedSpace) DataType() datatype.DataType { return datatype.Bool() }
func (d DisconnectedSpace) Value() any                { return bool(d) }
