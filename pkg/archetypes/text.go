package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
)

//nolint:gochecknoglobals // schemas are immutable
var (
	TextLogSchema = define("TextLog",
		required[c.Text]("text"),
		recommended[c.TextLogLevel]("level"),
		optional[c.Color]("color"),
	)

	TextDocumentSchema = define("TextDocument",
		required[c.Text]("text"),
		recommended[c.MediaType]("media_type"),
	)
)

// TextLogOptions holds the non-required components of TextLog.
type TextLogOptions struct {
	Level component.Input[c.TextLogLevel]
	Color component.Input[c.Color]
}

// NewTextLog returns a log entry.
func NewTextLog(text c.Text, opts TextLogOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(TextLogSchema)
	archetype.Add(b, component.Splat(text))
	archetype.Add(b, opts.Level)
	archetype.Add(b, opts.Color)
	return b.Build()
}

// NewTextDocument returns a text document. An empty media type is left absent, which viewers read
// as plain text.
func NewTextDocument(text c.Text, mediaType c.MediaType) (*archetype.Instance, error) {
	b := archetype.NewBuilder(TextDocumentSchema)
	archetype.Add(b, component.Splat(text))
	if mediaType != "" {
		archetype.Add(b, component.Splat(mediaType))
	}
	return b.Build()
}
