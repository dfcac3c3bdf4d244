package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
)

//nolint:gochecknoglobals // schemas are immutable
var AnnotationContextSchema = define("AnnotationContext",
	required[c.AnnotationContext]("context"),
)

// NewAnnotationContext returns the class descriptions that apply to the entity and its children.
func NewAnnotationContext(annotations c.AnnotationContext) (*archetype.Instance, error) {
	b := archetype.NewBuilder(AnnotationContextSchema)
	archetype.Add(b, component.Splat(annotations))
	return b.Build()
}
