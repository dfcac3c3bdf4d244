package archetype

import (
	"slices"

	"github.com/argus-labs/loggable/pkg/component"
	"github.com/rotisserie/eris"
)

// Generic is an archetype value handed over by callers that do not use the typed constructors.
// It is either Typed, an instance already built from a known schema, or Raw, component inputs
// keyed by component name.
type Generic interface {
	isGeneric()
}

// Typed wraps an instance built by a typed constructor.
type Typed struct {
	Instance *Instance
}

// Raw names an archetype and supplies its components as untyped inputs.
type Raw struct {
	Archetype  string
	Components map[string]component.Input[any]
}

func (Typed) isGeneric() {}
func (Raw) isGeneric()   {}

// FromGeneric validates a generic value against the registry and returns the instance it
// describes. A Typed value must come from the schema registered under its name. A Raw value fails
// with ErrUnknownArchetype for unregistered names, ErrUnknownComponent for components the
// archetype does not declare, and with the usual construction errors otherwise.
func (r *Registry) FromGeneric(g Generic) (*Instance, error) {
	switch g := g.(type) {
	case Typed:
		if g.Instance == nil {
			return nil, eris.New("typed archetype value has no instance")
		}
		schema, err := r.Lookup(g.Instance.Schema().Name())
		if err != nil {
			return nil, err
		}
		if !schema.Equal(g.Instance.Schema()) {
			return nil, eris.Wrapf(ErrSchemaConflict, "instance of %s was built from an unregistered schema", schema.Name())
		}
		return g.Instance, nil
	case Raw:
		schema, err := r.Lookup(g.Archetype)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(g.Components))
		for name := range g.Components {
			names = append(names, name)
		}
		slices.Sort(names)

		b := NewBuilder(schema)
		for _, name := range names {
			b.SetInput(name, g.Components[name])
		}
		return b.Build()
	default:
		return nil, eris.Errorf("unsupported generic archetype value %T", g)
	}
}
