package archetype

import (
	"slices"
	"sync"

	"github.com/argus-labs/loggable/pkg/component"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Registry maps archetype names to schemas. It is append-only: a schema, once registered, stays
// registered and is never replaced. Safe for concurrent use; concurrent registrations of one name
// are serialized, so the first writer defines the schema and later writers either match it or
// fail with ErrSchemaConflict.
type Registry struct {
	mu         sync.RWMutex
	schemas    map[string]*Schema
	components *component.Registry
	log        zerolog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used to trace registrations.
func WithRegistryLogger(log zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry creates an empty archetype registry backed by a component registry. The component
// registry receives every slot's component on registration. A nil components creates a private one.
func NewRegistry(components *component.Registry, opts ...RegistryOption) *Registry {
	if components == nil {
		components = component.NewRegistry()
	}
	r := &Registry{
		schemas:    make(map[string]*Schema),
		components: components,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Define builds and registers a new schema. Unlike Register, it fails with ErrDuplicateArchetype
// whenever the name is already taken, even by an identical schema.
func (r *Registry) Define(name string, slots []Slot, indicator string) (*Schema, error) {
	schema, err := Define(name, slots, indicator)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schemas[name]; ok {
		return nil, eris.Wrapf(ErrDuplicateArchetype, "archetype %s", name)
	}
	if err := r.insert(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// Register adds a schema. Registering an identical schema under a taken name is a no-op, so the
// registry can be populated from several independent load paths. A different schema under a
// taken name fails with ErrSchemaConflict.
func (r *Registry) Register(schema *Schema) error {
	if schema == nil {
		return eris.New("cannot register a nil schema")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.schemas[schema.Name()]; ok {
		if existing.Equal(schema) {
			return nil
		}
		return eris.Wrapf(ErrSchemaConflict, "archetype %s is registered with fingerprint %016x, got %016x",
			schema.Name(), existing.Fingerprint(), schema.Fingerprint())
	}
	return r.insert(schema)
}

// insert registers the schema's components and then the schema. The components are registered
// all at once, so a conflicting schema leaves both registries untouched. Callers must hold the
// write lock.
func (r *Registry) insert(schema *Schema) error {
	if err := r.components.RegisterAll(schema.All()...); err != nil {
		return eris.Wrapf(err, "archetype %s", schema.Name())
	}

	r.schemas[schema.Name()] = schema
	r.log.Debug().
		Str("archetype", schema.Name()).
		Int("components", schema.NumComponents()).
		Uint64("fingerprint", schema.Fingerprint()).
		Msg("registered archetype")
	return nil
}

// Lookup returns the schema registered under name, or ErrUnknownArchetype.
func (r *Registry) Lookup(name string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.schemas[name]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownArchetype, "archetype %s", name)
	}
	return schema, nil
}

// Names returns the registered archetype names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Len returns the number of registered archetypes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}

// Components returns the component registry backing this registry.
func (r *Registry) Components() *component.Registry {
	return r.components
}
