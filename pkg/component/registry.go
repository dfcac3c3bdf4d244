package component

import (
	"slices"
	"sync"

	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Registry maps component names to their data types. A name keeps one data type for the lifetime
// of the registry: registrations are append-only and idempotent. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]datatype.DataType
	log   zerolog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used to trace registrations.
func WithLogger(log zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry creates an empty component registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		types: make(map[string]datatype.DataType),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register associates a component name with a data type. Registering the same name with an equal
// type is a no-op; a different type fails with ErrSchemaConflict.
func (r *Registry) Register(name string, dt datatype.DataType) error {
	return r.RegisterAll(NewDescriptor(name, dt))
}

// RegisterAll registers every descriptor or none of them. All descriptors are checked against the
// registry and against each other under one lock before the first is inserted, so a conflict
// anywhere leaves the registry untouched.
func (r *Registry) RegisterAll(descs ...Descriptor) error {
	for _, desc := range descs {
		if desc.Name == "" {
			return eris.New("component name cannot be empty")
		}
		if err := desc.Type.Validate(); err != nil {
			return eris.Wrapf(err, "invalid data type for component %s", desc)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make(map[string]datatype.DataType, len(descs))
	for _, desc := range descs {
		existing, ok := r.types[desc.Name]
		if !ok {
			existing, ok = pending[desc.Name]
		}
		if ok && !existing.Equal(desc.Type) {
			return eris.Wrapf(ErrSchemaConflict, "component %s is registered as %s, %s declares %s",
				desc.Name, existing, desc, desc.Type)
		}
		if _, registered := r.types[desc.Name]; !registered {
			pending[desc.Name] = desc.Type
		}
	}

	for _, desc := range descs {
		dt, ok := pending[desc.Name]
		if !ok {
			continue
		}
		r.types[desc.Name] = dt
		delete(pending, desc.Name)
		r.log.Debug().Str("component", desc.Name).Stringer("type", dt).Msg("registered component")
	}
	return nil
}

// RegisterDescriptor registers the name and type of a descriptor.
func (r *Registry) RegisterDescriptor(desc Descriptor) error {
	return r.Register(desc.Name, desc.Type)
}

// Register registers a typed component.
func Register[T Loggable](r *Registry) error {
	return r.RegisterDescriptor(DescriptorOf[T]())
}

// Describe returns the data type of a registered component.
func (r *Registry) Describe(name string) (datatype.DataType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dt, ok := r.types[name]
	if !ok {
		return datatype.DataType{}, eris.Wrapf(ErrUnknownComponent, "component %s", name)
	}
	return dt, nil
}

// Names returns the registered component names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// MakeBatch builds a batch for a registered component from raw values, inferring the arity from
// the instance count n: one value is a splat, n values are per-instance. Any other length fails
// with ErrArityMismatch, and an unregistered name with ErrUnknownComponent.
func (r *Registry) MakeBatch(name string, values []any, n int) (Batch, error) {
	dt, err := r.Describe(name)
	if err != nil {
		return Batch{}, err
	}
	desc := NewDescriptor(name, dt)

	switch {
	case len(values) == 1 && n != 1:
		return MakeBatch(desc, AritySplat, values)
	case len(values) == n && n > 0:
		return MakeBatch(desc, ArityPerInstance, values)
	default:
		return Batch{}, eris.Wrapf(ErrArityMismatch, "component %s: expected 1 or %d values, got %d",
			name, n, len(values))
	}
}
