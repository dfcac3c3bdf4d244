// Package introspect describes a registry for dev tooling: every archetype with its slots, and
// every component with its data type and, for typed components, the JSON schema of the Go value.
package introspect

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"google.golang.org/protobuf/types/known/structpb"
)

// Introspector builds catalogues of a registry. The JSON schemas of the typed components are
// built once on first use; the archetype and component listings are rebuilt on every call since
// the registry stays open for registration.
type Introspector struct {
	registry  *archetype.Registry
	loggables []component.Loggable

	once       sync.Once
	schemas    map[string]map[string]any // Component name -> JSON schema of its Go value
	buildError error                     // Persists the first schema build failure
}

// New returns an introspector for reg. loggables are the typed components whose Go values get a
// JSON schema, e.g. components.All().
func New(reg *archetype.Registry, loggables []component.Loggable) *Introspector {
	return &Introspector{registry: reg, loggables: loggables}
}

// Catalog is a one-shot shorthand for New(reg, loggables).Catalog().
func Catalog(reg *archetype.Registry, loggables []component.Loggable) (*structpb.Struct, error) {
	return New(reg, loggables).Catalog()
}

// Catalog returns the current description of the registry.
func (i *Introspector) Catalog() (*structpb.Struct, error) {
	i.once.Do(func() {
		i.schemas, i.buildError = buildSchemas(i.loggables)
	})
	if i.buildError != nil {
		return nil, eris.Wrap(i.buildError, "failed to build component schemas")
	}

	archetypes := make([]any, 0, i.registry.Len())
	for _, name := range i.registry.Names() {
		schema, err := i.registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		archetypes = append(archetypes, describeArchetype(schema))
	}

	components := i.registry.Components()
	names := components.Names()
	entries := make([]any, 0, len(names))
	for _, name := range names {
		dt, err := components.Describe(name)
		if err != nil {
			return nil, err
		}
		entry := map[string]any{
			"name": name,
			"type": dt.String(),
		}
		if schema, ok := i.schemas[name]; ok {
			entry["schema"] = schema
		}
		entries = append(entries, entry)
	}

	result, err := structpb.NewStruct(map[string]any{
		"archetypes": archetypes,
		"components": entries,
	})
	if err != nil {
		return nil, eris.Wrap(err, "failed to build catalog")
	}
	return result, nil
}

func describeArchetype(schema *archetype.Schema) map[string]any {
	slots := schema.Slots()
	fields := make([]any, 0, len(slots)+1)
	for _, slot := range append(slots[:len(slots):len(slots)], schema.Indicator()) {
		fields = append(fields, map[string]any{
			"field":       slot.Field,
			"component":   slot.Name(),
			"requirement": slot.Requirement.String(),
			"type":        slot.Type().String(),
		})
	}
	return map[string]any{
		"name":        schema.Name(),
		"indicator":   schema.Indicator().Name(),
		"fingerprint": strconv.FormatUint(schema.Fingerprint(), 16),
		"components":  fields,
	}
}

func buildSchemas(loggables []component.Loggable) (map[string]map[string]any, error) {
	schemas := make(map[string]map[string]any, len(loggables))
	for _, l := range loggables {
		schema, err := schemaToMap(reflectSchema(reflect.TypeOf(l)))
		if err != nil {
			return nil, eris.Wrapf(err, "component %s", l.Name())
		}
		schemas[l.Name()] = schema
	}
	return schemas, nil
}

// reflectSchema generates a JSON Schema from a reflect.Type using invopop/jsonschema. Only
// structs are expanded inline; the reflector keeps no definition for other named types.
func reflectSchema(t reflect.Type) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true, // Don't add $id based on package path
		ExpandedStruct: t.Kind() == reflect.Struct,
	}
	return r.ReflectFromType(t)
}

// schemaToMap converts a jsonschema.Schema to a map[string]any.
func schemaToMap(schema *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal schema")
	}
	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, eris.Wrap(err, "failed to unmarshal schema")
	}
	delete(result, "$schema")
	if result["type"] == "object" {
		delete(result, "type")
		delete(result, "additionalProperties")
	}
	return result, nil
}
