package archetype

import (
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/rotisserie/eris"
)

// FromColumns rebuilds an instance of schema from lowered columns, validating it as construction
// does. The indicator column is accepted and skipped; a column the schema does not declare fails
// with ErrUnknownComponent.
func FromColumns(schema *Schema, columns []Column) (*Instance, error) {
	b := NewBuilder(schema)
	for _, column := range columns {
		name := column.Name()
		if name == schema.Indicator().Name() {
			if column.Array.Length != 0 {
				return nil, eris.Wrapf(ErrArityMismatch, "archetype %s: indicator %s carries %d values",
					schema.Name(), name, column.Array.Length)
			}
			continue
		}

		slot, ok := schema.Slot(name)
		if !ok {
			return nil, eris.Wrapf(ErrUnknownComponent, "archetype %s does not declare component %s", schema.Name(), name)
		}
		if !column.Array.Type.Equal(slot.Type()) {
			return nil, eris.Wrapf(ErrTypeMismatch, "archetype %s: column %s holds %s, field %s expects %s",
				schema.Name(), name, column.Array.Type, slot.Field, slot.Type())
		}
		values, err := column.Array.Values()
		if err != nil {
			return nil, eris.Wrapf(ErrTypeMismatch, "archetype %s: column %s: %v", schema.Name(), name, err)
		}
		batch, err := component.MakeBatch(slot.Descriptor, column.Arity, values)
		if err != nil {
			return nil, eris.Wrapf(err, "archetype %s", schema.Name())
		}
		b.Set(batch)
	}
	return b.Build()
}
