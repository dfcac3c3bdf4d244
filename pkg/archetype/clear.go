package archetype

import (
	"github.com/argus-labs/loggable/pkg/assert"
	"github.com/argus-labs/loggable/pkg/component"
)

// ClearFields returns an instance of schema in which every component holds a zero-length clear
// batch. Lowering it tells the store to drop every component of the archetype.
func ClearFields(schema *Schema) *Instance {
	b := NewBuilder(schema)
	for _, slot := range schema.Slots() {
		b.Set(component.ClearBatch(slot.Descriptor))
	}
	inst, err := b.Build()
	assert.That(err == nil, "clearing %s failed: %v", schema.Name(), err)
	return inst
}
