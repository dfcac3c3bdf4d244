package archetype

import (
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
)

// Instance is a validated value of a schema: one batch per present slot. Instances are only
// produced by Builder.Build and are read-only afterwards.
type Instance struct {
	schema  *Schema
	batches []component.Batch // Indexed by slot position
	present bitmap.Bitmap     // Positions of slots holding a batch
	n       int               // Instance count
}

func (i *Instance) Schema() *Schema { return i.schema }

// Len returns the number of instances: the length of the per-instance batches, 1 if every batch
// is a splat, and 0 if every batch is a clear marker.
func (i *Instance) Len() int { return i.n }

// Has reports whether the named component holds a batch.
func (i *Instance) Has(name string) bool {
	pos, ok := i.schema.byName[name]
	return ok && i.present.Contains(uint32(pos)) //nolint:gosec // slot count is small
}

// Batch returns the batch of the named component.
func (i *Instance) Batch(name string) (component.Batch, bool) {
	if !i.Has(name) {
		return component.Batch{}, false
	}
	return i.batches[i.schema.byName[name]], true
}

// Batches returns the present batches in lowering order, indicator excluded.
func (i *Instance) Batches() []component.Batch {
	out := make([]component.Batch, 0, i.present.Count())
	for pos, batch := range i.batches {
		if i.present.Contains(uint32(pos)) { //nolint:gosec // slot count is small
			out = append(out, batch)
		}
	}
	return out
}

// MissingRecommended returns the recommended slots without a batch.
func (i *Instance) MissingRecommended() []Slot {
	missing := i.schema.recommended.Clone(nil)
	missing.AndNot(i.present)

	var slots []Slot
	for pos, slot := range i.schema.slots {
		if missing.Contains(uint32(pos)) { //nolint:gosec // slot count is small
			slots = append(slots, slot)
		}
	}
	return slots
}

// -------------------------------------------------------------------------------------------------
// Builder
// -------------------------------------------------------------------------------------------------

// Builder assembles an instance slot by slot. The first error is kept and returned by Build; later
// calls are no-ops. A Builder is not safe for concurrent use.
type Builder struct {
	schema  *Schema
	batches []component.Batch
	present bitmap.Bitmap
	err     error
}

// NewBuilder returns a builder for the schema.
func NewBuilder(schema *Schema) *Builder {
	return &Builder{
		schema:  schema,
		batches: make([]component.Batch, len(schema.slots)),
	}
}

// Set stores a batch in the slot declaring its component, replacing any previous batch. A zero
// batch is ignored. The batch is re-tagged with the slot's descriptor.
func (b *Builder) Set(batch component.Batch) *Builder {
	if b.err != nil || batch.IsZero() {
		return b
	}

	name := batch.Name()
	if name == b.schema.indicator.Name() {
		if batch.Arity() != component.ArityEmpty {
			b.err = eris.Wrapf(ErrArityMismatch, "archetype %s: indicator %s carries no data", b.schema.name, name)
		}
		return b
	}

	pos, ok := b.schema.byName[name]
	if !ok {
		b.err = eris.Wrapf(ErrUnknownComponent, "archetype %s does not declare component %s", b.schema.name, name)
		return b
	}
	slot := b.schema.slots[pos]
	if !batch.Type().Equal(slot.Type()) {
		b.err = eris.Wrapf(ErrTypeMismatch, "archetype %s: field %s expects %s, got %s",
			b.schema.name, slot.Field, slot.Type(), batch.Type())
		return b
	}

	b.batches[pos] = batch.WithDescriptor(slot.Descriptor)
	b.present.Set(uint32(pos)) //nolint:gosec // slot count is small
	return b
}

// SetInput converts a raw input into a batch for the named component and stores it. An absent
// input is ignored.
func (b *Builder) SetInput(name string, in component.Input[any]) *Builder {
	if b.err != nil || in.IsAbsent() {
		return b
	}
	desc, ok := b.descriptor(name)
	if !ok {
		return b
	}
	batch, err := component.NewRawBatch(desc, in)
	if err != nil {
		b.err = eris.Wrapf(err, "archetype %s", b.schema.name)
		return b
	}
	return b.Set(batch)
}

// Add converts a typed input into a batch for the slot declaring T and stores it. An absent input
// is ignored.
func Add[T component.Loggable](b *Builder, in component.Input[T]) *Builder {
	if b.err != nil || in.IsAbsent() {
		return b
	}
	desc, ok := b.descriptor(component.DescriptorOf[T]().Name)
	if !ok {
		return b
	}
	batch, err := component.NewBatch(desc, in)
	if err != nil {
		b.err = eris.Wrapf(err, "archetype %s", b.schema.name)
		return b
	}
	return b.Set(batch)
}

func (b *Builder) descriptor(name string) (component.Descriptor, bool) {
	pos, ok := b.schema.byName[name]
	if !ok {
		b.err = eris.Wrapf(ErrUnknownComponent, "archetype %s does not declare component %s", b.schema.name, name)
		return component.Descriptor{}, false
	}
	return b.schema.slots[pos].Descriptor, true
}

// Build validates the collected batches and returns the instance. It fails with the first error
// recorded by Set or Add, ErrMissingRequiredComponent when a required slot is empty, or
// ErrInconsistentBatchLength when per-instance batches differ in length. A zero-length clear
// batch counts as present.
func (b *Builder) Build() (*Instance, error) {
	if b.err != nil {
		return nil, b.err
	}

	missing := b.schema.required.Clone(nil)
	missing.AndNot(b.present)
	if pos, ok := missing.Min(); ok {
		slot := b.schema.slots[pos]
		return nil, eris.Wrapf(ErrMissingRequiredComponent, "archetype %s: field %s (%s)",
			b.schema.name, slot.Field, slot.Name())
	}

	n, lengthOf := 0, ""
	splats := 0
	for pos, batch := range b.batches {
		if !b.present.Contains(uint32(pos)) { //nolint:gosec // slot count is small
			continue
		}
		switch batch.Arity() { //nolint:exhaustive // clear markers do not affect the count
		case component.AritySplat:
			splats++
		case component.ArityPerInstance:
			if lengthOf == "" {
				n, lengthOf = batch.Len(), batch.Name()
				continue
			}
			if batch.Len() != n {
				return nil, eris.Wrapf(ErrInconsistentBatchLength, "archetype %s: %s has %d values, %s has %d",
					b.schema.name, lengthOf, n, batch.Name(), batch.Len())
			}
		}
	}
	if lengthOf == "" && splats > 0 {
		n = 1
	}

	inst := &Instance{
		schema:  b.schema,
		batches: make([]component.Batch, len(b.batches)),
		present: b.present.Clone(nil),
		n:       n,
	}
	copy(inst.batches, b.batches)
	return inst, nil
}
