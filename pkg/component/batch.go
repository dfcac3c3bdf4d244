package component

import (
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/rotisserie/eris"
)

// Arity tells how a batch maps onto the instances of an archetype.
type Arity uint8

const (
	ArityUndefined   Arity = iota // Zero value, an absent argument
	ArityPerInstance              // One value per instance
	AritySplat                    // One value applied to every instance
	ArityEmpty                    // No values: indicator markers and cleared components
)

func (a Arity) String() string {
	switch a {
	case ArityUndefined:
		return "undefined"
	case ArityPerInstance:
		return "per-instance"
	case AritySplat:
		return "splat"
	case ArityEmpty:
		return "empty"
	default:
		return "undefined"
	}
}

// Input is a component argument: absent (the zero value), a splat, or one value per instance.
type Input[T any] struct {
	arity  Arity
	values []T
}

// Splat returns an input applying v to every instance.
func Splat[T any](v T) Input[T] {
	return Input[T]{arity: AritySplat, values: []T{v}}
}

// PerInstance returns an input with one value per instance. An empty call yields a zero-length
// input, which is rejected when turned into a batch.
func PerInstance[T any](values ...T) Input[T] {
	return Input[T]{arity: ArityPerInstance, values: values}
}

// IsAbsent reports whether the input was never set.
func (in Input[T]) IsAbsent() bool { return in.arity == ArityUndefined }

func (in Input[T]) Arity() Arity { return in.arity }
func (in Input[T]) Len() int     { return len(in.values) }
func (in Input[T]) Values() []T  { return in.values }

// Batch is a homogeneous sequence of values for one component. Batches are immutable once
// built; Values must not be modified by callers.
type Batch struct {
	desc   Descriptor
	arity  Arity
	values []any
}

// NewBatch converts a typed input into a batch for the given descriptor.
func NewBatch[T Loggable](desc Descriptor, in Input[T]) (Batch, error) {
	values := make([]any, len(in.values))
	for i, v := range in.values {
		values[i] = v.Value()
	}
	return MakeBatch(desc, in.arity, values)
}

// NewRawBatch converts an untyped input into a batch. Values must already have the canonical
// shape of the descriptor's type.
func NewRawBatch(desc Descriptor, in Input[any]) (Batch, error) {
	return MakeBatch(desc, in.arity, in.values)
}

// MakeBatch builds a batch after checking the arity contract and every value against the
// descriptor's type. Values are copied.
func MakeBatch(desc Descriptor, arity Arity, values []any) (Batch, error) {
	switch arity {
	case AritySplat:
		if len(values) != 1 {
			return Batch{}, eris.Wrapf(ErrArityMismatch, "component %s: splat needs exactly 1 value, got %d",
				desc.Name, len(values))
		}
	case ArityPerInstance:
		if len(values) == 0 {
			return Batch{}, eris.Wrapf(ErrArityMismatch, "component %s: per-instance batch is empty", desc.Name)
		}
	case ArityEmpty:
		if len(values) != 0 {
			return Batch{}, eris.Wrapf(ErrArityMismatch, "component %s: empty batch holds %d values",
				desc.Name, len(values))
		}
	case ArityUndefined:
		return Batch{}, eris.Wrapf(ErrArityMismatch, "component %s: undefined arity", desc.Name)
	default:
		return Batch{}, eris.Wrapf(ErrArityMismatch, "component %s: unknown arity %d", desc.Name, arity)
	}

	if err := CheckValues(desc, values); err != nil {
		return Batch{}, err
	}

	owned := make([]any, len(values))
	copy(owned, values)
	return Batch{desc: desc, arity: arity, values: owned}, nil
}

// CheckValues verifies every value against the descriptor's type.
func CheckValues(desc Descriptor, values []any) error {
	for i, v := range values {
		if err := desc.Type.Check(v); err != nil {
			return eris.Wrapf(ErrTypeMismatch, "component %s at index %d: %v", desc.Name, i, err)
		}
	}
	return nil
}

// ClearBatch returns the zero-length batch that marks a component as cleared.
func ClearBatch(desc Descriptor) Batch {
	return Batch{desc: desc, arity: ArityEmpty, values: nil}
}

// IsZero reports whether the batch is the zero value, i.e. not set.
func (b Batch) IsZero() bool { return b.arity == ArityUndefined }

func (b Batch) Descriptor() Descriptor  { return b.desc }
func (b Batch) Name() string            { return b.desc.Name }
func (b Batch) Type() datatype.DataType { return b.desc.Type }
func (b Batch) Arity() Arity            { return b.arity }
func (b Batch) Len() int                { return len(b.values) }
func (b Batch) Values() []any           { return b.values }

// WithDescriptor returns a copy of the batch under another descriptor of the same type.
func (b Batch) WithDescriptor(d Descriptor) Batch {
	b.desc = d
	return b
}

// CheckArity verifies the batch against an instance count n. Splats and empty batches fit any n.
func (b Batch) CheckArity(n int) error {
	if b.arity != ArityPerInstance || len(b.values) == n {
		return nil
	}
	return eris.Wrapf(ErrArityMismatch, "component %s: expected 1 or %d values, got %d", b.desc.Name, n, len(b.values))
}
