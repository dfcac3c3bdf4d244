package component

import "github.com/argus-labs/loggable/pkg/datatype"

// Descriptor identifies a component column: its globally unique name and element type, plus the
// archetype and field it was logged through when it is part of an archetype.
type Descriptor struct {
	Name      string            // Globally unique component name, e.g. "Position2D"
	Type      datatype.DataType // Columnar element type
	Archetype string            // Owning archetype name, empty for bare components
	Field     string            // Archetype field name, e.g. "positions"
}

// NewDescriptor returns a descriptor for a bare component.
func NewDescriptor(name string, dt datatype.DataType) Descriptor {
	return Descriptor{Name: name, Type: dt, Archetype: "", Field: ""}
}

// WithArchetype returns a copy of the descriptor tagged with an archetype and field name.
func (d Descriptor) WithArchetype(archetype, field string) Descriptor {
	d.Archetype = archetype
	d.Field = field
	return d
}

// String renders "Archetype:Component#field", omitting the parts that are not set.
func (d Descriptor) String() string {
	s := d.Name
	if d.Archetype != "" {
		s = d.Archetype + ":" + s
	}
	if d.Field != "" {
		s += "#" + d.Field
	}
	return s
}

// Loggable is implemented by typed component values. Name and DataType must not depend on the
// receiver's value, they are called on the zero value.
type Loggable interface {
	// Name returns the component name. It must be the same across program executions.
	Name() string

	// DataType returns the columnar element type of the component.
	DataType() datatype.DataType

	// Value returns the canonical value shape of the receiver for DataType.
	Value() any
}

// DescriptorOf returns the descriptor of a typed component.
func DescriptorOf[T Loggable]() Descriptor {
	var zero T
	return NewDescriptor(zero.Name(), zero.DataType())
}
