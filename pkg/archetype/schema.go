// Package archetype declares archetype schemas, builds validated instances of them, and lowers
// instances into ordered component columns.
//
// A Schema is immutable once defined. Its slots are kept in lowering order: required slots first,
// then recommended, then optional, each group in declaration order. The indicator slot is kept
// apart and always lowered last as a zero-length marker.
package archetype

import (
	"strings"

	"github.com/argus-labs/loggable/pkg/component"
	"github.com/argus-labs/loggable/pkg/datatype"
	"github.com/cespare/xxhash/v2"
	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
)

// Slot is one component declared by an archetype.
type Slot struct {
	Field       string               // Archetype field name, e.g. "positions"
	Descriptor  component.Descriptor // Component name and type
	Requirement Requirement
}

// RequiredSlot declares a component that every instance must carry.
func RequiredSlot(field string, desc component.Descriptor) Slot {
	return Slot{Field: field, Descriptor: desc, Requirement: Required}
}

// RecommendedSlot declares a component that instances should carry.
func RecommendedSlot(field string, desc component.Descriptor) Slot {
	return Slot{Field: field, Descriptor: desc, Requirement: Recommended}
}

// OptionalSlot declares a component that instances may carry.
func OptionalSlot(field string, desc component.Descriptor) Slot {
	return Slot{Field: field, Descriptor: desc, Requirement: Optional}
}

// IndicatorName returns the conventional indicator component name of an archetype.
func IndicatorName(archetype string) string {
	return archetype + "Indicator"
}

// IndicatorSlot declares the conventional indicator marker of an archetype.
func IndicatorSlot(archetype string) Slot {
	return RecommendedSlot("indicator", component.NewDescriptor(IndicatorName(archetype), datatype.Null()))
}

// Name returns the slot's component name.
func (s Slot) Name() string { return s.Descriptor.Name }

// Type returns the slot's component type.
func (s Slot) Type() datatype.DataType { return s.Descriptor.Type }

// Schema is a named, fixed bundle of component slots plus an indicator.
type Schema struct {
	name        string
	slots       []Slot         // Lowering order, indicator excluded
	indicator   Slot           // Lowered last
	byName      map[string]int // Component name -> position in slots
	byField     map[string]int // Field name -> position in slots
	required    bitmap.Bitmap  // Positions of required slots
	recommended bitmap.Bitmap  // Positions of recommended slots
	canonical   string
	fingerprint uint64
}

// Define builds a schema. It fails with ErrDuplicateComponent when a component name or field name
// appears twice, and with ErrMissingIndicator when indicator does not name one of the slots or
// that slot is not null-typed. Slot descriptors are tagged with the archetype and field names.
func Define(name string, slots []Slot, indicator string) (*Schema, error) {
	if name == "" {
		return nil, eris.New("archetype name cannot be empty")
	}

	s := &Schema{
		name:    name,
		slots:   make([]Slot, 0, len(slots)),
		byName:  make(map[string]int, len(slots)),
		byField: make(map[string]int, len(slots)),
	}

	names := make(map[string]struct{}, len(slots))
	fields := make(map[string]struct{}, len(slots))
	found := false
	for _, slot := range slots {
		if err := validateSlot(name, slot); err != nil {
			return nil, err
		}
		if _, ok := names[slot.Name()]; ok {
			return nil, eris.Wrapf(ErrDuplicateComponent, "archetype %s declares component %s twice", name, slot.Name())
		}
		if _, ok := fields[slot.Field]; ok {
			return nil, eris.Wrapf(ErrDuplicateComponent, "archetype %s declares field %s twice", name, slot.Field)
		}
		names[slot.Name()] = struct{}{}
		fields[slot.Field] = struct{}{}

		slot.Descriptor = slot.Descriptor.WithArchetype(name, slot.Field)
		if slot.Name() == indicator {
			if slot.Type().Kind != datatype.KindNull {
				return nil, eris.Wrapf(ErrMissingIndicator, "archetype %s: indicator %s must have type null, got %s",
					name, indicator, slot.Type())
			}
			s.indicator = slot
			found = true
		}
	}
	if !found {
		return nil, eris.Wrapf(ErrMissingIndicator, "archetype %s: indicator %q is not one of its slots", name, indicator)
	}

	for _, level := range []Requirement{Required, Recommended, Optional} {
		for _, slot := range slots {
			if slot.Requirement != level || slot.Name() == indicator {
				continue
			}
			pos := len(s.slots)
			s.slots = append(s.slots, Slot{
				Field:       slot.Field,
				Descriptor:  slot.Descriptor.WithArchetype(name, slot.Field),
				Requirement: slot.Requirement,
			})
			s.byName[slot.Name()] = pos
			s.byField[slot.Field] = pos
			switch level { //nolint:exhaustive // optional slots are not tracked
			case Required:
				s.required.Set(uint32(pos)) //nolint:gosec // slot count is small
			case Recommended:
				s.recommended.Set(uint32(pos)) //nolint:gosec // slot count is small
			}
		}
	}

	s.canonical = s.render()
	s.fingerprint = xxhash.Sum64String(s.canonical)
	return s, nil
}

// MustDefine is like Define but panics on error. It is meant for package level schema variables.
func MustDefine(name string, slots []Slot, indicator string) *Schema {
	s, err := Define(name, slots, indicator)
	if err != nil {
		panic(eris.ToString(err, true))
	}
	return s
}

func validateSlot(archetype string, slot Slot) error {
	if slot.Field == "" {
		return eris.Errorf("archetype %s: slot for component %s has no field name", archetype, slot.Name())
	}
	if slot.Name() == "" {
		return eris.Errorf("archetype %s: field %s has no component name", archetype, slot.Field)
	}
	if slot.Requirement > Optional {
		return eris.Errorf("archetype %s: field %s has invalid requirement %d", archetype, slot.Field, slot.Requirement)
	}
	if err := slot.Type().Validate(); err != nil {
		return eris.Wrapf(err, "archetype %s: field %s", archetype, slot.Field)
	}
	return nil
}

// render writes one line per slot in lowering order, indicator last. Two schemas are equal if and
// only if their renderings are.
func (s *Schema) render() string {
	var sb strings.Builder
	sb.WriteString("archetype ")
	sb.WriteString(s.name)
	sb.WriteByte('\n')
	for _, slot := range s.slots {
		writeSlot(&sb, slot)
	}
	writeSlot(&sb, s.indicator)
	return sb.String()
}

func writeSlot(sb *strings.Builder, slot Slot) {
	sb.WriteString(slot.Requirement.String())
	sb.WriteByte(' ')
	sb.WriteString(slot.Field)
	sb.WriteByte(' ')
	sb.WriteString(slot.Name())
	sb.WriteByte(' ')
	sb.WriteString(slot.Type().String())
	sb.WriteByte('\n')
}

// -------------------------------------------------------------------------------------------------
// Accessors
// -------------------------------------------------------------------------------------------------

func (s *Schema) Name() string { return s.name }

// Slots returns the non-indicator slots in lowering order. The slice must not be modified.
func (s *Schema) Slots() []Slot { return s.slots }

// Indicator returns the indicator slot.
func (s *Schema) Indicator() Slot { return s.indicator }

// Fingerprint returns a 64-bit hash of the canonical schema rendering.
func (s *Schema) Fingerprint() uint64 { return s.fingerprint }

// Canonical returns the canonical schema rendering used for equality and fingerprinting.
func (s *Schema) Canonical() string { return s.canonical }

// Equal reports whether two schemas declare the same name, slots, and indicator.
func (s *Schema) Equal(other *Schema) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.fingerprint == other.fingerprint && s.canonical == other.canonical
}

// Required returns the descriptors of the required slots.
func (s *Schema) Required() []component.Descriptor { return s.descriptors(Required) }

// Recommended returns the descriptors of the recommended slots, indicator included.
func (s *Schema) Recommended() []component.Descriptor {
	descs := s.descriptors(Recommended)
	if s.indicator.Requirement == Recommended {
		descs = append(descs, s.indicator.Descriptor)
	}
	return descs
}

// Optional returns the descriptors of the optional slots.
func (s *Schema) Optional() []component.Descriptor { return s.descriptors(Optional) }

// All returns every descriptor in lowering order, indicator last.
func (s *Schema) All() []component.Descriptor {
	descs := make([]component.Descriptor, 0, len(s.slots)+1)
	for _, slot := range s.slots {
		descs = append(descs, slot.Descriptor)
	}
	return append(descs, s.indicator.Descriptor)
}

// NumComponents returns the number of slots, indicator included.
func (s *Schema) NumComponents() int { return len(s.slots) + 1 }

// Slot returns the slot declaring the named component. The indicator is not returned.
func (s *Schema) Slot(name string) (Slot, bool) {
	pos, ok := s.byName[name]
	if !ok {
		return Slot{}, false
	}
	return s.slots[pos], true
}

// SlotByField returns the slot with the given field name.
func (s *Schema) SlotByField(field string) (Slot, bool) {
	pos, ok := s.byField[field]
	if !ok {
		return Slot{}, false
	}
	return s.slots[pos], true
}

func (s *Schema) descriptors(level Requirement) []component.Descriptor {
	var descs []component.Descriptor
	for _, slot := range s.slots {
		if slot.Requirement == level {
			descs = append(descs, slot.Descriptor)
		}
	}
	return descs
}
