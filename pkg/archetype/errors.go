package archetype

import (
	"github.com/argus-labs/loggable/pkg/component"
	"github.com/rotisserie/eris"
)

var (
	// ErrDuplicateArchetype is returned by Registry.Define when the name is already taken.
	ErrDuplicateArchetype = eris.New("duplicate archetype")

	// ErrDuplicateComponent is returned when a schema declares a component or field twice.
	ErrDuplicateComponent = eris.New("duplicate component")

	// ErrMissingIndicator is returned when a schema's indicator is not one of its slots, or is
	// not a null-typed marker.
	ErrMissingIndicator = eris.New("missing indicator")

	// ErrMissingRequiredComponent is returned when an instance is built without a required slot.
	ErrMissingRequiredComponent = eris.New("missing required component")

	// ErrInconsistentBatchLength is returned when two per-instance batches of one instance differ
	// in length.
	ErrInconsistentBatchLength = eris.New("inconsistent batch length")

	// ErrEncoding is returned by Encoder.Lower when a batch cannot be laid out as a column. It
	// signals a bug in this package or its callers' registries, not bad user input.
	ErrEncoding = eris.New("encoding error")

	// ErrUnknownArchetype is returned when an archetype name is not registered.
	ErrUnknownArchetype = eris.New("unknown archetype")
)

// Component level errors, re-exported so callers can match the whole taxonomy from one package.
var (
	ErrUnknownComponent = component.ErrUnknownComponent
	ErrArityMismatch    = component.ErrArityMismatch
	ErrTypeMismatch     = component.ErrTypeMismatch
	ErrSchemaConflict   = component.ErrSchemaConflict
)
