package component

import "github.com/rotisserie/eris"

var (
	// ErrUnknownComponent is returned when a component name is not registered, or is not declared
	// by the archetype it is used with.
	ErrUnknownComponent = eris.New("unknown component")

	// ErrArityMismatch is returned when a batch length is neither 1 (splat) nor the instance
	// count, or when a zero-length batch is used outside of clearing.
	ErrArityMismatch = eris.New("arity mismatch")

	// ErrTypeMismatch is returned when a value does not have the shape of the component's type.
	ErrTypeMismatch = eris.New("type mismatch")

	// ErrSchemaConflict is returned when a name is re-registered with a different definition.
	ErrSchemaConflict = eris.New("schema conflict")
)
