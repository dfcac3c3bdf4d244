package archetype

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Requirement is the level at which an archetype declares a component slot.
type Requirement uint8

const (
	// Required slots must be present in every instance.
	Required Requirement = iota
	// Recommended slots may be absent. Encoders can be configured to warn about them.
	Recommended
	// Optional slots may be absent and are not reported.
	Optional
)

func (r Requirement) String() string {
	switch r {
	case Required:
		return "required"
	case Recommended:
		return "recommended"
	case Optional:
		return "optional"
	default:
		return "unknown"
	}
}

// ParseRequirement converts a requirement name into a Requirement.
func ParseRequirement(s string) (Requirement, error) {
	switch strings.ToLower(s) {
	case "required":
		return Required, nil
	case "recommended":
		return Recommended, nil
	case "optional":
		return Optional, nil
	default:
		return Optional, eris.Errorf("invalid requirement: %q (must be required, recommended, or optional)", s)
	}
}
