package engine

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi"
)

// ErrMissingComponent is returned when a component is read from an entity that does not carry it.
var ErrMissingComponent = errors.New("missing component")

// MissingComponentError names the entity and component involved. Inside the
// scheduler it signals a signature mismatch, which is a programmer error.
type MissingComponentError struct {
	Entity    donburi.Entity
	Component string
	System    string
}

func (e *MissingComponentError) Error() string {
	if e.System != "" {
		return fmt.Sprintf("%s: entity %v lacks %s", e.System, e.Entity, e.Component)
	}
	return fmt.Sprintf("entity %v lacks %s", e.Entity, e.Component)
}

func (e *MissingComponentError) Unwrap() error { return ErrMissingComponent }
