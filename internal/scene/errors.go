package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned when an add or load names a type tag that is not a Kind.
	ErrUnknownKind = errors.New("unknown object kind")
	// ErrUnknownOption is returned when decoded options carry a field other than size, position, color or mass.
	ErrUnknownOption = errors.New("unknown option")
)

// LoadError reports a scene document that is not valid JSON or not shaped as
// {"objects": [...]}. When Load returns a LoadError the registry was not touched.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load scene: %s: %v", e.Reason, e.Err)
	}
	return "load scene: " + e.Reason
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
