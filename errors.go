package enumkit

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("enumkit: no matching enum name")

// ParseError is returned by generated Parse functions when the input matches
// no declared display name.
type ParseError struct {
	// Enum is the name of the enum type.
	Enum string

	// Input is the rejected string.
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("enumkit: unable to parse the provided value as %q: %q", e.Enum, e.Input)
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
