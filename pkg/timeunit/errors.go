package timeunit

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by durations and time ranges.
var (
	// ErrInvalidArgument is returned when a constructor rejects its input,
	// e.g. a negative count, an absent unit or reversed range bounds.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")

	errMissing = errors.New("missing")
)

// Element names the structural part of a literal that failed to parse.
type Element string

// Literal elements.
const (
	ElementCount          Element = "count"
	ElementSeparator      Element = "separator"
	ElementUnit           Element = "unit"
	ElementStartDelimiter Element = "start delimiter"
	ElementEndDelimiter   Element = "end delimiter"
	ElementStart          Element = "start"
	ElementEnd            Element = "end"
)

// ParseError describes a malformed duration, range or unit literal.
type ParseError struct {
	// Input is the literal being parsed.
	Input string

	// Element is the part of the literal that is missing or malformed.
	Element Element

	// Err is the underlying cause.
	Err error
}

// MissingError returns a ParseError reporting that element is absent from input.
func MissingError(input string, element Element) *ParseError {
	return &ParseError{Input: input, Element: element, Err: errMissing}
}

func (e *ParseError) Error() string {
	if e.Err == errMissing {
		return fmt.Sprintf("parse %q: missing %s", e.Input, e.Element)
	}
	return fmt.Sprintf("parse %q: invalid %s: %v", e.Input, e.Element, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
