// Package version provides catalog format version parsing and compatibility
// checks.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Current is the catalog format version written by this library.
const Current = "1.0"

// ErrIncompatible is returned by Check for versions this library cannot read.
var ErrIncompatible = errors.New("incompatible format version")

// FormatVersion represents a parsed "major.minor" format version.
type FormatVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (FormatVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return FormatVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return FormatVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v FormatVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v FormatVersion) Compatible(other FormatVersion) bool {
	return v.Major == other.Major
}

// Check parses s and verifies that it is readable by this library: the major
// version must match Current. An empty string is treated as Current.
func Check(s string) (FormatVersion, error) {
	current, _ := Parse(Current)
	if s == "" {
		return current, nil
	}

	v, err := Parse(s)
	if err != nil {
		return FormatVersion{}, err
	}
	if !current.Compatible(v) {
		return FormatVersion{}, fmt.Errorf("%w: %s (supported: %d.x)", ErrIncompatible, v, current.Major)
	}
	return v, nil
}
