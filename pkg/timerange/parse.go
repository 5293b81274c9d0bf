package timerange

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mash-protocol/timespan/pkg/timeunit"
)

// Parse parses a "[<start>-<end>] <UNIT>" literal. Whitespace around the
// tokens is ignored. An empty start or end denotes an infinite bound, so
// "[-] HOURS" yields the Full range of HOURS from this registry.
//
// Bounds may be negative: the separator is the '-' that splits the bracket
// contents into two parts which are each empty or a decimal integer, so
// "[-10--2] SECONDS" is the range from -10 to -2.
func (r *Registry) Parse(s string) (*TimeRange, error) {
	text := strings.TrimSpace(s)

	if !strings.HasPrefix(text, "[") {
		return nil, timeunit.MissingError(s, timeunit.ElementStartDelimiter)
	}
	closing := strings.LastIndexByte(text, ']')
	if closing < 0 {
		return nil, timeunit.MissingError(s, timeunit.ElementEndDelimiter)
	}

	unitText := strings.TrimSpace(text[closing+1:])
	if unitText == "" {
		return nil, timeunit.MissingError(s, timeunit.ElementUnit)
	}
	unit, err := timeunit.ParseUnit(unitText)
	if err != nil {
		return nil, &timeunit.ParseError{Input: s, Element: timeunit.ElementUnit, Err: errors.Unwrap(err)}
	}

	startText, endText, err := splitBounds(s, text[1:closing])
	if err != nil {
		return nil, err
	}

	start := NegInf
	if startText != "" {
		if start, err = strconv.ParseInt(startText, 10, 64); err != nil {
			return nil, &timeunit.ParseError{Input: s, Element: timeunit.ElementStart, Err: err}
		}
	}
	end := PosInf
	if endText != "" {
		if end, err = strconv.ParseInt(endText, 10, 64); err != nil {
			return nil, &timeunit.ParseError{Input: s, Element: timeunit.ElementEnd, Err: err}
		}
	}

	return r.Of(unit, start, end)
}

// MustParse is like Parse but panics on error.
func (r *Registry) MustParse(s string) *TimeRange {
	tr, err := r.Parse(s)
	if err != nil {
		panic(err)
	}
	return tr
}

// splitBounds splits the bracket contents at the separator and returns the
// trimmed start and end texts. At most one '-' yields two parts that are
// each empty or an integer. When none does, the first '-' is used so the
// caller reports the malformed bound.
func splitBounds(input, inner string) (string, string, error) {
	first := strings.IndexByte(inner, '-')
	if first < 0 {
		return "", "", timeunit.MissingError(input, timeunit.ElementSeparator)
	}

	for i := first; i < len(inner); i++ {
		if inner[i] != '-' {
			continue
		}
		startText := strings.TrimSpace(inner[:i])
		endText := strings.TrimSpace(inner[i+1:])
		if isBound(startText) && isBound(endText) {
			return startText, endText, nil
		}
	}

	return strings.TrimSpace(inner[:first]), strings.TrimSpace(inner[first+1:]), nil
}

// isBound reports whether s is empty or an optionally negative decimal
// integer.
func isBound(s string) bool {
	if s == "" {
		return true
	}
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
