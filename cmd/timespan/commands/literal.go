// Package commands implements the timespan sub-commands. Each command writes
// its result to an io.Writer so it can be shared by the CLI and the shell.
package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mash-protocol/timespan/pkg/duration"
	"github.com/mash-protocol/timespan/pkg/timerange"
	"github.com/mash-protocol/timespan/pkg/timeunit"
)

// Literals groups command-line tokens into duration and range literals.
// Tokens are re-split on whitespace first, so quoted and unquoted literals
// are treated alike:
//
//	[0-10] MINUTES 120 SECONDS  ->  "[0-10] MINUTES", "120 SECONDS"
//
// A token starting with '[' opens a range literal that runs up to the token
// containing ']' plus the unit after it. Any other token is paired with the
// next one. A trailing token is returned on its own.
func Literals(args []string) []string {
	tokens := strings.Fields(strings.Join(args, " "))

	var out []string
	for i := 0; i < len(tokens); {
		if strings.HasPrefix(tokens[i], "[") {
			j := i
			for j < len(tokens) && !strings.Contains(tokens[j], "]") {
				j++
			}
			// Include the unit token after the closing bracket.
			end := min(j+2, len(tokens))
			out = append(out, strings.Join(tokens[i:end], " "))
			i = end
			continue
		}

		end := min(i+2, len(tokens))
		out = append(out, strings.Join(tokens[i:end], " "))
		i = end
	}
	return out
}

// isRange reports whether literal looks like a range literal.
func isRange(literal string) bool {
	return strings.HasPrefix(strings.TrimSpace(literal), "[")
}

// parseValue parses a "<value> <UNIT>" point. Unlike a duration count the
// value may be negative.
func parseValue(literal string) (timeunit.Unit, int64, error) {
	valueText, unitText, ok := strings.Cut(strings.TrimSpace(literal), " ")
	if !ok {
		return 0, 0, timeunit.MissingError(literal, timeunit.ElementSeparator)
	}
	value, err := strconv.ParseInt(valueText, 10, 64)
	if err != nil {
		return 0, 0, &timeunit.ParseError{Input: literal, Element: timeunit.ElementCount, Err: err}
	}
	unit, err := timeunit.ParseUnit(strings.TrimSpace(unitText))
	if err != nil {
		return 0, 0, &timeunit.ParseError{Input: literal, Element: timeunit.ElementUnit, Err: errors.Unwrap(err)}
	}
	return unit, value, nil
}

func describeDuration(d *duration.Duration) string {
	if d.IsInfinite() {
		return fmt.Sprintf("%s (infinite)", d)
	}
	return d.String()
}

func describeRange(tr *timerange.TimeRange) string {
	return fmt.Sprintf("%s (%s, length %s)", tr, tr.Shape(), describeDuration(tr.Length()))
}
