// Package timeunit defines the time granularities used by durations and
// time ranges.
//
// Units form a total order by coarseness, from Nanoseconds (finest) to Days
// (coarsest). Any value can be converted between two units:
//
//	timeunit.Hours.Convert(7200, timeunit.Seconds) // 2
//	timeunit.Seconds.Convert(2, timeunit.Hours)    // 7200
//
// # Conversion
//
// Converting to a coarser unit truncates toward zero. Converting to a finer
// unit multiplies and saturates at math.MaxInt64 or math.MinInt64 when the
// result does not fit into an int64.
//
// # Names
//
// Each unit has an upper-case name (NANOSECONDS, ..., DAYS) used in the text
// formats of durations and ranges. ParseUnit looks names up
// case-insensitively.
//
// # Errors
//
// The package also carries the error taxonomy shared by the value packages:
// ErrInvalidArgument for rejected constructor input and ParseError (matching
// ErrParse) for malformed literals.
package timeunit
