// Package duration implements an immutable length of time expressed as a
// non-negative count of a timeunit.Unit.
//
// Durations are created with Of or Parse and are never modified afterwards.
// Arithmetic returns new values, or the receiver itself when the operation
// is an identity (adding 0, multiplying or dividing by 1).
//
// # Equality
//
// Durations compare by their canonical value, the count expressed in
// nanoseconds, so 1 DAYS equals 24 HOURS. Comparison is exact even when the
// canonical value does not fit into an int64.
//
// # Infinity
//
// The count math.MaxInt64 is reserved as Infinite. It is produced for the
// length of open-ended time ranges and by saturating arithmetic. Infinite
// durations equal each other in every unit and exceed every finite one.
//
// # Text Format
//
// A duration is written as its count and unit name separated by exactly one
// space:
//
//	7365 SECONDS
//
// Parse accepts the unit name in any case.
package duration
