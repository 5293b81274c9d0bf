// Package timerange implements immutable time ranges: a start and end count
// of a timeunit.Unit, inclusive at both ends, where either end may be
// infinite.
//
// # Shapes
//
// A range takes one of four shapes:
//   - Closed: both bounds finite
//   - OpenStart: start is NegInf, end finite
//   - OpenEnd: start finite, end is PosInf
//   - Full: both bounds infinite
//
// # Registry
//
// Ranges are created through a Registry. The registry owns the Full range of
// every unit: exactly one instance per unit exists for the lifetime of the
// registry, created on first request and returned on every later request,
// including by Of and Parse when both bounds are infinite. Applications
// create one registry at their composition root and pass it to the code that
// builds ranges:
//
//	reg := timerange.NewRegistry()
//	r, err := reg.Of(timeunit.Seconds, 10, 20)
//
// # Cross-unit Operations
//
// Containment converts the probed value into the range's unit. Intersects
// compares in the finer of the two units. Intersection expresses its result
// in the coarser of the two units, so the overlap of a SECONDS range and a
// MINUTES range is a MINUTES range. Because that conversion truncates, two
// ranges that intersect may still have no intersection.
//
// Infinite bounds never take part in unit conversion; they compare below or
// above every finite value by their sentinel alone.
//
// # Text Format
//
//	[100-200] MINUTES
//	[-3] SECONDS      open start, end 3
//	[5-] HOURS        open end
//	[-] DAYS          full range
//	[-10--2] SECONDS  negative bounds
package timerange
