package timerange

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/mash-protocol/timespan/pkg/duration"
	"github.com/mash-protocol/timespan/pkg/timeunit"
)

// Bound sentinels.
const (
	// NegInf as a start bound means the range is open toward the past.
	NegInf int64 = math.MinInt64

	// PosInf as an end bound means the range is open toward the future.
	PosInf int64 = math.MaxInt64
)

// Shape classifies a range by which of its bounds are infinite.
type Shape uint8

const (
	// ShapeClosed has two finite bounds.
	ShapeClosed Shape = iota

	// ShapeOpenStart has an infinite start.
	ShapeOpenStart

	// ShapeOpenEnd has an infinite end.
	ShapeOpenEnd

	// ShapeFull has both bounds infinite.
	ShapeFull
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeClosed:
		return "CLOSED"
	case ShapeOpenStart:
		return "OPEN_START"
	case ShapeOpenEnd:
		return "OPEN_END"
	case ShapeFull:
		return "FULL"
	default:
		return "UNKNOWN"
	}
}

// TimeRange is an immutable interval [start, end] of a time unit.
// Ranges are created by a Registry and must not be copied.
type TimeRange struct {
	unit  timeunit.Unit
	start int64
	end   int64

	registry *Registry

	lengthOnce sync.Once
	length     *duration.Duration
}

// Unit returns the unit of the bounds.
func (r *TimeRange) Unit() timeunit.Unit {
	return r.unit
}

// Start returns the start bound, NegInf when open.
func (r *TimeRange) Start() int64 {
	return r.start
}

// End returns the end bound, PosInf when open.
func (r *TimeRange) End() int64 {
	return r.end
}

// HasStart reports whether the start bound is finite.
func (r *TimeRange) HasStart() bool {
	return r.start != NegInf
}

// HasEnd reports whether the end bound is finite.
func (r *TimeRange) HasEnd() bool {
	return r.end != PosInf
}

// IsFull reports whether both bounds are infinite.
func (r *TimeRange) IsFull() bool {
	return !r.HasStart() && !r.HasEnd()
}

// Shape returns the structural shape of r.
func (r *TimeRange) Shape() Shape {
	switch {
	case r.HasStart() && r.HasEnd():
		return ShapeClosed
	case r.HasEnd():
		return ShapeOpenStart
	case r.HasStart():
		return ShapeOpenEnd
	default:
		return ShapeFull
	}
}

// Length returns the number of units covered by r, counting both bounds.
// Open ranges have an infinite length. So do closed ranges whose length
// reaches math.MaxInt64, since that count is duration.Infinite. The result
// is computed once per range.
func (r *TimeRange) Length() *duration.Duration {
	r.lengthOnce.Do(func() {
		count := duration.Infinite
		if r.HasStart() && r.HasEnd() {
			// end > start, so the unsigned difference is exact. A count of
			// MaxInt64 is the Infinite sentinel itself.
			if span := uint64(r.end) - uint64(r.start); span < uint64(duration.Infinite)-1 {
				count = int64(span) + 1
			}
		}
		r.length = duration.MustOf(r.unit, count)
	})
	return r.length
}

// CompareStart reports where value, expressed in unit, lies relative to the
// start bound: -1 before it, 0 at it, +1 after it. It panics if unit is
// invalid.
func (r *TimeRange) CompareStart(unit timeunit.Unit, value int64) int {
	return compareBound(value, unit, r.start, r.unit)
}

// CompareEnd reports where value, expressed in unit, lies relative to the
// end bound: -1 before it, 0 at it, +1 after it. It panics if unit is
// invalid.
func (r *TimeRange) CompareEnd(unit timeunit.Unit, value int64) int {
	return compareBound(value, unit, r.end, r.unit)
}

// Contains reports whether value, expressed in unit, lies within r.
// NegInf and PosInf values are only contained by ranges open on that side.
// It panics if unit is invalid.
func (r *TimeRange) Contains(unit timeunit.Unit, value int64) bool {
	return r.CompareStart(unit, value) >= 0 && r.CompareEnd(unit, value) <= 0
}

// ContainsRange reports whether both bounds of o lie within r.
func (r *TimeRange) ContainsRange(o *TimeRange) bool {
	return r.Contains(o.unit, o.start) && r.Contains(o.unit, o.end)
}

// Intersects reports whether r and o share at least one point. Bounds are
// compared in the finer of the two units.
func (r *TimeRange) Intersects(o *TimeRange) bool {
	unit := timeunit.Finer(r.unit, o.unit)
	rStart, rEnd := r.boundsIn(unit)
	oStart, oEnd := o.boundsIn(unit)
	return oStart <= rEnd && oEnd >= rStart
}

// Intersection returns the overlap of r and o expressed in the coarser of
// the two units. It returns false when the ranges do not intersect, or when
// the overlap collapses to a single point or less in the coarser unit.
// The result is created by r's registry.
func (r *TimeRange) Intersection(o *TimeRange) (*TimeRange, bool) {
	if !r.Intersects(o) {
		return nil, false
	}

	unit := timeunit.Coarser(r.unit, o.unit)
	rStart, rEnd := r.boundsIn(unit)
	oStart, oEnd := o.boundsIn(unit)

	// The sentinels are the int64 extremes, so max and min absorb them.
	start := max(rStart, oStart)
	end := min(rEnd, oEnd)
	if start >= end {
		return nil, false
	}

	result, err := r.registry.Of(unit, start, end)
	if err != nil {
		return nil, false
	}
	return result, true
}

// Equal reports whether r and o have the same unit and bounds.
func (r *TimeRange) Equal(o *TimeRange) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	return r.unit == o.unit && r.start == o.start && r.end == o.end
}

// String returns the "[<start>-<end>] <UNIT>" form. Infinite bounds are
// written as empty strings.
func (r *TimeRange) String() string {
	return "[" + formatStart(r.start) + "-" + formatEnd(r.end) + "] " + r.unit.String()
}

// boundsIn returns the bounds of r converted into unit. Infinite bounds are
// returned unchanged.
func (r *TimeRange) boundsIn(unit timeunit.Unit) (start, end int64) {
	start, end = r.start, r.end
	if r.HasStart() {
		start = unit.Convert(start, r.unit)
	}
	if r.HasEnd() {
		end = unit.Convert(end, r.unit)
	}
	return start, end
}

// compareBound compares value in valueUnit against bound in boundUnit.
// Infinite operands are resolved by their sentinel; finite values are
// converted into boundUnit first.
func compareBound(value int64, valueUnit timeunit.Unit, bound int64, boundUnit timeunit.Unit) int {
	if !valueUnit.Valid() {
		panic(fmt.Sprintf("timerange: compare value of invalid unit %d", uint8(valueUnit)))
	}
	switch {
	case bound == NegInf:
		if value == NegInf {
			return 0
		}
		return 1
	case bound == PosInf:
		if value == PosInf {
			return 0
		}
		return -1
	case value == NegInf:
		return -1
	case value == PosInf:
		return 1
	}
	return cmp.Compare(boundUnit.Convert(value, valueUnit), bound)
}

func formatStart(v int64) string {
	if v == NegInf {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func formatEnd(v int64) string {
	if v == PosInf {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

// formatBound renders a bound for error messages.
func formatBound(v int64) string {
	switch v {
	case NegInf:
		return "-inf"
	case PosInf:
		return "+inf"
	}
	return strconv.FormatInt(v, 10)
}
