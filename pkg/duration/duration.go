package duration

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
	"time"

	"github.com/mash-protocol/timespan/pkg/timeunit"
)

// Infinite is the reserved count of an unbounded duration.
const Infinite int64 = math.MaxInt64

// Duration is an immutable non-negative count of a time unit.
// Use Of or Parse to create one; the zero value is not valid.
type Duration struct {
	unit  timeunit.Unit
	count int64
}

// Of returns a duration of count units.
// It fails with timeunit.ErrInvalidArgument when the unit is invalid or the
// count is negative.
func Of(unit timeunit.Unit, count int64) (*Duration, error) {
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: duration unit is absent", timeunit.ErrInvalidArgument)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative duration count %d", timeunit.ErrInvalidArgument, count)
	}
	return &Duration{unit: unit, count: count}, nil
}

// MustOf is like Of but panics on invalid input.
func MustOf(unit timeunit.Unit, count int64) *Duration {
	d, err := Of(unit, count)
	if err != nil {
		panic(err)
	}
	return d
}

// FromStd converts a non-negative time.Duration using the coarsest unit that
// represents it exactly.
func FromStd(std time.Duration) (*Duration, error) {
	units := timeunit.Units()
	for i := len(units) - 1; i > 0; i-- {
		if int64(std)%units[i].Nanos() == 0 {
			return Of(units[i], int64(std)/units[i].Nanos())
		}
	}
	return Of(timeunit.Nanoseconds, int64(std))
}

// Unit returns the unit of d.
func (d *Duration) Unit() timeunit.Unit {
	return d.unit
}

// Count returns the number of units in d.
func (d *Duration) Count() int64 {
	return d.count
}

// IsInfinite reports whether d holds the Infinite count.
func (d *Duration) IsInfinite() bool {
	return d.count == Infinite
}

// IsZero reports whether d is a zero-length duration.
func (d *Duration) IsZero() bool {
	return d.count == 0
}

// AddCount returns a duration with delta added to the count.
// A zero delta returns d itself. Results above the int64 range saturate to
// Infinite; negative results are rejected.
func (d *Duration) AddCount(delta int64) (*Duration, error) {
	if delta == 0 || d.IsInfinite() {
		return d, nil
	}
	sum := d.count + delta
	if delta > 0 && sum < d.count {
		sum = Infinite
	}
	if sum < 0 {
		return nil, fmt.Errorf("%w: %s plus %d is negative", timeunit.ErrInvalidArgument, d, delta)
	}
	return &Duration{unit: d.unit, count: sum}, nil
}

// MulCount returns a duration with the count multiplied by factor.
// A factor of 1 returns d itself. Overflow saturates to Infinite.
func (d *Duration) MulCount(factor int64) (*Duration, error) {
	switch {
	case factor == 1:
		return d, nil
	case factor < 0:
		return nil, fmt.Errorf("%w: negative factor %d", timeunit.ErrInvalidArgument, factor)
	case factor == 0 && d.IsInfinite():
		return nil, fmt.Errorf("%w: infinite duration multiplied by zero", timeunit.ErrInvalidArgument)
	case d.IsInfinite():
		return d, nil
	}
	hi, lo := bits.Mul64(uint64(d.count), uint64(factor))
	if hi != 0 || lo > uint64(math.MaxInt64) {
		return &Duration{unit: d.unit, count: Infinite}, nil
	}
	return &Duration{unit: d.unit, count: int64(lo)}, nil
}

// DivCount returns a duration with the count divided by factor, truncated.
// A factor of 1 returns d itself. Infinite durations stay infinite.
func (d *Duration) DivCount(factor int64) (*Duration, error) {
	switch {
	case factor == 1:
		return d, nil
	case factor <= 0:
		return nil, fmt.Errorf("%w: division by %d", timeunit.ErrInvalidArgument, factor)
	case d.IsInfinite():
		return d, nil
	}
	return &Duration{unit: d.unit, count: d.count / factor}, nil
}

// ConvertTo returns d expressed in unit. The same instance is returned when
// the unit does not change. Converting to a coarser unit truncates.
// Converting to a finer unit saturates: a finite duration whose count does
// not fit below math.MaxInt64 in unit becomes Infinite.
func (d *Duration) ConvertTo(unit timeunit.Unit) *Duration {
	if unit == d.unit {
		return d
	}
	if !unit.Valid() {
		panic(fmt.Sprintf("duration: convert to invalid unit %d", uint8(unit)))
	}
	if d.IsInfinite() {
		return &Duration{unit: unit, count: Infinite}
	}
	return &Duration{unit: unit, count: unit.Convert(d.count, d.unit)}
}

// CanonicalValue returns the count in nanoseconds, saturating at
// math.MaxInt64.
func (d *Duration) CanonicalValue() int64 {
	if d.IsInfinite() {
		return Infinite
	}
	return timeunit.Nanoseconds.Convert(d.count, d.unit)
}

// Std returns d as a time.Duration, saturating at the largest representable
// value.
func (d *Duration) Std() time.Duration {
	return time.Duration(d.CanonicalValue())
}

// Compare orders a and b by canonical value.
// It returns -1 if a is shorter, 0 if equal and +1 if longer.
func Compare(a, b *Duration) int {
	switch ai, bi := a.IsInfinite(), b.IsInfinite(); {
	case ai && bi:
		return 0
	case ai:
		return 1
	case bi:
		return -1
	}

	// 128-bit products keep distinct magnitudes distinct past the int64 range.
	ahi, alo := bits.Mul64(uint64(a.count), uint64(a.unit.Nanos()))
	bhi, blo := bits.Mul64(uint64(b.count), uint64(b.unit.Nanos()))
	switch {
	case ahi < bhi:
		return -1
	case ahi > bhi:
		return 1
	case alo < blo:
		return -1
	case alo > blo:
		return 1
	}
	return 0
}

// Compare orders d against o by canonical value.
func (d *Duration) Compare(o *Duration) int {
	return Compare(d, o)
}

// Equal reports whether d and o have the same canonical value.
func (d *Duration) Equal(o *Duration) bool {
	return Compare(d, o) == 0
}

// String returns the "<count> <UNIT>" form.
func (d *Duration) String() string {
	return strconv.FormatInt(d.count, 10) + " " + d.unit.String()
}

// Parse parses a "<count> <UNIT>" literal. The count must be a non-negative
// decimal integer without sign, separated from the unit name by exactly one
// space. The unit name is matched case-insensitively.
func Parse(s string) (*Duration, error) {
	countText, unitText, ok := strings.Cut(s, " ")
	if !ok {
		return nil, timeunit.MissingError(s, timeunit.ElementSeparator)
	}
	if countText == "" {
		return nil, timeunit.MissingError(s, timeunit.ElementCount)
	}
	if !isDigits(countText) {
		return nil, &timeunit.ParseError{Input: s, Element: timeunit.ElementCount,
			Err: fmt.Errorf("%q is not a non-negative integer", countText)}
	}
	count, err := strconv.ParseInt(countText, 10, 64)
	if err != nil {
		return nil, &timeunit.ParseError{Input: s, Element: timeunit.ElementCount, Err: err}
	}

	if unitText == "" {
		return nil, timeunit.MissingError(s, timeunit.ElementUnit)
	}
	unit, err := timeunit.ParseUnit(unitText)
	if err != nil {
		return nil, &timeunit.ParseError{Input: s, Element: timeunit.ElementUnit, Err: errors.Unwrap(err)}
	}

	return Of(unit, count)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
