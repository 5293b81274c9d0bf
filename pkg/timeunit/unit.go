package timeunit

import (
	"cmp"
	"fmt"
	"math"
	"strings"
	"time"
)

// Unit is a time granularity. Larger values are coarser.
// The zero value is not a valid unit.
type Unit uint8

const (
	// Nanoseconds is the finest unit.
	Nanoseconds Unit = iota + 1

	// Microseconds is 1000 nanoseconds.
	Microseconds

	// Milliseconds is 1000 microseconds.
	Milliseconds

	// Seconds is 1000 milliseconds.
	Seconds

	// Minutes is 60 seconds.
	Minutes

	// Hours is 60 minutes.
	Hours

	// Days is 24 hours, the coarsest unit.
	Days
)

// Count is the number of valid units.
const Count = int(Days)

// nanos holds the length of each unit in nanoseconds, indexed by Unit.
var nanos = [...]int64{
	Nanoseconds:  1,
	Microseconds: int64(time.Microsecond),
	Milliseconds: int64(time.Millisecond),
	Seconds:      int64(time.Second),
	Minutes:      int64(time.Minute),
	Hours:        int64(time.Hour),
	Days:         24 * int64(time.Hour),
}

var names = [...]string{
	Nanoseconds:  "NANOSECONDS",
	Microseconds: "MICROSECONDS",
	Milliseconds: "MILLISECONDS",
	Seconds:      "SECONDS",
	Minutes:      "MINUTES",
	Hours:        "HOURS",
	Days:         "DAYS",
}

// byName maps upper-case unit names to units. Built once at init.
var byName map[string]Unit

func init() {
	byName = make(map[string]Unit, Count)
	for _, u := range Units() {
		byName[names[u]] = u
	}
}

// Units returns all valid units from finest to coarsest.
func Units() []Unit {
	return []Unit{Nanoseconds, Microseconds, Milliseconds, Seconds, Minutes, Hours, Days}
}

// Valid reports whether u is one of the defined units.
func (u Unit) Valid() bool {
	return u >= Nanoseconds && u <= Days
}

// String returns the upper-case unit name.
func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("UNIT(%d)", uint8(u))
	}
	return names[u]
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: unit %d", ErrInvalidArgument, uint8(u))
	}
	return []byte(names[u]), nil
}

// ParseUnit returns the unit with the given name, ignoring case.
func ParseUnit(name string) (Unit, error) {
	if u, ok := byName[strings.ToUpper(name)]; ok {
		return u, nil
	}
	if name == "" {
		return 0, &ParseError{Input: name, Element: ElementUnit, Err: errMissing}
	}
	return 0, &ParseError{Input: name, Element: ElementUnit, Err: fmt.Errorf("unknown unit %q", name)}
}

// Nanos returns the length of one u in nanoseconds.
func (u Unit) Nanos() int64 {
	return nanos[u]
}

// Std returns the length of one u as a time.Duration.
func (u Unit) Std() time.Duration {
	return time.Duration(nanos[u])
}

// Compare returns -1 if u is finer than o, 0 if equal and +1 if coarser.
func (u Unit) Compare(o Unit) int {
	return cmp.Compare(u, o)
}

// Coarser returns the coarser of a and b.
func Coarser(a, b Unit) Unit {
	return max(a, b)
}

// Finer returns the finer of a and b.
func Finer(a, b Unit) Unit {
	return min(a, b)
}

// Convert converts value expressed in from into u.
// Conversion to a coarser unit truncates toward zero; conversion to a finer
// unit saturates at math.MaxInt64 or math.MinInt64. Convert panics if
// either unit is invalid.
func (u Unit) Convert(value int64, from Unit) int64 {
	if !u.Valid() || !from.Valid() {
		panic(fmt.Sprintf("timeunit: convert from %s to %s", from, u))
	}
	switch {
	case u == from:
		return value
	case u > from:
		return value / (nanos[u] / nanos[from])
	default:
		return scale(value, nanos[from]/nanos[u])
	}
}

// scale multiplies value by ratio (ratio > 0), saturating on overflow.
func scale(value, ratio int64) int64 {
	limit := math.MaxInt64 / ratio
	switch {
	case value > limit:
		return math.MaxInt64
	case value < -limit:
		return math.MinInt64
	}
	return value * ratio
}
