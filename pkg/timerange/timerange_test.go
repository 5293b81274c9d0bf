package timerange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/timespan/pkg/duration"
	"github.com/mash-protocol/timespan/pkg/timeunit"
)

func mustOf(t *testing.T, reg *Registry, unit timeunit.Unit, start, end int64) *TimeRange {
	t.Helper()
	tr, err := reg.Of(unit, start, end)
	require.NoError(t, err)
	return tr
}

func TestOf(t *testing.T) {
	reg := NewRegistry()

	tr := mustOf(t, reg, timeunit.Seconds, 10, 20)
	assert.Equal(t, timeunit.Seconds, tr.Unit())
	assert.Equal(t, int64(10), tr.Start())
	assert.Equal(t, int64(20), tr.End())
	assert.True(t, tr.HasStart())
	assert.True(t, tr.HasEnd())
	assert.False(t, tr.IsFull())
	assert.Equal(t, ShapeClosed, tr.Shape())
}

func TestOfInvalid(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name       string
		unit       timeunit.Unit
		start, end int64
	}{
		{"degenerate", timeunit.Seconds, 5, 5},
		{"reversed", timeunit.Seconds, 6, 5},
		{"absent unit", timeunit.Unit(0), 1, 2},
		{"start at +inf", timeunit.Seconds, PosInf, PosInf},
		{"end at -inf", timeunit.Seconds, NegInf, NegInf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := reg.Of(tt.unit, tt.start, tt.end)
			assert.Nil(t, tr)
			assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)
		})
	}
}

func TestShapes(t *testing.T) {
	reg := NewRegistry()

	openStart, err := reg.OpenStart(timeunit.Hours, 5)
	require.NoError(t, err)
	assert.Equal(t, ShapeOpenStart, openStart.Shape())
	assert.False(t, openStart.HasStart())
	assert.Equal(t, NegInf, openStart.Start())

	openEnd, err := reg.OpenEnd(timeunit.Hours, 5)
	require.NoError(t, err)
	assert.Equal(t, ShapeOpenEnd, openEnd.Shape())
	assert.False(t, openEnd.HasEnd())
	assert.Equal(t, PosInf, openEnd.End())

	full := reg.Full(timeunit.Hours)
	assert.Equal(t, ShapeFull, full.Shape())
	assert.True(t, full.IsFull())

	assert.Equal(t, "CLOSED", ShapeClosed.String())
	assert.Equal(t, "OPEN_START", ShapeOpenStart.String())
	assert.Equal(t, "OPEN_END", ShapeOpenEnd.String())
	assert.Equal(t, "FULL", ShapeFull.String())
	assert.Equal(t, "UNKNOWN", Shape(9).String())
}

func TestLength(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name     string
		tr       *TimeRange
		count    int64
		infinite bool
	}{
		{"closed", mustOf(t, reg, timeunit.Seconds, 10, 20), 11, false},
		{"negative bounds", mustOf(t, reg, timeunit.Minutes, -5, 5), 11, false},
		{"open start", mustOf(t, reg, timeunit.Seconds, NegInf, 20), duration.Infinite, true},
		{"open end", mustOf(t, reg, timeunit.Seconds, 10, PosInf), duration.Infinite, true},
		{"full", reg.Full(timeunit.Days), duration.Infinite, true},
		{"too long for int64", mustOf(t, reg, timeunit.Seconds, NegInf+1, PosInf-1), duration.Infinite, true},
		{"longest finite", mustOf(t, reg, timeunit.Seconds, 1, PosInf-1), PosInf - 1, false},
		{"count equals infinite", mustOf(t, reg, timeunit.Seconds, 0, PosInf-1), duration.Infinite, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.Length()
			assert.Equal(t, tt.tr.Unit(), got.Unit())
			assert.Equal(t, tt.count, got.Count())
			assert.Equal(t, tt.infinite, got.IsInfinite())
		})
	}
}

func TestLengthIsMemoized(t *testing.T) {
	reg := NewRegistry()
	tr := mustOf(t, reg, timeunit.Seconds, 1, 100)
	assert.Same(t, tr.Length(), tr.Length())
}

func TestContainsBoundaries(t *testing.T) {
	reg := NewRegistry()
	r := mustOf(t, reg, timeunit.Seconds, 10, 20)

	assert.True(t, r.Contains(timeunit.Seconds, 10))
	assert.True(t, r.Contains(timeunit.Seconds, 20))
	assert.True(t, r.Contains(timeunit.Seconds, 15))
	assert.False(t, r.Contains(timeunit.Seconds, 9))
	assert.False(t, r.Contains(timeunit.Seconds, 21))
}

func TestContainsCrossUnit(t *testing.T) {
	reg := NewRegistry()
	r := mustOf(t, reg, timeunit.Seconds, 10, 20)

	assert.True(t, r.Contains(timeunit.Milliseconds, 10000))
	assert.True(t, r.Contains(timeunit.Milliseconds, 20999), "truncates into second 20")
	assert.False(t, r.Contains(timeunit.Milliseconds, 21000))
	assert.False(t, r.Contains(timeunit.Milliseconds, 9999))
	assert.False(t, r.Contains(timeunit.Minutes, 1))
	assert.False(t, r.Contains(timeunit.Days, 1<<50), "saturated conversion stays above the range")
	assert.False(t, r.Contains(timeunit.Days, -(1 << 50)))
}

func TestContainsInfinity(t *testing.T) {
	reg := NewRegistry()
	closed := mustOf(t, reg, timeunit.Seconds, 10, 20)
	openEnd := mustOf(t, reg, timeunit.Seconds, 10, PosInf)
	full := reg.Full(timeunit.Seconds)

	assert.False(t, closed.Contains(timeunit.Seconds, PosInf))
	assert.False(t, closed.Contains(timeunit.Seconds, NegInf))
	assert.True(t, openEnd.Contains(timeunit.Days, PosInf))
	assert.False(t, openEnd.Contains(timeunit.Days, NegInf))
	assert.True(t, openEnd.Contains(timeunit.Days, 1<<50))
	assert.True(t, full.Contains(timeunit.Nanoseconds, NegInf))
	assert.True(t, full.Contains(timeunit.Nanoseconds, PosInf))
	assert.True(t, full.Contains(timeunit.Nanoseconds, 0))
}

func TestContainsInvalidUnitPanics(t *testing.T) {
	reg := NewRegistry()
	r := mustOf(t, reg, timeunit.Seconds, 10, 20)

	assert.PanicsWithValue(t, "timerange: compare value of invalid unit 0", func() {
		r.Contains(timeunit.Unit(0), 15)
	})
	assert.Panics(t, func() { r.Contains(timeunit.Unit(0), PosInf) })
	assert.Panics(t, func() { r.CompareStart(timeunit.Days+1, 15) })
	assert.Panics(t, func() { reg.Full(timeunit.Seconds).CompareEnd(timeunit.Unit(0), 0) })
}

func TestCompareStartEnd(t *testing.T) {
	reg := NewRegistry()
	r := mustOf(t, reg, timeunit.Minutes, 10, 20)

	tests := []struct {
		name      string
		unit      timeunit.Unit
		value     int64
		wantStart int
		wantEnd   int
	}{
		{"below", timeunit.Minutes, 5, -1, -1},
		{"at start", timeunit.Minutes, 10, 0, -1},
		{"inside", timeunit.Seconds, 900, 1, -1},
		{"zero hours", timeunit.Hours, 0, -1, -1},
		{"at end in seconds", timeunit.Seconds, 1200, 1, 0},
		{"above", timeunit.Hours, 1, 1, 1},
		{"negative infinity", timeunit.Minutes, NegInf, -1, -1},
		{"positive infinity", timeunit.Minutes, PosInf, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStart, r.CompareStart(tt.unit, tt.value))
			assert.Equal(t, tt.wantEnd, r.CompareEnd(tt.unit, tt.value))
		})
	}
}

func TestContainsRange(t *testing.T) {
	reg := NewRegistry()
	outer := mustOf(t, reg, timeunit.Seconds, 0, 3600)

	assert.True(t, outer.ContainsRange(mustOf(t, reg, timeunit.Minutes, 0, 60)))
	assert.True(t, outer.ContainsRange(mustOf(t, reg, timeunit.Milliseconds, 1000, 2000)))
	assert.False(t, outer.ContainsRange(mustOf(t, reg, timeunit.Minutes, 0, 61)))
	assert.False(t, outer.ContainsRange(mustOf(t, reg, timeunit.Seconds, -1, 10)))
	assert.False(t, outer.ContainsRange(mustOf(t, reg, timeunit.Seconds, 10, PosInf)))
}

func TestContainsRangeReflexive(t *testing.T) {
	reg := NewRegistry()
	for _, r := range sampleRanges(t, reg) {
		assert.True(t, r.ContainsRange(r), "%s should contain itself", r)
	}
}

func TestFullContainsEverything(t *testing.T) {
	reg := NewRegistry()
	for _, u := range timeunit.Units() {
		full := reg.Full(u)
		for _, r := range sampleRanges(t, reg) {
			assert.True(t, full.ContainsRange(r), "%s should contain %s", full, r)
			if !r.IsFull() {
				assert.False(t, r.ContainsRange(full), "%s should not contain %s", r, full)
			}
		}
	}
}

func TestIntersects(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		a, b *TimeRange
		want bool
	}{
		{"overlap", mustOf(t, reg, timeunit.Seconds, 0, 10), mustOf(t, reg, timeunit.Seconds, 5, 15), true},
		{"touching", mustOf(t, reg, timeunit.Seconds, 0, 10), mustOf(t, reg, timeunit.Seconds, 10, 15), true},
		{"disjoint", mustOf(t, reg, timeunit.Seconds, 0, 10), mustOf(t, reg, timeunit.Seconds, 11, 15), false},
		{"nested", mustOf(t, reg, timeunit.Seconds, 0, 100), mustOf(t, reg, timeunit.Seconds, 40, 50), true},
		{"cross unit", mustOf(t, reg, timeunit.Minutes, 1, 2), mustOf(t, reg, timeunit.Seconds, 100, 110), true},
		{"cross unit disjoint", mustOf(t, reg, timeunit.Minutes, 1, 2), mustOf(t, reg, timeunit.Seconds, 121, 130), false},
		{"open start", mustOf(t, reg, timeunit.Hours, NegInf, 0), mustOf(t, reg, timeunit.Seconds, -100, -50), true},
		{"open ends apart", mustOf(t, reg, timeunit.Hours, NegInf, 0), mustOf(t, reg, timeunit.Hours, 1, PosInf), false},
		{"full", reg.Full(timeunit.Days), mustOf(t, reg, timeunit.Nanoseconds, 1, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a))
		})
	}
}

func TestIntersection(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		a, b *TimeRange
		want string
	}{
		{"overlap", mustOf(t, reg, timeunit.Seconds, 0, 10), mustOf(t, reg, timeunit.Seconds, 5, 15), "[5-10] SECONDS"},
		{"nested", mustOf(t, reg, timeunit.Seconds, 0, 100), mustOf(t, reg, timeunit.Seconds, 40, 50), "[40-50] SECONDS"},
		{"coarser unit wins", mustOf(t, reg, timeunit.Seconds, 0, 600), mustOf(t, reg, timeunit.Minutes, 5, 20), "[5-10] MINUTES"},
		{"open start and open end", mustOf(t, reg, timeunit.Seconds, NegInf, 100), mustOf(t, reg, timeunit.Seconds, 50, PosInf), "[50-100] SECONDS"},
		{"open start pair", mustOf(t, reg, timeunit.Seconds, NegInf, 100), mustOf(t, reg, timeunit.Seconds, NegInf, 50), "[-50] SECONDS"},
		{"full with closed", reg.Full(timeunit.Hours), mustOf(t, reg, timeunit.Minutes, 30, 90), "[0-1] HOURS"},
		{"full with full", reg.Full(timeunit.Seconds), reg.Full(timeunit.Minutes), "[-] MINUTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab, ok := tt.a.Intersection(tt.b)
			require.True(t, ok)
			assert.Equal(t, tt.want, ab.String())

			ba, ok := tt.b.Intersection(tt.a)
			require.True(t, ok)
			assert.True(t, ab.Equal(ba), "%s != %s", ab, ba)
		})
	}
}

func TestIntersectionScenario(t *testing.T) {
	reg := NewRegistry()
	bounded := mustOf(t, reg, timeunit.Seconds, 7365, 3777347)
	openEnd, err := reg.OpenEnd(timeunit.Seconds, 100)
	require.NoError(t, err)

	got, ok := bounded.Intersection(openEnd)
	require.True(t, ok)
	assert.True(t, got.Equal(bounded))
	assert.Equal(t, "[7365-3777347] SECONDS", got.String())
}

func TestIntersectionEmpty(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		a, b *TimeRange
	}{
		{"disjoint", mustOf(t, reg, timeunit.Seconds, 0, 10), mustOf(t, reg, timeunit.Seconds, 11, 15)},
		{"single point", mustOf(t, reg, timeunit.Seconds, 0, 10), mustOf(t, reg, timeunit.Seconds, 10, 15)},
		// Overlap of seconds 70..100 collapses to minute 1 only.
		{"collapses after conversion", mustOf(t, reg, timeunit.Seconds, 70, 100), mustOf(t, reg, timeunit.Minutes, 0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersection(tt.b)
			assert.False(t, ok)
			assert.Nil(t, got)

			got, ok = tt.b.Intersection(tt.a)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestIntersectionConsistentWithIntersects(t *testing.T) {
	reg := NewRegistry()
	ranges := sampleRanges(t, reg)

	for _, a := range ranges {
		for _, b := range ranges {
			ab, okAB := a.Intersection(b)
			ba, okBA := b.Intersection(a)
			require.Equal(t, okAB, okBA, "%s ∩ %s", a, b)
			if okAB {
				assert.True(t, ab.Equal(ba), "%s ∩ %s: %s != %s", a, b, ab, ba)
				assert.Equal(t, timeunit.Coarser(a.Unit(), b.Unit()), ab.Unit())
			}
			if !a.Intersects(b) {
				assert.False(t, okAB, "%s ∩ %s should be empty", a, b)
			}
		}
	}
}

func TestIntersectionFoldsIntoFull(t *testing.T) {
	reg := NewRegistry()
	got, ok := reg.Full(timeunit.Seconds).Intersection(reg.Full(timeunit.Seconds))
	require.True(t, ok)
	assert.Same(t, reg.Full(timeunit.Seconds), got)
}

func TestEqual(t *testing.T) {
	reg := NewRegistry()
	a := mustOf(t, reg, timeunit.Seconds, 1, 2)

	assert.True(t, a.Equal(mustOf(t, reg, timeunit.Seconds, 1, 2)))
	assert.False(t, a.Equal(mustOf(t, reg, timeunit.Minutes, 1, 2)))
	assert.False(t, a.Equal(mustOf(t, reg, timeunit.Seconds, 1, 3)))
	assert.False(t, a.Equal(nil))
	assert.True(t, NewRegistry().Full(timeunit.Days).Equal(reg.Full(timeunit.Days)))
}

func TestString(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		tr   *TimeRange
		want string
	}{
		{mustOf(t, reg, timeunit.Minutes, 100, 200), "[100-200] MINUTES"},
		{mustOf(t, reg, timeunit.Seconds, NegInf, 3), "[-3] SECONDS"},
		{mustOf(t, reg, timeunit.Hours, 5, PosInf), "[5-] HOURS"},
		{reg.Full(timeunit.Days), "[-] DAYS"},
		{mustOf(t, reg, timeunit.Seconds, -10, -2), "[-10--2] SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tr.String())
		})
	}
}

// sampleRanges returns ranges of every shape across several units.
func sampleRanges(t *testing.T, reg *Registry) []*TimeRange {
	t.Helper()
	return []*TimeRange{
		mustOf(t, reg, timeunit.Seconds, 10, 20),
		mustOf(t, reg, timeunit.Seconds, -100, 100),
		mustOf(t, reg, timeunit.Minutes, 0, 1),
		mustOf(t, reg, timeunit.Milliseconds, 9500, 20500),
		mustOf(t, reg, timeunit.Hours, NegInf, 2),
		mustOf(t, reg, timeunit.Days, -3, PosInf),
		mustOf(t, reg, timeunit.Nanoseconds, 1, 1<<62),
		mustOf(t, reg, timeunit.Seconds, 7365, 3777347),
		reg.Full(timeunit.Seconds),
		reg.Full(timeunit.Days),
	}
}
