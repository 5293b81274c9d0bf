package timerange

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mash-protocol/timespan/pkg/timeunit"
)

// Registry creates time ranges and owns the Full range singleton of each
// unit. A Registry is safe for concurrent use. The zero value is not usable;
// call NewRegistry.
type Registry struct {
	mu sync.Mutex

	// full holds the cached Full range per unit, indexed by Unit.
	// Reads take the lock-free path; writes happen under mu.
	full [timeunit.Count + 1]atomic.Pointer[TimeRange]

	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report registry activity.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Of returns the range [start, end] in unit.
// Use NegInf and PosInf for open bounds. When both bounds are infinite the
// Full range of unit is returned. It fails with timeunit.ErrInvalidArgument
// if the unit is invalid or start >= end.
func (r *Registry) Of(unit timeunit.Unit, start, end int64) (*TimeRange, error) {
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: range unit is absent", timeunit.ErrInvalidArgument)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: range start %s must be before end %s",
			timeunit.ErrInvalidArgument, formatBound(start), formatBound(end))
	}
	if start == NegInf && end == PosInf {
		return r.Full(unit), nil
	}
	return &TimeRange{unit: unit, start: start, end: end, registry: r}, nil
}

// OpenStart returns the range (-inf, end] in unit.
func (r *Registry) OpenStart(unit timeunit.Unit, end int64) (*TimeRange, error) {
	return r.Of(unit, NegInf, end)
}

// OpenEnd returns the range [start, +inf) in unit.
func (r *Registry) OpenEnd(unit timeunit.Unit, start int64) (*TimeRange, error) {
	return r.Of(unit, start, PosInf)
}

// Full returns the range covering all values of unit. Every call with the
// same unit returns the same instance. Full panics if unit is invalid.
func (r *Registry) Full(unit timeunit.Unit) *TimeRange {
	if !unit.Valid() {
		panic(fmt.Sprintf("timerange: full range of invalid unit %d", uint8(unit)))
	}

	slot := &r.full[unit]
	if tr := slot.Load(); tr != nil {
		return tr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have created it while we waited for the lock.
	if tr := slot.Load(); tr != nil {
		return tr
	}
	tr := &TimeRange{unit: unit, start: NegInf, end: PosInf, registry: r}
	slot.Store(tr)

	r.logger.Debug("created full range", slog.String("unit", unit.String()))
	return tr
}

// Cached returns the units whose Full range has been created, finest first.
func (r *Registry) Cached() []timeunit.Unit {
	var units []timeunit.Unit
	for _, u := range timeunit.Units() {
		if r.full[u].Load() != nil {
			units = append(units, u)
		}
	}
	return units
}
