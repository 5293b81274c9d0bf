package timerange

import (
	"fmt"

	"github.com/mash-protocol/timespan/pkg/timeunit"
	"github.com/mash-protocol/timespan/pkg/wire"
)

// rangeWire is the CBOR form of a range: [unit, start, end]. Infinite bounds
// are encoded as null.
type rangeWire struct {
	_     struct{} `cbor:",toarray"`
	Unit  uint8
	Start *int64
	End   *int64
}

// MarshalText implements encoding.TextMarshaler.
func (r *TimeRange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// MarshalYAML implements yaml.Marshaler. Ranges are written as their
// literal form.
func (r *TimeRange) MarshalYAML() (any, error) {
	return r.String(), nil
}

// MarshalCBOR implements cbor.Marshaler.
func (r *TimeRange) MarshalCBOR() ([]byte, error) {
	w := rangeWire{Unit: uint8(r.unit)}
	if r.HasStart() {
		start := r.start
		w.Start = &start
	}
	if r.HasEnd() {
		end := r.end
		w.End = &end
	}
	return wire.Marshal(w)
}

// DecodeCBOR decodes a range encoded by MarshalCBOR. A range with two null
// bounds decodes to the registry's Full range.
func (r *Registry) DecodeCBOR(data []byte) (*TimeRange, error) {
	var w rangeWire
	if err := wire.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode range: %w", err)
	}

	start, end := NegInf, PosInf
	if w.Start != nil {
		start = *w.Start
	}
	if w.End != nil {
		end = *w.End
	}
	return r.Of(timeunit.Unit(w.Unit), start, end)
}
