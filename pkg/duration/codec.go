package duration

import (
	"fmt"

	"github.com/mash-protocol/timespan/pkg/timeunit"
	"github.com/mash-protocol/timespan/pkg/wire"
)

// durationWire is the CBOR form of a duration: [unit, count].
type durationWire struct {
	_     struct{} `cbor:",toarray"`
	Unit  uint8
	Count int64
}

// MarshalText implements encoding.TextMarshaler.
func (d *Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// MarshalYAML implements yaml.Marshaler. Durations are written as their
// literal form.
func (d *Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// MarshalCBOR implements cbor.Marshaler.
func (d *Duration) MarshalCBOR() ([]byte, error) {
	return wire.Marshal(durationWire{Unit: uint8(d.unit), Count: d.count})
}

// DecodeCBOR decodes a duration encoded by MarshalCBOR.
func DecodeCBOR(data []byte) (*Duration, error) {
	var w durationWire
	if err := wire.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode duration: %w", err)
	}
	return Of(timeunit.Unit(w.Unit), w.Count)
}
