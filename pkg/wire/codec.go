package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for timespan values.
// Configured for deterministic encoding.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for timespan values.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// ErrUnknownKind is returned by PeekKind for data that is neither an encoded
// duration nor an encoded time range.
var ErrUnknownKind = errors.New("unknown value kind")

// Kind identifies the type of an encoded value.
type Kind uint8

const (
	// KindUnknown is returned when the kind cannot be determined.
	KindUnknown Kind = iota

	// KindDuration is a two-element [unit, count] array.
	KindDuration

	// KindRange is a three-element [unit, start, end] array.
	KindRange
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDuration:
		return "DURATION"
	case KindRange:
		return "RANGE"
	default:
		return "UNKNOWN"
	}
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder creates a new CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a new CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// PeekKind inspects encoded data and reports which value type it holds
// without decoding the elements.
func PeekKind(data []byte) (Kind, error) {
	var elems []cbor.RawMessage
	if err := Unmarshal(data, &elems); err != nil {
		return KindUnknown, fmt.Errorf("failed to peek value: %w", err)
	}

	switch len(elems) {
	case 2:
		return KindDuration, nil
	case 3:
		return KindRange, nil
	default:
		return KindUnknown, fmt.Errorf("%w: array of %d elements", ErrUnknownKind, len(elems))
	}
}

// Equal compares two values by their CBOR encoding.
func Equal(a, b any) bool {
	dataA, errA := Marshal(a)
	dataB, errB := Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(dataA, dataB)
}
