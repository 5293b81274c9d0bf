// Package wire defines the CBOR encoding shared by durations and time ranges.
//
// Values are encoded as deterministic CBOR (RFC 8949) arrays so that equal
// values always produce identical bytes:
//
//	Duration:  [unit, count]
//	TimeRange: [unit, start, end]
//
// Units are encoded as their small integer value. An infinite range bound
// is encoded as CBOR null.
//
// The encoder uses canonical sort order and forbids indefinite lengths.
// The decoder is lenient about indefinite lengths for interoperability.
package wire
