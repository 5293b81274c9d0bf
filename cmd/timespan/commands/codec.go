package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/mash-protocol/timespan/pkg/duration"
	"github.com/mash-protocol/timespan/pkg/timerange"
	"github.com/mash-protocol/timespan/pkg/wire"
)

// RunEncode prints the CBOR encoding of a duration or range literal as hex.
func RunEncode(reg *timerange.Registry, literal string, w io.Writer) error {
	var data []byte
	if isRange(literal) {
		tr, err := reg.Parse(literal)
		if err != nil {
			return err
		}
		if data, err = tr.MarshalCBOR(); err != nil {
			return fmt.Errorf("failed to encode range: %w", err)
		}
	} else {
		d, err := duration.Parse(literal)
		if err != nil {
			return err
		}
		if data, err = d.MarshalCBOR(); err != nil {
			return fmt.Errorf("failed to encode duration: %w", err)
		}
	}

	fmt.Fprintln(w, hex.EncodeToString(data))
	return nil
}

// RunDecode decodes a hex CBOR value produced by RunEncode and prints it.
func RunDecode(reg *timerange.Registry, hexText string, w io.Writer) error {
	data, err := hex.DecodeString(strings.TrimSpace(hexText))
	if err != nil {
		return fmt.Errorf("invalid hex input: %w", err)
	}

	kind, err := wire.PeekKind(data)
	if err != nil {
		return err
	}

	switch kind {
	case wire.KindDuration:
		d, err := duration.DecodeCBOR(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s\n", kind, describeDuration(d))
	case wire.KindRange:
		tr, err := reg.DecodeCBOR(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s\n", kind, describeRange(tr))
	}
	return nil
}
