package timerange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/timespan/pkg/timeunit"
	"github.com/mash-protocol/timespan/pkg/wire"
)

func TestCBORRoundTrip(t *testing.T) {
	reg := NewRegistry()
	for _, r := range sampleRanges(t, reg) {
		t.Run(r.String(), func(t *testing.T) {
			data, err := r.MarshalCBOR()
			require.NoError(t, err)

			kind, err := wire.PeekKind(data)
			require.NoError(t, err)
			assert.Equal(t, wire.KindRange, kind)

			got, err := reg.DecodeCBOR(data)
			require.NoError(t, err)
			assert.True(t, r.Equal(got), "%s != %s", r, got)
			if r.IsFull() {
				assert.Same(t, r, got)
			}
		})
	}
}

func TestCBOROpenBoundsAreNull(t *testing.T) {
	reg := NewRegistry()
	r, err := reg.OpenEnd(timeunit.Seconds, 5)
	require.NoError(t, err)

	data, err := r.MarshalCBOR()
	require.NoError(t, err)

	var elems []any
	require.NoError(t, wire.Unmarshal(data, &elems))
	require.Len(t, elems, 3)
	assert.EqualValues(t, uint64(timeunit.Seconds), elems[0])
	assert.EqualValues(t, uint64(5), elems[1])
	assert.Nil(t, elems[2])
}

func TestDecodeCBORRejectsInvalid(t *testing.T) {
	reg := NewRegistry()

	data, err := wire.Marshal([]any{uint8(timeunit.Seconds), int64(9), int64(3)})
	require.NoError(t, err)
	_, err = reg.DecodeCBOR(data)
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)

	data, err = wire.Marshal([]any{uint8(0), nil, nil})
	require.NoError(t, err)
	_, err = reg.DecodeCBOR(data)
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)

	_, err = reg.DecodeCBOR([]byte{0x01})
	assert.Error(t, err)
}

func TestYAML(t *testing.T) {
	reg := NewRegistry()
	doc := map[string]*TimeRange{
		"maintenance": reg.MustParse("[100-200] MINUTES"),
		"always":      reg.Full(timeunit.Hours),
	}

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[100-200] MINUTES")
	assert.Contains(t, string(out), "[-] HOURS")

	var back map[string]string
	require.NoError(t, yaml.Unmarshal(out, &back))
	for name, literal := range back {
		got, err := reg.Parse(literal)
		require.NoError(t, err)
		assert.True(t, doc[name].Equal(got))
	}
}

func TestMarshalText(t *testing.T) {
	reg := NewRegistry()
	b, err := reg.MustParse("[5-] HOURS").MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "[5-] HOURS", string(b))
}
