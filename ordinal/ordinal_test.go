package ordinal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	cases := []struct {
		n    uint64
		want int
	}{
		{1, 0},
		{2, 1},
		{3, 1},
		{256, 1},
		{257, 2},
		{1 << 16, 2},
		{1<<16 + 1, 3},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Width(c.n), "n=%d", c.n)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		n   uint64
		idx uint64
	}{
		{1, 0},
		{3, 1},
		{256, 255},
		{257, 256},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, c.idx, c.n))
		require.Equal(t, Width(c.n), buf.Len())

		got, err := Decode(bytes.NewReader(buf.Bytes()), c.n)
		require.NoError(t, err)
		require.Equal(t, c.idx, got)
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	// width(3) == 1 byte; 0x05 >= 3 is out of range.
	_, err := Decode(bytes.NewReader([]byte{0x05}), 3)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestEncodeOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, 3, 3)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestZeroByteEncodingForSingleVariant(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, 0, 1))
	require.Equal(t, 0, buf.Len())

	got, err := Decode(bytes.NewReader(nil), 1)
	require.NoError(t, err)
	require.Equal(t, uint64(0), got)
}
