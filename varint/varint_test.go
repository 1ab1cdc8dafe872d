package varint

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func big64(n int64) *big.Int { return big.NewInt(n) }

func TestEncodeUintScenarios(t *testing.T) {
	cases := []struct {
		n    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		require.NoError(t, EncodeUint(&buf, big64(c.n)))
		require.Equal(t, c.want, buf.Bytes(), "n=%d", c.n)

		got, err := DecodeUint(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, big64(c.n), got)
	}
}

func TestEncodeIntScenarios(t *testing.T) {
	cases := []struct {
		n    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x40}},
		{63, []byte{0x3F}},
		{64, []byte{0x80, 0x01}},
		{-65, []byte{0xC0, 0x01}},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		require.NoError(t, EncodeInt(&buf, big64(c.n)))
		require.Equal(t, c.want, buf.Bytes(), "n=%d", c.n)

		got, err := DecodeInt(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, big64(c.n), got)
	}
}

func TestUintRoundTripRandomish(t *testing.T) {
	values := []uint64{1, 2, 3, 100, 1000, 1<<32 - 1, 1 << 40, 1<<63 - 1}
	for _, v := range values {
		n := new(big.Int).SetUint64(v)
		var buf bytes.Buffer
		require.NoError(t, EncodeUint(&buf, n))
		got, err := DecodeUint(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}

func TestIntRoundTripSigns(t *testing.T) {
	values := []int64{0, 1, -1, 1000, -1000, 1<<40 - 1, -(1 << 40)}
	for _, v := range values {
		n := big64(v)
		var buf bytes.Buffer
		require.NoError(t, EncodeInt(&buf, n))
		got, err := DecodeInt(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}

func TestUint128(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 127)
	var buf bytes.Buffer
	require.NoError(t, EncodeUint(&buf, n))
	got, err := DecodeUint(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, n, got)
	require.True(t, FitsUnsigned(n, 128))
	require.False(t, FitsUnsigned(n, 127))
}

func TestDecodeUintOverflow(t *testing.T) {
	// 19 continuation bytes, all with the high bit set: shift reaches 133
	// before a terminator, which must exceed the 128-bit cap.
	overlong := bytes.Repeat([]byte{0x80}, 19)
	_, err := DecodeUint(bytes.NewReader(overlong))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestDecodeIntOverflow(t *testing.T) {
	overlong := append([]byte{0xC0}, bytes.Repeat([]byte{0x80}, 19)...)
	_, err := DecodeInt(bytes.NewReader(overlong))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestEncodeUintNegativeRejected(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeUint(&buf, big.NewInt(-1))
	require.ErrorIs(t, err, ErrNegative)
}

func TestVarintMonotoneLength(t *testing.T) {
	// property 6: unsigned length == max(1, ceil(bitlen(n)/7))
	for _, v := range []uint64{0, 1, 127, 128, 1 << 20, 1<<63 - 1} {
		n := new(big.Int).SetUint64(v)
		got := UnsignedLen(n)
		want := 1
		if bl := n.BitLen(); bl > 0 {
			want = (bl + 6) / 7
			if want < 1 {
				want = 1
			}
		}
		require.Equal(t, want, got, "v=%d", v)
	}
}

func TestFitsSigned(t *testing.T) {
	require.True(t, FitsSigned(big.NewInt(127), 8))
	require.False(t, FitsSigned(big.NewInt(128), 8))
	require.True(t, FitsSigned(big.NewInt(-128), 8))
	require.False(t, FitsSigned(big.NewInt(-129), 8))
}
