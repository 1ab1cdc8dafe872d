// Package varint implements the base-128 continuation-bit integer encoding
// used throughout binschema for every integer wider than 16 bits.
//
// Unsigned values are encoded 7 payload bits per byte, low-order group
// first, with bit 7 of each byte set iff another byte follows. Signed
// values fold a sign flag into the first byte (bit 6) and carry 6 payload
// bits there instead of 7; every subsequent byte follows the unsigned
// scheme. Both forms share a 128-bit shift cap: a value whose encoding
// would need a 19th continuation byte is malformed.
package varint

import (
	"errors"
	"io"
	"math/big"
)

// ErrOverflow is returned when decoding a varint whose accumulated shift
// reaches or exceeds the 128-bit cap before a terminating byte appears.
var ErrOverflow = errors.New("varint: shift exceeds 128-bit cap")

// ErrNegative is returned by EncodeUint when asked to encode a negative value.
var ErrNegative = errors.New("varint: negative value for unsigned encoding")

const maxShift = 128

var mask7 = big.NewInt(0x7f)
var mask6 = big.NewInt(0x3f)

// EncodeUint writes n, which must be non-negative and representable in at
// most 128 bits, as an unsigned varint. Zero always encodes to a single
// 0x00 byte.
func EncodeUint(w io.ByteWriter, n *big.Int) error {
	if n.Sign() < 0 {
		return ErrNegative
	}
	v := new(big.Int).Set(n)
	for {
		chunk := new(big.Int).And(v, mask7).Uint64()
		v.Rsh(v, 7)
		if v.Sign() != 0 {
			if err := w.WriteByte(byte(chunk | 0x80)); err != nil {
				return err
			}
			continue
		}
		return w.WriteByte(byte(chunk))
	}
}

// DecodeUint reads an unsigned varint, failing with ErrOverflow if the
// shift would reach 128 bits before a terminating byte, or with the
// reader's own error (typically io.EOF/io.ErrUnexpectedEOF) on short input.
func DecodeUint(r io.ByteReader) (*big.Int, error) {
	result := new(big.Int)
	shift := uint(0)
	for {
		if shift >= maxShift {
			return nil, ErrOverflow
		}
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		chunk := new(big.Int).SetUint64(uint64(b & 0x7f))
		chunk.Lsh(chunk, shift)
		result.Or(result, chunk)
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// EncodeInt writes n, which must be representable in at most 128 bits
// (two's-complement range), as a signed varint: the first byte carries a
// continuation bit, a sign bit, and 6 payload bits; subsequent bytes (if
// any) follow the unsigned 7-bit scheme.
func EncodeInt(w io.ByteWriter, n *big.Int) error {
	neg := n.Sign() < 0
	v := new(big.Int)
	if neg {
		v.Not(n)
	} else {
		v.Set(n)
	}

	low6 := new(big.Int).And(v, mask6).Uint64()
	rest := new(big.Int).Rsh(v, 6)

	first := byte(low6)
	if neg {
		first |= 0x40
	}
	if rest.Sign() == 0 {
		return w.WriteByte(first)
	}
	first |= 0x80
	if err := w.WriteByte(first); err != nil {
		return err
	}
	return encodeContinuation(w, rest)
}

func encodeContinuation(w io.ByteWriter, v *big.Int) error {
	for {
		chunk := new(big.Int).And(v, mask7).Uint64()
		v.Rsh(v, 7)
		if v.Sign() != 0 {
			if err := w.WriteByte(byte(chunk | 0x80)); err != nil {
				return err
			}
			continue
		}
		return w.WriteByte(byte(chunk))
	}
}

// DecodeInt reads a signed varint written by EncodeInt.
func DecodeInt(r io.ByteReader) (*big.Int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	neg := b&0x40 != 0
	cont := b&0x80 != 0

	v := new(big.Int).SetUint64(uint64(b & 0x3f))
	shift := uint(6)
	for cont {
		if shift >= maxShift {
			return nil, ErrOverflow
		}
		nb, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		chunk := new(big.Int).SetUint64(uint64(nb & 0x7f))
		chunk.Lsh(chunk, shift)
		v.Or(v, chunk)
		cont = nb&0x80 != 0
		shift += 7
	}

	if neg {
		v.Not(v)
	}
	return v, nil
}

// FitsUnsigned reports whether v is in [0, 2^bits).
func FitsUnsigned(v *big.Int, bits uint) bool {
	if v.Sign() < 0 {
		return false
	}
	limit := new(big.Int).Lsh(big.NewInt(1), bits)
	return v.Cmp(limit) < 0
}

// FitsSigned reports whether v is in [-2^(bits-1), 2^(bits-1)-1].
func FitsSigned(v *big.Int, bits uint) bool {
	limit := new(big.Int).Lsh(big.NewInt(1), bits-1)
	lo := new(big.Int).Neg(limit)
	hi := new(big.Int).Sub(limit, big.NewInt(1))
	return v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0
}

// byteCounter is an io.ByteWriter that only counts bytes, used to compute
// an encoded length without materializing the bytes.
type byteCounter int

func (c *byteCounter) WriteByte(byte) error {
	*c++
	return nil
}

// UnsignedLen returns the number of bytes EncodeUint would write for n.
func UnsignedLen(n *big.Int) int {
	var c byteCounter
	_ = EncodeUint(&c, n)
	return int(c)
}

// SignedLen returns the number of bytes EncodeInt would write for n.
func SignedLen(n *big.Int) int {
	var c byteCounter
	_ = EncodeInt(&c, n)
	return int(c)
}
