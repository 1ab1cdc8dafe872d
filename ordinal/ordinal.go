// Package ordinal implements the fixed-width little-endian discriminant
// encoding used for Enum variant indices: a discriminant in [0, n) is
// written in the minimum number of bytes covering the maximum value n-1.
package ordinal

import (
	"errors"
	"io"
)

// ErrOutOfRange is returned when a decoded discriminant is >= n, or when
// asked to encode an index outside [0, n).
var ErrOutOfRange = errors.New("ordinal: discriminant out of range")

// Width returns the number of bytes needed to hold any value in [0, n).
// A single-variant enum (n == 1) needs zero bytes; the discriminant is
// implicit on the wire.
func Width(n uint64) int {
	if n <= 1 {
		return 0
	}
	max := n - 1
	width := 0
	for max > 0 {
		width++
		max >>= 8
	}
	return width
}

// Encode writes idx as a little-endian discriminant sized for n variants.
func Encode(w io.ByteWriter, idx uint64, n uint64) error {
	if idx >= n {
		return ErrOutOfRange
	}
	width := Width(n)
	for i := 0; i < width; i++ {
		if err := w.WriteByte(byte(idx >> (8 * uint(i)))); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a little-endian discriminant sized for n variants and
// fails with ErrOutOfRange if the assembled value is >= n.
func Decode(r io.ByteReader, n uint64) (uint64, error) {
	width := Width(n)
	var idx uint64
	for i := 0; i < width; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		idx |= uint64(b) << (8 * uint(i))
	}
	if idx >= n {
		return 0, ErrOutOfRange
	}
	return idx, nil
}
