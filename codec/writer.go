package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/binschema/binschema/varint"
)

// Writer is the byte sink the value codec writes to. It wraps any io.Writer
// so the same encode logic runs over an in-memory buffer, a file, or a
// net.Conn.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps dst as a codec byte sink.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(dst)}
}

// Flush pushes any buffered bytes to the underlying io.Writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIoError, err)
	}
	return nil
}

func (w *Writer) WriteByte(b byte) error {
	if err := w.w.WriteByte(b); err != nil {
		return fmt.Errorf("%w: %v", ErrIoError, err)
	}
	return nil
}

func (w *Writer) writeBytes(b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("%w: %v", ErrIoError, err)
	}
	return nil
}

func (w *Writer) writeU16(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return w.writeBytes(buf[:])
}

func (w *Writer) writeVarintUint(n *big.Int) error {
	if err := varint.EncodeUint(w.w, n); err != nil {
		return fmt.Errorf("%w: %v", ErrIoError, err)
	}
	return nil
}

func (w *Writer) writeVarintInt(n *big.Int) error {
	if err := varint.EncodeInt(w.w, n); err != nil {
		return fmt.Errorf("%w: %v", ErrIoError, err)
	}
	return nil
}

func (w *Writer) writeF32(f float32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
	return w.writeBytes(buf[:])
}

func (w *Writer) writeF64(f float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	return w.writeBytes(buf[:])
}
