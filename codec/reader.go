package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/binschema/binschema/varint"
)

// readChunk bounds how much is grown in one step when a length prefix comes
// from untrusted input, so a decoder never pre-allocates a buffer sized by
// an attacker-controlled count.
const readChunk = 4096

// Reader is the byte source the value codec reads from. It wraps any
// io.Reader so the same decode logic runs over an in-memory buffer, a file,
// or a net.Conn.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps src as a codec byte source.
func NewReader(src io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(src)}
}

func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, wrapReadErr(err)
	}
	return b, nil
}

func wrapReadErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrEndOfStream, err)
	}
	return fmt.Errorf("%w: %v", ErrIoError, err)
}

// readTrusted reads exactly n bytes, where n is bounded by the schema
// (a fixed-width scalar), not by attacker-controlled input.
func (r *Reader) readTrusted(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, wrapReadErr(err)
	}
	return buf, nil
}

// readUntrusted reads exactly n bytes, where n was decoded from the stream
// itself (a Str/Bytes length), growing the result incrementally
// rather than allocating n bytes up front.
func (r *Reader) readUntrusted(n uint64) ([]byte, error) {
	out := make([]byte, 0, min64(n, readChunk))
	for uint64(len(out)) < n {
		step := n - uint64(len(out))
		if step > readChunk {
			step = readChunk
		}
		chunk := make([]byte, step)
		if _, err := io.ReadFull(r.r, chunk); err != nil {
			return nil, wrapReadErr(err)
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func (r *Reader) readU16() (uint16, error) {
	b, err := r.readTrusted(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) readVarintUint() (*big.Int, error) {
	n, err := varint.DecodeUint(r.r)
	if err != nil {
		if errors.Is(err, varint.ErrOverflow) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedVarint, err)
		}
		return nil, wrapReadErr(err)
	}
	return n, nil
}

func (r *Reader) readVarintInt() (*big.Int, error) {
	n, err := varint.DecodeInt(r.r)
	if err != nil {
		if errors.Is(err, varint.ErrOverflow) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedVarint, err)
		}
		return nil, wrapReadErr(err)
	}
	return n, nil
}

func (r *Reader) readF32() (float32, error) {
	b, err := r.readTrusted(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func (r *Reader) readF64() (float64, error) {
	b, err := r.readTrusted(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}
