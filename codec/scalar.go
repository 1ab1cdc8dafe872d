package codec

import (
	"math/big"

	"github.com/binschema/binschema/schema"
	"github.com/binschema/binschema/varint"
)

func bigUint(n uint64) *big.Int { return new(big.Int).SetUint64(n) }

func varintFitsUnsigned(n *big.Int, bits int) bool {
	if bits == 0 {
		return true
	}
	return varint.FitsUnsigned(n, uint(bits))
}

func varintFitsSigned(n *big.Int, bits int) bool {
	if bits == 0 {
		return true
	}
	return varint.FitsSigned(n, uint(bits))
}

// encodeUnsignedScalar writes n as the wire form for an unsigned kind: one
// raw byte for U8, two little-endian bytes for U16, a var-len uint for
// everything wider.
func encodeUnsignedScalar(w *Writer, k schema.Kind, n *big.Int) error {
	switch k {
	case schema.KindU8:
		return w.WriteByte(byte(n.Uint64()))
	case schema.KindU16:
		return w.writeU16(uint16(n.Uint64()))
	default:
		return w.writeVarintUint(n)
	}
}

// encodeSignedScalar mirrors encodeUnsignedScalar for signed kinds.
func encodeSignedScalar(w *Writer, k schema.Kind, n *big.Int) error {
	switch k {
	case schema.KindI8:
		return w.WriteByte(byte(int8(n.Int64())))
	case schema.KindI16:
		return w.writeU16(uint16(int16(n.Int64())))
	default:
		return w.writeVarintInt(n)
	}
}

// decodeUnsignedScalar is the decode-side counterpart of encodeUnsignedScalar.
func decodeUnsignedScalar(r *Reader, k schema.Kind) (*big.Int, error) {
	switch k {
	case schema.KindU8:
		b, err := r.readTrusted(1)
		if err != nil {
			return nil, err
		}
		return bigUint(uint64(b[0])), nil
	case schema.KindU16:
		v, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return bigUint(uint64(v)), nil
	default:
		return r.readVarintUint()
	}
}

// decodeSignedScalar is the decode-side counterpart of encodeSignedScalar.
func decodeSignedScalar(r *Reader, k schema.Kind) (*big.Int, error) {
	switch k {
	case schema.KindI8:
		b, err := r.readTrusted(1)
		if err != nil {
			return nil, err
		}
		return big.NewInt(int64(int8(b[0]))), nil
	case schema.KindI16:
		v, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return big.NewInt(int64(int16(v))), nil
	default:
		return r.readVarintInt()
	}
}
