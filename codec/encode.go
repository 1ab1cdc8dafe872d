package codec

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"unicode/utf8"

	"github.com/binschema/binschema/ordinal"
	"github.com/binschema/binschema/schema"
	"github.com/binschema/binschema/value"
)

// widthBits returns the declared bit width of a fixed or variable-length
// integer kind, used to range-check values before encoding them.
func widthBits(k schema.Kind) int {
	switch k {
	case schema.KindU8, schema.KindI8:
		return 8
	case schema.KindU16, schema.KindI16:
		return 16
	case schema.KindU32, schema.KindI32:
		return 32
	case schema.KindU64, schema.KindI64:
		return 64
	case schema.KindU128, schema.KindI128:
		return 128
	default:
		return 0
	}
}

var (
	unicodeScalarLimit = big.NewInt(0x110000)
	surrogateLow       = big.NewInt(0xD800)
	surrogateHigh      = big.NewInt(0xDFFF)
)

// isMaxUnicodeScalar reports whether n is a valid unicode scalar value:
// non-negative, below the codepoint limit, and outside the surrogate range.
// Compared directly against n rather than through n.Int64(), since n can
// hold up to 128 bits and Int64() truncates silently on overflow.
func isMaxUnicodeScalar(n *big.Int) bool {
	return n.Sign() >= 0 && n.Cmp(unicodeScalarLimit) < 0 &&
		(n.Cmp(surrogateLow) < 0 || n.Cmp(surrogateHigh) > 0)
}

// Encode writes v to dst according to s. It fails with ErrInvalidSchema if s
// itself is malformed, ErrNonConforming if v does not match s's shape or
// declared ranges, and ErrIoError if dst returns an error.
func Encode(dst io.Writer, s *schema.Schema, v *value.Value) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	w := NewWriter(dst)
	if err := encodeValue(w, s, v, nil); err != nil {
		return err
	}
	return w.Flush()
}

func encodeValue(w *Writer, s *schema.Schema, v *value.Value, ancestors []*schema.Schema) error {
	switch s.Kind {
	case schema.KindRecurse:
		resolved, err := resolveRecurse(s.Level, ancestors)
		if err != nil {
			return err
		}
		return encodeValue(w, resolved, v, ancestors)
	}

	if v == nil || v.Kind != s.Kind {
		return fmt.Errorf("%w: expected %s, got %v", ErrNonConforming, s.Kind, v)
	}

	switch s.Kind {
	case schema.KindBool:
		if v.Bool {
			return w.WriteByte(0x01)
		}
		return w.WriteByte(0x00)

	case schema.KindU8, schema.KindU16, schema.KindU32, schema.KindU64, schema.KindU128:
		if !varintFitsUnsigned(v.Int, widthBits(s.Kind)) {
			return fmt.Errorf("%w: %s value out of range", ErrNonConforming, s.Kind)
		}
		return encodeUnsignedScalar(w, s.Kind, v.Int)

	case schema.KindI8, schema.KindI16, schema.KindI32, schema.KindI64, schema.KindI128:
		if !varintFitsSigned(v.Int, widthBits(s.Kind)) {
			return fmt.Errorf("%w: %s value out of range", ErrNonConforming, s.Kind)
		}
		return encodeSignedScalar(w, s.Kind, v.Int)

	case schema.KindF32:
		return w.writeF32(v.F32)

	case schema.KindF64:
		return w.writeF64(v.F64)

	case schema.KindChar:
		if !isMaxUnicodeScalar(v.Int) {
			return fmt.Errorf("%w: %s is not a valid unicode scalar", ErrInvalidChar, v.Int)
		}
		return w.writeVarintUint(v.Int)

	case schema.KindStr:
		if !utf8.ValidString(v.Str) {
			return fmt.Errorf("%w: string is not valid UTF-8", ErrInvalidUTF8)
		}
		b := []byte(v.Str)
		if err := w.writeVarintUint(bigUint(uint64(len(b)))); err != nil {
			return err
		}
		return w.writeBytes(b)

	case schema.KindBytes:
		if err := w.writeVarintUint(bigUint(uint64(len(v.Bytes)))); err != nil {
			return err
		}
		return w.writeBytes(v.Bytes)

	case schema.KindUnit:
		return nil

	case schema.KindOption:
		ancestors = append(ancestors, s)
		if v.Elem == nil {
			return w.WriteByte(0x00)
		}
		if err := w.WriteByte(0x01); err != nil {
			return err
		}
		return encodeValue(w, s.Elem, v.Elem, ancestors)

	case schema.KindSeq:
		if s.Len != nil && uint64(len(v.Elems)) != *s.Len {
			return fmt.Errorf("%w: Seq expects %d elements, got %d", ErrNonConforming, *s.Len, len(v.Elems))
		}
		if s.Len == nil {
			if err := w.writeVarintUint(bigUint(uint64(len(v.Elems)))); err != nil {
				return err
			}
		}
		ancestors = append(ancestors, s)
		for _, elem := range v.Elems {
			if err := encodeValue(w, s.Elem, elem, ancestors); err != nil {
				return err
			}
		}
		return nil

	case schema.KindTuple:
		if len(v.Elems) != len(s.Elems) {
			return fmt.Errorf("%w: Tuple expects %d elements, got %d", ErrNonConforming, len(s.Elems), len(v.Elems))
		}
		ancestors = append(ancestors, s)
		for i, elemType := range s.Elems {
			if err := encodeValue(w, elemType, v.Elems[i], ancestors); err != nil {
				return err
			}
		}
		return nil

	case schema.KindStruct:
		if len(v.Fields) != len(s.Fields) {
			return fmt.Errorf("%w: Struct expects %d fields, got %d", ErrNonConforming, len(s.Fields), len(v.Fields))
		}
		ancestors = append(ancestors, s)
		for i, f := range s.Fields {
			fv := v.Fields[i]
			if fv.Name != f.Name {
				return fmt.Errorf("%w: Struct field %d: expected %q, got %q", ErrNonConforming, i, f.Name, fv.Name)
			}
			if err := encodeValue(w, f.Type, fv.Value, ancestors); err != nil {
				return err
			}
		}
		return nil

	case schema.KindEnum:
		if len(s.Fields) == 0 {
			return fmt.Errorf("%w: cannot encode a value under a zero-variant enum", ErrInvalidSchema)
		}
		if len(v.Fields) != 1 {
			return fmt.Errorf("%w: Enum value must select exactly one variant", ErrNonConforming)
		}
		chosen := v.Fields[0]
		idx := -1
		for i, f := range s.Fields {
			if f.Name == chosen.Name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: unknown Enum variant %q", ErrNonConforming, chosen.Name)
		}
		if err := ordinal.Encode(w.w, uint64(idx), uint64(len(s.Fields))); err != nil {
			return wrapOrdinalErr(err)
		}
		ancestors = append(ancestors, s)
		return encodeValue(w, s.Fields[idx].Type, chosen.Value, ancestors)

	default:
		return fmt.Errorf("%w: unknown schema kind %v", ErrInvalidSchema, s.Kind)
	}
}

func resolveRecurse(level int, ancestors []*schema.Schema) (*schema.Schema, error) {
	if level < 1 || level > len(ancestors) {
		return nil, fmt.Errorf("%w: Recurse(%d) has no ancestor at that depth", ErrInvalidSchema, level)
	}
	return ancestors[len(ancestors)-level], nil
}

func wrapOrdinalErr(err error) error {
	if errors.Is(err, ordinal.ErrOutOfRange) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return wrapReadErr(err)
}
