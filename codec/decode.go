package codec

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/binschema/binschema/ordinal"
	"github.com/binschema/binschema/schema"
	"github.com/binschema/binschema/value"
)

// Decode reads a value from src according to s.
func Decode(src io.Reader, s *schema.Schema) (*value.Value, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	r := NewReader(src)
	return decodeValue(r, s, nil)
}

func decodeValue(r *Reader, s *schema.Schema, ancestors []*schema.Schema) (*value.Value, error) {
	if s.Kind == schema.KindRecurse {
		resolved, err := resolveRecurse(s.Level, ancestors)
		if err != nil {
			return nil, err
		}
		return decodeValue(r, resolved, ancestors)
	}

	switch s.Kind {
	case schema.KindBool:
		b, err := r.readTrusted(1)
		if err != nil {
			return nil, err
		}
		switch b[0] {
		case 0x00:
			return value.Bool(false), nil
		case 0x01:
			return value.Bool(true), nil
		default:
			return nil, fmt.Errorf("%w: Bool byte %#x", ErrOutOfRange, b[0])
		}

	case schema.KindU8, schema.KindU16, schema.KindU32, schema.KindU64, schema.KindU128:
		n, err := decodeUnsignedScalar(r, s.Kind)
		if err != nil {
			return nil, err
		}
		if !varintFitsUnsigned(n, widthBits(s.Kind)) {
			return nil, fmt.Errorf("%w: %s value exceeds declared width", ErrOutOfRange, s.Kind)
		}
		return &value.Value{Kind: s.Kind, Int: n}, nil

	case schema.KindI8, schema.KindI16, schema.KindI32, schema.KindI64, schema.KindI128:
		n, err := decodeSignedScalar(r, s.Kind)
		if err != nil {
			return nil, err
		}
		if !varintFitsSigned(n, widthBits(s.Kind)) {
			return nil, fmt.Errorf("%w: %s value exceeds declared width", ErrOutOfRange, s.Kind)
		}
		return &value.Value{Kind: s.Kind, Int: n}, nil

	case schema.KindF32:
		f, err := r.readF32()
		if err != nil {
			return nil, err
		}
		return value.F32(f), nil

	case schema.KindF64:
		f, err := r.readF64()
		if err != nil {
			return nil, err
		}
		return value.F64(f), nil

	case schema.KindChar:
		n, err := r.readVarintUint()
		if err != nil {
			return nil, err
		}
		if !isMaxUnicodeScalar(n) {
			return nil, fmt.Errorf("%w: %s is not a valid unicode scalar", ErrInvalidChar, n)
		}
		return &value.Value{Kind: schema.KindChar, Int: n}, nil

	case schema.KindStr:
		n, err := r.readVarintUint()
		if err != nil {
			return nil, err
		}
		b, err := r.readUntrusted(n.Uint64())
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("%w: string is not valid UTF-8", ErrInvalidUTF8)
		}
		return value.Str(string(b)), nil

	case schema.KindBytes:
		n, err := r.readVarintUint()
		if err != nil {
			return nil, err
		}
		b, err := r.readUntrusted(n.Uint64())
		if err != nil {
			return nil, err
		}
		return value.Bytes(b), nil

	case schema.KindUnit:
		return value.Unit(), nil

	case schema.KindOption:
		tag, err := r.readTrusted(1)
		if err != nil {
			return nil, err
		}
		ancestors = append(ancestors, s)
		switch tag[0] {
		case 0x00:
			return value.None(), nil
		case 0x01:
			inner, err := decodeValue(r, s.Elem, ancestors)
			if err != nil {
				return nil, err
			}
			return value.Some(inner), nil
		default:
			return nil, fmt.Errorf("%w: Option tag %#x", ErrOutOfRange, tag[0])
		}

	case schema.KindSeq:
		var count uint64
		if s.Len != nil {
			count = *s.Len
		} else {
			n, err := r.readVarintUint()
			if err != nil {
				return nil, err
			}
			count = n.Uint64()
		}
		ancestors = append(ancestors, s)
		var elems []*value.Value
		if s.Len != nil {
			elems = make([]*value.Value, 0, count)
		}
		for i := uint64(0); i < count; i++ {
			elem, err := decodeValue(r, s.Elem, ancestors)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return &value.Value{Kind: schema.KindSeq, Elems: elems}, nil

	case schema.KindTuple:
		ancestors = append(ancestors, s)
		elems := make([]*value.Value, len(s.Elems))
		for i, elemType := range s.Elems {
			elem, err := decodeValue(r, elemType, ancestors)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return &value.Value{Kind: schema.KindTuple, Elems: elems}, nil

	case schema.KindStruct:
		ancestors = append(ancestors, s)
		fields := make([]value.FieldValue, len(s.Fields))
		for i, f := range s.Fields {
			fv, err := decodeValue(r, f.Type, ancestors)
			if err != nil {
				return nil, err
			}
			fields[i] = value.F(f.Name, fv)
		}
		return &value.Value{Kind: schema.KindStruct, Fields: fields}, nil

	case schema.KindEnum:
		if len(s.Fields) == 0 {
			return nil, fmt.Errorf("%w: cannot decode a value under a zero-variant enum", ErrInvalidSchema)
		}
		idx, err := ordinal.Decode(r.r, uint64(len(s.Fields)))
		if err != nil {
			return nil, wrapOrdinalErr(err)
		}
		ancestors = append(ancestors, s)
		inner, err := decodeValue(r, s.Fields[idx].Type, ancestors)
		if err != nil {
			return nil, err
		}
		return value.EnumOf(s.Fields[idx].Name, inner), nil

	default:
		return nil, fmt.Errorf("%w: unknown schema kind %v", ErrInvalidSchema, s.Kind)
	}
}
