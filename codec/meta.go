package codec

import (
	"fmt"
	"io"

	"github.com/binschema/binschema/schema"
	"github.com/binschema/binschema/value"
)

// EncodeSchema writes s to dst using schema.Meta as the driving schema: a
// schema is a value of the meta-schema, so this simply bridges *schema.Schema
// to a value.Value and calls Encode.
func EncodeSchema(dst io.Writer, s *schema.Schema) error {
	return Encode(dst, schema.Meta, schemaToMetaValue(s))
}

// DecodeSchema reads a schema from src using schema.Meta, the inverse of
// EncodeSchema.
func DecodeSchema(src io.Reader) (*schema.Schema, error) {
	v, err := Decode(src, schema.Meta)
	if err != nil {
		return nil, err
	}
	return metaValueToSchema(v)
}

func scalarIndex(k schema.Kind) (int, bool) {
	for i, c := range schema.MetaScalarOrder {
		if c == k {
			return i, true
		}
	}
	return 0, false
}

func schemaToMetaValue(s *schema.Schema) *value.Value {
	if _, ok := scalarIndex(s.Kind); ok {
		return value.EnumOf("Scalar", value.EnumOf(s.Kind.String(), value.Unit()))
	}

	switch s.Kind {
	case schema.KindStr:
		return value.EnumOf("Str", value.Unit())
	case schema.KindBytes:
		return value.EnumOf("Bytes", value.Unit())
	case schema.KindUnit:
		return value.EnumOf("Unit", value.Unit())
	case schema.KindOption:
		return value.EnumOf("Option", schemaToMetaValue(s.Elem))
	case schema.KindSeq:
		lenVal := value.None()
		if s.Len != nil {
			lenVal = value.Some(value.U64(*s.Len))
		}
		shape := value.StructOf(
			value.F("len", lenVal),
			value.F("inner", schemaToMetaValue(s.Elem)),
		)
		return value.EnumOf("Seq", shape)
	case schema.KindTuple:
		elems := make([]*value.Value, len(s.Elems))
		for i, e := range s.Elems {
			elems[i] = schemaToMetaValue(e)
		}
		return value.EnumOf("Tuple", value.SeqOf(elems...))
	case schema.KindStruct:
		return value.EnumOf("Struct", fieldPairsToMetaValue(s.Fields))
	case schema.KindEnum:
		return value.EnumOf("Enum", fieldPairsToMetaValue(s.Fields))
	case schema.KindRecurse:
		return value.EnumOf("Recurse", value.U64(uint64(s.Level)))
	default:
		return value.Unit()
	}
}

func fieldPairsToMetaValue(fields []schema.Field) *value.Value {
	pairs := make([]*value.Value, len(fields))
	for i, f := range fields {
		pairs[i] = value.StructOf(
			value.F("name", value.Str(f.Name)),
			value.F("inner", schemaToMetaValue(f.Type)),
		)
	}
	return value.SeqOf(pairs...)
}

func metaValueToSchema(v *value.Value) (*schema.Schema, error) {
	if v.Kind != schema.KindEnum || len(v.Fields) != 1 {
		return nil, fmt.Errorf("%w: malformed schema value", ErrInvalidSchema)
	}
	variant := v.Fields[0]
	switch variant.Name {
	case "Scalar":
		inner := variant.Value
		if inner.Kind != schema.KindEnum || len(inner.Fields) != 1 {
			return nil, fmt.Errorf("%w: malformed Scalar value", ErrInvalidSchema)
		}
		for _, k := range schema.MetaScalarOrder {
			if k.String() == inner.Fields[0].Name {
				return &schema.Schema{Kind: k}, nil
			}
		}
		return nil, fmt.Errorf("%w: unknown scalar variant %q", ErrInvalidSchema, inner.Fields[0].Name)
	case "Str":
		return schema.Str(), nil
	case "Bytes":
		return schema.Bytes(), nil
	case "Unit":
		return schema.Unit(), nil
	case "Option":
		elem, err := metaValueToSchema(variant.Value)
		if err != nil {
			return nil, err
		}
		return schema.OptionOf(elem), nil
	case "Seq":
		shape := variant.Value
		if shape.Kind != schema.KindStruct || len(shape.Fields) != 2 {
			return nil, fmt.Errorf("%w: malformed Seq value", ErrInvalidSchema)
		}
		elem, err := metaValueToSchema(shape.Fields[1].Value)
		if err != nil {
			return nil, err
		}
		lenField := shape.Fields[0].Value
		if lenField.IsNone() {
			return schema.SeqOf(elem), nil
		}
		n := lenField.Elem.Int.Uint64()
		return schema.FixedSeqOf(n, elem), nil
	case "Tuple":
		elems := make([]*schema.Schema, len(variant.Value.Elems))
		for i, ev := range variant.Value.Elems {
			s, err := metaValueToSchema(ev)
			if err != nil {
				return nil, err
			}
			elems[i] = s
		}
		return schema.TupleOf(elems...), nil
	case "Struct":
		fields, err := metaValueToFieldPairs(variant.Value)
		if err != nil {
			return nil, err
		}
		return schema.StructOf(fields...), nil
	case "Enum":
		fields, err := metaValueToFieldPairs(variant.Value)
		if err != nil {
			return nil, err
		}
		return schema.EnumOf(fields...), nil
	case "Recurse":
		return schema.RecurseTo(int(variant.Value.Int.Int64())), nil
	default:
		return nil, fmt.Errorf("%w: unknown meta variant %q", ErrInvalidSchema, variant.Name)
	}
}

func metaValueToFieldPairs(v *value.Value) ([]schema.Field, error) {
	if v.Kind != schema.KindSeq {
		return nil, fmt.Errorf("%w: malformed field-pair list", ErrInvalidSchema)
	}
	fields := make([]schema.Field, len(v.Elems))
	for i, pair := range v.Elems {
		if pair.Kind != schema.KindStruct || len(pair.Fields) != 2 {
			return nil, fmt.Errorf("%w: malformed field pair", ErrInvalidSchema)
		}
		inner, err := metaValueToSchema(pair.Fields[1].Value)
		if err != nil {
			return nil, err
		}
		fields[i] = schema.NewField(pair.Fields[0].Value.Str, inner)
	}
	return fields, nil
}
