package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/binschema/binschema/schema"
	"github.com/binschema/binschema/value"
)

// valueFromJSON builds a value.Value conforming to s from a generic JSON
// document, the CLI's stand-in for a host-language value representation.
func valueFromJSON(s *schema.Schema, raw any) (*value.Value, error) {
	switch s.Kind {
	case schema.KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return value.Bool(b), nil

	case schema.KindU8, schema.KindU16, schema.KindU32, schema.KindU64, schema.KindU128,
		schema.KindI8, schema.KindI16, schema.KindI32, schema.KindI64, schema.KindI128:
		n, err := jsonNumberToBigInt(raw)
		if err != nil {
			return nil, err
		}
		return &value.Value{Kind: s.Kind, Int: n}, nil

	case schema.KindF32:
		f, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", raw)
		}
		return value.F32(float32(f)), nil

	case schema.KindF64:
		f, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", raw)
		}
		return value.F64(f), nil

	case schema.KindChar:
		str, ok := raw.(string)
		if !ok || len([]rune(str)) != 1 {
			return nil, fmt.Errorf("expected single-character string")
		}
		return value.Char([]rune(str)[0]), nil

	case schema.KindStr:
		str, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return value.Str(str), nil

	case schema.KindBytes:
		str, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected base64 string for Bytes, got %T", raw)
		}
		b, err := base64.StdEncoding.DecodeString(str)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 Bytes: %w", err)
		}
		return value.Bytes(b), nil

	case schema.KindUnit:
		return value.Unit(), nil

	case schema.KindOption:
		if raw == nil {
			return value.None(), nil
		}
		inner, err := valueFromJSON(s.Elem, raw)
		if err != nil {
			return nil, err
		}
		return value.Some(inner), nil

	case schema.KindSeq, schema.KindTuple:
		arr, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("expected array, got %T", raw)
		}
		elems := make([]*value.Value, len(arr))
		for i, item := range arr {
			elemSchema := s.Elem
			if s.Kind == schema.KindTuple {
				if i >= len(s.Elems) {
					return nil, fmt.Errorf("tuple has %d elements, got %d", len(s.Elems), len(arr))
				}
				elemSchema = s.Elems[i]
			}
			ev, err := valueFromJSON(elemSchema, item)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return &value.Value{Kind: s.Kind, Elems: elems}, nil

	case schema.KindStruct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected object, got %T", raw)
		}
		fields := make([]value.FieldValue, len(s.Fields))
		for i, f := range s.Fields {
			fv, err := valueFromJSON(f.Type, obj[f.Name])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			fields[i] = value.F(f.Name, fv)
		}
		return &value.Value{Kind: schema.KindStruct, Fields: fields}, nil

	case schema.KindEnum:
		obj, ok := raw.(map[string]any)
		if !ok || len(obj) != 1 {
			return nil, fmt.Errorf("expected single-key object selecting an enum variant")
		}
		for name, inner := range obj {
			for _, f := range s.Fields {
				if f.Name == name {
					iv, err := valueFromJSON(f.Type, inner)
					if err != nil {
						return nil, err
					}
					return value.EnumOf(name, iv), nil
				}
			}
			return nil, fmt.Errorf("unknown variant %q", name)
		}
		return nil, fmt.Errorf("empty enum selector")

	default:
		return nil, fmt.Errorf("unsupported schema kind %v", s.Kind)
	}
}

func jsonNumberToBigInt(raw any) (*big.Int, error) {
	switch n := raw.(type) {
	case float64:
		return big.NewInt(int64(n)), nil
	case json.Number:
		bi, ok := new(big.Int).SetString(n.String(), 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer literal %q", n.String())
		}
		return bi, nil
	case string:
		bi, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer literal %q", n)
		}
		return bi, nil
	default:
		return nil, fmt.Errorf("expected number, got %T", raw)
	}
}

// valueToJSON is the inverse of valueFromJSON, used by the decode command to
// print a decoded value.
func valueToJSON(v *value.Value) any {
	switch v.Kind {
	case schema.KindBool:
		return v.Bool
	case schema.KindU8, schema.KindU16, schema.KindU32, schema.KindU64, schema.KindU128,
		schema.KindI8, schema.KindI16, schema.KindI32, schema.KindI64, schema.KindI128:
		return v.Int.String()
	case schema.KindF32:
		return v.F32
	case schema.KindF64:
		return v.F64
	case schema.KindChar:
		return string(rune(v.Int.Int64()))
	case schema.KindStr:
		return v.Str
	case schema.KindBytes:
		return base64.StdEncoding.EncodeToString(v.Bytes)
	case schema.KindUnit:
		return map[string]any{}
	case schema.KindOption:
		if v.Elem == nil {
			return nil
		}
		return valueToJSON(v.Elem)
	case schema.KindSeq, schema.KindTuple:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = valueToJSON(e)
		}
		return out
	case schema.KindStruct:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Name] = valueToJSON(f.Value)
		}
		return out
	case schema.KindEnum:
		f := v.Fields[0]
		return map[string]any{f.Name: valueToJSON(f.Value)}
	default:
		return nil
	}
}
