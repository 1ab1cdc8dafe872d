// Package schema implements the tree-shaped schema model: the type
// descriptors that values conform to and that the codec package walks to
// drive encoding and decoding. A schema is a tagged tree built from the
// scalar and compound constructors below; Recurse nodes close cycles back to
// an ancestor in the tree instead of the tree containing a Go-level cycle.
package schema

import "fmt"

// Kind discriminates the variant a Schema node holds.
type Kind int

const (
	KindBool Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindF32
	KindF64
	KindChar
	KindStr
	KindBytes
	KindUnit
	KindOption
	KindSeq
	KindTuple
	KindStruct
	KindEnum
	KindRecurse
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindU8:
		return "U8"
	case KindU16:
		return "U16"
	case KindU32:
		return "U32"
	case KindU64:
		return "U64"
	case KindU128:
		return "U128"
	case KindI8:
		return "I8"
	case KindI16:
		return "I16"
	case KindI32:
		return "I32"
	case KindI64:
		return "I64"
	case KindI128:
		return "I128"
	case KindF32:
		return "F32"
	case KindF64:
		return "F64"
	case KindChar:
		return "Char"
	case KindStr:
		return "Str"
	case KindBytes:
		return "Bytes"
	case KindUnit:
		return "Unit"
	case KindOption:
		return "Option"
	case KindSeq:
		return "Seq"
	case KindTuple:
		return "Tuple"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindRecurse:
		return "Recurse"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsInteger reports whether k is one of the fixed-width or varint integer kinds.
func (k Kind) IsInteger() bool {
	switch k {
	case KindU8, KindU16, KindU32, KindU64, KindU128,
		KindI8, KindI16, KindI32, KindI64, KindI128:
		return true
	default:
		return false
	}
}

// Field names a member of a Struct, or a variant of an Enum.
type Field struct {
	Name string
	Type *Schema
}

// NewField builds a named Struct member or Enum variant.
func NewField(name string, t *Schema) Field {
	return Field{Name: name, Type: t}
}

// Schema is a tagged tree node. Only the fields relevant to Kind are
// populated; the rest are left at their zero value.
type Schema struct {
	Kind Kind

	// Option, Seq: the element type.
	Elem *Schema

	// Seq: nil means variable length (a var-len uint count precedes the
	// elements); non-nil fixes the element count and omits the count
	// from the wire.
	Len *uint64

	// Tuple: positional members.
	Elems []*Schema

	// Struct, Enum: named members.
	Fields []Field

	// Recurse: how many compound ancestors to walk up, 1 meaning the
	// immediate parent.
	Level int
}

func scalar(k Kind) *Schema { return &Schema{Kind: k} }

func Bool() *Schema  { return scalar(KindBool) }
func U8() *Schema    { return scalar(KindU8) }
func U16() *Schema   { return scalar(KindU16) }
func U32() *Schema   { return scalar(KindU32) }
func U64() *Schema   { return scalar(KindU64) }
func U128() *Schema  { return scalar(KindU128) }
func I8() *Schema    { return scalar(KindI8) }
func I16() *Schema   { return scalar(KindI16) }
func I32() *Schema   { return scalar(KindI32) }
func I64() *Schema   { return scalar(KindI64) }
func I128() *Schema  { return scalar(KindI128) }
func F32() *Schema   { return scalar(KindF32) }
func F64() *Schema   { return scalar(KindF64) }
func Char() *Schema  { return scalar(KindChar) }
func Str() *Schema   { return scalar(KindStr) }
func Bytes() *Schema { return scalar(KindBytes) }
func Unit() *Schema  { return scalar(KindUnit) }

// OptionOf builds an Option around elem.
func OptionOf(elem *Schema) *Schema { return &Schema{Kind: KindOption, Elem: elem} }

// SeqOf builds a variable-length Seq of elem: a var-len uint element count
// precedes the concatenated encodings.
func SeqOf(elem *Schema) *Schema { return &Schema{Kind: KindSeq, Elem: elem} }

// FixedSeqOf builds a Seq of exactly n elements of elem, with no count on
// the wire.
func FixedSeqOf(n uint64, elem *Schema) *Schema {
	return &Schema{Kind: KindSeq, Elem: elem, Len: &n}
}

// TupleOf builds a fixed-arity, heterogeneous Tuple.
func TupleOf(elems ...*Schema) *Schema { return &Schema{Kind: KindTuple, Elems: elems} }

// StructOf builds a Struct from its ordered fields.
func StructOf(fields ...Field) *Schema { return &Schema{Kind: KindStruct, Fields: fields} }

// EnumOf builds an Enum from its ordered variants. A zero-variant Enum is a
// legal schema with an empty value set: no value can ever select into it.
func EnumOf(variants ...Field) *Schema { return &Schema{Kind: KindEnum, Fields: variants} }

// RecurseTo builds a back-reference to the level-th enclosing compound
// ancestor (1 is the immediate parent).
func RecurseTo(level int) *Schema { return &Schema{Kind: KindRecurse, Level: level} }

// Validate checks the one structural invariant from the data model: every
// Recurse resolves to an ancestor within the current nesting depth. A
// zero-variant Enum (or a zero-field Struct or zero-element Tuple) is a
// legal schema in its own right — it just has an empty or degenerate value
// set; rejecting an attempt to encode a value under a zero-variant Enum
// happens at the point a value actually selects into one, in the codec
// package, not here.
func (s *Schema) Validate() error {
	return validate(s, nil)
}

func validate(s *Schema, ancestors []*Schema) error {
	if s == nil {
		return fmt.Errorf("schema: nil node")
	}
	switch s.Kind {
	case KindOption, KindSeq:
		if s.Elem == nil {
			return fmt.Errorf("schema: %s missing element type", s.Kind)
		}
		return validate(s.Elem, append(ancestors, s))
	case KindTuple:
		for i, e := range s.Elems {
			if err := validate(e, append(ancestors, s)); err != nil {
				return fmt.Errorf("schema: Tuple element %d: %w", i, err)
			}
		}
		return nil
	case KindStruct:
		for _, f := range s.Fields {
			if err := validate(f.Type, append(ancestors, s)); err != nil {
				return fmt.Errorf("schema: Struct field %q: %w", f.Name, err)
			}
		}
		return nil
	case KindEnum:
		for _, f := range s.Fields {
			if err := validate(f.Type, append(ancestors, s)); err != nil {
				return fmt.Errorf("schema: Enum variant %q: %w", f.Name, err)
			}
		}
		return nil
	case KindRecurse:
		if s.Level < 1 || s.Level > len(ancestors) {
			return fmt.Errorf("schema: Recurse(%d) has no ancestor at that depth", s.Level)
		}
		return nil
	default:
		return nil
	}
}
