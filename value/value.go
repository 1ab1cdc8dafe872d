// Package value implements the tree-shaped value model: in-memory data that
// conforms to a schema.Schema. Like schema.Schema, Value is a discriminated
// struct rather than an interface hierarchy, keeping construction and
// pattern-matching symmetric with the schema package.
package value

import (
	"math/big"

	"github.com/binschema/binschema/schema"
)

// Kind reuses the schema package's discriminant: a value's kind always
// matches the schema.Kind of the node it conforms to.
type Kind = schema.Kind

// Value is a tagged tree node holding data for exactly one schema.Kind.
type Value struct {
	Kind Kind

	Bool bool
	Int  *big.Int // all integer kinds, signed and unsigned alike
	F32  float32
	F64  float64
	Str  string
	Bytes []byte

	// Option: nil Elem means None, non-nil means Some.
	// Seq, Tuple: Elems holds the ordered members.
	Elem  *Value
	Elems []*Value

	// Struct: Fields holds every member, in schema order.
	// Enum: Fields holds exactly one entry, the chosen variant.
	Fields []FieldValue
}

// FieldValue pairs a Struct member or the chosen Enum variant with its name.
type FieldValue struct {
	Name  string
	Value *Value
}

func Bool(b bool) *Value { return &Value{Kind: schema.KindBool, Bool: b} }

func intVal(k Kind, n int64) *Value {
	return &Value{Kind: k, Int: big.NewInt(n)}
}

func U8(n uint8) *Value   { return intVal(schema.KindU8, int64(n)) }
func U16(n uint16) *Value { return intVal(schema.KindU16, int64(n)) }
func U32(n uint32) *Value { return intVal(schema.KindU32, int64(n)) }
func U64(n uint64) *Value { return &Value{Kind: schema.KindU64, Int: new(big.Int).SetUint64(n)} }
func U128(n *big.Int) *Value { return &Value{Kind: schema.KindU128, Int: n} }

func I8(n int8) *Value   { return intVal(schema.KindI8, int64(n)) }
func I16(n int16) *Value { return intVal(schema.KindI16, int64(n)) }
func I32(n int32) *Value { return intVal(schema.KindI32, int64(n)) }
func I64(n int64) *Value { return intVal(schema.KindI64, n) }
func I128(n *big.Int) *Value { return &Value{Kind: schema.KindI128, Int: n} }

func F32(f float32) *Value { return &Value{Kind: schema.KindF32, F32: f} }
func F64(f float64) *Value { return &Value{Kind: schema.KindF64, F64: f} }

func Char(r rune) *Value    { return &Value{Kind: schema.KindChar, Int: big.NewInt(int64(r))} }

func Str(s string) *Value   { return &Value{Kind: schema.KindStr, Str: s} }
func Bytes(b []byte) *Value { return &Value{Kind: schema.KindBytes, Bytes: b} }
func Unit() *Value          { return &Value{Kind: schema.KindUnit} }

// None builds the empty Option value.
func None() *Value { return &Value{Kind: schema.KindOption} }

// Some builds a populated Option value.
func Some(v *Value) *Value { return &Value{Kind: schema.KindOption, Elem: v} }

// SeqOf builds a Seq value from its ordered elements.
func SeqOf(elems ...*Value) *Value { return &Value{Kind: schema.KindSeq, Elems: elems} }

// TupleOf builds a Tuple value from its ordered members.
func TupleOf(elems ...*Value) *Value { return &Value{Kind: schema.KindTuple, Elems: elems} }

// StructOf builds a Struct value from its named members.
func StructOf(fields ...FieldValue) *Value { return &Value{Kind: schema.KindStruct, Fields: fields} }

// EnumOf builds an Enum value holding the chosen variant.
func EnumOf(variant string, v *Value) *Value {
	return &Value{Kind: schema.KindEnum, Fields: []FieldValue{{Name: variant, Value: v}}}
}

// F names a Struct member or the chosen Enum variant by name.
func F(name string, v *Value) FieldValue { return FieldValue{Name: name, Value: v} }

// IsNone reports whether an Option value holds nothing.
func (v *Value) IsNone() bool { return v.Kind == schema.KindOption && v.Elem == nil }
