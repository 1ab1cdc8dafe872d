package schema

// Meta is the fixed, self-referential schema that describes every Schema
// node: a 10-variant Enum whose variants are exactly the node shapes below,
// in the exact order fixed by the format (the variant order is the ordinal
// mapping, so it is never reordered). Encoding a *Schema as a Value against
// Meta (see codec.EncodeSchema) lets schema transmission reuse the ordinary
// value codec instead of a bespoke serializer.
var Meta = buildMeta()

// MetaScalarOrder is the fixed order of the inner Scalar enum (variant 0 of
// Meta), shared with the codec package's meta bridge.
var MetaScalarOrder = []Kind{
	KindU8, KindU16, KindU32, KindU64, KindU128,
	KindI8, KindI16, KindI32, KindI64, KindI128,
	KindF32, KindF64, KindChar, KindBool,
}

func buildMeta() *Schema {
	scalarVariants := make([]Field, len(MetaScalarOrder))
	for i, k := range MetaScalarOrder {
		scalarVariants[i] = NewField(k.String(), Unit())
	}
	scalarKind := EnumOf(scalarVariants...)

	// fieldPair = Struct{ name: Str, inner: Recurse(3) }, used inside the
	// var-length Seq that represents Struct's and Enum's field lists.
	// Ancestors at the Recurse node are [node, Seq, fieldPair]; level 3
	// walks back past fieldPair and the wrapping Seq to node itself.
	fieldPair := StructOf(
		NewField("name", Str()),
		NewField("inner", RecurseTo(3)),
	)

	seqShape := StructOf(
		NewField("len", OptionOf(U64())),
		NewField("inner", RecurseTo(2)),
	)

	return EnumOf(
		NewField("Scalar", scalarKind),
		NewField("Str", Unit()),
		NewField("Bytes", Unit()),
		NewField("Unit", Unit()),
		NewField("Option", RecurseTo(1)),
		NewField("Seq", seqShape),
		NewField("Tuple", SeqOf(RecurseTo(2))),
		NewField("Struct", SeqOf(fieldPair)),
		NewField("Enum", SeqOf(fieldPair)),
		NewField("Recurse", U64()),
	)
}
