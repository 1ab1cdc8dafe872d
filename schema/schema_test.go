package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsSimpleShapes(t *testing.T) {
	require.NoError(t, U32().Validate())
	require.NoError(t, OptionOf(Str()).Validate())
	require.NoError(t, SeqOf(U8()).Validate())
	require.NoError(t, TupleOf(U8(), Bool()).Validate())
	require.NoError(t, StructOf(NewField("x", U32()), NewField("y", U32())).Validate())
	require.NoError(t, EnumOf(NewField("a", Unit()), NewField("b", U32())).Validate())
}

func TestValidateAcceptsZeroVariantEnumAsSchema(t *testing.T) {
	// A zero-variant enum is a legal schema with an empty value set; it is
	// only an error to encode a value under one (see codec.Encode).
	require.NoError(t, EnumOf().Validate())
	require.NoError(t, (&Schema{Kind: KindStruct}).Validate())
	require.NoError(t, (&Schema{Kind: KindTuple}).Validate())

	// A zero-variant enum nested in a branch no value ever selects does not
	// poison the rest of the tree.
	s := EnumOf(
		NewField("A", Unit()),
		NewField("Never", EnumOf()),
	)
	require.NoError(t, s.Validate())
}

func TestValidateLinkedList(t *testing.T) {
	// list = Struct{ head: U32, tail: Option<Recurse(2)> }
	list := StructOf(
		NewField("head", U32()),
		NewField("tail", OptionOf(RecurseTo(2))),
	)
	require.NoError(t, list.Validate())
}

func TestValidateRejectsOutOfRangeRecurse(t *testing.T) {
	bad := StructOf(NewField("x", RecurseTo(2)))
	require.Error(t, bad.Validate())
}

func TestValidateRejectsRecurseAtTopLevel(t *testing.T) {
	require.Error(t, RecurseTo(1).Validate())
}

func TestMetaSchemaIsValid(t *testing.T) {
	require.NoError(t, Meta.Validate())
	require.Equal(t, KindEnum, Meta.Kind)
	require.Len(t, Meta.Fields, 10)
}
