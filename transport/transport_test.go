package transport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binschema/binschema/schema"
)

func TestRegistryAssignsSequentialIDs(t *testing.T) {
	r := NewRegistry()

	id1, err := r.Register("Greet", schema.StructOf(schema.NewField("name", schema.Str())), nil)
	require.NoError(t, err)
	require.Equal(t, pingID+1, id1)

	id2, err := r.Register("Bye", schema.Unit(), nil)
	require.NoError(t, err)
	require.Equal(t, id1+1, id2)

	d, ok := r.Lookup(id1)
	require.True(t, ok)
	require.Equal(t, "Greet", d.Name)
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("Greet", schema.Unit(), nil)
	require.NoError(t, err)

	_, err = r.Register("Greet", schema.Unit(), nil)
	require.ErrorIs(t, err, ErrDuplicateMessage)
}

func TestRegistryPreRegistersHandshake(t *testing.T) {
	r := NewRegistry()
	hello, ok := r.Lookup(helloID)
	require.True(t, ok)
	require.Equal(t, "Hello", hello.Name)

	ping, ok := r.Lookup(pingID)
	require.True(t, ok)
	require.Equal(t, "Ping", ping.Name)
}

func TestDescriptorsExcludeInternal(t *testing.T) {
	r := NewRegistry()
	_, err := r.Register("Greet", schema.Unit(), nil)
	require.NoError(t, err)

	descs := r.Descriptors()
	require.Len(t, descs, 1)
	require.Equal(t, "Greet", descs[0].Name)
}

func TestCatalogSchemaHandlesEmptyAndNonEmpty(t *testing.T) {
	require.Equal(t, schema.KindUnit, catalogSchema(nil).Kind)

	s := catalogSchema([]*schema.Schema{schema.U8(), schema.Bool()})
	require.Equal(t, schema.KindTuple, s.Kind)
	require.Len(t, s.Elems, 2)
}
