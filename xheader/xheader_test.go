package xheader

import (
	"testing"

	"github.com/mseedio/mseed/errs"
	"github.com/stretchr/testify/require"
)

func TestMarshalMinimalJSON(t *testing.T) {
	tree, err := FromJSON([]byte(`{"FDSN":{"Time":{"Quality":0}}}`))
	require.NoError(t, err)

	out, err := tree.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"FDSN":{"Time":{"Quality":0}}}`, string(out))
}

func TestScenarioFromSpec(t *testing.T) {
	tree, err := FromJSON([]byte(`{"FDSN":{"Time":{"Quality":0}}}`))
	require.NoError(t, err)

	data := Object()
	data.SetKey("key", String("val"))
	data.SetKey("keyb", Int(3))

	require.NoError(t, tree.Set("/data", data))

	v, err := tree.Get("/data/keyb")
	require.NoError(t, err)
	i, isInt := v.Int64()
	require.True(t, isInt)
	require.Equal(t, int64(3), i)

	require.NoError(t, tree.Set("/data/keyb", Int(42)))

	got, err := tree.Get("/data")
	require.NoError(t, err)
	keyb, ok := got.Field("keyb")
	require.True(t, ok)
	n, _ := keyb.Int64()
	require.Equal(t, int64(42), n)
}

func TestSetGetDeleteInvariant(t *testing.T) {
	tree := NewTree()

	require.NoError(t, tree.Set("/a/b/c", String("hello")))

	v, err := tree.Get("/a/b/c")
	require.NoError(t, err)
	require.Equal(t, "hello", v.Str())

	require.NoError(t, tree.Delete("/a/b/c"))

	_, err = tree.Get("/a/b/c")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPathConflict(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Set("/a", String("leaf")))

	err := tree.Set("/a/b", Int(1))
	require.Error(t, err)
}

func TestGetAllReportsMissingWithoutAborting(t *testing.T) {
	t1 := NewTree()
	require.NoError(t, t1.Set("/q", Int(1)))
	t2 := NewTree()
	t3 := NewTree()
	require.NoError(t, t3.Set("/q", Int(3)))

	results := GetAll([]*Tree{t1, t2, t3}, "/q")
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	require.NoError(t, results[2].Err)
}

func TestEmptyTreeIsEmptyObject(t *testing.T) {
	tree := NewTree()
	require.True(t, tree.IsEmpty())

	out, err := tree.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, "{}", string(out))
}

func TestParseJSONEmptyInput(t *testing.T) {
	v, err := ParseJSON(nil)
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind())
}
