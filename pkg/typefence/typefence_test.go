package typefence_test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typefence/typefence/pkg/typefence"
)

func TestCheckBasics(t *testing.T) {
	t.Parallel()

	assert.NoError(t, typefence.Check(5, typefence.Int()))
	assert.NoError(t, typefence.Check("x", typefence.Str()))
	assert.NoError(t, typefence.Check(nil, typefence.None()))

	err := typefence.Check("x", typefence.Int())
	require.Error(t, err)
	var tce *typefence.TypeCheckError
	require.ErrorAs(t, err, &tce)
	assert.Equal(t, "is not an instance of int", tce.Error())
}

func TestCheckStructuredValue(t *testing.T) {
	t.Parallel()

	desc := typefence.DictOf(typefence.Str(), typefence.ListOf(typefence.Int()))

	good := map[string]any{"a": []any{1, 2}}
	require.NoError(t, typefence.Check(good, desc), spew.Sdump(good))

	bad := map[string]any{"x": []any{1, 2, "no"}}
	err := typefence.Check(bad, desc)
	require.Error(t, err, spew.Sdump(bad))
	assert.Equal(t, "value of key 'x' -> item 2: is not an instance of int", err.Error())
}

func TestCheckRecordAndUnion(t *testing.T) {
	t.Parallel()

	movie := typefence.RecordOf(
		typefence.RecordField{Name: "title", Desc: typefence.Str()},
		typefence.RecordField{Name: "year", Desc: typefence.NotRequired(typefence.Int())},
	)
	desc := typefence.UnionOf(movie, typefence.None())

	assert.NoError(t, typefence.Check(map[string]any{"title": "Alien"}, desc))
	assert.NoError(t, typefence.Check(nil, desc))

	err := typefence.Check(42, desc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not match any element in the union:")
	assert.Contains(t, err.Error(), "is not a dict")
	assert.Contains(t, err.Error(), "is not nil")
}

func TestCheckWithEnv(t *testing.T) {
	t.Parallel()

	env := typefence.MapEnv{"Ints": typefence.ListOf(typefence.Int())}

	assert.NoError(t, typefence.Check([]int{1}, typefence.RefTo("Ints"), typefence.WithEnv(env)))

	cfg := typefence.DefaultConfig()
	cfg.ForwardRefPolicy = typefence.ForwardRefError
	err := typefence.Check(1, typefence.RefTo("Nope"),
		typefence.WithEnv(env), typefence.WithConfig(cfg))
	var re *typefence.ResolutionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Nope", re.Name)
}

func TestCheckWithSelfType(t *testing.T) {
	t.Parallel()

	type session struct{}
	self := reflect.TypeFor[session]()

	assert.NoError(t, typefence.Check(session{}, typefence.Self(), typefence.WithSelfType(self)))
	assert.Error(t, typefence.Check("x", typefence.Self(), typefence.WithSelfType(self)))
}

func TestIsolatedRegistry(t *testing.T) {
	t.Parallel()

	r := typefence.NewRegistry()
	_, err := r.RegisterLookup("veto", func(origin typefence.Origin, params, metadata []any) typefence.Checker {
		if origin != typefence.OriginList {
			return nil
		}
		return func(value any, origin typefence.Origin, params []any, ctx *typefence.CheckContext) error {
			return typefence.NewTypeCheckError("lists are forbidden here")
		}
	})
	require.NoError(t, err)

	err = r.Check([]int{1}, typefence.ListOf(typefence.Int()))
	require.Error(t, err)
	assert.Equal(t, "lists are forbidden here", err.Error())

	// The shared default registry is unaffected.
	assert.NoError(t, typefence.Check([]int{1}, typefence.ListOf(typefence.Int())))

	// Once serving, the isolated registry refuses new providers.
	_, err = r.RegisterLookup("late", nil)
	assert.ErrorIs(t, err, typefence.ErrRegistrySealed)
}

func TestParseDescriptorFacade(t *testing.T) {
	t.Parallel()

	d, err := typefence.ParseDescriptor("dict[str, int | none]")
	require.NoError(t, err)

	assert.NoError(t, typefence.Check(map[string]any{"a": 1, "b": nil}, d))
	assert.Error(t, typefence.Check(map[string]any{"a": "x"}, d))
}

func TestTypeOfGeneric(t *testing.T) {
	t.Parallel()

	type point struct{ X, Y int }

	assert.NoError(t, typefence.Check(point{1, 2}, typefence.TypeOf[point]()))
	assert.Error(t, typefence.Check(5, typefence.TypeOf[point]()))
}

func TestCheckValue(t *testing.T) {
	t.Parallel()

	type point struct{ X, Y int }

	assert.NoError(t, typefence.CheckValue[point](point{1, 2}))
	err := typefence.CheckValue[point](5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not an instance of")
}
