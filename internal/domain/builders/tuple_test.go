package builders

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/natepiano/brp-mutate/internal/model"
)

func TestTuple_Children(t *testing.T) {
	t.Parallel()

	var b Tuple

	schema := &m.TypeSchema{
		TypePath:    "my_game::Pair",
		Kind:        m.KindTupleStruct,
		PrefixItems: []m.SchemaRef{ref("f32"), ref("u32")},
	}

	children, err := b.Children(schema)
	require.NoError(t, err)
	require.Len(t, children, 2)

	require.Equal(t, m.TagIndexedElement, children[0].PathKind.Tag)
	require.Equal(t, m.TypeName("f32"), children[0].PathKind.Type)
	require.Equal(t, SlotIndex, children[0].Slot.Kind)
	require.Equal(t, 2, children[0].Slot.Arity)
	require.Equal(t, 1, children[1].Slot.Index)
}

func TestTuple_Children_HandleWrapper(t *testing.T) {
	t.Parallel()

	var b Tuple

	schema := &m.TypeSchema{
		TypePath:    "my_game::render::MeshHolder",
		Kind:        m.KindTupleStruct,
		PrefixItems: []m.SchemaRef{ref("bevy_asset::handle::Handle<my_game::render::Mesh>")},
	}

	_, err := b.Children(schema)
	require.Error(t, err)

	failure, ok := AsFailure(err)
	require.True(t, ok)
	require.Equal(t, m.ReasonNonMutableHandle, failure.Support.Reason)
	require.Equal(t, m.TypeName("my_game::render::MeshHolder"), failure.Support.Container)
	require.Equal(t, m.TypeName("bevy_asset::handle::Handle<my_game::render::Mesh>"), failure.Support.Type)
}

// A single-element tuple struct serializes transparently as its inner
// value, not as a one-element sequence.
func TestTuple_Assemble_SingleElementTransparent(t *testing.T) {
	t.Parallel()

	var b Tuple

	schema := &m.TypeSchema{
		TypePath:    "my_game::settings::Volume",
		Kind:        m.KindTupleStruct,
		PrefixItems: []m.SchemaRef{ref("f32")},
	}

	children, err := b.Children(schema)
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, 1, children[0].Slot.Arity)

	example, err := b.Assemble(schema, []ChildResult{{Child: children[0], Example: 3.14, Mutable: true}})
	require.NoError(t, err)
	require.Equal(t, 3.14, example)
}

func TestTuple_Assemble_Sequence(t *testing.T) {
	t.Parallel()

	var b Tuple

	schema := &m.TypeSchema{
		TypePath:    "my_game::Pair",
		Kind:        m.KindTupleStruct,
		PrefixItems: []m.SchemaRef{ref("f32"), ref("u32")},
	}

	children, err := b.Children(schema)
	require.NoError(t, err)

	example, err := b.Assemble(schema, []ChildResult{
		{Child: children[0], Example: 3.14, Mutable: true},
		{Child: children[1], Example: 42, Mutable: true},
	})
	require.NoError(t, err)
	require.Equal(t, []any{3.14, 42}, example)
}
