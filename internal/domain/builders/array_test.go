package builders

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/natepiano/brp-mutate/internal/model"
)

func TestArray_Children_OnePerPosition(t *testing.T) {
	t.Parallel()

	var b Array

	items := ref("f32")
	schema := &m.TypeSchema{
		TypePath:  "my_game::grid::Row",
		Kind:      m.KindArray,
		Items:     &items,
		ArraySize: 4,
	}

	children, err := b.Children(schema)
	require.NoError(t, err)
	require.Len(t, children, 4)

	for i, child := range children {
		require.Equal(t, m.TagArrayElement, child.PathKind.Tag)
		require.Equal(t, i, child.PathKind.Index)
		require.Equal(t, m.TypeName("f32"), child.PathKind.Type)
		require.True(t, child.Visible)
	}

	example, err := b.Assemble(schema, []ChildResult{
		{Child: children[0], Example: 3.14},
		{Child: children[1], Example: 3.14},
		{Child: children[2], Example: 3.14},
		{Child: children[3], Example: 3.14},
	})
	require.NoError(t, err)
	require.Equal(t, []any{3.14, 3.14, 3.14, 3.14}, example)
}

func TestArray_Children_MissingItems(t *testing.T) {
	t.Parallel()

	var b Array

	schema := &m.TypeSchema{TypePath: "my_game::Broken", Kind: m.KindArray}

	_, err := b.Children(schema)
	require.Error(t, err)

	failure, ok := AsFailure(err)
	require.True(t, ok)
	require.Equal(t, m.ReasonUnknownType, failure.Support.Reason)
}

func TestList_SingleRepresentativeElement(t *testing.T) {
	t.Parallel()

	var b List

	items := ref("glam::Vec2")
	schema := &m.TypeSchema{
		TypePath: "my_game::path::Waypoints",
		Kind:     m.KindList,
		Items:    &items,
	}

	children, err := b.Children(schema)
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, m.TagArrayElement, children[0].PathKind.Tag)
	require.Equal(t, 0, children[0].PathKind.Index)
	require.True(t, children[0].Visible)

	example, err := b.Assemble(schema, []ChildResult{{Child: children[0], Example: []any{1.0, 2.0}}})
	require.NoError(t, err)
	require.Equal(t, []any{[]any{1.0, 2.0}}, example)
}
