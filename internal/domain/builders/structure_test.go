package builders

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/natepiano/brp-mutate/internal/model"
)

func TestStruct_Children_DeclarationOrder(t *testing.T) {
	t.Parallel()

	var b Struct

	schema := &m.TypeSchema{
		TypePath: "bevy_transform::components::transform::Transform",
		Kind:     m.KindStruct,
		Fields: []m.FieldSchema{
			{Name: "translation", Type: ref("glam::Vec3")},
			{Name: "rotation", Type: ref("glam::Quat")},
			{Name: "scale", Type: ref("glam::Vec3")},
		},
	}

	children, err := b.Children(schema)
	require.NoError(t, err)
	require.Len(t, children, 3)

	require.Equal(t, "translation", children[0].PathKind.Field)
	require.Equal(t, "rotation", children[1].PathKind.Field)
	require.Equal(t, "scale", children[2].PathKind.Field)

	for _, child := range children {
		require.True(t, child.Visible)
		require.Equal(t,SlotField, child.Slot.Kind)
		require.Equal(t, schema.TypePath, child.PathKind.Parent)
	}
}

func TestStruct_Assemble(t *testing.T) {
	t.Parallel()

	var b Struct

	schema := &m.TypeSchema{
		TypePath: "glam::Vec2",
		Kind:     m.KindStruct,
		Fields: []m.FieldSchema{
			{Name: "x", Type: ref("f32")},
			{Name: "y", Type: ref("f32")},
		},
	}

	children, err := b.Children(schema)
	require.NoError(t, err)

	example, err := b.Assemble(schema, []ChildResult{
		{Child: children[0], Example: 3.14, Mutable: true},
		{Child: children[1], Example: 3.14, Mutable: true},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"x": 3.14, "y": 3.14}, example)
}

func TestStruct_Assemble_MarkerStruct(t *testing.T) {
	t.Parallel()

	var b Struct

	schema := &m.TypeSchema{TypePath: "my_game::Marker", Kind: m.KindStruct}

	children, err := b.Children(schema)
	require.NoError(t, err)
	require.Empty(t, children)

	example, err := b.Assemble(schema, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]any{}, example)
}
