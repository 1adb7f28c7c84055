package builders

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/natepiano/brp-mutate/internal/model"
)

func TestPlace_Field(t *testing.T) {
	t.Parallel()

	parent := map[string]any{"x": 1.0, "y": 2.0}

	got := Place(parent, Slot{Kind: SlotField, Field: "x"}, 9.0)
	require.Equal(t, map[string]any{"x": 9.0, "y": 2.0}, got)
}

func TestPlace_Index(t *testing.T) {
	t.Parallel()

	parent := []any{1.0, 2.0}

	got := Place(parent, Slot{Kind: SlotIndex, Index: 1, Arity: 2}, 9.0)
	require.Equal(t, []any{1.0, 9.0}, got)
}

// A single-element tuple slot replaces the parent outright: the wrapper
// serializes transparently, so there is no sequence to place into.
func TestPlace_SingleElementIndexReplacesParent(t *testing.T) {
	t.Parallel()

	got := Place(3.14, Slot{Kind: SlotIndex, Index: 0, Arity: 1}, 9.0)
	require.Equal(t, 9.0, got)
}

func TestPlace_VariantField(t *testing.T) {
	t.Parallel()

	parent := map[string]any{"Circle": map[string]any{"radius": 3.14}}

	got := Place(parent, Slot{Kind: SlotVariantField, Field: "radius", Variant: "Circle"}, 9.0)
	require.Equal(t, map[string]any{"Circle": map[string]any{"radius": 9.0}}, got)
}

func TestPlace_VariantIndex(t *testing.T) {
	t.Parallel()

	wide := map[string]any{"Label": []any{"example string", 42}}

	got := Place(wide, Slot{Kind: SlotVariantIndex, Index: 1, Variant: "Label", Arity: 2}, 7)
	require.Equal(t, map[string]any{"Label": []any{"example string", 7}}, got)

	// Single-element tuple variants hold the value directly under the key.
	narrow := map[string]any{"Some": []any{1.0, 2.0}}

	got = Place(narrow, Slot{Kind: SlotVariantIndex, Index: 0, Variant: "Some", Arity: 1}, []any{9.0, 9.0})
	require.Equal(t, map[string]any{"Some": []any{9.0, 9.0}}, got)
}

func TestPlace_ShapeMismatchIsNoOp(t *testing.T) {
	t.Parallel()

	got := Place("not an object", Slot{Kind: SlotField, Field: "x"}, 9.0)
	require.Equal(t, "not an object", got)

	got = Place(nil, Slot{Kind: SlotVariantIndex, Variant: "Some", Arity: 1}, 9.0)
	require.Nil(t, got)
}

func TestAsFailure(t *testing.T) {
	t.Parallel()

	err := MissingSerialization("my_game::opaque::Sealed")

	failure, ok := AsFailure(err)
	require.True(t, ok)
	require.Equal(t, m.ReasonMissingSerializationTraits, failure.Support.Reason)

	// Wrapped failures still unwrap.
	wrapped := fmt.Errorf("child 0: %w", err)

	failure, ok = AsFailure(wrapped)
	require.True(t, ok)
	require.Equal(t, m.TypeName("my_game::opaque::Sealed"), failure.Support.Type)

	_, ok = AsFailure(errors.New("plain"))
	require.False(t, ok)
}
