package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/natepiano/brp-mutate/internal/domain/builders"
	m "github.com/natepiano/brp-mutate/internal/model"
)

func TestDescribeChain(t *testing.T) {
	t.Parallel()

	single := []m.VariantPathEntry{
		{Path: "", Variant: "core::option::Option<glam::Vec2>::Some"},
	}
	require.Equal(t,
		"`root` must be set to `core::option::Option<glam::Vec2>::Some`",
		describeChain(single))

	nested := []m.VariantPathEntry{
		{Path: "", Variant: "my_game::Outer::Wrapped"},
		{Path: ".0", Variant: "my_game::Inner::Deep"},
	}
	require.Equal(t,
		"`root` must be set to `my_game::Outer::Wrapped`, then `.0` must be set to `my_game::Inner::Deep`",
		describeChain(nested))
}

func TestNewRequirement_CopiesExample(t *testing.T) {
	t.Parallel()

	example := map[string]any{"x": 1.0}
	req := newRequirement([]m.VariantPathEntry{{Path: "", Variant: "my_game::T::A"}}, example)

	example["x"] = 9.0

	require.Equal(t, map[string]any{"x": 1.0}, req.Example)
}

func TestWrapRequirement_SubstitutesIntoBase(t *testing.T) {
	t.Parallel()

	req := newRequirement(
		[]m.VariantPathEntry{{Path: "", Variant: "my_game::shapes::Shape::Circle"}},
		9.0,
	)

	base := map[string]any{"Circle": map[string]any{"radius": 3.14}}
	child := builders.Child{
		Slot: builders.Slot{Kind: builders.SlotVariantField, Field: "radius", Variant: "Circle"},
	}

	wrapRequirement(req, base, child)

	require.Equal(t, map[string]any{"Circle": map[string]any{"radius": 9.0}}, req.Example)

	// The base stays untouched for sibling requirements.
	require.Equal(t, map[string]any{"Circle": map[string]any{"radius": 3.14}}, base)
}

func TestDeepCopy(t *testing.T) {
	t.Parallel()

	original := map[string]any{
		"seq":    []any{1.0, map[string]any{"nested": true}},
		"scalar": "example string",
	}

	clone := deepCopy(original)

	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("clone differs (-want +got):\n%s", diff)
	}

	clone.(map[string]any)["seq"].([]any)[1].(map[string]any)["nested"] = false

	if original["seq"].([]any)[1].(map[string]any)["nested"] != true {
		t.Fatal("mutating the clone reached the original")
	}
}
