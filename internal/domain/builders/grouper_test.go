package builders

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/natepiano/brp-mutate/internal/model"
)

func ref(path m.TypeName) m.SchemaRef {
	return m.SchemaRef{Path: path}
}

func TestGroupVariants_MergesBySignature(t *testing.T) {
	t.Parallel()

	variants := []m.VariantSchema{
		{Name: "Top"},
		{Name: "Bottom"},
		{Name: "Label", PrefixItems: []m.SchemaRef{ref("alloc::string::String"), ref("u32")}},
		{Name: "Tag", PrefixItems: []m.SchemaRef{ref("alloc::string::String"), ref("u32")}},
	}

	groups := GroupVariants("my_game::ui::Anchor", variants)
	require.Len(t, groups, 2)

	require.Equal(t, "unit", groups[0].Signature)
	require.Equal(t, []string{"my_game::ui::Anchor::Top", "my_game::ui::Anchor::Bottom"}, groups[0].Members)
	require.Equal(t, "Top", groups[0].Representative.Name)

	require.Equal(t, "tuple(String, u32)", groups[1].Signature)
	require.Equal(t, []string{"my_game::ui::Anchor::Label", "my_game::ui::Anchor::Tag"}, groups[1].Members)
	require.Equal(t, "Label", groups[1].Representative.Name)
}

// Struct variants sharing field types but not field names must stay in
// separate groups; merging them would attach one variant's field names to
// the other's example.
func TestGroupVariants_StructFieldNamesKeepGroupsApart(t *testing.T) {
	t.Parallel()

	variants := []m.VariantSchema{
		{Name: "Circle", Fields: []m.FieldSchema{{Name: "radius", Type: ref("f32")}}},
		{Name: "Square", Fields: []m.FieldSchema{{Name: "side", Type: ref("f32")}}},
	}

	groups := GroupVariants("my_game::shapes::Shape", variants)
	require.Len(t, groups, 2)
	require.Equal(t, "struct{radius: f32}", groups[0].Signature)
	require.Equal(t, "struct{side: f32}", groups[1].Signature)
}

func TestGroupVariants_MatchingStructVariantsMerge(t *testing.T) {
	t.Parallel()

	variants := []m.VariantSchema{
		{Name: "Start", Fields: []m.FieldSchema{{Name: "at", Type: ref("glam::Vec2")}}},
		{Name: "End", Fields: []m.FieldSchema{{Name: "at", Type: ref("glam::Vec2")}}},
	}

	groups := GroupVariants("my_game::path::Marker", variants)
	require.Len(t, groups, 1)
	require.Equal(t, "struct{at: Vec2}", groups[0].Signature)
	require.Equal(t, []string{"my_game::path::Marker::Start", "my_game::path::Marker::End"}, groups[0].Members)
}

// Every variant lands in exactly one group, in declaration order.
func TestGroupVariants_PartitionsVariants(t *testing.T) {
	t.Parallel()

	variants := []m.VariantSchema{
		{Name: "A"},
		{Name: "B", PrefixItems: []m.SchemaRef{ref("u32")}},
		{Name: "C"},
		{Name: "D", PrefixItems: []m.SchemaRef{ref("f32")}},
		{Name: "E", PrefixItems: []m.SchemaRef{ref("u32")}},
	}

	groups := GroupVariants("my_game::T", variants)

	seen := make(map[string]int)

	total := 0
	for _, group := range groups {
		total += len(group.Members)
		for _, member := range group.Members {
			seen[member]++
		}
	}

	require.Equal(t, len(variants), total)

	for member, count := range seen {
		require.Equal(t, 1, count, "variant %s appears in %d groups", member, count)
	}
}
