package domain

import (
	m "github.com/natepiano/brp-mutate/internal/model"
)

// The knowledge table holds types whose wire representation is fixed and
// does not follow generic structural rules: the math types serialize as
// plain sequences, not objects, so recursing into their declared fields
// would produce examples that do not round-trip. The enforcer consults the
// table before any builder dispatch; a hit returns the fixed example with
// no child paths.

type fieldKey struct {
	parent m.TypeName
	field  string
}

var knowledgeTable = map[m.TypeName]any{
	"glam::Vec2":  []any{1.0, 2.0},
	"glam::Vec3":  []any{1.0, 2.0, 3.0},
	"glam::Vec3A": []any{1.0, 2.0, 3.0},
	"glam::Vec4":  []any{1.0, 2.0, 3.0, 4.0},
	"glam::DVec2": []any{1.0, 2.0},
	"glam::DVec3": []any{1.0, 2.0, 3.0},
	"glam::DVec4": []any{1.0, 2.0, 3.0, 4.0},
	"glam::UVec2": []any{1, 2},
	"glam::UVec3": []any{1, 2, 3},
	"glam::UVec4": []any{1, 2, 3, 4},
	"glam::IVec2": []any{-1, 2},
	"glam::IVec3": []any{-1, 2, 3},
	"glam::IVec4": []any{-1, 2, 3, 4},
	"glam::Quat":  []any{0.0, 0.0, 0.0, 1.0},
	"glam::Mat2":  []any{1.0, 0.0, 0.0, 1.0},
}

// fieldKnowledge overrides specific (parent type, field) positions whose
// wire format differs from the field type's generic treatment.
var fieldKnowledge = map[fieldKey]any{
	{parent: "bevy_transform::components::transform::Transform", field: "rotation"}: []any{0.0, 0.0, 0.0, 1.0},
}

// knowledgeExample returns the fixed example for a path step, if one
// exists. Field-specific overrides take precedence over type-level
// entries.
func knowledgeExample(pk m.PathKind) (any, bool) {
	if pk.Tag == m.TagStructField {
		if example, ok := fieldKnowledge[fieldKey{parent: pk.Parent, field: pk.Field}]; ok {
			return example, true
		}
	}

	example, ok := knowledgeTable[pk.Type]

	return example, ok
}
