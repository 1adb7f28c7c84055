package builders

import (
	m "github.com/natepiano/brp-mutate/internal/model"
)

// Struct handles named-field structs: one child per declared field, an
// object keyed by field name on assembly. A struct with no fields (a
// marker) assembles to an empty object.
type Struct struct{}

// Children enumerates one child per field in declaration order.
func (b *Struct) Children(schema *m.TypeSchema) ([]Child, error) {
	children := make([]Child, 0, len(schema.Fields))

	for _, field := range schema.Fields {
		children = append(children, Child{
			PathKind: m.StructField(field.Name, field.Type.Path, schema.TypePath),
			Visible:  true,
			Slot:     Slot{Kind: SlotField, Field: field.Name},
		})
	}

	return children, nil
}

// Assemble builds the object from field examples in declaration order.
func (b *Struct) Assemble(_ *m.TypeSchema, children []ChildResult) (any, error) {
	obj := make(map[string]any, len(children))

	for _, child := range children {
		obj[child.Child.Slot.Field] = child.Example
	}

	return obj, nil
}
