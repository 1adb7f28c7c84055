package builders

import (
	m "github.com/natepiano/brp-mutate/internal/model"
)

// Enum handles sum types. Variants are deduplicated into signature groups;
// one representative variant per group is recursed into, and every member
// variant shares the group's assembled example. Child paths descend into
// the representative's interior and are only valid once the owning variant
// has been selected, which the enforcer records on the variant chain.
type Enum struct{}

// Children enumerates the interiors of each group's representative
// variant, in group order. Unit groups contribute no children.
func (b *Enum) Children(schema *m.TypeSchema) ([]Child, error) {
	groups := GroupVariants(schema.TypePath, schema.Variants)

	var children []Child

	for gi, group := range groups {
		rep := group.Representative
		ref := VariantRef{Group: gi, Label: schema.TypePath.Variant(rep.Name), Name: rep.Name}

		switch {
		case rep.IsStruct():
			for _, field := range rep.Fields {
				children = append(children, Child{
					PathKind: m.StructField(field.Name, field.Type.Path, schema.TypePath),
					Visible:  true,
					Slot:     Slot{Kind: SlotVariantField, Field: field.Name, Variant: rep.Name},
					Variant:  &ref,
				})
			}
		case rep.IsUnit():
		default:
			for i, item := range rep.PrefixItems {
				children = append(children, Child{
					PathKind: m.IndexedElement(i, item.Path, schema.TypePath),
					Visible:  true,
					Slot:     Slot{Kind: SlotVariantIndex, Index: i, Variant: rep.Name, Arity: len(rep.PrefixItems)},
					Variant:  &ref,
				})
			}
		}
	}

	return children, nil
}

// Assemble returns the first group's example as the enum's representative
// value; the full group list is produced by Groups.
func (b *Enum) Assemble(schema *m.TypeSchema, children []ChildResult) (any, error) {
	groups := b.Groups(schema, children)
	if len(groups) == 0 {
		return nil, missingElementType(schema.TypePath)
	}

	return groups[0].Example, nil
}

// Groups builds the full ExampleGroup list: every variant grouped by
// signature, one example per group assembled from the representative's
// child results.
func (b *Enum) Groups(schema *m.TypeSchema, children []ChildResult) []m.ExampleGroup {
	groups := GroupVariants(schema.TypePath, schema.Variants)
	result := make([]m.ExampleGroup, 0, len(groups))

	for gi, group := range groups {
		result = append(result, m.ExampleGroup{
			Variants:  group.Members,
			Example:   b.GroupExample(group, gi, children),
			Signature: group.Signature,
		})
	}

	return result
}

// GroupExample assembles one concrete example for a group's representative
// variant: the bare variant name for unit variants, {"Variant": value} for
// single-element tuple variants, {"Variant": [...]} for wider tuples and
// {"Variant": {field: ...}} for struct variants.
func (b *Enum) GroupExample(group VariantGroup, gi int, children []ChildResult) any {
	rep := group.Representative

	switch {
	case rep.IsUnit():
		return rep.Name
	case rep.IsStruct():
		fields := make(map[string]any, len(rep.Fields))

		for _, child := range children {
			if child.Child.Variant != nil && child.Child.Variant.Group == gi {
				fields[child.Child.Slot.Field] = child.Example
			}
		}

		return map[string]any{rep.Name: fields}
	default:
		if len(rep.PrefixItems) == 1 {
			for _, child := range children {
				if child.Child.Variant != nil && child.Child.Variant.Group == gi {
					return map[string]any{rep.Name: child.Example}
				}
			}

			return map[string]any{rep.Name: nil}
		}

		seq := make([]any, len(rep.PrefixItems))

		for _, child := range children {
			if child.Child.Variant != nil && child.Child.Variant.Group == gi {
				seq[child.Child.Slot.Index] = child.Example
			}
		}

		return map[string]any{rep.Name: seq}
	}
}
