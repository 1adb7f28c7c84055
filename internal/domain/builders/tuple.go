package builders

import (
	m "github.com/natepiano/brp-mutate/internal/model"
)

// Tuple handles tuples and tuple structs: one child per positional
// element, a sequence in original order on assembly. A single-element
// wrapper around a reference handle is outside the structural contract and
// reported as a typed failure.
type Tuple struct{}

// Children enumerates one child per prefix item.
func (b *Tuple) Children(schema *m.TypeSchema) ([]Child, error) {
	if len(schema.PrefixItems) == 1 && IsHandleType(schema.PrefixItems[0].Path) {
		return nil, NonMutableHandle(schema.TypePath, schema.PrefixItems[0].Path)
	}

	children := make([]Child, 0, len(schema.PrefixItems))

	for i, item := range schema.PrefixItems {
		children = append(children, Child{
			PathKind: m.IndexedElement(i, item.Path, schema.TypePath),
			Visible:  true,
			Slot:     Slot{Kind: SlotIndex, Index: i, Arity: len(schema.PrefixItems)},
		})
	}

	return children, nil
}

// Assemble builds the positional sequence. A single-element tuple struct
// serializes transparently as its inner value, matching the wire format.
func (b *Tuple) Assemble(_ *m.TypeSchema, children []ChildResult) (any, error) {
	if len(children) == 1 {
		return children[0].Example, nil
	}

	seq := make([]any, len(children))

	for i, child := range children {
		seq[i] = child.Example
	}

	return seq, nil
}
