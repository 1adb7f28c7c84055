package builders

import (
	"fmt"

	m "github.com/natepiano/brp-mutate/internal/model"
)

// Map handles key/value containers. Key and value are recursed into only
// to build the single-pair example; neither position has a stable mutation
// address, so both children are invisible and the container emits exactly
// one path.
type Map struct{}

// Children returns the key child then the value child.
func (b *Map) Children(schema *m.TypeSchema) ([]Child, error) {
	if schema.KeyType == nil || schema.ValueType == nil {
		return nil, missingElementType(schema.TypePath)
	}

	return []Child{
		{
			PathKind: m.IndexedElement(0, schema.KeyType.Path, schema.TypePath),
			Visible:  false,
			Slot:     Slot{Kind: SlotNone},
		},
		{
			PathKind: m.IndexedElement(1, schema.ValueType.Path, schema.TypePath),
			Visible:  false,
			Slot:     Slot{Kind: SlotNone},
		},
	}, nil
}

// Assemble builds the single-pair object {example_key: example_value}.
// The key must render as a JSON object key.
func (b *Map) Assemble(_ *m.TypeSchema, children []ChildResult) (any, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("map assembly expects key and value, got %d children", len(children))
	}

	return map[string]any{mapKeyString(children[0].Example): children[1].Example}, nil
}

// mapKeyString renders a key example as the string JSON object keys
// require.
func mapKeyString(key any) string {
	switch k := key.(type) {
	case string:
		// The generic string literal reads poorly in key position.
		if k == LiteralExample(m.TypeName("alloc::string::String")) {
			return "example_key"
		}

		return k
	case nil:
		return "example_key"
	default:
		return fmt.Sprintf("%v", k)
	}
}

// Set handles membership containers: exactly one invisible child
// representing the element type, a single-element sequence on assembly.
// Membership has no stable index, so no element paths are emitted.
type Set struct{}

// Children returns the single representative member.
func (b *Set) Children(schema *m.TypeSchema) ([]Child, error) {
	if schema.Items == nil {
		return nil, missingElementType(schema.TypePath)
	}

	return []Child{{
		PathKind: m.ArrayElement(0, schema.Items.Path, schema.TypePath),
		Visible:  false,
		Slot:     Slot{Kind: SlotNone},
	}}, nil
}

// Assemble builds the single-element sequence.
func (b *Set) Assemble(_ *m.TypeSchema, children []ChildResult) (any, error) {
	seq := make([]any, len(children))

	for i, child := range children {
		seq[i] = child.Example
	}

	return seq, nil
}
