package builders

import (
	m "github.com/natepiano/brp-mutate/internal/model"
)

// missingElementType is returned when a sequence or container schema lacks
// the element reference it structurally requires.
func missingElementType(t m.TypeName) error {
	return &Failure{Support: m.MutationSupport{Reason: m.ReasonUnknownType, Type: t}}
}

// Array handles fixed-size sequences: one child per element position, a
// sequence of the declared length on assembly.
type Array struct{}

// Children enumerates one child per position. Every position shares the
// element type.
func (b *Array) Children(schema *m.TypeSchema) ([]Child, error) {
	if schema.Items == nil || schema.ArraySize <= 0 {
		return nil, missingElementType(schema.TypePath)
	}

	children := make([]Child, 0, schema.ArraySize)

	for i := 0; i < schema.ArraySize; i++ {
		children = append(children, Child{
			PathKind: m.ArrayElement(i, schema.Items.Path, schema.TypePath),
			Visible:  true,
			Slot:     Slot{Kind: SlotIndex, Index: i},
		})
	}

	return children, nil
}

// Assemble builds the fixed-length sequence.
func (b *Array) Assemble(_ *m.TypeSchema, children []ChildResult) (any, error) {
	seq := make([]any, len(children))

	for i, child := range children {
		seq[i] = child.Example
	}

	return seq, nil
}

// List handles variable-size sequences: exactly one child representing the
// element type, a single-element sequence as the minimal representative
// example.
type List struct{}

// Children returns the single representative element.
func (b *List) Children(schema *m.TypeSchema) ([]Child, error) {
	if schema.Items == nil {
		return nil, missingElementType(schema.TypePath)
	}

	return []Child{{
		PathKind: m.ArrayElement(0, schema.Items.Path, schema.TypePath),
		Visible:  true,
		Slot:     Slot{Kind: SlotIndex, Index: 0},
	}}, nil
}

// Assemble builds the single-element sequence.
func (b *List) Assemble(_ *m.TypeSchema, children []ChildResult) (any, error) {
	seq := make([]any, len(children))

	for i, child := range children {
		seq[i] = child.Example
	}

	return seq, nil
}
