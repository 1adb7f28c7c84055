// Package builders provides one example builder per structural type kind.
// A builder knows only how to enumerate its immediate children and how to
// assemble a parent example from already-computed child examples; depth
// limiting, registry access in general, and status aggregation belong to
// the enforcer in the domain package.
package builders

import (
	"errors"

	m "github.com/natepiano/brp-mutate/internal/model"
)

// Builder is the contract every kind implements. Children enumerates the
// immediate child path descriptors in deterministic, schema-declared order;
// Assemble combines the child results, in that same order, into one example
// value. Builders report conditions outside their structural contract as
// typed failures and never construct result entries themselves.
type Builder interface {
	Children(schema *m.TypeSchema) ([]Child, error)
	Assemble(schema *m.TypeSchema, children []ChildResult) (any, error)
}

// Child describes one immediate child of a type.
type Child struct {
	PathKind m.PathKind
	// Visible is false for children that have no stable mutation address
	// (map keys and values, set members); such children are recursed into
	// only to build the parent's example.
	Visible bool
	// Slot records where the child's value lands inside the assembled
	// parent example.
	Slot Slot
	// Variant is set when the child belongs to an enum variant's interior.
	Variant *VariantRef
}

// VariantRef ties an enum-interior child to its signature group.
type VariantRef struct {
	// Group is the index of the signature group within the enum.
	Group int
	// Label is the fully-qualified "Type::Variant" label.
	Label string
	// Name is the bare variant name used as the serialization key.
	Name string
}

// ChildResult pairs a child descriptor with its computed example.
type ChildResult struct {
	Child   Child
	Example any
	Mutable bool
}

// SlotKind discriminates placement positions inside assembled examples.
type SlotKind int

const (
	// SlotNone marks children that are never placed individually (map and
	// set interiors, consumed whole by Assemble).
	SlotNone SlotKind = iota
	// SlotField places into an object under a field name.
	SlotField
	// SlotIndex places into a sequence at a position.
	SlotIndex
	// SlotVariantField places into the object nested under a variant key.
	SlotVariantField
	// SlotVariantIndex places into the sequence nested under a variant key,
	// or directly under the key when the variant has a single element.
	SlotVariantIndex
)

// Slot records where a child's value lands inside its parent example.
type Slot struct {
	Kind    SlotKind
	Field   string
	Index   int
	Variant string
	Arity   int
}

// Place writes v into parent at the slot's position and returns the
// resulting parent value. Single-element tuple slots replace the parent
// outright because such wrappers serialize transparently. Parent must be
// the value shape the owning builder assembled; placement into an
// unexpected shape is a no-op so a malformed frame can never abort a
// traversal.
func Place(parent any, slot Slot, v any) any {
	switch slot.Kind {
	case SlotField:
		if obj, ok := parent.(map[string]any); ok {
			obj[slot.Field] = v
		}
	case SlotIndex:
		if slot.Arity == 1 {
			return v
		}

		if seq, ok := parent.([]any); ok && slot.Index < len(seq) {
			seq[slot.Index] = v
		}
	case SlotVariantField:
		if inner, ok := variantInner(parent, slot.Variant).(map[string]any); ok {
			inner[slot.Field] = v
		}
	case SlotVariantIndex:
		obj, ok := parent.(map[string]any)
		if !ok {
			return parent
		}

		if slot.Arity == 1 {
			obj[slot.Variant] = v

			return parent
		}

		if seq, ok := obj[slot.Variant].([]any); ok && slot.Index < len(seq) {
			seq[slot.Index] = v
		}
	case SlotNone:
	}

	return parent
}

func variantInner(parent any, variant string) any {
	obj, ok := parent.(map[string]any)
	if !ok {
		return nil
	}

	return obj[variant]
}

// Failure is the typed error builders return when a structural contract is
// violated. The enforcer converts it into a terminal path entry carrying
// the reason; builders never build entries.
type Failure struct {
	Support m.MutationSupport
}

func (f *Failure) Error() string {
	return f.Support.Describe()
}

// AsFailure extracts a builder failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure

	ok := errors.As(err, &f)

	return f, ok
}

// MissingSerialization reports an opaque leaf without read/write support.
func MissingSerialization(t m.TypeName) error {
	return &Failure{Support: m.MutationSupport{Reason: m.ReasonMissingSerializationTraits, Type: t}}
}

// NonMutableHandle reports a handle-style wrapper around element.
func NonMutableHandle(container, element m.TypeName) error {
	return &Failure{Support: m.MutationSupport{Reason: m.ReasonNonMutableHandle, Container: container, Type: element}}
}
