// Package domain contains the mutation path discovery engine: the type
// classifier, the protocol enforcer that drives the per-kind builders, and
// the workflow exposed to the CLI.
package domain

import (
	m "github.com/natepiano/brp-mutate/internal/model"
)

// Classify determines the structural kind of a schema fragment. It is a
// pure function with no failure mode: a schema with an unrecognized or
// missing kind tag resolves to the best matching kind from its populated
// constructs, falling back to Value. Mutability consequences of a
// malformed schema surface later, at the builder and enforcer stage.
func Classify(schema *m.TypeSchema) m.TypeKind {
	switch schema.Kind {
	case m.KindStruct, m.KindEnum, m.KindTuple, m.KindTupleStruct,
		m.KindArray, m.KindList, m.KindMap, m.KindSet, m.KindValue:
		return schema.Kind
	}

	switch {
	case len(schema.Variants) > 0:
		return m.KindEnum
	case schema.KeyType != nil && schema.ValueType != nil:
		return m.KindMap
	case len(schema.PrefixItems) > 0:
		return m.KindTuple
	case schema.Items != nil && schema.ArraySize > 0:
		return m.KindArray
	case schema.Items != nil:
		return m.KindList
	case len(schema.Fields) > 0:
		return m.KindStruct
	default:
		return m.KindValue
	}
}
