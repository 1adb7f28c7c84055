package model

import (
	"fmt"
	"sort"
	"strings"
)

// MutationStatus is the mutability verdict for one path.
type MutationStatus string

const (
	// Mutable means the whole value at this path can be replaced.
	Mutable MutationStatus = "mutable"
	// NotMutable means neither this path nor any descendant is mutable.
	NotMutable MutationStatus = "not_mutable"
	// PartiallyMutable means whole-value replacement at this path is invalid
	// but some strict descendant paths remain independently mutable.
	PartiallyMutable MutationStatus = "partially_mutable"
)

// SupportReason categorizes why a path is not (fully) mutable.
type SupportReason string

const (
	// ReasonMissingSerializationTraits marks an opaque leaf that lacks the
	// read/write support needed to round-trip a mutated value.
	ReasonMissingSerializationTraits SupportReason = "missing_serialization_traits"
	// ReasonNonMutatableElement marks a container whose element, key or
	// value type is itself not mutatable.
	ReasonNonMutatableElement SupportReason = "non_mutatable_element"
	// ReasonUnknownType marks a type absent from the registry.
	ReasonUnknownType SupportReason = "unknown_type"
	// ReasonRecursionLimitExceeded marks a traversal cut off by the depth
	// ceiling.
	ReasonRecursionLimitExceeded SupportReason = "recursion_limit_exceeded"
	// ReasonNonMutableHandle marks a reference-style wrapper whose inner
	// representation cannot be meaningfully mutated over the wire.
	ReasonNonMutableHandle SupportReason = "non_mutable_handle"
)

// MutationSupport explains a NotMutable or PartiallyMutable verdict.
type MutationSupport struct {
	Reason SupportReason `json:"reason"`
	// Type is the offending inner type, when one exists.
	Type TypeName `json:"type,omitempty"`
	// Container is the wrapper type for non_mutable_handle.
	Container TypeName `json:"container,omitempty"`
}

// Describe renders a human-readable explanation of the reason.
func (s MutationSupport) Describe() string {
	switch s.Reason {
	case ReasonMissingSerializationTraits:
		return fmt.Sprintf("`%s` does not declare serialization support", s.Type.Short())
	case ReasonNonMutatableElement:
		return fmt.Sprintf("element type `%s` is not mutatable", s.Type.Short())
	case ReasonUnknownType:
		return fmt.Sprintf("`%s` is not present in the registry", s.Type.Short())
	case ReasonRecursionLimitExceeded:
		return "recursion depth limit reached before the type resolved"
	case ReasonNonMutableHandle:
		return fmt.Sprintf("`%s` wraps handle type `%s` which cannot be mutated through this interface", s.Container.Short(), s.Type.Short())
	default:
		return string(s.Reason)
	}
}

// VariantPathEntry is one step of a variant chain: the relative path of an
// ancestor enum and the fully-qualified variant it must be set to.
type VariantPathEntry struct {
	Path    string `json:"path"`
	Variant string `json:"variant"`
}

// PathRequirement describes the ancestor enum variant choices that must be
// applied before a conditionally-valid path becomes usable. Example is a
// complete value for the root type with every chain variant already
// selected.
type PathRequirement struct {
	Description string             `json:"description"`
	Example     any                `json:"example"`
	Chain       []VariantPathEntry `json:"variant_path"`
}

// ExampleGroup is one structural signature of an enum: every variant
// sharing the signature, one representative example, and the signature
// rendered for humans.
type ExampleGroup struct {
	Variants  []string `json:"applicable_variants"`
	Example   any      `json:"example"`
	Signature string   `json:"signature"`
}

// PathEntry is the externally visible unit: everything a caller needs to
// mutate (or understand why it cannot mutate) one location of a type's
// value tree.
type PathEntry struct {
	Path          string           `json:"path"`
	Type          TypeName         `json:"type"`
	PathKind      PathKind         `json:"path_kind"`
	Kind          TypeKind         `json:"type_kind"`
	Status        MutationStatus   `json:"mutation_status"`
	Support       *MutationSupport `json:"mutation_support,omitempty"`
	Example       any              `json:"example,omitempty"`
	ExampleGroups []ExampleGroup   `json:"examples,omitempty"`
	Requirement   *PathRequirement `json:"path_requirement,omitempty"`
}

// SortPaths orders path strings root-first, shortest prefix before its
// extensions, siblings lexicographic. Used for deterministic display.
func SortPaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return pathLess(paths[i], paths[j])
	})
}

func pathLess(a, b string) bool {
	if strings.HasPrefix(b, a) && a != b {
		return true
	}

	if strings.HasPrefix(a, b) && a != b {
		return false
	}

	return a < b
}
