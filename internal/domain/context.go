package domain

import (
	"github.com/natepiano/brp-mutate/internal/domain/builders"
	m "github.com/natepiano/brp-mutate/internal/model"
)

// Context is the threaded state of one in-flight recursion frame. A frame
// derives a fresh Context for each child; contexts are never mutated in
// place, so sibling subtrees share nothing but the registry view.
type Context struct {
	// Registry is the shared, read-only type registry view.
	Registry *m.Registry
	// PathKind describes how this frame was reached.
	PathKind m.PathKind
	// Path is the accumulated path string from the root.
	Path string
	// Depth counts container boundaries crossed since the root.
	Depth int
	// Visible is false inside containers whose elements have no stable
	// address; such frames build examples but expose no paths.
	Visible bool
	// InVariant is the variant label when this frame builds the committed
	// interior of an enum variant, empty while choosing among variants.
	InVariant string
	// Chain is the ordered list of ancestor enum variant choices required
	// before this frame's path becomes reachable.
	Chain []m.VariantPathEntry
}

// rootContext starts a traversal at the given type.
func rootContext(registry *m.Registry, root m.TypeName) Context {
	return Context{
		Registry: registry,
		PathKind: m.RootValue(root),
		Visible:  true,
	}
}

// child derives the context for one child descriptor. Depth increments
// once per container boundary; visibility and the variant chain extend
// according to the child's builder-declared role.
func (c Context) child(ch builders.Child) Context {
	next := Context{
		Registry: c.Registry,
		PathKind: ch.PathKind,
		Path:     c.Path + ch.PathKind.Segment(),
		Depth:    c.Depth + 1,
		Visible:  c.Visible && ch.Visible,
		Chain:    c.Chain,
	}

	if ch.Variant != nil {
		next.InVariant = ch.Variant.Label
		next.Chain = appendChain(c.Chain, m.VariantPathEntry{Path: c.Path, Variant: ch.Variant.Label})
	}

	return next
}

// appendChain copies before appending so sibling frames never alias one
// another's chains.
func appendChain(chain []m.VariantPathEntry, entry m.VariantPathEntry) []m.VariantPathEntry {
	next := make([]m.VariantPathEntry, 0, len(chain)+1)
	next = append(next, chain...)
	next = append(next, entry)

	return next
}
