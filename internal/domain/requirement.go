package domain

import (
	"fmt"
	"strings"

	"github.com/natepiano/brp-mutate/internal/domain/builders"
	m "github.com/natepiano/brp-mutate/internal/model"
)

// newRequirement creates the path requirement for an entry whose validity
// depends on ancestor enum variant choices. The example starts as the
// entry's own value; each ancestor frame substitutes it into its own
// assembled example while the recursion unwinds, so that by the root it is
// one complete, sendable value reflecting every required choice.
func newRequirement(chain []m.VariantPathEntry, example any) *m.PathRequirement {
	return &m.PathRequirement{
		Description: describeChain(chain),
		Example:     deepCopy(example),
		Chain:       chain,
	}
}

// describeChain renders the chain as prose, one clause per choice. The
// empty relative path reads as "root".
func describeChain(chain []m.VariantPathEntry) string {
	parts := make([]string, 0, len(chain))

	for _, entry := range chain {
		path := entry.Path
		if path == "" {
			path = "root"
		}

		parts = append(parts, fmt.Sprintf("`%s` must be set to `%s`", path, entry.Variant))
	}

	return strings.Join(parts, ", then ")
}

// wrapRequirement substitutes a descendant requirement's current example
// into this frame's assembled value at the child's slot, giving the
// requirement a fresh deep copy so sibling requirements never share
// structure.
func wrapRequirement(req *m.PathRequirement, base any, child builders.Child) {
	wrapped := deepCopy(base)
	req.Example = builders.Place(wrapped, child.Slot, req.Example)
}

// deepCopy clones the map/slice example trees the builders assemble.
// Scalars are immutable and shared as-is.
func deepCopy(v any) any {
	switch value := v.(type) {
	case map[string]any:
		clone := make(map[string]any, len(value))
		for key, inner := range value {
			clone[key] = deepCopy(inner)
		}

		return clone
	case []any:
		clone := make([]any, len(value))
		for i, inner := range value {
			clone[i] = deepCopy(inner)
		}

		return clone
	default:
		return value
	}
}
