package domain

import (
	"fmt"

	m "github.com/natepiano/brp-mutate/internal/model"
)

// Pathfinder is the engine's entry point: given a registry view and a root
// type name it returns the flat mapping from mutation-path string to path
// entry, suitable for direct serialization into a tool response.
type Pathfinder interface {
	BuildPaths(registry *m.Registry, root m.TypeName) (map[string]m.PathEntry, error)
}

type pathfinder struct {
	enforcer *Enforcer
}

// PathfinderOption configures a Pathfinder.
type PathfinderOption func(*pathfinder)

// WithDepthLimit overrides the recursion ceiling.
func WithDepthLimit(limit int) PathfinderOption {
	return func(p *pathfinder) {
		p.enforcer = NewEnforcer(limit)
	}
}

// NewPathfinder creates a Pathfinder with the default depth ceiling unless
// overridden.
func NewPathfinder(options ...PathfinderOption) Pathfinder {
	p := &pathfinder{enforcer: NewEnforcer(0)}

	for _, option := range options {
		option(p)
	}

	return p
}

// BuildPaths runs one traversal. The returned map is always complete: a
// type absent from the registry still yields its single root entry with
// the reason attached, so a caller can explain every path it cannot use.
func (p *pathfinder) BuildPaths(registry *m.Registry, root m.TypeName) (map[string]m.PathEntry, error) {
	if registry == nil {
		return nil, fmt.Errorf("nil registry")
	}

	if root == "" {
		return nil, fmt.Errorf("empty root type name")
	}

	res := p.enforcer.Build(rootContext(registry, root))

	paths := make(map[string]m.PathEntry, len(res.entries))
	for _, entry := range res.entries {
		paths[entry.Path] = *entry
	}

	return paths, nil
}
