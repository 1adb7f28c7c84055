package domain

import (
	"github.com/natepiano/brp-mutate/internal/domain/builders"
	m "github.com/natepiano/brp-mutate/internal/model"
)

// DefaultDepthLimit is the recursion ceiling applied when none is
// configured. Depth counts container boundaries crossed, not scalars, so
// ten levels covers any sane component tree while guaranteeing that a
// self-referential schema terminates with a reported condition instead of
// a stack failure.
const DefaultDepthLimit = 10

// Enforcer wraps every builder invocation. It owns the knowledge-table
// short-circuit, registry-presence checking, depth limiting, per-path
// mutability aggregation and the conversion of builder failures into
// terminal entries. Builders stay ignorant of all of it.
type Enforcer struct {
	depthLimit int
}

// NewEnforcer creates an enforcer with the given depth ceiling; zero or
// negative selects the default.
func NewEnforcer(depthLimit int) *Enforcer {
	if depthLimit <= 0 {
		depthLimit = DefaultDepthLimit
	}

	return &Enforcer{depthLimit: depthLimit}
}

// result is what one recursion frame hands back to its parent. The example
// is always the best-effort subtree value, kept even when the status is
// not Mutable, because parents need it for assembly and for requirement
// wrapping; the externally visible entry nulls it out instead.
type result struct {
	example any
	groups  []m.ExampleGroup
	status  m.MutationStatus
	support *m.MutationSupport
	entries []*m.PathEntry
}

var (
	structBuilder = &builders.Struct{}
	enumBuilder   = &builders.Enum{}
	tupleBuilder  = &builders.Tuple{}
	arrayBuilder  = &builders.Array{}
	listBuilder   = &builders.List{}
	mapBuilder    = &builders.Map{}
	setBuilder    = &builders.Set{}
	valueBuilder  = &builders.Value{}
)

// builderFor dispatches over the closed set of structural kinds.
func builderFor(kind m.TypeKind) builders.Builder {
	switch kind {
	case m.KindStruct:
		return structBuilder
	case m.KindEnum:
		return enumBuilder
	case m.KindTuple, m.KindTupleStruct:
		return tupleBuilder
	case m.KindArray:
		return arrayBuilder
	case m.KindList:
		return listBuilder
	case m.KindMap:
		return mapBuilder
	case m.KindSet:
		return setBuilder
	default:
		return valueBuilder
	}
}

// Build runs one recursion frame: knowledge short-circuit, protocol
// checks, child recursion, aggregation, assembly, requirement wrapping.
func (e *Enforcer) Build(ctx Context) result {
	if example, ok := knowledgeExample(ctx.PathKind); ok {
		// Fixed wire formats must not expose structural field paths that
		// would not round-trip, so no recursion happens here.
		res := result{example: example, status: m.Mutable}
		e.emit(&res, ctx, e.kindOf(ctx))

		return res
	}

	schema, ok := ctx.Registry.Lookup(ctx.PathKind.Type)
	if !ok {
		return e.terminal(ctx, m.MutationSupport{Reason: m.ReasonUnknownType, Type: ctx.PathKind.Type}, m.KindValue)
	}

	if ctx.Depth >= e.depthLimit {
		return e.terminal(ctx, m.MutationSupport{Reason: m.ReasonRecursionLimitExceeded, Type: ctx.PathKind.Type}, Classify(schema))
	}

	kind := Classify(schema)
	builder := builderFor(kind)

	children, err := builder.Children(schema)
	if err != nil {
		return e.terminal(ctx, supportFromError(err, ctx.PathKind.Type), kind)
	}

	childResults := make([]builders.ChildResult, 0, len(children))
	childOutcomes := make([]result, 0, len(children))

	for _, child := range children {
		childCtx := ctx.child(child)
		childRes := e.Build(childCtx)

		childOutcomes = append(childOutcomes, childRes)
		childResults = append(childResults, builders.ChildResult{
			Child:   child,
			Example: childRes.example,
			Mutable: childRes.status == m.Mutable,
		})
	}

	status, support := aggregate(children, childOutcomes)

	assembled, err := builder.Assemble(schema, childResults)
	if err != nil {
		return e.terminal(ctx, supportFromError(err, ctx.PathKind.Type), kind)
	}

	res := result{example: assembled, status: status, support: support}

	if kind == m.KindEnum {
		res.groups = enumBuilder.Groups(schema, childResults)
	}

	// Wrap descendants' requirement examples into this frame's value
	// before emitting our own entry, so the root ends up substituted all
	// the way through. Enum interiors wrap into their group's example
	// rather than the representative first-group value.
	groupBases := enumGroupBases(kind, schema, childResults)

	for i, child := range children {
		if !ctx.Visible || !child.Visible {
			continue
		}

		base := assembled
		if child.Variant != nil && groupBases != nil {
			base = groupBases[child.Variant.Group]
		}

		for _, entry := range childOutcomes[i].entries {
			if entry.Requirement != nil {
				wrapRequirement(entry.Requirement, base, child)
			}
		}
	}

	e.emit(&res, ctx, kind)

	for i, child := range children {
		if ctx.Visible && child.Visible {
			res.entries = append(res.entries, childOutcomes[i].entries...)
		}
	}

	return res
}

// emit attaches this frame's own externally visible entry. Enum entries
// carry the grouped examples; everything else carries a single example,
// nulled out when whole-value replacement is invalid.
func (e *Enforcer) emit(res *result, ctx Context, kind m.TypeKind) {
	if !ctx.Visible {
		return
	}

	entry := &m.PathEntry{
		Path:     ctx.Path,
		Type:     ctx.PathKind.Type,
		PathKind: ctx.PathKind,
		Kind:     kind,
		Status:   res.status,
		Support:  res.support,
	}

	switch {
	case kind == m.KindEnum && res.status != m.NotMutable:
		entry.ExampleGroups = res.groups
	case res.status == m.Mutable:
		entry.Example = res.example
	}

	if len(ctx.Chain) > 0 && res.status != m.NotMutable {
		entry.Requirement = newRequirement(ctx.Chain, res.example)
	}

	res.entries = append([]*m.PathEntry{entry}, res.entries...)
}

// terminal produces the single NotMutable entry for a path that cannot be
// recursed into, with no children.
func (e *Enforcer) terminal(ctx Context, support m.MutationSupport, kind m.TypeKind) result {
	res := result{status: m.NotMutable, support: &support}

	if ctx.Visible {
		res.entries = append(res.entries, &m.PathEntry{
			Path:     ctx.Path,
			Type:     ctx.PathKind.Type,
			PathKind: ctx.PathKind,
			Kind:     kind,
			Status:   m.NotMutable,
			Support:  &support,
		})
	}

	return res
}

// kindOf classifies a knowledge-table hit from the registry when the type
// is present, falling back to Value.
func (e *Enforcer) kindOf(ctx Context) m.TypeKind {
	if schema, ok := ctx.Registry.Lookup(ctx.PathKind.Type); ok {
		return Classify(schema)
	}

	return m.KindValue
}

// supportFromError converts a builder failure into its reason, falling
// back to unknown_type for anything untagged; the recursive core never
// panics and never drops an error on the floor.
func supportFromError(err error, t m.TypeName) m.MutationSupport {
	if failure, ok := builders.AsFailure(err); ok {
		return failure.Support
	}

	return m.MutationSupport{Reason: m.ReasonUnknownType, Type: t}
}

// aggregate computes the parent verdict from child outcomes: Mutable when
// every child is (or there are none), NotMutable when no descendant is
// independently mutable, PartiallyMutable otherwise. Non-mutable parents
// report the first offending inner type.
func aggregate(children []builders.Child, outcomes []result) (m.MutationStatus, *m.MutationSupport) {
	if len(outcomes) == 0 {
		return m.Mutable, nil
	}

	allMutable := true
	anyUseful := false

	var offender *m.TypeName

	for i := range outcomes {
		switch outcomes[i].status {
		case m.Mutable:
			anyUseful = true
		case m.PartiallyMutable:
			allMutable = false
			anyUseful = true
		case m.NotMutable:
			allMutable = false
		}

		if outcomes[i].status != m.Mutable && offender == nil {
			offender = &children[i].PathKind.Type
		}
	}

	if allMutable {
		return m.Mutable, nil
	}

	support := &m.MutationSupport{Reason: m.ReasonNonMutatableElement, Type: *offender}

	if !anyUseful {
		return m.NotMutable, support
	}

	return m.PartiallyMutable, support
}

// enumGroupBases precomputes each group's concrete example for requirement
// wrapping; nil for non-enum kinds.
func enumGroupBases(kind m.TypeKind, schema *m.TypeSchema, childResults []builders.ChildResult) []any {
	if kind != m.KindEnum {
		return nil
	}

	groups := builders.GroupVariants(schema.TypePath, schema.Variants)
	bases := make([]any, len(groups))

	for gi, group := range groups {
		bases[gi] = enumBuilder.GroupExample(group, gi, childResults)
	}

	return bases
}
