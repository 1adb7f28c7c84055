package domain

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/natepiano/brp-mutate/internal/adapter"
	"github.com/natepiano/brp-mutate/internal/controller"
	m "github.com/natepiano/brp-mutate/internal/model"
)

// TypesArgs configures the registry type listing.
type TypesArgs struct {
	Exclude []string
	Offline bool
	Reports m.Path
	JSON    bool
}

// PathsArgs configures mutation path analysis for one or more root types.
type PathsArgs struct {
	Types    []m.TypeName
	Parallel int
	JSON     bool
	Offline  bool
	Reports  m.Path
}

// MutateArgs configures one mutation call. A nil Entity targets a global
// resource instead of a component.
type MutateArgs struct {
	Type   m.TypeName
	Path   string
	Value  any
	Entity *uint64
}

// ViewArgs configures the interactive browser over saved analyses.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the operations the CLI drives.
type Workflow interface {
	Types(ctx context.Context, args TypesArgs) error
	Paths(ctx context.Context, args PathsArgs) error
	Mutate(ctx context.Context, args MutateArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	client adapter.BRPClient
	store  adapter.SnapshotStore
	ui     controller.UI
	finder Pathfinder
	logger *zap.Logger
	output io.Writer
}

// NewWorkflow creates a Workflow instance with the provided adapters.
func NewWorkflow(
	client adapter.BRPClient,
	store adapter.SnapshotStore,
	ui controller.UI,
	finder Pathfinder,
	logger *zap.Logger,
	output io.Writer,
) Workflow {
	return &workflow{
		client: client,
		store:  store,
		ui:     ui,
		finder: finder,
		logger: logger,
		output: output,
	}
}

// Types lists the registry's type names, minus any matching an exclude
// pattern.
func (w *workflow) Types(ctx context.Context, args TypesArgs) error {
	registry, err := w.registry(ctx, args.Offline, args.Reports)
	if err != nil {
		return err
	}

	names, err := filterTypes(registry.Types(), args.Exclude)
	if err != nil {
		return err
	}

	if args.JSON {
		return w.ui.DisplayJSON(names)
	}

	return w.ui.DisplayTypes(names)
}

// Paths analyzes every requested root type against one shared registry
// view. Traversals are independent and read-only over the registry, so
// they run concurrently; display stays in request order.
func (w *workflow) Paths(ctx context.Context, args PathsArgs) error {
	if len(args.Types) == 0 {
		return fmt.Errorf("no types requested")
	}

	registry, err := w.registry(ctx, args.Offline, args.Reports)
	if err != nil {
		return err
	}

	parallel := args.Parallel
	if parallel <= 0 {
		parallel = 1
	}

	results := make([]map[string]m.PathEntry, len(args.Types))

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for i, root := range args.Types {
		group.Go(func() error {
			paths, err := w.finder.BuildPaths(registry, root)
			if err != nil {
				return fmt.Errorf("failed to analyze %s: %w", root, err)
			}

			results[i] = paths

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	combined := make(map[m.TypeName]map[string]m.PathEntry, len(args.Types))

	for i, root := range args.Types {
		combined[root] = results[i]

		w.logger.Info("analyzed type",
			zap.String("type", string(root)),
			zap.Int("paths", len(results[i])))

		if args.Reports != "" {
			if err := w.store.SaveAnalysis(args.Reports, root, results[i]); err != nil {
				return err
			}
		}
	}

	if args.JSON {
		return w.ui.DisplayJSON(combined)
	}

	for i, root := range args.Types {
		if err := w.ui.DisplayAnalysis(root, results[i]); err != nil {
			return err
		}
	}

	return nil
}

// Mutate issues one mutation call against the remote.
func (w *workflow) Mutate(ctx context.Context, args MutateArgs) error {
	if args.Entity != nil {
		return w.client.MutateComponent(ctx, *args.Entity, args.Type, args.Path, args.Value)
	}

	return w.client.MutateResource(ctx, args.Type, args.Path, args.Value)
}

// View browses previously saved analyses interactively.
func (w *workflow) View(args ViewArgs) error {
	analyses, err := w.store.LoadAnalyses(args.Reports)
	if err != nil {
		return err
	}

	return controller.BrowseAnalyses(w.output, analyses)
}

// registry materializes the type registry view, either from the remote
// (persisting the snapshot when a reports dir is set) or from the last
// saved snapshot.
func (w *workflow) registry(ctx context.Context, offline bool, reports m.Path) (*m.Registry, error) {
	if offline {
		snapshot, err := w.store.LoadSnapshot(reports)
		if err != nil {
			return nil, fmt.Errorf("offline mode needs a saved snapshot: %w", err)
		}

		return snapshot.Decode()
	}

	snapshot, err := w.client.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if reports != "" {
		if err := w.store.SaveSnapshot(reports, snapshot); err != nil {
			return nil, err
		}
	}

	return snapshot.Decode()
}

// filterTypes drops names matching any exclude regex.
func filterTypes(names []m.TypeName, exclude []string) ([]m.TypeName, error) {
	if len(exclude) == 0 {
		return names, nil
	}

	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, pattern)
	}

	filtered := make([]m.TypeName, 0, len(names))

	for _, name := range names {
		excluded := false

		for _, pattern := range patterns {
			if pattern.MatchString(string(name)) {
				excluded = true
				break
			}
		}

		if !excluded {
			filtered = append(filtered, name)
		}
	}

	return filtered, nil
}
