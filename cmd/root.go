// Package cmd provides the root command and CLI setup for brp-mutate.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/natepiano/brp-mutate/internal/adapter"
	"github.com/natepiano/brp-mutate/internal/config"
	"github.com/natepiano/brp-mutate/internal/controller"
	"github.com/natepiano/brp-mutate/internal/domain"
	m "github.com/natepiano/brp-mutate/internal/model"
)

var configFlag string
var hostFlag string
var portFlag int
var transportFlag string
var depthFlag int
var reportsOutputDirFlag string
var logLevelFlag string

var cfg config.Config
var logger *zap.Logger
var client adapter.BRPClient
var store adapter.SnapshotStore
var ui controller.UI
var workflow domain.Workflow

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brp-mutate",
		Short: "Mutation path discovery for Bevy Remote Protocol apps",
		Long: `brp-mutate inspects the live reflection type registry of a running
Bevy Remote Protocol application and, for any named type, computes every
valid mutation path with a ready-to-send JSON example, a mutability
verdict, and the enum variant choices a path depends on.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			teardown()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "config file (default "+config.DefaultFile+")")
	flags.StringVar(&hostFlag, "host", "", "remote host (overrides config)")
	flags.IntVar(&portFlag, "port", 0, "remote port (overrides config)")
	flags.StringVar(&transportFlag, "transport", "", "transport: http or websocket (overrides config)")
	flags.IntVar(&depthFlag, "depth", 0, "recursion depth ceiling (overrides config)")
	flags.StringVarP(&reportsOutputDirFlag, "reports", "r", "", "reports directory for snapshots and analyses")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

// setup wires the adapters, controller and workflow once flags are
// parsed and the config file is known.
func setup(cmd *cobra.Command) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}

	cfg = loaded

	logger, err = newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	base, err := newClient(cfg)
	if err != nil {
		return err
	}

	client, err = adapter.NewCachedClient(base, cfg.CacheSize)
	if err != nil {
		return err
	}

	store = adapter.NewSnapshotStore()
	ui = controller.NewSimpleUI(cmd.Root())
	workflow = domain.NewWorkflow(
		client,
		store,
		ui,
		domain.NewPathfinder(domain.WithDepthLimit(cfg.DepthLimit)),
		logger,
		cmd.Root().OutOrStdout(),
	)

	return nil
}

func teardown() {
	if client != nil {
		_ = client.Close()
	}

	if logger != nil {
		_ = logger.Sync()
	}
}

func loadConfig() (config.Config, error) {
	path := configFlag
	explicit := path != ""

	if !explicit {
		path = config.DefaultFile
	}

	loaded, err := config.Load(path, explicit)
	if err != nil {
		return loaded, err
	}

	if hostFlag != "" {
		loaded.Host = hostFlag
	}

	if portFlag > 0 {
		loaded.Port = portFlag
	}

	if transportFlag != "" {
		loaded.Transport = transportFlag
	}

	if depthFlag > 0 {
		loaded.DepthLimit = depthFlag
	}

	if reportsOutputDirFlag != "" {
		loaded.Reports = reportsOutputDirFlag
	}

	if logLevelFlag != "" {
		loaded.LogLevel = logLevelFlag
	}

	return loaded, nil
}

func newClient(cfg config.Config) (adapter.BRPClient, error) {
	switch cfg.Transport {
	case "", "http":
		return adapter.NewHTTPClient(cfg.Host, cfg.Port, logger), nil
	case "websocket", "ws":
		return adapter.NewWebSocketClient(cfg.Host, cfg.Port, logger), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(parsed)

	return zapConfig.Build()
}

// parseTypes converts positional args to type names.
func parseTypes(args []string) []m.TypeName {
	types := make([]m.TypeName, 0, len(args))
	for _, arg := range args {
		types = append(types, m.TypeName(arg))
	}

	return types
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
