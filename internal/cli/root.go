package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mizuiro-games/gamedata/internal/config"
	"github.com/mizuiro-games/gamedata/pkg/service"
	"github.com/mizuiro-games/gamedata/pkg/store"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	dataDir    string
}

// Execute runs the gamedata CLI and returns an error if any command fails.
//
// The root command wires up all subcommands (serve, check, graph, export,
// import, browse), configures logging based on the --verbose flag, and
// attaches the logger to the command context so every command can retrieve
// it via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "gamedata",
		Short:        "gamedata edits and validates game design data collections",
		Long:         `gamedata is the editor backend for the game's design data: it serves schema-validated CRUD over the JSON collections, checks referential integrity between them, and renders their dependency graph.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("gamedata %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "gamedata.toml", "path to the config file")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (overrides config)")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newCheckCmd(flags))
	root.AddCommand(newGraphCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newImportCmd(flags))
	root.AddCommand(newBrowseCmd(flags))

	return root.ExecuteContext(ctx)
}

// loadConfig resolves the effective configuration from the config file and
// the persistent flag overrides.
func (f *rootFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.dataDir != "" {
		cfg.DataDir = f.dataDir
	}
	return cfg, nil
}

// newService opens the data directory and wraps it in a service.
func (f *rootFlags) newService() (*service.Service, config.Config, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	return service.New(st), cfg, nil
}
