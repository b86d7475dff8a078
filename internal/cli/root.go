// Package cli implements the ncgrid command line tool.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/arloliu/ncgrid/config"
	"github.com/arloliu/ncgrid/store"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	out    io.Writer
	cfg    *config.Config
	logger *zap.Logger

	configPath string
	verbose    bool
	workers    int

	// ownLogger is false when the logger was injected and must not be synced.
	ownLogger bool
}

// NewRootCommand builds the ncgrid command tree writing its results to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	return newRootCommand(&app{out: out})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ncgrid",
		Short: "Inspect, decode and re-encode gridded NetCDF files",
		Long: `ncgrid reads NetCDF classic files holding packed gridded data.

It decodes Y-X, Time-Y-X and Time-Station variables with their scale_factor,
add_offset and _FillValue attributes, summarizes them, and rewrites files with
whole-file compression (.nc.gz, .nc.zst, .nc.lz4, .nc.sz).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.ownLogger {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (TOML)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "development logging at debug level")
	flags.IntVar(&a.workers, "workers", 0, "decode goroutines; 0 uses the configured value or GOMAXPROCS")

	root.AddCommand(
		newInspectCommand(a),
		newDumpCommand(a),
		newStatsCommand(a),
		newPackCommand(a),
	)

	return root
}

// setup loads the configuration and builds the logger unless one was injected.
func (a *app) setup(flags *pflag.FlagSet) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if !flags.Changed("workers") {
		a.workers = a.cfg.Workers
	}

	if a.logger != nil {
		return nil
	}

	logger, err := a.buildLogger()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.logger = logger
	a.ownLogger = true

	return nil
}

func (a *app) buildLogger() (*zap.Logger, error) {
	if a.verbose {
		return zap.NewDevelopment()
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(a.cfg.Level())

	return zc.Build()
}

func (a *app) open(path string) (*store.Store, error) {
	st, err := store.Open(path, store.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("opened file", zap.String("path", path))

	return st, nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
