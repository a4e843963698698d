// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package cli implements the ruddmc command line: loading symbolic transition
// systems and computing their reachable states.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dalzilio/ruddmc"
	"github.com/dalzilio/ruddmc/mcfile"
	"github.com/dalzilio/ruddmc/reach"
)

// RootOptions holds the global flags of all commands.
type RootOptions struct {
	Verbose    bool
	ConfigPath string
	flags      Config // values given on the command line

	cfg    *Config // effective configuration, after PersistentPreRunE
	logger *zap.Logger
}

// NewRootCommand creates the root command of the ruddmc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	def := DefaultConfig()

	cmd := &cobra.Command{
		Use:   "ruddmc",
		Short: "ruddmc - symbolic reachability with BDDs",
		Long: `Load symbolic transition systems stored as binary BDD files and compute
their reachable states with a breadth-first exploration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	f := cmd.PersistentFlags()
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "log engine and exploration events on stderr")
	f.StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	f.IntVar(&opts.flags.Workers, "workers", def.Workers, "number of fork-join workers (0 for one per CPU)")
	f.IntVar(&opts.flags.Nodesize, "nodesize", def.Nodesize, "initial size of the node table")
	f.IntVar(&opts.flags.Maxnodesize, "maxnodesize", def.Maxnodesize, "maximal size of the node table (0 if no limit)")
	f.IntVar(&opts.flags.Cachesize, "cachesize", def.Cachesize, "initial size of the operation caches")
	f.IntVar(&opts.flags.Cacheratio, "cacheratio", def.Cacheratio, "cache entries per 100 nodes (0 for fixed caches)")
	f.StringVar(&opts.flags.Order, "order", def.Order, "byte order of model files (native|little|big)")
	f.StringVar(&opts.flags.Layout, "layout", def.Layout, "position of the relations in model files (interleaved|split)")

	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewReachCommand(opts))

	return cmd
}

// setup computes the effective configuration of the command and installs the
// loggers of the library packages.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg := DefaultConfig()
	if o.ConfigPath != "" {
		var err error
		if cfg, err = LoadConfig(o.ConfigPath); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	override := func(name string, dst *int, v int) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("workers", &cfg.Workers, o.flags.Workers)
	override("nodesize", &cfg.Nodesize, o.flags.Nodesize)
	override("maxnodesize", &cfg.Maxnodesize, o.flags.Maxnodesize)
	override("cachesize", &cfg.Cachesize, o.flags.Cachesize)
	override("cacheratio", &cfg.Cacheratio, o.flags.Cacheratio)
	override("max-levels", &cfg.MaxLevels, o.flags.MaxLevels)
	if flags.Changed("order") {
		cfg.Order = o.flags.Order
	}
	if flags.Changed("layout") {
		cfg.Layout = o.flags.Layout
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	o.cfg = cfg

	o.logger = newLogger(cmd.ErrOrStderr(), o.Verbose)
	ruddmc.SetLogger(o.logger.Named("bdd"))
	mcfile.SetLogger(o.logger.Named("mcfile"))
	reach.SetLogger(o.logger.Named("reach"))
	return nil
}

// newLogger returns a JSON logger writing on w. Only warnings and errors are
// reported, unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}
