// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dalzilio/ruddmc/forkjoin"
	"github.com/dalzilio/ruddmc/reach"
)

// NewReachCommand creates the reach command.
func NewReachCommand(rootOpts *RootOptions) *cobra.Command {
	var dot, prom string
	cmd := &cobra.Command{
		Use:   "reach <model.bdd>",
		Short: "Compute the reachable states of a transition system",
		Long: `Compute the set of states reachable from the initial states of a
transition system, and print the number of breadth-first levels, the number
of states, and the size of the resulting BDD.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			bdd, sys, err := loadModel(cfg, args[0])
			if err != nil {
				return err
			}
			defer sys.Release(bdd)
			start := time.Now()
			res, err := reach.Run(cmd.Context(), bdd, sys,
				reach.Workers(forkjoin.NewPool(cfg.Workers)),
				reach.MaxLevels(cfg.MaxLevels),
			)
			if err != nil {
				return err
			}
			defer res.Release(bdd)
			elapsed := time.Since(start)

			p := &printer{w: cmd.OutOrStdout()}
			p.printf("model: %s\n", filepath.Base(args[0]))
			p.printf("levels: %d\n", res.Levels)
			p.printf("states: %s\n", res.Count)
			p.printf("nodes: %d\n", res.Nodes)
			if p.err != nil {
				return p.err
			}
			if prom != "" {
				m := newMetrics(filepath.Base(args[0]))
				m.observe(res, elapsed.Seconds(), bdd.Usage())
				if err := m.write(prom); err != nil {
					return err
				}
			}
			if dot == "" {
				return nil
			}
			f, err := os.Create(dot)
			if err != nil {
				return err
			}
			if err := bdd.Dot(f, res.States); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", dot, err)
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&dot, "dot", "", "write the reachable states in Graphviz format to this file")
	cmd.Flags().StringVar(&prom, "metrics", "", "write the metrics of the exploration in Prometheus text format to this file")
	cmd.Flags().IntVar(&rootOpts.flags.MaxLevels, "max-levels", 0, "stop after this number of levels (0 if no limit)")
	return cmd
}
