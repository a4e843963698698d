// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dalzilio/ruddmc"
	"github.com/dalzilio/ruddmc/mcfile"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "info <model.bdd>",
		Short: "Print a summary of a transition system",
		Long: `Decode a transition system and print the size of its state vector, its
initial states and, for each transition group, its projections, variables
and the size of its relation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bdd, sys, err := loadModel(rootOpts.cfg, args[0])
			if err != nil {
				return err
			}
			defer sys.Release(bdd)
			w := cmd.OutOrStdout()
			if err := writeInfo(w, filepath.Base(args[0]), bdd, sys); err != nil {
				return err
			}
			if stats {
				_, err = fmt.Fprint(w, bdd.Stats())
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "print the statistics of the BDD engine")
	return cmd
}

func writeInfo(w io.Writer, name string, bdd *ruddmc.BDD, sys *mcfile.System) error {
	p := &printer{w: w}
	p.printf("model: %s\n", name)
	p.printf("vector: %d components, %d state bits, %d action bits\n", sys.VectorLength, sys.TotalBits, sys.ActionBits)
	p.printf("state bits: %v\n", sys.StateBits)
	p.printf("initial: %d nodes, %s states\n", bdd.Nodecount(sys.Initial), bdd.Satcountset(sys.Initial, sys.Domain))
	p.printf("groups: %d\n", len(sys.Groups))
	for k, g := range sys.Groups {
		p.printf("group %d: read %v, write %v, variables %v, relation %d nodes\n",
			k, g.Read, g.Write, g.Variables, bdd.Nodecount(g.Relation))
	}
	p.printf("relations: %d nodes\n", bdd.Nodecount(sys.Relations()...))
	return p.err
}

// printer stops writing after the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, a ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, a...)
}
