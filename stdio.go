// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Usage is a snapshot of the size of a BDD.
type Usage struct {
	Varnum    int // number of variables
	Allocated int // size of the node table
	Free      int // free slots in the node table
	Produced  int // nodes created since New
	GC        int // number of garbage collections
}

// Usage returns the current size of the node table and the number of garbage
// collections so far.
func (b *BDD) Usage() Usage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Usage{
		Varnum:    int(b.varnum),
		Allocated: len(b.nodes),
		Free:      b.freenum,
		Produced:  b.produced,
		GC:        len(b.history),
	}
}

// Stats returns information about the BDD: size of the node table, number of
// garbage collections, number of external references and cache usage.
func (b *BDD) Stats() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Varnum:     %d\n", b.varnum)
	fmt.Fprintf(&sb, "Allocated:  %d\n", len(b.nodes))
	fmt.Fprintf(&sb, "Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	fmt.Fprintf(&sb, "Free:       %d  (%.3g %%)\n", b.freenum, r)
	fmt.Fprintf(&sb, "Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, (100.0 - r))
	sb.WriteString("==============\n")
	fmt.Fprintf(&sb, "# of GC:    %d\n", len(b.history))
	allocated := int(b.setfinalizers)
	reclaimed := int(b.calledfinalizers)
	for _, g := range b.history {
		allocated += g.setfinalizers
		reclaimed += g.calledfinalizers
	}
	fmt.Fprintf(&sb, "Ext. refs:  %d\n", allocated)
	fmt.Fprintf(&sb, "Reclaimed:  %d\n", reclaimed)
	sb.WriteString("==============\n")
	sb.WriteString(b.cacheStat.stats())
	return sb.String()
}

// Print writes a textual representation of the nodes reachable from n..., one
// node per line, or of the whole node table if n is absent. Each line gives the
// index of a node, its level, and the index of its low and high successors.
func (b *BDD) Print(w io.Writer, n ...Node) error {
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	err := b.Allnodes(func(id, level, low, high int) error {
		switch id {
		case 0:
			_, err := fmt.Fprintln(tw, "0\t[False]")
			return err
		case 1:
			_, err := fmt.Fprintln(tw, "1\t[True]")
			return err
		}
		_, err := fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\n", id, level, low, high)
		return err
	}, n...)
	if err != nil {
		return err
	}
	return tw.Flush()
}

// Dot writes a graph-like description of the nodes reachable from n..., or of
// the whole node table if n is absent, using the DOT format of Graphviz. We do
// not draw the constant False and the arcs that lead to it.
func (b *BDD) Dot(w io.Writer, n ...Node) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	err := b.Allnodes(func(id, level, low, high int) error {
		if id < 2 {
			if id == 1 {
				fmt.Fprintln(bw, `1 [shape=box, label="1", style=filled, height=0.3, width=0.3];`)
			}
			return nil
		}
		fmt.Fprintf(bw, "%d %s\n", id, dotlabel(id, level))
		if low != 0 {
			fmt.Fprintf(bw, "%d -> %d [style=dotted];\n", id, low)
		}
		if high != 0 {
			fmt.Fprintf(bw, "%d -> %d [style=filled];\n", id, high)
		}
		return nil
	}, n...)
	if err != nil {
		return err
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotlabel(id int, level int) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, level, id)
}
