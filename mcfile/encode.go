// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dalzilio/ruddmc"
)

// Encode writes s on w, using the layout and byte order selected by opts, so
// that it can be read back with Decode.
func Encode(w io.Writer, e Writer, s *System, opts ...Option) error {
	o := makeoptions(opts)
	bw := bufio.NewWriter(w)
	ints := func(v ...int) error {
		buf := make([]int32, len(v))
		for k, x := range v {
			buf[k] = int32(x)
		}
		return binary.Write(bw, o.order, buf)
	}
	predicate := func(n ruddmc.Node) error {
		return e.WriteBinary(bw, o.order, n)
	}
	if len(s.StateBits) != s.VectorLength {
		return fmt.Errorf("mcfile: %d state bits for a vector of length %d", len(s.StateBits), s.VectorLength)
	}
	if err := ints(s.VectorLength); err != nil {
		return err
	}
	if err := ints(s.StateBits...); err != nil {
		return err
	}
	if err := ints(s.ActionBits, -1); err != nil {
		return err
	}
	if err := predicate(s.Initial); err != nil {
		return err
	}
	if err := ints(len(s.Groups)); err != nil {
		return err
	}
	for _, g := range s.Groups {
		if err := ints(len(g.Read), len(g.Write)); err != nil {
			return err
		}
		if err := ints(g.Read...); err != nil {
			return err
		}
		if err := ints(g.Write...); err != nil {
			return err
		}
		if o.layout == LayoutInterleaved {
			if err := predicate(g.Relation); err != nil {
				return err
			}
		}
	}
	if o.layout == LayoutSplit {
		for _, g := range s.Groups {
			if err := predicate(g.Relation); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
