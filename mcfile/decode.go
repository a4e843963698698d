// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/dalzilio/ruddmc"
)

// ReadFile decodes the transition system stored in file path. See Decode.
func ReadFile(path string, e Engine, opts ...Option) (*System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, e, append([]Option{Filename(path)}, opts...)...)
}

// Decode reads a transition system from r and builds its predicates with
// engine e. The number of variables of e is increased if it is too small for
// the state vector.
//
// Decoding stops at the first error, which is always a *FormatError, except
// for errors of r other than a premature end of file. In this case, the
// references taken on the nodes built so far are released and no System is
// returned.
func Decode(r io.Reader, e Engine, opts ...Option) (*System, error) {
	d := &decoder{
		r:     bufio.NewReader(r),
		e:     e,
		opts:  makeoptions(opts),
		group: -1,
	}
	s, err := d.decode()
	if err != nil {
		d.release()
		logger().Debug("decode failed", zap.String("file", d.opts.name), zap.Error(err))
		return nil, err
	}
	return s, nil
}

// decoder holds the state of a call to Decode.
type decoder struct {
	r     *bufio.Reader
	e     Engine
	opts  *options
	stage Stage
	group int
	refs  []ruddmc.Node // nodes referenced so far
}

func (d *decoder) errorf(field string, err error) error {
	return &FormatError{
		Path:  d.opts.name,
		Stage: d.stage,
		Group: d.group,
		Field: field,
		Err:   err,
	}
}

// acquire protects n from garbage collection until the end of the decoding,
// or until the System is released.
func (d *decoder) acquire(n ruddmc.Node) ruddmc.Node {
	d.refs = append(d.refs, d.e.AddRef(n))
	return n
}

func (d *decoder) release() {
	for _, n := range d.refs {
		d.e.DelRef(n)
	}
	d.refs = nil
}

func (d *decoder) readInt(field string) (int, error) {
	var v int32
	if err := binary.Read(d.r, d.opts.order, &v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, d.errorf(field, ErrTruncated)
		}
		return 0, err
	}
	return int(v), nil
}

// readSize reads an integer in the interval [0, max].
func (d *decoder) readSize(field string, max int) (int, error) {
	v, err := d.readInt(field)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > max {
		return 0, d.errorf(field, fmt.Errorf("%w: %d not in [0, %d]", ErrSize, v, max))
	}
	return v, nil
}

func (d *decoder) readInts(field string, n int) ([]int, error) {
	res := make([]int, n)
	for k := range res {
		v, err := d.readInt(field)
		if err != nil {
			return nil, err
		}
		res[k] = v
	}
	return res, nil
}

func (d *decoder) readPredicate(field string) (ruddmc.Node, error) {
	res, err := d.e.ReadBinary(d.r, d.opts.order, 1)
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, d.errorf(field, ErrTruncated)
	case errors.Is(err, ruddmc.ErrBinary):
		return nil, d.errorf(field, fmt.Errorf("%w: %w", ErrPredicate, err))
	case err != nil:
		return nil, d.errorf(field, fmt.Errorf("%w: %w", ErrEngine, err))
	}
	return d.acquire(res[0]), nil
}

func (d *decoder) makeset(field string, vars []int) (ruddmc.Node, error) {
	res := d.e.Makeset(vars)
	if res == nil {
		return nil, d.errorf(field, fmt.Errorf("%w: %s", ErrEngine, d.e.Error()))
	}
	return d.acquire(res), nil
}

func (d *decoder) decode() (*System, error) {
	s := &System{}
	if err := d.header(s); err != nil {
		return nil, err
	}

	d.stage = StageInitial
	marker, err := d.readInt("marker")
	if err != nil {
		return nil, err
	}
	if marker != -1 {
		return nil, d.errorf("marker", fmt.Errorf("%w (%d)", ErrMarker, marker))
	}
	if s.Initial, err = d.readPredicate("initial states"); err != nil {
		return nil, err
	}

	d.stage = StageGroups
	ngroups, err := d.readSize("number of groups", d.opts.maxGroups)
	if err != nil {
		return nil, err
	}
	logger().Debug("reading transition groups", zap.String("file", d.opts.name), zap.Int("groups", ngroups))
	s.Groups = make([]Group, ngroups)
	for k := range s.Groups {
		d.group = k
		if err := d.projections(s, &s.Groups[k]); err != nil {
			return nil, err
		}
		if d.opts.layout == LayoutInterleaved {
			if s.Groups[k].Relation, err = d.readPredicate("relation"); err != nil {
				return nil, err
			}
		}
	}
	if d.opts.layout == LayoutSplit {
		d.stage = StageRelations
		for k := range s.Groups {
			d.group = k
			if s.Groups[k].Relation, err = d.readPredicate("relation"); err != nil {
				return nil, err
			}
		}
	}

	d.stage = StageDomain
	d.group = -1
	if s.Domain, err = d.makeset("state variables", PresentVariables(s.TotalBits)); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *decoder) header(s *System) error {
	var err error
	d.stage = StageHeader
	if s.VectorLength, err = d.readSize("vector length", d.opts.maxVector); err != nil {
		return err
	}
	s.StateBits = make([]int, s.VectorLength)
	for k := range s.StateBits {
		if s.StateBits[k], err = d.readSize(fmt.Sprintf("state bits of component %d", k), d.opts.maxStateBits); err != nil {
			return err
		}
		s.TotalBits += s.StateBits[k]
	}
	if s.ActionBits, err = d.readInt("action bits"); err != nil {
		return err
	}
	nvars := 2 * s.TotalBits
	if nvars > maxVariables {
		return d.errorf("state bits", fmt.Errorf("%w: %d variables needed", ErrSize, nvars))
	}
	if d.e.Varnum() < nvars {
		if err := d.e.SetVarnum(nvars); err != nil {
			return d.errorf("state bits", fmt.Errorf("%w: %w", ErrEngine, err))
		}
	}
	logger().Debug("read header",
		zap.String("file", d.opts.name),
		zap.Int("vector", s.VectorLength),
		zap.Int("bits", s.TotalBits),
	)
	return nil
}

// projections reads the read and write projections of group g and builds its
// domain.
func (d *decoder) projections(s *System, g *Group) error {
	rk, err := d.readSize("read length", s.VectorLength)
	if err != nil {
		return err
	}
	wk, err := d.readSize("write length", s.VectorLength)
	if err != nil {
		return err
	}
	if g.Read, err = d.readInts("read projection", rk); err != nil {
		return err
	}
	if g.Write, err = d.readInts("write projection", wk); err != nil {
		return err
	}
	if err := ValidProjection(g.Read, s.VectorLength); err != nil {
		return d.errorf("read projection", fmt.Errorf("%w: %w", ErrProjection, err))
	}
	if err := ValidProjection(g.Write, s.VectorLength); err != nil {
		return d.errorf("write projection", fmt.Errorf("%w: %w", ErrProjection, err))
	}
	g.Projection = Merge(g.Read, g.Write)
	g.Variables = Interleave(s.StateBits, g.Projection)
	g.Domain, err = d.makeset("domain", g.Variables)
	return err
}
