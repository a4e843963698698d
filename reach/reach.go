// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package reach computes the reachable states of a symbolic transition system
// with a breadth-first exploration.
package reach

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/dalzilio/ruddmc"
	"github.com/dalzilio/ruddmc/forkjoin"
	"github.com/dalzilio/ruddmc/mcfile"
	"github.com/dalzilio/ruddmc/union"
)

// Engine is the part of the BDD engine used during an exploration. It is
// implemented by *ruddmc.BDD.
type Engine interface {
	union.Engine
	Makeset(varset []int) ruddmc.Node
	AppEx(left, right ruddmc.Node, op ruddmc.Operator, varset ruddmc.Node) ruddmc.Node
	NewReplacer(oldvars, newvars []int) (ruddmc.Replacer, error)
	Replace(n ruddmc.Node, r ruddmc.Replacer) ruddmc.Node
	Satcountset(n, varset ruddmc.Node) *big.Int
	Nodecount(n ...ruddmc.Node) int
	Equal(n1, n2 ruddmc.Node) bool
}

// Result is the outcome of an exploration.
type Result struct {
	States ruddmc.Node // reachable states, with a reference
	Levels int         // number of breadth-first iterations
	Count  *big.Int    // number of reachable states
	Nodes  int         // number of nodes of States
}

// Release drops the reference held by the result.
func (r *Result) Release(e Engine) {
	e.DelRef(r.States)
	r.States = nil
}

type options struct {
	pool      *forkjoin.Pool
	maxlevels int
}

// Option configures a call to Run.
type Option func(*options)

// Workers sets the fork-join pool used to merge the images of the groups.
func Workers(p *forkjoin.Pool) Option {
	return func(o *options) {
		o.pool = p
	}
}

// MaxLevels stops the exploration after n iterations; n = 0 means no limit.
// The result is then an under-approximation of the reachable states.
func MaxLevels(n int) Option {
	return func(o *options) {
		o.maxlevels = n
	}
}

// explorer holds the nodes shared by all the iterations of Run.
type explorer struct {
	e        Engine
	sys      *mcfile.System
	reducer  *union.Reducer
	replacer ruddmc.Replacer
	present  []ruddmc.Node // current-state variables of each group
	held     []ruddmc.Node
}

func (x *explorer) hold(n ruddmc.Node) ruddmc.Node {
	x.held = append(x.held, x.e.AddRef(n))
	return n
}

func (x *explorer) release() {
	for _, n := range x.held {
		x.e.DelRef(n)
	}
}

func (x *explorer) failure(level, group int) error {
	return fmt.Errorf("reach: level %d, group %d: %w (%s)", level, group, union.ErrEngine, x.e.Error())
}

// next returns the successors of states by the relation of group g: the
// relational product over the current-state variables of the group, with
// next-state variables renamed afterward.
func (x *explorer) next(states ruddmc.Node, g int) ruddmc.Node {
	img := x.e.AppEx(states, x.sys.Groups[g].Relation, ruddmc.OPand, x.present[g])
	if img == nil {
		return nil
	}
	x.e.AddRef(img)
	defer x.e.DelRef(img)
	return x.e.Replace(img, x.replacer)
}

// Run computes the states of sys reachable from its initial states. At each
// iteration, the image of the newly found states by every group is computed,
// the visited states are removed, and the results are merged with a
// union.Reducer. The exploration stops when no new state is found, or when ctx
// is done. The caller must Release the result.
func Run(ctx context.Context, e Engine, sys *mcfile.System, opts ...Option) (*Result, error) {
	o := &options{}
	for _, f := range opts {
		f(o)
	}
	x := &explorer{e: e, sys: sys, reducer: union.NewReducer(e, o.pool)}
	defer x.release()

	next := make([]int, sys.TotalBits)
	for k := range next {
		next[k] = 2*k + 1
	}
	var err error
	if x.replacer, err = e.NewReplacer(next, mcfile.PresentVariables(sys.TotalBits)); err != nil {
		return nil, fmt.Errorf("reach: %w", err)
	}
	for k, g := range sys.Groups {
		vars := []int{}
		for _, v := range g.Variables {
			if v%2 == 0 {
				vars = append(vars, v)
			}
		}
		p := e.Makeset(vars)
		if p == nil {
			return nil, x.failure(0, k)
		}
		x.present = append(x.present, x.hold(p))
	}

	start := time.Now()
	states := e.AddRef(sys.Initial)
	frontier := e.AddRef(sys.Initial)
	defer func() { e.DelRef(frontier) }()
	drop := func() { e.DelRef(states) }

	levels := 0
	for {
		if err := ctx.Err(); err != nil {
			drop()
			return nil, err
		}
		if o.maxlevels > 0 && levels >= o.maxlevels {
			break
		}
		levels++
		fresh := make([]ruddmc.Node, 0, len(sys.Groups))
		release := func() {
			for _, n := range fresh {
				e.DelRef(n)
			}
		}
		for g := range sys.Groups {
			img := x.next(frontier, g)
			if img == nil {
				release()
				drop()
				return nil, x.failure(levels, g)
			}
			e.AddRef(img)
			n := e.Ite(states, e.False(), img)
			e.DelRef(img)
			if n == nil {
				release()
				drop()
				return nil, x.failure(levels, g)
			}
			fresh = append(fresh, e.AddRef(n))
		}
		found, err := x.reducer.Or(fresh)
		release()
		if err != nil {
			drop()
			return nil, fmt.Errorf("reach: level %d: %w", levels, err)
		}
		e.AddRef(found)
		e.DelRef(frontier)
		frontier = found
		if e.Equal(frontier, e.False()) {
			logger().Info("fixpoint reached", zap.Int("level", levels), zap.Duration("elapsed", time.Since(start)))
			break
		}
		all := e.Ite(states, e.True(), frontier)
		if all == nil {
			drop()
			return nil, x.failure(levels, -1)
		}
		e.AddRef(all)
		e.DelRef(states)
		states = all
		logger().Info("level", zap.Int("level", levels), zap.Int("new", e.Nodecount(frontier)), zap.Int("nodes", e.Nodecount(states)))
	}
	return &Result{
		States: states,
		Levels: levels,
		Count:  e.Satcountset(states, sys.Domain),
		Nodes:  e.Nodecount(states),
	}, nil
}
