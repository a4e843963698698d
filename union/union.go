// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package union computes the disjunction of many BDD nodes with a balanced
// divide-and-conquer, where one half of every split is computed in parallel
// with the other.
package union

import (
	"errors"
	"fmt"

	"github.com/dalzilio/ruddmc"
	"github.com/dalzilio/ruddmc/forkjoin"
)

// Engine is the part of a BDD used by a Reducer. It is implemented by
// *ruddmc.BDD. Methods of an Engine must be safe for concurrent use.
type Engine interface {
	True() ruddmc.Node
	False() ruddmc.Node
	Ite(f, g, h ruddmc.Node) ruddmc.Node
	AddRef(n ruddmc.Node) ruddmc.Node
	DelRef(n ruddmc.Node) ruddmc.Node
	Error() string
}

// ErrEngine is wrapped by the errors returned when the engine fails to build a
// node, for instance when its node table cannot grow anymore.
var ErrEngine = errors.New("engine failure")

// Reducer computes unions of nodes with a fork-join pool.
type Reducer struct {
	e    Engine
	pool *forkjoin.Pool
}

// NewReducer returns a Reducer for engine e. A nil pool means a pool with one
// worker per available CPU.
func NewReducer(e Engine, pool *forkjoin.Pool) *Reducer {
	if pool == nil {
		pool = forkjoin.NewPool(0)
	}
	return &Reducer{e: e, pool: pool}
}

// Or returns the disjunction of all the elements of nodes; the union of the
// sets they denote. The result for an empty slice is False. Nodes are combined
// with Ite(a, True, b), over a balanced split of the slice; the grouping of
// operands does not change the result.
//
// Elements of nodes must stay valid during the call, which is the case for
// the nodes returned by the engine or protected with AddRef.
func (r *Reducer) Or(nodes []ruddmc.Node) (ruddmc.Node, error) {
	for k, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("union: nil node at index %d", k)
		}
	}
	res := r.or(nodes)
	if res == nil {
		return nil, fmt.Errorf("union of %d nodes: %w (%s)", len(nodes), ErrEngine, r.e.Error())
	}
	return res, nil
}

func (r *Reducer) or(nodes []ruddmc.Node) ruddmc.Node {
	e := r.e
	switch len(nodes) {
	case 0:
		return e.False()
	case 1:
		return nodes[0]
	case 2:
		return e.Ite(nodes[0], e.True(), nodes[1])
	case 3:
		tmp := e.AddRef(e.Ite(nodes[0], e.True(), nodes[1]))
		if tmp == nil {
			return nil
		}
		res := e.Ite(tmp, e.True(), nodes[2])
		e.DelRef(tmp)
		return res
	}
	mid := (len(nodes) + 1) / 2
	// the spawned half holds its own reference, so that its result survives
	// collections triggered before Sync
	task := forkjoin.Spawn(r.pool, func() ruddmc.Node {
		return e.AddRef(r.or(nodes[:mid]))
	})
	right := e.AddRef(r.or(nodes[mid:]))
	left := task.Sync()
	defer e.DelRef(left)
	defer e.DelRef(right)
	if left == nil || right == nil {
		return nil
	}
	return e.Ite(left, e.True(), right)
}

// Or is a shortcut for computing the union of nodes with a new Reducer.
func Or(e Engine, nodes ...ruddmc.Node) (ruddmc.Node, error) {
	return NewReducer(e, nil).Or(nodes)
}
