// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"go.uber.org/zap"
)

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation.
type gcstat struct {
	setfinalizers    uint64    // Total number of external references to BDD nodes
	calledfinalizers uint64    // Number of external references that were freed
	history          []gcpoint // Snaphot of GC stats at each occurrence
}

type gcpoint struct {
	nodes            int // Total number of allocated nodes in the nodetable
	freenodes        int // Number of free nodes in the nodetable
	setfinalizers    int // Total number of external references to BDD nodes
	calledfinalizers int // Number of external references that were freed
}

// *************************************************************************

// AddRef increases the reference count on node n and returns n so that calls
// can be easily chained together. A call to AddRef can never raise an error,
// even if we access an unused node, a nil value, or a value outside the range
// of the BDD.
//
// Nodes with a positive reference count are never reclaimed during garbage
// collection. Every call to AddRef should be matched by a call to DelRef.
func (b *BDD) AddRef(n Node) Node {
	if n == nil || *n < 2 {
		return n
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if *n >= len(b.nodes) || b.nodes[*n].low == -1 {
		return n
	}
	if b.nodes[*n].refcou < _MAXREFCOUNT {
		b.nodes[*n].refcou++
	}
	return n
}

// DelRef decreases the reference count on a node and returns n so that calls
// can be easily chained together. A call to DelRef can never raise an error.
// Nodes whose count reached the maximal value are never released.
func (b *BDD) DelRef(n Node) Node {
	if n == nil || *n < 2 {
		return n
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if *n >= len(b.nodes) || b.nodes[*n].low == -1 {
		return n
	}
	if b.nodes[*n].refcou > 0 && b.nodes[*n].refcou < _MAXREFCOUNT {
		b.nodes[*n].refcou--
	}
	return n
}

// GC explicitly starts a garbage collection of unused nodes. It is never
// necessary to call GC, since collections are triggered when the node table is
// full, but it can be used to check which nodes survive.
func (b *BDD) GC() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initref()
	b.gbc()
}

// gbc is the garbage collector called for reclaiming memory, inside a call to
// makenode, when there are no free positions available. Allocated nodes that
// are not reclaimed do not move.
func (b *BDD) gbc() {
	logger().Debug("starting GC", zap.Int("nodes", len(b.nodes)), zap.Int("free", b.freenum))
	b.gcstat.history = append(b.gcstat.history, gcpoint{
		nodes:            len(b.nodes),
		freenodes:        b.freenum,
		setfinalizers:    int(b.gcstat.setfinalizers),
		calledfinalizers: int(b.gcstat.calledfinalizers),
	})
	b.gcstat.setfinalizers = 0
	b.gcstat.calledfinalizers = 0
	// we mark the nodes in the refstack to avoid collecting them
	for _, r := range b.refstack {
		b.markrec(r)
	}
	// we also protect nodes with a positive refcount (and therefore also the
	// ones with a MAXREFCOUNT, such has variables)
	for k := range b.nodes {
		if b.nodes[k].refcou > 0 {
			b.markrec(k)
		}
	}
	b.freepos = 0
	b.freenum = 0
	// we do a pass through the nodes list to void the unmarked nodes. After
	// finishing this pass, b.freepos points to the first free position in
	// b.nodes, or it is 0 if we found none.
	for n := len(b.nodes) - 1; n > 1; n-- {
		if b.ismarked(n) && (b.nodes[n].low != -1) {
			b.unmarknode(n)
			continue
		}
		if b.nodes[n].low != -1 {
			delete(b.unique, nodekey{b.nodes[n].level, b.nodes[n].low, b.nodes[n].high})
		}
		b.nodes[n] = node{level: 0, low: -1, high: b.freepos}
		b.freepos = n
		b.freenum++
	}
	// results in the caches may point to reclaimed nodes
	b.cachereset()
	logger().Debug("end GC", zap.Int("free", b.freenum))
}

// *************************************************************************
// private functions to manipulate the refstack; used to prevent nodes that are
// currently being built (e.g. transient nodes built during an apply) to be
// reclaimed during GC.

func (b *BDD) initref() {
	b.refstack = b.refstack[:0]
}

func (b *BDD) pushref(n int) int {
	b.refstack = append(b.refstack, n)
	return n
}

func (b *BDD) popref(a int) {
	b.refstack = b.refstack[:len(b.refstack)-a]
}
