// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"math"

	"go.uber.org/zap"
)

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in the BDD. We use only the first 21
// bits for encoding levels (so also the max number of variables).
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter (refcou), also
// used to stick nodes (like constants and variables) in the node list. It is
// egal to 1023 (10 bits).
const _MAXREFCOUNT int32 = 0x3FF

// _MARK is the bit of refcou used to mark nodes during a garbage collection.
const _MARK int32 = 0x200000

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTCACHESIZE is the initial number of entries in each operation cache.
const _DEFAULTCACHESIZE int = 10000

// node is an entry in the node table. When a slot is unused, we have low set
// to -1 and high set to the next free position.
type node struct {
	level  int32 // Order of the variable in the BDD
	low    int   // Reference to the false branch
	high   int   // Reference to the true branch
	refcou int32 // Count the number of external references
}

// nodekey is the key of the unicity table.
type nodekey struct {
	level int32
	low   int
	high  int
}

func (b *BDD) ismarked(n int) bool {
	return (b.nodes[n].refcou & _MARK) != 0
}

func (b *BDD) marknode(n int) {
	b.nodes[n].refcou |= _MARK
}

func (b *BDD) unmarknode(n int) {
	b.nodes[n].refcou &^= _MARK
}

func (b *BDD) level(n int) int32 {
	return b.nodes[n].level
}

func (b *BDD) low(n int) int {
	return b.nodes[n].low
}

func (b *BDD) high(n int) int {
	return b.nodes[n].high
}

// makenode returns the index of the node (level, low, high), creating it if
// needed. We return -1 and set the error status if the table is full and
// cannot be resized, or if one of the successors is itself an error.
func (b *BDD) makenode(level int32, low, high int) int {
	if low < 0 || high < 0 {
		return -1
	}
	b.uniqueAccess++
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low
	}
	key := nodekey{level, low, high}
	if res, ok := b.unique[key]; ok {
		b.uniqueHit++
		return res
	}
	b.uniqueMiss++
	// If no existing node, we build one. If there is no available spot
	// (b.freepos == 0), we try garbage collection and, as a last resort,
	// resizing the BDD list.
	if b.freepos == 0 {
		b.gbc()
		if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
			if err := b.noderesize(); err == nil {
				b.cacheresize()
			}
		}
		if b.freepos == 0 {
			b.seterror("%s (%d nodes)", errMemory, len(b.nodes))
			return -1
		}
	}
	// We can now build the new node in the first available spot
	b.produced++
	res := b.freepos
	b.freepos = b.nodes[res].high
	b.freenum--
	b.nodes[res] = node{level: level, low: low, high: high}
	b.unique[key] = res
	return res
}

func (b *BDD) noderesize() error {
	oldsize := len(b.nodes)
	nodesize := len(b.nodes)
	if (oldsize >= b.maxnodesize) && (b.maxnodesize > 0) {
		return errMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if (nodesize > b.maxnodesize) && (b.maxnodesize > 0) {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return errMemory
	}

	tmp := b.nodes
	b.nodes = make([]node, nodesize)
	copy(b.nodes, tmp)
	for n := oldsize; n < nodesize; n++ {
		b.nodes[n] = node{level: 0, low: -1, high: n + 1}
	}
	b.nodes[nodesize-1].high = b.freepos
	b.freepos = oldsize
	b.freenum += (nodesize - oldsize)

	logger().Debug("resize", zap.Int("from", oldsize), zap.Int("to", nodesize))
	return nil
}

func (b *BDD) markrec(n int) {
	if n < 2 || b.ismarked(n) || (b.nodes[n].low == -1) {
		return
	}
	b.marknode(n)
	b.markrec(b.nodes[n].low)
	b.markrec(b.nodes[n].high)
}

func (b *BDD) unmarkall() {
	for k, v := range b.nodes {
		if k < 2 || !b.ismarked(k) || (v.low == -1) {
			continue
		}
		b.unmarknode(k)
	}
}
