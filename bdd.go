// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"fmt"
	"runtime"
	"sync"
)

// Node is a reference to an element of a BDD. It represents the atomic unit of
// interactions and computations within a BDD. A nil Node is returned by
// operations that fail; the reason is available with method Error.
type Node *int

// inode returns a Node for known nodes, such as constants and variables, that
// do not need to increase their reference count.
func inode(n int) Node {
	x := n
	return &x
}

var bddone Node = inode(1)

var bddzero Node = inode(0)

// BDD is a Binary Decision Diagram with a fixed (but extensible) number of
// variables. All the nodes of a BDD are stored in a single node table, shared
// by all the Boolean functions built from it.
//
// Every exported method can be called from several goroutines: operations are
// serialized on an internal lock. Nodes that must survive a garbage
// collection triggered by another goroutine should be protected with AddRef.
type BDD struct {
	mu            sync.Mutex
	varnum        int32           // number of BDD variables
	varset        [][2]int        // pair of nodes for the positive and negative occurrence of each variable
	refstack      []int           // internal node reference stack
	err           error           // error status to help chain operations
	nodes         []node          // list of all the BDD nodes. Constants are always kept at index 0 and 1
	unique        map[nodekey]int // unicity table, used to associate each triplet to a single node
	freenum       int             // number of free nodes
	freepos       int             // first free node
	produced      int             // total number of new nodes ever produced
	nodefinalizer func(n *int)    // finalizer used to decrement the ref count of external references
	quantset      []int32         // current variable set for quantifications
	quantsetID    int32           // current id used in quantset
	quantlast     int32           // current last variable to be quantified
	replaceid     int             // last identifier given to a Replacer
	applycache    applycache      // cache for apply results
	itecache      cache           // cache for ITE results
	quantcache    quantcache      // cache for exist results
	appexcache    appexcache      // cache for AppEx results
	replacecache  quantcache      // cache for Replace results
	gcstat                        // information about garbage collections
	cacheStat                     // information about cache usage
	configs                       // configurable parameters
}

// New returns a BDD with varnum variables, indexed in the interval
// [0..varnum). Options, such as Nodesize or Cachesize, can be used to tune the
// initial size of the node table and of the caches.
func New(varnum int, options ...func(*configs)) (*BDD, error) {
	if (varnum < 1) || (varnum > int(_MAXVAR)) {
		return nil, fmt.Errorf("bad number of variable (%d)", varnum)
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	b := &BDD{configs: *config}
	b.nodes = make([]node, b.nodesize)
	for k := range b.nodes {
		b.nodes[k] = node{level: 0, low: -1, high: k + 1}
	}
	b.nodes[len(b.nodes)-1].high = 0
	b.unique = make(map[nodekey]int, b.nodesize)
	// creating bddzero and bddone. We do not add them to the unique table.
	b.nodes[0] = node{level: 0, low: 0, high: 0, refcou: _MAXREFCOUNT}
	b.nodes[1] = node{level: 0, low: 1, high: 1, refcou: _MAXREFCOUNT}
	b.freepos = 2
	b.freenum = len(b.nodes) - 2
	b.refstack = make([]int, 0, 2*varnum+4)
	b.gcstat.history = []gcpoint{}
	b.cacheinit()
	b.nodefinalizer = func(n *int) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.calledfinalizers++
		if *n < len(b.nodes) && b.nodes[*n].refcou > 0 && b.nodes[*n].refcou < _MAXREFCOUNT {
			b.nodes[*n].refcou--
		}
	}
	if err := b.extendvarnum(int32(varnum)); err != nil {
		return nil, err
	}
	return b, nil
}

// extendvarnum adds the variables in [b.varnum..num) to the BDD. Constants
// always have the highest level.
func (b *BDD) extendvarnum(num int32) error {
	if (num < 1) || (num > _MAXVAR) {
		return b.seterrorf("bad number of variable (%d) in setVarnum", num)
	}
	if num < b.varnum {
		return b.seterrorf("cannot decrease the number of variables (%d < %d)", num, b.varnum)
	}
	b.nodes[0].level = num
	b.nodes[1].level = num
	b.initref()
	for k := b.varnum; k < num; k++ {
		v0 := b.makenode(k, 0, 1)
		if v0 < 0 {
			return b.seterrorf("cannot allocate new variable %d in setVarnum", k)
		}
		b.nodes[v0].refcou = _MAXREFCOUNT
		v1 := b.makenode(k, 1, 0)
		if v1 < 0 {
			return b.seterrorf("cannot allocate new variable %d in setVarnum", k)
		}
		b.nodes[v1].refcou = _MAXREFCOUNT
		b.varset = append(b.varset, [2]int{v0, v1})
		b.quantset = append(b.quantset, 0)
		b.varnum = k + 1
	}
	logger().Sugar().Debugf("set varnum to %d", b.varnum)
	return nil
}

// SetVarnum sets the number of BDD variables. It may be called more than once,
// but only to increase the number of variables.
func (b *BDD) SetVarnum(num int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if int32(num) == b.varnum {
		return nil
	}
	return b.extendvarnum(int32(num))
}

// Varnum returns the number of defined variables.
func (b *BDD) Varnum() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int(b.varnum)
}

// ************************************************************

// retnode creates a Node for external use and sets a finalizer on it so that we
// can reclaim the ressource during GC.
func (b *BDD) retnode(n int) Node {
	if n < 0 || n >= len(b.nodes) {
		return nil
	}
	if n == 0 {
		return bddzero
	}
	if n == 1 {
		return bddone
	}
	x := n
	if b.nodes[n].refcou < _MAXREFCOUNT {
		b.nodes[n].refcou++
		b.setfinalizers++
		runtime.SetFinalizer(&x, b.nodefinalizer)
	}
	return &x
}

// checkptr returns an error if n is not a valid, active node of the BDD.
func (b *BDD) checkptr(n Node) error {
	switch {
	case n == nil:
		return fmt.Errorf("illegal acces to node (nil value)")
	case (*n < 0) || (*n >= len(b.nodes)):
		return fmt.Errorf("illegal acces to node %d", *n)
	case (*n >= 2) && (b.nodes[*n].low == -1):
		return fmt.Errorf("illegal acces to node %d", *n)
	}
	return nil
}

// ************************************************************

// True returns the constant true BDD.
func (b *BDD) True() Node {
	return bddone
}

// False returns the constant false BDD.
func (b *BDD) False() Node {
	return bddzero
}

// From returns a (constant) Node from a boolean value.
func (b *BDD) From(v bool) Node {
	if v {
		return bddone
	}
	return bddzero
}

// Ithvar returns a BDD representing the i'th variable on success, otherwise we
// set the error status in the BDD and returns nil. The requested variable must
// be in the range [0..Varnum).
func (b *BDD) Ithvar(i int) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if (i < 0) || (int32(i) >= b.varnum) {
		return b.seterror("unknown variable used (%d) in call to ithvar", i)
	}
	// we do not need to reference count variables
	return inode(b.varset[i][0])
}

// NIthvar returns a bdd representing the negation of the i'th variable on
// success, otherwise nil. See *Ithvar* for further info.
func (b *BDD) NIthvar(i int) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if (i < 0) || (int32(i) >= b.varnum) {
		return b.seterror("unknown variable used (%d) in call to nithvar", i)
	}
	return inode(b.varset[i][1])
}

// Label returns the variable (index) corresponding to node n in the BDD. We set
// the BDD to its error state and return -1 if we try to access a constant node.
func (b *BDD) Label(n Node) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		b.seterror("%s in call to Label", err)
		return -1
	}
	if *n < 2 {
		b.seterror("try to access label of constant node")
		return -1
	}
	return int(b.nodes[*n].level)
}

// Low returns the false branch of a BDD or nil if there is an error.
func (b *BDD) Low(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("%s in call to Low", err)
	}
	return b.retnode(b.nodes[*n].low)
}

// High returns the true branch of a BDD or nil if there is an error.
func (b *BDD) High(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("%s in call to High", err)
	}
	return b.retnode(b.nodes[*n].high)
}
