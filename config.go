// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

// configs stores the tunable parameters of a BDD. Values are set with the
// functional options passed to New.
type configs struct {
	varnum          int // number of BDD variables
	nodesize        int // initial number of nodes in the table
	cachesize       int // initial number of entries in each cache
	cacheratio      int // ratio (%) between cache size and node table size, 0 if caches never grow
	maxnodesize     int // maximal number of nodes (0 if no limit)
	maxnodeincrease int // maximal number of nodes added at each resize (0 if no limit)
	minfreenodes    int // ratio (%) of free nodes below which a GC is followed by a resize
}

func makeconfigs(varnum int) *configs {
	return &configs{
		varnum:          varnum,
		nodesize:        2*varnum + 2, // constants and one pair of nodes per variable
		cachesize:       _DEFAULTCACHESIZE,
		maxnodeincrease: _DEFAULTMAXNODEINC,
		minfreenodes:    _MINFREENODES,
	}
}

// Nodesize is an option for New that sets the initial size of the node table.
// The table grows when needed. Values too small to hold the constants and the
// variables are ignored.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is an option for New that sets a limit on the number of nodes.
// An operation that needs more nodes fails and returns nil. With the default
// value (0) the table can grow until memory is exhausted.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease is an option for New that bounds the number of nodes added
// to the table at each resize. Below this bound, the table doubles in size. The
// default is 1<<20 nodes; zero means no bound.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes is an option for New that sets the ratio (%) of free nodes that
// must remain after a garbage collection. With a ratio of 25, the table is
// resized when less than a quarter of the slots are free after collecting
// unused nodes. The default is 20.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize is an option for New that sets the initial number of entries in
// each operation cache. The default is 10 000. Non-positive values are ignored.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Cacheratio is an option for New that lets caches grow with the node table.
// With a ratio of r, caches have r entries for every 100 nodes after each
// resize. Typical values are 20 or 25. The default (0) keeps a fixed size.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}
