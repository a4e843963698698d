// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"fmt"
	"math"
)

// ************************************************************

// cache is used for caching apply/exist etc. results
type cache struct {
	ratio int // value used to resize the caches as a factor of the number of nodes
	table []cacheData
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	uniqueAccess int // accesses to the unique node table
	uniqueHit    int // entries actually found in the the unique node table
	uniqueMiss   int // entries not found in the the unique node table
	opHit        int // entries found in the operator caches
	opMiss       int // entries not found in the operator caches
}

// cacheData is a unit of information stored in the Apply and ITE cache
type cacheData struct {
	res int
	a   int
	b   int
	c   int
}

// ************************************************************

// Different kind of caches used in the bdd

type applycache struct {
	cache          // Cache for apply results
	op    Operator // Current operation during an apply
}

type quantcache struct {
	cache     // Cache for exist and replace results
	id    int // Current cache id for quantifications
}

// appexcache are a mix of quant and apply caches
type appexcache struct {
	cache          // Cache for appex results
	id    int      // Current cache id for quantifications
	op    Operator // Current operator for appex
}

// ************************************************************

// Hash value modifiers for quantification
const cacheid_EXIST int = 0x0
const cacheid_APPEX int = 0x3
const cacheid_REPLACE int = 0x1

// ************************************************************

// Basic functions shared by all caches

func (bc *cache) init(size int) {
	bc.table = make([]cacheData, primeGte(size))
	bc.reset()
}

// resize grows the cache to follow the size of the node table, when a cache
// ratio (%) is set, or simply clears it otherwise.
func (bc *cache) resize(nodesize int) {
	if bc.ratio > 0 {
		bc.init((nodesize * bc.ratio) / 100)
		return
	}
	bc.reset()
}

func (bc *cache) reset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

// *************************************************************************
// Setup and shutdown

func (b *BDD) cacheinit() {
	size := b.cachesize
	if b.cacheratio > 0 && (b.nodesize*b.cacheratio)/100 > size {
		size = (b.nodesize * b.cacheratio) / 100
	}
	for _, c := range b.caches() {
		c.ratio = b.cacheratio
		c.init(size)
	}
}

func (b *BDD) caches() []*cache {
	return []*cache{
		&b.applycache.cache,
		&b.itecache,
		&b.quantcache.cache,
		&b.appexcache.cache,
		&b.replacecache.cache,
	}
}

func (b *BDD) cachereset() {
	for _, c := range b.caches() {
		c.reset()
	}
}

func (b *BDD) cacheresize() {
	for _, c := range b.caches() {
		c.resize(len(b.nodes))
	}
}

// ************************************************************
//
// Quantification Cache
//

// quantset2cache takes a variable list, similar to the ones generated with
// Makeset, and set the variables in the quantification cache.
func (b *BDD) quantset2cache(n int) error {
	if n < 2 {
		return fmt.Errorf("illegal variable (%d) in varset to cache", n)
	}
	b.quantsetID++
	if b.quantsetID == math.MaxInt32 {
		b.quantset = make([]int32, b.varnum)
		b.quantsetID = 1
	}
	for i := n; i > 1; i = b.nodes[i].high {
		b.quantset[b.nodes[i].level] = b.quantsetID
		b.quantlast = b.nodes[i].level
	}
	return nil
}

// ************************************************************

// stats prints information about the cache performance. The information
// contains the number of accesses to the unique node table and the number of
// times a node was (not) found there. Hit and miss count is also given for the
// operator caches.
func (c cacheStat) stats() string {
	res := fmt.Sprintf("Unique Access:  %d\n", c.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", c.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", c.uniqueMiss)
	res += fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d", c.opMiss)
	return res
}
