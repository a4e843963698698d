// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package union

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalzilio/ruddmc"
	"github.com/dalzilio/ruddmc/forkjoin"
)

// minterms returns n distinct states over nvar variables, as conjunctions of
// literals.
func minterms(t *testing.T, bdd *ruddmc.BDD, nvar, n int) []ruddmc.Node {
	t.Helper()
	res := make([]ruddmc.Node, n)
	for k := range res {
		lits := make([]ruddmc.Node, nvar)
		for v := range lits {
			if (k>>v)&1 == 1 {
				lits[v] = bdd.Ithvar(v)
			} else {
				lits[v] = bdd.NIthvar(v)
			}
		}
		res[k] = bdd.And(lits...)
		require.NotNil(t, res[k], bdd.Error())
	}
	return res
}

// countingEngine records the references taken and released by a Reducer,
// from all the goroutines of its pool.
type countingEngine struct {
	*ruddmc.BDD
	mu       sync.Mutex
	acquired int
	released int
}

func (c *countingEngine) AddRef(n ruddmc.Node) ruddmc.Node {
	c.mu.Lock()
	c.acquired++
	c.mu.Unlock()
	return c.BDD.AddRef(n)
}

func (c *countingEngine) DelRef(n ruddmc.Node) ruddmc.Node {
	c.mu.Lock()
	c.released++
	c.mu.Unlock()
	return c.BDD.DelRef(n)
}

func (c *countingEngine) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acquired, c.released
}

// acquisitions is the number of references taken for a union of n nodes: one
// for the intermediate result of three nodes, and one for each half of a
// split.
func acquisitions(n int) int {
	switch {
	case n < 3:
		return 0
	case n == 3:
		return 1
	}
	mid := (n + 1) / 2
	return 2 + acquisitions(mid) + acquisitions(n-mid)
}

func TestOrReleasesReferences(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 17, 64} {
		bdd, _ := ruddmc.New(8)
		e := &countingEngine{BDD: bdd}
		states := minterms(t, bdd, 8, n)
		res, err := NewReducer(e, forkjoin.NewPool(4)).Or(states)
		require.NoError(t, err, "union of %d nodes", n)
		assert.Equal(t, int64(n), bdd.Satcount(res).Int64(), "union of %d nodes", n)
		acquired, released := e.counts()
		assert.Equal(t, acquisitions(n), acquired, "references taken for %d nodes", n)
		assert.Equal(t, acquired, released, "references leaked for %d nodes", n)
	}
}

func TestOrBaseCases(t *testing.T) {
	bdd, err := ruddmc.New(8)
	require.NoError(t, err)
	states := minterms(t, bdd, 8, 64)
	r := NewReducer(bdd, forkjoin.NewPool(4))

	res, err := r.Or(nil)
	require.NoError(t, err)
	assert.True(t, bdd.Equal(res, bdd.False()), "empty union should be False")

	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 33, 64} {
		res, err := r.Or(states[:n])
		require.NoError(t, err, "union of %d nodes", n)
		assert.True(t, bdd.Equal(res, bdd.Or(states[:n]...)), "union of %d nodes", n)
		assert.Equal(t, int64(n), bdd.Satcount(res).Int64(), "number of states in the union of %d nodes", n)
	}
}

func TestOrSingleIsIdentity(t *testing.T) {
	bdd, _ := ruddmc.New(4)
	n := bdd.Or(bdd.Ithvar(0), bdd.NIthvar(3))
	res, err := Or(bdd, n)
	require.NoError(t, err)
	assert.Equal(t, *n, *res)
}

func TestOrOrderIndependent(t *testing.T) {
	bdd, _ := ruddmc.New(10)
	rnd := rand.New(rand.NewSource(7))
	nodes := make([]ruddmc.Node, 20)
	for k := range nodes {
		nodes[k] = bdd.And(bdd.Ithvar(rnd.Intn(10)), bdd.NIthvar(rnd.Intn(10)))
	}
	expected, err := Or(bdd, nodes...)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		rnd.Shuffle(len(nodes), func(a, b int) { nodes[a], nodes[b] = nodes[b], nodes[a] })
		actual, err := NewReducer(bdd, forkjoin.NewPool(1+i%4)).Or(nodes)
		require.NoError(t, err)
		assert.True(t, bdd.Equal(expected, actual), "permutation %d", i)
	}
}

// TestOrWithCollections uses a tiny node table so that garbage collections
// happen while the halves are computed in parallel.
func TestOrWithCollections(t *testing.T) {
	bdd, _ := ruddmc.New(10, ruddmc.Nodesize(30), ruddmc.Cacheratio(25))
	states := minterms(t, bdd, 10, 200)
	res, err := NewReducer(bdd, forkjoin.NewPool(8)).Or(states)
	require.NoError(t, err)
	assert.Equal(t, int64(200), bdd.Satcount(res).Int64())
	assert.False(t, bdd.Errored(), bdd.Error())
}

func TestOrErrors(t *testing.T) {
	bdd, _ := ruddmc.New(4)
	_, err := Or(bdd, bdd.True(), nil)
	assert.Error(t, err)

	// the node table can hold the operands, but not their union
	small, _ := ruddmc.New(12, ruddmc.Nodesize(26), ruddmc.Maxnodesize(40))
	pairs := make([]ruddmc.Node, 0, 11)
	for i := 0; i+1 < 12; i++ {
		pairs = append(pairs, small.And(small.Ithvar(i), small.NIthvar(i+1)))
	}
	require.False(t, small.Errored(), small.Error())
	_, err = Or(small, pairs...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEngine))
}
