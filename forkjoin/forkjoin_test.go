// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package forkjoin

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fib(p *Pool, n int) int {
	if n < 2 {
		return n
	}
	t := Spawn(p, func() int { return fib(p, n-1) })
	right := fib(p, n-2)
	return t.Sync() + right
}

func TestSpawnSync(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 16} {
		p := NewPool(workers)
		assert.Equal(t, 6765, fib(p, 20), "fib(20) with %d workers", workers)
	}
}

func TestDefaultWorkers(t *testing.T) {
	assert.Equal(t, runtime.GOMAXPROCS(0), NewPool(0).Workers())
	assert.Equal(t, runtime.GOMAXPROCS(0), NewPool(-3).Workers())
}

func TestSingleWorkerRunsInline(t *testing.T) {
	p := NewPool(1)
	var ran atomic.Bool
	task := Spawn(p, func() int {
		ran.Store(true)
		return 7
	})
	require.False(t, task.Forked())
	assert.False(t, ran.Load(), "deferred task should only run at Sync")
	assert.Equal(t, 7, task.Sync())
	assert.True(t, ran.Load())
	// a second Sync returns the cached result
	assert.Equal(t, 7, task.Sync())
}

func TestConcurrencyBounded(t *testing.T) {
	const workers = 3
	p := NewPool(workers)
	var running, peak atomic.Int32
	release := make(chan struct{})
	tasks := make([]*Task[int], 10)
	for k := range tasks {
		k := k
		tasks[k] = Spawn(p, func() int {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			<-release
			running.Add(-1)
			return k
		})
	}
	forked := 0
	for _, task := range tasks {
		if task.Forked() {
			forked++
		}
	}
	assert.Equal(t, workers-1, forked)
	close(release)
	for k, task := range tasks {
		assert.Equal(t, k, task.Sync())
	}
	assert.LessOrEqual(t, peak.Load(), int32(workers))
}
