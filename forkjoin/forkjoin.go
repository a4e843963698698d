// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package forkjoin provides spawn/sync primitives over a fixed budget of
// workers. A spawned task runs on its own goroutine when a worker is free;
// otherwise it is kept aside and executed by the goroutine that calls Sync, as
// a task that was never stolen from a work-stealing deque.
package forkjoin

import (
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of goroutines running spawned tasks. The caller of
// Spawn always counts as one worker, so a Pool of size 1 never starts new
// goroutines. A Pool can be shared by several computations.
type Pool struct {
	workers int
	sem     *semaphore.Weighted
}

// NewPool returns a Pool with the given number of workers. We use the value of
// GOMAXPROCS when workers is less than 1.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		workers: workers,
		sem:     semaphore.NewWeighted(int64(workers - 1)),
	}
}

// Workers returns the number of workers of p.
func (p *Pool) Workers() int {
	return p.workers
}

// Task is the handle of a spawned computation returning a value of type T.
type Task[T any] struct {
	fn     func() T
	done   chan struct{}
	res    T
	forked bool
	synced bool
}

// Spawn submits fn to pool p. The result is obtained with Sync, which must be
// called exactly once, by the goroutine that called Spawn.
func Spawn[T any](p *Pool, fn func() T) *Task[T] {
	t := &Task[T]{fn: fn}
	if p.workers > 1 && p.sem.TryAcquire(1) {
		t.forked = true
		t.done = make(chan struct{})
		go func() {
			defer p.sem.Release(1)
			defer close(t.done)
			t.res = fn()
		}()
	}
	return t
}

// Sync waits for the result of t. A task that did not get a worker is
// executed inline.
func (t *Task[T]) Sync() T {
	if t.synced {
		return t.res
	}
	t.synced = true
	if t.forked {
		<-t.done
		return t.res
	}
	t.res = t.fn()
	return t.res
}

// Forked reports whether t runs, or ran, on its own goroutine.
func (t *Task[T]) Forked() bool {
	return t.forked
}
