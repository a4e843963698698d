// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	var mergeTests = []struct {
		a, b     []int
		expected []int
	}{
		{[]int{0, 2, 4}, []int{1, 2, 5}, []int{0, 1, 2, 4, 5}},
		{nil, nil, []int{}},
		{[]int{3}, nil, []int{3}},
		{nil, []int{1, 7}, []int{1, 7}},
		{[]int{1, 2, 3}, []int{1, 2, 3}, []int{1, 2, 3}},
		{[]int{0, 1}, []int{5, 6, 9}, []int{0, 1, 5, 6, 9}},
		{[]int{5, 6, 9}, []int{0, 1}, []int{0, 1, 5, 6, 9}},
	}
	for _, tt := range mergeTests {
		actual := Merge(tt.a, tt.b)
		assert.Equal(t, tt.expected, actual, "Merge(%v, %v)", tt.a, tt.b)
		assert.GreaterOrEqual(t, cap(actual), len(tt.a)+len(tt.b))
	}
}

// randomSet returns a strictly increasing subset of [0, n).
func randomSet(rnd *rand.Rand, n int) []int {
	res := []int{}
	for v := 0; v < n; v++ {
		if rnd.Intn(3) == 0 {
			res = append(res, v)
		}
	}
	return res
}

func TestMergeIsUnion(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		a, b := randomSet(rnd, 30), randomSet(rnd, 30)
		set := map[int]bool{}
		for _, v := range append(append([]int{}, a...), b...) {
			set[v] = true
		}
		expected := []int{}
		for v := range set {
			expected = append(expected, v)
		}
		sort.Ints(expected)
		actual := Merge(a, b)
		assert.Equal(t, expected, actual)
		assert.NoError(t, ValidProjection(actual, 30))
	}
}

func TestValidProjection(t *testing.T) {
	assert.NoError(t, ValidProjection(nil, 0))
	assert.NoError(t, ValidProjection([]int{0, 3, 4}, 5))
	assert.Error(t, ValidProjection([]int{0, 5}, 5), "out of range")
	assert.Error(t, ValidProjection([]int{-1}, 5), "negative")
	assert.Error(t, ValidProjection([]int{2, 2}, 5), "duplicate")
	assert.Error(t, ValidProjection([]int{3, 1}, 5), "decreasing")
}
