// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterleave(t *testing.T) {
	statebits := []int{2, 1, 3}
	var interleaveTests = []struct {
		proj     []int
		expected []int
	}{
		{[]int{0}, []int{0, 1, 2, 3}},
		{[]int{1}, []int{4, 5}},
		{[]int{2}, []int{6, 7, 8, 9, 10, 11}},
		{[]int{0, 2}, []int{0, 1, 2, 3, 6, 7, 8, 9, 10, 11}},
		{[]int{0, 1, 2}, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{nil, []int{}},
	}
	for _, tt := range interleaveTests {
		assert.Equal(t, tt.expected, Interleave(statebits, tt.proj), "projection %v", tt.proj)
	}
}

func TestInterleaveZeroBits(t *testing.T) {
	// a component without bits has no variables but still counts in the order
	assert.Equal(t, []int{0, 1, 2, 3}, Interleave([]int{0, 2}, []int{0, 1}))
	assert.Equal(t, []int{}, Interleave([]int{0, 2}, []int{0}))
}

func TestInterleavePairs(t *testing.T) {
	statebits := []int{3, 1, 4, 2}
	for _, proj := range [][]int{{0}, {1, 3}, {0, 2}, {0, 1, 2, 3}} {
		vars := Interleave(statebits, proj)
		for k := 0; k < len(vars); k += 2 {
			assert.Equal(t, 0, vars[k]%2, "present variables are even")
			assert.Equal(t, vars[k]+1, vars[k+1], "next variables follow present variables")
			if k > 0 {
				assert.Less(t, vars[k-1], vars[k])
			}
		}
	}
}

func TestPresentVariables(t *testing.T) {
	assert.Equal(t, []int{0, 2, 4}, PresentVariables(3))
	assert.Empty(t, PresentVariables(0))
}
