// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import "fmt"

// Merge returns the union of two strictly increasing slices as a new strictly
// increasing slice. Values found in both a and b are kept only once.
func Merge(a, b []int) []int {
	res := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			res = append(res, a[i])
			i++
		case a[i] > b[j]:
			res = append(res, b[j])
			j++
		default:
			res = append(res, a[i])
			i++
			j++
		}
	}
	res = append(res, a[i:]...)
	return append(res, b[j:]...)
}

// ValidProjection checks that p is a strictly increasing list of components of
// a vector of length n.
func ValidProjection(p []int, n int) error {
	for k, v := range p {
		if v < 0 || v >= n {
			return fmt.Errorf("component %d out of range [0, %d)", v, n)
		}
		if k > 0 && p[k-1] >= v {
			return fmt.Errorf("components not strictly increasing (%d before %d)", p[k-1], v)
		}
	}
	return nil
}
