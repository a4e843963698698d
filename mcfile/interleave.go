// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

// Interleave returns the BDD variables used by the components in proj, for a
// vector where component i is encoded with statebits[i] bits. Each bit uses two
// consecutive variables, the current state followed by the next state, so that
// the variables of component i are the same whatever the projection. Slice proj
// must be strictly increasing.
func Interleave(statebits []int, proj []int) []int {
	res := []int{}
	cursor := 0
	j := 0
	for i := 0; i < len(statebits) && j < len(proj); i++ {
		if proj[j] != i {
			cursor += 2 * statebits[i]
			continue
		}
		for k := 0; k < statebits[i]; k++ {
			res = append(res, cursor, cursor+1)
			cursor += 2
		}
		j++
	}
	return res
}

// PresentVariables returns the variables encoding the current state of a
// vector with totalBits bits: 0, 2, ..., 2*(totalBits-1).
func PresentVariables(totalBits int) []int {
	res := make([]int, totalBits)
	for k := range res {
		res[k] = 2 * k
	}
	return res
}
