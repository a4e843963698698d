// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import "math/big"

// primeGte returns the smallest prime number greater or equal to src. Caches
// use a prime number of entries to spread the hash values.
func primeGte(src int) int {
	if src <= 2 {
		return 2
	}
	if src%2 == 0 {
		src++
	}
	for {
		// ProbablyPrime is 100% accurate for inputs less than 2⁶⁴.
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src = src + 2
	}
}
