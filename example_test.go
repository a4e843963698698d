// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc_test

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dalzilio/ruddmc"
)

// This example shows the basic usage of the package: create a BDD, compute some
// expressions and output the result.
func Example_basic() {
	// Create a new BDD with 6 variables, 10 000 nodes and a cache size of 3 000
	// (initially).
	bdd, _ := ruddmc.New(6, ruddmc.Nodesize(10000), ruddmc.Cachesize(3000))
	// n1 is a set comprising the three variables {x2, x3, x5}. It can also be
	// interpreted as the Boolean expression: x2 & x3 & x5
	n1 := bdd.Makeset([]int{2, 3, 5})
	// n2 == x1 | !x3 | x4
	n2 := bdd.Or(bdd.Ithvar(1), bdd.NIthvar(3), bdd.Ithvar(4))
	// n3 == ∃ x2,x3,x5 . (n2 & x3)
	n3 := bdd.AndExist(n1, n2, bdd.Ithvar(3))
	fmt.Printf("Number of sat. assignments: %s\n", bdd.Satcount(n3))
	// Output:
	// Number of sat. assignments: 48
}

// This example shows how to save a Boolean function and load it in another
// BDD.
func ExampleBDD_WriteBinary() {
	src, _ := ruddmc.New(4)
	n := src.Or(src.And(src.Ithvar(0), src.Ithvar(1)), src.Ithvar(3))
	var buf bytes.Buffer
	if err := src.WriteBinary(&buf, binary.LittleEndian, n); err != nil {
		fmt.Println(err)
		return
	}
	dst, _ := ruddmc.New(8)
	res, err := dst.ReadBinary(&buf, binary.LittleEndian, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(dst.Satcount(res[0]), dst.Nodecount(res[0]))
	// Output:
	// 160 3
}
