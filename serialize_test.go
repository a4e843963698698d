// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/rand"
	"testing"
)

// randomFunction returns a random Boolean function built from nvar variables.
func randomFunction(bdd *BDD, rnd *rand.Rand, nvar, steps int) Node {
	res := bdd.From(rnd.Intn(2) == 0)
	for i := 0; i < steps; i++ {
		v := lit(bdd, rnd.Intn(nvar), rnd.Intn(2))
		res = bdd.Apply(res, v, Operator(rnd.Intn(int(OPinvimp)+1)))
	}
	return res
}

func TestBinaryRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		src, _ := New(8)
		nodes := []Node{src.True(), src.False()}
		for k := 0; k < 5; k++ {
			nodes = append(nodes, randomFunction(src, rnd, 8, 12))
		}
		var buf bytes.Buffer
		if err := src.WriteBinary(&buf, order, nodes...); err != nil {
			t.Fatal(err)
		}
		data := buf.Bytes()
		dst, _ := New(12, Nodesize(20))
		res, err := dst.ReadBinary(bytes.NewReader(data), order, len(nodes))
		if err != nil {
			t.Fatal(err)
		}
		if len(res) != len(nodes) {
			t.Fatalf("expected %d roots, actual %d", len(nodes), len(res))
		}
		// the same nodes written from the copy give the same stream
		var again bytes.Buffer
		if err := dst.WriteBinary(&again, order, res...); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, again.Bytes()) {
			t.Errorf("%s: stream written from the copy differs from the original", order)
		}
		for k := range nodes {
			if src.Nodecount(nodes[k]) != dst.Nodecount(res[k]) {
				t.Errorf("%s: root %d has %d nodes in the copy, expected %d", order, k, dst.Nodecount(res[k]), src.Nodecount(nodes[k]))
			}
		}
	}
}

func TestBinaryTruncated(t *testing.T) {
	src, _ := New(4)
	n := src.Or(src.And(src.Ithvar(0), src.Ithvar(1)), src.NIthvar(3))
	var buf bytes.Buffer
	if err := src.WriteBinary(&buf, binary.LittleEndian, n); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	for size := 0; size < len(data); size++ {
		dst, _ := New(4)
		_, err := dst.ReadBinary(bytes.NewReader(data[:size]), binary.LittleEndian, 1)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("prefix of %d bytes: expected unexpected EOF, actual %v", size, err)
		}
	}
}

// stream encodes a list of records followed by roots, without any check.
func stream(records []binaryNode, roots ...uint64) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint64(len(records)))
	for _, r := range records {
		binary.Write(&buf, binary.LittleEndian, r)
	}
	binary.Write(&buf, binary.LittleEndian, roots)
	return buf.Bytes()
}

func TestBinaryMalformed(t *testing.T) {
	var malformedTests = []struct {
		name  string
		input []byte
	}{
		{"unknown variable", stream([]binaryNode{{Level: 4, Low: 0, High: 1}}, 2)},
		{"negative level", stream([]binaryNode{{Level: -1, Low: 0, High: 1}}, 2)},
		{"forward reference", stream([]binaryNode{{Level: 0, Low: 0, High: 3}, {Level: 1, Low: 0, High: 1}}, 2)},
		{"variable order", stream([]binaryNode{{Level: 2, Low: 0, High: 1}, {Level: 3, Low: 0, High: 2}}, 3)},
		{"undefined root", stream([]binaryNode{{Level: 2, Low: 0, High: 1}}, 3)},
	}
	for _, tt := range malformedTests {
		bdd, _ := New(4)
		if _, err := bdd.ReadBinary(bytes.NewReader(tt.input), binary.LittleEndian, 1); !errors.Is(err, ErrBinary) {
			t.Errorf("%s: expected ErrBinary, actual %v", tt.name, err)
		}
	}
}

func TestBinaryConstants(t *testing.T) {
	bdd, _ := New(2)
	res, err := bdd.ReadBinary(bytes.NewReader(stream(nil, 1, 0)), binary.LittleEndian, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bdd.Equal(res[0], bdd.True()) || !bdd.Equal(res[1], bdd.False()) {
		t.Errorf("expected True and False")
	}
}
