// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// binaryNode is the record used for each node in the binary format. Successors
// are encoded as 0 (False), 1 (True) or k+2 for the k-th record of the stream.
type binaryNode struct {
	Level int32
	Low   uint64
	High  uint64
}

// WriteBinary writes the nodes reachable from n... on w, using byte order
// order. The stream starts with the number of nodes (uint64), followed by one
// record for each node, such that successors are always written before their
// parents, and ends with the index of every node in n... (uint64). The result
// can be read back with ReadBinary, possibly in a different BDD with at least
// as many variables.
func (b *BDD) WriteBinary(w io.Writer, order binary.ByteOrder, n ...Node) error {
	b.mu.Lock()
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			b.mu.Unlock()
			return fmt.Errorf("%w in call to WriteBinary", err)
		}
	}
	index := map[int]uint64{0: 0, 1: 1}
	records := []binaryNode{}
	for _, v := range n {
		b.postorder(*v, index, &records)
	}
	roots := make([]uint64, len(n))
	for k, v := range n {
		roots[k] = index[*v]
	}
	b.mu.Unlock()

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, order, uint64(len(records))); err != nil {
		return err
	}
	for _, r := range records {
		if err := binary.Write(bw, order, r); err != nil {
			return err
		}
	}
	if err := binary.Write(bw, order, roots); err != nil {
		return err
	}
	return bw.Flush()
}

// postorder appends the nodes reachable from n, not already in index, to
// records with their successors first.
func (b *BDD) postorder(n int, index map[int]uint64, records *[]binaryNode) {
	if _, ok := index[n]; ok {
		return
	}
	low, high := b.low(n), b.high(n)
	b.postorder(low, index, records)
	b.postorder(high, index, records)
	index[n] = uint64(len(*records) + 2)
	*records = append(*records, binaryNode{
		Level: b.level(n),
		Low:   index[low],
		High:  index[high],
	})
}

// ReadBinary reads a stream produced by WriteBinary and returns the count
// nodes found at its end. The number of roots is not part of the stream so it
// must be known by the caller. We return an error wrapping io.ErrUnexpectedEOF
// if the stream is truncated, and an error wrapping ErrBinary if the records
// are not consistent: unknown variable, reference to a node not yet defined,
// or successor with a smaller level than its parent. Nodes are returned with a
// finalizer, like the result of any other operation.
func (b *BDD) ReadBinary(r io.Reader, order binary.ByteOrder, count int) ([]Node, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative number of roots (%d)", ErrBinary, count)
	}
	var nodecount uint64
	if err := readfull(r, order, &nodecount); err != nil {
		return nil, fmt.Errorf("reading node count: %w", err)
	}
	varnum := int32(b.Varnum())
	levels := []int32{}
	records := make([]binaryNode, 0, min(nodecount, 1<<16))
	level := func(k uint64) int32 {
		if k < 2 {
			return varnum
		}
		return levels[k-2]
	}
	for k := uint64(0); k < nodecount; k++ {
		var rec binaryNode
		if err := readfull(r, order, &rec); err != nil {
			return nil, fmt.Errorf("reading node %d: %w", k, err)
		}
		switch {
		case rec.Level < 0 || rec.Level >= varnum:
			return nil, fmt.Errorf("%w: node %d has unknown variable %d", ErrBinary, k, rec.Level)
		case rec.Low >= k+2 || rec.High >= k+2:
			return nil, fmt.Errorf("%w: node %d refers to an undefined node", ErrBinary, k)
		case level(rec.Low) <= rec.Level || level(rec.High) <= rec.Level:
			return nil, fmt.Errorf("%w: node %d breaks the variable order", ErrBinary, k)
		}
		levels = append(levels, rec.Level)
		records = append(records, rec)
	}
	roots := make([]uint64, count)
	for k := range roots {
		if err := readfull(r, order, &roots[k]); err != nil {
			return nil, fmt.Errorf("reading root %d: %w", k, err)
		}
		if roots[k] >= nodecount+2 {
			return nil, fmt.Errorf("%w: root %d refers to an undefined node", ErrBinary, k)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.varnum < varnum {
		return nil, fmt.Errorf("%w: number of variables changed while reading", ErrBinary)
	}
	built := make([]int, len(records)+2)
	built[0], built[1] = 0, 1
	b.initref()
	for k, rec := range records {
		res := b.makenode(rec.Level, built[rec.Low], built[rec.High])
		if res < 0 {
			b.initref()
			return nil, b.seterrorf("cannot build node %d in call to ReadBinary", k)
		}
		built[k+2] = b.pushref(res)
	}
	res := make([]Node, count)
	for k, v := range roots {
		res[k] = b.retnode(built[v])
	}
	b.initref()
	return res, nil
}

// readfull reads a fixed-size value and reports any short read as
// io.ErrUnexpectedEOF, even when no byte at all is available.
func readfull(r io.Reader, order binary.ByteOrder, data any) error {
	err := binary.Read(r, order, data)
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
