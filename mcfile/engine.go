// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import (
	"encoding/binary"
	"io"

	"github.com/dalzilio/ruddmc"
)

// Engine is the part of the BDD engine used to decode a file. It is
// implemented by *ruddmc.BDD.
type Engine interface {
	Varnum() int
	SetVarnum(num int) error
	Makeset(varset []int) ruddmc.Node
	ReadBinary(r io.Reader, order binary.ByteOrder, count int) ([]ruddmc.Node, error)
	AddRef(n ruddmc.Node) ruddmc.Node
	DelRef(n ruddmc.Node) ruddmc.Node
	Error() string
}

// Writer is the part of the BDD engine used to encode a file.
type Writer interface {
	WriteBinary(w io.Writer, order binary.ByteOrder, n ...ruddmc.Node) error
}
