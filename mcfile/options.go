// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import "encoding/binary"

// Layout is the position of the transition relations in a file.
type Layout int

const (
	// LayoutInterleaved stores the relation of each group right after its
	// projections.
	LayoutInterleaved Layout = iota
	// LayoutSplit stores the projections of all the groups, followed by all
	// the relations.
	LayoutSplit
)

func (l Layout) String() string {
	switch l {
	case LayoutInterleaved:
		return "interleaved"
	case LayoutSplit:
		return "split"
	}
	return "unknown"
}

// maxVariables is the largest number of BDD variables accepted by ruddmc.
const maxVariables = 0x1FFFFF

type options struct {
	name         string
	order        binary.ByteOrder
	layout       Layout
	maxVector    int
	maxStateBits int
	maxGroups    int
}

func makeoptions(opts []Option) *options {
	o := &options{
		order:        binary.NativeEndian,
		layout:       LayoutInterleaved,
		maxVector:    1 << 16,
		maxStateBits: 64,
		maxGroups:    1 << 20,
	}
	for _, f := range opts {
		f(o)
	}
	return o
}

// Option is a configuration function used with Decode, ReadFile and Encode.
type Option func(*options)

// Order sets the byte order of all the integers in the file. The default is
// the native order of the machine.
func Order(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.order = order
		}
	}
}

// GroupLayout sets the position of the transition relations. The default is
// LayoutInterleaved.
func GroupLayout(l Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// Filename sets the name used in error messages. It is set by ReadFile.
func Filename(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// MaxVectorLength bounds the length of the state vector. The default is 65536.
func MaxVectorLength(n int) Option {
	return func(o *options) {
		o.maxVector = n
	}
}

// MaxStateBits bounds the number of bits of each state component. The
// default is 64.
func MaxStateBits(n int) Option {
	return func(o *options) {
		o.maxStateBits = n
	}
}

// MaxGroups bounds the number of transition groups. The default is 1<<20.
func MaxGroups(n int) Option {
	return func(o *options) {
		o.maxGroups = n
	}
}
