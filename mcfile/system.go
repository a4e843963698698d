// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import "github.com/dalzilio/ruddmc"

// System is a symbolic transition system. All its nodes hold a reference
// taken when the file was decoded; they stay valid until Release.
type System struct {
	VectorLength int
	StateBits    []int // number of bits of each component of the vector
	ActionBits   int
	TotalBits    int         // sum of StateBits
	Initial      ruddmc.Node // initial states
	Domain       ruddmc.Node // set of the current-state variables of the whole vector
	Groups       []Group
}

// Group is a transition group of a System.
type Group struct {
	Read       []int       // components read by the group
	Write      []int       // components written by the group
	Projection []int       // union of Read and Write
	Variables  []int       // current and next state variables of Projection
	Domain     ruddmc.Node // set of Variables
	Relation   ruddmc.Node // transition relation
}

// Relations returns the transition relation of every group.
func (s *System) Relations() []ruddmc.Node {
	res := make([]ruddmc.Node, len(s.Groups))
	for k, g := range s.Groups {
		res[k] = g.Relation
	}
	return res
}

// Domains returns the set of variables of every group.
func (s *System) Domains() []ruddmc.Node {
	res := make([]ruddmc.Node, len(s.Groups))
	for k, g := range s.Groups {
		res[k] = g.Domain
	}
	return res
}

// Release drops the references held by the nodes of s. The System should not
// be used afterwards.
func (s *System) Release(e Engine) {
	e.DelRef(s.Initial)
	e.DelRef(s.Domain)
	for _, g := range s.Groups {
		e.DelRef(g.Domain)
		e.DelRef(g.Relation)
	}
	s.Initial, s.Domain, s.Groups = nil, nil, nil
}
