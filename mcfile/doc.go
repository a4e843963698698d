// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package mcfile reads and writes symbolic transition systems stored in a binary
file. A file describes a state vector (number of integers and the number of
bits used to encode each of them), a set of initial states, and a list of
transition groups. Each group gives the components of the vector that it reads
and writes, together with a transition relation over these components.

Predicates are stored with the binary format of package ruddmc. A state
component with b bits uses 2*b BDD variables, interleaving the bits of the
current state (even variables) with the ones of the next state (odd
variables), in the order of the vector.

The layout of a file, where every integer is an int32 with the byte order
selected with Order (native by default), is:

	vectorLength
	stateBits[vectorLength]
	actionBits
	-1                       marker for the initial states
	initial states           binary BDD with one root
	numberOfGroups
	for each group
	    readLength writeLength
	    read[readLength]     strictly increasing
	    write[writeLength]   strictly increasing
	    relation             binary BDD with one root

With GroupLayout(LayoutSplit), the projections of all the groups come first,
followed by all the relations.
*/
package mcfile
