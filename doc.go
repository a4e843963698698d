// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package ruddmc defines a concrete type for Binary Decision Diagrams (BDD), a
data structure used to efficiently represent Boolean functions over a fixed set
of variables or, equivalently, sets of Boolean vectors with a fixed size. It is
the engine used by the symbolic model-checking packages of this module (see
packages mcfile, union and reach).

# Basics

Each BDD has a number of variables, Varnum, declared when it is initialized
(using the method New) and that can only grow afterwards with SetVarnum. Each
variable is represented by an (integer) index in the interval [0..Varnum),
called a level.

Most operations over BDD return a Node; that is a pointer to a "vertex" in the
BDD that includes a variable level, and the address of the low and high branch
for this node. We use integer to represent the address of Nodes, with the
convention that 1 (respectively 0) is the address of the constant function True
(respectively False). Operations that fail return a nil Node and set the error
status of the BDD, that can be checked with Errored and Error.

The data structures and algorithms are an adaptation of those found in the
C-library BuDDy, developed by Jorn Lind-Nielsen. The unicity table is a
standard Go map.

# Memory management

Nodes are reclaimed by a mark and sweep collector that runs when the node table
is full, before trying to resize it. Nodes returned by an operation carry a
reference that is released by a finalizer, when the Go runtime reclaims the
Node, so that casual users never have to deal with reference counts. Code that
needs a tighter control can use AddRef and DelRef to protect a node explicitly;
every call to AddRef must be matched by a call to DelRef.

# Concurrency

All the exported methods of a BDD can be used concurrently: they are serialized
on a lock owned by the BDD. A node is protected from garbage collection only by
its references. Goroutines that share a BDD should hold an explicit reference
(AddRef) on the nodes they compute until they are combined or dropped.

# Serialization

Method WriteBinary saves a set of nodes in a compact binary format, with nodes
in bottom-up order, that can be loaded back with ReadBinary. This is the format
used for the predicates embedded in the files read by package mcfile.
*/
package ruddmc
