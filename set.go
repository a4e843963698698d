// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

// And returns the logical 'and' of a sequence of nodes.
func (b *BDD) And(n ...Node) Node {
	switch len(n) {
	case 0:
		return bddone
	case 1:
		return n[0]
	}
	return b.Apply(n[0], b.And(n[1:]...), OPand)
}

// Or returns the logical 'or' of a sequence of BDDs.
func (b *BDD) Or(n ...Node) Node {
	switch len(n) {
	case 0:
		return bddzero
	case 1:
		return n[0]
	}
	return b.Apply(n[0], b.Or(n[1:]...), OPor)
}

// Imp returns the logical 'implication' between two BDDs.
func (b *BDD) Imp(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPimp)
}

// Equiv returns the logical 'bi-implication' between two BDDs.
func (b *BDD) Equiv(n1, n2 Node) Node {
	return b.Apply(n1, n2, OPbiimp)
}

// Equal tests equivalence between nodes. Since nodes are shared, two nodes of
// the same BDD are equivalent when they have the same index.
func (b *BDD) Equal(n1, n2 Node) bool {
	if n1 == n2 {
		return true
	}
	if n1 == nil || n2 == nil {
		return false
	}
	return *n1 == *n2
}

// AndExist returns the "relational composition" of two nodes with respect to
// varset, meaning the result of (Exists varset . n1 & n2).
func (b *BDD) AndExist(varset, n1, n2 Node) Node {
	return b.AppEx(n1, n2, OPand, varset)
}
