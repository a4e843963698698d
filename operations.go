// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"fmt"
	"math/big"
	"sort"
)

// Scanset returns the set of variables (levels) found when following the high
// branch of node n. This is the dual of function Makeset. The result may be nil
// if there is an error. The result follows the level order.
func (b *BDD) Scanset(n Node) []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		b.seterror("%s in call to Scanset", err)
		return nil
	}
	return b.scanset(*n)
}

func (b *BDD) scanset(n int) []int {
	if n < 2 {
		return nil
	}
	res := []int{}
	for i := n; i > 1; i = b.high(i) {
		res = append(res, int(b.level(i)))
	}
	return res
}

// Makeset returns a node corresponding to the conjunction (the cube) of all the
// variable in varset, in their positive form. Duplicates are ignored and the
// order of varset is not relevant, so that Scanset(Makeset(a)) is the sorted
// version of a. It returns nil and sets the error condition in b if one of the
// variables is outside the scope of the BDD (see documentation for function
// *Ithvar*).
func (b *BDD) Makeset(varset []int) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	vars := make([]int, len(varset))
	copy(vars, varset)
	sort.Ints(vars)
	for _, v := range vars {
		if v < 0 || int32(v) >= b.varnum {
			return b.seterror("unknown variable used (%d) in call to Makeset", v)
		}
	}
	b.initref()
	// we build the cube bottom-up, starting from the highest level
	res := 1
	for k := len(vars) - 1; k >= 0; k-- {
		if k < len(vars)-1 && vars[k] == vars[k+1] {
			continue
		}
		res = b.makenode(int32(vars[k]), 0, res)
		if res < 0 {
			return b.seterror("cannot build set in call to Makeset")
		}
		b.pushref(res)
	}
	b.initref()
	return b.retnode(res)
}

// Not returns the negation of the expression corresponding to node n. It
// negates a BDD by exchanging all references to the zero-terminal with
// references to the one-terminal and vice versa.
func (b *BDD) Not(n Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("%s in call to Not", err)
	}
	b.initref()
	b.pushref(*n)
	res := b.not(*n)
	b.popref(1)
	return b.retnode(res)
}

func (b *BDD) not(n int) int {
	if n < 0 {
		return -1
	}
	if n == 0 {
		return 1
	}
	if n == 1 {
		return 0
	}
	if res := b.matchnot(n); res >= 0 {
		return res
	}
	low := b.pushref(b.not(b.low(n)))
	high := b.pushref(b.not(b.high(n)))
	res := b.makenode(b.level(n), low, high)
	b.popref(2)
	return b.setnot(n, res)
}

// Apply performs all of the basic bdd operations with two operands, such as
// AND, OR etc. Left and right are the operand and opr is the requested
// operation and must be one of the following:
//
//	Identifier    Description            Truth table
//
//	OPand         logical and            [0,0,0,1]
//	OPxor         logical xor            [0,1,1,0]
//	OPor          logical or             [0,1,1,1]
//	OPnand        logical not-and        [1,1,1,0]
//	OPnor         logical not-or         [1,0,0,0]
//	OPimp         implication            [1,1,0,1]
//	OPbiimp       equivalence            [1,0,0,1]
//	OPdiff        set difference         [0,0,1,0]
//	OPless        less than              [0,1,0,0]
//	OPinvimp      reverse implication    [1,0,1,1]
func (b *BDD) Apply(left Node, right Node, op Operator) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(left); err != nil {
		return b.seterror("%s in call to Apply %s (left operand)", err, op)
	}
	if err := b.checkptr(right); err != nil {
		return b.seterror("%s in call to Apply %s (right operand)", err, op)
	}
	if op < OPand || op > OPinvimp {
		return b.seterror("unauthorized operation (%s) in apply", op)
	}
	b.applycache.op = op
	b.initref()
	b.pushref(*left)
	b.pushref(*right)
	res := b.apply(*left, *right)
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) apply(left int, right int) int {
	if left < 0 || right < 0 {
		return -1
	}
	switch b.applycache.op {
	case OPand:
		if left == right {
			return left
		}
		if (left == 0) || (right == 0) {
			return 0
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	case OPor:
		if left == right {
			return left
		}
		if (left == 1) || (right == 1) {
			return 1
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPxor:
		if left == right {
			return 0
		}
		if left == 0 {
			return right
		}
		if right == 0 {
			return left
		}
	case OPnand:
		if (left == 0) || (right == 0) {
			return 1
		}
	case OPnor:
		if (left == 1) || (right == 1) {
			return 0
		}
	case OPimp:
		if left == 0 {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return 1
		}
		if left == right {
			return 1
		}
	case OPbiimp:
		if left == right {
			return 1
		}
		if left == 1 {
			return right
		}
		if right == 1 {
			return left
		}
	case OPdiff:
		if left == right {
			return 0
		}
		if right == 1 {
			return 0
		}
		if right == 0 {
			return left
		}
		if left == 0 {
			return 0
		}
	case OPless:
		if (left == right) || (left == 1) {
			return 0
		}
		if left == 0 {
			return right
		}
	case OPinvimp:
		if right == 0 {
			return 1
		}
		if right == 1 {
			return left
		}
		if left == 1 {
			return 1
		}
		if left == right {
			return 1
		}
	default:
		b.seterror("unauthorized operation (%s) in apply", b.applycache.op)
		return -1
	}

	if (left < 2) && (right < 2) {
		return opres[b.applycache.op][left][right]
	}
	if res := b.matchapply(left, right); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var res int
	switch {
	case leftlvl == rightlvl:
		low := b.pushref(b.apply(b.low(left), b.low(right)))
		high := b.pushref(b.apply(b.high(left), b.high(right)))
		res = b.makenode(leftlvl, low, high)
	case leftlvl < rightlvl:
		low := b.pushref(b.apply(b.low(left), right))
		high := b.pushref(b.apply(b.high(left), right))
		res = b.makenode(leftlvl, low, high)
	default:
		low := b.pushref(b.apply(left, b.low(right)))
		high := b.pushref(b.apply(left, b.high(right)))
		res = b.makenode(rightlvl, low, high)
	}
	b.popref(2)
	return b.setapply(left, right, res)
}

// Ite, short for if-then-else operator, computes the BDD for the expression [(f
// /\ g) \/ (not f /\ h)] more efficiently than doing the three operations
// separately.
func (b *BDD) Ite(f, g, h Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(f); err != nil {
		return b.seterror("%s in call to Ite (condition)", err)
	}
	if err := b.checkptr(g); err != nil {
		return b.seterror("%s in call to Ite (then branch)", err)
	}
	if err := b.checkptr(h); err != nil {
		return b.seterror("%s in call to Ite (else branch)", err)
	}
	b.initref()
	b.pushref(*f)
	b.pushref(*g)
	b.pushref(*h)
	res := b.ite(*f, *g, *h)
	b.popref(3)
	return b.retnode(res)
}

// itelow returns n if p is strictly higher than q or r, otherwise it returns
// the low branch of n. This is used in function ite to know which node to
// follow: we always follow the smallest(s) nodes.
func (b *BDD) itelow(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.low(n)
}

func (b *BDD) itehigh(p, q, r int32, n int) int {
	if (p > q) || (p > r) {
		return n
	}
	return b.high(n)
}

// min3 returns the smallest value between p, q and r.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r {
			return p
		}
		return r
	}
	if q <= r {
		return q
	}
	return r
}

func (b *BDD) ite(f, g, h int) int {
	if f < 0 || g < 0 || h < 0 {
		return -1
	}
	switch {
	case f == 1:
		return g
	case f == 0:
		return h
	case g == h:
		return g
	case (g == 1) && (h == 0):
		return f
	case (g == 0) && (h == 1):
		return b.not(f)
	}
	if res := b.matchite(f, g, h); res >= 0 {
		return res
	}
	p := b.level(f)
	q := b.level(g)
	r := b.level(h)
	low := b.pushref(b.ite(b.itelow(p, q, r, f), b.itelow(q, p, r, g), b.itelow(r, p, q, h)))
	high := b.pushref(b.ite(b.itehigh(p, q, r, f), b.itehigh(q, p, r, g), b.itehigh(r, p, q, h)))
	res := b.makenode(min3(p, q, r), low, high)
	b.popref(2)
	return b.setite(f, g, h, res)
}

// Exist returns the existential quantification of n for the variables in
// varset, where varset is a node built with a method such as Makeset. We return
// nil and set the error flag in b if there is an error.
func (b *BDD) Exist(n, varset Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("%s in call to Exist", err)
	}
	if err := b.checkptr(varset); err != nil {
		return b.seterror("%s in call to Exist (varset)", err)
	}
	if *varset < 2 {
		// empty set of variables
		return b.retnode(*n)
	}
	if err := b.quantset2cache(*varset); err != nil {
		return b.seterror("%s in call to Exist", err)
	}
	b.quantcache.id = (*varset << 3) | cacheid_EXIST
	b.applycache.op = OPor
	b.initref()
	b.pushref(*n)
	b.pushref(*varset)
	res := b.quant(*n, *varset)
	b.popref(2)
	return b.retnode(res)
}

func (b *BDD) quant(n, varset int) int {
	if n < 0 {
		return -1
	}
	if (n < 2) || (b.level(n) > b.quantlast) {
		return n
	}
	if res := b.matchquant(n); res >= 0 {
		return res
	}
	low := b.pushref(b.quant(b.low(n), varset))
	high := b.pushref(b.quant(b.high(n), varset))
	var res int
	if b.quantset[b.level(n)] == b.quantsetID {
		res = b.apply(low, high)
	} else {
		res = b.makenode(b.level(n), low, high)
	}
	b.popref(2)
	return b.setquant(n, res)
}

// AppEx applies the binary operator *op* on the two operands left and right
// then performs an existential quantification over the variables in varset.
// This is done in a bottom up manner such that both the apply and
// quantification is done on the lower nodes before stepping up to the higher
// nodes. This makes AppEx much more efficient than an apply operation followed
// by a quantification. When *op* is a conjunction, this operation returns the
// relational product of two BDDs. Only operators OPand, OPxor, OPor and OPnand
// are accepted.
func (b *BDD) AppEx(left Node, right Node, op Operator, varset Node) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if op < OPand || op > OPnand {
		return b.seterror("operator %s not supported in call to AppEx", op)
	}
	if err := b.checkptr(varset); err != nil {
		return b.seterror("%s in call to AppEx (varset)", err)
	}
	if err := b.checkptr(left); err != nil {
		return b.seterror("%s in call to AppEx %s (left operand)", err, op)
	}
	if err := b.checkptr(right); err != nil {
		return b.seterror("%s in call to AppEx %s (right operand)", err, op)
	}
	b.initref()
	b.pushref(*left)
	b.pushref(*right)
	if *varset < 2 {
		b.applycache.op = op
		res := b.apply(*left, *right)
		b.popref(2)
		return b.retnode(res)
	}
	if err := b.quantset2cache(*varset); err != nil {
		return b.seterror("%s in call to AppEx", err)
	}
	b.applycache.op = OPor
	b.appexcache.op = op
	b.appexcache.id = (*varset << 2) | int(op)
	b.quantcache.id = (b.appexcache.id << 3) | cacheid_APPEX
	b.pushref(*varset)
	res := b.appquant(*left, *right, *varset)
	b.popref(3)
	return b.retnode(res)
}

func (b *BDD) appquant(left, right, varset int) int {
	if left < 0 || right < 0 {
		return -1
	}
	switch b.appexcache.op {
	case OPand:
		if left == 0 || right == 0 {
			return 0
		}
		if left == right {
			return b.quant(left, varset)
		}
		if left == 1 {
			return b.quant(right, varset)
		}
		if right == 1 {
			return b.quant(left, varset)
		}
	case OPor:
		if left == 1 || right == 1 {
			return 1
		}
		if left == right {
			return b.quant(left, varset)
		}
		if left == 0 {
			return b.quant(right, varset)
		}
		if right == 0 {
			return b.quant(left, varset)
		}
	case OPxor:
		if left == right {
			return 0
		}
		if left == 0 {
			return b.quant(right, varset)
		}
		if right == 0 {
			return b.quant(left, varset)
		}
	case OPnand:
		if left == 0 || right == 0 {
			return 1
		}
	default:
		b.seterror("unauthorized operation (%s) in AppEx", b.appexcache.op)
		return -1
	}

	if (left < 2) && (right < 2) {
		return opres[b.appexcache.op][left][right]
	}

	// no more variables to quantify
	if (b.level(left) > b.quantlast) && (b.level(right) > b.quantlast) {
		oldop := b.applycache.op
		b.applycache.op = b.appexcache.op
		res := b.apply(left, right)
		b.applycache.op = oldop
		return res
	}

	if res := b.matchappex(left, right); res >= 0 {
		return res
	}
	leftlvl := b.level(left)
	rightlvl := b.level(right)
	var low, high int
	var lvl int32
	switch {
	case leftlvl == rightlvl:
		lvl = leftlvl
		low = b.pushref(b.appquant(b.low(left), b.low(right), varset))
		high = b.pushref(b.appquant(b.high(left), b.high(right), varset))
	case leftlvl < rightlvl:
		lvl = leftlvl
		low = b.pushref(b.appquant(b.low(left), right, varset))
		high = b.pushref(b.appquant(b.high(left), right, varset))
	default:
		lvl = rightlvl
		low = b.pushref(b.appquant(left, b.low(right), varset))
		high = b.pushref(b.appquant(left, b.high(right), varset))
	}
	var res int
	if b.quantset[lvl] == b.quantsetID {
		res = b.apply(low, high)
	} else {
		res = b.makenode(lvl, low, high)
	}
	b.popref(2)
	return b.setappex(left, right, res)
}

// Satcount computes the number of satisfying variable assignments for the
// function denoted by n, over all the Varnum variables of b. We return a result
// using arbitrary-precision arithmetic to avoid possible overflows. The result
// is zero (and we set the error flag of b) if there is an error.
func (b *BDD) Satcount(n Node) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		b.seterror("%s in call to Satcount", err)
		return big.NewInt(0)
	}
	return b.satcountall(*n)
}

func (b *BDD) satcountall(n int) *big.Int {
	res := big.NewInt(0)
	// 2^level for the variables above the root
	res.SetBit(res, int(b.level(n)), 1)
	satc := make(map[int]*big.Int)
	return res.Mul(res, b.satcount(n, satc))
}

func (b *BDD) satcount(n int, satc map[int]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	if res, ok := satc[n]; ok {
		return res
	}
	level := b.level(n)
	low := b.low(n)
	high := b.high(n)

	res := big.NewInt(0)
	two := big.NewInt(0)
	two.SetBit(two, int(b.level(low)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(low, satc)))
	two = big.NewInt(0)
	two.SetBit(two, int(b.level(high)-level-1), 1)
	res.Add(res, two.Mul(two, b.satcount(high, satc)))
	satc[n] = res
	return res
}

// Satcountset computes the number of satisfying assignments of n restricted to
// the variables in varset, a cube built with Makeset. The support of n should
// be included in varset; variables outside of it are not counted.
func (b *BDD) Satcountset(n Node, varset Node) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		b.seterror("%s in call to Satcountset", err)
		return big.NewInt(0)
	}
	if err := b.checkptr(varset); err != nil {
		b.seterror("%s in call to Satcountset (varset)", err)
		return big.NewInt(0)
	}
	if *n == 0 {
		return big.NewInt(0)
	}
	unused := int(b.varnum) - len(b.scanset(*varset))
	res := b.satcountall(*n)
	return res.Rsh(res, uint(unused))
}

// fields returns the level and successors of node n. It is used by operations
// that call user code without holding the lock of b.
func (b *BDD) fields(n int) (int32, int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nodes[n].level, b.nodes[n].low, b.nodes[n].high
}

// Allsat Iterates through all legal variable assignments for n and calls the
// function f on each of them. We pass an int slice of length varnum to f where
// each entry is either  0 if the variable is false, 1 if it is true, and -1 if
// it is a don't care. We stop and return an error if f returns an error at some
// point. Function f may call other methods of b: node n is protected from
// garbage collection during the whole iteration.
//
// The following is an example of a callback handler that counts the number of
// possible assignments (such that we do not count don't care twice):
//
//	acc := new(int)
//	b.Allsat(n, func(varset []int) error {
//		*acc++
//		return nil
//	})
func (b *BDD) Allsat(n Node, f func([]int) error) error {
	b.mu.Lock()
	if err := b.checkptr(n); err != nil {
		b.mu.Unlock()
		return fmt.Errorf("%w in call to Allsat", err)
	}
	prof := make([]int, b.varnum)
	b.mu.Unlock()
	for k := range prof {
		prof[k] = -1
	}
	b.AddRef(n)
	defer b.DelRef(n)
	return b.allsat(*n, prof, f)
}

func (b *BDD) allsat(n int, prof []int, f func([]int) error) error {
	if n == 1 {
		return f(prof)
	}
	if n == 0 {
		return nil
	}
	level, low, high := b.fields(n)
	if low != 0 {
		prof[level] = 0
		lowlvl, _, _ := b.fields(low)
		for v := lowlvl - 1; v > level; v-- {
			prof[v] = -1
		}
		if err := b.allsat(low, prof, f); err != nil {
			return err
		}
	}
	if high != 0 {
		prof[level] = 1
		highlvl, _, _ := b.fields(high)
		for v := highlvl - 1; v > level; v-- {
			prof[v] = -1
		}
		if err := b.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n..., or all the active nodes if n is absent. The parameters to
// function f are the id, level, and id's of the low and high successors of each
// node. The two constant nodes (True and False) have always the id 1 and 0,
// respectively.
//
// Nodes are visited in increasing order of their id, which means that the
// successors of a node of the sequence n... are always visited before it. We
// stop the computation and return an error if f returns an error at some point.
//
// The following is an example of a callback handler that counts the number of
// active nodes in the BDD:
//
//	acc := new(int)
//	b.Allnodes(func(id, level, low, high int) error {
//		*acc++
//		return nil
//	})
func (b *BDD) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	b.mu.Lock()
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			b.mu.Unlock()
			return fmt.Errorf("%w in call to Allnodes", err)
		}
	}
	var visit [][4]int
	if len(n) == 0 {
		visit = b.allnodes()
	} else {
		visit = b.allnodesfrom(n)
	}
	b.mu.Unlock()
	for _, v := range visit {
		if err := f(v[0], v[1], v[2], v[3]); err != nil {
			return err
		}
	}
	return nil
}

// allnodes returns a snapshot of every active node, constants included.
func (b *BDD) allnodes() [][4]int {
	res := [][4]int{
		{0, int(b.nodes[0].level), 0, 0},
		{1, int(b.nodes[1].level), 1, 1},
	}
	for k := 2; k < len(b.nodes); k++ {
		if b.nodes[k].low != -1 {
			res = append(res, [4]int{k, int(b.nodes[k].level), b.nodes[k].low, b.nodes[k].high})
		}
	}
	return res
}

// allnodesfrom returns a snapshot of the nodes reachable from n, sorted by id.
// The constants are included only if they are reachable.
func (b *BDD) allnodesfrom(n []Node) [][4]int {
	for _, v := range n {
		b.markrec(*v)
	}
	res := [][4]int{}
	seen := [2]bool{}
	for _, v := range n {
		if *v < 2 {
			seen[*v] = true
		}
	}
	for k := 2; k < len(b.nodes); k++ {
		if b.ismarked(k) {
			b.unmarknode(k)
			low, high := b.nodes[k].low, b.nodes[k].high
			if low < 2 {
				seen[low] = true
			}
			if high < 2 {
				seen[high] = true
			}
			res = append(res, [4]int{k, int(b.nodes[k].level), low, high})
		}
	}
	head := [][4]int{}
	for k := 0; k < 2; k++ {
		if seen[k] {
			head = append(head, [4]int{k, int(b.nodes[k].level), k, k})
		}
	}
	return append(head, res...)
}

// Nodecount returns the number of distinct nodes used by the nodes in the
// sequence n..., constants excluded. It returns 0 and sets the error status of
// b if one of the nodes is not valid.
func (b *BDD) Nodecount(n ...Node) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			b.seterror("%s in call to Nodecount", err)
			return 0
		}
	}
	count := 0
	for _, v := range n {
		count += b.markcount(*v)
	}
	b.unmarkall()
	return count
}

// markcount marks the nodes reachable from n, not already marked, and returns
// their number. Marks must be cleared by the caller.
func (b *BDD) markcount(n int) int {
	if n < 2 || b.ismarked(n) || (b.nodes[n].low == -1) {
		return 0
	}
	b.marknode(n)
	return 1 + b.markcount(b.nodes[n].low) + b.markcount(b.nodes[n].high)
}
