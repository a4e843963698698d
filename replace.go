// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

import (
	"fmt"
	"math"
	"strings"
)

// Replacer is the type of association lists used to replace variables in a BDD
// node.
type Replacer interface {
	Replace(int32) (int32, bool)
	Id() int
}

type replacer struct {
	id    int     // unique identifier used for caching intermediate results
	image []int32 // map the level of old variables to the level of new variables
	last  int32   // last index in the Replacer, to speed up computations
}

func (r *replacer) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "replacer(last: %d)[", r.last)
	first := true
	for k, v := range r.image {
		if k == int(v) {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%d<-%d", k, v)
	}
	sb.WriteString("]")
	return sb.String()
}

func (r *replacer) Replace(level int32) (int32, bool) {
	if level > r.last {
		return level, false
	}
	return r.image[level], true
}

func (r *replacer) Id() int {
	return r.id
}

// NewReplacer returns a Replacer for substituting variable oldvars[k] with
// newvars[k]. We return an error if the two slices do not have the same length
// or if we find the same index twice in either of them. All values must be in
// [0..Varnum). A Replacer should only be used with the BDD that created it.
func (b *BDD) NewReplacer(oldvars []int, newvars []int) (Replacer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(oldvars) != len(newvars) {
		return nil, fmt.Errorf("unmatched length of slices")
	}
	if b.replaceid == (math.MaxInt32 >> 2) {
		return nil, fmt.Errorf("too many replacers created")
	}
	b.replaceid++
	res := &replacer{id: (b.replaceid << 2) | cacheid_REPLACE}
	varnum := int(b.varnum)
	support := make([]bool, varnum)
	res.image = make([]int32, varnum)
	for k := range res.image {
		res.image[k] = int32(k)
	}
	for k, v := range oldvars {
		if v < 0 || v >= varnum {
			return nil, fmt.Errorf("invalid variable in oldvars (%d)", v)
		}
		if newvars[k] < 0 || newvars[k] >= varnum {
			return nil, fmt.Errorf("invalid variable in newvars (%d)", newvars[k])
		}
		if support[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in oldvars", v)
		}
		support[v] = true
		res.image[v] = int32(newvars[k])
		if int32(v) > res.last {
			res.last = int32(v)
		}
	}
	for _, v := range newvars {
		if int(res.image[v]) != v {
			return nil, fmt.Errorf("variable in newvars (%d) also occur in oldvars", v)
		}
	}
	return res, nil
}

// Replace takes a Replacer and computes the result of n after replacing old
// variables with new ones. See type Replacer.
func (b *BDD) Replace(n Node, r Replacer) Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return b.seterror("%s in call to Replace", err)
	}
	if r == nil {
		return b.seterror("nil replacer in call to Replace")
	}
	b.initref()
	b.pushref(*n)
	b.replacecache.id = r.Id()
	res := b.replace(*n, r)
	b.popref(1)
	return b.retnode(res)
}

func (b *BDD) replace(n int, r Replacer) int {
	if n < 2 {
		return n
	}
	image, ok := r.Replace(b.level(n))
	if !ok {
		return n
	}
	if res := b.matchreplace(n); res >= 0 {
		return res
	}
	low := b.pushref(b.replace(b.low(n), r))
	high := b.pushref(b.replace(b.high(n), r))
	res := b.correctify(image, low, high)
	b.popref(2)
	return b.setreplace(n, res)
}

// correctify builds the node (level, low, high) when level may be greater than
// the levels of low and high, moving the variable down to its place.
func (b *BDD) correctify(level int32, low, high int) int {
	if low < 0 || high < 0 {
		return -1
	}
	if (level < b.level(low)) && (level < b.level(high)) {
		return b.makenode(level, low, high)
	}
	if (level == b.level(low)) || (level == b.level(high)) {
		b.seterror("error in replace level (%d) == low (%d:%d) or high (%d:%d)", level, low, b.level(low), high, b.level(high))
		return -1
	}
	var left, right int
	var lvl int32
	switch {
	case b.level(low) == b.level(high):
		lvl = b.level(low)
		left = b.pushref(b.correctify(level, b.low(low), b.low(high)))
		right = b.pushref(b.correctify(level, b.high(low), b.high(high)))
	case b.level(low) < b.level(high):
		lvl = b.level(low)
		left = b.pushref(b.correctify(level, b.low(low), high))
		right = b.pushref(b.correctify(level, b.high(low), high))
	default:
		lvl = b.level(high)
		left = b.pushref(b.correctify(level, low, b.low(high)))
		right = b.pushref(b.correctify(level, low, b.high(high)))
	}
	res := b.makenode(lvl, left, right)
	b.popref(2)
	return res
}
