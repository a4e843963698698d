// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ruddmc

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR64(uint64(c), _PAIR(a, b, len), uint64(len)))
}

// _PAIR is a mapping function that maps (bijectively) a pair of integer (a, b)
// into a unique integer, modulo len.
func _PAIR(a, b, len int) uint64 {
	return (((uint64(a+b) * uint64(a+b+1)) / 2) + uint64(a)) % uint64(len)
}

func _PAIR64(a, b, len uint64) uint64 {
	return (((((a + b) % len) * ((a + b + 1) % len)) / 2) + a) % len
}

// ************************************************************

// lookup and store are the generic accessors of an operation cache. Entries
// are keyed by up to three integers; we return -1 when there is no hit.

func (b *BDD) lookup(c *cache, h int, x, y, z int) int {
	entry := c.table[h]
	if entry.a == x && entry.b == y && entry.c == z {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *BDD) store(c *cache, h int, x, y, z int, res int) int {
	if res < 0 {
		return -1
	}
	c.table[h] = cacheData{a: x, b: y, c: z, res: res}
	return res
}

// ************************************************************

// The hash function for operation Not(n) is simply n.

func (b *BDD) matchnot(n int) int {
	c := &b.applycache.cache
	return b.lookup(c, n%len(c.table), n, 0, int(op_not))
}

func (b *BDD) setnot(n int, res int) int {
	c := &b.applycache.cache
	return b.store(c, n%len(c.table), n, 0, int(op_not), res)
}

// ************************************************************

// The hash function for Apply is #(left, right, applycache.op).

func (b *BDD) matchapply(left, right int) int {
	c := &b.applycache.cache
	op := int(b.applycache.op)
	return b.lookup(c, _TRIPLE(left, right, op, len(c.table)), left, right, op)
}

func (b *BDD) setapply(left, right, res int) int {
	c := &b.applycache.cache
	op := int(b.applycache.op)
	return b.store(c, _TRIPLE(left, right, op, len(c.table)), left, right, op, res)
}

// ************************************************************

// The hash function for ITE is #(f,g,h).

func (b *BDD) matchite(f, g, h int) int {
	return b.lookup(&b.itecache, _TRIPLE(f, g, h, len(b.itecache.table)), f, g, h)
}

func (b *BDD) setite(f, g, h, res int) int {
	return b.store(&b.itecache, _TRIPLE(f, g, h, len(b.itecache.table)), f, g, h, res)
}

// ************************************************************

// The hash function for quantification is simply n; the varset and the kind of
// quantification are part of quantcache.id.

func (b *BDD) matchquant(n int) int {
	c := &b.quantcache.cache
	return b.lookup(c, n%len(c.table), n, 0, b.quantcache.id)
}

func (b *BDD) setquant(n int, res int) int {
	c := &b.quantcache.cache
	return b.store(c, n%len(c.table), n, 0, b.quantcache.id, res)
}

// ************************************************************

// The hash function for AppEx is #(left, right)

func (b *BDD) matchappex(left, right int) int {
	c := &b.appexcache.cache
	return b.lookup(c, int(_PAIR(left, right, len(c.table))), left, right, b.appexcache.id)
}

func (b *BDD) setappex(left, right, res int) int {
	c := &b.appexcache.cache
	return b.store(c, int(_PAIR(left, right, len(c.table))), left, right, b.appexcache.id, res)
}

// ************************************************************

// The hash function for operation Replace(n) is simply n.

func (b *BDD) matchreplace(n int) int {
	c := &b.replacecache.cache
	return b.lookup(c, n%len(c.table), n, 0, b.replacecache.id)
}

func (b *BDD) setreplace(n int, res int) int {
	c := &b.replacecache.cache
	return b.store(c, n%len(c.table), n, 0, b.replacecache.id, res)
}
