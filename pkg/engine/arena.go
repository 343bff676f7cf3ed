package engine

import "math"

// Pool capacities. The book never grows past these; submits that cannot be
// stored are dropped (see Submit).
const (
	MaxOrders = 1024
	MaxLevels = 256
)

// orderRef and levelRef index the fixed order and level pools. Index 0 is a
// valid slot, so absent links use the all-ones sentinel instead of zero.
type (
	orderRef uint32
	levelRef uint32
)

const (
	nilOrder = orderRef(math.MaxUint32)
	nilLevel = levelRef(math.MaxUint32)
)

// Side labels the two halves of the book.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

// order is one pool slot. Slots come out of allocOrder uninitialized; the
// caller assigns every field.
type order struct {
	id    uint64
	price uint32
	qty   uint32
	side  Side
	next  orderRef
	prev  orderRef
	level levelRef
}

// level is one pool slot holding a single price on a single side: a tree
// node plus the FIFO queue of orders resting at that price.
type level struct {
	price uint32
	left  levelRef
	right levelRef
	head  orderRef
	tail  orderRef
	count uint32
}

// The free stacks are LIFO. Reset pushes indices in ascending order, so the
// first allocation after a reset hands out the highest index and later ones
// descend from there.

func (e *Engine) allocOrder() orderRef {
	if e.orderTop == 0 {
		return nilOrder
	}
	e.orderTop--
	return e.orderFree[e.orderTop]
}

func (e *Engine) freeOrder(ref orderRef) {
	e.orderFree[e.orderTop] = ref
	e.orderTop++
}

// allocLevel returns a slot reset to the canonical empty level at price, or
// nilLevel when the pool is exhausted. Unlike order slots, level slots are
// cleared here; the tree and queue code relies on fresh links.
func (e *Engine) allocLevel(price uint32) levelRef {
	if e.levelTop == 0 {
		return nilLevel
	}
	e.levelTop--
	ref := e.levelFree[e.levelTop]
	lv := &e.levels[ref]
	lv.price = price
	lv.left = nilLevel
	lv.right = nilLevel
	lv.head = nilOrder
	lv.tail = nilOrder
	lv.count = 0
	return ref
}

func (e *Engine) freeLevel(ref levelRef) {
	e.levelFree[e.levelTop] = ref
	e.levelTop++
}
