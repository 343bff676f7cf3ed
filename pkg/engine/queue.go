package engine

// Orders resting at one price form a doubly linked FIFO threaded through the
// order pool. enqueue appends at the tail and matching consumes the head, so
// priority within a level is arrival order.

func (e *Engine) enqueue(lv levelRef, ref orderRef) {
	level := &e.levels[lv]
	ord := &e.orders[ref]
	ord.level = lv
	ord.next = nilOrder
	ord.prev = level.tail
	if level.tail != nilOrder {
		e.orders[level.tail].next = ref
	} else {
		level.head = ref
	}
	level.tail = ref
	level.count++
}

// dequeueHead unlinks the level's head order and clears the removed order's
// queue links. The slot is not freed here.
func (e *Engine) dequeueHead(lv levelRef) orderRef {
	level := &e.levels[lv]
	ref := level.head
	if ref == nilOrder {
		return nilOrder
	}
	ord := &e.orders[ref]
	level.head = ord.next
	if level.head != nilOrder {
		e.orders[level.head].prev = nilOrder
	} else {
		level.tail = nilOrder
	}
	ord.next = nilOrder
	ord.prev = nilOrder
	level.count--
	return ref
}
