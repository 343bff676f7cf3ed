package engine

import "testing"

func TestAllocationOrder(t *testing.T) {
	e := New()

	// Fresh pools hand out the top index first and descend.
	if ref := e.allocOrder(); ref != MaxOrders-1 {
		t.Fatalf("first order alloc: expected %d, got %d", MaxOrders-1, ref)
	}
	if ref := e.allocOrder(); ref != MaxOrders-2 {
		t.Fatalf("second order alloc: expected %d, got %d", MaxOrders-2, ref)
	}

	// Freeing makes the index the next one out.
	e.freeOrder(7)
	if ref := e.allocOrder(); ref != 7 {
		t.Fatalf("expected freed index 7 back, got %d", ref)
	}

	if ref := e.allocLevel(100); ref != MaxLevels-1 {
		t.Fatalf("first level alloc: expected %d, got %d", MaxLevels-1, ref)
	}
}

func TestLevelAllocClearsSlot(t *testing.T) {
	e := New()

	lv := e.allocLevel(100)
	o1 := e.allocOrder()
	e.orders[o1].id = 1
	e.orders[o1].price = 100
	e.enqueue(lv, o1)

	// Recycle the slot and check it comes back canonical.
	e.freeLevel(lv)
	lv2 := e.allocLevel(42)
	if lv2 != lv {
		t.Fatalf("expected recycled slot %d, got %d", lv, lv2)
	}
	level := &e.levels[lv2]
	if level.price != 42 || level.left != nilLevel || level.right != nilLevel ||
		level.head != nilOrder || level.tail != nilOrder || level.count != 0 {
		t.Errorf("recycled level not canonical: %+v", *level)
	}
}

func TestQueueLinks(t *testing.T) {
	e := New()
	lv := e.allocLevel(100)

	var refs []orderRef
	for i := uint64(1); i <= 3; i++ {
		ref := e.allocOrder()
		ord := &e.orders[ref]
		ord.id = i
		ord.price = 100
		ord.qty = 10
		ord.side = Buy
		e.enqueue(lv, ref)
		refs = append(refs, ref)
	}

	level := &e.levels[lv]
	if level.head != refs[0] || level.tail != refs[2] || level.count != 3 {
		t.Fatalf("bad queue shape: head=%d tail=%d count=%d", level.head, level.tail, level.count)
	}
	if e.orders[refs[0]].next != refs[1] || e.orders[refs[1]].prev != refs[0] {
		t.Errorf("broken forward/backward links between first two orders")
	}

	got := e.dequeueHead(lv)
	if got != refs[0] {
		t.Fatalf("expected head %d, got %d", refs[0], got)
	}
	// Removed orders leave with their links cleared.
	if e.orders[got].next != nilOrder || e.orders[got].prev != nilOrder {
		t.Errorf("dequeued order still linked: next=%d prev=%d", e.orders[got].next, e.orders[got].prev)
	}
	if level.head != refs[1] || e.orders[refs[1]].prev != nilOrder || level.count != 2 {
		t.Errorf("bad queue after dequeue: head=%d count=%d", level.head, level.count)
	}

	e.dequeueHead(lv)
	e.dequeueHead(lv)
	if level.head != nilOrder || level.tail != nilOrder || level.count != 0 {
		t.Errorf("drained queue not empty: head=%d tail=%d count=%d", level.head, level.tail, level.count)
	}
	if got := e.dequeueHead(lv); got != nilOrder {
		t.Errorf("dequeue on empty queue returned %d", got)
	}
}

func TestPoolConservationAcrossChurn(t *testing.T) {
	e := New()
	id := uint64(0)
	for round := 0; round < 50; round++ {
		for i := 0; i < 10; i++ {
			id++
			e.Submit(id, Buy, uint32(100+i), 5)
			id++
			e.Submit(id, Sell, uint32(95+i), 5)
		}
		e.Match()
		if err := e.VerifyIntegrity(); err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
	}
}
