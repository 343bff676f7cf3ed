package engine

import "testing"

func (e *Engine) mustInsert(t *testing.T, side Side, price uint32) levelRef {
	t.Helper()
	ref := e.allocLevel(price)
	if ref == nilLevel {
		t.Fatalf("level pool exhausted inserting %d", price)
	}
	e.insertLevel(side, ref)
	return ref
}

func TestTreeInsertFind(t *testing.T) {
	e := New()
	prices := []uint32{50, 30, 70, 60, 90, 10}
	for _, p := range prices {
		e.mustInsert(t, Buy, p)
	}

	for _, p := range prices {
		ref := e.findLevel(Buy, p)
		if ref == nilLevel {
			t.Fatalf("price %d not found", p)
		}
		if e.levels[ref].price != p {
			t.Errorf("found wrong node for %d: %d", p, e.levels[ref].price)
		}
	}
	for _, p := range []uint32{5, 55, 100} {
		if ref := e.findLevel(Buy, p); ref != nilLevel {
			t.Errorf("absent price %d found at %d", p, ref)
		}
	}
	// The other side's tree is untouched.
	if ref := e.findLevel(Sell, 50); ref != nilLevel {
		t.Errorf("price 50 leaked into sell tree")
	}
}

func TestBestAndRemoveBuySide(t *testing.T) {
	e := New()
	for _, p := range []uint32{50, 30, 70, 60, 90, 10} {
		e.mustInsert(t, Buy, p)
	}

	want := []uint32{90, 70, 60, 50, 30, 10}
	for _, p := range want {
		ref := e.bestLevel(Buy)
		if ref == nilLevel {
			t.Fatalf("tree empty, expected best %d", p)
		}
		if got := e.levels[ref].price; got != p {
			t.Fatalf("expected best %d, got %d", p, got)
		}
		e.removeBest(Buy)
		e.freeLevel(ref)
	}
	if e.bestLevel(Buy) != nilLevel {
		t.Errorf("tree not empty after removing every node")
	}
}

func TestBestAndRemoveSellSide(t *testing.T) {
	e := New()
	for _, p := range []uint32{50, 30, 70, 60, 90, 10} {
		e.mustInsert(t, Sell, p)
	}

	want := []uint32{10, 30, 50, 60, 70, 90}
	for _, p := range want {
		ref := e.bestLevel(Sell)
		if got := e.levels[ref].price; got != p {
			t.Fatalf("expected best %d, got %d", p, got)
		}
		e.removeBest(Sell)
		e.freeLevel(ref)
	}
	if e.bestLevel(Sell) != nilLevel {
		t.Errorf("tree not empty after removing every node")
	}
}

// Removing the best node must reattach its orphaned subtree, not drop it.
func TestRemoveBestSplicesChild(t *testing.T) {
	e := New()
	// Buy tree where the rightmost node has a left child: 50 -> 90 -> 70(,80).
	for _, p := range []uint32{50, 90, 70, 80} {
		e.mustInsert(t, Buy, p)
	}

	ref := e.bestLevel(Buy)
	if e.levels[ref].price != 90 {
		t.Fatalf("expected best 90, got %d", e.levels[ref].price)
	}
	e.removeBest(Buy)
	e.freeLevel(ref)

	// 70 and its child 80 must survive; the new best is 80.
	ref = e.bestLevel(Buy)
	if e.levels[ref].price != 80 {
		t.Fatalf("expected best 80 after removing 90, got %d", e.levels[ref].price)
	}
	if e.findLevel(Buy, 70) == nilLevel {
		t.Errorf("subtree lost: 70 no longer reachable")
	}
}
