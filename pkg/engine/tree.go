package engine

// Each side's price levels form an unbalanced binary search tree keyed by
// price, one node per price. Walks are iterative over the link slots, so the
// parent link is already in hand when a node has to be spliced out.

func (e *Engine) treeRoot(side Side) *levelRef {
	if side == Buy {
		return &e.buyTree
	}
	return &e.sellTree
}

// findLevel returns the side's level at exactly price, or nilLevel.
func (e *Engine) findLevel(side Side, price uint32) levelRef {
	ref := *e.treeRoot(side)
	for ref != nilLevel {
		lv := &e.levels[ref]
		switch {
		case price < lv.price:
			ref = lv.left
		case price > lv.price:
			ref = lv.right
		default:
			return ref
		}
	}
	return nilLevel
}

// insertLevel links a freshly allocated node into the side's tree. The price
// must not already be present.
func (e *Engine) insertLevel(side Side, ref levelRef) {
	price := e.levels[ref].price
	link := e.treeRoot(side)
	for *link != nilLevel {
		lv := &e.levels[*link]
		if price < lv.price {
			link = &lv.left
		} else {
			link = &lv.right
		}
	}
	*link = ref
}

// bestLevel returns the side's best price: the maximum for buys, the minimum
// for sells. nilLevel when the side is empty.
func (e *Engine) bestLevel(side Side) levelRef {
	ref := *e.treeRoot(side)
	if ref == nilLevel {
		return nilLevel
	}
	if side == Buy {
		for e.levels[ref].right != nilLevel {
			ref = e.levels[ref].right
		}
		return ref
	}
	for e.levels[ref].left != nilLevel {
		ref = e.levels[ref].left
	}
	return ref
}

// removeBest unlinks the side's best node. The rightmost node has no right
// child and the leftmost no left child, so the orphaned subtree splices
// straight into the parent link. Only the best node is ever removed; general
// deletion does not exist here.
func (e *Engine) removeBest(side Side) {
	link := e.treeRoot(side)
	if *link == nilLevel {
		return
	}
	if side == Buy {
		for e.levels[*link].right != nilLevel {
			link = &e.levels[*link].right
		}
		*link = e.levels[*link].left
		return
	}
	for e.levels[*link].left != nilLevel {
		link = &e.levels[*link].left
	}
	*link = e.levels[*link].right
}
