package engine

// LevelSummary describes one resident price level.
type LevelSummary struct {
	Price  uint32 `json:"price"`
	Orders uint32 `json:"orders"`
	Qty    uint64 `json:"qty"`
}

// Depth walks the side's levels in priority order, best first: descending
// prices for buys, ascending for sells. Intended for inspection surfaces,
// not the matching path.
func (e *Engine) Depth(side Side) []LevelSummary {
	var out []LevelSummary
	e.walkLevels(*e.treeRoot(side), side == Buy, func(lv levelRef) {
		level := &e.levels[lv]
		var qty uint64
		for ref := level.head; ref != nilOrder; ref = e.orders[ref].next {
			qty += uint64(e.orders[ref].qty)
		}
		out = append(out, LevelSummary{Price: level.price, Orders: level.count, Qty: qty})
	})
	return out
}

// walkLevels visits the subtree in order, high to low when descending.
// Recursion is acceptable off the matching path; depth is bounded by the
// level pool.
func (e *Engine) walkLevels(ref levelRef, descending bool, visit func(levelRef)) {
	if ref == nilLevel {
		return
	}
	first, second := e.levels[ref].left, e.levels[ref].right
	if descending {
		first, second = second, first
	}
	e.walkLevels(first, descending, visit)
	visit(ref)
	e.walkLevels(second, descending, visit)
}
