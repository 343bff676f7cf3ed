package engine

import "fmt"

// VerifyIntegrity walks the whole book and cross-checks pool accounting,
// queue links and tree ordering. It exists for tests and debug surfaces; the
// submit and match paths never call it and carry no checks of their own.
func (e *Engine) VerifyIntegrity() error {
	residentOrders := 0
	residentLevels := 0

	for _, side := range []Side{Buy, Sell} {
		var prices []uint32
		var werr error
		e.walkLevels(*e.treeRoot(side), false, func(lv levelRef) {
			if werr != nil {
				return
			}
			residentLevels++
			prices = append(prices, e.levels[lv].price)
			n, err := e.verifyQueue(lv)
			if err != nil {
				werr = fmt.Errorf("%v level at price %d: %w", side, e.levels[lv].price, err)
				return
			}
			residentOrders += n
		})
		if werr != nil {
			return werr
		}
		for i := 1; i < len(prices); i++ {
			if prices[i] <= prices[i-1] {
				return fmt.Errorf("%v tree out of order: price %d after %d", side, prices[i], prices[i-1])
			}
		}
	}

	if free := int(e.orderTop); free+residentOrders != MaxOrders {
		return fmt.Errorf("order pool accounting: %d free + %d resident != %d", free, residentOrders, MaxOrders)
	}
	if free := int(e.levelTop); free+residentLevels != MaxLevels {
		return fmt.Errorf("level pool accounting: %d free + %d resident != %d", free, residentLevels, MaxLevels)
	}
	return nil
}

func (e *Engine) verifyQueue(lv levelRef) (int, error) {
	level := &e.levels[lv]
	n := 0
	prev := nilOrder
	for ref := level.head; ref != nilOrder; ref = e.orders[ref].next {
		ord := &e.orders[ref]
		if ord.prev != prev {
			return n, fmt.Errorf("order %d: broken prev link", ord.id)
		}
		if ord.level != lv {
			return n, fmt.Errorf("order %d: broken level back-pointer", ord.id)
		}
		if ord.price != level.price {
			return n, fmt.Errorf("order %d: price %d queued at level price %d", ord.id, ord.price, level.price)
		}
		prev = ref
		n++
		if n > MaxOrders {
			return n, fmt.Errorf("queue cycle")
		}
	}
	if level.tail != prev {
		return n, fmt.Errorf("broken tail link")
	}
	if int(level.count) != n {
		return n, fmt.Errorf("count %d but %d orders walked", level.count, n)
	}
	if n == 0 {
		return n, fmt.Errorf("empty level resident in tree")
	}
	return n, nil
}
