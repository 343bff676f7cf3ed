package engine

// Trade is one fill. Both orders report their resting price, so a crossed
// match carries the maker price of each side rather than a single execution
// price.
type Trade struct {
	BuyID     uint64
	BuyPrice  uint32
	SellID    uint64
	SellPrice uint32
	Qty       uint32
}

// matchBudget bounds the match loop. Every iteration of a consistent book
// frees at least one order, so the bound is unreachable unless the book is
// corrupt.
const matchBudget = 2 * (MaxOrders + MaxLevels)

// Match crosses the book until the best buy no longer reaches the best sell,
// emitting one Trade per fill to the registered callbacks. The fill quantity
// is the smaller of the two head orders' remaining quantities; a head
// already at zero quantity still produces a (zero-quantity) trade before it
// is released.
//
// Orders filled to zero are dequeued and freed; levels left without orders
// are removed from their tree and freed. Returns the number of trades
// emitted. Calling Match again on an unchanged book emits nothing.
func (e *Engine) Match() int {
	trades := 0
	for i := 0; i < matchBudget; i++ {
		buyLv := e.bestLevel(Buy)
		sellLv := e.bestLevel(Sell)
		if buyLv == nilLevel || sellLv == nilLevel {
			break
		}
		buyLevel := &e.levels[buyLv]
		sellLevel := &e.levels[sellLv]
		if buyLevel.price < sellLevel.price {
			break
		}

		buy := &e.orders[buyLevel.head]
		sell := &e.orders[sellLevel.head]

		fill := buy.qty
		if sell.qty < fill {
			fill = sell.qty
		}

		// Report before touching the book.
		e.emit(Trade{
			BuyID:     buy.id,
			BuyPrice:  buy.price,
			SellID:    sell.id,
			SellPrice: sell.price,
			Qty:       fill,
		})
		trades++

		buy.qty -= fill
		sell.qty -= fill

		if buy.qty == 0 {
			e.freeOrder(e.dequeueHead(buyLv))
			if buyLevel.count == 0 {
				e.removeBest(Buy)
				e.freeLevel(buyLv)
			}
		}
		if sell.qty == 0 {
			e.freeOrder(e.dequeueHead(sellLv))
			if sellLevel.count == 0 {
				e.removeBest(Sell)
				e.freeLevel(sellLv)
			}
		}
	}
	return trades
}

func (e *Engine) emit(t Trade) {
	for _, fn := range e.callbacks {
		fn(t)
	}
}
