// file: pkg/engine/engine.go

package engine

// Engine is a single-instrument limit order book with fixed-capacity,
// index-based storage. All book state lives in the struct's arrays; the
// submit and match paths perform no heap allocation.
//
// An Engine is not safe for concurrent use. Callers that share one must
// serialize every call behind a single lock; exchange.Exchange is the
// wrapper that does so.
type Engine struct {
	orders [MaxOrders]order
	levels [MaxLevels]level

	orderFree [MaxOrders]orderRef
	orderTop  uint32

	levelFree [MaxLevels]levelRef
	levelTop  uint32

	buyTree  levelRef
	sellTree levelRef

	callbacks []func(Trade)
}

// New returns an empty book: both pools fully free, both sides empty.
func New() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// Reset restores the empty book. Registered trade callbacks survive.
func (e *Engine) Reset() {
	e.orders = [MaxOrders]order{}
	e.levels = [MaxLevels]level{}
	for i := range e.orderFree {
		e.orderFree[i] = orderRef(i)
	}
	e.orderTop = MaxOrders
	for i := range e.levelFree {
		e.levelFree[i] = levelRef(i)
	}
	e.levelTop = MaxLevels
	e.buyTree = nilLevel
	e.sellTree = nilLevel
}

// Submit rests a limit order on the book. It never matches; crossing orders
// sit until the next Match call. An order that cannot be stored because a
// pool is exhausted is dropped without any signal; use SubmitChecked where
// drops must be observed.
//
// No validation is applied. Zero prices, zero quantities and duplicate ids
// are all accepted as given.
func (e *Engine) Submit(id uint64, side Side, price, qty uint32) {
	e.submit(id, side, price, qty)
}

// SubmitChecked is Submit reporting pool exhaustion instead of dropping
// silently. The book state after a failed SubmitChecked is identical to the
// state before the call.
func (e *Engine) SubmitChecked(id uint64, side Side, price, qty uint32) error {
	return e.submit(id, side, price, qty)
}

func (e *Engine) submit(id uint64, side Side, price, qty uint32) error {
	ref := e.allocOrder()
	if ref == nilOrder {
		return ErrOrderPoolExhausted
	}
	ord := &e.orders[ref]
	ord.id = id
	ord.price = price
	ord.qty = qty
	ord.side = side
	ord.next = nilOrder
	ord.prev = nilOrder
	ord.level = nilLevel

	lv := e.findLevel(side, price)
	if lv == nilLevel {
		lv = e.allocLevel(price)
		if lv == nilLevel {
			e.freeOrder(ref)
			return ErrLevelPoolExhausted
		}
		e.insertLevel(side, lv)
	}
	e.enqueue(lv, ref)
	return nil
}

// Cancel does nothing. The book has no order removal; resting quantity
// leaves only by trading. The method exists so order-entry surfaces have a
// single call to route cancel requests at.
func (e *Engine) Cancel(id uint64) {}

// OnTrade registers fn to observe every trade Match emits. Callbacks run
// synchronously inside Match, in registration order, and survive Reset.
func (e *Engine) OnTrade(fn func(Trade)) {
	e.callbacks = append(e.callbacks, fn)
}

// FreeOrders reports how many order slots remain unallocated.
func (e *Engine) FreeOrders() int { return int(e.orderTop) }

// FreeLevels reports how many level slots remain unallocated.
func (e *Engine) FreeLevels() int { return int(e.levelTop) }
