// file: pkg/exchange/exchange.go

package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/gammazero/deque"
	"go.uber.org/zap"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/risk"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/metrics"
)

// Publisher receives the batch of trades produced by one match run.
type Publisher interface {
	Name() string
	PublishTrades(ctx context.Context, trades []model.TradeEvent) error
}

type Config struct {
	Instrument string
	RecentSize int
	Rules      []risk.Rule
}

// Exchange serializes one engine behind a mutex and turns its fills into
// sequenced TradeEvents. The engine itself is single-threaded; every entry
// point here holds the lock for the full book operation, which is the one
// sanctioned way to share a book between goroutines.
//
// Trades captured during Match are drained into a batch under the lock and
// delivered to observers and publishers after it is released, so a slow
// publisher never blocks the book. Batches from concurrent Match calls are
// disjoint; the sequence number gives the authoritative trade order.
type Exchange struct {
	instrument string
	recentSize int

	mu      sync.Mutex
	book    *engine.Engine
	seq     uint64
	pending deque.Deque[model.TradeEvent]
	recent  deque.Deque[model.TradeEvent]

	rules      []risk.Rule
	callbacks  []func(engine.Trade)
	publishers []Publisher
}

func New(cfg Config) *Exchange {
	if cfg.Instrument == "" {
		cfg.Instrument = "MATCHBOOK"
	}
	if cfg.RecentSize <= 0 {
		cfg.RecentSize = 100
	}
	e := &Exchange{
		instrument: cfg.Instrument,
		recentSize: cfg.RecentSize,
		book:       engine.New(),
		rules:      cfg.Rules,
	}
	e.book.OnTrade(e.capture)
	return e
}

// capture runs inside book.Match with the lock held.
func (e *Exchange) capture(t engine.Trade) {
	e.seq++
	e.pending.PushBack(model.NewTradeEvent(e.seq, e.instrument, t, time.Now()))
}

func (e *Exchange) Instrument() string { return e.instrument }

// Reset empties the book and the recent-trade ring. The trade sequence
// keeps counting so persisted trades never collide.
func (e *Exchange) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.book.Reset()
	e.pending.Clear()
	e.recent.Clear()
}

// Submit runs the risk rules and rests the order. Rejections and pool drops
// are counted and logged but not surfaced; SubmitChecked surfaces them.
func (e *Exchange) Submit(id uint64, side engine.Side, price, qty uint32) {
	_ = e.SubmitChecked(id, side, price, qty)
}

func (e *Exchange) SubmitChecked(id uint64, side engine.Side, price, qty uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	req := &model.OrderRequest{ID: id, Side: side, Price: price, Qty: qty}
	for _, rule := range e.rules {
		if err := rule.Check(req); err != nil {
			metrics.OrdersRejected.WithLabelValues(err.Error()).Inc()
			zap.S().Debugw("order rejected", "id", id, "err", err)
			return err
		}
	}

	if err := e.book.SubmitChecked(id, side, price, qty); err != nil {
		metrics.OrdersDropped.Inc()
		zap.S().Debugw("order dropped", "id", id, "err", err)
		return err
	}
	metrics.OrdersSubmitted.Inc()
	return nil
}

// Match crosses the book and hands the resulting trades to the registered
// observers and publishers. Returns the number of trades.
func (e *Exchange) Match() int {
	e.mu.Lock()
	start := time.Now()
	n := e.book.Match()
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.FreeOrderSlots.Set(float64(e.book.FreeOrders()))
	metrics.FreeLevelSlots.Set(float64(e.book.FreeLevels()))

	batch := make([]model.TradeEvent, 0, e.pending.Len())
	for e.pending.Len() > 0 {
		ev := e.pending.PopFront()
		batch = append(batch, ev)
		e.recent.PushBack(ev)
		for e.recent.Len() > e.recentSize {
			e.recent.PopFront()
		}
	}
	callbacks := e.callbacks
	publishers := e.publishers
	e.mu.Unlock()

	if len(batch) == 0 {
		return n
	}
	metrics.TradesMatched.Add(float64(len(batch)))
	var qty uint64
	for _, ev := range batch {
		qty += uint64(ev.Quantity)
	}
	metrics.TradeQuantity.Add(float64(qty))

	for _, ev := range batch {
		t := engine.Trade{
			BuyID:     ev.BuyOrderID,
			BuyPrice:  ev.BuyPrice,
			SellID:    ev.SellOrderID,
			SellPrice: ev.SellPrice,
			Qty:       ev.Quantity,
		}
		for _, fn := range callbacks {
			fn(t)
		}
	}
	e.deliver(batch, publishers)
	return n
}

func (e *Exchange) deliver(batch []model.TradeEvent, publishers []Publisher) {
	ctx := context.Background()
	for _, p := range publishers {
		if err := p.PublishTrades(ctx, batch); err != nil {
			metrics.PublishErrors.WithLabelValues(p.Name()).Inc()
			zap.S().Errorw("publish trades", "publisher", p.Name(), "count", len(batch), "err", err)
			continue
		}
		metrics.TradesPublished.WithLabelValues(p.Name()).Add(float64(len(batch)))
	}
}

// OnTrade registers an observer for every trade, in engine form. Observers
// run after the book lock is released.
func (e *Exchange) OnTrade(fn func(engine.Trade)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks = append(e.callbacks, fn)
}

func (e *Exchange) AddPublisher(p Publisher) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.publishers = append(e.publishers, p)
}

func (e *Exchange) AddRule(r risk.Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, r)
}

// Recent returns up to limit of the latest trades, oldest first. limit <= 0
// returns everything the ring holds.
func (e *Exchange) Recent(limit int) []model.TradeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := e.recent.Len()
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]model.TradeEvent, 0, limit)
	for i := n - limit; i < n; i++ {
		out = append(out, e.recent.At(i))
	}
	return out
}

func (e *Exchange) Depth(side engine.Side) []engine.LevelSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Depth(side)
}

type Stats struct {
	Instrument string `json:"instrument"`
	Seq        uint64 `json:"seq"`
	FreeOrders int    `json:"free_orders"`
	FreeLevels int    `json:"free_levels"`
	BuyLevels  int    `json:"buy_levels"`
	SellLevels int    `json:"sell_levels"`
}

func (e *Exchange) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Instrument: e.instrument,
		Seq:        e.seq,
		FreeOrders: e.book.FreeOrders(),
		FreeLevels: e.book.FreeLevels(),
		BuyLevels:  len(e.book.Depth(engine.Buy)),
		SellLevels: len(e.book.Depth(engine.Sell)),
	}
}

func (e *Exchange) VerifyIntegrity() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.VerifyIntegrity()
}
