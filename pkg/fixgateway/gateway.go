// file: pkg/fixgateway/gateway.go

package fixgateway

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joripage/go_util/pkg/shardqueue"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange"
)

type Config struct {
	SettingsFile string
}

// FixGateway accepts FIX order flow and feeds it to the exchange. Order ids
// on the book are gateway-assigned; ClOrdIDs stay a session-local alias and
// may be reused once the order they named is done.
type FixGateway struct {
	cfg *Config
	app *Application
	ex  *exchange.Exchange

	byEngineID sync.Map
	byClOrdID  sync.Map

	nextOrderID atomic.Uint64
	nextExecID  atomic.Uint64

	outbound *shardqueue.Shardqueue
}

type outboundMsg struct {
	msg       *quickfix.Message
	sessionID quickfix.SessionID
}

func NewFixGateway(cfg *Config, ex *exchange.Exchange) *FixGateway {
	g := &FixGateway{
		cfg: cfg,
		ex:  ex,
	}

	// One shard per session keeps each session's reports in order without a
	// slow session blocking the rest.
	g.outbound = shardqueue.NewShardQueue(numShards, queueSize)
	g.outbound.Start(func(msg interface{}) error {
		if v, ok := msg.(*outboundMsg); ok {
			if err := quickfix.SendToTarget(v.msg, v.sessionID); err != nil {
				zap.S().Warnw("send report", "session", v.sessionID.String(), "err", err)
			}
			outboundPool.Put(v.msg)
		}
		return nil
	})

	ex.OnTrade(g.onTrade)
	return g
}

func (g *FixGateway) Start(ctx context.Context) error {
	app, err := startApp(g.cfg.SettingsFile, g)
	if err != nil {
		zap.S().Errorw("start fix acceptor", "err", err)
		return err
	}
	g.app = app
	return nil
}

func (g *FixGateway) Stop() {
	if g.app != nil {
		stopApp(g.app)
	}
}

func (g *FixGateway) send(sessionID quickfix.SessionID, msg *quickfix.Message) {
	g.outbound.Shard(sessionID.String(), &outboundMsg{msg: msg, sessionID: sessionID})
}

func (g *FixGateway) execID() string {
	return "E" + strconv.FormatUint(g.nextExecID.Add(1), 10)
}

func clOrdKey(sessionID quickfix.SessionID, clOrdID string) string {
	return sessionID.String() + "|" + clOrdID
}

func sideFromFIX(s enum.Side) (engine.Side, bool) {
	switch s {
	case enum.Side_BUY:
		return engine.Buy, true
	case enum.Side_SELL:
		return engine.Sell, true
	default:
		return engine.Buy, false
	}
}

var maxTick = decimal.NewFromInt(math.MaxUint32)

func narrowPrice(d decimal.Decimal) (uint32, error) {
	if !d.IsInteger() {
		return 0, errors.New("price must be a whole tick")
	}
	if d.Sign() < 0 || d.Cmp(maxTick) > 0 {
		return 0, errors.New("price out of range")
	}
	return uint32(d.IntPart()), nil
}

func narrowQty(d decimal.Decimal) (uint32, error) {
	if !d.IsInteger() {
		return 0, errors.New("quantity must be whole")
	}
	if d.Sign() <= 0 || d.Cmp(maxTick) > 0 {
		return 0, errors.New("quantity out of range")
	}
	return uint32(d.IntPart()), nil
}

// AddOrder validates one NewOrderSingle and rests it on the book. Accepted
// orders get a NEW report, then Match runs and fills stream out as TRADE
// reports through onTrade.
func (g *FixGateway) AddOrder(req *NewOrderSingle) {
	ord := &liveOrder{
		clOrdID:   req.ClOrdID,
		sessionID: req.SessionID,
		account:   req.Account,
		symbol:    req.Symbol,
		side:      req.Side,
	}

	key := clOrdKey(req.SessionID, req.ClOrdID)
	if _, loaded := g.byClOrdID.LoadOrStore(key, ord); loaded {
		g.reject(req, "duplicate ClOrdID")
		return
	}

	if req.OrdType != enum.OrdType_LIMIT {
		g.byClOrdID.Delete(key)
		g.reject(req, "only limit orders are supported")
		return
	}
	side, ok := sideFromFIX(req.Side)
	if !ok {
		g.byClOrdID.Delete(key)
		g.reject(req, "unsupported side")
		return
	}
	price, err := narrowPrice(req.Price)
	if err != nil {
		g.byClOrdID.Delete(key)
		g.reject(req, err.Error())
		return
	}
	qty, err := narrowQty(req.OrderQty)
	if err != nil {
		g.byClOrdID.Delete(key)
		g.reject(req, err.Error())
		return
	}

	ord.engineID = g.nextOrderID.Add(1)
	ord.price = price
	ord.qty = qty

	// The lock is held from before the order can trade until the NEW ack is
	// queued, so a fill from another session's match cannot outrun the ack.
	ord.mu.Lock()
	g.byEngineID.Store(ord.engineID, ord)
	if err := g.ex.SubmitChecked(ord.engineID, side, price, qty); err != nil {
		ord.mu.Unlock()
		g.byEngineID.Delete(ord.engineID)
		g.byClOrdID.Delete(key)
		g.reject(req, err.Error())
		return
	}
	g.ack(ord)
	ord.mu.Unlock()

	g.ex.Match()
}

// CancelOrder always answers with an OrderCancelReject: resting orders stay
// on the book until they trade.
func (g *FixGateway) CancelOrder(req *OrderCancelRequest) {
	reason := enum.CxlRejReason_OTHER
	ordStatus := enum.OrdStatus_REJECTED
	orderID := "NONE"
	text := "cancel is not supported"

	if v, ok := g.byClOrdID.Load(clOrdKey(req.SessionID, req.OrigClOrdID)); ok {
		ord := v.(*liveOrder)
		ord.mu.Lock()
		ordStatus = ord.status()
		orderID = strconv.FormatUint(ord.engineID, 10)
		ord.mu.Unlock()
	} else {
		reason = enum.CxlRejReason_UNKNOWN_ORDER
		text = "unknown order"
	}

	msg := buildOrderCancelReject(req.SessionID.BeginString, &cancelReject{
		orderID:     orderID,
		clOrdID:     req.ClOrdID,
		origClOrdID: req.OrigClOrdID,
		ordStatus:   ordStatus,
		reason:      reason,
		text:        text,
	})
	g.send(req.SessionID, msg)
}

func (g *FixGateway) reject(req *NewOrderSingle, reason string) {
	msg := buildExecutionReport(req.SessionID.BeginString, &execReport{
		orderID:      "NONE",
		execID:       g.execID(),
		clOrdID:      req.ClOrdID,
		account:      req.Account,
		symbol:       req.Symbol,
		side:         req.Side,
		ordStatus:    enum.OrdStatus_REJECTED,
		execType:     enum.ExecType_REJECTED,
		transactTime: time.Now().UTC(),
		text:         reason,
	})
	g.send(req.SessionID, msg)
}

func (g *FixGateway) ack(ord *liveOrder) {
	msg := buildExecutionReport(ord.sessionID.BeginString, &execReport{
		orderID:      strconv.FormatUint(ord.engineID, 10),
		execID:       g.execID(),
		clOrdID:      ord.clOrdID,
		account:      ord.account,
		symbol:       ord.symbol,
		side:         ord.side,
		ordStatus:    enum.OrdStatus_NEW,
		execType:     enum.ExecType_NEW,
		orderQty:     ord.qty,
		price:        ord.price,
		leaves:       uint64(ord.qty),
		transactTime: time.Now().UTC(),
	})
	g.send(ord.sessionID, msg)
}

// onTrade receives every fill on the exchange, including fills against
// non-FIX flow. Sides the gateway does not know are someone else's orders.
func (g *FixGateway) onTrade(tr engine.Trade) {
	if tr.Qty == 0 {
		return
	}
	g.reportFill(tr.BuyID, tr.BuyPrice, tr.Qty)
	g.reportFill(tr.SellID, tr.SellPrice, tr.Qty)
}

func (g *FixGateway) reportFill(engineID uint64, px, qty uint32) {
	v, ok := g.byEngineID.Load(engineID)
	if !ok {
		return
	}
	ord := v.(*liveOrder)

	// Build and queue under the lock so reports leave in cum order.
	ord.mu.Lock()
	ord.cum += uint64(qty)
	ord.notional += uint64(qty) * uint64(px)
	status := ord.status()
	rep := &execReport{
		orderID:      strconv.FormatUint(ord.engineID, 10),
		execID:       g.execID(),
		clOrdID:      ord.clOrdID,
		account:      ord.account,
		symbol:       ord.symbol,
		side:         ord.side,
		ordStatus:    status,
		execType:     enum.ExecType_TRADE,
		orderQty:     ord.qty,
		price:        ord.price,
		lastQty:      uint64(qty),
		lastPx:       px,
		leaves:       ord.leaves(),
		cum:          ord.cum,
		avgPx:        ord.avgPx(),
		transactTime: time.Now().UTC(),
	}
	done := status == enum.OrdStatus_FILLED
	if done {
		ord.done = true
	}
	g.send(ord.sessionID, buildExecutionReport(ord.sessionID.BeginString, rep))
	ord.mu.Unlock()

	if done {
		g.byEngineID.Delete(engineID)
		g.byClOrdID.Delete(clOrdKey(ord.sessionID, ord.clOrdID))
	}
}
