package fixgateway

import (
	"sync"
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	fix42er "github.com/quickfixgo/fix42/executionreport"
	fix42ocj "github.com/quickfixgo/fix42/ordercancelreject"
	fix44er "github.com/quickfixgo/fix44/executionreport"
	fix44ocj "github.com/quickfixgo/fix44/ordercancelreject"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
)

// MessagePool recycles quickfix messages between outbound reports.
type MessagePool struct {
	pool sync.Pool
}

func NewMessagePool() *MessagePool {
	return &MessagePool{
		pool: sync.Pool{
			New: func() interface{} {
				m := quickfix.NewMessage()
				resetMessage(m)
				return m
			},
		},
	}
}

func (mp *MessagePool) Get() *quickfix.Message {
	m := mp.pool.Get().(*quickfix.Message)
	resetMessage(m)
	return m
}

func (mp *MessagePool) Put(m *quickfix.Message) {
	resetMessage(m)
	mp.pool.Put(m)
}

func resetMessage(m *quickfix.Message) {
	m.Header.Init()
	m.Body.Init()
	m.Trailer.Init()
	m.Header.Clear()
	m.Body.Clear()
	m.Trailer.Clear()
}

var outboundPool = NewMessagePool()

// execReport carries one report's fields in engine terms; the builders below
// render it for the session's FIX version.
type execReport struct {
	orderID      string
	execID       string
	clOrdID      string
	account      string
	symbol       string
	side         enum.Side
	ordStatus    enum.OrdStatus
	execType     enum.ExecType
	orderQty     uint32
	price        uint32
	lastQty      uint64
	lastPx       uint32
	leaves       uint64
	cum          uint64
	avgPx        decimal.Decimal
	text         string
	transactTime time.Time
}

// execType42 maps the fix44 Trade exec type onto the 4.2 fill vocabulary.
func (r *execReport) execType42() enum.ExecType {
	if r.execType != enum.ExecType_TRADE {
		return r.execType
	}
	if r.ordStatus == enum.OrdStatus_FILLED {
		return enum.ExecType_FILL
	}
	return enum.ExecType_PARTIAL_FILL
}

// buildExecutionReport renders r on a pooled message. The caller owns the
// message until it returns it via outboundPool.Put, after the send.
func buildExecutionReport(beginString string, r *execReport) *quickfix.Message {
	msg := outboundPool.Get()

	if beginString == quickfix.BeginStringFIX42 {
		er := fix42er.FromMessage(msg)
		er.Header.Set(field.NewMsgType(enum.MsgType_EXECUTION_REPORT))
		er.SetOrderID(r.orderID)
		er.SetExecID(r.execID)
		er.SetExecTransType(enum.ExecTransType_NEW)
		er.SetExecType(r.execType42())
		er.SetOrdStatus(r.ordStatus)
		er.SetSymbol(r.symbol)
		er.SetSide(r.side)
		er.SetLeavesQty(decimal.NewFromUint64(r.leaves), 0)
		er.SetCumQty(decimal.NewFromUint64(r.cum), 0)
		er.SetAvgPx(r.avgPx, 0)
		er.SetClOrdID(r.clOrdID)
		er.SetOrderQty(decimal.NewFromUint64(uint64(r.orderQty)), 0)
		er.SetPrice(decimal.NewFromUint64(uint64(r.price)), 0)
		er.SetTransactTime(r.transactTime)
		if r.account != "" {
			er.SetAccount(r.account)
		}
		if r.execType == enum.ExecType_TRADE {
			er.SetLastShares(decimal.NewFromUint64(r.lastQty), 0)
			er.SetLastPx(decimal.NewFromUint64(uint64(r.lastPx)), 0)
		}
		if r.text != "" {
			er.SetText(r.text)
		}
		return msg
	}

	er := fix44er.FromMessage(msg)
	er.Header.Set(field.NewMsgType(enum.MsgType_EXECUTION_REPORT))
	er.SetOrderID(r.orderID)
	er.SetExecID(r.execID)
	er.SetExecType(r.execType)
	er.SetOrdStatus(r.ordStatus)
	er.SetSymbol(r.symbol)
	er.SetSide(r.side)
	er.SetLeavesQty(decimal.NewFromUint64(r.leaves), 0)
	er.SetCumQty(decimal.NewFromUint64(r.cum), 0)
	er.SetAvgPx(r.avgPx, 0)
	er.SetClOrdID(r.clOrdID)
	er.SetOrderQty(decimal.NewFromUint64(uint64(r.orderQty)), 0)
	er.SetPrice(decimal.NewFromUint64(uint64(r.price)), 0)
	er.SetTransactTime(r.transactTime)
	if r.account != "" {
		er.SetAccount(r.account)
	}
	if r.execType == enum.ExecType_TRADE {
		er.SetLastQty(decimal.NewFromUint64(r.lastQty), 0)
		er.SetLastPx(decimal.NewFromUint64(uint64(r.lastPx)), 0)
	}
	if r.text != "" {
		er.SetText(r.text)
	}
	return msg
}

type cancelReject struct {
	orderID     string
	clOrdID     string
	origClOrdID string
	ordStatus   enum.OrdStatus
	reason      enum.CxlRejReason
	text        string
}

func buildOrderCancelReject(beginString string, r *cancelReject) *quickfix.Message {
	msg := outboundPool.Get()

	if beginString == quickfix.BeginStringFIX42 {
		cr := fix42ocj.FromMessage(msg)
		cr.Header.Set(field.NewMsgType(enum.MsgType_ORDER_CANCEL_REJECT))
		cr.SetOrderID(r.orderID)
		cr.SetClOrdID(r.clOrdID)
		cr.SetOrigClOrdID(r.origClOrdID)
		cr.SetOrdStatus(r.ordStatus)
		cr.SetCxlRejResponseTo(enum.CxlRejResponseTo_ORDER_CANCEL_REQUEST)
		cr.SetCxlRejReason(r.reason)
		if r.text != "" {
			cr.SetText(r.text)
		}
		return msg
	}

	cr := fix44ocj.FromMessage(msg)
	cr.Header.Set(field.NewMsgType(enum.MsgType_ORDER_CANCEL_REJECT))
	cr.SetOrderID(r.orderID)
	cr.SetClOrdID(r.clOrdID)
	cr.SetOrigClOrdID(r.origClOrdID)
	cr.SetOrdStatus(r.ordStatus)
	cr.SetCxlRejResponseTo(enum.CxlRejResponseTo_ORDER_CANCEL_REQUEST)
	cr.SetCxlRejReason(r.reason)
	if r.text != "" {
		cr.SetText(r.text)
	}
	return msg
}
