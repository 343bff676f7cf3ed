package fixgateway

import (
	"sync"
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
)

type NewOrderSingle struct {
	SessionID quickfix.SessionID

	Account      string
	ClOrdID      string
	Symbol       string
	OrdType      enum.OrdType
	Price        decimal.Decimal
	Side         enum.Side
	TransactTime time.Time
	OrderQty     decimal.Decimal
}

type OrderCancelRequest struct {
	SessionID quickfix.SessionID

	OrigClOrdID  string
	ClOrdID      string
	Symbol       string
	Side         enum.Side
	TransactTime time.Time
}

// liveOrder is the gateway's view of one order resting in the book. Fill
// accounting runs under mu because trade callbacks may arrive from a Match
// on another session's goroutine.
type liveOrder struct {
	mu sync.Mutex

	engineID  uint64
	clOrdID   string
	sessionID quickfix.SessionID
	account   string
	symbol    string
	side      enum.Side
	price     uint32
	qty       uint32

	cum      uint64
	notional uint64
	done     bool
}

func (o *liveOrder) leaves() uint64 {
	return uint64(o.qty) - o.cum
}

func (o *liveOrder) avgPx() decimal.Decimal {
	if o.cum == 0 {
		return decimal.Zero
	}
	return decimal.NewFromUint64(o.notional).Div(decimal.NewFromUint64(o.cum))
}

func (o *liveOrder) status() enum.OrdStatus {
	switch {
	case o.cum == 0:
		return enum.OrdStatus_NEW
	case o.leaves() > 0:
		return enum.OrdStatus_PARTIALLY_FILLED
	default:
		return enum.OrdStatus_FILLED
	}
}
