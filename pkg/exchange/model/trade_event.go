package model

import (
	"time"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
)

// TradeEvent is one fill as it leaves the matching engine, stamped with the
// exchange-wide sequence number. The same record flows to feeds as JSON and
// into the trades table.
type TradeEvent struct {
	Seq         uint64    `json:"seq" gorm:"primaryKey"`
	Instrument  string    `json:"instrument"`
	BuyOrderID  uint64    `json:"buy_order_id"`
	BuyPrice    uint32    `json:"buy_price"`
	SellOrderID uint64    `json:"sell_order_id"`
	SellPrice   uint32    `json:"sell_price"`
	Quantity    uint32    `json:"quantity"`
	ExecutedAt  time.Time `json:"executed_at"`
}

func (TradeEvent) TableName() string {
	return "trades"
}

func NewTradeEvent(seq uint64, instrument string, t engine.Trade, at time.Time) TradeEvent {
	return TradeEvent{
		Seq:         seq,
		Instrument:  instrument,
		BuyOrderID:  t.BuyID,
		BuyPrice:    t.BuyPrice,
		SellOrderID: t.SellID,
		SellPrice:   t.SellPrice,
		Quantity:    t.Qty,
		ExecutedAt:  at,
	}
}
