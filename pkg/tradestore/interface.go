package tradestore

import (
	"context"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
)

type ITradeStore interface {
	Create(ctx context.Context, record *model.TradeEvent) (*model.TradeEvent, error)
	BulkCreate(ctx context.Context, records []*model.TradeEvent) ([]*model.TradeEvent, error)
	Recent(ctx context.Context, instrument string, limit int) ([]*model.TradeEvent, error)
}
