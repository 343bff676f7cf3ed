package tradestore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
)

type TradeSQLStore struct {
	db *gorm.DB
}

func NewTradeSQLStore(db *gorm.DB) *TradeSQLStore {
	return &TradeSQLStore{
		db: db,
	}
}

func (s *TradeSQLStore) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *TradeSQLStore) Create(ctx context.Context, record *model.TradeEvent) (*model.TradeEvent, error) {
	return record, s.dbWithContext(ctx).Create(record).Error
}

// BulkCreate tolerates redelivered batches: a row whose seq already exists is
// skipped instead of failing the whole insert.
func (s *TradeSQLStore) BulkCreate(ctx context.Context, records []*model.TradeEvent) ([]*model.TradeEvent, error) {
	return records, s.dbWithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(records).Error
}

func (s *TradeSQLStore) Recent(ctx context.Context, instrument string, limit int) ([]*model.TradeEvent, error) {
	var records []*model.TradeEvent
	q := s.dbWithContext(ctx).Order("seq desc").Limit(limit)
	if instrument != "" {
		q = q.Where("instrument = ?", instrument)
	}
	return records, q.Find(&records).Error
}
