// file: pkg/tradestore/worker/worker.go
package worker

import (
	"context"
	"encoding/json"

	_ "github.com/lib/pq"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
	kafkawrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/kafka_wrapper"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/logging"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/tradestore"
)

// Worker drains the trade topic into the trade store. Batches arrive from the
// consumer group already sized and deadlined; a batch is committed upstream
// only after HandleBatch resolves.
type Worker struct {
	store tradestore.ITradeStore
}

func NewWorker(store tradestore.ITradeStore) *Worker {
	return &Worker{
		store: store,
	}
}

func (w *Worker) StartConsumer(ctx context.Context, cfg kafkawrapper.ConsumerConfig) error {
	cg, err := kafkawrapper.NewConsumerGroup(cfg)
	if err != nil {
		return err
	}
	defer cg.Close()

	return cg.Run(ctx, w.HandleBatch)
}

func (w *Worker) HandleBatch(ctx context.Context, msgs []kafkawrapper.Message) error {
	// One request id per batch ties skip warnings and the store error together.
	ctx = logging.WithRequestID(ctx, "")
	log := logging.For(ctx)

	records := make([]*model.TradeEvent, 0, len(msgs))
	for _, msg := range msgs {
		var ev model.TradeEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Warnw("skip undecodable trade message",
				"topic", msg.Topic, "offset", msg.Offset, "err", err)
			continue
		}
		records = append(records, &ev)
	}
	if len(records) == 0 {
		return nil
	}

	_, err := w.store.BulkCreate(ctx, records)
	return err
}
