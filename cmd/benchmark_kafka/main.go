package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
	kafkawrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/kafka_wrapper"
	"github.com/segmentio/kafka-go"
)

// Publishes synthetic trades through the producer wrapper to measure broker
// throughput in isolation from the matching engine.
func main() {
	var (
		brokers = flag.String("brokers", "localhost:9092", "comma-separated kafka brokers")
		topic   = flag.String("topic", "matchbook.trades", "topic to publish on")
		total   = flag.Int("total", 100_000, "number of trades to publish")
		workers = flag.Int("workers", 8, "concurrent publishers")
	)
	flag.Parse()

	prod := kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{
		Brokers:      strings.Split(*brokers, ","),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	})
	defer prod.Close()

	ctx := context.Background()
	var published, failed atomic.Int64

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(*workers)
	per := *total / *workers
	for w := 0; w < *workers; w++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < per; i++ {
				seq := uint64(base + i + 1)
				ev := &model.TradeEvent{
					Seq:         seq,
					Instrument:  "MATCHBOOK",
					BuyOrderID:  seq * 2,
					BuyPrice:    101,
					SellOrderID: seq*2 + 1,
					SellPrice:   100,
					Quantity:    10,
					ExecutedAt:  time.Now(),
				}
				if err := prod.PublishJSON(ctx, *topic, ev.Instrument, ev, nil); err != nil {
					failed.Add(1)
					continue
				}
				published.Add(1)
			}
		}(w * per)
	}
	wg.Wait()

	elapsed := time.Since(start)
	if n := failed.Load(); n > 0 {
		log.Printf("%d publishes failed", n)
	}
	fmt.Printf("Published %d trades in %v\n", published.Load(), elapsed)
	fmt.Printf("Throughput: %.2f trades/sec\n", float64(published.Load())/elapsed.Seconds())
}
