package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
	redis_wrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/infra/redis"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/tradefeed"
)

// Measures publish+list-trim throughput of the redis trade feed. Batch size
// matters here: the feed pipelines one round trip per PublishTrades call.
func main() {
	var (
		url     = flag.String("url", "redis://localhost:6379/0", "redis connection url")
		total   = flag.Int("total", 100_000, "number of trades to publish")
		batch   = flag.Int("batch", 64, "trades per PublishTrades call")
		workers = flag.Int("workers", 8, "concurrent publishers")
	)
	flag.Parse()

	cfg := &redis_wrapper.RedisConfig{ConnectionURL: *url}
	client, err := redis_wrapper.InitRedis(cfg)
	if err != nil {
		log.Fatalf("init redis: %v", err)
	}
	defer client.Close()

	feed := tradefeed.NewRedisFeed(client, cfg)
	ctx := context.Background()

	var published, failed atomic.Int64
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(*workers)
	per := *total / *workers
	for w := 0; w < *workers; w++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < per; i += *batch {
				n := *batch
				if i+n > per {
					n = per - i
				}
				trades := make([]model.TradeEvent, n)
				for j := range trades {
					seq := uint64(base + i + j + 1)
					trades[j] = model.TradeEvent{
						Seq:         seq,
						Instrument:  "MATCHBOOK",
						BuyOrderID:  seq * 2,
						BuyPrice:    101,
						SellOrderID: seq*2 + 1,
						SellPrice:   100,
						Quantity:    10,
						ExecutedAt:  time.Now(),
					}
				}
				if err := feed.PublishTrades(ctx, trades); err != nil {
					failed.Add(int64(n))
					continue
				}
				published.Add(int64(n))
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
