// file: pkg/tradefeed/redis.go

package tradefeed

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
	redis_wrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/infra/redis"
)

// RedisFeed pushes each trade to a pub/sub channel for live subscribers and
// mirrors it into a capped list so late joiners can read recent history.
type RedisFeed struct {
	client  *redis.Client
	channel string
	list    string
	listLen int64
}

func NewRedisFeed(client *redis.Client, cfg *redis_wrapper.RedisConfig) *RedisFeed {
	channel := cfg.TradeChannel
	if channel == "" {
		channel = "matchbook:trades"
	}
	list := cfg.TradeList
	if list == "" {
		list = "matchbook:trades:recent"
	}
	listLen := cfg.TradeListLength
	if listLen <= 0 {
		listLen = 100
	}
	return &RedisFeed{
		client:  client,
		channel: channel,
		list:    list,
		listLen: listLen,
	}
}

func (f *RedisFeed) Name() string { return "redis" }

func (f *RedisFeed) PublishTrades(ctx context.Context, trades []model.TradeEvent) error {
	pipe := f.client.Pipeline()
	for _, ev := range trades {
		payload, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		pipe.Publish(ctx, f.channel, payload)
		pipe.LPush(ctx, f.list, payload)
	}
	pipe.LTrim(ctx, f.list, 0, f.listLen-1)
	_, err := pipe.Exec(ctx)
	return err
}
