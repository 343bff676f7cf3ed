// file: pkg/tradefeed/kafka.go

package tradefeed

import (
	"context"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
	kafkawrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/kafka_wrapper"
)

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Async   bool     `yaml:"async"`
}

// KafkaFeed publishes trade events as JSON, keyed by instrument so one
// instrument's trades stay on one partition in order.
type KafkaFeed struct {
	prod  *kafkawrapper.Producer
	topic string
}

func NewKafkaFeed(cfg *KafkaConfig) *KafkaFeed {
	topic := cfg.Topic
	if topic == "" {
		topic = "matchbook.trades"
	}
	return &KafkaFeed{
		prod: kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{
			Brokers: cfg.Brokers,
			Async:   cfg.Async,
		}),
		topic: topic,
	}
}

func (f *KafkaFeed) Name() string { return "kafka" }

func (f *KafkaFeed) PublishTrades(ctx context.Context, trades []model.TradeEvent) error {
	for _, ev := range trades {
		if err := f.prod.PublishJSON(ctx, f.topic, ev.Instrument, ev, nil); err != nil {
			return err
		}
	}
	return nil
}

func (f *KafkaFeed) Close() error { return f.prod.Close() }
