package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Milo-Goodfellow-Work/matchbook/config"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/infra"
	kafkawrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/kafka_wrapper"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/logging"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/tradestore"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/tradestore/worker"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logging.Init(cfg.LogLevel)

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	if cfg.TradesDB == nil || cfg.Consumer == nil {
		zap.S().Fatal("worker needs trades_db and consumer config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		zap.S().Infow("shutting down")
		cancel()
	}()

	db := infra.GetMigrateTool().ConnectAndMigrate(cfg.TradesDB)
	store := tradestore.NewTradeSQLStore(db)

	w := worker.NewWorker(store)
	err = w.StartConsumer(ctx, kafkawrapper.ConsumerConfig{
		Brokers:     cfg.Consumer.Brokers,
		GroupID:     cfg.Consumer.GroupID,
		Topic:       cfg.Consumer.Topic,
		DLQTopic:    cfg.Consumer.DLQTopic,
		WorkerCount: cfg.Consumer.Workers,
	})
	if err != nil && ctx.Err() == nil {
		zap.S().Errorf("consumer stopped with err: %v", err)
		panic(err)
	}

	zap.S().Infow("worker exited")
}
