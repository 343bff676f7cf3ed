package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Milo-Goodfellow-Work/matchbook/config"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/risk"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/fixgateway"
	redis_wrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/infra/redis"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/logging"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/tradefeed"
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

	httpAddr := "localhost:6060"
	if cfg.Server != nil && cfg.Server.HTTPAddr != "" {
		httpAddr = cfg.Server.HTTPAddr
	}
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(httpAddr, nil); err != nil {
			zap.S().Warnw("http listener", "addr", httpAddr, "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ex := exchange.New(exchange.Config{
		Instrument: cfg.Instrument,
		RecentSize: cfg.RecentTrades,
		Rules:      riskRules(cfg.Risk),
	})

	if cfg.Kafka != nil {
		feed := tradefeed.NewKafkaFeed(cfg.Kafka)
		defer feed.Close() // nolint
		ex.AddPublisher(feed)
	}
	if cfg.Redis != nil {
		client, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Errorf("init redis fail with err: %v", err)
			panic(err)
		}
		ex.AddPublisher(tradefeed.NewRedisFeed(client, cfg.Redis))
	}

	settingsFile := "./config/fix/acceptor.cfg"
	if cfg.Fix != nil && cfg.Fix.SettingsFile != "" {
		settingsFile = cfg.Fix.SettingsFile
	}

	gw := fixgateway.NewFixGateway(&fixgateway.Config{SettingsFile: settingsFile}, ex)
	if err := gw.Start(ctx); err != nil {
		panic(err)
	}

	zap.S().Infow("FIX acceptor started", "instrument", ex.Instrument())

	<-sigs
	zap.S().Infow("shutting down")
	gw.Stop()
	cancel()
}

func riskRules(rc *config.RiskConfig) []risk.Rule {
	if rc == nil {
		return nil
	}
	var rules []risk.Rule
	if rc.PriceFloor > 0 || rc.PriceCeil > 0 {
		rules = append(rules, &risk.PriceBandRule{Floor: rc.PriceFloor, Ceil: rc.PriceCeil})
	}
	if rc.MaxQty > 0 {
		rules = append(rules, &risk.MaxQtyRule{Max: rc.MaxQty})
	}
	if rc.TickFile != "" {
		rule, err := risk.NewTickSizeRuleFromFile(rc.TickFile)
		if err != nil {
			zap.S().Warnw("load tick size rule", "file", rc.TickFile, "err", err)
		} else {
			rules = append(rules, rule)
		}
	}
	return rules
}
