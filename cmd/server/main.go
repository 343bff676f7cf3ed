package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Milo-Goodfellow-Work/matchbook/config"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/logging"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/metrics"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/protocol"
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

	listenAddr := ":9000"
	httpAddr := "localhost:6060"
	if cfg.Server != nil {
		if cfg.Server.ListenAddr != "" {
			listenAddr = cfg.Server.ListenAddr
		}
		if cfg.Server.HTTPAddr != "" {
			httpAddr = cfg.Server.HTTPAddr
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// metrics and pprof share the side listener
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(httpAddr, nil); err != nil {
			zap.S().Warnw("http listener", "addr", httpAddr, "err", err)
		}
	}()

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		zap.S().Fatalw("listen", "addr", listenAddr, "err", err)
	}

	go func() {
		<-sigs
		zap.S().Infow("shutting down")
		cancel()
		ln.Close()
	}()

	zap.S().Infow("accepting sessions", "addr", listenAddr)

	// Every connection gets a private book, so one client's INIT can never
	// clear another client's orders.
	var wg sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				wg.Wait()
				zap.S().Infow("all sessions drained")
				return
			default:
				zap.S().Warnw("accept", "err", err)
				continue
			}
		}

		wg.Add(1)
		go func(c net.Conn) {
			defer wg.Done()
			defer c.Close()

			metrics.ActiveSessions.Inc()
			defer metrics.ActiveSessions.Dec()

			sess := protocol.NewSession(engine.New(), c, c)
			if err := sess.Run(); err != nil {
				zap.S().Debugw("session closed", "remote", c.RemoteAddr().String(), "err", err)
			}
		}(conn)
	}
}
