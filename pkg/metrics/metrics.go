package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchbook_orders_submitted_total",
		Help: "Orders accepted onto the book.",
	})

	OrdersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchbook_orders_rejected_total",
		Help: "Orders rejected before reaching the book.",
	}, []string{"reason"})

	OrdersDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchbook_orders_dropped_total",
		Help: "Orders dropped because a pool was exhausted.",
	})

	TradesMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchbook_trades_matched_total",
		Help: "Trades emitted by the match loop.",
	})

	TradeQuantity = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchbook_trade_quantity_total",
		Help: "Total quantity crossed.",
	})

	MatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matchbook_match_duration_seconds",
		Help:    "Wall time of one match call.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	})

	FreeOrderSlots = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matchbook_free_order_slots",
		Help: "Unallocated order pool slots, sampled after each match.",
	})

	FreeLevelSlots = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matchbook_free_level_slots",
		Help: "Unallocated level pool slots, sampled after each match.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matchbook_active_sessions",
		Help: "Protocol sessions currently connected.",
	})

	TradesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchbook_trades_published_total",
		Help: "Trade events handed to each publisher.",
	}, []string{"publisher"})

	PublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchbook_publish_errors_total",
		Help: "Failed publish batches per publisher.",
	}, []string{"publisher"})
)
