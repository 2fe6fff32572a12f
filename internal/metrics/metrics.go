package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrderFetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carwash_order_fetches_total",
		Help: "Total number of successful order list/detail fetches.",
	})

	OrderFetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carwash_order_fetch_errors_total",
		Help: "Total number of failed order fetches.",
	})

	OrderUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carwash_order_updates_total",
		Help: "Total number of successful order updates.",
	})

	OrderUpdateErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carwash_order_update_errors_total",
		Help: "Total number of failed order updates.",
	})

	LiveSearchStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carwash_live_search_streams",
		Help: "Current number of open live search streams.",
	})
)
