package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftbox_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "giftbox_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// GiftOpensTotal по результату: opened, already_opened, not_found, invalid, error
	GiftOpensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftbox_gift_opens_total",
			Help: "Open attempts by outcome.",
		},
		[]string{"result"},
	)

	GiftListCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftbox_gift_list_cache_total",
			Help: "Gift list cache lookups by result.",
		},
		[]string{"result"},
	)
)
