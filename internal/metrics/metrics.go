// Package metrics holds the Prometheus collectors of the page server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status_code"},
	)
)

var (
	PriceFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raffle_price_fallback_total",
			Help: "Times the ticket price could not be read and the default price was used",
		},
		[]string{"reason"},
	)

	SelectionTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_toggles_total",
			Help: "Ticket button toggles by outcome",
		},
		[]string{"result"},
	)

	PurchaseSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_submissions_total",
			Help: "Purchase requests relayed to the backend by status",
		},
		[]string{"status"},
	)

	CardExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_exports_total",
			Help: "Result card image exports by status",
		},
		[]string{"status"},
	)

	OfflineCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_cache_requests_total",
			Help: "Offline cache lookups by result",
		},
		[]string{"result"},
	)
)

// TimeHTTPRequest starts a timer; the returned func records the request.
func TimeHTTPRequest(route, method string) func(statusCode string) {
	start := time.Now()
	return func(statusCode string) {
		HTTPRequestDuration.WithLabelValues(route, method, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(route, method, statusCode).Inc()
	}
}

// RecordPriceFallback counts a price fallback.
func RecordPriceFallback(reason string) {
	PriceFallbackTotal.WithLabelValues(reason).Inc()
}

// RecordToggle counts a toggle; applied is false for sold or empty clicks.
func RecordToggle(applied bool) {
	result := "applied"
	if !applied {
		result = "ignored"
	}
	SelectionTogglesTotal.WithLabelValues(result).Inc()
}

func RecordPurchase(status string) { PurchaseSubmissionsTotal.WithLabelValues(status).Inc() }

func RecordExport(status string) { CardExportsTotal.WithLabelValues(status).Inc() }

func RecordOfflineCache(result string) { OfflineCacheRequestsTotal.WithLabelValues(result).Inc() }
