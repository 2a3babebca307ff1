package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CodesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tecsoqr",
		Name:      "codes_generated_total",
		Help:      "QR codes generated, by content type.",
	}, []string{"type"})

	EncodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tecsoqr",
		Name:      "encode_errors_total",
		Help:      "Content that failed to encode, by error code.",
	}, []string{"code"})

	BulkItems = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tecsoqr",
		Name:      "bulk_items_total",
		Help:      "Images rendered by bulk jobs.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tecsoqr",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	ExpiredPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tecsoqr",
		Name:      "history_purged_total",
		Help:      "Expired history rows deleted.",
	})
)

func ObserveRequest(route, method string, status int, start time.Time) {
	RequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
