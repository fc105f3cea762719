package middleware

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP 요청 수
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP 요청 지연시간 (히스토그램)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_http_active_requests",
			Help: "Number of in-flight HTTP requests",
		},
	)

	// store 실패를 빈 목록으로 대체한 횟수
	degradedResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_degraded_responses_total",
			Help: "Public listings answered with an empty result after a store failure",
		},
		[]string{"endpoint"},
	)
)

// Prometheus records request count and latency per route
func Prometheus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// /docs, /metrics 경로는 제외
		path := c.Path()
		if strings.Contains(path, "/docs") || strings.HasPrefix(path, "/metrics") {
			return c.Next()
		}

		start := time.Now()
		httpActiveRequests.Inc()
		defer httpActiveRequests.Dec()

		err := c.Next()

		routePath := c.Route().Path
		if routePath == "" {
			routePath = path
		}
		method := c.Method()
		status := strconv.Itoa(statusCode(c, err))

		httpRequestsTotal.WithLabelValues(method, routePath, status).Inc()
		httpRequestDuration.WithLabelValues(method, routePath).Observe(time.Since(start).Seconds())

		return err
	}
}

// statusCode returns the code the error handler will answer with. Before it
// runs, the response still carries the default 200.
func statusCode(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// RecordDegraded counts a listing served empty because the store failed
func RecordDegraded(endpoint string) {
	degradedResponsesTotal.WithLabelValues(endpoint).Inc()
}

// PrometheusHandler exposes the default registry for scraping
func PrometheusHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
