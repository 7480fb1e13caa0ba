// Package metrics exposes prometheus counters for uploads and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeNoData = "no_data"
	OutcomeError  = "error"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "csvinsight_uploads_total",
	Help: "Analyzed uploads labelled by dialect and outcome",
}, []string{"dialect", "outcome"})

var recordsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "csvinsight_records_dropped_total",
	Help: "Records dropped by dialect parsers",
}, []string{"dialect"})

var analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "csvinsight_analysis_duration_seconds",
	Help:    "Time spent classifying, parsing and summarizing one upload.",
	Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
}, []string{"dialect"})

// RecordAnalysis counts one finished analysis.
func RecordAnalysis(dialect, outcome string, elapsed time.Duration) {
	uploadsTotal.WithLabelValues(dialect, outcome).Inc()
	analysisDuration.WithLabelValues(dialect).Observe(elapsed.Seconds())
}

// RecordDropped adds n dropped records for a dialect.
func RecordDropped(dialect string, n int) {
	if n > 0 {
		recordsDropped.WithLabelValues(dialect).Add(float64(n))
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware counts requests by route path and response status.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Let the error handler write the response so the final status is known.
			if err := next(c); err != nil {
				c.Error(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			HttpRequestsTotal.WithLabelValues(path, strconv.Itoa(c.Response().Status)).Inc()
			return nil
		}
	}
}
