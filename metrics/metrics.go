// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

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
	// RequestTotal counts HTTP requests by method, route pattern and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onewave_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onewave_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// LikesTotal counts like and unlike operations that changed state.
	LikesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onewave_feed_likes_total",
			Help: "Feed like state changes",
		},
		[]string{"action"},
	)
	// AnalysisDuration is the time spent scoring ideas, by scorer and outcome.
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "onewave_analysis_duration_seconds",
			Help:    "Idea analysis latency in seconds",
			Buckets: []float64{.01, .1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"scorer", "outcome"},
	)
	// ApplicationDecisions counts owner decisions on team applications.
	ApplicationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onewave_application_decisions_total",
			Help: "Team application decisions",
		},
		[]string{"decision"},
	)
)

// ObserveRequest records one finished HTTP request
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	RequestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveAnalysis records one scoring run
func ObserveAnalysis(scorer string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	AnalysisDuration.WithLabelValues(scorer, outcome).Observe(elapsed.Seconds())
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
