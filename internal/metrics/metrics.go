// Package metrics holds the Prometheus collectors shared by the service and
// the HTTP layer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bike_rental",
		Name:      "request_duration_seconds",
		Help:      "Time (in seconds) spent serving HTTP requests.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"method", "route", "status_code"})

	DatasetRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bike_rental",
		Name:      "dataset_records",
		Help:      "Number of records in the latest loaded dataset.",
	})

	Reloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bike_rental",
		Name:      "dataset_reloads_total",
		Help:      "Dataset load attempts by outcome.",
	}, []string{"source", "outcome"})

	EmptyRanges = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bike_rental",
		Name:      "empty_range_queries_total",
		Help:      "Queries whose date range matched no records.",
	})
)

func init() {
	prometheus.MustRegister(RequestDuration, DatasetRecords, Reloads, EmptyRanges)
}

// ObserveRequest records one served request.
func ObserveRequest(method, route string, status int, took time.Duration) {
	RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(took.Seconds())
}
