// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package monitoring holds the Prometheus metrics of the parser and the API
// client.  They register with the default registry.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ObjectsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osmxml_objects_parsed_total",
			Help: "Total number of OSM objects completed by the parser",
		},
		[]string{"kind", "result"},
	)

	ParsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osmxml_parses_total",
			Help: "Total number of documents parsed",
		},
		[]string{"backend", "status"},
	)

	ParseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "osmxml_parse_duration_seconds",
			Help:    "Document parse duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"backend"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osmxml_api_requests_total",
			Help: "Total number of OSM API requests by HTTP status",
		},
		[]string{"status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "osmxml_api_request_duration_seconds",
			Help:    "OSM API request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"endpoint"},
	)

	RateLimitWaitTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "osmxml_api_rate_limit_wait_duration_seconds",
			Help:    "Time spent waiting for the API rate limiter",
			Buckets: []float64{0.01, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "osmxml_api_cache_hits_total",
			Help: "Total number of API response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "osmxml_api_cache_misses_total",
			Help: "Total number of API response cache misses",
		},
	)
)

func status(success bool) string {
	if success {
		return "success"
	}

	return "error"
}

// RecordObject counts one completed object and whether the callbacks
// accepted it.
func RecordObject(kind string, accepted bool) {
	result := "accepted"
	if !accepted {
		result = "vetoed"
	}

	ObjectsParsed.WithLabelValues(kind, result).Inc()
}

// RecordParse records one document parse.
func RecordParse(backend string, duration time.Duration, success bool) {
	ParsesTotal.WithLabelValues(backend, status(success)).Inc()
	ParseDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordAPIRequest records one API round trip.  A status of 0 means the
// request failed before a response arrived.
func RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	code := "transport_error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}

	APIRequestsTotal.WithLabelValues(code).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func RecordRateLimitWait(d time.Duration) {
	RateLimitWaitTime.Observe(d.Seconds())
}

func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}
