// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics registers the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts completed analyses by path ("local" or
	// "external") and outcome ("ok" or "error").
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provenance_analyses_total",
		Help: "Completed analyses by path and outcome.",
	}, []string{"path", "outcome"})

	// ExternalRequestsTotal counts outbound bibliographic requests by
	// outcome ("ok" or "error").
	ExternalRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provenance_external_requests_total",
		Help: "Outbound Crossref requests by outcome.",
	}, []string{"outcome"})

	// ExternalRequestSeconds observes outbound request latency.
	ExternalRequestSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "provenance_external_request_seconds",
		Help:    "Latency of outbound Crossref requests.",
		Buckets: prometheus.DefBuckets,
	})

	// CacheHitsTotal counts external result cache hits.
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "provenance_cache_hits_total",
		Help: "External result cache hits.",
	})

	// CacheMissesTotal counts external result cache misses.
	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "provenance_cache_misses_total",
		Help: "External result cache misses.",
	})
)
