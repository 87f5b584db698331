// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors, registered on the
// default registry at init.
var Metrics = struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SendsTotal      *prometheus.CounterVec
	StreamEvents    *prometheus.CounterVec
	ActiveContexts  prometheus.Gauge
	ProxyRequests   *prometheus.CounterVec
	ErrorsTotal     *prometheus.CounterVec
}{
	RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "a2aui",
		Name:      "requests_total",
		Help:      "Total number of API requests by route and status.",
	}, []string{"route", "status"}),

	RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "a2aui",
		Name:      "request_duration_seconds",
		Help:      "API request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"}),

	SendsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "a2aui",
		Name:      "sends_total",
		Help:      "Total message sends by transport (unary/streaming) and outcome.",
	}, []string{"transport", "outcome"}),

	StreamEvents: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "a2aui",
		Name:      "stream_events_total",
		Help:      "Total stream events applied to the store by kind.",
	}, []string{"kind"}),

	ActiveContexts: promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "a2aui",
		Name:      "active_contexts",
		Help:      "Number of conversation contexts currently held.",
	}),

	ProxyRequests: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "a2aui",
		Name:      "proxy_requests_total",
		Help:      "Total proxied agent requests by upstream status.",
	}, []string{"status"}),

	ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "a2aui",
		Name:      "errors_total",
		Help:      "Total errors by component.",
	}, []string{"component"}),
}
