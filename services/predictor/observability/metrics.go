// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the predictor
// service.
//
// Metrics are exposed via the /metrics endpoint. All operations are
// thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace   = "epicast"
	predictorSubsystem = "predictor"
)

// PredictionMetrics holds the Prometheus metrics for prediction handling.
// Initialize once at startup via NewPredictionMetrics.
type PredictionMetrics struct {
	// PredictionsTotal counts prediction requests.
	// Labels: surface (form, api), status (success, invalid_input,
	// model_unavailable, inference_error)
	PredictionsTotal *prometheus.CounterVec

	// PredictionDurationSeconds measures end-to-end prediction latency,
	// including a cold model load when one happens.
	// Labels: surface (form, api)
	PredictionDurationSeconds *prometheus.HistogramVec

	// ModelLoadFailuresTotal counts failed artifact loads.
	// Labels: kind (missing, corrupt)
	ModelLoadFailuresTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance registered on the default
// Prometheus registry.
var DefaultMetrics = NewPredictionMetrics()

// NewPredictionMetrics registers and returns the prediction metrics.
// Call once per process; promauto panics on duplicate registration.
func NewPredictionMetrics() *PredictionMetrics {
	return &PredictionMetrics{
		PredictionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: predictorSubsystem,
			Name:      "predictions_total",
			Help:      "Prediction requests by surface and outcome.",
		}, []string{"surface", "status"}),

		PredictionDurationSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: predictorSubsystem,
			Name:      "prediction_duration_seconds",
			Help:      "End-to-end prediction latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"surface"}),

		ModelLoadFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: predictorSubsystem,
			Name:      "model_load_failures_total",
			Help:      "Failed model artifact loads by failure kind.",
		}, []string{"kind"}),
	}
}
