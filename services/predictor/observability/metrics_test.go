// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPredictionCounters(t *testing.T) {
	m := DefaultMetrics

	before := testutil.ToFloat64(m.PredictionsTotal.WithLabelValues("form", "success"))
	m.PredictionsTotal.WithLabelValues("form", "success").Inc()
	after := testutil.ToFloat64(m.PredictionsTotal.WithLabelValues("form", "success"))
	if after != before+1 {
		t.Errorf("predictions_total = %v, want %v", after, before+1)
	}

	before = testutil.ToFloat64(m.ModelLoadFailuresTotal.WithLabelValues("missing"))
	m.ModelLoadFailuresTotal.WithLabelValues("missing").Inc()
	after = testutil.ToFloat64(m.ModelLoadFailuresTotal.WithLabelValues("missing"))
	if after != before+1 {
		t.Errorf("model_load_failures_total = %v, want %v", after, before+1)
	}
}

func TestDurationHistogramObserves(t *testing.T) {
	m := DefaultMetrics

	m.PredictionDurationSeconds.WithLabelValues("api").Observe(0.05)
	count := testutil.CollectAndCount(m.PredictionDurationSeconds)
	if count == 0 {
		t.Error("prediction_duration_seconds collected no series")
	}
}
