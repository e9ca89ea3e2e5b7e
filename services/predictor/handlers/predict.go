// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers implements the predictor service's HTTP handlers.
//
// # Description
//
// Two prediction surfaces share one orchestration sequence: the HTML form
// (GET / and POST /predict) and the JSON API (POST /v1/predict). Per
// trigger the sequence is: bind the submitted record, validate per-field
// bounds, run the baseline-differencing preprocessor, obtain the cached
// (or freshly loaded) model, and evaluate it on the preprocessed row. The
// ORIGINAL record is echoed back as "submitted data"; only the model sees
// the differenced values.
//
// Every failure is converted into a user-visible message and an HTTP
// status; nothing here panics or crashes the process, and the next
// trigger re-runs the whole sequence from scratch.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/epicastai/epicast/pkg/validation"
	"github.com/epicastai/epicast/services/model"
	"github.com/epicastai/epicast/services/predictor/datatypes"
	"github.com/epicastai/epicast/services/predictor/middleware"
	"github.com/epicastai/epicast/services/predictor/observability"
	"github.com/epicastai/epicast/services/predictor/preprocess"
)

// Outcome labels recorded on the predictions_total metric.
const (
	statusSuccess          = "success"
	statusInvalidInput     = "invalid_input"
	statusModelUnavailable = "model_unavailable"
	statusInferenceError   = "inference_error"
)

// FormPage renders the idle form with every control at its minimum
// allowed value.
func FormPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPage(c, http.StatusOK, pageView{
			Fields: fieldViews(datatypes.MinimumRecord()),
		})
	}
}

// PredictForm handles the HTML form submission.
func PredictForm(source model.Source, metrics *observability.PredictionMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var rec datatypes.FeatureRecord
		if err := c.ShouldBind(&rec); err != nil {
			metrics.PredictionsTotal.WithLabelValues("form", statusInvalidInput).Inc()
			renderPage(c, http.StatusBadRequest, pageView{
				Fields: fieldViews(datatypes.MinimumRecord()),
				Error:  fmt.Sprintf("Could not read the submitted form: %v", err),
			})
			return
		}
		if violations := validation.CheckRecord(rec); violations != nil {
			metrics.PredictionsTotal.WithLabelValues("form", statusInvalidInput).Inc()
			renderPage(c, http.StatusBadRequest, pageView{
				Fields:     fieldViews(rec),
				Violations: validation.Messages(violations),
			})
			return
		}

		prediction, err := runPrediction(c, source, rec)
		metrics.PredictionDurationSeconds.WithLabelValues("form").Observe(time.Since(start).Seconds())

		view := pageView{
			Fields:    fieldViews(rec),
			Submitted: submittedCells(rec),
		}
		if err != nil {
			status := recordOutcome(metrics, "form", err)
			view.Error = userMessage(err)
			renderPage(c, httpStatus(status), view)
			return
		}

		metrics.PredictionsTotal.WithLabelValues("form", statusSuccess).Inc()
		view.Prediction = fmt.Sprintf("%.3f", prediction)
		renderPage(c, http.StatusOK, view)
	}
}

// PredictRequest is the JSON API request body: the 14-column feature
// record keyed by column name.
type PredictRequest = datatypes.FeatureRecord

// PredictResponse is the JSON API success body. Record echoes the
// original submitted values, not the differenced ones.
type PredictResponse struct {
	Record     datatypes.FeatureRecord `json:"record"`
	Prediction float64                 `json:"prediction"`
	Formatted  string                  `json:"formatted"`
	RequestID  string                  `json:"request_id,omitempty"`
}

// PredictAPI handles the JSON prediction endpoint.
func PredictAPI(source model.Source, metrics *observability.PredictionMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var rec PredictRequest
		if err := c.ShouldBindJSON(&rec); err != nil {
			metrics.PredictionsTotal.WithLabelValues("api", statusInvalidInput).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if violations := validation.CheckRecord(rec); violations != nil {
			metrics.PredictionsTotal.WithLabelValues("api", statusInvalidInput).Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Feature values out of bounds",
				"violations": violations,
			})
			return
		}

		prediction, err := runPrediction(c, source, rec)
		metrics.PredictionDurationSeconds.WithLabelValues("api").Observe(time.Since(start).Seconds())

		if err != nil {
			status := recordOutcome(metrics, "api", err)
			c.JSON(httpStatus(status), gin.H{"error": userMessage(err)})
			return
		}

		metrics.PredictionsTotal.WithLabelValues("api", statusSuccess).Inc()
		c.JSON(http.StatusOK, PredictResponse{
			Record:     rec,
			Prediction: prediction,
			Formatted:  fmt.Sprintf("%.3f", prediction),
			RequestID:  middleware.GetRequestID(c),
		})
	}
}

// runPrediction executes preprocess -> load -> predict on an
// already-validated record. rec is passed by value; the caller's copy is
// untouched and remains the displayable "submitted data".
func runPrediction(c *gin.Context, source model.Source,
	rec datatypes.FeatureRecord) (float64, error) {

	processed := preprocess.Apply(rec)

	reg, err := source.Get(c.Request.Context())
	if err != nil {
		// Loader unavailable: skip inference entirely.
		return 0, err
	}

	prediction, err := reg.Predict(processed.ToVector())
	if err != nil {
		return 0, err
	}

	slog.Info("prediction served",
		"request_id", middleware.GetRequestID(c),
		"model", reg.Name(),
		"prediction", prediction)
	return prediction, nil
}

// recordOutcome classifies a prediction failure, increments the matching
// metrics and logs it. Returns the outcome label.
func recordOutcome(metrics *observability.PredictionMetrics, surface string, err error) string {
	var corrupt *model.ArtifactCorruptError
	var inference *model.InferenceError

	status := statusInferenceError
	switch {
	case errors.Is(err, model.ErrArtifactMissing):
		status = statusModelUnavailable
		metrics.ModelLoadFailuresTotal.WithLabelValues("missing").Inc()
	case errors.As(err, &corrupt):
		status = statusModelUnavailable
		metrics.ModelLoadFailuresTotal.WithLabelValues("corrupt").Inc()
	case errors.As(err, &inference):
		status = statusInferenceError
	}

	metrics.PredictionsTotal.WithLabelValues(surface, status).Inc()
	slog.Error("prediction failed", "surface", surface, "status", status, "error", err)
	return status
}

// userMessage renders a prediction failure for the UI.
func userMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrArtifactMissing):
		return fmt.Sprintf("Model file not found: %v. Please check the path and try again.", err)
	default:
		var corrupt *model.ArtifactCorruptError
		if errors.As(err, &corrupt) {
			return fmt.Sprintf("An error occurred while loading the model: %v", corrupt.Err)
		}
		return fmt.Sprintf("An error occurred: %v", err)
	}
}

// httpStatus maps an outcome label to a response code. Load failures are
// service-side unavailability; inference failures are internal errors.
func httpStatus(status string) int {
	switch status {
	case statusModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
