// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/mat"

	"github.com/epicastai/epicast/services/model"
	"github.com/epicastai/epicast/services/predictor/observability"
	"github.com/epicastai/epicast/services/predictor/routes"
)

type fixedRegressor float64

func (f fixedRegressor) Predict(mat.Vector) (float64, error) { return float64(f), nil }
func (f fixedRegressor) Name() string                        { return "fixed" }

type fixedSource struct{ loaded bool }

func (s fixedSource) Get(context.Context) (model.Regressor, error) {
	return fixedRegressor(42), nil
}
func (s fixedSource) Loaded() bool { return s.loaded }

func newServer(source model.Source) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRoutes(r, source, observability.DefaultMetrics)
	return r
}

func TestRouteTable(t *testing.T) {
	r := newServer(fixedSource{})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/predict", http.StatusNotFound},
		{http.MethodGet, "/v1/predict", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
			}
		})
	}
}

func TestHealthReportsCacheState(t *testing.T) {
	r := newServer(fixedSource{loaded: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("health body is not JSON: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["model_cached"] != true {
		t.Errorf("model_cached = %v, want true", resp["model_cached"])
	}
}

func TestRequestIDHeaderOnResponses(t *testing.T) {
	r := newServer(fixedSource{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if id := w.Header().Get("X-Request-ID"); strings.TrimSpace(id) == "" {
		t.Error("response missing X-Request-ID header")
	}
}
