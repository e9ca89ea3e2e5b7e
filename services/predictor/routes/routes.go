// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/epicastai/epicast/services/model"
	"github.com/epicastai/epicast/services/predictor/handlers"
	"github.com/epicastai/epicast/services/predictor/middleware"
	"github.com/epicastai/epicast/services/predictor/observability"
)

// SetupRoutes wires the prediction surfaces onto the router.
func SetupRoutes(router *gin.Engine, source model.Source, metrics *observability.PredictionMetrics) {
	router.Use(middleware.RequestID())

	router.GET("/health", handlers.HealthCheck(source))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// HTML surface: the single-page form.
	router.GET("/", handlers.FormPage())
	router.POST("/predict", handlers.PredictForm(source, metrics))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/predict", handlers.PredictAPI(source, metrics))
	}
}
