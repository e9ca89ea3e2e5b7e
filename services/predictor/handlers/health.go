// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epicastai/epicast/services/model"
)

// cacheReporter is implemented by sources that can report whether a model
// is cached without forcing a load. The model loads lazily on the first
// prediction, so health must not trigger disk I/O.
type cacheReporter interface {
	Loaded() bool
}

// HealthCheck reports liveness and, when the source supports it, whether
// the model handle is already cached.
func HealthCheck(source model.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{"status": "ok"}
		if reporter, ok := source.(cacheReporter); ok {
			resp["model_cached"] = reporter.Loaded()
		}
		c.JSON(http.StatusOK, resp)
	}
}
