// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for Epicast services.
//
// The package is a thin configuration layer over the standard library's
// slog: services construct a logger once at startup and install it as the
// process default, then log with key-value pairs everywhere else.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{Service: "predictor", JSON: true})
//	logging.SetDefault(logger)
//	slog.Info("prediction served", "request_id", id, "prediction", y)
//
// # Log Levels
//
// Levels follow slog conventions:
//
//   - Debug: development troubleshooting, verbose output
//   - Info: normal operations (request handled, model loaded)
//   - Warn: recoverable issues (invalid input rejected)
//   - Error: operation failures the service survives (artifact missing)
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Config configures a service logger. A zero value yields an Info-level
// text logger on stderr.
type Config struct {
	// Level sets the minimum log level. Default: Info.
	Level slog.Level

	// Service is attached to every entry as the "service" attribute so
	// aggregated logs can be filtered by component.
	Service string

	// JSON switches output to JSON objects. Text output is the default
	// for interactive use; deployments should set JSON.
	JSON bool
}

// New builds a logger on stderr per the config.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// SetDefault installs the logger as the process-wide slog default.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// ParseLevel maps a config string to a slog level. Unknown values fall
// back to Info rather than failing startup.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
