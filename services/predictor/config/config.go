// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the predictor service configuration.
//
// Configuration is read once per process from an optional epicast.yaml in
// the working directory, then overridden by EPICAST_* environment
// variables. Every setting has a default, so the service runs with no
// config file and no environment.
package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings holds the predictor service configuration.
type Settings struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `yaml:"listen_addr"`

	// ModelPath is the path to the serialized model artifact.
	ModelPath string `yaml:"model_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

const (
	defaultListenAddr = ":12310"
	defaultModelPath  = "model/xgb_total_imputed_cases.json"
	defaultLogLevel   = "info"

	configFile = "epicast.yaml"
)

var (
	// Global is the singleton settings instance, populated by Load.
	Global Settings
	once   sync.Once
)

// Load ensures the configuration is loaded into Global. Safe to call from
// multiple places; only the first call does work.
func Load() error {
	var err error
	once.Do(func() {
		err = loadInternal(&Global)
	})
	return err
}

func loadInternal(s *Settings) error {
	s.ListenAddr = defaultListenAddr
	s.ModelPath = defaultModelPath
	s.LogLevel = defaultLogLevel

	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, s); err != nil {
			return fmt.Errorf("failed to parse %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	// Environment overrides win over the file.
	if v := os.Getenv("EPICAST_ADDR"); v != "" {
		s.ListenAddr = v
	}
	if v := os.Getenv("EPICAST_MODEL_PATH"); v != "" {
		s.ModelPath = v
	}
	if v := os.Getenv("EPICAST_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	return nil
}
