// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	var s Settings
	if err := loadInternal(&s); err != nil {
		t.Fatalf("loadInternal() error = %v", err)
	}
	if s.ListenAddr != defaultListenAddr {
		t.Errorf("ListenAddr = %q, want default %q", s.ListenAddr, defaultListenAddr)
	}
	if s.ModelPath != defaultModelPath {
		t.Errorf("ModelPath = %q, want default %q", s.ModelPath, defaultModelPath)
	}
	if s.LogLevel != defaultLogLevel {
		t.Errorf("LogLevel = %q, want default %q", s.LogLevel, defaultLogLevel)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := "listen_addr: \":9999\"\nmodel_path: /opt/models/cases.json\n"
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	var s Settings
	if err := loadInternal(&s); err != nil {
		t.Fatalf("loadInternal() error = %v", err)
	}
	if s.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", s.ListenAddr)
	}
	if s.ModelPath != "/opt/models/cases.json" {
		t.Errorf("ModelPath = %q", s.ModelPath)
	}
	// Unset keys keep their defaults.
	if s.LogLevel != defaultLogLevel {
		t.Errorf("LogLevel = %q, want default %q", s.LogLevel, defaultLogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := "model_path: /from/file.json\n"
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EPICAST_MODEL_PATH", "/from/env.json")
	t.Setenv("EPICAST_LOG_LEVEL", "debug")

	var s Settings
	if err := loadInternal(&s); err != nil {
		t.Fatalf("loadInternal() error = %v", err)
	}
	if s.ModelPath != "/from/env.json" {
		t.Errorf("ModelPath = %q, want env override", s.ModelPath)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
}

func TestMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("listen_addr: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	var s Settings
	if err := loadInternal(&s); err == nil {
		t.Error("loadInternal() accepted malformed YAML")
	}
}
