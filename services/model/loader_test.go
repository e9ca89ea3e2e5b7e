// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package model

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func writeArtifact(t *testing.T, ens *Ensemble) string {
	t.Helper()
	data, err := json.Marshal(ens)
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestLoaderMissingArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "model.json")
	loader := NewLoader(path, []string{"a", "b"})

	_, err := loader.Get(context.Background())
	if !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("Get() error = %v, want ErrArtifactMissing", err)
	}
	// The user-facing message must name the missing path.
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name path %q", err.Error(), path)
	}
	if loader.Loaded() {
		t.Error("Loaded() = true after failed load")
	}
}

func TestLoaderCorruptArtifact(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("\x80\x81 definitely not json")},
		{"wrong structure", []byte(`{"columns":["a","b"],"trees":[{"nodes":[{"feature":5,"threshold":1,"left":1,"right":1}]}]}`)},
		{"no trees", []byte(`{"columns":["a","b"],"trees":[]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.json")
			if err := os.WriteFile(path, tt.data, 0o644); err != nil {
				t.Fatal(err)
			}
			loader := NewLoader(path, []string{"a", "b"})

			_, err := loader.Get(context.Background())
			var corrupt *ArtifactCorruptError
			if !errors.As(err, &corrupt) {
				t.Fatalf("Get() error = %v, want ArtifactCorruptError", err)
			}
			if corrupt.Path != path {
				t.Errorf("corrupt.Path = %q, want %q", corrupt.Path, path)
			}
		})
	}
}

func TestLoaderColumnMismatch(t *testing.T) {
	ens := twoFeatureEnsemble()
	path := writeArtifact(t, ens)

	tests := []struct {
		name   string
		expect []string
	}{
		{"different name", []string{"a", "c"}},
		{"different order", []string{"b", "a"}},
		{"different width", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(path, tt.expect)
			_, err := loader.Get(context.Background())
			var corrupt *ArtifactCorruptError
			if !errors.As(err, &corrupt) {
				t.Errorf("Get() error = %v, want ArtifactCorruptError", err)
			}
		})
	}
}

func TestLoaderHappyPathAndCaching(t *testing.T) {
	path := writeArtifact(t, twoFeatureEnsemble())
	loader := NewLoader(path, []string{"a", "b"})

	reg, err := loader.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if reg.Name() != "test-ensemble" {
		t.Errorf("Name() = %q", reg.Name())
	}
	if !loader.Loaded() {
		t.Error("Loaded() = false after successful load")
	}

	got, err := reg.Predict(mat.NewVecDense(2, []float64{5, 0}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got != 101.5 {
		t.Errorf("Predict() = %v, want 101.5", got)
	}

	// First successful load wins: removing the file must not affect
	// subsequent calls.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	again, err := loader.Get(context.Background())
	if err != nil {
		t.Fatalf("cached Get() error = %v", err)
	}
	if again != reg {
		t.Error("Get() returned a different instance; cache not reused")
	}
}

// A failed load must not poison the cache: once the artifact appears the
// next trigger succeeds.
func TestLoaderRetriesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	loader := NewLoader(path, []string{"a", "b"})

	if _, err := loader.Get(context.Background()); !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("first Get() error = %v, want ErrArtifactMissing", err)
	}

	data, err := json.Marshal(twoFeatureEnsemble())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := loader.Get(context.Background())
	if err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
	if reg == nil || !loader.Loaded() {
		t.Error("loader did not recover after the artifact appeared")
	}
}

func TestLoaderHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(filepath.Join(t.TempDir(), "model.json"), nil)
	if _, err := loader.Get(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Get() with canceled context error = %v, want context.Canceled", err)
	}
}
