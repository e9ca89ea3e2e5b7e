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
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

// Source supplies a loaded model to the prediction handlers. The concrete
// implementation is Loader; tests substitute stubs.
type Source interface {
	Get(ctx context.Context) (Regressor, error)
}

// Loader reads the model artifact from a fixed path and caches the result
// for the remainder of the process.
//
// # Caching
//
// The cache is write-once on success: the first successful load wins and
// every later call reuses it without touching the disk. A failed load is
// returned to the caller but never cached, so the next prediction trigger
// retries from disk. This matters for multi-session deployments where one
// process serves many users: a transient failure must not poison the
// cache for everyone.
//
// # Thread Safety
//
// Safe for concurrent use; loads are serialized by an internal mutex.
type Loader struct {
	path    string
	columns []string

	mu     sync.Mutex
	cached Regressor
}

// NewLoader returns a Loader for the artifact at path. columns is the
// exact ordered column set the artifact must declare; a mismatch is
// treated as a corrupt artifact.
func NewLoader(path string, columns []string) *Loader {
	return &Loader{path: path, columns: columns}
}

// Get implements Source. It returns the cached model, or loads it from
// disk on the first call (and on every call after a failed load).
func (l *Loader) Get(ctx context.Context) (Regressor, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.cached = reg
	slog.Info("model artifact loaded", "path", l.path, "model", reg.Name())
	return reg, nil
}

// Loaded reports whether a model is cached, without triggering a load.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cached != nil
}

func (l *Loader) load() (Regressor, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrArtifactMissing, l.path)
		}
		return nil, &ArtifactCorruptError{Path: l.path, Err: err}
	}

	var ens Ensemble
	if err := json.Unmarshal(data, &ens); err != nil {
		return nil, &ArtifactCorruptError{Path: l.path, Err: err}
	}
	if err := ens.validate(); err != nil {
		return nil, &ArtifactCorruptError{Path: l.path, Err: err}
	}
	if err := checkColumns(ens.Columns, l.columns); err != nil {
		return nil, &ArtifactCorruptError{Path: l.path, Err: err}
	}
	return &ens, nil
}

// checkColumns requires the artifact's column list to match the expected
// names exactly, in order. Training and serving must agree on the row
// layout or the positional vectors are meaningless.
func checkColumns(got, want []string) error {
	if len(want) == 0 {
		return nil
	}
	if len(got) != len(want) {
		return fmt.Errorf("artifact declares %d columns, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("artifact column %d is %q, expected %q", i, got[i], want[i])
		}
	}
	return nil
}
