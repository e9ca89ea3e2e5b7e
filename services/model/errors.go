// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package model

import (
	"errors"
	"fmt"
)

// ErrArtifactMissing indicates the model artifact does not exist at the
// configured path. Callers match it with errors.Is; the wrapped message
// names the path.
var ErrArtifactMissing = errors.New("model artifact not found")

// ArtifactCorruptError indicates the artifact exists but could not be
// decoded or failed structural validation.
type ArtifactCorruptError struct {
	Path string
	Err  error
}

func (e *ArtifactCorruptError) Error() string {
	return fmt.Sprintf("model artifact %s is not loadable: %v", e.Path, e.Err)
}

func (e *ArtifactCorruptError) Unwrap() error { return e.Err }

// InferenceError indicates the model was loaded but rejected the input row
// at predict time (wrong width, non-finite values).
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
