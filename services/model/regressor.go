// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package model loads a serialized gradient-boosted regression model from
// disk and evaluates it over single feature rows.
//
// # Description
//
// The artifact is a JSON document describing a tree ensemble exported from
// the training pipeline: the ordered column names the model was trained
// on, a base score, and a list of regression trees whose nodes split on a
// feature index against a threshold. The service treats the artifact as a
// black box satisfying one contract: predict(14-column row) -> scalar.
//
// # Error Taxonomy
//
//   - ErrArtifactMissing: no file at the configured path
//   - ArtifactCorruptError: file present but undecodable or structurally invalid
//   - InferenceError: model loaded but the input row was rejected
//
// All three are recoverable at the handler boundary; none crash the
// process.
package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Regressor is the single capability the service needs from a loaded
// model: evaluate one feature row to one scalar.
type Regressor interface {
	// Predict evaluates a single feature row in the model's column order.
	Predict(x mat.Vector) (float64, error)

	// Name identifies the loaded model for logging and the health surface.
	Name() string
}

// =============================================================================
// Tree Ensemble
// =============================================================================

// Node is one node of a regression tree in the flattened node array.
// Leaf nodes carry Value; split nodes carry Feature, Threshold and the
// indices of their children.
type Node struct {
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
}

// Tree is a single regression tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Ensemble is a serialized gradient-boosted tree model. The prediction is
// BaseScore plus the sum of one leaf value per tree.
type Ensemble struct {
	Model     string   `json:"model"`
	Columns   []string `json:"columns"`
	BaseScore float64  `json:"base_score"`
	Trees     []Tree   `json:"trees"`
}

// Name implements Regressor.
func (e *Ensemble) Name() string { return e.Model }

// Predict implements Regressor. Rows whose width does not match the
// model's column count, or that contain non-finite values, are rejected
// with an InferenceError.
func (e *Ensemble) Predict(x mat.Vector) (float64, error) {
	if x.Len() != len(e.Columns) {
		return 0, &InferenceError{
			Err: fmt.Errorf("row has %d features, model expects %d", x.Len(), len(e.Columns)),
		}
	}
	for i := 0; i < x.Len(); i++ {
		if v := x.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &InferenceError{
				Err: fmt.Errorf("feature %q is not finite", e.Columns[i]),
			}
		}
	}

	score := e.BaseScore
	for i := range e.Trees {
		leaf, err := e.Trees[i].evaluate(x)
		if err != nil {
			return 0, &InferenceError{Err: fmt.Errorf("tree %d: %w", i, err)}
		}
		score += leaf
	}
	return score, nil
}

// evaluate walks the tree from the root to a leaf. Structural validation
// at load time guarantees termination; the depth guard protects against
// an artifact that was mutated after validation.
func (t *Tree) evaluate(x mat.Vector) (float64, error) {
	idx := 0
	for depth := 0; depth <= len(t.Nodes); depth++ {
		n := t.Nodes[idx]
		if n.Leaf {
			return n.Value, nil
		}
		if x.AtVec(n.Feature) < n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return 0, fmt.Errorf("no leaf reached after %d steps", len(t.Nodes))
}

// validate checks the ensemble is structurally sound: at least one tree,
// every node index in range, feature indices within the column count, and
// child pointers strictly forward (which rules out cycles).
func (e *Ensemble) validate() error {
	if len(e.Columns) == 0 {
		return fmt.Errorf("ensemble declares no columns")
	}
	if len(e.Trees) == 0 {
		return fmt.Errorf("ensemble contains no trees")
	}
	for ti, tree := range e.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range tree.Nodes {
			if n.Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= len(e.Columns) {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, n.Feature)
			}
			if n.Left <= ni || n.Left >= len(tree.Nodes) ||
				n.Right <= ni || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: child index out of range", ti, ni)
			}
		}
	}
	return nil
}
