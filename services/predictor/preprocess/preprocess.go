// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package preprocess implements the baseline-differencing transform applied
// to a feature record before inference.
//
// The six non-stationary cumulative features are differenced against the
// last known values as of 21 April 2024 (datatypes.Baseline) to make them
// stationary; a negative difference becomes 0. The remaining eight fields
// pass through unchanged.
//
// Apply is pure: the record is passed and returned by value, so the
// caller's submitted record is never mutated and stays available for
// display.
package preprocess

import (
	"github.com/epicastai/epicast/services/predictor/datatypes"
)

// Apply differences the six baseline columns of r and returns the adjusted
// record. It never fails for a well-formed record.
func Apply(r datatypes.FeatureRecord) datatypes.FeatureRecord {
	r.FullyVaccinated = clampInt(r.FullyVaccinated - datatypes.Baseline.FullyVaccinated)
	r.NewPeopleVaccinatedSmoothed = clampFloat(r.NewPeopleVaccinatedSmoothed - datatypes.Baseline.NewPeopleVaccinatedSmoothed)
	r.PartiallyVaccinated = clampInt(r.PartiallyVaccinated - datatypes.Baseline.PartiallyVaccinated)
	r.StringencyIndex = clampFloat(r.StringencyIndex - datatypes.Baseline.StringencyIndex)
	r.TotalTests = clampInt(r.TotalTests - datatypes.Baseline.TotalTests)
	r.TotalVaccinations = clampInt(r.TotalVaccinations - datatypes.Baseline.TotalVaccinations)
	return r
}

// clampInt replaces a negative difference with 0.
func clampInt(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
