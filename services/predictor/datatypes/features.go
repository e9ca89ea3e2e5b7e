// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides type definitions for the Epicast predictor
// service.
//
// This file defines the feature record consumed by the case-prediction
// model, the fixed baseline used for differencing, and the per-field UI
// metadata that drives both form rendering and server-side validation.
package datatypes

import (
	"gonum.org/v1/gonum/mat"
)

// =============================================================================
// Feature Record
// =============================================================================

// NumFeatures is the width of the model's input row.
const NumFeatures = 14

// FeatureRecord is a single row of model input.
//
// # Description
//
// Fields are declared in the model's column order; ToVector and
// ColumnNames must stay aligned with this declaration. Cumulative counts
// and calendar fields are integers, rates and indices are floats.
//
// The `validate` tags mirror the bounds published in FieldSpecs: the four
// cumulative counts cannot fall below their last observed values as of
// 21 April 2024, stringency_index is a 0-100 composite, and the calendar
// fields are bounded by their domains. There is deliberately no
// cross-field validation (e.g. partiallyVaccinated vs fullyVaccinated);
// each field is bounded independently.
type FeatureRecord struct {
	FullyVaccinated             int64   `form:"fullyVaccinated" json:"fullyVaccinated" validate:"min=9327654"`
	NewDeathsSmoothed           float64 `form:"new_deaths_smoothed" json:"new_deaths_smoothed" validate:"min=0"`
	NewPeopleVaccinatedSmoothed float64 `form:"new_people_vaccinated_smoothed" json:"new_people_vaccinated_smoothed" validate:"min=0"`
	NewVaccinationsSmoothed     float64 `form:"new_vaccinations_smoothed" json:"new_vaccinations_smoothed" validate:"min=0"`
	PartiallyVaccinated         int64   `form:"partiallyVaccinated" json:"partiallyVaccinated" validate:"min=4663827"`
	StringencyIndex             float64 `form:"stringency_index" json:"stringency_index" validate:"min=0,max=100"`
	Test24Hours                 float64 `form:"test24hours" json:"test24hours" validate:"min=0"`
	TotalTests                  int64   `form:"totalTests" json:"totalTests" validate:"min=4166833"`
	TotalVaccinations           int64   `form:"totalVaccinations" json:"totalVaccinations" validate:"min=9982068"`
	Vaccinated24Hours           float64 `form:"vaccinated24hours" json:"vaccinated24hours" validate:"min=0"`
	RFH                         float64 `form:"rfh" json:"rfh" validate:"min=0"`
	R3H                         float64 `form:"r3h" json:"r3h" validate:"min=0"`
	Month                       int64   `form:"month" json:"month" validate:"min=1,max=12"`
	DayOfWeek                   int64   `form:"day_of_week" json:"day_of_week" validate:"min=0,max=6"`
}

// ColumnNames returns the model's 14 column names in input order.
func ColumnNames() []string {
	return []string{
		"fullyVaccinated",
		"new_deaths_smoothed",
		"new_people_vaccinated_smoothed",
		"new_vaccinations_smoothed",
		"partiallyVaccinated",
		"stringency_index",
		"test24hours",
		"totalTests",
		"totalVaccinations",
		"vaccinated24hours",
		"rfh",
		"r3h",
		"month",
		"day_of_week",
	}
}

// ToVector converts the record into a dense column vector in model input
// order. The model consumes positional vectors; this is the single place
// where field order is flattened.
func (r FeatureRecord) ToVector() *mat.VecDense {
	return mat.NewVecDense(NumFeatures, []float64{
		float64(r.FullyVaccinated),
		r.NewDeathsSmoothed,
		r.NewPeopleVaccinatedSmoothed,
		r.NewVaccinationsSmoothed,
		float64(r.PartiallyVaccinated),
		r.StringencyIndex,
		r.Test24Hours,
		float64(r.TotalTests),
		float64(r.TotalVaccinations),
		r.Vaccinated24Hours,
		r.RFH,
		r.R3H,
		float64(r.Month),
		float64(r.DayOfWeek),
	})
}

// Value returns the named column's value as a float64, and whether the
// column exists. Used by the templates and by column-keyed tests; typed
// access should go through the struct fields.
func (r FeatureRecord) Value(column string) (float64, bool) {
	v := r.ToVector()
	for i, name := range ColumnNames() {
		if name == column {
			return v.AtVec(i), true
		}
	}
	return 0, false
}

// =============================================================================
// Baseline
// =============================================================================

// Baseline holds the last known cumulative values as of 21 April 2024.
// The six non-stationary features are differenced against these constants
// before inference; see the preprocess package.
//
// Constructed once, never mutated.
var Baseline = struct {
	FullyVaccinated             int64
	NewPeopleVaccinatedSmoothed float64
	PartiallyVaccinated         int64
	StringencyIndex             float64
	TotalTests                  int64
	TotalVaccinations           int64
}{
	FullyVaccinated:             9327654,
	NewPeopleVaccinatedSmoothed: 959,
	PartiallyVaccinated:         4663827,
	StringencyIndex:             13.89,
	TotalTests:                  4166833,
	TotalVaccinations:           9982068,
}

// BaselineColumns lists the differenced column names.
func BaselineColumns() []string {
	return []string{
		"fullyVaccinated",
		"new_people_vaccinated_smoothed",
		"partiallyVaccinated",
		"stringency_index",
		"totalTests",
		"totalVaccinations",
	}
}
