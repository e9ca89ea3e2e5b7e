// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// FieldSpec describes one numeric input control: label, bounds, step size
// and help text. The form template and the validation error messages both
// read from this table so the published bounds live in one place.
type FieldSpec struct {
	// Name is the column name, matching the form/json tag on FeatureRecord.
	Name string

	// Label is the human-readable control label.
	Label string

	// Min is the inclusive lower bound.
	Min float64

	// Max is the inclusive upper bound; only meaningful when HasMax is set.
	Max    float64
	HasMax bool

	// Step is the input step size; 1 for integer counts.
	Step float64

	// Integer marks whole-valued fields.
	Integer bool

	// Help is the descriptive text shown next to the control.
	Help string
}

// FieldSpecs returns the UI metadata for all 14 controls in model input
// order. Minimums for the four cumulative counts are the last known values
// as of 21 April 2024.
func FieldSpecs() []FieldSpec {
	return []FieldSpec{
		{
			Name: "fullyVaccinated", Label: "fullyVaccinated",
			Min: 9327654, Step: 1, Integer: true,
			Help: "Number of individuals who have completed the full vaccination regimen for COVID-19",
		},
		{
			Name: "new_deaths_smoothed", Label: "new_deaths_smoothed",
			Min: 0, Step: 0.01,
			Help: "New deaths attributed to COVID-19 (7-day smoothed). Counts can include probable deaths, where reported.",
		},
		{
			Name: "new_people_vaccinated_smoothed", Label: "new_people_vaccinated_smoothed",
			Min: 0, Step: 0.01,
			Help: "Daily number of people receiving their first vaccine dose (7-day smoothed)",
		},
		{
			Name: "new_vaccinations_smoothed", Label: "new_vaccinations_smoothed",
			Min: 0, Step: 0.01,
			Help: "New COVID-19 vaccination doses administered (7-day smoothed)",
		},
		{
			Name: "partiallyVaccinated", Label: "partiallyVaccinated",
			Min: 4663827, Step: 1, Integer: true,
			Help: "Number of individuals who have received at least one dose of a COVID-19 vaccine but have not yet completed the full vaccination regimen.",
		},
		{
			Name: "stringency_index", Label: "stringency_index",
			Min: 0, Max: 100, HasMax: true, Step: 0.01,
			Help: "Government response composite measure based on 9 response indicators including school/workplace closures, and travel bans, value from 0 to 100 (100=strictest)",
		},
		{
			Name: "test24hours", Label: "test24hours",
			Min: 0, Step: 0.01,
			Help: "Number of tests conducted in the last 24 hours",
		},
		{
			Name: "totalTests", Label: "totalTests",
			Min: 4166833, Step: 1, Integer: true,
			Help: "Total number of tests for COVID-19",
		},
		{
			Name: "totalVaccinations", Label: "totalVaccinations",
			Min: 9982068, Step: 1, Integer: true,
			Help: "Total number of COVID-19 vaccination doses administered",
		},
		{
			Name: "vaccinated24hours", Label: "vaccinated24hours",
			Min: 0, Step: 0.01,
			Help: "Number of people vaccinated within a 24-hour period",
		},
		{
			Name: "rfh", Label: "rfh",
			Min: 0, Step: 0.001,
			Help: "10 day rainfall in mm",
		},
		{
			Name: "r3h", Label: "r3h",
			Min: 0, Step: 0.001,
			Help: "Rainfall 1-month rolling aggregation long term average in mm",
		},
		{
			Name: "month", Label: "month",
			Min: 1, Max: 12, HasMax: true, Step: 1, Integer: true,
			Help: "The month in the year with January=1, December=12",
		},
		{
			Name: "day_of_week", Label: "day_of_week",
			Min: 0, Max: 6, HasMax: true, Step: 1, Integer: true,
			Help: "The day of the week with Monday=0, Sunday=6",
		},
	}
}

// FieldSpecByName returns the spec for a column name, or false when the
// column is unknown.
func FieldSpecByName(name string) (FieldSpec, bool) {
	for _, spec := range FieldSpecs() {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// MinimumRecord returns a record with every field set to its minimum
// allowed value. Used to seed the form on first render.
func MinimumRecord() FeatureRecord {
	return FeatureRecord{
		FullyVaccinated:     Baseline.FullyVaccinated,
		PartiallyVaccinated: Baseline.PartiallyVaccinated,
		TotalTests:          Baseline.TotalTests,
		TotalVaccinations:   Baseline.TotalVaccinations,
		Month:               1,
		// Remaining fields have a zero minimum.
	}
}
