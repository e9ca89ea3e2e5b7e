// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/epicastai/epicast/services/predictor/datatypes"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// fieldView is one input control: its spec plus the current value.
// Numeric attributes are pre-formatted; html/template would render large
// float64 bounds in scientific notation.
type fieldView struct {
	datatypes.FieldSpec
	Value    string
	MinAttr  string
	MaxAttr  string
	StepAttr string
}

// submittedCell is one column of the submitted-data table.
type submittedCell struct {
	Column string
	Value  string
}

// pageView is the single-page view model. Error and Result are mutually
// exclusive; both empty means the idle form.
type pageView struct {
	Fields []fieldView

	// Error is a user-visible failure message; the form stays intact for
	// correction and retry.
	Error string

	// Violations are per-field bounds messages shown above the form.
	Violations []string

	// Submitted holds the ORIGINAL (pre-preprocessing) record the user
	// sent, shown back as "submitted data".
	Submitted []submittedCell

	// Prediction is the formatted scalar, e.g. "123.456". Only set on
	// success.
	Prediction string
}

// fieldViews pairs every field spec with the record's current value.
func fieldViews(r datatypes.FeatureRecord) []fieldView {
	specs := datatypes.FieldSpecs()
	views := make([]fieldView, len(specs))
	for i, spec := range specs {
		v, _ := r.Value(spec.Name)
		view := fieldView{
			FieldSpec: spec,
			Value:     formatValue(v, spec.Integer),
			MinAttr:   formatValue(spec.Min, spec.Integer),
			StepAttr:  strconv.FormatFloat(spec.Step, 'f', -1, 64),
		}
		if spec.HasMax {
			view.MaxAttr = formatValue(spec.Max, spec.Integer)
		}
		views[i] = view
	}
	return views
}

// submittedCells renders the original record as a one-row table.
func submittedCells(r datatypes.FeatureRecord) []submittedCell {
	columns := datatypes.ColumnNames()
	cells := make([]submittedCell, len(columns))
	for i, col := range columns {
		spec, _ := datatypes.FieldSpecByName(col)
		v, _ := r.Value(col)
		cells[i] = submittedCell{Column: col, Value: formatValue(v, spec.Integer)}
	}
	return cells
}

func formatValue(v float64, integer bool) string {
	if integer {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderPage writes the page template with the given status code.
func renderPage(c *gin.Context, code int, view pageView) {
	c.Status(code)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.ExecuteTemplate(c.Writer, "page.html", view); err != nil {
		c.String(http.StatusInternalServerError, "template error: %v", err)
	}
}
