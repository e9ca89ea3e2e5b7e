// Copyright (C) 2026 Epicast Labs (maintainers@epicast.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for user-submitted feature
// records.
//
// Bounds are declared as `validate` struct tags and enforced with
// go-playground/validator. Violations are reported against the public
// (form/json) column names, not the Go field names, so the messages are
// usable directly in the UI and in API error bodies.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Field names in violations
// come from the `form` tag, falling back to the `json` tag.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Violation is one failed bound on one field.
type Violation struct {
	// Field is the public column name.
	Field string `json:"field"`

	// Message is a user-facing description of the failed bound.
	Message string `json:"message"`
}

// CheckRecord validates the `validate` tags on a struct and returns one
// violation per failed field, or nil when the struct is valid.
func CheckRecord(v any) []Violation {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Non-field failure (e.g. a nil or non-struct argument); report it
		// without a field name rather than dropping it.
		return []Violation{{Message: err.Error()}}
	}

	out := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

// describe renders one field error as a user-facing message.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s constraint", fe.Field(), fe.Tag())
	}
}

// Messages flattens violations into display strings.
func Messages(violations []Violation) []string {
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Message
	}
	return msgs
}
