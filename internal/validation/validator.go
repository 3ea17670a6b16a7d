// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package validation validates API request structs using
// go-playground/validator v10 through a thread-safe singleton instance.
// Field errors are translated into the messages the API returns under the
// VALIDATION_ERROR code.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed validation constraint.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// RequestError collects every failed constraint for one request.
type RequestError struct {
	fields []FieldError
}

// Fields returns the individual constraint failures.
func (e *RequestError) Fields() []FieldError {
	return e.fields
}

func (e *RequestError) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.fields))
	for i, f := range e.fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Details builds the structured error payload for the API envelope.
func (e *RequestError) Details() map[string]interface{} {
	if len(e.fields) == 1 {
		return map[string]interface{}{
			"field": e.fields[0].Field,
			"tag":   e.fields[0].Tag,
		}
	}
	fields := make([]map[string]interface{}, len(e.fields))
	for i, f := range e.fields {
		fields[i] = map[string]interface{}{
			"field":   f.Field,
			"tag":     f.Tag,
			"message": f.Message,
		}
	}
	return map[string]interface{}{"fields": fields}
}

// Validator returns the singleton instance. Struct metadata is cached, so
// sharing one instance is both safe and faster.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates s against its struct tags. Returns nil when
// valid, otherwise a *RequestError listing every failed constraint.
func ValidateStruct(s interface{}) *RequestError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestError{fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe),
		}
	}
	return &RequestError{fields: fields}
}

// translate renders a field error as the human-readable message the API
// returns to clients.
func translate(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()
	isString := fe.Kind().String() == "string"

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
