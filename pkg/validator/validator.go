// Package validator adapts go-playground/validator to echo's Validator
// interface so request DTOs can declare `validate` tags.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request payloads.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates a RequestValidator ready to assign to echo's Validator field.
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct-level validation tags on i.
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}
