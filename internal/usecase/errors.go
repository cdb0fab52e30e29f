package usecase

import (
	"fmt"
	"sort"

	"movie-feedback/pkg/utils"
)

// ValidationError rejects input before anything is written. Fields maps each
// offending field to a message; Field names the first of them.
type ValidationError struct {
	Field   string
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 1 {
		return "validation failed: " + utils.FormatValidationErrors(e.Fields)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

func newValidationErrors(fields map[string]string) *ValidationError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return &ValidationError{
		Field:   names[0],
		Message: fields[names[0]],
		Fields:  fields,
	}
}

// NotFoundError means a referenced entity is absent or not publicly visible.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// IntegrityError is a write that could not complete consistently.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: integrity violation: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
