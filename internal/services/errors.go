package services

import (
	"errors"
	"fmt"
)

var (
	ErrExtractionFailed = errors.New("extraction failed")
	ErrGenerationFailed = errors.New("generation failed")
	ErrMalformedJSON    = errors.New("malformed json")
	ErrMissingField     = errors.New("missing field")
	ErrInvalidField     = errors.New("invalid field")
)

// EvaluationError is a terminal pipeline failure. Kind is one of the Err* sentinels above.
type EvaluationError struct {
	Kind  error
	Field string
	// Raw holds the unparsed model output for malformed_json, missing_field and invalid_field.
	Raw   string
	Cause error
}

func (e *EvaluationError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Field)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *EvaluationError) Is(target error) bool {
	return target == e.Kind
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// KindName is the snake_case code used in API responses and history rows.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrExtractionFailed):
		return "extraction_failed"
	case errors.Is(err, ErrGenerationFailed):
		return "generation_failed"
	case errors.Is(err, ErrMalformedJSON):
		return "malformed_json"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrInvalidField):
		return "invalid_field"
	default:
		return "internal_error"
	}
}

// RawResponse returns the model output carried by err, if any.
func RawResponse(err error) (string, bool) {
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		return "", false
	}
	switch evalErr.Kind {
	case ErrMalformedJSON, ErrMissingField, ErrInvalidField:
		return evalErr.Raw, true
	}
	return "", false
}

// FieldName returns the offending key for field-level failures.
func FieldName(err error) string {
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return evalErr.Field
	}
	return ""
}

func extractionError(cause error) error {
	return &EvaluationError{Kind: ErrExtractionFailed, Cause: cause}
}

func generationError(cause error) error {
	return &EvaluationError{Kind: ErrGenerationFailed, Cause: cause}
}
