package service

import "strings"

// FieldError is one violated input rule, shaped like the per-field error
// objects the API returns.
type FieldError struct {
	Param   string `json:"param,omitempty"`
	Message string `json:"msg"`
}

// ValidationError enumerates every violated field of a request. Callers map
// it to a 400 response carrying the full list.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidationError(fields []FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
