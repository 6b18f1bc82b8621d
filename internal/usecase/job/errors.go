package job

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("job not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrConflict           = errors.New("job was modified concurrently")
	ErrInternal           = errors.New("internal error")
)

// ValidationError lists per-field problems with caller input. It matches
// ErrInvalidInput under errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(message string, fields map[string]string) error {
	if message == "" {
		message = "Invalid request payload"
	}
	return &ValidationError{Message: message, Fields: fields}
}
