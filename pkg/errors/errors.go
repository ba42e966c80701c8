package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrUnavailable is returned when a backing store cannot be reached
type ErrUnavailable struct {
	Resource string
	Err      error
}

func (e *ErrUnavailable) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s unavailable", e.Resource)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Resource, e.Err)
}

func (e *ErrUnavailable) Unwrap() error {
	return e.Err
}

// ErrValidation is returned when validation fails. Hint, when set, is a user-facing
// instruction to show alongside the error.
type ErrValidation struct {
	Message string
	Fields  map[string]string
	Hint    string
}

func (e *ErrValidation) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "validation failed"
	}
	if len(e.Fields) == 0 {
		return msg
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return msg + " (" + strings.Join(parts, ", ") + ")"
}
