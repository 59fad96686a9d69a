package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrForbidden        = errors.New("not allowed for this account")
)

// ValidationError lists every field of a request that is missing or malformed.
type ValidationError struct {
	Fields map[string]string
	// Cause is optional and allows errors.Is checks against a more specific reason.
	Cause error
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "invalid or missing fields: " + strings.Join(e.FieldNames(), ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// FieldNames returns the failing fields in a stable order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// StoreUnavailable wraps an unexpected persistence error.
func StoreUnavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
