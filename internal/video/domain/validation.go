package domain

import (
	"fmt"
	"strings"
)

// FieldError is a single validation violation on an aggregate field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Notification accumulates validation violations instead of failing on
// the first one, so a caller can report every problem in one pass.
type Notification struct {
	errs []FieldError
}

func NewNotification() *Notification {
	return &Notification{}
}

func (n *Notification) Add(field, message string) {
	n.errs = append(n.errs, FieldError{Field: field, Message: message})
}

func (n *Notification) HasErrors() bool {
	return len(n.errs) > 0
}

// Errors returns the violations in the order they were recorded.
func (n *Notification) Errors() []FieldError {
	return n.errs
}

// Err converts the accumulated violations into a single error, or nil
// when nothing was recorded.
func (n *Notification) Err() error {
	if !n.HasErrors() {
		return nil
	}
	return &ValidationError{Violations: n.errs}
}

// ValidationError aggregates one or more field violations.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return "there are validation errors: " + strings.Join(msgs, "; ")
}
