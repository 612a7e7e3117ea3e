package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategorySnapshot Category = "snapshot"
	CategoryCLI      Category = "cli"
)

// RouterError is a structured error with a code, explanation and hint.
type RouterError struct {
	// Code is a unique error identifier (e.g., "R100").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct usage.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RouterError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RouterError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *RouterError) WithDetail(d string) *RouterError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RouterError) WithSuggestion(s string) *RouterError {
	e.Suggestion = s
	return e
}

// WithExample adds a usage example to the error.
func (e *RouterError) WithExample(ex string) *RouterError {
	e.Example = ex
	return e
}

// Wrap wraps another error.
func (e *RouterError) Wrap(err error) *RouterError {
	e.Wrapped = err
	return e
}

// New creates a RouterError from a registered error code.
func New(code string) *RouterError {
	template, ok := registry[code]
	if !ok {
		return &RouterError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RouterError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new RouterError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RouterError {
	return &RouterError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RouterError.
// A RouterError anywhere in err's chain is returned as is.
func FromError(err error, code string) *RouterError {
	if err == nil {
		return nil
	}
	var re *RouterError
	if stderrors.As(err, &re) {
		return re
	}
	return New(code).Wrap(err)
}
