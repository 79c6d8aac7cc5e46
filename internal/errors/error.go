package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryBundle     Category = "bundle"
	CategoryServe      Category = "serve"
	CategoryCLI        Category = "cli"
	CategoryValidation Category = "validation"
)

// Error is a structured CLI error with a stable code, a fix suggestion
// and a documentation link.
type Error struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type (config, bundle, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this specific occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds occurrence detail to the error.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithSuggestion overrides the registry's fix suggestion.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Wrap attaches the underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	if e.Detail == "" && err != nil {
		e.Detail = err.Error()
	}
	return e
}

// New creates an error from its registry code. Unknown codes yield a
// generic error carrying the code, so a missing registry entry never
// hides the original failure.
func New(code string) *Error {
	if info, ok := registry[code]; ok {
		return &Error{
			Code:       code,
			Category:   info.Category,
			Message:    info.Message,
			Suggestion: info.Suggestion,
			DocURL:     info.DocURL,
		}
	}
	return &Error{
		Code:     code,
		Category: CategoryCLI,
		Message:  "unknown error",
	}
}

// Newf creates an uncoded error with a formatted message, for failures
// that do not map to a registry entry.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}
