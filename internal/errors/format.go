package errors

import (
	"fmt"
	"strings"
)

// ANSI escape sequences used by Format.
const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiDim    = "\033[2m"
)

// Format renders an error for a color terminal. Non-structured errors
// render as a plain error line.
func Format(err error) string {
	e, ok := err.(*Error)
	if !ok {
		return fmt.Sprintf("%sError:%s %v", ansiRed, ansiReset, err)
	}

	var sb strings.Builder
	if e.Code != "" {
		fmt.Fprintf(&sb, "%sError %s%s [%s]: %s\n", ansiRed, e.Code, ansiReset, e.Category, e.Message)
	} else {
		fmt.Fprintf(&sb, "%sError%s [%s]: %s\n", ansiRed, ansiReset, e.Category, e.Message)
	}
	if e.Detail != "" {
		fmt.Fprintf(&sb, "  %s\n", e.Detail)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&sb, "\n%sSuggestion:%s %s\n", ansiYellow, ansiReset, e.Suggestion)
	}
	if e.DocURL != "" {
		fmt.Fprintf(&sb, "%s%s%s\n", ansiDim+ansiCyan, e.DocURL, ansiReset)
	}
	return sb.String()
}

// FormatPlain renders an error without ANSI sequences, for logs and
// non-terminal output.
func FormatPlain(err error) string {
	e, ok := err.(*Error)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	var sb strings.Builder
	if e.Code != "" {
		fmt.Fprintf(&sb, "Error %s [%s]: %s\n", e.Code, e.Category, e.Message)
	} else {
		fmt.Fprintf(&sb, "Error [%s]: %s\n", e.Category, e.Message)
	}
	if e.Detail != "" {
		fmt.Fprintf(&sb, "  %s\n", e.Detail)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&sb, "Suggestion: %s\n", e.Suggestion)
	}
	if e.DocURL != "" {
		fmt.Fprintf(&sb, "%s\n", e.DocURL)
	}
	return sb.String()
}
