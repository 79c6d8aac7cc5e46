// Package errors provides structured CLI errors with stable codes,
// fix suggestions, and documentation links.
//
// Every user-facing failure of the loom CLI is one of the codes in
// registry.go. Code paths build them via New and chain context on:
//
//	return errors.New("E100").
//		WithDetail("No loom.json found in " + dir).
//		WithSuggestion("Create loom.json in the project root")
//
// The format helpers render the error for a terminal.
package errors
