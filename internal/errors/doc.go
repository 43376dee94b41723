// Package errors defines sentinel errors shared across the ochre codebase.
//
// Callers wrap these with fmt.Errorf("...: %w", err) to add the offending
// name or field, and match on them with errors.Is.
package errors
