// Package errors provides structured error types for graphwire.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: property path, Go type, wire tag, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindUnknownTag).
//		Path("user", "created").
//		Tag("Date").
//		Detail("no converter registered").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownTag(path, "Date")
//	err := errors.DanglingReference(path, 7)
//
// All errors implement the standard error interface and support errors.Is/As.
// The package-level Err* values match on Kind alone, regardless of Phase:
//
//	if errors.Is(err, gwerrors.ErrUnknownTag) { ... }
package errors
