// Package errors provides structured error types for the peapod library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries context: a variant path, Go/WIT type names, and a cause chain.
//
// The container itself never returns errors; contract violations are not
// checked and allocation failure is fatal. Errors surface while defining
// adapters, measuring layouts and loading WIT documents.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDefine, errors.KindNoVariants).
//		Path("shape").
//		GoType("Shape").
//		Detail("variant set has no cases").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoVariants(errors.PhaseDefine, "shape")
//	err := errors.InvalidTag(errors.PhaseDefine, path, 7, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
