// Package errors provides structured error types for fontguard.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the guarded resource label, the expected and actual values
// of a failed check, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAccess, errors.KindThreadAffinity).
//		Resource("font.Face").
//		Expected("goroutine 1").
//		Actual("goroutine 7").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ThreadAffinity("font.Face", "goroutine", 1, 7)
//	err := errors.NotText(errors.PhaseValidate, "font.Face", text)
//
// All errors implement the standard error interface and support errors.Is/As.
// The exported sentinels match any error of the same Kind:
//
//	if errors.Is(err, fgerrors.ErrThreadAffinity) { ... }
package errors
