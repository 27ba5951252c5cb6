// Package errors provides structured error types for the program-input module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a location path, the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindDuplicateAccount).
//		Path("accounts", "2").
//		Value(uint8(0)).
//		Detail("account 2 duplicates account 0").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidAccountCount(300)
//	err := errors.ProgramFailed(1)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind only:
//
//	if stderrors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindInvalidInput}) {
//		// count rejected
//	}
package errors
