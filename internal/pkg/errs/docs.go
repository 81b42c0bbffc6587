// Package errs provides standardized error types for the yard application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes one error type per failure class:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced object does not exist
//   - ForbiddenError: the actor is not allowed to perform the action
//   - ConflictError: the action clashes with the current state (capacity, duplicates, terminal states)
//   - IntegrityError: persisted state violates an invariant; never shown to clients in detail
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
