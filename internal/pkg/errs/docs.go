// Package errs provides standardized error types for the logistics
// application. It implements a consistent pattern for error creation,
// formatting and unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the error details
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Because every concrete error unwraps to its sentinel, callers classify
// failures with errors.Is and map them to transport-level responses without
// inspecting messages. The taxonomy covers the fulfillment core: missing
// objects, invalid or required values, illegal status transitions,
// reservation and unique-key conflicts, forbidden actions, failed cost
// computation and unreachable external providers.
package errs
