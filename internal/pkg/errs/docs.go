// Package errs provides the standardized error types used across the relay
// delivery application. Every typed error follows the same pattern: a sentinel
// variable for classification with errors.Is, a struct carrying the failing
// parameter and an optional cause, constructor functions with and without a
// cause, and Error/Unwrap methods for formatting and unwrapping.
//
// The available types cover the common failure shapes:
//   - ObjectNotFoundError: a lookup by identifier found nothing
//   - ValueIsInvalidError: a parameter failed validation
//   - ValueIsOutOfRangeError: a numeric parameter fell outside its bounds
//   - ValueIsRequiredError: a required parameter was missing
//   - VersionIsInvalidError: an aggregate version check failed
//
// Domain packages add their own sentinel errors for business-rule violations
// (state conflicts, ownership mismatches, insufficient balance) and rely on
// this package only for the generic validation and lookup failures.
package errs
