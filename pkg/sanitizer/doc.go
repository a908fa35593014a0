// Package sanitizer provides input normalization for booking submissions.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. They never fail: input that normalizes to nothing becomes an
// empty string, which validation then rejects as missing.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces, drop control characters
//   - Emails: Trim only, no case folding or format checks
package sanitizer
