// Package diagnostic provides structured errors, warnings and notes collected
// while validating a generation job.
//
// Key capabilities:
//   - Coded errors pointing at a job entry and field
//   - "Did you mean" suggestions for misspelled names
//   - Warnings for entries that are valid but unused
package diagnostic
