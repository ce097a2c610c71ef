// Package types defines the shared vocabulary of the FITS header codec:
// typed errors, keyword type letters, decoded values and update entries.
//
// Design goals:
//   - Typed errors with stable categories (not found/unsupported/malformed/...).
//   - Values keep their textual form so re-rendering is byte-faithful.
//   - Numeric forms are filled in only for the type they were classified as.
//
// This package has no dependencies beyond the standard library.
package types
