// Package gen assembles one self-contained C source file from any number of
// numerical functions.
//
// A Generator is created per output file. Functions are registered with
// AddFunction; their callbacks emit statements through the Generator's
// emitters, which register everything the statements rely on:
//   - auxiliary routines (emitted once, prerequisites first)
//   - constant tables (deduplicated by content: "c0", "c1", ... and "s0", "s1", ...)
//   - sparsity patterns (deduplicated by identity, stored as integer tables)
//   - dependent functions (emitted once, named "f0", "f1", ...)
//   - system headers
//
// Serialize concatenates the accumulated sections in a fixed order. A
// Generator is not safe for concurrent use.
package gen
