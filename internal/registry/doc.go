// Package registry provides the deduplicating stores behind code generation.
//
// Two kinds of stores are offered:
//   - Pool: content-addressed vectors (numeric constants, compressed sparsity
//     patterns). Equal content always maps to the same index.
//   - Identity: object-identity keyed tables (sparsity patterns, dependent
//     functions). The same object maps to the same index; equal but distinct
//     objects do not.
//
// Indices are assigned in order of first insertion and never change.
package registry
