// Package job reads generation jobs from YAML or TOML files, validates them
// into coded diagnostics, and drives a gen.Generator over the kernels they
// describe.
//
// A job names its sparsity patterns and kernels; kernels refer to patterns
// and chains refer to other kernels by name. Chains are built after their
// stages, and stage cycles are reported instead of built.
package job
