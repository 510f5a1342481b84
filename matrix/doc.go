// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major accumulator used by the
// ziptie energy tables.
//
// The matrix package provides:
//
//   - Dense: a flat, cache-friendly float64 buffer with safe At/Set
//     accessors and a per-instance finite-value policy.
//   - Accumulation kernels: AddOuter (x ⊗ y added in place), and the
//     targeted resets the clustering engine needs (ZeroRow, ZeroCol,
//     ZeroDiagonal, ZeroEntries).
//   - ArgMax: a deterministic row-major scan returning the first maximum.
//
// Determinism:
//
//	Every kernel walks the buffer in fixed i→j order. ArgMax reports the
//	lowest (row, col) among equal maxima, so exact ties always resolve
//	the same way.
//
// Matrices here are sized once and never reshaped: the engines allocate
// them at construction and mutate them in place for the lifetime of the
// owner.
package matrix
