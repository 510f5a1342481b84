// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - In-place accumulation and targeted-reset kernels over *Dense.
//   - These are the hot loops of the clustering engines: they run once per
//     step over the full energy tables, so they work on the flat buffer and
//     never allocate.
//
// Exposed API:
//   - (*Dense).AddOuter(x, y)      // m[i,j] += x[i]*y[j]
//   - (*Dense).ZeroRow(i)          // m[i,:] = 0
//   - (*Dense).ZeroCol(j)          // m[:,j] = 0
//   - (*Dense).ZeroDiagonal()      // m[k,k] = 0 (square only)
//   - (*Dense).ZeroEntries(rs, cs) // m[rs[k],cs[k]] = 0
//   - (*Dense).ArgMax()            // first maximum in row-major order
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - AddOuter skips rows whose x[i] is zero, which makes it proportional to
//     the number of active inputs on sparse activity vectors.
//   - Kernels validate fully before writing: a failed call leaves m unchanged.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opAddOuter     = "AddOuter"
	opZeroRow      = "ZeroRow"
	opZeroCol      = "ZeroCol"
	opZeroDiagonal = "ZeroDiagonal"
	opZeroEntries  = "ZeroEntries"
)

// opErrorf wraps err with the kernel name.
func opErrorf(op string, err error) error {
	return fmt.Errorf("Dense.%s: %w", op, err)
}

// AddOuter accumulates the outer product x ⊗ y into m in place.
// MAIN DESCRIPTION:
//   - m[i,j] += x[i] * y[j] for every i<Rows, j<Cols.
//
// Implementation:
//   - Stage 1: validate len(x)==Rows, len(y)==Cols.
//   - Stage 2: when the finite policy is on, reject NaN/±Inf in x or y
//     before touching m.
//   - Stage 3: row loop; rows with x[i]==0 contribute nothing and are skipped.
//
// Errors:
//   - ErrDimensionMismatch, ErrNaNInf.
//
// Complexity:
//   - Time O(nnz(x)*c + r + c), Space O(1).
func (m *Dense) AddOuter(x, y []float64) error {
	if err := ValidateVecLen(x, m.r); err != nil {
		return opErrorf(opAddOuter, err)
	}
	if err := ValidateVecLen(y, m.c); err != nil {
		return opErrorf(opAddOuter, err)
	}
	if m.validateNaNInf {
		if err := ValidateFinite(x); err != nil {
			return opErrorf(opAddOuter, err)
		}
		if err := ValidateFinite(y); err != nil {
			return opErrorf(opAddOuter, err)
		}
	}

	var i, j, base int
	var xi float64
	for i = 0; i < m.r; i++ {
		xi = x[i]
		if xi == 0 {
			continue // sparse fast-path
		}
		base = i * m.c
		for j = 0; j < m.c; j++ {
			m.data[base+j] += xi * y[j]
		}
	}

	return nil
}

// ZeroRow sets every element of row i to zero.
// Errors: ErrOutOfRange. Complexity: O(c).
func (m *Dense) ZeroRow(i int) error {
	if i < 0 || i >= m.r {
		return opErrorf(opZeroRow, ErrOutOfRange)
	}
	clear(m.data[i*m.c : (i+1)*m.c])

	return nil
}

// ZeroCol sets every element of column j to zero.
// Errors: ErrOutOfRange. Complexity: O(r).
func (m *Dense) ZeroCol(j int) error {
	if j < 0 || j >= m.c {
		return opErrorf(opZeroCol, ErrOutOfRange)
	}
	for off := j; off < len(m.data); off += m.c {
		m.data[off] = 0
	}

	return nil
}

// ZeroDiagonal sets m[k,k] = 0 for every k. Requires a square matrix.
// Errors: ErrNilMatrix, ErrNonSquare. Complexity: O(n).
func (m *Dense) ZeroDiagonal() error {
	if err := ValidateSquare(m); err != nil {
		return opErrorf(opZeroDiagonal, err)
	}
	stride := m.c + 1
	for off := 0; off < len(m.data); off += stride {
		m.data[off] = 0
	}

	return nil
}

// ZeroEntries sets m[rows[k], cols[k]] = 0 for every k.
// MAIN DESCRIPTION:
//   - Masked reset driven by a sparse coordinate list (parallel index slices).
//
// Implementation:
//   - Stage 1: validate equal lengths and every coordinate against bounds.
//   - Stage 2: write zeros; duplicates are harmless.
//
// Errors:
//   - ErrDimensionMismatch when len(rows) != len(cols); ErrOutOfRange.
//
// Complexity:
//   - Time O(k), Space O(1).
func (m *Dense) ZeroEntries(rows, cols []int) error {
	if len(rows) != len(cols) {
		return opErrorf(opZeroEntries, ErrDimensionMismatch)
	}
	for k := range rows {
		if _, err := m.indexOf(rows[k], cols[k]); err != nil {
			return fmt.Errorf("Dense.%s(%d,%d): %w", opZeroEntries, rows[k], cols[k], err)
		}
	}
	for k := range rows {
		m.data[rows[k]*m.c+cols[k]] = 0
	}

	return nil
}

// ArgMax returns the maximum element and its coordinates.
// MAIN DESCRIPTION:
//   - Row-major scan; a later element replaces the current best only when
//     strictly greater, so ties resolve to the lowest row, then lowest column.
//
// Behavior highlights:
//   - NaN never wins a comparison and is therefore never reported unless
//     m[0,0] itself is NaN.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) ArgMax() Cell {
	best := Cell{Row: 0, Col: 0, Value: m.data[0]}
	if math.IsNaN(best.Value) {
		best.Value = math.Inf(-1)
	}

	var i, j, base int
	var v float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			v = m.data[base+j]
			if v > best.Value {
				best = Cell{Row: i, Col: j, Value: v}
			}
		}
	}

	return best
}
