// SPDX-License-Identifier: MIT

// Package matrix: domain types. The Matrix interface is the read/write
// surface shared by Dense and any future storage; hot kernels type-assert
// to *Dense and operate on the flat buffer directly.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Cell addresses one element of a matrix together with its value.
// ArgMax reports its result as a Cell.
type Cell struct {
	Row   int     // row index
	Col   int     // column index
	Value float64 // element value at (Row, Col)
}
