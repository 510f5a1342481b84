// SPDX-License-Identifier: MIT

package bundlemap

import (
	"errors"
	"fmt"
	"slices"
)

// InitialCapacity is the physical entry capacity of a fresh Map.
const InitialCapacity = 8

// ErrNegativeIndex indicates that a bundle or cable index below zero was
// passed to Append.
var ErrNegativeIndex = errors.New("bundlemap: negative index")

// Entry is one (bundle, cable) membership record.
type Entry struct {
	Bundle int // bundle index (row)
	Cable  int // cable index (column)
}

// Map is the sparse bundle→cable relation.
//
// rows and cols are parallel and always have length == capacity; only the
// first n entries are meaningful, the tail holds -1 as a free marker.
type Map struct {
	rows []int // bundle index per entry
	cols []int // cable index per entry
	n    int   // logical entry count
}

// New returns an empty Map with InitialCapacity free slots.
func New() *Map {
	return &Map{
		rows: freeSlots(InitialCapacity),
		cols: freeSlots(InitialCapacity),
	}
}

// freeSlots returns a slice of length n filled with the free marker.
func freeSlots(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = -1
	}

	return s
}

// Len returns the logical number of entries.
func (m *Map) Len() int { return m.n }

// Cap returns the physical entry capacity.
func (m *Map) Cap() int { return len(m.rows) }

// Append records that cable belongs to bundle.
//
// When the logical length reaches the physical capacity after the write,
// both slices double and existing entries are copied across.
// Complexity: amortized O(1).
func (m *Map) Append(bundle, cable int) error {
	if bundle < 0 || cable < 0 {
		return fmt.Errorf("Append(%d,%d): %w", bundle, cable, ErrNegativeIndex)
	}
	m.rows[m.n] = bundle
	m.cols[m.n] = cable
	m.n++
	if m.n >= len(m.rows) {
		m.grow()
	}

	return nil
}

// grow doubles the physical capacity, preserving the logical prefix.
func (m *Map) grow() {
	size := 2 * len(m.rows)
	rows, cols := freeSlots(size), freeSlots(size)
	copy(rows, m.rows[:m.n])
	copy(cols, m.cols[:m.n])
	m.rows, m.cols = rows, cols
}

// Cables returns the cables recorded under bundle in insertion order,
// duplicates included. Empty when the bundle has no entries.
// Complexity: O(Len).
func (m *Map) Cables(bundle int) []int {
	var out []int
	for i := 0; i < m.n; i++ {
		if m.rows[i] == bundle {
			out = append(out, m.cols[i])
		}
	}

	return out
}

// Members returns the sorted distinct cables of bundle.
func (m *Map) Members(bundle int) []int {
	cables := m.Cables(bundle)
	slices.Sort(cables)

	return slices.Compact(cables)
}

// Project writes an indicator of bundle's cables into a fresh vector of
// length width: 1 at every member cable, 0 elsewhere. Cables ≥ width are
// ignored.
// Complexity: O(Len + width).
func (m *Map) Project(bundle, width int) []float64 {
	out := make([]float64, width)
	for i := 0; i < m.n; i++ {
		if m.rows[i] == bundle && m.cols[i] < width {
			out[m.cols[i]] = 1
		}
	}

	return out
}

// Bundles returns the sorted distinct bundle indices that have entries.
func (m *Map) Bundles() []int {
	out := make([]int, m.n)
	copy(out, m.rows[:m.n])
	slices.Sort(out)

	return slices.Compact(out)
}

// Entries returns a copy of the logical entries in insertion order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, m.n)
	for i := range out {
		out[i] = Entry{Bundle: m.rows[i], Cable: m.cols[i]}
	}

	return out
}

// Indices returns the logical prefixes of the row and column slices.
// The slices alias the Map's storage and are valid until the next Append;
// callers must not modify them.
func (m *Map) Indices() (rows, cols []int) {
	return m.rows[:m.n], m.cols[:m.n]
}
