// SPDX-License-Identifier: MIT

package ziptie

import (
	"math"

	"github.com/katalvlaran/ziptie/bundlemap"
)

// bundleActivities writes, for every bundle with entries in m, the minimum
// activity over its member cables into out; all other slots read 0.
// A bundle fires only as strongly as its weakest member.
//
// out must cover every bundle index in m and cables every cable index.
// Complexity: O(len(out) + Len(m)).
func bundleActivities(m *bundlemap.Map, cables, out []float64) {
	clear(out)
	rows, cols := m.Indices()
	for k := range rows {
		out[rows[k]] = math.Inf(1)
	}
	for k := range rows {
		if v := cables[cols[k]]; v < out[rows[k]] {
			out[rows[k]] = v
		}
	}
}

// residualActivities returns a copy of cables with values below threshold
// set to zero. Bundled activity is not subtracted: a cable stays fully
// available to every bundle it belongs to.
func residualActivities(cables []float64, threshold float64) []float64 {
	out := make([]float64, len(cables))
	for i, v := range cables {
		if v >= threshold {
			out[i] = v
		}
	}

	return out
}
