// SPDX-License-Identifier: MIT

package ziptie

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/ziptie/matrix"
)

const (
	// maxDecayRate pulls every running max toward the current value.
	maxDecayRate = 1e-4

	// maxCatchUpRate is the extra blend applied when a value exceeds its max.
	maxCatchUpRate = 1e-2

	// epsilon keeps the rescale finite while a running max is still zero.
	epsilon = 1e-12
)

// Normalizer rescales raw cable activities into [0, 1] against a leaky
// per-cable running maximum, and zeroes sub-threshold values.
//
// The running max rises quickly to follow new peaks (catch-up rate 1e-2)
// and falls slowly (decay rate 1e-4).
type Normalizer struct {
	cableMax  []float64
	threshold float64
}

// NewNormalizer returns a Normalizer for n cables with all maxima at zero.
func NewNormalizer(n int, threshold float64) *Normalizer {
	return &Normalizer{
		cableMax:  make([]float64, n),
		threshold: threshold,
	}
}

// Width returns the cable capacity.
func (nz *Normalizer) Width() int { return len(nz.cableMax) }

// Max returns a copy of the running maxima.
func (nz *Normalizer) Max() []float64 { return slices.Clone(nz.cableMax) }

// Normalize updates the running maxima with raw and returns the normalized,
// sparsified activities (length Width()).
//
// Implementation:
//   - Stage 1: reject len(raw) > Width() and non-finite entries (no state touched).
//   - Stage 2: zero-pad raw to Width().
//   - Stage 3: max += (x-max)·1e-4; then, where x > max, max += (x-max)·1e-2.
//   - Stage 4: out = clamp(x/(max+ε), 0, 1); out < threshold → 0.
//
// Errors:
//   - ErrInvalidInput.
func (nz *Normalizer) Normalize(raw []float64) ([]float64, error) {
	n := nz.Width()
	if len(raw) > n {
		return nil, opErrorf(opNormalize,
			fmt.Errorf("%d activities for %d cables: %w", len(raw), n, ErrInvalidInput))
	}
	if err := matrix.ValidateFinite(raw); err != nil {
		return nil, opErrorf(opNormalize, fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	out := make([]float64, n)
	copy(out, raw)

	var x float64
	for i := range out {
		x = out[i]
		nz.cableMax[i] += (x - nz.cableMax[i]) * maxDecayRate
		if x > nz.cableMax[i] {
			nz.cableMax[i] += (x - nz.cableMax[i]) * maxCatchUpRate
		}

		x /= nz.cableMax[i] + epsilon
		x = max(0, min(1, x))
		if x < nz.threshold {
			x = 0
		}
		out[i] = x
	}

	return out, nil
}
