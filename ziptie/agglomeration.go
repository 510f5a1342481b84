// SPDX-License-Identifier: MIT

package ziptie

// grow accumulates bundle↔cable energy and, when the strongest pair
// crosses the agglomeration threshold, creates a new bundle holding the
// donor bundle's entries plus the absorbed cable. The donor keeps its
// index and entries. At most one bundle per call.
//
// Implementation:
//   - Stage 1: E_a += bundleActivities ⊗ r.
//   - Stage 2: zero every (bundle, cable) already in the bundle map.
//   - Stage 3: row-major ArgMax → (donor, cable).
//   - Stage 4: if max > threshold, copy the donor's entries (map order)
//     under the new index, then append the cable.
//   - Stage 5: zero row/col cable of E_n, col cable of E_a, row donor of E_a.
func (z *ZipTie) grow() error {
	if err := z.agglomerationEnergy.AddOuter(z.bundleActivities, z.residual); err != nil {
		return invariantErrorf(opGrow, err)
	}
	rows, cols := z.bundles.Indices()
	if err := z.agglomerationEnergy.ZeroEntries(rows, cols); err != nil {
		return invariantErrorf(opGrow, err)
	}

	best := z.agglomerationEnergy.ArgMax()
	if !(best.Value > z.agglomerationThreshold) {
		return nil
	}
	donor, cable := best.Row, best.Col

	bundle := z.numBundles
	for _, c := range z.bundles.Cables(donor) {
		if err := z.bundles.Append(bundle, c); err != nil {
			return invariantErrorf(opGrow, err)
		}
	}
	if err := z.bundles.Append(bundle, cable); err != nil {
		return invariantErrorf(opGrow, err)
	}
	z.numBundles++
	z.full = z.numBundles >= z.maxBundles

	if err := z.resetCable(cable); err != nil {
		return invariantErrorf(opGrow, err)
	}
	// The donor is superseded along this axis.
	if err := z.agglomerationEnergy.ZeroRow(donor); err != nil {
		return invariantErrorf(opGrow, err)
	}

	z.emit(BundleEvent{
		Name:    z.name,
		Level:   z.level,
		Step:    z.steps,
		Bundle:  bundle,
		Kind:    Agglomerated,
		Parent:  donor,
		Cables:  []int{cable},
		Members: z.bundles.Members(bundle),
		Energy:  best.Value,
		Full:    z.full,
	})

	return nil
}
