// SPDX-License-Identifier: MIT

package ziptie

// nucleate accumulates pairwise energy between residual cables and, when
// the strongest pair crosses the nucleation threshold, seeds a new bundle
// holding exactly that pair. At most one bundle per call.
//
// Implementation:
//   - Stage 1: E_n += r ⊗ r, then zero the diagonal.
//   - Stage 2: row-major ArgMax; the symmetric table reports a < b.
//   - Stage 3: if max > threshold, append (new,a), (new,b) and count it.
//   - Stage 4: zero rows/cols a,b of E_n and cols a,b of E_a.
func (z *ZipTie) nucleate() error {
	if err := z.nucleationEnergy.AddOuter(z.residual, z.residual); err != nil {
		return invariantErrorf(opNucleate, err)
	}
	if err := z.nucleationEnergy.ZeroDiagonal(); err != nil {
		return invariantErrorf(opNucleate, err)
	}

	best := z.nucleationEnergy.ArgMax()
	if !(best.Value > z.nucleationThreshold) {
		return nil
	}
	a, b := best.Row, best.Col

	bundle := z.numBundles
	if err := z.bundles.Append(bundle, a); err != nil {
		return invariantErrorf(opNucleate, err)
	}
	if err := z.bundles.Append(bundle, b); err != nil {
		return invariantErrorf(opNucleate, err)
	}
	z.numBundles++
	z.full = z.numBundles >= z.maxBundles

	// The evidence for both cables has been spent.
	for _, c := range [2]int{a, b} {
		if err := z.resetCable(c); err != nil {
			return invariantErrorf(opNucleate, err)
		}
	}

	z.emit(BundleEvent{
		Name:    z.name,
		Level:   z.level,
		Step:    z.steps,
		Bundle:  bundle,
		Kind:    Nucleated,
		Parent:  -1,
		Cables:  []int{a, b},
		Members: z.bundles.Members(bundle),
		Energy:  best.Value,
		Full:    z.full,
	})

	return nil
}

// resetCable zeroes cable c's row and column in the nucleation table and
// its column in the agglomeration table.
func (z *ZipTie) resetCable(c int) error {
	if err := z.nucleationEnergy.ZeroRow(c); err != nil {
		return err
	}
	if err := z.nucleationEnergy.ZeroCol(c); err != nil {
		return err
	}

	return z.agglomerationEnergy.ZeroCol(c)
}
