// SPDX-License-Identifier: MIT

package ziptie

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/ziptie/bundlemap"
	"github.com/katalvlaran/ziptie/matrix"
)

// BundleDescription lists one bundle and its sorted distinct cables.
type BundleDescription struct {
	Bundle int   `json:"bundle" yaml:"bundle"`
	Cables []int `json:"cables" yaml:"cables"`
}

// Description is the diagnostic listing of a ZipTie's bundles, in
// ascending bundle order. External renderers consume it.
type Description struct {
	Name    string              `json:"name" yaml:"name"`
	Level   int                 `json:"level" yaml:"level"`
	Bundles []BundleDescription `json:"bundles" yaml:"bundles"`
}

// String renders the listing:
//
//	ziptie <level>
//	    bundle <i> cables: [c0, c1, ...]
func (d Description) String() string {
	var sb strings.Builder
	sb.WriteString("ziptie ")
	sb.WriteString(strconv.Itoa(d.Level))
	sb.WriteByte('\n')
	for _, b := range d.Bundles {
		parts := make([]string, len(b.Cables))
		for i, c := range b.Cables {
			parts[i] = strconv.Itoa(c)
		}
		fmt.Fprintf(&sb, "    bundle %d cables: [%s]\n", b.Bundle, strings.Join(parts, ", "))
	}

	return sb.String()
}

// Describe returns the current bundle listing. Pure read.
// Complexity: O(B·E) for B bundles and E map entries.
func (z *ZipTie) Describe() Description {
	z.mu.Lock()
	defer z.mu.Unlock()

	d := Description{Name: z.name, Level: z.level}
	for _, b := range z.bundles.Bundles() {
		d.Bundles = append(d.Bundles, BundleDescription{
			Bundle: b,
			Cables: z.bundles.Members(b),
		})
	}

	return d
}

// State is a deep copy of everything a ZipTie has learned and last
// computed. It is the read surface for visualisation and tests; mutating
// it has no effect on the instance.
type State struct {
	Name                   string
	Level                  int
	MaxCables              int
	MaxBundles             int
	NumBundles             int
	Full                   bool
	Steps                  uint64
	ActivityThreshold      float64
	NucleationThreshold    float64
	AgglomerationThreshold float64

	CableMax         []float64         // running max per cable
	CableActivities  []float64         // last normalized activities
	BundleActivities []float64         // last bundle activities
	BundleScale      []float64         // running max activity per bundle
	Entries          []bundlemap.Entry // bundle map, insertion order
	MapCapacity      int               // physical bundle-map capacity

	NucleationEnergy    *matrix.Dense // maxCables × maxCables
	AgglomerationEnergy *matrix.Dense // maxBundles × maxCables
}

// State returns a deep copy of the instance state. Pure read.
// Complexity: O(maxCables²).
func (z *ZipTie) State() State {
	z.mu.Lock()
	defer z.mu.Unlock()

	return State{
		Name:                   z.name,
		Level:                  z.level,
		MaxCables:              z.maxCables,
		MaxBundles:             z.maxBundles,
		NumBundles:             z.numBundles,
		Full:                   z.full,
		Steps:                  z.steps,
		ActivityThreshold:      z.activityThreshold,
		NucleationThreshold:    z.nucleationThreshold,
		AgglomerationThreshold: z.agglomerationThreshold,
		CableMax:               z.normalizer.Max(),
		CableActivities:        slices.Clone(z.cableActivities),
		BundleActivities:       slices.Clone(z.bundleActivities),
		BundleScale:            slices.Clone(z.bundleScale),
		Entries:                z.bundles.Entries(),
		MapCapacity:            z.bundles.Cap(),
		NucleationEnergy:       z.nucleationEnergy.CloneDense(),
		AgglomerationEnergy:    z.agglomerationEnergy.CloneDense(),
	}
}
