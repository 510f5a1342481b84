// SPDX-License-Identifier: MIT

package ziptie

// BundleKind tells how a bundle came to exist.
type BundleKind int

const (
	// Nucleated bundles were seeded from two co-active unbundled cables.
	Nucleated BundleKind = iota

	// Agglomerated bundles copy a donor bundle and add one cable.
	Agglomerated
)

// String returns the lower-case kind name.
func (k BundleKind) String() string {
	switch k {
	case Nucleated:
		return "nucleated"
	case Agglomerated:
		return "agglomerated"
	default:
		return "unknown"
	}
}

// BundleEvent describes one bundle creation.
type BundleEvent struct {
	Name    string     // ZipTie name
	Level   int        // ZipTie level
	Step    uint64     // 1-based step that created the bundle
	Bundle  int        // new bundle index
	Kind    BundleKind // how it was created
	Parent  int        // donor bundle for Agglomerated, -1 for Nucleated
	Cables  []int      // triggering cables: the pair, or the absorbed cable
	Members []int      // full sorted membership of the new bundle
	Energy  float64    // energy value that crossed the threshold
	Full    bool       // the creation filled the last bundle slot
}

// emit logs ev and forwards it to the registered hook.
func (z *ZipTie) emit(ev BundleEvent) {
	z.log.Event("bundle created",
		"step", ev.Step,
		"bundle", ev.Bundle,
		"kind", ev.Kind,
		"parent", ev.Parent,
		"cables", ev.Cables,
		"energy", ev.Energy,
		"full", ev.Full,
	)
	if z.onBundle != nil {
		z.onBundle(ev)
	}
}
