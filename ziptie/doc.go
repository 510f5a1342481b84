// SPDX-License-Identifier: MIT

// Package ziptie implements an incremental, unsupervised co-activity
// clustering engine.
//
// 🚀 What is a ZipTie?
//
//	Input channels ("cables") that are often active at the same time get
//	zipped together into "bundles". A ZipTie consumes one activity vector
//	per Step, and for every vector it returns the activity of each bundle
//	discovered so far. It learns online, forever, and never holds more
//	bundles than it has cables.
//
// ✨ Per-step pipeline:
//
//	raw activities
//	  → Normalizer   (leaky running max, clamp to [0,1], zero below 0.1)
//	  → Featurizer   (bundle activity = min over member cables)
//	  → Nucleation   (cable×cable energy; may create one 2-cable bundle)
//	  → Agglomeration(bundle×cable energy; may grow one bundle by copy)
//	  → bundle activities
//
// Nucleation fires when a pair's energy exceeds 10·5^level; agglomeration
// fires at half that. Growth never mutates a bundle: it allocates a new
// bundle index holding the donor's cables plus the absorbed one. Once the
// bundle count reaches capacity the instance is FULL: learning stops for
// good while Step and Project keep working.
//
// ⚙️ Usage:
//
//	zt, err := ziptie.New(64, ziptie.WithName("retina"), ziptie.WithLevel(0))
//	if err != nil {
//	  // ErrConfiguration
//	}
//	for _, v := range stream {
//	  bundles, err := zt.Step(v) // ErrInvalidInput if len(v) > 64
//	  ...
//	}
//	fmt.Print(zt.Describe())
//
// Concurrency:
//
//	A *ZipTie serialises its own calls with a mutex. Independent instances
//	(for example one per hierarchy level) share nothing.
//
// Complexity per Step: O(C² + B·C + E) for C cables, B bundle slots and
// E bundle-map entries, with the outer products skipping inactive rows.
package ziptie
