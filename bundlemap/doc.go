// SPDX-License-Identifier: MIT

// Package bundlemap stores which cables are zipped into which bundles.
//
// A Map is an append-only, insertion-ordered list of (bundle, cable)
// entries held in two parallel index slices. It is the single source of
// truth for bundle membership:
//
//   - a cable may appear under many bundles (bundles overlap freely);
//   - entries are never removed or rewritten;
//   - duplicate entries are tolerated and idempotent for membership.
//
// Capacity starts at InitialCapacity entries and doubles when the logical
// length reaches it, so Append is amortized O(1). Membership lookups are
// linear scans over the logical entries; entries, not bundles or cables,
// bound the work.
package bundlemap
