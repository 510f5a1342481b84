// SPDX-License-Identifier: MIT

package ziptie

import (
	"fmt"
	"slices"
	"sync"

	"github.com/katalvlaran/ziptie/bundlemap"
	"github.com/katalvlaran/ziptie/logging"
	"github.com/katalvlaran/ziptie/matrix"
)

// ZipTie is the clustering engine. Build it with New.
//
// Capacity: maxBundles == maxCables. Energy tables are allocated once:
// nucleation is maxCables×maxCables, agglomeration maxBundles×maxCables.
// mu guards every field; a ZipTie is safe to share but serialises calls.
type ZipTie struct {
	mu sync.Mutex

	// Configuration (immutable after New)
	name                   string
	level                  int
	maxCables              int
	maxBundles             int
	activityThreshold      float64
	nucleationThreshold    float64
	agglomerationThreshold float64
	onBundle               func(BundleEvent)
	log                    *logging.Logger

	// Learned structure
	numBundles int
	full       bool
	bundles    *bundlemap.Map
	normalizer *Normalizer

	// Energy tables
	nucleationEnergy    *matrix.Dense
	agglomerationEnergy *matrix.Dense

	// Per-step signals
	cableActivities  []float64
	bundleActivities []float64
	residual         []float64
	bundleScale      []float64
	steps            uint64
}

// New creates a ZipTie for up to maxCables input cables (and as many
// bundles).
//
// Errors:
//   - ErrConfiguration when maxCables <= 0, the level is negative or the
//     activity threshold is outside [0, 1].
//
// Complexity: O(maxCables²) allocation.
func New(maxCables int, opts ...Option) (*ZipTie, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(maxCables); err != nil {
		return nil, opErrorf(opNew, err)
	}
	if o.logger == nil {
		o.logger = logging.New("ziptie")
	}

	maxBundles := maxCables
	nucleation, err := matrix.NewSquare(maxCables)
	if err != nil {
		return nil, opErrorf(opNew, fmt.Errorf("%w: %w", ErrConfiguration, err))
	}
	agglomeration, err := matrix.NewDense(maxBundles, maxCables)
	if err != nil {
		return nil, opErrorf(opNew, fmt.Errorf("%w: %w", ErrConfiguration, err))
	}

	nt := NucleationThresholdForLevel(o.level)
	return &ZipTie{
		name:                   o.name,
		level:                  o.level,
		maxCables:              maxCables,
		maxBundles:             maxBundles,
		activityThreshold:      o.activityThreshold,
		nucleationThreshold:    nt,
		agglomerationThreshold: AgglomerationRatio * nt,
		onBundle:               o.onBundle,
		log:                    o.logger.With("name", o.name, "hierarchy_level", o.level),
		bundles:                bundlemap.New(),
		normalizer:             NewNormalizer(maxCables, o.activityThreshold),
		nucleationEnergy:       nucleation,
		agglomerationEnergy:    agglomeration,
		cableActivities:        make([]float64, maxCables),
		bundleActivities:       make([]float64, maxBundles),
		residual:               make([]float64, maxCables),
		bundleScale:            make([]float64, maxBundles),
	}, nil
}

// Step normalizes activities, computes bundle activities against the
// current bundle map and, unless the instance is full, lets nucleation and
// then agglomeration create at most one bundle each.
//
// activities may be shorter than the cable capacity (zero-padded).
// The returned slice has one slot per bundle capacity; unused slots are 0.
//
// Errors:
//   - ErrInvalidInput when len(activities) > capacity or any entry is
//     NaN/±Inf. The instance is left exactly as it was.
func (z *ZipTie) Step(activities []float64) ([]float64, error) {
	z.mu.Lock()
	defer z.mu.Unlock()

	cables, err := z.normalizer.Normalize(activities)
	if err != nil {
		return nil, opErrorf(opStep, err)
	}
	z.steps++
	z.cableActivities = cables
	z.featurize()

	if err = z.learn(); err != nil {
		return nil, opErrorf(opStep, err)
	}

	return slices.Clone(z.bundleActivities), nil
}

// featurize refreshes bundle activities, bundle scale and the residual.
func (z *ZipTie) featurize() {
	bundleActivities(z.bundles, z.cableActivities, z.bundleActivities)
	for b := 0; b < z.numBundles; b++ {
		z.bundleScale[b] = max(z.bundleScale[b], z.bundleActivities[b])
	}
	z.residual = residualActivities(z.cableActivities, z.activityThreshold)
}

// learn runs the two engines while bundle slots remain.
func (z *ZipTie) learn() error {
	if z.full {
		return nil
	}
	if err := z.nucleate(); err != nil {
		return err
	}
	if z.full {
		return nil
	}

	return z.grow()
}

// Project returns the cable indicator of bundle: 1 at each member cable,
// 0 elsewhere (length = cable capacity). Pure read.
//
// Errors:
//   - ErrCapacityExceeded when bundle is negative or ≥ BundleCount().
func (z *ZipTie) Project(bundle int) ([]float64, error) {
	z.mu.Lock()
	defer z.mu.Unlock()

	if bundle < 0 || bundle >= z.numBundles {
		return nil, opErrorf(opProject,
			fmt.Errorf("bundle %d of %d: %w", bundle, z.numBundles, ErrCapacityExceeded))
	}

	return z.bundles.Project(bundle, z.maxCables), nil
}

// IsFull reports whether every bundle slot is used. Once true, stays true.
func (z *ZipTie) IsFull() bool {
	z.mu.Lock()
	defer z.mu.Unlock()

	return z.full
}

// BundleCount returns the number of bundles created so far.
func (z *ZipTie) BundleCount() int {
	z.mu.Lock()
	defer z.mu.Unlock()

	return z.numBundles
}

// Steps returns the number of successful Step calls.
func (z *ZipTie) Steps() uint64 {
	z.mu.Lock()
	defer z.mu.Unlock()

	return z.steps
}

// Name returns the configured name.
func (z *ZipTie) Name() string { return z.name }

// Level returns the configured hierarchy level.
func (z *ZipTie) Level() int { return z.level }

// MaxCables returns the cable (and bundle) capacity.
func (z *ZipTie) MaxCables() int { return z.maxCables }

// NucleationThreshold returns 10·5^level.
func (z *ZipTie) NucleationThreshold() float64 { return z.nucleationThreshold }

// AgglomerationThreshold returns half the nucleation threshold.
func (z *ZipTie) AgglomerationThreshold() float64 { return z.agglomerationThreshold }
