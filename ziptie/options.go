// SPDX-License-Identifier: MIT

package ziptie

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ziptie/logging"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultName labels instances built without WithName.
	DefaultName = "anonymous"

	// DefaultLevel is the hierarchy position used without WithLevel.
	DefaultLevel = 0

	// DefaultActivityThreshold is the normalized activity below which a
	// cable is treated as silent.
	DefaultActivityThreshold = 0.1

	// BaseNucleationThreshold is the level-0 nucleation threshold; each
	// level up multiplies it by NucleationLevelFactor.
	BaseNucleationThreshold = 10.0

	// NucleationLevelFactor scales the nucleation threshold per level.
	NucleationLevelFactor = 5.0

	// AgglomerationRatio is agglomeration threshold / nucleation threshold.
	AgglomerationRatio = 0.5
)

// Option configures a ZipTie before creation.
type Option func(o *options)

// options is the resolved construction-time configuration.
type options struct {
	name              string
	level             int
	activityThreshold float64
	onBundle          func(BundleEvent)
	logger            *logging.Logger
}

// defaultOptions returns the zero-configuration settings.
func defaultOptions() options {
	return options{
		name:              DefaultName,
		level:             DefaultLevel,
		activityThreshold: DefaultActivityThreshold,
	}
}

// WithName sets the label used in logs, events and Describe output.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLevel sets the hierarchy level; higher levels need more evidence
// before creating bundles. New rejects negative levels.
func WithLevel(level int) Option {
	return func(o *options) { o.level = level }
}

// WithActivityThreshold overrides the sparsification threshold.
// New rejects values outside [0, 1] and non-finite values.
func WithActivityThreshold(th float64) Option {
	return func(o *options) { o.activityThreshold = th }
}

// WithOnBundle registers a hook called synchronously, inside Step, each
// time a bundle is created. The hook must not call back into the ZipTie.
func WithOnBundle(fn func(BundleEvent)) Option {
	return func(o *options) { o.onBundle = fn }
}

// WithLogger injects the logger used for bundle-creation events.
// A nil logger silences the instance.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = logging.Discard()
		}
		o.logger = l
	}
}

// validate checks the resolved options against the construction contract.
func (o options) validate(maxCables int) error {
	if maxCables <= 0 {
		return fmt.Errorf("max cables %d: %w", maxCables, ErrConfiguration)
	}
	if o.level < 0 {
		return fmt.Errorf("level %d: %w", o.level, ErrConfiguration)
	}
	th := o.activityThreshold
	if math.IsNaN(th) || th < 0 || th > 1 {
		return fmt.Errorf("activity threshold %v: %w", th, ErrConfiguration)
	}

	return nil
}

// NucleationThresholdForLevel returns 10·5^level.
func NucleationThresholdForLevel(level int) float64 {
	return BaseNucleationThreshold * math.Pow(NucleationLevelFactor, float64(level))
}
