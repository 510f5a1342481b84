// SPDX-License-Identifier: MIT

package ziptie

import (
	"errors"
	"fmt"
)

// Sentinel errors for ziptie operations. All are local and synchronous;
// a call that returns one of them has not modified the instance.
var (
	// ErrInvalidInput indicates an activity vector longer than the cable
	// capacity, or one holding NaN/±Inf.
	ErrInvalidInput = errors.New("ziptie: invalid input")

	// ErrCapacityExceeded indicates a bundle index outside [0, BundleCount())
	// or a broken internal invariant.
	ErrCapacityExceeded = errors.New("ziptie: capacity exceeded")

	// ErrConfiguration indicates a non-positive capacity, a negative level
	// or an activity threshold outside [0, 1].
	ErrConfiguration = errors.New("ziptie: invalid configuration")
)

// Operation tags for error wrapping.
const (
	opNew       = "New"
	opStep      = "Step"
	opProject   = "Project"
	opNormalize = "Normalize"
	opNucleate  = "nucleate"
	opGrow      = "grow"
)

// opErrorf wraps err with the operation tag.
func opErrorf(op string, err error) error {
	return fmt.Errorf("ziptie.%s: %w", op, err)
}

// invariantErrorf reports a kernel failure that valid state cannot produce.
func invariantErrorf(op string, err error) error {
	return fmt.Errorf("ziptie.%s: %w: %w", op, ErrCapacityExceeded, err)
}
