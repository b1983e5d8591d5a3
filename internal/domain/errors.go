package domain

import (
	"errors"
	"fmt"
)

// Top-level error taxonomy. Operations reject ErrInvalidInput before any side
// effects; ErrInvalidConfiguration is surfaced to the caller and never
// auto-corrected. Recognition failures have their own taxonomy in the
// recognition package and are absorbed by the meal entry store.
var (
	// ErrInvalidInput is returned when a caller supplies malformed or missing
	// required data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfiguration is returned when a stored or supplied setting
	// (e.g. a non-positive calorie goal) cannot be used for computation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Specific validation errors. Each wraps ErrInvalidInput so callers can match
// either the precise condition or the taxonomy umbrella.
var (
	// ErrEmptyImageRef is returned when a meal entry is created without an
	// image reference.
	ErrEmptyImageRef = fmt.Errorf("%w: image reference cannot be empty", ErrInvalidInput)

	// ErrEmptyFoodName is returned when a food item has no name. The
	// recognition contract requires specific, non-generic names, so an empty
	// name always indicates a malformed payload.
	ErrEmptyFoodName = fmt.Errorf("%w: food item name cannot be empty", ErrInvalidInput)

	// ErrNegativeNutrient is returned when a food item carries a negative
	// calorie, macro, or weight value.
	ErrNegativeNutrient = fmt.Errorf("%w: nutrient values cannot be negative", ErrInvalidInput)

	// ErrTotalsMismatch is returned when an analysis result's aggregate totals
	// do not reconcile with the sum of its per-item values.
	ErrTotalsMismatch = fmt.Errorf("%w: analysis totals do not match item sums", ErrInvalidInput)

	// ErrResultStatusMismatch is returned when a meal entry carries a result
	// while still pending or analyzing, or lacks one after analysis finished.
	ErrResultStatusMismatch = fmt.Errorf("%w: analysis result inconsistent with entry status", ErrInvalidInput)

	// ErrInvalidEntryStatus is returned when a meal entry status is not one of
	// the defined lifecycle states.
	ErrInvalidEntryStatus = fmt.Errorf("%w: invalid meal entry status", ErrInvalidInput)

	// ErrNonPositiveWeight is returned when a weight observation is not
	// strictly positive.
	ErrNonPositiveWeight = fmt.Errorf("%w: weight must be greater than zero", ErrInvalidInput)

	// ErrInvalidDay is returned when a calendar date cannot be parsed.
	ErrInvalidDay = fmt.Errorf("%w: invalid calendar day", ErrInvalidInput)
)
