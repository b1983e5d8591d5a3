package domain

import (
	"time"

	"github.com/google/uuid"
)

// WeightObservation is a single weight measurement in the append-only weight
// ledger. Observations are immutable once created; the ledger orders them
// chronologically by ObservedOn with insertion order breaking ties.
type WeightObservation struct {
	ID         uuid.UUID `json:"id"`
	ObservedOn Day       `json:"observed_on"`
	Kilograms  float64   `json:"kilograms"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewWeightObservation creates a weight observation for the given day.
// Returns ErrNonPositiveWeight if kilograms is not strictly positive.
func NewWeightObservation(observedOn Day, kilograms float64) (*WeightObservation, error) {
	if kilograms <= 0 {
		return nil, ErrNonPositiveWeight
	}
	if err := observedOn.Validate(); err != nil {
		return nil, err
	}

	return &WeightObservation{
		ID:         uuid.New(),
		ObservedOn: observedOn,
		Kilograms:  kilograms,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Validate checks the observation's fields.
func (w *WeightObservation) Validate() error {
	if w.ID == uuid.Nil {
		return ErrInvalidInput
	}
	if w.Kilograms <= 0 {
		return ErrNonPositiveWeight
	}
	return w.ObservedOn.Validate()
}
