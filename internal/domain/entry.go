package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryStatus represents the analysis lifecycle state of a meal entry.
type EntryStatus string

// Possible entry status values. The meal entry store substitutes a fallback
// result on recognition failure, so StatusFailed is defined for completeness
// of the lifecycle but is never exposed to readers by the store.
const (
	StatusPending   EntryStatus = "pending"
	StatusAnalyzing EntryStatus = "analyzing"
	StatusAnalyzed  EntryStatus = "analyzed"
	StatusFailed    EntryStatus = "failed"
)

// MealEntry is a single photographed meal and its analysis lifecycle.
// The meal entry store is the exclusive owner and the only writer of
// Status and Result.
type MealEntry struct {
	ID         uuid.UUID       `json:"id"`
	CapturedOn Day             `json:"captured_on"`
	ImageRef   string          `json:"image_ref"`
	Status     EntryStatus     `json:"status"`
	Result     *AnalysisResult `json:"result,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewMealEntry creates a pending meal entry for the given day and image
// reference. The image reference is opaque to the core (a URL or data blob
// reference); pixel data is never inspected here.
// Returns ErrEmptyImageRef if the reference is empty.
func NewMealEntry(capturedOn Day, imageRef string) (*MealEntry, error) {
	if imageRef == "" {
		return nil, ErrEmptyImageRef
	}
	if err := capturedOn.Validate(); err != nil {
		return nil, err
	}

	return &MealEntry{
		ID:         uuid.New(),
		CapturedOn: capturedOn,
		ImageRef:   imageRef,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Validate checks the entry's fields and the result/status invariant:
// Result is nil exactly while the entry is pending or analyzing.
func (e *MealEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrInvalidInput
	}
	if e.ImageRef == "" {
		return ErrEmptyImageRef
	}
	if err := e.CapturedOn.Validate(); err != nil {
		return err
	}
	if !isValidEntryStatus(e.Status) {
		return ErrInvalidEntryStatus
	}

	switch e.Status {
	case StatusPending, StatusAnalyzing:
		if e.Result != nil {
			return ErrResultStatusMismatch
		}
	default:
		if e.Result == nil {
			return ErrResultStatusMismatch
		}
		if err := e.Result.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Analyzed reports whether the entry holds a usable analysis result.
func (e *MealEntry) Analyzed() bool {
	return e.Status == StatusAnalyzed && e.Result != nil
}

func isValidEntryStatus(status EntryStatus) bool {
	switch status {
	case StatusPending, StatusAnalyzing, StatusAnalyzed, StatusFailed:
		return true
	default:
		return false
	}
}
