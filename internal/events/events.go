// Package events provides the notification channel between the meal entry
// store and its collaborators (UI read models, telemetry). The store emits an
// event on every entry lifecycle transition; handlers subscribe without the
// store knowing who they are, which keeps recognition failures visible to
// telemetry even though the fallback policy hides them from aggregation.
package events

import (
	"time"

	"github.com/google/uuid"
)

// EventKind identifies the lifecycle transition an event describes.
type EventKind string

// Entry lifecycle events.
const (
	// EntryAdded fires when a new entry is created and its recognition call
	// dispatched.
	EntryAdded EventKind = "entry.added"

	// EntryAnalyzed fires when an entry reaches its terminal analyzed state,
	// whether from a real recognition result or the fallback substitution.
	EntryAnalyzed EventKind = "entry.analyzed"

	// EntryRemoved fires when an entry is deleted.
	EntryRemoved EventKind = "entry.removed"

	// ResultDiscarded fires when a recognition result arrives for an entry
	// that was removed while the call was in flight. The result is dropped;
	// the entry is never resurrected.
	ResultDiscarded EventKind = "entry.result_discarded"
)

// EntryEvent describes a single lifecycle transition of a meal entry.
type EntryEvent struct {
	// ID uniquely identifies this event instance.
	ID uuid.UUID

	// Kind is the lifecycle transition.
	Kind EventKind

	// EntryID is the meal entry the event concerns.
	EntryID uuid.UUID

	// Fallback is true on EntryAnalyzed when the result is the fixed
	// fallback rather than a real recognition payload.
	Fallback bool

	// RecognitionErr carries the recognition failure that triggered a
	// fallback or a discard, for telemetry. Nil on success paths.
	RecognitionErr error

	// OccurredAt is when the transition happened.
	OccurredAt time.Time
}

// NewEntryEvent creates an event for the given transition.
func NewEntryEvent(kind EventKind, entryID uuid.UUID) *EntryEvent {
	return &EntryEvent{
		ID:         uuid.New(),
		Kind:       kind,
		EntryID:    entryID,
		OccurredAt: time.Now().UTC(),
	}
}
