package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/nutrisnap/internal/domain"
	"github.com/phrazzld/nutrisnap/internal/events"
	"github.com/phrazzld/nutrisnap/internal/recognition"
)

// MealSnapshotStore persists the meal entry collection as a whole-collection
// snapshot.
type MealSnapshotStore interface {
	Load(ctx context.Context) ([]*domain.MealEntry, error)
	Save(ctx context.Context, entries []*domain.MealEntry) error
}

// MealService owns the meal entry collection and its analysis state machine.
// It is the only writer of entry status and results.
//
// Lifecycle per entry:
//
//	Pending --(recognition dispatched)--> Analyzing
//	Analyzing --(valid payload)---------> Analyzed(result = parsed)
//	Analyzing --(failure/invalid)-------> Analyzed(result = fallback)
//
// The second failure arrow means recognition failures never surface to
// readers, which always see a populated, plausible result. The failure stays
// visible to telemetry through the event emitter and the log.
//
// All mutations are serialized by a single mutex, giving the same guarantees
// as a single logical thread of control: the recognition call is the only
// concurrent operation, and its result is applied only if the entry still
// exists.
type MealService struct {
	mu      sync.Mutex
	entries []*domain.MealEntry

	snapshots MealSnapshotStore
	analyzer  recognition.Analyzer
	emitter   events.Emitter
	logger    *slog.Logger

	// inflight tracks dispatched recognition calls so Close can drain them.
	inflight sync.WaitGroup
}

// NewMealService creates a meal service. All dependencies are required.
func NewMealService(
	snapshots MealSnapshotStore,
	analyzer recognition.Analyzer,
	emitter events.Emitter,
	logger *slog.Logger,
) (*MealService, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("%w: meal snapshot store", ErrNilDependency)
	}
	if analyzer == nil {
		return nil, fmt.Errorf("%w: analyzer", ErrNilDependency)
	}
	if emitter == nil {
		return nil, fmt.Errorf("%w: event emitter", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	return &MealService{
		snapshots: snapshots,
		analyzer:  analyzer,
		emitter:   emitter,
		logger:    logger.With("component", "meal_service"),
	}, nil
}

// Load restores the persisted collection. Entries that were still pending or
// analyzing when the previous process stopped lost their in-flight calls, so
// their recognition is dispatched again.
func (s *MealService) Load(ctx context.Context) error {
	entries, err := s.snapshots.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries

	var interrupted []*domain.MealEntry
	for _, entry := range s.entries {
		if entry.Status == domain.StatusPending || entry.Status == domain.StatusAnalyzing {
			entry.Status = domain.StatusAnalyzing
			interrupted = append(interrupted, entry)
		}
	}
	s.mu.Unlock()

	if len(interrupted) > 0 {
		s.logger.Info("re-dispatching interrupted analyses", "count", len(interrupted))
		for _, entry := range interrupted {
			s.dispatch(entry.ID, entry.ImageRef)
		}
	}

	s.logger.Info("meal entries loaded", "count", len(entries))
	return nil
}

// AddEntry creates a new entry for the photographed meal and dispatches its
// recognition call without blocking the caller; the caller observes the
// outcome through the read model and the event emitter. Every call creates an
// independent entry: retries are explicit new entries, never deduplicated.
func (s *MealService) AddEntry(ctx context.Context, capturedOn domain.Day, imageRef string) (uuid.UUID, error) {
	entry, err := domain.NewMealEntry(capturedOn, imageRef)
	if err != nil {
		return uuid.Nil, err
	}

	// The pending state is transient: the recognition call is dispatched in
	// the same operation.
	entry.Status = domain.StatusAnalyzing

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	err = s.snapshots.Save(ctx, s.entries)
	if err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		s.mu.Unlock()
		return uuid.Nil, err
	}
	s.mu.Unlock()

	s.logger.Info("meal entry added", "entry_id", entry.ID, "captured_on", entry.CapturedOn)
	s.emitter.EmitEntryEvent(ctx, events.NewEntryEvent(events.EntryAdded, entry.ID))

	s.dispatch(entry.ID, entry.ImageRef)
	return entry.ID, nil
}

// RemoveEntry deletes an entry regardless of its current state. If its
// analysis is still in flight, the eventual result is discarded when it
// arrives; a removed entry is never resurrected.
func (s *MealService) RemoveEntry(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	err := s.snapshots.Save(ctx, s.entries)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.logger.Info("meal entry removed", "entry_id", id)
	s.emitter.EmitEntryEvent(ctx, events.NewEntryEvent(events.EntryRemoved, id))
	return nil
}

// ListEntries returns the entries in creation order. The returned slice is a
// copy; callers may not mutate entries through it.
func (s *MealService) ListEntries() []*domain.MealEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]*domain.MealEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Close drains in-flight recognition calls. Call on shutdown so late results
// are applied (or discarded) before the process exits.
func (s *MealService) Close() {
	s.inflight.Wait()
}

// dispatch starts the single recognition call for an entry. The call runs
// detached from the caller's context: the entry outlives the request that
// created it, and deletion-while-analyzing is handled by the existence check
// when the result arrives.
func (s *MealService) dispatch(id uuid.UUID, imageRef string) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		result, err := s.analyzer.Analyze(context.Background(), imageRef)
		s.applyResult(id, result, err)
	}()
}

// applyResult finalizes an entry once its recognition call completes. It runs
// under the service mutex like every other mutation, so completions are
// serialized with adds and removes regardless of arrival order.
func (s *MealService) applyResult(id uuid.UUID, result *domain.AnalysisResult, recErr error) {
	ctx := context.Background()

	// Defense in depth: analyzers validate their payloads, but the fallback
	// policy keys off "usable result", not "analyzer said ok".
	if recErr == nil && result != nil {
		if err := result.Validate(); err != nil {
			recErr = fmt.Errorf("%w: %v", recognition.ErrInvalidResponse, err)
		}
	} else if recErr == nil {
		recErr = fmt.Errorf("%w: nil result", recognition.ErrInvalidResponse)
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		// The entry was removed while its analysis was in flight. Drop the
		// result; the existence check doubles as cancellation.
		s.logger.Info("discarding recognition result for removed entry",
			"entry_id", id, "recognition_error", recErr)
		event := events.NewEntryEvent(events.ResultDiscarded, id)
		event.RecognitionErr = recErr
		s.emitter.EmitEntryEvent(ctx, event)
		return
	}

	entry := s.entries[idx]
	fallback := false
	if recErr != nil {
		// The aggregator always gets numeric data to sum, at the cost of
		// accuracy, and the user sees a
		// populated meal card instead of an error state.
		result = recognition.FallbackResult()
		fallback = true
	}

	entry.Status = domain.StatusAnalyzed
	entry.Result = result

	if err := s.snapshots.Save(ctx, s.entries); err != nil {
		s.logger.Error("failed to persist analyzed entry", "entry_id", id, "error", err)
	}
	s.mu.Unlock()

	if fallback {
		s.logger.Warn("recognition failed, fallback result substituted",
			"entry_id", id, "error", recErr)
	} else {
		s.logger.Info("meal entry analyzed", "entry_id", id, "foods", len(result.Foods))
	}

	event := events.NewEntryEvent(events.EntryAnalyzed, id)
	event.Fallback = fallback
	event.RecognitionErr = recErr
	s.emitter.EmitEntryEvent(ctx, event)
}

// indexLocked returns the position of id in the collection, or -1.
// Callers must hold the mutex.
func (s *MealService) indexLocked(id uuid.UUID) int {
	for i, entry := range s.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}
