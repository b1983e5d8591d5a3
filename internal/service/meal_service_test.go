package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/phrazzld/nutrisnap/internal/domain"
	"github.com/phrazzld/nutrisnap/internal/events"
	"github.com/phrazzld/nutrisnap/internal/recognition"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// memSnapshots is an in-memory MealSnapshotStore.
type memSnapshots struct {
	mu      sync.Mutex
	entries []*domain.MealEntry
	failOn  error
	saves   int
}

func (s *memSnapshots) Load(_ context.Context) ([]*domain.MealEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.MealEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *memSnapshots) Save(_ context.Context, entries []*domain.MealEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != nil {
		return s.failOn
	}
	s.saves++
	s.entries = make([]*domain.MealEntry, len(entries))
	copy(s.entries, entries)
	return nil
}

// gatedAnalyzer blocks each Analyze call until the test releases it, so tests
// control exactly when results arrive relative to other operations.
type gatedAnalyzer struct {
	gate    chan struct{}
	result  *domain.AnalysisResult
	err     error
	mu      sync.Mutex
	calls   int
	lastRef string
}

func newGatedAnalyzer() *gatedAnalyzer {
	return &gatedAnalyzer{gate: make(chan struct{})}
}

func (a *gatedAnalyzer) Analyze(_ context.Context, imageRef string) (*domain.AnalysisResult, error) {
	a.mu.Lock()
	a.calls++
	a.lastRef = imageRef
	a.mu.Unlock()
	<-a.gate
	return a.result, a.err
}

func (a *gatedAnalyzer) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// captureHandler records every event it receives and signals arrivals.
type captureHandler struct {
	mu      sync.Mutex
	events  []*events.EntryEvent
	arrived chan events.EventKind
}

func newCaptureHandler() *captureHandler {
	return &captureHandler{arrived: make(chan events.EventKind, 16)}
}

func (h *captureHandler) HandleEntryEvent(_ context.Context, event *events.EntryEvent) error {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	h.arrived <- event.Kind
	return nil
}

func (h *captureHandler) waitFor(t *testing.T, kind events.EventKind) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-h.arrived:
			if got == kind {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", kind)
		}
	}
}

func (h *captureHandler) find(kind events.EventKind) *events.EntryEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, event := range h.events {
		if event.Kind == kind {
			return event
		}
	}
	return nil
}

func validResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Foods: []domain.FoodItem{
			{Name: "Grilled chicken breast", Calories: 165, CarbsGrams: 0, ProteinGrams: 31, FatGrams: 3.6, WeightGrams: 100},
		},
		TotalCalories: 165,
		TotalCarbs:    0,
		TotalProtein:  31,
		TotalFat:      3.6,
	}
}

func newTestService(t *testing.T, analyzer recognition.Analyzer) (*MealService, *memSnapshots, *captureHandler) {
	t.Helper()
	snapshots := &memSnapshots{}
	handler := newCaptureHandler()
	emitter := events.NewInMemoryEmitter(discardLogger())
	emitter.RegisterHandler(handler)
	svc, err := NewMealService(snapshots, analyzer, emitter, discardLogger())
	require.NoError(t, err)
	return svc, snapshots, handler
}

func TestNewMealService_NilDependencies(t *testing.T) {
	analyzer := newGatedAnalyzer()
	emitter := events.NewInMemoryEmitter(discardLogger())
	logger := discardLogger()

	_, err := NewMealService(nil, analyzer, emitter, logger)
	assert.ErrorIs(t, err, ErrNilDependency)

	_, err = NewMealService(&memSnapshots{}, nil, emitter, logger)
	assert.ErrorIs(t, err, ErrNilDependency)

	_, err = NewMealService(&memSnapshots{}, analyzer, nil, logger)
	assert.ErrorIs(t, err, ErrNilDependency)

	_, err = NewMealService(&memSnapshots{}, analyzer, emitter, nil)
	assert.ErrorIs(t, err, ErrNilDependency)
}

func TestMealService_AddEntry_AnalyzesAsynchronously(t *testing.T) {
	analyzer := newGatedAnalyzer()
	analyzer.result = validResult()
	svc, snapshots, handler := newTestService(t, analyzer)
	defer svc.Close()

	id, err := svc.AddEntry(context.Background(), domain.Day("2026-08-28"), "https://img.example/meal.jpg")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	// The call has not returned yet, so the entry reads as analyzing.
	entries := svc.ListEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.StatusAnalyzing, entries[0].Status)
	assert.Nil(t, entries[0].Result)
	handler.waitFor(t, events.EntryAdded)

	close(analyzer.gate)
	handler.waitFor(t, events.EntryAnalyzed)

	entries = svc.ListEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.StatusAnalyzed, entries[0].Status)
	require.NotNil(t, entries[0].Result)
	assert.InDelta(t, 165, entries[0].Result.TotalCalories, 0.001)

	event := handler.find(events.EntryAnalyzed)
	require.NotNil(t, event)
	assert.Equal(t, id, event.EntryID)
	assert.False(t, event.Fallback)
	assert.NoError(t, event.RecognitionErr)

	// Both the add and the completion were persisted.
	snapshots.mu.Lock()
	saves := snapshots.saves
	snapshots.mu.Unlock()
	assert.Equal(t, 2, saves)
}

func TestMealService_AddEntry_InvalidInput(t *testing.T) {
	analyzer := newGatedAnalyzer()
	close(analyzer.gate)
	svc, _, _ := newTestService(t, analyzer)
	defer svc.Close()

	_, err := svc.AddEntry(context.Background(), domain.Day("2026-08-28"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AddEntry(context.Background(), domain.Day("not-a-day"), "https://img.example/meal.jpg")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, svc.ListEntries())
	assert.Zero(t, analyzer.callCount())
}

func TestMealService_AddEntry_SaveFailureRollsBack(t *testing.T) {
	analyzer := newGatedAnalyzer()
	close(analyzer.gate)
	snapshots := &memSnapshots{failOn: errors.New("disk full")}
	emitter := events.NewInMemoryEmitter(discardLogger())
	svc, err := NewMealService(snapshots, analyzer, emitter, discardLogger())
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.AddEntry(context.Background(), domain.Day("2026-08-28"), "https://img.example/meal.jpg")
	require.Error(t, err)
	assert.Empty(t, svc.ListEntries())
	assert.Zero(t, analyzer.callCount())
}

func TestMealService_RecognitionFailure_SubstitutesFallback(t *testing.T) {
	analyzer := newGatedAnalyzer()
	analyzer.err = fmt.Errorf("%w: upstream returned 500", recognition.ErrTransportFailure)
	svc, _, handler := newTestService(t, analyzer)
	defer svc.Close()

	id, err := svc.AddEntry(context.Background(), domain.Day("2026-08-28"), "https://img.example/meal.jpg")
	require.NoError(t, err)

	close(analyzer.gate)
	handler.waitFor(t, events.EntryAnalyzed)

	entries := svc.ListEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.StatusAnalyzed, entries[0].Status)
	require.NotNil(t, entries[0].Result)

	// The fallback carries the full fixed plate, not an empty result.
	want := recognition.FallbackResult()
	assert.Equal(t, len(want.Foods), len(entries[0].Result.Foods))
	assert.InDelta(t, want.TotalCalories, entries[0].Result.TotalCalories, 0.001)

	event := handler.find(events.EntryAnalyzed)
	require.NotNil(t, event)
	assert.Equal(t, id, event.EntryID)
	assert.True(t, event.Fallback)
	assert.ErrorIs(t, event.RecognitionErr, recognition.ErrRecognition)
}

func TestMealService_InvalidResult_SubstitutesFallback(t *testing.T) {
	analyzer := newGatedAnalyzer()
	// Totals that do not reconcile with the item list.
	analyzer.result = &domain.AnalysisResult{
		Foods:         []domain.FoodItem{{Name: "Rice", Calories: 130, WeightGrams: 100}},
		TotalCalories: 999,
	}
	svc, _, handler := newTestService(t, analyzer)
	defer svc.Close()

	_, err := svc.AddEntry(context.Background(), domain.Day("2026-08-28"), "https://img.example/meal.jpg")
	require.NoError(t, err)

	close(analyzer.gate)
	handler.waitFor(t, events.EntryAnalyzed)

	event := handler.find(events.EntryAnalyzed)
	require.NotNil(t, event)
	assert.True(t, event.Fallback)
	assert.ErrorIs(t, event.RecognitionErr, recognition.ErrInvalidResponse)
}

func TestMealService_RemoveWhileAnalyzing_DiscardsResult(t *testing.T) {
	analyzer := newGatedAnalyzer()
	analyzer.result = validResult()
	svc, _, handler := newTestService(t, analyzer)
	defer svc.Close()

	id, err := svc.AddEntry(context.Background(), domain.Day("2026-08-28"), "https://img.example/meal.jpg")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveEntry(context.Background(), id))
	assert.Empty(t, svc.ListEntries())

	// The result arrives after the delete and must not resurrect the entry.
	close(analyzer.gate)
	handler.waitFor(t, events.ResultDiscarded)

	assert.Empty(t, svc.ListEntries())
	event := handler.find(events.ResultDiscarded)
	require.NotNil(t, event)
	assert.Equal(t, id, event.EntryID)
	assert.Nil(t, handler.find(events.EntryAnalyzed))
}

func TestMealService_RemoveEntry_NotFound(t *testing.T) {
	analyzer := newGatedAnalyzer()
	close(analyzer.gate)
	svc, _, _ := newTestService(t, analyzer)
	defer svc.Close()

	err := svc.RemoveEntry(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestMealService_ListEntries_CreationOrder(t *testing.T) {
	analyzer := newGatedAnalyzer()
	analyzer.result = validResult()
	close(analyzer.gate)
	svc, _, _ := newTestService(t, analyzer)
	defer svc.Close()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		id, err := svc.AddEntry(context.Background(), domain.Day("2026-08-28"),
			fmt.Sprintf("https://img.example/meal-%d.jpg", i))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	entries := svc.ListEntries()
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, ids[i], entry.ID)
	}
}

func TestMealService_Load_RedispatchesInterruptedAnalyses(t *testing.T) {
	interrupted := &domain.MealEntry{
		ID:         uuid.New(),
		CapturedOn: domain.Day("2026-08-27"),
		ImageRef:   "https://img.example/stuck.jpg",
		Status:     domain.StatusAnalyzing,
		CreatedAt:  time.Now().UTC().Add(-time.Hour),
	}
	settled := &domain.MealEntry{
		ID:         uuid.New(),
		CapturedOn: domain.Day("2026-08-27"),
		ImageRef:   "https://img.example/done.jpg",
		Status:     domain.StatusAnalyzed,
		Result:     validResult(),
		CreatedAt:  time.Now().UTC().Add(-2 * time.Hour),
	}
	snapshots := &memSnapshots{entries: []*domain.MealEntry{settled, interrupted}}

	analyzer := newGatedAnalyzer()
	analyzer.result = validResult()
	handler := newCaptureHandler()
	emitter := events.NewInMemoryEmitter(discardLogger())
	emitter.RegisterHandler(handler)
	svc, err := NewMealService(snapshots, analyzer, emitter, discardLogger())
	require.NoError(t, err)
	defer svc.Close()

	require.NoError(t, svc.Load(context.Background()))

	close(analyzer.gate)
	handler.waitFor(t, events.EntryAnalyzed)

	assert.Equal(t, 1, analyzer.callCount())
	assert.Equal(t, "https://img.example/stuck.jpg", analyzer.lastRef)

	entries := svc.ListEntries()
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, domain.StatusAnalyzed, entry.Status)
	}
}
