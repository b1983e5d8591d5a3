package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/nutrisnap/internal/domain"
)

// WeightSnapshotStore persists the weight ledger as a whole-collection
// snapshot.
type WeightSnapshotStore interface {
	Load(ctx context.Context) ([]*domain.WeightObservation, error)
	Save(ctx context.Context, observations []*domain.WeightObservation) error
}

// WeightService owns the append-only weight ledger. Observations are stored
// in insertion order and sorted chronologically on read, so recording an old
// measurement late still lands in the right place in the trend.
type WeightService struct {
	mu           sync.Mutex
	observations []*domain.WeightObservation

	snapshots WeightSnapshotStore
	logger    *slog.Logger
}

// NewWeightService creates a weight service.
func NewWeightService(snapshots WeightSnapshotStore, logger *slog.Logger) (*WeightService, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("%w: weight snapshot store", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	return &WeightService{
		snapshots: snapshots,
		logger:    logger.With("component", "weight_service"),
	}, nil
}

// Load restores the persisted ledger.
func (s *WeightService) Load(ctx context.Context) error {
	observations, err := s.snapshots.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.observations = observations
	s.mu.Unlock()

	s.logger.Info("weight observations loaded", "count", len(observations))
	return nil
}

// Record appends a new observation to the ledger. Multiple observations on
// the same day are all kept; the ledger never overwrites.
func (s *WeightService) Record(ctx context.Context, observedOn domain.Day, kilograms float64) (*domain.WeightObservation, error) {
	observation, err := domain.NewWeightObservation(observedOn, kilograms)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.observations = append(s.observations, observation)
	err = s.snapshots.Save(ctx, s.observations)
	if err != nil {
		s.observations = s.observations[:len(s.observations)-1]
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.logger.Info("weight recorded",
		"observation_id", observation.ID,
		"observed_on", observation.ObservedOn,
		"kilograms", observation.Kilograms)
	return observation, nil
}

// Delete removes an observation from the ledger.
func (s *WeightService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	idx := -1
	for i, observation := range s.observations {
		if observation.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrObservationNotFound, id)
	}

	s.observations = append(s.observations[:idx], s.observations[idx+1:]...)
	err := s.snapshots.Save(ctx, s.observations)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.logger.Info("weight observation deleted", "observation_id", id)
	return nil
}

// Recent returns up to n observations ordered chronologically by observation
// day, most recent last. Same-day observations keep their insertion order,
// so the stable sort preserves measurement sequence within a day.
func (s *WeightService) Recent(n int) []*domain.WeightObservation {
	s.mu.Lock()
	sorted := make([]*domain.WeightObservation, len(s.observations))
	copy(sorted, s.observations)
	s.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ObservedOn.Before(sorted[j].ObservedOn)
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// Latest returns the most recent observation by observation day, or nil when
// the ledger is empty.
func (s *WeightService) Latest() *domain.WeightObservation {
	sorted := s.Recent(1)
	if len(sorted) == 0 {
		return nil
	}
	return sorted[0]
}

// LatestKilograms returns the most recent observed weight, falling back to
// the given profile weight when the ledger is empty.
func (s *WeightService) LatestKilograms(profileWeightKg float64) float64 {
	if latest := s.Latest(); latest != nil {
		return latest.Kilograms
	}
	return profileWeightKg
}
