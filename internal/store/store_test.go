package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/nutrisnap/internal/domain"
	"github.com/phrazzld/nutrisnap/internal/recognition"
)

// memKV is an in-memory KV for repository tests.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestMealRepositoryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMealRepository(newMemKV())

	// Missing key yields the zero collection.
	entries, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	pending, err := domain.NewMealEntry(domain.Day("2025-06-01"), "img-1")
	require.NoError(t, err)

	analyzed, err := domain.NewMealEntry(domain.Day("2025-06-01"), "img-2")
	require.NoError(t, err)
	analyzed.Status = domain.StatusAnalyzed
	analyzed.Result = recognition.FallbackResult()

	require.NoError(t, repo.Save(ctx, []*domain.MealEntry{pending, analyzed}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, pending.ID, loaded[0].ID)
	assert.Equal(t, domain.StatusPending, loaded[0].Status)
	assert.Nil(t, loaded[0].Result)

	assert.Equal(t, analyzed.ID, loaded[1].ID)
	require.NotNil(t, loaded[1].Result)
	assert.NoError(t, loaded[1].Validate(), "persisted entries must still satisfy invariants")
	assert.InDelta(t, 774, loaded[1].Result.TotalCalories, 0.001)
}

func TestWeightRepositoryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewWeightRepository(newMemKV())

	observations, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, observations)

	first, err := domain.NewWeightObservation(domain.Day("2025-06-01"), 80)
	require.NoError(t, err)
	second, err := domain.NewWeightObservation(domain.Day("2025-06-08"), 79.4)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, []*domain.WeightObservation{first, second}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, first.ID, loaded[0].ID)
	assert.InDelta(t, 79.4, loaded[1].Kilograms, 0.001)
}

func TestProfileRepositoryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewProfileRepository(newMemKV())

	profile, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile, "no profile before onboarding")

	saved := &domain.UserProfile{
		Name:            "Ana",
		HeightCm:        170,
		CurrentWeightKg: 70,
		TargetWeightKg:  63,
		AgeYears:        25,
		BiologicalSex:   domain.SexFemale,
	}
	require.NoError(t, repo.Save(ctx, saved))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *saved, *loaded)
}

func TestGoalRepositoryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewGoalRepository(newMemKV())

	goal, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, goal.Valid(), "unset goal must load as invalid zero")

	require.NoError(t, repo.Save(ctx, domain.CalorieGoal(1846)))

	goal, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CalorieGoal(1846), goal)
}

func TestRepositoriesUseDistinctKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := newMemKV()

	require.NoError(t, NewGoalRepository(kv).Save(ctx, 1500))
	require.NoError(t, NewProfileRepository(kv).Save(ctx, &domain.UserProfile{
		HeightCm: 170, CurrentWeightKg: 70, TargetWeightKg: 63, AgeYears: 25,
		BiologicalSex: domain.SexFemale,
	}))
	require.NoError(t, NewMealRepository(kv).Save(ctx, nil))
	require.NoError(t, NewWeightRepository(kv).Save(ctx, nil))

	assert.Len(t, kv.data, 4, "each entity type owns its own storage key")
}
