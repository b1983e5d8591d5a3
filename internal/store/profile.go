package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phrazzld/nutrisnap/internal/domain"
)

// ProfileRepository round-trips the user profile singleton through its
// storage key.
type ProfileRepository struct {
	kv KV
}

// NewProfileRepository creates a repository backed by the given KV surface.
func NewProfileRepository(kv KV) *ProfileRepository {
	return &ProfileRepository{kv: kv}
}

// Load reads the persisted profile. Returns nil when onboarding has never
// completed.
func (r *ProfileRepository) Load(ctx context.Context) (*domain.UserProfile, error) {
	raw, err := r.kv.Get(ctx, keyProfile)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// Save overwrites the profile snapshot.
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := r.kv.Put(ctx, keyProfile, raw); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GoalRepository round-trips the calorie goal scalar through its storage key.
type GoalRepository struct {
	kv KV
}

// NewGoalRepository creates a repository backed by the given KV surface.
func NewGoalRepository(kv KV) *GoalRepository {
	return &GoalRepository{kv: kv}
}

// Load reads the persisted goal. Returns zero (an invalid goal) when none
// has been set.
func (r *GoalRepository) Load(ctx context.Context) (domain.CalorieGoal, error) {
	raw, err := r.kv.Get(ctx, keyGoal)
	if errors.Is(err, ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load calorie goal: %w", err)
	}

	var goal domain.CalorieGoal
	if err := json.Unmarshal(raw, &goal); err != nil {
		return 0, fmt.Errorf("failed to decode calorie goal: %w", err)
	}
	return goal, nil
}

// Save overwrites the goal snapshot.
func (r *GoalRepository) Save(ctx context.Context, goal domain.CalorieGoal) error {
	raw, err := json.Marshal(goal)
	if err != nil {
		return fmt.Errorf("failed to encode calorie goal: %w", err)
	}
	if err := r.kv.Put(ctx, keyGoal, raw); err != nil {
		return fmt.Errorf("failed to save calorie goal: %w", err)
	}
	return nil
}
