package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phrazzld/nutrisnap/internal/domain"
)

// MealRepository round-trips the meal entry collection through its storage
// key. The meal service owns the in-memory collection; this repository only
// loads it at startup and snapshots it after every mutation.
type MealRepository struct {
	kv KV
}

// NewMealRepository creates a repository backed by the given KV surface.
func NewMealRepository(kv KV) *MealRepository {
	return &MealRepository{kv: kv}
}

// Load reads the persisted entries in creation order. A never-written key
// yields an empty collection, not an error.
func (r *MealRepository) Load(ctx context.Context) ([]*domain.MealEntry, error) {
	raw, err := r.kv.Get(ctx, keyMeals)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load meal entries: %w", err)
	}

	var entries []*domain.MealEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode meal entries: %w", err)
	}
	return entries, nil
}

// Save overwrites the snapshot with the full collection.
func (r *MealRepository) Save(ctx context.Context, entries []*domain.MealEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode meal entries: %w", err)
	}
	if err := r.kv.Put(ctx, keyMeals, raw); err != nil {
		return fmt.Errorf("failed to save meal entries: %w", err)
	}
	return nil
}
