package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phrazzld/nutrisnap/internal/domain"
)

// WeightRepository round-trips the weight ledger through its storage key.
type WeightRepository struct {
	kv KV
}

// NewWeightRepository creates a repository backed by the given KV surface.
func NewWeightRepository(kv KV) *WeightRepository {
	return &WeightRepository{kv: kv}
}

// Load reads the persisted observations in insertion order.
func (r *WeightRepository) Load(ctx context.Context) ([]*domain.WeightObservation, error) {
	raw, err := r.kv.Get(ctx, keyWeights)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load weight ledger: %w", err)
	}

	var observations []*domain.WeightObservation
	if err := json.Unmarshal(raw, &observations); err != nil {
		return nil, fmt.Errorf("failed to decode weight ledger: %w", err)
	}
	return observations, nil
}

// Save overwrites the snapshot with the full ledger.
func (r *WeightRepository) Save(ctx context.Context, observations []*domain.WeightObservation) error {
	raw, err := json.Marshal(observations)
	if err != nil {
		return fmt.Errorf("failed to encode weight ledger: %w", err)
	}
	if err := r.kv.Put(ctx, keyWeights, raw); err != nil {
		return fmt.Errorf("failed to save weight ledger: %w", err)
	}
	return nil
}
