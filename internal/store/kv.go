// Package store persists the application's state as per-entity-type
// snapshots on an opaque key-value surface. Each repository owns a single
// storage key and writes whole-collection overwrites; there is one writer,
// so last-writer-wins needs no merge semantics.
package store

import (
	"context"
	"errors"
)

// Storage keys, one per entity type.
const (
	keyMeals   = "nutrisnap/meals"
	keyWeights = "nutrisnap/weights"
	keyProfile = "nutrisnap/profile"
	keyGoal    = "nutrisnap/calorie_goal"
)

// ErrKeyNotFound is returned by KV implementations when a key has never been
// written. Repositories translate it into an empty collection.
var ErrKeyNotFound = errors.New("key not found")

// KV is the minimal key-value surface the snapshot repositories are built on.
// Implementations must make Put a synchronous, atomic overwrite of the key.
type KV interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
