// Package store persists the single blueprint slot of a workspace.
//
// Two backends implement Store: a JSON file on local disk and a Redis hash. An
// empty slot is not an error; Load returns the canonical default blueprint.
// Every successful Save or Reset advances the slot's revision, which watchers
// use to detect changes.
package store

import (
	"context"
	"fmt"

	"github.com/dyluth/architect/internal/config"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/redis/go-redis/v9"
)

// Store is the persisted blueprint slot.
type Store interface {
	// Load returns the stored blueprint, or blueprint.Default() when the slot is empty.
	Load(ctx context.Context) (blueprint.Blueprint, error)
	// Save validates bp and overwrites the slot.
	Save(ctx context.Context, bp blueprint.Blueprint) error
	// Reset overwrites the slot with the default blueprint and returns it.
	Reset(ctx context.Context) (blueprint.Blueprint, error)
	// Revision returns a value that changes on every write. 0 means the slot is empty.
	Revision(ctx context.Context) (int64, error)
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Subscriber is implemented by backends that push change notifications.
type Subscriber interface {
	Subscribe(ctx context.Context) (*Subscription, error)
}

// Event announces a new revision of the blueprint slot.
type Event struct {
	Revision    int64 `json:"revision"`
	UpdatedAtMs int64 `json:"updated_at_ms"`
}

// Open creates the backend selected by cfg.Store.Backend.
func Open(cfg *config.ArchitectConfig) (Store, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Store.Path), nil
	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.Store.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis_url: %w", err)
		}
		return NewRedisStore(opts, cfg.Workspace)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// Apply loads the blueprint, applies edit and saves the result.
// Nothing is written when edit returns an error.
func Apply(ctx context.Context, s Store, edit func(blueprint.Blueprint) (blueprint.Blueprint, error)) (blueprint.Blueprint, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return blueprint.Blueprint{}, err
	}

	updated, err := edit(current)
	if err != nil {
		return blueprint.Blueprint{}, err
	}

	if err := s.Save(ctx, updated); err != nil {
		return blueprint.Blueprint{}, err
	}
	return updated, nil
}
