package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the blueprint slot in a Redis hash and announces every write
// on the workspace's events channel.
// The store is thread-safe and can be used concurrently from multiple goroutines.
type RedisStore struct {
	rdb       *redis.Client
	workspace string
	now       func() time.Time
}

// NewRedisStore creates a store for the given workspace.
// Returns an error if workspace is empty.
func NewRedisStore(redisOpts *redis.Options, workspace string) (*RedisStore, error) {
	if workspace == "" {
		return nil, fmt.Errorf("workspace cannot be empty")
	}

	return &RedisStore{
		rdb:       redis.NewClient(redisOpts),
		workspace: workspace,
		now:       time.Now,
	}, nil
}

// Close closes the Redis connection. After calling Close(), the store should not be used.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Load reads the blueprint from architect:{workspace}:blueprint.
func (s *RedisStore) Load(ctx context.Context) (blueprint.Blueprint, error) {
	data, err := s.rdb.HGet(ctx, BlueprintKey(s.workspace), fieldBlueprint).Result()
	if errors.Is(err, redis.Nil) {
		return blueprint.Default(), nil
	}
	if err != nil {
		return blueprint.Blueprint{}, fmt.Errorf("failed to read blueprint from Redis: %w", err)
	}

	bp, err := blueprint.Parse([]byte(data))
	if err != nil {
		return blueprint.Blueprint{}, fmt.Errorf("stored blueprint is corrupt: %w", err)
	}
	return bp, nil
}

// Save validates and writes the blueprint, bumps the revision in the same
// transaction and publishes the new revision.
func (s *RedisStore) Save(ctx context.Context, bp blueprint.Blueprint) error {
	if err := bp.Validate(); err != nil {
		return fmt.Errorf("invalid blueprint: %w", err)
	}

	data, err := blueprint.Marshal(bp)
	if err != nil {
		return fmt.Errorf("failed to serialize blueprint: %w", err)
	}

	key := BlueprintKey(s.workspace)
	updatedAt := s.now().UnixMilli()

	var revision *redis.IntCmd
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldBlueprint, string(data), fieldUpdatedAtMs, updatedAt)
		revision = pipe.HIncrBy(ctx, key, fieldRevision, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write blueprint to Redis: %w", err)
	}

	event, err := json.Marshal(Event{Revision: revision.Val(), UpdatedAtMs: updatedAt})
	if err != nil {
		return fmt.Errorf("failed to marshal blueprint event: %w", err)
	}

	if err := s.rdb.Publish(ctx, BlueprintEventsChannel(s.workspace), event).Err(); err != nil {
		return fmt.Errorf("failed to publish blueprint event: %w", err)
	}

	return nil
}

// Reset overwrites the slot with the default blueprint.
func (s *RedisStore) Reset(ctx context.Context) (blueprint.Blueprint, error) {
	bp := blueprint.Default()
	if err := s.Save(ctx, bp); err != nil {
		return blueprint.Blueprint{}, err
	}
	return bp, nil
}

// Revision returns the number of writes to the slot, or 0 when it was never written.
func (s *RedisStore) Revision(ctx context.Context) (int64, error) {
	raw, err := s.rdb.HGet(ctx, BlueprintKey(s.workspace), fieldRevision).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read revision from Redis: %w", err)
	}

	rev, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid revision %q: %w", raw, err)
	}
	return rev, nil
}

// Subscription represents an active Pub/Sub subscription to blueprint events.
type Subscription struct {
	events <-chan Event
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of revision events.
// The channel is closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Errors returns the channel of decode errors. Bad messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call more than once.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Subscribe listens for revision events of this workspace. The subscription is
// confirmed by Redis before Subscribe returns, so writes made afterwards are seen.
//
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once, so a slow subscriber can miss events; watchers re-read the
// revision rather than trusting the event count.
func (s *RedisStore) Subscribe(ctx context.Context) (*Subscription, error) {
	pubsub := s.rdb.Subscribe(ctx, BlueprintEventsChannel(s.workspace))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to blueprint events: %w", err)
	}

	eventsChan := make(chan Event, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal blueprint event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}
