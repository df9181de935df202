package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"homestead/internal/app/ports"

	"github.com/redis/go-redis/v9"
)

type FarmStateRepo struct {
	store *Store
}

func NewFarmStateRepo(store *Store) FarmStateRepo {
	return FarmStateRepo{store: store}
}

func (r FarmStateRepo) GetByFarmID(ctx context.Context, farmID string) (ports.FarmState, error) {
	data, err := r.store.client.Get(ctx, r.store.stateKey(farmID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.FarmState{}, ports.ErrNotFound
		}
		return ports.FarmState{}, fmt.Errorf("load farm %s: %w", farmID, err)
	}
	var state ports.FarmState
	if err := json.Unmarshal(data, &state); err != nil {
		return ports.FarmState{}, fmt.Errorf("decode farm %s: %w", farmID, err)
	}
	return state, nil
}

func (r FarmStateRepo) SaveWithVersion(ctx context.Context, state ports.FarmState, expectedVersion int64) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode farm %s: %w", state.FarmID, err)
	}
	key := r.store.stateKey(state.FarmID)
	return r.store.submit(ctx, write{
		watch: []string{key},
		check: func(ctx context.Context, tx *redis.Tx) error {
			current, err := storedVersion(ctx, tx, key)
			if err != nil {
				return err
			}
			if current != expectedVersion {
				return ports.ErrConflict
			}
			return nil
		},
		apply: func(ctx context.Context, pipe redis.Pipeliner) {
			pipe.Set(ctx, key, data, 0)
		},
	})
}

// storedVersion returns zero for a missing farm.
func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var head struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0, fmt.Errorf("decode version: %w", err)
	}
	return head.Version, nil
}
