package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"homestead/internal/app/ports"

	"github.com/redis/go-redis/v9"
)

type ActionExecutionRepo struct {
	store *Store
}

func NewActionExecutionRepo(store *Store) ActionExecutionRepo {
	return ActionExecutionRepo{store: store}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, farmID, key string) (*ports.ActionExecutionRecord, error) {
	data, err := r.store.client.Get(ctx, r.store.execKey(farmID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var rec ports.ActionExecutionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode execution %s/%s: %w", farmID, key, err)
	}
	return &rec, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	data, err := json.Marshal(execution)
	if err != nil {
		return fmt.Errorf("encode execution: %w", err)
	}
	key := r.store.execKey(execution.FarmID, execution.IdempotencyKey)
	return r.store.submit(ctx, write{
		watch: []string{key},
		check: mustNotExist(key),
		apply: func(ctx context.Context, pipe redis.Pipeliner) {
			pipe.Set(ctx, key, data, 0)
		},
	})
}
