package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"homestead/internal/app/ports"

	"github.com/redis/go-redis/v9"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, farmID string, events []ports.EventRecord) error {
	if len(events) == 0 {
		return nil
	}
	values := make([]any, 0, len(events))
	for _, e := range events {
		e.FarmID = farmID
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", e.Type, err)
		}
		values = append(values, b)
	}
	key := r.store.eventsKey(farmID)
	return r.store.submit(ctx, write{
		apply: func(ctx context.Context, pipe redis.Pipeliner) {
			pipe.RPush(ctx, key, values...)
		},
	})
}

func (r EventRepo) ListByFarmID(ctx context.Context, farmID string, limit int) ([]ports.EventRecord, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	raw, err := r.store.client.LRange(ctx, r.store.eventsKey(farmID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list events %s: %w", farmID, err)
	}
	out := make([]ports.EventRecord, 0, len(raw))
	for _, s := range raw {
		var e ports.EventRecord
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
