package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"homestead/internal/app/ports"

	"github.com/redis/go-redis/v9"
)

type FarmCredentialRepo struct {
	store *Store
}

func NewFarmCredentialRepo(store *Store) FarmCredentialRepo {
	return FarmCredentialRepo{store: store}
}

func (r FarmCredentialRepo) Create(ctx context.Context, credential ports.FarmCredentialRecord) error {
	data, err := json.Marshal(credential)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	key := r.store.credentialKey(credential.FarmID)
	return r.store.submit(ctx, write{
		watch: []string{key},
		check: mustNotExist(key),
		apply: func(ctx context.Context, pipe redis.Pipeliner) {
			pipe.Set(ctx, key, data, 0)
		},
	})
}

func (r FarmCredentialRepo) GetByFarmID(ctx context.Context, farmID string) (ports.FarmCredentialRecord, error) {
	data, err := r.store.client.Get(ctx, r.store.credentialKey(farmID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.FarmCredentialRecord{}, ports.ErrNotFound
		}
		return ports.FarmCredentialRecord{}, err
	}
	var rec ports.FarmCredentialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return ports.FarmCredentialRecord{}, fmt.Errorf("decode credential %s: %w", farmID, err)
	}
	return rec, nil
}
