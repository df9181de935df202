package redisrepo

import (
	"context"
	"errors"
	"fmt"

	"homestead/internal/app/ports"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "homestead"

// Store holds the client shared by the redis repositories.
type Store struct {
	client *redis.Client
	prefix string
}

func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func Open(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func (s *Store) stateKey(farmID string) string {
	return s.prefix + ":farm:" + farmID + ":state"
}

func (s *Store) eventsKey(farmID string) string {
	return s.prefix + ":farm:" + farmID + ":events"
}

func (s *Store) execKey(farmID, key string) string {
	return s.prefix + ":farm:" + farmID + ":exec:" + key
}

func (s *Store) credentialKey(farmID string) string {
	return s.prefix + ":credential:" + farmID
}

// write is one guarded mutation: check runs against watched keys before
// apply is queued into MULTI/EXEC.
type write struct {
	watch []string
	check func(ctx context.Context, tx *redis.Tx) error
	apply func(ctx context.Context, pipe redis.Pipeliner)
}

type txKey struct{}

type txBuffer struct {
	store  *Store
	writes []write
}

func bufferFromContext(ctx context.Context, s *Store) *txBuffer {
	buf, ok := ctx.Value(txKey{}).(*txBuffer)
	if !ok || buf.store != s {
		return nil
	}
	return buf
}

func (s *Store) submit(ctx context.Context, w write) error {
	if buf := bufferFromContext(ctx, s); buf != nil {
		buf.writes = append(buf.writes, w)
		return nil
	}
	return s.commit(ctx, []write{w})
}

func (s *Store) commit(ctx context.Context, writes []write) error {
	if len(writes) == 0 {
		return nil
	}
	var keys []string
	for _, w := range writes {
		keys = append(keys, w.watch...)
	}
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		for _, w := range writes {
			if w.check == nil {
				continue
			}
			if err := w.check(ctx, tx); err != nil {
				return err
			}
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, w := range writes {
				w.apply(ctx, pipe)
			}
			return nil
		})
		return err
	}, keys...)
	if errors.Is(err, redis.TxFailedErr) {
		return ports.ErrConflict
	}
	return err
}

func mustNotExist(key string) func(ctx context.Context, tx *redis.Tx) error {
	return func(ctx context.Context, tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return ports.ErrConflict
		}
		return nil
	}
}
