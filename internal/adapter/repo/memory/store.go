package memory

import (
	"context"
	"sync"

	"homestead/internal/app/ports"
)

type Store struct {
	mu          sync.RWMutex
	state       map[string]ports.FarmState
	execution   map[string]ports.ActionExecutionRecord
	events      map[string][]ports.EventRecord
	credentials map[string]ports.FarmCredentialRecord
}

func NewStore() *Store {
	return &Store{
		state:       make(map[string]ports.FarmState),
		execution:   make(map[string]ports.ActionExecutionRecord),
		events:      make(map[string][]ports.EventRecord),
		credentials: make(map[string]ports.FarmCredentialRecord),
	}
}

func execKey(farmID, key string) string {
	return farmID + "::" + key
}

func (s *Store) SeedState(state ports.FarmState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[state.FarmID] = state
}

type txKey struct{}

// txState collects undo steps for the transaction owning the store lock.
type txState struct {
	store *Store
	undo  []func()
}

func txFromContext(ctx context.Context, s *Store) *txState {
	tx, ok := ctx.Value(txKey{}).(*txState)
	if !ok || tx.store != s {
		return nil
	}
	return tx
}

// read runs fn under the read lock unless ctx already holds the store.
func (s *Store) read(ctx context.Context, fn func()) {
	if txFromContext(ctx, s) != nil {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// write runs fn under the write lock unless ctx already holds the store;
// inside a transaction the returned undo is kept for rollback.
func (s *Store) write(ctx context.Context, fn func() (undo func(), err error)) error {
	if tx := txFromContext(ctx, s); tx != nil {
		undo, err := fn()
		if err == nil && undo != nil {
			tx.undo = append(tx.undo, undo)
		}
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fn()
	return err
}
