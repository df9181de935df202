package memory

import (
	"context"

	"homestead/internal/app/ports"
)

type FarmStateRepo struct {
	store *Store
}

func NewFarmStateRepo(store *Store) FarmStateRepo {
	return FarmStateRepo{store: store}
}

func (r FarmStateRepo) GetByFarmID(ctx context.Context, farmID string) (ports.FarmState, error) {
	var (
		state ports.FarmState
		ok    bool
	)
	r.store.read(ctx, func() {
		state, ok = r.store.state[farmID]
	})
	if !ok {
		return ports.FarmState{}, ports.ErrNotFound
	}
	return state, nil
}

func (r FarmStateRepo) SaveWithVersion(ctx context.Context, state ports.FarmState, expectedVersion int64) error {
	return r.store.write(ctx, func() (func(), error) {
		current, ok := r.store.state[state.FarmID]
		if !ok && expectedVersion != 0 {
			return nil, ports.ErrConflict
		}
		if ok && current.Version != expectedVersion {
			return nil, ports.ErrConflict
		}
		r.store.state[state.FarmID] = state
		return func() {
			if ok {
				r.store.state[state.FarmID] = current
			} else {
				delete(r.store.state, state.FarmID)
			}
		}, nil
	})
}
