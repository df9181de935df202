package memory

import (
	"context"

	"homestead/internal/app/ports"
)

type ActionExecutionRepo struct {
	store *Store
}

func NewActionExecutionRepo(store *Store) ActionExecutionRepo {
	return ActionExecutionRepo{store: store}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, farmID, key string) (*ports.ActionExecutionRecord, error) {
	var (
		rec ports.ActionExecutionRecord
		ok  bool
	)
	r.store.read(ctx, func() {
		rec, ok = r.store.execution[execKey(farmID, key)]
	})
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	k := execKey(execution.FarmID, execution.IdempotencyKey)
	return r.store.write(ctx, func() (func(), error) {
		if _, exists := r.store.execution[k]; exists {
			return nil, ports.ErrConflict
		}
		r.store.execution[k] = execution
		return func() { delete(r.store.execution, k) }, nil
	})
}
