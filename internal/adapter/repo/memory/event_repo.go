package memory

import (
	"context"

	"homestead/internal/app/ports"
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
	return r.store.write(ctx, func() (func(), error) {
		before := len(r.store.events[farmID])
		for _, e := range events {
			e.FarmID = farmID
			r.store.events[farmID] = append(r.store.events[farmID], e)
		}
		return func() {
			r.store.events[farmID] = r.store.events[farmID][:before]
		}, nil
	})
}

func (r EventRepo) ListByFarmID(ctx context.Context, farmID string, limit int) ([]ports.EventRecord, error) {
	var out []ports.EventRecord
	r.store.read(ctx, func() {
		all := r.store.events[farmID]
		if limit <= 0 || limit > len(all) {
			limit = len(all)
		}
		out = make([]ports.EventRecord, limit)
		copy(out, all[len(all)-limit:])
	})
	return out, nil
}
