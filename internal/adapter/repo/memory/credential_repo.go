package memory

import (
	"context"

	"homestead/internal/app/ports"
)

type FarmCredentialRepo struct {
	store *Store
}

func NewFarmCredentialRepo(store *Store) FarmCredentialRepo {
	return FarmCredentialRepo{store: store}
}

func (r FarmCredentialRepo) Create(ctx context.Context, credential ports.FarmCredentialRecord) error {
	return r.store.write(ctx, func() (func(), error) {
		if _, exists := r.store.credentials[credential.FarmID]; exists {
			return nil, ports.ErrConflict
		}
		r.store.credentials[credential.FarmID] = credential
		return func() { delete(r.store.credentials, credential.FarmID) }, nil
	})
}

func (r FarmCredentialRepo) GetByFarmID(ctx context.Context, farmID string) (ports.FarmCredentialRecord, error) {
	var (
		cred ports.FarmCredentialRecord
		ok   bool
	)
	r.store.read(ctx, func() {
		cred, ok = r.store.credentials[farmID]
	})
	if !ok {
		return ports.FarmCredentialRecord{}, ports.ErrNotFound
	}
	return cred, nil
}
