package redisrepo

import "context"

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx buffers repository writes made by fn and commits them in one
// MULTI/EXEC. Reads inside fn see committed data only.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if bufferFromContext(ctx, t.store) != nil {
		return fn(ctx)
	}
	buf := &txBuffer{store: t.store}
	if err := fn(context.WithValue(ctx, txKey{}, buf)); err != nil {
		return err
	}
	return t.store.commit(ctx, buf.writes)
}
