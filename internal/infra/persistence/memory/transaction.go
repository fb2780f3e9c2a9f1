package memory

import (
	"context"

	"accountd/internal/domain/repository"
)

type transactionManager struct {
	store *Store
}

// NewTransactionManager creates a transaction manager over the in-memory
// store. Units of work are serialized by a store-wide mutex, which gives
// the same read-then-write atomicity the database adapter gets from a
// transaction.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (tm *transactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	return fn(&repositoryFactory{store: tm.store})
}

type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) AccountRepo() repository.AccountRepository {
	return f.store
}
