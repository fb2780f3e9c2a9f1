// Package memory implements the persistence port as an in-process hash map.
// It backs the service tests and the CLI's storeless mode; semantics match
// the PostgreSQL adapter, including the hard username uniqueness constraint.
package memory

import (
	"context"
	"sync"
	"time"

	"accountd/internal/domain/entity"
	"accountd/internal/domain/repository"

	"github.com/google/uuid"
)

// Store implements repository.AccountRepository over two maps guarded by a
// single RWMutex. Uniqueness is enforced under the write lock, so two racing
// inserts for one username can never both succeed.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	byID       map[uuid.UUID]*entity.Account
	byUsername map[string]uuid.UUID
}

// NewStore is the constructor for Store.
func NewStore() *Store {
	return &Store{
		byID:       make(map[uuid.UUID]*entity.Account),
		byUsername: make(map[string]uuid.UUID),
	}
}

// Save inserts the account when its ID is unset, otherwise updates it in
// place. The stored representation, including any assigned ID, is returned
// as a copy so callers cannot mutate durable state afterwards.
func (s *Store) Save(_ context.Context, account *entity.Account) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	if account.ID == uuid.Nil {
		if _, taken := s.byUsername[account.Username]; taken {
			return nil, repository.ErrUsernameTaken
		}

		stored := account.Clone()
		stored.ID = uuid.New()
		stored.CreatedAt = now
		stored.UpdatedAt = now
		s.byID[stored.ID] = stored
		s.byUsername[stored.Username] = stored.ID

		return stored.Clone(), nil
	}

	current, ok := s.byID[account.ID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	if ownerID, taken := s.byUsername[account.Username]; taken && ownerID != account.ID {
		return nil, repository.ErrUsernameTaken
	}

	stored := account.Clone()
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = now
	if current.Username != stored.Username {
		delete(s.byUsername, current.Username)
	}
	s.byID[stored.ID] = stored
	s.byUsername[stored.Username] = stored.ID

	return stored.Clone(), nil
}

// FindByID retrieves a single account by its unique ID.
func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return account.Clone(), nil
}

// FindByUsername retrieves a single account by its username.
func (s *Store) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return s.byID[id].Clone(), nil
}

// Delete removes the account's record.
func (s *Store) Delete(_ context.Context, account *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[account.ID]
	if !ok {
		return repository.ErrAccountNotFound
	}

	delete(s.byID, stored.ID)
	delete(s.byUsername, stored.Username)

	return nil
}
