package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"accountd/internal/domain/entity"
	"accountd/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(username string) *entity.Account {
	return &entity.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: []byte("argon2id$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA"),
		Salt:         "c2FsdA",
	}
}

func TestStore_SaveAssignsID(t *testing.T) {
	t.Parallel()

	store := NewStore()

	saved, err := store.Save(context.Background(), newTestAccount("alice"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.False(t, saved.UpdatedAt.IsZero())

	found, err := store.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
}

func TestStore_SaveRejectsDuplicateUsername(t *testing.T) {
	t.Parallel()

	store := NewStore()

	_, err := store.Save(context.Background(), newTestAccount("alice"))
	require.NoError(t, err)

	_, err = store.Save(context.Background(), newTestAccount("alice"))
	require.ErrorIs(t, err, repository.ErrUsernameTaken)
}

func TestStore_SaveUpdatesExistingAccount(t *testing.T) {
	t.Parallel()

	store := NewStore()

	saved, err := store.Save(context.Background(), newTestAccount("alice"))
	require.NoError(t, err)

	now := time.Now()
	saved.LastLogin = &now

	updated, err := store.Save(context.Background(), saved)
	require.NoError(t, err)
	require.NotNil(t, updated.LastLogin)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, saved.CreatedAt.Unix(), updated.CreatedAt.Unix())

	found, err := store.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, found.LastLogin)
	assert.WithinDuration(t, now, *found.LastLogin, time.Second)
}

func TestStore_SaveUnknownIDReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore()

	account := newTestAccount("ghost")
	account.ID = uuid.New()

	_, err := store.Save(context.Background(), account)
	require.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestStore_ReturnedAccountsAreCopies(t *testing.T) {
	t.Parallel()

	store := NewStore()

	saved, err := store.Save(context.Background(), newTestAccount("alice"))
	require.NoError(t, err)

	saved.Email = "tampered@example.com"
	saved.PasswordHash[0] = 'x'

	found, err := store.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", found.Email)
	assert.EqualValues(t, 'a', found.PasswordHash[0])
}

func TestStore_FindMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore()

	_, err := store.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = store.FindByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestStore_DeleteRemovesAccount(t *testing.T) {
	t.Parallel()

	store := NewStore()

	saved, err := store.Save(context.Background(), newTestAccount("alice"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), saved))

	_, err = store.FindByUsername(context.Background(), "alice")
	require.ErrorIs(t, err, repository.ErrAccountNotFound)

	err = store.Delete(context.Background(), saved)
	require.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestStore_ConcurrentInsertsSameUsername(t *testing.T) {
	t.Parallel()

	store := NewStore()

	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = store.Save(context.Background(), newTestAccount("alice"))
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, repository.ErrUsernameTaken)
	}
	assert.Equal(t, 1, succeeded)
}

func TestTransactionManager_ExecuteSerializesWork(t *testing.T) {
	t.Parallel()

	store := NewStore()
	tm := NewTransactionManager(store)

	err := tm.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		repo := factory.AccountRepo()

		if _, err := repo.FindByUsername(context.Background(), "alice"); err == nil {
			return repository.ErrUsernameTaken
		}
		_, err := repo.Save(context.Background(), newTestAccount("alice"))

		return err
	})
	require.NoError(t, err)

	found, err := store.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
}

func TestTransactionManager_ExecuteHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	tm := NewTransactionManager(NewStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tm.Execute(ctx, func(repository.RepositoryFactory) error {
		t.Fatal("unit of work must not run after cancellation")

		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
