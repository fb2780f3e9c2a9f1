package impl

import (
	"context"
	"log/slog"
	"testing"

	"accountd/config"
	"accountd/internal/domain/entity"
	"accountd/internal/domain/repository"
	"accountd/internal/infra/persistence/memory"
	"accountd/internal/infra/security"
	"accountd/internal/infra/validation"
	"accountd/internal/usecase"

	"github.com/google/uuid"
)

// testHasherConfig keeps Argon2 cheap so the suite stays fast.
func testHasherConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			Argon2: &config.Argon2Config{
				Memory:      8 * 1024,
				Iterations:  1,
				Parallelism: 1,
				SaltLength:  16,
				KeyLength:   32,
			},
		},
	}
}

// newTestService wires a service over the in-memory store with real hashing
// and validation collaborators.
func newTestService(t *testing.T) (usecase.AccountUsecase, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	svc := NewAccountService(AccountServiceParams{
		TxManager:   memory.NewTransactionManager(store),
		AccountRepo: store,
		Hasher:      security.NewArgon2Hasher(testHasherConfig()),
		Validator:   validation.NewAccountValidator(),
		Translator:  NewAccountTranslator(),
		Logger:      slog.New(slog.DiscardHandler),
	})

	return svc, store
}

func registerInput(username string) *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse",
	}
}

func mustRegister(t *testing.T, svc usecase.AccountUsecase, username string) *entity.Account {
	t.Helper()

	account, err := svc.Register(context.Background(), registerInput(username))
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}

	return account
}

// failingAccountRepo returns a fixed error from every operation. It stands
// in for a store hitting an unexpected failure.
type failingAccountRepo struct {
	err error
}

func (r *failingAccountRepo) Save(context.Context, *entity.Account) (*entity.Account, error) {
	return nil, r.err
}

func (r *failingAccountRepo) FindByID(context.Context, uuid.UUID) (*entity.Account, error) {
	return nil, r.err
}

func (r *failingAccountRepo) FindByUsername(context.Context, string) (*entity.Account, error) {
	return nil, r.err
}

func (r *failingAccountRepo) Delete(context.Context, *entity.Account) error {
	return r.err
}

type stubTxManager struct {
	repo repository.AccountRepository
}

func (tm *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&stubRepoFactory{repo: tm.repo})
}

type stubRepoFactory struct {
	repo repository.AccountRepository
}

func (f *stubRepoFactory) AccountRepo() repository.AccountRepository {
	return f.repo
}

// newFailingService wires a service whose persistence always fails with err.
func newFailingService(t *testing.T, err error) usecase.AccountUsecase {
	t.Helper()

	repo := &failingAccountRepo{err: err}

	return NewAccountService(AccountServiceParams{
		TxManager:   &stubTxManager{repo: repo},
		AccountRepo: repo,
		Hasher:      security.NewArgon2Hasher(testHasherConfig()),
		Validator:   validation.NewAccountValidator(),
		Translator:  NewAccountTranslator(),
		Logger:      slog.New(slog.DiscardHandler),
	})
}
