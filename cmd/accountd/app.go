package main

import (
	"accountd/config"
	"accountd/internal/domain/repository"
	logs "accountd/internal/infra/log"
	"accountd/internal/infra/persistence/memory"
	"accountd/internal/infra/persistence/postgres"
	"accountd/internal/infra/security"
	"accountd/internal/infra/validation"
	"accountd/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	storeMemory   = "memory"
	storePostgres = "postgres"
)

// newApp assembles the service graph for the chosen store backend and
// populates the given targets from it.
func newApp(store string, populate ...any) (*fx.App, error) {
	storeOpt, err := storeOption(store)
	if err != nil {
		return nil, err
	}

	return fx.New(
		fx.NopLogger,
		fx.Provide(
			newConfig(store),
			logs.New,
			security.NewArgon2Hasher,
			validation.NewAccountValidator,
			impl.NewAccountTranslator,
			impl.NewAccountService,
		),
		storeOpt,
		fx.Populate(populate...),
	), nil
}

func storeOption(store string) (fx.Option, error) {
	switch store {
	case storeMemory:
		return fx.Provide(
			memory.NewStore,
			func(s *memory.Store) repository.AccountRepository { return s },
			memory.NewTransactionManager,
		), nil
	case storePostgres:
		return fx.Provide(
			postgres.New,
			postgres.NewAccountRepository,
			postgres.NewTransactionManager,
		), nil
	default:
		return nil, errors.Errorf("unknown store %q (expected %s or %s)", store, storeMemory, storePostgres)
	}
}

// newConfig loads config.yaml plus env overrides. The memory store has no
// required settings, so a missing config file falls back to defaults there.
func newConfig(store string) func() (*config.Config, error) {
	return func() (*config.Config, error) {
		cfg, err := config.New()
		if err != nil && store == storeMemory {
			return &config.Config{}, nil
		}

		return cfg, err
	}
}
