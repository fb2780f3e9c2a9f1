// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"accountd/internal/domain/entity"
	domainerrors "accountd/internal/domain/errors"
	"accountd/internal/domain/repository"
	"accountd/internal/domain/service"
	"accountd/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	validator   service.AccountValidator
	translator  *domainerrors.Translator
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Validator   service.AccountValidator
	Translator  *domainerrors.Translator
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all
// dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		validator:   params.Validator,
		translator:  params.Translator,
		logger:      params.Logger,
	}
}

// Register orchestrates the complete account registration process. The
// existence check and the insert run inside one unit of work so that two
// racing registrations for the same username cannot both succeed.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	if input == nil || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domainerrors.EmptyInput()
	}

	salt, err := srv.hasher.GenerateSalt()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}
	hash, err := srv.hasher.Hash(input.Password, salt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	var registered *entity.Account
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, err := accountRepo.FindByUsername(ctx, input.Username)
		if err == nil {
			return domainerrors.AlreadyRegistered(input.Username)
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to look up username")
		}

		// A taken username wins over field validation, so validation only
		// runs once the username is known to be free.
		if err := srv.validator.ValidateRegistration(input.Username, input.Email); err != nil {
			return err
		}

		registered, err = accountRepo.Save(ctx, &entity.Account{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: []byte(hash),
			Salt:         salt,
		})

		return err
	})
	if err != nil {
		return nil, srv.translator.Translate(input.Username, err)
	}

	srv.logger.Info("Registered new account",
		slog.String("username", registered.Username),
		slog.String("account_id", registered.ID.String()),
	)

	return registered, nil
}

// Login verifies the password against the account's stored salt and hash.
// On success the login time is recorded; a wrong password leaves the
// account untouched. The lookup and the timestamp write share one unit of
// work so concurrent logins cannot move LastLogin backwards.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.Account, error) {
	if input == nil || input.Username == "" || input.Password == "" {
		return nil, domainerrors.EmptyInput()
	}

	var loggedIn *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByUsername(ctx, input.Username)
		if err != nil {
			return err
		}

		if !account.Registered() || !srv.hasher.Verify(input.Password, account.Salt, account.PasswordHash) {
			srv.logger.Warn("Rejected login with wrong password", slog.String("username", input.Username))

			return domainerrors.WrongPassword()
		}

		now := time.Now()
		account.LastLogin = &now

		loggedIn, err = accountRepo.Save(ctx, account)

		return err
	})
	if err != nil {
		return nil, srv.translator.Translate(input.Username, err)
	}

	srv.logger.Info("User logged in", slog.String("username", loggedIn.Username))

	return loggedIn, nil
}

// HasLoggedInSince reports whether the account's most recent login happened
// at or after the given instant. An account that never logged in reports
// false.
func (srv *accountService) HasLoggedInSince(ctx context.Context, username string, since time.Time) (bool, error) {
	if username == "" || since.IsZero() {
		return false, domainerrors.EmptyInput()
	}

	account, err := srv.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return false, srv.translator.Translate(username, err)
	}

	if account.LastLogin == nil {
		return false, nil
	}

	return !account.LastLogin.Before(since), nil
}

// DeleteAccount permanently removes the account's record.
func (srv *accountService) DeleteAccount(ctx context.Context, username string) error {
	if username == "" {
		return domainerrors.EmptyInput()
	}

	account, err := srv.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return srv.translator.Translate(username, err)
	}

	if err := srv.accountRepo.Delete(ctx, account); err != nil {
		return srv.translator.Translate(username, err)
	}

	srv.logger.Info("Deleted account", slog.String("username", username))

	return nil
}
