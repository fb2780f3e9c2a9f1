package main

import (
	"context"
	"fmt"
	"time"

	"accountd/internal/domain/lifecycle"
	"accountd/internal/infra/persistence/model"
	"accountd/internal/usecase"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// withUsecase starts the application graph for the chosen store, hands the
// account usecase to fn, and tears the graph down afterwards.
func withUsecase(ctx context.Context, store string, fn func(context.Context, usecase.AccountUsecase) error) error {
	var svc usecase.AccountUsecase
	app, err := newApp(store, &svc)
	if err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return errors.Wrap(err, "failed to start application")
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	return fn(ctx, svc)
}

func runRegister(ctx context.Context, flags *registerFlags) error {
	return withUsecase(ctx, *flags.store, func(ctx context.Context, svc usecase.AccountUsecase) error {
		account, err := svc.Register(ctx, &usecase.RegisterInput{
			Username: *flags.username,
			Email:    *flags.email,
			Password: *flags.password,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Registered account %s (id %s)\n", account.Username, account.ID)

		return nil
	})
}

func runLogin(ctx context.Context, flags *loginFlags) error {
	return withUsecase(ctx, *flags.store, func(ctx context.Context, svc usecase.AccountUsecase) error {
		account, err := svc.Login(ctx, &usecase.LoginInput{
			Username: *flags.username,
			Password: *flags.password,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s at %s\n", account.Username, account.LastLogin.Format(time.RFC3339))

		return nil
	})
}

func runSeenSince(ctx context.Context, flags *seenSinceFlags) error {
	since, err := time.Parse(time.RFC3339, *flags.since)
	if err != nil {
		return errors.Wrap(err, "failed to parse -since as RFC 3339")
	}

	return withUsecase(ctx, *flags.store, func(ctx context.Context, svc usecase.AccountUsecase) error {
		seen, err := svc.HasLoggedInSince(ctx, *flags.username, since)
		if err != nil {
			return err
		}

		fmt.Printf("%t\n", seen)

		return nil
	})
}

func runDelete(ctx context.Context, flags *deleteFlags) error {
	return withUsecase(ctx, *flags.store, func(ctx context.Context, svc usecase.AccountUsecase) error {
		if err := svc.DeleteAccount(ctx, *flags.username); err != nil {
			return err
		}

		fmt.Printf("Deleted account %s\n", *flags.username)

		return nil
	})
}

// runMigrate creates or updates the accounts schema. It only makes sense
// against PostgreSQL; the in-memory store has no schema.
func runMigrate(ctx context.Context) error {
	var db *gorm.DB
	app, err := newApp(storePostgres, &db)
	if err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return errors.Wrap(err, "failed to start application")
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	// uuid_generate_v7() is provided by the pg_uuidv7 extension.
	if err := db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS pg_uuidv7").Error; err != nil {
		return errors.Wrap(err, "failed to ensure pg_uuidv7 extension")
	}
	if err := db.WithContext(ctx).AutoMigrate(&model.AccountModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate accounts schema")
	}

	fmt.Println("Migrated accounts schema")

	return nil
}
