package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "accountd/internal/domain/errors"
	"accountd/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_RegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	mustRegister(t, svc, "alice")

	input := registerInput("alice")
	input.Email = "other@example.com"

	_, err := svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.EqualError(t, err, "Account with name alice is already registered.")
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindAlreadyRegistered))
}

// A taken username must be reported no matter what the other arguments
// look like; field validation only applies to usernames that are free.
func TestAccountService_RegisterDuplicateWinsOverValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	mustRegister(t, svc, "alice")

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Username: "alice",
		Email:    "not-an-email",
		Password: "another horse",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Account with name alice is already registered.")
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindAlreadyRegistered))
}

func TestAccountService_RegisterEmptyInput(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	cases := []struct {
		name  string
		input *usecase.RegisterInput
	}{
		{name: "nil input", input: nil},
		{name: "missing username", input: &usecase.RegisterInput{Email: "a@example.com", Password: "pw"}},
		{name: "missing email", input: &usecase.RegisterInput{Username: "alice", Password: "pw"}},
		{name: "missing password", input: &usecase.RegisterInput{Username: "alice", Email: "a@example.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(context.Background(), tc.input)
			require.Error(t, err)
			assert.EqualError(t, err, "Service is not accepting an empty parameters.")
			assert.True(t, domainerrors.IsKind(err, domainerrors.KindEmptyInput))
		})
	}
}

func TestAccountService_RegisterValidationFailures(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	cases := []struct {
		name     string
		username string
		email    string
		wantMsg  string
	}{
		{
			name:     "malformed email",
			username: "alice",
			email:    "not-an-email",
			wantMsg:  "[must be a well-formed email address]",
		},
		{
			name:     "username too short",
			username: "al",
			email:    "alice@example.com",
			wantMsg:  "[size must be between 3 and 10]",
		},
		{
			name:     "username too long",
			username: "alicehasalongname",
			email:    "alice@example.com",
			wantMsg:  "[size must be between 3 and 10]",
		},
		{
			name:     "all violations aggregate",
			username: "al",
			email:    "not-an-email",
			wantMsg:  "[size must be between 3 and 10:must be a well-formed email address]",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(context.Background(), &usecase.RegisterInput{
				Username: tc.username,
				Email:    tc.email,
				Password: "correct horse",
			})
			require.Error(t, err)
			assert.EqualError(t, err, tc.wantMsg)
			assert.True(t, domainerrors.IsKind(err, domainerrors.KindValidationFailed))
		})
	}
}

func TestAccountService_LoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	mustRegister(t, svc, "alice")

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "wrong horse",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Wrong password.")
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindInvalidCredentials))

	stored, err := store.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, stored.LastLogin, "a rejected login must not count as activity")
}

func TestAccountService_LoginUnknownUsername(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "nobody",
		Password: "pw",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Account with name nobody is not registered within system.")
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindNotRegistered))
}

func TestAccountService_LoginEmptyInput(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	for _, input := range []*usecase.LoginInput{
		nil,
		{Password: "pw"},
		{Username: "alice"},
	} {
		_, err := svc.Login(context.Background(), input)
		require.Error(t, err)
		assert.EqualError(t, err, "Service is not accepting an empty parameters.")
	}
}

func TestAccountService_HasLoggedInSinceEmptyInput(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.HasLoggedInSince(context.Background(), "", time.Now())
	assert.EqualError(t, err, "Service is not accepting an empty parameters.")

	_, err = svc.HasLoggedInSince(context.Background(), "alice", time.Time{})
	assert.EqualError(t, err, "Service is not accepting an empty parameters.")
}

func TestAccountService_HasLoggedInSinceUnknownUsername(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.HasLoggedInSince(context.Background(), "nobody", time.Now())
	assert.EqualError(t, err, "Account with name nobody is not registered within system.")
}

func TestAccountService_DeleteAccountErrors(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	err := svc.DeleteAccount(context.Background(), "")
	assert.EqualError(t, err, "Service is not accepting an empty parameters.")

	err = svc.DeleteAccount(context.Background(), "nobody")
	assert.EqualError(t, err, "Account with name nobody is not registered within system.")
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindNotRegistered))
}

// Failures without a registered translation rule pass through unchanged
// rather than being masked by a normalized error.
func TestAccountService_UnmappedStoreErrorPassesThrough(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection reset by peer")
	svc := newFailingService(t, storeErr)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "pw",
	})
	require.ErrorIs(t, err, storeErr)

	err = svc.DeleteAccount(context.Background(), "alice")
	require.ErrorIs(t, err, storeErr)
}
