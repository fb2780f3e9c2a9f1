package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccount_Registered(t *testing.T) {
	t.Parallel()

	account := &Account{Username: "alice"}
	assert.False(t, account.Registered())

	account.PasswordHash = []byte("argon2id$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA")
	assert.False(t, account.Registered(), "hash without salt is incomplete")

	account.Salt = "c2FsdA"
	assert.True(t, account.Registered())
}

func TestAccount_CloneIsDeep(t *testing.T) {
	t.Parallel()

	lastLogin := time.Now()
	original := &Account{
		Username:     "alice",
		PasswordHash: []byte("hash"),
		Salt:         "salt",
		LastLogin:    &lastLogin,
	}

	cloned := original.Clone()
	cloned.PasswordHash[0] = 'x'
	*cloned.LastLogin = lastLogin.Add(time.Hour)

	assert.EqualValues(t, 'h', original.PasswordHash[0])
	assert.True(t, original.LastLogin.Equal(lastLogin))

	var nilAccount *Account
	assert.Nil(t, nilAccount.Clone())
}
