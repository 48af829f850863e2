package service

import (
	"context"
	"testing"

	"github.com/emzola/bookswap/data/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	ts := newTestService(t)

	user, err := ts.RegisterUser(context.Background(), dto.RegisterUserRequestBody{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pa55word!",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	ok, err := user.Password.Matches("pa55word!")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = ts.RegisterUser(context.Background(), dto.RegisterUserRequestBody{
		Username: "alice2",
		Email:    "ALICE@example.com",
		Password: "pa55word!",
	})
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	_, err = ts.RegisterUser(context.Background(), dto.RegisterUserRequestBody{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "short",
	})
	assert.Contains(t, validationErrors(t, err), "password")
}

func TestUpdateUser(t *testing.T) {
	ts := newTestService(t)
	alice := ts.newUser(t, "alice", false)
	ts.newUser(t, "bob", false)

	name := "alice.w"
	updated, err := ts.UpdateUser(context.Background(), alice, dto.UpdateUserRequestBody{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "alice.w", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)

	taken := "bob"
	_, err = ts.UpdateUser(context.Background(), alice, dto.UpdateUserRequestBody{Username: &taken})
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	invalid := "not-an-email"
	_, err = ts.UpdateUser(context.Background(), alice, dto.UpdateUserRequestBody{Email: &invalid})
	assert.Contains(t, validationErrors(t, err), "email")
}

func TestDeleteUserCascades(t *testing.T) {
	ts := newTestService(t)
	alice := ts.newUser(t, "alice", false)
	bob := ts.newUser(t, "bob", false)
	dune := ts.listBook(t, alice, "Dune")
	_, err := ts.CreateExchangeRequest(context.Background(), bob, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	require.NoError(t, err)

	require.NoError(t, ts.DeleteUser(context.Background(), alice))
	_, err = ts.GetUser(context.Background(), alice)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	requests, err := ts.ListExchangeRequests(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, requests)
	_, err = ts.GetUserBook(context.Background(), bob, dune.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestAuthenticateToken(t *testing.T) {
	ts := newTestService(t)
	alice := ts.newUser(t, "alice", false)
	require.Equal(t, int64(1), alice.ID)

	user, err := ts.AuthenticateToken(context.Background(), "alice-token")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = ts.AuthenticateToken(context.Background(), "forged")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
