package service

import (
	"context"
	"sync"
	"testing"

	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/data/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accept = dto.RespondExchangeRequestBody{Action: data.ActionAccept}
	reject = dto.RespondExchangeRequestBody{Action: data.ActionReject}
)

func TestExchangeScenario(t *testing.T) {
	ctx := context.Background()
	ts := newTestService(t)
	alice := ts.newUser(t, "alice", false)
	bob := ts.newUser(t, "bob", false)
	carol := ts.newUser(t, "carol", false)

	dune, err := ts.CreateUserBook(ctx, alice, dto.CreateUserBookRequestBody{
		Name:      "Dune",
		Author:    "Frank Herbert",
		Overview:  "Desert planet.",
		Genres:    dto.GenreList{"Science Fiction"},
		Condition: "good",
		Location:  "55.75,37.61",
	})
	require.NoError(t, err)
	assert.Equal(t, data.StatusAvailable, dune.Status)

	request, err := ts.CreateExchangeRequest(ctx, bob, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	require.NoError(t, err)
	assert.Equal(t, data.ExchangePending, request.Status)
	assert.Equal(t, alice.ID, request.OwnerID)
	assert.Equal(t, bob.ID, request.RequesterID)
	assert.Equal(t, data.StatusRequested, ts.status(t, dune.ID))

	request, err = ts.RespondExchangeRequest(ctx, alice, request.ID, accept)
	require.NoError(t, err)
	assert.Equal(t, data.ExchangeAccepted, request.Status)
	assert.Equal(t, data.StatusExchanged, ts.status(t, dune.ID))

	_, err = ts.CreateExchangeRequest(ctx, carol, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func (ts *testService) status(t *testing.T, userBookID int64) string {
	t.Helper()
	userBook, err := ts.repo.GetUserBook(context.Background(), userBookID)
	require.NoError(t, err)
	return userBook.Status
}

func TestCreateExchangeRequestConcurrent(t *testing.T) {
	ts := newTestService(t)
	alice := ts.newUser(t, "alice", false)
	requesters := []*data.User{ts.newUser(t, "bob", false), ts.newUser(t, "carol", false)}
	dune := ts.listBook(t, alice, "Dune")

	errs := make([]error, len(requesters))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, requester := range requesters {
		wg.Add(1)
		go func(i int, requester *data.User) {
			defer wg.Done()
			<-start
			_, errs[i] = ts.CreateExchangeRequest(context.Background(), requester, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
		}(i, requester)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidState)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, data.StatusRequested, ts.status(t, dune.ID))

	requests, err := ts.ListExchangeRequests(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}

func TestCreateExchangeRequestGuards(t *testing.T) {
	ctx := context.Background()
	ts := newTestService(t)
	alice := ts.newUser(t, "alice", false)
	bob := ts.newUser(t, "bob", false)
	carol := ts.newUser(t, "carol", false)
	dune := ts.listBook(t, alice, "Dune")

	_, err := ts.CreateExchangeRequest(ctx, bob, dto.CreateExchangeRequestBody{UserBookID: 999})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = ts.CreateExchangeRequest(ctx, bob, dto.CreateExchangeRequestBody{})
	assert.Contains(t, validationErrors(t, err), "user_book_id")

	_, err = ts.CreateExchangeRequest(ctx, alice, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Equal(t, data.StatusAvailable, ts.status(t, dune.ID))

	_, err = ts.CreateExchangeRequest(ctx, bob, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	require.NoError(t, err)

	_, err = ts.CreateExchangeRequest(ctx, carol, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, data.StatusRequested, ts.status(t, dune.ID))
	requests, err := ts.ListExchangeRequests(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, requests, 1)

	// The status check comes before the self-request check.
	_, err = ts.CreateExchangeRequest(ctx, alice, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRespondExchangeRequest(t *testing.T) {
	ctx := context.Background()
	ts := newTestService(t)
	alice := ts.newUser(t, "alice", false)
	bob := ts.newUser(t, "bob", false)
	admin := ts.newUser(t, "admin", true)
	dune := ts.listBook(t, alice, "Dune")

	request, err := ts.CreateExchangeRequest(ctx, bob, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	require.NoError(t, err)

	_, err = ts.RespondExchangeRequest(ctx, alice, request.ID, dto.RespondExchangeRequestBody{Action: "maybe"})
	assert.Contains(t, validationErrors(t, err), "action")

	_, err = ts.RespondExchangeRequest(ctx, bob, request.ID, accept)
	assert.ErrorIs(t, err, ErrNotPermitted)

	_, err = ts.RespondExchangeRequest(ctx, alice, 999, accept)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	rejected, err := ts.RespondExchangeRequest(ctx, admin, request.ID, reject)
	require.NoError(t, err)
	assert.Equal(t, data.ExchangeRejected, rejected.Status)
	assert.Equal(t, data.StatusAvailable, ts.status(t, dune.ID))

	_, err = ts.RespondExchangeRequest(ctx, alice, request.ID, accept)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, data.StatusAvailable, ts.status(t, dune.ID))

	// A rejected record can be requested again.
	again, err := ts.CreateExchangeRequest(ctx, bob, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	require.NoError(t, err)
	_, err = ts.RespondExchangeRequest(ctx, alice, again.ID, accept)
	require.NoError(t, err)
	_, err = ts.RespondExchangeRequest(ctx, alice, again.ID, accept)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, data.StatusExchanged, ts.status(t, dune.ID))
}

func TestExchangeRequestVisibility(t *testing.T) {
	ctx := context.Background()
	ts := newTestService(t)
	alice := ts.newUser(t, "alice", false)
	bob := ts.newUser(t, "bob", false)
	carol := ts.newUser(t, "carol", false)
	admin := ts.newUser(t, "admin", true)
	dune := ts.listBook(t, alice, "Dune")
	emma := ts.listBook(t, bob, "Emma")

	first, err := ts.CreateExchangeRequest(ctx, bob, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	require.NoError(t, err)
	second, err := ts.CreateExchangeRequest(ctx, alice, dto.CreateExchangeRequestBody{UserBookID: emma.ID})
	require.NoError(t, err)

	for _, user := range []*data.User{alice, bob, admin} {
		got, err := ts.GetExchangeRequest(ctx, user, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.BookName)
	}
	_, err = ts.GetExchangeRequest(ctx, carol, first.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	requests, err := ts.ListExchangeRequests(ctx, alice)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, second.ID, requests[0].ID)
	assert.Equal(t, first.ID, requests[1].ID)

	requests, err = ts.ListExchangeRequests(ctx, carol)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestExchangeNotifications(t *testing.T) {
	ctx := context.Background()
	ts := newTestService(t)
	alice := ts.newUser(t, "alice", false)
	bob := ts.newUser(t, "bob", false)
	dune := ts.listBook(t, alice, "Dune")

	request, err := ts.CreateExchangeRequest(ctx, bob, dto.CreateExchangeRequestBody{UserBookID: dune.ID})
	require.NoError(t, err)
	_, err = ts.RespondExchangeRequest(ctx, alice, request.ID, accept)
	require.NoError(t, err)
	ts.wg.Wait()

	require.Len(t, ts.mailer.sent, 2)
	sent := map[string]sentMail{}
	for _, mail := range ts.mailer.sent {
		sent[mail.template] = mail
	}
	assert.Equal(t, "alice@example.com", sent["exchange_requested.tmpl"].recipient)
	assert.Equal(t, "bob", sent["exchange_requested.tmpl"].data["RequesterName"])
	assert.Equal(t, "bob@example.com", sent["exchange_resolved.tmpl"].recipient)
	assert.Equal(t, data.ExchangeAccepted, sent["exchange_resolved.tmpl"].data["Status"])
	assert.Equal(t, "Dune", sent["exchange_resolved.tmpl"].data["BookName"])
}
