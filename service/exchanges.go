package service

import (
	"context"
	"errors"

	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/validator"
	"github.com/emzola/bookswap/repository"
)

type exchanges interface {
	CreateExchangeRequest(ctx context.Context, user *data.User, requestBody dto.CreateExchangeRequestBody) (*data.ExchangeRequest, error)
	RespondExchangeRequest(ctx context.Context, user *data.User, requestID int64, requestBody dto.RespondExchangeRequestBody) (*data.ExchangeRequest, error)
	GetExchangeRequest(ctx context.Context, user *data.User, requestID int64) (*data.ExchangeRequest, error)
	ListExchangeRequests(ctx context.Context, user *data.User) ([]*data.ExchangeRequest, error)
}

// CreateExchangeRequest service asks the owner of an available ownership
// record to exchange it. The record moves to requested and the owner is
// notified.
func (s *service) CreateExchangeRequest(ctx context.Context, user *data.User, requestBody dto.CreateExchangeRequestBody) (*data.ExchangeRequest, error) {
	v := validator.New()
	if v.Check(requestBody.UserBookID > 0, "user_book_id", "must be provided"); !v.Valid() {
		return nil, failedValidation(v)
	}
	userBook, err := s.repo.GetUserBook(ctx, requestBody.UserBookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if userBook.Status != data.StatusAvailable {
		return nil, ErrInvalidState
	}
	if userBook.UserID == user.ID {
		return nil, ErrNotPermitted
	}
	request := &data.ExchangeRequest{
		UserBookID:  userBook.ID,
		BookName:    userBook.Book.Name,
		RequesterID: user.ID,
		OwnerID:     userBook.UserID,
	}
	err = s.repo.CreateExchangeRequest(ctx, request)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidState):
			return nil, ErrInvalidState
		default:
			return nil, err
		}
	}
	s.notifyExchangeRequested(user, request)
	return request, nil
}

// RespondExchangeRequest service accepts or rejects a pending request on
// behalf of the record's owner. Accepting marks the record exchanged;
// rejecting makes it available again. The requester is notified.
func (s *service) RespondExchangeRequest(ctx context.Context, user *data.User, requestID int64, requestBody dto.RespondExchangeRequestBody) (*data.ExchangeRequest, error) {
	v := validator.New()
	if data.ValidateExchangeAction(v, requestBody.Action); !v.Valid() {
		return nil, failedValidation(v)
	}
	request, err := s.repo.GetExchangeRequest(ctx, requestID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if !user.CanModify(request.OwnerID) {
		return nil, ErrNotPermitted
	}
	if request.Status != data.ExchangePending {
		return nil, ErrInvalidState
	}
	status, userBookStatus := data.ExchangeAccepted, data.StatusExchanged
	if requestBody.Action == data.ActionReject {
		status, userBookStatus = data.ExchangeRejected, data.StatusAvailable
	}
	err = s.repo.ResolveExchangeRequest(ctx, request, status, userBookStatus)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidState):
			return nil, ErrInvalidState
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	s.notifyExchangeResolved(request)
	return request, nil
}

// GetExchangeRequest service retrieves a request. Only its requester, the
// owner and superusers can see it.
func (s *service) GetExchangeRequest(ctx context.Context, user *data.User, requestID int64) (*data.ExchangeRequest, error) {
	request, err := s.repo.GetExchangeRequest(ctx, requestID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if request.RequesterID != user.ID && !user.CanModify(request.OwnerID) {
		return nil, ErrRecordNotFound
	}
	return request, nil
}

// ListExchangeRequests service lists the requests the user made or received,
// newest first.
func (s *service) ListExchangeRequests(ctx context.Context, user *data.User) ([]*data.ExchangeRequest, error) {
	return s.repo.GetAllExchangeRequestsForUser(ctx, user.ID)
}
