package service

import (
	"context"
	"errors"
	"strings"

	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/validator"
	"github.com/emzola/bookswap/repository"
)

type users interface {
	RegisterUser(ctx context.Context, requestBody dto.RegisterUserRequestBody) (*data.User, error)
	GetUser(ctx context.Context, user *data.User) (*data.User, error)
	UpdateUser(ctx context.Context, user *data.User, requestBody dto.UpdateUserRequestBody) (*data.User, error)
	DeleteUser(ctx context.Context, user *data.User) error
	AuthenticateToken(ctx context.Context, token string) (*data.User, error)
}

// RegisterUser service registers a new user.
func (s *service) RegisterUser(ctx context.Context, requestBody dto.RegisterUserRequestBody) (*data.User, error) {
	user := &data.User{
		Username: strings.TrimSpace(requestBody.Username),
		Email:    strings.TrimSpace(requestBody.Email),
	}
	v := validator.New()
	if data.ValidatePasswordPlaintext(v, requestBody.Password); !v.Valid() {
		return nil, failedValidation(v)
	}
	err := user.Password.Set(requestBody.Password)
	if err != nil {
		return nil, err
	}
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, failedValidation(v)
	}
	err = s.repo.RegisterUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return user, nil
}

// GetUser service retrieves the profile of user.
func (s *service) GetUser(ctx context.Context, user *data.User) (*data.User, error) {
	user, err := s.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// UpdateUser service updates the username and email of user.
func (s *service) UpdateUser(ctx context.Context, user *data.User, requestBody dto.UpdateUserRequestBody) (*data.User, error) {
	user, err := s.GetUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if requestBody.Username != nil {
		user.Username = strings.TrimSpace(*requestBody.Username)
	}
	if requestBody.Email != nil {
		user.Email = strings.TrimSpace(*requestBody.Email)
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, failedValidation(v)
	}
	err = s.repo.UpdateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return user, nil
}

// DeleteUser service deletes user together with everything they own.
func (s *service) DeleteUser(ctx context.Context, user *data.User) error {
	err := s.repo.DeleteUser(ctx, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// AuthenticateToken service resolves a bearer token to the user it was
// issued for.
func (s *service) AuthenticateToken(ctx context.Context, token string) (*data.User, error) {
	if s.tokens == nil {
		return nil, ErrInvalidCredentials
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}
	return user, nil
}
