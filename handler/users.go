package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/internal/validator"
	"github.com/emzola/bookswap/service"
)

// RegisterUser godoc
// @Summary Register a new user
// @Tags users
// @Accept  json
// @Produce json
// @Param body body dto.RegisterUserRequestBody true "JSON payload required to register"
// @Success 201 {object} data.User
// @Failure 400
// @Failure 409
// @Failure 500
// @Router /v1/users [post]
func (h *Handler) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.RegisterUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.RegisterUser(r.Context(), requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.duplicateRecordResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowUser godoc
// @Summary Show the authenticated user's profile
// @Tags users
// @Produce json
// @Param token header string true "Bearer token"
// @Success 200 {object} data.User
// @Failure 401
// @Failure 500
// @Router /v1/users/profile [get]
func (h *Handler) showUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), h.contextGetUser(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateUser godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.UpdateUserRequestBody true "JSON payload"
// @Success 200 {object} data.User
// @Failure 400
// @Failure 409
// @Failure 500
// @Router /v1/users/profile [patch]
func (h *Handler) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.UpdateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.UpdateUser(r.Context(), h.contextGetUser(r), requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.duplicateRecordResponse(w, r)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteUser godoc
// @Summary Delete the authenticated user with their books and requests
// @Tags users
// @Produce json
// @Param token header string true "Bearer token"
// @Success 200
// @Failure 500
// @Router /v1/users/profile [delete]
func (h *Handler) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteUser(r.Context(), h.contextGetUser(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "user successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListUserBooks godoc
// @Summary List the books of a user
// @Description Without user_id the authenticated user's own books are listed.
// @Description Other users only expose their available books.
// @Tags users
// @Produce json
// @Param token header string true "Bearer token"
// @Param user_id query int false "ID of the owner"
// @Success 200 {array} data.UserBook
// @Failure 400
// @Failure 500
// @Router /v1/users/books [get]
func (h *Handler) listUserBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListUserBooks
	v := validator.New()
	qsInput.UserID = h.readInt(r.URL.Query(), "user_id", 0, v)
	if !v.Valid() {
		h.failedValidationResponse(w, r, &service.ValidationError{Errors: v.Errors})
		return
	}
	userBooks, err := h.service.ListUserBooks(r.Context(), h.contextGetUser(r), qsInput)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"user_books": userBooks}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
