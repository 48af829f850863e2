package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/service"
)

// CreateUserBook godoc
// @Summary List a book for exchange
// @Description Lists a book either from a catalog volume_id or from name, author, overview and genres.
// @Tags books
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateUserBookRequestBody true "JSON payload required to list a book"
// @Success 201 {object} data.UserBook
// @Failure 400
// @Failure 401
// @Failure 502
// @Failure 500
// @Router /v1/books [post]
func (h *Handler) createUserBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateUserBookRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	userBook, err := h.service.CreateUserBook(r.Context(), user, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrUpstream):
			h.upstreamFailureResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%d", userBook.ID))
	if err := h.encodeJSON(w, http.StatusCreated, envelope{"user_book": userBook}, headers); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowUserBook godoc
// @Summary Show a listed book
// @Tags books
// @Produce json
// @Param token header string true "Bearer token"
// @Param userBookId path int true "ID of the listed book"
// @Success 200 {object} data.UserBook
// @Failure 404
// @Failure 500
// @Router /v1/books/{userBookId} [get]
func (h *Handler) showUserBookHandler(w http.ResponseWriter, r *http.Request) {
	userBookID, err := h.readIDParam(r, "userBookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	userBook, err := h.service.GetUserBook(r.Context(), user, userBookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"user_book": userBook}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// SearchUserBooks godoc
// @Summary Search books available for exchange
// @Tags books
// @Produce json
// @Param token header string true "Bearer token"
// @Param query query string false "Substring of the book name"
// @Param author query string false "Substring of the author"
// @Param genres query string false "Comma-separated genre names"
// @Success 200 {array} data.UserBook
// @Failure 400
// @Failure 500
// @Router /v1/books [get]
func (h *Handler) searchUserBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsSearchUserBooks
	qs := r.URL.Query()
	qsInput.Query = h.readString(qs, "query", "")
	qsInput.Author = h.readString(qs, "author", "")
	qsInput.Genres = h.readCSV(qs, "genres", []string{})
	userBooks, err := h.service.SearchUserBooks(r.Context(), qsInput)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"user_books": userBooks}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateUserBook godoc
// @Summary Update the condition or location of a listed book
// @Tags books
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param userBookId path int true "ID of the listed book"
// @Param body body dto.UpdateUserBookRequestBody true "JSON payload"
// @Success 200 {object} data.UserBook
// @Failure 400
// @Failure 403
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /v1/books/{userBookId} [put]
func (h *Handler) updateUserBookHandler(w http.ResponseWriter, r *http.Request) {
	userBookID, err := h.readIDParam(r, "userBookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateUserBookRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	userBook, err := h.service.UpdateUserBook(r.Context(), user, userBookID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"user_book": userBook}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteUserBook godoc
// @Summary Remove a listed book
// @Tags books
// @Produce json
// @Param token header string true "Bearer token"
// @Param userBookId path int true "ID of the listed book"
// @Success 200
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/books/{userBookId} [delete]
func (h *Handler) deleteUserBookHandler(w http.ResponseWriter, r *http.Request) {
	userBookID, err := h.readIDParam(r, "userBookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	err = h.service.DeleteUserBook(r.Context(), user, userBookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListSuggestions godoc
// @Summary Suggest catalog books matching a query
// @Tags books
// @Produce json
// @Param token header string true "Bearer token"
// @Param query query string true "Free text query"
// @Success 200 {array} data.BookSuggestion
// @Failure 400
// @Failure 502
// @Failure 500
// @Router /v1/suggestions [get]
func (h *Handler) listSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	query := h.readString(r.URL.Query(), "query", "")
	suggestions, err := h.service.SuggestBooks(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrUpstream):
			h.upstreamFailureResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"suggestions": suggestions}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
