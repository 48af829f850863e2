package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/bookswap/service"
)

func (h *Handler) logError(r *http.Request, err error) {
	h.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
	})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	env := envelope{"error": message}
	err := h.encodeJSON(w, status, env, nil)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *Handler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	h.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (h *Handler) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	h.errorResponse(w, r, http.StatusNotFound, message)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	h.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (h *Handler) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse reports the field messages of a
// service.ValidationError.
func (h *Handler) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	if !errors.As(err, &validationErr) {
		h.badRequestResponse(w, r, err)
		return
	}
	h.errorResponse(w, r, http.StatusBadRequest, validationErr.Errors)
}

func (h *Handler) invalidStateResponse(w http.ResponseWriter, r *http.Request) {
	message := "the resource is not in a state that allows this action"
	h.errorResponse(w, r, http.StatusBadRequest, message)
}

func (h *Handler) editConflictResponse(w http.ResponseWriter, r *http.Request) {
	message := "unable to update the record due to an edit conflict, please try again"
	h.errorResponse(w, r, http.StatusConflict, message)
}

func (h *Handler) duplicateRecordResponse(w http.ResponseWriter, r *http.Request) {
	message := "a record with these details already exists"
	h.errorResponse(w, r, http.StatusConflict, message)
}

func (h *Handler) notPermittedResponse(w http.ResponseWriter, r *http.Request) {
	message := "your user account doesn't have the necessary permissions to access this resource"
	h.errorResponse(w, r, http.StatusForbidden, message)
}

func (h *Handler) upstreamFailureResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	message := "an upstream service failed to process the request"
	var upstream *service.UpstreamError
	if errors.As(err, &upstream) && upstream.Status != 0 {
		message = fmt.Sprintf("an upstream service responded with status %d", upstream.Status)
	}
	h.errorResponse(w, r, http.StatusBadGateway, message)
}

func (h *Handler) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	message := "invalid authentication credentials"
	h.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (h *Handler) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	message := "invalid or missing authentication token"
	h.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (h *Handler) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	message := "you must be authenticated to access this resource"
	h.errorResponse(w, r, http.StatusUnauthorized, message)
}
