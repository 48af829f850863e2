package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/service"
)

// CreateExchangeRequest godoc
// @Summary Request a listed book
// @Tags exchange-requests
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param body body dto.CreateExchangeRequestBody true "JSON payload"
// @Success 201 {object} data.ExchangeRequest
// @Failure 400
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/exchange-requests [post]
func (h *Handler) createExchangeRequestHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateExchangeRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	request, err := h.service.CreateExchangeRequest(r.Context(), user, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrInvalidState):
			h.invalidStateResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/exchange-requests/%d", request.ID))
	if err := h.encodeJSON(w, http.StatusCreated, envelope{"exchange_request": request}, headers); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// RespondExchangeRequest godoc
// @Summary Accept or reject a pending request
// @Description Only the owner of the requested book may respond.
// @Tags exchange-requests
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param requestId path int true "ID of the exchange request"
// @Param body body dto.RespondExchangeRequestBody true "JSON payload"
// @Success 200 {object} data.ExchangeRequest
// @Failure 400
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/exchange-requests/{requestId} [patch]
func (h *Handler) respondExchangeRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.readIDParam(r, "requestId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.RespondExchangeRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	request, err := h.service.RespondExchangeRequest(r.Context(), user, requestID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		case errors.Is(err, service.ErrInvalidState):
			h.invalidStateResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"exchange_request": request}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowExchangeRequest godoc
// @Summary Show an exchange request
// @Description Only the requester, the owner of the requested book and superusers may view it.
// @Tags exchange-requests
// @Produce json
// @Param token header string true "Bearer token"
// @Param requestId path int true "ID of the exchange request"
// @Success 200 {object} data.ExchangeRequest
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/exchange-requests/{requestId} [get]
func (h *Handler) showExchangeRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID, err := h.readIDParam(r, "requestId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	request, err := h.service.GetExchangeRequest(r.Context(), user, requestID)
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
	if err := h.encodeJSON(w, http.StatusOK, envelope{"exchange_request": request}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListExchangeRequests godoc
// @Summary List requests the user made or received
// @Tags exchange-requests
// @Produce json
// @Param token header string true "Bearer token"
// @Success 200 {array} data.ExchangeRequest
// @Failure 500
// @Router /v1/exchange-requests [get]
func (h *Handler) listExchangeRequestsHandler(w http.ResponseWriter, r *http.Request) {
	user := h.contextGetUser(r)
	requests, err := h.service.ListExchangeRequests(r.Context(), user)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"exchange_requests": requests}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
