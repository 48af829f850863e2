package handler

import "net/http"

// ListGenres godoc
// @Summary List genres with the number of books in each
// @Tags genres
// @Produce json
// @Param token header string true "Bearer token"
// @Success 200 {array} data.Genre
// @Failure 500
// @Router /v1/genres [get]
func (h *Handler) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.ListGenres(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"genres": genres}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
