package handler

import (
	"net/http"

	"github.com/swaggo/swag"
)

// swaggerSpecHandler serves the registered OpenAPI document consumed by the
// /docs UI.
func (h *Handler) swaggerSpecHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
