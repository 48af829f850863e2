package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Routes registers every endpoint and wraps the router in the middleware chain.
func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1/books", h.requireAuthenticatedUser(h.searchUserBooksHandler))
	router.HandlerFunc(http.MethodPost, "/v1/books", h.requireAuthenticatedUser(h.createUserBookHandler))
	router.HandlerFunc(http.MethodGet, "/v1/books/:userBookId", h.requireAuthenticatedUser(h.showUserBookHandler))
	router.HandlerFunc(http.MethodPut, "/v1/books/:userBookId", h.requireAuthenticatedUser(h.updateUserBookHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/books/:userBookId", h.requireAuthenticatedUser(h.deleteUserBookHandler))
	router.HandlerFunc(http.MethodPost, "/v1/books/:userBookId/photos", h.requireAuthenticatedUser(h.createPhotoHandler))
	router.HandlerFunc(http.MethodGet, "/v1/books/:userBookId/photos", h.requireAuthenticatedUser(h.listPhotosHandler))

	router.HandlerFunc(http.MethodPatch, "/v1/photos/:photoId", h.requireAuthenticatedUser(h.updatePhotoHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/photos/:photoId", h.requireAuthenticatedUser(h.deletePhotoHandler))

	router.HandlerFunc(http.MethodGet, "/v1/suggestions", h.requireAuthenticatedUser(h.listSuggestionsHandler))
	router.HandlerFunc(http.MethodGet, "/v1/genres", h.requireAuthenticatedUser(h.listGenresHandler))

	router.HandlerFunc(http.MethodGet, "/v1/exchange-requests", h.requireAuthenticatedUser(h.listExchangeRequestsHandler))
	router.HandlerFunc(http.MethodPost, "/v1/exchange-requests", h.requireAuthenticatedUser(h.createExchangeRequestHandler))
	router.HandlerFunc(http.MethodGet, "/v1/exchange-requests/:requestId", h.requireAuthenticatedUser(h.showExchangeRequestHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/exchange-requests/:requestId", h.requireAuthenticatedUser(h.respondExchangeRequestHandler))

	router.HandlerFunc(http.MethodPost, "/v1/users", h.registerUserHandler)
	router.HandlerFunc(http.MethodGet, "/v1/users/profile", h.requireAuthenticatedUser(h.showUserHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/users/profile", h.requireAuthenticatedUser(h.updateUserHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/users/profile", h.requireAuthenticatedUser(h.deleteUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/books", h.requireAuthenticatedUser(h.listUserBooksHandler))

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.swaggerSpecHandler)
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.enableCORS(h.metrics(h.authenticate(router))))
}
