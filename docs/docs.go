// Package docs registers the OpenAPI document served at /spec.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/v1/healthcheck": {
            "get": {"tags": ["health"], "summary": "Report service availability", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/users": {
            "post": {
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterUserRequestBody"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/data.User"}}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/v1/users/profile": {
            "get": {"tags": ["users"], "summary": "Show the authenticated user's profile", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/data.User"}}}},
            "patch": {
                "tags": ["users"],
                "summary": "Update the authenticated user's profile",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateUserRequestBody"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/data.User"}}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            },
            "delete": {"tags": ["users"], "summary": "Delete the authenticated user with their books and requests", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/users/books": {
            "get": {
                "tags": ["users"],
                "summary": "List the books of a user",
                "parameters": [{"in": "query", "name": "user_id", "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/data.UserBook"}}}}
            }
        },
        "/v1/books": {
            "get": {
                "tags": ["books"],
                "summary": "Search books available for exchange",
                "parameters": [
                    {"in": "query", "name": "query", "type": "string"},
                    {"in": "query", "name": "author", "type": "string"},
                    {"in": "query", "name": "genres", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/data.UserBook"}}}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "tags": ["books"],
                "summary": "List a book for exchange",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateUserBookRequestBody"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/data.UserBook"}}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/v1/books/{userBookId}": {
            "parameters": [{"in": "path", "name": "userBookId", "required": true, "type": "integer"}],
            "get": {"tags": ["books"], "summary": "Show a listed book", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/data.UserBook"}}, "404": {"description": "Not Found"}}},
            "put": {
                "tags": ["books"],
                "summary": "Update the condition or location of a listed book",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateUserBookRequestBody"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/data.UserBook"}}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {"tags": ["books"], "summary": "Remove a listed book", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/v1/books/{userBookId}/photos": {
            "parameters": [{"in": "path", "name": "userBookId", "required": true, "type": "integer"}],
            "get": {"tags": ["photos"], "summary": "List the photos of a listed book", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/data.Photo"}}}}},
            "post": {
                "tags": ["photos"],
                "summary": "Add a photo to a listed book",
                "consumes": ["multipart/form-data", "application/json"],
                "parameters": [{"in": "formData", "name": "photo", "type": "file"}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/data.Photo"}}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/v1/photos/{photoId}": {
            "parameters": [{"in": "path", "name": "photoId", "required": true, "type": "integer"}],
            "patch": {
                "tags": ["photos"],
                "summary": "Point a photo at another hosted asset",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdatePhotoRequestBody"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/data.Photo"}}}
            },
            "delete": {"tags": ["photos"], "summary": "Delete a photo", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/suggestions": {
            "get": {
                "tags": ["books"],
                "summary": "Suggest catalog books matching a query",
                "parameters": [{"in": "query", "name": "query", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/data.BookSuggestion"}}}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/v1/genres": {
            "get": {"tags": ["genres"], "summary": "List genres with the number of books in each", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/data.Genre"}}}}}
        },
        "/v1/exchange-requests": {
            "get": {"tags": ["exchange-requests"], "summary": "List requests the user made or received", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/data.ExchangeRequest"}}}}},
            "post": {
                "tags": ["exchange-requests"],
                "summary": "Request a listed book",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateExchangeRequestBody"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/data.ExchangeRequest"}}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/exchange-requests/{requestId}": {
            "parameters": [{"in": "path", "name": "requestId", "required": true, "type": "integer"}],
            "get": {"tags": ["exchange-requests"], "summary": "Show an exchange request", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/data.ExchangeRequest"}}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "patch": {
                "tags": ["exchange-requests"],
                "summary": "Accept or reject a pending request",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RespondExchangeRequestBody"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/data.ExchangeRequest"}}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        }
    },
    "definitions": {
        "data.User": {"type": "object", "properties": {"id": {"type": "integer"}, "created_at": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "is_superuser": {"type": "boolean"}}},
        "data.Book": {"type": "object", "properties": {"book_id": {"type": "integer"}, "name": {"type": "string"}, "author": {"type": "string"}, "overview": {"type": "string"}, "genres": {"type": "array", "items": {"type": "string"}}}},
        "data.UserBook": {"type": "object", "properties": {"user_book_id": {"type": "integer"}, "user_id": {"type": "integer"}, "book": {"$ref": "#/definitions/data.Book"}, "condition": {"type": "string"}, "location": {"type": "string"}, "status": {"type": "string", "enum": ["available", "requested", "exchanged"]}, "created_at": {"type": "string"}}},
        "data.Photo": {"type": "object", "properties": {"photo_id": {"type": "integer"}, "user_book_id": {"type": "integer"}, "url": {"type": "string"}, "blurhash": {"type": "string"}, "created_at": {"type": "string"}}},
        "data.ExchangeRequest": {"type": "object", "properties": {"exchange_request_id": {"type": "integer"}, "user_book_id": {"type": "integer"}, "book_name": {"type": "string"}, "requester_id": {"type": "integer"}, "owner_id": {"type": "integer"}, "status": {"type": "string", "enum": ["pending", "accepted", "rejected", "completed"]}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "data.BookSuggestion": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "author": {"type": "string"}, "overview": {"type": "string"}, "genres": {"type": "string"}}},
        "data.Genre": {"type": "object", "properties": {"id": {"type": "integer"}, "genre": {"type": "string"}, "books_count": {"type": "integer"}}},
        "dto.RegisterUserRequestBody": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.UpdateUserRequestBody": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}}},
        "dto.CreateUserBookRequestBody": {"type": "object", "properties": {"volume_id": {"type": "string"}, "name": {"type": "string"}, "author": {"type": "string"}, "overview": {"type": "string"}, "genres": {"type": "array", "items": {"type": "string"}}, "condition": {"type": "string"}, "location": {"type": "string"}}},
        "dto.UpdateUserBookRequestBody": {"type": "object", "properties": {"condition": {"type": "string"}, "location": {"type": "string"}}},
        "dto.AttachPhotoRequestBody": {"type": "object", "properties": {"url": {"type": "string"}}},
        "dto.UpdatePhotoRequestBody": {"type": "object", "properties": {"url": {"type": "string"}}},
        "dto.CreateExchangeRequestBody": {"type": "object", "properties": {"user_book_id": {"type": "integer"}}},
        "dto.RespondExchangeRequestBody": {"type": "object", "properties": {"action": {"type": "string", "enum": ["accept", "reject"]}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bookswap API",
	Description:      "API service for listing physical books and exchanging them between users.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
