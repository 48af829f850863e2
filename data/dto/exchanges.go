package dto

// CreateExchangeRequestBody defines the request body for CreateExchangeRequest service.
type CreateExchangeRequestBody struct {
	UserBookID int64 `json:"user_book_id"`
}

// RespondExchangeRequestBody carries the owner's decision on a pending request.
type RespondExchangeRequestBody struct {
	Action string `json:"action"`
}
