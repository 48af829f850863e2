package data

import (
	"time"

	"github.com/emzola/bookswap/internal/validator"
)

// Exchange request statuses. ExchangeCompleted is part of the stored
// vocabulary but no operation moves a request into it.
const (
	ExchangePending   = "pending"
	ExchangeAccepted  = "accepted"
	ExchangeRejected  = "rejected"
	ExchangeCompleted = "completed"
)

// Actions an owner may take on a pending request.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// ExchangeRequest defines one user's request for another user's book.
// OwnerID is captured when the request is created.
type ExchangeRequest struct {
	ID          int64     `json:"exchange_request_id"`
	UserBookID  int64     `json:"user_book_id"`
	BookName    string    `json:"book_name,omitempty"`
	RequesterID int64     `json:"requester_id"`
	OwnerID     int64     `json:"owner_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ValidateExchangeAction(v *validator.Validator, action string) {
	v.Check(action != "", "action", "must be provided")
	v.Check(validator.PermittedValue(action, ActionAccept, ActionReject), "action", "must be either accept or reject")
}
