package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/bookswap/data"
)

type exchanges interface {
	CreateExchangeRequest(ctx context.Context, request *data.ExchangeRequest) error
	ResolveExchangeRequest(ctx context.Context, request *data.ExchangeRequest, status, userBookStatus string) error
	GetExchangeRequest(ctx context.Context, ID int64) (*data.ExchangeRequest, error)
	GetAllExchangeRequestsForUser(ctx context.Context, userID int64) ([]*data.ExchangeRequest, error)
}

const exchangeRequestColumns = `
	er.id, er.user_book_id, b.name, er.requester_id, er.owner_id, er.status, er.created_at, er.updated_at`

func scanExchangeRequest(row rowScanner) (*data.ExchangeRequest, error) {
	var request data.ExchangeRequest
	err := row.Scan(
		&request.ID,
		&request.UserBookID,
		&request.BookName,
		&request.RequesterID,
		&request.OwnerID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CreateExchangeRequest moves the ownership record from available to
// requested and inserts the pending request in one transaction. If the
// record is no longer available it returns ErrInvalidState and nothing is
// written; of two concurrent callers at most one succeeds.
func (r *repository) CreateExchangeRequest(ctx context.Context, request *data.ExchangeRequest) error {
	return r.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE user_books
			SET status = $1, version = version + 1
			WHERE id = $2 AND status = $3`,
			data.StatusRequested, request.UserBookID, data.StatusAvailable)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrInvalidState
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO exchange_requests (user_book_id, requester_id, owner_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at`,
			request.UserBookID, request.RequesterID, request.OwnerID, data.ExchangePending,
		).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
		if err != nil {
			return err
		}
		request.Status = data.ExchangePending
		return nil
	})
}

// ResolveExchangeRequest moves a pending request to status and its
// ownership record to userBookStatus in one transaction. A request that is
// no longer pending yields ErrInvalidState and nothing is written.
func (r *repository) ResolveExchangeRequest(ctx context.Context, request *data.ExchangeRequest, status, userBookStatus string) error {
	return r.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var updatedAt time.Time
		err := tx.QueryRowContext(ctx, `
			UPDATE exchange_requests
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3
			RETURNING updated_at`,
			status, request.ID, data.ExchangePending,
		).Scan(&updatedAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInvalidState
			}
			return err
		}
		result, err := tx.ExecContext(ctx, `
			UPDATE user_books
			SET status = $1, version = version + 1
			WHERE id = $2`,
			userBookStatus, request.UserBookID)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrRecordNotFound
		}
		request.Status = status
		request.UpdatedAt = updatedAt
		return nil
	})
}

// GetExchangeRequest retrieves an exchange request by its ID.
func (r *repository) GetExchangeRequest(ctx context.Context, ID int64) (*data.ExchangeRequest, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT ` + exchangeRequestColumns + `
		FROM exchange_requests er
		INNER JOIN user_books ub ON ub.id = er.user_book_id
		INNER JOIN books b ON b.id = ub.book_id
		WHERE er.id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	request, err := scanExchangeRequest(r.db.QueryRowContext(ctx, query, ID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return request, nil
}

// GetAllExchangeRequestsForUser retrieves the requests a user made or
// received, newest first. Each request appears once.
func (r *repository) GetAllExchangeRequestsForUser(ctx context.Context, userID int64) ([]*data.ExchangeRequest, error) {
	query := `
		SELECT ` + exchangeRequestColumns + `
		FROM exchange_requests er
		INNER JOIN user_books ub ON ub.id = er.user_book_id
		INNER JOIN books b ON b.id = ub.book_id
		WHERE er.requester_id = $1 OR er.owner_id = $1
		ORDER BY er.created_at DESC, er.id DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	requests := []*data.ExchangeRequest{}
	for rows.Next() {
		request, err := scanExchangeRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
