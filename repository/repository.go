package repository

import (
	"database/sql"
)

type Repository interface {
	books
	genres
	userBooks
	photos
	exchanges
	users
}

// repository implements Repository on a PostgreSQL connection pool.
type repository struct {
	db *sql.DB
}

// New creates a new instance of Repository.
func New(db *sql.DB) *repository {
	return &repository{db: db}
}
