package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// withTx runs fn inside a transaction bounded by a 5 second timeout. fn must
// issue its statements on the context it is given. The transaction is
// committed when fn returns nil and rolled back when it returns an error or
// panics.
func (r *repository) withTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
