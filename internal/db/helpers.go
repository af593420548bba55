package db

import (
	"context"
	"database/sql"
)

// WithTx runs fn inside one transaction, rolling back on error or panic.
func WithTx(ctx context.Context, database *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := database.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
