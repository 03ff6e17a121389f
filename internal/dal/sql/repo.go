package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

type (
	Client interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
		QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
		QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	}

	Repository struct {
		db     *sql.DB
		client Client
		log    *slog.Logger
	}
)

func NewRepository(ctx context.Context, db *sql.DB, log *slog.Logger) (*Repository, error) {
	res := &Repository{db: db, client: db, log: log}
	if err := res.migrate(ctx); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return res, nil
}

func (r *Repository) Transact(ctx context.Context, txFunc func(r dal.Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // ignore rollback errors

	if err = txFunc(&Repository{db: r.db, client: tx, log: r.log}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
