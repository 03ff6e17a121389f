package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

func (r *Repository) GetTheme(ctx context.Context, userID string) (string, error) {
	query := dal.GetThemeQuery(userID)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("build select query: %w", err)
	}

	var theme string
	if err = r.client.QueryRowContext(ctx, sqlQuery, args...).Scan(&theme); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", dal.ErrNotFound
		}
		return "", fmt.Errorf("get theme: %w", err)
	}

	return theme, nil
}

func (r *Repository) SetTheme(ctx context.Context, userID, theme string) error {
	query := dal.SetThemeQuery(userID, theme)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err = r.client.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}

	return nil
}
