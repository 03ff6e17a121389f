package sql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

func (r *Repository) FindEntries(ctx context.Context, userID string) ([]dal.Entry, error) {
	selectQuery, _ := dal.FindEntriesQuery(userID)

	sql, args, err := selectQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.client.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	defer rows.Close()

	res := make([]dal.Entry, 0, 50) //nolint:mnd // reasonable default capacity
	for rows.Next() {
		var e dal.Entry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Question,
			&e.CorrectAnswer,
			&e.SubmittedAnswer,
			&e.SetDate,
			&e.DueDate,
			&e.AnsweredDate,
			&e.Status,
			&e.DelayDays,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		res = append(res, e)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate entries: %w", rows.Err())
	}

	return res, nil
}

func (r *Repository) CountEntries(ctx context.Context, userID string) (int, error) {
	query := dal.CountEntriesQuery(userID)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	total := 0
	if err := r.client.QueryRowContext(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}

	return total, nil
}

func (r *Repository) CountDueEntries(ctx context.Context, userID, today string) (int, error) {
	query := dal.CountDueEntriesQuery(userID, today)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	total := 0
	if err := r.client.QueryRowContext(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count due entries: %w", err)
	}

	return total, nil
}

func (r *Repository) AppendEntry(ctx context.Context, entry dal.Entry) (*dal.Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := dal.AppendEntryQuery(entry)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	if _, err = r.client.ExecContext(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}

	return &entry, nil
}

func (r *Repository) UpdateEntryAnswer(ctx context.Context, entry dal.Entry) error {
	query := dal.UpdateEntryAnswerQuery(entry)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	res, err := r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update entry answer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return dal.ErrNotFound
	}

	return nil
}

func (r *Repository) PromoteDueEntries(ctx context.Context, userID, today string) (int, error) {
	query := dal.PromoteEntriesQuery(userID, today)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update query: %w", err)
	}

	res, err := r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("promote due entries: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return int(affected), nil
}
