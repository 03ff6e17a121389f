package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

func (r *Repository) GetUserStats(ctx context.Context, userID string) (*dal.UserStats, error) {
	stats, err := r.getUserStats(ctx, userID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, dal.ErrNotFound) {
		return nil, err
	}

	// first access: create a zeroed record
	query := dal.InsertUserStatsQuery(userID)
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}
	if _, err = r.client.ExecContext(ctx, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("insert user stats: %w", err)
	}

	return r.getUserStats(ctx, userID)
}

func (r *Repository) UpdateUserStats(ctx context.Context, userID string, update dal.StatsUpdate) error {
	unlockedJSON := ""
	if update.UnlockedAchievements != nil {
		marshaled, err := json.Marshal(update.UnlockedAchievements)
		if err != nil {
			return fmt.Errorf("marshal unlocked achievements: %w", err)
		}
		unlockedJSON = string(marshaled)
	}

	query := dal.UpdateUserStatsQuery(userID, update, unlockedJSON)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err = r.client.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("update user stats: %w", err)
	}

	return nil
}

func (r *Repository) getUserStats(ctx context.Context, userID string) (*dal.UserStats, error) {
	query := dal.GetUserStatsQuery(userID)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	var stats dal.UserStats
	var unlockedJSON string
	err = r.client.QueryRowContext(ctx, sqlQuery, args...).Scan(
		&stats.UserID,
		&stats.HasOnboarded,
		&stats.CurrentStreak,
		&stats.LongestStreak,
		&unlockedJSON,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dal.ErrNotFound
		}
		return nil, fmt.Errorf("get user stats: %w", err)
	}

	if err = json.Unmarshal([]byte(unlockedJSON), &stats.UnlockedAchievements); err != nil {
		return nil, fmt.Errorf("unmarshal unlocked achievements: %w", err)
	}

	return &stats, nil
}
