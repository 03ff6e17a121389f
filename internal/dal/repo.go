package dal

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type (
	// StatsUpdate is a partial update of a user stats record; nil fields are
	// left untouched.
	StatsUpdate struct {
		HasOnboarded         *bool
		CurrentStreak        *int
		LongestStreak        *int
		UnlockedAchievements []string
	}

	EntriesRepository interface {
		FindEntries(ctx context.Context, userID string) ([]Entry, error)
		CountEntries(ctx context.Context, userID string) (int, error)
		CountDueEntries(ctx context.Context, userID, today string) (int, error)
		AppendEntry(ctx context.Context, entry Entry) (*Entry, error)
		// PromoteDueEntries flips pending entries whose due date is today or
		// earlier to DUE; returns the number of promoted entries.
		PromoteDueEntries(ctx context.Context, userID, today string) (int, error)
		// UpdateEntryAnswer mutates only submitted answer, status and answered
		// date of an existing entry owned by the user.
		UpdateEntryAnswer(ctx context.Context, entry Entry) error
	}

	StatsRepository interface {
		// GetUserStats returns a zeroed record on first access.
		GetUserStats(ctx context.Context, userID string) (*UserStats, error)
		UpdateUserStats(ctx context.Context, userID string, update StatsUpdate) error
	}

	SettingsRepository interface {
		GetTheme(ctx context.Context, userID string) (string, error)
		SetTheme(ctx context.Context, userID, theme string) error
	}

	Repository interface {
		Transact(ctx context.Context, txFunc func(r Repository) error) error
		EntriesRepository
		StatsRepository
		SettingsRepository
	}
)
