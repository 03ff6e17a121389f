package journal

import (
	"context"
	"fmt"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
	"github.com/Roma7-7-7/recall-journal/internal/data"
)

// Migrate copies a locally cached state into the remote store, once: it runs
// only when the local state holds at least one entry and the remote store has
// none for the user. Stats and entries are written in a single transaction,
// so a partial failure leaves the remote store empty and the local cache can
// be retried on next load. Returns true when data was migrated.
func Migrate(ctx context.Context, repo dal.Repository, userID string, local data.LocalState) (bool, error) {
	if len(local.Games) == 0 {
		return false, nil
	}

	remote, err := repo.CountEntries(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("count remote entries: %w", err)
	}
	if remote > 0 {
		return false, nil
	}

	err = repo.Transact(ctx, func(r dal.Repository) error {
		// the zeroed stats record must exist before the partial update
		if _, err := r.GetUserStats(ctx, userID); err != nil {
			return fmt.Errorf("init user stats: %w", err)
		}

		update := dal.StatsUpdate{
			HasOnboarded:         &local.HasOnboarded,
			CurrentStreak:        &local.CurrentStreak,
			LongestStreak:        &local.LongestStreak,
			UnlockedAchievements: local.UnlockedAchievements,
		}
		if update.UnlockedAchievements == nil {
			update.UnlockedAchievements = []string{}
		}
		if err := r.UpdateUserStats(ctx, userID, update); err != nil {
			return fmt.Errorf("migrate user stats: %w", err)
		}

		for _, g := range local.Games {
			entry := dal.Entry{
				UserID:          userID,
				Question:        g.Question,
				CorrectAnswer:   g.CorrectAnswer,
				SubmittedAnswer: g.SubmittedAnswer,
				SetDate:         g.SetDate,
				DueDate:         g.DueDate,
				AnsweredDate:    g.AnsweredDate,
				Status:          dal.Status(g.Status),
				DelayDays:       g.DelayDays,
			}
			if _, err := r.AppendEntry(ctx, entry); err != nil {
				return fmt.Errorf("migrate entry %q: %w", g.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return false, fmt.Errorf("migrate local state: %w", err)
	}

	return true, nil
}
