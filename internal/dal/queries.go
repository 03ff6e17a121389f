package dal

import (
	"github.com/Masterminds/squirrel"
)

// AppendEntryQuery builds a query to insert a new observation entry
func AppendEntryQuery(e Entry) squirrel.Sqlizer {
	return squirrel.Insert("observations").
		Columns("id", "user_id", "question", "correct_answer", "submitted_answer", "set_date", "due_date", "answered_date", "status", "delay_days").
		Values(e.ID, e.UserID, e.Question, e.CorrectAnswer, e.SubmittedAnswer, e.SetDate, e.DueDate, e.AnsweredDate, string(e.Status), e.DelayDays).
		PlaceholderFormat(squirrel.Dollar)
}

// FindEntriesQuery builds select and count queries for all entries of a user
func FindEntriesQuery(userID string) (selectQuery, countQuery squirrel.Sqlizer) {
	baseQuery := squirrel.Select().
		From("observations").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	selectQuery = baseQuery.
		Columns("id", "user_id", "question", "correct_answer", "COALESCE(submitted_answer, '')", "set_date", "due_date", "COALESCE(answered_date, '')", "status", "delay_days", "created_at", "updated_at").
		OrderBy("created_at", "id")

	countQuery = baseQuery.Columns("COUNT(*)")

	return selectQuery, countQuery
}

// CountEntriesQuery builds a query to count all entries of a user
func CountEntriesQuery(userID string) squirrel.Sqlizer {
	return squirrel.Select("COUNT(*)").
		From("observations").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
}

// CountDueEntriesQuery builds a query to count entries answerable today,
// including pending entries whose due date has passed but which were not
// promoted yet
func CountDueEntriesQuery(userID, today string) squirrel.Sqlizer {
	return squirrel.Select("COUNT(*)").
		From("observations").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Or{
			squirrel.Eq{"status": string(StatusDue)},
			squirrel.And{
				squirrel.Eq{"status": string(StatusPending)},
				squirrel.LtOrEq{"due_date": today},
			},
		}).
		PlaceholderFormat(squirrel.Dollar)
}

// UpdateEntryAnswerQuery builds a query to record an answer on an entry
func UpdateEntryAnswerQuery(e Entry) squirrel.Sqlizer {
	return squirrel.Update("observations").
		Set("submitted_answer", e.SubmittedAnswer).
		Set("status", string(e.Status)).
		Set("answered_date", e.AnsweredDate).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": e.ID, "user_id": e.UserID}).
		PlaceholderFormat(squirrel.Dollar)
}

// PromoteEntriesQuery builds a query to flip pending entries that reached
// their due date
func PromoteEntriesQuery(userID, today string) squirrel.Sqlizer {
	return squirrel.Update("observations").
		Set("status", string(StatusDue)).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"user_id": userID, "status": string(StatusPending)}).
		Where(squirrel.LtOrEq{"due_date": today}).
		PlaceholderFormat(squirrel.Dollar)
}

// GetUserStatsQuery builds a query to get aggregate stats of a user
func GetUserStatsQuery(userID string) squirrel.Sqlizer {
	return squirrel.Select("user_id", "has_onboarded", "current_streak", "longest_streak", "COALESCE(unlocked_achievements, '[]')", "created_at", "updated_at").
		From("user_stats").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
}

// InsertUserStatsQuery builds a query to create a zeroed stats record
func InsertUserStatsQuery(userID string) squirrel.Sqlizer {
	return squirrel.Insert("user_stats").
		Columns("user_id", "has_onboarded", "current_streak", "longest_streak", "unlocked_achievements").
		Values(userID, false, 0, 0, "[]").
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)
}

// UpdateUserStatsQuery builds a partial update query for a stats record
func UpdateUserStatsQuery(userID string, update StatsUpdate, unlockedJSON string) squirrel.Sqlizer {
	q := squirrel.Update("user_stats").
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	if update.HasOnboarded != nil {
		q = q.Set("has_onboarded", *update.HasOnboarded)
	}
	if update.CurrentStreak != nil {
		q = q.Set("current_streak", *update.CurrentStreak)
	}
	if update.LongestStreak != nil {
		q = q.Set("longest_streak", *update.LongestStreak)
	}
	if update.UnlockedAchievements != nil {
		q = q.Set("unlocked_achievements", unlockedJSON)
	}

	return q
}

// GetThemeQuery builds a query to get the persisted theme preference
func GetThemeQuery(userID string) squirrel.Sqlizer {
	return squirrel.Select("theme").
		From("user_settings").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
}

// SetThemeQuery builds a query to persist the theme preference
func SetThemeQuery(userID, theme string) squirrel.Sqlizer {
	return squirrel.Insert("user_settings").
		Columns("user_id", "theme").
		Values(userID, theme).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET theme = EXCLUDED.theme, updated_at = CURRENT_TIMESTAMP").
		PlaceholderFormat(squirrel.Dollar)
}
