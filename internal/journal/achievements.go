package journal

import "github.com/Roma7-7-7/recall-journal/internal/dal"

type Achievement struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Achievements is the static catalog. Unlock events report the first newly
// unlocked achievement in this order.
var Achievements = []Achievement{ //nolint:gochecknoglobals // static catalog
	{ID: "first_question", Icon: "🌱", Title: "First Step", Description: "You set your first observation question."},
	{ID: "first_answer", Icon: "✅", Title: "Recaller", Description: "You answered your first question correctly."},

	{ID: "streak_3", Icon: "🥉", Title: "Getting Started", Description: "Achieved a 3-day streak."},
	{ID: "streak_7", Icon: "🥈", Title: "Perfect Week", Description: "Achieved a 7-day streak."},
	{ID: "streak_14", Icon: "🥇", Title: "Fortnight", Description: "Achieved a 14-day streak."},
	{ID: "streak_30", Icon: "🏆", Title: "Mind Palace", Description: "Achieved a 30-day streak."},

	{ID: "set_10", Icon: "✍️", Title: "Scribe", Description: "Set 10 questions."},
	{ID: "set_25", Icon: "📜", Title: "Chronicler", Description: "Set 25 questions."},
	{ID: "set_50", Icon: "📚", Title: "Librarian", Description: "Set 50 questions."},

	{ID: "recall_7", Icon: "🧠", Title: "Time Traveler", Description: "Correctly recalled a 7-day old memory."},
	{ID: "recall_14", Icon: "✨", Title: "Deep Memory", Description: "Correctly recalled a 14-day old memory."},

	{ID: "correct_10", Icon: "🎯", Title: "Sharp Shooter", Description: "Answered 10 questions correctly."},
	{ID: "correct_25", Icon: "🧐", Title: "Observer", Description: "Answered 25 questions correctly."},
	{ID: "correct_50", Icon: "🦉", Title: "Wise Owl", Description: "Answered 50 questions correctly."},
}

// AchievementByID returns the catalog entry for an id.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// evaluateAchievements checks the full predicate set against current
// aggregates and appends any newly satisfied ids to the unlocked set. The set
// is append-only; ids are never removed. Returns the ids unlocked in this
// pass, in catalog order.
func evaluateAchievements(stats *dal.UserStats, entries []dal.Entry) []string {
	correct := 0
	longRecall7, longRecall14 := false, false
	for _, e := range entries {
		if e.Status != dal.StatusAnsweredCorrect {
			continue
		}
		correct++
		if e.DelayDays >= 7 {
			longRecall7 = true
		}
		if e.DelayDays >= 14 {
			longRecall14 = true
		}
	}

	satisfied := map[string]bool{
		"first_question": len(entries) >= 1,
		"first_answer":   correct >= 1,

		"streak_3":  stats.CurrentStreak >= 3,
		"streak_7":  stats.CurrentStreak >= 7,
		"streak_14": stats.CurrentStreak >= 14,
		"streak_30": stats.CurrentStreak >= 30,

		"set_10": len(entries) >= 10,
		"set_25": len(entries) >= 25,
		"set_50": len(entries) >= 50,

		"recall_7":  longRecall7,
		"recall_14": longRecall14,

		"correct_10": correct >= 10,
		"correct_25": correct >= 25,
		"correct_50": correct >= 50,
	}

	already := make(map[string]bool, len(stats.UnlockedAchievements))
	for _, id := range stats.UnlockedAchievements {
		already[id] = true
	}

	var unlocked []string
	for _, a := range Achievements {
		if satisfied[a.ID] && !already[a.ID] {
			unlocked = append(unlocked, a.ID)
		}
	}

	if len(unlocked) > 0 {
		stats.UnlockedAchievements = append(stats.UnlockedAchievements, unlocked...)
	}

	return unlocked
}
