package dal

import "time"

const (
	StatusPending           Status = "PENDING"
	StatusDue               Status = "DUE"
	StatusAnsweredCorrect   Status = "ANSWERED_CORRECT"
	StatusAnsweredIncorrect Status = "ANSWERED_INCORRECT"
)

type (
	Status string

	// Entry is one observation cycle: a question set on SetDate that becomes
	// answerable on DueDate. Dates are day keys (YYYY-MM-DD, local time).
	Entry struct {
		ID              string
		UserID          string
		Question        string
		CorrectAnswer   string
		SubmittedAnswer string
		SetDate         string
		DueDate         string
		AnsweredDate    string
		Status          Status
		DelayDays       int
		CreatedAt       time.Time
		UpdatedAt       time.Time
	}

	UserStats struct {
		UserID               string
		HasOnboarded         bool
		CurrentStreak        int
		LongestStreak        int
		UnlockedAchievements []string
		CreatedAt            time.Time
		UpdatedAt            time.Time
	}
)

// Answered reports whether the entry reached a terminal state.
func (e Entry) Answered() bool {
	return e.Status == StatusAnsweredCorrect || e.Status == StatusAnsweredIncorrect
}
