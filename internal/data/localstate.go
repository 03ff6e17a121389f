package data

import (
	"encoding/json"
	"fmt"
	"io"
)

type (
	// LocalState is the serialized blob the client kept under a fixed local
	// storage key before the remote store existed.
	LocalState struct {
		HasOnboarded         bool         `json:"hasOnboarded"`
		CurrentStreak        int          `json:"currentStreak"`
		LongestStreak        int          `json:"longestStreak"`
		Games                []LocalEntry `json:"games"`
		UnlockedAchievements []string     `json:"unlockedAchievements"`
	}

	LocalEntry struct {
		ID              string `json:"id"`
		Question        string `json:"question"`
		CorrectAnswer   string `json:"correctAnswer"`
		SubmittedAnswer string `json:"submittedAnswer,omitempty"`
		SetDate         string `json:"setDate"`
		DueDate         string `json:"dueDate"`
		AnsweredDate    string `json:"answeredDate,omitempty"`
		Status          string `json:"status"`
		DelayDays       int    `json:"delayDays"`
	}

	ValidationError struct {
		InvalidEntries []int
	}
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: invalidEntries=%v", e.InvalidEntries)
}

// ParseLocalState decodes and validates a local-cache blob. Entries missing a
// question, an answer or a set/due date are reported by index.
func ParseLocalState(in io.Reader) (*LocalState, error) {
	var state LocalState
	if err := json.NewDecoder(in).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode local state: %w", err)
	}

	invalid := make([]int, 0, 10) //nolint:mnd // 10 is the expected capacity
	for i, g := range state.Games {
		if g.Question == "" || g.CorrectAnswer == "" || g.SetDate == "" || g.DueDate == "" {
			invalid = append(invalid, i)
		}
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{InvalidEntries: invalid}
	}

	return &state, nil
}
