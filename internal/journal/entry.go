package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

var (
	ErrEmptyQuestion    = errors.New("question must not be empty")
	ErrEmptyAnswer      = errors.New("answer must not be empty")
	ErrNegativeDelay    = errors.New("delay days must not be negative")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrEntryNotDue      = errors.New("entry is not due")
	ErrAlreadyOnboarded = errors.New("onboarding already completed")
)

// NewEntry creates an entry for a question set today. The entry is DUE right
// away when delayDays is zero, PENDING otherwise.
func NewEntry(userID, question, answer string, delayDays int, today string) (dal.Entry, error) {
	if strings.TrimSpace(question) == "" {
		return dal.Entry{}, ErrEmptyQuestion
	}
	if strings.TrimSpace(answer) == "" {
		return dal.Entry{}, ErrEmptyAnswer
	}
	if delayDays < 0 {
		return dal.Entry{}, ErrNegativeDelay
	}

	dueDate, err := AddDays(today, delayDays)
	if err != nil {
		return dal.Entry{}, fmt.Errorf("compute due date: %w", err)
	}

	status := dal.StatusPending
	if delayDays == 0 {
		status = dal.StatusDue
	}

	return dal.Entry{
		ID:            uuid.NewString(),
		UserID:        userID,
		Question:      question,
		CorrectAnswer: answer,
		SetDate:       today,
		DueDate:       dueDate,
		Status:        status,
		DelayDays:     delayDays,
	}, nil
}

// PromoteDue flips pending entries that reached their due date to DUE, in
// place. Idempotent; runs on every load before views are computed.
func PromoteDue(entries []dal.Entry, today string) []dal.Entry {
	for i := range entries {
		if entries[i].Status == dal.StatusPending && entries[i].DueDate <= today {
			entries[i].Status = dal.StatusDue
		}
	}
	return entries
}

// Answer records a submitted answer on a DUE entry and moves it to a terminal
// state. Comparison ignores case and surrounding whitespace; the submitted
// answer is stored as given. Entries not in DUE state are left untouched and
// ErrEntryNotDue is returned.
func Answer(entry *dal.Entry, submitted, today string) (correct bool, err error) {
	if entry.Status != dal.StatusDue {
		return false, ErrEntryNotDue
	}

	correct = answerMatches(entry.CorrectAnswer, submitted)

	entry.SubmittedAnswer = submitted
	entry.AnsweredDate = today
	if correct {
		entry.Status = dal.StatusAnsweredCorrect
	} else {
		entry.Status = dal.StatusAnsweredIncorrect
	}

	return correct, nil
}

func answerMatches(correct, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(correct), strings.TrimSpace(submitted))
}
