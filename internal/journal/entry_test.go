package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

const testToday = "2024-03-10"

func TestNewEntry(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		answer     string
		delayDays  int
		wantStatus dal.Status
		wantDue    string
		wantErr    error
	}{
		{name: "due immediately", question: "what did I eat?", answer: "soup", delayDays: 0, wantStatus: dal.StatusDue, wantDue: "2024-03-10"},
		{name: "due tomorrow", question: "what did I eat?", answer: "soup", delayDays: 1, wantStatus: dal.StatusPending, wantDue: "2024-03-11"},
		{name: "due in a week", question: "what did I eat?", answer: "soup", delayDays: 7, wantStatus: dal.StatusPending, wantDue: "2024-03-17"},
		{name: "empty question", question: "   ", answer: "soup", delayDays: 1, wantErr: ErrEmptyQuestion},
		{name: "empty answer", question: "what did I eat?", answer: "\t", delayDays: 1, wantErr: ErrEmptyAnswer},
		{name: "negative delay", question: "what did I eat?", answer: "soup", delayDays: -1, wantErr: ErrNegativeDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewEntry("user-1", tt.question, tt.answer, tt.delayDays, testToday)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, entry.ID)
			assert.Equal(t, testToday, entry.SetDate)
			assert.Equal(t, tt.wantDue, entry.DueDate)
			assert.Equal(t, tt.wantStatus, entry.Status)
			assert.Equal(t, tt.delayDays, entry.DelayDays)
			assert.Empty(t, entry.SubmittedAnswer)
			assert.Empty(t, entry.AnsweredDate)
		})
	}
}

func TestNewEntry_DueDateInvariant(t *testing.T) {
	// dueDate must equal setDate advanced by delayDays for any delay
	for delay := 0; delay <= 60; delay++ {
		entry, err := NewEntry("user-1", "q", "a", delay, testToday)
		require.NoError(t, err)

		want, err := AddDays(testToday, delay)
		require.NoError(t, err)
		assert.Equal(t, want, entry.DueDate)
		assert.Equal(t, delay == 0, entry.Status == dal.StatusDue)
	}
}

func TestPromoteDue(t *testing.T) {
	entries := []dal.Entry{
		{ID: "1", Status: dal.StatusPending, DueDate: "2024-03-09"},
		{ID: "2", Status: dal.StatusPending, DueDate: "2024-03-10"},
		{ID: "3", Status: dal.StatusPending, DueDate: "2024-03-11"},
		{ID: "4", Status: dal.StatusAnsweredCorrect, DueDate: "2024-03-01"},
	}

	promoted := PromoteDue(entries, testToday)

	assert.Equal(t, dal.StatusDue, promoted[0].Status)
	assert.Equal(t, dal.StatusDue, promoted[1].Status)
	assert.Equal(t, dal.StatusPending, promoted[2].Status)
	assert.Equal(t, dal.StatusAnsweredCorrect, promoted[3].Status)
}

func TestPromoteDue_Idempotent(t *testing.T) {
	entries := []dal.Entry{
		{ID: "1", Status: dal.StatusPending, DueDate: "2024-03-09"},
		{ID: "2", Status: dal.StatusPending, DueDate: "2024-03-12"},
	}

	once := PromoteDue(entries, testToday)
	snapshot := make([]dal.Entry, len(once))
	copy(snapshot, once)

	twice := PromoteDue(once, testToday)
	assert.Equal(t, snapshot, twice)
}

func TestAnswer(t *testing.T) {
	tests := []struct {
		name        string
		correct     string
		submitted   string
		wantCorrect bool
	}{
		{name: "exact match", correct: "Paris", submitted: "Paris", wantCorrect: true},
		{name: "case insensitive", correct: "Paris", submitted: "paris", wantCorrect: true},
		{name: "surrounding whitespace", correct: "Paris", submitted: "  paris ", wantCorrect: true},
		{name: "wrong answer", correct: "Paris", submitted: "London", wantCorrect: false},
		{name: "inner whitespace differs", correct: "New York", submitted: "NewYork", wantCorrect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := dal.Entry{ID: "1", Status: dal.StatusDue, CorrectAnswer: tt.correct}

			correct, err := Answer(&entry, tt.submitted, testToday)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, correct)
			// submitted answer is stored as given, untrimmed
			assert.Equal(t, tt.submitted, entry.SubmittedAnswer)
			assert.Equal(t, testToday, entry.AnsweredDate)
			if tt.wantCorrect {
				assert.Equal(t, dal.StatusAnsweredCorrect, entry.Status)
			} else {
				assert.Equal(t, dal.StatusAnsweredIncorrect, entry.Status)
			}
		})
	}
}

func TestAnswer_NotDue(t *testing.T) {
	for _, status := range []dal.Status{dal.StatusPending, dal.StatusAnsweredCorrect, dal.StatusAnsweredIncorrect} {
		t.Run(string(status), func(t *testing.T) {
			entry := dal.Entry{ID: "1", Status: status, CorrectAnswer: "Paris"}
			before := entry

			_, err := Answer(&entry, "Paris", testToday)
			require.ErrorIs(t, err, ErrEntryNotDue)
			assert.Equal(t, before, entry)
		})
	}
}
