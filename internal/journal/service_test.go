package journal

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

var errStorage = errors.New("storage unavailable")

// fakeRepo is an in-memory dal.Repository for core tests.
type fakeRepo struct {
	stats      map[string]*dal.UserStats
	entries    map[string][]dal.Entry
	themes     map[string]string
	failWrites bool
	failReads  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		stats:   make(map[string]*dal.UserStats),
		entries: make(map[string][]dal.Entry),
		themes:  make(map[string]string),
	}
}

func (f *fakeRepo) Transact(_ context.Context, txFunc func(r dal.Repository) error) error {
	snapshot := f.clone()
	if err := txFunc(f); err != nil {
		f.stats = snapshot.stats
		f.entries = snapshot.entries
		f.themes = snapshot.themes
		return err
	}
	return nil
}

func (f *fakeRepo) clone() *fakeRepo {
	res := newFakeRepo()
	for k, v := range f.stats {
		statsCopy := *v
		statsCopy.UnlockedAchievements = append([]string(nil), v.UnlockedAchievements...)
		res.stats[k] = &statsCopy
	}
	for k, v := range f.entries {
		res.entries[k] = append([]dal.Entry(nil), v...)
	}
	for k, v := range f.themes {
		res.themes[k] = v
	}
	return res
}

func (f *fakeRepo) FindEntries(_ context.Context, userID string) ([]dal.Entry, error) {
	if f.failReads {
		return nil, errStorage
	}
	return append([]dal.Entry(nil), f.entries[userID]...), nil
}

func (f *fakeRepo) CountEntries(_ context.Context, userID string) (int, error) {
	if f.failReads {
		return 0, errStorage
	}
	return len(f.entries[userID]), nil
}

func (f *fakeRepo) CountDueEntries(_ context.Context, userID, today string) (int, error) {
	count := 0
	for _, e := range f.entries[userID] {
		if e.Status == dal.StatusDue || (e.Status == dal.StatusPending && e.DueDate <= today) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) AppendEntry(_ context.Context, entry dal.Entry) (*dal.Entry, error) {
	if f.failWrites {
		return nil, errStorage
	}
	if entry.ID == "" {
		entry.ID = "fake-id"
	}
	f.entries[entry.UserID] = append(f.entries[entry.UserID], entry)
	return &entry, nil
}

func (f *fakeRepo) UpdateEntryAnswer(_ context.Context, entry dal.Entry) error {
	if f.failWrites {
		return errStorage
	}
	for i, e := range f.entries[entry.UserID] {
		if e.ID == entry.ID {
			f.entries[entry.UserID][i].SubmittedAnswer = entry.SubmittedAnswer
			f.entries[entry.UserID][i].Status = entry.Status
			f.entries[entry.UserID][i].AnsweredDate = entry.AnsweredDate
			return nil
		}
	}
	return dal.ErrNotFound
}

func (f *fakeRepo) PromoteDueEntries(_ context.Context, userID, today string) (int, error) {
	if f.failWrites {
		return 0, errStorage
	}
	count := 0
	for i, e := range f.entries[userID] {
		if e.Status == dal.StatusPending && e.DueDate <= today {
			f.entries[userID][i].Status = dal.StatusDue
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) GetUserStats(_ context.Context, userID string) (*dal.UserStats, error) {
	if f.failReads {
		return nil, errStorage
	}
	if _, ok := f.stats[userID]; !ok {
		f.stats[userID] = &dal.UserStats{UserID: userID, UnlockedAchievements: []string{}}
	}
	statsCopy := *f.stats[userID]
	statsCopy.UnlockedAchievements = append([]string(nil), f.stats[userID].UnlockedAchievements...)
	return &statsCopy, nil
}

func (f *fakeRepo) UpdateUserStats(_ context.Context, userID string, update dal.StatsUpdate) error {
	if f.failWrites {
		return errStorage
	}
	stats, ok := f.stats[userID]
	if !ok {
		return dal.ErrNotFound
	}
	if update.HasOnboarded != nil {
		stats.HasOnboarded = *update.HasOnboarded
	}
	if update.CurrentStreak != nil {
		stats.CurrentStreak = *update.CurrentStreak
	}
	if update.LongestStreak != nil {
		stats.LongestStreak = *update.LongestStreak
	}
	if update.UnlockedAchievements != nil {
		stats.UnlockedAchievements = append([]string(nil), update.UnlockedAchievements...)
	}
	return nil
}

func (f *fakeRepo) GetTheme(_ context.Context, userID string) (string, error) {
	theme, ok := f.themes[userID]
	if !ok {
		return "", dal.ErrNotFound
	}
	return theme, nil
}

func (f *fakeRepo) SetTheme(_ context.Context, userID, theme string) error {
	f.themes[userID] = theme
	return nil
}

func testService(repo dal.Repository) *Service {
	return NewService(repo, time.UTC, slog.New(slog.NewTextHandler(testWriter{}, nil)))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func testSession(userID string) *Session {
	return &Session{
		UserID: userID,
		Today:  testToday,
		Stats:  dal.UserStats{UserID: userID, UnlockedAchievements: []string{}},
	}
}

func TestService_SetQuestion(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	sess := testSession("user-1")

	entry, events, err := svc.SetQuestion(context.Background(), sess, "what did I read?", "the paper", 1)
	require.NoError(t, err)

	assert.Equal(t, dal.StatusPending, entry.Status)
	assert.Equal(t, "2024-03-11", entry.DueDate)
	require.NotNil(t, events.UnlockedAchievement)
	assert.Equal(t, "first_question", events.UnlockedAchievement.ID)
	assert.Nil(t, events.StreakMilestone)

	// persisted
	stored, err := repo.FindEntries(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, entry.ID, stored[0].ID)
}

func TestService_SetQuestion_Invalid(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	sess := testSession("user-1")

	_, _, err := svc.SetQuestion(context.Background(), sess, " ", "a", 1)
	require.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Empty(t, sess.Entries)

	stored, err := repo.FindEntries(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestService_SubmitAnswer_Correct(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	sess := testSession("user-1")

	entry, _, err := svc.SetQuestion(context.Background(), sess, "capital of France?", "Paris", 0)
	require.NoError(t, err)
	require.Equal(t, dal.StatusDue, entry.Status)

	answered, events, err := svc.SubmitAnswer(context.Background(), sess, entry.ID, "  paris ")
	require.NoError(t, err)

	assert.Equal(t, dal.StatusAnsweredCorrect, answered.Status)
	assert.Equal(t, "  paris ", answered.SubmittedAnswer)
	assert.Equal(t, testToday, answered.AnsweredDate)
	assert.Equal(t, 1, sess.Stats.CurrentStreak)
	assert.Equal(t, 1, sess.Stats.LongestStreak)
	require.NotNil(t, events.StreakMilestone)
	assert.True(t, events.StreakMilestone.NewLongest)
	require.NotNil(t, events.UnlockedAchievement)
	assert.Equal(t, "first_answer", events.UnlockedAchievement.ID)
}

func TestService_SubmitAnswer_Incorrect(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	sess := testSession("user-1")
	sess.Stats.CurrentStreak = 4
	sess.Stats.LongestStreak = 4

	entry, _, err := svc.SetQuestion(context.Background(), sess, "capital of France?", "Paris", 0)
	require.NoError(t, err)

	answered, events, err := svc.SubmitAnswer(context.Background(), sess, entry.ID, "London")
	require.NoError(t, err)

	assert.Equal(t, dal.StatusAnsweredIncorrect, answered.Status)
	assert.Zero(t, sess.Stats.CurrentStreak)
	assert.Equal(t, 4, sess.Stats.LongestStreak)
	assert.Nil(t, events.StreakMilestone)
}

func TestService_SubmitAnswer_NotDue(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	sess := testSession("user-1")

	entry, _, err := svc.SetQuestion(context.Background(), sess, "q", "a", 3)
	require.NoError(t, err)

	before := append([]dal.Entry(nil), sess.Entries...)
	_, _, err = svc.SubmitAnswer(context.Background(), sess, entry.ID, "a")
	require.ErrorIs(t, err, ErrEntryNotDue)
	assert.Equal(t, before, sess.Entries)
	assert.Zero(t, sess.Stats.CurrentStreak)
}

func TestService_SubmitAnswer_Reattempt(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	sess := testSession("user-1")

	entry, _, err := svc.SetQuestion(context.Background(), sess, "q", "a", 0)
	require.NoError(t, err)

	_, _, err = svc.SubmitAnswer(context.Background(), sess, entry.ID, "wrong")
	require.NoError(t, err)

	// terminal state: second attempt is rejected without changes
	before := append([]dal.Entry(nil), sess.Entries...)
	_, _, err = svc.SubmitAnswer(context.Background(), sess, entry.ID, "a")
	require.ErrorIs(t, err, ErrEntryNotDue)
	assert.Equal(t, before, sess.Entries)
}

func TestService_SubmitAnswer_UnknownEntry(t *testing.T) {
	svc := testService(newFakeRepo())
	sess := testSession("user-1")

	_, _, err := svc.SubmitAnswer(context.Background(), sess, "missing", "a")
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestService_SingleUnlockEventPerBatch(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	sess := testSession("user-1")

	// nine correct answers and streak 2 already recorded; answering the tenth
	// (a 7-day recall) newly satisfies streak_3, set_10, recall_7 and
	// correct_10 in a single pass
	sess.Stats.CurrentStreak = 2
	sess.Stats.LongestStreak = 9
	sess.Stats.UnlockedAchievements = []string{"first_question", "first_answer"}
	for i := 0; i < 9; i++ {
		entry, err := NewEntry("user-1", "q", "a", 0, testToday)
		require.NoError(t, err)
		entry.Status = dal.StatusAnsweredCorrect
		sess.Entries = append(sess.Entries, entry)
	}
	target := dal.Entry{
		ID:            "target",
		UserID:        "user-1",
		Question:      "q",
		CorrectAnswer: "a",
		SetDate:       "2024-03-03",
		DueDate:       testToday,
		Status:        dal.StatusDue,
		DelayDays:     7,
	}
	sess.Entries = append(sess.Entries, target)

	_, events, err := svc.SubmitAnswer(context.Background(), sess, target.ID, "a")
	require.NoError(t, err)

	// everything persisted, only the first in catalog order surfaced
	assert.Contains(t, sess.Stats.UnlockedAchievements, "streak_3")
	assert.Contains(t, sess.Stats.UnlockedAchievements, "set_10")
	assert.Contains(t, sess.Stats.UnlockedAchievements, "recall_7")
	assert.Contains(t, sess.Stats.UnlockedAchievements, "correct_10")
	require.NotNil(t, events.UnlockedAchievement)
	assert.Equal(t, "streak_3", events.UnlockedAchievement.ID)
}

func TestService_OptimisticWrites(t *testing.T) {
	// failed durable writes are logged, the in-memory snapshot still advances
	repo := newFakeRepo()
	repo.failWrites = true
	svc := testService(repo)
	sess := testSession("user-1")

	entry, events, err := svc.SetQuestion(context.Background(), sess, "q", "a", 0)
	require.NoError(t, err)
	require.NotNil(t, events.UnlockedAchievement)

	_, _, err = svc.SubmitAnswer(context.Background(), sess, entry.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Stats.CurrentStreak)

	// nothing reached storage
	repo.failWrites = false
	stored, err := repo.FindEntries(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestService_Load_ReadFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failReads = true
	svc := testService(repo)

	_, err := svc.Load(context.Background(), "user-1")
	require.ErrorIs(t, err, errStorage)
}

func TestService_CompleteOnboarding(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	sess := testSession("user-1")

	_, err := repo.GetUserStats(context.Background(), "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.CompleteOnboarding(context.Background(), sess))
	assert.True(t, sess.Stats.HasOnboarded)

	err = svc.CompleteOnboarding(context.Background(), sess)
	require.ErrorIs(t, err, ErrAlreadyOnboarded)
}

func TestService_EndToEnd(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo)
	sess := testSession("user-1")

	// day D: create with delayDays=1
	entry, _, err := svc.SetQuestion(context.Background(), sess, "first article title?", "the morning brief", 1)
	require.NoError(t, err)
	assert.Equal(t, dal.StatusPending, entry.Status)
	assert.Empty(t, DueEntries(sess.Entries, sess.Today))
	upcoming := UpcomingEntries(sess.Entries)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "2024-03-11", upcoming[0].DueDate)

	// day D+1: reload promotes the entry
	nextDay := "2024-03-11"
	sess.Today = nextDay
	sess.Entries = PromoteDue(sess.Entries, nextDay)

	due := DueEntries(sess.Entries, nextDay)
	require.Len(t, due, 1)
	assert.Equal(t, dal.StatusDue, due[0].Status)
	assert.Empty(t, UpcomingEntries(sess.Entries))

	// exact correct answer
	answered, _, err := svc.SubmitAnswer(context.Background(), sess, entry.ID, "the morning brief")
	require.NoError(t, err)
	assert.Equal(t, dal.StatusAnsweredCorrect, answered.Status)
	assert.Equal(t, 1, sess.Stats.CurrentStreak)

	history := HistoryEntries(sess.Entries)
	require.Len(t, history, 1)
	assert.Equal(t, entry.ID, history[0].ID)
}
