package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

type (
	// Session is an explicit per-request snapshot of one user's aggregate
	// state. Operations mutate the snapshot first and mirror the change to
	// durable storage; a failed write is logged, not rolled back, so the
	// snapshot may run ahead of storage until the next Load.
	Session struct {
		UserID  string
		Today   string
		Stats   dal.UserStats
		Entries []dal.Entry
	}

	// Events carries the UI-facing signals produced by one mutation.
	Events struct {
		StreakMilestone     *StreakMilestone `json:"streak_milestone,omitempty"`
		UnlockedAchievement *Achievement     `json:"unlocked_achievement,omitempty"`
	}

	Service struct {
		repo dal.Repository
		loc  *time.Location
		log  *slog.Logger
	}
)

func NewService(repo dal.Repository, loc *time.Location, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		loc:  loc,
		log:  log,
	}
}

// Load reconciles a session snapshot from storage. Pending entries that
// reached their due date are promoted both in the snapshot and in storage;
// a failed storage-side promotion is logged only, the snapshot stays correct.
func (s *Service) Load(ctx context.Context, userID string) (*Session, error) {
	var (
		stats   *dal.UserStats
		entries []dal.Entry
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		if stats, err = s.repo.GetUserStats(egCtx, userID); err != nil {
			return fmt.Errorf("load user stats: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if entries, err = s.repo.FindEntries(egCtx, userID); err != nil {
			return fmt.Errorf("load entries: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	today := Today(s.loc)
	entries = PromoteDue(entries, today)
	if _, err := s.repo.PromoteDueEntries(ctx, userID, today); err != nil {
		s.log.ErrorContext(ctx, "failed to persist due promotion", "error", err, "user_id", userID)
	}

	return &Session{
		UserID:  userID,
		Today:   today,
		Stats:   *stats,
		Entries: entries,
	}, nil
}

// SetQuestion creates an entry committing to a hidden answer and re-evaluates
// achievements against the grown entry set.
func (s *Service) SetQuestion(ctx context.Context, sess *Session, question, answer string, delayDays int) (*dal.Entry, Events, error) {
	entry, err := NewEntry(sess.UserID, question, answer, delayDays, sess.Today)
	if err != nil {
		return nil, Events{}, err
	}

	sess.Entries = append(sess.Entries, entry)
	unlocked := evaluateAchievements(&sess.Stats, sess.Entries)

	if _, err := s.repo.AppendEntry(ctx, entry); err != nil {
		s.log.ErrorContext(ctx, "failed to append entry", "error", err, "user_id", sess.UserID)
	}
	if len(unlocked) > 0 {
		s.persistUnlocked(ctx, sess)
	}

	return &sess.Entries[len(sess.Entries)-1], s.events(nil, unlocked), nil
}

// SubmitAnswer answers a DUE entry, updates streak counters and re-evaluates
// achievements. Answering an entry that is not DUE changes nothing and
// returns ErrEntryNotDue; an unknown id returns ErrEntryNotFound.
func (s *Service) SubmitAnswer(ctx context.Context, sess *Session, entryID, submitted string) (*dal.Entry, Events, error) {
	var entry *dal.Entry
	for i := range sess.Entries {
		if sess.Entries[i].ID == entryID {
			entry = &sess.Entries[i]
			break
		}
	}
	if entry == nil {
		return nil, Events{}, ErrEntryNotFound
	}

	correct, err := Answer(entry, submitted, sess.Today)
	if err != nil {
		return nil, Events{}, err
	}

	milestone := applyAnswer(&sess.Stats, correct)
	unlocked := evaluateAchievements(&sess.Stats, sess.Entries)

	if err := s.repo.UpdateEntryAnswer(ctx, *entry); err != nil {
		s.log.ErrorContext(ctx, "failed to update entry answer", "error", err, "user_id", sess.UserID, "entry_id", entry.ID)
	}
	update := dal.StatsUpdate{
		CurrentStreak: &sess.Stats.CurrentStreak,
		LongestStreak: &sess.Stats.LongestStreak,
	}
	if len(unlocked) > 0 {
		update.UnlockedAchievements = sess.Stats.UnlockedAchievements
	}
	if err := s.repo.UpdateUserStats(ctx, sess.UserID, update); err != nil {
		s.log.ErrorContext(ctx, "failed to update user stats", "error", err, "user_id", sess.UserID)
	}

	return entry, s.events(milestone, unlocked), nil
}

// CompleteOnboarding marks onboarding done; the flag is set once and never
// reset.
func (s *Service) CompleteOnboarding(ctx context.Context, sess *Session) error {
	if sess.Stats.HasOnboarded {
		return ErrAlreadyOnboarded
	}

	sess.Stats.HasOnboarded = true
	onboarded := true
	if err := s.repo.UpdateUserStats(ctx, sess.UserID, dal.StatsUpdate{HasOnboarded: &onboarded}); err != nil {
		s.log.ErrorContext(ctx, "failed to update user stats", "error", err, "user_id", sess.UserID)
	}

	return nil
}

func (s *Service) persistUnlocked(ctx context.Context, sess *Session) {
	if err := s.repo.UpdateUserStats(ctx, sess.UserID, dal.StatsUpdate{
		UnlockedAchievements: sess.Stats.UnlockedAchievements,
	}); err != nil {
		s.log.ErrorContext(ctx, "failed to persist unlocked achievements", "error", err, "user_id", sess.UserID)
	}
}

// events builds the event set for one mutation. Even when several
// achievements unlock in a single pass only the first one, in catalog order,
// is surfaced; the rest unlock silently.
func (s *Service) events(milestone *StreakMilestone, unlocked []string) Events {
	res := Events{StreakMilestone: milestone}
	if len(unlocked) > 0 {
		if a, ok := AchievementByID(unlocked[0]); ok {
			res.UnlockedAchievement = &a
		}
	}
	return res
}
