package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	appctx "github.com/Roma7-7-7/recall-journal/internal/context"
	"github.com/Roma7-7-7/recall-journal/internal/dal"
	"github.com/Roma7-7-7/recall-journal/internal/data"
	"github.com/Roma7-7-7/recall-journal/internal/journal"
)

type (
	// EntryView hides the correct answer until the entry is answered.
	EntryView struct {
		ID              string `json:"id"`
		Question        string `json:"question"`
		Status          string `json:"status"`
		SetDate         string `json:"set_date"`
		DueDate         string `json:"due_date"`
		DelayDays       int    `json:"delay_days"`
		CorrectAnswer   string `json:"correct_answer,omitempty"`
		SubmittedAnswer string `json:"submitted_answer,omitempty"`
		AnsweredDate    string `json:"answered_date,omitempty"`
	}

	StatsView struct {
		HasOnboarded         bool     `json:"has_onboarded"`
		CurrentStreak        int      `json:"current_streak"`
		LongestStreak        int      `json:"longest_streak"`
		UnlockedAchievements []string `json:"unlocked_achievements"`
	}

	CreateEntryRequest struct {
		Question  string `json:"question" validate:"required,min=1"`
		Answer    string `json:"answer" validate:"required,min=1"`
		DelayDays int    `json:"delay_days" validate:"min=0"`
	}

	SubmitAnswerRequest struct {
		Answer string `json:"answer" validate:"required"`
	}

	// Migrator imports a client-exported local state into the remote store.
	Migrator func(ctx context.Context, userID string, local data.LocalState) (bool, error)

	JournalHandler struct {
		svc *journal.Service
		log *slog.Logger
	}
)

func NewJournalHandler(svc *journal.Service, log *slog.Logger) *JournalHandler {
	return &JournalHandler{
		svc: svc,
		log: log,
	}
}

func (h *JournalHandler) State(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	sess, err := h.svc.Load(c.Request().Context(), userID)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to load session", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"today":    sess.Today,
		"stats":    toStatsView(sess.Stats),
		"due":      toEntryViews(journal.DueEntries(sess.Entries, sess.Today)),
		"upcoming": toEntryViews(journal.UpcomingEntries(sess.Entries)),
		"history":  toEntryViews(journal.HistoryEntries(sess.Entries)),
	})
}

func (h *JournalHandler) CreateEntry(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	var req CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	sess, err := h.svc.Load(c.Request().Context(), userID)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to load session", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	entry, events, err := h.svc.SetQuestion(c.Request().Context(), sess, req.Question, req.Answer, req.DelayDays)
	if err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to create entry", "error", err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"entry":  toEntryView(*entry),
		"stats":  toStatsView(sess.Stats),
		"events": events,
	})
}

func (h *JournalHandler) SubmitAnswer(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())
	entryID := c.Param("id")

	var req SubmitAnswerRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	sess, err := h.svc.Load(c.Request().Context(), userID)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to load session", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	entry, events, err := h.svc.SubmitAnswer(c.Request().Context(), sess, entryID, req.Answer)
	if err != nil {
		if errors.Is(err, journal.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Message: "entry not found"})
		}
		if errors.Is(err, journal.ErrEntryNotDue) {
			// answering a non-due entry changes nothing
			return c.JSON(http.StatusOK, echo.Map{
				"stats":  toStatsView(sess.Stats),
				"events": journal.Events{},
			})
		}
		h.log.ErrorContext(c.Request().Context(), "failed to submit answer", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"entry":  toEntryView(*entry),
		"stats":  toStatsView(sess.Stats),
		"events": events,
	})
}

func (h *JournalHandler) CompleteOnboarding(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	sess, err := h.svc.Load(c.Request().Context(), userID)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to load session", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	if err := h.svc.CompleteOnboarding(c.Request().Context(), sess); err != nil && !errors.Is(err, journal.ErrAlreadyOnboarded) {
		h.log.ErrorContext(c.Request().Context(), "failed to complete onboarding", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *JournalHandler) Achievements(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	sess, err := h.svc.Load(c.Request().Context(), userID)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to load session", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"catalog":  journal.Achievements,
		"unlocked": sess.Stats.UnlockedAchievements,
	})
}

func (h *JournalHandler) Migrate(migrator Migrator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := appctx.MustUserIDFromContext(c.Request().Context())

		state, err := data.ParseLocalState(c.Request().Body)
		if err != nil {
			h.log.DebugContext(c.Request().Context(), "failed to parse local state", "error", err)
			return c.JSON(http.StatusBadRequest, BadRequestError)
		}

		migrated, err := migrator(c.Request().Context(), userID, *state)
		if err != nil {
			h.log.ErrorContext(c.Request().Context(), "failed to migrate local state", "error", err)
			return c.JSON(http.StatusInternalServerError, InternalServerError)
		}

		return c.JSON(http.StatusOK, echo.Map{"migrated": migrated})
	}
}

func toEntryView(e dal.Entry) EntryView {
	res := EntryView{
		ID:        e.ID,
		Question:  e.Question,
		Status:    string(e.Status),
		SetDate:   e.SetDate,
		DueDate:   e.DueDate,
		DelayDays: e.DelayDays,
	}
	if e.Answered() {
		res.CorrectAnswer = e.CorrectAnswer
		res.SubmittedAnswer = e.SubmittedAnswer
		res.AnsweredDate = e.AnsweredDate
	}
	return res
}

func toEntryViews(entries []dal.Entry) []EntryView {
	res := make([]EntryView, len(entries))
	for i, e := range entries {
		res[i] = toEntryView(e)
	}
	return res
}

func toStatsView(stats dal.UserStats) StatsView {
	unlocked := stats.UnlockedAchievements
	if unlocked == nil {
		unlocked = []string{}
	}
	return StatsView{
		HasOnboarded:         stats.HasOnboarded,
		CurrentStreak:        stats.CurrentStreak,
		LongestStreak:        stats.LongestStreak,
		UnlockedAchievements: unlocked,
	}
}
