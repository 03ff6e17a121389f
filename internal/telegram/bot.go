package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tb "gopkg.in/telebot.v3"

	"github.com/Roma7-7-7/recall-journal/internal/config"
	"github.com/Roma7-7-7/recall-journal/internal/dal"
	"github.com/Roma7-7-7/recall-journal/internal/journal"
)

const (
	commandStart  = "/start"
	commandDue    = "/due"
	commandStreak = "/streak"

	processTimeout = 10 * time.Second
)

type Bot struct {
	bot      *tb.Bot
	repo     dal.Repository
	bindings map[int64]string
	loc      *time.Location

	middlewares []tb.MiddlewareFunc

	log *slog.Logger
}

func NewBot(token string, repo dal.Repository, bindings []config.ChatBinding, loc *time.Location, log *slog.Logger, middlewares ...tb.MiddlewareFunc) (*Bot, error) {
	b, err := tb.NewBot(tb.Settings{
		Token: token,
		Poller: &tb.LongPoller{
			Timeout: 1 * time.Minute,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bindingsMap := make(map[int64]string, len(bindings))
	for _, binding := range bindings {
		bindingsMap[binding.ChatID] = binding.UserID
	}

	return &Bot{
		bot:         b,
		repo:        repo,
		bindings:    bindingsMap,
		loc:         loc,
		middlewares: middlewares,
		log:         log,
	}, nil
}

func (b *Bot) Start() {
	b.bot.Handle(commandStart, b.HandleStart, b.middlewares...)
	b.bot.Handle(commandDue, b.HandleDue, b.middlewares...)
	b.bot.Handle(commandStreak, b.HandleStreak, b.middlewares...)

	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
}

func (b *Bot) HandleStart(m tb.Context) error {
	return m.Reply("Hello, I'm a recall journal bot. I will remind you when journal questions become due. Use /due to check pending recalls and /streak to see your progress.")
}

func (b *Bot) HandleDue(m tb.Context) error {
	ctx, cancel := processCtx()
	defer cancel()

	userID, ok := b.bindings[m.Chat().ID]
	if !ok {
		return m.Reply("this chat is not bound to a journal user")
	}

	count, err := b.repo.CountDueEntries(ctx, userID, journal.Today(b.loc))
	if err != nil {
		b.log.Error("failed to count due entries", "error", err)
		return m.Reply("failed to count due entries")
	}

	if count == 0 {
		return m.Reply("no questions are due today")
	}

	return m.Reply(dueMessage(count))
}

func (b *Bot) HandleStreak(m tb.Context) error {
	ctx, cancel := processCtx()
	defer cancel()

	userID, ok := b.bindings[m.Chat().ID]
	if !ok {
		return m.Reply("this chat is not bound to a journal user")
	}

	stats, err := b.repo.GetUserStats(ctx, userID)
	if err != nil {
		b.log.Error("failed to get user stats", "error", err)
		return m.Reply("failed to get stats")
	}

	return m.Reply(fmt.Sprintf("Current streak: %d\nLongest streak: %d\nAchievements: %d/%d",
		stats.CurrentStreak, stats.LongestStreak, len(stats.UnlockedAchievements), len(journal.Achievements)))
}

// SendDueReminder notifies the bound chat about entries due today. It is a
// no-op when nothing is due.
func (b *Bot) SendDueReminder(ctx context.Context, chatID int64) error {
	userID, ok := b.bindings[chatID]
	if !ok {
		return fmt.Errorf("chat %d is not bound to a user", chatID)
	}

	count, err := b.repo.CountDueEntries(ctx, userID, journal.Today(b.loc))
	if err != nil {
		return fmt.Errorf("count due entries: %w", err)
	}
	if count == 0 {
		b.log.Debug("no due entries", "chat_id", chatID)
		return nil
	}

	_, err = b.bot.Send(tb.ChatID(chatID), dueMessage(count))
	return err
}

func dueMessage(count int) string {
	if count == 1 {
		return "You have 1 question due for recall today"
	}
	return fmt.Sprintf("You have %d questions due for recall today", count)
}

func processCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), processTimeout)
}
