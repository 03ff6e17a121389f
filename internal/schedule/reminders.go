package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Roma7-7-7/recall-journal/internal/config"
	"github.com/Roma7-7-7/recall-journal/internal/journal"
	"github.com/Roma7-7-7/recall-journal/pkg/cache"
)

const (
	publishTimeout = 1 * time.Minute
	sentTTL        = 24 * time.Hour
)

type (
	Publisher interface {
		SendDueReminder(ctx context.Context, chatID int64) error
	}

	Cache interface {
		Get(key string) (string, bool)
		Set(key, value string, ttl time.Duration)
	}
)

// StartDueReminders periodically notifies bound chats about due entries.
// Each chat gets at most one reminder per day, tracked via TTL cache.
func StartDueReminders(ctx context.Context, conf config.ReminderSchedule, bindings []config.ChatBinding, p Publisher, log *slog.Logger) error {
	loc, err := conf.TimeLocation()
	if err != nil {
		return fmt.Errorf("load schedule location: %w", err)
	}

	var sent Cache = cache.NewInMemory()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(conf.CheckInterval):
			hour := time.Now().In(loc).Hour()
			if hour < conf.HourFrom || hour > conf.HourTo {
				continue
			}
		}

		today := journal.Today(loc)
		for _, binding := range bindings {
			key := sentKey(binding.ChatID, today)
			if _, ok := sent.Get(key); ok {
				continue
			}

			ctx, cancel := context.WithTimeout(ctx, publishTimeout)
			if err := p.SendDueReminder(ctx, binding.ChatID); err != nil {
				log.Error("failed to send due reminder", "error", err, "chat_id", binding.ChatID)
				cancel()
				continue
			}
			cancel()

			sent.Set(key, "sent", sentTTL)
		}
	}
}

func sentKey(chatID int64, day string) string {
	return fmt.Sprintf("%d#%s", chatID, day)
}
