package telegram

import (
	"fmt"
	"log/slog"

	tb "gopkg.in/telebot.v3"

	"github.com/Roma7-7-7/recall-journal/internal/config"
)

func Recover(log *slog.Logger) tb.MiddlewareFunc {
	return func(next tb.HandlerFunc) tb.HandlerFunc {
		return func(c tb.Context) error {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic occurred", "panic", r)
				}
			}()
			return next(c)
		}
	}
}

func LogErrors(log *slog.Logger) tb.MiddlewareFunc {
	return func(next tb.HandlerFunc) tb.HandlerFunc {
		return func(c tb.Context) error {
			err := next(c)
			if err != nil {
				log.Error("failed to process message", "error", err)
			}
			return err
		}
	}
}

func BoundChats(bindings []config.ChatBinding) tb.MiddlewareFunc {
	allowed := make(map[int64]struct{}, len(bindings))
	for _, binding := range bindings {
		allowed[binding.ChatID] = struct{}{}
	}
	return func(next tb.HandlerFunc) tb.HandlerFunc {
		return func(c tb.Context) error {
			chatID := c.Chat().ID
			if _, ok := allowed[chatID]; !ok {
				return fmt.Errorf("chat %d is not allowed", chatID)
			}

			return next(c)
		}
	}
}
