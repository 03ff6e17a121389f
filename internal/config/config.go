package config

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultAWSRegion = "eu-central-1"

type (
	// ChatBinding ties a Telegram chat to a journal user for reminders.
	ChatBinding struct {
		ChatID int64
		UserID string
	}

	// User is an allowed account with its login secret.
	User struct {
		ID     string
		Secret string
	}
)

// parseChatBindings parses a "chatID:userID,chatID:userID" list.
func parseChatBindings(bindingsStr string) ([]ChatBinding, error) {
	if bindingsStr == "" {
		return nil, nil
	}

	parts := strings.Split(bindingsStr, ",")
	bindings := make([]ChatBinding, 0, len(parts))
	for _, p := range parts {
		chatIDStr, userID, ok := strings.Cut(strings.TrimSpace(p), ":")
		if !ok || userID == "" {
			return nil, fmt.Errorf("parse chat bindings: invalid binding %q", p)
		}
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse chat bindings: invalid chat ID %q: %w", chatIDStr, err)
		}
		bindings = append(bindings, ChatBinding{ChatID: chatID, UserID: userID})
	}

	return bindings, nil
}

// parseUsers parses a "userID:secret,userID:secret" list.
func parseUsers(usersStr string) ([]User, error) {
	if usersStr == "" {
		return nil, nil
	}

	parts := strings.Split(usersStr, ",")
	users := make([]User, 0, len(parts))
	for _, p := range parts {
		id, secret, ok := strings.Cut(strings.TrimSpace(p), ":")
		if !ok || id == "" || secret == "" {
			return nil, fmt.Errorf("parse users: invalid user entry %q", p)
		}
		users = append(users, User{ID: id, Secret: secret})
	}

	return users, nil
}
