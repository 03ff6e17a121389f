package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type (
	ReminderSchedule struct {
		CheckInterval time.Duration `default:"15m"`
		HourFrom      int           `default:"9"`
		HourTo        int           `default:"21"`
		Location      string        `default:"Europe/Kyiv"`
	}

	Bot struct {
		Dev             bool   `default:"false"`
		TelegramToken   string `envconfig:"TELEGRAM_TOKEN" default:""`
		ChatBindingsRaw string `envconfig:"CHAT_BINDINGS" default:""`
		DBURL           string `envconfig:"DB_URL" default:""`
		Schedule        ReminderSchedule

		ChatBindings []ChatBinding `ignored:"true"`
	}
)

func (s ReminderSchedule) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Location)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	return loc, nil
}

func (s ReminderSchedule) MustTimeLocation() *time.Location {
	loc, err := s.TimeLocation()
	if err != nil {
		panic(fmt.Sprintf("failed to load location %s: %v", s.Location, err))
	}
	return loc
}

func GetBot(ctx context.Context) (*Bot, error) {
	res := &Bot{}
	if err := envconfig.Process("BOT", res); err != nil {
		return nil, fmt.Errorf("parse bot environment: %w", err)
	}

	if !res.Dev {
		if err := setBotProdConfig(ctx, res); err != nil {
			return nil, fmt.Errorf("set bot prod config: %w", err)
		}
	}

	bindings, err := parseChatBindings(res.ChatBindingsRaw)
	if err != nil {
		return nil, err
	}
	res.ChatBindings = bindings

	return validateBot(res)
}

func validateBot(conf *Bot) (*Bot, error) {
	errs := make([]string, 0, 10) //nolint:mnd // 10 is a reasonable default value
	if conf.TelegramToken == "" {
		errs = append(errs, "telegram token is required")
	}
	if conf.DBURL == "" {
		errs = append(errs, "db url is required")
	}
	if len(conf.ChatBindings) == 0 {
		errs = append(errs, "at least one chat binding is required")
	}
	if conf.Schedule.CheckInterval == 0 {
		errs = append(errs, "check interval is required")
	}
	if conf.Schedule.HourFrom < 0 || conf.Schedule.HourFrom > 23 {
		errs = append(errs, fmt.Sprintf("hour from %d must be in range 0-23", conf.Schedule.HourFrom))
	}
	if conf.Schedule.HourTo < 0 || conf.Schedule.HourTo > 23 {
		errs = append(errs, fmt.Sprintf("hour to %d must be in range 0-23", conf.Schedule.HourTo))
	}
	if conf.Schedule.HourFrom >= conf.Schedule.HourTo {
		errs = append(errs, fmt.Sprintf("hour from %d must be less than hour to %d", conf.Schedule.HourFrom, conf.Schedule.HourTo))
	}
	if _, err := conf.Schedule.TimeLocation(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid timezone: %s", err))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(errs, ", "))
	}

	return conf, nil
}

func setBotProdConfig(ctx context.Context, target *Bot) error {
	parameters, err := FetchAWSParams(ctx,
		"/recall-journal/prod/telegram-token",
		"/recall-journal/prod/chat-bindings",
		"/recall-journal/prod/db-url",
	)
	if err != nil {
		return fmt.Errorf("get parameters: %w", err)
	}

	for name, value := range parameters {
		switch name {
		case "/recall-journal/prod/telegram-token":
			target.TelegramToken = value
		case "/recall-journal/prod/chat-bindings":
			target.ChatBindingsRaw = value
		case "/recall-journal/prod/db-url":
			target.DBURL = value
		}
	}

	return nil
}
