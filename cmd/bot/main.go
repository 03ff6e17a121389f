package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Roma7-7-7/recall-journal/internal/config"
	sqlrepo "github.com/Roma7-7-7/recall-journal/internal/dal/sql"
	"github.com/Roma7-7-7/recall-journal/internal/schedule"
	"github.com/Roma7-7-7/recall-journal/internal/telegram"
)

var (
	// Version is set via -ldflags at build time
	Version = "dev" //nolint:gochecknoglobals // must be global to be replaced at build time
	// BuildTime is set via -ldflags at build time
	BuildTime = "unknown" //nolint:gochecknoglobals // must be global to be replaced at build time
)

const (
	exitCodeOK int = iota
	exitCodeConfigParse
	exitCodeDBConnect
	exitCodeBotCreate
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	go func() {
		<-sigs
		cancel()
	}()
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	conf, err := config.GetBot(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get config", "error", err) //nolint:sloglint // app logger is not configured yet
		return exitCodeConfigParse
	}

	log := mustLogger(conf.Dev)
	loc := conf.Schedule.MustTimeLocation()

	log.InfoContext(ctx, "starting bot",
		"version", Version,
		"build_time", BuildTime,
		"config", loggableConfig(conf),
		"current_time_in_location", time.Now().In(loc),
	)
	defer log.InfoContext(ctx, "bot is stopped")

	db, err := sql.Open("sqlite", conf.DBURL)
	if err != nil {
		log.ErrorContext(ctx, "create database connection", "error", err)
		return exitCodeDBConnect
	}
	defer db.Close()

	repo, err := sqlrepo.NewRepository(ctx, db, log)
	if err != nil {
		log.ErrorContext(ctx, "initialize repository", "error", err)
		return exitCodeDBConnect
	}

	bot, err := telegram.NewBot(conf.TelegramToken, repo, conf.ChatBindings, loc, log,
		telegram.Recover(log), telegram.LogErrors(log), telegram.BoundChats(conf.ChatBindings))
	if err != nil {
		log.ErrorContext(ctx, "failed to create bot", "error", err)
		return exitCodeBotCreate
	}

	go func() {
		if err := schedule.StartDueReminders(ctx, conf.Schedule, conf.ChatBindings, bot, log); err != nil {
			log.ErrorContext(ctx, "due reminders schedule stopped", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		bot.Stop()
	}()

	bot.Start()

	return exitCodeOK
}

func mustLogger(dev bool) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	if dev {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(handler)
}

func loggableConfig(conf *config.Bot) map[string]any {
	chatIDs := make([]int64, 0, len(conf.ChatBindings))
	for _, binding := range conf.ChatBindings {
		chatIDs = append(chatIDs, binding.ChatID)
	}
	return map[string]any{
		"dev":      conf.Dev,
		"chat-ids": chatIDs,
		"reminder-schedule": map[string]any{
			"check-interval": fmt.Sprintf("%v", conf.Schedule.CheckInterval),
			"hour-from":      conf.Schedule.HourFrom,
			"hour-to":        conf.Schedule.HourTo,
		},
	}
}
