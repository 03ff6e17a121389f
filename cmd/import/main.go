package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"

	sqlrepo "github.com/Roma7-7-7/recall-journal/internal/dal/sql"
	"github.com/Roma7-7-7/recall-journal/internal/data"
	"github.com/Roma7-7-7/recall-journal/internal/journal"
)

var (
	source string
	dbURL  string
	userID string
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if err := validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	state, err := parseState(source)
	if err != nil {
		fmt.Printf("failed to parse local state: %v\n", err)
		os.Exit(2)
	}

	db, err := sql.Open("sqlite", dbURL)
	if err != nil {
		fmt.Printf("failed to connect to database: %v\n", err)
		os.Exit(3)
	}
	defer db.Close()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo, err := sqlrepo.NewRepository(ctx, db, log)
	if err != nil {
		fmt.Printf("failed to initialize repository: %v\n", err)
		os.Exit(3)
	}

	migrated, err := journal.Migrate(ctx, repo, userID, *state)
	if err != nil {
		fmt.Printf("failed to migrate: %v\n", err)
		os.Exit(4)
	}

	if !migrated {
		fmt.Println("nothing to migrate: local state is empty or remote store already has entries")
		return
	}

	fmt.Printf("done: imported %d entries\n", len(state.Games))
}

func parseState(path string) (*data.LocalState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return data.ParseLocalState(f)
}

func validate() error {
	if source == "" {
		return errors.New("source file is required")
	}

	if dbURL == "" {
		return errors.New("database URL is required")
	}

	if userID == "" {
		return errors.New("user ID is required")
	}

	return nil
}

func init() {
	flag.StringVar(&source, "source", "", "local state JSON file")
	flag.StringVar(&dbURL, "db-url", "", "database URL")
	flag.StringVar(&userID, "user", "", "user ID to import entries for")
	flag.Parse()
}
