package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"carelog/internal/backend"
	"carelog/internal/config"
	"carelog/internal/core"
	"carelog/internal/journal"
	applog "carelog/internal/log"
	"carelog/internal/stats"
)

const usage = `carelog - a local journal of care and emotional labor

Usage:
  carelog log -task <type> -recipient <type> -weight <1-5> -minutes <5-300> [-notes <text>] [-visible]
  carelog list
  carelog delete -id <record-id>
  carelog stats
`

func main() {
	// Load .env file for local development (ignore errors when absent)
	_ = godotenv.Load()

	// Setup structured logging
	cfg := config.Load()
	logger, levelErr := newLogger(cfg.LogLevel)
	applog.SetDefault(logger)
	if levelErr != nil {
		logger.Error("Configuration validation failed", "error", levelErr)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	// Initialize persistence backend
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger)
	result, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			"error", err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	store := journal.NewStore(result.Blob)
	store.Load(ctx)

	if err := run(ctx, os.Args[1], os.Args[2:], store); err != nil {
		logger.Error("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

// newLogger builds the app logger from the configured level. The logger is
// usable even when the level string is invalid (it falls back to info), so
// the caller can report the returned error through it.
func newLogger(logLevel string) (*applog.Logger, error) {
	level, err := config.ParseLogLevel(logLevel)
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}),
	})
	return logger, err
}

func run(ctx context.Context, command string, args []string, store *journal.Store) error {
	switch command {
	case "log":
		return runLog(ctx, args, store)
	case "list":
		return runList(store)
	case "delete":
		return runDelete(ctx, args, store)
	case "stats":
		return runStats(store)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLog(ctx context.Context, args []string, store *journal.Store) error {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	task := fs.String("task", "", "task type label, e.g. \"Emotional Support\"")
	recipient := fs.String("recipient", "", "recipient type label, e.g. \"Peer\"")
	weight := fs.Int("weight", 0, "emotional weight, 1-5")
	minutes := fs.Int("minutes", 0, "time spent in minutes, 5-300")
	notes := fs.String("notes", "", "optional notes")
	visible := fs.Bool("visible", false, "was this labor acknowledged by others")
	if err := fs.Parse(args); err != nil {
		return err
	}

	record, err := store.Create(ctx, core.Draft{
		TaskType:         core.TaskType(*task),
		RecipientType:    core.RecipientType(*recipient),
		EmotionalWeight:  *weight,
		TimeSpentMinutes: *minutes,
		Notes:            *notes,
		WasVisible:       *visible,
	})
	if err != nil {
		return err
	}

	fmt.Printf("logged %s (%s, %d min)\n", record.ID, record.TaskType, record.TimeSpentMinutes)
	return nil
}

func runList(store *journal.Store) error {
	records := store.All()
	if len(records) == 0 {
		fmt.Println("no records yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tTASK\tRECIPIENT\tWEIGHT\tMINUTES\tVISIBLE\tNOTES")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%t\t%s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04"),
			r.TaskType, r.RecipientType,
			r.EmotionalWeight, r.TimeSpentMinutes, r.WasVisible, r.Notes)
	}
	return w.Flush()
}

func runDelete(ctx context.Context, args []string, store *journal.Store) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "record id to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing -id")
	}

	return store.Delete(ctx, *id)
}

func runStats(store *journal.Store) error {
	summary := stats.New(store).Summary()

	fmt.Printf("records:              %d\n", summary.RecordCount)
	fmt.Printf("total hours:          %.1f\n", summary.TotalHours)
	fmt.Printf("invisible hours:      %.1f\n", summary.InvisibleHours)
	fmt.Printf("emotional weight sum: %d\n", summary.TotalWeight)

	if len(summary.ByTaskType) > 0 {
		fmt.Println("\nby task type:")
		for _, t := range core.TaskTypes() {
			if count := summary.ByTaskType[t]; count > 0 {
				fmt.Printf("  %-20s %d\n", t, count)
			}
		}
	}

	if len(summary.ByRecipient) > 0 {
		fmt.Println("\nby recipient:")
		for _, r := range core.RecipientTypes() {
			if count := summary.ByRecipient[r]; count > 0 {
				fmt.Printf("  %-20s %d\n", r, count)
			}
		}
	}
	return nil
}
