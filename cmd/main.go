package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"smartsummarizer/internal/config"
	"smartsummarizer/internal/database"
	"smartsummarizer/internal/extract"
	"smartsummarizer/internal/generation"
	"smartsummarizer/internal/models"
	"smartsummarizer/internal/ratelimiter"
	"smartsummarizer/internal/summarize"

	"github.com/joho/godotenv"
)

type cliFlags struct {
	words     int
	takeaways int
	out       string
	history   int
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	var flags cliFlags
	flag.IntVar(&flags.words, "words", 200, "target summary length in words")
	flag.IntVar(&flags.takeaways, "takeaways", 3, "number of key takeaways")
	flag.StringVar(&flags.out, "out", "", "write the summary to this file instead of stdout")
	flag.IntVar(&flags.history, "history", 0, "print the N most recent runs and exit")
	flag.Parse()

	// A missing .env file is fine; the environment may carry everything.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Failed to load .env file", "error", err)
	}

	cfg := config.LoadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("initialize db: %w", err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()

	if flags.history > 0 {
		return printHistory(ctx, db, flags.history)
	}

	doc, err := loadDocument(ctx, flag.Arg(0), log)
	if err != nil {
		return err
	}

	gen, err := generation.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		return fmt.Errorf("initialize generator: %w", err)
	}

	limiter := ratelimiter.New(cfg.RequestInterval, log)
	defer limiter.Stop()

	pipeline := summarize.New(
		generation.WithRateLimit(gen, limiter),
		summarize.Options{Timeout: cfg.Timeout},
		log,
	)

	spec := models.TargetSpec{SummaryWords: flags.words, TakeawayCount: flags.takeaways}

	start := time.Now()

	result, err := pipeline.Run(ctx, doc, spec)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	log.InfoContext(ctx, "Run finished",
		"documentWords", doc.WordCount(),
		"degraded", result.Degraded,
		"mapReduce", result.UsedMapReduce,
		"durationSeconds", time.Since(start).Seconds())

	if err = writeResult(result, flags.out); err != nil {
		return err
	}

	record := models.RunRecord{
		CreatedAt:     time.Now().UTC(),
		Source:        doc.Source,
		DocumentWords: doc.WordCount(),
		TargetWords:   spec.SummaryWords,
		TakeawayCount: spec.TakeawayCount,
		Summary:       result.Summary,
		Takeaways:     result.Takeaways,
		Degraded:      result.Degraded,
		UsedMapReduce: result.UsedMapReduce,
	}
	if err = db.SaveRun(ctx, record); err != nil {
		log.ErrorContext(ctx, "Failed to save run", "error", err)
	}

	return nil
}

// loadDocument resolves the positional argument into a document: a URL, a
// local file path, or, when absent, text piped on stdin.
func loadDocument(ctx context.Context, source string, log *slog.Logger) (models.Document, error) {
	source = strings.TrimSpace(source)

	switch {
	case source == "":
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return models.Document{}, fmt.Errorf("read stdin: %w", err)
		}

		return extract.Pasted(string(data)), nil
	case extract.IsURL(source):
		return extract.FromURL(ctx, source, log)
	default:
		return extract.FromFile(source)
	}
}

func writeResult(result models.FinalResult, outPath string) error {
	var b strings.Builder

	b.WriteString(result.Summary)
	b.WriteString("\n")

	if len(result.Takeaways) > 0 {
		b.WriteString("\nKey takeaways:\n")
		for _, item := range result.Takeaways {
			b.WriteString("- " + item + "\n")
		}
	}

	if result.Degraded {
		b.WriteString("\nNote: summary derived from partial content.\n")
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(b.String()), 0o600); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}

		return nil
	}

	fmt.Print(b.String())

	return nil
}

func printHistory(ctx context.Context, db *database.Database, limit int) error {
	runs, err := db.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	for _, r := range runs {
		flagsStr := ""
		if r.Degraded {
			flagsStr += " degraded"
		}
		if r.UsedMapReduce {
			flagsStr += " map-reduce"
		}

		fmt.Printf("#%d %s %s %d words%s\n  %s\n",
			r.ID,
			r.CreatedAt.Format(time.RFC3339),
			r.Source,
			r.DocumentWords,
			flagsStr,
			firstLine(r.Summary))
	}

	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
