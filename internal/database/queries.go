package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartsummarizer/internal/models"
)

func (d *Database) SaveRun(ctx context.Context, run models.RunRecord) error {
	query := `insert into runs
	(created_at, source, document_words, target_words, takeaway_count,
	summary, takeaways, degraded, map_reduce)
	values (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := d.db.ExecContext(ctx, query,
		createdAt.Format(time.RFC3339),
		string(run.Source),
		run.DocumentWords,
		run.TargetWords,
		run.TakeawayCount,
		run.Summary,
		strings.Join(run.Takeaways, "\n"),
		run.Degraded,
		run.UsedMapReduce)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (d *Database) RecentRuns(ctx context.Context, limit int) ([]models.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `select id, created_at, source, document_words, target_words,
	takeaway_count, summary, takeaways, degraded, map_reduce
	from runs
	order by id desc
	limit ?`

	rows, err := d.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"operation", "RecentRuns")
		}
	}()

	var runs []models.RunRecord
	for rows.Next() {
		var r models.RunRecord
		var createdAt, source, takeaways string

		if err = rows.Scan(&r.ID, &createdAt, &source, &r.DocumentWords, &r.TargetWords,
			&r.TakeawayCount, &r.Summary, &takeaways, &r.Degraded, &r.UsedMapReduce); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		r.Source = models.SourceKind(source)
		if takeaways != "" {
			r.Takeaways = strings.Split(takeaways, "\n")
		}

		runs = append(runs, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return runs, nil
}
