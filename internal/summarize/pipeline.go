package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smartsummarizer/internal/generation"
	"smartsummarizer/internal/models"
)

const (
	minSummaryWords = 50
	maxSummaryWords = 2000
	minTakeaways    = 1
	maxTakeaways    = 10

	// The service input budget. Fixed here rather than exposed to callers;
	// tests inject smaller budgets through Options.
	defaultMaxChunkWords  = 2400
	defaultOverlapWords   = 200
	defaultMaxParallelism = 4
	defaultTimeout        = 5 * time.Minute

	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
	defaultRetryJitter    = 100 * time.Millisecond
)

// Options configures a Pipeline. Zero fields fall back to production
// defaults. A negative OverlapWords disables chunk overlap.
type Options struct {
	MaxChunkWords  int
	OverlapWords   int
	MaxParallelism int
	Timeout        time.Duration
}

// Pipeline turns a document into a summary plus key takeaways through a
// chunk, map, reduce flow. Stateless between Run invocations.
type Pipeline struct {
	gen generation.Generator
	log *slog.Logger

	maxChunkWords  int
	overlapWords   int
	maxParallelism int
	timeout        time.Duration

	retryAttempts  uint64
	retryBaseDelay time.Duration
	retryJitter    time.Duration
}

func New(gen generation.Generator, opts Options, log *slog.Logger) *Pipeline {
	p := &Pipeline{
		gen:            gen,
		log:            log,
		maxChunkWords:  opts.MaxChunkWords,
		overlapWords:   opts.OverlapWords,
		maxParallelism: opts.MaxParallelism,
		timeout:        opts.Timeout,
		retryAttempts:  defaultRetryAttempts,
		retryBaseDelay: defaultRetryBaseDelay,
		retryJitter:    defaultRetryJitter,
	}

	if p.maxChunkWords <= 0 {
		p.maxChunkWords = defaultMaxChunkWords
	}
	if p.overlapWords == 0 {
		p.overlapWords = defaultOverlapWords
	}
	if p.overlapWords < 0 || p.overlapWords >= p.maxChunkWords {
		p.overlapWords = 0
	}
	if p.maxParallelism <= 0 {
		p.maxParallelism = defaultMaxParallelism
	}
	if p.timeout <= 0 {
		p.timeout = defaultTimeout
	}

	return p
}

// Run is the only entry point: validate, then either a single direct call for
// documents that fit the input budget, or chunk, concurrent map and iterative
// reduce. The returned result is complete or degraded, never partial.
func (p *Pipeline) Run(
	ctx context.Context,
	doc models.Document,
	spec models.TargetSpec,
) (models.FinalResult, error) {
	if err := validateSpec(spec); err != nil {
		return models.FinalResult{}, err
	}

	words := doc.WordCount()
	if words == 0 {
		return models.FinalResult{}, ErrEmptyInput
	}
	if words < minDocumentWords {
		return models.FinalResult{}, fmt.Errorf("%w: %d words, need at least %d",
			ErrInputTooShort, words, minDocumentWords)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if words <= p.maxChunkWords {
		p.log.InfoContext(ctx, "Document fits a single call; skipping map-reduce",
			"documentWords", words,
			"source", doc.Source)

		return p.singlePass(ctx, doc, spec)
	}

	chunks, err := splitChunks(doc.Text, p.maxChunkWords, p.overlapWords)
	if err != nil {
		return models.FinalResult{}, err
	}

	p.log.InfoContext(ctx, "Document chunked",
		"documentWords", words,
		"chunkCount", len(chunks),
		"maxChunkWords", p.maxChunkWords,
		"source", doc.Source)

	// The map stage gets most of the budget but must leave room for the
	// final reduction call: a timed-out map degrades the result, while a
	// timed-out reduce would lose it entirely.
	mapCtx, mapCancel := context.WithTimeout(ctx, p.timeout*3/4)
	summaries := p.mapChunks(mapCtx, chunks, spec, words)
	mapCancel()

	result, err := p.reduce(ctx, summaries, spec)
	if err != nil {
		return models.FinalResult{}, err
	}

	p.log.InfoContext(ctx, "Summarization finished",
		"degraded", result.Degraded,
		"takeawayCount", len(result.Takeaways))

	return result, nil
}

// singlePass issues one generation call asking for summary and takeaways
// together, preserving full context for short documents.
func (p *Pipeline) singlePass(
	ctx context.Context,
	doc models.Document,
	spec models.TargetSpec,
) (models.FinalResult, error) {
	raw, err := p.generateWithRetry(ctx, doc.Text, finalInstruction(spec))
	if err != nil {
		return models.FinalResult{}, fmt.Errorf("single-pass call: %w", err)
	}

	summary, takeaways, err := parseSections(raw)
	if err != nil {
		return models.FinalResult{}, err
	}

	takeaways, short := applyTakeawayBounds(takeaways, spec.TakeawayCount)

	return models.FinalResult{
		Summary:   summary,
		Takeaways: takeaways,
		Degraded:  short,
	}, nil
}

func validateSpec(spec models.TargetSpec) error {
	if spec.SummaryWords < minSummaryWords || spec.SummaryWords > maxSummaryWords {
		return fmt.Errorf("%w: summary length %d out of range [%d,%d]",
			ErrInvalidRequest, spec.SummaryWords, minSummaryWords, maxSummaryWords)
	}

	if spec.TakeawayCount < minTakeaways || spec.TakeawayCount > maxTakeaways {
		return fmt.Errorf("%w: takeaway count %d out of range [%d,%d]",
			ErrInvalidRequest, spec.TakeawayCount, minTakeaways, maxTakeaways)
	}

	return nil
}
