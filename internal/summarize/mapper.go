package summarize

import (
	"context"
	"strings"
	"sync"

	"smartsummarizer/internal/generation"
	"smartsummarizer/internal/models"

	"github.com/sethvargo/go-retry"
)

const (
	// Per-chunk summary word budgets stay within a floor and a ceiling no
	// matter how the proportional allocation works out.
	chunkSummaryFloorWords   = 80
	chunkSummaryCeilingWords = 200
	proportionalCushion      = 1.2
)

// mapChunks summarizes every chunk independently and reassembles results in
// chunk-index order regardless of completion order.
func (p *Pipeline) mapChunks(
	ctx context.Context,
	chunks []models.Chunk,
	spec models.TargetSpec,
	totalWords int,
) []models.ChunkSummary {
	summaries := make([]models.ChunkSummary, len(chunks))
	if len(chunks) == 0 {
		return summaries
	}

	workerCount := p.maxParallelism
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(chunks) {
		workerCount = len(chunks)
	}

	tasks := make(chan models.Chunk)
	var wg sync.WaitGroup

	for range workerCount {
		wg.Go(func() {
			for chunk := range tasks {
				summaries[chunk.Index] = p.summarizeChunk(ctx, chunk, spec, totalWords)
			}
		})
	}

	for _, chunk := range chunks {
		tasks <- chunk
	}

	close(tasks)
	wg.Wait()

	return summaries
}

func (p *Pipeline) summarizeChunk(
	ctx context.Context,
	chunk models.Chunk,
	spec models.TargetSpec,
	totalWords int,
) models.ChunkSummary {
	budget := proportionalWords(totalWords, chunk.WordCount, spec.SummaryWords)

	text, err := p.generateWithRetry(ctx, chunk.Text, chunkInstruction(budget))
	if err != nil {
		p.log.WarnContext(ctx, "Chunk summarization failed",
			"error", err,
			"chunkIndex", chunk.Index,
			"chunkWords", chunk.WordCount)

		return models.ChunkSummary{ChunkIndex: chunk.Index, Status: models.ChunkFailed}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChunkSummary{ChunkIndex: chunk.Index, Status: models.ChunkDegraded}
	}

	return models.ChunkSummary{ChunkIndex: chunk.Index, Text: text, Status: models.ChunkOK}
}

// generateWithRetry retries transient service failures with jittered
// exponential backoff; permanent failures surface immediately.
func (p *Pipeline) generateWithRetry(
	ctx context.Context,
	text string,
	instruction string,
) (string, error) {
	b := retry.NewExponential(p.retryBaseDelay)
	if p.retryJitter > 0 {
		b = retry.WithJitter(p.retryJitter, b)
	}
	backoff := retry.WithMaxRetries(p.retryAttempts-1, b)

	var out string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var genErr error
		out, genErr = p.gen.Generate(ctx, text, instruction)
		if genErr != nil {
			if generation.IsTransient(genErr) {
				return retry.RetryableError(genErr)
			}

			return genErr
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return out, nil
}

// proportionalWords allocates a chunk's summary budget in proportion to its
// share of the document, with a small cushion.
func proportionalWords(totalWords, chunkWords, finalTarget int) int {
	if totalWords <= 0 {
		return finalTarget
	}

	ratio := float64(chunkWords) / float64(totalWords)
	alloc := int(float64(finalTarget) * ratio * proportionalCushion)

	ceiling := max(chunkSummaryCeilingWords, finalTarget)

	return min(max(alloc, chunkSummaryFloorWords), ceiling)
}
