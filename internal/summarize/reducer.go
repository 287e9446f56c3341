package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smartsummarizer/internal/models"
)

// maxReduceRounds bounds the iterative reduction; actual rounds grow with
// log(documentWords / maxChunkWords), so 8 covers documents far beyond a
// hundred pages.
const maxReduceRounds = 8

// reduce merges per-chunk summaries into the final summary and takeaways,
// re-chunking and re-summarizing as long as the combined text exceeds the
// service input budget.
func (p *Pipeline) reduce(
	ctx context.Context,
	summaries []models.ChunkSummary,
	spec models.TargetSpec,
) (models.FinalResult, error) {
	texts, degraded := collectOK(summaries)
	if len(texts) == 0 {
		return models.FinalResult{}, fmt.Errorf("%w: all %d chunk summaries failed",
			ErrAggregationFailed, len(summaries))
	}

	combined := strings.Join(texts, "\n\n")

	for round := 1; wordCount(combined) > p.maxChunkWords; round++ {
		if round > maxReduceRounds {
			return models.FinalResult{}, fmt.Errorf(
				"%w: combined summaries still exceed the input budget after %d rounds",
				ErrAggregationFailed, maxReduceRounds)
		}

		p.log.InfoContext(ctx, "Combined summaries exceed input budget; running another reduction round",
			"round", round,
			"combinedWords", wordCount(combined),
			"maxChunkWords", p.maxChunkWords)

		chunks, err := splitChunks(combined, p.maxChunkWords, p.overlapWords)
		if err != nil {
			if errors.Is(err, ErrInputTooShort) {
				// Below the chunker's minimum it fits a single call anyway.
				break
			}

			return models.FinalResult{}, fmt.Errorf("re-chunk combined summaries: %w", err)
		}

		roundSummaries := p.mapChunks(ctx, chunks, spec, wordCount(combined))

		roundTexts, roundDegraded := collectOK(roundSummaries)
		if len(roundTexts) == 0 {
			return models.FinalResult{}, fmt.Errorf("%w: reduction round %d lost all chunks",
				ErrAggregationFailed, round)
		}

		degraded = degraded || roundDegraded
		combined = strings.Join(roundTexts, "\n\n")
	}

	raw, err := p.generateWithRetry(ctx, combined, finalInstruction(spec))
	if err != nil {
		return models.FinalResult{}, fmt.Errorf("final reduction call: %w", err)
	}

	summary, takeaways, err := parseSections(raw)
	if err != nil {
		return models.FinalResult{}, err
	}

	takeaways, short := applyTakeawayBounds(takeaways, spec.TakeawayCount)

	return models.FinalResult{
		Summary:       summary,
		Takeaways:     takeaways,
		Degraded:      degraded || short,
		UsedMapReduce: true,
	}, nil
}

// collectOK gathers usable summaries in chunk-index order. Any skipped entry
// degrades the final result instead of failing it.
func collectOK(summaries []models.ChunkSummary) ([]string, bool) {
	var texts []string
	degraded := false

	for _, s := range summaries {
		if s.Status != models.ChunkOK {
			degraded = true

			continue
		}

		texts = append(texts, s.Text)
	}

	return texts, degraded
}

// applyTakeawayBounds truncates surplus takeaways and reports whether the
// list came up short; fewer takeaways than requested are returned as-is
// rather than padded or fabricated.
func applyTakeawayBounds(takeaways []string, want int) ([]string, bool) {
	if len(takeaways) > want {
		return takeaways[:want], false
	}

	return takeaways, len(takeaways) < want
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
