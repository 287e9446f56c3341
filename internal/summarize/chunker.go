package summarize

import (
	"fmt"
	"strings"

	"smartsummarizer/internal/models"
)

const (
	minDocumentWords    = 60
	pseudoSentenceWords = 30
	minSentenceWords    = 4
)

// splitChunks splits normalized text into an ordered sequence of bounded
// chunks, preferring sentence boundaries. Consecutive chunks share an
// overlapWords-word tail so per-chunk summaries keep local context. No chunk
// ever exceeds maxWords.
func splitChunks(text string, maxWords, overlapWords int) ([]models.Chunk, error) {
	text = models.NormalizeWhitespace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	if got := len(strings.Fields(text)); got < minDocumentWords {
		return nil, fmt.Errorf("%w: %d words, need at least %d", ErrInputTooShort, got, minDocumentWords)
	}

	if overlapWords < 0 || overlapWords >= maxWords {
		overlapWords = 0
	}

	var (
		chunks         []models.Chunk
		current        []string
		currentOverlap int
	)

	appendChunk := func(words []string, overlap int) {
		chunks = append(chunks, models.Chunk{
			Index:        len(chunks),
			Text:         strings.Join(words, " "),
			WordCount:    len(words),
			OverlapWords: overlap,
		})
	}

	carryTail := func(words []string) []string {
		if overlapWords == 0 {
			return nil
		}

		tail := words[max(len(words)-overlapWords, 0):]
		next := make([]string, len(tail))
		copy(next, tail)

		return next
	}

	for _, sentence := range splitSentences(text) {
		words := strings.Fields(sentence)

		for len(current)+len(words) > maxWords {
			if len(current) <= currentOverlap {
				// The sentence cannot fit any chunk on its own; slice it.
				room := maxWords - len(current)
				current = append(current, words[:room]...)
				words = words[room:]
			}

			appendChunk(current, currentOverlap)
			current = carryTail(current)
			currentOverlap = len(current)
		}

		current = append(current, words...)
	}

	if len(current) > currentOverlap {
		appendChunk(current, currentOverlap)
	}

	return chunks, nil
}

// splitSentences breaks text into sentences on terminating punctuation. Text
// with too little punctuation to form boundaries (code, IDs, raw logs) is
// grouped into fixed-width pseudo-sentences instead.
func splitSentences(text string) []string {
	if punctuationSparse(text) {
		return pseudoSentences(text)
	}

	return mergeTinySentences(splitOnTerminators(text))
}

func punctuationSparse(text string) bool {
	count := strings.Count(text, ".") +
		strings.Count(text, "!") +
		strings.Count(text, "?")

	return count < max(1, len(text)/1000)
}

func pseudoSentences(text string) []string {
	words := strings.Fields(text)

	var sentences []string
	for start := 0; start < len(words); start += pseudoSentenceWords {
		end := min(start+pseudoSentenceWords, len(words))
		sentences = append(sentences, strings.Join(words[start:end], " "))
	}

	return sentences
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

// splitOnTerminators splits after runs of sentence-ending punctuation
// followed by a space. The text is already whitespace-normalized, so word
// separators are single spaces.
func splitOnTerminators(text string) []string {
	var parts []string

	start := 0
	for i := 0; i < len(text); i++ {
		if !isTerminator(text[i]) {
			continue
		}

		end := i
		for end+1 < len(text) && isTerminator(text[end+1]) {
			end++
		}

		if end+1 < len(text) && text[end+1] == ' ' {
			parts = append(parts, text[start:end+1])
			start = end + 2
		}

		i = end
	}

	if start < len(text) {
		parts = append(parts, text[start:])
	}

	return parts
}

// mergeTinySentences folds fragments shorter than minSentenceWords (initials,
// abbreviations, stray numbering) into their neighbors.
func mergeTinySentences(parts []string) []string {
	var merged []string
	var buf string

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if len(strings.Fields(part)) < minSentenceWords {
			if buf == "" {
				buf = part
			} else {
				buf += " " + part
			}

			if len(strings.Fields(buf)) >= minSentenceWords {
				merged = append(merged, buf)
				buf = ""
			}

			continue
		}

		if buf != "" {
			merged = append(merged, buf)
			buf = ""
		}

		merged = append(merged, part)
	}

	if buf != "" {
		merged = append(merged, buf)
	}

	return merged
}
