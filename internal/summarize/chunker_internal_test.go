package summarize

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"smartsummarizer/internal/models"
)

// makeProse builds well-punctuated text of exactly n words, one sentence per
// ten words.
func makeProse(n int) string {
	var b strings.Builder

	for i := range n {
		b.WriteString(fmt.Sprintf("word%d", i))
		if i%10 == 9 {
			b.WriteString(". ")
		} else {
			b.WriteString(" ")
		}
	}

	return strings.TrimSpace(b.String())
}

// makeUnpunctuated builds punctuation-free text of exactly n words.
func makeUnpunctuated(n int) string {
	var b strings.Builder

	for i := range n {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf("tok%d", i))
	}

	return b.String()
}

// reconstruct strips every chunk's overlap prefix and joins the remainder in
// index order.
func reconstruct(chunks []models.Chunk) string {
	var words []string

	for _, c := range chunks {
		w := strings.Fields(c.Text)
		words = append(words, w[c.OverlapWords:]...)
	}

	return strings.Join(words, " ")
}

func TestSplitChunksReconstructsDocument(t *testing.T) {
	text := makeProse(1200)

	chunks, err := splitChunks(text, 500, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("chunk %d carries index %d", i, c.Index)
		}
	}

	want := models.NormalizeWhitespace(text)
	if got := reconstruct(chunks); got != want {
		t.Fatalf("reconstructed document does not match original")
	}
}

func TestSplitChunksRespectsMaxWords(t *testing.T) {
	chunks, err := splitChunks(makeProse(1200), 500, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range chunks {
		if got := len(strings.Fields(c.Text)); got != c.WordCount {
			t.Fatalf("chunk %d word count mismatch: recorded %d, actual %d", c.Index, c.WordCount, got)
		}

		if c.WordCount > 500 {
			t.Fatalf("chunk %d exceeds budget: %d words", c.Index, c.WordCount)
		}
	}
}

func TestSplitChunksSingleChunkWhenDocumentFits(t *testing.T) {
	text := makeProse(80)

	chunks, err := splitChunks(text, 500, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}

	if chunks[0].OverlapWords != 0 {
		t.Fatalf("expected no overlap on a single chunk, got %d", chunks[0].OverlapWords)
	}

	if chunks[0].Text != models.NormalizeWhitespace(text) {
		t.Fatalf("single chunk does not carry the whole document")
	}
}

func TestSplitChunksPunctuationSparseFallback(t *testing.T) {
	text := makeUnpunctuated(200)

	if !punctuationSparse(text) {
		t.Fatalf("expected text to count as punctuation-sparse")
	}

	chunks, err := splitChunks(text, 90, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for _, c := range chunks {
		if c.WordCount > 90 {
			t.Fatalf("chunk %d exceeds budget: %d words", c.Index, c.WordCount)
		}
	}

	if got := reconstruct(chunks); got != text {
		t.Fatalf("reconstructed document does not match original")
	}
}

func TestSplitChunksOversizedSentenceIsSliced(t *testing.T) {
	giant := makeUnpunctuated(300) + "."
	text := makeProse(100) + " " + giant + " " + makeProse(100)

	chunks, err := splitChunks(text, 120, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range chunks {
		if c.WordCount > 120 {
			t.Fatalf("chunk %d exceeds budget: %d words", c.Index, c.WordCount)
		}
	}

	if got := reconstruct(chunks); got != models.NormalizeWhitespace(text) {
		t.Fatalf("reconstructed document does not match original")
	}
}

func TestSplitChunksEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		if _, err := splitChunks(text, 500, 0); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("expected ErrEmptyInput for %q, got %v", text, err)
		}
	}
}

func TestSplitChunksInputTooShort(t *testing.T) {
	if _, err := splitChunks(makeProse(40), 500, 0); !errors.Is(err, ErrInputTooShort) {
		t.Fatalf("expected ErrInputTooShort, got %v", err)
	}
}

func TestSplitSentencesMergesTinyFragments(t *testing.T) {
	got := splitSentences("Yes. No. Maybe so okay. The final sentence has many words.")

	want := []string{
		"Yes. No. Maybe so okay.",
		"The final sentence has many words.",
	}

	if len(got) != len(want) {
		t.Fatalf("sentence count mismatch: got %d want %d (%q)", len(got), len(want), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d mismatch: got %q want %q", i, got[i], want[i])
		}
	}
}
