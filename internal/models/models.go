package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

type SourceKind string

const (
	SourcePasted SourceKind = "pasted"
	SourceFile   SourceKind = "file"
	SourceURL    SourceKind = "url"
)

// Document is a whitespace-normalized input text. Immutable once created.
type Document struct {
	Text           string
	OriginalLength int
	Source         SourceKind
}

// NewDocument normalizes raw text and records its original rune length.
func NewDocument(raw string, source SourceKind) Document {
	return Document{
		Text:           NormalizeWhitespace(raw),
		OriginalLength: utf8.RuneCountInString(raw),
		Source:         source,
	}
}

func (d Document) WordCount() int {
	return len(strings.Fields(d.Text))
}

// NormalizeWhitespace collapses all whitespace runs into single spaces and
// trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Chunk is a bounded contiguous segment of a document. OverlapWords counts
// the leading words duplicated from the previous chunk's tail; stripping that
// prefix from every chunk and joining in index order reconstructs the
// normalized document.
type Chunk struct {
	Index        int
	Text         string
	WordCount    int
	OverlapWords int
}

type ChunkStatus string

const (
	ChunkOK       ChunkStatus = "ok"
	ChunkDegraded ChunkStatus = "degraded"
	ChunkFailed   ChunkStatus = "failed"
)

// ChunkSummary is the map-stage output for one chunk. Never mutated after
// creation; correlated back to its chunk strictly by ChunkIndex.
type ChunkSummary struct {
	ChunkIndex int
	Text       string
	Status     ChunkStatus
}

// TargetSpec is the caller's request: summary length in words (50-2000) and
// takeaway count (1-10).
type TargetSpec struct {
	SummaryWords  int
	TakeawayCount int
}

// FinalResult carries the final summary and takeaways. Degraded is set when
// parts of the document did not contribute (failed chunks, fewer takeaways
// than requested).
type FinalResult struct {
	Summary       string
	Takeaways     []string
	Degraded      bool
	UsedMapReduce bool
}

// RunRecord is one persisted summarization run for the local history.
type RunRecord struct {
	ID            int64
	CreatedAt     time.Time
	Source        SourceKind
	DocumentWords int
	TargetWords   int
	TakeawayCount int
	Summary       string
	Takeaways     []string
	Degraded      bool
	UsedMapReduce bool
}
