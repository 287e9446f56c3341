package models_test

import (
	"testing"

	"smartsummarizer/internal/models"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Already clean", "one two three", "one two three"},
		{"Mixed whitespace", "one\t two\n\nthree  ", "one two three"},
		{"Only whitespace", " \n\t ", ""},
		{"Empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := models.NormalizeWhitespace(test.input); got != test.want {
				t.Fatalf("got %q want %q", got, test.want)
			}
		})
	}
}

func TestNewDocument(t *testing.T) {
	doc := models.NewDocument("  héllo \n world  ", models.SourcePasted)

	if doc.Text != "héllo world" {
		t.Fatalf("unexpected text: %q", doc.Text)
	}

	if doc.OriginalLength != 17 {
		t.Fatalf("unexpected original length: %d", doc.OriginalLength)
	}

	if doc.WordCount() != 2 {
		t.Fatalf("unexpected word count: %d", doc.WordCount())
	}

	if doc.Source != models.SourcePasted {
		t.Fatalf("unexpected source: %q", doc.Source)
	}
}
