package summarize

import (
	"errors"
	"testing"
)

func TestParseSections(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantSummary   string
		wantTakeaways []string
	}{
		{
			name: "Plain response",
			raw: "SUMMARY:\nThe plan worked.\nKEY TAKEAWAYS:\n" +
				"- First point\n- Second point\n",
			wantSummary:   "The plan worked.",
			wantTakeaways: []string{"First point", "Second point"},
		},
		{
			name: "Fenced response",
			raw: "```text\nSUMMARY:\nThe plan worked.\nKEY TAKEAWAYS:\n" +
				"- Only point\n```",
			wantSummary:   "The plan worked.",
			wantTakeaways: []string{"Only point"},
		},
		{
			name: "Numbered and starred bullets",
			raw: "SUMMARY:\nThe plan worked.\nKEY TAKEAWAYS:\n" +
				"1. First point\n2) Second point\n* Third point\n",
			wantSummary:   "The plan worked.",
			wantTakeaways: []string{"First point", "Second point", "Third point"},
		},
		{
			name: "Wrapped takeaway continues previous bullet",
			raw: "SUMMARY:\nThe plan worked.\nKEY TAKEAWAYS:\n" +
				"- A long point that\nwraps onto the next line\n- Second point\n",
			wantSummary:   "The plan worked.",
			wantTakeaways: []string{"A long point that wraps onto the next line", "Second point"},
		},
		{
			name:          "Multi-line summary",
			raw:           "SUMMARY:\nFirst paragraph.\n\nSecond paragraph.\nKEY TAKEAWAYS:\n- Point\n",
			wantSummary:   "First paragraph.\n\nSecond paragraph.",
			wantTakeaways: []string{"Point"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			summary, takeaways, err := parseSections(test.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if summary != test.wantSummary {
				t.Fatalf("summary mismatch: got %q want %q", summary, test.wantSummary)
			}

			if len(takeaways) != len(test.wantTakeaways) {
				t.Fatalf("takeaway count mismatch: got %q want %q", takeaways, test.wantTakeaways)
			}

			for i := range test.wantTakeaways {
				if takeaways[i] != test.wantTakeaways[i] {
					t.Fatalf("takeaway %d mismatch: got %q want %q",
						i, takeaways[i], test.wantTakeaways[i])
				}
			}
		})
	}
}

func TestParseSectionsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"No markers at all", "Here is your summary with two key points."},
		{"Missing takeaways marker", "SUMMARY:\nThe plan worked.\n- Point\n"},
		{"Missing summary marker", "The plan worked.\nKEY TAKEAWAYS:\n- Point\n"},
		{"Reordered markers", "KEY TAKEAWAYS:\n- Point\nSUMMARY:\nThe plan worked.\n"},
		{"Empty summary section", "SUMMARY:\nKEY TAKEAWAYS:\n- Point\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, _, err := parseSections(test.raw); !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestApplyTakeawayBounds(t *testing.T) {
	tests := []struct {
		name      string
		takeaways []string
		want      int
		wantLen   int
		wantShort bool
	}{
		{"Exact count", []string{"a", "b", "c"}, 3, 3, false},
		{"Surplus truncated", []string{"a", "b", "c", "d", "e"}, 3, 3, false},
		{"Shortfall reported", []string{"a"}, 3, 1, true},
		{"Empty list", nil, 3, 0, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, short := applyTakeawayBounds(test.takeaways, test.want)

			if len(got) != test.wantLen {
				t.Fatalf("length mismatch: got %d want %d", len(got), test.wantLen)
			}

			if short != test.wantShort {
				t.Fatalf("shortfall flag mismatch: got %v want %v", short, test.wantShort)
			}
		})
	}
}
