package summarize

import (
	"fmt"
	"regexp"
	"strings"

	"smartsummarizer/internal/models"
)

// The final instruction demands these exact labels; parsing treats them as a
// contract and fails loudly when they are missing.
const (
	summaryMarker   = "SUMMARY:"
	takeawaysMarker = "KEY TAKEAWAYS:"
)

var numberedBulletRe = regexp.MustCompile(`^\d+[.)]\s+`)

// chunkInstruction asks for a prose-only compression of one chunk. Takeaways
// are requested only at the reduce stage.
func chunkInstruction(targetWords int) string {
	return fmt.Sprintf(`You are a precise writing assistant.
Condense the input text into a faithful summary of about %d words.
Keep concrete facts, names, numbers and dates.
Respond with plain prose only: no bullet points, no headers, no preamble.`,
		targetWords)
}

// finalInstruction asks for the summary and the takeaways in one response,
// separated by the structural markers parseSections expects.
func finalInstruction(spec models.TargetSpec) string {
	return fmt.Sprintf(`You are a precise writing assistant.
Write a faithful summary of the input text of about %d words,
then list exactly %d key takeaways as short standalone bullet points.

Respond in exactly this structure, with both labels on their own lines:
%s
<the summary>
%s
- <first takeaway>
- <second takeaway>

Do not add any other sections, preamble or commentary.`,
		spec.SummaryWords, spec.TakeawayCount, summaryMarker, takeawaysMarker)
}

// parseSections splits a final generation response into its summary text and
// takeaway list. A missing or reordered marker is a structural mismatch, not
// something to guess around.
func parseSections(raw string) (string, []string, error) {
	cleaned := stripFences(raw)

	summaryIdx := strings.Index(cleaned, summaryMarker)
	takeawaysIdx := strings.Index(cleaned, takeawaysMarker)

	if summaryIdx < 0 || takeawaysIdx < 0 || takeawaysIdx < summaryIdx {
		return "", nil, fmt.Errorf("%w: missing %q or %q marker",
			ErrMalformedResponse, summaryMarker, takeawaysMarker)
	}

	summary := strings.TrimSpace(cleaned[summaryIdx+len(summaryMarker) : takeawaysIdx])
	if summary == "" {
		return "", nil, fmt.Errorf("%w: empty summary section", ErrMalformedResponse)
	}

	takeaways := parseBullets(cleaned[takeawaysIdx+len(takeawaysMarker):])

	return summary, takeaways, nil
}

// parseBullets collects bullet lines; an unbulleted line continues the
// previous takeaway (wrapped model output).
func parseBullets(section string) []string {
	var takeaways []string

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		item, isBullet := trimBullet(line)
		if item == "" {
			continue
		}

		if !isBullet && len(takeaways) > 0 {
			takeaways[len(takeaways)-1] += " " + item

			continue
		}

		takeaways = append(takeaways, item)
	}

	return takeaways
}

func trimBullet(line string) (string, bool) {
	for _, prefix := range []string{"- ", "* ", "• ", "– "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):]), true
		}
	}

	if m := numberedBulletRe.FindString(line); m != "" {
		return strings.TrimSpace(line[len(m):]), true
	}

	return line, false
}

// stripFences removes a surrounding markdown code fence some models wrap
// their output in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
