// Package extract turns the supported input sources (pasted text, local
// files, web pages) into plain-text documents ready for summarization.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"smartsummarizer/internal/models"

	"mvdan.cc/xurls/v2"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	fetchTimeout = 30 * time.Second
)

// Pasted wraps raw text handed over on stdin or as an argument.
func Pasted(raw string) models.Document {
	return models.NewDocument(raw, models.SourcePasted)
}

// FromFile reads a local text or HTML file. The HTML path is chosen by
// extension; everything else goes through character-set sniffing.
func FromFile(path string) (models.Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied path by design of the CLI
	if err != nil {
		return models.Document{}, fmt.Errorf("read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, htmlErr := htmlText(strings.NewReader(decodeText(data)))
		if htmlErr != nil {
			return models.Document{}, fmt.Errorf("parse HTML file: %w", htmlErr)
		}

		return models.NewDocument(text, models.SourceFile), nil
	default:
		return models.NewDocument(decodeText(data), models.SourceFile), nil
	}
}

// FromURL fetches a web page and extracts its readable text.
func FromURL(ctx context.Context, rawURL string, log *slog.Logger) (models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return models.Document{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // user-supplied URL by design of the CLI
	if err != nil {
		return models.Document{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close response body",
				"error", err,
				"url", rawURL)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return models.Document{}, fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	text, err := htmlText(resp.Body)
	if err != nil {
		return models.Document{}, fmt.Errorf("extract page text: %w", err)
	}

	return models.NewDocument(text, models.SourceURL), nil
}

// IsURL reports whether the whole string is a single http(s) URL, which
// decides between the URL and file input paths.
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	urlRe, err := xurls.StrictMatchingScheme("https?://")
	if err != nil {
		return false
	}

	return urlRe.FindString(s) == s
}
