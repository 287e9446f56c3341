package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlText extracts the readable text of an HTML page, dropping chrome
// elements. An <article> element, when present, wins over the whole body.
func htmlText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("create document from reader: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()

	if article := doc.Find("article"); article.Length() > 0 {
		return strings.TrimSpace(article.First().Text()), nil
	}

	return strings.TrimSpace(doc.Find("body").Text()), nil
}
