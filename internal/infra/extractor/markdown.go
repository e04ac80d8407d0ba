package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/russross/blackfriday/v2"
)

// markdownToText renders markdown to HTML and keeps only the text, so headings, list
// bullets and link targets do not reach the summarizer. Code blocks are dropped.
func markdownToText(src []byte) (string, error) {
	html := blackfriday.Run(src)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse rendered markdown: %w", err)
	}
	doc.Find("pre").Remove()

	// Headings and list items become sentences of their own.
	doc.Find("h1, h2, h3, h4, h5, h6, li").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if t != "" && !strings.HasSuffix(t, ".") {
			s.SetText(t + ".")
		}
	})

	lines := strings.Split(doc.Text(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}

func isMarkdown(ext string) bool {
	return ext == ".md" || ext == ".markdown"
}
