package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/russross/blackfriday/v2"
)

// MarkdownExporter writes the report as a markdown document.
type MarkdownExporter struct{}

// Export writes a stats table, the summary and the most frequent words.
func (MarkdownExporter) Export(w io.Writer, r Result) error {
	var b strings.Builder

	title := r.Title
	if title == "" {
		title = "Summary"
	}
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))

	if r.Source != "" {
		fmt.Fprintf(&b, "Source: `%s`\n\n", r.Source)
	}

	b.WriteString("| Metric | Value |\n|---|---|\n")
	if r.Report.Preset != "" {
		fmt.Fprintf(&b, "| Summary type | %s |\n", r.Report.Preset)
	}
	fmt.Fprintf(&b, "| Original words | %s |\n", humanize.Comma(int64(r.Report.Original.Words)))
	fmt.Fprintf(&b, "| Summary words | %s |\n", humanize.Comma(int64(r.Report.Summary.Words)))
	fmt.Fprintf(&b, "| Compression | %d%% |\n", r.Report.CompressionPercent)
	fmt.Fprintf(&b, "| Reading time | %d min |\n", r.Report.ReadingMinutes)
	fmt.Fprintf(&b, "| Time saved | %d min |\n", r.Report.MinutesSaved)
	if r.Report.Language != "" {
		fmt.Fprintf(&b, "| Language | %s |\n", r.Report.Language)
	}
	fmt.Fprintf(&b, "| Model | %s |\n", modelLabel(r))
	fmt.Fprintf(&b, "| Generated | %s |\n", r.Report.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("\n## Summary\n\n")
	b.WriteString(escapeMarkdown(r.Outcome.Text()))
	b.WriteString("\n")

	if r.Outcome.Degraded {
		b.WriteString("\n> Part of this summary was produced by the extractive fallback.\n")
	}

	if len(r.Report.TopWords) > 0 {
		b.WriteString("\n## Top words\n\n| Word | Count |\n|---|---|\n")
		for _, wc := range r.Report.TopWords {
			fmt.Fprintf(&b, "| %s | %d |\n", wc.Word, wc.Count)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// HTMLExporter renders the markdown report to a standalone HTML page.
type HTMLExporter struct{}

// Export writes the markdown report converted with blackfriday.
func (HTMLExporter) Export(w io.Writer, r Result) error {
	var md bytes.Buffer
	if err := (MarkdownExporter{}).Export(&md, r); err != nil {
		return err
	}

	body := blackfriday.Run(md.Bytes(), blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.Tables))

	title := r.Title
	if title == "" {
		title = "Summary"
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), body)
	return err
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "|", `\|`, "#", `\#`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
