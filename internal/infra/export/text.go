package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	reportTitle = "Document Summarizer - Analysis Report"
	ruleWidth   = 50
)

// TextExporter writes the plain-text analysis report.
type TextExporter struct{}

// Export writes the report header, the summary section and a footer.
func (TextExporter) Export(w io.Writer, r Result) error {
	rule := strings.Repeat("=", ruleWidth)
	bw := bufio.NewWriter(w)

	preset := r.Report.Preset
	if preset == "" {
		preset = "Custom"
	}

	fmt.Fprintln(bw, reportTitle)
	fmt.Fprintln(bw, rule)
	if r.Source != "" {
		fmt.Fprintf(bw, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(bw, "Summary Type: %s\n", preset)
	fmt.Fprintf(bw, "Original Word Count: %s\n", humanize.Comma(int64(r.Report.Original.Words)))
	fmt.Fprintf(bw, "Summary Word Count: %s\n", humanize.Comma(int64(r.Report.Summary.Words)))
	fmt.Fprintf(bw, "Compression Ratio: %d%%\n", r.Report.CompressionPercent)
	fmt.Fprintf(bw, "Time Saved: %d minutes\n", r.Report.MinutesSaved)
	if r.Report.Language != "" {
		fmt.Fprintf(bw, "Language: %s\n", r.Report.Language)
	}
	fmt.Fprintf(bw, "Model: %s\n", modelLabel(r))
	fmt.Fprintf(bw, "Generated: %s\n", r.Report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, "SUMMARY:")
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, r.Outcome.Text())
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, "Generated by Document Summarizer")
	fmt.Fprintln(bw, rule)

	return bw.Flush()
}
