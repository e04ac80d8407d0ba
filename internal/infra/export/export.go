// Package export renders a summary and its analysis report as txt, md, html, json or yaml.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/usecase/summarize"
)

// Format is an export format name.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML}

// ErrUnknownFormat is returned by ParseFormat and New for unsupported formats.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts a format name or a common alias ("text", "markdown", "yml", "htm").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Result is everything an exporter renders for one document.
type Result struct {
	Source  string           `json:"source,omitempty" yaml:"source,omitempty"`
	Title   string           `json:"title,omitempty" yaml:"title,omitempty"`
	Outcome entity.Outcome   `json:"outcome" yaml:"outcome"`
	Report  summarize.Report `json:"report" yaml:"report"`
}

// Exporter writes a Result in one format.
type Exporter interface {
	Export(w io.Writer, r Result) error
}

// New returns the exporter for f.
func New(f Format) (Exporter, error) {
	switch f {
	case FormatText:
		return TextExporter{}, nil
	case FormatMarkdown:
		return MarkdownExporter{}, nil
	case FormatHTML:
		return HTMLExporter{}, nil
	case FormatJSON:
		return JSONExporter{Indent: "  "}, nil
	case FormatYAML:
		return YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Filename returns the default output file name, e.g. "medium_summary_20250102_150405.txt".
func Filename(preset string, f Format, at time.Time) string {
	if preset == "" {
		preset = "custom"
	}
	return fmt.Sprintf("%s_summary_%s.%s", strings.ToLower(preset), at.Format("20060102_150405"), f)
}

func modelLabel(r Result) string {
	if r.Report.Model != "" {
		return r.Report.Model
	}
	return "Extractive"
}
