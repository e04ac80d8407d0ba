// Package extractor turns input documents into plain text for the summarizer.
// PDFs are read with go-fitz (MuPDF), web pages with go-readability, and plain text or
// markdown files as they are. Every extraction is recorded in the pipeline metrics.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doc-summarizer/internal/observability/metrics"
	"doc-summarizer/internal/utils/text"
)

// Source identifies where a document came from.
type Source string

const (
	SourcePDF   Source = "pdf"
	SourceURL   Source = "url"
	SourceText  Source = "text"
	SourceStdin Source = "stdin"
)

// StdinName is the target that selects standard input.
const StdinName = "-"

var pdfMagic = []byte("%PDF-")

// Document is the extracted text of one input.
type Document struct {
	Source   Source
	Location string // path, URL or "-"
	Title    string
	Text     string
	Pages    int // PDFs only
}

// Words returns the whitespace-separated word count of the document text.
func (d Document) Words() int {
	return text.CountWords(d.Text)
}

// Extractor selects the right extractor for a target and records metrics.
type Extractor struct {
	url   *URLExtractor
	pdf   *PDFExtractor
	text  *TextExtractor
	stdin io.Reader
	limit int64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStdin replaces os.Stdin as the source of the "-" target.
func WithStdin(r io.Reader) Option {
	return func(e *Extractor) {
		e.stdin = r
	}
}

// New creates an Extractor for all supported sources.
func New(config Config, opts ...Option) *Extractor {
	e := &Extractor{
		url:   NewURLExtractor(config),
		pdf:   NewPDFExtractor(config),
		text:  NewTextExtractor(config),
		stdin: os.Stdin,
		limit: config.MaxFileSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads target, which is an http(s) URL, "-" for stdin, or a file path.
// Files are dispatched on their extension: .pdf, or .txt/.text/.md/.markdown.
func (e *Extractor) Extract(ctx context.Context, target string) (Document, error) {
	switch {
	case target == StdinName:
		return e.record(SourceStdin, func() (Document, error) {
			return e.extractStdin(ctx)
		})
	case isURL(target):
		return e.ExtractURL(ctx, target)
	}

	switch strings.ToLower(filepath.Ext(target)) {
	case ".pdf":
		return e.record(SourcePDF, func() (Document, error) {
			return e.pdf.Extract(ctx, target)
		})
	case ".txt", ".text", ".md", ".markdown", "":
		return e.record(SourceText, func() (Document, error) {
			return e.text.Extract(ctx, target)
		})
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, target)
	}
}

// ExtractURL downloads a web page and returns its article text.
func (e *Extractor) ExtractURL(ctx context.Context, urlStr string) (Document, error) {
	return e.record(SourceURL, func() (Document, error) {
		return e.url.Extract(ctx, urlStr)
	})
}

// extractStdin reads stdin once and sniffs it for a PDF header.
func (e *Extractor) extractStdin(ctx context.Context) (Document, error) {
	data, err := readLimited(e.stdin, e.limit, "stdin")
	if err != nil {
		return Document{}, err
	}

	if bytes.HasPrefix(data, pdfMagic) {
		doc, err := e.pdf.ExtractBytes(ctx, data, StdinName)
		if err != nil {
			return Document{}, err
		}
		doc.Source = SourceStdin
		return doc, nil
	}

	return e.text.ExtractReader(bytes.NewReader(data), StdinName)
}

func (e *Extractor) record(source Source, fn func() (Document, error)) (Document, error) {
	start := time.Now()

	doc, err := fn()
	if err == nil && strings.TrimSpace(doc.Text) == "" {
		err = fmt.Errorf("%w: %s", ErrEmptyDocument, doc.Location)
	}
	if err != nil {
		metrics.RecordExtractionFailed(string(source), time.Since(start))
		return Document{}, err
	}

	words := doc.Words()
	metrics.RecordExtractionSuccess(string(source), time.Since(start), words)
	slog.Debug("document extracted",
		slog.String("source", string(source)),
		slog.String("location", doc.Location),
		slog.Int("words", words),
		slog.Int("pages", doc.Pages))

	return doc, nil
}

func isURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
