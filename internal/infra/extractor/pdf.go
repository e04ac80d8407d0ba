package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// PDFExtractor extracts the text layer of PDF files with MuPDF (go-fitz).
// Scanned pages without a text layer contribute nothing; there is no OCR.
type PDFExtractor struct {
	maxFileSize int64
}

// NewPDFExtractor creates a PDFExtractor that refuses files larger than config.MaxFileSize.
func NewPDFExtractor(config Config) *PDFExtractor {
	return &PDFExtractor{maxFileSize: config.MaxFileSize}
}

// Extract reads every page of the PDF at path in order. Page texts are joined by newlines.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (Document, error) {
	if err := checkFileSize(path, e.maxFileSize); err != nil {
		return Document{}, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", ErrPDFOpen, path, err)
	}
	defer func() {
		_ = doc.Close()
	}()

	return e.extract(ctx, doc, path)
}

// ExtractBytes reads a PDF held in memory, e.g. one piped through stdin.
func (e *PDFExtractor) ExtractBytes(ctx context.Context, data []byte, name string) (Document, error) {
	if int64(len(data)) > e.maxFileSize {
		return Document{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, name, e.maxFileSize)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", ErrPDFOpen, name, err)
	}
	defer func() {
		_ = doc.Close()
	}()

	return e.extract(ctx, doc, name)
}

func (e *PDFExtractor) extract(ctx context.Context, doc *fitz.Document, name string) (Document, error) {
	pages := doc.NumPage()

	var sb strings.Builder
	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}

		text, err := doc.Text(i)
		if err != nil {
			// One broken page should not lose the rest of the document.
			slog.Warn("skipping unreadable PDF page",
				slog.String("file", name),
				slog.Int("page", i+1),
				slog.Any("error", err))
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	return Document{
		Source:   SourcePDF,
		Location: name,
		Title:    strings.TrimSpace(doc.Metadata()["title"]),
		Text:     sb.String(),
		Pages:    pages,
	}, nil
}
