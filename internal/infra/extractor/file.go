package extractor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// TextExtractor reads plain text and markdown documents from files or readers.
type TextExtractor struct {
	maxFileSize int64
}

// NewTextExtractor creates a TextExtractor that refuses input larger than config.MaxFileSize.
func NewTextExtractor(config Config) *TextExtractor {
	return &TextExtractor{maxFileSize: config.MaxFileSize}
}

// Extract reads the file at path. Markdown files are reduced to their text.
func (e *TextExtractor) Extract(_ context.Context, path string) (Document, error) {
	if err := checkFileSize(path, e.maxFileSize); err != nil {
		return Document{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	doc, err := e.ExtractReader(f, path)
	if err != nil {
		return Document{}, err
	}
	doc.Source = SourceText
	doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if isMarkdown(strings.ToLower(filepath.Ext(path))) {
		if doc.Text, err = markdownToText([]byte(doc.Text)); err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}

// ExtractReader reads a document from r, e.g. stdin. name is only used in errors and reports.
// Invalid UTF-8 sequences are replaced rather than rejected.
func (e *TextExtractor) ExtractReader(r io.Reader, name string) (Document, error) {
	data, err := readLimited(r, e.maxFileSize, name)
	if err != nil {
		return Document{}, err
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}

	return Document{
		Source:   SourceStdin,
		Location: name,
		Text:     text,
	}, nil
}

func readLimited(r io.Reader, limit int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, name, limit)
	}
	return data, nil
}

func checkFileSize(path string, limit int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}
	if info.Size() > limit {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrBodyTooLarge, path, info.Size(), limit)
	}
	return nil
}
