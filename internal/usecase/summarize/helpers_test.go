package summarize_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/usecase/summarize"
)

/* ───────── stubs ───────── */

// stubModel is a summarize.Model that records every request it receives.
type stubModel struct {
	mu       sync.Mutex
	requests []summarize.ChunkRequest
	respond  func(req summarize.ChunkRequest) (string, error)
}

func (m *stubModel) SummarizeChunk(_ context.Context, req summarize.ChunkRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.respond == nil {
		return "stub summary", nil
	}
	return m.respond(req)
}

func (m *stubModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *stubModel) recorded() []summarize.ChunkRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]summarize.ChunkRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// recordingFallback remembers the last target it was asked for.
type recordingFallback struct {
	mu          sync.Mutex
	calls       int
	lastTarget  int
	lastText    string
	summaryText string
}

func (f *recordingFallback) Summarize(text string, targetWords int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastTarget = targetWords
	f.lastText = text
	return f.summaryText
}

type panickingFallback struct{}

func (panickingFallback) Summarize(string, int) string {
	panic("fallback exploded")
}

type stubDetector struct {
	language string
}

func (d stubDetector) Detect(string) (string, bool) {
	return d.language, d.language != ""
}

/* ───────── fixtures ───────── */

var stubDescriptor = entity.ModelDescriptor{
	Provider:    entity.ProviderAnthropic,
	ModelID:     "stub-model",
	DisplayName: "Stub Model",
}

// loaderFor returns a loader that always yields model.
func loaderFor(model summarize.Model) summarize.Loader {
	return func(context.Context, entity.ModelDescriptor) (summarize.Model, error) {
		return model, nil
	}
}

// modelBackedWith builds a ModelBacked whose single tier is model.
func modelBackedWith(model summarize.Model) *summarize.ModelBacked {
	return summarize.NewModelBacked(context.Background(),
		[]entity.ModelDescriptor{stubDescriptor}, loaderFor(model), nil)
}

// words returns n distinct words sharing prefix, separated by single spaces.
func words(prefix string, n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return strings.Join(out, " ")
}

// document builds a text of count sentences with perSentence words each.
func document(count, perSentence int) string {
	sentences := make([]string, count)
	for i := range sentences {
		sentences[i] = words(fmt.Sprintf("s%dw", i), perSentence)
	}
	return strings.Join(sentences, ". ") + "."
}
