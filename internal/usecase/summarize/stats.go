package summarize

import (
	"math"
	"time"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/utils/text"
)

const (
	// readingWordsPerMinute is the reading speed used for time estimates.
	readingWordsPerMinute = 250

	defaultTopWords = 10
)

// ComputeStats counts words, characters and sentences of s. It is total: "" yields zeros.
func ComputeStats(s string) entity.Stats {
	return entity.Stats{
		Words:      text.CountWords(s),
		Characters: text.CountRunes(s),
		Sentences:  text.CountSentences(s),
	}
}

// CompressionRatio returns 1 - summary/original as a percentage, or 0 when original is 0.
func CompressionRatio(originalWords, summaryWords int) float64 {
	if originalWords <= 0 {
		return 0
	}
	return (1 - float64(summaryWords)/float64(originalWords)) * 100
}

// ReadingMinutes estimates reading time at 250 words per minute, at least one minute.
func ReadingMinutes(words int) int {
	return max(1, roundInt(float64(words)/readingWordsPerMinute))
}

// Report is the analysis shown alongside a summary.
type Report struct {
	Preset             string           `json:"preset,omitempty" yaml:"preset,omitempty"`
	Model              string           `json:"model,omitempty" yaml:"model,omitempty"`
	Language           string           `json:"language,omitempty" yaml:"language,omitempty"`
	Original           entity.Stats     `json:"original" yaml:"original"`
	Summary            entity.Stats     `json:"summary" yaml:"summary"`
	CompressionPercent int              `json:"compression_percent" yaml:"compression_percent"`
	ReadingMinutes     int              `json:"reading_minutes" yaml:"reading_minutes"`
	MinutesSaved       int              `json:"minutes_saved" yaml:"minutes_saved"`
	TopWords           []text.WordCount `json:"top_words,omitempty" yaml:"top_words,omitempty"`
	Degraded           bool             `json:"degraded" yaml:"degraded"`
	GeneratedAt        time.Time        `json:"generated_at" yaml:"generated_at"`
}

// ReportOptions carries the context of a report that the outcome itself does not know.
type ReportOptions struct {
	Preset      string
	Language    string // overrides the language detected during summarization
	TopWords    int // 0 selects the default of ten
	GeneratedAt time.Time
}

// BuildReport analyses original against the outcome of summarizing it.
func BuildReport(original string, outcome entity.Outcome, opts ReportOptions) Report {
	originalStats := ComputeStats(original)
	summaryStats := outcome.Stats
	if outcome.OK() && summaryStats == (entity.Stats{}) {
		summaryStats = ComputeStats(outcome.Summary)
	}

	topN := opts.TopWords
	if topN <= 0 {
		topN = defaultTopWords
	}
	language := opts.Language
	if language == "" {
		language = outcome.Language
	}
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	report := Report{
		Preset:         opts.Preset,
		Model:          outcome.Model,
		Language:       language,
		Original:       originalStats,
		Summary:        summaryStats,
		ReadingMinutes: ReadingMinutes(originalStats.Words),
		TopWords:       text.TopWords(original, topN),
		Degraded:       outcome.Degraded,
		GeneratedAt:    generatedAt,
	}

	if outcome.OK() {
		report.CompressionPercent = roundInt(CompressionRatio(originalStats.Words, summaryStats.Words))
		report.MinutesSaved = max(0,
			roundInt(float64(originalStats.Words)/readingWordsPerMinute)-
				roundInt(float64(summaryStats.Words)/readingWordsPerMinute))
	}

	return report
}

// roundInt rounds half to even, matching the rounding of the reported figures.
func roundInt(f float64) int {
	return int(math.RoundToEven(f))
}
