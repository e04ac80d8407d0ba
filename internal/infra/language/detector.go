// Package language detects the natural language of document text with lingua-go.
// The detected name is used in model prompts and in the analysis report.
package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

const (
	// maxSampleRunes bounds the text inspected per detection.
	maxSampleRunes = 4000

	defaultMinRelativeDistance = 0.1
)

// DefaultLanguages is the candidate set used when none is configured.
var DefaultLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Polish,
	lingua.Russian,
	lingua.Japanese,
	lingua.Chinese,
}

// Result is a detected language.
type Result struct {
	Name       string  `json:"name" yaml:"name"`             // e.g. "English"
	Code       string  `json:"code" yaml:"code"`             // ISO 639-1, lower case, e.g. "en"
	Confidence float64 `json:"confidence" yaml:"confidence"` // 0.0-1.0
}

// Detector wraps a lingua detector restricted to a candidate set.
// It is safe for concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector over languages, or DefaultLanguages when none are given.
func NewDetector(languages ...lingua.Language) *Detector {
	if len(languages) < 2 {
		languages = DefaultLanguages
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			WithMinimumRelativeDistance(defaultMinRelativeDistance).
			Build(),
	}
}

// Detect returns the language name of text, or false when it is too ambiguous to tell.
func (d *Detector) Detect(text string) (string, bool) {
	result, ok := d.DetectWithConfidence(text)
	if !ok {
		return "", false
	}
	return result.Name, true
}

// DetectWithConfidence returns the detected language with its ISO code and confidence.
func (d *Detector) DetectWithConfidence(text string) (Result, bool) {
	sample := sampleOf(text)
	if sample == "" {
		return Result{}, false
	}

	lang, ok := d.detector.DetectLanguageOf(sample)
	if !ok {
		return Result{}, false
	}

	return Result{
		Name:       lang.String(),
		Code:       strings.ToLower(lang.IsoCode639_1().String()),
		Confidence: d.detector.ComputeLanguageConfidence(sample, lang),
	}, true
}

func sampleOf(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > maxSampleRunes {
		return string(runes[:maxSampleRunes])
	}
	return text
}
