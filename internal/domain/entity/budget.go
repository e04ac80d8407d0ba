package entity

import (
	"fmt"
	"strings"
)

const (
	// maxChunkSummaryWords caps the per-chunk maximum regardless of the overall budget.
	maxChunkSummaryWords = 130

	// minChunkSummaryWords floors the per-chunk minimum regardless of the overall budget.
	minChunkSummaryWords = 20
)

// LengthBudget bounds the length of a summary in words.
type LengthBudget struct {
	MinWords int `json:"min_words" yaml:"min_words"`
	MaxWords int `json:"max_words" yaml:"max_words"`
}

// Validate checks that 0 <= MinWords <= MaxWords. A zero budget is valid and yields the
// shortest summary the summarizer can produce.
func (b LengthBudget) Validate() error {
	if b.MinWords < 0 {
		return &ValidationError{Field: "min_words", Message: "must not be negative"}
	}
	if b.MinWords > b.MaxWords {
		return &ValidationError{
			Field:   "min_words",
			Message: fmt.Sprintf("must not exceed max_words (%d > %d)", b.MinWords, b.MaxWords),
		}
	}
	return nil
}

// PerChunk derives the budget for one of n chunks of a long document.
//
// The maximum is MaxWords/n capped at 130 and the minimum is MinWords/n floored at 20,
// both with integer division. When the floor would push the minimum above the maximum
// the minimum is clamped down to the maximum.
func (b LengthBudget) PerChunk(n int) LengthBudget {
	if n < 1 {
		n = 1
	}
	maxWords := min(maxChunkSummaryWords, b.MaxWords/n)
	minWords := max(minChunkSummaryWords, b.MinWords/n)
	if minWords > maxWords {
		minWords = maxWords
	}
	return LengthBudget{MinWords: minWords, MaxWords: maxWords}
}

// String renders the budget as "min-max words".
func (b LengthBudget) String() string {
	return fmt.Sprintf("%d-%d words", b.MinWords, b.MaxWords)
}

// LengthPreset names one of the predefined summary lengths.
type LengthPreset string

const (
	PresetShort  LengthPreset = "short"
	PresetMedium LengthPreset = "medium"
	PresetLong   LengthPreset = "long"
)

var presetBudgets = map[LengthPreset]LengthBudget{
	PresetShort:  {MinWords: 50, MaxWords: 120},
	PresetMedium: {MinWords: 120, MaxWords: 200},
	PresetLong:   {MinWords: 200, MaxWords: 350},
}

// ParseLengthPreset resolves a preset name case-insensitively.
func ParseLengthPreset(name string) (LengthPreset, error) {
	p := LengthPreset(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := presetBudgets[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Budget returns the word budget of the preset. Unknown presets fall back to medium.
func (p LengthPreset) Budget() LengthBudget {
	if b, ok := presetBudgets[p]; ok {
		return b
	}
	return presetBudgets[PresetMedium]
}

// Label returns the capitalised display name of the preset.
func (p LengthPreset) Label() string {
	switch p {
	case PresetShort:
		return "Short"
	case PresetLong:
		return "Long"
	default:
		return "Medium"
	}
}
