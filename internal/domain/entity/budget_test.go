package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLengthBudget_Validate(t *testing.T) {
	tests := []struct {
		name      string
		budget    LengthBudget
		wantField string
	}{
		{name: "valid", budget: LengthBudget{MinWords: 30, MaxWords: 130}},
		{name: "zero minimum", budget: LengthBudget{MinWords: 0, MaxWords: 10}},
		{name: "equal bounds", budget: LengthBudget{MinWords: 50, MaxWords: 50}},
		{name: "negative minimum", budget: LengthBudget{MinWords: -1, MaxWords: 10}, wantField: "min_words"},
		{name: "zero budget", budget: LengthBudget{MinWords: 0, MaxWords: 0}},
		{name: "negative maximum", budget: LengthBudget{MinWords: 0, MaxWords: -5}, wantField: "min_words"},
		{name: "min above max", budget: LengthBudget{MinWords: 200, MaxWords: 100}, wantField: "min_words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestLengthBudget_PerChunk(t *testing.T) {
	tests := []struct {
		name     string
		budget   LengthBudget
		chunks   int
		expected LengthBudget
	}{
		{
			name:     "two chunks",
			budget:   LengthBudget{MinWords: 100, MaxWords: 200},
			chunks:   2,
			expected: LengthBudget{MinWords: 50, MaxWords: 100},
		},
		{
			name:     "maximum capped at 130",
			budget:   LengthBudget{MinWords: 200, MaxWords: 350},
			chunks:   1,
			expected: LengthBudget{MinWords: 130, MaxWords: 130},
		},
		{
			name:     "minimum floored at 20",
			budget:   LengthBudget{MinWords: 30, MaxWords: 130},
			chunks:   3,
			expected: LengthBudget{MinWords: 20, MaxWords: 43},
		},
		{
			name:     "floor clamped to maximum",
			budget:   LengthBudget{MinWords: 10, MaxWords: 40},
			chunks:   4,
			expected: LengthBudget{MinWords: 10, MaxWords: 10},
		},
		{
			name:     "non-positive chunk count treated as one",
			budget:   LengthBudget{MinWords: 30, MaxWords: 100},
			chunks:   0,
			expected: LengthBudget{MinWords: 30, MaxWords: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.budget.PerChunk(tt.chunks)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, got.MinWords, got.MaxWords)
		})
	}
}

func TestParseLengthPreset(t *testing.T) {
	tests := []struct {
		input    string
		expected LengthPreset
		budget   LengthBudget
		label    string
	}{
		{input: "short", expected: PresetShort, budget: LengthBudget{MinWords: 50, MaxWords: 120}, label: "Short"},
		{input: "Medium", expected: PresetMedium, budget: LengthBudget{MinWords: 120, MaxWords: 200}, label: "Medium"},
		{input: " LONG ", expected: PresetLong, budget: LengthBudget{MinWords: 200, MaxWords: 350}, label: "Long"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			preset, err := ParseLengthPreset(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, preset)
			assert.Equal(t, tt.budget, preset.Budget())
			assert.Equal(t, tt.label, preset.Label())
			assert.NoError(t, preset.Budget().Validate())
		})
	}
}

func TestParseLengthPreset_Unknown(t *testing.T) {
	_, err := ParseLengthPreset("huge")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	assert.Equal(t, PresetMedium.Budget(), LengthPreset("huge").Budget())
}
