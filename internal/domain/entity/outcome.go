package entity

import "fmt"

// Legacy sentinel strings returned by the string-only summarization contract.
const (
	TooShortMessage      = "Text is too short to generate a meaningful summary."
	UnableMessage        = "Unable to generate summary from the provided text."
	errorMessageTemplate = "Error generating summary: %s. Please try with a different text."
)

// ErrorMessage renders the legacy error sentinel for cause.
func ErrorMessage(cause string) string {
	return fmt.Sprintf(errorMessageTemplate, cause)
}

// Stats are simple counts over a piece of text.
type Stats struct {
	Words      int `json:"words" yaml:"words"`
	Characters int `json:"characters" yaml:"characters"`
	Sentences  int `json:"sentences" yaml:"sentences"`
}

// OutcomeKind tags an Outcome.
type OutcomeKind int

const (
	// OutcomeOK carries a summary.
	OutcomeOK OutcomeKind = iota
	// OutcomeTooShort means the cleaned input had fewer than the minimum number of words.
	OutcomeTooShort
	// OutcomeFailed means no summary could be produced; Reason says why.
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeTooShort:
		return "too_short"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name for JSON and YAML.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the result of one summarization request.
type Outcome struct {
	Kind    OutcomeKind `json:"kind" yaml:"kind"`
	Summary string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Stats   Stats       `json:"stats" yaml:"stats"`
	Reason  string      `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Degraded is set when any part of the summary came from the extractive path.
	Degraded bool `json:"degraded" yaml:"degraded"`

	// Model is the display name of the active model, empty when none was loaded.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Language is the detected language of the input, empty when unknown or not detected.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// OK reports whether the outcome carries a summary.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeOK
}

// Text renders the outcome the way the string-only contract does: the summary on success,
// otherwise the matching sentinel.
func (o Outcome) Text() string {
	switch o.Kind {
	case OutcomeOK:
		return o.Summary
	case OutcomeTooShort:
		return TooShortMessage
	default:
		if o.Reason == UnableMessage {
			return UnableMessage
		}
		return ErrorMessage(o.Reason)
	}
}
