package entity

import "fmt"

// Supported model providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// ModelDescriptor identifies one tier of the model hierarchy.
// A hierarchy is an ordered slice of descriptors, most capable first.
type ModelDescriptor struct {
	Provider    string `json:"provider" yaml:"provider"`
	ModelID     string `json:"model_id" yaml:"model_id"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
}

// Name returns the display name, or provider/model when none is set.
func (d ModelDescriptor) Name() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Key()
}

// Key returns "provider/model_id", unique within a hierarchy.
func (d ModelDescriptor) Key() string {
	return fmt.Sprintf("%s/%s", d.Provider, d.ModelID)
}

// Validate checks that provider and model id are set.
func (d ModelDescriptor) Validate() error {
	if d.Provider == "" {
		return &ValidationError{Field: "provider", Message: "is required"}
	}
	if d.ModelID == "" {
		return &ValidationError{Field: "model_id", Message: "is required"}
	}
	return nil
}
