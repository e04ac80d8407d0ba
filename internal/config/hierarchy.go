package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"doc-summarizer/internal/domain/entity"
)

// ModelHierarchyFile is the YAML form of a model hierarchy:
//
//	models:
//	  - provider: anthropic
//	    model_id: claude-haiku-4-5
//	    display_name: Claude Haiku 4.5
type ModelHierarchyFile struct {
	Models []entity.ModelDescriptor `yaml:"models"`
}

// LoadModelHierarchyFile loads a model hierarchy from a YAML file.
// The path parameter is expected to come from a trusted source (environment or CLI flag).
func LoadModelHierarchyFile(path string) ([]entity.ModelDescriptor, error) {
	// #nosec G304 -- path is provided by the operator, not by document input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model hierarchy file: %w", err)
	}

	var file ModelHierarchyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse model hierarchy file: %w", err)
	}

	for i := range file.Models {
		m := &file.Models[i]
		m.Provider = strings.ToLower(strings.TrimSpace(m.Provider))
		m.ModelID = strings.TrimSpace(m.ModelID)
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("model hierarchy file entry %d: %w", i, err)
		}
	}

	return file.Models, nil
}
