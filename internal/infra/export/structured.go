package export

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONExporter writes the Result as JSON.
type JSONExporter struct {
	Indent string
}

// Export encodes r followed by a newline.
func (e JSONExporter) Export(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", e.Indent)
	return enc.Encode(r)
}

// YAMLExporter writes the Result as YAML.
type YAMLExporter struct{}

// Export encodes r with two-space indentation.
func (YAMLExporter) Export(w io.Writer, r Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
