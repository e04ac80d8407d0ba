package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/infra/export"
	"doc-summarizer/internal/usecase/summarize"
	"doc-summarizer/internal/utils/text"
)

var generatedAt = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func sampleResult() export.Result {
	return export.Result{
		Source: "reports/energy.pdf",
		Title:  "Energy Outlook",
		Outcome: entity.Outcome{
			Kind:    entity.OutcomeOK,
			Summary: "Solar capacity grew quickly. Storage projects follow.",
			Stats:   entity.Stats{Words: 7, Characters: 53, Sentences: 2},
			Model:   "Claude Haiku 4.5",
		},
		Report: summarize.Report{
			Preset:             "Medium",
			Model:              "Claude Haiku 4.5",
			Language:           "English",
			Original:           entity.Stats{Words: 1500, Characters: 9000, Sentences: 80},
			Summary:            entity.Stats{Words: 7, Characters: 53, Sentences: 2},
			CompressionPercent: 100,
			ReadingMinutes:     6,
			MinutesSaved:       6,
			TopWords:           []text.WordCount{{Word: "solar", Count: 12}, {Word: "storage", Count: 5}},
			GeneratedAt:        generatedAt,
		},
	}
}

func render(t *testing.T, f export.Format, r export.Result) string {
	t.Helper()
	exporter, err := export.New(f)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, r))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  export.Format
	}{
		{"txt", export.FormatText},
		{"TEXT", export.FormatText},
		{"md", export.FormatMarkdown},
		{"markdown", export.FormatMarkdown},
		{"htm", export.FormatHTML},
		{"json", export.FormatJSON},
		{" yml ", export.FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := export.ParseFormat("docx")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	_, err = export.New("docx")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "medium_summary_20250314_092653.txt", export.Filename("Medium", export.FormatText, generatedAt))
	assert.Equal(t, "custom_summary_20250314_092653.json", export.Filename("", export.FormatJSON, generatedAt))
}

func TestTextExporter(t *testing.T) {
	want := `Document Summarizer - Analysis Report
==================================================
Source: reports/energy.pdf
Summary Type: Medium
Original Word Count: 1,500
Summary Word Count: 7
Compression Ratio: 100%
Time Saved: 6 minutes
Language: English
Model: Claude Haiku 4.5
Generated: 2025-03-14 09:26:53

==================================================
SUMMARY:
==================================================

Solar capacity grew quickly. Storage projects follow.

==================================================
Generated by Document Summarizer
==================================================
`

	got := render(t, export.FormatText, sampleResult())

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("text report mismatch (-want +got):\n%s", diff)
	}
}

func TestTextExporter_NonOKOutcome(t *testing.T) {
	r := sampleResult()
	r.Outcome = entity.Outcome{Kind: entity.OutcomeTooShort}
	r.Report.Preset = ""
	r.Report.Model = ""

	got := render(t, export.FormatText, r)

	assert.Contains(t, got, "Summary Type: Custom\n")
	assert.Contains(t, got, "Model: Extractive\n")
	assert.Contains(t, got, "\n"+entity.TooShortMessage+"\n")
}

func TestMarkdownExporter(t *testing.T) {
	r := sampleResult()
	r.Outcome.Degraded = true

	got := render(t, export.FormatMarkdown, r)

	assert.True(t, strings.HasPrefix(got, "# Energy Outlook\n\n"))
	assert.Contains(t, got, "| Original words | 1,500 |\n")
	assert.Contains(t, got, "| Compression | 100% |\n")
	assert.Contains(t, got, "## Summary\n\nSolar capacity grew quickly. Storage projects follow.\n")
	assert.Contains(t, got, "extractive fallback")
	assert.Contains(t, got, "| solar | 12 |\n| storage | 5 |\n")
}

func TestMarkdownExporter_EscapesSummary(t *testing.T) {
	r := sampleResult()
	r.Outcome.Summary = "Use snake_case and *stars* | pipes."

	got := render(t, export.FormatMarkdown, r)

	assert.Contains(t, got, `Use snake\_case and \*stars\* \| pipes.`)
}

func TestHTMLExporter(t *testing.T) {
	r := sampleResult()
	r.Title = "Energy <Outlook>"

	got := render(t, export.FormatHTML, r)

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, "<title>Energy &lt;Outlook&gt;</title>")
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<h2>Summary</h2>")
	assert.Contains(t, got, "Solar capacity grew quickly.")
}

func TestJSONExporter(t *testing.T) {
	got := render(t, export.FormatJSON, sampleResult())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))

	outcome := decoded["outcome"].(map[string]any)
	assert.Equal(t, "ok", outcome["kind"])
	assert.Equal(t, "Claude Haiku 4.5", outcome["model"])

	report := decoded["report"].(map[string]any)
	assert.Equal(t, float64(100), report["compression_percent"])
	assert.Equal(t, "2025-03-14T09:26:53Z", report["generated_at"])
	assert.Len(t, report["top_words"], 2)
}

func TestYAMLExporter(t *testing.T) {
	got := render(t, export.FormatYAML, sampleResult())

	var decoded struct {
		Source  string `yaml:"source"`
		Outcome struct {
			Kind    string `yaml:"kind"`
			Summary string `yaml:"summary"`
		} `yaml:"outcome"`
		Report struct {
			Preset   string `yaml:"preset"`
			Original struct {
				Words int `yaml:"words"`
			} `yaml:"original"`
		} `yaml:"report"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(got), &decoded))

	assert.Equal(t, "reports/energy.pdf", decoded.Source)
	assert.Equal(t, "ok", decoded.Outcome.Kind)
	assert.Equal(t, "Solar capacity grew quickly. Storage projects follow.", decoded.Outcome.Summary)
	assert.Equal(t, "Medium", decoded.Report.Preset)
	assert.Equal(t, 1500, decoded.Report.Original.Words)
	assert.Contains(t, got, "kind: ok\n")
}
