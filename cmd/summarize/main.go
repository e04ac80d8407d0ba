// Package main provides a CLI command for summarizing documents.
// Usage: summarize [-length short|medium|long] [-min N -max N] [-format txt|md|html|json|yaml]
//
//	[-output FILE] [-log text|json] [-metrics-file FILE] (-url URL | FILE | -)
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"doc-summarizer/internal/config"
	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/infra/export"
	"doc-summarizer/internal/infra/extractor"
	"doc-summarizer/internal/infra/language"
	"doc-summarizer/internal/infra/summarizer"
	"doc-summarizer/internal/observability/logging"
	"doc-summarizer/internal/observability/metrics"
	"doc-summarizer/internal/usecase/summarize"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const appName = "summarize"

const usageText = `summarize [flags] (-url URL | FILE | -)

FILE may be a .pdf, .txt or .md file, or - for standard input.

Examples:
  summarize paper.pdf
  summarize -length long -format md -output summary.md paper.pdf
  summarize -min 80 -max 150 notes.txt
  summarize -url https://example.com/article -format json
  cat report.txt | summarize -`

// options holds the parsed command line.
type options struct {
	length      string
	minWords    int
	maxWords    int
	format      string
	output      string
	logFormat   string
	url         string
	metricsFile string
	target      string
	minSet      bool
	maxSet      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := exitOK
	app := newApp(stdout, stderr, func(c *cli.Context, opts options) error {
		code = execute(c.Context, opts, stdin, stdout, stderr)
		return nil
	})

	if err := app.RunContext(ctx, append([]string{appName}, args...)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	return code
}

// execute summarizes one document with parsed options.
func execute(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := logging.New(stderr, opts.logFormat)
	slog.SetDefault(logger)

	budget, presetLabel, err := resolveBudget(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	exporter, err := export.New(format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	cfg, err := config.LoadSummarizerConfig()
	if err != nil {
		logger.Error("failed to load summarizer configuration", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: Failed to load summarizer configuration: %v\n", err)
		return exitFailure
	}

	extractorConfig, err := extractor.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load extractor configuration", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: Failed to load extractor configuration: %v\n", err)
		return exitFailure
	}

	code := summarizeDocument(ctx, opts, cfg, extractorConfig, budget, presetLabel, exporter, stdin, stdout, stderr, logger)

	if opts.metricsFile != "" {
		if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
			logger.Error("failed to write metrics", slog.String("path", opts.metricsFile), slog.Any("error", err))
			fmt.Fprintf(stderr, "Error: Failed to write metrics: %v\n", err)
			return exitFailure
		}
	}

	return code
}

func summarizeDocument(
	ctx context.Context,
	opts options,
	cfg *config.SummarizerConfig,
	extractorConfig extractor.Config,
	budget entity.LengthBudget,
	presetLabel string,
	exporter export.Exporter,
	stdin io.Reader,
	stdout, stderr io.Writer,
	logger *slog.Logger,
) int {
	ex := extractor.New(extractorConfig, extractor.WithStdin(stdin))

	var (
		doc extractor.Document
		err error
	)
	if opts.url != "" {
		doc, err = ex.ExtractURL(ctx, opts.url)
	} else {
		doc, err = ex.Extract(ctx, opts.target)
	}
	if err != nil {
		logger.Error("failed to extract document", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: Failed to read document: %v\n", err)
		return exitFailure
	}

	logger.Info("document extracted",
		slog.String("source", string(doc.Source)),
		slog.String("location", doc.Location),
		slog.Int("words", doc.Words()),
		slog.Int("pages", doc.Pages))

	service := newService(ctx, cfg, logger)

	logger.Info("generating summary",
		slog.Int("min_words", budget.MinWords),
		slog.Int("max_words", budget.MaxWords))

	outcome := service.GenerateSummary(ctx, doc.Text, budget)
	report := summarize.BuildReport(doc.Text, outcome, summarize.ReportOptions{
		Preset:      presetLabel,
		GeneratedAt: time.Now(),
	})

	result := export.Result{
		Source:  doc.Location,
		Title:   doc.Title,
		Outcome: outcome,
		Report:  report,
	}

	if err := writeResult(exporter, result, opts.output, stdout); err != nil {
		logger.Error("failed to write summary", slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: Failed to write summary: %v\n", err)
		return exitFailure
	}

	if outcome.Kind == entity.OutcomeFailed {
		fmt.Fprintf(stderr, "Error: %s\n", outcome.Text())
		return exitFailure
	}
	return exitOK
}

// newService loads the first available model of the hierarchy and builds the orchestrator.
// Without any loadable model the service summarizes extractively.
func newService(ctx context.Context, cfg *config.SummarizerConfig, logger *slog.Logger) *summarize.Service {
	loader := summarizer.NewProviderLoader(cfg, summarizer.LoaderOptions{})
	model := summarize.NewModelBacked(ctx, cfg.Models, loader, nil, summarize.WithLogger(logger))

	serviceConfig := summarize.DefaultConfig()
	serviceConfig.MaxChunkWords = cfg.MaxChunkWords
	serviceConfig.ChunkConcurrency = cfg.ChunkConcurrency

	serviceOpts := []summarize.ServiceOption{
		summarize.WithConfig(serviceConfig),
		summarize.WithServiceLogger(logger),
	}
	if cfg.DetectLanguage {
		serviceOpts = append(serviceOpts, summarize.WithLanguageDetector(language.NewDetector()))
	}

	return summarize.NewService(model, serviceOpts...)
}

// newApp builds the command line definition. action receives the validated options.
func newApp(stdout, stderr io.Writer, action func(*cli.Context, options) error) *cli.App {
	return &cli.App{
		Name:            appName,
		Usage:           "summarize a PDF, text file, markdown file or web page",
		UsageText:       usageText,
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		// Exit codes are decided by run, never by the library.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "length", Aliases: []string{"l"}, Value: string(entity.PresetMedium), Usage: "summary length: short, medium or long"},
			&cli.IntFlag{Name: "min", Usage: "minimum summary words (overrides -length)"},
			&cli.IntFlag{Name: "max", Usage: "maximum summary words (overrides -length)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(export.FormatText), Usage: "output format: " + formatList()},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the summary to `FILE` instead of stdout"},
			&cli.StringFlag{Name: "log", Value: logging.FormatText, Usage: "log format on stderr: text or json"},
			&cli.StringFlag{Name: "url", Usage: "summarize the article at `URL`"},
			&cli.StringFlag{Name: "metrics-file", Usage: "write Prometheus metrics to `FILE` after the run"},
		},
		Action: func(c *cli.Context) error {
			opts, err := optionsFromContext(c)
			if err != nil {
				return err
			}
			return action(c, opts)
		},
	}
}

func optionsFromContext(c *cli.Context) (options, error) {
	opts := options{
		length:      c.String("length"),
		minWords:    c.Int("min"),
		maxWords:    c.Int("max"),
		format:      c.String("format"),
		output:      c.String("output"),
		logFormat:   c.String("log"),
		url:         c.String("url"),
		metricsFile: c.String("metrics-file"),
		minSet:      c.IsSet("min"),
		maxSet:      c.IsSet("max"),
	}

	switch {
	case opts.url != "" && c.NArg() > 0:
		return opts, errors.New("give either -url or a FILE, not both")
	case opts.url == "" && c.NArg() != 1:
		if err := cli.ShowAppHelp(c); err != nil {
			return opts, fmt.Errorf("exactly one FILE (or -url) is required: %w", err)
		}
		return opts, errors.New("exactly one FILE (or -url) is required")
	case opts.url == "":
		opts.target = c.Args().First()
	}

	return opts, nil
}

// parseArgs parses args without running anything.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var parsed options
	app := newApp(io.Discard, stderr, func(_ *cli.Context, opts options) error {
		parsed = opts
		return nil
	})
	err := app.Run(append([]string{appName}, args...))
	return parsed, err
}

// custom reports whether -min or -max was given.
func (o options) custom() bool {
	return o.minSet || o.maxSet
}

// resolveBudget returns the word budget and its report label. -min/-max override the matching
// bound of the -length preset; a side left unset keeps the preset's value.
func resolveBudget(opts options) (entity.LengthBudget, string, error) {
	preset, err := entity.ParseLengthPreset(opts.length)
	if err != nil {
		return entity.LengthBudget{}, "", err
	}
	if !opts.custom() {
		return preset.Budget(), preset.Label(), nil
	}

	budget := preset.Budget()
	if opts.minSet {
		budget.MinWords = opts.minWords
	}
	if opts.maxSet {
		budget.MaxWords = opts.maxWords
	}
	if err := budget.Validate(); err != nil {
		return entity.LengthBudget{}, "", fmt.Errorf("invalid -min/-max: %w", err)
	}
	return budget, "Custom", nil
}

func writeResult(exporter export.Exporter, result export.Result, output string, stdout io.Writer) (err error) {
	if output == "" || output == "-" {
		return exporter.Export(stdout, result)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return exporter.Export(f, result)
}

func formatList() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
