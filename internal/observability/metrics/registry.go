// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics track summarization requests end to end
var (
	// SummariesTotal counts summarization requests by outcome kind
	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summaries_total",
			Help: "Total number of summarization requests by outcome",
		},
		[]string{"outcome"}, // outcome: ok, too_short, failed
	)

	// SummaryFallbacksTotal counts units of work routed to the extractive summarizer
	SummaryFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_fallbacks_total",
			Help: "Total number of texts summarized by the extractive fallback",
		},
		[]string{"reason"}, // reason: unavailable, error, recovered
	)

	// SummaryChunks observes how many chunks a long document was split into
	SummaryChunks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summary_chunks_per_document",
			Help:    "Number of chunks per chunked document",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		},
	)

	// SummarizationDuration measures time to produce an outcome
	SummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_duration_seconds",
			Help:    "Time taken to summarize a document",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	// ModelLoadsTotal counts model load attempts by model and result
	ModelLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_loads_total",
			Help: "Total number of model load attempts",
		},
		[]string{"model", "result"}, // result: success, failure
	)
)

// Extraction metrics track getting text out of documents
var (
	// DocumentExtractionsTotal counts extraction attempts by source kind and result
	DocumentExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_extractions_total",
			Help: "Total number of document text extractions",
		},
		[]string{"source", "result"}, // source: pdf, url, text; result: success, failure
	)

	// DocumentExtractionDuration measures extraction time by source kind
	DocumentExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_extraction_duration_seconds",
			Help:    "Time taken to extract document text",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
		[]string{"source"},
	)

	// DocumentWords measures extracted document size in words
	DocumentWords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "document_words",
			Help:    "Extracted document size in words",
			Buckets: prometheus.ExponentialBuckets(50, 2, 12),
		},
	)
)
