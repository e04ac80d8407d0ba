package extractor

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"doc-summarizer/internal/resilience/circuitbreaker"
	"doc-summarizer/internal/resilience/retry"
)

// URLExtractor downloads web pages and extracts their article text with go-readability.
//
// Features:
//   - SSRF prevention via URL validation, also applied to every redirect target
//   - Retry with exponential backoff for 5xx/429 responses
//   - Circuit breaker for fault tolerance in batch use
//   - Size limiting to prevent memory exhaustion
//
// Thread safety: URLExtractor is safe for concurrent use.
type URLExtractor struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

// NewURLExtractor creates a URLExtractor with the given configuration.
//
// Example:
//
//	ex := extractor.NewURLExtractor(extractor.DefaultConfig())
//	doc, err := ex.Extract(ctx, "https://example.com/article")
func NewURLExtractor(config Config) *URLExtractor {
	e := &URLExtractor{
		circuitBreaker: circuitbreaker.New(circuitbreaker.DocumentFetchConfig()),
		config:         config,
	}

	e.client = &http.Client{
		Timeout: config.Timeout + 10*time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= e.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), e.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return e
}

// Extract downloads urlStr and returns its readable article text.
//
// The fetch process:
//  1. Validates the URL (scheme, host, private addresses)
//  2. Retries transient failures with backoff, each attempt through the circuit breaker
//  3. Enforces the size limit while reading the body
//  4. Extracts the article with the Readability algorithm
func (e *URLExtractor) Extract(ctx context.Context, urlStr string) (Document, error) {
	if err := validateURL(urlStr, e.config.DenyPrivateIPs); err != nil {
		return Document{}, err
	}

	var doc Document
	err := retry.WithBackoff(ctx, e.config.Retry, func() error {
		result, err := e.circuitBreaker.Execute(func() (interface{}, error) {
			return e.doFetch(ctx, urlStr)
		})
		if err != nil {
			if circuitbreaker.IsRejection(err) {
				slog.Warn("document fetch rejected by circuit breaker",
					slog.String("url", urlStr),
					slog.String("state", e.circuitBreaker.State().String()))
			}
			return err
		}
		doc = result.(Document)
		return nil
	})
	if err != nil {
		return Document{}, err
	}

	return doc, nil
}

// doFetch performs one HTTP request and the readability extraction.
func (e *URLExtractor) doFetch(ctx context.Context, urlStr string) (Document, error) {
	reqCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return Document{}, fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", e.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return Document{}, fmt.Errorf("%w: request exceeded %v", ErrTimeout, e.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && (errors.Is(urlErr.Err, ErrTooManyRedirects) ||
			errors.Is(urlErr.Err, ErrPrivateIP) || errors.Is(urlErr.Err, ErrInvalidURL)) {
			return Document{}, urlErr.Err
		}
		return Document{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Document{}, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, e.config.MaxBodySize+1))
	if err != nil {
		return Document{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > e.config.MaxBodySize {
		return Document{}, fmt.Errorf("%w: response exceeds %d bytes", ErrBodyTooLarge, e.config.MaxBodySize)
	}

	// Relative links resolve against the final URL after redirects.
	pageURL := resp.Request.URL
	if pageURL == nil {
		pageURL, _ = url.Parse(urlStr)
	}

	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrReadabilityFailed, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		if strings.TrimSpace(article.Content) == "" {
			return Document{}, fmt.Errorf("%w: no readable content found", ErrReadabilityFailed)
		}
		slog.Debug("using article Content instead of TextContent",
			slog.String("url", urlStr),
			slog.Int("content_length", len(article.Content)))
		text = article.Content
	}

	return Document{
		Source:   SourceURL,
		Location: pageURL.String(),
		Title:    strings.TrimSpace(article.Title),
		Text:     text,
	}, nil
}
