package extractor

import "errors"

var (
	// ErrInvalidURL is returned when a URL is malformed or uses a scheme other than http/https.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrPrivateIP is returned when a URL resolves to a private, loopback or link-local address.
	ErrPrivateIP = errors.New("URL resolves to a private IP address")

	// ErrTooManyRedirects is returned when a URL redirects more than Config.MaxRedirects times.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrTimeout is returned when a download exceeds Config.Timeout.
	ErrTimeout = errors.New("document fetch timed out")

	// ErrBodyTooLarge is returned when a response body or file exceeds the configured size limit.
	ErrBodyTooLarge = errors.New("document exceeds size limit")

	// ErrReadabilityFailed is returned when no article content can be extracted from a page.
	ErrReadabilityFailed = errors.New("readability extraction failed")

	// ErrPDFOpen is returned when a file cannot be opened as a PDF.
	ErrPDFOpen = errors.New("cannot open PDF")

	// ErrUnsupportedFormat is returned for files that are neither PDF nor plain text.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyDocument is returned when extraction succeeds but yields no text.
	ErrEmptyDocument = errors.New("document contains no text")
)
