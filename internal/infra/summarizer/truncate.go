package summarizer

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	tokenEncoding = "cl100k_base"

	// runesPerToken approximates the token count when the encoding is unavailable.
	runesPerToken = 4
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

func loadEncoding() *tiktoken.Tiktoken {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenEncoding)
		if err != nil {
			slog.Warn("token encoding unavailable, truncating by characters",
				slog.String("encoding", tokenEncoding),
				slog.Any("error", err))
			return
		}
		encoding = enc
	})
	return encoding
}

// TruncateTokens shortens s to at most maxTokens tokens and reports whether it cut anything.
// Without the tokenizer it keeps maxTokens*4 characters instead.
func TruncateTokens(s string, maxTokens int) (string, bool) {
	if maxTokens <= 0 {
		return s, false
	}

	if enc := loadEncoding(); enc != nil {
		tokens := enc.Encode(s, nil, nil)
		if len(tokens) <= maxTokens {
			return s, false
		}
		return strings.TrimSpace(enc.Decode(tokens[:maxTokens])), true
	}

	return truncateRunes(s, maxTokens*runesPerToken)
}

func truncateRunes(s string, maxRunes int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s, false
	}
	return strings.TrimSpace(string(runes[:maxRunes])), true
}
