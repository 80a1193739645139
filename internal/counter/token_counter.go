package counter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the tiktoken encoding used for --tokens.
const DefaultEncoding = "cl100k_base"

// TokenCounter collects the text written to it and reports its token count.
// It is meant to sit behind an io.TeeReader so tokens come from the same
// single pass as the word and character counts.
type TokenCounter struct {
	encodingName string
	encoding     *tiktoken.Tiktoken
	text         strings.Builder
}

// NewTokenCounter loads the named tiktoken encoding.
func NewTokenCounter(encodingName string) (*TokenCounter, error) {
	slog.Debug("Initializing TokenCounter", "encoding", encodingName)

	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s encoding: %w", encodingName, err)
	}

	return &TokenCounter{
		encodingName: encodingName,
		encoding:     encoding,
	}, nil
}

// Write appends p to the collected text. It never fails.
func (tc *TokenCounter) Write(p []byte) (int, error) {
	return tc.text.Write(p)
}

// Count encodes everything written so far and returns the number of tokens.
// Whitespace is part of the encoded text, unlike the word and character counts.
func (tc *TokenCounter) Count() int {
	if tc.text.Len() == 0 {
		return 0
	}

	// nil params mean no special tokens allowed/disallowed
	tokenCount := len(tc.encoding.Encode(tc.text.String(), nil, nil))

	slog.Debug("Token count calculated", "encoding", tc.encodingName, "textLength", tc.text.Len(), "tokenCount", tokenCount)
	return tokenCount
}

// Name returns the counting method with its encoding, for logging.
func (tc *TokenCounter) Name() string {
	return "tokens (" + tc.encodingName + ")"
}
